// Copyright 2024 The filippo.io/hpke Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package hpke

import "fmt"

// Kind identifies the taxonomy of an [Error] without reference to any
// particular algorithm or provider.
type Kind int

const (
	// KindOpenError means AEAD tag verification failed.
	KindOpenError Kind = iota + 1
	// KindInvalidConfig means the requested algorithm combination is
	// unsupported, e.g. Auth mode with a non-DH KEM, or seal/open on an
	// export-only AEAD.
	KindInvalidConfig
	// KindInvalidInput means a required argument is missing or malformed,
	// e.g. a missing sk_s/pk_s in an authenticated mode, or a key or
	// ciphertext of the wrong length.
	KindInvalidInput
	// KindUnknownMode means a mode byte did not match Base, Psk, Auth or
	// AuthPsk.
	KindUnknownMode
	// KindUnknownAlgorithm means a KEM, KDF or AEAD identifier is not
	// recognized.
	KindUnknownAlgorithm
	// KindInconsistentPsk means exactly one of psk and psk_id was empty.
	KindInconsistentPsk
	// KindMissingPsk means mode requires a PSK that was not supplied.
	KindMissingPsk
	// KindUnnecessaryPsk means a PSK was supplied for a mode that forbids it.
	KindUnnecessaryPsk
	// KindInsecurePsk means the supplied PSK is shorter than 32 bytes.
	KindInsecurePsk
	// KindCryptoError wraps a failure reported by the CryptoProvider, such as
	// a KEM decapsulation failure or a KDF expansion overflow.
	KindCryptoError
	// KindMessageLimitReached means the context's sequence number has
	// saturated; the AEAD was not invoked.
	KindMessageLimitReached
	// KindInsufficientRandomness means the PRNG could not supply the
	// requested bytes, which only occurs with a test PRNG backed by a finite
	// seeded pool.
	KindInsufficientRandomness
)

func (k Kind) String() string {
	switch k {
	case KindOpenError:
		return "open error"
	case KindInvalidConfig:
		return "invalid config"
	case KindInvalidInput:
		return "invalid input"
	case KindUnknownMode:
		return "unknown mode"
	case KindUnknownAlgorithm:
		return "unknown algorithm"
	case KindInconsistentPsk:
		return "inconsistent psk"
	case KindMissingPsk:
		return "missing psk"
	case KindUnnecessaryPsk:
		return "unnecessary psk"
	case KindInsecurePsk:
		return "insecure psk"
	case KindCryptoError:
		return "crypto error"
	case KindMessageLimitReached:
		return "message limit reached"
	case KindInsufficientRandomness:
		return "insufficient randomness"
	default:
		return "unknown error kind"
	}
}

// Error is the error type returned by every operation in this package. The
// Kind is always one of the Kind* constants; Detail, when non-empty, is an
// opaque string from the provider and is never derived from secret bytes.
type Error struct {
	Kind   Kind
	Detail string
}

func (e *Error) Error() string {
	if e.Detail == "" {
		return "hpke: " + e.Kind.String()
	}
	return fmt.Sprintf("hpke: %s: %s", e.Kind, e.Detail)
}

// Is reports whether target is an *Error with the same Kind, so callers can
// write errors.Is(err, hpke.ErrOpenError) and similar.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind
}

func newError(kind Kind, detail string) *Error {
	return &Error{Kind: kind, Detail: detail}
}

// transientRandomness is implemented by provider errors that stem from a
// finite randomness pool running dry, e.g. a seeded test PRNG, so that
// wrapCryptoError can classify them as InsufficientRandomness instead of the
// generic CryptoError. It plays the same role as net.Error's Timeout method:
// a narrow, duck-typed signal a caller can check for without this package
// importing the provider that raised it.
type transientRandomness interface {
	InsufficientRandomness() bool
}

// invalidProviderInput is implemented by provider errors that stem from a
// malformed argument the provider caught itself, e.g. a nonce of the wrong
// length, rather than a primitive actually failing. It lets wrapCryptoError
// classify these as InvalidInput instead of the generic CryptoError, the
// same way transientRandomness carves out InsufficientRandomness.
type invalidProviderInput interface {
	InvalidInput() bool
}

func wrapCryptoError(err error) *Error {
	if ir, ok := err.(transientRandomness); ok && ir.InsufficientRandomness() {
		return &Error{Kind: KindInsufficientRandomness, Detail: err.Error()}
	}
	if ii, ok := err.(invalidProviderInput); ok && ii.InvalidInput() {
		return &Error{Kind: KindInvalidInput, Detail: err.Error()}
	}
	return &Error{Kind: KindCryptoError, Detail: err.Error()}
}

// Sentinel errors for use with errors.Is. Detail is always empty so they
// compare equal to any *Error of the same Kind.
var (
	ErrOpenError             = &Error{Kind: KindOpenError}
	ErrInvalidConfig         = &Error{Kind: KindInvalidConfig}
	ErrInvalidInput          = &Error{Kind: KindInvalidInput}
	ErrUnknownMode           = &Error{Kind: KindUnknownMode}
	ErrUnknownAlgorithm      = &Error{Kind: KindUnknownAlgorithm}
	ErrInconsistentPsk       = &Error{Kind: KindInconsistentPsk}
	ErrMissingPsk            = &Error{Kind: KindMissingPsk}
	ErrUnnecessaryPsk        = &Error{Kind: KindUnnecessaryPsk}
	ErrInsecurePsk           = &Error{Kind: KindInsecurePsk}
	ErrMessageLimitReached   = &Error{Kind: KindMessageLimitReached}
	ErrInsufficientRandomness = &Error{Kind: KindInsufficientRandomness}
)
