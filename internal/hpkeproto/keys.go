// Copyright 2024 The filippo.io/hpke Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package hpkeproto

import (
	"crypto/subtle"
	"errors"
)

// PublicKey is an opaque KEM public key, encoded the way the owning KEM
// mandates (e.g. uncompressed SEC1 with a 0x04 prefix for the NIST curves,
// raw bytes for X25519/X448 and X-Wing).
//
// PublicKey values are freely shareable; unlike PrivateKey they carry no
// secret material.
type PublicKey struct {
	kem   KemID
	bytes []byte
}

// Bytes returns the encoded public key. The returned slice must not be
// modified.
func (pk *PublicKey) Bytes() []byte { return pk.bytes }

// KEM returns the algorithm this key was generated or parsed for.
func (pk *PublicKey) KEM() KemID { return pk.kem }

// NewPublicKey wraps raw, KEM-encoded bytes as a PublicKey. It is exported
// for CryptoProvider implementations; it copies raw.
func NewPublicKey(kem KemID, raw []byte) (*PublicKey, error) {
	b := make([]byte, len(raw))
	copy(b, raw)
	return &PublicKey{kem: kem, bytes: b}, nil
}

// PrivateKey is an opaque KEM private key. Like all secret material in this
// package, it must be passed by reference, and Destroy must be called to
// zero it once it is no longer needed.
type PrivateKey struct {
	kem   KemID
	bytes []byte
}

// Bytes returns the encoded private key. The returned slice aliases the
// key's internal storage: treat it as read-only, and never log or print it.
func (sk *PrivateKey) Bytes() []byte { return sk.bytes }

// KEM returns the algorithm this key was generated or parsed for.
func (sk *PrivateKey) KEM() KemID { return sk.kem }

// Equal reports whether sk and other hold the same key material. The
// comparison is constant-time for equal-length inputs; mismatched lengths
// are rejected immediately, since the length of a private key is not secret.
func (sk *PrivateKey) Equal(other *PrivateKey) bool {
	if other == nil || sk.kem != other.kem {
		return false
	}
	if len(sk.bytes) != len(other.bytes) {
		return false
	}
	return subtle.ConstantTimeCompare(sk.bytes, other.bytes) == 1
}

// Destroy overwrites the private key bytes with zeros. The key must not be
// used afterwards. Destroy is safe to call more than once.
func (sk *PrivateKey) Destroy() {
	for i := range sk.bytes {
		sk.bytes[i] = 0
	}
}

// String never reveals key material.
func (sk *PrivateKey) String() string {
	return "hpke.PrivateKey{REDACTED}"
}

// NewPrivateKey wraps raw, KEM-encoded bytes as a PrivateKey, rejecting
// lengths that don't match kem.PrivateKeySize(). It is exported for
// CryptoProvider implementations. NewPrivateKey takes ownership of raw: the
// caller must not retain or reuse it afterwards.
func NewPrivateKey(kem KemID, raw []byte) (*PrivateKey, error) {
	if len(raw) != kem.PrivateKeySize() {
		return nil, errors.New("hpke: private key has the wrong length for this kem")
	}
	return &PrivateKey{kem: kem, bytes: raw}, nil
}

// KeyPair is a matching (private, public) pair for a single KEM.
type KeyPair struct {
	Private *PrivateKey
	Public  *PublicKey
}

// Destroy zeros the private half of the pair. The public key is not secret
// and is left untouched.
func (kp *KeyPair) Destroy() {
	if kp.Private != nil {
		kp.Private.Destroy()
	}
}
