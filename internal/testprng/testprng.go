// Copyright 2024 The filippo.io/hpke Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package testprng implements a deterministic, seedable source of
// randomness for tests that need reproducible ephemeral key generation
// (GenerateKeyPair, KemKeyGen, KemEncaps) without waiting on a real entropy
// source, and for exercising the InsufficientRandomness error path with a
// pool that deliberately runs dry. RFC 9180's own test vectors are
// reproduced through Suite.DeriveKeyPair instead, which takes its ikm
// directly and never touches a Prng; this package is for everything RFC
// 9180 leaves to the implementation's randomness source. It must never be
// linked into a provider used for anything but tests: its output is
// entirely determined by its seed.
package testprng

import (
	"crypto/cipher"
	"encoding/binary"
	"fmt"
	"io"

	"golang.org/x/crypto/chacha20"
)

// Prng is a deterministic hpke.Prng: a ChaCha20 keystream over an all-zero
// plaintext, keyed from seed with an all-zero nonce, read until pool bytes have been
// produced and then exhausted. The construction mirrors the
// chacha20.NewUnauthenticatedCipher-over-a-zero-reader trick this package's
// teacher used to generate reproducible test ciphertexts.
type Prng struct {
	stream cipher.Stream
	remain int
}

// exhaustedError is returned once the pool is drained; it implements the
// duck-typed InsufficientRandomness() signal the root package's
// wrapCryptoError looks for.
type exhaustedError struct{ requested, remain int }

func (e *exhaustedError) Error() string {
	return fmt.Sprintf("testprng: requested %d bytes, only %d remain in the pool", e.requested, e.remain)
}

func (e *exhaustedError) InsufficientRandomness() bool { return true }

// New returns a Prng keyed from seed, capable of producing exactly pool
// bytes of randomness before every subsequent draw fails with
// InsufficientRandomness. seed is stretched or truncated to a 32-byte
// ChaCha20 key; a 12-byte nonce of zeros is always used, which is safe here
// only because the key is never reused outside of one Prng instance's
// deterministic, single-use lifetime.
func New(seed []byte, pool int) *Prng {
	var key [32]byte
	if len(seed) > 0 {
		for i := range key {
			key[i] = seed[i%len(seed)]
		}
	}
	c, err := chacha20.NewUnauthenticatedCipher(key[:], make([]byte, chacha20.NonceSize))
	if err != nil {
		panic("testprng: " + err.Error())
	}
	return &Prng{stream: c, remain: pool}
}

func (p *Prng) draw(n int) ([]byte, error) {
	if n > p.remain {
		return nil, &exhaustedError{requested: n, remain: p.remain}
	}
	buf := make([]byte, n)
	p.stream.XORKeyStream(buf, buf)
	p.remain -= n
	return buf, nil
}

func (p *Prng) FillBytes(dst []byte) error {
	b, err := p.draw(len(dst))
	if err != nil {
		return err
	}
	copy(dst, b)
	return nil
}

func (p *Prng) NextUint32() (uint32, error) {
	b, err := p.draw(4)
	if err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint32(b), nil
}

func (p *Prng) NextUint64() (uint64, error) {
	b, err := p.draw(8)
	if err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint64(b), nil
}

// Reader adapts the Prng to an io.Reader, for code (like
// crypto/ecdh.Curve.GenerateKey) that wants one instead of the hpke.Prng
// interface. Short reads never happen; Read either fills p entirely or
// returns the pool-exhausted error.
func (p *Prng) Reader() io.Reader { return prngReader{p} }

type prngReader struct{ p *Prng }

func (r prngReader) Read(dst []byte) (int, error) {
	if err := r.p.FillBytes(dst); err != nil {
		return 0, err
	}
	return len(dst), nil
}
