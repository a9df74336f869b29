// Copyright 2024 The filippo.io/hpke Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package provider

import (
	"crypto/aes"
	"crypto/cipher"
	"fmt"

	"golang.org/x/crypto/chacha20poly1305"

	hpke "filippo.io/hpke/internal/hpkeproto"
)

func newAEAD(id hpke.AeadID, key []byte) (cipher.AEAD, error) {
	switch id {
	case hpke.AeadAES128GCM, hpke.AeadAES256GCM:
		block, err := aes.NewCipher(key)
		if err != nil {
			return nil, err
		}
		return cipher.NewGCM(block)
	case hpke.AeadChaCha20Poly1305:
		return chacha20poly1305.New(key)
	default:
		return nil, fmt.Errorf("provider: unsupported aead %#04x", uint16(id))
	}
}

// invalidNonceError reports a nonce whose length doesn't match the AEAD's
// NonceSize(). It implements the duck-typed InvalidInput() signal the root
// package's wrapCryptoError looks for, the same way exhaustedError signals
// InsufficientRandomness(): both stdlib crypto/cipher's GCM and
// x/crypto/chacha20poly1305 panic on a mismatched nonce length instead of
// returning an error, so this check must happen before the cipher is ever
// invoked.
type invalidNonceError struct{ got, want int }

func (e *invalidNonceError) Error() string {
	return fmt.Sprintf("provider: nonce is %d bytes, want %d", e.got, e.want)
}

func (e *invalidNonceError) InvalidInput() bool { return true }

func (d *Default) AeadSeal(aead hpke.AeadID, key, nonce, aad, pt []byte) ([]byte, error) {
	a, err := newAEAD(aead, key)
	if err != nil {
		return nil, err
	}
	if len(nonce) != a.NonceSize() {
		return nil, &invalidNonceError{got: len(nonce), want: a.NonceSize()}
	}
	return a.Seal(nil, nonce, pt, aad), nil
}

func (d *Default) AeadOpen(aead hpke.AeadID, key, nonce, aad, ct []byte) ([]byte, error) {
	a, err := newAEAD(aead, key)
	if err != nil {
		return nil, err
	}
	if len(nonce) != a.NonceSize() {
		return nil, &invalidNonceError{got: len(nonce), want: a.NonceSize()}
	}
	return a.Open(nil, nonce, ct, aad)
}

func (d *Default) AeadKeyLength(aead hpke.AeadID) int   { return aead.KeySize() }
func (d *Default) AeadNonceLength(aead hpke.AeadID) int { return aead.NonceSize() }
