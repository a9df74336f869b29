// Copyright 2024 The filippo.io/hpke Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package hpke

import "filippo.io/hpke/internal/hpkeproto"

// PublicKey is an opaque KEM public key, encoded the way the owning KEM
// mandates (e.g. uncompressed SEC1 with a 0x04 prefix for the NIST curves,
// raw bytes for X25519/X448 and X-Wing).
//
// PublicKey values are freely shareable; unlike [PrivateKey] they carry no
// secret material.
type PublicKey = hpkeproto.PublicKey

// PrivateKey is an opaque KEM private key. Like all secret material in this
// package, it must be passed by reference, and [PrivateKey.Destroy] must be
// called to zero it once it is no longer needed.
type PrivateKey = hpkeproto.PrivateKey

// KeyPair is a matching (private, public) pair for a single KEM.
type KeyPair = hpkeproto.KeyPair

// NewPublicKey wraps raw, KEM-encoded bytes as a PublicKey, for use by a
// [CryptoProvider] implementation outside this module. NewPublicKey copies
// raw.
func NewPublicKey(kem KemID, raw []byte) (*PublicKey, error) {
	return hpkeproto.NewPublicKey(kem, raw)
}

// NewPrivateKey wraps raw, KEM-encoded bytes as a PrivateKey, rejecting
// lengths that don't match kem.PrivateKeySize(). It is exported for
// [CryptoProvider] implementations outside this module. NewPrivateKey takes
// ownership of raw: the caller must not retain or reuse it afterwards.
func NewPrivateKey(kem KemID, raw []byte) (*PrivateKey, error) {
	return hpkeproto.NewPrivateKey(kem, raw)
}

// wipe overwrites buf with zeros. It is a function, not inlined everywhere
// verbatim, so that the compiler cannot conclude the store is dead and elide
// it on a buffer that is about to be discarded.
func wipe(buf []byte) {
	for i := range buf {
		buf[i] = 0
	}
}
