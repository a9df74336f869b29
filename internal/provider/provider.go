// Copyright 2024 The filippo.io/hpke Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package provider implements [hpke.CryptoProvider] with this module's
// chosen production primitives: the standard library's crypto/ecdh and AES
// for the NIST curves and AES-GCM, golang.org/x/crypto for HKDF,
// X25519 and ChaCha20-Poly1305, github.com/cloudflare/circl for X448 and
// X-Wing, and github.com/decred/dcrd/dcrec/secp256k1 for the secp256k1
// DH-KEM.
package provider

import hpke "filippo.io/hpke/internal/hpkeproto"

// Default is the production CryptoProvider. The zero value is not usable;
// construct one with [New].
type Default struct {
	rng hpke.Prng
}

var _ hpke.CryptoProvider = (*Default)(nil)

// New returns a Default provider drawing randomness from crypto/rand.
func New() *Default {
	return &Default{rng: newSystemPrng()}
}

// NewWithPrng returns a Default provider drawing randomness from rng
// instead of crypto/rand, for deterministic derandomized operation (e.g.
// reproducible ephemeral keys from internal/testprng).
func NewWithPrng(rng hpke.Prng) *Default {
	return &Default{rng: rng}
}

func (d *Default) Prng() hpke.Prng { return d.rng }

func (d *Default) SupportsKem(kem hpke.KemID) bool   { return kem.IsValid() }
func (d *Default) SupportsKdf(kdf hpke.KdfID) bool   { return kdf.IsValid() }
func (d *Default) SupportsAead(aead hpke.AeadID) bool { return aead.IsValid() }

// CloneWithFreshPrng satisfies the optional cloning hook [hpke.Suite.Clone]
// looks for: a clone must never reuse the same PRNG draws as its parent.
func (d *Default) CloneWithFreshPrng() hpke.CryptoProvider {
	return &Default{rng: newSystemPrng()}
}
