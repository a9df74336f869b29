// Copyright 2024 The filippo.io/hpke Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package hpke

import "filippo.io/hpke/internal/provider"

// DefaultProvider returns the production [CryptoProvider] this module
// ships: the standard library's crypto/ecdh and AES-GCM, golang.org/x/crypto
// for HKDF, X25519 and ChaCha20-Poly1305, cloudflare/circl for X448 and
// X-Wing, and decred/dcrd's secp256k1 for the K-256 DH-KEM. Randomness comes
// from crypto/rand.
//
// Most callers only need one of these; [New] accepts it directly:
//
//	suite := hpke.New(hpke.ModeBase, hpke.KemDH25519HkdfSha256,
//		hpke.KdfHkdfSha256, hpke.AeadAES128GCM, hpke.DefaultProvider())
func DefaultProvider() CryptoProvider {
	return provider.New()
}
