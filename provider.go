// Copyright 2024 The filippo.io/hpke Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package hpke

import "filippo.io/hpke/internal/hpkeproto"

// Prng is the source of randomness a CryptoProvider draws on for ephemeral
// key generation and derandomized encapsulation. The core never reads an
// ambient system RNG directly; every draw goes through this interface.
type Prng = hpkeproto.Prng

// CryptoProvider is the abstract capability set every other component in
// this package is built on: KDF extract/expand, AEAD seal/open, KEM
// operations, and a PRNG. Concrete cryptographic primitives are entirely the
// provider's responsibility; the core never implements or assumes a
// particular primitive.
//
// A CryptoProvider is expected to be safe for concurrent use by multiple
// goroutines sharing one [Suite], except for its Prng, which must serialize
// its own draws so that two concurrent GenerateKeyPair calls never produce
// correlated output.
type CryptoProvider = hpkeproto.CryptoProvider
