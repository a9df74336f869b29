// Copyright 2024 The filippo.io/hpke Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package hpke implements Hybrid Public Key Encryption as specified by
// RFC 9180, plus the X-Wing draft-06 post-quantum KEM.
//
// HPKE lets a sender encrypt a sequence of messages to a recipient identified
// only by a public key, optionally authenticated with a sender private key
// and/or a pre-shared key. A [Suite] fixes the (KEM, KDF, AEAD) algorithm
// triple; [Suite.SetupSender] and [Suite.SetupReceiver] run the key schedule
// and return a [Context] that seals or opens successive AEAD messages under
// a nonce derived from a monotonically increasing sequence number.
//
// The package does not implement cryptographic primitives itself. It is
// driven by a [CryptoProvider], which supplies the KDF, AEAD and KEM
// operations; [DefaultProvider] wires those operations to the standard
// library, golang.org/x/crypto, cloudflare/circl and decred/dcrd.
//
// This package has no opinion on wire framing: callers serialize enc and
// ciphertexts however suits their protocol, matching RFC 9180's own silence
// on anything beyond the encapsulated-key byte layout.
package hpke
