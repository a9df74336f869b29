// Copyright 2024 The filippo.io/hpke Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package hpkeproto

// Prng is the source of randomness a CryptoProvider draws on for ephemeral
// key generation and derandomized encapsulation. The core never reads an
// ambient system RNG directly; every draw goes through this interface.
type Prng interface {
	NextUint32() (uint32, error)
	NextUint64() (uint64, error)
	FillBytes(dst []byte) error
}

// CryptoProvider is the abstract capability set every other component in
// the hpke package is built on: KDF extract/expand, AEAD seal/open, KEM
// operations, and a PRNG. Concrete cryptographic primitives are entirely the
// provider's responsibility; the core never implements or assumes a
// particular primitive.
//
// A CryptoProvider is expected to be safe for concurrent use by multiple
// goroutines sharing one Suite, except for its Prng, which must serialize
// its own draws so that two concurrent GenerateKeyPair calls never produce
// correlated output.
type CryptoProvider interface {
	// KDF operations.
	KdfExtract(kdf KdfID, salt, ikm []byte) ([]byte, error)
	KdfExpand(kdf KdfID, prk, info []byte, length int) ([]byte, error)
	KdfDigestLength(kdf KdfID) int

	// AEAD operations.
	AeadSeal(aead AeadID, key, nonce, aad, pt []byte) ([]byte, error)
	AeadOpen(aead AeadID, key, nonce, aad, ct []byte) ([]byte, error)
	AeadKeyLength(aead AeadID) int
	AeadNonceLength(aead AeadID) int

	// KEM operations for Diffie-Hellman based KEMs.
	DH(kem KemID, pk *PublicKey, sk *PrivateKey) ([]byte, error)
	SecretToPublic(kem KemID, sk *PrivateKey) (*PublicKey, error)
	DHValidateSk(kem KemID, sk []byte) error
	GenerateKeyPairDH(kem KemID) (*KeyPair, error)
	ParsePublicKey(kem KemID, raw []byte) (*PublicKey, error)
	ParsePrivateKey(kem KemID, raw []byte) (*PrivateKey, error)

	// KEM operations for encapsulation-native KEMs (e.g. X-Wing), which do
	// not expose a raw DH primitive.
	KemKeyGen(kem KemID) (*KeyPair, error)
	KemKeyGenDerand(kem KemID, seed []byte) (*KeyPair, error)
	KemEncaps(kem KemID, pk *PublicKey) (sharedSecret, enc []byte, err error)
	KemDecaps(kem KemID, enc []byte, sk *PrivateKey) ([]byte, error)

	// Capability queries, used by Suite validation before any derivation.
	SupportsKdf(kdf KdfID) bool
	SupportsKem(kem KemID) bool
	SupportsAead(aead AeadID) bool

	// Prng returns the provider's randomness source.
	Prng() Prng
}
