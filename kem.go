// Copyright 2024 The filippo.io/hpke Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package hpke

// This file implements the KEM layer on top of a CryptoProvider: RFC 9180's
// generic DH-KEM construction (DeriveKeyPair, Encap/Decap,
// AuthEncap/AuthDecap) for the Diffie-Hellman KEMs, plus the thinner
// dispatch to the provider for encapsulation-native KEMs like X-Wing, which
// do not support the authenticated modes.

// maxDeriveCandidates bounds the NIST-curve rejection-sampling loop in
// deriveKeyPair, per RFC 9180 §7.1.3.
const maxDeriveCandidates = 255

// deriveKeyPair implements RFC 9180's DeriveKeyPair for a DH-KEM.
//
// For X25519/X448:
//
//	dkp_prk = LabeledExtract("", kem_suite_id, "dkp_prk", ikm)
//	sk = LabeledExpand(dkp_prk, kem_suite_id, "sk", "", Nsk)
//
// For the NIST curves, sk is produced by rejection sampling: each candidate
// is LabeledExpand(dkp_prk, kem_suite_id, "candidate", I2OSP(counter, 1),
// Nsk), masked in its top byte, and accepted the first time it validates as
// a scalar in range for the curve.
func deriveKeyPair(provider CryptoProvider, kem KemID, ikm []byte) (*KeyPair, error) {
	if !kem.IsDH() {
		return nil, newError(KindInvalidConfig, "DeriveKeyPair is only defined for DH-KEMs")
	}

	suiteID := kem.SuiteID()
	dkpPRK, err := labeledExtract(provider, kdfForKem(kem), suiteID, nil, "dkp_prk", ikm)
	if err != nil {
		return nil, wrapCryptoError(err)
	}
	defer wipe(dkpPRK)

	nsk := kem.PrivateKeySize()

	switch kem {
	case KemDH25519HkdfSha256, KemDH448HkdfSha512:
		sk, err := labeledExpand(provider, kdfForKem(kem), suiteID, dkpPRK, "sk", nil, nsk)
		if err != nil {
			return nil, wrapCryptoError(err)
		}
		return finishKeyPair(provider, kem, sk)

	default: // NIST curves and K-256: rejection sampling.
		mask := topByteMask(kem)
		for counter := 0; counter < maxDeriveCandidates; counter++ {
			candidate, err := labeledExpand(provider, kdfForKem(kem), suiteID, dkpPRK,
				"candidate", []byte{byte(counter)}, nsk)
			if err != nil {
				return nil, wrapCryptoError(err)
			}
			candidate[0] &= mask
			if err := provider.DHValidateSk(kem, candidate); err != nil {
				wipe(candidate)
				continue
			}
			return finishKeyPair(provider, kem, candidate)
		}
		return nil, newError(KindInvalidConfig, "DeriveKeyPair: exhausted all candidate scalars")
	}
}

// topByteMask returns the mask applied to the top byte of a rejection-sampled
// candidate scalar, per RFC 9180 Table 2. P-521's fields are 521 bits wide,
// so only the lowest bit of the top byte of its 66-byte encoding is
// significant; every other supported curve's field width is a multiple of 8
// bits and needs no masking.
func topByteMask(kem KemID) byte {
	if kem == KemDHP521HkdfSha512 {
		return 0x01
	}
	return 0xFF
}

// kdfForKem returns the KDF used internally by the KEM's own derivations,
// which RFC 9180 fixes per KEM independent of the HPKE ciphersuite's KDF.
func kdfForKem(kem KemID) KdfID {
	switch kem {
	case KemDHP256HkdfSha256, KemDHK256HkdfSha256, KemDH25519HkdfSha256:
		return KdfHkdfSha256
	case KemDHP384HkdfSha384:
		return KdfHkdfSha384
	case KemDHP521HkdfSha512, KemDH448HkdfSha512:
		return KdfHkdfSha512
	default:
		panic("hpke: kdfForKem called for a non-DH KEM")
	}
}

func finishKeyPair(provider CryptoProvider, kem KemID, skBytes []byte) (*KeyPair, error) {
	sk, err := provider.ParsePrivateKey(kem, skBytes)
	if err != nil {
		wipe(skBytes)
		return nil, wrapCryptoError(err)
	}
	pk, err := provider.SecretToPublic(kem, sk)
	if err != nil {
		return nil, wrapCryptoError(err)
	}
	return &KeyPair{Private: sk, Public: pk}, nil
}

// extractAndExpand implements RFC 9180's ExtractAndExpand:
//
//	eae_prk = LabeledExtract("", kem_suite_id, "eae_prk", dh)
//	return LabeledExpand(eae_prk, kem_suite_id, "shared_secret", kem_context, Nsecret)
func extractAndExpand(provider CryptoProvider, kem KemID, dh, kemContext []byte) ([]byte, error) {
	suiteID := kem.SuiteID()
	eaePRK, err := labeledExtract(provider, kdfForKem(kem), suiteID, nil, "eae_prk", dh)
	if err != nil {
		return nil, wrapCryptoError(err)
	}
	defer wipe(eaePRK)
	ss, err := labeledExpand(provider, kdfForKem(kem), suiteID, eaePRK, "shared_secret", kemContext, kem.SharedSecretSize())
	if err != nil {
		return nil, wrapCryptoError(err)
	}
	return ss, nil
}

// encap implements RFC 9180's base-mode Encap for a DH-KEM.
func encap(provider CryptoProvider, kem KemID, pkR *PublicKey) (sharedSecret, enc []byte, err error) {
	ephemeral, err := provider.GenerateKeyPairDH(kem)
	if err != nil {
		return nil, nil, wrapCryptoError(err)
	}
	defer ephemeral.Destroy()

	return encapWithEphemeral(provider, kem, ephemeral, pkR)
}

func encapWithEphemeral(provider CryptoProvider, kem KemID, ephemeral *KeyPair, pkR *PublicKey) (sharedSecret, enc []byte, err error) {
	dh, err := provider.DH(kem, pkR, ephemeral.Private)
	if err != nil {
		return nil, nil, wrapCryptoError(err)
	}
	defer wipe(dh)

	enc = ephemeral.Public.Bytes()
	kemContext := append(append([]byte{}, enc...), pkR.Bytes()...)

	ss, err := extractAndExpand(provider, kem, dh, kemContext)
	if err != nil {
		return nil, nil, err
	}
	return ss, enc, nil
}

// decap implements RFC 9180's base-mode Decap for a DH-KEM.
func decap(provider CryptoProvider, kem KemID, enc []byte, skR *KeyPair) ([]byte, error) {
	pkE, err := provider.ParsePublicKey(kem, enc)
	if err != nil {
		return nil, newError(KindInvalidInput, "KemInvalidPublicKey: "+err.Error())
	}

	dh, err := provider.DH(kem, pkE, skR.Private)
	if err != nil {
		return nil, wrapCryptoError(err)
	}
	defer wipe(dh)

	pkRm := skR.Public.Bytes()
	kemContext := append(append([]byte{}, enc...), pkRm...)

	return extractAndExpand(provider, kem, dh, kemContext)
}

// authEncap implements RFC 9180's AuthEncap for a DH-KEM.
func authEncap(provider CryptoProvider, kem KemID, pkR *PublicKey, skS *KeyPair) (sharedSecret, enc []byte, err error) {
	ephemeral, err := provider.GenerateKeyPairDH(kem)
	if err != nil {
		return nil, nil, wrapCryptoError(err)
	}
	defer ephemeral.Destroy()

	dhE, err := provider.DH(kem, pkR, ephemeral.Private)
	if err != nil {
		return nil, nil, wrapCryptoError(err)
	}
	defer wipe(dhE)
	dhS, err := provider.DH(kem, pkR, skS.Private)
	if err != nil {
		return nil, nil, wrapCryptoError(err)
	}
	defer wipe(dhS)

	dh := append(append([]byte{}, dhE...), dhS...)
	defer wipe(dh)

	enc = ephemeral.Public.Bytes()
	kemContext := append(append([]byte{}, enc...), pkR.Bytes()...)
	kemContext = append(kemContext, skS.Public.Bytes()...)

	ss, err := extractAndExpand(provider, kem, dh, kemContext)
	if err != nil {
		return nil, nil, err
	}
	return ss, enc, nil
}

// authDecap implements RFC 9180's AuthDecap for a DH-KEM.
func authDecap(provider CryptoProvider, kem KemID, enc []byte, skR *KeyPair, pkS *PublicKey) ([]byte, error) {
	pkE, err := provider.ParsePublicKey(kem, enc)
	if err != nil {
		return nil, newError(KindInvalidInput, "KemInvalidPublicKey: "+err.Error())
	}

	dhE, err := provider.DH(kem, pkE, skR.Private)
	if err != nil {
		return nil, wrapCryptoError(err)
	}
	defer wipe(dhE)
	dhS, err := provider.DH(kem, pkS, skR.Private)
	if err != nil {
		return nil, wrapCryptoError(err)
	}
	defer wipe(dhS)

	dh := append(append([]byte{}, dhE...), dhS...)
	defer wipe(dh)

	pkRm := skR.Public.Bytes()
	kemContext := append(append([]byte{}, enc...), pkRm...)
	kemContext = append(kemContext, pkS.Bytes()...)

	return extractAndExpand(provider, kem, dh, kemContext)
}
