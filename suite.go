// Copyright 2024 The filippo.io/hpke Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package hpke

import (
	"encoding/binary"

	"filippo.io/hpke/internal/logger"
)

// Suite binds a (mode, KEM, KDF, AEAD) combination to a [CryptoProvider] and
// drives setup, single-shot encryption, and key generation.
//
// Cloning a Suite (with [Suite.Clone]) yields a Suite with an independently
// seeded PRNG, not a copy of the current PRNG state: two "identical" clones
// must never produce the same ephemeral keys.
type Suite struct {
	Mode Mode
	Kem  KemID
	Kdf  KdfID
	Aead AeadID

	provider CryptoProvider
}

// New returns a Suite for the given algorithm combination, driven by
// provider. It does not validate the combination; call [Suite.IsValid] or
// just attempt setup, which validates before doing any work.
func New(mode Mode, kem KemID, kdf KdfID, aead AeadID, provider CryptoProvider) *Suite {
	return &Suite{Mode: mode, Kem: kem, Kdf: kdf, Aead: aead, provider: provider}
}

// IsValid reports whether the suite's algorithm identifiers are all known
// and mutually compatible (in particular, that Auth/AuthPsk is not paired
// with a non-DH KEM).
func (s *Suite) IsValid() bool {
	if !s.Mode.IsValid() || !s.Kem.IsValid() || !s.Kdf.IsValid() || !s.Aead.IsValid() {
		return false
	}
	if s.Mode.UsesAuth() && !s.Kem.IsDH() {
		return false
	}
	return true
}

// suiteID returns the HPKE ciphersuite identifier:
// "HPKE" || I2OSP(kem,2) || I2OSP(kdf,2) || I2OSP(aead,2).
func (s *Suite) suiteID() []byte {
	id := make([]byte, 0, 10)
	id = append(id, "HPKE"...)
	id = binary.BigEndian.AppendUint16(id, uint16(s.Kem))
	id = binary.BigEndian.AppendUint16(id, uint16(s.Kdf))
	id = binary.BigEndian.AppendUint16(id, uint16(s.Aead))
	return id
}

// Clone returns a new Suite with the same algorithm selection but an
// independently seeded PRNG, obtained by asking the provider for a fresh
// one. If provider does not support cloning its randomness source
// separately, Clone reuses the same provider value, which is safe as long
// as the provider itself serializes PRNG draws (see [CryptoProvider]).
func (s *Suite) Clone() *Suite {
	provider := s.provider
	if cloner, ok := provider.(interface{ CloneWithFreshPrng() CryptoProvider }); ok {
		provider = cloner.CloneWithFreshPrng()
	}
	return &Suite{Mode: s.Mode, Kem: s.Kem, Kdf: s.Kdf, Aead: s.Aead, provider: provider}
}

func (s *Suite) validateModeKem() error {
	if !s.Mode.IsValid() {
		return ErrUnknownMode
	}
	if !s.provider.SupportsKem(s.Kem) {
		return newError(KindUnknownAlgorithm, "unsupported kem")
	}
	if !s.provider.SupportsKdf(s.Kdf) {
		return newError(KindUnknownAlgorithm, "unsupported kdf")
	}
	if !s.provider.SupportsAead(s.Aead) {
		return newError(KindUnknownAlgorithm, "unsupported aead")
	}
	if s.Mode.UsesAuth() && !s.Kem.IsDH() {
		return newError(KindInvalidConfig, "authenticated modes require a DH-KEM")
	}
	return nil
}

// GenerateKeyPair returns a fresh, randomly generated key pair for the
// suite's KEM.
func (s *Suite) GenerateKeyPair() (*KeyPair, error) {
	if s.Kem.IsDH() {
		kp, err := s.provider.GenerateKeyPairDH(s.Kem)
		if err != nil {
			return nil, wrapCryptoError(err)
		}
		return kp, nil
	}
	kp, err := s.provider.KemKeyGen(s.Kem)
	if err != nil {
		return nil, wrapCryptoError(err)
	}
	return kp, nil
}

// DeriveKeyPair deterministically derives a key pair from ikm. Given the
// same ikm it always returns the same key pair.
func (s *Suite) DeriveKeyPair(ikm []byte) (*KeyPair, error) {
	if s.Kem.IsDH() {
		return deriveKeyPair(s.provider, s.Kem, ikm)
	}
	kp, err := s.provider.KemKeyGenDerand(s.Kem, ikm)
	if err != nil {
		return nil, wrapCryptoError(err)
	}
	return kp, nil
}

// SetupSender runs the sender side of HPKE setup: it encapsulates a shared
// secret to pkR and runs the key schedule against (info, psk, pskID). skS is
// required (and only used) in the Auth and AuthPsk modes. It returns the
// encapsulated key enc, to be sent to the receiver, and the resulting
// Context.
func (s *Suite) SetupSender(pkR *PublicKey, info []byte, psk, pskID []byte, skS *KeyPair) (enc []byte, ctx *Context, err error) {
	logger.Global.Tracef("SetupSender: mode=%s kem=%#04x kdf=%#04x aead=%#04x", s.Mode, uint16(s.Kem), uint16(s.Kdf), uint16(s.Aead))
	if err := s.validateModeKem(); err != nil {
		return nil, nil, err
	}

	var sharedSecret []byte
	switch {
	case s.Mode.UsesAuth():
		if skS == nil {
			return nil, nil, newError(KindInvalidInput, "auth modes require a sender private key")
		}
		if s.Kem.IsDH() {
			sharedSecret, enc, err = authEncap(s.provider, s.Kem, pkR, skS)
		} else {
			return nil, nil, newError(KindInvalidConfig, "auth modes are not supported for non-DH KEMs")
		}
	default:
		if s.Kem.IsDH() {
			sharedSecret, enc, err = encap(s.provider, s.Kem, pkR)
		} else {
			sharedSecret, enc, err = s.provider.KemEncaps(s.Kem, pkR)
			if err != nil {
				return nil, nil, wrapCryptoError(err)
			}
		}
	}
	if err != nil {
		return nil, nil, err
	}
	defer wipe(sharedSecret)

	ctx, err = keySchedule(s.provider, s, s.Mode, sharedSecret, keyScheduleInputs{info: info, psk: psk, pskID: pskID})
	if err != nil {
		return nil, nil, err
	}
	return enc, ctx, nil
}

// SetupReceiver runs the receiver side of HPKE setup: it decapsulates the
// shared secret from enc using skR, and runs the key schedule against
// (info, psk, pskID). pkS is required (and only used) in the Auth and
// AuthPsk modes.
func (s *Suite) SetupReceiver(enc []byte, skR *KeyPair, info []byte, psk, pskID []byte, pkS *PublicKey) (*Context, error) {
	logger.Global.Tracef("SetupReceiver: mode=%s kem=%#04x kdf=%#04x aead=%#04x", s.Mode, uint16(s.Kem), uint16(s.Kdf), uint16(s.Aead))
	if err := s.validateModeKem(); err != nil {
		return nil, err
	}

	var sharedSecret []byte
	var err error
	switch {
	case s.Mode.UsesAuth():
		if pkS == nil {
			return nil, newError(KindInvalidInput, "auth modes require a sender public key")
		}
		if s.Kem.IsDH() {
			sharedSecret, err = authDecap(s.provider, s.Kem, enc, skR, pkS)
		} else {
			return nil, newError(KindInvalidConfig, "auth modes are not supported for non-DH KEMs")
		}
	default:
		if s.Kem.IsDH() {
			sharedSecret, err = decap(s.provider, s.Kem, enc, skR)
		} else {
			sharedSecret, err = s.provider.KemDecaps(s.Kem, enc, skR.Private)
			if err != nil {
				return nil, wrapCryptoError(err)
			}
		}
	}
	if err != nil {
		return nil, err
	}
	defer wipe(sharedSecret)

	return keySchedule(s.provider, s, s.Mode, sharedSecret, keyScheduleInputs{info: info, psk: psk, pskID: pskID})
}

// Seal is a single-shot wrapper: it runs SetupSender and then Seal on the
// resulting context, returning both the encapsulated key and the
// ciphertext.
func (s *Suite) Seal(pkR *PublicKey, info, psk, pskID []byte, skS *KeyPair, aad, pt []byte) (enc, ct []byte, err error) {
	enc, ctx, err := s.SetupSender(pkR, info, psk, pskID, skS)
	if err != nil {
		return nil, nil, err
	}
	defer ctx.Destroy()
	ct, err = ctx.Seal(aad, pt)
	if err != nil {
		return nil, nil, err
	}
	return enc, ct, nil
}

// Open is a single-shot wrapper: it runs SetupReceiver and then Open on the
// resulting context.
func (s *Suite) Open(enc []byte, skR *KeyPair, info, psk, pskID []byte, pkS *PublicKey, aad, ct []byte) ([]byte, error) {
	ctx, err := s.SetupReceiver(enc, skR, info, psk, pskID, pkS)
	if err != nil {
		return nil, err
	}
	defer ctx.Destroy()
	return ctx.Open(aad, ct)
}

// SendExport is a single-shot wrapper around SetupSender followed by
// Context.Export.
func (s *Suite) SendExport(pkR *PublicKey, info, psk, pskID []byte, skS *KeyPair, exporterContext []byte, length int) (enc, exported []byte, err error) {
	enc, ctx, err := s.SetupSender(pkR, info, psk, pskID, skS)
	if err != nil {
		return nil, nil, err
	}
	defer ctx.Destroy()
	exported, err = ctx.Export(exporterContext, length)
	if err != nil {
		return nil, nil, err
	}
	return enc, exported, nil
}

// ReceiverExport is a single-shot wrapper around SetupReceiver followed by
// Context.Export.
func (s *Suite) ReceiverExport(enc []byte, skR *KeyPair, info, psk, pskID []byte, pkS *PublicKey, exporterContext []byte, length int) ([]byte, error) {
	ctx, err := s.SetupReceiver(enc, skR, info, psk, pskID, pkS)
	if err != nil {
		return nil, err
	}
	defer ctx.Destroy()
	return ctx.Export(exporterContext, length)
}
