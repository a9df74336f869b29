// Copyright 2024 The filippo.io/hpke Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package hpke

// minPskLength is the RFC 9180 recommendation that a PSK carry at least 32
// bytes of entropy. Length is only a proxy for entropy, but it is the one
// check this package can make without an entropy estimator; see the Open
// Questions in the design notes for the tradeoff.
const minPskLength = 32

// verifyPSKInputs checks (psk, psk_id) against the mode before any KDF work
// happens, per RFC 9180 §5.1.
func verifyPSKInputs(mode Mode, psk, pskID []byte) error {
	gotPSK := len(psk) > 0
	gotPSKID := len(pskID) > 0

	if gotPSK != gotPSKID {
		return ErrInconsistentPsk
	}

	switch mode {
	case ModeBase, ModeAuth:
		if gotPSK {
			return ErrUnnecessaryPsk
		}
	case ModePsk, ModeAuthPsk:
		if !gotPSK {
			return ErrMissingPsk
		}
		if len(psk) < minPskLength {
			return ErrInsecurePsk
		}
	}
	return nil
}

// keyScheduleInputs bundles the contextual values that feed the key
// schedule, beyond the shared secret and the fixed (mode, kem, kdf, aead).
type keyScheduleInputs struct {
	info  []byte
	psk   []byte
	pskID []byte
}

// keySchedule derives a Context from a KEM shared secret and the contextual
// inputs, per RFC 9180 §5.1:
//
//	psk_id_hash = LabeledExtract("", suite_id, "psk_id_hash", psk_id)
//	info_hash   = LabeledExtract("", suite_id, "info_hash", info)
//	ks_context  = mode || psk_id_hash || info_hash
//	secret      = LabeledExtract(shared_secret, suite_id, "secret", psk)
//	key         = LabeledExpand(secret, suite_id, "key", ks_context, Nk)
//	base_nonce  = LabeledExpand(secret, suite_id, "base_nonce", ks_context, Nn)
//	exporter_secret = LabeledExpand(secret, suite_id, "exp", ks_context, Nh)
func keySchedule(provider CryptoProvider, suite *Suite, mode Mode, sharedSecret []byte, in keyScheduleInputs) (*Context, error) {
	if err := verifyPSKInputs(mode, in.psk, in.pskID); err != nil {
		return nil, err
	}

	suiteID := suite.suiteID()
	kdf := suite.Kdf

	pskIDHash, err := labeledExtract(provider, kdf, suiteID, nil, "psk_id_hash", in.pskID)
	if err != nil {
		return nil, wrapCryptoError(err)
	}
	infoHash, err := labeledExtract(provider, kdf, suiteID, nil, "info_hash", in.info)
	if err != nil {
		return nil, wrapCryptoError(err)
	}

	ksContext := make([]byte, 0, 1+len(pskIDHash)+len(infoHash))
	ksContext = append(ksContext, byte(mode))
	ksContext = append(ksContext, pskIDHash...)
	ksContext = append(ksContext, infoHash...)

	secret, err := labeledExtract(provider, kdf, suiteID, sharedSecret, "secret", in.psk)
	if err != nil {
		return nil, wrapCryptoError(err)
	}
	defer wipe(secret)

	var key, baseNonce []byte
	if suite.Aead != AeadExportOnly {
		key, err = labeledExpand(provider, kdf, suiteID, secret, "key", ksContext, suite.Aead.KeySize())
		if err != nil {
			return nil, wrapCryptoError(err)
		}
		baseNonce, err = labeledExpand(provider, kdf, suiteID, secret, "base_nonce", ksContext, suite.Aead.NonceSize())
		if err != nil {
			wipe(key)
			return nil, wrapCryptoError(err)
		}
	}

	exporterSecret, err := labeledExpand(provider, kdf, suiteID, secret, "exp", ksContext, kdf.DigestSize())
	if err != nil {
		wipe(key)
		wipe(baseNonce)
		return nil, wrapCryptoError(err)
	}

	return newContext(provider, suite, key, baseNonce, exporterSecret), nil
}
