// Copyright 2024 The filippo.io/hpke Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package provider

import (
	"encoding"
	"fmt"

	"github.com/cloudflare/circl/kem"
	"github.com/cloudflare/circl/kem/xwing"

	hpke "filippo.io/hpke/internal/hpkeproto"
)

// X-Wing is the only encapsulation-native KEM this provider supports; it
// combines X25519 and ML-KEM-768 and does not expose a raw DH primitive, so
// it is wired through circl's generic kem.Scheme rather than through
// dhCurve.
func xwingScheme(id hpke.KemID) (kem.Scheme, error) {
	if id != hpke.KemXWingDraft06 {
		return nil, fmt.Errorf("provider: %#04x is not a supported encapsulation-native kem", uint16(id))
	}
	return xwing.Scheme(), nil
}

func (d *Default) KemKeyGen(id hpke.KemID) (*hpke.KeyPair, error) {
	scheme, err := xwingScheme(id)
	if err != nil {
		return nil, err
	}
	pk, sk, err := scheme.GenerateKeyPair()
	if err != nil {
		return nil, err
	}
	return packXWingKeyPair(id, pk, sk)
}

func (d *Default) KemKeyGenDerand(id hpke.KemID, seed []byte) (*hpke.KeyPair, error) {
	scheme, err := xwingScheme(id)
	if err != nil {
		return nil, err
	}
	pk, sk := scheme.DeriveKeyPair(seed)
	return packXWingKeyPair(id, pk, sk)
}

func (d *Default) KemEncaps(id hpke.KemID, pk *hpke.PublicKey) (sharedSecret, enc []byte, err error) {
	scheme, err := xwingScheme(id)
	if err != nil {
		return nil, nil, err
	}
	schemePk, err := scheme.UnmarshalBinaryPublicKey(pk.Bytes())
	if err != nil {
		return nil, nil, err
	}
	ct, ss, err := scheme.Encapsulate(schemePk)
	if err != nil {
		return nil, nil, err
	}
	return ss, ct, nil
}

func (d *Default) KemDecaps(id hpke.KemID, enc []byte, sk *hpke.PrivateKey) ([]byte, error) {
	scheme, err := xwingScheme(id)
	if err != nil {
		return nil, err
	}
	schemeSk, err := scheme.UnmarshalBinaryPrivateKey(sk.Bytes())
	if err != nil {
		return nil, err
	}
	return scheme.Decapsulate(schemeSk, enc)
}

func packXWingKeyPair(id hpke.KemID, pk kem.PublicKey, sk kem.PrivateKey) (*hpke.KeyPair, error) {
	pkBytes, err := pk.(encoding.BinaryMarshaler).MarshalBinary()
	if err != nil {
		return nil, err
	}
	skBytes, err := sk.(encoding.BinaryMarshaler).MarshalBinary()
	if err != nil {
		return nil, err
	}
	ppk, err := hpke.NewPublicKey(id, pkBytes)
	if err != nil {
		return nil, err
	}
	psk, err := hpke.NewPrivateKey(id, skBytes)
	if err != nil {
		return nil, err
	}
	return &hpke.KeyPair{Private: psk, Public: ppk}, nil
}
