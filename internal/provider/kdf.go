// Copyright 2024 The filippo.io/hpke Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package provider

import (
	"crypto/sha256"
	"crypto/sha512"
	"fmt"
	"hash"
	"io"

	"golang.org/x/crypto/hkdf"

	hpke "filippo.io/hpke/internal/hpkeproto"
)

func hashForKdf(kdf hpke.KdfID) func() hash.Hash {
	switch kdf {
	case hpke.KdfHkdfSha256:
		return sha256.New
	case hpke.KdfHkdfSha384:
		return sha512.New384
	case hpke.KdfHkdfSha512:
		return sha512.New
	default:
		return nil
	}
}

func (d *Default) KdfExtract(kdf hpke.KdfID, salt, ikm []byte) ([]byte, error) {
	h := hashForKdf(kdf)
	if h == nil {
		return nil, fmt.Errorf("provider: unsupported kdf %#04x", uint16(kdf))
	}
	return hkdf.Extract(h, ikm, salt), nil
}

func (d *Default) KdfExpand(kdf hpke.KdfID, prk, info []byte, length int) ([]byte, error) {
	h := hashForKdf(kdf)
	if h == nil {
		return nil, fmt.Errorf("provider: unsupported kdf %#04x", uint16(kdf))
	}
	out := make([]byte, length)
	if _, err := io.ReadFull(hkdf.Expand(h, prk, info), out); err != nil {
		return nil, err
	}
	return out, nil
}

func (d *Default) KdfDigestLength(kdf hpke.KdfID) int {
	return kdf.DigestSize()
}
