// Copyright 2024 The filippo.io/hpke Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package provider

import (
	"crypto/rand"
	"encoding/binary"

	hpke "filippo.io/hpke/internal/hpkeproto"
)

// systemPrng is the production hpke.Prng, reading from crypto/rand on every
// draw. It never runs dry, unlike internal/testprng's seeded pool.
type systemPrng struct{}

func newSystemPrng() hpke.Prng { return systemPrng{} }

func (systemPrng) NextUint32() (uint32, error) {
	var b [4]byte
	if _, err := rand.Read(b[:]); err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint32(b[:]), nil
}

func (systemPrng) NextUint64() (uint64, error) {
	var b [8]byte
	if _, err := rand.Read(b[:]); err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint64(b[:]), nil
}

func (systemPrng) FillBytes(dst []byte) error {
	_, err := rand.Read(dst)
	return err
}

// prngReader adapts an hpke.Prng to io.Reader, for APIs like
// crypto/ecdh.Curve.GenerateKey that want a Reader rather than a FillBytes
// method.
type prngReader struct{ p hpke.Prng }

func (r prngReader) Read(b []byte) (int, error) {
	if err := r.p.FillBytes(b); err != nil {
		return 0, err
	}
	return len(b), nil
}
