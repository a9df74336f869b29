// Copyright 2024 The filippo.io/hpke Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package hpke

import "filippo.io/hpke/internal/hpkeproto"

// KemID identifies a KEM algorithm by its IANA registry code point.
type KemID = hpkeproto.KemID

//nolint:stylecheck
const (
	KemDHP256HkdfSha256  = hpkeproto.KemDHP256HkdfSha256
	KemDHP384HkdfSha384  = hpkeproto.KemDHP384HkdfSha384
	KemDHP521HkdfSha512  = hpkeproto.KemDHP521HkdfSha512
	KemDHK256HkdfSha256  = hpkeproto.KemDHK256HkdfSha256
	KemDH25519HkdfSha256 = hpkeproto.KemDH25519HkdfSha256
	KemDH448HkdfSha512   = hpkeproto.KemDH448HkdfSha512
	KemXWingDraft06      = hpkeproto.KemXWingDraft06
)

// KdfID identifies a KDF algorithm by its IANA registry code point.
type KdfID = hpkeproto.KdfID

//nolint:stylecheck
const (
	KdfHkdfSha256 = hpkeproto.KdfHkdfSha256
	KdfHkdfSha384 = hpkeproto.KdfHkdfSha384
	KdfHkdfSha512 = hpkeproto.KdfHkdfSha512
)

// AeadID identifies an AEAD algorithm by its IANA registry code point.
type AeadID = hpkeproto.AeadID

//nolint:stylecheck
const (
	AeadAES128GCM        = hpkeproto.AeadAES128GCM
	AeadAES256GCM        = hpkeproto.AeadAES256GCM
	AeadChaCha20Poly1305 = hpkeproto.AeadChaCha20Poly1305
	// AeadExportOnly is a sentinel meaning the context only supports Export;
	// Seal and Open always fail with InvalidConfig.
	AeadExportOnly = hpkeproto.AeadExportOnly
)

// Mode selects which of {psk, sk_s} contribute to the key schedule and KEM.
type Mode = hpkeproto.Mode

const (
	ModeBase    = hpkeproto.ModeBase
	ModePsk     = hpkeproto.ModePsk
	ModeAuth    = hpkeproto.ModeAuth
	ModeAuthPsk = hpkeproto.ModeAuthPsk
)
