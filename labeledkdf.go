// Copyright 2024 The filippo.io/hpke Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package hpke

import "encoding/binary"

// versionLabel is prepended to every labeled derivation, per RFC 9180 §4.
const versionLabel = "HPKE-v1"

// labeledExtract implements RFC 9180's LabeledExtract:
//
//	labeled_ikm = "HPKE-v1" || suite_id || label || ikm
//	return Extract(salt, labeled_ikm)
func labeledExtract(p CryptoProvider, kdf KdfID, suiteID, salt []byte, label string, ikm []byte) ([]byte, error) {
	labeledIKM := make([]byte, 0, len(versionLabel)+len(suiteID)+len(label)+len(ikm))
	labeledIKM = append(labeledIKM, versionLabel...)
	labeledIKM = append(labeledIKM, suiteID...)
	labeledIKM = append(labeledIKM, label...)
	labeledIKM = append(labeledIKM, ikm...)
	defer wipe(labeledIKM)

	return p.KdfExtract(kdf, salt, labeledIKM)
}

// labeledExpand implements RFC 9180's LabeledExpand:
//
//	labeled_info = I2OSP(L, 2) || "HPKE-v1" || suite_id || label || info
//	return Expand(prk, labeled_info, L)
func labeledExpand(p CryptoProvider, kdf KdfID, suiteID, prk []byte, label string, info []byte, length int) ([]byte, error) {
	labeledInfo := make([]byte, 2, 2+len(versionLabel)+len(suiteID)+len(label)+len(info))
	binary.BigEndian.PutUint16(labeledInfo, uint16(length))
	labeledInfo = append(labeledInfo, versionLabel...)
	labeledInfo = append(labeledInfo, suiteID...)
	labeledInfo = append(labeledInfo, label...)
	labeledInfo = append(labeledInfo, info...)

	return p.KdfExpand(kdf, prk, labeledInfo, length)
}
