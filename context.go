// Copyright 2024 The filippo.io/hpke Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package hpke

import (
	"encoding/binary"

	"filippo.io/hpke/internal/logger"
)

// Context is the stateful sealing/opening object produced by
// [Suite.SetupSender] or [Suite.SetupReceiver]. It advances a monotonic
// sequence number to derive a fresh nonce for each Seal or Open call.
//
// A Context is strictly single-producer: it has no internal locking, and
// concurrent Seal/Open calls on the same Context race on the sequence
// counter. Use one Context per goroutine, or serialize access externally.
type Context struct {
	provider CryptoProvider
	suite    *Suite

	key            []byte
	baseNonce      []byte
	exporterSecret []byte

	seq    uint64
	seqHi  uint64 // overflow bits, for nonces wider than 8 bytes
	seqSet bool
	maxSeq [2]uint64 // (hi, lo) value of 2^(8*Nn) - 1, for comparison

	sealOpenDisabled bool
}

// newContext wires up a Context from already-derived key-schedule material.
// Nk/Nn lengths are validated by the caller (keySchedule).
func newContext(provider CryptoProvider, suite *Suite, key, baseNonce, exporterSecret []byte) *Context {
	c := &Context{
		provider:         provider,
		suite:            suite,
		key:              key,
		baseNonce:        baseNonce,
		exporterSecret:   exporterSecret,
		sealOpenDisabled: suite.Aead == AeadExportOnly,
	}
	c.maxSeq = maxSequence(suite.Aead.NonceSize())
	return c
}

// maxSequence returns 2^(8*nonceLen) - 1 as a (hi, lo) uint64 pair. For
// nonceLen <= 8 the whole value fits in lo and hi is always 0; RFC 9180
// nonces go up to 12 bytes, so hi carries the remaining bits.
func maxSequence(nonceLen int) [2]uint64 {
	if nonceLen >= 16 {
		return [2]uint64{^uint64(0), ^uint64(0)}
	}
	bits := uint(8 * nonceLen)
	if bits <= 64 {
		if bits == 64 {
			return [2]uint64{0, ^uint64(0)}
		}
		return [2]uint64{0, (uint64(1) << bits) - 1}
	}
	hiBits := bits - 64
	return [2]uint64{(uint64(1) << hiBits) - 1, ^uint64(0)}
}

// sequenceAtLimit reports whether the next seal/open would exceed the
// message limit, without mutating or overflowing the counter.
func (c *Context) sequenceAtLimit() bool {
	if c.seqHi > c.maxSeq[0] {
		return true
	}
	if c.seqHi == c.maxSeq[0] && c.seq >= c.maxSeq[1] {
		return true
	}
	return false
}

func (c *Context) incrementSequence() {
	c.seq++
	if c.seq == 0 {
		c.seqHi++
	}
}

// computeNonce returns base_nonce XOR (0^(Nn-8) || BE64(seq)), widened to
// include the overflow word when Nn > 8 bytes, as it is for every AEAD this
// package supports (Nn = 12). Nonces up to 16 bytes are handled.
func (c *Context) computeNonce() []byte {
	nn := c.suite.Aead.NonceSize()
	nonce := make([]byte, nn)
	copy(nonce, c.baseNonce)

	var seqBytes [16]byte
	binary.BigEndian.PutUint64(seqBytes[0:8], c.seqHi)
	binary.BigEndian.PutUint64(seqBytes[8:16], c.seq)
	ctr := seqBytes[16-nn:]
	for i := range nonce {
		nonce[i] ^= ctr[i]
	}
	return nonce
}

// SequenceNumber returns the number of successful Seal/Open calls so far.
// It is exposed primarily for tests that need to force the context near its
// message limit.
func (c *Context) SequenceNumber() uint64 {
	return c.seq
}

// setSequenceNumberForTesting forces the low 64 bits of the sequence
// counter. It exists so tests can exercise the MessageLimitReached edge
// case without performing 2^96 seals.
func (c *Context) setSequenceNumberForTesting(seq uint64) {
	c.seq = seq
}

// Seal encrypts pt with aad as associated data, using the nonce derived
// from the current sequence number, then increments the sequence number.
// If the sequence number is already saturated, Seal returns
// ErrMessageLimitReached without invoking the AEAD, and the sequence is left
// unchanged.
func (c *Context) Seal(aad, pt []byte) ([]byte, error) {
	if c.sealOpenDisabled {
		return nil, newError(KindInvalidConfig, "seal is not available in export-only mode")
	}
	if c.sequenceAtLimit() {
		return nil, ErrMessageLimitReached
	}
	nonce := c.computeNonce()
	logger.Global.Tracef("Seal: seq=%d nonce=%x key=%x", c.seq, nonce, c.key)
	ct, err := c.provider.AeadSeal(c.suite.Aead, c.key, nonce, aad, pt)
	if err != nil {
		return nil, wrapCryptoError(err)
	}
	c.incrementSequence()
	return ct, nil
}

// Open decrypts ct with aad as associated data, using the nonce derived
// from the current sequence number, then increments the sequence number.
// If authentication fails, Open returns ErrOpenError and the sequence
// number is left unchanged, so the caller may retry with corrected inputs.
// If the sequence number is already saturated, Open returns
// ErrMessageLimitReached without invoking the AEAD.
func (c *Context) Open(aad, ct []byte) ([]byte, error) {
	if c.sealOpenDisabled {
		return nil, newError(KindInvalidConfig, "open is not available in export-only mode")
	}
	if c.sequenceAtLimit() {
		return nil, ErrMessageLimitReached
	}
	// A ciphertext shorter than the tag can never authenticate; reject it as
	// InvalidInput rather than handing it to the AEAD, whose Open returns
	// the same generic failure for this case as it does for a genuine tag
	// mismatch.
	if len(ct) < c.suite.Aead.TagSize() {
		return nil, ErrInvalidInput
	}
	pt, err := c.provider.AeadOpen(c.suite.Aead, c.key, c.computeNonce(), aad, ct)
	if err != nil {
		return nil, ErrOpenError
	}
	c.incrementSequence()
	return pt, nil
}

// Export derives L bytes of secondary keying material from the exporter
// secret established by the key schedule, bound to exporterContext. Export
// is idempotent and does not touch the sequence number.
func (c *Context) Export(exporterContext []byte, length int) ([]byte, error) {
	exported, err := labeledExpand(c.provider, c.suite.Kdf, c.suite.suiteID(), c.exporterSecret,
		"sec", exporterContext, length)
	if err != nil {
		return nil, wrapCryptoError(err)
	}
	return exported, nil
}

// Destroy zeros the context's secret buffers: the AEAD key, base nonce and
// exporter secret. The Context must not be used afterwards.
func (c *Context) Destroy() {
	wipe(c.key)
	wipe(c.baseNonce)
	wipe(c.exporterSecret)
}

// String never reveals key material, matching [PrivateKey.String].
func (c *Context) String() string {
	return "hpke.Context{REDACTED}"
}

// GoString never reveals key material, so that %#v on a Context or a value
// embedding one does not leak the AEAD key, base nonce or exporter secret.
func (c *Context) GoString() string {
	return "hpke.Context{REDACTED}"
}
