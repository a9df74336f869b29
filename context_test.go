// Copyright 2024 The filippo.io/hpke Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package hpke

import (
	"bytes"
	"errors"
	"testing"
)

func testSuite(t *testing.T, aead AeadID) *Suite {
	t.Helper()
	return New(ModeBase, KemDH25519HkdfSha256, KdfHkdfSha256, aead, DefaultProvider())
}

func TestContextSealOpenRoundTrip(t *testing.T) {
	s := testSuite(t, AeadAES128GCM)
	kp, err := s.GenerateKeyPair()
	if err != nil {
		t.Fatalf("GenerateKeyPair: %v", err)
	}

	enc, sctx, err := s.SetupSender(kp.Public, []byte("info"), nil, nil, nil)
	if err != nil {
		t.Fatalf("SetupSender: %v", err)
	}
	defer sctx.Destroy()

	rctx, err := s.SetupReceiver(enc, kp, []byte("info"), nil, nil, nil)
	if err != nil {
		t.Fatalf("SetupReceiver: %v", err)
	}
	defer rctx.Destroy()

	ct, err := sctx.Seal([]byte("aad"), []byte("hello, hpke"))
	if err != nil {
		t.Fatalf("Seal: %v", err)
	}
	pt, err := rctx.Open([]byte("aad"), ct)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if !bytes.Equal(pt, []byte("hello, hpke")) {
		t.Errorf("Open returned %q, want %q", pt, "hello, hpke")
	}
	if sctx.SequenceNumber() != 1 || rctx.SequenceNumber() != 1 {
		t.Errorf("sequence numbers = %d, %d, want 1, 1", sctx.SequenceNumber(), rctx.SequenceNumber())
	}
}

func TestContextOpenFailureDoesNotAdvanceSequence(t *testing.T) {
	s := testSuite(t, AeadAES128GCM)
	kp, _ := s.GenerateKeyPair()
	enc, sctx, _ := s.SetupSender(kp.Public, nil, nil, nil, nil)
	defer sctx.Destroy()
	rctx, _ := s.SetupReceiver(enc, kp, nil, nil, nil, nil)
	defer rctx.Destroy()

	ct, _ := sctx.Seal(nil, []byte("message one"))
	corrupted := append([]byte{}, ct...)
	corrupted[0] ^= 0xFF

	if _, err := rctx.Open(nil, corrupted); !errors.Is(err, ErrOpenError) {
		t.Fatalf("Open(corrupted) error = %v, want ErrOpenError", err)
	}
	if rctx.SequenceNumber() != 0 {
		t.Errorf("SequenceNumber() = %d after a failed Open, want 0", rctx.SequenceNumber())
	}

	// The receiver should still be able to open the original ciphertext,
	// since the failed attempt never advanced the sequence counter.
	pt, err := rctx.Open(nil, ct)
	if err != nil {
		t.Fatalf("Open(original) after a failed Open: %v", err)
	}
	if !bytes.Equal(pt, []byte("message one")) {
		t.Errorf("Open(original) = %q, want %q", pt, "message one")
	}
}

// TestContextOpenCiphertextShorterThanTag is spec.md §8's named boundary:
// a ciphertext shorter than the AEAD's tag can never authenticate, and must
// be rejected as InvalidInput, distinct from a genuine tag mismatch
// (ErrOpenError), even though the underlying AEAD implementations return
// the same generic failure for both.
func TestContextOpenCiphertextShorterThanTag(t *testing.T) {
	s := testSuite(t, AeadAES128GCM)
	kp, _ := s.GenerateKeyPair()
	_, rctx, err := s.SetupSender(kp.Public, nil, nil, nil, nil)
	if err != nil {
		t.Fatalf("SetupSender: %v", err)
	}
	defer rctx.Destroy()

	short := make([]byte, AeadAES128GCM.TagSize()-1)
	if _, err := rctx.Open(nil, short); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("Open(short ciphertext) error = %v, want ErrInvalidInput", err)
	}
}

// TestProviderAeadRejectsWrongNonceLength is spec.md §8's named boundary:
// a nonce whose length doesn't match the AEAD's NonceSize() must fail with
// InvalidInput rather than panicking inside the underlying cipher.
func TestProviderAeadRejectsWrongNonceLength(t *testing.T) {
	p := DefaultProvider()
	key := make([]byte, AeadChaCha20Poly1305.KeySize())
	wrongNonce := make([]byte, AeadChaCha20Poly1305.NonceSize()-1)

	if _, err := p.AeadSeal(AeadChaCha20Poly1305, key, wrongNonce, nil, []byte("pt")); !errors.Is(wrapCryptoError(err), ErrInvalidInput) {
		t.Fatalf("AeadSeal with a short nonce error = %v, want an InvalidInput-classified error", err)
	}
	if _, err := p.AeadOpen(AeadChaCha20Poly1305, key, wrongNonce, nil, []byte("ciphertext-sized-for-a-tag-")); !errors.Is(wrapCryptoError(err), ErrInvalidInput) {
		t.Fatalf("AeadOpen with a short nonce error = %v, want an InvalidInput-classified error", err)
	}
}

// TestContextStringRedactsSecrets guards against a regression to the
// default fmt rendering of Context's unexported []byte fields, which would
// print the AEAD key, base nonce and exporter secret in full.
func TestContextStringRedactsSecrets(t *testing.T) {
	s := testSuite(t, AeadAES128GCM)
	kp, _ := s.GenerateKeyPair()
	_, sctx, err := s.SetupSender(kp.Public, nil, nil, nil, nil)
	if err != nil {
		t.Fatalf("SetupSender: %v", err)
	}
	defer sctx.Destroy()

	const want = "hpke.Context{REDACTED}"
	if got := sctx.String(); got != want {
		t.Errorf("Context.String() = %q, want %q", got, want)
	}
	if got := sctx.GoString(); got != want {
		t.Errorf("Context.GoString() = %q, want %q", got, want)
	}
}

func TestContextMessageLimitReached(t *testing.T) {
	s := testSuite(t, AeadAES128GCM)
	kp, _ := s.GenerateKeyPair()
	_, sctx, _ := s.SetupSender(kp.Public, nil, nil, nil, nil)
	defer sctx.Destroy()

	// The nonce is 12 bytes for AES-128-GCM, so the sequence counter's
	// overflow word (seqHi) must also be saturated to actually reach the
	// limit; setSequenceNumberForTesting only controls the low word, so the
	// high word is set directly here.
	sctx.setSequenceNumberForTesting(sctx.maxSeq[1])
	sctx.seqHi = sctx.maxSeq[0]
	if _, err := sctx.Seal(nil, []byte("one too many")); !errors.Is(err, ErrMessageLimitReached) {
		t.Fatalf("Seal at the sequence limit error = %v, want ErrMessageLimitReached", err)
	}
	if sctx.SequenceNumber() != sctx.maxSeq[1] {
		t.Errorf("SequenceNumber() changed after a MessageLimitReached Seal")
	}
}

func TestContextExportOnlyDisablesSealOpen(t *testing.T) {
	s := testSuite(t, AeadExportOnly)
	kp, _ := s.GenerateKeyPair()
	_, sctx, err := s.SetupSender(kp.Public, nil, nil, nil, nil)
	if err != nil {
		t.Fatalf("SetupSender: %v", err)
	}
	defer sctx.Destroy()

	if _, err := sctx.Seal(nil, []byte("x")); !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("Seal on an export-only context error = %v, want ErrInvalidConfig", err)
	}
	if _, err := sctx.Open(nil, []byte("x")); !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("Open on an export-only context error = %v, want ErrInvalidConfig", err)
	}

	exported, err := sctx.Export([]byte("ctx"), 32)
	if err != nil {
		t.Fatalf("Export: %v", err)
	}
	if len(exported) != 32 {
		t.Errorf("len(Export(32)) = %d, want 32", len(exported))
	}
}

func TestContextExportIsDeterministicAndContextBound(t *testing.T) {
	s := testSuite(t, AeadAES128GCM)
	kp, _ := s.GenerateKeyPair()
	_, sctx, _ := s.SetupSender(kp.Public, nil, nil, nil, nil)
	defer sctx.Destroy()

	a, err := sctx.Export([]byte("context-a"), 16)
	if err != nil {
		t.Fatalf("Export: %v", err)
	}
	b, err := sctx.Export([]byte("context-a"), 16)
	if err != nil {
		t.Fatalf("Export: %v", err)
	}
	if !bytes.Equal(a, b) {
		t.Error("Export is not idempotent for the same exporterContext")
	}

	c, err := sctx.Export([]byte("context-b"), 16)
	if err != nil {
		t.Fatalf("Export: %v", err)
	}
	if bytes.Equal(a, c) {
		t.Error("Export returned the same bytes for two different exporterContext values")
	}
}
