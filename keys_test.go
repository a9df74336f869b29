// Copyright 2024 The filippo.io/hpke Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package hpke

import (
	"bytes"
	"testing"
)

func TestNewPrivateKeyRejectsWrongLength(t *testing.T) {
	_, err := NewPrivateKey(KemDH25519HkdfSha256, make([]byte, 31))
	if err == nil {
		t.Fatal("NewPrivateKey with a 31-byte key for X25519 succeeded, want error")
	}
}

func TestNewPrivateKeyAcceptsCorrectLength(t *testing.T) {
	raw := bytes.Repeat([]byte{0x42}, 32)
	sk, err := NewPrivateKey(KemDH25519HkdfSha256, raw)
	if err != nil {
		t.Fatalf("NewPrivateKey: %v", err)
	}
	if sk.KEM() != KemDH25519HkdfSha256 {
		t.Errorf("sk.KEM() = %#04x, want KemDH25519HkdfSha256", uint16(sk.KEM()))
	}
	if !bytes.Equal(sk.Bytes(), bytes.Repeat([]byte{0x42}, 32)) {
		t.Error("sk.Bytes() does not round-trip the original bytes")
	}
}

func TestPrivateKeyEqualIsConstantTimeAndCorrect(t *testing.T) {
	a, _ := NewPrivateKey(KemDH25519HkdfSha256, bytes.Repeat([]byte{1}, 32))
	b, _ := NewPrivateKey(KemDH25519HkdfSha256, bytes.Repeat([]byte{1}, 32))
	c, _ := NewPrivateKey(KemDH25519HkdfSha256, bytes.Repeat([]byte{2}, 32))

	if !a.Equal(b) {
		t.Error("a.Equal(b) = false for identical keys")
	}
	if a.Equal(c) {
		t.Error("a.Equal(c) = true for different keys")
	}
	if a.Equal(nil) {
		t.Error("a.Equal(nil) = true, want false")
	}

	other, _ := NewPrivateKey(KemDH448HkdfSha512, bytes.Repeat([]byte{1}, 56))
	if a.Equal(other) {
		t.Error("a.Equal(other) = true for a different KEM, want false")
	}
}

func TestPrivateKeyDestroyZeroes(t *testing.T) {
	sk, _ := NewPrivateKey(KemDH25519HkdfSha256, bytes.Repeat([]byte{0xFF}, 32))
	sk.Destroy()
	if !bytes.Equal(sk.Bytes(), make([]byte, 32)) {
		t.Error("sk.Bytes() is not all-zero after Destroy")
	}
	// Destroy must be idempotent.
	sk.Destroy()
}

func TestPrivateKeyStringNeverLeaks(t *testing.T) {
	sk, _ := NewPrivateKey(KemDH25519HkdfSha256, bytes.Repeat([]byte{0xAB}, 32))
	if got := sk.String(); bytes.Contains([]byte(got), []byte{0xAB}) {
		t.Errorf("sk.String() = %q leaks key material", got)
	}
}

func TestPublicKeyBytesCopiesInput(t *testing.T) {
	raw := []byte{1, 2, 3, 4}
	pk, err := NewPublicKey(KemDH25519HkdfSha256, raw)
	if err != nil {
		t.Fatalf("NewPublicKey: %v", err)
	}
	raw[0] = 0xFF
	if pk.Bytes()[0] == 0xFF {
		t.Error("NewPublicKey aliased the caller's slice instead of copying it")
	}
}

func TestKeyPairDestroyOnlyZeroesPrivate(t *testing.T) {
	sk, _ := NewPrivateKey(KemDH25519HkdfSha256, bytes.Repeat([]byte{0x11}, 32))
	pk, _ := NewPublicKey(KemDH25519HkdfSha256, bytes.Repeat([]byte{0x22}, 32))
	kp := &KeyPair{Private: sk, Public: pk}
	kp.Destroy()
	if !bytes.Equal(sk.Bytes(), make([]byte, 32)) {
		t.Error("KeyPair.Destroy did not zero the private key")
	}
	if !bytes.Equal(pk.Bytes(), bytes.Repeat([]byte{0x22}, 32)) {
		t.Error("KeyPair.Destroy modified the public key")
	}
}
