// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The Arbormail Authors

package utils

import (
	"strings"
	"testing"
)

func TestGenerateKey_Length(t *testing.T) {
	for _, length := range []int{1, 16, 64} {
		key, err := GenerateKey(length)
		if err != nil {
			t.Fatalf("expected no error for length %d, got: %v", length, err)
		}
		if len(key) != length {
			t.Errorf("expected key of length %d, got %d", length, len(key))
		}
	}
}

func TestGenerateKey_Alphabet(t *testing.T) {
	key, err := GenerateKey(256)
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}

	for _, r := range key {
		if !strings.ContainsRune(keyAlphabet, r) {
			t.Fatalf("key contains character %q outside the alphabet", r)
		}
	}
}

func TestGenerateKey_Unique(t *testing.T) {
	first, err := GenerateKey(64)
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	second, err := GenerateKey(64)
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}

	if first == second {
		t.Error("expected two generated keys to differ")
	}
}

func TestGenerateKey_InvalidLength(t *testing.T) {
	for _, length := range []int{0, -1} {
		if _, err := GenerateKey(length); err == nil {
			t.Errorf("expected error for length %d, got nil", length)
		}
	}
}
