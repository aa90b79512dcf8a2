// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The Arbormail Authors

package utils

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

const keyAlphabet = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// GenerateKey returns a random alphanumeric string of the given length,
// suitable for signing secrets. Randomness comes from crypto/rand.
func GenerateKey(length int) (string, error) {
	if length <= 0 {
		return "", fmt.Errorf("invalid key length: %d", length)
	}

	alphabetSize := big.NewInt(int64(len(keyAlphabet)))
	key := make([]byte, length)
	for i := range key {
		n, err := rand.Int(rand.Reader, alphabetSize)
		if err != nil {
			return "", fmt.Errorf("error generating random key: %w", err)
		}
		key[i] = keyAlphabet[n.Int64()]
	}

	return string(key), nil
}
