// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The Arbormail Authors

package crypto

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"fmt"
	"io"

	"golang.org/x/crypto/argon2"
)

// Argon2id parameters recommended by OWASP (2024):
//   - time cost:   1 iteration
//   - memory cost: 64 MiB
//   - parallelism: 4 threads
//   - key length:  32 bytes (256 bits)
const (
	argonTime    uint32 = 1
	argonMemory  uint32 = 64 * 1024
	argonThreads uint8  = 4
	argonKeyLen  uint32 = 32

	saltSize = 16
)

// keychain is the private implementation of [Keychain].
type keychain struct {
	// Argon2id tuning parameters. Stored in the struct so they can be
	// adjusted per deployment target.
	argonTime    uint32
	argonMemory  uint32
	argonThreads uint8
	argonKeyLen  uint32
}

// NewKeychain constructs a [Keychain] with the default Argon2id parameters.
func NewKeychain() Keychain {
	return &keychain{
		argonTime:    argonTime,
		argonMemory:  argonMemory,
		argonThreads: argonThreads,
		argonKeyLen:  argonKeyLen,
	}
}

// Seal implements [Keychain]. It reads a fresh salt and nonce from the OS
// CSPRNG, derives the key, and returns salt ‖ nonce ‖ ciphertext. Returns an
// error if a random read or cipher construction fails.
func (k *keychain) Seal(plaintext []byte, passphrase string) ([]byte, error) {
	salt := make([]byte, saltSize)
	if _, err := io.ReadFull(rand.Reader, salt); err != nil {
		return nil, fmt.Errorf("generate salt: %w", err)
	}

	gcm, err := k.cipherFor(passphrase, salt)
	if err != nil {
		return nil, err
	}

	nonce := make([]byte, gcm.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return nil, fmt.Errorf("generate nonce: %w", err)
	}

	// Prepend salt and nonce so Open can split them out again.
	blob := make([]byte, 0, saltSize+len(nonce)+len(plaintext)+gcm.Overhead())
	blob = append(blob, salt...)
	blob = append(blob, nonce...)
	return gcm.Seal(blob, nonce, plaintext, nil), nil
}

// Open implements [Keychain]. It unwraps a blob produced by [keychain.Seal].
// The blob must carry at least the salt and the GCM nonce. Returns the
// plaintext, or an error if the blob is too short, the passphrase is wrong,
// or the ciphertext is corrupted (authentication-tag mismatch).
func (k *keychain) Open(blob []byte, passphrase string) ([]byte, error) {
	if len(blob) < saltSize {
		return nil, fmt.Errorf("sealed blob too short")
	}
	salt, rest := blob[:saltSize], blob[saltSize:]

	gcm, err := k.cipherFor(passphrase, salt)
	if err != nil {
		return nil, err
	}

	nonceSize := gcm.NonceSize()
	if len(rest) < nonceSize {
		return nil, fmt.Errorf("sealed blob too short")
	}
	nonce, ciphertext := rest[:nonceSize], rest[nonceSize:]

	// An error here almost always means a wrong passphrase, producing a
	// wrong key.
	plaintext, err := gcm.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return nil, fmt.Errorf("open sealed blob: %w", err)
	}

	return plaintext, nil
}

// cipherFor derives the AES-256-GCM AEAD for the given passphrase and salt.
func (k *keychain) cipherFor(passphrase string, salt []byte) (cipher.AEAD, error) {
	key := argon2.IDKey(
		[]byte(passphrase),
		salt,
		k.argonTime,
		k.argonMemory,
		k.argonThreads,
		k.argonKeyLen,
	)

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("create cipher: %w", err)
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("create gcm: %w", err)
	}

	return gcm, nil
}
