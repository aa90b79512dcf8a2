package crypto

//go:generate mockgen -source=interfaces.go -destination=../mock/keychain_mock.go -package=mock

// Keychain seals and opens exported configuration documents under a
// passphrase-derived key. It knows nothing about the store or the transport;
// its only job is deriving keys and applying them.
//
// Scheme:
//
//	key  = Argon2id(passphrase, salt)
//	blob = salt ‖ nonce ‖ AES-256-GCM(key, nonce, plaintext)
type Keychain interface {
	// Seal encrypts plaintext under a key derived from passphrase. The
	// returned blob is self-contained: the random salt and nonce travel in
	// front of the ciphertext, so the passphrase alone opens it.
	Seal(plaintext []byte, passphrase string) ([]byte, error)

	// Open decrypts a blob produced by Seal. Returns an error if the blob
	// is malformed or the passphrase is wrong (authentication-tag
	// mismatch).
	Open(blob []byte, passphrase string) ([]byte, error)
}
