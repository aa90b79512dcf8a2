package models

// Credentials is the administrator login/secret pair presented to
// POST /api/session. The secret travels only over the session endpoint and
// is verified against the argon2id digest configured for the daemon.
type Credentials struct {
	// Login is the administrator account name.
	Login string `json:"login"`

	// Secret is the administrator secret in plaintext. It is never stored;
	// only its argon2id digest lives in settings or the config store.
	Secret string `json:"secret"`
}
