// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The Arbormail Authors

package manager

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/arbormail/arbormail/internal/crypto"
	"github.com/arbormail/arbormail/internal/utils"
)

// quickstartSecretLength is the length of the generated administrator
// secret.
const quickstartSecretLength = 24

// Certificate file paths relative to the quickstart directory. The document
// references them through %{file:...}% with the directory as resource base.
const (
	quickstartCertFile = "certs/tls.crt"
	quickstartKeyFile  = "certs/tls.key"
)

// quickstartDocument is the starter configuration. Sprintf arguments:
// hostname, administrator login, argon2id digest of the generated secret.
const quickstartDocument = `# Arbormail configuration document.
#
# Values may use %%{scheme:argument}%% placeholders resolved at boot:
#   %%{env:NAME}%%   an environment variable
#   %%{file:PATH}%%  the contents of a file; relative paths resolve against
#                  the daemon resource base (the directory of this file)
#   %%{cfg:KEY}%%    another key of this document

[server]
hostname = %q
greeting = "%%{cfg:server.hostname}%% ESMTP Arbormail"

# Mail transfer and submission listeners. Add or remove blocks freely;
# every listener needs at least one bind address and a protocol.
[server.listener.smtp]
bind = ["0.0.0.0:25"]
protocol = "smtp"

[server.listener.smtps]
bind = ["0.0.0.0:465"]
protocol = "smtp"
tls.implicit = true

[server.listener.submission]
bind = ["0.0.0.0:587"]
protocol = "smtp"

# Socket defaults inherited by every listener.
[server.socket]
reuse-addr = true
backlog = 1024

# TLS defaults inherited by every listener. The quickstart certificate is
# self-signed; replace it before facing the public internet.
[server.tls]
enable = true
certificate = "default"
timeout = 60

[certificate.default]
cert = "%%{file:certs/tls.crt}%%"
private-key = "%%{file:certs/tls.key}%%"

# Management API credentials. The secret below is the argon2id digest of
# the generated administrator secret; the plaintext was printed once when
# this file was created.
[management]
admin = %q
secret = %q
`

// QuickstartOptions tunes the starter document.
type QuickstartOptions struct {
	// Hostname overrides the OS hostname in the generated document.
	Hostname string

	// AdminLogin is the management account name. Empty selects "admin".
	AdminLogin string
}

// QuickstartResult reports what Quickstart generated. AdminSecret is the
// only copy of the plaintext secret; the document carries its digest.
type QuickstartResult struct {
	Path        string
	Hostname    string
	AdminLogin  string
	AdminSecret string
}

// Quickstart scaffolds a working configuration under dir: the document
// itself, a self-signed TLS certificate, and a freshly generated
// administrator secret. The directory is created when missing. An existing
// config.toml is never touched.
func (m *Manager) Quickstart(dir string, opts QuickstartOptions) (*QuickstartResult, error) {
	path := filepath.Join(dir, "config.toml")
	if _, err := os.Stat(path); err == nil {
		return nil, fmt.Errorf("%w: %s", ErrConfigFileExists, path)
	} else if !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("checking %s: %w", path, err)
	}

	hostname := opts.Hostname
	if hostname == "" {
		if osName, err := os.Hostname(); err == nil && osName != "" {
			hostname = osName
		} else {
			hostname = "mail.example.org"
		}
	}
	login := opts.AdminLogin
	if login == "" {
		login = "admin"
	}

	secret, err := utils.GenerateKey(quickstartSecretLength)
	if err != nil {
		return nil, fmt.Errorf("generating administrator secret: %w", err)
	}
	digest, err := crypto.HashSecret(secret)
	if err != nil {
		return nil, fmt.Errorf("hashing administrator secret: %w", err)
	}

	certPEM, keyPEM, err := selfSignedCertificate(hostname)
	if err != nil {
		return nil, fmt.Errorf("generating quickstart certificate: %w", err)
	}

	if err = os.MkdirAll(filepath.Join(dir, "certs"), 0o755); err != nil {
		return nil, fmt.Errorf("creating quickstart directories: %w", err)
	}
	if err = os.WriteFile(filepath.Join(dir, quickstartCertFile), certPEM, 0o644); err != nil {
		return nil, fmt.Errorf("writing quickstart certificate: %w", err)
	}
	if err = os.WriteFile(filepath.Join(dir, quickstartKeyFile), keyPEM, 0o600); err != nil {
		return nil, fmt.Errorf("writing quickstart private key: %w", err)
	}

	document := fmt.Sprintf(quickstartDocument, hostname, login, digest)
	if err = os.WriteFile(path, []byte(document), 0o600); err != nil {
		return nil, fmt.Errorf("writing %s: %w", path, err)
	}

	m.logger.Info().
		Str("path", path).
		Str("hostname", hostname).
		Msg("starter configuration written")

	return &QuickstartResult{
		Path:        path,
		Hostname:    hostname,
		AdminLogin:  login,
		AdminSecret: secret,
	}, nil
}
