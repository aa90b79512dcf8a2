// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The Arbormail Authors

package manager

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/arbormail/arbormail/internal/config"
	"github.com/arbormail/arbormail/internal/logger"
	"github.com/arbormail/arbormail/internal/mock"
	"github.com/arbormail/arbormail/internal/store"
	"github.com/arbormail/arbormail/models"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

// minimalDocument is the smallest document that boots without a store.
const minimalDocument = `
[server]
hostname = "mx.test.example"

[server.listener.smtp]
bind = ["127.0.0.1:2525"]
protocol = "smtp"
`

// writeDocument writes content as config.toml under a fresh temp dir and
// returns the file path.
func writeDocument(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

// newBootManager wires a Manager over the document at path. The document
// directory doubles as the resource base, mirroring the daemon default.
func newBootManager(path string, configStore store.ConfigStore) *Manager {
	opts := Options{ConfigPath: path, ResourceBase: filepath.Dir(path)}
	return NewManager(opts, configStore, nil, logger.Nop())
}

// snapshotValue finds key in a flattened snapshot.
func snapshotValue(entries []config.Entry, key string) (string, bool) {
	for _, e := range entries {
		if e.Key == key {
			return e.Value, true
		}
	}
	return "", false
}

// ─────────────────────────────────────────────
// Boot: plain documents
// ─────────────────────────────────────────────

// TestBoot_MinimalDocument verifies that a two-table document boots without
// a store: defaults are derived, an auth key is generated in memory.
func TestBoot_MinimalDocument(t *testing.T) {
	m := newBootManager(writeDocument(t, minimalDocument), nil)

	result, err := m.Boot(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "mx.test.example", result.Config.Hostname)
	assert.Equal(t, "mx.test.example ESMTP Arbormail", result.Config.Greeting)
	require.Contains(t, result.Config.Listeners, "smtp")
	assert.Equal(t, []string{"127.0.0.1:2525"}, result.Config.Listeners["smtp"].Bind)

	assert.Len(t, result.AuthKey, authKeyLength)
	assert.Empty(t, result.AdminLogin)
	assert.Empty(t, result.SecretDigest)

	got, ok := snapshotValue(result.Snapshot, keyAuthKey)
	require.True(t, ok, "generated auth key must appear in the snapshot")
	assert.Equal(t, result.AuthKey, got)
}

// TestBoot_MissingFile verifies the error when the document path does not
// exist.
func TestBoot_MissingFile(t *testing.T) {
	m := newBootManager(filepath.Join(t.TempDir(), "nope.toml"), nil)

	_, err := m.Boot(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "reading configuration document")
}

// TestBoot_SyntaxError verifies that a malformed document surfaces as a
// syntax-class configuration error.
func TestBoot_SyntaxError(t *testing.T) {
	m := newBootManager(writeDocument(t, "[server\nhostname = "), nil)

	_, err := m.Boot(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, config.ErrSyntax)
}

// TestBoot_ValidationError verifies that a bound but invalid document
// surfaces as a validation-class configuration error.
func TestBoot_ValidationError(t *testing.T) {
	document := `
[server]
hostname = "mx.test.example"

[server.listener.smtp]
bind = ["127.0.0.1:2525"]
protocol = "gopher"
`
	m := newBootManager(writeDocument(t, document), nil)

	_, err := m.Boot(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, config.ErrValidation)
}

// ─────────────────────────────────────────────
// Boot: placeholder phases
// ─────────────────────────────────────────────

// TestBoot_EnvPlaceholder verifies that %{env:...}% resolves, and resolves
// early enough for the greeting default to see the final hostname.
func TestBoot_EnvPlaceholder(t *testing.T) {
	t.Setenv("ARBORMAIL_BOOT_TEST_HOST", "env.test.example")

	document := `
[server]
hostname = "%{env:ARBORMAIL_BOOT_TEST_HOST}%"

[server.listener.smtp]
bind = ["127.0.0.1:2525"]
protocol = "smtp"
`
	m := newBootManager(writeDocument(t, document), nil)

	result, err := m.Boot(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "env.test.example", result.Config.Hostname)
	assert.Equal(t, "env.test.example ESMTP Arbormail", result.Config.Greeting)
}

// TestBoot_UndefinedEnvFails verifies that a missing environment variable
// aborts the boot as an unresolved placeholder.
func TestBoot_UndefinedEnvFails(t *testing.T) {
	document := `
[server]
hostname = "%{env:ARBORMAIL_BOOT_TEST_UNDEFINED_VARIABLE}%"

[server.listener.smtp]
bind = ["127.0.0.1:2525"]
protocol = "smtp"
`
	m := newBootManager(writeDocument(t, document), nil)

	_, err := m.Boot(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, config.ErrUnresolvedPlaceholder)
}

// TestBoot_FileAndCfgPlaceholders verifies the second resolution phase:
// file contents from the resource base and cross-key references.
func TestBoot_FileAndCfgPlaceholders(t *testing.T) {
	document := `
[server]
hostname = "mx.test.example"
greeting = "%{file:banner.txt}%"

[server.listener.smtp]
bind = ["127.0.0.1:2525"]
protocol = "smtp"
hostname = "%{cfg:server.hostname}%"
`
	path := writeDocument(t, document)
	banner := filepath.Join(filepath.Dir(path), "banner.txt")
	require.NoError(t, os.WriteFile(banner, []byte("custom banner\n"), 0o600))

	m := newBootManager(path, nil)

	result, err := m.Boot(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "custom banner", result.Config.Greeting)

	listener := result.Config.Listeners["smtp"]
	require.NotNil(t, listener.Hostname)
	assert.Equal(t, "mx.test.example", *listener.Hostname)
}

// TestBoot_StorePlaceholder verifies that %{store:...}% inlines a stored
// value in the second resolution phase. The key lives under management,
// whose table binding leaves to the daemon plane, so the grafted copy is
// harmless.
func TestBoot_StorePlaceholder(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	configStore := mock.NewMockConfigStore(ctrl)
	configStore.EXPECT().ListKeys(gomock.Any(), "").Return([]models.ConfigKey{
		{Key: "management.banner", Value: "Managed by Arbormail"},
		{Key: keyAuthKey, Value: "stored-auth-key"},
	}, nil)
	configStore.EXPECT().GetValue(gomock.Any(), "management.banner").
		Return("Managed by Arbormail", true, nil)

	document := `
[server]
hostname = "mx.test.example"
greeting = "%{store:management.banner}%"

[server.listener.smtp]
bind = ["127.0.0.1:2525"]
protocol = "smtp"
`
	m := newBootManager(writeDocument(t, document), configStore)

	result, err := m.Boot(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Managed by Arbormail", result.Config.Greeting)
}

// TestBoot_StorePlaceholderMiss verifies that a %{store:...}% reference to
// an absent key aborts the boot as an unresolved placeholder.
func TestBoot_StorePlaceholderMiss(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	configStore := mock.NewMockConfigStore(ctrl)
	configStore.EXPECT().ListKeys(gomock.Any(), "").Return([]models.ConfigKey{
		{Key: keyAuthKey, Value: "stored-auth-key"},
	}, nil)
	configStore.EXPECT().GetValue(gomock.Any(), "management.banner").
		Return("", false, nil)

	document := `
[server]
hostname = "mx.test.example"
greeting = "%{store:management.banner}%"

[server.listener.smtp]
bind = ["127.0.0.1:2525"]
protocol = "smtp"
`
	m := newBootManager(writeDocument(t, document), configStore)

	_, err := m.Boot(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, config.ErrUnresolvedPlaceholder)
}

// ─────────────────────────────────────────────
// Boot: config store grafting
// ─────────────────────────────────────────────

// TestBoot_StoreGraft_LocalWins verifies that store keys extend the
// document but never override it, and that an auth key arriving from the
// store suppresses generation.
func TestBoot_StoreGraft_LocalWins(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	configStore := mock.NewMockConfigStore(ctrl)
	configStore.EXPECT().ListKeys(gomock.Any(), "").Return([]models.ConfigKey{
		{Key: "server.hostname", Value: "store.example"},
		{Key: "server.greeting", Value: "store banner"},
		{Key: keyAuthKey, Value: "stored-auth-key"},
	}, nil)

	m := newBootManager(writeDocument(t, minimalDocument), configStore)

	result, err := m.Boot(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "mx.test.example", result.Config.Hostname, "local document must win")
	assert.Equal(t, "store banner", result.Config.Greeting, "absent keys must be grafted")
	assert.Equal(t, "stored-auth-key", result.AuthKey)

	got, ok := snapshotValue(result.Snapshot, "server.greeting")
	require.True(t, ok)
	assert.Equal(t, "store banner", got)
}

// TestBoot_StoreGraft_AddsListener verifies that whole subtrees written via
// the management API materialize as bound structures.
func TestBoot_StoreGraft_AddsListener(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	configStore := mock.NewMockConfigStore(ctrl)
	configStore.EXPECT().ListKeys(gomock.Any(), "").Return([]models.ConfigKey{
		{Key: "server.listener.lmtp.bind.0", Value: "127.0.0.1:2424"},
		{Key: "server.listener.lmtp.protocol", Value: "lmtp"},
		{Key: keyAuthKey, Value: "stored-auth-key"},
	}, nil)

	m := newBootManager(writeDocument(t, minimalDocument), configStore)

	result, err := m.Boot(context.Background())
	require.NoError(t, err)

	require.Len(t, result.Config.Listeners, 2)
	lmtp := result.Config.Listeners["lmtp"]
	assert.Equal(t, []string{"127.0.0.1:2424"}, lmtp.Bind)
	assert.Equal(t, "lmtp", lmtp.Protocol)
}

// TestBoot_StoreListError verifies that a failing store aborts the boot.
func TestBoot_StoreListError(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	configStore := mock.NewMockConfigStore(ctrl)
	configStore.EXPECT().ListKeys(gomock.Any(), "").Return(nil, assert.AnError)

	m := newBootManager(writeDocument(t, minimalDocument), configStore)

	_, err := m.Boot(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, assert.AnError)
	assert.Contains(t, err.Error(), "reading config store keys")
}

// ─────────────────────────────────────────────
// Boot: management auth key
// ─────────────────────────────────────────────

// TestBoot_AuthKeyGeneratedAndPersisted verifies that a generated auth key
// is written to the store, after the graft read.
func TestBoot_AuthKeyGeneratedAndPersisted(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	var persisted models.ConfigKey
	configStore := mock.NewMockConfigStore(ctrl)
	gomock.InOrder(
		configStore.EXPECT().ListKeys(gomock.Any(), "").Return(nil, nil),
		configStore.EXPECT().SetKeys(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, entries ...models.ConfigKey) error {
				require.Len(t, entries, 1)
				persisted = entries[0]
				return nil
			},
		),
	)

	m := newBootManager(writeDocument(t, minimalDocument), configStore)

	result, err := m.Boot(context.Background())
	require.NoError(t, err)

	assert.Equal(t, keyAuthKey, persisted.Key)
	assert.Len(t, persisted.Value, authKeyLength)
	assert.Equal(t, persisted.Value, result.AuthKey)
}

// TestBoot_AuthKeyFromDocument verifies that a documented auth key is used
// as is and never written back to the store.
func TestBoot_AuthKeyFromDocument(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	// No SetKeys expectation: a write would fail the controller.
	configStore := mock.NewMockConfigStore(ctrl)
	configStore.EXPECT().ListKeys(gomock.Any(), "").Return(nil, nil)

	document := minimalDocument + `
[management]
auth-key = "documented-auth-key"
`
	m := newBootManager(writeDocument(t, document), configStore)

	result, err := m.Boot(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "documented-auth-key", result.AuthKey)
}

// TestBoot_PersistAuthKeyError verifies that a store refusing the generated
// key aborts the boot.
func TestBoot_PersistAuthKeyError(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	configStore := mock.NewMockConfigStore(ctrl)
	configStore.EXPECT().ListKeys(gomock.Any(), "").Return(nil, nil)
	configStore.EXPECT().SetKeys(gomock.Any(), gomock.Any()).Return(assert.AnError)

	m := newBootManager(writeDocument(t, minimalDocument), configStore)

	_, err := m.Boot(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "persisting management auth key")
}

// ─────────────────────────────────────────────
// Boot: host defaults and credentials
// ─────────────────────────────────────────────

// TestBoot_HostnameFromOS verifies the hostname default when the document
// does not set one.
func TestBoot_HostnameFromOS(t *testing.T) {
	osName, err := os.Hostname()
	require.NoError(t, err)
	require.NotEmpty(t, osName)

	document := `
[server.listener.smtp]
bind = ["127.0.0.1:2525"]
protocol = "smtp"
`
	m := newBootManager(writeDocument(t, document), nil)

	result, err := m.Boot(context.Background())
	require.NoError(t, err)
	assert.Equal(t, osName, result.Config.Hostname)
	assert.Equal(t, osName+" ESMTP Arbormail", result.Config.Greeting)
}

// TestBoot_GreetingPreserved verifies that an explicit greeting is never
// replaced by the derived default.
func TestBoot_GreetingPreserved(t *testing.T) {
	document := `
[server]
hostname = "mx.test.example"
greeting = "custom banner"

[server.listener.smtp]
bind = ["127.0.0.1:2525"]
protocol = "smtp"
`
	m := newBootManager(writeDocument(t, document), nil)

	result, err := m.Boot(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "custom banner", result.Config.Greeting)
}

// TestBoot_AdminCredentials verifies that management credentials travel
// from the document into the boot result.
func TestBoot_AdminCredentials(t *testing.T) {
	document := minimalDocument + `
[management]
admin = "root"
secret = "$argon2id$v=19$m=65536,t=3,p=4$c2FsdA$ZGlnZXN0"
`
	m := newBootManager(writeDocument(t, document), nil)

	result, err := m.Boot(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "root", result.AdminLogin)
	assert.Equal(t, "$argon2id$v=19$m=65536,t=3,p=4$c2FsdA$ZGlnZXN0", result.SecretDigest)
}

// ─────────────────────────────────────────────
// Boot: odd-value warnings
// ─────────────────────────────────────────────

// TestBoot_TLSTimeoutZeroWarnsOnce verifies the warning for a zero TLS
// handshake timeout, and that listeners inheriting the global block do not
// repeat it.
func TestBoot_TLSTimeoutZeroWarnsOnce(t *testing.T) {
	document := minimalDocument + `
[server.listener.submission]
bind = ["127.0.0.1:2587"]
protocol = "smtp"

[server.tls]
timeout = 0
`
	var buf bytes.Buffer
	opts := Options{ConfigPath: writeDocument(t, document)}
	m := NewManager(opts, nil, nil, &logger.Logger{Logger: zerolog.New(&buf)})

	_, err := m.Boot(context.Background())
	require.NoError(t, err)

	logged := buf.String()
	assert.Equal(t, 1, strings.Count(logged, "disables the deadline"))
	assert.Contains(t, logged, "server.tls.timeout")
}

// TestBoot_ListenerTLSTimeoutZeroWarns verifies the warning names the
// listener when the zero timeout is the listener's own.
func TestBoot_ListenerTLSTimeoutZeroWarns(t *testing.T) {
	document := minimalDocument + `
[server.listener.smtp.tls]
timeout = 0
`
	var buf bytes.Buffer
	opts := Options{ConfigPath: writeDocument(t, document)}
	m := NewManager(opts, nil, nil, &logger.Logger{Logger: zerolog.New(&buf)})

	_, err := m.Boot(context.Background())
	require.NoError(t, err)

	logged := buf.String()
	assert.Equal(t, 1, strings.Count(logged, "disables the deadline"))
	assert.Contains(t, logged, "server.listener.smtp.tls.timeout")
}
