// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The Arbormail Authors

package manager

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/arbormail/arbormail/internal/config"
	"github.com/arbormail/arbormail/internal/crypto"
	"github.com/arbormail/arbormail/internal/logger"
	"github.com/arbormail/arbormail/internal/mock"
	"github.com/arbormail/arbormail/internal/resolver"
	"github.com/arbormail/arbormail/internal/store"
	"github.com/arbormail/arbormail/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

// importDocument flattens to exactly three dotted keys.
const importDocument = `
[server]
hostname = "import.example"

[server.listener.smtp]
bind = ["127.0.0.1:2525"]
protocol = "smtp"
`

// importedKeys is the flattened form of importDocument, in sorted order.
var importedKeys = []models.ConfigKey{
	{Key: "server.hostname", Value: "import.example"},
	{Key: "server.listener.smtp.bind.0", Value: "127.0.0.1:2525"},
	{Key: "server.listener.smtp.protocol", Value: "smtp"},
}

func newTransferManager(configStore store.ConfigStore, keychain crypto.Keychain) *Manager {
	return NewManager(Options{FetchTimeout: 2 * time.Second}, configStore, keychain, logger.Nop())
}

// ─────────────────────────────────────────────
// Import
// ─────────────────────────────────────────────

// TestImport_FromFile verifies that a local document lands in the store
// key by key.
func TestImport_FromFile(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	var written []models.ConfigKey
	configStore := mock.NewMockConfigStore(ctrl)
	configStore.EXPECT().SetKeys(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, entries ...models.ConfigKey) error {
			written = entries
			return nil
		},
	)

	m := newTransferManager(configStore, nil)

	count, err := m.Import(context.Background(), writeDocument(t, importDocument))
	require.NoError(t, err)
	assert.Equal(t, 3, count)
	assert.Equal(t, importedKeys, written)
}

// TestImport_FileURL verifies the file:// source form.
func TestImport_FileURL(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	configStore := mock.NewMockConfigStore(ctrl)
	configStore.EXPECT().SetKeys(gomock.Any(), gomock.Any()).Return(nil)

	m := newTransferManager(configStore, nil)

	count, err := m.Import(context.Background(), "file://"+writeDocument(t, importDocument))
	require.NoError(t, err)
	assert.Equal(t, 3, count)
}

// TestImport_FromHTTP verifies fetching the document over HTTP.
func TestImport_FromHTTP(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(importDocument))
	}))
	defer srv.Close()

	var written []models.ConfigKey
	configStore := mock.NewMockConfigStore(ctrl)
	configStore.EXPECT().SetKeys(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, entries ...models.ConfigKey) error {
			written = entries
			return nil
		},
	)

	m := newTransferManager(configStore, nil)

	count, err := m.Import(context.Background(), srv.URL)
	require.NoError(t, err)
	assert.Equal(t, 3, count)
	assert.Equal(t, importedKeys, written)
}

// TestImport_HTTPNotFound verifies that a 404 surfaces as a not-found
// fetch error.
func TestImport_HTTPNotFound(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	m := newTransferManager(mock.NewMockConfigStore(ctrl), nil)

	_, err := m.Import(context.Background(), srv.URL+"/missing.toml")
	require.Error(t, err)
	assert.ErrorIs(t, err, resolver.ErrNotFound)
}

// TestImport_NoStore verifies the guard for storeless daemons.
func TestImport_NoStore(t *testing.T) {
	m := newTransferManager(nil, nil)

	_, err := m.Import(context.Background(), "/tmp/whatever.toml")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNoStoreConfigured)
}

// TestImport_EmptyDocument verifies that a document with no keys is
// rejected before touching the store.
func TestImport_EmptyDocument(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	// No SetKeys expectation: a write would fail the controller.
	m := newTransferManager(mock.NewMockConfigStore(ctrl), nil)

	_, err := m.Import(context.Background(), writeDocument(t, "# comments only\n"))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrEmptyDocument)
}

// TestImport_BadTOML verifies that parse failures propagate with their
// syntax classification.
func TestImport_BadTOML(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	m := newTransferManager(mock.NewMockConfigStore(ctrl), nil)

	_, err := m.Import(context.Background(), writeDocument(t, "[server\n"))
	require.Error(t, err)
	assert.ErrorIs(t, err, config.ErrSyntax)
}

// TestImport_StoreWriteFails verifies the wrap around store write errors.
func TestImport_StoreWriteFails(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	configStore := mock.NewMockConfigStore(ctrl)
	configStore.EXPECT().SetKeys(gomock.Any(), gomock.Any()).Return(assert.AnError)

	m := newTransferManager(configStore, nil)

	_, err := m.Import(context.Background(), writeDocument(t, importDocument))
	require.Error(t, err)
	assert.ErrorIs(t, err, assert.AnError)
	assert.Contains(t, err.Error(), "writing imported keys")
}

// ─────────────────────────────────────────────
// Export
// ─────────────────────────────────────────────

// TestExport_RoundTrip verifies that the rendered document parses back to
// the exact entries the store returned, including multiline and quoted
// values.
func TestExport_RoundTrip(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	stored := []models.ConfigKey{
		{Key: "certificate.default.cert", Value: "-----BEGIN CERTIFICATE-----\nMIIB\n-----END CERTIFICATE-----"},
		{Key: "server.greeting", Value: `they said "hello"`},
		{Key: "server.hostname", Value: "export.example"},
	}
	configStore := mock.NewMockConfigStore(ctrl)
	configStore.EXPECT().ListKeys(gomock.Any(), "").Return(stored, nil)

	m := newTransferManager(configStore, nil)

	var buf bytes.Buffer
	count, err := m.Export(context.Background(), &buf, "")
	require.NoError(t, err)
	assert.Equal(t, 3, count)

	tree, err := config.Parse(buf.String())
	require.NoError(t, err, "an export must parse as a document")

	flat := tree.Flatten()
	require.Len(t, flat, 3)
	for i, entry := range flat {
		assert.Equal(t, stored[i].Key, entry.Key)
		assert.Equal(t, stored[i].Value, entry.Value)
	}
}

// TestExport_Sealed verifies that a passphrase seals the document and the
// same passphrase opens it.
func TestExport_Sealed(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	configStore := mock.NewMockConfigStore(ctrl)
	configStore.EXPECT().ListKeys(gomock.Any(), "").Return([]models.ConfigKey{
		{Key: "server.hostname", Value: "export.example"},
	}, nil)

	keychain := crypto.NewKeychain()
	m := newTransferManager(configStore, keychain)

	var buf bytes.Buffer
	count, err := m.Export(context.Background(), &buf, "open sesame")
	require.NoError(t, err)
	assert.Equal(t, 1, count)
	assert.NotContains(t, buf.String(), "export.example", "sealed output must not leak values")

	plain, err := keychain.Open(buf.Bytes(), "open sesame")
	require.NoError(t, err)
	assert.Contains(t, string(plain), `server.hostname = "export.example"`)

	_, err = keychain.Open(buf.Bytes(), "wrong passphrase")
	require.Error(t, err)
}

// TestExport_SealFails verifies the wrap around keychain failures.
func TestExport_SealFails(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	configStore := mock.NewMockConfigStore(ctrl)
	configStore.EXPECT().ListKeys(gomock.Any(), "").Return([]models.ConfigKey{
		{Key: "server.hostname", Value: "export.example"},
	}, nil)

	keychain := mock.NewMockKeychain(ctrl)
	keychain.EXPECT().Seal(gomock.Any(), "open sesame").Return(nil, assert.AnError)

	m := newTransferManager(configStore, keychain)

	_, err := m.Export(context.Background(), &bytes.Buffer{}, "open sesame")
	require.Error(t, err)
	assert.ErrorIs(t, err, assert.AnError)
	assert.Contains(t, err.Error(), "sealing export")
}

// TestExport_NoStore verifies the guard for storeless daemons.
func TestExport_NoStore(t *testing.T) {
	m := newTransferManager(nil, nil)

	_, err := m.Export(context.Background(), &bytes.Buffer{}, "")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNoStoreConfigured)
}

// TestExport_EmptyStore verifies that an empty store exports an empty
// document without error.
func TestExport_EmptyStore(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	configStore := mock.NewMockConfigStore(ctrl)
	configStore.EXPECT().ListKeys(gomock.Any(), "").Return(nil, nil)

	m := newTransferManager(configStore, nil)

	var buf bytes.Buffer
	count, err := m.Export(context.Background(), &buf, "")
	require.NoError(t, err)
	assert.Zero(t, count)
	assert.Zero(t, buf.Len())
}

// errWriter fails every write.
type errWriter struct{}

func (errWriter) Write([]byte) (int, error) { return 0, assert.AnError }

// TestExport_WriteError verifies the wrap around destination failures.
func TestExport_WriteError(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	configStore := mock.NewMockConfigStore(ctrl)
	configStore.EXPECT().ListKeys(gomock.Any(), "").Return([]models.ConfigKey{
		{Key: "server.hostname", Value: "export.example"},
	}, nil)

	m := newTransferManager(configStore, nil)

	_, err := m.Export(context.Background(), errWriter{}, "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "writing export")
}
