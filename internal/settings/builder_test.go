package settings

import (
	"encoding/json"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ── helpers ───────────────────────────────────────────────────────────────────

func writeTempJSONSettings(t *testing.T, v any) string {
	t.Helper()
	data, err := json.Marshal(v)
	require.NoError(t, err)
	f, err := os.CreateTemp(t.TempDir(), "settings-*.json")
	require.NoError(t, err)
	_, err = f.Write(data)
	require.NoError(t, err)
	require.NoError(t, f.Close())
	return f.Name()
}

// ── newSettingsBuilder ────────────────────────────────────────────────────────

// TestNewSettingsBuilder_InitialState verifies that a freshly created builder
// has no error and an empty sources slice.
func TestNewSettingsBuilder_InitialState(t *testing.T) {
	b := newSettingsBuilder()
	require.NotNil(t, b)
	assert.NoError(t, b.err)
	assert.Empty(t, b.sources)
}

// ── build ─────────────────────────────────────────────────────────────────────

// TestBuild_EmptyBuilder verifies that building with no sources returns a
// zero-value Settings.
func TestBuild_EmptyBuilder(t *testing.T) {
	s, err := newSettingsBuilder().build()
	require.NoError(t, err)
	assert.Equal(t, &Settings{}, s)
}

// TestBuild_PropagatesBuilderError verifies that a pre-set b.err is wrapped
// and returned, with nil settings.
func TestBuild_PropagatesBuilderError(t *testing.T) {
	b := newSettingsBuilder()
	b.err = assert.AnError

	s, err := b.build()
	assert.Nil(t, s)
	require.Error(t, err)
	assert.ErrorIs(t, err, assert.AnError)
}

// TestBuild_MergesMultipleSources verifies that fields from multiple sources
// are merged into a single result.
func TestBuild_MergesMultipleSources(t *testing.T) {
	b := newSettingsBuilder()
	b.sources = append(b.sources,
		&Settings{Daemon: Daemon{ConfigPath: "/etc/arbormail/config.toml"}},
		&Settings{Store: Store{DSN: "postgres://localhost/arbormail"}},
	)

	s, err := b.build()
	require.NoError(t, err)
	assert.Equal(t, "/etc/arbormail/config.toml", s.Daemon.ConfigPath)
	assert.Equal(t, "postgres://localhost/arbormail", s.Store.DSN)
}

// TestBuild_EarlierSourceWins verifies the precedence rule: a field already
// set by an earlier source is not overwritten by a later one.
func TestBuild_EarlierSourceWins(t *testing.T) {
	b := newSettingsBuilder()
	b.sources = append(b.sources,
		&Settings{Daemon: Daemon{LogLevel: "debug"}},
		&Settings{Daemon: Daemon{LogLevel: "info", ConfigPath: "/tmp/config.toml"}},
	)

	s, err := b.build()
	require.NoError(t, err)
	assert.Equal(t, "debug", s.Daemon.LogLevel)
	assert.Equal(t, "/tmp/config.toml", s.Daemon.ConfigPath)
}

// ── withEnv ───────────────────────────────────────────────────────────────────

// TestWithEnv_ReturnsBuilder verifies the fluent interface.
func TestWithEnv_ReturnsBuilder(t *testing.T) {
	b := newSettingsBuilder()
	assert.Same(t, b, b.withEnv())
}

// TestWithEnv_AppendsOneSource verifies that withEnv appends exactly one entry.
func TestWithEnv_AppendsOneSource(t *testing.T) {
	b := newSettingsBuilder()
	b.withEnv()
	assert.Len(t, b.sources, 1)
}

// TestWithEnv_ReadsEnvVars verifies that environment variables are picked up.
func TestWithEnv_ReadsEnvVars(t *testing.T) {
	t.Setenv("ARBORMAIL_CONFIG", "/srv/mail/config.toml")
	t.Setenv("ARBORMAIL_STORE_DSN", "arbormail.db")

	b := newSettingsBuilder()
	b.withEnv()

	require.Len(t, b.sources, 1)
	assert.Equal(t, "/srv/mail/config.toml", b.sources[0].Daemon.ConfigPath)
	assert.Equal(t, "arbormail.db", b.sources[0].Store.DSN)
}

// TestWithEnv_NoErrorOnEmptyEnv verifies that withEnv does not set b.err
// when no relevant env vars are present.
func TestWithEnv_NoErrorOnEmptyEnv(t *testing.T) {
	b := newSettingsBuilder()
	b.withEnv()
	assert.NoError(t, b.err)
}

// ── withFlags ─────────────────────────────────────────────────────────────────

// TestWithFlags_ReturnsBuilder verifies the fluent interface.
func TestWithFlags_ReturnsBuilder(t *testing.T) {
	b := newSettingsBuilder()
	assert.Same(t, b, b.withFlags())
}

// ── withDefaults ──────────────────────────────────────────────────────────────

// TestWithDefaults_AppendsDefaults verifies that the built-in layer lands in
// the sources slice with its expected values.
func TestWithDefaults_AppendsDefaults(t *testing.T) {
	b := newSettingsBuilder()
	b.withDefaults()

	require.Len(t, b.sources, 1)
	assert.Equal(t, "/etc/arbormail/config.toml", b.sources[0].Daemon.ConfigPath)
	assert.Equal(t, "127.0.0.1:8960", b.sources[0].Management.Address)
	assert.Equal(t, time.Hour, b.sources[0].Management.TokenLifetime)
	assert.Empty(t, b.sources[0].Store.DSN)
}

// TestWithDefaults_LosesToExplicitSources verifies that any explicit source
// appended before the defaults wins the merge.
func TestWithDefaults_LosesToExplicitSources(t *testing.T) {
	b := newSettingsBuilder()
	b.sources = append(b.sources, &Settings{
		Management: Management{Address: "0.0.0.0:9000"},
	})
	b.withDefaults()

	s, err := b.build()
	require.NoError(t, err)
	assert.Equal(t, "0.0.0.0:9000", s.Management.Address)
	assert.Equal(t, "info", s.Daemon.LogLevel)
}

// ── withJSON ──────────────────────────────────────────────────────────────────

// TestWithJSON_ReturnsBuilder verifies the fluent interface.
func TestWithJSON_ReturnsBuilder(t *testing.T) {
	b := newSettingsBuilder()
	assert.Same(t, b, b.withJSON())
}

// TestWithJSON_NoOp_WhenNoPathSet verifies that withJSON does nothing when
// no source carries a SettingsFilePath.
func TestWithJSON_NoOp_WhenNoPathSet(t *testing.T) {
	b := newSettingsBuilder()
	b.sources = append(b.sources, &Settings{})
	b.withJSON()

	assert.Len(t, b.sources, 1)
	assert.NoError(t, b.err)
}

// TestWithJSON_AppendsSource_WhenValidFile verifies that a valid JSON file is
// parsed and appended.
func TestWithJSON_AppendsSource_WhenValidFile(t *testing.T) {
	payload := jsonSettings{}
	payload.Daemon.ConfigPath = "/from/json/config.toml"
	payload.Console.Login = "json-admin"
	path := writeTempJSONSettings(t, payload)

	b := newSettingsBuilder()
	b.sources = append(b.sources, &Settings{SettingsFilePath: path})
	b.withJSON()

	require.NoError(t, b.err)
	require.Len(t, b.sources, 2)
	assert.Equal(t, "/from/json/config.toml", b.sources[1].Daemon.ConfigPath)
	assert.Equal(t, "json-admin", b.sources[1].Console.Login)
}

// TestWithJSON_SetsError_WhenFileNotFound verifies that a missing file path
// sets b.err.
func TestWithJSON_SetsError_WhenFileNotFound(t *testing.T) {
	b := newSettingsBuilder()
	b.sources = append(b.sources, &Settings{
		SettingsFilePath: "/nonexistent/settings.json",
	})
	b.withJSON()

	assert.Error(t, b.err)
}

// TestWithJSON_SetsError_WhenMalformedJSON verifies that invalid JSON content
// sets b.err.
func TestWithJSON_SetsError_WhenMalformedJSON(t *testing.T) {
	f, err := os.CreateTemp(t.TempDir(), "bad-*.json")
	require.NoError(t, err)
	_, err = f.WriteString("{not valid json")
	require.NoError(t, err)
	require.NoError(t, f.Close())

	b := newSettingsBuilder()
	b.sources = append(b.sources, &Settings{SettingsFilePath: f.Name()})
	b.withJSON()

	assert.Error(t, b.err)
}

// TestWithJSON_UsesFirstPath verifies that when multiple sources carry a
// SettingsFilePath, the first non-empty one wins, matching the merge
// precedence.
func TestWithJSON_UsesFirstPath(t *testing.T) {
	payload := jsonSettings{}
	payload.Daemon.LogLevel = "first-wins"
	path := writeTempJSONSettings(t, payload)

	b := newSettingsBuilder()
	b.sources = append(b.sources,
		&Settings{SettingsFilePath: path},
		&Settings{SettingsFilePath: "/nonexistent/other.json"},
	)
	b.withJSON()

	require.NoError(t, b.err)
	require.Len(t, b.sources, 3)
	assert.Equal(t, "first-wins", b.sources[2].Daemon.LogLevel)
}

// TestWithJSON_PreservesEarlierError verifies that a pre-existing b.err
// survives a successful withJSON call.
func TestWithJSON_PreservesEarlierError(t *testing.T) {
	payload := jsonSettings{}
	payload.Daemon.LogLevel = "should-not-matter"
	path := writeTempJSONSettings(t, payload)

	b := newSettingsBuilder()
	b.err = assert.AnError
	b.sources = append(b.sources, &Settings{SettingsFilePath: path})
	b.withJSON()

	// withJSON itself succeeds (file is valid), so it still appends —
	// the pre-existing error is preserved alongside.
	assert.ErrorIs(t, b.err, assert.AnError)
}

// ── views ─────────────────────────────────────────────────────────────────────

// TestDaemonSettings_Validate exercises the startup invariants directly.
func TestDaemonSettings_Validate(t *testing.T) {
	valid := DaemonSettings{
		ConfigPath: "/etc/arbormail/config.toml",
		Management: Management{
			Address:       "127.0.0.1:8960",
			TokenLifetime: time.Hour,
		},
	}
	require.NoError(t, valid.validate())

	noConfig := valid
	noConfig.ConfigPath = ""
	assert.ErrorIs(t, noConfig.validate(), ErrInvalidDaemonSettings)

	noAddress := valid
	noAddress.Management.Address = ""
	assert.ErrorIs(t, noAddress.validate(), ErrInvalidManagementSettings)

	zeroLifetime := valid
	zeroLifetime.Management.TokenLifetime = 0
	assert.ErrorIs(t, zeroLifetime.validate(), ErrInvalidManagementSettings)
}

// TestConsoleSettings_Validate exercises the CLI view invariants.
func TestConsoleSettings_Validate(t *testing.T) {
	valid := ConsoleSettings{
		ServerURL:      "http://127.0.0.1:8960",
		RequestTimeout: 15 * time.Second,
		Login:          "admin",
	}
	require.NoError(t, valid.validate())

	noURL := valid
	noURL.ServerURL = ""
	assert.ErrorIs(t, noURL.validate(), ErrInvalidConsoleSettings)

	noTimeout := valid
	noTimeout.RequestTimeout = 0
	assert.ErrorIs(t, noTimeout.validate(), ErrInvalidConsoleSettings)

	noLogin := valid
	noLogin.Login = ""
	assert.ErrorIs(t, noLogin.validate(), ErrInvalidConsoleSettings)
}
