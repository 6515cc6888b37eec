package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pondErrors "github.com/alexisbeaulieu97/pond/pkg/errors"
)

func writeConfig(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))
	return path
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, BackendPreferences, cfg.Backend)
	assert.Equal(t, "warn", cfg.Log.Level)
	assert.Equal(t, "default", cfg.Blob.Compression)
	assert.Nil(t, cfg.StrictWrites)
}

func TestLoadMergesFileOverDefaults(t *testing.T) {
	path := writeConfig(t, `backend: blob
strict_writes: true
log:
  level: debug
blob:
  dir: /tmp/pond-blobs
  compression: best
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, BackendBlob, cfg.Backend)
	require.NotNil(t, cfg.StrictWrites)
	assert.True(t, *cfg.StrictWrites)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "/tmp/pond-blobs", cfg.Blob.Dir)
	assert.Equal(t, "best", cfg.Blob.Compression)
	assert.NotEmpty(t, cfg.Preferences.Path)
}

func TestLoadAppliesEnvironmentOverrides(t *testing.T) {
	path := writeConfig(t, "backend: blob\n")
	t.Setenv("POND_BACKEND", "secure")
	t.Setenv("POND_SECURE_PASSPHRASE", "hunter2")
	t.Setenv("POND_PREFERENCES_PATH", "/tmp/prefs.yaml")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, BackendSecure, cfg.Backend)
	assert.Equal(t, "hunter2", cfg.Secure.Passphrase)
	assert.Equal(t, "/tmp/prefs.yaml", cfg.Preferences.Path)
}

func TestLoadReportsParseErrorsWithLine(t *testing.T) {
	path := writeConfig(t, "backend: memory\nlog:\n  level: [debug\n")

	_, err := Load(path)

	var parseErr *pondErrors.ParseError
	require.ErrorAs(t, err, &parseErr)
	assert.Equal(t, path, parseErr.Path)
	assert.Positive(t, parseErr.Line)
}

func TestLoadRejectsUnknownBackend(t *testing.T) {
	path := writeConfig(t, "backend: etcd\n")

	_, err := Load(path)

	var validationErr *pondErrors.ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, "backend", validationErr.Field)
	assert.Contains(t, validationErr.Message, "memory, noop, preferences, secure, blob")
}

func TestLoadRejectsBadEnvironmentValue(t *testing.T) {
	t.Setenv("POND_STRICT_WRITES", "sometimes")

	_, err := Load("")

	var validationErr *pondErrors.ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, "environment", validationErr.Field)
}

func TestSaveOmitsPassphrase(t *testing.T) {
	t.Parallel()

	cfg := DefaultIn(t.TempDir())
	cfg.Secure.Passphrase = "never written"
	path := filepath.Join(t.TempDir(), "config.yaml")

	require.NoError(t, Save(cfg, path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "never written")
	assert.Contains(t, string(data), "backend: preferences")
}
