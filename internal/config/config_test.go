package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"device-control/internal/domain"
)

func TestFileStore_LoadMissingReturnsDefaults(t *testing.T) {
	store, err := NewFileStore(filepath.Join(t.TempDir(), "config.yaml"))
	require.NoError(t, err)

	s, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, DefaultSettings(), s)
}

func TestFileStore_SaveAndLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")
	store, err := NewFileStore(path)
	require.NoError(t, err)

	want := Settings{Model: "Clarett 4Pre", Prompt: "dev> ", HistoryFile: "/tmp/h", Verbosity: 2}
	require.NoError(t, store.Save(want))

	got, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, want, got)

	_, err = os.Stat(path + ".tmp")
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

func TestFileStore_PartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("model: Vocaster One\n"), 0o644))
	store, err := NewFileStore(path)
	require.NoError(t, err)

	s, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, "Vocaster One", s.Model)
	assert.Equal(t, DefaultPrompt, s.Prompt)
}

func TestFileStore_InvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("model: [unclosed\n"), 0o644))
	store, err := NewFileStore(path)
	require.NoError(t, err)

	_, err = store.Load()
	assert.ErrorContains(t, err, "unmarshal settings")
}

func TestNewFileStore_EmptyPath(t *testing.T) {
	_, err := NewFileStore("")
	assert.Error(t, err)
}

func TestApplyEnv(t *testing.T) {
	t.Setenv(EnvModel, "Env Model")
	t.Setenv(EnvPrompt, "")

	s := ApplyEnv(DefaultSettings())

	assert.Equal(t, "Env Model", s.Model)
	assert.Equal(t, DefaultPrompt, s.Prompt)
}

func TestLoadEnvFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte(EnvHistory+"=/tmp/from-env-file\n"), 0o644))
	// Setenv registers the restore; the variable must be absent for godotenv to set it.
	t.Setenv(EnvHistory, "")
	require.NoError(t, os.Unsetenv(EnvHistory))

	require.NoError(t, LoadEnvFile(path))

	assert.Equal(t, "/tmp/from-env-file", ApplyEnv(DefaultSettings()).HistoryFile)
	assert.NoError(t, LoadEnvFile(""))
	assert.Error(t, LoadEnvFile(filepath.Join(t.TempDir(), "missing.env")))
}

func TestNormalize(t *testing.T) {
	s, err := Normalize(Settings{Model: "  Solo  "})
	require.NoError(t, err)
	assert.Equal(t, "Solo", s.Model)
	assert.Equal(t, DefaultPrompt, s.Prompt)
	assert.Equal(t, DefaultHistoryFile(), s.HistoryFile)

	_, err = Normalize(Settings{Model: " "})
	assert.True(t, errors.Is(err, domain.ErrEmptyModelName))

	_, err = Normalize(Settings{Model: "Solo", Verbosity: 5})
	assert.Error(t, err)
}
