package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"gopkg.in/yaml.v3"
)

// Settings holds the user preferences for the interactive shell.
type Settings struct {
	Model       string `yaml:"model"`
	Prompt      string `yaml:"prompt"`
	HistoryFile string `yaml:"historyFile"`
	Verbosity   int    `yaml:"verbosity"`
}

var (
	// DefaultModel is the simulated device shown when nothing is configured.
	DefaultModel = "Scarlett 2i2 4th Gen [virtual]"
	// DefaultPrompt is the shell prompt.
	DefaultPrompt = "> "
)

// DefaultSettings returns the initial settings.
func DefaultSettings() Settings {
	return Settings{
		Model:       DefaultModel,
		Prompt:      DefaultPrompt,
		HistoryFile: DefaultHistoryFile(),
	}
}

// Store loads and saves Settings.
type Store interface {
	Load() (Settings, error)
	Save(Settings) error
}

// FileStore implements Store using a YAML file.
type FileStore struct {
	path string
	mu   sync.Mutex
}

// NewFileStore creates a store under the supplied path. Parent directories are created on Save.
func NewFileStore(path string) (*FileStore, error) {
	if path == "" {
		return nil, errors.New("path is required")
	}
	return &FileStore{path: path}, nil
}

// Path returns the settings file location.
func (s *FileStore) Path() string {
	return s.path
}

// Load reads the settings file or returns defaults if it does not exist.
// Fields missing from the file keep their default values.
func (s *FileStore) Load() (Settings, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	settings := DefaultSettings()
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return settings, nil
		}
		return Settings{}, fmt.Errorf("read settings: %w", err)
	}

	if err := yaml.Unmarshal(data, &settings); err != nil {
		return Settings{}, fmt.Errorf("unmarshal settings: %w", err)
	}
	return settings, nil
}

// Save writes the settings to disk atomically.
func (s *FileStore) Save(settings Settings) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("create settings dir: %w", err)
	}
	data, err := yaml.Marshal(settings)
	if err != nil {
		return fmt.Errorf("marshal settings: %w", err)
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write tmp: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("rename tmp: %w", err)
	}
	return nil
}
