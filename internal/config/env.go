package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

// Environment variables that override file settings.
const (
	EnvModel   = "DEVICE_CONTROL_MODEL"
	EnvPrompt  = "DEVICE_CONTROL_PROMPT"
	EnvHistory = "DEVICE_CONTROL_HISTORY"
)

// LoadEnvFile loads variables from a .env file. Variables already present in
// the environment win.
func LoadEnvFile(path string) error {
	if path == "" {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("load env file %s: %w", path, err)
	}
	return nil
}

// ApplyEnv returns a copy of s with environment overrides applied.
func ApplyEnv(s Settings) Settings {
	if v, ok := os.LookupEnv(EnvModel); ok && v != "" {
		s.Model = v
	}
	if v, ok := os.LookupEnv(EnvPrompt); ok && v != "" {
		s.Prompt = v
	}
	if v, ok := os.LookupEnv(EnvHistory); ok && v != "" {
		s.HistoryFile = v
	}
	return s
}
