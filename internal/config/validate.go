package config

import (
	"fmt"
	"strings"

	"device-control/internal/domain"
	"device-control/internal/logging"
)

// Normalize fills blank optional fields and rejects invalid values.
func Normalize(s Settings) (Settings, error) {
	s.Model = strings.TrimSpace(s.Model)
	if s.Model == "" {
		return s, domain.ErrEmptyModelName
	}
	if s.Verbosity < 0 || s.Verbosity > logging.MaxVerbosity {
		return s, fmt.Errorf("verbosity must be between 0 and %d", logging.MaxVerbosity)
	}
	if s.Prompt == "" {
		s.Prompt = DefaultPrompt
	}
	if s.HistoryFile == "" {
		s.HistoryFile = DefaultHistoryFile()
	}
	return s, nil
}
