package config

import (
	"os"
	"path/filepath"
)

// DefaultPath returns ~/.config/device-control/config.yaml (or a cwd fallback).
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err == nil && home != "" {
		return filepath.Join(home, ".config", "device-control", "config.yaml")
	}
	cwd, _ := os.Getwd()
	return filepath.Join(cwd, "device-control-config.yaml")
}

// DefaultHistoryFile returns the readline history location.
func DefaultHistoryFile() string {
	return filepath.Join(os.TempDir(), "device-control-shell.history")
}
