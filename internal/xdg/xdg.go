// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Figure Contributors

// Package xdg resolves XDG Base Directory paths for figure.
package xdg

import (
	"path/filepath"
)

const appName = "figure"

// ConfigDir returns the XDG config directory for figure.
// Checks XDG_CONFIG_HOME first, falls back to $HOME/.config. Returns "" when
// neither is set.
func ConfigDir(getenv func(string) string) string {
	if base := getenv("XDG_CONFIG_HOME"); base != "" {
		return filepath.Join(base, appName)
	}
	if home := getenv("HOME"); home != "" {
		return filepath.Join(home, ".config", appName)
	}
	return ""
}

// ConfigFile returns the default config file path, or "" when ConfigDir is unknown.
func ConfigFile(getenv func(string) string) string {
	dir := ConfigDir(getenv)
	if dir == "" {
		return ""
	}
	return filepath.Join(dir, "config.yaml")
}
