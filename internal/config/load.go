// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Figure Contributors

package config

import (
	"errors"
	"io/fs"
	"os"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/samber/oops"
	"github.com/spf13/pflag"

	"github.com/novakovicdavid/figure-backend/internal/xdg"
)

// flagKeys maps command-line flag names to config keys. Flags not listed here
// are command options, not configuration.
var flagKeys = map[string]string{
	"database-url":    "database_url",
	"redis-url":       "redis_url",
	"log-format":      "log.format",
	"log-level":       "log.level",
	"session-ttl":     "session.ttl",
	"hashing-workers": "hashing.workers",
	"metrics-addr":    "ops.metrics_addr",
}

// envKeys maps environment variables to config keys.
var envKeys = map[string]string{
	"DATABASE_URL": "database_url",
	"REDIS_URL":    "redis_url",
}

// Load builds the configuration. Sources apply in order, each overriding the
// previous: Default, the YAML file, the environment, then flags the user set
// explicitly. An empty path means the XDG config file, which may be absent.
// getenv may be nil.
func Load(path string, flags *pflag.FlagSet, getenv func(string) string) (*Config, error) {
	if getenv == nil {
		getenv = os.Getenv
	}
	if path == "" {
		path = defaultFile(getenv)
	}
	k := koanf.New(".")

	if path != "" {
		data, err := os.ReadFile(path) //nolint:gosec // path is operator supplied
		if err != nil {
			return nil, oops.Code("CONFIG_READ_FAILED").With("path", path).Wrap(err)
		}
		if err := ValidateYAML(data); err != nil {
			return nil, oops.With("path", path).Wrap(err)
		}
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, oops.Code("CONFIG_PARSE_FAILED").With("path", path).Wrap(err)
		}
	}

	for name, key := range envKeys {
		if v := getenv(name); v != "" {
			if err := k.Set(key, v); err != nil {
				return nil, oops.Code("CONFIG_ENV_FAILED").With("env", name).Wrap(err)
			}
		}
	}

	if flags != nil {
		// Unchanged flags only fill keys no other source set.
		provider := posflag.ProviderWithFlag(flags, ".", k, func(f *pflag.Flag) (string, any) {
			key, ok := flagKeys[f.Name]
			if !ok {
				return "", nil
			}
			return key, f.Value.String()
		})
		if err := k.Load(provider, nil); err != nil {
			return nil, oops.Code("CONFIG_FLAGS_FAILED").Wrap(err)
		}
	}

	cfg := Default()
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, oops.Code("CONFIG_DECODE_FAILED").Wrap(err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// defaultFile returns the XDG config file if it exists.
func defaultFile(getenv func(string) string) string {
	path := xdg.ConfigFile(getenv)
	if path == "" {
		return ""
	}
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		return ""
	}
	return path
}
