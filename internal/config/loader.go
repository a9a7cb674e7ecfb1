package config

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/providers/rawbytes"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/pflag"
)

const maxConfigFileSize = 1024 * 1024 // 1MB

// flagKeys maps flat CLI flag names onto nested config keys. Flags
// not listed here do not feed the config.
var flagKeys = map[string]string{
	"token":     "forge.token",
	"base-url":  "forge.base_url",
	"group":     "scope.group",
	"root":      "scope.root",
	"workers":   "scope.workers",
	"bare":      "scope.bare",
	"dir":       "checkout.dir",
	"log-level": "log.level",
}

// Load builds the configuration.
//
// Precedence (highest to lowest):
//  1. Command-line flags (flags may be nil)
//  2. FORGESCOPE_* environment variables (FORGESCOPE_FORGE_TOKEN -> forge.token)
//  3. YAML config file (default ~/.config/forgescope/config.yaml)
//  4. Defaults
func Load(configPath string, flags *pflag.FlagSet) (*Config, error) {
	k := koanf.New(".")

	// 1. Defaults
	if err := k.Load(confmap.Provider(map[string]interface{}{
		"forge.base_url":            "",
		"forge.requests_per_second": 0.0,
		"scope.workers":             4,
		"checkout.dir":              ".",
		"checkout.workers":          4,
		"log.level":                 "info",
		"log.format":                "console",
	}, "."), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	// 2. YAML config file, if present
	if configPath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("failed to get home directory: %w", err)
		}
		configPath = filepath.Join(home, ".config", "forgescope", "config.yaml")
	}
	if content, err := readConfigFile(configPath); err != nil {
		return nil, err
	} else if content != nil {
		if err := k.Load(rawbytes.Provider(content), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
	}

	// 3. Environment variables
	// FORGESCOPE_FORGE_TOKEN -> forge.token, FORGESCOPE_LOG_LEVEL -> log.level
	if err := k.Load(env.Provider("FORGESCOPE_", ".", func(s string) string {
		lower := strings.ToLower(strings.TrimPrefix(s, "FORGESCOPE_"))
		parts := strings.SplitN(lower, "_", 2)
		if len(parts) == 1 {
			return lower
		}
		return parts[0] + "." + parts[1]
	}), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	// 4. Flags, only those explicitly set
	if flags != nil {
		if err := k.Load(posflag.ProviderWithFlag(flags, ".", k, func(f *pflag.Flag) (string, interface{}) {
			if !f.Changed {
				return "", nil
			}
			key, ok := flagKeys[f.Name]
			if !ok {
				return "", nil
			}
			return key, posflag.FlagVal(flags, f)
		}), nil); err != nil {
			return nil, fmt.Errorf("failed to load flags: %w", err)
		}
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// readConfigFile returns the file contents, or nil when the file does
// not exist. The file is opened once and validated through its
// descriptor to avoid a stat/open race.
func readConfigFile(path string) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to open config file: %w", err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("failed to stat config file: %w", err)
	}
	if info.Size() > maxConfigFileSize {
		return nil, fmt.Errorf("config file too large: %d bytes (max %d)", info.Size(), maxConfigFileSize)
	}

	content, err := io.ReadAll(f)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	return content, nil
}
