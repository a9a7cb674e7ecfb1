// Package config provides configuration loading for forgescope.
//
// Configuration is layered, highest precedence first: command-line
// flags, FORGESCOPE_* environment variables, the YAML config file,
// hardcoded defaults.
package config

import "fmt"

// Config holds the complete forgescope configuration.
type Config struct {
	Forge    ForgeConfig    `koanf:"forge"`
	Scope    ScopeConfig    `koanf:"scope"`
	Checkout CheckoutConfig `koanf:"checkout"`
	Log      LogConfig      `koanf:"log"`
}

// ForgeConfig holds remote API settings.
type ForgeConfig struct {
	// Token authenticates against the forge API.
	Token Secret `koanf:"token"`

	// BaseURL overrides the API endpoint, for self-hosted instances.
	// Empty means the public instance.
	BaseURL string `koanf:"base_url"`

	// RequestsPerSecond caps client-side request rate. Zero means
	// the adapter default.
	RequestsPerSecond float64 `koanf:"requests_per_second"`
}

// ScopeConfig holds project discovery settings.
type ScopeConfig struct {
	// Group is the default namespace selector. Empty means every
	// visible project.
	Group string `koanf:"group"`

	// Root designates the checkout root project by bare path.
	Root string `koanf:"root"`

	// Workers bounds parallel per-project commit scans.
	Workers int `koanf:"workers"`

	// Bare suppresses the namespace in listing output.
	Bare bool `koanf:"bare"`
}

// CheckoutConfig holds settings for cloning a rendered scope.
type CheckoutConfig struct {
	// Dir is the directory clones are placed under.
	Dir string `koanf:"dir"`

	// Workers bounds parallel clones.
	Workers int `koanf:"workers"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
}

// Validate checks config for errors.
func (c *Config) Validate() error {
	if c.Scope.Workers < 0 {
		return fmt.Errorf("scope.workers must be >= 0, got %d", c.Scope.Workers)
	}
	if c.Checkout.Workers < 0 {
		return fmt.Errorf("checkout.workers must be >= 0, got %d", c.Checkout.Workers)
	}
	if c.Forge.RequestsPerSecond < 0 {
		return fmt.Errorf("forge.requests_per_second must be >= 0, got %g", c.Forge.RequestsPerSecond)
	}
	return nil
}
