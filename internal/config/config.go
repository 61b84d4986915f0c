package config

import (
	"os"
	"path/filepath"
	"regexp"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/MatthewThompson/arnak"
)

// Config represents the application configuration.
type Config struct {
	API        APIConfig        `toml:"api"`
	Collection CollectionConfig `toml:"collection"`
}

// APIConfig contains API client configuration.
type APIConfig struct {
	BaseURL           string `toml:"base_url"`
	TimeoutSeconds    int    `toml:"timeout_seconds"`
	MaxRetries        int    `toml:"max_retries"`
	RetryDelaySeconds int    `toml:"retry_delay_seconds"`
	EntityMode        string `toml:"entity_mode"` // "correct", "raw"
}

// CollectionConfig contains collection-related configuration.
type CollectionConfig struct {
	DefaultUsername string `toml:"default_username"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		API: APIConfig{
			BaseURL:           arnak.BaseURL,
			TimeoutSeconds:    30,
			MaxRetries:        8,
			RetryDelaySeconds: 2,
			EntityMode:        "correct",
		},
		Collection: CollectionConfig{
			DefaultUsername: "",
		},
	}
}

// ClientConfig converts the application configuration into the client's
// configuration.
func (c *Config) ClientConfig() arnak.Config {
	mode := arnak.EntityModeCorrect
	if c.API.EntityMode == "raw" {
		mode = arnak.EntityModeRaw
	}

	return arnak.Config{
		BaseURL:    c.API.BaseURL,
		Timeout:    time.Duration(c.API.TimeoutSeconds) * time.Second,
		MaxRetries: c.API.MaxRetries,
		RetryDelay: time.Duration(c.API.RetryDelaySeconds) * time.Second,
		EntityMode: mode,
	}
}

// ConfigPath returns the path to the configuration file.
func ConfigPath() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "arnak", "config.toml"), nil
}

// Load loads the configuration from the default path.
func Load() (*Config, error) {
	path, err := ConfigPath()
	if err != nil {
		return nil, err
	}
	return LoadFromPath(path)
}

// LoadFromPath loads the configuration from the specified path. A missing
// file yields the defaults. A file that fails to parse is renamed to .bak
// and the defaults are returned, with the default username recovered from
// the broken file when possible.
func LoadFromPath(path string) (*Config, error) {
	cfg := DefaultConfig()

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}

	if _, err := toml.DecodeFile(path, cfg); err != nil {
		raw, readErr := os.ReadFile(path)
		if readErr == nil {
			_ = os.Rename(path, path+".bak")
			if username := extractUsername(raw); username != "" {
				cfg.Collection.DefaultUsername = username
			}
		}
		return cfg, nil
	}

	return cfg, nil
}

// extractUsername attempts to extract the default username from raw config
// bytes using regex when TOML parsing has failed.
func extractUsername(raw []byte) string {
	re := regexp.MustCompile(`(?m)^\s*default_username\s*=\s*"([^"]*)"`)
	if m := re.FindSubmatch(raw); len(m) > 1 {
		return string(m[1])
	}
	return ""
}

// Save saves the configuration to the default path.
func (c *Config) Save() error {
	path, err := ConfigPath()
	if err != nil {
		return err
	}
	return c.SaveToPath(path)
}

// SaveToPath saves the configuration to the specified path.
func (c *Config) SaveToPath(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	encoder := toml.NewEncoder(f)
	return encoder.Encode(c)
}
