// Package config handles bibpage configuration.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config represents configuration stored in ~/.config/bibpage/config.yml.
type Config struct {
	PublicationsSrc string `yaml:"publications_src,omitempty" json:"publications_src,omitempty"` // BibTeX file to read
	DBPath          string `yaml:"db_path,omitempty" json:"db_path,omitempty"`                   // SQLite snapshot written by build
	JSONLPath       string `yaml:"jsonl_path,omitempty" json:"jsonl_path,omitempty"`             // JSONL stream written by build
}

const (
	// ConfigDir is the directory name under XDG_CONFIG_HOME.
	ConfigDir = "bibpage"
	// ConfigFile is the config file name.
	ConfigFile = "config.yml"

	// EnvPublicationsSrc overrides publications_src.
	EnvPublicationsSrc = "BIBPAGE_PUBLICATIONS_SRC"
	// EnvDBPath overrides db_path.
	EnvDBPath = "BIBPAGE_DB_PATH"
	// EnvJSONLPath overrides jsonl_path.
	EnvJSONLPath = "BIBPAGE_JSONL_PATH"
)

// ErrNoSource is returned when no bibliography source is configured.
var ErrNoSource = errors.New("publications_src not configured")

// DefaultPath returns the path to the config file.
// Respects XDG_CONFIG_HOME, defaults to ~/.config/bibpage/config.yml.
func DefaultPath() string {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, ConfigDir, ConfigFile)
}

// LoadFile reads configuration from a YAML file.
// Returns an empty config (not an error) if the file doesn't exist.
func LoadFile(path string) (*Config, error) {
	if path == "" {
		return &Config{}, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &Config{}, nil
		}
		return nil, fmt.Errorf("reading config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	cfg.expand()
	return &cfg, nil
}

// Load reads the config file at path (DefaultPath if empty), then applies
// environment overrides. A .env file in the working directory is loaded
// first; variables already set in the environment win over it.
func Load(path string) (*Config, error) {
	_ = godotenv.Load()

	if path == "" {
		path = DefaultPath()
	}
	cfg, err := LoadFile(path)
	if err != nil {
		return nil, err
	}
	cfg.ApplyEnv()
	return cfg, nil
}

// ApplyEnv overrides settings from environment variables.
func (c *Config) ApplyEnv() {
	c.PublicationsSrc = GetConfigValue(EnvPublicationsSrc, c.PublicationsSrc)
	c.DBPath = GetConfigValue(EnvDBPath, c.DBPath)
	c.JSONLPath = GetConfigValue(EnvJSONLPath, c.JSONLPath)
	c.expand()
}

// Source returns the configured bibliography path, or ErrNoSource.
func (c *Config) Source() (string, error) {
	if c.PublicationsSrc == "" {
		return "", ErrNoSource
	}
	return c.PublicationsSrc, nil
}

// Save writes configuration to path as YAML.
func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("creating config dir: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	return nil
}

func (c *Config) expand() {
	c.PublicationsSrc = ExpandPath(c.PublicationsSrc)
	c.DBPath = ExpandPath(c.DBPath)
	c.JSONLPath = ExpandPath(c.JSONLPath)
}

// GetConfigValue returns the env var value if set, otherwise the fallback.
func GetConfigValue(envKey, fallback string) string {
	if v := os.Getenv(envKey); v != "" {
		return v
	}
	return fallback
}

// ExpandPath expands ~ to the user's home directory.
// Returns the original path unchanged if it doesn't start with ~.
func ExpandPath(path string) string {
	if len(path) == 0 || path[0] != '~' {
		return path
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return path // Return original if we can't get home directory
	}

	return filepath.Join(home, path[1:])
}

// HelpfulConfigMessage explains how to configure the bibliography source.
func HelpfulConfigMessage() string {
	configPath := DefaultPath()
	return fmt.Sprintf(`No bibliography configured.

Tip: Create %s to set a default source:
  mkdir -p %s
  echo 'publications_src: /path/to/publications.bib' > %s

Or set %s, or pass --src.`,
		configPath,
		filepath.Dir(configPath),
		configPath,
		EnvPublicationsSrc)
}
