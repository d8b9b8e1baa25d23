// Package config loads the optional YAML settings file. Command-line flags
// override anything read here.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/chinmaymudholkar/automation-snippets/internal/datetime"
	"github.com/chinmaymudholkar/automation-snippets/internal/random"
)

// Config is the settings file layout.
type Config struct {
	Log      LogConfig      `yaml:"log"`
	Database DatabaseConfig `yaml:"database"`
	DateTime DateTimeConfig `yaml:"datetime"`
	Random   RandomConfig   `yaml:"random"`
	Wait     WaitConfig     `yaml:"wait"`
}

type LogConfig struct {
	Level      string `yaml:"level"`
	Format     string `yaml:"format"`
	File       string `yaml:"file"`
	MaxSizeMB  int    `yaml:"max_size_mb"`
	MaxBackups int    `yaml:"max_backups"`
	MaxAgeDays int    `yaml:"max_age_days"`
	Compress   bool   `yaml:"compress"`
}

type DatabaseConfig struct {
	DSN string `yaml:"dsn"`
}

type DateTimeConfig struct {
	DateFormat      string `yaml:"date_format"`
	TimestampFormat string `yaml:"timestamp_format"`
}

type RandomConfig struct {
	Length int `yaml:"length"`
}

type WaitConfig struct {
	ProgressInterval time.Duration `yaml:"progress_interval"`
}

// DefaultPaths are tried in order when no explicit path is given.
func DefaultPaths() []string {
	paths := []string{"snippets.yaml"}
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, ".config", "snippets", "config.yaml"))
	}
	return paths
}

// Default returns the settings used when no file is found.
func Default() *Config {
	c := &Config{}
	c.applyDefaults()
	return c
}

// Load reads path, or the first existing default path when path is empty.
// A missing default file is not an error; a missing explicit file is.
func Load(path string) (*Config, string, error) {
	if path != "" {
		c, err := loadFile(path)
		return c, path, err
	}
	for _, p := range DefaultPaths() {
		if _, err := os.Stat(p); err == nil {
			c, err := loadFile(p)
			return c, p, err
		}
	}
	return Default(), "", nil
}

func loadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}
	c, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	return c, nil
}

// Parse decodes YAML settings after expanding ${VAR} and ${VAR:-default}
// references against the environment. Unknown keys are rejected.
func Parse(data []byte) (*Config, error) {
	c := &Config{}
	dec := yaml.NewDecoder(bytes.NewReader([]byte(expandEnv(string(data)))))
	dec.KnownFields(true)
	if err := dec.Decode(c); err != nil && !errors.Is(err, io.EOF) {
		return nil, err
	}
	c.applyDefaults()
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *Config) applyDefaults() {
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Log.Format == "" {
		c.Log.Format = "text"
	}
	if c.Log.MaxSizeMB == 0 {
		c.Log.MaxSizeMB = 100
	}
	if c.DateTime.DateFormat == "" {
		c.DateTime.DateFormat = datetime.DateFormat
	}
	if c.DateTime.TimestampFormat == "" {
		c.DateTime.TimestampFormat = datetime.TimestampFormat
	}
	if c.Random.Length == 0 {
		c.Random.Length = random.DefaultLength
	}
	if c.Wait.ProgressInterval == 0 {
		c.Wait.ProgressInterval = 10 * time.Second
	}
}

// Validate rejects settings that cannot work.
func (c *Config) Validate() error {
	switch strings.ToLower(c.Log.Format) {
	case "text", "json":
	default:
		return fmt.Errorf("log.format must be text or json, got %q", c.Log.Format)
	}
	if c.Random.Length < 0 {
		return fmt.Errorf("random.length must not be negative, got %d", c.Random.Length)
	}
	if c.Wait.ProgressInterval < 0 {
		return fmt.Errorf("wait.progress_interval must not be negative, got %s", c.Wait.ProgressInterval)
	}
	return nil
}

// expandEnv replaces ${var} or $var in the string according to the values
// of the current environment variables. It supports default values using
// the ${var:-default} syntax.
func expandEnv(s string) string {
	return os.Expand(s, func(key string) string {
		if k, def, cut := strings.Cut(key, ":-"); cut {
			if v, ok := os.LookupEnv(k); ok && v != "" {
				return v
			}
			return def
		}
		return os.Getenv(key)
	})
}
