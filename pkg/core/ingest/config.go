package ingest

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v2"
)

const (
	// DefaultUserAgent satisfies the SEC fair-access policy; deployments
	// should override it with a real contact address.
	DefaultUserAgent = "FilingParser/1.0 (contact@example.com)"

	DefaultTimeoutSeconds = 30

	// DefaultMaxPackageSize mirrors the scanner's ceiling.
	DefaultMaxPackageSize = 200 * 1024 * 1024
)

// ClientConfig carries the EDGAR client settings.
type ClientConfig struct {
	UserAgent      string `yaml:"user_agent"`
	CacheDir       string `yaml:"cache_dir"`
	TimeoutSeconds int    `yaml:"timeout_seconds"`
	MaxPackageSize int64  `yaml:"max_package_size"`
}

// DefaultConfig returns the built-in settings.
func DefaultConfig() ClientConfig {
	var cfg ClientConfig
	cfg.applyDefaults()
	return cfg
}

func (c *ClientConfig) applyDefaults() {
	if c.UserAgent == "" {
		c.UserAgent = DefaultUserAgent
	}
	if c.TimeoutSeconds <= 0 {
		c.TimeoutSeconds = DefaultTimeoutSeconds
	}
	if c.MaxPackageSize <= 0 {
		c.MaxPackageSize = DefaultMaxPackageSize
	}
}

// LoadConfig reads a YAML config file, then applies environment overrides.
// A missing file is not an error; the defaults apply.
//
// Environment variables (loaded from .env when present):
//
//	EDGAR_USER_AGENT
//	EDGAR_CACHE_DIR
//	EDGAR_TIMEOUT_SECONDS
//	EDGAR_MAX_PACKAGE_SIZE
func LoadConfig(path string) (ClientConfig, error) {
	var cfg ClientConfig

	if path != "" {
		data, err := os.ReadFile(path)
		if err == nil {
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return cfg, fmt.Errorf("failed to parse config %s: %w", path, err)
			}
		} else if !os.IsNotExist(err) {
			return cfg, fmt.Errorf("failed to read config %s: %w", path, err)
		}
	}

	// .env is optional; ignore the error when absent.
	godotenv.Load()

	if v := os.Getenv("EDGAR_USER_AGENT"); v != "" {
		cfg.UserAgent = v
	}
	if v := os.Getenv("EDGAR_CACHE_DIR"); v != "" {
		cfg.CacheDir = v
	}
	if v := os.Getenv("EDGAR_TIMEOUT_SECONDS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.TimeoutSeconds = n
		}
	}
	if v := os.Getenv("EDGAR_MAX_PACKAGE_SIZE"); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			cfg.MaxPackageSize = n
		}
	}

	cfg.applyDefaults()
	return cfg, nil
}
