package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Defaults applied to any field left empty in the config file.
const (
	DefaultAPIURL      = "http://localhost:3001"
	DefaultTimeout     = 30 * time.Second
	DefaultRowsPerPage = 10
	DefaultCacheTTL    = 5 * time.Minute
)

// DefaultRowsPerPageOptions are the page sizes offered when none are configured.
var DefaultRowsPerPageOptions = []int{5, 10, 25, 50}

// Environment variables that override the file.
const (
	EnvAPIURL = "SUPTUI_API_URL"
	EnvConfig = "SUPTUI_CONFIG"
)

// Logging controls where the zap logger writes.
type Logging struct {
	Level string `yaml:"level"`
	File  string `yaml:"file"`
}

// Config is the content of config.yaml after defaults and overrides.
type Config struct {
	APIURL             string        `yaml:"api_url"`
	Timeout            time.Duration `yaml:"timeout"`
	Production         bool          `yaml:"production"`
	RowsPerPage        int           `yaml:"rows_per_page"`
	RowsPerPageOptions []int         `yaml:"rows_per_page_options"`
	ExportDir          string        `yaml:"export_dir"`
	CacheTTL           time.Duration `yaml:"cache_ttl"`
	Logging            Logging       `yaml:"logging"`
}

// DefaultPath returns $HOME/.config/suptui/config.yaml.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot determine home directory: %w", err)
	}
	return filepath.Join(home, ".config", "suptui", "config.yaml"), nil
}

// Load reads the config file at path. An empty path falls back to
// $SUPTUI_CONFIG and then to DefaultPath. A missing file is not an error:
// the defaults are returned instead.
func Load(path string) (Config, error) {
	var cfg Config
	if path == "" {
		path = os.Getenv(EnvConfig)
	}
	if path == "" {
		p, err := DefaultPath()
		if err != nil {
			return Config{}, err
		}
		path = p
	}

	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
	case err != nil:
		return Config{}, fmt.Errorf("read config %s: %w", path, err)
	default:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	if v := os.Getenv(EnvAPIURL); v != "" {
		cfg.APIURL = v
	}
	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

func (c *Config) applyDefaults() {
	if c.APIURL == "" {
		c.APIURL = DefaultAPIURL
	}
	c.normalizeAPIURL()
	if c.Timeout <= 0 {
		c.Timeout = DefaultTimeout
	}
	if c.RowsPerPage <= 0 {
		c.RowsPerPage = DefaultRowsPerPage
	}
	if len(c.RowsPerPageOptions) == 0 {
		c.RowsPerPageOptions = append([]int(nil), DefaultRowsPerPageOptions...)
	}
	if c.CacheTTL <= 0 {
		c.CacheTTL = DefaultCacheTTL
	}
	if c.ExportDir == "" {
		c.ExportDir = "."
	}
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
	if c.Logging.File == "" {
		dir, _ := os.UserCacheDir()
		c.Logging.File = filepath.Join(dir, "suptui", "suptui.log")
	}
}

// SetAPIURL overrides the API URL, as the --api-url flag does, with the same
// normalisation a configured URL gets.
func (c *Config) SetAPIURL(u string) error {
	c.APIURL = u
	c.normalizeAPIURL()
	return c.Validate()
}

func (c *Config) normalizeAPIURL() {
	c.APIURL = strings.TrimRight(c.APIURL, "/")
	if c.Production && strings.HasPrefix(c.APIURL, "http://") {
		c.APIURL = "https://" + strings.TrimPrefix(c.APIURL, "http://")
	}
}

// Validate checks the fields that cannot be defaulted.
func (c Config) Validate() error {
	u, err := url.Parse(c.APIURL)
	if err != nil {
		return fmt.Errorf("api_url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("api_url %q: scheme must be http or https", c.APIURL)
	}
	if u.Host == "" {
		return fmt.Errorf("api_url %q: missing host", c.APIURL)
	}
	for _, n := range c.RowsPerPageOptions {
		if n <= 0 {
			return fmt.Errorf("rows_per_page_options: %d is not a positive size", n)
		}
	}
	return nil
}
