package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatalf("write config.yaml: %v", err)
	}
	return path
}

func TestLoad_File(t *testing.T) {
	t.Setenv(EnvAPIURL, "")
	path := writeConfig(t, `
api_url: http://api.example.com/
timeout: 10s
rows_per_page: 25
rows_per_page_options: [10, 25]
export_dir: /tmp/out
cache_ttl: 1m
logging:
  level: debug
  file: /tmp/suptui.log
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.APIURL != "http://api.example.com" {
		t.Errorf("unexpected APIURL: %s", cfg.APIURL)
	}
	if cfg.Timeout != 10*time.Second {
		t.Errorf("unexpected Timeout: %s", cfg.Timeout)
	}
	if cfg.RowsPerPage != 25 || len(cfg.RowsPerPageOptions) != 2 {
		t.Errorf("unexpected paging: %d %v", cfg.RowsPerPage, cfg.RowsPerPageOptions)
	}
	if cfg.CacheTTL != time.Minute {
		t.Errorf("unexpected CacheTTL: %s", cfg.CacheTTL)
	}
	if cfg.Logging.Level != "debug" || cfg.Logging.File != "/tmp/suptui.log" {
		t.Errorf("unexpected Logging: %+v", cfg.Logging)
	}
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	t.Setenv(EnvAPIURL, "")
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.APIURL != DefaultAPIURL {
		t.Errorf("unexpected APIURL: %s", cfg.APIURL)
	}
	if cfg.Timeout != DefaultTimeout || cfg.RowsPerPage != DefaultRowsPerPage || cfg.CacheTTL != DefaultCacheTTL {
		t.Errorf("defaults not applied: %+v", cfg)
	}
	if len(cfg.RowsPerPageOptions) != 4 {
		t.Errorf("unexpected RowsPerPageOptions: %v", cfg.RowsPerPageOptions)
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	path := writeConfig(t, "api_url: http://file.example.com\n")
	t.Setenv(EnvAPIURL, "http://env.example.com")
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.APIURL != "http://env.example.com" {
		t.Errorf("env override ignored: %s", cfg.APIURL)
	}

	t.Setenv(EnvConfig, path)
	t.Setenv(EnvAPIURL, "")
	cfg, err = Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.APIURL != "http://file.example.com" {
		t.Errorf("SUPTUI_CONFIG ignored: %s", cfg.APIURL)
	}
}

func TestLoad_ProductionUpgradesScheme(t *testing.T) {
	t.Setenv(EnvAPIURL, "")
	cfg, err := Load(writeConfig(t, "api_url: http://api.example.com\nproduction: true\n"))
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.APIURL != "https://api.example.com" {
		t.Errorf("expected https upgrade, got %s", cfg.APIURL)
	}
}

func TestSetAPIURL(t *testing.T) {
	cfg := Config{Production: true}
	if err := cfg.SetAPIURL("http://flag.example.com/"); err != nil {
		t.Fatalf("SetAPIURL returned error: %v", err)
	}
	if cfg.APIURL != "https://flag.example.com" {
		t.Errorf("expected https upgrade of the override, got %s", cfg.APIURL)
	}

	cfg = Config{}
	if err := cfg.SetAPIURL("http://localhost:4000"); err != nil {
		t.Fatalf("SetAPIURL returned error: %v", err)
	}
	if cfg.APIURL != "http://localhost:4000" {
		t.Errorf("non-production URL changed: %s", cfg.APIURL)
	}
	if err := cfg.SetAPIURL("ftp://x"); err == nil {
		t.Error("expected error for ftp scheme")
	}
}

func TestLoad_Invalid(t *testing.T) {
	t.Setenv(EnvAPIURL, "")
	cases := map[string]string{
		"bad yaml":    "api_url: [",
		"bad scheme":  "api_url: ftp://x\n",
		"no host":     "api_url: http://\n",
		"bad options": "rows_per_page_options: [10, 0]\n",
	}
	for name, content := range cases {
		if _, err := Load(writeConfig(t, content)); err == nil {
			t.Errorf("%s: expected error, got nil", name)
		}
	}
}
