package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("HOME", filepath.Join(t.TempDir(), "home"))
	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.ServerAddress() != "127.0.0.1:8090" {
		t.Fatalf("unexpected server address: %q", cfg.ServerAddress())
	}
	if cfg.ServerBaseURL() != "http://127.0.0.1:8090" {
		t.Fatalf("unexpected server base url: %q", cfg.ServerBaseURL())
	}
	if cfg.LogLevel() != "info" {
		t.Fatalf("unexpected log level: %q", cfg.LogLevel())
	}
	if cfg.CatalogTTLMinutes() != 30 {
		t.Fatalf("unexpected catalog ttl: %d", cfg.CatalogTTLMinutes())
	}
}

func TestLoadConfigFromTOML(t *testing.T) {
	home := filepath.Join(t.TempDir(), "home")
	t.Setenv("HOME", home)

	dataDir := filepath.Join(home, ".costwise")
	if err := os.MkdirAll(dataDir, 0o700); err != nil {
		t.Fatalf("MkdirAll: %v", err)
	}
	content := []byte("[server]\naddress = \"http://127.0.0.1:9999/\"\n\n[logging]\nlevel = \"debug\"\n")
	if err := os.WriteFile(filepath.Join(dataDir, "config.toml"), content, 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.ServerAddress() != "127.0.0.1:9999" {
		t.Fatalf("unexpected server address: %q", cfg.ServerAddress())
	}
	if cfg.LogLevel() != "debug" {
		t.Fatalf("unexpected log level: %q", cfg.LogLevel())
	}
}

func TestResolveCachePath(t *testing.T) {
	home := filepath.Join(t.TempDir(), "home")
	t.Setenv("HOME", home)

	cfg := Config{}
	path, err := cfg.ResolveCachePath()
	if err != nil {
		t.Fatalf("ResolveCachePath default: %v", err)
	}
	if want := filepath.Join(home, ".costwise", "catalog.db"); path != want {
		t.Fatalf("unexpected default path: got=%q want=%q", path, want)
	}

	cfg.Catalog.CachePath = "cache/catalog.db"
	path, err = cfg.ResolveCachePath()
	if err != nil {
		t.Fatalf("ResolveCachePath relative: %v", err)
	}
	if want := filepath.Join(home, ".costwise", "cache", "catalog.db"); path != want {
		t.Fatalf("unexpected relative path: got=%q want=%q", path, want)
	}
}

func TestResolveTokenPathHomeOverride(t *testing.T) {
	home := filepath.Join(t.TempDir(), "home")
	t.Setenv("HOME", home)

	cfg := Config{}
	cfg.Server.TokenPath = "~/secrets/token"
	path, err := cfg.ResolveTokenPath()
	if err != nil {
		t.Fatalf("ResolveTokenPath: %v", err)
	}
	if want := filepath.Join(home, "secrets", "token"); path != want {
		t.Fatalf("unexpected token path: got=%q want=%q", path, want)
	}
}
