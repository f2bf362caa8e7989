package config

import (
	"path/filepath"
	"strings"
	"testing"
)

func TestPaths(t *testing.T) {
	t.Setenv("HOME", filepath.Join(t.TempDir(), "home"))

	dataDir, err := DataDir()
	if err != nil {
		t.Fatalf("DataDir: %v", err)
	}
	if !strings.HasSuffix(dataDir, ".costwise") {
		t.Fatalf("unexpected data dir: %s", dataDir)
	}

	configPath, err := ConfigPath()
	if err != nil {
		t.Fatalf("ConfigPath: %v", err)
	}
	if !strings.HasSuffix(configPath, filepath.Join(".costwise", "config.toml")) {
		t.Fatalf("unexpected config path: %s", configPath)
	}

	tokenPath, err := TokenPath()
	if err != nil {
		t.Fatalf("TokenPath: %v", err)
	}
	if !strings.HasSuffix(tokenPath, filepath.Join(".costwise", "token")) {
		t.Fatalf("unexpected token path: %s", tokenPath)
	}

	cachePath, err := CatalogCachePath()
	if err != nil {
		t.Fatalf("CatalogCachePath: %v", err)
	}
	if !strings.HasSuffix(cachePath, filepath.Join(".costwise", "catalog.db")) {
		t.Fatalf("unexpected cache path: %s", cachePath)
	}
}
