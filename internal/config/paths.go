package config

import (
	"os"
	"path/filepath"
)

const appDirName = ".costwise"

// DataDir returns the base data directory for Costwise.
func DataDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, appDirName), nil
}

// ConfigPath returns the path to the main configuration file.
func ConfigPath() (string, error) {
	dataDir, err := DataDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dataDir, "config.toml"), nil
}

// TokenPath returns the path to the API token file.
func TokenPath() (string, error) {
	dataDir, err := DataDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dataDir, "token"), nil
}

// CatalogCachePath returns the path to the ingredient catalog cache database.
func CatalogCachePath() (string, error) {
	dataDir, err := DataDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dataDir, "catalog.db"), nil
}

// EnsureDataDir creates the data directory if it does not exist yet.
func EnsureDataDir() (string, error) {
	dataDir, err := DataDir()
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return "", err
	}
	return dataDir, nil
}
