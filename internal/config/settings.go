package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
)

const defaultServerAddress = "127.0.0.1:8090"
const defaultCatalogTTLMinutes = 30

type Config struct {
	Server  ServerConfig  `toml:"server"`
	Logging LoggingConfig `toml:"logging"`
	Catalog CatalogConfig `toml:"catalog"`
}

type ServerConfig struct {
	Address   string `toml:"address"`
	TokenPath string `toml:"token_path"`
}

type LoggingConfig struct {
	Level string `toml:"level"`
}

type CatalogConfig struct {
	CachePath  string `toml:"cache_path"`
	TTLMinutes int    `toml:"ttl_minutes"`
}

func DefaultConfig() Config {
	return Config{
		Server: ServerConfig{
			Address: defaultServerAddress,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
		Catalog: CatalogConfig{
			TTLMinutes: defaultCatalogTTLMinutes,
		},
	}
}

func LoadConfig() (Config, error) {
	path, err := ConfigPath()
	if err != nil {
		return Config{}, err
	}
	return loadConfigFromPath(path)
}

func (c Config) ServerAddress() string {
	addr := strings.TrimSpace(c.Server.Address)
	if addr == "" {
		return defaultServerAddress
	}
	addr = strings.TrimPrefix(addr, "http://")
	addr = strings.TrimPrefix(addr, "https://")
	addr = strings.TrimRight(addr, "/")
	if addr == "" {
		return defaultServerAddress
	}
	return addr
}

func (c Config) ServerBaseURL() string {
	return "http://" + c.ServerAddress()
}

func (c Config) LogLevel() string {
	level := strings.TrimSpace(c.Logging.Level)
	if level == "" {
		return "info"
	}
	return level
}

// ResolveTokenPath returns the API token file location, honoring an override
// from the config file.
func (c Config) ResolveTokenPath() (string, error) {
	path := strings.TrimSpace(c.Server.TokenPath)
	if path == "" {
		return TokenPath()
	}
	return resolveConfigPath(path)
}

// ResolveCachePath returns the catalog cache database location, honoring an
// override from the config file.
func (c Config) ResolveCachePath() (string, error) {
	path := strings.TrimSpace(c.Catalog.CachePath)
	if path == "" {
		return CatalogCachePath()
	}
	return resolveConfigPath(path)
}

func (c Config) CatalogTTLMinutes() int {
	if c.Catalog.TTLMinutes <= 0 {
		return defaultCatalogTTLMinutes
	}
	return c.Catalog.TTLMinutes
}

func loadConfigFromPath(path string) (Config, error) {
	cfg := DefaultConfig()
	if err := readTOML(path, &cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func readTOML(path string, out any) error {
	path = strings.TrimSpace(path)
	if path == "" {
		return errors.New("path is required")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return err
	}
	if len(strings.TrimSpace(string(data))) == 0 {
		return nil
	}
	return toml.Unmarshal(data, out)
}

func resolveConfigPath(path string) (string, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return "", errors.New("path is required")
	}
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		return filepath.Join(home, path[2:]), nil
	}
	if filepath.IsAbs(path) {
		return path, nil
	}
	dataDir, err := DataDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dataDir, path), nil
}
