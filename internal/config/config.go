package config

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
)

const defaultAPIURL = "http://127.0.0.1:5000"

// Config represents the client configuration
type Config struct {
	APIURL      string `json:"api_url"`
	TokenPath   string `json:"token_path,omitempty"`
	DownloadDir string `json:"download_dir,omitempty"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		APIURL:      defaultAPIURL,
		DownloadDir: ".",
	}
}

// configDir returns the config directory path (~/.wardkeep)
func configDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".wardkeep"), nil
}

// configPath returns the full config file path (~/.wardkeep/config.json)
func configPath() (string, error) {
	dir, err := configDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.json"), nil
}

// DefaultTokenPath returns the default credential file path (~/.wardkeep/token)
func DefaultTokenPath() (string, error) {
	dir, err := configDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "token"), nil
}

// Load reads the config from disk and applies environment overrides.
// A missing config file is not an error; defaults are used instead.
func Load() (*Config, error) {
	// A .env in the working directory supplies overrides for local
	// development without touching the config file. Best effort.
	_ = godotenv.Load()

	cfg := DefaultConfig()

	path, err := configPath()
	if err != nil {
		return nil, err
	}
	if data, err := os.ReadFile(path); err == nil {
		if err := json.Unmarshal(data, cfg); err != nil {
			return nil, err
		}
	} else if !os.IsNotExist(err) {
		return nil, err
	}

	if v := os.Getenv("WARDKEEP_API_URL"); v != "" {
		cfg.APIURL = v
	}
	if v := os.Getenv("WARDKEEP_TOKEN_PATH"); v != "" {
		cfg.TokenPath = v
	}
	if v := os.Getenv("WARDKEEP_DOWNLOAD_DIR"); v != "" {
		cfg.DownloadDir = v
	}

	if cfg.APIURL == "" {
		cfg.APIURL = defaultAPIURL
	}
	if cfg.TokenPath == "" {
		cfg.TokenPath, err = DefaultTokenPath()
		if err != nil {
			return nil, err
		}
	}
	if cfg.DownloadDir == "" {
		cfg.DownloadDir = "."
	}

	return cfg, nil
}

// Save writes the config to the global location (~/.wardkeep/config.json)
func Save(cfg *Config) error {
	dir, err := configDir()
	if err != nil {
		return err
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	path, err := configPath()
	if err != nil {
		return err
	}

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}
