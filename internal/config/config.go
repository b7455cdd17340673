// Package config loads collector settings from the settings file and
// YTA_* environment overrides, and resolves OAuth credential material.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
)

// Config is the explicit configuration the collector runs with. It is
// constructed once at the CLI boundary and passed down; inner packages
// never read the environment themselves.
type Config struct {
	ClientSecretFile string `json:"client_secret_file"`
	TokenFile        string `json:"token_file"`
	DBPath           string `json:"db_path"`
	// ChannelID, when set, skips channel discovery.
	ChannelID string `json:"channel_id"`
}

func DefaultConfig() Config {
	return Config{
		ClientSecretFile: "client_secret.json",
		TokenFile:        "token.json",
		DBPath:           "youtube_analytics.db",
	}
}

func ConfigDir() string {
	if runtime.GOOS == "windows" {
		return filepath.Join(os.Getenv("APPDATA"), "yta")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "yta")
}

func ConfigPath() string {
	return filepath.Join(ConfigDir(), "settings.json")
}

func Load() (Config, error) {
	return LoadFrom(ConfigPath())
}

// LoadFrom reads the settings file, then applies environment overrides.
// A missing file is not an error; defaults apply.
func LoadFrom(path string) (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return applyEnv(cfg), nil
		}
		return cfg, fmt.Errorf("config: reading %s: %w", path, err)
	}

	if err := json.Unmarshal(data, &cfg); err != nil {
		return DefaultConfig(), fmt.Errorf("config: parsing %s: %w", path, err)
	}

	if cfg.ClientSecretFile == "" {
		cfg.ClientSecretFile = DefaultConfig().ClientSecretFile
	}
	if cfg.TokenFile == "" {
		cfg.TokenFile = DefaultConfig().TokenFile
	}
	if cfg.DBPath == "" {
		cfg.DBPath = DefaultConfig().DBPath
	}

	return applyEnv(cfg), nil
}

func applyEnv(cfg Config) Config {
	if v := os.Getenv("YTA_CLIENT_SECRET_FILE"); v != "" {
		cfg.ClientSecretFile = v
	}
	if v := os.Getenv("YTA_TOKEN_FILE"); v != "" {
		cfg.TokenFile = v
	}
	if v := os.Getenv("YTA_DB_PATH"); v != "" {
		cfg.DBPath = v
	}
	if v := os.Getenv("YTA_CHANNEL_ID"); v != "" {
		cfg.ChannelID = v
	}
	return cfg
}

func Save(cfg Config) error {
	return SaveTo(ConfigPath(), cfg)
}

func SaveTo(path string, cfg Config) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("config: creating config dir: %w", err)
	}

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("config: marshaling: %w", err)
	}
	data = append(data, '\n')

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("config: writing %s: %w", path, err)
	}
	return nil
}
