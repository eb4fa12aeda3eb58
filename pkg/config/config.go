package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

const (
	xdgAppName = "classync"
	configFile = "config.json"

	// DefaultLinkFile is read from the working directory when neither the
	// config nor the -file flag names one.
	DefaultLinkFile = "sync.json"
)

type Config struct {
	// CanvasURL is the base URL of the Canvas instance, e.g.
	// https://school.instructure.com. There is no sensible default.
	CanvasURL string `json:"canvas_url"`
	// LinkFile optionally overrides where the link file is looked up.
	LinkFile string `json:"link_file,omitempty"`
}

func GetConfigPath() (string, error) {
	xdgHome, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(xdgHome, ".config", xdgAppName, configFile), nil
}

func Load() (*Config, error) {
	path, err := GetConfigPath()
	if err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &Config{}, nil
		}
		return nil, err
	}
	defer f.Close()

	var cfg Config
	if err := json.NewDecoder(f).Decode(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	return &cfg, nil
}

func Save(cfg *Config) error {
	path, err := GetConfigPath()
	if err != nil {
		return err
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0600)
	if err != nil {
		return fmt.Errorf("failed to open config file for writing: %w", err)
	}
	defer f.Close()

	encoder := json.NewEncoder(f)
	encoder.SetIndent("", "  ")
	return encoder.Encode(cfg)
}
