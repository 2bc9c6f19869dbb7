package main

import (
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

const defaultServer = "http://localhost:5000"

type cliConfig struct {
	Server string `mapstructure:"server"`
	UserID string `mapstructure:"userId"`
}

func configPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "taskctl", "config.yaml"), nil
}

func loadCLIConfig() (*cliConfig, error) {
	cfg := &cliConfig{Server: defaultServer}

	path, err := configPath()
	if err != nil {
		return cfg, nil // no home dir, run on defaults
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	if err := v.ReadInConfig(); err != nil {
		return nil, err
	}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, err
	}
	if cfg.Server == "" {
		cfg.Server = defaultServer
	}
	return cfg, nil
}

func saveCLIConfig(cfg *cliConfig) error {
	path, err := configPath()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}

	v := viper.New()
	v.SetConfigType("yaml")
	v.Set("server", cfg.Server)
	v.Set("userId", cfg.UserID)
	return v.WriteConfigAs(path)
}
