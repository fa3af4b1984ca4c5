package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	FileName   = "banditboard.yaml"
	EnvDataDir = "BANDITBOARD_DATA"
)

type Config struct {
	DataDir   string
	DBPath    string
	LogLevel  string
	AssumeYes bool
	ExportDir string
}

// fileConfig is the optional banditboard.yaml living in the data directory.
type fileConfig struct {
	DBPath    string `yaml:"db_path"`
	LogLevel  string `yaml:"log_level"`
	AssumeYes bool   `yaml:"assume_yes"`
	ExportDir string `yaml:"export_dir"`
}

func New(dataDir string) (Config, error) {
	if dataDir == "" {
		dataDir = os.Getenv(EnvDataDir)
	}
	if dataDir == "" {
		dataDir = "."
	}
	cfg := Config{
		DataDir:   dataDir,
		DBPath:    filepath.Join(dataDir, ".banditboard", "board.db"),
		LogLevel:  "info",
		ExportDir: dataDir,
	}
	if err := cfg.applyFile(filepath.Join(dataDir, FileName)); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) applyFile(path string) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("read config: %w", err)
	}
	fc := fileConfig{}
	if err := yaml.Unmarshal(raw, &fc); err != nil {
		return fmt.Errorf("decode %s: %w", FileName, err)
	}
	if p := strings.TrimSpace(fc.DBPath); p != "" {
		c.DBPath = c.resolve(p)
	}
	if lvl := strings.TrimSpace(fc.LogLevel); lvl != "" {
		c.LogLevel = lvl
	}
	if d := strings.TrimSpace(fc.ExportDir); d != "" {
		c.ExportDir = c.resolve(d)
	}
	c.AssumeYes = fc.AssumeYes
	return nil
}

func (c Config) resolve(path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(c.DataDir, path)
}
