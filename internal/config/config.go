package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config is the optional app configuration loaded from ~/.ascend.yaml.
// Every field has a working default; a missing file is not an error.
type Config struct {
	DBPath   string   `yaml:"db_path"`
	Settings Settings `yaml:"settings"`
}

// Settings are the first-run defaults for the progression row's settings
// sub-object. Once the row exists these are never re-applied.
type Settings struct {
	AnimationsEnabled *bool  `yaml:"animations_enabled"`
	SoundEnabled      *bool  `yaml:"sound_enabled"`
	Theme             string `yaml:"theme"`
	Notifications     *bool  `yaml:"notifications"`
}

func Default() Config {
	return Config{}
}

// DefaultPath returns the conventional config location.
func DefaultPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("get home dir: %w", err)
	}
	return filepath.Join(homeDir, ".ascend.yaml"), nil
}

// Load reads the config at path. A missing file yields defaults.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return Default(), nil
	}
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

// LoadDefault loads from the conventional location.
func LoadDefault() (Config, error) {
	path, err := DefaultPath()
	if err != nil {
		return Config{}, err
	}
	return Load(path)
}
