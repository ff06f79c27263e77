package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds optional file-level settings read from config.yaml in the
// app directory. A missing file is not an error; every field has a
// runtime default.
type Config struct {
	DBPath           string  `yaml:"db_path"`
	CalorieTolerance float64 `yaml:"calorie_tolerance"`
}

func Load(path string) (Config, error) {
	var cfg Config
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config file: %w", err)
	}
	if cfg.CalorieTolerance < 0 || cfg.CalorieTolerance >= 1 {
		return cfg, fmt.Errorf("calorie_tolerance must be in [0, 1), got %v", cfg.CalorieTolerance)
	}
	return cfg, nil
}
