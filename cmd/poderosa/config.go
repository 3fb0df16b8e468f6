// Copyright (c) 2026 The Poderosa Authors. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config drives the headless terminal session. Flags override file values.
type Config struct {
	Shell            string `yaml:"shell"`
	Rows             int    `yaml:"rows"`
	Cols             int    `yaml:"cols"`
	SaveLines        int    `yaml:"saveLines"`
	ModifyCursorKeys int    `yaml:"modifyCursorKeys"`
	Verbose          bool   `yaml:"verbose"`
}

func defaultConfig() Config {
	shell := os.Getenv("SHELL")
	if shell == "" {
		shell = "/bin/sh"
	}
	return Config{
		Shell:            shell,
		Rows:             24,
		Cols:             80,
		SaveLines:        500,
		ModifyCursorKeys: 2,
	}
}

// loadConfig reads a YAML config file over the defaults.
func loadConfig(path string) (Config, error) {
	cfg := defaultConfig()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse %s: %w", path, err)
	}
	return cfg, cfg.validate()
}

func (cfg *Config) validate() error {
	if cfg.Rows < 1 || cfg.Cols < 1 {
		return fmt.Errorf("invalid geometry %dx%d", cfg.Cols, cfg.Rows)
	}
	if cfg.SaveLines < 0 {
		return fmt.Errorf("invalid saveLines %d", cfg.SaveLines)
	}
	if cfg.ModifyCursorKeys < 1 {
		return fmt.Errorf("modifyCursorKeys must be positive, got %d", cfg.ModifyCursorKeys)
	}
	return nil
}
