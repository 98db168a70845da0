package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/sungur/cells/internal/log"
)

// ErrConfigFileParse is returned when an explicitly requested config file is not valid YAML.
var ErrConfigFileParse = errors.New("failed to parse config file")

// Config file search paths (in order of precedence within the project scope).
var projectConfigFiles = []string{".cells.yaml", ".cells.yml", "cells.yaml"}

// globalConfigPath returns the global config file path (~/.cells/config.yaml).
func globalConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, DirName, "config.yaml")
}

// LoadConfig loads and merges cells configuration.
//
// Precedence (later overrides earlier):
//  1. Global config (~/.cells/config.yaml)
//  2. Project config (.cells.yaml, .cells.yml, cells.yaml in projectPath)
//  3. CELLS_FILE environment variable
//
// CLI flags should be applied on top of the returned config by the caller.
func LoadConfig(projectPath string) CellsConfig {
	globalCfg := loadOptional(globalConfigPath())
	projectCfg := loadProjectConfig(projectPath)
	cfg := MergeConfigs(globalCfg, projectCfg)
	if env := os.Getenv(EnvCellsFile); env != "" {
		cfg.CellsFile = env
	}
	return cfg
}

// LoadConfigFile loads a single, explicitly requested config file.
// Unlike LoadConfig, a missing or malformed file is an error.
func LoadConfigFile(path string) (*CellsConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	var cfg CellsConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("%w %s: %w", ErrConfigFileParse, path, err)
	}
	anchorCellsFile(&cfg, path)
	return &cfg, nil
}

// loadProjectConfig finds and loads project-specific config.
func loadProjectConfig(projectPath string) *CellsConfig {
	for _, filename := range projectConfigFiles {
		cfg := loadOptional(filepath.Join(projectPath, filename))
		if cfg != nil {
			return cfg
		}
	}
	return nil
}

// loadOptional reads a config file that may legitimately be absent.
// Returns nil if the file does not exist or cannot be parsed.
func loadOptional(path string) *CellsConfig {
	if path == "" {
		return nil
	}
	cfg, err := LoadConfigFile(path)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			log.Warnf("Ignoring config %s: %v", path, err)
		}
		return nil
	}
	log.Debugf("Loaded config: %s", path)
	return cfg
}

// anchorCellsFile makes a relative CellsFile relative to the config file's directory.
func anchorCellsFile(cfg *CellsConfig, configPath string) {
	if cfg.CellsFile == "" || filepath.IsAbs(cfg.CellsFile) {
		return
	}
	cfg.CellsFile = filepath.Join(filepath.Dir(configPath), cfg.CellsFile)
}

// MergeConfigs merges multiple configs with later values taking precedence.
// nil configs are skipped.
func MergeConfigs(configs ...*CellsConfig) CellsConfig {
	result := CellsConfig{}

	for _, cfg := range configs {
		if cfg == nil {
			continue
		}

		if cfg.CellsFile != "" {
			result.CellsFile = cfg.CellsFile
		}
		if cfg.Buck != "" {
			result.Buck = cfg.Buck
		}
		if cfg.FromBuck != nil {
			result.FromBuck = cfg.FromBuck
		}
		if cfg.Absolute != nil {
			result.Absolute = cfg.Absolute
		}
		if cfg.LogLevel != "" {
			result.LogLevel = cfg.LogLevel
		}
		if cfg.Prefix != nil {
			result.Prefix = cfg.Prefix
		}
	}

	return result
}
