// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

// Package config loads gatesim host settings from YAML files and environment
// variables.
//
package config

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"

	gs "github.com/db47h/gatesim"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// DefaultFile is the config file read by Load, relative to the working
// directory.
//
const DefaultFile = "gatesim.yaml"

// Store backends.
//
const (
	StoreDir    = "dir"
	StoreSQLite = "sqlite"
)

// Config holds all gatesim host settings.
//
type Config struct {
	// SaveDir is the directory of the directory store, and the default
	// location of the SQLite database.
	SaveDir string `yaml:"save_dir"`

	// Store selects the persistence backend: "dir" or "sqlite".
	Store string `yaml:"store"`

	// SQLitePath is the SQLite database file. Empty means SaveDir/gatesim.db.
	SQLitePath string `yaml:"sqlite_path,omitempty"`

	Logging LoggingConfig `yaml:"logging"`
	Chip    ChipConfig    `yaml:"chip"`
	Engine  EngineConfig  `yaml:"engine"`
}

// LoggingConfig configures the host logger.
//
type LoggingConfig struct {
	// Level is "info" (default), "debug" or "trace".
	Level string `yaml:"level"`
}

// ChipConfig names the gate kinds that become chip input and output ports
// when capturing a circuit.
//
type ChipConfig struct {
	Inputs  string `yaml:"inputs"`
	Outputs string `yaml:"outputs"`
}

// EngineConfig configures simulation runs.
//
type EngineConfig struct {
	// Frames is the default number of frames for the run command.
	Frames int `yaml:"frames"`
}

// Default returns the default configuration.
//
func Default() *Config {
	return &Config{
		SaveDir: "./saves",
		Store:   StoreDir,
		Logging: LoggingConfig{Level: "info"},
		Chip:    ChipConfig{Inputs: gs.Toggle.String(), Outputs: gs.Light.String()},
		Engine:  EngineConfig{Frames: 10},
	}
}

// Load loads the configuration in this order: defaults, then DefaultFile if
// it exists, then environment variables.
//
func Load() (*Config, error) {
	c := Default()
	if _, err := os.Stat(DefaultFile); err == nil {
		if c, err = LoadFromFile(DefaultFile); err != nil {
			return nil, err
		}
	}
	applyEnvOverrides(c)
	return c, nil
}

// LoadFromFile loads the configuration from a YAML file. Settings missing
// from the file keep their default value.
//
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "read config file")
	}
	c := Default()
	if err = yaml.Unmarshal(data, c); err != nil {
		return nil, errors.Wrapf(err, "parse config file %s", path)
	}
	return c, nil
}

// Validate checks that the configuration is usable.
//
func (c *Config) Validate() error {
	switch c.Store {
	case StoreDir, StoreSQLite:
	default:
		return errors.Errorf("invalid store: %q (valid: %s, %s)", c.Store, StoreDir, StoreSQLite)
	}
	if c.SaveDir == "" && (c.Store == StoreDir || c.SQLitePath == "") {
		return errors.New("save_dir must not be empty")
	}
	switch c.Logging.Level {
	case "", "info", "debug", "trace":
	default:
		return errors.Errorf("invalid log level: %q (valid: info, debug, trace)", c.Logging.Level)
	}
	for _, k := range []string{c.Chip.Inputs, c.Chip.Outputs} {
		if gs.ParseGateKind(k) == gs.Custom {
			return errors.Errorf("invalid chip port kind: %q", k)
		}
	}
	if strings.EqualFold(c.Chip.Inputs, c.Chip.Outputs) {
		return errors.Errorf("chip inputs and outputs must differ, both are %s", c.Chip.Inputs)
	}
	if c.Engine.Frames < 0 {
		return errors.Errorf("engine.frames must be non-negative, got %d", c.Engine.Frames)
	}
	return nil
}

// DBPath returns the SQLite database path.
//
func (c *Config) DBPath() string {
	if c.SQLitePath != "" {
		return c.SQLitePath
	}
	return filepath.Join(c.SaveDir, "gatesim.db")
}

// Policy returns the chip boundary policy described by c.Chip.
//
func (c *Config) Policy() gs.PortPolicy {
	return gs.KindPolicy(gs.ParseGateKind(c.Chip.Inputs), gs.ParseGateKind(c.Chip.Outputs))
}

func applyEnvOverrides(c *Config) {
	if v := os.Getenv("GATESIM_SAVE_DIR"); v != "" {
		c.SaveDir = v
	}
	if v := os.Getenv("GATESIM_STORE"); v != "" {
		c.Store = strings.ToLower(v)
	}
	if v := os.Getenv("GATESIM_SQLITE_PATH"); v != "" {
		c.SQLitePath = v
	}
	if v := os.Getenv("GATESIM_LOG_LEVEL"); v != "" {
		c.Logging.Level = strings.ToLower(v)
	}
	if v := os.Getenv("GATESIM_FRAMES"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.Engine.Frames = n
		}
	}
}
