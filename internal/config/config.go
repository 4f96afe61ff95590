// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package config loads the benchreport configuration file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"gopkg.in/yaml.v3"
)

// DefaultFile is the configuration file searched for in the working
// directory when no path is given.
const DefaultFile = "benchreport.yaml"

// Config is the benchreport configuration. Command-line flags
// override its values.
type Config struct {
	// InputDir holds the report .txt files.
	InputDir string `yaml:"input_dir"`
	// Output is the dataset location: a path, "-", or gs://bucket/object.
	Output string `yaml:"output"`
	// PlotsDir receives the charts drawn by analyze.
	PlotsDir   string `yaml:"plots_dir"`
	PlotFormat string `yaml:"plot_format"`

	// Parallel is the number of files parsed at once.
	Parallel int  `yaml:"parallel"`
	Strict   bool `yaml:"strict"`

	// MinThroughput is the throughput a record must exceed to be
	// summarized.
	MinThroughput float64 `yaml:"min_throughput"`

	LogLevel string `yaml:"log_level"`
	LogJSON  bool   `yaml:"log_json"`

	Database Database `yaml:"database"`
}

// Database configures where parsed records are stored. An empty
// Driver disables storage.
type Database struct {
	Driver string `yaml:"driver"`
	DSN    string `yaml:"dsn"`
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		InputDir:   "analysis/benchmark_files",
		Output:     "analysis/benchmark_csv/benchmarks.csv",
		PlotsDir:   "analysis/plots",
		PlotFormat: "png",
		Parallel:   4,
		LogLevel:   "info",
	}
}

// Load reads the configuration file at path over the defaults. If
// path is empty, Load reads DefaultFile if it exists and otherwise
// returns the defaults.
func Load(path string) (*Config, error) {
	cfg := Default()
	name := path
	if name == "" {
		name = DefaultFile
	}
	data, err := os.ReadFile(name)
	if err != nil {
		if path == "" && errors.Is(err, fs.ErrNotExist) {
			return cfg, nil
		}
		return nil, err
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config file %s: %w", name, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	return cfg, nil
}

// Validate checks cfg for values that cannot work.
func (cfg *Config) Validate() error {
	if cfg.Parallel < 1 {
		return fmt.Errorf("parallel must be at least 1, got %d", cfg.Parallel)
	}
	if (cfg.Database.Driver == "") != (cfg.Database.DSN == "") {
		return errors.New("database.driver and database.dsn must be set together")
	}
	return nil
}
