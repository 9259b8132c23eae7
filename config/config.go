// Copyright 2026 The SensorShape Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package config loads the tool configuration from a YAML file,
// layered over built-in defaults.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/solidgeo/sensorshape/logger"
)

// Defaults are the tessellation resolutions applied when a request
// leaves them zero.
type Defaults struct {
	ThetaSegments   int `yaml:"theta_segments"`
	PhiSegments     int `yaml:"phi_segments"`
	StackPartitions int `yaml:"stack_partitions"`
	SlicePartitions int `yaml:"slice_partitions"`
}

// Config is the full tool configuration.
type Config struct {
	// Workers sizes the tessellation pool; 0 means GOMAXPROCS.
	Workers int `yaml:"workers"`

	Log logger.Options `yaml:"log"`

	Defaults Defaults `yaml:"defaults"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Log: logger.DefaultOptions(),
		Defaults: Defaults{
			ThetaSegments:   32,
			PhiSegments:     1,
			StackPartitions: 64,
			SlicePartitions: 64,
		},
	}
}

// Load reads path and unmarshals it over the defaults, so omitted
// keys keep their built-in values.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("config: parse %s: %w", path, err)
	}
	return cfg, nil
}
