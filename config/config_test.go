// Copyright 2026 The SensorShape Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadLayersOverDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sensorshape.yaml")
	doc := `
workers: 4
log:
  level: debug
  file: /var/log/sensorshape.log
defaults:
  theta_segments: 64
`
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 4, cfg.Workers)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "/var/log/sensorshape.log", cfg.Log.File)
	assert.Equal(t, 64, cfg.Defaults.ThetaSegments)

	// Omitted keys keep their built-in values.
	def := Default()
	assert.Equal(t, def.Defaults.PhiSegments, cfg.Defaults.PhiSegments)
	assert.Equal(t, def.Defaults.StackPartitions, cfg.Defaults.StackPartitions)
	assert.Equal(t, def.Log.MaxSizeMB, cfg.Log.MaxSizeMB)
}

func TestLoadMissingFile(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
	// Defaults still come back usable.
	assert.Equal(t, Default(), cfg)
}

func TestLoadMalformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("workers: [nope"), 0o644))
	_, err := Load(path)
	assert.Error(t, err)
}
