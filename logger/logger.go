// Copyright 2026 The SensorShape Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package logger builds the process-wide zap logger: a console core
// for interactive use, optionally teed with a JSON core writing to a
// size-rotated file.
package logger

import (
	"fmt"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Options selects the log level and the optional rotated file sink.
type Options struct {
	// Level is a zap level name: debug, info, warn, error.
	Level string `yaml:"level"`

	// File is the log file path; empty disables the file sink.
	File string `yaml:"file"`

	// MaxSizeMB rotates the file once it exceeds this size.
	MaxSizeMB int `yaml:"max_size_mb"`

	// MaxBackups is how many rotated files to retain.
	MaxBackups int `yaml:"max_backups"`

	// MaxAgeDays drops rotated files older than this.
	MaxAgeDays int `yaml:"max_age_days"`

	// Compress gzips rotated files.
	Compress bool `yaml:"compress"`
}

// DefaultOptions returns info-level console-only logging.
func DefaultOptions() Options {
	return Options{
		Level:      "info",
		MaxSizeMB:  64,
		MaxBackups: 4,
		MaxAgeDays: 14,
	}
}

var global = zap.NewNop()

// Init builds the process logger from the options and installs it as
// the package global returned by L.
func Init(opts Options) error {
	l, err := New(opts)
	if err != nil {
		return err
	}
	global = l
	return nil
}

// L returns the process logger; a nop until Init succeeds.
func L() *zap.Logger { return global }

// Sync flushes the process logger.
func Sync() error { return global.Sync() }

// New builds a logger from the options. The caller owns Sync.
func New(opts Options) (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(opts.Level)
	if err != nil {
		return nil, fmt.Errorf("logger: bad level %q: %w", opts.Level, err)
	}

	consoleEnc := zap.NewDevelopmentEncoderConfig()
	consoleEnc.EncodeLevel = zapcore.CapitalColorLevelEncoder
	cores := []zapcore.Core{
		zapcore.NewCore(zapcore.NewConsoleEncoder(consoleEnc), zapcore.Lock(os.Stderr), level),
	}

	if opts.File != "" {
		sink := zapcore.AddSync(&lumberjack.Logger{
			Filename:   opts.File,
			MaxSize:    opts.MaxSizeMB,
			MaxBackups: opts.MaxBackups,
			MaxAge:     opts.MaxAgeDays,
			Compress:   opts.Compress,
		})
		fileEnc := zap.NewProductionEncoderConfig()
		fileEnc.EncodeTime = zapcore.ISO8601TimeEncoder
		cores = append(cores, zapcore.NewCore(zapcore.NewJSONEncoder(fileEnc), sink, level))
	}

	return zap.New(zapcore.NewTee(cores...), zap.AddCaller()), nil
}
