// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package config loads the checker configuration: embedded defaults,
// optionally overlaid by a user YAML file, validated before use.
package config

import (
	_ "embed"
	"fmt"
	"os"
	"time"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultConfigYAML []byte

// Config defines checker behavior for both fix and check-only modes.
//
// Thread Safety: Immutable after loading; safe for concurrent use.
type Config struct {
	// RequiredSections are the section headers check-only mode demands in
	// every eligible function's docstring.
	RequiredSections []string `yaml:"required_sections" validate:"min=1,dive,oneof=Args Returns Raises"`

	// GeneratedSections are the sections the synthesizer emits. Raises is
	// never generated and is not accepted here.
	GeneratedSections []string `yaml:"generated_sections" validate:"dive,oneof=Args Returns"`

	// IndentStep is the number of spaces a body is indented past its
	// function header.
	IndentStep int `yaml:"indent_step" validate:"gte=1,lte=8"`

	// MaxFileSizeBytes rejects oversized files before parsing.
	MaxFileSizeBytes int64 `yaml:"max_file_size_bytes" validate:"gt=0"`

	// TypePlaceholder is the literal type placeholder in parameter lines.
	TypePlaceholder string `yaml:"type_placeholder" validate:"required"`

	// DescriptionPlaceholder is the literal description placeholder.
	DescriptionPlaceholder string `yaml:"description_placeholder" validate:"required"`

	// WatchDebounceMS is the quiet window, in milliseconds, before watch
	// mode re-processes a changed file.
	WatchDebounceMS int `yaml:"watch_debounce_ms" validate:"gte=0"`

	// MetricsAddr is the Prometheus listen address for watch mode.
	// Empty disables the endpoint.
	MetricsAddr string `yaml:"metrics_addr"`
}

// WatchDebounce returns the debounce window as a duration.
func (c *Config) WatchDebounce() time.Duration {
	return time.Duration(c.WatchDebounceMS) * time.Millisecond
}

// Validate checks the configuration against its struct constraints.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}

// Default returns the embedded default configuration.
func Default() (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultConfigYAML, cfg); err != nil {
		return nil, fmt.Errorf("parse embedded defaults: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Load returns the default configuration overlaid with the YAML file at
// path. An empty path returns the defaults unchanged.
func Load(path string) (*Config, error) {
	cfg, err := Default()
	if err != nil {
		return nil, err
	}

	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}

	return cfg, nil
}
