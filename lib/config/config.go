// Copyright 2026 The Speclock Authors
// SPDX-License-Identifier: Apache-2.0

// Package config provides YAML configuration loading for speclock.
//
// Configuration is read from a single optional file, .speclock.yaml at
// the repository root. A missing file yields the defaults; there is no
// ~/.config discovery and no automatic file search, so behavior stays
// deterministic across checkouts. Environment variables that influence
// a run (INFRA_DOCS_ROOT, ALLOW_SPEC_DRIFT, GITHUB_TOKEN, PR_NUM) are
// read at the command edge, not here.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Filename is the optional per-repository configuration file.
const Filename = ".speclock.yaml"

// Config holds the tunable settings for a speclock run.
type Config struct {
	// PacketBase is the directory under the repository root that holds
	// packet directories. Default: docs/pr
	PacketBase string `yaml:"packet_base"`

	// FetchTimeoutSeconds bounds each canonical content fetch.
	// Default: 30
	FetchTimeoutSeconds int `yaml:"fetch_timeout_seconds"`
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	return &Config{
		PacketBase:          "docs/pr",
		FetchTimeoutSeconds: 30,
	}
}

// FetchTimeout returns the configured fetch timeout as a duration.
func (c *Config) FetchTimeout() time.Duration {
	return time.Duration(c.FetchTimeoutSeconds) * time.Second
}

// Load reads .speclock.yaml under repoRoot. A missing file is not an
// error; the defaults are returned. Fields absent from the file keep
// their default values.
func Load(repoRoot string) (*Config, error) {
	return LoadFile(filepath.Join(repoRoot, Filename))
}

// LoadFile reads configuration from an explicit path, applying the
// same missing-file and partial-file semantics as Load.
func LoadFile(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}

	if cfg.PacketBase == "" {
		cfg.PacketBase = Default().PacketBase
	}
	if cfg.FetchTimeoutSeconds <= 0 {
		return nil, fmt.Errorf("config %s: fetch_timeout_seconds must be positive, got %d", path, cfg.FetchTimeoutSeconds)
	}
	return cfg, nil
}
