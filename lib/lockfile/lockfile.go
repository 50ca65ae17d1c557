// Copyright 2026 The Speclock Authors
// SPDX-License-Identifier: Apache-2.0

// Package lockfile defines the persisted spec lock record and the
// operations around it: generation from a manifest, drift verification
// against current canonical content, and the exit policy that turns a
// verification result into a process outcome.
//
// A lock record is a versioned snapshot of canonical-file digests taken
// at packet authoring time. It is written once by generation (full
// overwrite, never a partial patch) and consumed read-only by
// verification any number of times afterward.
package lockfile

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Filename is the conventional lock record file name inside a packet
// directory.
const Filename = "spec.lock.json"

// SchemaVersion is the current lock record schema version.
const SchemaVersion = 1

// Entry records the digest of one canonical file. Entries appear in
// manifest order.
type Entry struct {
	Path   string `json:"path"`
	SHA256 string `json:"sha256"`
}

// Generator identifies the tool that produced a lock record. It is
// provenance metadata only; verification never consults it.
type Generator struct {
	Name    string `json:"name"`
	Version string `json:"version"`
}

// Record is the persisted lock snapshot. Field order here is the
// stable on-disk field order.
type Record struct {
	SchemaVersion  int       `json:"schema_version"`
	Epic           string    `json:"epic"`
	GeneratedAt    string    `json:"generated_at"`
	InfraRepo      string    `json:"infra_repo"`
	InfraSHA       string    `json:"infra_sha"`
	CanonicalFiles []Entry   `json:"canonical_files"`
	Generator      Generator `json:"generator"`
}

// ContentLoader retrieves the current text of a canonical file by
// repository-relative path. canonical.Loader satisfies this; tests
// substitute fixed-content fakes.
type ContentLoader interface {
	Load(ctx context.Context, relPath string) (string, error)
}

// LoaderFunc adapts a function to the ContentLoader interface.
type LoaderFunc func(ctx context.Context, relPath string) (string, error)

// Load calls the wrapped function.
func (f LoaderFunc) Load(ctx context.Context, relPath string) (string, error) {
	return f(ctx, relPath)
}

// Read loads a lock record from disk.
func Read(path string) (*Record, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	var record Record
	if err := json.Unmarshal(data, &record); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return &record, nil
}

// Write persists a lock record with stable field ordering, two-space
// indentation, and a trailing newline. The parent directory is created
// when absent and the file is fully overwritten; regeneration never
// patches fields in place.
func Write(path string, record *Record) error {
	data, err := json.MarshalIndent(record, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding lock record: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("creating %s: %w", filepath.Dir(path), err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}
