// Copyright 2026 The Speclock Authors
// SPDX-License-Identifier: Apache-2.0

// Package manifest provides parsing and validation for packet spec
// manifests. A manifest declares which canonical spec files a packet
// is pinned to: the canonical repository, the pinned commit, and the
// relative paths of the tracked files.
//
// Manifests are authored on disk as JSONC (JSON extended with comments
// and trailing commas) under the conventional name spec.manifest.json.
// Validation is pure: every structural problem is detected before any
// network or disk access happens downstream.
package manifest

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/tidwall/jsonc"
)

// Filename is the conventional manifest file name inside a packet
// directory.
const Filename = "spec.manifest.json"

// Manifest describes what a packet is pinned to. Treat values as
// immutable once parsed; regeneration replaces the whole struct.
type Manifest struct {
	// Epic is the opaque identifier of the epic this packet tracks.
	Epic string `json:"epic"`

	// InfraRepo is the canonical repository in owner/name form.
	InfraRepo string `json:"infra_repo"`

	// InfraSHA is the commit (full or short) pinning the canonical
	// state.
	InfraSHA string `json:"infra_sha"`

	// PRMap carries caller-defined metadata. It must be a JSON object
	// but its contents are opaque to speclock.
	PRMap map[string]json.RawMessage `json:"pr_map"`

	// CanonicalFiles are the tracked paths, relative to the canonical
	// repository root. Order is significant: the lock record lists
	// entries in manifest order.
	CanonicalFiles []string `json:"canonical_files"`
}

// requiredKeys are the manifest keys that must be present. The
// required-key check reports every missing key in one error, not just
// the first.
var requiredKeys = []string{"epic", "infra_repo", "infra_sha", "pr_map", "canonical_files"}

// Parse strips JSONC comments and trailing commas from data, then
// unmarshals and validates the manifest. Returns a descriptive error
// naming the offending key(s) on any structural violation.
func Parse(data []byte) (*Manifest, error) {
	stripped := jsonc.ToJSON(data)

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(stripped, &raw); err != nil {
		return nil, fmt.Errorf("parsing manifest: %w", err)
	}

	var missing []string
	for _, key := range requiredKeys {
		if _, present := raw[key]; !present {
			missing = append(missing, key)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("manifest missing required keys: %s", strings.Join(missing, ", "))
	}

	// Validate the two structured collections against the raw JSON so
	// the error names the malformed field instead of leaking a decoder
	// message. A JSON null would otherwise unmarshal into a nil map or
	// slice without complaint.
	if !json.Valid(raw["pr_map"]) || !strings.HasPrefix(strings.TrimSpace(string(raw["pr_map"])), "{") {
		return nil, fmt.Errorf("manifest pr_map must be an object")
	}

	var elements []json.RawMessage
	if err := json.Unmarshal(raw["canonical_files"], &elements); err != nil || len(elements) == 0 {
		return nil, fmt.Errorf("manifest canonical_files must be a non-empty array")
	}
	files := make([]string, len(elements))
	for index, element := range elements {
		var path string
		if err := json.Unmarshal(element, &path); err != nil || strings.TrimSpace(path) == "" {
			return nil, fmt.Errorf("manifest canonical_files entries must be non-empty strings")
		}
		files[index] = path
	}

	var parsed Manifest
	if err := json.Unmarshal(stripped, &parsed); err != nil {
		return nil, fmt.Errorf("parsing manifest: %w", err)
	}
	parsed.CanonicalFiles = files

	return &parsed, nil
}

// ReadFile reads and parses a manifest file from disk.
func ReadFile(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	parsed, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return parsed, nil
}
