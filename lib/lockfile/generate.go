// Copyright 2026 The Speclock Authors
// SPDX-License-Identifier: Apache-2.0

package lockfile

import (
	"context"
	"fmt"
	"time"

	"github.com/speclock-dev/speclock/lib/clock"
	"github.com/speclock-dev/speclock/lib/manifest"
	"github.com/speclock-dev/speclock/lib/texthash"
)

// Generate produces a lock record for a manifest. Each canonical file
// is loaded, normalized, and digested in manifest order; the entry
// order reflects manifest intent, not retrieval completion. The
// timestamp is captured once at call start, truncated to second
// precision, and rendered with a literal Z suffix.
//
// Generation is all-or-nothing: if any path fails to load, no record
// is returned.
func Generate(ctx context.Context, m *manifest.Manifest, loader ContentLoader, clk clock.Clock, generator Generator) (*Record, error) {
	generatedAt := clk.Now().UTC().Truncate(time.Second).Format(time.RFC3339)

	entries := make([]Entry, 0, len(m.CanonicalFiles))
	for _, relPath := range m.CanonicalFiles {
		text, err := loader.Load(ctx, relPath)
		if err != nil {
			return nil, fmt.Errorf("generating lock entry for %s: %w", relPath, err)
		}
		entries = append(entries, Entry{
			Path:   relPath,
			SHA256: texthash.Digest(text),
		})
	}

	return &Record{
		SchemaVersion:  SchemaVersion,
		Epic:           m.Epic,
		GeneratedAt:    generatedAt,
		InfraRepo:      m.InfraRepo,
		InfraSHA:       m.InfraSHA,
		CanonicalFiles: entries,
		Generator:      generator,
	}, nil
}
