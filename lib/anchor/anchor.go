// Copyright 2026 The Speclock Authors
// SPDX-License-Identifier: Apache-2.0

// Package anchor renders the canonical spec anchor block and performs
// idempotent upserts of generated blocks into prose documents.
//
// A generated block is a machine-owned region delimited by HTML comment
// sentinels inside an otherwise human-authored markdown file. Document
// editors must leave the delimited region alone; speclock owns its
// contents and replaces the whole region on every upsert.
package anchor

import (
	"fmt"
	"strings"

	"github.com/speclock-dev/speclock/lib/manifest"
)

// Tag is the generated-block tag for the canonical spec anchor.
const Tag = "canonical-spec-anchor"

// BeginMarker returns the opening sentinel line for a tag.
func BeginMarker(tag string) string {
	return fmt.Sprintf("<!-- BEGIN GENERATED: %s -->", tag)
}

// EndMarker returns the closing sentinel line for a tag.
func EndMarker(tag string) string {
	return fmt.Sprintf("<!-- END GENERATED: %s -->", tag)
}

// Render produces the canonical spec anchor block for a manifest,
// sentinels included. Output is fully determined by the manifest: no
// timestamps, no randomness; two calls with the same manifest are
// byte-identical.
func Render(m *manifest.Manifest) string {
	lines := []string{
		BeginMarker(Tag),
		"## Canonical Spec Anchor (infra-docs)",
		fmt.Sprintf("- Epic: %s", m.Epic),
		fmt.Sprintf("- Canonical repo: %s", m.InfraRepo),
		fmt.Sprintf("- Canonical commit: %s", m.InfraSHA),
		fmt.Sprintf("- Canonical epic path: codex/epics/%s/", m.Epic),
		"- Canonical files:",
	}
	for _, relPath := range m.CanonicalFiles {
		lines = append(lines, fmt.Sprintf(
			"  - %s (https://github.com/%s/blob/%s/%s)", relPath, m.InfraRepo, m.InfraSHA, relPath))
	}
	lines = append(lines,
		"Notes:",
		"- If you have a local checkout, set INFRA_DOCS_ROOT to verify locally.",
		"- Otherwise CI will verify via GitHub at the pinned commit.",
		EndMarker(Tag),
	)
	return strings.Join(lines, "\n")
}

// UpsertGeneratedBlock inserts or replaces the tagged generated block
// in a document:
//
//   - If a delimited region for the tag exists, the first occurrence is
//     replaced sentinel-to-sentinel inclusive; everything around it is
//     preserved byte-for-byte.
//   - Else, if the document has non-whitespace content, the block is
//     appended after a blank-line separator (trailing whitespace of the
//     existing content is trimmed first).
//   - Else the result is the block alone.
//
// The rendered block is expected to carry its own sentinels (as Render
// does), which makes the operation idempotent: a second upsert with the
// same arguments finds the region it just wrote and replaces it with
// identical bytes.
func UpsertGeneratedBlock(document, tag, renderedBlock string) string {
	begin := BeginMarker(tag)
	end := EndMarker(tag)

	if beginIndex := strings.Index(document, begin); beginIndex >= 0 {
		if endOffset := strings.Index(document[beginIndex:], end); endOffset >= 0 {
			regionEnd := beginIndex + endOffset + len(end)
			return document[:beginIndex] + renderedBlock + document[regionEnd:]
		}
	}

	if strings.TrimSpace(document) != "" {
		return strings.TrimRight(document, " \t\r\n") + "\n\n" + renderedBlock + "\n"
	}

	return renderedBlock + "\n"
}
