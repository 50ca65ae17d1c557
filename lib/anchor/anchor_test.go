// Copyright 2026 The Speclock Authors
// SPDX-License-Identifier: Apache-2.0

package anchor

import (
	"strings"
	"testing"

	"github.com/speclock-dev/speclock/lib/manifest"
)

func testManifest() *manifest.Manifest {
	return &manifest.Manifest{
		Epic:           "EPIC-7",
		InfraRepo:      "example/infra-docs",
		InfraSHA:       "abc1234",
		CanonicalFiles: []string{"spec/a.md", "spec/b.md"},
	}
}

func TestRenderShape(t *testing.T) {
	block := Render(testManifest())

	lines := strings.Split(block, "\n")
	if lines[0] != "<!-- BEGIN GENERATED: canonical-spec-anchor -->" {
		t.Errorf("first line = %q", lines[0])
	}
	if lines[len(lines)-1] != "<!-- END GENERATED: canonical-spec-anchor -->" {
		t.Errorf("last line = %q", lines[len(lines)-1])
	}

	for _, want := range []string{
		"## Canonical Spec Anchor (infra-docs)",
		"- Epic: EPIC-7",
		"- Canonical repo: example/infra-docs",
		"- Canonical commit: abc1234",
		"- Canonical epic path: codex/epics/EPIC-7/",
		"  - spec/a.md (https://github.com/example/infra-docs/blob/abc1234/spec/a.md)",
		"  - spec/b.md (https://github.com/example/infra-docs/blob/abc1234/spec/b.md)",
		"- If you have a local checkout, set INFRA_DOCS_ROOT to verify locally.",
		"- Otherwise CI will verify via GitHub at the pinned commit.",
	} {
		if !strings.Contains(block, want) {
			t.Errorf("block missing line %q\nblock:\n%s", want, block)
		}
	}
}

func TestRenderDeterministic(t *testing.T) {
	m := testManifest()
	if Render(m) != Render(m) {
		t.Error("two renders of the same manifest differ")
	}
}

func TestRenderPreservesFileOrder(t *testing.T) {
	block := Render(testManifest())
	first := strings.Index(block, "spec/a.md")
	second := strings.Index(block, "spec/b.md")
	if first < 0 || second < 0 || first > second {
		t.Errorf("canonical files out of manifest order (a at %d, b at %d)", first, second)
	}
}

func TestUpsertIntoEmptyDocument(t *testing.T) {
	block := Render(testManifest())
	got := UpsertGeneratedBlock("", Tag, block)
	if got != block+"\n" {
		t.Errorf("upsert into empty document = %q, want block plus newline", got)
	}
	if UpsertGeneratedBlock("  \n\t\n", Tag, block) != block+"\n" {
		t.Error("whitespace-only document should be treated as empty")
	}
}

func TestUpsertAppendsAfterContent(t *testing.T) {
	block := Render(testManifest())
	document := "# Packet\n\nSome prose.\n\n\n"
	got := UpsertGeneratedBlock(document, Tag, block)
	want := "# Packet\n\nSome prose." + "\n\n" + block + "\n"
	if got != want {
		t.Errorf("upsert append:\ngot  %q\nwant %q", got, want)
	}
}

func TestUpsertReplacesExistingRegion(t *testing.T) {
	oldBlock := BeginMarker(Tag) + "\nstale contents\n" + EndMarker(Tag)
	document := "before\n\n" + oldBlock + "\n\nafter\n"
	block := Render(testManifest())

	got := UpsertGeneratedBlock(document, Tag, block)
	want := "before\n\n" + block + "\n\nafter\n"
	if got != want {
		t.Errorf("upsert replace:\ngot  %q\nwant %q", got, want)
	}
	if strings.Contains(got, "stale contents") {
		t.Error("stale region contents survived the upsert")
	}
}

func TestUpsertReplacesOnlyFirstRegion(t *testing.T) {
	region := BeginMarker(Tag) + "\nold\n" + EndMarker(Tag)
	document := region + "\nmiddle\n" + region + "\n"
	got := UpsertGeneratedBlock(document, Tag, "NEW")
	want := "NEW\nmiddle\n" + region + "\n"
	if got != want {
		t.Errorf("upsert first-occurrence:\ngot  %q\nwant %q", got, want)
	}
}

func TestUpsertIdempotent(t *testing.T) {
	block := Render(testManifest())
	document := "# Packet\n\nProse stays.\n"

	once := UpsertGeneratedBlock(document, Tag, block)
	twice := UpsertGeneratedBlock(once, Tag, block)
	if once != twice {
		t.Errorf("second upsert changed the document:\nonce  %q\ntwice %q", once, twice)
	}
}

func TestUpsertPreservesSurroundingContent(t *testing.T) {
	block := Render(testManifest())
	prefix := "# Title\n\nparagraph one\n\n"
	suffix := "\n\n## Trailer\n- item\n"
	document := prefix + BeginMarker(Tag) + "\nx\n" + EndMarker(Tag) + suffix

	got := UpsertGeneratedBlock(document, Tag, block)
	if !strings.HasPrefix(got, prefix) {
		t.Error("prefix not preserved byte-for-byte")
	}
	if !strings.HasSuffix(got, suffix) {
		t.Error("suffix not preserved byte-for-byte")
	}
}

func TestUpsertUpdatesChangedBlock(t *testing.T) {
	m := testManifest()
	document := UpsertGeneratedBlock("doc\n", Tag, Render(m))

	m.InfraSHA = "def5678"
	got := UpsertGeneratedBlock(document, Tag, Render(m))
	if !strings.Contains(got, "def5678") {
		t.Error("updated block not present")
	}
	if strings.Contains(got, "abc1234") {
		t.Error("stale commit survived the update")
	}
	if !strings.HasPrefix(got, "doc\n") {
		t.Error("document prefix not preserved")
	}
}

func TestUpsertIgnoresUnterminatedRegion(t *testing.T) {
	// A begin marker with no matching end marker is not a region; the
	// block is appended instead of corrupting the document.
	document := "prose\n" + BeginMarker(Tag) + "\ndangling\n"
	got := UpsertGeneratedBlock(document, Tag, "BLOCK")
	if !strings.HasSuffix(got, "\n\nBLOCK\n") {
		t.Errorf("unterminated region should append, got %q", got)
	}
	if !strings.Contains(got, "dangling") {
		t.Error("existing content lost")
	}
}
