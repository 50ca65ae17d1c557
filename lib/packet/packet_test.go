// Copyright 2026 The Speclock Authors
// SPDX-License-Identifier: Apache-2.0

package packet

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// makePacket creates docs/pr/PR-<name> under root, with an
// AGENTPACK.md when agentpack is true.
func makePacket(t *testing.T, root, name string, agentpack bool) string {
	t.Helper()
	dir := filepath.Join(root, "docs", "pr", name)
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatalf("MkdirAll: %v", err)
	}
	if agentpack {
		if err := os.WriteFile(filepath.Join(dir, "AGENTPACK.md"), []byte("# pack\n"), 0644); err != nil {
			t.Fatalf("WriteFile: %v", err)
		}
	}
	return dir
}

func intPtr(n int) *int { return &n }

func TestFind(t *testing.T) {
	root := t.TempDir()
	makePacket(t, root, "PR-001", true)
	makePacket(t, root, "PR-042", true)
	makePacket(t, root, "PR-007", false)  // no AGENTPACK.md
	makePacket(t, root, "draft", true)    // name does not match
	makePacket(t, root, "PR-abc", true)   // no number

	packets, err := Find(root, DefaultBase)
	if err != nil {
		t.Fatalf("Find: %v", err)
	}
	if len(packets) != 2 {
		t.Fatalf("Find = %v, want packets 1 and 42", packets)
	}
	if _, ok := packets[1]; !ok {
		t.Error("packet 1 missing")
	}
	if _, ok := packets[42]; !ok {
		t.Error("packet 42 missing")
	}
}

func TestFindMissingBase(t *testing.T) {
	packets, err := Find(t.TempDir(), DefaultBase)
	if err != nil {
		t.Fatalf("Find: %v", err)
	}
	if len(packets) != 0 {
		t.Errorf("Find = %v, want empty", packets)
	}
}

func TestPickByNumber(t *testing.T) {
	root := t.TempDir()
	want := makePacket(t, root, "PR-042", true)
	makePacket(t, root, "PR-100", true)

	dir, err := Pick(root, DefaultBase, intPtr(42))
	if err != nil {
		t.Fatalf("Pick: %v", err)
	}
	if dir != want {
		t.Errorf("Pick = %q, want %q", dir, want)
	}
}

func TestPickHighest(t *testing.T) {
	root := t.TempDir()
	makePacket(t, root, "PR-001", true)
	want := makePacket(t, root, "PR-100", true)
	makePacket(t, root, "PR-042", true)

	dir, err := Pick(root, DefaultBase, nil)
	if err != nil {
		t.Fatalf("Pick: %v", err)
	}
	if dir != want {
		t.Errorf("Pick = %q, want %q", dir, want)
	}
}

func TestPickNotFound(t *testing.T) {
	root := t.TempDir()
	makePacket(t, root, "PR-001", true)

	_, err := Pick(root, DefaultBase, intPtr(9))
	if err == nil || !strings.Contains(err.Error(), "PR-9") {
		t.Errorf("Pick error = %v, want mention of PR-9", err)
	}
}

func TestPickNoPackets(t *testing.T) {
	if _, err := Pick(t.TempDir(), DefaultBase, nil); err == nil {
		t.Fatal("Pick should fail when no packets exist")
	}
}

func TestLatestIgnoresAgentpackRequirement(t *testing.T) {
	root := t.TempDir()
	makePacket(t, root, "PR-003", true)
	want := makePacket(t, root, "PR-010", false)

	if dir := Latest(root, DefaultBase); dir != want {
		t.Errorf("Latest = %q, want %q", dir, want)
	}
}

func TestLatestEmpty(t *testing.T) {
	if dir := Latest(t.TempDir(), DefaultBase); dir != "" {
		t.Errorf("Latest = %q, want empty", dir)
	}
}

func TestResolveDir(t *testing.T) {
	root := t.TempDir()
	latest := makePacket(t, root, "PR-008", true)

	if got := ResolveDir(root, DefaultBase, "docs/pr/PR-002", nil); got != filepath.Join(root, "docs/pr/PR-002") {
		t.Errorf("explicit relative dir = %q", got)
	}
	absolute := filepath.Join(root, "elsewhere")
	if got := ResolveDir(root, DefaultBase, absolute, nil); got != absolute {
		t.Errorf("explicit absolute dir = %q", got)
	}
	if got := ResolveDir(root, DefaultBase, "", intPtr(5)); got != filepath.Join(root, "docs/pr/PR-005") {
		t.Errorf("numbered dir = %q, want conventional PR-005 form", got)
	}
	if got := ResolveDir(root, DefaultBase, "", nil); got != latest {
		t.Errorf("latest dir = %q, want %q", got, latest)
	}
}

func TestNumberFromEnv(t *testing.T) {
	tests := []struct {
		in   string
		want *int
	}{
		{"", nil},
		{"  ", nil},
		{"42", intPtr(42)},
		{" 7 ", intPtr(7)},
		{"abc", nil},
		{"-3", nil},
	}
	for _, test := range tests {
		got := NumberFromEnv(test.in)
		switch {
		case test.want == nil && got != nil:
			t.Errorf("NumberFromEnv(%q) = %d, want nil", test.in, *got)
		case test.want != nil && (got == nil || *got != *test.want):
			t.Errorf("NumberFromEnv(%q) = %v, want %d", test.in, got, *test.want)
		}
	}
}

func TestPathsAndReceipts(t *testing.T) {
	root := t.TempDir()
	dir := makePacket(t, root, "PR-001", true)

	paths := NewPaths(root, dir)
	if paths.Agentpack != filepath.Join(dir, "AGENTPACK.md") {
		t.Errorf("Agentpack = %q", paths.Agentpack)
	}
	if paths.Fixlog != filepath.Join(dir, "FIXLOG.md") {
		t.Errorf("Fixlog = %q", paths.Fixlog)
	}

	if err := paths.EnsureReceipts(); err != nil {
		t.Fatalf("EnsureReceipts: %v", err)
	}
	info, err := os.Stat(paths.ReceiptsDir)
	if err != nil || !info.IsDir() {
		t.Errorf("receipts dir not created: %v", err)
	}
	// Idempotent.
	if err := paths.EnsureReceipts(); err != nil {
		t.Errorf("EnsureReceipts second call: %v", err)
	}
}
