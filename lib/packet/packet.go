// Copyright 2026 The Speclock Authors
// SPDX-License-Identifier: Apache-2.0

// Package packet locates packet directories and materializes their
// conventional file paths for calling processes.
//
// Packets live under <repo-root>/docs/pr/PR-<n>/ and are recognized by
// the presence of an AGENTPACK.md file. Selection is by explicit
// number (PR_NUM or a flag) or, absent one, the highest-numbered
// packet.
package packet

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
)

// DefaultBase is the conventional packet directory, relative to the
// repository root.
const DefaultBase = "docs/pr"

// dirPattern matches packet directory names and captures the packet
// number.
var dirPattern = regexp.MustCompile(`^PR-(\d+)`)

// Paths is the file-path map a packet exposes to calling processes,
// serialized as JSON by the packet paths command.
type Paths struct {
	RepoRoot    string `json:"repo_root"`
	PacketDir   string `json:"packet_dir"`
	Agentpack   string `json:"agentpack"`
	Input       string `json:"input"`
	Checklist   string `json:"checklist"`
	Fixlog      string `json:"fixlog"`
	ReceiptsDir string `json:"receipts_dir"`
}

// NewPaths builds the conventional path map for a packet directory.
func NewPaths(repoRoot, packetDir string) Paths {
	return Paths{
		RepoRoot:    repoRoot,
		PacketDir:   packetDir,
		Agentpack:   filepath.Join(packetDir, "AGENTPACK.md"),
		Input:       filepath.Join(packetDir, "INPUT.md"),
		Checklist:   filepath.Join(packetDir, "CHECKLIST.md"),
		Fixlog:      filepath.Join(packetDir, "FIXLOG.md"),
		ReceiptsDir: filepath.Join(packetDir, "receipts"),
	}
}

// EnsureReceipts creates the receipts directory when absent.
func (p Paths) EnsureReceipts() error {
	if err := os.MkdirAll(p.ReceiptsDir, 0755); err != nil {
		return fmt.Errorf("creating receipts dir: %w", err)
	}
	return nil
}

// RepoRoot returns the enclosing git repository root, falling back to
// the current working directory when git is unavailable or the
// directory is not a repository.
func RepoRoot(ctx context.Context) string {
	var stdout bytes.Buffer
	command := exec.CommandContext(ctx, "git", "rev-parse", "--show-toplevel")
	command.Stdout = &stdout
	if err := command.Run(); err == nil {
		if root := strings.TrimSpace(stdout.String()); root != "" {
			return root
		}
	}
	cwd, err := os.Getwd()
	if err != nil {
		return "."
	}
	return cwd
}

// Find returns all packets under root/base keyed by packet number.
// Only directories containing an AGENTPACK.md count as packets.
func Find(root, base string) (map[int]string, error) {
	baseDir := filepath.Join(root, filepath.FromSlash(base))
	entries, err := os.ReadDir(baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return map[int]string{}, nil
		}
		return nil, fmt.Errorf("reading %s: %w", baseDir, err)
	}

	packets := make(map[int]string)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		match := dirPattern.FindStringSubmatch(entry.Name())
		if match == nil {
			continue
		}
		number, err := strconv.Atoi(match[1])
		if err != nil {
			continue
		}
		dir := filepath.Join(baseDir, entry.Name())
		if _, err := os.Stat(filepath.Join(dir, "AGENTPACK.md")); err != nil {
			continue
		}
		packets[number] = dir
	}
	return packets, nil
}

// Pick selects a packet directory: the requested number when given,
// else the highest-numbered packet. Returns a descriptive error when
// no match exists.
func Pick(root, base string, number *int) (string, error) {
	packets, err := Find(root, base)
	if err != nil {
		return "", err
	}

	if number != nil {
		if dir, ok := packets[*number]; ok {
			return dir, nil
		}
		return "", fmt.Errorf("packet not found for PR-%d: expected %s/PR-%03d/AGENTPACK.md",
			*number, base, *number)
	}

	if len(packets) == 0 {
		return "", fmt.Errorf("no packets found under %s/PR-*/AGENTPACK.md", base)
	}

	highest := -1
	for candidate := range packets {
		if candidate > highest {
			highest = candidate
		}
	}
	return packets[highest], nil
}

// Latest returns the highest-numbered PR-<n> directory under
// root/base, without requiring an AGENTPACK.md. Verification treats
// any numbered packet directory as a candidate; the lock file's
// presence decides what happens next. Returns "" when none exist.
func Latest(root, base string) string {
	baseDir := filepath.Join(root, filepath.FromSlash(base))
	entries, err := os.ReadDir(baseDir)
	if err != nil {
		return ""
	}

	highest := -1
	var dir string
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		match := dirPattern.FindStringSubmatch(entry.Name())
		if match == nil {
			continue
		}
		number, err := strconv.Atoi(match[1])
		if err != nil || number <= highest {
			continue
		}
		highest = number
		dir = filepath.Join(baseDir, entry.Name())
	}
	return dir
}

// ResolveDir resolves the packet directory for verification: an
// explicit path wins (joined to root when relative), then an explicit
// number (conventional PR-%03d form), then the latest packet. Returns
// "" when nothing matches; the caller decides whether that is a skip
// or an error.
func ResolveDir(root, base, explicit string, number *int) string {
	if explicit != "" {
		if filepath.IsAbs(explicit) {
			return explicit
		}
		return filepath.Join(root, explicit)
	}
	if number != nil {
		return filepath.Join(root, filepath.FromSlash(base), fmt.Sprintf("PR-%03d", *number))
	}
	return Latest(root, base)
}

// NumberFromEnv parses a packet number from the PR_NUM environment
// value. Returns nil for empty or non-numeric values.
func NumberFromEnv(value string) *int {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return nil
	}
	number, err := strconv.Atoi(trimmed)
	if err != nil || number < 0 {
		return nil
	}
	return &number
}
