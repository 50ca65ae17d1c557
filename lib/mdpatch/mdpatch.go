// Copyright 2026 The Speclock Authors
// SPDX-License-Identifier: Apache-2.0

// Package mdpatch rewrites well-known lines and appends well-known
// blocks in packet markdown files: checklist evidence lines and the
// fix log. It is deliberately line-oriented; everything that does not
// match a known pattern passes through byte-for-byte.
package mdpatch

import (
	"fmt"
	"os"
	"regexp"
	"strings"

	"github.com/speclock-dev/speclock/lib/clock"
)

// Evidence is the recorded outcome of one automated gate run.
type Evidence struct {
	Cmd    string `json:"cmd"`
	Result string `json:"result"`
	Log    string `json:"log"`
}

// checklistPattern matches automated gate lines in a packet checklist:
//
//	- [x] unit (AUTO) — Evidence: ...
//
// Capture groups: leading indent, gate name. Only the three automated
// gates are recognized; human-owned checklist lines never match.
var checklistPattern = regexp.MustCompile(`^(\s*)-\s*\[[xX ]\]\s*(unit|lint|integration)\s*\(AUTO\)\s*—\s*Evidence:\s*(.*)$`)

// UpdateChecklistEvidence rewrites the evidence portion of automated
// gate lines in the checklist at path. Gates not present in updates
// keep their current line. The checkbox is marked iff the recorded
// result starts with "PASS". All other lines are preserved unchanged;
// the file is rejoined with line feeds and a trailing newline.
func UpdateChecklistEvidence(path string, updates map[string]Evidence) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}

	lines := strings.Split(strings.TrimSuffix(string(data), "\n"), "\n")
	for index, line := range lines {
		match := checklistPattern.FindStringSubmatch(line)
		if match == nil {
			continue
		}
		indent, gate := match[1], match[2]
		update, ok := updates[gate]
		if !ok {
			continue
		}

		mark := " "
		if strings.HasPrefix(update.Result, "PASS") {
			mark = "x"
		}
		evidence := fmt.Sprintf("Command: `%s` | Result: %s | Log: `%s`", update.Cmd, update.Result, update.Log)
		lines[index] = fmt.Sprintf("%s- [%s] %s (AUTO) — Evidence: %s", indent, mark, gate, evidence)
	}

	joined := strings.Join(lines, "\n") + "\n"
	if err := os.WriteFile(path, []byte(joined), 0644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}

// AppendFixlog appends a block to the fix log at path, creating the
// file when absent. Exactly one newline separates existing content
// from the block, and the block is terminated with a newline.
func AppendFixlog(path, block string) error {
	existing := ""
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		existing = string(data)
	case !os.IsNotExist(err):
		return fmt.Errorf("reading %s: %w", path, err)
	}

	if existing != "" && !strings.HasSuffix(existing, "\n") {
		existing += "\n"
	}
	if err := os.WriteFile(path, []byte(existing+block+"\n"), 0644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}

// VerifierReportBlock renders a timestamped verifier report section
// for the fix log. Minute precision is enough for an audit trail.
func VerifierReportBlock(clk clock.Clock, status, commands, results, gaps string) string {
	timestamp := clk.Now().Format("2006-01-02 15:04")
	return fmt.Sprintf("## Verifier Report (%s)\n- Status: %s\n- Commands run:\n%s\n- Results:\n%s\n- Checklist gaps / notes:\n%s\n",
		timestamp, status, commands, results, gaps)
}
