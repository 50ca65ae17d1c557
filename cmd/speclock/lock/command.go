// Copyright 2026 The Speclock Authors
// SPDX-License-Identifier: Apache-2.0

// Package lock implements the "speclock lock" command group: lock
// record generation, drift verification, and canonical anchor
// maintenance for packet directories.
//
// Environment variables are read here, at the command edge, and passed
// down as plain values: INFRA_DOCS_ROOT selects local-only canonical
// retrieval, GITHUB_TOKEN authenticates the raw-content fallback,
// ALLOW_SPEC_DRIFT=1 downgrades drift to a warning, and PR_NUM selects
// a packet when no flag or argument does.
package lock

import (
	"os"

	"github.com/speclock-dev/speclock/cmd/speclock/cli"
	"github.com/speclock-dev/speclock/lib/canonical"
	"github.com/speclock-dev/speclock/lib/config"
	"github.com/speclock-dev/speclock/lib/packet"
)

// Command returns the "lock" subcommand group.
func Command() *cli.Command {
	return &cli.Command{
		Name:    "lock",
		Summary: "Generate and verify packet spec locks",
		Description: `Pin and verify canonical spec content for packet directories.

A packet's spec.manifest.json names the canonical files it depends on,
pinned to one commit of the infra-docs repository. "lock generate"
records a line-ending-insensitive SHA-256 digest per canonical file in
spec.lock.json; "lock verify" recomputes those digests against the
canonical content and fails on drift; "lock anchor" keeps the rendered
canonical-spec block in a packet document up to date.`,
		Subcommands: []*cli.Command{
			generateCommand(),
			verifyCommand(),
			anchorCommand(),
		},
	}
}

// loaderOptions assembles canonical retrieval options from the
// environment and configuration.
func loaderOptions(cfg *config.Config) canonical.Options {
	return canonical.Options{
		LocalRoot: os.Getenv("INFRA_DOCS_ROOT"),
		Token:     os.Getenv("GITHUB_TOKEN"),
		Timeout:   cfg.FetchTimeout(),
	}
}

// packetNumber resolves the packet number: an explicit --pr-num flag
// wins, then the PR_NUM environment variable, then nil (newest packet).
func packetNumber(flagValue int) *int {
	if flagValue > 0 {
		return &flagValue
	}
	return packet.NumberFromEnv(os.Getenv("PR_NUM"))
}
