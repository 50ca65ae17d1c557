// Copyright 2026 The Speclock Authors
// SPDX-License-Identifier: Apache-2.0

// Package commands builds the complete speclock CLI command tree.
package commands

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/speclock-dev/speclock/cmd/speclock/cli"
	lockcmd "github.com/speclock-dev/speclock/cmd/speclock/lock"
	"github.com/speclock-dev/speclock/cmd/speclock/packetcmd"
	patchcmd "github.com/speclock-dev/speclock/cmd/speclock/patch"
	"github.com/speclock-dev/speclock/lib/version"
)

// Root builds and returns the complete speclock CLI command tree.
func Root() *cli.Command {
	return &cli.Command{
		Name: "speclock",
		Description: `Speclock: canonical spec pinning for packet directories.

Pin the canonical spec files a work packet depends on to one commit of
the infra-docs repository, and verify in CI that the pinned content has
not drifted.`,
		Subcommands: []*cli.Command{
			lockcmd.Command(),
			packetcmd.Command(),
			patchcmd.Command(),
			{
				Name:    "version",
				Summary: "Print version information",
				Run: func(_ context.Context, args []string, _ *slog.Logger) error {
					fmt.Printf("speclock %s\n", version.Full())
					return nil
				},
			},
		},
		Examples: []cli.Example{
			{
				Description: "Verify the newest packet's spec lock",
				Command:     "speclock lock verify",
			},
			{
				Description: "Generate a lock for packet PR-012",
				Command:     "speclock lock generate --pr-num 12",
			},
			{
				Description: "Refresh the canonical spec anchor in AGENTPACK.md",
				Command:     "speclock lock anchor --pr-num 12",
			},
			{
				Description: "Print the path map for the newest packet",
				Command:     "speclock packet paths",
			},
			{
				Description: "Record gate evidence in a checklist",
				Command:     `speclock patch checklist docs/pr/PR-012/CHECKLIST.md '{"unit":{"cmd":"go test ./...","result":"PASS","log":"receipts/unit.log"}}'`,
			},
		},
	}
}
