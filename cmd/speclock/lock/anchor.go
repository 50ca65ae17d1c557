// Copyright 2026 The Speclock Authors
// SPDX-License-Identifier: Apache-2.0

package lock

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/pflag"

	"github.com/speclock-dev/speclock/cmd/speclock/cli"
	"github.com/speclock-dev/speclock/lib/anchor"
	"github.com/speclock-dev/speclock/lib/config"
	"github.com/speclock-dev/speclock/lib/manifest"
	"github.com/speclock-dev/speclock/lib/packet"
)

func anchorCommand() *cli.Command {
	var prNum int
	var doc string

	return &cli.Command{
		Name:    "anchor",
		Summary: "Upsert the canonical spec anchor block in a packet document",
		Description: `Render the canonical spec anchor from a packet's spec.manifest.json
and splice it into a packet document between generated-block sentinels.

The operation is idempotent: an existing block with the same tag is
replaced in place, otherwise the block is appended. A missing target
document is created.`,
		Usage: "speclock lock anchor [packet-dir] [flags]",
		Examples: []cli.Example{
			{
				Description: "Refresh the anchor in the newest packet's AGENTPACK.md",
				Command:     "speclock lock anchor",
			},
			{
				Description: "Write the anchor into a different document",
				Command:     "speclock lock anchor --pr-num 12 --doc INPUT.md",
			},
		},
		Flags: func() *pflag.FlagSet {
			flagSet := pflag.NewFlagSet("anchor", pflag.ContinueOnError)
			flagSet.IntVar(&prNum, "pr-num", 0, "packet number (PR-NNN)")
			flagSet.StringVar(&doc, "doc", "AGENTPACK.md", "target document, relative to the packet dir")
			return flagSet
		},
		Run: func(ctx context.Context, args []string, logger *slog.Logger) error {
			root := packet.RepoRoot(ctx)
			cfg, err := config.Load(root)
			if err != nil {
				return err
			}

			packetDir, err := requirePacketDir(root, cfg, args, prNum)
			if err != nil {
				return err
			}

			m, err := manifest.ReadFile(filepath.Join(packetDir, manifest.Filename))
			if err != nil {
				return err
			}
			logger = logger.With("packet", packetDir, "epic", m.Epic)

			docPath := filepath.Join(packetDir, doc)
			existing, err := os.ReadFile(docPath)
			if err != nil && !os.IsNotExist(err) {
				return fmt.Errorf("reading %s: %w", docPath, err)
			}

			updated := anchor.UpsertGeneratedBlock(string(existing), anchor.Tag, anchor.Render(m))
			if err := os.WriteFile(docPath, []byte(updated), 0644); err != nil {
				return fmt.Errorf("writing %s: %w", docPath, err)
			}

			logger.Info("anchor updated", "doc", docPath)
			fmt.Printf("Updated canonical spec anchor in %s\n", docPath)
			return nil
		},
	}
}
