// Copyright 2026 The Speclock Authors
// SPDX-License-Identifier: Apache-2.0

package lock

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/spf13/pflag"

	"github.com/speclock-dev/speclock/cmd/speclock/cli"
	"github.com/speclock-dev/speclock/lib/canonical"
	"github.com/speclock-dev/speclock/lib/clock"
	"github.com/speclock-dev/speclock/lib/config"
	"github.com/speclock-dev/speclock/lib/lockfile"
	"github.com/speclock-dev/speclock/lib/manifest"
	"github.com/speclock-dev/speclock/lib/packet"
	"github.com/speclock-dev/speclock/lib/version"
)

func generateCommand() *cli.Command {
	var prNum int
	var manifestPath string

	return &cli.Command{
		Name:    "generate",
		Summary: "Generate spec.lock.json from a packet manifest",
		Description: `Read a packet's spec.manifest.json, retrieve each canonical file at
the pinned commit, and write spec.lock.json with one digest entry per
file in manifest order. Generation is all-or-nothing: if any canonical
file cannot be retrieved, no lock file is written.`,
		Usage: "speclock lock generate [packet-dir] [flags]",
		Examples: []cli.Example{
			{
				Description: "Lock the newest packet",
				Command:     "speclock lock generate",
			},
			{
				Description: "Lock a specific packet by number",
				Command:     "speclock lock generate --pr-num 12",
			},
			{
				Description: "Lock against a local infra-docs checkout",
				Command:     "INFRA_DOCS_ROOT=~/src/infra-docs speclock lock generate docs/pr/PR-012",
			},
		},
		Flags: func() *pflag.FlagSet {
			flagSet := pflag.NewFlagSet("generate", pflag.ContinueOnError)
			flagSet.IntVar(&prNum, "pr-num", 0, "packet number (PR-NNN)")
			flagSet.StringVar(&manifestPath, "manifest", "", "explicit manifest path (default <packet>/spec.manifest.json)")
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

			if manifestPath == "" {
				manifestPath = filepath.Join(packetDir, manifest.Filename)
			}
			m, err := manifest.ReadFile(manifestPath)
			if err != nil {
				return err
			}
			logger = logger.With("packet", packetDir, "epic", m.Epic)

			loader, err := canonical.NewLoader(canonical.Coordinates{
				Repo:   m.InfraRepo,
				Commit: m.InfraSHA,
			}, loaderOptions(cfg))
			if err != nil {
				return err
			}

			record, err := lockfile.Generate(ctx, m, loader, clock.Real(), lockfile.Generator{
				Name:    "speclock",
				Version: version.Short(),
			})
			if err != nil {
				return err
			}

			lockPath := filepath.Join(packetDir, lockfile.Filename)
			if err := lockfile.Write(lockPath, record); err != nil {
				return err
			}

			logger.Info("lock file written", "path", lockPath, "files", len(record.CanonicalFiles))
			fmt.Printf("Wrote %s (%d canonical files)\n", lockPath, len(record.CanonicalFiles))
			return nil
		},
	}
}

// requirePacketDir resolves the packet directory from the explicit
// argument, the --pr-num flag, the PR_NUM environment variable, or the
// newest packet, in that order. Commands that cannot proceed without a
// packet use this; verification has softer skip semantics.
func requirePacketDir(root string, cfg *config.Config, args []string, prNum int) (string, error) {
	explicit := ""
	if len(args) > 0 {
		explicit = args[0]
	}

	dir := packet.ResolveDir(root, cfg.PacketBase, explicit, packetNumber(prNum))
	if dir == "" {
		return "", fmt.Errorf("no packet directory found under %s", filepath.Join(root, cfg.PacketBase))
	}
	return dir, nil
}
