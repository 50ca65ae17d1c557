// Copyright 2026 The Speclock Authors
// SPDX-License-Identifier: Apache-2.0

// Package packetcmd implements the "speclock packet" command group:
// packet discovery and the JSON path map consumed by calling
// processes.
package packetcmd

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"slices"
	"text/tabwriter"

	"github.com/spf13/pflag"

	"github.com/speclock-dev/speclock/cmd/speclock/cli"
	"github.com/speclock-dev/speclock/lib/config"
	"github.com/speclock-dev/speclock/lib/packet"
)

// Command returns the "packet" subcommand group.
func Command() *cli.Command {
	return &cli.Command{
		Name:    "packet",
		Summary: "Discover packet directories and materialize path maps",
		Subcommands: []*cli.Command{
			pathsCommand(),
			listCommand(),
		},
	}
}

func pathsCommand() *cli.Command {
	var prNum int

	return &cli.Command{
		Name:    "paths",
		Summary: "Print the JSON path map for a packet",
		Description: `Resolve a packet directory and print its conventional file paths as
a JSON object (repo_root, packet_dir, agentpack, input, checklist,
fixlog, receipts_dir). The receipts directory is created when absent
so callers can write logs into it immediately.`,
		Usage: "speclock packet paths [flags]",
		Examples: []cli.Example{
			{
				Description: "Path map for the newest packet",
				Command:     "speclock packet paths",
			},
			{
				Description: "Path map for a specific packet",
				Command:     "speclock packet paths --pr-num 12",
			},
		},
		Flags: func() *pflag.FlagSet {
			flagSet := pflag.NewFlagSet("paths", pflag.ContinueOnError)
			flagSet.IntVar(&prNum, "pr-num", 0, "packet number (PR-NNN)")
			return flagSet
		},
		Run: func(ctx context.Context, args []string, logger *slog.Logger) error {
			root := packet.RepoRoot(ctx)
			cfg, err := config.Load(root)
			if err != nil {
				return err
			}

			dir, err := packet.Pick(root, cfg.PacketBase, packetNumber(prNum))
			if err != nil {
				return err
			}

			paths := packet.NewPaths(root, dir)
			if err := paths.EnsureReceipts(); err != nil {
				return err
			}

			encoded, err := json.MarshalIndent(paths, "", "  ")
			if err != nil {
				return fmt.Errorf("encoding path map: %w", err)
			}
			fmt.Println(string(encoded))
			return nil
		},
	}
}

func listCommand() *cli.Command {
	return &cli.Command{
		Name:    "list",
		Summary: "List packet directories by number",
		Usage:   "speclock packet list",
		Run: func(ctx context.Context, args []string, logger *slog.Logger) error {
			root := packet.RepoRoot(ctx)
			cfg, err := config.Load(root)
			if err != nil {
				return err
			}

			packets, err := packet.Find(root, cfg.PacketBase)
			if err != nil {
				return err
			}
			if len(packets) == 0 {
				logger.Info("no packets found", "base", cfg.PacketBase)
				return nil
			}

			numbers := make([]int, 0, len(packets))
			for number := range packets {
				numbers = append(numbers, number)
			}
			slices.Sort(numbers)

			tw := tabwriter.NewWriter(os.Stdout, 2, 0, 3, ' ', 0)
			for _, number := range numbers {
				fmt.Fprintf(tw, "PR-%03d\t%s\n", number, packets[number])
			}
			return tw.Flush()
		},
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
