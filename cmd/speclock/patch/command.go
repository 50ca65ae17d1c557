// Copyright 2026 The Speclock Authors
// SPDX-License-Identifier: Apache-2.0

// Package patch implements the "speclock patch" command group:
// mechanical edits to packet markdown files. Checklist evidence lines
// are rewritten in place, fix log blocks are appended, and verifier
// reports combine the two.
package patch

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/pflag"

	"github.com/speclock-dev/speclock/cmd/speclock/cli"
	"github.com/speclock-dev/speclock/lib/clock"
	"github.com/speclock-dev/speclock/lib/mdpatch"
)

// Command returns the "patch" subcommand group.
func Command() *cli.Command {
	return &cli.Command{
		Name:    "patch",
		Summary: "Rewrite checklist evidence and append fix log entries",
		Subcommands: []*cli.Command{
			checklistCommand(),
			fixlogCommand(),
			reportCommand(),
		},
	}
}

func checklistCommand() *cli.Command {
	return &cli.Command{
		Name:    "checklist",
		Summary: "Update automated gate evidence lines in a checklist",
		Description: `Rewrite the evidence portion of automated gate lines (unit, lint,
integration) in a packet checklist. Updates are given as a JSON object
keyed by gate name, each value carrying cmd, result, and log fields.
The checkbox is marked iff the result starts with PASS. Lines for
gates not present in the update object are left untouched.`,
		Usage: "speclock patch checklist <checklist-file> <updates-json>",
		Examples: []cli.Example{
			{
				Description: "Record a passing unit gate",
				Command:     `speclock patch checklist docs/pr/PR-012/CHECKLIST.md '{"unit":{"cmd":"go test ./...","result":"PASS","log":"receipts/unit.log"}}'`,
			},
		},
		Run: func(ctx context.Context, args []string, logger *slog.Logger) error {
			if len(args) != 2 {
				return fmt.Errorf("expected <checklist-file> <updates-json>, got %d args", len(args))
			}

			var updates map[string]mdpatch.Evidence
			if err := json.Unmarshal([]byte(args[1]), &updates); err != nil {
				return fmt.Errorf("parsing updates: %w", err)
			}

			if err := mdpatch.UpdateChecklistEvidence(args[0], updates); err != nil {
				return err
			}
			logger.Info("checklist updated", "path", args[0], "gates", len(updates))
			return nil
		},
	}
}

func fixlogCommand() *cli.Command {
	var blockFile string

	return &cli.Command{
		Name:    "fixlog",
		Summary: "Append a block to a packet fix log",
		Usage:   "speclock patch fixlog <fixlog-file> --block-file FILE",
		Flags: func() *pflag.FlagSet {
			flagSet := pflag.NewFlagSet("fixlog", pflag.ContinueOnError)
			flagSet.StringVar(&blockFile, "block-file", "", "file containing the block to append")
			return flagSet
		},
		Run: func(ctx context.Context, args []string, logger *slog.Logger) error {
			if len(args) != 1 {
				return fmt.Errorf("expected <fixlog-file>, got %d args", len(args))
			}
			if blockFile == "" {
				return fmt.Errorf("--block-file is required")
			}

			block, err := os.ReadFile(blockFile)
			if err != nil {
				return fmt.Errorf("reading %s: %w", blockFile, err)
			}

			if err := mdpatch.AppendFixlog(args[0], string(block)); err != nil {
				return err
			}
			logger.Info("fixlog appended", "path", args[0])
			return nil
		},
	}
}

func reportCommand() *cli.Command {
	var status, commands, results, gaps string

	return &cli.Command{
		Name:    "report",
		Summary: "Append a timestamped verifier report to a fix log",
		Usage:   "speclock patch report <fixlog-file> --status STATUS [flags]",
		Examples: []cli.Example{
			{
				Description: "Record a passing verification run",
				Command:     `speclock patch report docs/pr/PR-012/FIXLOG.md --status PASS --commands "  - speclock lock verify" --results "  - no drift"`,
			},
		},
		Flags: func() *pflag.FlagSet {
			flagSet := pflag.NewFlagSet("report", pflag.ContinueOnError)
			flagSet.StringVar(&status, "status", "", "overall run status (e.g. PASS, FAIL)")
			flagSet.StringVar(&commands, "commands", "", "commands-run section body")
			flagSet.StringVar(&results, "results", "", "results section body")
			flagSet.StringVar(&gaps, "gaps", "", "checklist gaps / notes section body")
			return flagSet
		},
		Run: func(ctx context.Context, args []string, logger *slog.Logger) error {
			if len(args) != 1 {
				return fmt.Errorf("expected <fixlog-file>, got %d args", len(args))
			}
			if status == "" {
				return fmt.Errorf("--status is required")
			}

			block := mdpatch.VerifierReportBlock(clock.Real(), status, commands, results, gaps)
			if err := mdpatch.AppendFixlog(args[0], block); err != nil {
				return err
			}
			logger.Info("verifier report appended", "path", args[0], "status", status)
			return nil
		},
	}
}
