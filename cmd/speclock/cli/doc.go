// Copyright 2026 The Speclock Authors
// SPDX-License-Identifier: Apache-2.0

// Package cli provides the command-line framework for the speclock CLI.
//
// The central type is [Command], which represents a named subcommand with
// optional nested [Command.Subcommands], a [pflag.FlagSet] factory, and a
// Run function. Commands are assembled into a tree in cmd/speclock/commands
// and dispatched via [Command.Execute], which handles flag parsing,
// subcommand routing, and structured help output with examples.
//
// When a user types an unknown subcommand or flag, the framework computes
// Levenshtein edit distance against all known names and suggests the
// closest match (threshold: distance <= 3). This is implemented in
// suggest.go.
//
// [ExitError] lets a command own its exit status: the main function exits
// with the carried code without printing an extra "error:" line. Commands
// that report drift use it so CI gates see the right code after the human
// readable report has already been printed.
package cli
