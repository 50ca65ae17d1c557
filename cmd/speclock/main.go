// Copyright 2026 The Speclock Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"fmt"
	"os"

	"github.com/speclock-dev/speclock/cmd/speclock/cli"
	"github.com/speclock-dev/speclock/cmd/speclock/commands"
)

func main() {
	if err := run(); err != nil {
		// Commands that print their own output (like lock verify)
		// return an ExitError with the desired exit code. Don't print
		// a redundant "error:" line for those.
		if coder, ok := err.(interface{ ExitCode() int }); ok {
			os.Exit(coder.ExitCode())
		}
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	return commands.Root().Execute(context.Background(), os.Args[1:], cli.NewCommandLogger())
}
