// Copyright 2026 The Speclock Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"strings"
	"testing"

	"github.com/speclock-dev/speclock/cmd/speclock/cli"
)

// TestCommandTreeShape walks the full production command tree and
// validates the structural invariants the dispatcher relies on: every
// command has a name and a summary or description, sibling names are
// unique, and every leaf has a Run function.
func TestCommandTreeShape(t *testing.T) {
	root := Root()
	walkCommands(root, nil, func(command *cli.Command, path []string) {
		name := strings.Join(path, " ")

		if command.Name == "" {
			t.Errorf("%s: command with empty name", name)
		}
		if command != root && command.Summary == "" && command.Description == "" {
			t.Errorf("%s: command with no summary or description", name)
		}
		if command.Run == nil && len(command.Subcommands) == 0 {
			t.Errorf("%s: leaf command with no Run function", name)
		}

		seen := make(map[string]bool)
		for _, sub := range command.Subcommands {
			if seen[sub.Name] {
				t.Errorf("%s: duplicate subcommand %q", name, sub.Name)
			}
			seen[sub.Name] = true
		}
	})
}

func TestRootHasCoreCommands(t *testing.T) {
	root := Root()
	for _, want := range []string{"lock", "packet", "patch", "version"} {
		found := false
		for _, sub := range root.Subcommands {
			if sub.Name == want {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("root tree missing %q command", want)
		}
	}
}

// walkCommands recursively visits every command in the tree,
// calling visit for each node with the accumulated command path.
func walkCommands(command *cli.Command, path []string, visit func(*cli.Command, []string)) {
	current := make([]string, len(path)+1)
	copy(current, path)
	current[len(path)] = command.Name
	visit(command, current)
	for _, sub := range command.Subcommands {
		walkCommands(sub, current, visit)
	}
}
