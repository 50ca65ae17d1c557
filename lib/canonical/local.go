// Copyright 2026 The Speclock Authors
// SPDX-License-Identifier: Apache-2.0

package canonical

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
)

// localSource reads canonical files from a local checkout. It is the
// authoritative source when configured: a missing file is a hard
// failure so an operator verifying against a stale or wrong checkout
// is told so, instead of silently falling back to the network.
type localSource struct {
	root string
}

func (source *localSource) Name() string { return "local checkout" }

func (source *localSource) Load(_ context.Context, relPath string) (string, error) {
	path := filepath.Join(source.root, filepath.FromSlash(relPath))
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", fmt.Errorf("canonical file not found at %s", path)
		}
		return "", fmt.Errorf("reading %s: %w", path, err)
	}
	return string(data), nil
}
