// Copyright 2026 The Speclock Authors
// SPDX-License-Identifier: Apache-2.0

// Package canonical retrieves the current text of canonical spec files
// by relative path, trying a prioritized chain of sources.
//
// Resolution order:
//
//  1. A local checkout root, when configured. The local source is
//     authoritative and exclusive: no network strategy runs, and a
//     missing file is a hard failure rather than a fallback trigger.
//  2. The GitHub contents API via the gh CLI, which carries its own
//     authentication. The payload is base64-encoded file content.
//  3. A direct raw-content fetch over HTTPS, optionally authenticated
//     with a bearer token, with a bounded timeout.
//
// Each source is independent and stateless; the loader tries them in
// order and aggregates failure causes so a combined error names every
// strategy that failed. Adding a future source (e.g., a cache) is a
// matter of list insertion.
package canonical

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"
)

// DefaultFetchTimeout bounds the direct raw-content fetch so a hung
// network call cannot block a verification run indefinitely.
const DefaultFetchTimeout = 30 * time.Second

// Coordinates pin a canonical repository state: the repository in
// owner/name form and the commit (full or short) to read at.
type Coordinates struct {
	Repo   string
	Commit string
}

// Source retrieves one canonical file by repository-relative path.
type Source interface {
	// Name identifies the source in aggregated error messages.
	Name() string

	// Load returns the file text, or an error describing why this
	// source could not produce it.
	Load(ctx context.Context, relPath string) (string, error)
}

// Options configures a Loader.
type Options struct {
	// LocalRoot, when non-empty, points at a local checkout of the
	// canonical repository. Retrieval then uses local files
	// exclusively and skips all network strategies.
	LocalRoot string

	// Token is a bearer token for the raw-content fetch. Empty means
	// unauthenticated.
	Token string

	// Timeout bounds the raw-content fetch. Zero means
	// DefaultFetchTimeout.
	Timeout time.Duration

	// RawBaseURL overrides the raw-content host in tests. Empty means
	// the public raw.githubusercontent.com.
	RawBaseURL string

	// RunGH overrides gh CLI execution in tests. Nil means executing
	// the real gh binary.
	RunGH func(ctx context.Context, args ...string) ([]byte, error)
}

// Loader tries an ordered list of sources until one succeeds. It owns
// no state across calls; each Load is an independent pass.
type Loader struct {
	coords  Coordinates
	sources []Source
}

// NewLoader builds the source chain for the given coordinates. An
// invalid LocalRoot is an operator configuration error and fails
// immediately, before any retrieval is attempted.
func NewLoader(coords Coordinates, options Options) (*Loader, error) {
	if options.LocalRoot != "" {
		info, err := os.Stat(options.LocalRoot)
		if err != nil || !info.IsDir() {
			return nil, fmt.Errorf("INFRA_DOCS_ROOT does not point to a valid directory: %s", options.LocalRoot)
		}
		return &Loader{
			coords:  coords,
			sources: []Source{&localSource{root: options.LocalRoot}},
		}, nil
	}

	timeout := options.Timeout
	if timeout <= 0 {
		timeout = DefaultFetchTimeout
	}

	return &Loader{
		coords: coords,
		sources: []Source{
			&ghAPISource{coords: coords, run: options.RunGH},
			&rawSource{
				coords:  coords,
				baseURL: options.RawBaseURL,
				token:   options.Token,
				client:  &http.Client{Timeout: timeout},
			},
		},
	}, nil
}

// Load retrieves the text of one canonical file, trying each source in
// order. When every source fails, the combined error names each
// source's failure cause. No cause is silently dropped.
func (loader *Loader) Load(ctx context.Context, relPath string) (string, error) {
	var causes []string
	for _, source := range loader.sources {
		text, err := source.Load(ctx, relPath)
		if err == nil {
			return text, nil
		}
		causes = append(causes, fmt.Sprintf("%s: %v", source.Name(), err))
	}
	return "", fmt.Errorf("loading %s from %s@%s: %s",
		relPath, loader.coords.Repo, loader.coords.Commit, strings.Join(causes, "; "))
}

// escapePath percent-encodes each path segment so reserved characters
// round-trip through the API endpoint and the raw-content URL, while
// keeping the segment separators literal.
func escapePath(relPath string) string {
	segments := strings.Split(relPath, "/")
	for index, segment := range segments {
		segments[index] = url.PathEscape(segment)
	}
	return strings.Join(segments, "/")
}
