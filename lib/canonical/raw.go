// Copyright 2026 The Speclock Authors
// SPDX-License-Identifier: Apache-2.0

package canonical

import (
	"context"
	"fmt"
	"net/http"
	"unicode/utf8"

	"github.com/speclock-dev/speclock/lib/netutil"
)

// defaultRawBaseURL is the public raw-content host for GitHub
// repositories.
const defaultRawBaseURL = "https://raw.githubusercontent.com"

// rawSource fetches file content directly from the raw-content host.
// It is the last-resort strategy: unauthenticated unless a bearer
// token is configured, with a bounded timeout on the HTTP client.
type rawSource struct {
	coords  Coordinates
	baseURL string
	token   string
	client  *http.Client
}

func (source *rawSource) Name() string { return "raw fetch" }

func (source *rawSource) Load(ctx context.Context, relPath string) (string, error) {
	baseURL := source.baseURL
	if baseURL == "" {
		baseURL = defaultRawBaseURL
	}
	fetchURL := fmt.Sprintf("%s/%s/%s/%s",
		baseURL, source.coords.Repo, source.coords.Commit, escapePath(relPath))

	request, err := http.NewRequestWithContext(ctx, http.MethodGet, fetchURL, nil)
	if err != nil {
		return "", fmt.Errorf("building request for %s: %w", relPath, err)
	}
	request.Header.Set("Accept", "text/plain")
	if source.token != "" {
		request.Header.Set("Authorization", "Bearer "+source.token)
	}

	response, err := source.client.Do(request)
	if err != nil {
		return "", fmt.Errorf("fetching %s: %w", relPath, err)
	}
	defer response.Body.Close()

	if response.StatusCode != http.StatusOK {
		return "", fmt.Errorf("HTTP %d for %s", response.StatusCode, relPath)
	}

	body, err := netutil.ReadResponse(response.Body)
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", relPath, err)
	}
	if !utf8.Valid(body) {
		return "", fmt.Errorf("canonical content for %s is not valid UTF-8", relPath)
	}
	return string(body), nil
}
