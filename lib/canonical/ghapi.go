// Copyright 2026 The Speclock Authors
// SPDX-License-Identifier: Apache-2.0

package canonical

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"os/exec"
	"strings"
	"unicode/utf8"
)

// ghAPISource fetches file content through the GitHub contents API
// using the gh CLI, which supplies its own authentication. The API
// returns the file as a base64 payload (line-wrapped by GitHub).
type ghAPISource struct {
	coords Coordinates

	// run executes the gh binary. Tests inject a fake; nil means the
	// real CLI.
	run func(ctx context.Context, args ...string) ([]byte, error)
}

func (source *ghAPISource) Name() string { return "gh api" }

func (source *ghAPISource) Load(ctx context.Context, relPath string) (string, error) {
	endpoint := fmt.Sprintf("repos/%s/contents/%s?ref=%s",
		source.coords.Repo, escapePath(relPath), source.coords.Commit)

	output, err := source.execute(ctx, "api", endpoint)
	if err != nil {
		return "", err
	}

	var payload struct {
		Encoding string `json:"encoding"`
		Content  string `json:"content"`
	}
	if err := json.Unmarshal(output, &payload); err != nil {
		return "", fmt.Errorf("parsing gh api response: %w", err)
	}
	if payload.Encoding != "base64" || payload.Content == "" {
		return "", fmt.Errorf("unexpected gh api response; expected base64 content")
	}

	// GitHub wraps the base64 payload across lines; strip whitespace
	// before decoding.
	compact := strings.Map(func(r rune) rune {
		if r == '\n' || r == '\r' || r == ' ' || r == '\t' {
			return -1
		}
		return r
	}, payload.Content)

	decoded, err := base64.StdEncoding.DecodeString(compact)
	if err != nil {
		return "", fmt.Errorf("decoding gh api payload: %w", err)
	}
	if !utf8.Valid(decoded) {
		return "", fmt.Errorf("canonical content for %s is not valid UTF-8", relPath)
	}
	return string(decoded), nil
}

// execute runs gh with the given arguments. Stderr is captured and
// folded into the error so a non-zero exit carries its diagnostic.
func (source *ghAPISource) execute(ctx context.Context, args ...string) ([]byte, error) {
	if source.run != nil {
		return source.run(ctx, args...)
	}

	if _, err := exec.LookPath("gh"); err != nil {
		return nil, fmt.Errorf("gh CLI is not available")
	}

	var stdout, stderr bytes.Buffer
	command := exec.CommandContext(ctx, "gh", args...)
	command.Stdout = &stdout
	command.Stderr = &stderr
	if err := command.Run(); err != nil {
		diagnostic := strings.TrimSpace(stderr.String())
		if diagnostic == "" {
			diagnostic = strings.TrimSpace(stdout.String())
		}
		if diagnostic == "" {
			diagnostic = err.Error()
		}
		return nil, fmt.Errorf("gh %s: %s", strings.Join(args, " "), diagnostic)
	}
	return stdout.Bytes(), nil
}
