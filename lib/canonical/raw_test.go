// Copyright 2026 The Speclock Authors
// SPDX-License-Identifier: Apache-2.0

package canonical

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func newRawSource(baseURL, token string) *rawSource {
	return &rawSource{
		coords:  Coordinates{Repo: "o/r", Commit: "sha"},
		baseURL: baseURL,
		token:   token,
		client:  &http.Client{Timeout: 5 * time.Second},
	}
}

func TestRawSourceFetch(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/o/r/sha/spec/a.md" {
			t.Errorf("path = %q", r.URL.Path)
		}
		if got := r.Header.Get("Accept"); got != "text/plain" {
			t.Errorf("Accept = %q", got)
		}
		if got := r.Header.Get("Authorization"); got != "" {
			t.Errorf("Authorization = %q, want unset without token", got)
		}
		fmt.Fprint(w, "raw content\n")
	}))
	defer server.Close()

	text, err := newRawSource(server.URL, "").Load(context.Background(), "spec/a.md")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if text != "raw content\n" {
		t.Errorf("Load = %q", text)
	}
}

func TestRawSourceBearerToken(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer secret-token" {
			t.Errorf("Authorization = %q", got)
		}
	}))
	defer server.Close()

	if _, err := newRawSource(server.URL, "secret-token").Load(context.Background(), "spec/a.md"); err != nil {
		t.Fatalf("Load: %v", err)
	}
}

func TestRawSourceHTTPError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer server.Close()

	_, err := newRawSource(server.URL, "").Load(context.Background(), "spec/a.md")
	if err == nil || !strings.Contains(err.Error(), "HTTP 404") {
		t.Errorf("Load error = %v, want HTTP 404", err)
	}
	if err != nil && !strings.Contains(err.Error(), "spec/a.md") {
		t.Errorf("Load error %q does not name the path", err)
	}
}

func TestRawSourceEscapesPath(t *testing.T) {
	var seenPath string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seenPath = r.URL.EscapedPath()
	}))
	defer server.Close()

	if _, err := newRawSource(server.URL, "").Load(context.Background(), "spec/a b.md"); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if seenPath != "/o/r/sha/spec/a%20b.md" {
		t.Errorf("escaped path = %q", seenPath)
	}
}

func TestRawSourceUnreachableHost(t *testing.T) {
	source := &rawSource{
		coords:  Coordinates{Repo: "o/r", Commit: "sha"},
		baseURL: "http://127.0.0.1:1",
		client:  &http.Client{Timeout: 2 * time.Second},
	}
	if _, err := source.Load(context.Background(), "spec/a.md"); err == nil {
		t.Error("Load should fail for an unreachable host")
	}
}
