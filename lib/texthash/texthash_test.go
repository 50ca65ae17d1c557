// Copyright 2026 The Speclock Authors
// SPDX-License-Identifier: Apache-2.0

package texthash

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"testing"
)

func TestNormalizeNewlines(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"unix untouched", "a\nb\n", "a\nb\n"},
		{"windows", "a\r\nb\r\n", "a\nb\n"},
		{"old mac", "a\rb\r", "a\nb\n"},
		{"mixed", "a\r\nb\rc\n", "a\nb\nc\n"},
		{"no trailing newline", "a\r\nb", "a\nb"},
		{"empty", "", ""},
		{"lone cr", "\r", "\n"},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			if got := NormalizeNewlines(test.in); got != test.want {
				t.Errorf("NormalizeNewlines(%q) = %q, want %q", test.in, got, test.want)
			}
		})
	}
}

func TestDigestMatchesSHA256OfNormalized(t *testing.T) {
	text := "line one\r\nline two\rline three\n"
	sum := sha256.Sum256([]byte("line one\nline two\nline three\n"))
	if got, want := Digest(text), hex.EncodeToString(sum[:]); got != want {
		t.Errorf("Digest = %s, want %s", got, want)
	}
}

func TestDigestLineEndingInvariance(t *testing.T) {
	unix := "alpha\nbeta\ngamma\n"
	variants := []string{
		strings.ReplaceAll(unix, "\n", "\r\n"),
		strings.ReplaceAll(unix, "\n", "\r"),
		unix,
	}
	want := Digest(unix)
	for _, variant := range variants {
		if got := Digest(variant); got != want {
			t.Errorf("Digest(%q) = %s, want %s", variant, got, want)
		}
	}
}

func TestDigestIdempotentUnderNormalize(t *testing.T) {
	text := "a\r\nb\rc"
	if Digest(text) != Digest(NormalizeNewlines(text)) {
		t.Error("Digest(t) != Digest(NormalizeNewlines(t))")
	}
}

func TestDigestIsLowercaseHex(t *testing.T) {
	digest := Digest("content")
	if len(digest) != 64 {
		t.Fatalf("digest length = %d, want 64", len(digest))
	}
	if digest != strings.ToLower(digest) {
		t.Errorf("digest %q is not lowercase", digest)
	}
}
