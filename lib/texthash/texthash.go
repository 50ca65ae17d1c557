// Copyright 2026 The Speclock Authors
// SPDX-License-Identifier: Apache-2.0

// Package texthash computes line-ending-insensitive digests of text
// content. Canonical spec files are authored on different platforms;
// normalizing newlines before hashing makes drift detection depend on
// content alone, never on checkout line-ending convention.
package texthash

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

// NormalizeNewlines maps every line-ending variant to a single line
// feed: "\r\n" first (so Windows endings don't become two newlines),
// then any bare "\r". All other bytes pass through unchanged.
func NormalizeNewlines(text string) string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	return strings.ReplaceAll(text, "\r", "\n")
}

// Digest returns the lowercase hex SHA-256 of the UTF-8 encoding of
// the normalized text. Two texts that differ only in line-ending
// convention produce identical digests.
func Digest(text string) string {
	sum := sha256.Sum256([]byte(NormalizeNewlines(text)))
	return hex.EncodeToString(sum[:])
}
