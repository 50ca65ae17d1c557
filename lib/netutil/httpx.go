// Copyright 2026 The Speclock Authors
// SPDX-License-Identifier: Apache-2.0

// Package netutil provides HTTP response helpers for speclock's
// network retrieval strategies. All response body reads are bounded at
// MaxResponseSize so a misbehaving server cannot drive unbounded
// memory allocation. Canonical spec files are text documents orders of
// magnitude below the limit.
package netutil

import (
	"io"
)

// MaxResponseSize is the bound on response body reads: 64 MB. This
// exists solely to prevent a pathological response from exhausting
// memory; the limit is generous enough to never interfere with
// legitimate spec content.
const MaxResponseSize int64 = 64 << 20

// ReadResponse reads a response body up to MaxResponseSize bytes.
// Use instead of io.ReadAll when reading HTTP response bodies.
func ReadResponse(body io.Reader) ([]byte, error) {
	return io.ReadAll(io.LimitReader(body, MaxResponseSize))
}

// ErrorBody reads an HTTP error response body and returns it as a
// string for diagnostic error messages. Read errors are silently
// ignored; a partial or empty body is still useful in a diagnostic.
func ErrorBody(body io.Reader) string {
	data, _ := io.ReadAll(io.LimitReader(body, MaxResponseSize))
	return string(data)
}
