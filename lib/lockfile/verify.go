// Copyright 2026 The Speclock Authors
// SPDX-License-Identifier: Apache-2.0

package lockfile

import (
	"context"
	"fmt"

	"github.com/speclock-dev/speclock/lib/texthash"
)

// Mismatch records one drifted or unretrievable canonical file. When
// retrieval failed, Actual holds an error placeholder instead of a
// digest.
type Mismatch struct {
	Path     string
	Expected string
	Actual   string
}

// VerificationResult is the transient outcome of a verification pass.
// It is never persisted.
type VerificationResult struct {
	OK         bool
	Mismatches []Mismatch
}

// Verify recomputes digests for every entry in a lock record and
// reports mismatches in entry order. A retrieval failure for one path
// is recorded as a mismatch with an error placeholder rather than
// aborting the pass; one broken path must not hide digest drift on
// the others. The lock record is never mutated.
func Verify(ctx context.Context, record *Record, loader ContentLoader) VerificationResult {
	var mismatches []Mismatch

	for _, entry := range record.CanonicalFiles {
		text, err := loader.Load(ctx, entry.Path)
		if err != nil {
			mismatches = append(mismatches, Mismatch{
				Path:     entry.Path,
				Expected: entry.SHA256,
				Actual:   fmt.Sprintf("<error: %v>", err),
			})
			continue
		}

		actual := texthash.Digest(text)
		if actual != entry.SHA256 {
			mismatches = append(mismatches, Mismatch{
				Path:     entry.Path,
				Expected: entry.SHA256,
				Actual:   actual,
			})
		}
	}

	return VerificationResult{OK: len(mismatches) == 0, Mismatches: mismatches}
}

// Decide turns a verification result into a process outcome. This
// three-way branch is the only place operator intent (the
// ALLOW_SPEC_DRIFT override, read by the command layer) overrides a
// factual mismatch.
func Decide(result VerificationResult, allowDrift bool) (int, string) {
	if result.OK {
		return 0, "Spec verification PASS."
	}
	if allowDrift {
		return 0, "Spec drift detected, but ALLOW_SPEC_DRIFT=1 so continuing with warning."
	}
	return 1, "Spec drift detected. Set ALLOW_SPEC_DRIFT=1 to bypass."
}
