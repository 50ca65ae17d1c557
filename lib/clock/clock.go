// Copyright 2026 The Speclock Authors
// SPDX-License-Identifier: Apache-2.0

// Package clock abstracts time observation for testability. Production
// code injects Real(); tests inject Fake() with a pinned time so
// timestamped output (lock records, report blocks) is deterministic.
package clock

import "time"

// Clock provides the current time. Every production function that
// would call time.Now directly should accept a Clock instead.
type Clock interface {
	// Now returns the current time.
	Now() time.Time
}

// Real returns a Clock backed by the system time.
func Real() Clock {
	return realClock{}
}

type realClock struct{}

func (realClock) Now() time.Time { return time.Now() }
