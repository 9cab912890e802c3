// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package clock

import (
	"sync"
	"time"
)

// Fake returns a FakeClock set to the given time. Time stands still
// until Advance or Set is called.
func Fake(initial time.Time) *FakeClock {
	return &FakeClock{current: initial}
}

// FakeClock is a deterministic Clock for tests. Safe for concurrent use.
type FakeClock struct {
	mutex   sync.Mutex
	current time.Time
}

// Now returns the current fake time.
func (clock *FakeClock) Now() time.Time {
	clock.mutex.Lock()
	defer clock.mutex.Unlock()
	return clock.current
}

// Advance moves the clock forward by d. Negative durations are ignored
// so fake time never runs backwards.
func (clock *FakeClock) Advance(d time.Duration) {
	if d <= 0 {
		return
	}
	clock.mutex.Lock()
	defer clock.mutex.Unlock()
	clock.current = clock.current.Add(d)
}

// Set jumps the clock to an absolute time.
func (clock *FakeClock) Set(t time.Time) {
	clock.mutex.Lock()
	defer clock.mutex.Unlock()
	clock.current = t
}
