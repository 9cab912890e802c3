// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package clock

import (
	"testing"
	"time"
)

func TestFakeClockAdvance(t *testing.T) {
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	fake := Fake(start)

	if !fake.Now().Equal(start) {
		t.Fatalf("Now() = %v, want %v", fake.Now(), start)
	}

	fake.Advance(5 * time.Second)
	if got := fake.Now().Sub(start); got != 5*time.Second {
		t.Errorf("after Advance(5s), elapsed = %v", got)
	}

	fake.Advance(-time.Hour)
	if got := fake.Now().Sub(start); got != 5*time.Second {
		t.Errorf("negative Advance should be ignored, elapsed = %v", got)
	}

	later := start.Add(24 * time.Hour)
	fake.Set(later)
	if !fake.Now().Equal(later) {
		t.Errorf("after Set, Now() = %v, want %v", fake.Now(), later)
	}
}

func TestRealClockMovesForward(t *testing.T) {
	wall := Real()
	first := wall.Now()
	second := wall.Now()
	if second.Before(first) {
		t.Errorf("real clock went backwards: %v then %v", first, second)
	}
}
