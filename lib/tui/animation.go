// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package tui

import (
	"time"

	"github.com/charmbracelet/lipgloss"
)

// HeatDecayDuration is how long a card glows after it changes.
const HeatDecayDuration = 3 * time.Second

// HeatTickInterval is the re-render interval while anything is hot.
const HeatTickInterval = 100 * time.Millisecond

// heatVisibleThreshold is the heat below which the glow is no longer
// drawn. The tint is a single background color, so a long faint tail
// would read as a stuck highlight.
const heatVisibleThreshold = 0.15

// HeatKind distinguishes additions from removals for color selection.
type HeatKind int

const (
	// HeatPut marks a widget that was just added.
	HeatPut HeatKind = iota
	// HeatRemove marks a category that just lost a widget. The removed
	// card is gone, so the glow lands on the category header.
	HeatRemove
)

type heatEntry struct {
	ignition time.Time
	kind     HeatKind
}

// HeatTracker maps widget and category IDs to ignition times. Each
// change ignites an ID, which then cools linearly to zero over
// [HeatDecayDuration]. Not safe for concurrent use; the viewer only
// touches it from the bubbletea update loop.
type HeatTracker struct {
	entries map[string]heatEntry
}

// NewHeatTracker creates an empty tracker.
func NewHeatTracker() *HeatTracker {
	return &HeatTracker{entries: make(map[string]heatEntry)}
}

// Ignite records a change. Re-igniting a hot ID restarts its decay.
func (tracker *HeatTracker) Ignite(id string, kind HeatKind, now time.Time) {
	tracker.entries[id] = heatEntry{ignition: now, kind: kind}
}

// Heat returns 1.0 at ignition, falling linearly to 0.0 at
// [HeatDecayDuration]. IDs that were never ignited have no heat.
func (tracker *HeatTracker) Heat(id string, now time.Time) float64 {
	entry, exists := tracker.entries[id]
	if !exists {
		return 0
	}
	elapsed := now.Sub(entry.ignition)
	if elapsed < 0 {
		return 1
	}
	if elapsed >= HeatDecayDuration {
		return 0
	}
	return 1 - float64(elapsed)/float64(HeatDecayDuration)
}

// Accent returns the glow color for an ID and whether it should be
// drawn at all.
func (tracker *HeatTracker) Accent(theme Theme, id string, now time.Time) (lipgloss.Color, bool) {
	if tracker.Heat(id, now) < heatVisibleThreshold {
		return "", false
	}
	if tracker.entries[id].kind == HeatRemove {
		return theme.HotAccentRemove, true
	}
	return theme.HotAccentPut, true
}

// HasHot reports whether anything is still glowing, which keeps the
// animation tick running. Fully cooled entries are dropped.
func (tracker *HeatTracker) HasHot(now time.Time) bool {
	hot := false
	for id, entry := range tracker.entries {
		if now.Sub(entry.ignition) < HeatDecayDuration {
			hot = true
			continue
		}
		delete(tracker.entries, id)
	}
	return hot
}
