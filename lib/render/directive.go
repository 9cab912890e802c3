// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package render

import "fmt"

// DirectiveKind names the presentation a [Directive] asks for.
type DirectiveKind string

const (
	// KindRing is a circular progress gauge with a centre label and a
	// legend of rows.
	KindRing DirectiveKind = "ring"
	// KindStackedBar is a horizontal bar split into coloured segments.
	KindStackedBar DirectiveKind = "stacked_bar"
	// KindEmptyState is an icon plus a "no data" message.
	KindEmptyState DirectiveKind = "empty_state"
	// KindHeaderOnly is a card showing nothing but its title.
	KindHeaderOnly DirectiveKind = "header_only"
)

// Tone is the semantic colour of a legend row or bar segment. The
// viewer maps tones to theme colours.
type Tone string

const (
	ToneConnected    Tone = "connected"
	ToneDisconnected Tone = "disconnected"
	ToneCritical     Tone = "critical"
	ToneWarning      Tone = "warning"
	ToneUnavailable  Tone = "unavailable"
	TonePassed       Tone = "passed"
	ToneNeutral      Tone = "neutral"
)

// Row is one legend entry next to a ring gauge.
type Row struct {
	Label string
	Count int
	Tone  Tone

	// Checklist rows are drawn with a checkbox marker instead of a
	// coloured dot.
	Checklist bool
}

// Text returns the row as displayed, e.g. "Connected (3)".
func (row Row) Text() string {
	return fmt.Sprintf("%s (%d)", row.Label, row.Count)
}

// Ring is a circular progress gauge.
type Ring struct {
	// Fraction is the filled share of the ring, in [0, 1].
	Fraction float64

	// CenterLabel is drawn in the middle of the ring.
	CenterLabel string

	Tone Tone
	Rows []Row
}

// Segment is one part of a stacked bar.
type Segment struct {
	Name  string
	Count int

	// Percent is Count as a share of the bar's bucket sum, in [0, 100].
	Percent float64
}

// StackedBar is a horizontal bar of segments in display order.
type StackedBar struct {
	Segments   []Segment
	TotalLabel string
}

// Percents returns each segment's percentage, in order.
func (bar StackedBar) Percents() []float64 {
	percents := make([]float64, len(bar.Segments))
	for index, segment := range bar.Segments {
		percents[index] = segment.Percent
	}
	return percents
}

// EmptyState is a "no data" panel.
type EmptyState struct {
	Icon    string
	Message string
}

// RemoveAffordance identifies the widget a card's remove control acts
// on.
type RemoveAffordance struct {
	CategoryID string
	WidgetID   string
}

// Directive describes how to present one widget. Exactly the field
// named by Kind is set among Ring, Bar and Empty; KindHeaderOnly sets
// none of them.
type Directive struct {
	Kind  DirectiveKind
	Title string

	Ring  *Ring
	Bar   *StackedBar
	Empty *EmptyState

	// Remove is attached by [RenderCategory]; [Render] leaves it nil.
	Remove *RemoveAffordance

	// Highlight holds the rune positions of Title that matched the
	// search term.
	Highlight []int
}
