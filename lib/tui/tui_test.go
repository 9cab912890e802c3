// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package tui

import (
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/x/ansi"

	"github.com/bureau-foundation/dashboard/lib/render"
)

func TestHeatDecay(t *testing.T) {
	tracker := NewHeatTracker()
	start := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	if heat := tracker.Heat("cloud-accounts", start); heat != 0 {
		t.Errorf("never-ignited heat = %v, want 0", heat)
	}

	tracker.Ignite("cloud-accounts", HeatPut, start)
	if heat := tracker.Heat("cloud-accounts", start); heat != 1 {
		t.Errorf("heat at ignition = %v, want 1", heat)
	}
	halfway := start.Add(HeatDecayDuration / 2)
	if heat := tracker.Heat("cloud-accounts", halfway); heat < 0.49 || heat > 0.51 {
		t.Errorf("heat halfway = %v, want about 0.5", heat)
	}
	if !tracker.HasHot(halfway) {
		t.Error("tracker should still be hot halfway through")
	}

	done := start.Add(HeatDecayDuration)
	if heat := tracker.Heat("cloud-accounts", done); heat != 0 {
		t.Errorf("heat after decay = %v, want 0", heat)
	}
	if tracker.HasHot(done) {
		t.Error("tracker should be cold after the decay duration")
	}
	if len(tracker.entries) != 0 {
		t.Errorf("cold entries should be collected, %d left", len(tracker.entries))
	}
}

func TestHeatAccent(t *testing.T) {
	tracker := NewHeatTracker()
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	tracker.Ignite("widget-1", HeatPut, now)
	tracker.Ignite("cwpp-dashboard", HeatRemove, now)

	if color, ok := tracker.Accent(DefaultTheme, "widget-1", now); !ok || color != DefaultTheme.HotAccentPut {
		t.Errorf("put accent = %q %v", color, ok)
	}
	if color, ok := tracker.Accent(DefaultTheme, "cwpp-dashboard", now); !ok || color != DefaultTheme.HotAccentRemove {
		t.Errorf("remove accent = %q %v", color, ok)
	}

	late := now.Add(HeatDecayDuration - HeatTickInterval)
	if _, ok := tracker.Accent(DefaultTheme, "widget-1", late); ok {
		t.Error("nearly cooled entries should not be drawn")
	}
}

func TestDropdownNavigation(t *testing.T) {
	dropdown := NewDropdown([]DropdownOption{
		{Label: "Chart", Value: "chart"},
		{Label: "Text", Value: "text"},
	}, "text")

	if dropdown.Selected().Value != "text" {
		t.Fatalf("initial selection = %q, want text", dropdown.Selected().Value)
	}
	dropdown.MoveDown()
	if dropdown.Selected().Value != "chart" {
		t.Errorf("MoveDown should wrap to the top, got %q", dropdown.Selected().Value)
	}
	dropdown.MoveUp()
	if dropdown.Selected().Value != "text" {
		t.Errorf("MoveUp should wrap to the bottom, got %q", dropdown.Selected().Value)
	}
	if dropdown.Select("gauge") {
		t.Error("Select of an unknown value should report false")
	}
	if dropdown.Selected().Value != "text" {
		t.Error("failed Select should leave the cursor alone")
	}
}

func TestDropdownRenderAndHitTest(t *testing.T) {
	dropdown := NewDropdown([]DropdownOption{
		{Label: "Chart", Value: "chart"},
		{Label: "Text", Value: "text"},
	}, "chart")
	dropdown.AnchorX, dropdown.AnchorY = 10, 5

	lines := dropdown.Render(DefaultTheme)
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(lines))
	}
	for index, line := range lines {
		if width := ansi.StringWidth(line); width != dropdown.Width() {
			t.Errorf("line %d width = %d, want %d", index, width, dropdown.Width())
		}
	}
	if !strings.Contains(ansi.Strip(lines[0]), "> Chart") {
		t.Errorf("selected line missing marker: %q", ansi.Strip(lines[0]))
	}

	if index := dropdown.OptionAt(11, 6); index != 1 {
		t.Errorf("OptionAt(11, 6) = %d, want 1", index)
	}
	if index := dropdown.OptionAt(9, 5); index != -1 {
		t.Errorf("OptionAt left of the anchor = %d, want -1", index)
	}
	if index := dropdown.OptionAt(11, 7); index != -1 {
		t.Errorf("OptionAt below the options = %d, want -1", index)
	}
}

func TestSpliceOverlay(t *testing.T) {
	view := "0123456789\nabcdefghij\nshort"
	result := SpliceOverlay(view, []string{"XX", "YY", "ZZ"}, 3, 1)
	lines := strings.Split(ansi.Strip(result), "\n")

	if lines[0] != "0123456789" {
		t.Errorf("line above the overlay changed: %q", lines[0])
	}
	if lines[1] != "abcXXfghij" {
		t.Errorf("spliced line = %q, want abcXXfghij", lines[1])
	}
	if lines[2] != "shoYY" {
		t.Errorf("spliced short line = %q, want shoYY", lines[2])
	}
	if len(lines) != 3 {
		t.Errorf("overlay past the bottom should be dropped, got %d lines", len(lines))
	}

	padded := ansi.Strip(SpliceOverlay("ab", []string{"X"}, 4, 0))
	if padded != "ab  X" {
		t.Errorf("overlay past the end of a line = %q, want %q", padded, "ab  X")
	}
}

func TestSlideOverRender(t *testing.T) {
	panel := SlideOver{
		Title:  "Add Widget",
		Body:   []string{"Name", "Type"},
		Footer: "Enter confirm  Esc cancel",
	}
	lines, anchorX := panel.Render(DefaultTheme, 100, 20)

	if len(lines) != 20 {
		t.Errorf("panel height = %d, want full screen height 20", len(lines))
	}
	width := ansi.StringWidth(lines[0])
	if anchorX+width != 100 {
		t.Errorf("panel should be flush with the right edge: anchor %d + width %d", anchorX, width)
	}
	plain := ansi.Strip(strings.Join(lines, "\n"))
	for _, want := range []string{"Add Widget", "Name", "Type", "Esc cancel"} {
		if !strings.Contains(plain, want) {
			t.Errorf("panel missing %q", want)
		}
	}
}

func TestRenderScrollbar(t *testing.T) {
	fits := RenderScrollbar(DefaultTheme, 4, 3, 0)
	if strings.TrimSpace(ansi.Strip(fits)) != "" {
		t.Errorf("scrollbar should be blank when the body fits, got %q", fits)
	}

	top := strings.Split(ansi.Strip(RenderScrollbar(DefaultTheme, 4, 8, 0)), "\n")
	if top[0] != "┃" || top[3] != "│" {
		t.Errorf("thumb should start at the top: %q", top)
	}
	bottom := strings.Split(ansi.Strip(RenderScrollbar(DefaultTheme, 4, 8, 4)), "\n")
	if bottom[3] != "┃" || bottom[0] != "│" {
		t.Errorf("thumb should end at the bottom: %q", bottom)
	}
}

func TestThemeColors(t *testing.T) {
	if DefaultTheme.ToneColor(render.ToneCritical) != DefaultTheme.ToneCritical {
		t.Error("critical tone should use the critical color")
	}
	if DefaultTheme.ToneColor(render.Tone("mystery")) != DefaultTheme.FaintText {
		t.Error("unknown tones should fall back to faint text")
	}
	if DefaultTheme.SeverityColor("orange") != "208" {
		t.Errorf("orange bucket = %q", DefaultTheme.SeverityColor("orange"))
	}
	if DefaultTheme.SeverityColor("purple") != DefaultTheme.FaintText {
		t.Error("unknown buckets should fall back to faint text")
	}
}
