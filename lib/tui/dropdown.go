// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package tui

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// DropdownOption is one selectable entry.
type DropdownOption struct {
	Label string // Display text.
	Value string // Value reported on selection.
}

// Dropdown is a floating single-choice menu anchored at a screen
// position. The owner routes keys and mouse clicks to it while it is
// open; the dropdown itself holds no focus state.
type Dropdown struct {
	Options []DropdownOption
	Cursor  int
	AnchorX int
	AnchorY int
}

// NewDropdown creates a dropdown with the cursor on the option whose
// value is selected, or on the first option when none matches.
func NewDropdown(options []DropdownOption, selected string) *Dropdown {
	dropdown := &Dropdown{Options: options}
	dropdown.Select(selected)
	return dropdown
}

// Select moves the cursor to the option with the given value. Returns
// false and leaves the cursor alone when no option matches.
func (dropdown *Dropdown) Select(value string) bool {
	for index, option := range dropdown.Options {
		if option.Value == value {
			dropdown.Cursor = index
			return true
		}
	}
	return false
}

// MoveUp moves the cursor up by one, wrapping to the bottom.
func (dropdown *Dropdown) MoveUp() {
	if len(dropdown.Options) == 0 {
		return
	}
	dropdown.Cursor = (dropdown.Cursor - 1 + len(dropdown.Options)) % len(dropdown.Options)
}

// MoveDown moves the cursor down by one, wrapping to the top.
func (dropdown *Dropdown) MoveDown() {
	if len(dropdown.Options) == 0 {
		return
	}
	dropdown.Cursor = (dropdown.Cursor + 1) % len(dropdown.Options)
}

// Selected returns the highlighted option.
func (dropdown *Dropdown) Selected() DropdownOption {
	if dropdown.Cursor < 0 || dropdown.Cursor >= len(dropdown.Options) {
		return DropdownOption{}
	}
	return dropdown.Options[dropdown.Cursor]
}

// Width is the rendered width in columns: a two-column marker, the
// widest label, and one column of padding on each side.
func (dropdown *Dropdown) Width() int {
	widest := 0
	for _, option := range dropdown.Options {
		widest = max(widest, ansi.StringWidth(option.Label))
	}
	return 2 + widest + 2
}

// OptionAt returns the index of the option drawn at screen (x, y), or
// -1 when the point is outside the dropdown.
func (dropdown *Dropdown) OptionAt(x, y int) int {
	if x < dropdown.AnchorX || x >= dropdown.AnchorX+dropdown.Width() {
		return -1
	}
	index := y - dropdown.AnchorY
	if index < 0 || index >= len(dropdown.Options) {
		return -1
	}
	return index
}

// Render produces one equal-width line per option for
// [SpliceOverlay]. The highlighted option is drawn in the selection
// colors.
func (dropdown *Dropdown) Render(theme Theme) []string {
	innerWidth := dropdown.Width() - 2

	normal := lipgloss.NewStyle().
		Foreground(theme.PanelForeground).
		Background(theme.PanelBackground)
	selected := lipgloss.NewStyle().
		Foreground(theme.SelectedForeground).
		Background(theme.SelectedBackground).
		Bold(true)

	lines := make([]string, 0, len(dropdown.Options))
	for index, option := range dropdown.Options {
		style, marker := normal, "  "
		if index == dropdown.Cursor {
			style, marker = selected, "> "
		}
		content := PadLine(style.Render(marker+option.Label), innerWidth, style)
		lines = append(lines, style.Render(" ")+content+style.Render(" "))
	}
	return lines
}
