// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// RenderScrollbar draws a one-column scrollbar for a body of totalLines
// lines of which height are visible starting at offset. When the body
// fits, the column is blank so the grid does not look scrollable.
func RenderScrollbar(theme Theme, height, totalLines, offset int) string {
	if height <= 0 {
		return ""
	}

	lines := make([]string, height)
	if totalLines <= height {
		for index := range lines {
			lines[index] = " "
		}
		return strings.Join(lines, "\n")
	}

	trackStyle := lipgloss.NewStyle().Foreground(theme.BorderColor)
	thumbStyle := lipgloss.NewStyle().Foreground(theme.FocusBorder)

	thumbSize := max(height*height/totalLines, 1)
	scrollableRange := totalLines - height
	trackRange := height - thumbSize
	thumbOffset := 0
	if trackRange > 0 {
		thumbOffset = min(max(offset, 0), scrollableRange) * trackRange / scrollableRange
	}

	for index := range lines {
		if index >= thumbOffset && index < thumbOffset+thumbSize {
			lines[index] = thumbStyle.Render("┃")
		} else {
			lines[index] = trackStyle.Render("│")
		}
	}
	return strings.Join(lines, "\n")
}
