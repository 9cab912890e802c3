// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// SpliceOverlay paints overlay lines over a rendered view with the
// top-left corner at (anchorX, anchorY). Truncation is ANSI-aware, so
// styling in the underlying view survives on both sides of the overlay.
// Overlay lines falling outside the view are dropped.
func SpliceOverlay(view string, overlayLines []string, anchorX, anchorY int) string {
	if len(overlayLines) == 0 {
		return view
	}
	anchorX = max(anchorX, 0)

	viewLines := strings.Split(view, "\n")
	for index, overlayLine := range overlayLines {
		row := anchorY + index
		if row < 0 || row >= len(viewLines) {
			continue
		}

		underlying := viewLines[row]
		underlyingWidth := ansi.StringWidth(underlying)

		var line strings.Builder
		prefix := ansi.Truncate(underlying, anchorX, "")
		line.WriteString(prefix)
		// Short underlying lines leave a gap before the anchor.
		if gap := anchorX - ansi.StringWidth(prefix); gap > 0 {
			line.WriteString(strings.Repeat(" ", gap))
		}
		line.WriteString("\x1b[0m")
		line.WriteString(overlayLine)
		line.WriteString("\x1b[0m")

		if suffixStart := anchorX + ansi.StringWidth(overlayLine); suffixStart < underlyingWidth {
			line.WriteString(ansi.TruncateLeft(underlying, suffixStart, ""))
		}
		viewLines[row] = line.String()
	}
	return strings.Join(viewLines, "\n")
}

// PadLine pads styled content to width columns using the background
// style, truncating with an ellipsis when the content is too wide.
func PadLine(styledContent string, width int, background lipgloss.Style) string {
	contentWidth := ansi.StringWidth(styledContent)
	if contentWidth > width {
		return ansi.Truncate(styledContent, width, "…")
	}
	return styledContent + background.Render(strings.Repeat(" ", width-contentWidth))
}
