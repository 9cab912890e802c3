// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// Panel geometry. The border takes one column on each side and the
// content is padded by one more.
const (
	panelChromeWidth = 4
	panelMinWidth    = 28
	panelMaxWidth    = 56
)

// SlideOver is a full-height panel pinned to the right edge of the
// screen. The caller supplies already-styled body lines; the panel
// adds the border, title, footer and background.
type SlideOver struct {
	Title  string
	Body   []string
	Footer string
}

// Width returns the panel width for a screen: about 40% of the screen,
// clamped to a usable range and never wider than the screen.
func (panel SlideOver) Width(screenWidth int) int {
	width := min(max(screenWidth*2/5, panelMinWidth), panelMaxWidth)
	return min(width, screenWidth)
}

// Render returns the panel lines and the anchor column for
// [SpliceOverlay]. The panel always starts at row 0.
func (panel SlideOver) Render(theme Theme, screenWidth, screenHeight int) ([]string, int) {
	width := panel.Width(screenWidth)
	innerWidth := max(width-panelChromeWidth, 1)
	innerHeight := max(screenHeight-2, 3)

	background := lipgloss.NewStyle().Background(theme.PanelBackground)
	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(theme.HeaderForeground).
		Background(theme.PanelBackground)
	footerStyle := lipgloss.NewStyle().
		Foreground(theme.FaintText).
		Background(theme.PanelBackground)

	lines := make([]string, 0, innerHeight)
	lines = append(lines, PadLine(titleStyle.Render(panel.Title), innerWidth, background))
	lines = append(lines, background.Render(strings.Repeat(" ", innerWidth)))

	// The footer keeps the last line; body lines past the available
	// space are cut.
	bodyRoom := innerHeight - len(lines) - 1
	for index := 0; index < bodyRoom; index++ {
		content := ""
		if index < len(panel.Body) {
			content = panel.Body[index]
		}
		lines = append(lines, PadLine(content, innerWidth, background))
	}
	lines = append(lines, PadLine(footerStyle.Render(panel.Footer), innerWidth, background))

	rendered := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.FocusBorder).
		BorderBackground(theme.PanelBackground).
		Background(theme.PanelBackground).
		Padding(0, 1).
		Render(strings.Join(lines, "\n"))

	result := strings.Split(rendered, "\n")
	renderedWidth := 0
	if len(result) > 0 {
		renderedWidth = ansi.StringWidth(result[0])
	}
	return result, max(screenWidth-renderedWidth, 0)
}
