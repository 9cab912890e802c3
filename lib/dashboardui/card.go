// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package dashboardui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/bureau-foundation/dashboard/lib/render"
	"github.com/bureau-foundation/dashboard/lib/tui"
)

// Card geometry. Every card and add tile has the same outer size so
// the grid stays aligned.
const (
	// DefaultCardWidth is the outer width of a card in columns.
	DefaultCardWidth = 38
	// MinCardWidth is the narrowest card that still fits a ring row.
	MinCardWidth = 24

	cardInnerHeight = 7 // title, blank, up to five body lines
	cardChromeWidth = 4 // border and one column of padding per side
	cardHeight      = cardInnerHeight + 2
	cardGap         = 1
	removeGlyph     = "✕"
)

// cardStyle describes how one card is decorated, independent of its
// content.
type cardStyle struct {
	focused    bool
	removable  bool
	glow       lipgloss.Color
	glowActive bool
}

// renderCard draws a directive as a bordered card of the given outer
// width.
func renderCard(theme tui.Theme, directive render.Directive, width int, style cardStyle) string {
	innerWidth := max(width-cardChromeWidth, 1)

	lines := []string{renderTitle(theme, directive, innerWidth, style), ""}
	lines = append(lines, renderBody(theme, directive, innerWidth)...)
	for len(lines) < cardInnerHeight {
		lines = append(lines, "")
	}

	border := lipgloss.RoundedBorder()
	borderColor := theme.BorderColor
	if style.focused {
		border = lipgloss.ThickBorder()
		borderColor = theme.FocusBorder
	}
	return lipgloss.NewStyle().
		Border(border).
		BorderForeground(borderColor).
		Padding(0, 1).
		Width(innerWidth + 2).
		Height(cardInnerHeight).
		Render(strings.Join(lines[:cardInnerHeight], "\n"))
}

// renderTitle draws the widget name with the search match emphasised
// and, when removal is enabled, the remove glyph at the right edge.
func renderTitle(theme tui.Theme, directive render.Directive, innerWidth int, style cardStyle) string {
	titleWidth := innerWidth
	if style.removable {
		titleWidth -= 2
	}

	base := lipgloss.NewStyle().Foreground(theme.HeaderForeground).Bold(true)
	match := base.Background(theme.SearchHighlightBackground)
	if style.glowActive {
		base = base.Background(style.glow)
	}

	title := highlightRunes(directive.Title, directive.Highlight, base, match)
	if ansi.StringWidth(title) > titleWidth {
		title = ansi.Truncate(title, titleWidth, "…")
	}
	if !style.removable {
		return title
	}

	pad := max(innerWidth-ansi.StringWidth(title)-1, 1)
	remove := lipgloss.NewStyle().Foreground(theme.ErrorText).Render(removeGlyph)
	return title + strings.Repeat(" ", pad) + remove
}

// highlightRunes styles the runes at positions with match and the rest
// with base.
func highlightRunes(text string, positions []int, base, match lipgloss.Style) string {
	if len(positions) == 0 {
		return base.Render(text)
	}
	matched := make(map[int]bool, len(positions))
	for _, position := range positions {
		matched[position] = true
	}

	var builder strings.Builder
	var run []rune
	runMatched := false
	flush := func() {
		if len(run) == 0 {
			return
		}
		if runMatched {
			builder.WriteString(match.Render(string(run)))
		} else {
			builder.WriteString(base.Render(string(run)))
		}
		run = run[:0]
	}
	for index, character := range []rune(text) {
		if matched[index] != runMatched {
			flush()
			runMatched = matched[index]
		}
		run = append(run, character)
	}
	flush()
	return builder.String()
}

func renderBody(theme tui.Theme, directive render.Directive, innerWidth int) []string {
	switch directive.Kind {
	case render.KindRing:
		if directive.Ring != nil {
			return renderRing(theme, *directive.Ring, innerWidth)
		}
	case render.KindStackedBar:
		if directive.Bar != nil {
			return renderStackedBar(theme, *directive.Bar, innerWidth)
		}
	case render.KindEmptyState:
		if directive.Empty != nil {
			return renderEmptyState(theme, *directive.Empty, innerWidth)
		}
	}
	return nil
}

// renderRing draws the gauge as a progress bar followed by the centre
// label, then one legend line per row.
func renderRing(theme tui.Theme, ring render.Ring, innerWidth int) []string {
	label := lipgloss.NewStyle().Bold(true).Foreground(theme.ToneColor(ring.Tone)).Render(ring.CenterLabel)
	barWidth := max(innerWidth-ansi.StringWidth(ring.CenterLabel)-1, 4)

	gauge := progress.New(
		progress.WithSolidFill(string(theme.ToneColor(ring.Tone))),
		progress.WithWidth(barWidth),
		progress.WithoutPercentage(),
	)
	gauge.EmptyColor = string(theme.RingTrail)

	lines := []string{gauge.ViewAs(ring.Fraction) + " " + label}
	for _, row := range ring.Rows {
		marker := lipgloss.NewStyle().Foreground(theme.ToneColor(row.Tone)).Render("●")
		if row.Checklist {
			marker = lipgloss.NewStyle().Foreground(theme.ToneColor(row.Tone)).Render("☐")
		}
		text := lipgloss.NewStyle().Foreground(theme.NormalText).Render(row.Text())
		lines = append(lines, ansi.Truncate(marker+" "+text, innerWidth, "…"))
	}
	return lines
}

// renderStackedBar draws the total label, the bar with each segment in
// its severity color, and a legend of percentages.
func renderStackedBar(theme tui.Theme, bar render.StackedBar, innerWidth int) []string {
	lines := []string{
		ansi.Truncate(lipgloss.NewStyle().Foreground(theme.NormalText).Render(bar.TotalLabel), innerWidth, "…"),
		"",
	}

	widths := render.SegmentWidths(bar.Percents(), innerWidth)
	var builder strings.Builder
	used := 0
	for index, segment := range bar.Segments {
		if widths[index] == 0 {
			continue
		}
		builder.WriteString(lipgloss.NewStyle().
			Foreground(theme.SeverityColor(segment.Name)).
			Render(strings.Repeat("█", widths[index])))
		used += widths[index]
	}
	if used < innerWidth {
		builder.WriteString(lipgloss.NewStyle().
			Foreground(theme.RingTrail).
			Render(strings.Repeat("░", innerWidth-used)))
	}
	lines = append(lines, builder.String())

	var legend []string
	for _, segment := range bar.Segments {
		swatch := lipgloss.NewStyle().Foreground(theme.SeverityColor(segment.Name)).Render("■")
		legend = append(legend, fmt.Sprintf("%s %s %.0f%%", swatch, segment.Name, segment.Percent))
	}
	lines = append(lines, ansi.Truncate(strings.Join(legend, "  "), innerWidth, "…"))
	return lines
}

func renderEmptyState(theme tui.Theme, empty render.EmptyState, innerWidth int) []string {
	center := lipgloss.NewStyle().Width(innerWidth).Align(lipgloss.Center)
	return []string{
		"",
		center.Foreground(theme.FaintText).Render(empty.Icon),
		center.Foreground(theme.FaintText).Render(ansi.Truncate(empty.Message, innerWidth, "…")),
	}
}

// renderAddTile draws the "+ Add Widget" tile for a category.
func renderAddTile(theme tui.Theme, width int, focused bool) string {
	innerWidth := max(width-cardChromeWidth, 1)
	border := lipgloss.NormalBorder()
	color := theme.BorderColor
	if focused {
		border = lipgloss.ThickBorder()
		color = theme.FocusBorder
	}
	label := lipgloss.NewStyle().Foreground(theme.AddTileForeground).Bold(focused).Render("+ Add Widget")
	return lipgloss.NewStyle().
		Border(border).
		BorderForeground(color).
		Padding(0, 1).
		Width(innerWidth+2).
		Height(cardInnerHeight).
		Align(lipgloss.Center, lipgloss.Center).
		Render(label)
}
