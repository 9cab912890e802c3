// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package dashboardui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/bureau-foundation/dashboard/lib/dashboardstore"
	"github.com/bureau-foundation/dashboard/lib/render"
	"github.com/bureau-foundation/dashboard/lib/schema/dashboard"
	"github.com/bureau-foundation/dashboard/lib/tui"
)

// cell is one focusable position in the grid: a widget card, or the
// add tile of a category when widgetID is empty.
type cell struct {
	categoryID string
	widgetID   string
}

func (target cell) isTile() bool {
	return target.categoryID != "" && target.widgetID == ""
}

// gridSection is one category as laid out in the grid.
type gridSection struct {
	categoryID string
	name       string
	total      int
	directives []render.Directive
	cells      []cell
}

// hitBox is the body-relative rectangle a cell was drawn in.
type hitBox struct {
	x, y, width, height int
	target              cell
}

// contains reports whether body coordinate (x, y) falls inside the box.
func (box hitBox) contains(x, y int) bool {
	return x >= box.x && x < box.x+box.width && y >= box.y && y < box.y+box.height
}

// onRemoveGlyph reports whether (x, y) is on the card's remove glyph:
// the title row, just inside the right border and padding.
func (box hitBox) onRemoveGlyph(x, y int) bool {
	return y == box.y+1 && x >= box.x+box.width-3 && x < box.x+box.width-1
}

// buildSections filters and renders every category. With addTiles set,
// each category ends with an add tile cell.
func buildSections(registry *render.Registry, categories []dashboard.Category, term string, addTiles bool) []gridSection {
	sections := make([]gridSection, 0, len(categories))
	for _, view := range render.Filter(categories, term) {
		section := gridSection{
			categoryID: view.CategoryID,
			name:       view.Name,
			total:      view.Total,
			directives: registry.RenderView(view, term),
		}
		for _, directive := range section.directives {
			section.cells = append(section.cells, cell{categoryID: view.CategoryID, widgetID: directive.Remove.WidgetID})
		}
		if addTiles {
			section.cells = append(section.cells, cell{categoryID: view.CategoryID})
		}
		sections = append(sections, section)
	}
	return sections
}

// visibleCounts returns the number of widgets shown and the number in
// the snapshot.
func visibleCounts(sections []gridSection) (visible, total int) {
	for _, section := range sections {
		visible += len(section.directives)
		total += section.total
	}
	return visible, total
}

// columnsFor returns how many cards fit side by side, never fewer than
// one.
func columnsFor(width, cardWidth int) int {
	return max((width+cardGap)/(cardWidth+cardGap), 1)
}

// gridOptions controls decoration of a rendered grid.
type gridOptions struct {
	theme     tui.Theme
	width     int
	cardWidth int
	focus     cell
	removable bool

	// accent returns the glow color for a widget or category ID.
	accent func(id string) (lipgloss.Color, bool)
}

// renderGrid lays out the sections top to bottom and returns the body
// text together with the rectangle of every cell.
func renderGrid(sections []gridSection, options gridOptions) (string, []hitBox) {
	theme := options.theme
	columns := columnsFor(options.width, options.cardWidth)
	accent := options.accent
	if accent == nil {
		accent = func(string) (lipgloss.Color, bool) { return "", false }
	}

	var lines []string
	var hits []hitBox
	for sectionIndex, section := range sections {
		if sectionIndex > 0 {
			lines = append(lines, "")
		}
		lines = append(lines, renderSectionHeader(theme, section, accent))

		if len(section.cells) == 0 {
			lines = append(lines, lipgloss.NewStyle().
				Foreground(theme.FaintText).
				Render("  No widgets match the search"))
			continue
		}

		for rowStart := 0; rowStart < len(section.cells); rowStart += columns {
			rowEnd := min(rowStart+columns, len(section.cells))
			y := len(lines)

			var blocks []string
			for index := rowStart; index < rowEnd; index++ {
				target := section.cells[index]
				if index > rowStart {
					blocks = append(blocks, strings.Repeat(" ", cardGap))
				}
				focused := target == options.focus
				if target.isTile() {
					blocks = append(blocks, renderAddTile(theme, options.cardWidth, focused))
				} else {
					style := cardStyle{focused: focused, removable: options.removable}
					style.glow, style.glowActive = accent(target.widgetID)
					blocks = append(blocks, renderCard(theme, section.directives[index], options.cardWidth, style))
				}
				hits = append(hits, hitBox{
					x:      (index - rowStart) * (options.cardWidth + cardGap),
					y:      y,
					width:  options.cardWidth,
					height: cardHeight,
					target: target,
				})
			}
			row := lipgloss.JoinHorizontal(lipgloss.Top, blocks...)
			lines = append(lines, strings.Split(row, "\n")...)
		}
	}
	return strings.Join(lines, "\n"), hits
}

func renderSectionHeader(theme tui.Theme, section gridSection, accent func(string) (lipgloss.Color, bool)) string {
	nameStyle := lipgloss.NewStyle().Foreground(theme.CategoryForeground).Bold(true)
	if color, ok := accent(section.categoryID); ok {
		nameStyle = nameStyle.Background(color)
	}
	counts := lipgloss.NewStyle().
		Foreground(theme.FaintText).
		Render(fmt.Sprintf("  %d/%d", len(section.directives), section.total))
	return nameStyle.Render("▍"+section.name) + counts
}

// StaticOptions configures [RenderStatic].
type StaticOptions struct {
	// Term filters widgets exactly as the search bar does.
	Term string

	// Width is the output width in columns. Zero uses 120.
	Width int

	// CardWidth is the outer card width. Zero uses DefaultCardWidth.
	CardWidth int

	// Registry renders the widgets. Nil uses the built-in strategies.
	Registry *render.Registry
}

// RenderStatic draws the dashboard for a snapshot without any
// interactive affordances: no focus, no add tiles, no remove glyphs.
func RenderStatic(snapshot dashboardstore.Snapshot, options StaticOptions) string {
	width := options.Width
	if width <= 0 {
		width = 120
	}
	cardWidth := options.CardWidth
	if cardWidth <= 0 {
		cardWidth = DefaultCardWidth
	}
	registry := options.Registry
	if registry == nil {
		registry = render.NewRegistry()
	}

	sections := buildSections(registry, snapshot.Categories, options.Term, false)
	body, _ := renderGrid(sections, gridOptions{
		theme:     tui.DefaultTheme,
		width:     width,
		cardWidth: min(cardWidth, width),
	})

	visible, total := visibleCounts(sections)
	header := lipgloss.NewStyle().Foreground(tui.DefaultTheme.HeaderForeground).Bold(true).Render("Dashboard")
	summary := fmt.Sprintf("  %d/%d widgets", visible, total)
	if options.Term != "" {
		summary += fmt.Sprintf("  matching %q", options.Term)
	}
	return header + lipgloss.NewStyle().Foreground(tui.DefaultTheme.FaintText).Render(summary) + "\n\n" + body + "\n"
}
