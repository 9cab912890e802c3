// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package dashboardui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/bureau-foundation/dashboard/lib/tui"
)

// SearchModel is the search bar. The term applies on every keystroke;
// there is no submit step.
type SearchModel struct {
	input textinput.Model
}

// NewSearchModel creates an unfocused search bar holding term.
func NewSearchModel(term string, theme tui.Theme) SearchModel {
	input := textinput.New()
	input.Prompt = " / "
	input.Placeholder = "Search widgets"
	input.CharLimit = 128
	input.PromptStyle = lipgloss.NewStyle().Foreground(theme.FocusBorder).Bold(true)
	input.TextStyle = lipgloss.NewStyle().Foreground(theme.NormalText)
	input.PlaceholderStyle = lipgloss.NewStyle().Foreground(theme.FaintText)
	input.SetValue(term)
	return SearchModel{input: input}
}

// Term returns the current search term.
func (search SearchModel) Term() string {
	return search.input.Value()
}

// Active reports whether the search bar has keyboard focus.
func (search SearchModel) Active() bool {
	return search.input.Focused()
}

// Focus gives the search bar keyboard focus.
func (search *SearchModel) Focus() tea.Cmd {
	return search.input.Focus()
}

// Blur returns keyboard focus to the grid, keeping the term.
func (search *SearchModel) Blur() {
	search.input.Blur()
}

// Clear empties the term and blurs the bar.
func (search *SearchModel) Clear() {
	search.input.SetValue("")
	search.input.Blur()
}

// Update forwards a key to the text input. Returns true when the term
// changed.
func (search *SearchModel) Update(message tea.KeyMsg) (bool, tea.Cmd) {
	before := search.input.Value()
	var cmd tea.Cmd
	search.input, cmd = search.input.Update(message)
	return search.input.Value() != before, cmd
}

// View renders the bar with the visible/total widget counts on the
// right.
func (search SearchModel) View(theme tui.Theme, width, visible, total int) string {
	search.input.Width = max(width-24, 10)
	counts := lipgloss.NewStyle().
		Foreground(theme.FaintText).
		Render(fmt.Sprintf("%d/%d widgets ", visible, total))

	left := search.input.View()
	gap := max(width-lipgloss.Width(left)-lipgloss.Width(counts), 1)
	return left + strings.Repeat(" ", gap) + counts
}
