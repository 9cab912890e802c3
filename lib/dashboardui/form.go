// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package dashboardui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/bureau-foundation/dashboard/lib/schema/dashboard"
	"github.com/bureau-foundation/dashboard/lib/tui"
)

// AddRequest is what a confirmed add-widget form asks the store to do.
type AddRequest struct {
	CategoryID string
	Name       string
	Type       dashboard.WidgetType
}

// formField is the form field with keyboard focus.
type formField int

const (
	fieldName formField = iota
	fieldType
)

// Rows of the slide-over body, used to place the type options for
// mouse hit-testing. The panel draws a border row, the title and a
// blank line above the body.
const (
	formBodyOffsetY     = 3
	formBodyOffsetX     = 2
	formTypeOptionsLine = 6
)

// AddWidgetForm is the add-widget slide-over. It is either closed or
// open for one category. Opening always starts from an empty name and
// the chart type; cancelling discards everything typed.
type AddWidgetForm struct {
	open         bool
	categoryID   string
	categoryName string
	field        formField
	name         textinput.Model
	types        *tui.Dropdown
	err          string
}

// NewAddWidgetForm creates a closed form.
func NewAddWidgetForm(theme tui.Theme) AddWidgetForm {
	name := textinput.New()
	name.Prompt = "› "
	name.Placeholder = "Widget name"
	// Zero disables the limit; names of any length are accepted.
	name.CharLimit = 0
	name.PromptStyle = lipgloss.NewStyle().Foreground(theme.FocusBorder)
	name.TextStyle = lipgloss.NewStyle().Foreground(theme.PanelForeground).Background(theme.PanelBackground)
	name.PlaceholderStyle = lipgloss.NewStyle().Foreground(theme.FaintText).Background(theme.PanelBackground)

	return AddWidgetForm{
		name:  name,
		types: tui.NewDropdown(typeOptions(), string(dashboard.TypeChart)),
	}
}

func typeOptions() []tui.DropdownOption {
	options := make([]tui.DropdownOption, 0, len(dashboard.BuiltinTypes))
	for _, widgetType := range dashboard.BuiltinTypes {
		label := string(widgetType)
		options = append(options, tui.DropdownOption{
			Label: strings.ToUpper(label[:1]) + label[1:],
			Value: label,
		})
	}
	return options
}

// Open shows the form for a category, resetting the name to empty and
// the type to chart.
func (form *AddWidgetForm) Open(categoryID, categoryName string) tea.Cmd {
	form.open = true
	form.categoryID = categoryID
	form.categoryName = categoryName
	form.field = fieldName
	form.err = ""
	form.name.SetValue("")
	form.types.Select(string(dashboard.TypeChart))
	return form.name.Focus()
}

// IsOpen reports whether the form is showing.
func (form AddWidgetForm) IsOpen() bool {
	return form.open
}

// CategoryID returns the category the form is open for.
func (form AddWidgetForm) CategoryID() string {
	return form.categoryID
}

// Name returns the name as typed, untrimmed.
func (form AddWidgetForm) Name() string {
	return form.name.Value()
}

// Type returns the selected widget type.
func (form AddWidgetForm) Type() dashboard.WidgetType {
	return dashboard.WidgetType(form.types.Selected().Value)
}

// Error returns the inline error shown under the fields, if any.
func (form AddWidgetForm) Error() string {
	return form.err
}

// Cancel closes the form and discards its contents.
func (form *AddWidgetForm) Cancel() {
	form.close()
}

// Confirm returns the request the form describes. The form stays open
// until the caller reports the outcome with [AddWidgetForm.Accept] or
// [AddWidgetForm.Reject].
func (form *AddWidgetForm) Confirm() (AddRequest, bool) {
	if !form.open {
		return AddRequest{}, false
	}
	return AddRequest{
		CategoryID: form.categoryID,
		Name:       form.name.Value(),
		Type:       form.Type(),
	}, true
}

// Accept closes the form after the store took the request.
func (form *AddWidgetForm) Accept() {
	form.close()
}

// Reject keeps the form open with the error shown inline and focus
// back on the name.
func (form *AddWidgetForm) Reject(message string) tea.Cmd {
	form.err = message
	form.field = fieldName
	return form.name.Focus()
}

func (form *AddWidgetForm) close() {
	form.open = false
	form.categoryID = ""
	form.categoryName = ""
	form.err = ""
	form.field = fieldName
	form.name.SetValue("")
	form.name.Blur()
	form.types.Select(string(dashboard.TypeChart))
}

// Update handles a key while the form is open, other than confirm and
// cancel which the model routes itself. Tab moves between the name and
// type fields; arrow keys change the type while it has focus.
func (form *AddWidgetForm) Update(message tea.KeyMsg, keys KeyMap) tea.Cmd {
	if !form.open {
		return nil
	}

	if key.Matches(message, keys.FormNextField) {
		if form.field == fieldName {
			form.field = fieldType
			form.name.Blur()
			return nil
		}
		form.field = fieldName
		return form.name.Focus()
	}

	if form.field == fieldType {
		switch {
		case key.Matches(message, keys.Up), key.Matches(message, keys.Left):
			form.types.MoveUp()
		case key.Matches(message, keys.Down), key.Matches(message, keys.Right):
			form.types.MoveDown()
		}
		return nil
	}

	var cmd tea.Cmd
	form.name, cmd = form.name.Update(message)
	if form.err != "" {
		form.err = ""
	}
	return cmd
}

// SelectTypeAt selects the type option drawn at screen (x, y).
// Returns false when the point is not on an option.
func (form *AddWidgetForm) SelectTypeAt(x, y int) bool {
	if !form.open {
		return false
	}
	index := form.types.OptionAt(x, y)
	if index < 0 {
		return false
	}
	form.types.Cursor = index
	form.field = fieldType
	form.name.Blur()
	return true
}

// View renders the slide-over. Returns the panel lines and the anchor
// column for splicing onto the dashboard.
func (form AddWidgetForm) View(theme tui.Theme, screenWidth, screenHeight int) ([]string, int) {
	labelStyle := lipgloss.NewStyle().Foreground(theme.FaintText).Background(theme.PanelBackground)
	focusedLabel := lipgloss.NewStyle().Foreground(theme.FocusBorder).Background(theme.PanelBackground).Bold(true)
	valueStyle := lipgloss.NewStyle().Foreground(theme.CategoryForeground).Background(theme.PanelBackground)
	errorStyle := lipgloss.NewStyle().Foreground(theme.ErrorText).Background(theme.PanelBackground)

	nameLabel, typeLabel := labelStyle, labelStyle
	if form.field == fieldName {
		nameLabel = focusedLabel
	} else {
		typeLabel = focusedLabel
	}

	body := []string{
		labelStyle.Render("Category: ") + valueStyle.Render(form.categoryName),
		"",
		nameLabel.Render("Name"),
		form.name.View(),
		"",
		typeLabel.Render("Type"),
	}
	body = append(body, form.types.Render(theme)...)
	body = append(body, "")
	if form.err != "" {
		body = append(body, errorStyle.Render("✕ "+form.err))
	}

	panel := tui.SlideOver{
		Title:  "Add Widget",
		Body:   body,
		Footer: "Enter add  Tab field  Esc cancel",
	}
	lines, anchorX := panel.Render(theme, screenWidth, screenHeight)

	// The dropdown pointer is shared with the model's copy of the form,
	// so recording the anchor here makes it available to mouse
	// handling.
	form.types.AnchorX = anchorX + formBodyOffsetX
	form.types.AnchorY = formBodyOffsetY + formTypeOptionsLine
	return lines, anchorX
}
