// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package dashboardui

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/bureau-foundation/dashboard/lib/clock"
	"github.com/bureau-foundation/dashboard/lib/dashboardstore"
	"github.com/bureau-foundation/dashboard/lib/render"
	"github.com/bureau-foundation/dashboard/lib/tui"
)

// FocusRegion identifies which part of the viewer receives keys.
type FocusRegion int

const (
	// FocusGrid means navigation keys move between cards.
	FocusGrid FocusRegion = iota

	// FocusSearch means keys edit the search term.
	FocusSearch

	// FocusForm means keys go to the add-widget slide-over.
	FocusForm
)

// Screen layout: the search bar on row 0, then the grid body, then a
// separator and the status line.
const (
	bodyStartY   = 1
	chromeHeight = 3

	// mutationErrorFadeDelay is how long a failed mutation stays in
	// the status line.
	mutationErrorFadeDelay = 4 * time.Second

	// wheelLines is how far one mouse wheel step scrolls the grid.
	wheelLines = 3
)

// sourceEventMsg wraps a store event for delivery through the
// bubbletea message loop.
type sourceEventMsg struct {
	event dashboardstore.Event
}

// heatTickMsg drives the glow decay. While anything is hot, a new tick
// is scheduled after each one.
type heatTickMsg struct{}

// mutationErrorFadeMsg clears the mutation error from the status line.
type mutationErrorFadeMsg struct{}

// Options configures a [Model].
type Options struct {
	// CardWidth is the outer card width. Zero uses DefaultCardWidth.
	CardWidth int

	// InitialSearch pre-fills the search bar.
	InitialSearch string

	// Version is shown in the status line.
	Version string

	// Clock drives the glow animation. Nil uses the real clock.
	Clock clock.Clock

	// Registry renders widgets. Nil uses the built-in strategies.
	Registry *render.Registry
}

// focusPosition is the section and cell index of the focused cell,
// kept so focus lands somewhere sensible when its cell disappears.
type focusPosition struct {
	section int
	index   int
}

// Model is the bubbletea model for the dashboard viewer.
type Model struct {
	source   Source
	mutator  Mutator
	registry *render.Registry
	theme    tui.Theme
	keys     KeyMap
	clock    clock.Clock
	version  string

	width     int
	height    int
	ready     bool
	cardWidth int

	snapshot dashboardstore.Snapshot
	digest   string
	sections []gridSection
	hits     []hitBox

	focus       cell
	position    focusPosition
	focusRegion FocusRegion

	search SearchModel
	form   AddWidgetForm
	body   viewport.Model

	heat        *tui.HeatTracker
	tickRunning bool

	events <-chan dashboardstore.Event
	cancel func()

	mutationError string
	logMessage    string
	logLevel      slog.Level
	logSerial     int
}

// NewModel creates a viewer over source. When source also implements
// [Mutator], the add tiles, the add-widget form and the remove glyphs
// are enabled.
func NewModel(source Source, options Options) Model {
	theme := tui.DefaultTheme
	registry := options.Registry
	if registry == nil {
		registry = render.NewRegistry()
	}
	modelClock := options.Clock
	if modelClock == nil {
		modelClock = clock.Real()
	}
	cardWidth := options.CardWidth
	if cardWidth <= 0 {
		cardWidth = DefaultCardWidth
	}

	mutator, _ := source.(Mutator)
	events, cancel := source.Subscribe()

	model := Model{
		source:    source,
		mutator:   mutator,
		registry:  registry,
		theme:     theme,
		keys:      DefaultKeyMap,
		clock:     modelClock,
		version:   options.Version,
		cardWidth: max(cardWidth, MinCardWidth),
		snapshot:  source.Snapshot(),
		search:    NewSearchModel(options.InitialSearch, theme),
		form:      NewAddWidgetForm(theme),
		body:      viewport.New(0, 0),
		heat:      tui.NewHeatTracker(),
		events:    events,
		cancel:    cancel,
	}
	model.updateDigest()
	model.rebuild()
	return model
}

// Close cancels the source subscription.
func (model Model) Close() {
	if model.cancel != nil {
		model.cancel()
	}
}

// Snapshot returns the snapshot the viewer is showing.
func (model Model) Snapshot() dashboardstore.Snapshot {
	return model.snapshot
}

// Init implements tea.Model. Starts listening for source events when
// the source has them.
func (model Model) Init() tea.Cmd {
	if model.events == nil {
		return nil
	}
	return listenForSourceEvent(model.events)
}

// listenForSourceEvent returns a tea.Cmd that blocks until an event
// arrives, then delivers it as a sourceEventMsg.
func listenForSourceEvent(channel <-chan dashboardstore.Event) tea.Cmd {
	return func() tea.Msg {
		event, ok := <-channel
		if !ok {
			return nil
		}
		return sourceEventMsg{event: event}
	}
}

// Update implements tea.Model. Keys are routed by focus region.
func (model Model) Update(message tea.Msg) (tea.Model, tea.Cmd) {
	switch message := message.(type) {
	case tea.KeyMsg:
		if message.Type == tea.KeyCtrlC {
			return model, tea.Quit
		}
		switch model.focusRegion {
		case FocusForm:
			return model.handleFormKeys(message)
		case FocusSearch:
			return model.handleSearchKeys(message)
		}
		return model.handleGridKeys(message)

	case tea.MouseMsg:
		return model.handleMouse(message)

	case tea.WindowSizeMsg:
		model.width = message.Width
		model.height = message.Height
		model.ready = true
		model.body.Width = max(model.width-1, 1)
		model.body.Height = model.bodyHeight()
		model.rebuild()

	case sourceEventMsg:
		return model.handleSourceEvent(message)

	case heatTickMsg:
		return model.handleHeatTick()

	case mutationErrorFadeMsg:
		model.mutationError = ""

	case logRecordMsg:
		model.logSerial++
		model.logMessage = message.Summary
		model.logLevel = message.Level
		serial := model.logSerial
		return model, tea.Tick(logRecordFadeDelay, func(time.Time) tea.Msg {
			return logRecordFadeMsg{serial: serial}
		})

	case logRecordFadeMsg:
		if message.serial == model.logSerial {
			model.logMessage = ""
		}
	}
	return model, nil
}

func (model Model) handleGridKeys(message tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(message, model.keys.Quit):
		return model, tea.Quit

	case key.Matches(message, model.keys.SearchActivate):
		model.focusRegion = FocusSearch
		return model, model.search.Focus()

	case key.Matches(message, model.keys.SearchClear):
		if model.search.Term() != "" {
			model.search.Clear()
			model.rebuild()
		}

	case key.Matches(message, model.keys.Add):
		if model.focus.categoryID != "" {
			return model.openForm(model.focus.categoryID)
		}

	case key.Matches(message, model.keys.Select):
		if model.focus.isTile() {
			return model.openForm(model.focus.categoryID)
		}

	case key.Matches(message, model.keys.Remove):
		if model.focus.widgetID != "" {
			return model.removeWidget(model.focus)
		}

	case key.Matches(message, model.keys.Left):
		model.moveFocusFlat(-1)
	case key.Matches(message, model.keys.Right):
		model.moveFocusFlat(1)
	case key.Matches(message, model.keys.Up):
		model.moveFocusVertical(-1)
	case key.Matches(message, model.keys.Down):
		model.moveFocusVertical(1)

	case key.Matches(message, model.keys.PageUp):
		model.body.HalfViewUp()
	case key.Matches(message, model.keys.PageDown):
		model.body.HalfViewDown()
	case key.Matches(message, model.keys.Home):
		model.body.GotoTop()
	case key.Matches(message, model.keys.End):
		model.body.GotoBottom()
	}
	return model, nil
}

// handleSearchKeys applies every keystroke to the filter immediately.
// Enter keeps the term and returns to the grid; Esc clears it.
func (model Model) handleSearchKeys(message tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(message, model.keys.SearchClear):
		model.search.Clear()
		model.focusRegion = FocusGrid
		model.rebuild()
		return model, nil

	case key.Matches(message, model.keys.Select):
		model.search.Blur()
		model.focusRegion = FocusGrid
		return model, nil
	}

	changed, cmd := model.search.Update(message)
	if changed {
		model.body.GotoTop()
		model.rebuild()
	}
	return model, cmd
}

func (model Model) handleFormKeys(message tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(message, model.keys.FormCancel):
		model.form.Cancel()
		model.focusRegion = FocusGrid
		return model, nil

	case key.Matches(message, model.keys.FormConfirm):
		return model.submitForm()
	}
	return model, model.form.Update(message, model.keys)
}

// openForm shows the add-widget form for a category. Read-only sources
// have no form.
func (model Model) openForm(categoryID string) (tea.Model, tea.Cmd) {
	if model.mutator == nil {
		return model, nil
	}
	category, ok := model.snapshot.Category(categoryID)
	if !ok {
		return model, nil
	}
	model.focusRegion = FocusForm
	return model, model.form.Open(category.ID, category.Name)
}

// submitForm sends the form's request to the store. Validation errors
// keep the form open with the message inline; anything else closes the
// form and reports in the status line.
func (model Model) submitForm() (tea.Model, tea.Cmd) {
	request, ok := model.form.Confirm()
	if !ok || model.mutator == nil {
		return model, nil
	}

	snapshot, widget, err := model.mutator.AddWidget(context.Background(), request.CategoryID, request.Name, request.Type)
	if err != nil {
		if dashboardstore.CategoryOf(err) == dashboardstore.CategoryValidation {
			return model, model.form.Reject(err.Error())
		}
		model.form.Cancel()
		model.focusRegion = FocusGrid
		return model, model.showMutationError(err)
	}

	model.form.Accept()
	model.focusRegion = FocusGrid
	model.heat.Ignite(widget.ID, tui.HeatPut, model.clock.Now())
	model.applySnapshot(snapshot)
	model.focus = cell{categoryID: request.CategoryID, widgetID: widget.ID}
	model.rebuild()
	return model, model.startHeatTick()
}

func (model Model) removeWidget(target cell) (tea.Model, tea.Cmd) {
	if model.mutator == nil {
		return model, nil
	}
	snapshot, err := model.mutator.RemoveWidget(context.Background(), target.categoryID, target.widgetID)
	if err != nil {
		return model, model.showMutationError(err)
	}
	model.heat.Ignite(target.categoryID, tui.HeatRemove, model.clock.Now())
	model.applySnapshot(snapshot)
	model.rebuild()
	return model, model.startHeatTick()
}

func (model *Model) showMutationError(err error) tea.Cmd {
	model.mutationError = err.Error()
	return tea.Tick(mutationErrorFadeDelay, func(time.Time) tea.Msg {
		return mutationErrorFadeMsg{}
	})
}

// applySnapshot replaces the shown snapshot when the new one is newer.
// The store reports each mutation twice, once to the caller and once
// to subscribers, and either may arrive first.
func (model *Model) applySnapshot(snapshot dashboardstore.Snapshot) bool {
	if snapshot.Version <= model.snapshot.Version {
		return false
	}
	model.snapshot = snapshot
	model.updateDigest()
	return true
}

func (model *Model) updateDigest() {
	digest, err := model.snapshot.Digest()
	if err != nil {
		model.digest = ""
		return
	}
	model.digest = digest.Short()
}

// handleSourceEvent applies a live store event and makes the changed
// card (or, for removals, its category header) glow.
func (model Model) handleSourceEvent(message sourceEventMsg) (tea.Model, tea.Cmd) {
	event := message.event
	commands := []tea.Cmd{listenForSourceEvent(model.events)}

	if model.applySnapshot(event.Snapshot) {
		now := model.clock.Now()
		if event.Kind == dashboardstore.EventRemove {
			model.heat.Ignite(event.CategoryID, tui.HeatRemove, now)
		} else {
			model.heat.Ignite(event.WidgetID, tui.HeatPut, now)
		}
		model.rebuild()
		commands = append(commands, model.startHeatTick())
	}
	return model, tea.Batch(commands...)
}

func (model *Model) startHeatTick() tea.Cmd {
	if model.tickRunning {
		return nil
	}
	model.tickRunning = true
	return scheduleHeatTick()
}

// handleHeatTick redraws the decaying glow. Stops ticking once nothing
// is hot.
func (model Model) handleHeatTick() (tea.Model, tea.Cmd) {
	model.rebuild()
	if model.heat.HasHot(model.clock.Now()) {
		return model, scheduleHeatTick()
	}
	model.tickRunning = false
	return model, nil
}

func scheduleHeatTick() tea.Cmd {
	return tea.Tick(tui.HeatTickInterval, func(time.Time) tea.Msg {
		return heatTickMsg{}
	})
}

func (model Model) bodyHeight() int {
	return max(model.height-chromeHeight, 1)
}

// rebuild re-filters and re-renders the grid, then re-resolves focus
// against the new cells.
func (model *Model) rebuild() {
	model.sections = buildSections(model.registry, model.snapshot.Categories, model.search.Term(), model.mutator != nil)
	model.resolveFocus()

	width := model.width - 1
	if width <= 0 {
		width = 120
	}
	now := model.clock.Now()
	body, hits := renderGrid(model.sections, gridOptions{
		theme:     model.theme,
		width:     width,
		cardWidth: min(model.cardWidth, width),
		focus:     model.focus,
		removable: model.mutator != nil,
		accent: func(id string) (lipgloss.Color, bool) {
			return model.heat.Accent(model.theme, id, now)
		},
	})
	model.hits = hits
	model.body.SetContent(body)
	model.ensureFocusVisible()
}

// resolveFocus keeps the focused cell if it still exists. Otherwise
// focus moves to the cell now at the remembered position, clamped to
// what is left.
func (model *Model) resolveFocus() {
	for sectionIndex, section := range model.sections {
		for index, target := range section.cells {
			if target == model.focus {
				model.position = focusPosition{section: sectionIndex, index: index}
				return
			}
		}
	}

	model.focus = cell{}
	if len(model.sections) == 0 {
		return
	}
	sectionIndex := min(model.position.section, len(model.sections)-1)
	for offset := 0; offset < len(model.sections); offset++ {
		section := model.sections[(sectionIndex+offset)%len(model.sections)]
		if len(section.cells) == 0 {
			continue
		}
		index := min(model.position.index, len(section.cells)-1)
		if offset > 0 {
			index = 0
		}
		model.focus = section.cells[index]
		model.position = focusPosition{section: (sectionIndex + offset) % len(model.sections), index: index}
		return
	}
}

// flatCells returns every cell in display order.
func (model Model) flatCells() []cell {
	var cells []cell
	for _, section := range model.sections {
		cells = append(cells, section.cells...)
	}
	return cells
}

// moveFocusFlat moves focus one cell along the reading order, crossing
// section boundaries.
func (model *Model) moveFocusFlat(delta int) {
	cells := model.flatCells()
	if len(cells) == 0 {
		return
	}
	current := 0
	for index, target := range cells {
		if target == model.focus {
			current = index
			break
		}
	}
	next := min(max(current+delta, 0), len(cells)-1)
	model.focus = cells[next]
	model.rebuild()
}

// moveFocusVertical moves focus one grid row up or down, keeping the
// column where the next row is long enough. Past the first or last
// row of a section, focus moves into the neighbouring non-empty
// section.
func (model *Model) moveFocusVertical(delta int) {
	if len(model.sections) == 0 {
		return
	}
	columns := columnsFor(max(model.width-1, 1), min(model.cardWidth, max(model.width-1, 1)))
	sectionIndex := model.position.section
	if sectionIndex >= len(model.sections) {
		return
	}
	cells := model.sections[sectionIndex].cells
	index := model.position.index
	column := index % columns

	if delta < 0 {
		if index-columns >= 0 {
			model.focus = cells[index-columns]
			model.rebuild()
			return
		}
		for previous := sectionIndex - 1; previous >= 0; previous-- {
			target := model.sections[previous].cells
			if len(target) == 0 {
				continue
			}
			lastRow := (len(target) - 1) / columns * columns
			model.focus = target[min(lastRow+column, len(target)-1)]
			model.rebuild()
			return
		}
		return
	}

	if index+columns < len(cells) {
		model.focus = cells[index+columns]
		model.rebuild()
		return
	}
	if len(cells) > 0 && index/columns < (len(cells)-1)/columns {
		model.focus = cells[len(cells)-1]
		model.rebuild()
		return
	}
	for next := sectionIndex + 1; next < len(model.sections); next++ {
		target := model.sections[next].cells
		if len(target) == 0 {
			continue
		}
		model.focus = target[min(column, len(target)-1)]
		model.rebuild()
		return
	}
}

// ensureFocusVisible scrolls the body so the focused cell is on
// screen.
func (model *Model) ensureFocusVisible() {
	if model.body.Height <= 0 {
		return
	}
	for _, box := range model.hits {
		if box.target != model.focus {
			continue
		}
		// One line of context above: the section header for a first-row
		// card.
		top := max(box.y-1, 0)
		bottom := box.y + box.height
		switch {
		case top < model.body.YOffset:
			model.body.SetYOffset(top)
		case bottom > model.body.YOffset+model.body.Height:
			model.body.SetYOffset(bottom - model.body.Height)
		}
		return
	}
}

func (model Model) handleMouse(message tea.MouseMsg) (tea.Model, tea.Cmd) {
	if model.focusRegion == FocusForm {
		if message.Action != tea.MouseActionPress || message.Button != tea.MouseButtonLeft {
			return model, nil
		}
		panelX := model.width - (tui.SlideOver{}).Width(model.width)
		if message.X < panelX {
			model.form.Cancel()
			model.focusRegion = FocusGrid
			return model, nil
		}
		model.form.SelectTypeAt(message.X, message.Y)
		return model, nil
	}

	switch message.Button {
	case tea.MouseButtonWheelUp:
		model.body.SetYOffset(model.body.YOffset - wheelLines)
		return model, nil
	case tea.MouseButtonWheelDown:
		model.body.SetYOffset(model.body.YOffset + wheelLines)
		return model, nil
	}

	if message.Action != tea.MouseActionPress || message.Button != tea.MouseButtonLeft {
		return model, nil
	}

	if message.Y == 0 {
		model.focusRegion = FocusSearch
		return model, model.search.Focus()
	}

	bodyY := message.Y - bodyStartY
	if bodyY < 0 || bodyY >= model.body.Height {
		return model, nil
	}
	contentY := bodyY + model.body.YOffset
	for _, box := range model.hits {
		if !box.contains(message.X, contentY) {
			continue
		}
		if model.focusRegion == FocusSearch {
			model.search.Blur()
			model.focusRegion = FocusGrid
		}
		if box.target.isTile() {
			model.focus = box.target
			model.rebuild()
			return model.openForm(box.target.categoryID)
		}
		if model.mutator != nil && box.onRemoveGlyph(message.X, contentY) {
			return model.removeWidget(box.target)
		}
		model.focus = box.target
		model.rebuild()
		return model, nil
	}
	return model, nil
}

// View implements tea.Model.
func (model Model) View() string {
	if !model.ready {
		return "Loading..."
	}

	visible, total := visibleCounts(model.sections)
	var lines []string
	lines = append(lines, model.search.View(model.theme, model.width, visible, total))

	scrollbar := tui.RenderScrollbar(model.theme, model.body.Height, model.body.TotalLineCount(), model.body.YOffset)
	body := lipgloss.NewStyle().Width(model.body.Width).Render(model.body.View())
	lines = append(lines, lipgloss.JoinHorizontal(lipgloss.Top, body, scrollbar))

	lines = append(lines, lipgloss.NewStyle().
		Foreground(model.theme.BorderColor).
		Render(strings.Repeat("─", model.width)))
	lines = append(lines, model.renderStatus())

	output := strings.Join(lines, "\n")
	if model.form.IsOpen() {
		panel, anchorX := model.form.View(model.theme, model.width, model.height)
		output = tui.SpliceOverlay(output, panel, anchorX, 0)
	}
	return output
}

// renderStatus draws the focus indicator and key help on the left and
// the snapshot version, digest and any notice on the right.
func (model Model) renderStatus() string {
	style := lipgloss.NewStyle().Foreground(model.theme.HelpText)

	indicator := "GRID"
	switch model.focusRegion {
	case FocusSearch:
		indicator = "SEARCH"
	case FocusForm:
		indicator = "ADD"
	}

	help := fmt.Sprintf(" [%s] q quit  ←↑↓→ move  / search", indicator)
	if model.mutator != nil {
		help += "  a add  x remove"
	}
	left := style.Render(help)

	right := style.Render(fmt.Sprintf("v%d", model.snapshot.Version))
	if model.digest != "" {
		right += style.Render("  " + model.digest)
	}
	if model.version != "" {
		right += style.Render("  " + model.version)
	}
	right += " "

	switch {
	case model.mutationError != "":
		left += lipgloss.NewStyle().Foreground(model.theme.ErrorText).Render("  ✕ " + model.mutationError)
	case model.logMessage != "":
		color := model.theme.FaintText
		if model.logLevel >= slog.LevelWarn {
			color = model.theme.ErrorText
		}
		left += lipgloss.NewStyle().Foreground(color).Render("  " + model.logMessage)
	}

	gap := model.width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		return left
	}
	return left + strings.Repeat(" ", gap) + right
}
