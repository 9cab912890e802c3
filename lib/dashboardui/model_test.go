// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package dashboardui

import (
	"context"
	"slices"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"

	"github.com/bureau-foundation/dashboard/lib/clock"
	"github.com/bureau-foundation/dashboard/lib/dashboardstore"
	"github.com/bureau-foundation/dashboard/lib/schema/dashboard"
	"github.com/bureau-foundation/dashboard/lib/seed"
)

var testEpoch = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

// testStore seeds a store with the built-in dashboard: two CSPM
// widgets and three CWPP widgets.
func testStore(t *testing.T) *dashboardstore.Store {
	t.Helper()
	store, err := dashboardstore.New(seed.Default().Categories,
		dashboardstore.WithIDGenerator(dashboardstore.NewSequenceGenerator(1)),
		dashboardstore.WithClock(clock.Fake(testEpoch)),
	)
	if err != nil {
		t.Fatalf("dashboardstore.New: %v", err)
	}
	return store
}

// testModel creates a sized model over source. At 120 columns the grid
// has three card columns.
func testModel(t *testing.T, source Source) Model {
	t.Helper()
	model := NewModel(source, Options{Clock: clock.Fake(testEpoch), Version: "test"})
	t.Cleanup(model.Close)
	return update(t, model, tea.WindowSizeMsg{Width: 120, Height: 40})
}

func update(t *testing.T, model Model, message tea.Msg) Model {
	t.Helper()
	updated, _ := model.Update(message)
	result, ok := updated.(Model)
	if !ok {
		t.Fatalf("Update returned %T, want Model", updated)
	}
	return result
}

func pressRunes(t *testing.T, model Model, text string) Model {
	t.Helper()
	for _, character := range text {
		model = update(t, model, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{character}})
	}
	return model
}

func press(t *testing.T, model Model, keyType tea.KeyType) Model {
	t.Helper()
	return update(t, model, tea.KeyMsg{Type: keyType})
}

func mustDigest(t *testing.T, snapshot dashboardstore.Snapshot) dashboardstore.Digest {
	t.Helper()
	digest, err := snapshot.Digest()
	if err != nil {
		t.Fatalf("Digest: %v", err)
	}
	return digest
}

func widgetNames(category dashboard.Category) []string {
	names := make([]string, len(category.Widgets))
	for index, widget := range category.Widgets {
		names[index] = widget.Name
	}
	return names
}

func TestInitialFocusIsFirstCard(t *testing.T) {
	model := testModel(t, testStore(t))
	want := cell{categoryID: "cspm-executive-dashboard", widgetID: "cloud-accounts"}
	if model.focus != want {
		t.Errorf("focus = %+v, want %+v", model.focus, want)
	}
	if model.focusRegion != FocusGrid {
		t.Errorf("focusRegion = %v, want FocusGrid", model.focusRegion)
	}
}

func TestOpenThenCancelLeavesDashboardUnchanged(t *testing.T) {
	store := testStore(t)
	before := mustDigest(t, store.Snapshot())

	model := testModel(t, store)
	model = pressRunes(t, model, "a")
	if !model.form.IsOpen() || model.focusRegion != FocusForm {
		t.Fatal("a should open the add-widget form")
	}
	if model.form.CategoryID() != "cspm-executive-dashboard" {
		t.Errorf("form category = %q", model.form.CategoryID())
	}

	model = pressRunes(t, model, "Abandoned")
	model = press(t, model, tea.KeyEsc)
	if model.form.IsOpen() {
		t.Fatal("Esc should close the form")
	}

	if after := mustDigest(t, store.Snapshot()); after != before {
		t.Errorf("digest changed after cancel: %s -> %s", before.Short(), after.Short())
	}
	if store.Snapshot().Version != 1 {
		t.Errorf("version = %d, want 1", store.Snapshot().Version)
	}
}

func TestAddWidgetThroughForm(t *testing.T) {
	store := testStore(t)
	model := testModel(t, store)

	model = pressRunes(t, model, "a")
	model = pressRunes(t, model, "Compliance Score")
	model = press(t, model, tea.KeyTab)
	model = press(t, model, tea.KeyDown)
	model = press(t, model, tea.KeyEnter)

	if model.form.IsOpen() {
		t.Fatalf("form still open after confirm, error %q", model.form.Error())
	}
	category, _ := store.Category("cspm-executive-dashboard")
	wantNames := []string{"Cloud Accounts", "Cloud Account Risk Assessment", "Compliance Score"}
	if !slices.Equal(widgetNames(category), wantNames) {
		t.Fatalf("widgets = %v, want %v", widgetNames(category), wantNames)
	}
	added := category.Widgets[2]
	if added.Type != dashboard.TypeText {
		t.Errorf("added type = %q, want text", added.Type)
	}
	if model.Snapshot().Version != 2 {
		t.Errorf("model version = %d, want 2", model.Snapshot().Version)
	}
	if model.focus.widgetID != added.ID {
		t.Errorf("focus = %+v, want the new widget %q", model.focus, added.ID)
	}
	if _, hot := model.heat.Accent(model.theme, added.ID, testEpoch); !hot {
		t.Error("new widget should glow")
	}
}

func TestAddWidgetBlankNameKeepsFormOpen(t *testing.T) {
	store := testStore(t)
	model := testModel(t, store)

	model = pressRunes(t, model, "a")
	model = pressRunes(t, model, "   ")
	model = press(t, model, tea.KeyEnter)

	if !model.form.IsOpen() {
		t.Fatal("a rejected name should keep the form open")
	}
	if model.form.Error() == "" {
		t.Error("form should show the validation error")
	}
	if store.Snapshot().Version != 1 {
		t.Errorf("store version = %d, want 1", store.Snapshot().Version)
	}
}

func TestRemoveFocusedWidget(t *testing.T) {
	store := testStore(t)
	model := testModel(t, store)

	model = pressRunes(t, model, "x")

	category, _ := store.Category("cspm-executive-dashboard")
	if !slices.Equal(widgetNames(category), []string{"Cloud Account Risk Assessment"}) {
		t.Fatalf("widgets after remove = %v", widgetNames(category))
	}
	want := cell{categoryID: "cspm-executive-dashboard", widgetID: "cloud-account-risk"}
	if model.focus != want {
		t.Errorf("focus after remove = %+v, want %+v", model.focus, want)
	}
	if _, hot := model.heat.Accent(model.theme, "cspm-executive-dashboard", testEpoch); !hot {
		t.Error("category header should glow after a removal")
	}
}

func TestGridNavigation(t *testing.T) {
	model := testModel(t, testStore(t))

	steps := []struct {
		keyType tea.KeyType
		want    cell
	}{
		{tea.KeyRight, cell{"cspm-executive-dashboard", "cloud-account-risk"}},
		{tea.KeyDown, cell{"cwpp-dashboard", "workload-alerts"}},
		{tea.KeyDown, cell{"cwpp-dashboard", ""}},
		{tea.KeyUp, cell{"cwpp-dashboard", "namespace-alerts"}},
		{tea.KeyUp, cell{"cspm-executive-dashboard", "cloud-accounts"}},
		{tea.KeyLeft, cell{"cspm-executive-dashboard", "cloud-accounts"}},
	}
	for index, step := range steps {
		model = press(t, model, step.keyType)
		if model.focus != step.want {
			t.Fatalf("step %d (%v): focus = %+v, want %+v", index, step.keyType, model.focus, step.want)
		}
	}
}

func TestEnterOnAddTileOpensForm(t *testing.T) {
	model := testModel(t, testStore(t))
	model = press(t, model, tea.KeyRight)
	model = press(t, model, tea.KeyRight)
	if !model.focus.isTile() {
		t.Fatalf("focus = %+v, want the CSPM add tile", model.focus)
	}
	model = press(t, model, tea.KeyEnter)
	if !model.form.IsOpen() || model.form.CategoryID() != "cspm-executive-dashboard" {
		t.Error("Enter on the add tile should open the form for its category")
	}
}

func TestSearchFiltersAsYouType(t *testing.T) {
	model := testModel(t, testStore(t))

	model = pressRunes(t, model, "/")
	if model.focusRegion != FocusSearch {
		t.Fatal("/ should focus the search bar")
	}
	model = pressRunes(t, model, "RISK")

	visible, total := visibleCounts(model.sections)
	if visible != 2 || total != 5 {
		t.Fatalf("counts = %d/%d, want 2/5", visible, total)
	}
	view := ansi.Strip(model.View())
	if strings.Contains(view, "Workload Alerts") {
		t.Error("non-matching widget still drawn")
	}
	if !strings.Contains(view, "Image Risk Assessment") {
		t.Error("matching widget missing")
	}

	model = press(t, model, tea.KeyEsc)
	if model.focusRegion != FocusGrid || model.search.Term() != "" {
		t.Fatal("Esc should clear the search and return to the grid")
	}
	if visible, _ := visibleCounts(model.sections); visible != 5 {
		t.Errorf("visible after clear = %d, want 5", visible)
	}
}

func TestStaticSourceIsReadOnly(t *testing.T) {
	snapshot := testStore(t).Snapshot()
	model := testModel(t, NewStaticSource(snapshot))

	for _, section := range model.sections {
		for _, target := range section.cells {
			if target.isTile() {
				t.Fatalf("read-only source shows an add tile in %s", section.categoryID)
			}
		}
	}

	model = pressRunes(t, model, "a")
	if model.form.IsOpen() {
		t.Error("read-only source should not open the form")
	}
	model = pressRunes(t, model, "x")
	if model.Snapshot().WidgetCount() != 5 {
		t.Errorf("widget count = %d, want 5", model.Snapshot().WidgetCount())
	}

	view := ansi.Strip(model.View())
	if strings.Contains(view, "Add Widget") || strings.Contains(view, removeGlyph) {
		t.Error("read-only view should not draw add tiles or remove glyphs")
	}
}

func TestSourceEventAppliesNewerSnapshots(t *testing.T) {
	store := testStore(t)
	model := testModel(t, store)
	stale := store.Snapshot()

	snapshot, widget, err := store.AddWidget(context.Background(), "cwpp-dashboard", "Runtime Events", dashboard.TypeChart)
	if err != nil {
		t.Fatalf("AddWidget: %v", err)
	}
	model = update(t, model, sourceEventMsg{event: dashboardstore.Event{
		Kind:       dashboardstore.EventPut,
		CategoryID: "cwpp-dashboard",
		WidgetID:   widget.ID,
		Snapshot:   snapshot,
	}})
	if model.Snapshot().Version != 2 {
		t.Fatalf("version = %d, want 2", model.Snapshot().Version)
	}
	if !strings.Contains(ansi.Strip(model.View()), "Runtime Events") {
		t.Error("added widget not drawn")
	}

	model = update(t, model, sourceEventMsg{event: dashboardstore.Event{
		Kind:       dashboardstore.EventRemove,
		CategoryID: "cwpp-dashboard",
		WidgetID:   widget.ID,
		Snapshot:   stale,
	}})
	if model.Snapshot().Version != 2 {
		t.Errorf("stale event applied: version = %d", model.Snapshot().Version)
	}
}

func TestMouseRemoveAndTileClick(t *testing.T) {
	store := testStore(t)
	model := testModel(t, store)

	var removeBox, tileBox hitBox
	for _, box := range model.hits {
		switch {
		case box.target.widgetID == "cloud-account-risk":
			removeBox = box
		case box.target.isTile() && box.target.categoryID == "cwpp-dashboard":
			tileBox = box
		}
	}

	model = update(t, model, tea.MouseMsg{
		X:      removeBox.x + removeBox.width - 3,
		Y:      removeBox.y + 1 + bodyStartY - model.body.YOffset,
		Action: tea.MouseActionPress,
		Button: tea.MouseButtonLeft,
	})
	if _, ok := store.Widget("cspm-executive-dashboard", "cloud-account-risk"); ok {
		t.Fatal("click on the remove glyph should remove the widget")
	}

	model = update(t, model, tea.MouseMsg{
		X:      tileBox.x + tileBox.width/2,
		Y:      tileBox.y + tileBox.height/2 + bodyStartY - model.body.YOffset,
		Action: tea.MouseActionPress,
		Button: tea.MouseButtonLeft,
	})
	if !model.form.IsOpen() || model.form.CategoryID() != "cwpp-dashboard" {
		t.Fatal("click on the add tile should open the form for its category")
	}

	// A click left of the slide-over dismisses it.
	model = update(t, model, tea.MouseMsg{X: 0, Y: 5, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	if model.form.IsOpen() {
		t.Error("click outside the panel should close the form")
	}
}

func TestStatusLineShowsVersionAndDigest(t *testing.T) {
	store := testStore(t)
	model := testModel(t, store)

	status := ansi.Strip(model.renderStatus())
	if !strings.Contains(status, "v1") {
		t.Errorf("status missing version: %q", status)
	}
	if digest := mustDigest(t, store.Snapshot()).Short(); !strings.Contains(status, digest) {
		t.Errorf("status missing digest %s: %q", digest, status)
	}
}

func TestLogRecordFades(t *testing.T) {
	model := testModel(t, testStore(t))
	model = update(t, model, logRecordMsg{Summary: "first"})
	model = update(t, model, logRecordMsg{Summary: "second"})

	// The fade scheduled for the first record must not clear the second.
	model = update(t, model, logRecordFadeMsg{serial: 1})
	if model.logMessage != "second" {
		t.Fatalf("logMessage = %q, want second", model.logMessage)
	}
	model = update(t, model, logRecordFadeMsg{serial: 2})
	if model.logMessage != "" {
		t.Errorf("logMessage = %q, want cleared", model.logMessage)
	}
}

func TestRenderStatic(t *testing.T) {
	output := ansi.Strip(RenderStatic(testStore(t).Snapshot(), StaticOptions{Width: 100}))
	for _, want := range []string{
		"CSPM Executive Dashboard",
		"Cloud Account Risk Assessment",
		"1470 Total Vulnerabilities",
		dashboard.DefaultPlaceholderMessage,
		"5/5 widgets",
	} {
		if !strings.Contains(output, want) {
			t.Errorf("static output missing %q", want)
		}
	}
	if strings.Contains(output, "Add Widget") {
		t.Error("static output should not draw add tiles")
	}

	filtered := ansi.Strip(RenderStatic(testStore(t).Snapshot(), StaticOptions{Term: "alerts"}))
	if !strings.Contains(filtered, "2/5 widgets") {
		t.Errorf("filtered summary wrong:\n%s", filtered)
	}
}
