// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package dashboardstore

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"sync"

	"github.com/bureau-foundation/dashboard/lib/clock"
	"github.com/bureau-foundation/dashboard/lib/schema/dashboard"
)

// maxIDAttempts bounds how many times AddWidget re-draws a widget ID
// that collides with an existing one.
const maxIDAttempts = 8

// subscriberBuffer is the channel capacity for each subscriber. Events
// beyond this are dropped for that subscriber; the next event still
// carries the full current snapshot.
const subscriberBuffer = 64

// EventKind names the mutation that produced an [Event].
type EventKind string

const (
	// EventPut is published after a widget is added.
	EventPut EventKind = "put"
	// EventRemove is published after a widget is removed.
	EventRemove EventKind = "remove"
)

// Event describes one successful mutation, delivered through the
// channel returned by [Store.Subscribe].
type Event struct {
	Kind       EventKind
	CategoryID string
	WidgetID   string

	// Snapshot is the snapshot the mutation produced.
	Snapshot Snapshot
}

// Option configures a Store.
type Option func(*Store)

// WithIDGenerator replaces the default [UUIDGenerator].
func WithIDGenerator(generator IDGenerator) Option {
	return func(store *Store) { store.ids = generator }
}

// WithClock sets the clock used for widget CreatedAt stamps.
func WithClock(source clock.Clock) Option {
	return func(store *Store) { store.clock = source }
}

// WithLogger sets the logger for mutation records. Defaults to a
// logger that discards everything.
func WithLogger(logger *slog.Logger) Option {
	return func(store *Store) { store.logger = logger }
}

// Store is the single owner of dashboard state. All methods are safe
// for concurrent use.
type Store struct {
	mutex          sync.RWMutex
	snapshot       Snapshot
	ids            IDGenerator
	clock          clock.Clock
	logger         *slog.Logger
	subscribers    map[uint64]chan Event
	nextSubscriber uint64
}

// New creates a Store seeded with the given categories. The seed is
// validated (schema rules, unique category IDs, widget IDs unique
// across all categories) and copied, so later changes to the caller's
// slices do not leak into the store.
func New(categories []dashboard.Category, options ...Option) (*Store, error) {
	if err := validateSeed(categories); err != nil {
		return nil, err
	}

	seeded := make([]dashboard.Category, len(categories))
	for index, category := range categories {
		category.Widgets = slices.Clone(category.Widgets)
		seeded[index] = category
	}

	store := &Store{
		snapshot:    Snapshot{Version: 1, Categories: seeded},
		ids:         UUIDGenerator{},
		clock:       clock.Real(),
		logger:      slog.New(slog.DiscardHandler),
		subscribers: make(map[uint64]chan Event),
	}
	for _, option := range options {
		option(store)
	}
	return store, nil
}

func validateSeed(categories []dashboard.Category) error {
	categoryIDs := make(map[string]bool, len(categories))
	widgetIDs := make(map[string]string)
	for _, category := range categories {
		if err := category.Validate(); err != nil {
			return validation("%w: %w", ErrInvalidSeed, err)
		}
		if categoryIDs[category.ID] {
			return validation("%w: category %q", ErrDuplicateID, category.ID)
		}
		categoryIDs[category.ID] = true

		for _, widget := range category.Widgets {
			if owner, exists := widgetIDs[widget.ID]; exists {
				return validation("%w: widget %q appears in %q and %q",
					ErrDuplicateID, widget.ID, owner, category.ID)
			}
			widgetIDs[widget.ID] = category.ID
		}
	}
	return nil
}

// Snapshot returns the current snapshot.
func (store *Store) Snapshot() Snapshot {
	store.mutex.RLock()
	defer store.mutex.RUnlock()
	return store.snapshot
}

// Category returns a category from the current snapshot.
func (store *Store) Category(categoryID string) (dashboard.Category, bool) {
	return store.Snapshot().Category(categoryID)
}

// Widget returns a widget from the current snapshot.
func (store *Store) Widget(categoryID, widgetID string) (dashboard.Widget, bool) {
	return store.Snapshot().Widget(categoryID, widgetID)
}

// AddWidget appends a new widget with an empty payload to the end of
// a category. The name is stored exactly as given, but a name that is
// only whitespace is rejected. On
// success it returns the new snapshot and the created widget; on
// failure it returns the unchanged snapshot and a categorized error.
func (store *Store) AddWidget(ctx context.Context, categoryID, name string, widgetType dashboard.WidgetType) (Snapshot, dashboard.Widget, error) {
	if err := ctx.Err(); err != nil {
		return store.Snapshot(), dashboard.Widget{}, err
	}

	store.mutex.Lock()
	defer store.mutex.Unlock()
	current := store.snapshot

	if strings.TrimSpace(name) == "" {
		return current, dashboard.Widget{}, store.reject("add widget", categoryID, "",
			validation("%w", ErrEmptyName))
	}
	if widgetType == "" {
		return current, dashboard.Widget{}, store.reject("add widget", categoryID, "",
			validation("%w", ErrEmptyType))
	}

	categoryIndex := current.categoryIndex(categoryID)
	if categoryIndex < 0 {
		return current, dashboard.Widget{}, store.reject("add widget", categoryID, "",
			notFound("category %q: %w", categoryID, ErrNotFound))
	}

	widgetID, drawErr := store.drawWidgetID(current)
	if drawErr != nil {
		return current, dashboard.Widget{}, store.reject("add widget", categoryID, "", drawErr)
	}

	widget := dashboard.Widget{
		ID:        widgetID,
		Name:      name,
		Type:      widgetType,
		Payload:   dashboard.EmptyPayload(),
		CreatedAt: store.clock.Now(),
	}

	// The touched category gets a fresh backing array so the previous
	// snapshot's slice is never written to.
	existing := current.Categories[categoryIndex].Widgets
	widgets := make([]dashboard.Widget, 0, len(existing)+1)
	widgets = append(widgets, existing...)
	widgets = append(widgets, widget)

	next := store.replaceCategoryWidgets(current, categoryIndex, widgets)
	store.publish(Event{Kind: EventPut, CategoryID: categoryID, WidgetID: widgetID, Snapshot: next})

	store.logger.Debug("widget added",
		"category", categoryID,
		"widget", widgetID,
		"type", string(widgetType),
		"version", next.Version,
	)
	return next, widget, nil
}

// RemoveWidget deletes a widget from a category, preserving the order
// of the remaining widgets. Unknown category or widget IDs return a
// not-found error and the unchanged snapshot.
func (store *Store) RemoveWidget(ctx context.Context, categoryID, widgetID string) (Snapshot, error) {
	if err := ctx.Err(); err != nil {
		return store.Snapshot(), err
	}

	store.mutex.Lock()
	defer store.mutex.Unlock()
	current := store.snapshot

	categoryIndex := current.categoryIndex(categoryID)
	if categoryIndex < 0 {
		return current, store.reject("remove widget", categoryID, widgetID,
			notFound("category %q: %w", categoryID, ErrNotFound))
	}

	existing := current.Categories[categoryIndex].Widgets
	widgetIndex := current.Categories[categoryIndex].IndexOf(widgetID)
	if widgetIndex < 0 {
		return current, store.reject("remove widget", categoryID, widgetID,
			notFound("widget %q in category %q: %w", widgetID, categoryID, ErrNotFound))
	}

	widgets := make([]dashboard.Widget, 0, len(existing)-1)
	widgets = append(widgets, existing[:widgetIndex]...)
	widgets = append(widgets, existing[widgetIndex+1:]...)

	next := store.replaceCategoryWidgets(current, categoryIndex, widgets)
	store.publish(Event{Kind: EventRemove, CategoryID: categoryID, WidgetID: widgetID, Snapshot: next})

	store.logger.Debug("widget removed",
		"category", categoryID,
		"widget", widgetID,
		"version", next.Version,
	)
	return next, nil
}

// Subscribe registers an observer. Each successful mutation sends an
// Event on the returned channel without blocking; a subscriber whose
// buffer is full misses that event. The cancel function unregisters
// the observer and closes the channel; calling it more than once is
// harmless.
func (store *Store) Subscribe() (<-chan Event, func()) {
	store.mutex.Lock()
	defer store.mutex.Unlock()

	id := store.nextSubscriber
	store.nextSubscriber++
	channel := make(chan Event, subscriberBuffer)
	store.subscribers[id] = channel

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			store.mutex.Lock()
			defer store.mutex.Unlock()
			delete(store.subscribers, id)
			close(channel)
		})
	}
	return channel, cancel
}

// replaceCategoryWidgets installs a new snapshot in which only the
// category at categoryIndex has a different widget list. Must be called
// with the write lock held.
func (store *Store) replaceCategoryWidgets(current Snapshot, categoryIndex int, widgets []dashboard.Widget) Snapshot {
	categories := slices.Clone(current.Categories)
	categories[categoryIndex].Widgets = widgets

	next := Snapshot{
		Version:    current.Version + 1,
		Categories: categories,
	}
	store.snapshot = next
	return next
}

// drawWidgetID asks the generator for IDs until one is unused. Must be
// called with the write lock held.
func (store *Store) drawWidgetID(current Snapshot) (string, *Error) {
	for attempt := 0; attempt < maxIDAttempts; attempt++ {
		candidate := store.ids.NewID()
		if candidate != "" && !current.hasWidgetID(candidate) {
			return candidate, nil
		}
	}
	return "", internal("%w after %d attempts", ErrIDExhausted, maxIDAttempts)
}

// publish fans an event out to every subscriber. Called with the write
// lock held so a concurrent cancel cannot close a channel mid-send;
// sends never block.
func (store *Store) publish(event Event) {
	for _, subscriber := range store.subscribers {
		select {
		case subscriber <- event:
		default:
		}
	}
}

// reject logs a refused mutation and returns the error unchanged.
func (store *Store) reject(operation, categoryID, widgetID string, err *Error) error {
	store.logger.Warn(fmt.Sprintf("%s rejected", operation),
		"category", categoryID,
		"widget", widgetID,
		"reason", string(err.Category),
		"error", err,
	)
	return err
}
