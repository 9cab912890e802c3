// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package dashboardui

import (
	"context"

	"github.com/bureau-foundation/dashboard/lib/dashboardstore"
	"github.com/bureau-foundation/dashboard/lib/schema/dashboard"
)

// Source provides dashboard state to the viewer. *dashboardstore.Store
// implements it directly.
type Source interface {
	// Snapshot returns the current snapshot.
	Snapshot() dashboardstore.Snapshot

	// Subscribe returns a channel of change events and a cancel
	// function. Sources without live updates return a nil channel.
	Subscribe() (<-chan dashboardstore.Event, func())
}

// Mutator is the optional write side of a [Source]. The viewer checks
// for it with a type assertion; when absent, the add-widget tiles and
// remove controls are hidden.
type Mutator interface {
	AddWidget(ctx context.Context, categoryID, name string, widgetType dashboard.WidgetType) (dashboardstore.Snapshot, dashboard.Widget, error)
	RemoveWidget(ctx context.Context, categoryID, widgetID string) (dashboardstore.Snapshot, error)
}

// StaticSource is a read-only source over a fixed snapshot.
type StaticSource struct {
	snapshot dashboardstore.Snapshot
}

// NewStaticSource wraps a snapshot.
func NewStaticSource(snapshot dashboardstore.Snapshot) *StaticSource {
	return &StaticSource{snapshot: snapshot}
}

// Snapshot returns the wrapped snapshot.
func (source *StaticSource) Snapshot() dashboardstore.Snapshot {
	return source.snapshot
}

// Subscribe returns a nil channel: a static snapshot never changes.
func (source *StaticSource) Subscribe() (<-chan dashboardstore.Event, func()) {
	return nil, func() {}
}
