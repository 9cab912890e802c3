// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package dashboardstore owns the authoritative list of dashboard
// categories and widgets.
//
// A [Store] holds one immutable [Snapshot] at a time. Every successful
// mutation ([Store.AddWidget], [Store.RemoveWidget]) builds a new
// snapshot with the next version number and publishes it to
// subscribers; the previous snapshot is never modified, so readers
// holding it keep a consistent view. Categories a mutation does not
// touch share their widget slices with the previous snapshot.
//
// Rejected mutations return a categorized [*Error] and leave the
// snapshot unchanged:
//
//	snapshot, widget, err := store.AddWidget(ctx, "cwpp-dashboard", "Pod Health", dashboard.TypeChart)
//	switch {
//	case errors.Is(err, dashboardstore.ErrNotFound):
//	    // unknown category
//	case errors.Is(err, dashboardstore.ErrEmptyName):
//	    // show inline form feedback
//	}
//
// Widget IDs are drawn from an [IDGenerator] owned by the store
// (random UUIDv7 by default) and re-drawn on collision, so they are
// unique across the whole dashboard.
//
// [Snapshot.Digest] hashes the deterministic CBOR encoding of a
// snapshot's categories: two snapshots with the same content have the
// same digest regardless of version.
package dashboardstore
