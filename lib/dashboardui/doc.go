// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package dashboardui implements the interactive terminal dashboard.
//
// The viewer is a bubbletea model over a [Source] (current snapshot
// plus a change subscription). When the source also implements
// [Mutator], the add-widget form and the remove control are enabled;
// otherwise the dashboard is read-only. The store is the single source
// of truth: the viewer never edits a snapshot, it asks the mutator and
// redraws from whatever snapshot comes back.
//
// Layout, top to bottom: the search bar, one section per category
// (a header with visible/total counts, a grid of widget cards, and an
// "+ Add Widget" tile), and a status line with key help, the snapshot
// version and digest, and transient errors or log warnings.
//
// [RenderStatic] draws the same category grid without interaction for
// one-shot output.
package dashboardui
