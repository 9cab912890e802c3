// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package dashboard defines the dashboard data model: categories,
// widgets, widget types, and the tagged payload union that backs each
// widget's visualization.
//
// Payloads are validated against their widget's declared type when a
// widget is constructed, so renderers can rely on the payload shape
// without checking it again. Values of these types are treated as
// immutable once they are published in a store snapshot.
package dashboard
