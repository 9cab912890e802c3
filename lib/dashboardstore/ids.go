// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package dashboardstore

import (
	"strconv"
	"sync/atomic"

	"github.com/google/uuid"
)

// widgetIDPrefix prefixes every generated widget ID.
const widgetIDPrefix = "widget-"

// IDGenerator produces candidate widget IDs. The store calls NewID
// while holding its write lock and re-draws when the candidate is
// already in use.
type IDGenerator interface {
	NewID() string
}

// UUIDGenerator draws time-ordered random IDs (UUIDv7), so widgets
// created within the same clock tick still get distinct IDs.
type UUIDGenerator struct{}

// NewID returns "widget-" followed by a UUIDv7. Falls back to a
// random UUIDv4 if the v7 generator fails.
func (UUIDGenerator) NewID() string {
	id, err := uuid.NewV7()
	if err != nil {
		id = uuid.New()
	}
	return widgetIDPrefix + id.String()
}

// SequenceGenerator hands out "widget-1", "widget-2", ... in order.
// Deterministic IDs make tests and screenshots stable.
type SequenceGenerator struct {
	next atomic.Uint64
}

// NewSequenceGenerator returns a generator whose first ID is
// "widget-<start>".
func NewSequenceGenerator(start uint64) *SequenceGenerator {
	generator := &SequenceGenerator{}
	generator.next.Store(start)
	return generator
}

// NewID returns the next ID in the sequence.
func (generator *SequenceGenerator) NewID() string {
	value := generator.next.Add(1) - 1
	return widgetIDPrefix + strconv.FormatUint(value, 10)
}
