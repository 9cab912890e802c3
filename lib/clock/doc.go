// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package clock provides an injectable time source.
//
// Components that stamp or age data (the widget store's CreatedAt, the
// viewer's change highlighting) take a [Clock] instead of calling
// time.Now directly. Production code passes [Real]; tests pass a
// [FakeClock] that only moves when told to:
//
//	fake := clock.Fake(time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC))
//	store, _ := dashboardstore.New(categories, dashboardstore.WithClock(fake))
//	fake.Advance(5 * time.Second)
package clock
