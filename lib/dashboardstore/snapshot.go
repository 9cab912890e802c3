// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package dashboardstore

import (
	"encoding/hex"
	"fmt"

	"github.com/fxamacker/cbor/v2"
	"github.com/zeebo/blake3"

	"github.com/bureau-foundation/dashboard/lib/schema/dashboard"
)

// Snapshot is an immutable, versioned view of every category. Callers
// must not modify the slices it exposes: they are shared with the
// store and with later snapshots.
type Snapshot struct {
	// Version starts at 1 for the seeded state and increases by one
	// on every successful mutation.
	Version uint64

	// Categories in display order.
	Categories []dashboard.Category
}

// Category returns the category with the given ID.
func (snapshot Snapshot) Category(categoryID string) (dashboard.Category, bool) {
	index := snapshot.categoryIndex(categoryID)
	if index < 0 {
		return dashboard.Category{}, false
	}
	return snapshot.Categories[index], true
}

// Widget returns a widget by category and widget ID.
func (snapshot Snapshot) Widget(categoryID, widgetID string) (dashboard.Widget, bool) {
	category, ok := snapshot.Category(categoryID)
	if !ok {
		return dashboard.Widget{}, false
	}
	index := category.IndexOf(widgetID)
	if index < 0 {
		return dashboard.Widget{}, false
	}
	return category.Widgets[index], true
}

// WidgetCount returns the number of widgets across all categories.
func (snapshot Snapshot) WidgetCount() int {
	count := 0
	for _, category := range snapshot.Categories {
		count += len(category.Widgets)
	}
	return count
}

func (snapshot Snapshot) categoryIndex(categoryID string) int {
	for index, category := range snapshot.Categories {
		if category.ID == categoryID {
			return index
		}
	}
	return -1
}

func (snapshot Snapshot) hasWidgetID(widgetID string) bool {
	for _, category := range snapshot.Categories {
		if category.IndexOf(widgetID) >= 0 {
			return true
		}
	}
	return false
}

// encMode is configured with Core Deterministic Encoding (RFC 8949
// §4.2): sorted map keys, smallest integer encoding, no
// indefinite-length items. Nil and empty widget lists encode the same
// so that removing the last widget of a seeded-empty category hashes
// like the seed.
var encMode cbor.EncMode

func init() {
	options := cbor.CoreDetEncOptions()
	options.NilContainers = cbor.NilContainerAsEmpty
	var err error
	encMode, err = options.EncMode()
	if err != nil {
		panic("dashboardstore: CBOR encoder initialization failed: " + err.Error())
	}
}

// Encode returns the deterministic CBOR encoding of the snapshot's
// categories. The version is not part of the encoding.
func (snapshot Snapshot) Encode() ([]byte, error) {
	data, err := encMode.Marshal(snapshot.Categories)
	if err != nil {
		return nil, fmt.Errorf("encoding snapshot: %w", err)
	}
	return data, nil
}

// Digest is a 32-byte BLAKE3 digest of a snapshot's content.
type Digest [32]byte

// String returns the digest as lowercase hex.
func (digest Digest) String() string {
	return hex.EncodeToString(digest[:])
}

// Short returns the first 12 hex characters, enough to tell snapshots
// apart in a status bar.
func (digest Digest) Short() string {
	return digest.String()[:12]
}

// snapshotDomainKey keys the BLAKE3 hash so snapshot digests can never
// collide with digests of other data that happens to share bytes. The
// bytes are the ASCII domain name, zero-padded to 32 bytes.
var snapshotDomainKey = [32]byte{
	'b', 'u', 'r', 'e', 'a', 'u', '.', 'd', 'a', 's', 'h', 'b', 'o', 'a', 'r', 'd',
	'.', 's', 'n', 'a', 'p', 's', 'h', 'o', 't', 0, 0, 0, 0, 0, 0, 0,
}

// Digest hashes the snapshot's deterministic encoding. Snapshots with
// equal content have equal digests.
func (snapshot Snapshot) Digest() (Digest, error) {
	data, err := snapshot.Encode()
	if err != nil {
		return Digest{}, err
	}

	hasher, err := blake3.NewKeyed(snapshotDomainKey[:])
	if err != nil {
		return Digest{}, fmt.Errorf("creating snapshot hasher: %w", err)
	}
	hasher.Write(data)

	var digest Digest
	copy(digest[:], hasher.Sum(nil))
	return digest, nil
}
