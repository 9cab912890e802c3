// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package seed loads the initial dashboard contents. Seeds are authored
// as JSONC (JSON extended with // line comments, /* block comments */,
// and trailing commas) using the same field names as the
// lib/schema/dashboard types.
//
// The typical flow:
//
//  1. Default, or LoadFile / Parse: JSONC bytes → Seed
//  2. Validate: schema checks plus ID uniqueness across the seed
//  3. dashboardstore.New(seed.Categories)
package seed

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/tidwall/jsonc"

	"github.com/bureau-foundation/dashboard/lib/schema/dashboard"
)

//go:embed default.jsonc
var defaultSeed []byte

// Seed is the parsed contents of a seed file.
type Seed struct {
	Categories []dashboard.Category `json:"categories"`
}

// Default returns the built-in seed. It panics if the embedded file
// does not parse, which can only happen through a bad edit to
// default.jsonc and is caught by the package tests.
func Default() *Seed {
	seed, err := Parse(defaultSeed)
	if err != nil {
		panic(fmt.Sprintf("embedded default seed: %v", err))
	}
	return seed
}

// Parse strips JSONC comments and trailing commas from data, decodes
// the result, and validates it. Unknown fields are rejected so a
// misspelled payload key fails loudly instead of rendering as an
// empty card.
func Parse(data []byte) (*Seed, error) {
	stripped := jsonc.ToJSON(data)

	decoder := json.NewDecoder(bytes.NewReader(stripped))
	decoder.DisallowUnknownFields()

	var seed Seed
	if err := decoder.Decode(&seed); err != nil {
		return nil, fmt.Errorf("parsing seed: %w", err)
	}
	if err := seed.Validate(); err != nil {
		return nil, err
	}
	return &seed, nil
}

// LoadFile reads and parses a JSONC seed file.
func LoadFile(path string) (*Seed, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	seed, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return seed, nil
}

// Validate checks every category and widget and that category IDs and
// widget IDs are unique across the whole seed. All problems are
// reported together.
func (seed *Seed) Validate() error {
	if len(seed.Categories) == 0 {
		return errors.New("seed has no categories")
	}

	var errs []error
	categoryIDs := make(map[string]bool, len(seed.Categories))
	widgetOwners := make(map[string]string)
	for _, category := range seed.Categories {
		if err := category.Validate(); err != nil {
			errs = append(errs, err)
		}
		if category.ID != "" {
			if categoryIDs[category.ID] {
				errs = append(errs, fmt.Errorf("duplicate category id %q", category.ID))
			}
			categoryIDs[category.ID] = true
		}
		for _, widget := range category.Widgets {
			if widget.ID == "" {
				continue
			}
			if owner, exists := widgetOwners[widget.ID]; exists && owner != category.ID {
				errs = append(errs, fmt.Errorf("widget id %q appears in both %q and %q", widget.ID, owner, category.ID))
				continue
			}
			widgetOwners[widget.ID] = category.ID
		}
	}
	return errors.Join(errs...)
}

// WidgetCount returns the number of widgets across all categories.
func (seed *Seed) WidgetCount() int {
	count := 0
	for _, category := range seed.Categories {
		count += len(category.Widgets)
	}
	return count
}
