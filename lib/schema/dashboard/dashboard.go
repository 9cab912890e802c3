// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package dashboard

import (
	"errors"
	"fmt"
	"time"
)

// ErrInvalidWidget is wrapped by every widget and category validation
// failure that is not about the payload itself.
var ErrInvalidWidget = errors.New("invalid widget")

// WidgetType is the declared kind of a widget. The set is open: any
// non-empty string is a valid type, but only the built-in types accept
// payloads other than [KindEmpty].
type WidgetType string

const (
	// TypeChart widgets visualize numeric payloads (rings, bars).
	TypeChart WidgetType = "chart"
	// TypeText widgets show textual panels, including the empty-state
	// placeholder.
	TypeText WidgetType = "text"
)

// BuiltinTypes lists the widget types offered by the add-widget form,
// in display order.
var BuiltinTypes = []WidgetType{TypeChart, TypeText}

// IsBuiltin reports whether the type is one of [BuiltinTypes].
func (widgetType WidgetType) IsBuiltin() bool {
	switch widgetType {
	case TypeChart, TypeText:
		return true
	default:
		return false
	}
}

// Widget is a single dashboard card.
type Widget struct {
	// ID is unique across the whole dashboard.
	ID string `json:"id" cbor:"id"`

	// Name is the display title and the only search key.
	Name string `json:"name" cbor:"name"`

	// Type is the declared widget type. Rendering dispatches on Type
	// together with Payload.Kind.
	Type WidgetType `json:"type" cbor:"type"`

	// Payload carries the visualization data.
	Payload Payload `json:"payload" cbor:"payload"`

	// CreatedAt is when the store created the widget. Zero for
	// widgets that came from seed data.
	CreatedAt time.Time `json:"created_at,omitzero" cbor:"created_at"`
}

// Validate checks that the widget has an ID, a name, a type, and a
// payload that is allowed for that type.
func (widget Widget) Validate() error {
	if widget.ID == "" {
		return fmt.Errorf("%w: missing id", ErrInvalidWidget)
	}
	if widget.Name == "" {
		return fmt.Errorf("%w %q: missing name", ErrInvalidWidget, widget.ID)
	}
	if widget.Type == "" {
		return fmt.Errorf("%w %q: missing type", ErrInvalidWidget, widget.ID)
	}
	if err := widget.Payload.Validate(widget.Type); err != nil {
		return fmt.Errorf("widget %q: %w", widget.ID, err)
	}
	return nil
}

// Category is a named, ordered group of widgets shown as one dashboard
// section. Widget order is insertion order and display order.
type Category struct {
	ID      string   `json:"id" cbor:"id"`
	Name    string   `json:"name" cbor:"name"`
	Widgets []Widget `json:"widgets" cbor:"widgets"`
}

// Validate checks the category fields and every widget in it. Widget
// IDs must be unique within the category.
func (category Category) Validate() error {
	if category.ID == "" {
		return fmt.Errorf("%w: category missing id", ErrInvalidWidget)
	}
	if category.Name == "" {
		return fmt.Errorf("%w: category %q missing name", ErrInvalidWidget, category.ID)
	}

	var errs []error
	seen := make(map[string]bool, len(category.Widgets))
	for _, widget := range category.Widgets {
		if err := widget.Validate(); err != nil {
			errs = append(errs, fmt.Errorf("category %q: %w", category.ID, err))
			continue
		}
		if seen[widget.ID] {
			errs = append(errs, fmt.Errorf("%w: category %q has duplicate widget id %q",
				ErrInvalidWidget, category.ID, widget.ID))
			continue
		}
		seen[widget.ID] = true
	}
	return errors.Join(errs...)
}

// IndexOf returns the position of the widget with the given ID, or -1.
func (category Category) IndexOf(widgetID string) int {
	for index, widget := range category.Widgets {
		if widget.ID == widgetID {
			return index
		}
	}
	return -1
}
