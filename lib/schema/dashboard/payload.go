// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package dashboard

import (
	"errors"
	"fmt"
	"slices"
)

// ErrInvalidPayload is wrapped by every payload validation failure.
var ErrInvalidPayload = errors.New("invalid payload")

// DefaultPlaceholderMessage is shown by placeholder payloads that do
// not carry their own message.
const DefaultPlaceholderMessage = "No graph data available"

// PayloadKind discriminates the [Payload] union.
type PayloadKind string

const (
	// KindEmpty carries no data. Every widget created through the
	// add-widget flow starts with an empty payload.
	KindEmpty PayloadKind = "empty"
	// KindConnections is a connected / not-connected account count.
	KindConnections PayloadKind = "connections"
	// KindRisk is a risk assessment total with per-level counts.
	KindRisk PayloadKind = "risk"
	// KindSeverity is an ordered breakdown of counts per severity
	// bucket.
	KindSeverity PayloadKind = "severity"
	// KindPlaceholder is an explicit "no data" panel.
	KindPlaceholder PayloadKind = "placeholder"
)

// allowedKinds maps each built-in widget type to the payload kinds it
// accepts. Types outside this map accept only KindEmpty.
var allowedKinds = map[WidgetType][]PayloadKind{
	TypeChart: {KindEmpty, KindConnections, KindRisk, KindSeverity},
	TypeText:  {KindEmpty, KindPlaceholder},
}

// AllowedKinds returns the payload kinds a widget type accepts.
func AllowedKinds(widgetType WidgetType) []PayloadKind {
	kinds, ok := allowedKinds[widgetType]
	if !ok {
		return []PayloadKind{KindEmpty}
	}
	return slices.Clone(kinds)
}

// ConnectionSummary counts connected and not-connected accounts.
type ConnectionSummary struct {
	Connected    int `json:"connected" cbor:"connected"`
	NotConnected int `json:"not_connected" cbor:"not_connected"`
}

// RiskLevels holds per-level counts of a risk assessment.
type RiskLevels struct {
	Critical int `json:"critical" cbor:"critical"`
	High     int `json:"high" cbor:"high"`
	Medium   int `json:"medium" cbor:"medium"`
	Low      int `json:"low" cbor:"low"`
}

// RiskSummary is a risk assessment: an overall total plus the
// breakdown by level. The total is reported as-is and is not required
// to equal the sum of the levels.
type RiskSummary struct {
	Total  int        `json:"total" cbor:"total"`
	Levels RiskLevels `json:"risk_levels" cbor:"risk_levels"`
}

// SeverityBucket is one named segment of a severity breakdown.
type SeverityBucket struct {
	Name  string `json:"name" cbor:"name"`
	Count int    `json:"count" cbor:"count"`
}

// SeverityBreakdown is an ordered set of severity buckets plus the
// total that is displayed next to the bar. Bucket order is display
// order.
type SeverityBreakdown struct {
	Total   int              `json:"total" cbor:"total"`
	Buckets []SeverityBucket `json:"buckets" cbor:"buckets"`
}

// Sum returns the sum of all bucket counts.
func (breakdown SeverityBreakdown) Sum() int {
	sum := 0
	for _, bucket := range breakdown.Buckets {
		sum += bucket.Count
	}
	return sum
}

// Placeholder is an explicit empty-state panel.
type Placeholder struct {
	// Message replaces [DefaultPlaceholderMessage] when set.
	Message string `json:"message,omitempty" cbor:"message,omitempty"`
}

// Payload is the tagged union of widget data. Exactly the field named
// by Kind is set; the others are nil. Use the constructors rather than
// building a Payload by hand.
type Payload struct {
	Kind PayloadKind `json:"kind" cbor:"kind"`

	Connections *ConnectionSummary `json:"connections,omitempty" cbor:"connections,omitempty"`
	Risk        *RiskSummary       `json:"risk,omitempty" cbor:"risk,omitempty"`
	Severity    *SeverityBreakdown `json:"severity,omitempty" cbor:"severity,omitempty"`
	Placeholder *Placeholder       `json:"placeholder,omitempty" cbor:"placeholder,omitempty"`
}

// EmptyPayload returns a payload that carries no data.
func EmptyPayload() Payload {
	return Payload{Kind: KindEmpty}
}

// ConnectionsPayload returns a connections payload.
func ConnectionsPayload(connected, notConnected int) Payload {
	return Payload{
		Kind:        KindConnections,
		Connections: &ConnectionSummary{Connected: connected, NotConnected: notConnected},
	}
}

// RiskPayload returns a risk assessment payload.
func RiskPayload(total int, levels RiskLevels) Payload {
	return Payload{
		Kind: KindRisk,
		Risk: &RiskSummary{Total: total, Levels: levels},
	}
}

// SeverityPayload returns a severity breakdown payload. The buckets
// slice is copied.
func SeverityPayload(total int, buckets ...SeverityBucket) Payload {
	return Payload{
		Kind: KindSeverity,
		Severity: &SeverityBreakdown{
			Total:   total,
			Buckets: slices.Clone(buckets),
		},
	}
}

// PlaceholderPayload returns an empty-state payload. An empty message
// selects [DefaultPlaceholderMessage] at render time.
func PlaceholderPayload(message string) Payload {
	return Payload{
		Kind:        KindPlaceholder,
		Placeholder: &Placeholder{Message: message},
	}
}

// Validate checks that the payload is well formed and that its kind is
// allowed on the given widget type. A zero Payload (no Kind) is treated
// as empty.
func (payload Payload) Validate(widgetType WidgetType) error {
	kind := payload.Kind
	if kind == "" {
		kind = KindEmpty
	}

	if !slices.Contains(AllowedKinds(widgetType), kind) {
		return fmt.Errorf("%w: kind %q is not allowed on widget type %q", ErrInvalidPayload, kind, widgetType)
	}

	populated := 0
	for _, set := range []bool{
		payload.Connections != nil,
		payload.Risk != nil,
		payload.Severity != nil,
		payload.Placeholder != nil,
	} {
		if set {
			populated++
		}
	}

	switch kind {
	case KindEmpty:
		if populated != 0 {
			return fmt.Errorf("%w: empty payload carries data", ErrInvalidPayload)
		}
		return nil

	case KindConnections:
		if payload.Connections == nil || populated != 1 {
			return fmt.Errorf("%w: connections payload must set only the connections field", ErrInvalidPayload)
		}
		if payload.Connections.Connected < 0 || payload.Connections.NotConnected < 0 {
			return fmt.Errorf("%w: connection counts must not be negative", ErrInvalidPayload)
		}
		return nil

	case KindRisk:
		if payload.Risk == nil || populated != 1 {
			return fmt.Errorf("%w: risk payload must set only the risk field", ErrInvalidPayload)
		}
		risk := payload.Risk
		if risk.Total < 0 || risk.Levels.Critical < 0 || risk.Levels.High < 0 ||
			risk.Levels.Medium < 0 || risk.Levels.Low < 0 {
			return fmt.Errorf("%w: risk counts must not be negative", ErrInvalidPayload)
		}
		return nil

	case KindSeverity:
		if payload.Severity == nil || populated != 1 {
			return fmt.Errorf("%w: severity payload must set only the severity field", ErrInvalidPayload)
		}
		return payload.Severity.validate()

	case KindPlaceholder:
		if payload.Placeholder == nil || populated != 1 {
			return fmt.Errorf("%w: placeholder payload must set only the placeholder field", ErrInvalidPayload)
		}
		return nil

	default:
		return fmt.Errorf("%w: unknown kind %q", ErrInvalidPayload, kind)
	}
}

func (breakdown SeverityBreakdown) validate() error {
	if breakdown.Total < 0 {
		return fmt.Errorf("%w: severity total must not be negative", ErrInvalidPayload)
	}
	if len(breakdown.Buckets) == 0 {
		return fmt.Errorf("%w: severity breakdown has no buckets", ErrInvalidPayload)
	}
	seen := make(map[string]bool, len(breakdown.Buckets))
	for _, bucket := range breakdown.Buckets {
		if bucket.Name == "" {
			return fmt.Errorf("%w: severity bucket missing name", ErrInvalidPayload)
		}
		if seen[bucket.Name] {
			return fmt.Errorf("%w: duplicate severity bucket %q", ErrInvalidPayload, bucket.Name)
		}
		seen[bucket.Name] = true
		if bucket.Count < 0 {
			return fmt.Errorf("%w: severity bucket %q has a negative count", ErrInvalidPayload, bucket.Name)
		}
	}
	return nil
}
