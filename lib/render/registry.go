// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package render

import (
	"strconv"
	"sync"

	"github.com/bureau-foundation/dashboard/lib/schema/dashboard"
)

// EmptyStateIcon is the glyph drawn above placeholder messages.
const EmptyStateIcon = "▁▃▅"

// Strategy builds a directive for a widget whose payload has already
// been validated for its type. Strategies leave Title, Remove and
// Highlight to the caller.
type Strategy func(widget dashboard.Widget) Directive

type strategyKey struct {
	widgetType dashboard.WidgetType
	kind       dashboard.PayloadKind
}

// Registry maps (widget type, payload kind) pairs to strategies. A
// strategy registered for a kind alone applies to every widget type
// that allows that kind. The zero value is an empty registry that
// renders everything as title-only.
type Registry struct {
	mutex      sync.RWMutex
	byKind     map[dashboard.PayloadKind]Strategy
	byTypeKind map[strategyKey]Strategy
}

// NewRegistry returns a registry with the built-in strategies for
// connections, risk, severity and placeholder payloads.
func NewRegistry() *Registry {
	registry := &Registry{}
	registry.Register(dashboard.KindConnections, connectionsRing)
	registry.Register(dashboard.KindRisk, riskRing)
	registry.Register(dashboard.KindSeverity, severityBar)
	registry.Register(dashboard.KindPlaceholder, placeholderPanel)
	return registry
}

// Register installs a strategy for a payload kind, replacing any
// existing one.
func (registry *Registry) Register(kind dashboard.PayloadKind, strategy Strategy) {
	registry.mutex.Lock()
	defer registry.mutex.Unlock()
	if registry.byKind == nil {
		registry.byKind = make(map[dashboard.PayloadKind]Strategy)
	}
	registry.byKind[kind] = strategy
}

// RegisterFor installs a strategy that applies only to one widget type
// and payload kind. It takes precedence over a kind-wide strategy.
func (registry *Registry) RegisterFor(widgetType dashboard.WidgetType, kind dashboard.PayloadKind, strategy Strategy) {
	registry.mutex.Lock()
	defer registry.mutex.Unlock()
	if registry.byTypeKind == nil {
		registry.byTypeKind = make(map[strategyKey]Strategy)
	}
	registry.byTypeKind[strategyKey{widgetType, kind}] = strategy
}

func (registry *Registry) lookup(widgetType dashboard.WidgetType, kind dashboard.PayloadKind) Strategy {
	registry.mutex.RLock()
	defer registry.mutex.RUnlock()
	if strategy, ok := registry.byTypeKind[strategyKey{widgetType, kind}]; ok {
		return strategy
	}
	return registry.byKind[kind]
}

// Render returns the directive for a widget, or false when the widget
// name does not match the search term. Widgets with an empty payload,
// a payload that is invalid for their type, or a kind without a
// strategy render as title-only.
func (registry *Registry) Render(widget dashboard.Widget, term string) (Directive, bool) {
	if !Matches(widget.Name, term) {
		return Directive{}, false
	}

	directive := Directive{Kind: KindHeaderOnly}
	if widget.Payload.Kind != "" && widget.Payload.Kind != dashboard.KindEmpty &&
		widget.Payload.Validate(widget.Type) == nil {
		if strategy := registry.lookup(widget.Type, widget.Payload.Kind); strategy != nil {
			directive = strategy(widget)
		}
	}

	directive.Title = widget.Name
	directive.Highlight = Highlight(widget.Name, term)
	return directive, true
}

// RenderCategory renders the visible widgets of a category in order and
// attaches each card's remove affordance.
func (registry *Registry) RenderCategory(category dashboard.Category, term string) []Directive {
	return registry.RenderView(Filter([]dashboard.Category{category}, term)[0], term)
}

// RenderView renders the widgets that passed [Filter], highlighting
// term in each title.
func (registry *Registry) RenderView(view CategoryView, term string) []Directive {
	directives := make([]Directive, 0, view.Visible())
	for _, widget := range view.Widgets {
		directive, visible := registry.Render(widget, term)
		if !visible {
			continue
		}
		directive.Remove = &RemoveAffordance{CategoryID: view.CategoryID, WidgetID: widget.ID}
		directives = append(directives, directive)
	}
	return directives
}

var defaultRegistry = NewRegistry()

// Render renders a widget with the built-in strategies.
func Render(widget dashboard.Widget, term string) (Directive, bool) {
	return defaultRegistry.Render(widget, term)
}

// RenderCategory renders a category with the built-in strategies.
func RenderCategory(category dashboard.Category, term string) []Directive {
	return defaultRegistry.RenderCategory(category, term)
}

// ratio returns part/whole, or 0 when whole is not positive.
func ratio(part, whole int) float64 {
	if whole <= 0 {
		return 0
	}
	return float64(part) / float64(whole)
}

func connectionsRing(widget dashboard.Widget) Directive {
	connections := widget.Payload.Connections
	return Directive{
		Kind: KindRing,
		Ring: &Ring{
			Fraction:    ratio(connections.Connected, connections.Connected+connections.NotConnected),
			CenterLabel: strconv.Itoa(connections.Connected),
			Tone:        ToneConnected,
			Rows: []Row{
				{Label: "Connected", Count: connections.Connected, Tone: ToneConnected, Checklist: true},
				{Label: "Not Connected", Count: connections.NotConnected, Tone: ToneDisconnected, Checklist: true},
			},
		},
	}
}

// riskRing fills the ring with the critical share of the total. The
// total is displayed as reported even when it differs from the sum of
// the levels.
func riskRing(widget dashboard.Widget) Directive {
	risk := widget.Payload.Risk
	return Directive{
		Kind: KindRing,
		Ring: &Ring{
			Fraction:    ratio(risk.Levels.Critical, risk.Total),
			CenterLabel: strconv.Itoa(risk.Total),
			Tone:        ToneCritical,
			Rows: []Row{
				{Label: "Failed", Count: risk.Levels.Critical, Tone: ToneCritical},
				{Label: "Warning", Count: risk.Levels.High, Tone: ToneWarning},
				{Label: "Not Available", Count: risk.Levels.Medium, Tone: ToneUnavailable},
				{Label: "Passed", Count: risk.Levels.Low, Tone: TonePassed},
			},
		},
	}
}

func severityBar(widget dashboard.Widget) Directive {
	severity := widget.Payload.Severity
	sum := severity.Sum()

	segments := make([]Segment, 0, len(severity.Buckets))
	for _, bucket := range severity.Buckets {
		segment := Segment{Name: bucket.Name, Count: bucket.Count}
		if sum > 0 {
			segment.Percent = float64(bucket.Count) * 100 / float64(sum)
		}
		segments = append(segments, segment)
	}
	return Directive{
		Kind: KindStackedBar,
		Bar: &StackedBar{
			Segments:   segments,
			TotalLabel: strconv.Itoa(severity.Total) + " Total Vulnerabilities",
		},
	}
}

func placeholderPanel(widget dashboard.Widget) Directive {
	message := widget.Payload.Placeholder.Message
	if message == "" {
		message = dashboard.DefaultPlaceholderMessage
	}
	return Directive{
		Kind:  KindEmptyState,
		Empty: &EmptyState{Icon: EmptyStateIcon, Message: message},
	}
}
