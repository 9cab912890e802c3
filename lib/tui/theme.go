// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/bureau-foundation/dashboard/lib/render"
)

// Theme is the dashboard palette. All colors use lipgloss ANSI
// 256-color codes for broad terminal compatibility. There is exactly
// one built-in theme, [DefaultTheme].
type Theme struct {
	// Text colors.
	NormalText lipgloss.Color
	FaintText  lipgloss.Color
	ErrorText  lipgloss.Color

	// Focused card or tile.
	SelectedBackground lipgloss.Color
	SelectedForeground lipgloss.Color
	FocusBorder        lipgloss.Color

	// UI chrome.
	HeaderForeground   lipgloss.Color
	CategoryForeground lipgloss.Color
	BorderColor        lipgloss.Color
	HelpText           lipgloss.Color
	AddTileForeground  lipgloss.Color

	// Ring gauge trail (the unfilled part).
	RingTrail lipgloss.Color

	// Presentation tones from render.Tone.
	ToneConnected    lipgloss.Color
	ToneDisconnected lipgloss.Color
	ToneCritical     lipgloss.Color
	ToneWarning      lipgloss.Color
	ToneUnavailable  lipgloss.Color
	TonePassed       lipgloss.Color

	// SeverityColors maps severity bucket names to segment colors.
	// Unknown bucket names use FaintText.
	SeverityColors map[string]lipgloss.Color

	// Glow tints for recently added and removed cards.
	HotAccentPut    lipgloss.Color
	HotAccentRemove lipgloss.Color

	// Background for the matched part of a widget name.
	SearchHighlightBackground lipgloss.Color

	// Overlays (dropdown, slide-over panel).
	PanelForeground lipgloss.Color
	PanelBackground lipgloss.Color
}

// ToneColor returns the color for a presentation tone.
func (theme Theme) ToneColor(tone render.Tone) lipgloss.Color {
	switch tone {
	case render.ToneConnected:
		return theme.ToneConnected
	case render.ToneDisconnected:
		return theme.ToneDisconnected
	case render.ToneCritical:
		return theme.ToneCritical
	case render.ToneWarning:
		return theme.ToneWarning
	case render.ToneUnavailable:
		return theme.ToneUnavailable
	case render.TonePassed:
		return theme.TonePassed
	default:
		return theme.FaintText
	}
}

// SeverityColor returns the color for a severity bucket name.
func (theme Theme) SeverityColor(bucket string) lipgloss.Color {
	if color, ok := theme.SeverityColors[bucket]; ok {
		return color
	}
	return theme.FaintText
}

// DefaultTheme is the built-in dark-terminal color scheme.
var DefaultTheme = Theme{
	NormalText: lipgloss.Color("252"),
	FaintText:  lipgloss.Color("245"),
	ErrorText:  lipgloss.Color("203"),

	SelectedBackground: lipgloss.Color("236"),
	SelectedForeground: lipgloss.Color("255"),
	FocusBorder:        lipgloss.Color("75"),

	HeaderForeground:   lipgloss.Color("255"),
	CategoryForeground: lipgloss.Color("153"),
	BorderColor:        lipgloss.Color("240"),
	HelpText:           lipgloss.Color("241"),
	AddTileForeground:  lipgloss.Color("75"),

	RingTrail: lipgloss.Color("238"),

	ToneConnected:    lipgloss.Color("33"),  // blue
	ToneDisconnected: lipgloss.Color("250"), // light gray
	ToneCritical:     lipgloss.Color("196"), // red
	ToneWarning:      lipgloss.Color("220"), // yellow
	ToneUnavailable:  lipgloss.Color("244"), // gray
	TonePassed:       lipgloss.Color("34"),  // green

	SeverityColors: map[string]lipgloss.Color{
		"red":    lipgloss.Color("196"),
		"orange": lipgloss.Color("208"),
		"yellow": lipgloss.Color("220"),
		"grey":   lipgloss.Color("247"),
		"gray":   lipgloss.Color("247"),
	},

	HotAccentPut:    lipgloss.Color("58"), // dark amber background tint
	HotAccentRemove: lipgloss.Color("52"), // dark red background tint

	SearchHighlightBackground: lipgloss.Color("58"),

	PanelForeground: lipgloss.Color("252"),
	PanelBackground: lipgloss.Color("237"),
}
