// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package tui provides the terminal building blocks the dashboard
// viewer is assembled from: the colour theme, overlay splicing, the
// widget-type dropdown, the slide-over panel that hosts the add-widget
// form, change glow animation, and the scrollbar.
//
// Components here know about presentation tones and severity bucket
// names but nothing about the store; the viewer in lib/dashboardui owns
// the data flow and decides what to draw.
package tui
