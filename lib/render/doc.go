// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package render turns dashboard widgets into presentation directives.
//
// Everything here is a pure function of its inputs. [Matches] is the
// search predicate (case-insensitive substring against the widget
// name); [Filter] applies it to whole categories. [Render] maps a
// widget to a [Directive] by looking up a [Strategy] for the widget's
// declared type and payload kind in a [Registry]. Directives describe
// what to draw (a ring gauge, a stacked bar, an empty-state panel, or
// just a title) and leave the drawing itself to the terminal viewer.
//
// New payload kinds are supported by registering a strategy; dispatch
// never inspects widget IDs or guesses at payload shape.
package render
