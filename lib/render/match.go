// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package render

import (
	"strings"

	"github.com/junegunn/fzf/src/algo"
	"github.com/junegunn/fzf/src/util"

	"github.com/bureau-foundation/dashboard/lib/schema/dashboard"
)

// Matches reports whether a widget name satisfies a search term. An
// empty term matches everything. Matching is case-insensitive
// substring; there is no tokenization and no fuzziness.
func Matches(name, term string) bool {
	if term == "" {
		return true
	}
	return strings.Contains(strings.ToLower(name), strings.ToLower(term))
}

// Highlight returns the rune positions in name covered by the first
// case-insensitive occurrence of term, for emphasis in the viewer.
// Returns nil when term is empty or does not occur.
func Highlight(name, term string) []int {
	if term == "" || !Matches(name, term) {
		return nil
	}

	// The exact-match algorithm compares against a lowercased pattern
	// when case sensitivity is off.
	pattern := []rune(strings.ToLower(term))
	chars := util.ToChars([]byte(name))
	result, _ := algo.ExactMatchNaive(false, false, true, &chars, pattern, false, nil)
	if result.Start < 0 || result.End <= result.Start {
		return nil
	}

	positions := make([]int, 0, int(result.End-result.Start))
	for position := int(result.Start); position < int(result.End); position++ {
		positions = append(positions, position)
	}
	return positions
}

// CategoryView is one category as seen through a search term.
type CategoryView struct {
	CategoryID string
	Name       string

	// Widgets are the visible widgets, in store order.
	Widgets []dashboard.Widget

	// Total is the number of widgets in the category before filtering.
	Total int
}

// Visible returns the number of widgets that passed the filter.
func (view CategoryView) Visible() int {
	return len(view.Widgets)
}

// Filter applies [Matches] to every widget in every category. Every
// category is returned, including those with no visible widgets, so
// the add-widget affordance stays reachable while searching.
func Filter(categories []dashboard.Category, term string) []CategoryView {
	views := make([]CategoryView, 0, len(categories))
	for _, category := range categories {
		view := CategoryView{
			CategoryID: category.ID,
			Name:       category.Name,
			Total:      len(category.Widgets),
		}
		if term == "" {
			view.Widgets = category.Widgets
		} else {
			for _, widget := range category.Widgets {
				if Matches(widget.Name, term) {
					view.Widgets = append(view.Widgets, widget)
				}
			}
		}
		views = append(views, view)
	}
	return views
}
