// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package render

import (
	"math"
	"sort"
)

// SegmentWidths converts percentages into integer column widths that
// sum to exactly width, using largest-remainder rounding. Ties go to
// the earlier segment. When every percentage is zero (or width is not
// positive) all widths are zero.
func SegmentWidths(percents []float64, width int) []int {
	widths := make([]int, len(percents))
	if width <= 0 || len(percents) == 0 {
		return widths
	}

	total := 0.0
	for _, percent := range percents {
		if percent > 0 {
			total += percent
		}
	}
	if total == 0 {
		return widths
	}

	type remainder struct {
		index    int
		fraction float64
	}
	remainders := make([]remainder, 0, len(percents))
	assigned := 0
	for index, percent := range percents {
		if percent <= 0 {
			continue
		}
		exact := percent / total * float64(width)
		whole := math.Floor(exact)
		widths[index] = int(whole)
		assigned += int(whole)
		remainders = append(remainders, remainder{index: index, fraction: exact - whole})
	}

	sort.SliceStable(remainders, func(i, j int) bool {
		return remainders[i].fraction > remainders[j].fraction
	})
	for step := 0; assigned < width; step++ {
		widths[remainders[step%len(remainders)].index]++
		assigned++
	}
	return widths
}
