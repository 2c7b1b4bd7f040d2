// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package lines rebuilds visual text lines from the positioned fragments of a
// PDF page.
//
// Fragments are clustered in extraction order: a fragment joins the current
// line while its baseline stays within Threshold of the previous fragment's
// baseline. Each finished line is sorted left to right and joined with single
// spaces. Because PDF page space grows upward, the collected lines are
// reversed before they are returned.
package lines

import (
	"math"
	"sort"
	"strings"

	"github.com/pdiddy/pdf2docx/pkg/types"
)

// DefaultThreshold is the baseline distance, in page units, above which two
// consecutive fragments belong to different lines.
const DefaultThreshold = 5.0

// Reconstructor groups fragments into lines. The zero value uses
// DefaultThreshold.
type Reconstructor struct {
	Threshold float64
}

// Reconstruct groups frags into lines using DefaultThreshold.
func Reconstruct(frags []types.Fragment) []string {
	return Reconstructor{}.Reconstruct(frags)
}

// Reconstruct groups frags into lines and returns them in reading order.
// An empty input yields an empty (nil) result.
func (r Reconstructor) Reconstruct(frags []types.Fragment) []string {
	threshold := r.Threshold
	if threshold <= 0 {
		threshold = DefaultThreshold
	}

	var (
		out     []string
		current []types.Fragment
		lastY   float64
		haveY   bool
	)

	for _, f := range frags {
		// Compared against the previous fragment, not the line's first one.
		if haveY && math.Abs(f.Y-lastY) > threshold {
			if len(current) > 0 {
				out = append(out, join(current))
			}
			current = current[:0]
		}
		current = append(current, f)
		lastY = f.Y
		haveY = true
	}
	if len(current) > 0 {
		out = append(out, join(current))
	}

	for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
		out[i], out[j] = out[j], out[i]
	}
	return out
}

// join sorts line fragments by ascending x and joins their text.
func join(line []types.Fragment) string {
	sort.SliceStable(line, func(i, j int) bool {
		return line[i].X < line[j].X
	})
	parts := make([]string, len(line))
	for i, f := range line {
		parts[i] = f.Text
	}
	return strings.Join(parts, " ")
}
