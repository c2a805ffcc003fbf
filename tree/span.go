//  Copyright (c) 2023 Uber Technologies, Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package tree

import (
	"fmt"

	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// Span is the set of terminal positions covered by a node. A span is
// either continuous, covering the half-open interval [lower, upper),
// or discontinuous, additionally carrying a set of interior positions
// ("skips") that are not covered. lower and upper-1 are always
// covered; skips are strictly interior.
type Span struct {
	lower int
	upper int
	// skips is nil for continuous spans. It is never mutated after
	// construction, so spans can share it freely.
	skips map[int]struct{}
}

// NewContinuousSpan returns the continuous span [lower, upper).
func NewContinuousSpan(lower, upper int) (Span, error) {
	if upper <= lower {
		return Span{}, fmt.Errorf("%w: upper bound %d not above lower bound %d", ErrSpan, upper, lower)
	}
	return Span{lower: lower, upper: upper}, nil
}

// SpanFromPositions builds a span from a set of terminal positions.
// The positions do not have to be sorted or unique. The result is
// continuous if the positions are gap-free, discontinuous otherwise.
func SpanFromPositions(positions []int) (Span, error) {
	if len(positions) == 0 {
		return Span{}, fmt.Errorf("%w: no positions", ErrSpan)
	}
	sorted := slices.Clone(positions)
	slices.Sort(sorted)
	sorted = slices.Compact(sorted)

	lower := sorted[0]
	upper := sorted[len(sorted)-1] + 1
	if upper-lower == len(sorted) {
		return Span{lower: lower, upper: upper}, nil
	}
	skips := make(map[int]struct{}, upper-lower-len(sorted))
	next := 0
	for i := lower; i < upper; i++ {
		if sorted[next] == i {
			next++
			continue
		}
		skips[i] = struct{}{}
	}
	return Span{lower: lower, upper: upper, skips: skips}, nil
}

// singlePositionSpan is the span of a terminal at position i.
func singlePositionSpan(i int) Span {
	return Span{lower: i, upper: i + 1}
}

// Lower returns the lowest covered position.
func (s Span) Lower() int {
	return s.lower
}

// Upper returns the exclusive upper bound of the span.
func (s Span) Upper() int {
	return s.upper
}

// Discontinuous reports whether the span has interior gaps.
func (s Span) Discontinuous() bool {
	return len(s.skips) > 0
}

// Skips returns the skipped interior positions in ascending order.
// The slice is nil for continuous spans.
func (s Span) Skips() []int {
	if len(s.skips) == 0 {
		return nil
	}
	skips := maps.Keys(s.skips)
	slices.Sort(skips)
	return skips
}

// Skipped reports whether position i lies in the span's gap set.
func (s Span) Skipped(i int) bool {
	_, ok := s.skips[i]
	return ok
}

// Contains reports whether the span covers position i.
func (s Span) Contains(i int) bool {
	if i < s.lower || i >= s.upper {
		return false
	}
	return !s.Skipped(i)
}

// Covered returns the covered positions in ascending order.
func (s Span) Covered() []int {
	covered := make([]int, 0, s.Count())
	for i := s.lower; i < s.upper; i++ {
		if !s.Skipped(i) {
			covered = append(covered, i)
		}
	}
	return covered
}

// Count returns the number of covered positions.
func (s Span) Count() int {
	return s.upper - s.lower - len(s.skips)
}

// ToContinuous returns the continuous span [lower, upper), dropping
// any skips.
func (s Span) ToContinuous() Span {
	return Span{lower: s.lower, upper: s.upper}
}

// Equal reports covered-set equality: a discontinuous span with an
// empty gap set equals the continuous span over the same interval.
func (s Span) Equal(other Span) bool {
	if s.lower != other.lower || s.upper != other.upper || len(s.skips) != len(other.skips) {
		return false
	}
	for i := range s.skips {
		if _, ok := other.skips[i]; !ok {
			return false
		}
	}
	return true
}

func (s Span) String() string {
	if !s.Discontinuous() {
		return fmt.Sprintf("[%d, %d)", s.lower, s.upper)
	}
	return fmt.Sprintf("[%d, %d) skipping %v", s.lower, s.upper, s.Skips())
}
