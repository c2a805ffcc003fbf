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

// Projectivize turns a tree with discontinuous spans into one whose
// every non-terminal span is continuous. Non-terminals are visited in
// post order from the root; for each discontinuous span, the skipped
// terminals' subtrees are re-attached at the discontinuous node. The
// attachment handle climbs from the skipped terminal and stops at the
// lowest subtree that escapes the gap set, so material is re-attached
// as high as necessary and as low as possible. A per-terminal claim
// log keeps a higher non-terminal from stealing a terminal already
// claimed by a lower (tighter) one.
//
// Calling Projectivize on a projective tree is a no-op. Behavior is
// undefined if non-terminal spans are inconsistent with the terminals
// they dominate.
func (t *Tree) Projectivize() {
	if t.Projective() {
		return
	}
	terminals := t.Terminals()
	// log[p] records the lower bound of the non-terminal that most
	// recently claimed terminal p; -1 means unclaimed.
	log := make([]int, len(terminals))
	for i := range log {
		log[i] = -1
	}

	for _, candidate := range PostOrder(t, t.root) {
		nt, ok := t.Node(candidate).(*NonTerminal)
		if !ok {
			continue
		}
		span := nt.Span()
		if !span.Discontinuous() {
			continue
		}

		worklist := span.Skips()
		for len(worklist) > 0 {
			skipped := worklist[0]
			// A terminal already claimed by a node at least as tight
			// as this one stays where it is; only lower claims win.
			if log[skipped] >= span.Lower() {
				worklist = worklist[1:]
				continue
			}

			climber := NewClimber(terminals[skipped])
			reattachSpan := t.Node(terminals[skipped]).Span()
			handle := terminals[skipped]

		climb:
			for {
				handleCandidate, ok := climber.Next(t)
				if !ok {
					break
				}
				// Equal spans mean a unary chain: keep climbing and
				// take the higher node as the handle.
				if !t.Node(handleCandidate).Span().Equal(reattachSpan) {
					for _, covered := range t.Node(handleCandidate).Span().Covered() {
						if !span.Skipped(covered) {
							// The candidate's subtree escapes the gap
							// set, so the current handle is the
							// highest subtree lying entirely inside
							// it. Re-attach it here.
							for _, claimed := range t.Node(handle).Span().Covered() {
								worklist = removePosition(worklist, claimed)
								log[claimed] = span.Lower()
							}
							_, rm, _ := t.Parent(handle)
							weight, _ := t.graph.RemoveEdge(rm)
							t.graph.UpdateEdge(candidate, handle, weight)
							break climb
						}
					}
					reattachSpan = t.Node(handleCandidate).Span()
				}
				handle = handleCandidate
			}
		}
		nt.SetSpan(span.ToContinuous())
	}
	t.SetProjectivity(Projective)
}

// removePosition deletes the first occurrence of p, keeping order.
func removePosition(worklist []int, p int) []int {
	for i, position := range worklist {
		if position == p {
			return append(worklist[:i], worklist[i+1:]...)
		}
	}
	return worklist
}
