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
	"strings"
)

// UnaryChainFeature is the feature key under which CollapseUnaryChains
// records the removed labels and from which RestoreUnaryChains rebuilds
// them.
const UnaryChainFeature = "unary_chain"

// Surgery operations are not transactional: on error the tree may be
// left partially modified. Callers needing atomicity should Clone
// before a risky edit.

// AnnotateParentTag stores the label of each terminal's parent in the
// terminal's features under featureName, overwriting any prior value.
// It fails if a terminal has no parent.
func (t *Tree) AnnotateParentTag(featureName string) error {
	for _, terminal := range t.Terminals() {
		parent, _, ok := t.Parent(terminal)
		if !ok {
			return fmt.Errorf("%w: terminal without parent: %s", ErrStructure, t.Node(terminal))
		}
		label := t.Node(parent).Label()
		t.Node(terminal).MutFeatures().InsertValue(featureName, label)
	}
	return nil
}

// AnnotatePOS rebinds the label of each terminal, in terminal
// position order, to the corresponding element of pos. It fails if
// the number of tags differs from the number of terminals.
func (t *Tree) AnnotatePOS(pos []string) error {
	terminals := t.Terminals()
	if len(pos) < len(terminals) {
		return fmt.Errorf("%w: %d POS tags for %d terminals", ErrCountMismatch, len(pos), len(terminals))
	}
	if len(pos) > len(terminals) {
		return fmt.Errorf("%w: %d POS tags left over after %d terminals", ErrCountMismatch,
			len(pos)-len(terminals), len(terminals))
	}
	for i, terminal := range terminals {
		t.Node(terminal).(*Terminal).SetLabel(pos[i])
	}
	return nil
}

// InsertIntermediate interposes a non-terminal labeled insertionLabel
// between each terminal and its parent when the parent's label is not
// accepted by tags. A run of adjacent terminals under the same
// non-matching parent shares a single inserted node, whose span grows
// to cover the run. It fails if a terminal has no parent.
func (t *Tree) InsertIntermediate(tags LabelSet, insertionLabel string) error {
	type attachment struct {
		position int
		inserted NodeIndex
	}
	var prev *attachment

	for position, terminal := range t.Terminals() {
		parent, edge, ok := t.Parent(terminal)
		if !ok {
			return fmt.Errorf("%w: terminal without parent: %s", ErrStructure, t.Node(terminal))
		}
		if tags.Matches(t.Node(parent).Label()) {
			continue
		}

		weight, _ := t.graph.RemoveEdge(edge)
		if prev != nil && prev.position == position-1 {
			// The previous insertion is only reusable while it still
			// hangs off the same parent.
			if prevParent, _, ok := t.Parent(prev.inserted); ok && prevParent == parent {
				t.graph.AddEdge(prev.inserted, terminal, weight)
				if err := t.ExtendSpan(prev.inserted); err != nil {
					return err
				}
				prev = &attachment{position: position, inserted: prev.inserted}
				continue
			}
		}

		span := t.Node(terminal).Span()
		inserted := t.graph.AddNode(NewNonTerminal(insertionLabel, span))
		t.graph.AddEdge(parent, inserted, weight)
		t.graph.AddEdge(inserted, terminal, weight)
		prev = &attachment{position: position, inserted: inserted}
	}
	return nil
}

// FilterNonTerminals deletes every non-root non-terminal whose label
// is not accepted by tags. Surviving nodes are re-attached to the
// nearest accepted ancestor, or to the root if none intervenes,
// keeping their original edge weight. Terminals and their positions
// are never touched.
func (t *Tree) FilterNonTerminals(tags LabelSet) error {
	// Partition up front: node removal invalidates iteration state.
	var keep, drop []NodeIndex
	for _, idx := range t.graph.NodeIndices() {
		if idx == t.root {
			continue
		}
		if nt, ok := t.graph.Node(idx).(*NonTerminal); ok && !tags.Matches(nt.Label()) {
			drop = append(drop, idx)
		} else {
			keep = append(keep, idx)
		}
	}

	for _, node := range keep {
		_, edge, ok := t.Parent(node)
		if !ok {
			return fmt.Errorf("%w: non-root node without incoming edge: %s", ErrStructure, t.Node(node))
		}
		climber := NewClimber(node)
		for {
			ancestor, ok := climber.Next(t)
			if !ok {
				break
			}
			nt, ok := t.graph.Node(ancestor).(*NonTerminal)
			if !ok {
				return fmt.Errorf("%w: terminal as parent: %s", ErrStructure, t.Node(ancestor))
			}
			if tags.Matches(nt.Label()) || ancestor == t.root {
				weight, _ := t.graph.RemoveEdge(edge)
				t.graph.UpdateEdge(ancestor, node, weight)
				break
			}
		}
	}
	for _, node := range drop {
		t.graph.RemoveNode(node)
	}
	return nil
}

// CollapseUnaryChains removes each maximal chain of non-terminals
// whose spans equal the span of the node directly below the chain (a
// terminal or a branching non-terminal) and records the
// removed labels, joined by delim from the lowest chain member
// upward, under the UnaryChainFeature key of the preserved node below
// the chain. The preserved node is attached directly to the first
// ancestor with a larger span; if the chain reaches the root, the
// preserved node becomes the new root. Edge labels on collapsed edges
// are lost.
func (t *Tree) CollapseUnaryChains(delim string) error {
	for _, terminal := range t.Terminals() {
		cur := terminal
		var del []NodeIndex
		var chain []string
		climber := NewClimber(terminal)
		prevSpan := t.Node(terminal).Span()

		for {
			node, ok := climber.Next(t)
			if !ok {
				break
			}
			switch {
			case t.Node(node).Span().Equal(prevSpan):
				// Spans are equal in unary branches.
				del = append(del, node)
				nt, ok := t.Node(node).(*NonTerminal)
				if !ok {
					return fmt.Errorf("%w: terminal dominating another node", ErrStructure)
				}
				chain = append(chain, nt.Label())
			case len(chain) == 0:
				// No chain and a grown span: node is branching.
				prevSpan = t.Node(node).Span()
				cur = node
			default:
				// A grown span above an accumulated chain: the chain
				// ends here. Bridge the branching node to the
				// preserved node below the chain.
				t.Node(cur).MutFeatures().InsertValue(UnaryChainFeature, strings.Join(chain, delim))
				chain = chain[:0]
				t.graph.AddEdge(node, cur, Edge{})
				prevSpan = t.Node(node).Span()
				cur = node
			}
		}

		if len(chain) > 0 {
			// The chain runs into the root: the preserved node takes
			// the root's place.
			t.SetRoot(cur)
			t.Node(cur).MutFeatures().InsertValue(UnaryChainFeature, strings.Join(chain, delim))
		}

		for _, node := range del {
			t.graph.RemoveNode(node)
		}
	}
	return nil
}

// RestoreUnaryChains is the inverse of CollapseUnaryChains: for every
// node carrying the UnaryChainFeature key (removed on read), it
// recreates the recorded non-terminals above the node with the node's
// span, rewires the node's former parent to the topmost new node, and
// promotes the topmost to root when the node had no parent. Restored
// edges carry the zero Edge; edge labels lost by collapsing are not
// recovered.
func (t *Tree) RestoreUnaryChains(delim string) error {
	for _, node := range t.graph.NodeIndices() {
		chainValue := t.Node(node).MutFeatures().Remove(UnaryChainFeature)
		if chainValue == nil {
			continue
		}

		var attachment *NodeIndex
		if parent, edge, ok := t.Parent(node); ok {
			t.graph.RemoveEdge(edge)
			attachment = &parent
		}

		cur := node
		span := t.Node(node).Span()
		for _, label := range strings.Split(*chainValue, delim) {
			created := t.graph.AddNode(NewNonTerminal(label, span))
			t.graph.AddEdge(created, cur, Edge{})
			cur = created
		}

		if attachment != nil {
			t.graph.AddEdge(*attachment, cur, Edge{})
		} else {
			t.SetRoot(cur)
		}
	}
	return nil
}
