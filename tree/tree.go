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

// Package tree implements constituency trees over ordered terminals:
// the node and span model, structural surgery (intermediate-node
// insertion, non-terminal filtering, unary-chain collapse and
// restore, parent-tag annotation), and projectivization of
// discontinuous constituents.
package tree

import (
	"fmt"

	"golang.org/x/exp/slices"
)

// Projectivity flags whether every non-terminal span in a tree is
// continuous.
type Projectivity int

const (
	// Projective marks a tree without discontinuous spans.
	Projective Projectivity = iota
	// Nonprojective marks a tree with at least one discontinuous
	// span.
	Nonprojective
)

// ChildEdge pairs a child node with the edge leading to it.
type ChildEdge struct {
	Node NodeIndex
	Edge EdgeIndex
}

// Tree is a rooted ordered-terminal constituency tree. It owns its
// graph; callers hold node and edge indices, which stay valid until
// the referenced entity is removed.
//
// The tree is single-threaded and owner-mutable: at most one writer
// at a time, and readers are not interleaved with writers.
type Tree struct {
	graph        *Graph
	root         NodeIndex
	nTerminals   int
	projectivity Projectivity
}

// NewTree assembles a tree from a graph, the number of terminals, the
// root index, and the projectivity of the graph's spans. The graph is
// owned by the tree afterwards.
func NewTree(graph *Graph, nTerminals int, root NodeIndex, projectivity Projectivity) *Tree {
	return &Tree{graph: graph, root: root, nTerminals: nTerminals, projectivity: projectivity}
}

// Root returns the index of the root node.
func (t *Tree) Root() NodeIndex {
	return t.root
}

// SetRoot makes a different node the root.
func (t *Tree) SetRoot(root NodeIndex) {
	t.root = root
}

// NTerminals returns the number of terminals.
func (t *Tree) NTerminals() int {
	return t.nTerminals
}

// Projective reports the projectivity flag. The flag is maintained by
// constructors and Projectivize; RecomputeProjectivity re-derives it
// from the spans.
func (t *Tree) Projective() bool {
	return t.projectivity == Projective
}

// SetProjectivity sets the projectivity flag.
func (t *Tree) SetProjectivity(p Projectivity) {
	t.projectivity = p
}

// RecomputeProjectivity re-derives the projectivity flag from the
// non-terminal spans and returns it.
func (t *Tree) RecomputeProjectivity() Projectivity {
	t.projectivity = Projective
	for _, idx := range t.graph.NodeIndices() {
		if nt, ok := t.graph.Node(idx).(*NonTerminal); ok && nt.Span().Discontinuous() {
			t.projectivity = Nonprojective
			break
		}
	}
	return t.projectivity
}

// Graph returns the underlying node and edge store for low-level
// surgery. Mutating callers must leave invariants intact or repair
// them with ExtendSpan.
func (t *Tree) Graph() *Graph {
	return t.graph
}

// Node returns the node at idx, or nil if idx has been removed.
func (t *Tree) Node(idx NodeIndex) Node {
	return t.graph.Node(idx)
}

// Terminals returns the terminal node indices sorted by terminal
// position. The slice is collected eagerly, so it stays valid while
// the tree is mutated; indices of removed terminals become stale.
func (t *Tree) Terminals() []NodeIndex {
	terminals := make([]NodeIndex, 0, t.nTerminals)
	for _, idx := range t.graph.NodeIndices() {
		if _, ok := t.graph.Node(idx).(*Terminal); ok {
			terminals = append(terminals, idx)
		}
	}
	slices.SortFunc(terminals, func(a, b NodeIndex) bool {
		return t.graph.Node(a).(*Terminal).Position() < t.graph.Node(b).(*Terminal).Position()
	})
	return terminals
}

// Parent returns a node's parent and the connecting edge. The second
// return value is false for the root and for detached nodes.
func (t *Tree) Parent(idx NodeIndex) (NodeIndex, EdgeIndex, bool) {
	edge, ok := t.graph.FirstIncoming(idx)
	if !ok {
		return 0, 0, false
	}
	from, _, _ := t.graph.Endpoints(edge)
	return from, edge, true
}

// Children returns a node's children with their edges. The order is
// unspecified; the slice is owned by the caller.
func (t *Tree) Children(idx NodeIndex) []ChildEdge {
	edges := t.graph.Outgoing(idx)
	children := make([]ChildEdge, len(edges))
	for i, e := range edges {
		_, to, _ := t.graph.Endpoints(e)
		children[i] = ChildEdge{Node: to, Edge: e}
	}
	return children
}

// ExtendSpan recomputes a non-terminal's span as the union of its
// children's spans. It fails on terminals and childless nodes.
func (t *Tree) ExtendSpan(idx NodeIndex) error {
	nt, ok := t.graph.Node(idx).(*NonTerminal)
	if !ok {
		return fmt.Errorf("%w: cannot extend span of terminal node %d", ErrStructure, idx)
	}
	var positions []int
	for _, child := range t.Children(idx) {
		positions = append(positions, t.graph.Node(child.Node).Span().Covered()...)
	}
	span, err := SpanFromPositions(positions)
	if err != nil {
		return fmt.Errorf("node %d has no children: %w", idx, err)
	}
	nt.SetSpan(span)
	return nil
}

// ProjectNTIndices returns, for each terminal in position order, the
// lowest ancestor whose label is accepted by labels, or the root if
// no ancestor on the parent chain is accepted.
func (t *Tree) ProjectNTIndices(labels LabelSet) []NodeIndex {
	terminals := t.Terminals()
	indices := make([]NodeIndex, len(terminals))
	for i, terminal := range terminals {
		indices[i] = t.root
		climber := NewClimber(terminal)
		for {
			ancestor, ok := climber.Next(t)
			if !ok {
				break
			}
			if labels.Matches(t.graph.Node(ancestor).Label()) {
				indices[i] = ancestor
				break
			}
		}
	}
	return indices
}

// Clone returns a deep copy of the tree. Node indices carry over to
// the copy.
func (t *Tree) Clone() *Tree {
	return &Tree{
		graph:        t.graph.clone(),
		root:         t.root,
		nTerminals:   t.nTerminals,
		projectivity: t.projectivity,
	}
}

// Equal reports structural equality: same shape from the root down,
// with equal labels, spans, features, forms, lemmas, and edge labels.
// Children are matched by span order, so graph index allocation does
// not matter. The projectivity flag is a cache and is not compared.
func (t *Tree) Equal(other *Tree) bool {
	if t.nTerminals != other.nTerminals {
		return false
	}
	return t.subtreeEqual(other, t.root, other.root)
}

func (t *Tree) subtreeEqual(other *Tree, a, b NodeIndex) bool {
	nodeA, nodeB := t.graph.Node(a), other.graph.Node(b)
	if nodeA == nil || nodeB == nil {
		return false
	}
	if nodeA.Label() != nodeB.Label() || !nodeA.Span().Equal(nodeB.Span()) ||
		!nodeA.Features().Equal(nodeB.Features()) {
		return false
	}
	termA, aIsTerm := nodeA.(*Terminal)
	termB, bIsTerm := nodeB.(*Terminal)
	if aIsTerm != bIsTerm {
		return false
	}
	if aIsTerm {
		return termA.Form() == termB.Form() && termA.Lemma() == termB.Lemma()
	}

	childrenA := t.sortedChildren(a)
	childrenB := other.sortedChildren(b)
	if len(childrenA) != len(childrenB) {
		return false
	}
	for i := range childrenA {
		edgeA, _ := t.graph.Edge(childrenA[i].Edge)
		edgeB, _ := other.graph.Edge(childrenB[i].Edge)
		if edgeA.Label() != edgeB.Label() {
			return false
		}
		if !t.subtreeEqual(other, childrenA[i].Node, childrenB[i].Node) {
			return false
		}
	}
	return true
}

// sortedChildren returns a node's children ordered by span, with
// label as a tie breaker for equal spans.
func (t *Tree) sortedChildren(idx NodeIndex) []ChildEdge {
	children := t.Children(idx)
	slices.SortFunc(children, func(a, b ChildEdge) bool {
		spanA, spanB := t.graph.Node(a.Node).Span(), t.graph.Node(b.Node).Span()
		if spanA.Lower() != spanB.Lower() {
			return spanA.Lower() < spanB.Lower()
		}
		if spanA.Upper() != spanB.Upper() {
			return spanA.Upper() < spanB.Upper()
		}
		return t.graph.Node(a.Node).Label() < t.graph.Node(b.Node).Label()
	})
	return children
}
