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

package tree_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/sts10/lumberjack/ptb"
	"github.com/sts10/lumberjack/tree"
)

func TestProjectivizeReattachesSkippedTerminal(t *testing.T) {
	// A covers {0, 2}, the terminal at position 1 hangs off the root.
	g := tree.NewGraph()
	root := g.AddNode(tree.NewNonTerminal("ROOT", mustSpan(t, 0, 1, 2)))
	a := g.AddNode(tree.NewNonTerminal("A", mustSpan(t, 0, 2)))
	g.AddEdge(root, a, tree.Edge{})
	g.AddEdge(a, g.AddNode(tree.NewTerminal("t1", "T1", 0)), tree.Edge{})
	middle := g.AddNode(tree.NewTerminal("t2", "T2", 1))
	g.AddEdge(root, middle, tree.Edge{})
	g.AddEdge(a, g.AddNode(tree.NewTerminal("t3", "T3", 2)), tree.Edge{})
	fixture := tree.NewTree(g, 3, root, tree.Nonprojective)

	fixture.Projectivize()

	require.True(t, fixture.Projective())
	parent, _, ok := fixture.Parent(middle)
	require.True(t, ok)
	require.Equal(t, a, parent)
	span := fixture.Node(a).Span()
	require.False(t, span.Discontinuous())
	require.Equal(t, 0, span.Lower())
	require.Equal(t, 3, span.Upper())
	require.Equal(t, "(ROOT (A (T1 t1) (T2 t2) (T3 t3)))", format(t, fixture))
}

func TestProjectivizeMovesWholeSubtree(t *testing.T) {
	// The skipped terminal is wrapped by B, which covers exactly the
	// gap, so B's whole subtree moves under A.
	g := tree.NewGraph()
	root := g.AddNode(tree.NewNonTerminal("ROOT", mustSpan(t, 0, 1, 2)))
	a := g.AddNode(tree.NewNonTerminal("A", mustSpan(t, 0, 2)))
	g.AddEdge(root, a, tree.Edge{})
	b := g.AddNode(tree.NewNonTerminal("B", mustSpan(t, 1)))
	g.AddEdge(root, b, tree.NewEdge("OC"))
	g.AddEdge(a, g.AddNode(tree.NewTerminal("t1", "T1", 0)), tree.Edge{})
	g.AddEdge(b, g.AddNode(tree.NewTerminal("t2", "T2", 1)), tree.Edge{})
	g.AddEdge(a, g.AddNode(tree.NewTerminal("t3", "T3", 2)), tree.Edge{})
	fixture := tree.NewTree(g, 3, root, tree.Nonprojective)

	fixture.Projectivize()

	require.True(t, fixture.Projective())
	parent, edge, ok := fixture.Parent(b)
	require.True(t, ok)
	require.Equal(t, a, parent)
	// The edge weight travels with the re-attached subtree.
	weight, ok := fixture.Graph().Edge(edge)
	require.True(t, ok)
	require.Equal(t, "OC", weight.Label())
	require.Equal(t, "(ROOT (A (T1 t1) (B (T2 t2)) (T3 t3)))", format(t, fixture))
}

func TestProjectivizeIdempotent(t *testing.T) {
	fixture := insertFixture(t)
	fixture.Projectivize()
	require.True(t, fixture.Projective())

	once := fixture.Clone()
	fixture.Projectivize()
	require.True(t, once.Equal(fixture))
}

func TestProjectivizeProjectiveTreeIsNoop(t *testing.T) {
	input := "(S (NP (DET the) (NN dog)) (VBZ barks))"
	fixture := parse(t, input)
	fixture.Projectivize()
	require.Equal(t, input, format(t, fixture))
}

func TestProjectivizeLowestClaimWins(t *testing.T) {
	// Both A and the root-level C straddle the gap at position 2; A
	// is lower (tighter), so A keeps the terminal after both are
	// processed.
	g := tree.NewGraph()
	root := g.AddNode(tree.NewNonTerminal("ROOT", mustSpan(t, 0, 1, 2, 3)))
	c := g.AddNode(tree.NewNonTerminal("C", mustSpan(t, 0, 1, 3)))
	g.AddEdge(root, c, tree.Edge{})
	a := g.AddNode(tree.NewNonTerminal("A", mustSpan(t, 1, 3)))
	g.AddEdge(c, a, tree.Edge{})
	g.AddEdge(c, g.AddNode(tree.NewTerminal("t1", "T1", 0)), tree.Edge{})
	g.AddEdge(a, g.AddNode(tree.NewTerminal("t2", "T2", 1)), tree.Edge{})
	skipped := g.AddNode(tree.NewTerminal("t3", "T3", 2))
	g.AddEdge(root, skipped, tree.Edge{})
	g.AddEdge(a, g.AddNode(tree.NewTerminal("t4", "T4", 3)), tree.Edge{})
	fixture := tree.NewTree(g, 4, root, tree.Nonprojective)

	fixture.Projectivize()

	require.True(t, fixture.Projective())
	parent, _, ok := fixture.Parent(skipped)
	require.True(t, ok)
	require.Equal(t, a, parent)
	for _, idx := range []tree.NodeIndex{a, c} {
		require.False(t, fixture.Node(idx).Span().Discontinuous())
	}
}
