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

package ptb_test

import (
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/sts10/lumberjack/ptb"
	"github.com/sts10/lumberjack/tree"
)

func TestParseStringSimple(t *testing.T) {
	input := "(NX (NN Nounphrase) (PX (PP on) (NX (DET a) (ADJ single) (NX line))))"
	parsed, err := ptb.ParseString(input, ptb.Simple)
	require.NoError(t, err)

	require.Equal(t, 5, parsed.NTerminals())
	require.True(t, parsed.Projective())
	require.Equal(t, "NX", parsed.Node(parsed.Root()).Label())

	forms := []string{"Nounphrase", "on", "a", "single", "line"}
	labels := []string{"NN", "PP", "DET", "ADJ", "NX"}
	for i, idx := range parsed.Terminals() {
		terminal := parsed.Node(idx).(*tree.Terminal)
		require.Equal(t, forms[i], terminal.Form())
		require.Equal(t, labels[i], terminal.Label())
		require.Equal(t, i, terminal.Position())
	}
}

func TestRoundTripSimple(t *testing.T) {
	for _, input := range []string{
		"(T t)",
		"(ROOT (UNARY (T t)))",
		"(S (NP (DET the) (NN dog)) (VP (VBZ chases) (NP (DET a) (NN cat))))",
		"(NX (NN Nounphrase) (PX (PP on) (NX (DET a) (ADJ single) (NX line))))",
	} {
		t.Run(input, func(t *testing.T) {
			parsed, err := ptb.ParseString(input, ptb.Simple)
			require.NoError(t, err)
			printed, err := ptb.FormatTree(parsed, ptb.Simple)
			require.NoError(t, err)
			require.Equal(t, input, printed)

			// Parsing the printed form yields an equal tree.
			reparsed, err := ptb.ParseString(printed, ptb.Simple)
			require.NoError(t, err)
			require.True(t, parsed.Equal(reparsed))
		})
	}
}

func TestTueBaEdgeLabels(t *testing.T) {
	input := "(S (NX:ON (NN Peter)) (VXFIN:HD (VVFIN sleeps)))"
	parsed, err := ptb.ParseString(input, ptb.TueBaV2)
	require.NoError(t, err)

	var onEdges int
	for _, child := range parsed.Children(parsed.Root()) {
		edge, ok := parsed.Graph().Edge(child.Edge)
		require.True(t, ok)
		if edge.Label() == "ON" {
			onEdges++
			require.Equal(t, "NX", parsed.Node(child.Node).Label())
		}
	}
	require.Equal(t, 1, onEdges)

	printed, err := ptb.FormatTree(parsed, ptb.TueBaV2)
	require.NoError(t, err)
	require.Equal(t, input, printed)

	// The simple writer drops edge labels.
	printed, err = ptb.FormatTree(parsed, ptb.Simple)
	require.NoError(t, err)
	require.Equal(t, "(S (NX (NN Peter)) (VXFIN (VVFIN sleeps)))", printed)
}

func TestParseErrors(t *testing.T) {
	for name, input := range map[string]string{
		"unbalanced":     "(S (NP (DET the)",
		"trailing":       "(T t) extra",
		"empty nonterm":  "(S ())",
		"missing form":   "(T)",
		"stray brackets": ")(",
	} {
		t.Run(name, func(t *testing.T) {
			_, err := ptb.ParseString(input, ptb.Simple)
			require.ErrorIs(t, err, ptb.ErrParse)
		})
	}
}

func TestReaderSingleLine(t *testing.T) {
	input := "(T t)\n\n(ROOT (A a) (B b))\n"
	reader := ptb.NewReader(strings.NewReader(input), ptb.SingleLine, ptb.Simple)

	first, err := reader.Read()
	require.NoError(t, err)
	require.Equal(t, 1, first.NTerminals())

	second, err := reader.Read()
	require.NoError(t, err)
	require.Equal(t, 2, second.NTerminals())

	_, err = reader.Read()
	require.Equal(t, io.EOF, err)
}

func TestReaderMultiLine(t *testing.T) {
	input := `(S
  (NP (DET the)
      (NN dog))
  (VBZ barks))

(T t)
`
	reader := ptb.NewReader(strings.NewReader(input), ptb.MultiLine, ptb.Simple)

	first, err := reader.Read()
	require.NoError(t, err)
	printed, err := ptb.FormatTree(first, ptb.Simple)
	require.NoError(t, err)
	require.Equal(t, "(S (NP (DET the) (NN dog)) (VBZ barks))", printed)

	second, err := reader.Read()
	require.NoError(t, err)
	require.Equal(t, 1, second.NTerminals())

	_, err = reader.Read()
	require.Equal(t, io.EOF, err)
}

func TestFormatTreeRejectsDiscontinuous(t *testing.T) {
	g := tree.NewGraph()
	span, err := tree.SpanFromPositions([]int{0, 2})
	require.NoError(t, err)
	root := g.AddNode(tree.NewNonTerminal("ROOT", span))
	g.AddEdge(root, g.AddNode(tree.NewTerminal("a", "A", 0)), tree.Edge{})
	g.AddEdge(root, g.AddNode(tree.NewTerminal("c", "C", 2)), tree.Edge{})
	discontinuous := tree.NewTree(g, 2, root, tree.Nonprojective)

	_, err = ptb.FormatTree(discontinuous, ptb.Simple)
	require.ErrorIs(t, err, tree.ErrStructure)
}
