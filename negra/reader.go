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

// Package negra reads constituency trees from the column-based NEGRA
// export format.
package negra

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"go.uber.org/multierr"

	"github.com/sts10/lumberjack/tree"
)

// ErrParse reports malformed NEGRA export input.
var ErrParse = errors.New("invalid negra export")

// rootLabel is the label of the virtual root covering a sentence.
// Nodes with parent id 0 attach to it.
const rootLabel = "VROOT"

const (
	_bosPrefix = "#BOS"
	_eosPrefix = "#EOS"
	// _absent marks an empty lemma, morphology, or edge column.
	_absent = "--"
)

// Reader reads sentences from a NEGRA export stream. Both the export
// v3 column layout (without lemma) and v4 (with lemma) are accepted.
type Reader struct {
	scanner *bufio.Scanner
	line    int
	err     error
}

// NewReader returns a reader over r.
func NewReader(r io.Reader) *Reader {
	return &Reader{scanner: bufio.NewScanner(r)}
}

// Read returns the tree of the next sentence. It returns io.EOF after
// the last sentence. A malformed row or sentence marker ends the read
// at the first error; errors found while wiring a sentence (unknown
// parent ids, cycles, non-terminals without terminals) are aggregated.
// Errors about a single row carry its line number.
func (r *Reader) Read() (*tree.Tree, error) {
	if r.err != nil {
		return nil, r.err
	}
	t, err := r.read()
	if err != nil {
		r.err = err
		return nil, err
	}
	return t, nil
}

// terminalLine is a parsed terminal row.
type terminalLine struct {
	form     string
	lemma    string
	tag      string
	morph    string
	edge     string
	parent   string
	line     int
	position int
}

// ntLine is a parsed non-terminal row ("#5xx ...").
type ntLine struct {
	label  string
	morph  string
	edge   string
	parent string
	line   int
}

type sentence struct {
	id        string
	terminals []terminalLine
	nts       map[string]*ntLine
	ntOrder   []string
}

func (r *Reader) read() (*tree.Tree, error) {
	sent, err := r.collect()
	if err != nil {
		return nil, err
	}
	return buildTree(sent)
}

// collect scans up to the next #BOS marker and gathers the rows of
// that sentence until its #EOS marker.
func (r *Reader) collect() (*sentence, error) {
	var sent *sentence
	for r.scanner.Scan() {
		r.line++
		line := strings.TrimSpace(r.scanner.Text())
		if line == "" {
			continue
		}
		fields := strings.Fields(line)

		switch {
		case strings.HasPrefix(line, _bosPrefix):
			if sent != nil {
				return nil, fmt.Errorf("%w: line %d: %s inside sentence %s", ErrParse, r.line, _bosPrefix, sent.id)
			}
			if len(fields) < 2 {
				return nil, fmt.Errorf("%w: line %d: %s without sentence id", ErrParse, r.line, _bosPrefix)
			}
			sent = &sentence{id: fields[1], nts: make(map[string]*ntLine)}
		case strings.HasPrefix(line, _eosPrefix):
			if sent == nil {
				return nil, fmt.Errorf("%w: line %d: %s outside sentence", ErrParse, r.line, _eosPrefix)
			}
			if len(fields) < 2 || fields[1] != sent.id {
				return nil, fmt.Errorf("%w: line %d: %s does not close sentence %s", ErrParse, r.line, _eosPrefix, sent.id)
			}
			return sent, nil
		case sent == nil:
			// Preamble (%% comments, format declarations) outside
			// sentences is skipped.
			continue
		case strings.HasPrefix(line, "#"):
			if err := r.addNonTerminal(sent, fields); err != nil {
				return nil, err
			}
		default:
			if err := r.addTerminal(sent, fields); err != nil {
				return nil, err
			}
		}
	}
	if err := r.scanner.Err(); err != nil {
		return nil, err
	}
	if sent != nil {
		return nil, fmt.Errorf("%w: sentence %s not closed by %s", ErrParse, sent.id, _eosPrefix)
	}
	return nil, io.EOF
}

func (r *Reader) addTerminal(sent *sentence, fields []string) error {
	var term terminalLine
	switch {
	case len(fields) >= 6:
		term = terminalLine{form: fields[0], lemma: fields[1], tag: fields[2], morph: fields[3], edge: fields[4], parent: fields[5]}
	case len(fields) == 5:
		term = terminalLine{form: fields[0], tag: fields[1], morph: fields[2], edge: fields[3], parent: fields[4]}
	default:
		return fmt.Errorf("%w: line %d: terminal row with %d columns", ErrParse, r.line, len(fields))
	}
	term.line = r.line
	term.position = len(sent.terminals)
	sent.terminals = append(sent.terminals, term)
	return nil
}

func (r *Reader) addNonTerminal(sent *sentence, fields []string) error {
	id := strings.TrimPrefix(fields[0], "#")
	var nt ntLine
	switch {
	case len(fields) >= 6:
		nt = ntLine{label: fields[2], morph: fields[3], edge: fields[4], parent: fields[5]}
	case len(fields) == 5:
		nt = ntLine{label: fields[1], morph: fields[2], edge: fields[3], parent: fields[4]}
	default:
		return fmt.Errorf("%w: line %d: non-terminal row with %d columns", ErrParse, r.line, len(fields))
	}
	nt.line = r.line
	if _, ok := sent.nts[id]; ok {
		return fmt.Errorf("%w: line %d: duplicate non-terminal id %s", ErrParse, r.line, id)
	}
	sent.nts[id] = &nt
	sent.ntOrder = append(sent.ntOrder, id)
	return nil
}

// buildTree wires a collected sentence into a tree under a virtual
// root.
func buildTree(sent *sentence) (*tree.Tree, error) {
	if len(sent.terminals) == 0 {
		return nil, fmt.Errorf("%w: sentence %s has no terminals", ErrParse, sent.id)
	}

	g := tree.NewGraph()
	rootSpan, err := tree.NewContinuousSpan(0, len(sent.terminals))
	if err != nil {
		return nil, err
	}
	root := g.AddNode(tree.NewNonTerminal(rootLabel, rootSpan))

	// Non-terminal spans are derived after wiring; create the nodes
	// with a placeholder span first.
	indices := make(map[string]tree.NodeIndex, len(sent.nts))
	for _, id := range sent.ntOrder {
		indices[id] = g.AddNode(tree.NewNonTerminal(sent.nts[id].label, rootSpan))
	}

	// parentOf resolves a parent id to a node, so both terminals and
	// non-terminals attach the same way.
	var errs error
	parentOf := func(id string, line int) (tree.NodeIndex, bool) {
		if id == "0" {
			return root, true
		}
		idx, ok := indices[id]
		if !ok {
			errs = multierr.Append(errs, fmt.Errorf("%w: line %d: unknown parent id %s", ErrParse, line, id))
		}
		return idx, ok
	}

	// coverage accumulates, per non-terminal id, the terminal
	// positions it dominates.
	coverage := make(map[string][]int, len(sent.nts))
	for _, term := range sent.terminals {
		parent, ok := parentOf(term.parent, term.line)
		if !ok {
			continue
		}
		terminal := tree.NewTerminal(term.form, term.tag, term.position)
		if term.lemma != "" && term.lemma != _absent {
			terminal.SetLemma(term.lemma)
		}
		if term.morph != _absent && term.morph != "" {
			terminal.SetFeatures(tree.ParseFeatures(term.morph))
		}
		g.AddEdge(parent, g.AddNode(terminal), edgeWeight(term.edge))

		// Climb the parent-id chain, adding this position to every
		// dominating non-terminal.
		id := term.parent
		for steps := 0; id != "0"; steps++ {
			if steps > len(sent.nts) {
				errs = multierr.Append(errs, fmt.Errorf("%w: line %d: cycle through non-terminal %s", ErrParse, term.line, id))
				break
			}
			nt, ok := sent.nts[id]
			if !ok {
				break
			}
			coverage[id] = append(coverage[id], term.position)
			id = nt.parent
		}
	}

	projectivity := tree.Projective
	for _, id := range sent.ntOrder {
		nt := sent.nts[id]
		parent, ok := parentOf(nt.parent, nt.line)
		if !ok {
			continue
		}
		g.AddEdge(parent, indices[id], edgeWeight(nt.edge))

		span, err := tree.SpanFromPositions(coverage[id])
		if err != nil {
			errs = multierr.Append(errs, fmt.Errorf("%w: line %d: non-terminal %s dominates no terminals", ErrParse, nt.line, id))
			continue
		}
		if span.Discontinuous() {
			projectivity = tree.Nonprojective
		}
		g.Node(indices[id]).(*tree.NonTerminal).SetSpan(span)
		if nt.morph != _absent && nt.morph != "" {
			g.Node(indices[id]).(*tree.NonTerminal).SetFeatures(tree.ParseFeatures(nt.morph))
		}
	}
	if errs != nil {
		return nil, fmt.Errorf("sentence %s: %w", sent.id, errs)
	}

	return tree.NewTree(g, len(sent.terminals), root, projectivity), nil
}

func edgeWeight(edge string) tree.Edge {
	if edge == _absent || edge == "" {
		return tree.Edge{}
	}
	return tree.NewEdge(edge)
}
