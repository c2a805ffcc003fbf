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

package ptb

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/sts10/lumberjack/tree"
)

// Reader reads a stream of bracketed trees.
type Reader struct {
	scanner *bufio.Scanner
	dialect Dialect
	format  Format
	err     error
}

// NewReader returns a reader over r in the given dialect and format.
func NewReader(r io.Reader, dialect Dialect, format Format) *Reader {
	return &Reader{scanner: bufio.NewScanner(r), dialect: dialect, format: format}
}

// Read returns the next tree in the stream. It returns io.EOF after
// the last tree. Blank lines are skipped.
func (r *Reader) Read() (*tree.Tree, error) {
	if r.err != nil {
		return nil, r.err
	}
	text, err := r.next()
	if err != nil {
		r.err = err
		return nil, err
	}
	return ParseString(text, r.format)
}

// next collects the text of one tree from the stream.
func (r *Reader) next() (string, error) {
	var sb strings.Builder
	depth := 0
	for r.scanner.Scan() {
		line := strings.TrimSpace(r.scanner.Text())
		if line == "" {
			continue
		}
		if r.dialect == SingleLine {
			return line, nil
		}
		if sb.Len() > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteString(line)
		depth += strings.Count(line, "(") - strings.Count(line, ")")
		if depth <= 0 {
			return sb.String(), nil
		}
	}
	if err := r.scanner.Err(); err != nil {
		return "", err
	}
	if sb.Len() > 0 {
		return "", fmt.Errorf("%w: unbalanced parentheses at end of input", ErrParse)
	}
	return "", io.EOF
}

// ParseString parses a single bracketed tree.
func ParseString(s string, format Format) (*tree.Tree, error) {
	p := &parser{tokens: tokenize(s), format: format, graph: tree.NewGraph()}
	root, _, err := p.parseNode()
	if err != nil {
		return nil, err
	}
	if p.pos != len(p.tokens) {
		return nil, fmt.Errorf("%w: trailing input after tree", ErrParse)
	}
	// Bracketed notation nests, so spans are continuous by
	// construction.
	return tree.NewTree(p.graph, p.nTerminals, root, tree.Projective), nil
}

type token struct {
	// kind is '(' or ')' for brackets and 0 for atoms.
	kind byte
	text string
}

func tokenize(s string) []token {
	var tokens []token
	start := -1
	flush := func(end int) {
		if start >= 0 {
			tokens = append(tokens, token{text: s[start:end]})
			start = -1
		}
	}
	for i := 0; i < len(s); i++ {
		switch c := s[i]; c {
		case '(', ')':
			flush(i)
			tokens = append(tokens, token{kind: c, text: string(c)})
		case ' ', '\t', '\n', '\r':
			flush(i)
		default:
			if start < 0 {
				start = i
			}
		}
	}
	flush(len(s))
	return tokens
}

type parser struct {
	tokens     []token
	pos        int
	format     Format
	graph      *tree.Graph
	nTerminals int
}

func (p *parser) peek() (token, bool) {
	if p.pos >= len(p.tokens) {
		return token{}, false
	}
	return p.tokens[p.pos], true
}

func (p *parser) expect(kind byte) error {
	tok, ok := p.peek()
	if !ok {
		return fmt.Errorf("%w: unexpected end of input", ErrParse)
	}
	if tok.kind != kind {
		return fmt.Errorf("%w: expected %q, found %q", ErrParse, string(kind), tok.text)
	}
	p.pos++
	return nil
}

func (p *parser) atom() (string, error) {
	tok, ok := p.peek()
	if !ok {
		return "", fmt.Errorf("%w: unexpected end of input", ErrParse)
	}
	if tok.kind != 0 {
		return "", fmt.Errorf("%w: expected label or form, found %q", ErrParse, string(tok.kind))
	}
	p.pos++
	return tok.text, nil
}

// parseNode parses "(" label (form | node+) ")" and returns the built
// node's index together with the edge label attached to it.
func (p *parser) parseNode() (tree.NodeIndex, string, error) {
	if err := p.expect('('); err != nil {
		return 0, "", err
	}
	label, err := p.atom()
	if err != nil {
		return 0, "", err
	}
	label, edgeLabel := p.splitLabel(label)

	tok, ok := p.peek()
	if !ok {
		return 0, "", fmt.Errorf("%w: unexpected end of input", ErrParse)
	}

	if tok.kind != '(' {
		// Terminal: the remaining atom is the surface form.
		form, err := p.atom()
		if err != nil {
			return 0, "", err
		}
		if err := p.expect(')'); err != nil {
			return 0, "", err
		}
		idx := p.graph.AddNode(tree.NewTerminal(form, label, p.nTerminals))
		p.nTerminals++
		return idx, edgeLabel, nil
	}

	lower := p.nTerminals
	type childEdge struct {
		node tree.NodeIndex
		edge string
	}
	var children []childEdge
	for {
		tok, ok := p.peek()
		if !ok {
			return 0, "", fmt.Errorf("%w: unexpected end of input", ErrParse)
		}
		if tok.kind == ')' {
			p.pos++
			break
		}
		child, childEdgeLabel, err := p.parseNode()
		if err != nil {
			return 0, "", err
		}
		children = append(children, childEdge{node: child, edge: childEdgeLabel})
	}

	span, err := tree.NewContinuousSpan(lower, p.nTerminals)
	if err != nil {
		return 0, "", fmt.Errorf("%w: non-terminal %q without terminals", ErrParse, label)
	}
	idx := p.graph.AddNode(tree.NewNonTerminal(label, span))
	for _, child := range children {
		p.graph.AddEdge(idx, child.node, tree.NewEdge(child.edge))
	}
	return idx, edgeLabel, nil
}

// splitLabel separates an edge label from a node label in the TueBa
// format.
func (p *parser) splitLabel(label string) (string, string) {
	if p.format != TueBaV2 {
		return label, ""
	}
	if idx := strings.Index(label, ":"); idx >= 0 {
		return label[:idx], label[idx+1:]
	}
	return label, ""
}
