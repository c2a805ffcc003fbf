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
	"fmt"
	"io"
	"strings"

	"golang.org/x/exp/slices"

	"github.com/sts10/lumberjack/tree"
)

// FormatTree linearizes a tree into a single-line bracketed string.
// It fails on trees with discontinuous spans; projectivize first.
func FormatTree(t *tree.Tree, format Format) (string, error) {
	var sb strings.Builder
	if err := formatNode(t, t.Root(), "", format, &sb); err != nil {
		return "", err
	}
	return sb.String(), nil
}

func formatNode(t *tree.Tree, idx tree.NodeIndex, edgeLabel string, format Format, sb *strings.Builder) error {
	node := t.Node(idx)
	sb.WriteByte('(')
	sb.WriteString(node.Label())
	if format == TueBaV2 && edgeLabel != "" {
		sb.WriteByte(':')
		sb.WriteString(edgeLabel)
	}

	if terminal, ok := node.(*tree.Terminal); ok {
		sb.WriteByte(' ')
		sb.WriteString(terminal.Form())
		sb.WriteByte(')')
		return nil
	}

	if node.Span().Discontinuous() {
		return fmt.Errorf("%w: cannot linearize discontinuous constituent %s", tree.ErrStructure, node)
	}
	children := t.Children(idx)
	slices.SortFunc(children, func(a, b tree.ChildEdge) bool {
		return t.Node(a.Node).Span().Lower() < t.Node(b.Node).Span().Lower()
	})
	for _, child := range children {
		edge, _ := t.Graph().Edge(child.Edge)
		sb.WriteByte(' ')
		if err := formatNode(t, child.Node, edge.Label(), format, sb); err != nil {
			return err
		}
	}
	sb.WriteByte(')')
	return nil
}

// Writer writes trees as bracketed lines.
type Writer struct {
	w      io.Writer
	format Format
}

// NewWriter returns a writer emitting one tree per line in the given
// format.
func NewWriter(w io.Writer, format Format) *Writer {
	return &Writer{w: w, format: format}
}

// Write linearizes a tree and writes it followed by a newline.
func (w *Writer) Write(t *tree.Tree) error {
	s, err := FormatTree(t, w.format)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w.w, s)
	return err
}
