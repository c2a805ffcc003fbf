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

// Package ptb reads and writes constituency trees in Penn
// Treebank-style bracketed notation.
package ptb

import "errors"

// Format selects how node labels are read and written.
type Format int

const (
	// Simple reads and writes bare labels.
	Simple Format = iota
	// TueBaV2 additionally carries edge labels: a node label of the
	// form "label:edge" attaches "edge" to the node's incoming edge,
	// and the writer re-emits "label:edge" where an edge label is
	// present.
	TueBaV2
)

// Dialect selects how trees are delimited in a stream.
type Dialect int

const (
	// SingleLine expects one tree per line.
	SingleLine Dialect = iota
	// MultiLine expects pretty-printed trees spanning several lines,
	// delimited by balanced parentheses.
	MultiLine
)

// ErrParse reports malformed bracketed input.
var ErrParse = errors.New("invalid bracketed tree")
