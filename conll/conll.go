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

// Package conll projects the terminals of a constituency tree into a
// dependency-style token sequence and writes it in the CoNLL-X tab
// format.
package conll

import (
	"fmt"
	"io"
	"strings"
)

// Token is a single dependency token. Empty Lemma and Features mean
// the field is absent.
type Token struct {
	Form     string
	Lemma    string
	PoS      string
	Features string
}

// Sentence is a sequence of tokens in terminal-position order.
type Sentence []Token

// _column is the CoNLL-X placeholder for absent fields.
const _column = "_"

// WriteTo writes the sentence in the ten-column CoNLL-X format
// followed by a blank line.
func (s Sentence) WriteTo(w io.Writer) error {
	var sb strings.Builder
	for i, token := range s {
		fmt.Fprintf(&sb, "%d\t%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			i+1,
			orAbsent(token.Form),
			orAbsent(token.Lemma),
			orAbsent(token.PoS),
			orAbsent(token.PoS),
			orAbsent(token.Features),
			_column, _column, _column, _column)
	}
	sb.WriteByte('\n')
	_, err := io.WriteString(w, sb.String())
	return err
}

func orAbsent(field string) string {
	if field == "" {
		return _column
	}
	return field
}
