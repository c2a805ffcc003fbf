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

package conll

import "github.com/sts10/lumberjack/tree"

// FromTree projects a tree's terminals, sorted by position, into a
// sentence. The tree is not modified.
func FromTree(t *tree.Tree) Sentence {
	sentence := make(Sentence, 0, t.NTerminals())
	for _, idx := range t.Terminals() {
		terminal := t.Node(idx).(*tree.Terminal)
		token := Token{
			Form:  terminal.Form(),
			Lemma: terminal.Lemma(),
			PoS:   terminal.Label(),
		}
		if features := terminal.Features(); features.Len() > 0 {
			token.Features = features.String()
		}
		sentence = append(sentence, token)
	}
	return sentence
}

// Drain is the consuming flavor of FromTree: it moves the terminal
// strings into the sentence, leaving the tree's terminals hollow.
// Useful when the tree is discarded right after conversion and the
// corpus is large.
func Drain(t *tree.Tree) Sentence {
	sentence := make(Sentence, 0, t.NTerminals())
	for _, idx := range t.Terminals() {
		terminal := t.Node(idx).(*tree.Terminal)
		token := Token{
			Form:  terminal.SetForm(""),
			Lemma: terminal.SetLemma(""),
			PoS:   terminal.SetLabel(""),
		}
		if features := terminal.SetFeatures(nil); features.Len() > 0 {
			token.Features = features.String()
		}
		sentence = append(sentence, token)
	}
	return sentence
}
