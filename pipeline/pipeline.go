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

// Package pipeline applies a configured sequence of structural tree
// operations to every tree of a corpus.
package pipeline

import (
	"fmt"

	"github.com/sts10/lumberjack/tree"
)

// Op is a single configured tree operation.
type Op interface {
	// Name returns the operation name used in configuration files.
	Name() string
	// Apply runs the operation on a tree, mutating it in place.
	Apply(t *tree.Tree) error
}

// Run applies the ops to a tree in order, stopping at the first
// failure.
func Run(ops []Op, t *tree.Tree) error {
	for _, op := range ops {
		if err := op.Apply(t); err != nil {
			return fmt.Errorf("%s: %w", op.Name(), err)
		}
	}
	return nil
}

// CollapseUnaryChains collapses unary chains, joining labels with
// Delim.
type CollapseUnaryChains struct {
	Delim string
}

// Name implementation for CollapseUnaryChains.
func (o CollapseUnaryChains) Name() string { return "collapse_unary_chains" }

// Apply implementation for CollapseUnaryChains.
func (o CollapseUnaryChains) Apply(t *tree.Tree) error {
	return t.CollapseUnaryChains(o.Delim)
}

// RestoreUnaryChains restores unary chains collapsed with Delim.
type RestoreUnaryChains struct {
	Delim string
}

// Name implementation for RestoreUnaryChains.
func (o RestoreUnaryChains) Name() string { return "restore_unary_chains" }

// Apply implementation for RestoreUnaryChains.
func (o RestoreUnaryChains) Apply(t *tree.Tree) error {
	return t.RestoreUnaryChains(o.Delim)
}

// FilterNonTerminals removes non-terminals not accepted by the label
// set.
type FilterNonTerminals struct {
	Labels tree.LabelSet
}

// Name implementation for FilterNonTerminals.
func (o FilterNonTerminals) Name() string { return "filter_nonterminals" }

// Apply implementation for FilterNonTerminals.
func (o FilterNonTerminals) Apply(t *tree.Tree) error {
	return t.FilterNonTerminals(o.Labels)
}

// InsertIntermediate inserts nodes labeled InsertionLabel above
// terminals whose parent is not accepted by the label set.
type InsertIntermediate struct {
	Labels         tree.LabelSet
	InsertionLabel string
}

// Name implementation for InsertIntermediate.
func (o InsertIntermediate) Name() string { return "insert_intermediate" }

// Apply implementation for InsertIntermediate.
func (o InsertIntermediate) Apply(t *tree.Tree) error {
	return t.InsertIntermediate(o.Labels, o.InsertionLabel)
}

// AnnotateParentTag stores each terminal's parent label under the
// Feature key.
type AnnotateParentTag struct {
	Feature string
}

// Name implementation for AnnotateParentTag.
func (o AnnotateParentTag) Name() string { return "annotate_parent_tag" }

// Apply implementation for AnnotateParentTag.
func (o AnnotateParentTag) Apply(t *tree.Tree) error {
	return t.AnnotateParentTag(o.Feature)
}
