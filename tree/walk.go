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

package tree

// Visitor is the interface for tree traversals. Pre is called before
// a node's children are traversed, Post after.
type Visitor interface {
	// Pre takes a node index for processing before its children are
	// traversed and may return an error to abort the walk.
	Pre(t *Tree, idx NodeIndex) error
	// Post takes a node index for processing after its children are
	// traversed and may return an error to abort the walk.
	Post(t *Tree, idx NodeIndex) error
}

// Walk traverses the subtree rooted at idx depth-first, visiting
// children in span order, and calls the visitor around each node. The
// visitor must not mutate the tree's structure during the walk;
// collect indices first (e.g. with PostOrder) when the traversal is
// meant to drive mutation.
func Walk(t *Tree, idx NodeIndex, v Visitor) error {
	if err := v.Pre(t, idx); err != nil {
		return err
	}
	for _, child := range t.sortedChildren(idx) {
		if err := Walk(t, child.Node, v); err != nil {
			return err
		}
	}
	return v.Post(t, idx)
}

// postOrderVisitor collects node indices in post order.
type postOrderVisitor struct {
	order []NodeIndex
}

// Pre implementation for postOrderVisitor.
func (v *postOrderVisitor) Pre(*Tree, NodeIndex) error {
	return nil
}

// Post implementation for postOrderVisitor.
func (v *postOrderVisitor) Post(_ *Tree, idx NodeIndex) error {
	v.order = append(v.order, idx)
	return nil
}

// PostOrder returns the indices of the subtree rooted at idx in
// post order: every node appears after all of its descendants. The
// slice is collected before any mutation, so it can drive structural
// edits.
func PostOrder(t *Tree, idx NodeIndex) []NodeIndex {
	v := &postOrderVisitor{}
	// The collecting visitor never fails.
	_ = Walk(t, idx, v)
	return v.order
}
