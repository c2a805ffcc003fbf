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

import "errors"

var (
	// ErrSpan reports an attempt to build a span with a non-positive
	// extent or from an empty position set.
	ErrSpan = errors.New("invalid span")

	// ErrStructure reports a tree shape violation: a terminal without
	// a parent, a terminal dominating other nodes, or a non-root node
	// without an incoming edge.
	ErrStructure = errors.New("structural error")

	// ErrCountMismatch reports a supplied sequence whose length does
	// not match the terminal count.
	ErrCountMismatch = errors.New("count mismatch")
)
