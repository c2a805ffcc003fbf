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

// Edge is the weight on a parent-to-child edge, carrying an optional
// edge label (grammatical function). The zero Edge is unlabeled.
type Edge struct {
	label string
}

// NewEdge returns an edge carrying the given label.
func NewEdge(label string) Edge {
	return Edge{label: label}
}

// Label returns the edge label, or the empty string if the edge is
// unlabeled.
func (e Edge) Label() string {
	return e.label
}

// NodeIndex is a stable handle to a node in a Graph. It stays valid
// across arbitrary removals of other nodes and is invalidated only by
// removal of the node it refers to.
type NodeIndex int

// EdgeIndex is a stable handle to an edge in a Graph.
type EdgeIndex int

type nodeSlot struct {
	node    Node
	present bool
}

type edgeSlot struct {
	edge     Edge
	from, to NodeIndex
	present  bool
}

// Graph is a directed graph over Nodes backed by slot arenas with
// freelists, so indices survive removals. It is the low-level store
// underneath Tree; surgery operations reach it through Tree.Graph.
type Graph struct {
	nodes     []nodeSlot
	edges     []edgeSlot
	freeNodes []NodeIndex
	freeEdges []EdgeIndex
}

// NewGraph returns an empty graph.
func NewGraph() *Graph {
	return &Graph{}
}

// AddNode inserts a node and returns its index.
func (g *Graph) AddNode(n Node) NodeIndex {
	if free := len(g.freeNodes); free > 0 {
		idx := g.freeNodes[free-1]
		g.freeNodes = g.freeNodes[:free-1]
		g.nodes[idx] = nodeSlot{node: n, present: true}
		return idx
	}
	g.nodes = append(g.nodes, nodeSlot{node: n, present: true})
	return NodeIndex(len(g.nodes) - 1)
}

// Node returns the node stored at idx, or nil if the slot is empty.
func (g *Graph) Node(idx NodeIndex) Node {
	if int(idx) < 0 || int(idx) >= len(g.nodes) || !g.nodes[idx].present {
		return nil
	}
	return g.nodes[idx].node
}

// RemoveNode deletes a node together with its incident edges and
// returns the removed node. The second return value is false if the
// slot was already empty.
func (g *Graph) RemoveNode(idx NodeIndex) (Node, bool) {
	if g.Node(idx) == nil {
		return nil, false
	}
	for e := range g.edges {
		if g.edges[e].present && (g.edges[e].from == idx || g.edges[e].to == idx) {
			g.RemoveEdge(EdgeIndex(e))
		}
	}
	node := g.nodes[idx].node
	g.nodes[idx] = nodeSlot{}
	g.freeNodes = append(g.freeNodes, idx)
	return node, true
}

// AddEdge inserts a directed edge from u to v with the given weight
// and returns its index.
func (g *Graph) AddEdge(u, v NodeIndex, e Edge) EdgeIndex {
	if free := len(g.freeEdges); free > 0 {
		idx := g.freeEdges[free-1]
		g.freeEdges = g.freeEdges[:free-1]
		g.edges[idx] = edgeSlot{edge: e, from: u, to: v, present: true}
		return idx
	}
	g.edges = append(g.edges, edgeSlot{edge: e, from: u, to: v, present: true})
	return EdgeIndex(len(g.edges) - 1)
}

// UpdateEdge replaces the weight of an existing edge from u to v, or
// adds the edge if none exists. The edge's index is returned.
func (g *Graph) UpdateEdge(u, v NodeIndex, e Edge) EdgeIndex {
	for i := range g.edges {
		if g.edges[i].present && g.edges[i].from == u && g.edges[i].to == v {
			g.edges[i].edge = e
			return EdgeIndex(i)
		}
	}
	return g.AddEdge(u, v, e)
}

// Edge returns the weight of the edge at idx. The second return value
// is false if the slot is empty.
func (g *Graph) Edge(idx EdgeIndex) (Edge, bool) {
	if int(idx) < 0 || int(idx) >= len(g.edges) || !g.edges[idx].present {
		return Edge{}, false
	}
	return g.edges[idx].edge, true
}

// Endpoints returns the source and target of the edge at idx.
func (g *Graph) Endpoints(idx EdgeIndex) (from, to NodeIndex, ok bool) {
	if _, ok := g.Edge(idx); !ok {
		return 0, 0, false
	}
	return g.edges[idx].from, g.edges[idx].to, true
}

// RemoveEdge deletes an edge and returns its weight. The second
// return value is false if the slot was already empty.
func (g *Graph) RemoveEdge(idx EdgeIndex) (Edge, bool) {
	e, ok := g.Edge(idx)
	if !ok {
		return Edge{}, false
	}
	g.edges[idx] = edgeSlot{}
	g.freeEdges = append(g.freeEdges, idx)
	return e, true
}

// NodeIndices returns the indices of all present nodes in ascending
// order. The slice is owned by the caller and stays valid across
// mutations.
func (g *Graph) NodeIndices() []NodeIndex {
	indices := make([]NodeIndex, 0, g.NodeCount())
	for i := range g.nodes {
		if g.nodes[i].present {
			indices = append(indices, NodeIndex(i))
		}
	}
	return indices
}

// NodeCount returns the number of present nodes.
func (g *Graph) NodeCount() int {
	return len(g.nodes) - len(g.freeNodes)
}

// EdgeCount returns the number of present edges.
func (g *Graph) EdgeCount() int {
	return len(g.edges) - len(g.freeEdges)
}

// FirstIncoming returns the first incoming edge of v. A well-formed
// tree has at most one.
func (g *Graph) FirstIncoming(v NodeIndex) (EdgeIndex, bool) {
	for i := range g.edges {
		if g.edges[i].present && g.edges[i].to == v {
			return EdgeIndex(i), true
		}
	}
	return 0, false
}

// Outgoing returns the outgoing edges of u in insertion-slot order.
func (g *Graph) Outgoing(u NodeIndex) []EdgeIndex {
	var out []EdgeIndex
	for i := range g.edges {
		if g.edges[i].present && g.edges[i].from == u {
			out = append(out, EdgeIndex(i))
		}
	}
	return out
}

// clone returns a deep copy of the graph. Node indices carry over
// unchanged.
func (g *Graph) clone() *Graph {
	clone := &Graph{
		nodes:     make([]nodeSlot, len(g.nodes)),
		edges:     make([]edgeSlot, len(g.edges)),
		freeNodes: append([]NodeIndex(nil), g.freeNodes...),
		freeEdges: append([]EdgeIndex(nil), g.freeEdges...),
	}
	for i, slot := range g.nodes {
		if slot.present {
			clone.nodes[i] = nodeSlot{node: cloneNode(slot.node), present: true}
		}
	}
	copy(clone.edges, g.edges)
	return clone
}
