// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package graphutil

import (
	"sort"

	"gonum.org/v1/gonum/graph"
	"gonum.org/v1/gonum/graph/iterator"
)

// CGraph is a directed graph over dense integer node IDs 0..Order()-1, with a label per node. It implements both
// the yourbasic/graph Iterator interface and the gonum graph.Directed interface, so that the algorithms of both
// libraries can run on call graphs.
type CGraph struct {
	// order is the number of nodes of the full graph; subgraphs keep the order of the graph they come from
	order int

	// Labels maps node IDs to a printable label
	Labels map[int64]string

	// Keys are the IDs of the nodes of the graph, sorted
	Keys []int64

	// Edges is an adjacency matrix: Edges[x][y] means there is a directed edge from x to y
	Edges map[int64]map[int64]bool

	// reverse is the transposed adjacency matrix
	reverse map[int64]map[int64]bool
}

// NewCGraph returns a graph with nodes 0..len(labels)-1. Edges between unknown nodes are ignored.
func NewCGraph(labels []string, edges [][2]int64) CGraph {
	n := len(labels)
	c := CGraph{
		order:   n,
		Labels:  make(map[int64]string, n),
		Keys:    make([]int64, n),
		Edges:   make(map[int64]map[int64]bool, n),
		reverse: make(map[int64]map[int64]bool, n),
	}
	for i, label := range labels {
		id := int64(i)
		c.Keys[i] = id
		c.Labels[id] = label
		c.Edges[id] = map[int64]bool{}
		c.reverse[id] = map[int64]bool{}
	}
	for _, e := range edges {
		if c.has(e[0]) && c.has(e[1]) {
			c.Edges[e[0]][e[1]] = true
			c.reverse[e[1]][e[0]] = true
		}
	}
	return c
}

// Subgraph returns the subgraph of original induced by the nodes in include.
func Subgraph(original CGraph, include []int64) CGraph {
	c := CGraph{
		order:   original.order,
		Labels:  make(map[int64]string, len(include)),
		Keys:    make([]int64, len(include)),
		Edges:   make(map[int64]map[int64]bool, len(include)),
		reverse: make(map[int64]map[int64]bool, len(include)),
	}
	copy(c.Keys, include)
	sort.Slice(c.Keys, func(i, j int) bool { return c.Keys[i] < c.Keys[j] })
	for _, id := range include {
		c.Labels[id] = original.Labels[id]
		c.Edges[id] = map[int64]bool{}
		c.reverse[id] = map[int64]bool{}
	}
	for _, x := range include {
		for y := range original.Edges[x] {
			if c.has(y) {
				c.Edges[x][y] = true
				c.reverse[y][x] = true
			}
		}
	}
	return c
}

func (c CGraph) has(id int64) bool {
	_, ok := c.Labels[id]
	return ok
}

func sortedKeys(m map[int64]bool) []int64 {
	keys := make([]int64, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	return keys
}

// Order returns the number of vertices of the graph, as required by yourbasic/graph.
func (c CGraph) Order() int {
	return c.order
}

// Visit calls do for every successor of v, in increasing order, until do returns true.
func (c CGraph) Visit(v int, do func(w int, c int64) (skip bool)) (aborted bool) {
	for _, w := range sortedKeys(c.Edges[int64(v)]) {
		if do(int(w), 1) {
			return true
		}
	}
	return false
}

// Node returns the node with the given ID, or nil if it is not in the graph.
func (c CGraph) Node(id int64) graph.Node {
	if !c.has(id) {
		return nil
	}
	return CNode{id: id, label: c.Labels[id]}
}

func (c CGraph) nodes(ids []int64) graph.Nodes {
	nodes := make([]graph.Node, len(ids))
	for i, id := range ids {
		nodes[i] = CNode{id: id, label: c.Labels[id]}
	}
	return iterator.NewOrderedNodes(nodes)
}

// Nodes returns all the nodes of the graph.
func (c CGraph) Nodes() graph.Nodes {
	return c.nodes(c.Keys)
}

// From returns the successors of the node id.
func (c CGraph) From(id int64) graph.Nodes {
	return c.nodes(sortedKeys(c.Edges[id]))
}

// To returns the predecessors of the node id.
func (c CGraph) To(id int64) graph.Nodes {
	return c.nodes(sortedKeys(c.reverse[id]))
}

// HasEdgeBetween returns true if there is an edge in either direction between xid and yid.
func (c CGraph) HasEdgeBetween(xid, yid int64) bool {
	return c.Edges[xid][yid] || c.Edges[yid][xid]
}

// HasEdgeFromTo returns true if there is an edge from uid to vid.
func (c CGraph) HasEdgeFromTo(uid, vid int64) bool {
	return c.Edges[uid][vid]
}

// Edge returns the edge from uid to vid, or nil if there is none.
func (c CGraph) Edge(uid, vid int64) graph.Edge {
	if !c.Edges[uid][vid] {
		return nil
	}
	return CEdge{from: CNode{uid, c.Labels[uid]}, to: CNode{vid, c.Labels[vid]}}
}

// CNode is a labelled node of a CGraph.
type CNode struct {
	id    int64
	label string
}

// ID implements graph.Node.
func (n CNode) ID() int64 {
	return n.id
}

func (n CNode) String() string {
	return n.label
}

// CEdge is a directed edge of a CGraph.
type CEdge struct {
	from CNode
	to   CNode
}

// From implements graph.Edge.
func (e CEdge) From() graph.Node {
	return e.from
}

// To implements graph.Edge.
func (e CEdge) To() graph.Node {
	return e.to
}

// ReversedEdge implements graph.Edge.
func (e CEdge) ReversedEdge() graph.Edge {
	return CEdge{from: e.to, to: e.from}
}
