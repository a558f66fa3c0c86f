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

// Package callgraph defines call graphs over the methods of package lang and builds them with class hierarchy
// analysis (CHA).
package callgraph

import (
	"fmt"
	"sort"
	"strings"

	"github.com/awslabs/monoflow/analysis/lang"
	"github.com/awslabs/monoflow/internal/graphutil"
	"golang.org/x/exp/slices"
	"gonum.org/v1/gonum/graph/topo"
)

// Node is a reachable method of the call graph
type Node struct {
	Method *lang.Method
	// ID is the discovery rank of the method, starting at 0
	ID  int
	In  []*Edge
	Out []*Edge
}

// Edge is a call edge from a call site of the caller to a callee
type Edge struct {
	Kind   lang.CallKind
	Caller *Node
	Site   *lang.InvokeStmt
	Callee *Node
}

func (e *Edge) String() string {
	return fmt.Sprintf("%s --[%s %s]--> %s", e.Caller.Method, e.Kind, e.Site, e.Callee.Method)
}

// CallGraph is a set of reachable methods and the call edges between them. Methods and edges are never removed.
type CallGraph struct {
	entries []*lang.Method
	nodes   map[*lang.Method]*Node
	order   []*Node
	edges   []*Edge
	// callees maps call sites to their out edges
	callees map[*lang.InvokeStmt][]*Edge
}

// New returns a call graph whose reachable methods are the entries
func New(entries ...*lang.Method) *CallGraph {
	cg := &CallGraph{
		nodes:   map[*lang.Method]*Node{},
		callees: map[*lang.InvokeStmt][]*Edge{},
	}
	for _, m := range entries {
		cg.entries = append(cg.entries, m)
		cg.AddReachableMethod(m)
	}
	return cg
}

// AddReachableMethod adds m to the reachable methods and returns true if it was not already reachable
func (cg *CallGraph) AddReachableMethod(m *lang.Method) bool {
	if _, ok := cg.nodes[m]; ok {
		return false
	}
	n := &Node{Method: m, ID: len(cg.order)}
	cg.nodes[m] = n
	cg.order = append(cg.order, n)
	return true
}

// AddEdge adds a call edge from site, in caller, to callee. Both methods become reachable. It returns true if the
// edge is new.
func (cg *CallGraph) AddEdge(kind lang.CallKind, caller *lang.Method, site *lang.InvokeStmt, callee *lang.Method) bool {
	cg.AddReachableMethod(caller)
	cg.AddReachableMethod(callee)
	for _, e := range cg.callees[site] {
		if e.Callee.Method == callee {
			return false
		}
	}
	e := &Edge{Kind: kind, Caller: cg.nodes[caller], Site: site, Callee: cg.nodes[callee]}
	e.Caller.Out = append(e.Caller.Out, e)
	e.Callee.In = append(e.Callee.In, e)
	cg.callees[site] = append(cg.callees[site], e)
	cg.edges = append(cg.edges, e)
	return true
}

// Entries returns the entry methods
func (cg *CallGraph) Entries() []*lang.Method { return cg.entries }

// IsEntry returns true if m is an entry method
func (cg *CallGraph) IsEntry(m *lang.Method) bool { return slices.Contains(cg.entries, m) }

// Contains returns true if m is reachable
func (cg *CallGraph) Contains(m *lang.Method) bool {
	_, ok := cg.nodes[m]
	return ok
}

// Node returns the node of m, or nil if m is not reachable
func (cg *CallGraph) Node(m *lang.Method) *Node { return cg.nodes[m] }

// ReachableMethods returns the reachable methods in discovery order
func (cg *CallGraph) ReachableMethods() []*lang.Method {
	methods := make([]*lang.Method, len(cg.order))
	for i, n := range cg.order {
		methods[i] = n.Method
	}
	return methods
}

// Edges returns all the call edges in discovery order
func (cg *CallGraph) Edges() []*Edge { return cg.edges }

// CalleesOf returns the methods called at site
func (cg *CallGraph) CalleesOf(site *lang.InvokeStmt) []*lang.Method {
	var callees []*lang.Method
	for _, e := range cg.callees[site] {
		callees = append(callees, e.Callee.Method)
	}
	return callees
}

// CallersOf returns the call sites that call m
func (cg *CallGraph) CallersOf(m *lang.Method) []*lang.InvokeStmt {
	n := cg.nodes[m]
	if n == nil {
		return nil
	}
	var sites []*lang.InvokeStmt
	for _, e := range n.In {
		if !slices.Contains(sites, e.Site) {
			sites = append(sites, e.Site)
		}
	}
	return sites
}

// CallSitesIn returns the call sites of m
func (cg *CallGraph) CallSitesIn(m *lang.Method) []*lang.InvokeStmt {
	return m.CallSites()
}

// EdgesOutOf returns the call edges whose caller is m
func (cg *CallGraph) EdgesOutOf(m *lang.Method) []*Edge {
	if n := cg.nodes[m]; n != nil {
		return n.Out
	}
	return nil
}

// toCGraph returns the call graph as a graph over the node IDs
func (cg *CallGraph) toCGraph() graphutil.CGraph {
	labels := make([]string, len(cg.order))
	for i, n := range cg.order {
		labels[i] = n.Method.String()
	}
	edges := make([][2]int64, 0, len(cg.edges))
	for _, e := range cg.edges {
		edges = append(edges, [2]int64{int64(e.Caller.ID), int64(e.Callee.ID)})
	}
	return graphutil.NewCGraph(labels, edges)
}

// BottomUpSCCs returns the strongly connected components of the call graph, callees before callers. The methods
// of a component are in discovery order.
func (cg *CallGraph) BottomUpSCCs() [][]*lang.Method {
	var sccs [][]*lang.Method
	for _, component := range topo.TarjanSCC(cg.toCGraph()) {
		ids := make([]int, len(component))
		for i, node := range component {
			ids[i] = int(node.ID())
		}
		sort.Ints(ids)
		scc := make([]*lang.Method, len(ids))
		for i, id := range ids {
			scc[i] = cg.order[id].Method
		}
		sccs = append(sccs, scc)
	}
	return sccs
}

// RecursiveCycles returns the elementary cycles of the call graph. Each cycle starts and ends with the same method.
func (cg *CallGraph) RecursiveCycles() [][]*lang.Method {
	var cycles [][]*lang.Method
	for _, cycle := range graphutil.FindAllElementaryCycles(cg.toCGraph()) {
		methods := make([]*lang.Method, len(cycle))
		for i, id := range cycle {
			methods[i] = cg.order[id].Method
		}
		cycles = append(cycles, methods)
	}
	return cycles
}

func (cg *CallGraph) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "call graph with %d methods and %d edges\n", len(cg.order), len(cg.edges))
	for _, n := range cg.order {
		fmt.Fprintf(&b, "%s\n", n.Method)
		for _, e := range n.Out {
			fmt.Fprintf(&b, "\t%d: %s -> %s\n", e.Site.Index(), e.Kind, e.Callee.Method)
		}
	}
	return b.String()
}
