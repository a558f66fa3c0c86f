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

// Package cfg implements statement-level control-flow graphs over the IR of package lang.
//
// A CFG has one node per statement of its method plus two synthetic nop nodes: the entry, with index -1, and the
// exit, with index len(method.Stmts). Edges are added explicitly and carry a kind; branch edges let clients select
// the successors that are feasible once a condition is known.
package cfg

import (
	"fmt"
	"strings"

	"github.com/awslabs/monoflow/analysis/lang"
	fn "github.com/awslabs/monoflow/internal/funcutil"
)

// EdgeKind is the kind of a control-flow edge
type EdgeKind int

const (
	// Normal is an unconditional edge
	Normal EdgeKind = iota
	// IfTrue is taken when the condition of an if statement is true
	IfTrue
	// IfFalse is taken when the condition of an if statement is false
	IfFalse
	// SwitchCase is taken when the switch variable is equal to the case value of the edge
	SwitchCase
	// SwitchDefault is taken when the switch variable matches no case value
	SwitchDefault
)

func (k EdgeKind) String() string {
	switch k {
	case Normal:
		return "normal"
	case IfTrue:
		return "if-true"
	case IfFalse:
		return "if-false"
	case SwitchCase:
		return "case"
	case SwitchDefault:
		return "default"
	default:
		return fmt.Sprintf("edge-kind(%d)", int(k))
	}
}

// Edge is a control-flow edge. CaseValue is only meaningful for SwitchCase edges.
type Edge struct {
	Kind      EdgeKind
	Source    lang.Stmt
	Target    lang.Stmt
	CaseValue int32
}

func (e *Edge) String() string {
	if e.Kind == SwitchCase {
		return fmt.Sprintf("%d -[case %d]-> %d", e.Source.Index(), e.CaseValue, e.Target.Index())
	}
	return fmt.Sprintf("%d -[%s]-> %d", e.Source.Index(), e.Kind, e.Target.Index())
}

// CFG is the control-flow graph of a method
type CFG struct {
	method   *lang.Method
	entry    *lang.NopStmt
	exit     *lang.NopStmt
	nodes    []lang.Stmt
	inEdges  map[lang.Stmt][]*Edge
	outEdges map[lang.Stmt][]*Edge
}

// New returns the control-flow graph of m without any edge. The statements of m must not change afterwards.
func New(m *lang.Method) *CFG {
	g := &CFG{
		method:   m,
		entry:    lang.NewNop(-1),
		exit:     lang.NewNop(len(m.Stmts)),
		inEdges:  map[lang.Stmt][]*Edge{},
		outEdges: map[lang.Stmt][]*Edge{},
	}
	g.nodes = make([]lang.Stmt, 0, len(m.Stmts)+2)
	g.nodes = append(g.nodes, g.entry)
	g.nodes = append(g.nodes, m.Stmts...)
	g.nodes = append(g.nodes, g.exit)
	for _, n := range g.nodes {
		g.inEdges[n] = nil
		g.outEdges[n] = nil
	}
	return g
}

// Method returns the method of the graph
func (g *CFG) Method() *lang.Method { return g.method }

// Entry returns the synthetic entry node
func (g *CFG) Entry() lang.Stmt { return g.entry }

// Exit returns the synthetic exit node
func (g *CFG) Exit() lang.Stmt { return g.exit }

// Nodes returns the entry, the statements in program order and the exit
func (g *CFG) Nodes() []lang.Stmt { return g.nodes }

// Contains returns true if n is a node of the graph
func (g *CFG) Contains(n lang.Stmt) bool {
	_, ok := g.outEdges[n]
	return ok
}

// IsEntry returns true if n is the entry node
func (g *CFG) IsEntry(n lang.Stmt) bool { return n == lang.Stmt(g.entry) }

// IsExit returns true if n is the exit node
func (g *CFG) IsExit(n lang.Stmt) bool { return n == lang.Stmt(g.exit) }

// AddEdge adds an edge of the given kind from src to dst. It panics if either node is not in the graph, or if the
// kind is SwitchCase, which requires a case value (see AddCaseEdge).
func (g *CFG) AddEdge(kind EdgeKind, src lang.Stmt, dst lang.Stmt) *Edge {
	if kind == SwitchCase {
		panic("cfg: switch case edges must be added with AddCaseEdge")
	}
	return g.addEdge(&Edge{Kind: kind, Source: src, Target: dst})
}

// AddCaseEdge adds a SwitchCase edge from src to dst labelled with value
func (g *CFG) AddCaseEdge(src lang.Stmt, dst lang.Stmt, value int32) *Edge {
	return g.addEdge(&Edge{Kind: SwitchCase, Source: src, Target: dst, CaseValue: value})
}

func (g *CFG) addEdge(e *Edge) *Edge {
	if !g.Contains(e.Source) || !g.Contains(e.Target) {
		panic(fmt.Sprintf("cfg: edge %s has an endpoint outside of the graph of %s", e, g.method))
	}
	g.outEdges[e.Source] = append(g.outEdges[e.Source], e)
	g.inEdges[e.Target] = append(g.inEdges[e.Target], e)
	return e
}

// Chain adds Normal edges between consecutive nodes of the argument list
func (g *CFG) Chain(nodes ...lang.Stmt) {
	for i := 0; i+1 < len(nodes); i++ {
		g.AddEdge(Normal, nodes[i], nodes[i+1])
	}
}

// OutEdges returns the edges leaving n, in insertion order. It panics if n is not in the graph.
func (g *CFG) OutEdges(n lang.Stmt) []*Edge {
	edges, ok := g.outEdges[n]
	if !ok {
		panic(fmt.Sprintf("cfg: %s is not a node of the graph of %s", n, g.method))
	}
	return edges
}

// InEdges returns the edges entering n, in insertion order. It panics if n is not in the graph.
func (g *CFG) InEdges(n lang.Stmt) []*Edge {
	edges, ok := g.inEdges[n]
	if !ok {
		panic(fmt.Sprintf("cfg: %s is not a node of the graph of %s", n, g.method))
	}
	return edges
}

// Succs returns the distinct successors of n
func (g *CFG) Succs(n lang.Stmt) []lang.Stmt {
	return fn.Distinct(fn.Map(g.OutEdges(n), func(e *Edge) lang.Stmt { return e.Target }))
}

// Preds returns the distinct predecessors of n
func (g *CFG) Preds(n lang.Stmt) []lang.Stmt {
	return fn.Distinct(fn.Map(g.InEdges(n), func(e *Edge) lang.Stmt { return e.Source }))
}

func (g *CFG) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "cfg of %s\n", g.method)
	for _, n := range g.nodes {
		fmt.Fprintf(&b, "%d: %s\n", n.Index(), n)
		for _, e := range g.outEdges[n] {
			fmt.Fprintf(&b, "\t%s\n", e)
		}
	}
	return b.String()
}
