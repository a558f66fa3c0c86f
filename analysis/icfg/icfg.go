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

// Package icfg builds interprocedural control-flow graphs: the control-flow graphs of the reachable methods of a
// call graph, connected by call and return edges.
package icfg

import (
	"fmt"
	"strings"

	"github.com/awslabs/monoflow/analysis/callgraph"
	"github.com/awslabs/monoflow/analysis/cfg"
	"github.com/awslabs/monoflow/analysis/config"
	"github.com/awslabs/monoflow/analysis/lang"
	fn "github.com/awslabs/monoflow/internal/funcutil"
)

// EdgeKind is the kind of an interprocedural edge
type EdgeKind int

const (
	// Normal is an intraprocedural edge that does not leave a call site
	Normal EdgeKind = iota
	// CallToReturn goes from a call site to the statement following it in the caller
	CallToReturn
	// Call goes from a call site to the entry of a callee
	Call
	// Return goes from the exit of a callee to a statement following the call site
	Return
)

func (k EdgeKind) String() string {
	switch k {
	case Normal:
		return "normal"
	case CallToReturn:
		return "call-to-return"
	case Call:
		return "call"
	case Return:
		return "return"
	default:
		return fmt.Sprintf("icfg-edge-kind(%d)", int(k))
	}
}

// Edge is an edge of the interprocedural control-flow graph. CallSite is set for every edge except Normal edges;
// Callee is set for Call and Return edges.
type Edge struct {
	Kind     EdgeKind
	Source   lang.Stmt
	Target   lang.Stmt
	CallSite *lang.InvokeStmt
	Callee   *lang.Method
}

func (e *Edge) String() string {
	return fmt.Sprintf("%s -[%s]-> %s", e.Source, e.Kind, e.Target)
}

// ICFG is an interprocedural control-flow graph. It is immutable once built.
type ICFG struct {
	callGraph *callgraph.CallGraph
	cfgs      map[*lang.Method]*cfg.CFG
	nodes     []lang.Stmt
	methodOf  map[lang.Stmt]*lang.Method
	inEdges   map[lang.Stmt][]*Edge
	outEdges  map[lang.Stmt][]*Edge
}

// Build connects the control-flow graphs of the reachable methods of cg. cfgOf must return the control-flow graph
// of every reachable method.
func Build(cg *callgraph.CallGraph, cfgOf func(*lang.Method) *cfg.CFG, logger *config.LogGroup) *ICFG {
	g := &ICFG{
		callGraph: cg,
		cfgs:      map[*lang.Method]*cfg.CFG{},
		methodOf:  map[lang.Stmt]*lang.Method{},
		inEdges:   map[lang.Stmt][]*Edge{},
		outEdges:  map[lang.Stmt][]*Edge{},
	}
	methods := cg.ReachableMethods()
	for _, m := range methods {
		mcfg := cfgOf(m)
		if mcfg == nil || mcfg.Method() != m {
			panic(fmt.Sprintf("icfg: no control-flow graph for %s", m))
		}
		g.cfgs[m] = mcfg
		for _, n := range mcfg.Nodes() {
			g.nodes = append(g.nodes, n)
			g.methodOf[n] = m
			g.inEdges[n] = nil
			g.outEdges[n] = nil
		}
	}
	for _, m := range methods {
		mcfg := g.cfgs[m]
		for _, n := range mcfg.Nodes() {
			site, isCall := n.(*lang.InvokeStmt)
			for _, e := range mcfg.OutEdges(n) {
				if isCall {
					g.addEdge(&Edge{Kind: CallToReturn, Source: n, Target: e.Target, CallSite: site})
				} else {
					g.addEdge(&Edge{Kind: Normal, Source: n, Target: e.Target})
				}
			}
			if !isCall {
				continue
			}
			for _, callee := range cg.CalleesOf(site) {
				calleeCFG := g.cfgs[callee]
				g.addEdge(&Edge{Kind: Call, Source: site, Target: calleeCFG.Entry(), CallSite: site, Callee: callee})
				for _, returnSite := range mcfg.Succs(site) {
					g.addEdge(&Edge{Kind: Return, Source: calleeCFG.Exit(), Target: returnSite, CallSite: site,
						Callee: callee})
				}
			}
		}
	}
	logger.Debugf("icfg: %d nodes in %d methods", len(g.nodes), len(methods))
	return g
}

func (g *ICFG) addEdge(e *Edge) {
	g.outEdges[e.Source] = append(g.outEdges[e.Source], e)
	g.inEdges[e.Target] = append(g.inEdges[e.Target], e)
}

// CallGraph returns the call graph the ICFG was built from
func (g *ICFG) CallGraph() *callgraph.CallGraph { return g.callGraph }

// Nodes returns the nodes of every method, methods in call graph discovery order
func (g *ICFG) Nodes() []lang.Stmt { return g.nodes }

// EntryMethods returns the entry methods of the call graph
func (g *ICFG) EntryMethods() []*lang.Method { return g.callGraph.Entries() }

// CFGOf returns the control-flow graph of m, or nil if m is not reachable
func (g *ICFG) CFGOf(m *lang.Method) *cfg.CFG { return g.cfgs[m] }

// EntryOf returns the entry node of m. It panics if m is not reachable.
func (g *ICFG) EntryOf(m *lang.Method) lang.Stmt { return g.mustCFG(m).Entry() }

// ExitOf returns the exit node of m. It panics if m is not reachable.
func (g *ICFG) ExitOf(m *lang.Method) lang.Stmt { return g.mustCFG(m).Exit() }

func (g *ICFG) mustCFG(m *lang.Method) *cfg.CFG {
	c, ok := g.cfgs[m]
	if !ok {
		panic(fmt.Sprintf("icfg: %s is not reachable", m))
	}
	return c
}

// ContainingMethodOf returns the method of n. It panics if n is not a node of the graph.
func (g *ICFG) ContainingMethodOf(n lang.Stmt) *lang.Method {
	m, ok := g.methodOf[n]
	if !ok {
		panic(fmt.Sprintf("icfg: %s is not a node of the graph", n))
	}
	return m
}

// IsCallSite returns true if n is a call statement
func (g *ICFG) IsCallSite(n lang.Stmt) bool {
	_, ok := n.(*lang.InvokeStmt)
	return ok
}

// CalleesOf returns the resolved callees of site
func (g *ICFG) CalleesOf(site *lang.InvokeStmt) []*lang.Method { return g.callGraph.CalleesOf(site) }

// InEdges returns the edges entering n
func (g *ICFG) InEdges(n lang.Stmt) []*Edge { return g.inEdges[n] }

// OutEdges returns the edges leaving n
func (g *ICFG) OutEdges(n lang.Stmt) []*Edge { return g.outEdges[n] }

// Succs returns the distinct successors of n
func (g *ICFG) Succs(n lang.Stmt) []lang.Stmt {
	return fn.Distinct(fn.Map(g.outEdges[n], func(e *Edge) lang.Stmt { return e.Target }))
}

// Preds returns the distinct predecessors of n
func (g *ICFG) Preds(n lang.Stmt) []lang.Stmt {
	return fn.Distinct(fn.Map(g.inEdges[n], func(e *Edge) lang.Stmt { return e.Source }))
}

func (g *ICFG) String() string {
	var b strings.Builder
	for _, n := range g.nodes {
		fmt.Fprintf(&b, "%s %d: %s\n", g.methodOf[n], n.Index(), n)
		for _, e := range g.outEdges[n] {
			fmt.Fprintf(&b, "\t-[%s]-> %s %d\n", e.Kind, g.methodOf[e.Target], e.Target.Index())
		}
	}
	return b.String()
}
