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

// Package deadcode detects the statements of a method that are unreachable once branch conditions are known, and
// the assignments to variables that are never read afterwards.
package deadcode

import (
	"github.com/awslabs/monoflow/analysis/cfg"
	"github.com/awslabs/monoflow/analysis/constprop"
	"github.com/awslabs/monoflow/analysis/dataflow"
	"github.com/awslabs/monoflow/analysis/lang"
	"github.com/awslabs/monoflow/analysis/livevar"
	"github.com/awslabs/monoflow/internal/funcutil"
	"github.com/bits-and-blooms/bitset"
)

// ConstantResult is the result of constant propagation on a method
type ConstantResult = dataflow.Result[lang.Stmt, *constprop.Fact]

// LiveResult is the result of the live variable analysis on a method
type LiveResult = dataflow.Result[lang.Stmt, *livevar.SetFact]

// key maps a node of g to a bit index; the entry node has index -1
func key(n lang.Stmt) uint {
	return uint(n.Index() + 1)
}

// Detect returns the dead statements of g in program order: the statements that are unreachable, and the
// reachable assignments whose variable is not live afterwards and whose right-hand side has no side effect.
func Detect(g *cfg.CFG, constants *ConstantResult, live *LiveResult) []lang.Stmt {
	reachable := Reachable(g, constants)
	dead := unreachable(g, reachable)
	for _, s := range g.Method().Stmts {
		if reachable.Test(key(s)) && isDeadAssignment(s, live) {
			dead.Set(key(s))
		}
	}
	return toStmts(g, dead)
}

// DetectUnreachable returns the unreachable statements of g in program order
func DetectUnreachable(g *cfg.CFG, constants *ConstantResult) []lang.Stmt {
	return toStmts(g, unreachable(g, Reachable(g, constants)))
}

// Reachable returns the set of nodes reachable from the entry of g, following only the branches that are feasible
// according to constants. Nodes are keyed by their index plus one.
func Reachable(g *cfg.CFG, constants *ConstantResult) *bitset.BitSet {
	visited := bitset.New(uint(len(g.Nodes())))
	visited.Set(key(g.Entry()))
	queue := []lang.Stmt{g.Entry()}
	for len(queue) > 0 {
		n := queue[0]
		queue = queue[1:]
		for _, e := range FeasibleEdges(g, n, constants.InFact(n)) {
			if !visited.Test(key(e.Target)) {
				visited.Set(key(e.Target))
				queue = append(queue, e.Target)
			}
		}
	}
	return visited
}

// FeasibleEdges returns the out edges of n that can be taken when the variables have the values of fact. A branch
// whose condition is a constant only takes the edges of that constant; any other node takes all its edges.
func FeasibleEdges(g *cfg.CFG, n lang.Stmt, fact *constprop.Fact) []*cfg.Edge {
	edges := g.OutEdges(n)
	switch n := n.(type) {
	case *lang.IfStmt:
		cond := constprop.Evaluate(n.Cond, fact)
		if !cond.IsConstant() {
			return edges
		}
		taken := cfg.IfFalse
		if cond.Constant() != 0 {
			taken = cfg.IfTrue
		}
		return funcutil.Filter(edges, func(e *cfg.Edge) bool { return e.Kind == taken })
	case *lang.SwitchStmt:
		val := constprop.Evaluate(n.Var, fact)
		if !val.IsConstant() {
			return edges
		}
		cases := funcutil.Filter(edges, func(e *cfg.Edge) bool { return e.Kind == cfg.SwitchCase && e.CaseValue == val.Constant() })
		if len(cases) > 0 {
			return cases
		}
		return funcutil.Filter(edges, func(e *cfg.Edge) bool { return e.Kind == cfg.SwitchDefault })
	default:
		return edges
	}
}

// unreachable returns the statements of g that are not reachable. The entry and the exit are never included.
func unreachable(g *cfg.CFG, reachable *bitset.BitSet) *bitset.BitSet {
	dead := bitset.New(uint(len(g.Nodes())))
	for _, s := range g.Method().Stmts {
		if !reachable.Test(key(s)) {
			dead.Set(key(s))
		}
	}
	return dead
}

func isDeadAssignment(s lang.Stmt, live *LiveResult) bool {
	assign, ok := s.(*lang.AssignStmt)
	if !ok {
		return false
	}
	def := assign.Def()
	return def != nil && !live.OutFact(s).Contains(def) && HasNoSideEffect(assign.RHS)
}

// HasNoSideEffect returns true if evaluating e cannot allocate, fault, trigger class initialization or call a method:
// it is a literal, a variable, or a binary expression that is not a division or a remainder.
func HasNoSideEffect(e lang.Exp) bool {
	switch e := e.(type) {
	case lang.IntLiteral, *lang.Var:
		return true
	case *lang.BinaryExp:
		return !e.Op.IsDivision() && HasNoSideEffect(e.X) && HasNoSideEffect(e.Y)
	default:
		return false
	}
}

func toStmts(g *cfg.CFG, set *bitset.BitSet) []lang.Stmt {
	stmts := make([]lang.Stmt, 0, set.Count())
	for i, ok := set.NextSet(0); ok; i, ok = set.NextSet(i + 1) {
		stmts = append(stmts, g.Nodes()[i])
	}
	return stmts
}
