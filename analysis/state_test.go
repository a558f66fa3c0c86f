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

package analysis

import (
	"errors"
	"testing"

	"github.com/awslabs/monoflow/analysis/config"
	"github.com/awslabs/monoflow/analysis/lang"
	"github.com/awslabs/monoflow/internal/analysistest"
)

// newTestState returns the state of the call example, extended with a class Util whose methods contain dead code:
//
//	branch() is the branch example
//	overwrite() { x = 1; x = 2; return x }
func newTestState(t *testing.T) (*State, *analysistest.Program) {
	c := analysistest.LoadConfig(t, "testdata")
	p := analysistest.CallExample()
	util := p.Hierarchy.AddClass(lang.NewClass("Util", nil))

	branch := analysistest.BranchExample()
	util.AddMethod(branch.Method())
	p.SetCFG(branch)

	overwrite := util.AddMethod(lang.NewMethod("overwrite", "int overwrite()"))
	x := overwrite.NewVar("x", lang.Int)
	overwrite.Add(
		lang.Assign(x, lang.IntLiteral(1)),
		lang.Assign(x, lang.IntLiteral(2)),
		&lang.ReturnStmt{Value: x},
	)
	p.SetCFG(analysistest.Straight(overwrite))
	return NewState(c, p.Hierarchy, p.CFGOf), p
}

func indices(stmts []lang.Stmt) []int {
	res := make([]int, len(stmts))
	for i, s := range stmts {
		res[i] = s.Index()
	}
	return res
}

func sameInts(a []int, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestEntryMethods(t *testing.T) {
	s, p := newTestState(t)
	entries := s.EntryMethods()
	if len(entries) != 1 || entries[0] != p.Method("Main", "main") {
		t.Errorf("expected Main.main as only entry method, got %v", entries)
	}
}

func TestDeadCode(t *testing.T) {
	s, p := newTestState(t)
	if s.Config.LiveVariableSolver != config.WorklistSolver {
		t.Fatalf("config should select the worklist solver, got %q", s.Config.LiveVariableSolver)
	}
	for _, test := range []struct {
		method          string
		dead            []int
		onlyUnreachable []int
	}{
		{"branch", []int{5}, []int{5}},
		{"overwrite", []int{0}, []int{}},
		{"addOne", []int{}, []int{}},
	} {
		class := "Util"
		if test.method == "addOne" {
			class = "Main"
		}
		m := p.Method(class, test.method)
		if got := indices(s.DeadCode(m)); !sameInts(got, test.dead) {
			t.Errorf("dead code of %s: expected %v, got %v", m, test.dead, got)
		}
		s.Config.SkipDeadAssignments = true
		if got := indices(s.DeadCode(m)); !sameInts(got, test.onlyUnreachable) {
			t.Errorf("unreachable code of %s: expected %v, got %v", m, test.onlyUnreachable, got)
		}
		s.Config.SkipDeadAssignments = false
	}
}

func TestCallGraph(t *testing.T) {
	s, p := newTestState(t)
	cg, err := s.CallGraph()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !cg.Contains(p.Method("Main", "addOne")) {
		t.Errorf("addOne should be reachable from main:\n%s", cg)
	}
	if cg.Contains(p.Method("Util", "overwrite")) {
		t.Errorf("overwrite is never called and should not be reachable:\n%s", cg)
	}
	cg2, _ := s.CallGraph()
	if cg2 != cg {
		t.Errorf("the call graph should be computed once")
	}
}

func TestInterConstantPropagation(t *testing.T) {
	s, p := newTestState(t)
	res, err := s.InterConstantPropagation()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	main := p.Method("Main", "main")
	if got := res.InFact(main.Stmts[2]).String(); got != "{a=6, b=7}" {
		t.Errorf("b should be 7 after the call, got %s", got)
	}
}

func TestNoEntryPoints(t *testing.T) {
	p := analysistest.CallExample()
	s := NewState(config.NewDefault(), p.Hierarchy, p.CFGOf)
	if _, err := s.CallGraph(); !errors.Is(err, ErrNoEntryPoints) {
		t.Errorf("expected ErrNoEntryPoints, got %v", err)
	}
	if _, err := s.InterConstantPropagation(); !errors.Is(err, ErrNoEntryPoints) {
		t.Errorf("expected a wrapped ErrNoEntryPoints, got %v", err)
	}
}
