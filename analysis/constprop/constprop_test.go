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

package constprop

import (
	"math"
	"testing"

	"github.com/awslabs/monoflow/analysis/config"
	"github.com/awslabs/monoflow/analysis/dataflow"
	"github.com/awslabs/monoflow/analysis/lang"
	"github.com/awslabs/monoflow/internal/analysistest"
)

var values = []Value{Undefined, NAC, Constant(0), Constant(1), Constant(-7)}

func TestMeetLaws(t *testing.T) {
	for _, a := range values {
		if Meet(a, a) != a {
			t.Errorf("meet(%s, %s) should be %s", a, a, a)
		}
		if Meet(a, Undefined) != a {
			t.Errorf("Undefined should be the identity of meet, got meet(%s, UNDEF) = %s", a, Meet(a, Undefined))
		}
		if Meet(a, NAC) != NAC {
			t.Errorf("NAC should absorb %s", a)
		}
		for _, b := range values {
			if Meet(a, b) != Meet(b, a) {
				t.Errorf("meet(%s, %s) is not commutative", a, b)
			}
			for _, c := range values {
				if Meet(a, Meet(b, c)) != Meet(Meet(a, b), c) {
					t.Errorf("meet(%s, %s, %s) is not associative", a, b, c)
				}
			}
		}
	}
	if Meet(Constant(1), Constant(2)) != NAC {
		t.Errorf("different constants should meet to NAC")
	}
}

func TestFactMeetLaws(t *testing.T) {
	m := lang.NewMethod("f", "void f()")
	x := m.NewVar("x", lang.Int)
	y := m.NewVar("y", lang.Int)
	mk := func(vx, vy Value) *Fact {
		f := NewFact()
		f.Update(x, vx)
		f.Update(y, vy)
		return f
	}
	var facts []*Fact
	for _, vx := range values {
		for _, vy := range values {
			facts = append(facts, mk(vx, vy))
		}
	}
	a := New()
	meet := func(f1, f2 *Fact) *Fact {
		r := f1.Copy()
		a.MeetInto(f2, r)
		return r
	}
	for _, f1 := range facts {
		if !meet(f1, f1).Equal(f1) || !meet(f1, a.NewInitialFact()).Equal(f1) {
			t.Errorf("meet should be idempotent and have the initial fact as identity on %s", f1)
		}
		for _, f2 := range facts {
			if !meet(f1, f2).Equal(meet(f2, f1)) {
				t.Errorf("meet of %s and %s is not commutative", f1, f2)
			}
		}
	}
}

func TestFactUpdate(t *testing.T) {
	m := lang.NewMethod("f", "void f()")
	x := m.NewVar("x", lang.Int)
	f := NewFact()
	if f.Update(x, Undefined) {
		t.Errorf("updating an absent variable to Undefined should not change the fact")
	}
	if !f.Update(x, Constant(3)) || f.Get(x) != Constant(3) || f.String() != "{x=3}" {
		t.Errorf("x should be bound to 3 in %s", f)
	}
	if !f.Update(x, Undefined) || f.Len() != 0 || !f.Equal(NewFact()) {
		t.Errorf("updating x to Undefined should remove it from %s", f)
	}
	g := NewFact()
	g.Update(x, NAC)
	if !f.CopyFrom(g) || f.CopyFrom(g) || f.Get(x) != NAC {
		t.Errorf("CopyFrom should report changes only once")
	}
}

func TestUpdateNonIntPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Errorf("binding a reference variable should panic")
		}
	}()
	m := lang.NewMethod("f", "void f()")
	NewFact().Update(m.NewVar("o", lang.Reference), NAC)
}

func TestEvaluate(t *testing.T) {
	m := lang.NewMethod("f", "void f()")
	x := m.NewVar("x", lang.Int)
	y := m.NewVar("y", lang.Int)
	u := m.NewVar("u", lang.Int)
	n := m.NewVar("n", lang.Int)
	o := m.NewVar("o", lang.Reference)
	fact := func(vx, vy int32) *Fact {
		f := NewFact()
		f.Update(x, Constant(vx))
		f.Update(y, Constant(vy))
		f.Update(n, NAC)
		return f
	}
	for _, tc := range []struct {
		e    lang.Exp
		f    *Fact
		want Value
	}{
		{lang.IntLiteral(5), NewFact(), Constant(5)},
		{lang.Binary(lang.Add, x, y), fact(2, 3), Constant(5)},
		{lang.Binary(lang.Div, x, y), fact(4, 0), Undefined},
		{lang.Binary(lang.Rem, n, y), fact(4, 0), Undefined},
		{lang.Binary(lang.Add, n, y), fact(0, 3), NAC},
		{lang.Binary(lang.Add, u, y), fact(0, 3), Undefined},
		{lang.Binary(lang.Mul, u, n), fact(0, 3), NAC},
		{lang.Binary(lang.Add, x, y), fact(math.MaxInt32, 1), Constant(math.MinInt32)},
		{lang.Binary(lang.Div, x, y), fact(math.MinInt32, -1), Constant(math.MinInt32)},
		{lang.Binary(lang.Div, x, y), fact(-7, 2), Constant(-3)},
		{lang.Binary(lang.Rem, x, y), fact(-7, 2), Constant(-1)},
		{lang.Binary(lang.Gt, x, y), fact(10, 1), Constant(1)},
		{lang.Binary(lang.Le, x, y), fact(10, 1), Constant(0)},
		{lang.Binary(lang.Eq, x, y), fact(3, 3), Constant(1)},
		{lang.Binary(lang.Shl, x, y), fact(1, 33), Constant(2)},
		{lang.Binary(lang.Shr, x, y), fact(-8, 1), Constant(-4)},
		{lang.Binary(lang.Ushr, x, y), fact(-1, 28), Constant(15)},
		{lang.Binary(lang.Xor, x, y), fact(6, 3), Constant(5)},
		{lang.Binary(lang.And, x, y), fact(6, 3), Constant(2)},
		{lang.Binary(lang.Or, x, y), fact(6, 3), Constant(7)},
		{o, NewFact(), NAC},
		{&lang.NewExp{Class: "C"}, NewFact(), NAC},
		{&lang.CastExp{Type: lang.Int, X: o}, NewFact(), NAC},
		{&lang.FieldAccess{Base: o, Field: "f"}, NewFact(), NAC},
		{&lang.ArrayAccess{Base: o, Index: x}, fact(0, 0), NAC},
	} {
		if got := Evaluate(tc.e, tc.f); got != tc.want {
			t.Errorf("evaluate(%s, %s) = %s, expected %s", tc.e, tc.f, got, tc.want)
		}
	}
}

func TestBranch(t *testing.T) {
	g := analysistest.BranchExample()
	res := Solve(dataflow.Worklist, config.NewLogGroup(config.NewDefault()), g)
	s := g.Method().Stmts
	if got := res.InFact(s[2]).String(); got != "{x=10, y=1}" {
		t.Errorf("unexpected fact before the branch: %s", got)
	}
	if got := Evaluate(s[2].(*lang.IfStmt).Cond, res.InFact(s[2])); got != Constant(1) {
		t.Errorf("the condition should be constant true, got %s", got)
	}
	// both branches are merged since constant propagation does not prune edges
	if got := res.InFact(s[6]).String(); got != "{x=10, y=1, z=NAC}" {
		t.Errorf("unexpected fact before the return: %s", got)
	}
}

func TestLoopAndParameters(t *testing.T) {
	g := analysistest.LoopExample()
	logger := config.NewLogGroup(config.NewDefault())
	res := Solve(dataflow.Worklist, logger, g)
	iterative := Solve(dataflow.Iterative, logger, g)
	s := g.Method().Stmts
	if got := res.OutFact(g.Entry()).String(); got != "{n=NAC}" {
		t.Errorf("the parameter should be NAC at the entry, got %s", got)
	}
	if got := res.InFact(s[2]).String(); got != "{i=NAC, n=NAC, s=NAC}" {
		t.Errorf("loop variables should be NAC at the loop head, got %s", got)
	}
	for _, node := range g.Nodes() {
		if !res.OutFact(node).Equal(iterative.OutFact(node)) {
			t.Errorf("solvers disagree at %s: %s vs %s", node, res.OutFact(node), iterative.OutFact(node))
		}
	}
}

func TestCallResultIsNAC(t *testing.T) {
	p := analysistest.CallExample()
	main := p.Method("Main", "main")
	res := Solve(dataflow.Worklist, config.NewLogGroup(config.NewDefault()), p.CFGOf(main))
	b := analysistest.VarNamed(main, "b")
	if got := res.OutFact(main.Stmts[1]).Get(b); got != NAC {
		t.Errorf("the result of a call should be NAC intraprocedurally, got %s", got)
	}
}
