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

// Package analysistest contains the programs shared by the tests of the analyses. The programs are built directly
// in the IR, together with their control-flow graphs and class hierarchy.
package analysistest

import (
	"fmt"
	"path/filepath"
	"testing"

	"github.com/awslabs/monoflow/analysis/cfg"
	"github.com/awslabs/monoflow/analysis/config"
	"github.com/awslabs/monoflow/analysis/lang"
)

// LoadConfig loads the config.yaml file of the directory dir and sets it as the global config
func LoadConfig(t *testing.T, dir string) *config.Config {
	configFile := filepath.Join(dir, "config.yaml")
	config.SetGlobalConfig(configFile)
	c, err := config.LoadGlobal()
	if err != nil {
		t.Fatalf("error loading global config: %v", err)
	}
	return c
}

// Program is a set of classes with the control-flow graph of each of their non-abstract methods
type Program struct {
	Hierarchy *lang.ClassHierarchy
	cfgs      map[*lang.Method]*cfg.CFG
}

// NewProgram returns an empty program
func NewProgram() *Program {
	return &Program{Hierarchy: lang.NewClassHierarchy(), cfgs: map[*lang.Method]*cfg.CFG{}}
}

// CFGOf returns the control-flow graph of m. It panics if m has no graph.
func (p *Program) CFGOf(m *lang.Method) *cfg.CFG {
	g, ok := p.cfgs[m]
	if !ok {
		panic(fmt.Sprintf("no cfg for %s", m))
	}
	return g
}

// SetCFG records the control-flow graph of its method
func (p *Program) SetCFG(g *cfg.CFG) {
	p.cfgs[g.Method()] = g
}

// Method returns the method named name in class, or panics
func (p *Program) Method(class string, name string) *lang.Method {
	m := p.Hierarchy.FindMethod(class, name)
	if m == nil {
		panic(fmt.Sprintf("no method %s.%s", class, name))
	}
	return m
}

// Straight returns the control-flow graph of m where each statement flows into the next one
func Straight(m *lang.Method) *cfg.CFG {
	g := cfg.New(m)
	g.Chain(g.Nodes()...)
	return g
}

// LiveVarExample builds
//
//	x = 1
//	y = x + 1
//	return y
func LiveVarExample() (g *cfg.CFG, x *lang.Var, y *lang.Var) {
	m := lang.NewMethod("f", "int f()")
	x = m.NewVar("x", lang.Int)
	y = m.NewVar("y", lang.Int)
	m.Add(
		lang.Assign(x, lang.IntLiteral(1)),
		lang.Assign(y, lang.Binary(lang.Add, x, lang.IntLiteral(1))),
		&lang.ReturnStmt{Value: y},
	)
	return Straight(m), x, y
}

// BranchExample builds
//
//	0: x = 10
//	1: y = 1
//	2: if (x > y)
//	3:   z = 100
//	4:   goto 6
//	5: else z = 200
//	6: return z
//
// where the else branch is unreachable once constants are known.
func BranchExample() *cfg.CFG {
	m := lang.NewMethod("branch", "int branch()")
	x := m.NewVar("x", lang.Int)
	y := m.NewVar("y", lang.Int)
	z := m.NewVar("z", lang.Int)
	m.Add(
		lang.Assign(x, lang.IntLiteral(10)),
		lang.Assign(y, lang.IntLiteral(1)),
		&lang.IfStmt{Cond: lang.Binary(lang.Gt, x, y)},
		lang.Assign(z, lang.IntLiteral(100)),
		&lang.GotoStmt{},
		lang.Assign(z, lang.IntLiteral(200)),
		&lang.ReturnStmt{Value: z},
	)
	g := cfg.New(m)
	s := m.Stmts
	g.Chain(g.Entry(), s[0], s[1], s[2])
	g.AddEdge(cfg.IfTrue, s[2], s[3])
	g.AddEdge(cfg.IfFalse, s[2], s[5])
	g.Chain(s[3], s[4], s[6])
	g.Chain(s[5], s[6], g.Exit())
	return g
}

// LoopExample builds
//
//	sum(int n):
//	0: i = 0
//	1: s = 0
//	2: if (i < n)
//	3:   s = s + i
//	4:   i = i + 1
//	5:   goto 2
//	6: return s
func LoopExample() *cfg.CFG {
	m := lang.NewMethod("sum", "int sum(int)")
	n := m.NewParam("n", lang.Int)
	i := m.NewVar("i", lang.Int)
	sum := m.NewVar("s", lang.Int)
	m.Add(
		lang.Assign(i, lang.IntLiteral(0)),
		lang.Assign(sum, lang.IntLiteral(0)),
		&lang.IfStmt{Cond: lang.Binary(lang.Lt, i, n)},
		lang.Assign(sum, lang.Binary(lang.Add, sum, i)),
		lang.Assign(i, lang.Binary(lang.Add, i, lang.IntLiteral(1))),
		&lang.GotoStmt{},
		&lang.ReturnStmt{Value: sum},
	)
	g := cfg.New(m)
	s := m.Stmts
	g.Chain(g.Entry(), s[0], s[1], s[2])
	g.AddEdge(cfg.IfTrue, s[2], s[3])
	g.AddEdge(cfg.IfFalse, s[2], s[6])
	g.Chain(s[3], s[4], s[5], s[2])
	g.Chain(s[6], g.Exit())
	return g
}

// HierarchyExample builds the classes Base and Derived extends Base, both declaring "int m()", and a class Main
// whose static method main calls m on a receiver of static type Base. When abstract is true, Base and Base.m are
// abstract.
func HierarchyExample(abstract bool) *Program {
	p := NewProgram()
	h := p.Hierarchy
	base := h.AddClass(lang.NewClass("Base", nil))
	base.Abstract = abstract
	derived := h.AddClass(lang.NewClass("Derived", base))
	mainClass := h.AddClass(lang.NewClass("Main", nil))

	baseM := base.AddMethod(lang.NewMethod("m", "int m()"))
	if abstract {
		baseM.Abstract = true
	} else {
		r := baseM.NewVar("r", lang.Int)
		baseM.Add(lang.Assign(r, lang.IntLiteral(1)), &lang.ReturnStmt{Value: r})
		p.SetCFG(Straight(baseM))
	}

	derivedM := derived.AddMethod(lang.NewMethod("m", "int m()"))
	r := derivedM.NewVar("r", lang.Int)
	derivedM.Add(lang.Assign(r, lang.IntLiteral(2)), &lang.ReturnStmt{Value: r})
	p.SetCFG(Straight(derivedM))

	main := mainClass.AddMethod(lang.NewMethod("main", "void main()"))
	main.IsStatic = true
	o := main.NewVar("o", lang.Reference)
	v := main.NewVar("v", lang.Int)
	main.Add(
		lang.Assign(o, &lang.NewExp{Class: "Derived"}),
		&lang.InvokeStmt{Result: v, Call: &lang.InvokeExp{Kind: lang.Virtual, Ref: baseM.Ref(), Receiver: o}},
		&lang.ReturnStmt{},
	)
	p.SetCFG(Straight(main))
	return p
}

// CallExample builds a class Main with
//
//	static int main() { a = 6; b = addOne(a); return b }
//	static int addOne(int x) { one = 1; result = x + one; return result }
func CallExample() *Program {
	p := NewProgram()
	mainClass := p.Hierarchy.AddClass(lang.NewClass("Main", nil))

	addOne := mainClass.AddMethod(lang.NewMethod("addOne", "int addOne(int)"))
	addOne.IsStatic = true
	x := addOne.NewParam("x", lang.Int)
	one := addOne.NewVar("one", lang.Int)
	result := addOne.NewVar("result", lang.Int)
	addOne.Add(
		lang.Assign(one, lang.IntLiteral(1)),
		lang.Assign(result, lang.Binary(lang.Add, x, one)),
		&lang.ReturnStmt{Value: result},
	)
	p.SetCFG(Straight(addOne))

	main := mainClass.AddMethod(lang.NewMethod("main", "int main()"))
	main.IsStatic = true
	a := main.NewVar("a", lang.Int)
	b := main.NewVar("b", lang.Int)
	main.Add(
		lang.Assign(a, lang.IntLiteral(6)),
		&lang.InvokeStmt{Result: b, Call: &lang.InvokeExp{Kind: lang.Static, Ref: addOne.Ref(),
			Args: []lang.Exp{a}}},
		&lang.ReturnStmt{Value: b},
	)
	p.SetCFG(Straight(main))
	return p
}

// VarNamed returns the variable of m named name, or panics
func VarNamed(m *lang.Method, name string) *lang.Var {
	for _, v := range m.Vars() {
		if v.Name == name {
			return v
		}
	}
	panic(fmt.Sprintf("no variable %s in %s", name, m))
}
