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

package lang

import (
	"fmt"
	"strings"

	fn "github.com/awslabs/monoflow/internal/funcutil"
)

// Stmt is a statement of a method body. Statements are numbered in program order by [Method.Add].
type Stmt interface {
	// Index is the position of the statement in its method
	Index() int
	// Def returns the variable written by the statement, or nil
	Def() *Var
	// Uses returns the variables read by the statement
	Uses() []*Var
	String() string
	setIndex(int)
}

type stmtIndex struct {
	index int
}

func (s *stmtIndex) Index() int { return s.index }
func (s *stmtIndex) setIndex(i int) { s.index = i }

// AssignStmt is LHS = RHS. The left-hand side is a variable, a field access or an array access.
type AssignStmt struct {
	stmtIndex
	LHS Exp
	RHS Exp
}

// Assign returns the statement lhs = rhs
func Assign(lhs Exp, rhs Exp) *AssignStmt {
	return &AssignStmt{LHS: lhs, RHS: rhs}
}

// Def returns the left-hand side when it is a variable
func (s *AssignStmt) Def() *Var {
	if v, ok := s.LHS.(*Var); ok {
		return v
	}
	return nil
}

// Uses of a store to a field or an array cell include the variables of the access path
func (s *AssignStmt) Uses() []*Var {
	uses := s.RHS.Uses()
	if _, isVar := s.LHS.(*Var); !isVar {
		uses = append(uses, s.LHS.Uses()...)
	}
	return uses
}

func (s *AssignStmt) String() string { return fmt.Sprintf("%s = %s", s.LHS, s.RHS) }

// InvokeStmt is a call, whose result is assigned to Result when Result is not nil
type InvokeStmt struct {
	stmtIndex
	Result *Var
	Call   *InvokeExp
}

func (s *InvokeStmt) Def() *Var { return s.Result }

func (s *InvokeStmt) Uses() []*Var { return s.Call.Uses() }

func (s *InvokeStmt) String() string {
	if s.Result != nil {
		return fmt.Sprintf("%s = %s", s.Result, s.Call)
	}
	return s.Call.String()
}

// IfStmt branches on Cond. The branch targets are the IfTrue and IfFalse edges of the control-flow graph.
type IfStmt struct {
	stmtIndex
	Cond Exp
}

func (s *IfStmt) Def() *Var { return nil }

func (s *IfStmt) Uses() []*Var { return s.Cond.Uses() }

func (s *IfStmt) String() string { return fmt.Sprintf("if (%s)", s.Cond) }

// SwitchStmt branches on the value of Var. The case values label the SwitchCase edges of the control-flow graph.
type SwitchStmt struct {
	stmtIndex
	Var *Var
}

func (s *SwitchStmt) Def() *Var { return nil }

func (s *SwitchStmt) Uses() []*Var { return []*Var{s.Var} }

func (s *SwitchStmt) String() string { return fmt.Sprintf("switch (%s)", s.Var) }

// ReturnStmt returns Value, or nothing when Value is nil
type ReturnStmt struct {
	stmtIndex
	Value *Var
}

func (s *ReturnStmt) Def() *Var { return nil }

func (s *ReturnStmt) Uses() []*Var {
	if s.Value == nil {
		return nil
	}
	return []*Var{s.Value}
}

func (s *ReturnStmt) String() string {
	if s.Value == nil {
		return "return"
	}
	return "return " + s.Value.Name
}

// GotoStmt is an unconditional jump
type GotoStmt struct {
	stmtIndex
}

func (s *GotoStmt) Def() *Var { return nil }
func (s *GotoStmt) Uses() []*Var { return nil }
func (s *GotoStmt) String() string { return "goto" }

// NopStmt does nothing. Control-flow graphs use nops as their entry and exit nodes.
type NopStmt struct {
	stmtIndex
}

// NewNop returns a nop with the given index
func NewNop(index int) *NopStmt {
	return &NopStmt{stmtIndex{index}}
}

func (s *NopStmt) Def() *Var { return nil }
func (s *NopStmt) Uses() []*Var { return nil }
func (s *NopStmt) String() string { return "nop" }

// StmtString returns "index: stmt" for every statement, one per line
func StmtString(stmts []Stmt) string {
	return strings.Join(fn.Map(stmts, func(s Stmt) string { return fmt.Sprintf("%d: %s", s.Index(), s) }), "\n")
}
