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

// Exp is an expression of the IR. The set of expressions is closed: IntLiteral, *Var, *BinaryExp, *NewExp,
// *CastExp, *FieldAccess, *ArrayAccess and *InvokeExp.
type Exp interface {
	// Uses returns the variables read when evaluating the expression
	Uses() []*Var
	String() string
	isExp()
}

// Var is a local variable or a parameter of a method. Variables are compared by identity.
type Var struct {
	Name string
	Type Type
	// Index is the position of the variable in its method's variable table
	Index  int
	method *Method
}

// Method returns the method declaring the variable
func (v *Var) Method() *Method { return v.method }

// Uses of a variable is the variable itself
func (v *Var) Uses() []*Var { return []*Var{v} }

func (v *Var) String() string { return v.Name }

// IntLiteral is a 32-bit integer constant
type IntLiteral int32

// Uses of a literal is empty
func (IntLiteral) Uses() []*Var { return nil }

func (l IntLiteral) String() string { return fmt.Sprintf("%d", int32(l)) }

// BinaryOp is an arithmetic, comparison, shift or bitwise operator
type BinaryOp int

const (
	Add BinaryOp = iota
	Sub
	Mul
	Div
	Rem
	Eq
	Ne
	Lt
	Gt
	Le
	Ge
	Shl
	Shr
	Ushr
	Or
	And
	Xor
)

var opSymbols = [...]string{
	Add: "+", Sub: "-", Mul: "*", Div: "/", Rem: "%",
	Eq: "==", Ne: "!=", Lt: "<", Gt: ">", Le: "<=", Ge: ">=",
	Shl: "<<", Shr: ">>", Ushr: ">>>",
	Or: "|", And: "&", Xor: "^",
}

func (op BinaryOp) String() string {
	if op < 0 || int(op) >= len(opSymbols) {
		return fmt.Sprintf("op(%d)", int(op))
	}
	return opSymbols[op]
}

// IsDivision returns true for the operators that fault on a zero divisor
func (op BinaryOp) IsDivision() bool {
	return op == Div || op == Rem
}

// IsComparison returns true for the operators whose result is 1 or 0
func (op BinaryOp) IsComparison() bool {
	return op >= Eq && op <= Ge
}

// BinaryExp is X Op Y where both operands are variables or literals
type BinaryExp struct {
	Op BinaryOp
	X  Exp
	Y  Exp
}

// Binary is a shorthand for &BinaryExp{op, x, y}
func Binary(op BinaryOp, x Exp, y Exp) *BinaryExp {
	return &BinaryExp{Op: op, X: x, Y: y}
}

func (e *BinaryExp) Uses() []*Var { return append(e.X.Uses(), e.Y.Uses()...) }

func (e *BinaryExp) String() string { return fmt.Sprintf("%s %s %s", e.X, e.Op, e.Y) }

// NewExp allocates an object of class Class
type NewExp struct {
	Class string
}

func (e *NewExp) Uses() []*Var { return nil }

func (e *NewExp) String() string { return "new " + e.Class }

// CastExp converts X to Type
type CastExp struct {
	Type Type
	X    *Var
}

func (e *CastExp) Uses() []*Var { return []*Var{e.X} }

func (e *CastExp) String() string { return fmt.Sprintf("(%s) %s", e.Type, e.X) }

// FieldAccess reads or writes the field Field of Base, or the static field of Class when Base is nil
type FieldAccess struct {
	Base  *Var
	Class string
	Field string
}

func (e *FieldAccess) Uses() []*Var {
	if e.Base == nil {
		return nil
	}
	return []*Var{e.Base}
}

func (e *FieldAccess) String() string {
	if e.Base == nil {
		return e.Class + "." + e.Field
	}
	return e.Base.Name + "." + e.Field
}

// ArrayAccess reads or writes the cell Index of the array Base
type ArrayAccess struct {
	Base  *Var
	Index Exp
}

func (e *ArrayAccess) Uses() []*Var { return append([]*Var{e.Base}, e.Index.Uses()...) }

func (e *ArrayAccess) String() string { return fmt.Sprintf("%s[%s]", e.Base, e.Index) }

// CallKind is the kind of a call site, which determines how the callees are resolved
type CallKind int

const (
	// Static calls a static method
	Static CallKind = iota
	// Special calls a constructor, a private method or a method of the super class
	Special
	// Virtual calls an instance method of a class
	Virtual
	// Interface calls an interface method
	Interface
	// Dynamic is a dynamically linked call site
	Dynamic
	// Other is any call that cannot be resolved from the class hierarchy
	Other
)

func (k CallKind) String() string {
	switch k {
	case Static:
		return "static"
	case Special:
		return "special"
	case Virtual:
		return "virtual"
	case Interface:
		return "interface"
	case Dynamic:
		return "dynamic"
	default:
		return "other"
	}
}

// MethodRef is the statically declared target of a call: the name of a class and a method sub-signature
type MethodRef struct {
	Class  string
	Subsig string
}

func (r MethodRef) String() string { return fmt.Sprintf("<%s: %s>", r.Class, r.Subsig) }

// InvokeExp is a method call. Receiver is nil for static calls.
type InvokeExp struct {
	Kind     CallKind
	Ref      MethodRef
	Receiver *Var
	Args     []Exp
}

func (e *InvokeExp) Uses() []*Var {
	var uses []*Var
	if e.Receiver != nil {
		uses = append(uses, e.Receiver)
	}
	for _, arg := range e.Args {
		uses = append(uses, arg.Uses()...)
	}
	return uses
}

func (e *InvokeExp) String() string {
	args := strings.Join(fn.Map(e.Args, Exp.String), ", ")
	if e.Receiver != nil {
		return fmt.Sprintf("%s %s.%s(%s)", e.Kind, e.Receiver, e.Ref, args)
	}
	return fmt.Sprintf("%s %s(%s)", e.Kind, e.Ref, args)
}

func (*Var) isExp() {}
func (IntLiteral) isExp() {}
func (*BinaryExp) isExp() {}
func (*NewExp) isExp() {}
func (*CastExp) isExp() {}
func (*FieldAccess) isExp() {}
func (*ArrayAccess) isExp() {}
func (*InvokeExp) isExp() {}
