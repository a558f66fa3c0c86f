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
)

// Method is a method of a class, with its parameters, its local variables and its body.
type Method struct {
	// Class is the declaring class, set by [Class.AddMethod]
	Class *Class

	// Name is the simple name of the method
	Name string

	// Subsig is the sub-signature of the method, for example "int m(int)". Dispatch matches sub-signatures.
	Subsig string

	Params   []*Var
	Abstract bool
	IsStatic bool
	Stmts    []Stmt

	vars []*Var
}

// NewMethod returns a method without parameters and without body
func NewMethod(name string, subsig string) *Method {
	return &Method{Name: name, Subsig: subsig}
}

// NewVar declares a new local variable of the method
func (m *Method) NewVar(name string, t Type) *Var {
	v := &Var{Name: name, Type: t, Index: len(m.vars), method: m}
	m.vars = append(m.vars, v)
	return v
}

// NewParam declares a new variable and appends it to the parameters
func (m *Method) NewParam(name string, t Type) *Var {
	v := m.NewVar(name, t)
	m.Params = append(m.Params, v)
	return v
}

// Vars returns all the variables of the method, parameters included, in declaration order
func (m *Method) Vars() []*Var {
	return m.vars
}

// Add appends statements to the body of the method and numbers them
func (m *Method) Add(stmts ...Stmt) {
	for _, s := range stmts {
		s.setIndex(len(m.Stmts))
		m.Stmts = append(m.Stmts, s)
	}
}

// ReturnVars returns the variables returned by the return statements of the method, in program order
func (m *Method) ReturnVars() []*Var {
	var vars []*Var
	for _, s := range m.Stmts {
		if r, ok := s.(*ReturnStmt); ok && r.Value != nil {
			vars = append(vars, r.Value)
		}
	}
	return vars
}

// CallSites returns the call statements of the method, in program order
func (m *Method) CallSites() []*InvokeStmt {
	var calls []*InvokeStmt
	for _, s := range m.Stmts {
		if call, ok := s.(*InvokeStmt); ok {
			calls = append(calls, call)
		}
	}
	return calls
}

// Ref returns the reference a call site uses to name the method
func (m *Method) Ref() MethodRef {
	if m.Class == nil {
		return MethodRef{Subsig: m.Subsig}
	}
	return MethodRef{Class: m.Class.Name, Subsig: m.Subsig}
}

// ClassName returns the name of the declaring class, or "" if the method is not declared in a class
func (m *Method) ClassName() string {
	if m.Class == nil {
		return ""
	}
	return m.Class.Name
}

func (m *Method) String() string {
	return fmt.Sprintf("%s.%s", m.ClassName(), m.Name)
}

// Class is a class or an interface
type Class struct {
	Name        string
	Super       *Class
	Interfaces  []*Class
	IsInterface bool
	Abstract    bool

	methods map[string]*Method
	order   []*Method
}

// NewClass returns a class named name extending super, which may be nil
func NewClass(name string, super *Class, interfaces ...*Class) *Class {
	return &Class{Name: name, Super: super, Interfaces: interfaces, methods: map[string]*Method{}}
}

// NewInterface returns an interface named name extending the super interfaces
func NewInterface(name string, supers ...*Class) *Class {
	c := NewClass(name, nil, supers...)
	c.IsInterface = true
	return c
}

// AddMethod declares m in c. It panics if c already declares a method with the same sub-signature.
func (c *Class) AddMethod(m *Method) *Method {
	if _, ok := c.methods[m.Subsig]; ok {
		panic(fmt.Sprintf("class %s already declares %s", c.Name, m.Subsig))
	}
	m.Class = c
	c.methods[m.Subsig] = m
	c.order = append(c.order, m)
	return m
}

// DeclaredMethod returns the method declared in c with the given sub-signature, or nil
func (c *Class) DeclaredMethod(subsig string) *Method {
	return c.methods[subsig]
}

// Methods returns the declared methods in declaration order
func (c *Class) Methods() []*Method {
	return c.order
}

func (c *Class) String() string {
	return c.Name
}
