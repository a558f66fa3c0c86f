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

// Package constprop implements constant propagation over the variables that hold 32-bit integers, with the flat
// lattice Undefined < constants < NAC.
package constprop

import (
	"fmt"

	"github.com/awslabs/monoflow/analysis/cfg"
	"github.com/awslabs/monoflow/analysis/config"
	"github.com/awslabs/monoflow/analysis/dataflow"
	"github.com/awslabs/monoflow/analysis/lang"
)

// Analysis is the forward constant propagation. Its boundary fact binds the int parameters of the method to NAC.
type Analysis struct{}

// New returns a constant propagation analysis
func New() *Analysis { return &Analysis{} }

func (a *Analysis) IsForward() bool { return true }

// methodGraph is a graph that knows its method, like *cfg.CFG
type methodGraph interface {
	Method() *lang.Method
}

// NewBoundaryFact returns the fact at the entry of g. The graph must implement Method() *lang.Method.
func (a *Analysis) NewBoundaryFact(g dataflow.Graph[lang.Stmt]) *Fact {
	mg, ok := g.(methodGraph)
	if !ok {
		panic(fmt.Sprintf("constprop: graph %T does not know its method", g))
	}
	return ParamsFact(mg.Method())
}

// ParamsFact binds every parameter of m that can hold an int to NAC
func ParamsFact(m *lang.Method) *Fact {
	f := NewFact()
	for _, p := range m.Params {
		if p.Type.CanHoldInt() {
			f.Update(p, NAC)
		}
	}
	return f
}

func (a *Analysis) NewInitialFact() *Fact { return NewFact() }

// MeetInto meets every binding of fact into target
func (a *Analysis) MeetInto(fact *Fact, target *Fact) {
	for v, val := range fact.values {
		target.Update(v, Meet(val, target.Get(v)))
	}
}

// TransferNode computes OUT from IN: a statement defining a variable that holds an int rebinds that variable, any
// other statement is the identity.
func (a *Analysis) TransferNode(s lang.Stmt, in *Fact, out *Fact) bool {
	def := s.Def()
	if def == nil || !def.Type.CanHoldInt() {
		return out.CopyFrom(in)
	}
	newOut := in.Copy()
	switch s := s.(type) {
	case *lang.AssignStmt:
		newOut.Update(def, Evaluate(s.RHS, in))
	default:
		// the result of a call is unknown without the callee
		newOut.Update(def, NAC)
	}
	return out.CopyFrom(newOut)
}

// Solve runs constant propagation on g with the solver selected by kind
func Solve(kind dataflow.SolverKind, logger *config.LogGroup, g *cfg.CFG) *dataflow.Result[lang.Stmt, *Fact] {
	logger.Debugf("constant propagation in %s", g.Method())
	return dataflow.Solve[lang.Stmt, *Fact](kind, logger, New(), g)
}
