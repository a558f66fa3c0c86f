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

package inter

import (
	"fmt"

	"github.com/awslabs/monoflow/analysis/config"
	"github.com/awslabs/monoflow/analysis/constprop"
	"github.com/awslabs/monoflow/analysis/dataflow"
	"github.com/awslabs/monoflow/analysis/icfg"
	"github.com/awslabs/monoflow/analysis/lang"
)

// ConstantPropagation is the interprocedural constant propagation. Nodes are transferred by the intraprocedural
// analysis, and values flow into callees through the parameters and back through the returned variables.
type ConstantPropagation struct {
	cp   *constprop.Analysis
	icfg *icfg.ICFG
}

// NewConstantPropagation returns the interprocedural constant propagation over g
func NewConstantPropagation(g *icfg.ICFG) *ConstantPropagation {
	return &ConstantPropagation{cp: constprop.New(), icfg: g}
}

func (c *ConstantPropagation) IsForward() bool { return true }

// NewBoundaryFact binds the int parameters of the entry method to NAC
func (c *ConstantPropagation) NewBoundaryFact(m *lang.Method) *constprop.Fact {
	return constprop.ParamsFact(m)
}

func (c *ConstantPropagation) NewInitialFact() *constprop.Fact { return constprop.NewFact() }

func (c *ConstantPropagation) MeetInto(fact *constprop.Fact, target *constprop.Fact) {
	c.cp.MeetInto(fact, target)
}

// TransferCallNode copies IN to OUT
func (c *ConstantPropagation) TransferCallNode(_ lang.Stmt, in *constprop.Fact, out *constprop.Fact) bool {
	return out.CopyFrom(in)
}

func (c *ConstantPropagation) TransferNonCallNode(n lang.Stmt, in *constprop.Fact, out *constprop.Fact) bool {
	return c.cp.TransferNode(n, in, out)
}

func (c *ConstantPropagation) TransferNormalEdge(_ *icfg.Edge, out *constprop.Fact) *constprop.Fact {
	return out.Copy()
}

// TransferCallToReturnEdge kills the result of the call, which arrives through the return edges. When the call has
// no resolved callee, no return edge exists and the result is NAC.
func (c *ConstantPropagation) TransferCallToReturnEdge(e *icfg.Edge, out *constprop.Fact) *constprop.Fact {
	f := out.Copy()
	if lhs := e.CallSite.Result; lhs != nil && lhs.Type.CanHoldInt() {
		if len(c.icfg.CalleesOf(e.CallSite)) == 0 {
			f.Update(lhs, constprop.NAC)
		} else {
			f.Update(lhs, constprop.Undefined)
		}
	}
	return f
}

// TransferCallEdge binds the parameters of the callee to the values of the arguments
func (c *ConstantPropagation) TransferCallEdge(e *icfg.Edge, callSiteOut *constprop.Fact) *constprop.Fact {
	args := e.CallSite.Call.Args
	params := e.Callee.Params
	if len(args) != len(params) {
		panic(fmt.Sprintf("inter: %s passes %d arguments to %s, which has %d parameters", e.CallSite, len(args),
			e.Callee, len(params)))
	}
	f := constprop.NewFact()
	for i, p := range params {
		if p.Type.CanHoldInt() {
			f.Update(p, constprop.Evaluate(args[i], callSiteOut))
		}
	}
	return f
}

// TransferReturnEdge binds the result of the call to the meet of the values returned by the callee
func (c *ConstantPropagation) TransferReturnEdge(e *icfg.Edge, calleeExitOut *constprop.Fact) *constprop.Fact {
	f := constprop.NewFact()
	lhs := e.CallSite.Result
	if lhs == nil || !lhs.Type.CanHoldInt() {
		return f
	}
	val := constprop.Undefined
	for _, r := range e.Callee.ReturnVars() {
		val = constprop.Meet(val, constprop.Evaluate(r, calleeExitOut))
	}
	f.Update(lhs, val)
	return f
}

// SolveConstantPropagation runs the interprocedural constant propagation over g
func SolveConstantPropagation(logger *config.LogGroup, g *icfg.ICFG) *dataflow.Result[lang.Stmt, *constprop.Fact] {
	return Solve[*constprop.Fact](logger, NewConstantPropagation(g), g)
}
