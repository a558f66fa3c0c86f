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

// Package livevar implements the live variable analysis: a variable is live at a program point if its current value
// may be read on some path starting at that point.
package livevar

import (
	"github.com/awslabs/monoflow/analysis/cfg"
	"github.com/awslabs/monoflow/analysis/config"
	"github.com/awslabs/monoflow/analysis/dataflow"
	"github.com/awslabs/monoflow/analysis/lang"
)

// Analysis is the backward live variable analysis. Facts are sets of live variables; the meet is the union.
type Analysis struct{}

// New returns a live variable analysis
func New() *Analysis { return &Analysis{} }

func (a *Analysis) IsForward() bool { return false }

// NewBoundaryFact returns the empty set: no variable is live at the exit of a method
func (a *Analysis) NewBoundaryFact(dataflow.Graph[lang.Stmt]) *SetFact { return NewSetFact() }

func (a *Analysis) NewInitialFact() *SetFact { return NewSetFact() }

func (a *Analysis) MeetInto(fact *SetFact, target *SetFact) { target.Union(fact) }

// TransferNode computes IN = use(s) ∪ (OUT \ def(s))
func (a *Analysis) TransferNode(s lang.Stmt, in *SetFact, out *SetFact) bool {
	newIn := out.Copy()
	if def := s.Def(); def != nil {
		newIn.Remove(def)
	}
	for _, use := range s.Uses() {
		newIn.Add(use)
	}
	if newIn.Equal(in) {
		return false
	}
	in.Set(newIn)
	return true
}

// Solve runs the live variable analysis on g with the solver selected by kind
func Solve(kind dataflow.SolverKind, logger *config.LogGroup, g *cfg.CFG) *dataflow.Result[lang.Stmt, *SetFact] {
	logger.Debugf("live variables of %s", g.Method())
	return dataflow.Solve[lang.Stmt, *SetFact](kind, logger, New(), g)
}
