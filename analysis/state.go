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

// Package analysis connects the configuration, the class hierarchy and the control-flow graphs of a program to the
// analyses: dead code detection per method, the CHA call graph, and interprocedural constant propagation.
package analysis

import (
	"errors"
	"fmt"
	"time"

	"github.com/awslabs/monoflow/analysis/callgraph"
	"github.com/awslabs/monoflow/analysis/cfg"
	"github.com/awslabs/monoflow/analysis/config"
	"github.com/awslabs/monoflow/analysis/constprop"
	"github.com/awslabs/monoflow/analysis/dataflow"
	"github.com/awslabs/monoflow/analysis/deadcode"
	"github.com/awslabs/monoflow/analysis/icfg"
	"github.com/awslabs/monoflow/analysis/inter"
	"github.com/awslabs/monoflow/analysis/lang"
	"github.com/awslabs/monoflow/analysis/livevar"
)

// ErrNoEntryPoints is returned when none of the methods of the hierarchy matches the entry points of the config
var ErrNoEntryPoints = errors.New("no method matches the configured entry points")

// State holds the program under analysis and the results computed so far. The call graph and the interprocedural
// control-flow graph are computed once, on first use.
type State struct {
	// The configuration of the analyses
	Config *config.Config

	// The logger used during the analysis
	Logger *config.LogGroup

	// The classes of the program
	Hierarchy *lang.ClassHierarchy

	cfgOf     func(*lang.Method) *cfg.CFG
	callGraph *callgraph.CallGraph
	icfg      *icfg.ICFG
}

// NewState returns a state for the program whose classes are in h and where cfgOf returns the control-flow graph
// of each non-abstract method.
func NewState(c *config.Config, h *lang.ClassHierarchy, cfgOf func(*lang.Method) *cfg.CFG) *State {
	return &State{
		Config:    c,
		Logger:    config.NewLogGroup(c),
		Hierarchy: h,
		cfgOf:     cfgOf,
	}
}

// CFGOf returns the control-flow graph of m
func (s *State) CFGOf(m *lang.Method) *cfg.CFG {
	return s.cfgOf(m)
}

// EntryMethods returns the non-abstract methods matching one of the entry points of the config
func (s *State) EntryMethods() []*lang.Method {
	var entries []*lang.Method
	for _, m := range s.Hierarchy.MethodsMatching(s.Config.IsEntryPoint) {
		if m.Abstract {
			s.Logger.Warnf("entry point %s is abstract, skipping", m)
			continue
		}
		entries = append(entries, m)
	}
	return entries
}

// LiveVariables runs the live variable analysis on m with the solver of the config
func (s *State) LiveVariables(m *lang.Method) *deadcode.LiveResult {
	return livevar.Solve(dataflow.SolverKind(s.Config.LiveVariableSolver), s.Logger, s.cfgOf(m))
}

// ConstantPropagation runs the intraprocedural constant propagation on m
func (s *State) ConstantPropagation(m *lang.Method) *deadcode.ConstantResult {
	return constprop.Solve(dataflow.Worklist, s.Logger, s.cfgOf(m))
}

// DeadCode returns the dead statements of m in program order. When the config skips dead assignments, only the
// unreachable statements are reported and the live variable analysis does not run.
func (s *State) DeadCode(m *lang.Method) []lang.Stmt {
	g := s.cfgOf(m)
	constants := s.ConstantPropagation(m)
	var dead []lang.Stmt
	if s.Config.SkipDeadAssignments {
		dead = deadcode.DetectUnreachable(g, constants)
	} else {
		dead = deadcode.Detect(g, constants, s.LiveVariables(m))
	}
	if len(dead) > 0 {
		s.Logger.Debugf("%d dead statements in %s", len(dead), m)
	}
	return dead
}

// CallGraph returns the CHA call graph of the methods reachable from the entry methods. It returns
// ErrNoEntryPoints when there is no entry method.
func (s *State) CallGraph() (*callgraph.CallGraph, error) {
	if s.callGraph != nil {
		return s.callGraph, nil
	}
	entries := s.EntryMethods()
	if len(entries) == 0 {
		return nil, ErrNoEntryPoints
	}
	start := time.Now()
	s.callGraph = callgraph.BuildCHA(s.Hierarchy, s.Logger, entries...)
	s.Logger.Infof("Call graph built (%.2f s).", time.Since(start).Seconds())
	return s.callGraph, nil
}

// ICFG returns the interprocedural control-flow graph of the methods of the call graph
func (s *State) ICFG() (*icfg.ICFG, error) {
	if s.icfg != nil {
		return s.icfg, nil
	}
	cg, err := s.CallGraph()
	if err != nil {
		return nil, fmt.Errorf("could not build icfg: %w", err)
	}
	s.icfg = icfg.Build(cg, s.cfgOf, s.Logger)
	return s.icfg, nil
}

// InterConstantPropagation runs the interprocedural constant propagation from the entry methods
func (s *State) InterConstantPropagation() (*dataflow.Result[lang.Stmt, *constprop.Fact], error) {
	g, err := s.ICFG()
	if err != nil {
		return nil, err
	}
	start := time.Now()
	res := inter.SolveConstantPropagation(s.Logger, g)
	s.Logger.Infof("Interprocedural constant propagation done (%.2f s).", time.Since(start).Seconds())
	return res, nil
}
