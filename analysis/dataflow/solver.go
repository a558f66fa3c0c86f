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

package dataflow

import (
	"fmt"

	"github.com/awslabs/monoflow/analysis/config"
	"github.com/awslabs/monoflow/internal/formatutil"
	"github.com/awslabs/monoflow/internal/funcutil"
	"github.com/awslabs/monoflow/internal/graphutil"
)

// SolverKind selects the fixpoint algorithm of Solve
type SolverKind string

const (
	// Iterative sweeps all the nodes of the graph until no fact changes
	Iterative SolverKind = config.IterativeSolver
	// Worklist only revisits the nodes whose neighbours have changed
	Worklist SolverKind = config.WorklistSolver
)

// Solve runs the analysis on g with the solver of the given kind. It panics on an unknown kind.
func Solve[N comparable, F any](kind SolverKind, logger *config.LogGroup, a Analysis[N, F], g Graph[N]) *Result[N, F] {
	switch kind {
	case Iterative:
		return SolveIterative(logger, a, g)
	case Worklist:
		return SolveWorklist(logger, a, g)
	default:
		panic(fmt.Sprintf("dataflow: unknown solver kind %q", kind))
	}
}

// initialize creates every fact of the result. The boundary node gets the boundary fact on both sides.
func initialize[N comparable, F any](a Analysis[N, F], g Graph[N]) (*Result[N, F], N) {
	res := NewResult[N, F]()
	boundary := g.Exit()
	if a.IsForward() {
		boundary = g.Entry()
	}
	for _, n := range g.Nodes() {
		if n == boundary {
			res.SetInFact(n, a.NewBoundaryFact(g))
			res.SetOutFact(n, a.NewBoundaryFact(g))
		} else {
			res.SetInFact(n, a.NewInitialFact())
			res.SetOutFact(n, a.NewInitialFact())
		}
	}
	return res, boundary
}

// update recomputes the directional input of n from its neighbours, starting from the initial fact, and applies the
// transfer function. It returns the result of the transfer.
func update[N comparable, F any](a Analysis[N, F], g Graph[N], res *Result[N, F], n N) bool {
	input := a.NewInitialFact()
	if a.IsForward() {
		for _, p := range g.Preds(n) {
			a.MeetInto(res.OutFact(p), input)
		}
		res.SetInFact(n, input)
	} else {
		for _, s := range g.Succs(n) {
			a.MeetInto(res.InFact(s), input)
		}
		res.SetOutFact(n, input)
	}
	return a.TransferNode(n, res.InFact(n), res.OutFact(n))
}

// SolveIterative computes the fixpoint of the analysis by sweeping over all the nodes of the graph until a sweep
// does not change any fact. Backward analyses visit the nodes in reverse topological order, forward analyses in
// topological order.
func SolveIterative[N comparable, F any](logger *config.LogGroup, a Analysis[N, F], g Graph[N]) *Result[N, F] {
	res, boundary := initialize(a, g)
	order := graphutil.ReverseTopologicalOrder(g.Nodes(), g.Succs)
	if a.IsForward() {
		funcutil.Reverse(order)
	}
	sweeps := 0
	for changed := true; changed; {
		changed = false
		sweeps++
		for _, n := range order {
			if n == boundary {
				continue
			}
			if update(a, g, res, n) {
				changed = true
			}
		}
	}
	logger.Debugf("iterative solver: fixpoint after %d sweeps over %d nodes", sweeps, len(order))
	traceResult(logger, g, res)
	return res
}

// SolveWorklist computes the fixpoint of the analysis with a worklist seeded with every node. A node whose transfer
// reports a change enqueues its successors (forward) or predecessors (backward).
func SolveWorklist[N comparable, F any](logger *config.LogGroup, a Analysis[N, F], g Graph[N]) *Result[N, F] {
	res, boundary := initialize(a, g)
	worklist := funcutil.NewSetQueue[N]()
	worklist.PushAll(g.Nodes())
	visits := 0
	for !worklist.IsEmpty() {
		n := worklist.Pop()
		if n == boundary {
			continue
		}
		visits++
		if !update(a, g, res, n) {
			continue
		}
		if a.IsForward() {
			worklist.PushAll(g.Succs(n))
		} else {
			worklist.PushAll(g.Preds(n))
		}
	}
	logger.Debugf("worklist solver: fixpoint after %d visits of %d nodes", visits, len(g.Nodes()))
	traceResult(logger, g, res)
	return res
}

func traceResult[N comparable, F any](logger *config.LogGroup, g Graph[N], res *Result[N, F]) {
	if !logger.LogsTrace() {
		return
	}
	for _, n := range g.Nodes() {
		logger.Tracef("%s\n\tin:  %v\n\tout: %v", formatutil.Cyan(n), res.InFact(n), res.OutFact(n))
	}
}
