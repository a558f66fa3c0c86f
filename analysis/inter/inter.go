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

// Package inter implements interprocedural dataflow analyses over an ICFG: analyses transfer facts along the
// call, return and call-to-return edges in addition to the nodes.
package inter

import (
	"fmt"

	"github.com/awslabs/monoflow/analysis/config"
	"github.com/awslabs/monoflow/analysis/dataflow"
	"github.com/awslabs/monoflow/analysis/icfg"
	"github.com/awslabs/monoflow/analysis/lang"
	"github.com/awslabs/monoflow/internal/funcutil"
)

// Analysis is a forward interprocedural dataflow analysis with facts of type F. The edge transfer functions return
// a new fact and must not modify the fact of the source of the edge.
type Analysis[F any] interface {
	IsForward() bool

	// NewBoundaryFact returns the fact at the entry of the entry method m
	NewBoundaryFact(m *lang.Method) F

	NewInitialFact() F

	MeetInto(fact F, target F)

	// TransferCallNode computes the OUT fact of a call site; the effect of the call is on the edges
	TransferCallNode(n lang.Stmt, in F, out F) bool

	TransferNonCallNode(n lang.Stmt, in F, out F) bool

	TransferNormalEdge(e *icfg.Edge, out F) F

	TransferCallToReturnEdge(e *icfg.Edge, out F) F

	// TransferCallEdge maps the OUT fact of the call site to the IN fact of the callee entry
	TransferCallEdge(e *icfg.Edge, callSiteOut F) F

	// TransferReturnEdge maps the OUT fact of the callee exit to a fact of the return site
	TransferReturnEdge(e *icfg.Edge, calleeExitOut F) F
}

// TransferEdge applies the edge transfer function of a that corresponds to the kind of e
func TransferEdge[F any](a Analysis[F], e *icfg.Edge, out F) F {
	switch e.Kind {
	case icfg.Normal:
		return a.TransferNormalEdge(e, out)
	case icfg.CallToReturn:
		return a.TransferCallToReturnEdge(e, out)
	case icfg.Call:
		return a.TransferCallEdge(e, out)
	case icfg.Return:
		return a.TransferReturnEdge(e, out)
	default:
		panic(fmt.Sprintf("inter: unknown edge kind %s", e.Kind))
	}
}

// Solve computes the fixpoint of the analysis over g with a worklist. The entry nodes of the entry methods hold the
// boundary fact; the IN fact of any other node is the meet of the transferred OUT facts of its in edges.
func Solve[F any](logger *config.LogGroup, a Analysis[F], g *icfg.ICFG) *dataflow.Result[lang.Stmt, F] {
	if !a.IsForward() {
		panic("inter: only forward analyses are supported")
	}
	res := dataflow.NewResult[lang.Stmt, F]()
	for _, n := range g.Nodes() {
		res.SetInFact(n, a.NewInitialFact())
		res.SetOutFact(n, a.NewInitialFact())
	}
	boundary := map[lang.Stmt]bool{}
	for _, m := range g.EntryMethods() {
		entry := g.EntryOf(m)
		boundary[entry] = true
		res.SetInFact(entry, a.NewBoundaryFact(m))
		res.SetOutFact(entry, a.NewBoundaryFact(m))
	}

	worklist := funcutil.NewSetQueue[lang.Stmt]()
	worklist.PushAll(g.Nodes())
	visits := 0
	for !worklist.IsEmpty() {
		n := worklist.Pop()
		if boundary[n] {
			continue
		}
		visits++
		in := a.NewInitialFact()
		for _, e := range g.InEdges(n) {
			a.MeetInto(TransferEdge(a, e, res.OutFact(e.Source)), in)
		}
		res.SetInFact(n, in)
		var changed bool
		if g.IsCallSite(n) {
			changed = a.TransferCallNode(n, in, res.OutFact(n))
		} else {
			changed = a.TransferNonCallNode(n, in, res.OutFact(n))
		}
		if changed {
			worklist.PushAll(g.Succs(n))
		}
	}
	logger.Debugf("interprocedural solver: fixpoint after %d visits of %d nodes", visits, len(g.Nodes()))
	return res
}
