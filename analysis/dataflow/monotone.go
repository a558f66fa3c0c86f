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

import "fmt"

// Graph is the view of a control-flow graph that the intraprocedural solvers need. Nodes must return the nodes in a
// stable order, and include the entry and the exit.
type Graph[N comparable] interface {
	Nodes() []N
	Entry() N
	Exit() N
	Preds(n N) []N
	Succs(n N) []N
}

// Analysis is a monotone dataflow analysis over nodes of type N with facts of type F. Facts are mutable values
// (typically pointers) that the solvers update in place.
type Analysis[N comparable, F any] interface {
	// IsForward returns true for forward analyses and false for backward analyses
	IsForward() bool

	// NewBoundaryFact returns the fact of the entry node of g for forward analyses, of the exit node for backward
	// analyses
	NewBoundaryFact(g Graph[N]) F

	// NewInitialFact returns the bottom of the lattice, the identity of MeetInto
	NewInitialFact() F

	// MeetInto meets fact into target, modifying target
	MeetInto(fact F, target F)

	// TransferNode recomputes out from in (forward) or in from out (backward) and returns true if the recomputed
	// fact is not equal to its previous value
	TransferNode(node N, in F, out F) bool
}

// Result holds the IN and OUT facts of every node of a graph
type Result[N comparable, F any] struct {
	in  map[N]F
	out map[N]F
}

// NewResult returns an empty result
func NewResult[N comparable, F any]() *Result[N, F] {
	return &Result[N, F]{in: map[N]F{}, out: map[N]F{}}
}

// InFact returns the IN fact of n. It panics if the result has no fact for n.
func (r *Result[N, F]) InFact(n N) F {
	f, ok := r.in[n]
	if !ok {
		panic(fmt.Sprintf("dataflow: no IN fact for %v", n))
	}
	return f
}

// OutFact returns the OUT fact of n. It panics if the result has no fact for n.
func (r *Result[N, F]) OutFact(n N) F {
	f, ok := r.out[n]
	if !ok {
		panic(fmt.Sprintf("dataflow: no OUT fact for %v", n))
	}
	return f
}

// Has returns true if the result holds facts for n
func (r *Result[N, F]) Has(n N) bool {
	_, ok := r.in[n]
	return ok
}

// SetInFact sets the IN fact of n
func (r *Result[N, F]) SetInFact(n N, f F) { r.in[n] = f }

// SetOutFact sets the OUT fact of n
func (r *Result[N, F]) SetOutFact(n N, f F) { r.out[n] = f }
