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
	"testing"

	"github.com/awslabs/monoflow/analysis/config"
	"github.com/awslabs/monoflow/internal/funcutil"
)

type testGraph struct {
	n     int
	entry int
	exit  int
	succs map[int][]int
	preds map[int][]int
}

func newTestGraph(n int, entry int, exit int, edges [][2]int) *testGraph {
	g := &testGraph{n: n, entry: entry, exit: exit, succs: map[int][]int{}, preds: map[int][]int{}}
	for _, e := range edges {
		g.succs[e[0]] = append(g.succs[e[0]], e[1])
		g.preds[e[1]] = append(g.preds[e[1]], e[0])
	}
	return g
}

func (g *testGraph) Nodes() []int {
	nodes := make([]int, g.n)
	for i := range nodes {
		nodes[i] = i
	}
	return nodes
}

func (g *testGraph) Entry() int { return g.entry }
func (g *testGraph) Exit() int { return g.exit }
func (g *testGraph) Preds(n int) []int { return g.preds[n] }
func (g *testGraph) Succs(n int) []int { return g.succs[n] }

type nodeSet map[int]bool

func (s nodeSet) String() string {
	return fmt.Sprintf("%v", funcutil.SortedKeys(s))
}

// pathAnalysis collects the nodes on some path from the boundary to each node
type pathAnalysis struct {
	forward bool
}

func (p pathAnalysis) IsForward() bool { return p.forward }

func (p pathAnalysis) NewBoundaryFact(g Graph[int]) nodeSet {
	if p.forward {
		return nodeSet{g.Entry(): true}
	}
	return nodeSet{g.Exit(): true}
}

func (p pathAnalysis) NewInitialFact() nodeSet { return nodeSet{} }

func (p pathAnalysis) MeetInto(fact nodeSet, target nodeSet) {
	for x := range fact {
		target[x] = true
	}
}

func (p pathAnalysis) TransferNode(n int, in nodeSet, out nodeSet) bool {
	src, dst := in, out
	if !p.forward {
		src, dst = out, in
	}
	before := len(dst)
	for x := range src {
		dst[x] = true
	}
	dst[n] = true
	return len(dst) != before
}

// 0 is the entry, 5 the exit, 1 <-> 2 is a loop and 6 is unreachable from the entry
var loopGraph = newTestGraph(7, 0, 5, [][2]int{
	{0, 1}, {1, 2}, {2, 1}, {2, 3}, {1, 4}, {4, 3}, {3, 5}, {6, 5},
})

func checkFacts(t *testing.T, name string, facts func(int) nodeSet, expected map[int]string) {
	for n, want := range expected {
		if got := facts(n).String(); got != want {
			t.Errorf("%s: node %d has fact %s, expected %s", name, n, got, want)
		}
	}
}

func TestForwardSolvers(t *testing.T) {
	logger := config.NewLogGroup(config.NewDefault())
	expected := map[int]string{
		0: "[0]",
		1: "[0 1 2]",
		2: "[0 1 2]",
		3: "[0 1 2 3 4]",
		4: "[0 1 2 4]",
		5: "[0 1 2 3 4 5 6]",
		6: "[6]",
	}
	for _, kind := range []SolverKind{Iterative, Worklist} {
		res := Solve[int, nodeSet](kind, logger, pathAnalysis{forward: true}, loopGraph)
		checkFacts(t, string(kind), res.OutFact, expected)
		if res.InFact(0).String() != "[0]" {
			t.Errorf("%s: boundary IN fact should be [0], got %s", kind, res.InFact(0))
		}
		if res.InFact(6).String() != "[]" {
			t.Errorf("%s: node without predecessor should have an empty IN fact", kind)
		}
	}
}

func TestBackwardSolvers(t *testing.T) {
	logger := config.NewLogGroup(config.NewDefault())
	expected := map[int]string{
		0: "[0 1 2 3 4 5]",
		1: "[1 2 3 4 5]",
		2: "[1 2 3 4 5]",
		3: "[3 5]",
		4: "[3 4 5]",
		5: "[5]",
		6: "[5 6]",
	}
	iterative := SolveIterative[int, nodeSet](logger, pathAnalysis{forward: false}, loopGraph)
	worklist := SolveWorklist[int, nodeSet](logger, pathAnalysis{forward: false}, loopGraph)
	checkFacts(t, "iterative", iterative.InFact, expected)
	checkFacts(t, "worklist", worklist.InFact, expected)
	for _, n := range loopGraph.Nodes() {
		if iterative.OutFact(n).String() != worklist.OutFact(n).String() {
			t.Errorf("solvers disagree on OUT[%d]: %s vs %s", n, iterative.OutFact(n), worklist.OutFact(n))
		}
	}
}

func TestResultPanicsOnUnknownNode(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Errorf("querying a node absent from the result should panic")
		}
	}()
	res := NewResult[int, nodeSet]()
	res.SetInFact(0, nodeSet{})
	if !res.Has(0) || res.Has(1) {
		t.Errorf("Has should only report nodes with facts")
	}
	res.OutFact(1)
}

func TestSolvePanicsOnUnknownKind(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Errorf("an unknown solver kind should panic")
		}
	}()
	Solve[int, nodeSet]("chaotic", config.NewLogGroup(config.NewDefault()), pathAnalysis{}, loopGraph)
}
