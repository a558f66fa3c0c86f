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

package graphutil

import (
	"fmt"
	"sort"
	"testing"

	"gonum.org/v1/gonum/graph/topo"
)

func cycleStrings(cycles [][]int64) []string {
	var s []string
	for _, c := range cycles {
		s = append(s, fmt.Sprint(c))
	}
	sort.Strings(s)
	return s
}

func TestFindAllElementaryCycles(t *testing.T) {
	// 0 -> 1 -> 2 -> 0, 1 -> 1, 2 -> 3, 3 -> 2, 4 isolated
	g := NewCGraph([]string{"a", "b", "c", "d", "e"},
		[][2]int64{{0, 1}, {1, 2}, {2, 0}, {1, 1}, {2, 3}, {3, 2}})
	got := cycleStrings(FindAllElementaryCycles(g))
	expected := []string{"[0 1 2 0]", "[1 1]", "[2 3 2]"}
	if len(got) != len(expected) {
		t.Fatalf("expected cycles %v, got %v", expected, got)
	}
	for i := range got {
		if got[i] != expected[i] {
			t.Errorf("expected cycles %v, got %v", expected, got)
		}
	}
}

func TestFindAllElementaryCyclesAcyclic(t *testing.T) {
	g := NewCGraph([]string{"a", "b", "c"}, [][2]int64{{0, 1}, {1, 2}, {0, 2}})
	if cycles := FindAllElementaryCycles(g); len(cycles) != 0 {
		t.Errorf("expected no cycles, got %v", cycles)
	}
}

func TestCGraphIsGonumDirected(t *testing.T) {
	g := NewCGraph([]string{"main", "f", "g"}, [][2]int64{{0, 1}, {1, 2}, {2, 1}, {5, 0}})
	if g.Node(5) != nil {
		t.Errorf("node 5 should not be in the graph")
	}
	if !g.HasEdgeFromTo(2, 1) || g.HasEdgeFromTo(0, 2) {
		t.Errorf("unexpected edges")
	}
	if g.To(1).Len() != 2 {
		t.Errorf("expected 2 predecessors for node 1, got %d", g.To(1).Len())
	}
	if e := g.Edge(0, 1); e == nil || e.From().ID() != 0 || e.ReversedEdge().From().ID() != 1 {
		t.Errorf("unexpected edge %v", e)
	}
	sccs := topo.TarjanSCC(g)
	if len(sccs) != 2 {
		t.Fatalf("expected 2 components, got %d", len(sccs))
	}
	// callees come before callers
	if len(sccs[0]) != 2 || len(sccs[1]) != 1 || sccs[1][0].ID() != 0 {
		t.Errorf("unexpected component order %v", sccs)
	}
}
