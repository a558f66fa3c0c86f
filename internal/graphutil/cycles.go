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
	"github.com/yourbasic/graph"
)

// FindAllElementaryCycles returns all the elementary cycles of cg, using Johnson's algorithm.
// Each cycle is returned as the list of the node IDs along the cycle, starting and ending with its smallest node.
//
// "Finding all the elementary circuits of a directed graph", Donald B. Johnson, SIAM J. Comput. 1975.
func FindAllElementaryCycles(cg CGraph) [][]int64 {
	s := &cycleState{}
	for i, start := range cg.Keys {
		fg := Subgraph(cg, cg.Keys[i:])
		for _, component := range graph.StrongComponents(fg) {
			if !containsNode(component, start) {
				continue
			}
			if len(component) < 2 && !cg.Edges[start][start] {
				break
			}
			ids := make([]int64, len(component))
			for j, v := range component {
				ids[j] = int64(v)
			}
			s.blocked = map[int64]bool{}
			s.blist = map[int64]map[int64]bool{}
			s.stack = nil
			s.circuit(start, start, Subgraph(cg, ids))
			break
		}
	}
	return s.cycles
}

func containsNode(component []int, id int64) bool {
	for _, v := range component {
		if int64(v) == id {
			return true
		}
	}
	return false
}

type cycleState struct {
	blocked map[int64]bool
	blist   map[int64]map[int64]bool
	stack   []int64
	cycles  [][]int64
}

func (s *cycleState) unblock(u int64) {
	s.blocked[u] = false
	for w := range s.blist[u] {
		delete(s.blist[u], w)
		if s.blocked[w] {
			s.unblock(w)
		}
	}
}

func (s *cycleState) circuit(v int64, start int64, g CGraph) bool {
	found := false
	s.stack = append(s.stack, v)
	s.blocked[v] = true
	for _, w := range sortedKeys(g.Edges[v]) {
		if w == start {
			cycle := make([]int64, len(s.stack), len(s.stack)+1)
			copy(cycle, s.stack)
			s.cycles = append(s.cycles, append(cycle, w))
			found = true
		} else if !s.blocked[w] && s.circuit(w, start, g) {
			found = true
		}
	}

	if found {
		s.unblock(v)
	} else {
		for w := range g.Edges[v] {
			if s.blist[w] == nil {
				s.blist[w] = map[int64]bool{}
			}
			s.blist[w][v] = true
		}
	}
	s.stack = s.stack[:len(s.stack)-1]
	return found
}
