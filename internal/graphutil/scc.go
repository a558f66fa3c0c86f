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

// Package graphutil contains graph algorithms shared by the analyses: strongly connected components, node
// orderings for iterative solvers and elementary cycle enumeration.
package graphutil

// StronglyConnectedComponents computes the strongly connected components of the graph given by nodes and successors
// using Tarjan's algorithm. The components are returned in reverse topological order: no node of a component
// reaches a node of a component that appears after it.
func StronglyConnectedComponents[T comparable](nodes []T, successors func(T) []T) (sccs [][]T) {
	var stack []T
	onStack := map[T]bool{}
	index := map[T]int{}
	lowlink := map[T]int{}
	nextIndex := 0

	var visit func(v T)
	visit = func(v T) {
		index[v] = nextIndex
		lowlink[v] = nextIndex
		nextIndex++
		stack = append(stack, v)
		onStack[v] = true
		for _, w := range successors(v) {
			if _, ok := index[w]; !ok {
				visit(w)
				lowlink[v] = min(lowlink[v], lowlink[w])
			} else if onStack[w] {
				lowlink[v] = min(lowlink[v], index[w])
			}
		}
		if lowlink[v] != index[v] {
			return
		}
		var scc []T
		for {
			w := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			onStack[w] = false
			scc = append(scc, w)
			if w == v {
				break
			}
		}
		sccs = append(sccs, scc)
	}

	for _, v := range nodes {
		if _, ok := index[v]; !ok {
			visit(v)
		}
	}
	return sccs
}

// ReverseTopologicalOrder flattens the strongly connected components of the graph: nodes that are reached by
// others come first. Inside a component, nodes keep the order in which Tarjan's algorithm popped them.
func ReverseTopologicalOrder[T comparable](nodes []T, successors func(T) []T) []T {
	order := make([]T, 0, len(nodes))
	for _, scc := range StronglyConnectedComponents(nodes, successors) {
		order = append(order, scc...)
	}
	return order
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
