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

/*
The dataflow package implements the monotone dataflow framework shared by the intraprocedural analyses.

An analysis implements [Analysis] for a node type N and a fact type F: its direction, the boundary and initial facts,
the meet operator and the node transfer function. A graph implements [Graph]: its entry, its exit, its nodes and the
neighbours of each node. The control-flow graphs of package cfg are graphs over statements.

The result of an analysis is a [Result], which holds the IN and OUT facts of every node. Run the analysis with one of
the two solvers:

	res := dataflow.SolveIterative(logger, analysis, graph)
	res := dataflow.SolveWorklist(logger, analysis, graph)

or select the solver with a [SolverKind], for example from a config:

	res := dataflow.Solve(dataflow.SolverKind(cfg.LiveVariableSolver), logger, analysis, graph)

Both solvers work in both directions and compute the same fixpoint. The boundary node, the entry of a forward
analysis or the exit of a backward analysis, keeps its boundary fact.
*/
package dataflow
