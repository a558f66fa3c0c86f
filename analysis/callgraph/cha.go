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

package callgraph

import (
	"github.com/awslabs/monoflow/analysis/config"
	"github.com/awslabs/monoflow/analysis/lang"
	"github.com/awslabs/monoflow/internal/funcutil"
	"golang.org/x/exp/slices"
)

// BuildCHA builds the call graph of the methods reachable from the entries, resolving the callees of each call
// site with class hierarchy analysis.
func BuildCHA(h lang.Hierarchy, logger *config.LogGroup, entries ...*lang.Method) *CallGraph {
	cg := New(entries...)
	worklist := funcutil.NewSetQueue[*lang.Method]()
	worklist.PushAll(entries)
	visited := map[*lang.Method]bool{}
	for !worklist.IsEmpty() {
		m := worklist.Pop()
		if visited[m] {
			continue
		}
		visited[m] = true
		for _, site := range m.CallSites() {
			callees := Resolve(h, site.Call)
			if len(callees) == 0 {
				logger.Debugf("no callee for %s in %s", site, m)
			}
			for _, callee := range callees {
				cg.AddEdge(site.Call.Kind, m, site, callee)
				if !visited[callee] {
					worklist.Push(callee)
				}
			}
		}
	}
	logger.Infof("CHA call graph: %d reachable methods, %d call edges", len(cg.order), len(cg.edges))
	return cg
}

// Resolve returns the methods that call may invoke according to the class hierarchy:
//   - static and special calls dispatch once from the declared class;
//   - virtual and interface calls dispatch from every subtype of the declared class;
//   - other calls have no callee.
func Resolve(h lang.Hierarchy, call *lang.InvokeExp) []*lang.Method {
	declared := h.ClassByName(call.Ref.Class)
	if declared == nil {
		return nil
	}
	switch call.Kind {
	case lang.Static, lang.Special:
		if m := Dispatch(declared, call.Ref.Subsig); m != nil {
			return []*lang.Method{m}
		}
		return nil
	case lang.Virtual, lang.Interface:
		var callees []*lang.Method
		for _, c := range subtypes(h, declared) {
			if m := Dispatch(c, call.Ref.Subsig); m != nil && !slices.Contains(callees, m) {
				callees = append(callees, m)
			}
		}
		return callees
	default:
		return nil
	}
}

// subtypes returns c and all its subtypes in breadth-first order: subclasses for classes, sub-interfaces and
// implementors for interfaces
func subtypes(h lang.Hierarchy, c *lang.Class) []*lang.Class {
	seen := map[*lang.Class]bool{c: true}
	queue := []*lang.Class{c}
	for i := 0; i < len(queue); i++ {
		cur := queue[i]
		var next []*lang.Class
		if cur.IsInterface {
			next = append(next, h.DirectSubinterfacesOf(cur)...)
			next = append(next, h.DirectImplementorsOf(cur)...)
		} else {
			next = h.DirectSubclassesOf(cur)
		}
		for _, sub := range next {
			if !seen[sub] {
				seen[sub] = true
				queue = append(queue, sub)
			}
		}
	}
	return queue
}

// Dispatch returns the first non-abstract method with the sub-signature subsig declared in c or in one of its super
// classes, or nil
func Dispatch(c *lang.Class, subsig string) *lang.Method {
	for ; c != nil; c = c.Super {
		if m := c.DeclaredMethod(subsig); m != nil && !m.Abstract {
			return m
		}
	}
	return nil
}
