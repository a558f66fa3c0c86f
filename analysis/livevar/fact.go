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

package livevar

import (
	"fmt"
	"strings"

	"github.com/awslabs/monoflow/analysis/lang"
	fn "github.com/awslabs/monoflow/internal/funcutil"
	"golang.org/x/tools/container/intsets"
)

// SetFact is a set of variables of one method. The set is stored as a sparse bit set indexed by the position of the
// variables in the variable table of their method.
type SetFact struct {
	bits intsets.Sparse
	vars map[int]*lang.Var
}

// NewSetFact returns a set containing vars
func NewSetFact(vars ...*lang.Var) *SetFact {
	s := &SetFact{vars: map[int]*lang.Var{}}
	for _, v := range vars {
		s.Add(v)
	}
	return s
}

// Add adds v to the set and returns true if v was not already in the set. Add panics if the set contains a different
// variable with the same index, which happens when variables of different methods are mixed.
func (s *SetFact) Add(v *lang.Var) bool {
	if w, ok := s.vars[v.Index]; ok && w != v {
		panic(fmt.Sprintf("livevar: variables %s and %s have the same index", v, w))
	}
	s.vars[v.Index] = v
	return s.bits.Insert(v.Index)
}

// Remove removes v from the set and returns true if v was in the set
func (s *SetFact) Remove(v *lang.Var) bool {
	return s.bits.Remove(v.Index)
}

// Contains returns true if v is in the set
func (s *SetFact) Contains(v *lang.Var) bool {
	return s.bits.Has(v.Index) && s.vars[v.Index] == v
}

// Union adds all the variables of other to s and returns true if s changed
func (s *SetFact) Union(other *SetFact) bool {
	for i, v := range other.vars {
		if other.bits.Has(i) {
			if w, ok := s.vars[i]; ok && w != v {
				panic(fmt.Sprintf("livevar: variables %s and %s have the same index", v, w))
			}
			s.vars[i] = v
		}
	}
	return s.bits.UnionWith(&other.bits)
}

// Set replaces the contents of s by the contents of other
func (s *SetFact) Set(other *SetFact) {
	s.bits.Copy(&other.bits)
	for i, v := range other.vars {
		s.vars[i] = v
	}
}

// Copy returns a new set with the same variables as s
func (s *SetFact) Copy() *SetFact {
	c := NewSetFact()
	c.Set(s)
	return c
}

// Equal returns true if s and other contain the same variables
func (s *SetFact) Equal(other *SetFact) bool {
	return s.bits.Equals(&other.bits)
}

// Len returns the number of variables in the set
func (s *SetFact) Len() int {
	return s.bits.Len()
}

// Vars returns the variables of the set, ordered by index
func (s *SetFact) Vars() []*lang.Var {
	return fn.Map(s.bits.AppendTo(nil), func(i int) *lang.Var { return s.vars[i] })
}

func (s *SetFact) String() string {
	return "{" + strings.Join(fn.Map(s.Vars(), (*lang.Var).String), ", ") + "}"
}
