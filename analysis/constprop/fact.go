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

package constprop

import (
	"fmt"
	"sort"
	"strings"

	"github.com/awslabs/monoflow/analysis/lang"
)

// Fact maps variables to values. Variables absent from the map are Undefined: updating a variable to Undefined
// removes it, so two facts are equal exactly when their maps are equal.
type Fact struct {
	values map[*lang.Var]Value
}

// NewFact returns a fact where every variable is Undefined
func NewFact() *Fact {
	return &Fact{values: map[*lang.Var]Value{}}
}

// Get returns the value of v
func (f *Fact) Get(v *lang.Var) Value {
	return f.values[v]
}

// Update sets the value of v and returns true if it changed. It panics if v cannot hold an int.
func (f *Fact) Update(v *lang.Var, val Value) bool {
	if !v.Type.CanHoldInt() {
		panic(fmt.Sprintf("constprop: variable %s of type %s cannot hold a constant", v, v.Type))
	}
	old := f.values[v]
	if val.IsUndefined() {
		delete(f.values, v)
	} else {
		f.values[v] = val
	}
	return old != val
}

// Copy returns a new fact with the same bindings
func (f *Fact) Copy() *Fact {
	c := NewFact()
	for v, val := range f.values {
		c.values[v] = val
	}
	return c
}

// CopyFrom replaces the bindings of f by those of other and returns true if f changed
func (f *Fact) CopyFrom(other *Fact) bool {
	if f.Equal(other) {
		return false
	}
	f.values = make(map[*lang.Var]Value, len(other.values))
	for v, val := range other.values {
		f.values[v] = val
	}
	return true
}

// Equal returns true if f and other bind the same variables to the same values
func (f *Fact) Equal(other *Fact) bool {
	if len(f.values) != len(other.values) {
		return false
	}
	for v, val := range f.values {
		if otherVal, ok := other.values[v]; !ok || otherVal != val {
			return false
		}
	}
	return true
}

// Vars returns the variables that are not Undefined, sorted by name and then by index
func (f *Fact) Vars() []*lang.Var {
	vars := make([]*lang.Var, 0, len(f.values))
	for v := range f.values {
		vars = append(vars, v)
	}
	sort.Slice(vars, func(i, j int) bool {
		if vars[i].Name != vars[j].Name {
			return vars[i].Name < vars[j].Name
		}
		return vars[i].Index < vars[j].Index
	})
	return vars
}

// Len returns the number of variables that are not Undefined
func (f *Fact) Len() int {
	return len(f.values)
}

func (f *Fact) String() string {
	var b strings.Builder
	b.WriteString("{")
	for i, v := range f.Vars() {
		if i > 0 {
			b.WriteString(", ")
		}
		fmt.Fprintf(&b, "%s=%s", v, f.values[v])
	}
	b.WriteString("}")
	return b.String()
}
