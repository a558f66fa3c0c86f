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
)

type valueKind uint8

const (
	undefKind valueKind = iota
	constKind
	nacKind
)

// Value is an element of the flat constant lattice: Undefined (bottom), a 32-bit constant, or NAC (top, not a
// constant). The zero Value is Undefined. Values are comparable with ==.
type Value struct {
	kind  valueKind
	value int32
}

var (
	// Undefined is the bottom of the lattice: no value has been seen yet
	Undefined = Value{kind: undefKind}
	// NAC is the top of the lattice: the variable may hold different values
	NAC = Value{kind: nacKind}
)

// Constant returns the lattice element of the constant c
func Constant(c int32) Value {
	return Value{kind: constKind, value: c}
}

func (v Value) IsUndefined() bool { return v.kind == undefKind }

func (v Value) IsConstant() bool { return v.kind == constKind }

func (v Value) IsNAC() bool { return v.kind == nacKind }

// Constant returns the constant of v. It panics if v is not a constant.
func (v Value) Constant() int32 {
	if v.kind != constKind {
		panic(fmt.Sprintf("constprop: %s is not a constant", v))
	}
	return v.value
}

func (v Value) String() string {
	switch v.kind {
	case undefKind:
		return "UNDEF"
	case constKind:
		return fmt.Sprintf("%d", v.value)
	case nacKind:
		return "NAC"
	default:
		panic("constprop: invalid value")
	}
}

// Meet returns the greatest lower bound of v1 and v2 in the information order: NAC absorbs everything, Undefined
// is the identity, and two different constants meet to NAC.
func Meet(v1 Value, v2 Value) Value {
	switch {
	case v1.IsNAC() || v2.IsNAC():
		return NAC
	case v1.IsUndefined():
		return v2
	case v2.IsUndefined():
		return v1
	case v1.value == v2.value:
		return v1
	default:
		return NAC
	}
}
