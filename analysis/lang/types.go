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

package lang

// Type is the type of a variable. Only the primitive types whose values fit in a 32-bit integer participate in
// constant propagation, see [Type.CanHoldInt].
type Type int

const (
	// Reference is the type of every object or array variable
	Reference Type = iota
	Byte
	Short
	Int
	Char
	Boolean
	Long
	Float
	Double
)

var typeNames = [...]string{
	Reference: "ref",
	Byte:      "byte",
	Short:     "short",
	Int:       "int",
	Char:      "char",
	Boolean:   "boolean",
	Long:      "long",
	Float:     "float",
	Double:    "double",
}

// CanHoldInt returns true when values of the type are 32-bit integers: byte, short, int, char and boolean.
func (t Type) CanHoldInt() bool {
	switch t {
	case Byte, Short, Int, Char, Boolean:
		return true
	default:
		return false
	}
}

func (t Type) String() string {
	if t < 0 || int(t) >= len(typeNames) {
		return "?"
	}
	return typeNames[t]
}
