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

	"github.com/awslabs/monoflow/analysis/lang"
)

// Evaluate returns the abstract value of e in the fact:
//   - a literal is its constant;
//   - a variable that can hold an int has its value in the fact, other variables are NAC;
//   - a binary expression divides by zero (Undefined), or has a NAC operand (NAC), or has constant operands
//     (the constant result), or else is Undefined;
//   - any other expression is NAC.
func Evaluate(e lang.Exp, fact *Fact) Value {
	switch e := e.(type) {
	case lang.IntLiteral:
		return Constant(int32(e))
	case *lang.Var:
		if !e.Type.CanHoldInt() {
			return NAC
		}
		return fact.Get(e)
	case *lang.BinaryExp:
		x := Evaluate(e.X, fact)
		y := Evaluate(e.Y, fact)
		if e.Op.IsDivision() && y.IsConstant() && y.Constant() == 0 {
			return Undefined
		}
		if x.IsNAC() || y.IsNAC() {
			return NAC
		}
		if x.IsConstant() && y.IsConstant() {
			return Constant(compute(e.Op, x.Constant(), y.Constant()))
		}
		return Undefined
	default:
		return NAC
	}
}

// compute applies op with the semantics of 32-bit two's complement integers. The divisor of Div and Rem must not
// be zero.
//
//gocyclo:ignore
func compute(op lang.BinaryOp, x int32, y int32) int32 {
	shift := uint32(y) & 0x1f
	switch op {
	case lang.Add:
		return x + y
	case lang.Sub:
		return x - y
	case lang.Mul:
		return x * y
	case lang.Div:
		return x / y
	case lang.Rem:
		return x % y
	case lang.Eq:
		return boolToInt(x == y)
	case lang.Ne:
		return boolToInt(x != y)
	case lang.Lt:
		return boolToInt(x < y)
	case lang.Gt:
		return boolToInt(x > y)
	case lang.Le:
		return boolToInt(x <= y)
	case lang.Ge:
		return boolToInt(x >= y)
	case lang.Shl:
		return x << shift
	case lang.Shr:
		return x >> shift
	case lang.Ushr:
		return int32(uint32(x) >> shift)
	case lang.Or:
		return x | y
	case lang.And:
		return x & y
	case lang.Xor:
		return x ^ y
	default:
		panic(fmt.Sprintf("constprop: unknown operator %s", op))
	}
}

func boolToInt(b bool) int32 {
	if b {
		return 1
	}
	return 0
}
