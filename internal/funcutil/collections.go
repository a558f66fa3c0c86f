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

package funcutil

import (
	"golang.org/x/exp/constraints"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// Map returns a new slice containing f(x) for every x of a, in order.
func Map[T any, S any](a []T, f func(T) S) []S {
	b := make([]S, 0, len(a))
	for _, x := range a {
		b = append(b, f(x))
	}
	return b
}

// Filter returns the elements of a for which keep returns true, in order. The result is nil when no element is
// kept.
func Filter[T any](a []T, keep func(T) bool) []T {
	var b []T
	for _, x := range a {
		if keep(x) {
			b = append(b, x)
		}
	}
	return b
}

// Distinct returns the elements of a without duplicates, in order of first occurrence. a is not modified.
func Distinct[T comparable](a []T) []T {
	var b []T
	for _, x := range a {
		if !slices.Contains(b, x) {
			b = append(b, x)
		}
	}
	return b
}

// SortedKeys returns the keys of m in increasing order.
func SortedKeys[K constraints.Ordered, V any](m map[K]V) []K {
	keys := maps.Keys(m)
	slices.Sort(keys)
	return keys
}

// Reverse reverses the slice a in place.
func Reverse[T any](a []T) {
	for i, j := 0, len(a)-1; i < j; i, j = i+1, j-1 {
		a[i], a[j] = a[j], a[i]
	}
}
