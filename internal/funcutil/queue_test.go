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

import "testing"

func TestSetQueueFIFO(t *testing.T) {
	q := NewSetQueue[int]()
	q.PushAll([]int{3, 1, 2})
	for _, want := range []int{3, 1, 2} {
		if got := q.Pop(); got != want {
			t.Fatalf("expected %d, got %d", want, got)
		}
	}
	if !q.IsEmpty() {
		t.Errorf("queue should be empty")
	}
}

func TestSetQueueDeduplicatesPending(t *testing.T) {
	q := NewSetQueue[string]()
	if !q.Push("a") {
		t.Errorf("first push of a should succeed")
	}
	if q.Push("a") {
		t.Errorf("second push of a should be a no-op while a is pending")
	}
	q.Push("b")
	if q.Len() != 2 {
		t.Fatalf("expected 2 pending elements, got %d", q.Len())
	}
	if x := q.Pop(); x != "a" {
		t.Fatalf("expected a, got %s", x)
	}
	if q.Has("a") {
		t.Errorf("a should not be pending after pop")
	}
	if !q.Push("a") {
		t.Errorf("a should be accepted again after it was popped")
	}
}

func TestSetQueuePopEmptyPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Errorf("pop on empty queue should panic")
		}
	}()
	NewSetQueue[int]().Pop()
}

func TestSortedKeysAndReverse(t *testing.T) {
	s := SortedKeys(map[string]bool{"c": true, "a": true, "b": false})
	if len(s) != 3 || s[0] != "a" || s[1] != "b" || s[2] != "c" {
		t.Fatalf("unexpected sorted keys %v", s)
	}
	Reverse(s)
	if s[0] != "c" || s[2] != "a" {
		t.Errorf("unexpected reversed slice %v", s)
	}
}

func TestFilterAndDistinct(t *testing.T) {
	a := []int{3, 1, 3, 2, 1}
	if d := Distinct(a); len(d) != 3 || d[0] != 3 || d[1] != 1 || d[2] != 2 {
		t.Errorf("unexpected distinct elements %v", d)
	}
	if a[1] != 1 || a[2] != 3 {
		t.Errorf("Distinct should not modify its argument, got %v", a)
	}
	odd := Filter(a, func(x int) bool { return x%2 == 1 })
	if len(odd) != 4 {
		t.Errorf("expected four odd elements, got %v", odd)
	}
	if Filter(a, func(x int) bool { return x > 3 }) != nil {
		t.Errorf("filtering out every element should return nil")
	}
}
