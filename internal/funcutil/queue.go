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

// SetQueue is a FIFO queue in which each element is pending at most once: pushing an element that is already
// in the queue has no effect. Once popped, an element can be pushed again.
type SetQueue[T comparable] struct {
	items   []T
	pending map[T]bool
}

// NewSetQueue returns an empty queue.
func NewSetQueue[T comparable]() *SetQueue[T] {
	return &SetQueue[T]{pending: map[T]bool{}}
}

// Push adds x at the end of the queue if it is not already pending, and reports whether it was added.
func (q *SetQueue[T]) Push(x T) bool {
	if q.pending[x] {
		return false
	}
	q.pending[x] = true
	q.items = append(q.items, x)
	return true
}

// PushAll pushes every element of xs, in order.
func (q *SetQueue[T]) PushAll(xs []T) {
	for _, x := range xs {
		q.Push(x)
	}
}

// Pop removes and returns the first element of the queue. Pop panics if the queue is empty.
func (q *SetQueue[T]) Pop() T {
	if len(q.items) == 0 {
		panic("pop from empty queue")
	}
	x := q.items[0]
	var zero T
	q.items[0] = zero
	q.items = q.items[1:]
	delete(q.pending, x)
	return x
}

// Len returns the number of pending elements.
func (q *SetQueue[T]) Len() int {
	return len(q.items)
}

// IsEmpty returns true when no element is pending.
func (q *SetQueue[T]) IsEmpty() bool {
	return len(q.items) == 0
}

// Has returns true if x is pending.
func (q *SetQueue[T]) Has(x T) bool {
	return q.pending[x]
}
