// Package model defines the data structures shared by instrumentation,
// tracing and reporting.
package model

import "sort"

// Path represents a file system path.
type Path string

// IDSet is a set of code object, predicate or line identifiers.
type IDSet map[int]struct{}

// NewIDSet builds a set from ids.
func NewIDSet(ids ...int) IDSet {
	s := make(IDSet, len(ids))
	for _, id := range ids {
		s[id] = struct{}{}
	}

	return s
}

// Add inserts id.
func (s IDSet) Add(id int) { s[id] = struct{}{} }

// Contains reports membership.
func (s IDSet) Contains(id int) bool {
	_, ok := s[id]

	return ok
}

// Sorted returns the ids in ascending order.
func (s IDSet) Sorted() []int {
	ids := make([]int, 0, len(s))
	for id := range s {
		ids = append(ids, id)
	}

	sort.Ints(ids)

	return ids
}

// Clone copies the set.
func (s IDSet) Clone() IDSet {
	out := make(IDSet, len(s))
	for id := range s {
		out[id] = struct{}{}
	}

	return out
}
