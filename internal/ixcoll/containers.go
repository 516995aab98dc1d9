// SPDX-FileCopyrightText: © 2024 The ixc authors <https://github.com/ixlang/ixc/blob/main/AUTHORS>
// SPDX-License-Identifier: Apache-2.0

// Package ixcoll supplies the ordered containers the compiler's pipeline
// needs everywhere an ordered collection with fast lookup or stack/queue
// discipline shows up: the Tokenizer's look-ahead queue, the Tree Builder's
// working-node stack, and the Unit Collection's symbol tables.
//
// Generic wrappers sit over github.com/emirpasic/gods's classic
// interface{}-based containers (v1.18.1 predates gods' generic v2 line) so
// call sites keep compile-time type safety while reusing gods' container
// algorithms rather than hand-rolling them.
package ixcoll

import (
	"github.com/emirpasic/gods/lists/arraylist"
	"github.com/emirpasic/gods/maps/linkedhashmap"
	"github.com/emirpasic/gods/queues/linkedlistqueue"
	"github.com/emirpasic/gods/stacks/arraystack"
)

// Queue is a FIFO queue, used by the Tokenizer to hold primed-but-unconsumed
// tokens (including synthetic stop-insertions) ahead of the reader.
type Queue[T any] struct {
	q *linkedlistqueue.Queue
}

func NewQueue[T any]() *Queue[T] {
	return &Queue[T]{q: linkedlistqueue.New()}
}

func (q *Queue[T]) Enqueue(v T) {
	q.q.Enqueue(v)
}

func (q *Queue[T]) Dequeue() (T, bool) {
	v, ok := q.q.Dequeue()
	if !ok {
		var zero T
		return zero, false
	}

	return v.(T), true
}

func (q *Queue[T]) Peek() (T, bool) {
	v, ok := q.q.Peek()
	if !ok {
		var zero T
		return zero, false
	}

	return v.(T), true
}

func (q *Queue[T]) Empty() bool {
	return q.q.Empty()
}

func (q *Queue[T]) Size() int {
	return q.q.Size()
}

// Stack is a LIFO stack, used by the Tree Builder to track the chain of
// open Node contexts while it descends into nested blocks.
type Stack[T any] struct {
	s *arraystack.Stack
}

func NewStack[T any]() *Stack[T] {
	return &Stack[T]{s: arraystack.New()}
}

func (s *Stack[T]) Push(v T) {
	s.s.Push(v)
}

func (s *Stack[T]) Pop() (T, bool) {
	v, ok := s.s.Pop()
	if !ok {
		var zero T
		return zero, false
	}

	return v.(T), true
}

func (s *Stack[T]) Peek() (T, bool) {
	v, ok := s.s.Peek()
	if !ok {
		var zero T
		return zero, false
	}

	return v.(T), true
}

func (s *Stack[T]) Empty() bool {
	return s.s.Empty()
}

func (s *Stack[T]) Size() int {
	return s.s.Size()
}

// List is an ordered, index-addressable sequence that preserves insertion
// order.
type List[T any] struct {
	l *arraylist.List
}

func NewList[T any]() *List[T] {
	return &List[T]{l: arraylist.New()}
}

func (l *List[T]) Add(v T) {
	l.l.Add(v)
}

func (l *List[T]) Get(i int) (T, bool) {
	v, ok := l.l.Get(i)
	if !ok {
		var zero T
		return zero, false
	}

	return v.(T), true
}

func (l *List[T]) Size() int {
	return l.l.Size()
}

// Values returns the list contents as a plain slice, in insertion order.
func (l *List[T]) Values() []T {
	raw := l.l.Values()
	out := make([]T, len(raw))

	for i, v := range raw {
		out[i] = v.(T)
	}

	return out
}

// OrderedMap is an insertion-ordered string-keyed map. It is the hash-map
// replacement for the source's linear-scan Dictionary (see the compiler's
// design notes on the ordered map utility): lookups are O(1) instead of
// O(n), and iteration still yields first-insertion order for stable
// emission.
type OrderedMap[V any] struct {
	m *linkedhashmap.Map
}

func NewOrderedMap[V any]() *OrderedMap[V] {
	return &OrderedMap[V]{m: linkedhashmap.New()}
}

// Put inserts or overwrites the value for key.
func (m *OrderedMap[V]) Put(key string, v V) {
	m.m.Put(key, v)
}

// PutIfAbsent inserts the value for key only if it is not already present.
// It returns false if key already existed (the one-to-one map mode used by
// the Unit Collection's resolved-types map, where the first writer wins).
func (m *OrderedMap[V]) PutIfAbsent(key string, v V) bool {
	if _, found := m.m.Get(key); found {
		return false
	}

	m.m.Put(key, v)

	return true
}

func (m *OrderedMap[V]) Get(key string) (V, bool) {
	v, found := m.m.Get(key)
	if !found {
		var zero V
		return zero, false
	}

	return v.(V), true
}

func (m *OrderedMap[V]) Size() int {
	return m.m.Size()
}

// Keys returns the map's keys in insertion order.
func (m *OrderedMap[V]) Keys() []string {
	raw := m.m.Keys()
	out := make([]string, len(raw))

	for i, k := range raw {
		out[i] = k.(string)
	}

	return out
}

// Values returns the map's values in the same order as Keys.
func (m *OrderedMap[V]) Values() []V {
	raw := m.m.Values()
	out := make([]V, len(raw))

	for i, v := range raw {
		out[i] = v.(V)
	}

	return out
}

// MultiMap is an insertion-ordered string-keyed map that accepts duplicate
// keys, used for the Unit Collection's mangled-signature index (§4.5:
// "Duplicate keys are not rejected (multi-map semantics)").
type MultiMap[V any] struct {
	keys   []string
	values map[string][]V
}

func NewMultiMap[V any]() *MultiMap[V] {
	return &MultiMap[V]{values: make(map[string][]V)}
}

func (m *MultiMap[V]) Add(key string, v V) {
	if _, exists := m.values[key]; !exists {
		m.keys = append(m.keys, key)
	}

	m.values[key] = append(m.values[key], v)
}

func (m *MultiMap[V]) Get(key string) []V {
	return m.values[key]
}

func (m *MultiMap[V]) Keys() []string {
	return m.keys
}
