package godeko

import "iter"

// OrderedMap is a string-keyed map that remembers insertion order. Writing an
// existing key replaces the value but keeps the key's original position, so
// repeated source keys resolve to last-write-wins without reordering.
type OrderedMap[V any] struct {
	keys   []string
	values map[string]V
}

func NewOrderedMap[V any]() *OrderedMap[V] {
	return &OrderedMap[V]{values: map[string]V{}}
}

func (m *OrderedMap[V]) Len() int { return len(m.keys) }

func (m *OrderedMap[V]) Get(key string) (V, bool) {
	v, ok := m.values[key]
	return v, ok
}

func (m *OrderedMap[V]) Set(key string, value V) {
	if _, ok := m.values[key]; !ok {
		m.keys = append(m.keys, key)
	}
	m.values[key] = value
}

// Keys returns the keys in insertion order.
func (m *OrderedMap[V]) Keys() []string {
	out := make([]string, len(m.keys))
	copy(out, m.keys)
	return out
}

// All iterates entries in insertion order.
func (m *OrderedMap[V]) All() iter.Seq2[string, V] {
	return func(yield func(string, V) bool) {
		for _, k := range m.keys {
			if !yield(k, m.values[k]) {
				return
			}
		}
	}
}

// OrderedSet is a set that remembers first-insertion order; re-adding an
// existing item is a no-op.
type OrderedSet[T comparable] struct {
	items []T
	index map[T]struct{}
}

func NewOrderedSet[T comparable]() *OrderedSet[T] {
	return &OrderedSet[T]{index: map[T]struct{}{}}
}

func (s *OrderedSet[T]) Len() int { return len(s.items) }

func (s *OrderedSet[T]) Has(item T) bool {
	_, ok := s.index[item]
	return ok
}

func (s *OrderedSet[T]) Add(item T) {
	if _, ok := s.index[item]; ok {
		return
	}
	s.index[item] = struct{}{}
	s.items = append(s.items, item)
}

// Values returns the items in insertion order.
func (s *OrderedSet[T]) Values() []T {
	out := make([]T, len(s.items))
	copy(out, s.items)
	return out
}

// All iterates items in insertion order.
func (s *OrderedSet[T]) All() iter.Seq[T] {
	return func(yield func(T) bool) {
		for _, it := range s.items {
			if !yield(it) {
				return
			}
		}
	}
}
