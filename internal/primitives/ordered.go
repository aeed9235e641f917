// Package primitives provides foundational data structures for the object engine.
// OrderedMap is an insertion-ordered key-value store used for instance slots
// and property descriptor sets, where definition order is observable.
package primitives

// OrderedMap keeps values by key and remembers the order in which keys were
// first inserted. Overriding an existing key keeps its original position.
type OrderedMap[V any] struct {
	keys []string
	data map[string]V
}

// NewOrderedMap creates an empty OrderedMap.
func NewOrderedMap[V any]() *OrderedMap[V] {
	return &OrderedMap[V]{
		data: make(map[string]V),
	}
}

// Get retrieves a value by key. A nil map holds nothing.
func (m *OrderedMap[V]) Get(key string) (V, bool) {
	if m == nil {
		var zero V
		return zero, false
	}
	v, ok := m.data[key]
	return v, ok
}

// Has reports whether key is present.
func (m *OrderedMap[V]) Has(key string) bool {
	if m == nil {
		return false
	}
	_, ok := m.data[key]
	return ok
}

// Set stores a value by key. The zero OrderedMap allocates on first Set.
func (m *OrderedMap[V]) Set(key string, val V) {
	if m.data == nil {
		m.data = make(map[string]V)
	}
	if _, ok := m.data[key]; !ok {
		m.keys = append(m.keys, key)
	}
	m.data[key] = val
}

// Len returns the number of entries.
func (m *OrderedMap[V]) Len() int {
	if m == nil {
		return 0
	}
	return len(m.keys)
}

// Keys returns a copy of the keys in insertion order.
func (m *OrderedMap[V]) Keys() []string {
	if m == nil {
		return nil
	}
	out := make([]string, len(m.keys))
	copy(out, m.keys)
	return out
}

// Range calls fn for each entry in insertion order until fn returns false.
func (m *OrderedMap[V]) Range(fn func(key string, val V) bool) {
	if m == nil {
		return
	}
	for _, k := range m.keys {
		if !fn(k, m.data[k]) {
			return
		}
	}
}

// Merge copies every entry of other into m, in other's order.
// Later entries for the same key override earlier ones.
func (m *OrderedMap[V]) Merge(other *OrderedMap[V]) {
	other.Range(func(k string, v V) bool {
		m.Set(k, v)
		return true
	})
}

// Clone returns an independent copy. Values are copied shallowly.
func (m *OrderedMap[V]) Clone() *OrderedMap[V] {
	c := NewOrderedMap[V]()
	if m == nil {
		return c
	}
	c.keys = make([]string, len(m.keys))
	copy(c.keys, m.keys)
	for k, v := range m.data {
		c.data[k] = v
	}
	return c
}

// Snapshot returns a plain map copy of the data for inspection or encoding.
func (m *OrderedMap[V]) Snapshot() map[string]V {
	snap := make(map[string]V, m.Len())
	m.Range(func(k string, v V) bool {
		snap[k] = v
		return true
	})
	return snap
}
