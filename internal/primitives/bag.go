package primitives

import "sort"

// InitKey is the bag entry that carries a recipe's initialization routine.
const InitKey = "init"

// Bag is a behavior or static bag: names mapped to functions or plain values.
type Bag map[string]any

// Clone returns a shallow copy of b. A nil bag clones to an empty bag.
func (b Bag) Clone() Bag {
	c := make(Bag, len(b))
	for k, v := range b {
		c[k] = v
	}
	return c
}

// Without returns a copy of b with the given keys removed.
func (b Bag) Without(keys ...string) Bag {
	c := b.Clone()
	for _, k := range keys {
		delete(c, k)
	}
	return c
}

// Names returns the bag keys sorted, so that iteration over a bag is deterministic.
func (b Bag) Names() []string {
	names := make([]string, 0, len(b))
	for k := range b {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

// MergeInto copies every entry of from into to. Later declarations win.
func MergeInto(to, from Bag) {
	for k, v := range from {
		to[k] = v
	}
}
