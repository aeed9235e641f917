package core

import (
	"github.com/comalice/objectx/internal/primitives"
)

// Object is an instance produced by a Recipe. It owns its slots and its
// descriptor-backed properties; every other name resolves through the
// producing recipe's behavior table and delegation chain. The zero Object has
// no recipe and holds only what is Set on it.
type Object struct {
	recipe *Recipe
	props  *primitives.OrderedMap[Descriptor]
	slots  *primitives.OrderedMap[any]
}

// Recipe returns the recipe that produced o.
func (o *Object) Recipe() *Recipe {
	return o.recipe
}

// InstanceOf reports whether o was produced by r or by a recipe derived from r.
func (o *Object) InstanceOf(r *Recipe) bool {
	if o == nil || o.recipe == nil {
		return false
	}
	return o.recipe.derivesFrom(r)
}

// Get resolves name: descriptor-backed property, then own slot, then the
// recipe's behavior table.
func (o *Object) Get(name string) (any, bool) {
	if d, ok := o.props.Get(name); ok {
		if d.IsAccessor() {
			if d.Get == nil {
				return nil, true
			}
			return d.Get(o), true
		}
		return d.Value, true
	}
	if v, ok := o.slots.Get(name); ok {
		return v, true
	}
	if o.recipe == nil {
		return nil, false
	}
	return o.recipe.Lookup(name)
}

// Value is Get without the presence flag.
func (o *Object) Value(name string) any {
	v, _ := o.Get(name)
	return v
}

// Has reports whether name resolves on o.
func (o *Object) Has(name string) bool {
	_, ok := o.Get(name)
	return ok
}

// HasOwn reports whether name is an own slot or property of o.
func (o *Object) HasOwn(name string) bool {
	return o.props.Has(name) || o.slots.Has(name)
}

// Set writes name on o. Writes to a read-only data property or to an
// accessor without a setter fail; other names become own slots, shadowing
// any behavior-table entry of the same name.
func (o *Object) Set(name string, v any) error {
	if d, ok := o.props.Get(name); ok {
		if d.IsAccessor() {
			if d.Set == nil {
				return primitives.NewError(primitives.KindReadOnly, name, "accessor property has no setter")
			}
			return d.Set(o, v)
		}
		if !d.Writable {
			return primitives.NewError(primitives.KindReadOnly, name, "property is not writable")
		}
		d.Value = v
		o.props.Set(name, d)
		return nil
	}
	if o.slots == nil {
		o.slots = primitives.NewOrderedMap[any]()
	}
	o.slots.Set(name, v)
	return nil
}

// Call invokes the method name resolves to, bound to o.
func (o *Object) Call(name string, args ...any) (any, error) {
	v, ok := o.Get(name)
	if !ok {
		return nil, primitives.NewError(primitives.KindNotFound, name, "no such method on %s", o.recipeName())
	}
	m, ok := asMethod(v)
	if !ok {
		return nil, primitives.NewError(primitives.KindNotCallable, name, "value of type %s is not a method", describeValue(v))
	}
	return m(o, args...)
}

// Keys returns o's enumerable own names: descriptor properties in merge
// order, then slots in assignment order.
func (o *Object) Keys() []string {
	var keys []string
	o.props.Range(func(k string, d Descriptor) bool {
		if d.Enumerable {
			keys = append(keys, k)
		}
		return true
	})
	o.slots.Range(func(k string, _ any) bool {
		if !o.props.Has(k) {
			keys = append(keys, k)
		}
		return true
	})
	return keys
}

// Snapshot returns the current values of o's enumerable own names.
func (o *Object) Snapshot() map[string]any {
	keys := o.Keys()
	snap := make(map[string]any, len(keys))
	for _, k := range keys {
		snap[k] = o.Value(k)
	}
	return snap
}

func (o *Object) recipeName() string {
	if o.recipe == nil {
		return "object"
	}
	return o.recipe.Name()
}
