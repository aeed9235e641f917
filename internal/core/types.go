package core

import (
	"github.com/comalice/objectx/internal/primitives"
)

// Method is a behavior-table function bound to the instance it is called on.
type Method func(self *Object, args ...any) (any, error)

// InitFunc is an initialization routine, bound to the instance being built.
type InitFunc func(self *Object, args ...any) error

// noopInit is the init routine of recipes declared without one.
func noopInit(*Object, ...any) error { return nil }

// Descriptor specifies how a named property is presented on an instance.
// A descriptor is either a data descriptor (Value, Writable) or an accessor
// descriptor (Get, Set), never both.
type Descriptor struct {
	Value      any
	Get        func(self *Object) any
	Set        func(self *Object, v any) error
	Writable   bool
	Enumerable bool
}

// IsAccessor reports whether d is an accessor descriptor.
func (d Descriptor) IsAccessor() bool {
	return d.Get != nil || d.Set != nil
}

func (d Descriptor) validate(name string) error {
	if name == "" {
		return primitives.NewError(primitives.KindInvalidDescriptor, name, "property name is required")
	}
	if d.IsAccessor() && (d.Value != nil || d.Writable) {
		return primitives.NewError(primitives.KindInvalidDescriptor, name, "accessor descriptor cannot carry Value or Writable")
	}
	return nil
}

// Property pairs a name with its descriptor. Recipes keep properties in the
// order they were first declared.
type Property struct {
	Name string
	Descriptor
}

// Constructor is a constructor-shaped value: a behavior map plus a body that
// runs as an initialization step. It can be used as a mixin or as a parent.
type Constructor struct {
	Behavior primitives.Bag
	Init     InitFunc
}

// asMethod converts the accepted function shapes to Method.
func asMethod(v any) (Method, bool) {
	switch fn := v.(type) {
	case Method:
		return fn, fn != nil
	case func(*Object, ...any) (any, error):
		return Method(fn), fn != nil
	}
	return nil, false
}

// asInit converts the accepted function shapes to InitFunc.
func asInit(v any) (InitFunc, bool) {
	switch fn := v.(type) {
	case InitFunc:
		return fn, fn != nil
	case func(*Object, ...any) error:
		return InitFunc(fn), fn != nil
	}
	return nil, false
}

// splitBag copies bag into a behavior bag with methods normalized and the
// init entry extracted. init is nil when the bag declares none.
func splitBag(bag primitives.Bag) (primitives.Bag, InitFunc, error) {
	out := make(primitives.Bag, len(bag))
	var init InitFunc
	for k, v := range bag {
		if k == primitives.InitKey {
			fn, ok := asInit(v)
			if !ok {
				return nil, nil, primitives.NewError(primitives.KindInvalidMethod, k, "init entry must be an InitFunc, got %T", v)
			}
			init = fn
			continue
		}
		if m, ok := asMethod(v); ok {
			out[k] = m
			continue
		}
		out[k] = v
	}
	return out, init, nil
}

// toBag accepts the bag shapes callers pass around.
func toBag(v any) (primitives.Bag, bool) {
	switch b := v.(type) {
	case primitives.Bag:
		return b, b != nil
	case map[string]any:
		return primitives.Bag(b), b != nil
	}
	return nil, false
}
