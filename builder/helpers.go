// Package builder holds shorthand constructors for descriptors and methods.
package builder

import (
	"fmt"

	"github.com/comalice/objectx" // the core package
)

// Option pattern for configuring descriptors
type Option func(*objectx.Descriptor)

// Writable lets instances overwrite a data property.
func Writable() Option {
	return func(d *objectx.Descriptor) { d.Writable = true }
}

// Enumerable lists the property in Object.Keys and Object.Snapshot.
func Enumerable() Option {
	return func(d *objectx.Descriptor) { d.Enumerable = true }
}

// Value creates a data descriptor. Without options it is read-only and hidden.
func Value(v any, opts ...Option) objectx.Descriptor {
	d := objectx.Descriptor{Value: v}
	for _, opt := range opts {
		opt(&d)
	}
	return d
}

// Const creates a read-only, enumerable data descriptor.
func Const(v any) objectx.Descriptor {
	return Value(v, Enumerable())
}

// Getter creates a computed, read-only descriptor.
func Getter(get func(self *objectx.Object) any, opts ...Option) objectx.Descriptor {
	return Accessor(get, nil, opts...)
}

// Accessor creates a computed descriptor with an optional setter.
// Writable does not apply to accessors and is ignored.
func Accessor(get func(self *objectx.Object) any, set func(self *objectx.Object, v any) error, opts ...Option) objectx.Descriptor {
	d := objectx.Descriptor{Get: get, Set: set}
	for _, opt := range opts {
		opt(&d)
	}
	d.Writable = false
	return d
}

// Props pairs names and descriptors in declaration order, for Recipe.Properties.
// Each name must be a string and each descriptor a Descriptor or a non-nil
// *Descriptor; anything else, including a trailing name, fails with an
// invalid descriptor error.
func Props(pairs ...any) ([]objectx.Property, error) {
	if len(pairs)%2 != 0 {
		return nil, fmt.Errorf("%w: %v has no descriptor", objectx.ErrInvalidDescriptor, pairs[len(pairs)-1])
	}
	props := make([]objectx.Property, 0, len(pairs)/2)
	for i := 0; i < len(pairs); i += 2 {
		name, ok := pairs[i].(string)
		if !ok {
			return nil, fmt.Errorf("%w: pair %d: name must be a string, got %T", objectx.ErrInvalidDescriptor, i/2, pairs[i])
		}
		var d objectx.Descriptor
		switch v := pairs[i+1].(type) {
		case objectx.Descriptor:
			d = v
		case *objectx.Descriptor:
			if v == nil {
				return nil, fmt.Errorf("%w: %s: nil descriptor", objectx.ErrInvalidDescriptor, name)
			}
			d = *v
		default:
			return nil, fmt.Errorf("%w: %s: expected a Descriptor, got %T", objectx.ErrInvalidDescriptor, name, pairs[i+1])
		}
		props = append(props, objectx.Property{Name: name, Descriptor: d})
	}
	return props, nil
}

// Func wraps a method body that never fails.
func Func(fn func(self *objectx.Object, args ...any) any) objectx.Method {
	return func(self *objectx.Object, args ...any) (any, error) {
		return fn(self, args...), nil
	}
}

// Setter returns an init routine that assigns positional arguments to the
// given slot names, in order. Missing arguments leave the slot unset.
func Setter(names ...string) objectx.InitFunc {
	return func(self *objectx.Object, args ...any) error {
		for i, name := range names {
			if i >= len(args) {
				return nil
			}
			if err := self.Set(name, args[i]); err != nil {
				return err
			}
		}
		return nil
	}
}
