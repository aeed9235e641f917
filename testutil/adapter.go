// Package testutil provides helpers for running the same assertions against
// every way of instantiating a recipe.
package testutil

import (
	"github.com/comalice/objectx"
)

// ConventionAdapter provides a common interface over the instantiation
// entry points of a recipe. This allows running the same test suite on
// each of them.
type ConventionAdapter interface {
	Name() string
	Instantiate(args ...any) (*objectx.Object, error)
}

type convention struct {
	name string
	fn   func(args ...any) (*objectx.Object, error)
}

func (c convention) Name() string { return c.name }

func (c convention) Instantiate(args ...any) (*objectx.Object, error) {
	return c.fn(args...)
}

// CreateAdapter uses Recipe.Create.
func CreateAdapter(r *objectx.Recipe) ConventionAdapter {
	return convention{name: "Create", fn: r.Create}
}

// CallAdapter uses the bare invocation, Recipe.Call.
func CallAdapter(r *objectx.Recipe) ConventionAdapter {
	return convention{name: "Call", fn: r.Call}
}

// FactoryAdapter uses the function value returned by Recipe.Factory.
func FactoryAdapter(r *objectx.Recipe) ConventionAdapter {
	return convention{name: "Factory", fn: r.Factory()}
}

// NewAdapter uses the constructive invocation, Recipe.New.
func NewAdapter(r *objectx.Recipe) ConventionAdapter {
	return convention{name: "New", fn: r.New}
}

// ConstructAdapter allocates a receiver and initializes it with Recipe.Construct.
func ConstructAdapter(r *objectx.Recipe) ConventionAdapter {
	return convention{name: "Construct", fn: func(args ...any) (*objectx.Object, error) {
		return r.Construct(r.Allocate(), args...)
	}}
}

// PackageAdapter uses the package-level objectx.Create.
func PackageAdapter(r *objectx.Recipe) ConventionAdapter {
	return convention{name: "objectx.Create", fn: func(args ...any) (*objectx.Object, error) {
		return objectx.Create(r, args...)
	}}
}

// Conventions returns an adapter for every instantiation entry point of r.
func Conventions(r *objectx.Recipe) []ConventionAdapter {
	return []ConventionAdapter{
		CreateAdapter(r),
		CallAdapter(r),
		FactoryAdapter(r),
		NewAdapter(r),
		ConstructAdapter(r),
		PackageAdapter(r),
	}
}

// Observation is what a convention produced for one set of arguments.
type Observation struct {
	Own    map[string]any
	Lookup map[string]any
	Err    error
}

// Observe instantiates through a with args and records the instance's
// enumerable own values and the resolution of names. Function values are
// recorded as present without their identity.
func Observe(a ConventionAdapter, names []string, args ...any) Observation {
	obj, err := a.Instantiate(args...)
	if err != nil {
		return Observation{Err: err}
	}
	obs := Observation{Own: obj.Snapshot(), Lookup: map[string]any{}}
	for _, n := range names {
		v, ok := obj.Get(n)
		switch {
		case !ok:
			obs.Lookup[n] = nil
		case isFunc(v):
			obs.Lookup[n] = "<method>"
		default:
			obs.Lookup[n] = v
		}
	}
	return obs
}

func isFunc(v any) bool {
	switch v.(type) {
	case objectx.Method, objectx.InitFunc:
		return true
	}
	return false
}
