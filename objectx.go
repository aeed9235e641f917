// Package objectx is a small object-composition engine.
//
// A Recipe is a reusable template: a shared behavior table, an init routine,
// property descriptors applied to every instance, an ordered mixin list, a
// write-once static table and an optional parent it delegates to.
//
//	Point, _ := objectx.Define(objectx.Bag{
//	    objectx.InitKey: objectx.InitFunc(func(self *objectx.Object, args ...any) error {
//	        _ = self.Set("x", args[0])
//	        return self.Set("y", args[1])
//	    }),
//	}, objectx.Bag{"Origin": "0,0"})
//
//	p, _ := Point.Create(1, 2)   // explicit create
//	q, _ := Point.New(1, 2)      // constructive invocation
//	f := Point.Factory()         // bare invocation
//	r, _ := f(1, 2)
//
// All entry points run the same protocol: apply descriptors, run the
// recipe's init with the caller's arguments, then run each mixin's init in
// declaration order with no arguments.
//
// Recipes are single-threaded configuration. Callers must not mutate a
// recipe from several goroutines, or while other goroutines instantiate it.
package objectx

import (
	"github.com/comalice/objectx/internal/core"
	"github.com/comalice/objectx/internal/primitives"
)

type (
	Recipe      = core.Recipe
	Object      = core.Object
	Method      = core.Method
	InitFunc    = core.InitFunc
	Descriptor  = core.Descriptor
	Property    = core.Property
	Constructor = core.Constructor
	MixinInfo   = core.MixinInfo
	Option      = core.Option
	InitRunner  = core.InitRunner
	InitStep    = core.InitStep
	Registry    = core.Registry

	Bag   = primitives.Bag
	Error = primitives.Error
	Kind  = primitives.Kind
)

// InitKey names the bag entry holding the init routine.
const InitKey = primitives.InitKey

// Errors returned by the engine. Match them with errors.Is.
var (
	ErrInvalidParent     = primitives.ErrInvalidParent
	ErrInvalidMixin      = primitives.ErrInvalidMixin
	ErrDuplicateStatic   = primitives.ErrDuplicateStatic
	ErrInvalidRecipe     = primitives.ErrInvalidRecipe
	ErrInvalidMethod     = primitives.ErrInvalidMethod
	ErrInvalidDescriptor = primitives.ErrInvalidDescriptor
	ErrNotFound          = primitives.ErrNotFound
	ErrNotCallable       = primitives.ErrNotCallable
	ErrReadOnly          = primitives.ErrReadOnly
	ErrDuplicateName     = primitives.ErrDuplicateName
	ErrInvalidCatalog    = primitives.ErrInvalidCatalog
)

// Define creates a root recipe.
func Define(methods, statics Bag, opts ...Option) (*Recipe, error) {
	return core.Define(methods, statics, opts...)
}

// Extend derives a child recipe from parent, which may be a *Recipe, a
// behavior bag or a Constructor.
func Extend(parent any, methods, statics Bag, opts ...Option) (*Recipe, error) {
	return core.Extend(parent, methods, statics, opts...)
}

// Create instantiates r. A nil recipe fails with ErrInvalidRecipe.
func Create(r *Recipe, args ...any) (*Object, error) {
	return core.Create(r, args...)
}

// NewRegistry creates an empty recipe registry.
func NewRegistry() *Registry {
	return core.NewRegistry()
}

// WithName sets a recipe's display name.
func WithName(name string) Option {
	return core.WithName(name)
}

// WithInitRunner sets the runner that executes init steps.
func WithInitRunner(runner InitRunner) Option {
	return core.WithInitRunner(runner)
}
