package core

import (
	"fmt"

	"github.com/comalice/objectx/internal/primitives"
)

// StepKind identifies which part of the init chain an InitStep runs.
type StepKind string

const (
	StepInit  StepKind = "init"
	StepMixin StepKind = "mixin"
)

// InitStep describes one init invocation during instantiation.
type InitStep struct {
	Recipe *Recipe
	Kind   StepKind
	Index  int    // mixin position, -1 for the recipe's own init
	Label  string // recipe name or mixin label
}

// InitRunner executes init routines. Implementations may decorate the call
// (logging, metrics) but must invoke fn exactly once with self and args.
type InitRunner interface {
	RunInit(step InitStep, fn InitFunc, self *Object, args []any) error
}

// directRunner calls fn with no decoration.
type directRunner struct{}

func (directRunner) RunInit(_ InitStep, fn InitFunc, self *Object, args []any) error {
	return fn(self, args...)
}

// Allocate returns a blank object whose behavior delegates through r's
// chain. No descriptors are applied and no init runs.
func (r *Recipe) Allocate() *Object {
	return &Object{
		recipe: r,
		props:  primitives.NewOrderedMap[Descriptor](),
		slots:  primitives.NewOrderedMap[any](),
	}
}

// Create allocates and initializes a new instance of r.
func (r *Recipe) Create(args ...any) (*Object, error) {
	return r.instantiate(nil, args)
}

// Call is the bare invocation of r. It behaves exactly like Create.
func (r *Recipe) Call(args ...any) (*Object, error) {
	return r.instantiate(nil, args)
}

// Factory returns r as a plain function value.
func (r *Recipe) Factory() func(args ...any) (*Object, error) {
	return func(args ...any) (*Object, error) {
		return r.instantiate(nil, args)
	}
}

// New is the constructive invocation of r: a receiver is allocated first
// and then initialized in place.
func (r *Recipe) New(args ...any) (*Object, error) {
	if err := r.checkShape(); err != nil {
		return nil, err
	}
	return r.instantiate(r.Allocate(), args)
}

// Construct initializes an existing receiver. target must come from
// r.Allocate; the returned object is target itself.
func (r *Recipe) Construct(target *Object, args ...any) (*Object, error) {
	if target == nil {
		return nil, primitives.NewError(primitives.KindInvalidRecipe, "", "receiver is nil")
	}
	return r.instantiate(target, args)
}

// Create instantiates r. It fails with an invalid recipe error when r is nil.
func Create(r *Recipe, args ...any) (*Object, error) {
	return r.instantiate(nil, args)
}

// instantiate is the single instantiation protocol behind every entry point:
// resolve or allocate the target, apply descriptors in merge order, run the
// recipe's init with args, run each mixin init in declaration order with no
// arguments, return the target. Failures propagate as-is; side effects of
// completed steps are not rolled back.
func (r *Recipe) instantiate(target *Object, args []any) (*Object, error) {
	if err := r.checkShape(); err != nil {
		return nil, err
	}
	if target == nil {
		target = r.Allocate()
	} else if target.recipe != r {
		return nil, primitives.NewError(primitives.KindInvalidRecipe, r.Name(), "receiver was not allocated by this recipe")
	}

	if r.props.Len() > 0 {
		target.props.Merge(r.props)
	}

	step := InitStep{Recipe: r, Kind: StepInit, Index: -1, Label: r.Name()}
	if err := r.runner.RunInit(step, r.init, target, args); err != nil {
		return nil, fmt.Errorf("%s: init: %w", r.Name(), err)
	}

	for i, m := range r.mixins {
		if m.init == nil {
			continue
		}
		step := InitStep{Recipe: r, Kind: StepMixin, Index: i, Label: m.label()}
		if err := r.runner.RunInit(step, m.init, target, nil); err != nil {
			return nil, fmt.Errorf("%s: mixin %d (%s) init: %w", r.Name(), i, m.label(), err)
		}
	}

	return target, nil
}
