// Package core provides the runtime core tier of the object-composition engine.
// This includes the Recipe (behavior table, property descriptors, mixins,
// statics, parent link), the behavior lookup along the delegation chain and
// the instantiation protocol.
// Dependencies: internal/primitives and github.com/google/uuid.
//
// Recipes are not safe for concurrent mutation. Configure a recipe from one
// goroutine before creating instances; afterwards treat it as append-only.
package core

import (
	"github.com/google/uuid"

	"github.com/comalice/objectx/internal/primitives"
)

// Option applies configuration to a Recipe via functional options pattern.
type Option func(*Recipe)

// Recipe is an object-construction template: a shared behavior table, an
// init routine, property descriptors, mixins, statics and an optional parent.
type Recipe struct {
	id        string
	name      string
	local     primitives.Bag
	init      InitFunc
	superInit InitFunc
	props     *primitives.OrderedMap[Descriptor]
	mixins    []*mixinEntry
	statics   *primitives.StaticTable
	parent    *Recipe
	runner    InitRunner
}

func newRecipe(opts ...Option) *Recipe {
	r := &Recipe{
		id:      uuid.NewString(),
		local:   primitives.Bag{},
		init:    noopInit,
		props:   primitives.NewOrderedMap[Descriptor](),
		statics: primitives.NewStaticTable(),
		runner:  directRunner{},
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Define creates a root recipe. methods may carry an init entry; statics are
// merged with write-once semantics.
func Define(methods, statics primitives.Bag, opts ...Option) (*Recipe, error) {
	r := newRecipe(opts...)
	if err := r.Methods(methods); err != nil {
		return nil, err
	}
	if err := r.Statics(statics); err != nil {
		return nil, err
	}
	return r, nil
}

// Extend derives a child recipe from parent. parent may be a *Recipe, a plain
// behavior bag or a Constructor.
func Extend(parent any, methods, statics primitives.Bag, opts ...Option) (*Recipe, error) {
	p, err := asParent(parent)
	if err != nil {
		return nil, err
	}
	return p.Extend(methods, statics, opts...)
}

// asParent resolves the accepted parent shapes to a Recipe.
func asParent(parent any) (*Recipe, error) {
	switch p := parent.(type) {
	case *Recipe:
		if p == nil {
			return nil, primitives.NewError(primitives.KindInvalidParent, "", "parent recipe is nil")
		}
		return p, nil
	case Constructor:
		return wrapConstructor(p)
	case *Constructor:
		if p == nil {
			return nil, primitives.NewError(primitives.KindInvalidParent, "", "parent constructor is nil")
		}
		return wrapConstructor(*p)
	}
	if bag, ok := toBag(parent); ok {
		r := newRecipe()
		if err := r.Methods(bag); err != nil {
			return nil, primitives.WrapError(primitives.KindInvalidParent, "", err, "parent bag rejected")
		}
		return r, nil
	}
	return nil, primitives.NewError(primitives.KindInvalidParent, "", "not a valid parent: %T", parent)
}

func wrapConstructor(c Constructor) (*Recipe, error) {
	r := newRecipe()
	if err := r.Methods(c.Behavior); err != nil {
		return nil, primitives.WrapError(primitives.KindInvalidParent, "", err, "parent constructor rejected")
	}
	if c.Init != nil {
		r.init = c.Init
	}
	return r, nil
}

// Extend derives a child recipe. The child delegates behavior lookups to r,
// snapshots r's mixins and property descriptors, and exposes r's init
// routine as its super init. The child's own init is methods' init entry or a
// no-op: r's init is never chained automatically.
func (r *Recipe) Extend(methods, statics primitives.Bag, opts ...Option) (*Recipe, error) {
	if err := r.checkShape(); err != nil {
		return nil, primitives.WrapError(primitives.KindInvalidParent, "", err, "parent recipe rejected")
	}
	child := newRecipe(append([]Option{WithInitRunner(r.runner)}, opts...)...)
	child.parent = r
	child.superInit = r.init
	child.props = r.props.Clone()
	child.mixins = append([]*mixinEntry(nil), r.mixins...)

	if err := child.Methods(methods); err != nil {
		return nil, err
	}
	if err := child.Statics(statics); err != nil {
		return nil, err
	}
	return child, nil
}

// checkShape rejects a nil recipe or one not built by Define or Extend.
func (r *Recipe) checkShape() error {
	if r == nil {
		return primitives.NewError(primitives.KindInvalidRecipe, "", "recipe is nil")
	}
	if r.local == nil || r.props == nil || r.statics == nil || r.runner == nil || r.init == nil {
		return primitives.NewError(primitives.KindInvalidRecipe, r.Name(), "recipe was not built by Define or Extend")
	}
	return nil
}

// Methods merges bag into the local behavior table. Later declarations win.
// An init entry replaces the init routine.
func (r *Recipe) Methods(bag primitives.Bag) error {
	if err := r.checkShape(); err != nil {
		return err
	}
	local, init, err := splitBag(bag)
	if err != nil {
		return err
	}
	primitives.MergeInto(r.local, local)
	if init != nil {
		r.init = init
	}
	return nil
}

// Properties merges descriptors into the recipe's property set. Entries are
// added or overridden individually; the set is never replaced as a whole.
func (r *Recipe) Properties(props ...Property) error {
	if err := r.checkShape(); err != nil {
		return err
	}
	for _, p := range props {
		if err := p.validate(p.Name); err != nil {
			return err
		}
	}
	for _, p := range props {
		r.props.Set(p.Name, p.Descriptor)
	}
	return nil
}

// Statics merges bag into the static table. Redefinition of any key fails
// with a duplicate static error and leaves the table unchanged.
func (r *Recipe) Statics(bag primitives.Bag) error {
	if err := r.checkShape(); err != nil {
		return err
	}
	return r.statics.Merge(bag)
}

// DefineStatic defines a single static. It fails like Statics on a
// redefinition or a reserved name.
func (r *Recipe) DefineStatic(name string, v any) error {
	if err := r.checkShape(); err != nil {
		return err
	}
	return r.statics.Insert(name, v)
}

// Static returns the static value for name.
func (r *Recipe) Static(name string) (any, bool) {
	return r.statics.Get(name)
}

// StaticNames returns static keys in definition order.
func (r *Recipe) StaticNames() []string {
	return r.statics.Names()
}

// StaticValues returns a copy of the static table.
func (r *Recipe) StaticValues() map[string]any {
	return r.statics.Snapshot()
}

// ID returns the recipe's unique identifier.
func (r *Recipe) ID() string {
	return r.id
}

// Name returns the configured name, or a short form of the ID.
func (r *Recipe) Name() string {
	if r.name != "" {
		return r.name
	}
	if len(r.id) < 8 {
		return "recipe-" + r.id
	}
	return "recipe-" + r.id[:8]
}

// Parent returns the recipe r delegates to, or nil for a root recipe.
func (r *Recipe) Parent() *Recipe {
	return r.parent
}

// SuperInit returns the parent's init routine as captured at derivation, or
// nil for a root recipe.
func (r *Recipe) SuperInit() InitFunc {
	return r.superInit
}

// CallSuper runs the parent's init routine on self. It is a no-op on a root
// recipe.
func (r *Recipe) CallSuper(self *Object, args ...any) error {
	if r.superInit == nil {
		return nil
	}
	return r.superInit(self, args...)
}

// LocalNames returns the locally declared behavior names, sorted.
func (r *Recipe) LocalNames() []string {
	return r.local.Names()
}

// PropertyNames returns declared property names in merge order.
func (r *Recipe) PropertyNames() []string {
	return r.props.Keys()
}

// Property returns the descriptor currently declared for name.
func (r *Recipe) Property(name string) (Descriptor, bool) {
	return r.props.Get(name)
}

// HadCreated reports whether obj was produced by r or by a recipe derived from r.
func (r *Recipe) HadCreated(obj *Object) bool {
	return obj.InstanceOf(r)
}
