package core

import (
	"fmt"

	"github.com/comalice/objectx/internal/primitives"
)

// MixinKind tags the shape a mixin was resolved from.
type MixinKind string

const (
	MixinRecipe      MixinKind = "recipe"
	MixinBag         MixinKind = "bag"
	MixinConstructor MixinKind = "constructor"
)

// mixinEntry is a mixin resolved at Mixin time. behavior is a snapshot of the
// contributed declarations; origin is the recipe the mixin was added to and
// decides at which delegation level those declarations are visible.
type mixinEntry struct {
	kind     MixinKind
	origin   *Recipe
	source   *Recipe // set for recipe mixins
	behavior primitives.Bag
	init     InitFunc
}

func (m *mixinEntry) label() string {
	if m.source != nil {
		return m.source.Name()
	}
	return string(m.kind)
}

// MixinInfo describes a mixin entry of a recipe.
type MixinInfo struct {
	Kind    MixinKind
	Label   string
	Origin  *Recipe // recipe the mixin was added to
	Source  *Recipe
	HasInit bool
}

// Mixin appends mixins in argument order. Slices of mixins are flattened.
// Every argument must be a *Recipe, a behavior bag or a Constructor; if any
// fails the shape check nothing is appended.
func (r *Recipe) Mixin(mixins ...any) error {
	if err := r.checkShape(); err != nil {
		return err
	}
	var resolved []*mixinEntry
	for i, m := range flattenMixins(mixins) {
		entry, err := r.resolveMixin(m)
		if err != nil {
			return primitives.WrapError(primitives.KindInvalidMixin, r.Name(), err, "mixin %d rejected", i)
		}
		resolved = append(resolved, entry)
	}
	r.mixins = append(r.mixins, resolved...)
	return nil
}

func flattenMixins(in []any) []any {
	var out []any
	for _, m := range in {
		switch list := m.(type) {
		case []any:
			out = append(out, flattenMixins(list)...)
		case []*Recipe:
			for _, rec := range list {
				out = append(out, rec)
			}
		case []primitives.Bag:
			for _, b := range list {
				out = append(out, b)
			}
		case []Constructor:
			for _, c := range list {
				out = append(out, c)
			}
		default:
			out = append(out, m)
		}
	}
	return out
}

func (r *Recipe) resolveMixin(m any) (*mixinEntry, error) {
	switch v := m.(type) {
	case *Recipe:
		if v == nil {
			return nil, primitives.NewError(primitives.KindInvalidMixin, "", "nil recipe")
		}
		if v == r {
			return nil, primitives.NewError(primitives.KindInvalidMixin, v.Name(), "recipe cannot mix in itself")
		}
		return &mixinEntry{
			kind:     MixinRecipe,
			origin:   r,
			source:   v,
			behavior: v.ownDeclarations(),
			init:     v.init,
		}, nil
	case Constructor:
		return constructorMixin(r, v)
	case *Constructor:
		if v == nil {
			return nil, primitives.NewError(primitives.KindInvalidMixin, "", "nil constructor")
		}
		return constructorMixin(r, *v)
	}
	if bag, ok := toBag(m); ok {
		behavior, _, err := splitBag(bag.Without(primitives.InitKey))
		if err != nil {
			return nil, err
		}
		return &mixinEntry{kind: MixinBag, origin: r, behavior: behavior}, nil
	}
	return nil, primitives.NewError(primitives.KindInvalidMixin, "", "not a valid mixin: %s", describeValue(m))
}

func constructorMixin(r *Recipe, c Constructor) (*mixinEntry, error) {
	if c.Init == nil {
		return nil, primitives.NewError(primitives.KindInvalidMixin, "", "constructor mixin has no body")
	}
	behavior, _, err := splitBag(c.Behavior.Without(primitives.InitKey))
	if err != nil {
		return nil, err
	}
	return &mixinEntry{kind: MixinConstructor, origin: r, behavior: behavior, init: c.Init}, nil
}

// ownDeclarations flattens what r contributes when used as a mixin: its own
// mixin contributions, then its local table on top. Parent declarations are
// left out.
func (r *Recipe) ownDeclarations() primitives.Bag {
	out := primitives.Bag{}
	for _, m := range r.mixins {
		if m.origin == r {
			primitives.MergeInto(out, m.behavior)
		}
	}
	primitives.MergeInto(out, r.local)
	return out
}

// Mixins describes r's mixin list in application order.
func (r *Recipe) Mixins() []MixinInfo {
	out := make([]MixinInfo, 0, len(r.mixins))
	for _, m := range r.mixins {
		out = append(out, MixinInfo{
			Kind:    m.kind,
			Label:   m.label(),
			Origin:  m.origin,
			Source:  m.source,
			HasInit: m.init != nil,
		})
	}
	return out
}

func describeValue(v any) string {
	if v == nil {
		return "nil"
	}
	return fmt.Sprintf("%T", v)
}
