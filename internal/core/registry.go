// Package core defines the Registry for looking up recipes by name.
package core

import (
	"github.com/comalice/objectx/internal/primitives"
)

// Registry maps names to recipes. Names are write-once.
type Registry struct {
	recipes *primitives.OrderedMap[*Recipe]
}

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	return &Registry{recipes: primitives.NewOrderedMap[*Recipe]()}
}

// Register stores recipe under name.
func (g *Registry) Register(name string, recipe *Recipe) error {
	if name == "" {
		return primitives.NewError(primitives.KindInvalidRecipe, name, "registry name is required")
	}
	if recipe == nil {
		return primitives.NewError(primitives.KindInvalidRecipe, name, "recipe is nil")
	}
	if g.recipes.Has(name) {
		return primitives.NewError(primitives.KindDuplicateName, name, "recipe already registered")
	}
	g.recipes.Set(name, recipe)
	return nil
}

// Get returns the recipe registered under name.
func (g *Registry) Get(name string) (*Recipe, error) {
	r, ok := g.recipes.Get(name)
	if !ok {
		return nil, primitives.NewError(primitives.KindNotFound, name, "recipe not registered")
	}
	return r, nil
}

// Names returns registered names in registration order.
func (g *Registry) Names() []string {
	return g.recipes.Keys()
}

// Recipes returns registered recipes in registration order.
func (g *Registry) Recipes() []*Recipe {
	out := make([]*Recipe, 0, g.recipes.Len())
	g.recipes.Range(func(_ string, r *Recipe) bool {
		out = append(out, r)
		return true
	})
	return out
}

// Create instantiates the recipe registered under name.
func (g *Registry) Create(name string, args ...any) (*Object, error) {
	r, err := g.Get(name)
	if err != nil {
		return nil, err
	}
	return r.Create(args...)
}
