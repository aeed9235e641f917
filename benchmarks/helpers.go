// Package benchmarks provides shared helpers for benchmark tests.
package benchmarks

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/comalice/objectx/internal/core"
	"github.com/comalice/objectx/internal/primitives"
	"github.com/comalice/objectx/internal/production"
)

// GenFlatCatalog creates n unrelated recipes, each with a field and an init
// assigning one argument.
func GenFlatCatalog(n int) *production.Catalog {
	if n < 1 {
		n = 1
	}
	c := &production.Catalog{Version: fmt.Sprintf("flat_%d", n)}
	for i := 0; i < n; i++ {
		c.Recipes = append(c.Recipes, production.RecipeSpec{
			Name:   fmt.Sprintf("r%d", i),
			Fields: map[string]any{"index": i},
			Init:   &production.InitSpec{Args: []string{"value"}},
		})
	}
	return c
}

// GenDeepCatalog creates a single delegation chain depth recipes long. Every
// level calls its parent's init.
func GenDeepCatalog(depth int) *production.Catalog {
	if depth < 1 {
		depth = 1
	}
	c := &production.Catalog{Version: fmt.Sprintf("deep_%d", depth)}
	for i := 0; i < depth; i++ {
		rs := production.RecipeSpec{
			Name:   fmt.Sprintf("level%d", i),
			Fields: map[string]any{fmt.Sprintf("f%d", i): i},
			Init: &production.InitSpec{
				Super:    i > 0,
				Defaults: map[string]any{fmt.Sprintf("slot%d", i): i},
			},
		}
		if i > 0 {
			rs.Parent = fmt.Sprintf("level%d", i-1)
		}
		c.Recipes = append(c.Recipes, rs)
	}
	return c
}

// GenMixinRecipe creates a recipe with n constructor mixins, each setting one slot.
func GenMixinRecipe(n int) (*core.Recipe, error) {
	r, err := core.Define(nil, nil, core.WithName(fmt.Sprintf("mixins_%d", n)))
	if err != nil {
		return nil, err
	}
	for i := 0; i < n; i++ {
		slot := fmt.Sprintf("m%d", i)
		err := r.Mixin(core.Constructor{
			Behavior: primitives.Bag{slot + "Method": core.Method(func(*core.Object, ...any) (any, error) { return nil, nil })},
			Init:     func(self *core.Object, _ ...any) error { return self.Set(slot, true) },
		})
		if err != nil {
			return nil, err
		}
	}
	return r, nil
}

// MustBuild builds c with a default loader and panics on error.
func MustBuild(c *production.Catalog) *core.Registry {
	reg, err := production.NewLoader().Build(c)
	if err != nil {
		panic(err)
	}
	return reg
}

// GenCatalogYAML renders a catalog as YAML for parse benchmarks.
func GenCatalogYAML(numRecipes int, deep bool) []byte {
	c := GenFlatCatalog(numRecipes)
	if deep {
		c = GenDeepCatalog(numRecipes)
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		panic(err)
	}
	return data
}
