package objectx

import (
	"fmt"
)

// RecipeBuilder provides a fluent API for declaring a recipe member by
// member instead of assembling bags by hand. Errors are collected and
// reported by Build.
type RecipeBuilder struct {
	name    string
	parent  any
	methods Bag
	statics []staticEntry
	props   []Property
	mixins  []any
	opts    []Option
}

type staticEntry struct {
	name  string
	value any
}

// NewRecipeBuilder creates a new builder for a recipe with the given name.
func NewRecipeBuilder(name string) *RecipeBuilder {
	return &RecipeBuilder{
		name:    name,
		methods: Bag{},
	}
}

// Extends sets the parent the recipe derives from.
func (b *RecipeBuilder) Extends(parent any) *RecipeBuilder {
	b.parent = parent
	return b
}

// Init sets the init routine.
func (b *RecipeBuilder) Init(fn InitFunc) *RecipeBuilder {
	b.methods[InitKey] = fn
	return b
}

// Method adds a method to the behavior table.
func (b *RecipeBuilder) Method(name string, fn Method) *RecipeBuilder {
	b.methods[name] = fn
	return b
}

// Field adds a shared value to the behavior table.
func (b *RecipeBuilder) Field(name string, value any) *RecipeBuilder {
	b.methods[name] = value
	return b
}

// Property declares a property descriptor applied to every instance.
func (b *RecipeBuilder) Property(name string, d Descriptor) *RecipeBuilder {
	b.props = append(b.props, Property{Name: name, Descriptor: d})
	return b
}

// Static declares a recipe-level value. Declaring the same name twice makes
// Build fail.
func (b *RecipeBuilder) Static(name string, value any) *RecipeBuilder {
	b.statics = append(b.statics, staticEntry{name: name, value: value})
	return b
}

// Mixin appends mixins in order.
func (b *RecipeBuilder) Mixin(mixins ...any) *RecipeBuilder {
	b.mixins = append(b.mixins, mixins...)
	return b
}

// Options appends recipe options.
func (b *RecipeBuilder) Options(opts ...Option) *RecipeBuilder {
	b.opts = append(b.opts, opts...)
	return b
}

// Build validates the declarations and constructs the Recipe.
func (b *RecipeBuilder) Build() (*Recipe, error) {
	opts := b.opts
	if b.name != "" {
		opts = append([]Option{WithName(b.name)}, opts...)
	}

	var (
		r   *Recipe
		err error
	)
	if b.parent != nil {
		r, err = Extend(b.parent, b.methods, nil, opts...)
	} else {
		r, err = Define(b.methods, nil, opts...)
	}
	if err != nil {
		return nil, fmt.Errorf("recipe %s: %w", b.name, err)
	}

	for _, s := range b.statics {
		if err := r.DefineStatic(s.name, s.value); err != nil {
			return nil, fmt.Errorf("recipe %s: %w", b.name, err)
		}
	}
	if err := r.Properties(b.props...); err != nil {
		return nil, fmt.Errorf("recipe %s: %w", b.name, err)
	}
	if len(b.mixins) > 0 {
		if err := r.Mixin(b.mixins...); err != nil {
			return nil, fmt.Errorf("recipe %s: %w", b.name, err)
		}
	}
	return r, nil
}
