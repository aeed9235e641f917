// Package production provides production integrations: declarative recipe
// catalogs and visualization.
package production

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/comalice/objectx/internal/core"
	"github.com/comalice/objectx/internal/primitives"
)

// Catalog is a declarative set of recipes, read from YAML or JSON.
type Catalog struct {
	Version string       `json:"version,omitempty" yaml:"version,omitempty"`
	Recipes []RecipeSpec `json:"recipes" yaml:"recipes" validate:"required,min=1,dive"`
}

// RecipeSpec declares one recipe. Parent and Mixins name other recipes of
// the same catalog; Methods maps member names to methods registered on the
// Loader.
type RecipeSpec struct {
	Name       string            `json:"name" yaml:"name" validate:"required"`
	Parent     string            `json:"parent,omitempty" yaml:"parent,omitempty" validate:"omitempty,nefield=Name"`
	Mixins     []string          `json:"mixins,omitempty" yaml:"mixins,omitempty" validate:"dive,required"`
	Fields     map[string]any    `json:"fields,omitempty" yaml:"fields,omitempty" validate:"dive,keys,required,member,endkeys"`
	Methods    map[string]string `json:"methods,omitempty" yaml:"methods,omitempty" validate:"dive,keys,required,member,endkeys,required"`
	Statics    map[string]any    `json:"statics,omitempty" yaml:"statics,omitempty" validate:"dive,keys,required,notreserved,endkeys"`
	Properties []PropertySpec    `json:"properties,omitempty" yaml:"properties,omitempty" validate:"dive"`
	Init       *InitSpec         `json:"init,omitempty" yaml:"init,omitempty"`
}

// PropertySpec declares a data property descriptor.
type PropertySpec struct {
	Name       string `json:"name" yaml:"name" validate:"required,member"`
	Value      any    `json:"value,omitempty" yaml:"value,omitempty"`
	Writable   bool   `json:"writable,omitempty" yaml:"writable,omitempty"`
	Enumerable bool   `json:"enumerable,omitempty" yaml:"enumerable,omitempty"`
}

// InitSpec declares the init routine: optionally run the parent's init with
// the same arguments, then assign defaults, then assign positional
// arguments to the named slots.
type InitSpec struct {
	Super    bool           `json:"super,omitempty" yaml:"super,omitempty"`
	Defaults map[string]any `json:"defaults,omitempty" yaml:"defaults,omitempty" validate:"dive,keys,required,endkeys"`
	Args     []string       `json:"args,omitempty" yaml:"args,omitempty" validate:"dive,required"`
}

var catalogValidate = newCatalogValidator()

func newCatalogValidator() *validator.Validate {
	v := validator.New()
	_ = v.RegisterValidation("notreserved", func(fl validator.FieldLevel) bool {
		return !primitives.IsReservedStatic(fl.Field().String())
	})
	_ = v.RegisterValidation("member", func(fl validator.FieldLevel) bool {
		return fl.Field().String() != primitives.InitKey
	})
	return v
}

// Validate checks field constraints and cross-recipe references.
func (c *Catalog) Validate() error {
	if err := catalogValidate.Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			msgs := make([]string, 0, len(verrs))
			for _, fe := range verrs {
				msgs = append(msgs, fmt.Sprintf("%s failed %q", fe.Namespace(), fe.Tag()))
			}
			return primitives.WrapError(primitives.KindInvalidCatalog, "", err, "%s", strings.Join(msgs, "; "))
		}
		return primitives.WrapError(primitives.KindInvalidCatalog, "", err, "validation failed")
	}

	names := make(map[string]bool, len(c.Recipes))
	for _, rs := range c.Recipes {
		if names[rs.Name] {
			return primitives.NewError(primitives.KindDuplicateName, rs.Name, "recipe declared twice in catalog")
		}
		names[rs.Name] = true
	}
	for _, rs := range c.Recipes {
		if rs.Parent != "" && !names[rs.Parent] {
			return primitives.NewError(primitives.KindInvalidCatalog, rs.Name, "unknown parent %q", rs.Parent)
		}
		for _, m := range rs.Mixins {
			if !names[m] {
				return primitives.NewError(primitives.KindInvalidCatalog, rs.Name, "unknown mixin %q", m)
			}
		}
	}
	return nil
}

// ComputedVersion returns the declared version, or a content hash.
func (c *Catalog) ComputedVersion() string {
	return primitives.ComputeVersion(c.Version, c.Recipes)
}

// ParseYAML decodes and validates a YAML catalog.
func ParseYAML(data []byte) (*Catalog, error) {
	var c Catalog
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, primitives.WrapError(primitives.KindInvalidCatalog, "", err, "yaml unmarshal")
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

// ParseJSON decodes and validates a JSON catalog.
func ParseJSON(data []byte) (*Catalog, error) {
	var c Catalog
	if err := json.Unmarshal(data, &c); err != nil {
		return nil, primitives.WrapError(primitives.KindInvalidCatalog, "", err, "json unmarshal")
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

// ReadCatalog reads a catalog file. The format follows the extension:
// .json is JSON, anything else is YAML.
func ReadCatalog(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	if strings.EqualFold(filepath.Ext(path), ".json") {
		return ParseJSON(data)
	}
	return ParseYAML(data)
}

// WriteCatalog writes c to path, as JSON or YAML by extension.
func WriteCatalog(path string, c *Catalog) error {
	var (
		data []byte
		err  error
	)
	if strings.EqualFold(filepath.Ext(path), ".json") {
		data, err = json.MarshalIndent(c, "", "  ")
	} else {
		data, err = yaml.Marshal(c)
	}
	if err != nil {
		return fmt.Errorf("marshal catalog: %w", err)
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("mkdir %s: %w", dir, err)
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// LoaderOption configures a Loader.
type LoaderOption func(*Loader)

// WithMethod makes m available to catalog recipes under name.
func WithMethod(name string, m core.Method) LoaderOption {
	return func(l *Loader) { l.methods[name] = m }
}

// WithRecipeOptions applies opts to every recipe the Loader builds.
func WithRecipeOptions(opts ...core.Option) LoaderOption {
	return func(l *Loader) { l.recipeOpts = append(l.recipeOpts, opts...) }
}

// WithLogger sets the Loader's logger.
func WithLogger(log *zap.Logger) LoaderOption {
	return func(l *Loader) {
		if log != nil {
			l.log = log
		}
	}
}

// Loader turns catalogs into registries of recipes.
type Loader struct {
	methods    map[string]core.Method
	recipeOpts []core.Option
	log        *zap.Logger
}

// NewLoader creates a Loader.
func NewLoader(opts ...LoaderOption) *Loader {
	l := &Loader{
		methods: map[string]core.Method{},
		log:     zap.NewNop(),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Build defines every recipe of c and registers it under its name. Parents
// and mixins are defined before the recipes that use them; a reference
// cycle fails with an invalid catalog error.
func (l *Loader) Build(c *Catalog) (*core.Registry, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	specs := make(map[string]*RecipeSpec, len(c.Recipes))
	for i := range c.Recipes {
		specs[c.Recipes[i].Name] = &c.Recipes[i]
	}

	b := &catalogBuild{
		loader: l,
		specs:  specs,
		built:  map[string]*core.Recipe{},
		state:  map[string]int{},
	}
	reg := core.NewRegistry()
	for _, rs := range c.Recipes {
		r, err := b.define(rs.Name)
		if err != nil {
			return nil, err
		}
		if err := reg.Register(rs.Name, r); err != nil {
			return nil, err
		}
	}

	l.log.Info("catalog loaded",
		zap.String("version", c.ComputedVersion()),
		zap.Int("recipes", len(c.Recipes)))
	return reg, nil
}

// LoadFile reads a catalog file and builds it.
func (l *Loader) LoadFile(path string) (*core.Registry, *Catalog, error) {
	c, err := ReadCatalog(path)
	if err != nil {
		return nil, nil, err
	}
	reg, err := l.Build(c)
	if err != nil {
		return nil, nil, err
	}
	return reg, c, nil
}

const (
	unvisited = iota
	visiting
	done
)

type catalogBuild struct {
	loader *Loader
	specs  map[string]*RecipeSpec
	built  map[string]*core.Recipe
	state  map[string]int
}

func (b *catalogBuild) define(name string) (*core.Recipe, error) {
	switch b.state[name] {
	case done:
		return b.built[name], nil
	case visiting:
		return nil, primitives.NewError(primitives.KindInvalidCatalog, name, "reference cycle")
	}
	b.state[name] = visiting
	rs := b.specs[name]

	methods, err := b.loader.behavior(rs)
	if err != nil {
		return nil, err
	}
	opts := append([]core.Option{core.WithName(rs.Name)}, b.loader.recipeOpts...)

	var r *core.Recipe
	if rs.Parent != "" {
		parent, err := b.define(rs.Parent)
		if err != nil {
			return nil, err
		}
		r, err = parent.Extend(methods, rs.Statics, opts...)
		if err != nil {
			return nil, fmt.Errorf("recipe %s: %w", name, err)
		}
	} else {
		r, err = core.Define(methods, rs.Statics, opts...)
		if err != nil {
			return nil, fmt.Errorf("recipe %s: %w", name, err)
		}
	}

	if rs.Init != nil {
		if err := r.Methods(primitives.Bag{primitives.InitKey: catalogInit(r, *rs.Init)}); err != nil {
			return nil, fmt.Errorf("recipe %s: %w", name, err)
		}
	}

	props := make([]core.Property, 0, len(rs.Properties))
	for _, ps := range rs.Properties {
		props = append(props, core.Property{
			Name: ps.Name,
			Descriptor: core.Descriptor{
				Value:      ps.Value,
				Writable:   ps.Writable,
				Enumerable: ps.Enumerable,
			},
		})
	}
	if err := r.Properties(props...); err != nil {
		return nil, fmt.Errorf("recipe %s: %w", name, err)
	}

	mixins := make([]any, 0, len(rs.Mixins))
	for _, m := range rs.Mixins {
		mr, err := b.define(m)
		if err != nil {
			return nil, err
		}
		mixins = append(mixins, mr)
	}
	if len(mixins) > 0 {
		if err := r.Mixin(mixins...); err != nil {
			return nil, fmt.Errorf("recipe %s: %w", name, err)
		}
	}

	b.built[name] = r
	b.state[name] = done
	b.loader.log.Debug("recipe defined",
		zap.String("recipe", name),
		zap.String("parent", rs.Parent),
		zap.Strings("mixins", rs.Mixins))
	return r, nil
}

// behavior assembles the behavior bag of rs from its fields and bound methods.
func (l *Loader) behavior(rs *RecipeSpec) (primitives.Bag, error) {
	bag := make(primitives.Bag, len(rs.Fields)+len(rs.Methods))
	for k, v := range rs.Fields {
		bag[k] = v
	}
	for member, ref := range rs.Methods {
		m, ok := l.methods[ref]
		if !ok {
			return nil, primitives.NewError(primitives.KindInvalidCatalog, rs.Name, "method %q is not registered", ref)
		}
		bag[member] = m
	}
	return bag, nil
}

func catalogInit(r *core.Recipe, spec InitSpec) core.InitFunc {
	return func(self *core.Object, args ...any) error {
		if spec.Super {
			if err := r.CallSuper(self, args...); err != nil {
				return err
			}
		}
		for _, k := range primitives.Bag(spec.Defaults).Names() {
			if err := self.Set(k, spec.Defaults[k]); err != nil {
				return err
			}
		}
		for i, name := range spec.Args {
			if i >= len(args) {
				break
			}
			if err := self.Set(name, args[i]); err != nil {
				return err
			}
		}
		return nil
	}
}
