package production

import (
	"fmt"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/comalice/objectx/internal/core"
	"github.com/comalice/objectx/internal/primitives"
)

func describeMethod(self *core.Object, _ ...any) (any, error) {
	return fmt.Sprintf("%s %v", self.Value("kind"), self.Value("name")), nil
}

func TestLoader_LoadFileYAML(t *testing.T) {
	obsCore, logs := observer.New(zapcore.DebugLevel)
	l := NewLoader(
		WithMethod("describe", describeMethod),
		WithLogger(zap.New(obsCore)),
	)

	reg, cat, err := l.LoadFile(filepath.Join("testdata", "shapes.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "1.0.0", cat.ComputedVersion())
	assert.Equal(t, []string{"Shape", "Tagged", "Square"}, reg.Names())

	sq, err := reg.Create("Square", "sq", 3)
	require.NoError(t, err)

	assert.Equal(t, "square", sq.Value("kind"))
	assert.Equal(t, "black", sq.Value("color"), "parent init runs through super")
	assert.Equal(t, "sq", sq.Value("name"))
	assert.Equal(t, 3, sq.Value("size"))
	assert.Equal(t, true, sq.Value("tagged"))
	assert.Equal(t, "default", sq.Value("tag"))
	assert.Equal(t, "cm", sq.Value("units"))
	assert.ErrorIs(t, sq.Set("units", "in"), primitives.ErrReadOnly)

	desc, err := sq.Call("Describe")
	require.NoError(t, err)
	assert.Equal(t, "square sq", desc)

	shape, err := reg.Get("Shape")
	require.NoError(t, err)
	square, err := reg.Get("Square")
	require.NoError(t, err)
	assert.True(t, sq.InstanceOf(shape))
	sides, _ := square.Static("Sides")
	assert.Equal(t, 4, sides)

	assert.Equal(t, 1, logs.FilterMessage("catalog loaded").Len())
	assert.Equal(t, 3, logs.FilterMessage("recipe defined").Len())
}

func TestLoader_LoadFileJSON(t *testing.T) {
	reg, cat, err := NewLoader().LoadFile(filepath.Join("testdata", "points.json"))
	require.NoError(t, err)
	assert.Len(t, cat.ComputedVersion(), 16)

	p, err := reg.Create("Point", 1, 2)
	require.NoError(t, err)
	assert.Equal(t, 1, p.Value("x"))
	assert.Equal(t, 2, p.Value("y"))
	assert.Equal(t, 2.0, p.Value("dims"))
}

func TestLoader_RecipeOptions(t *testing.T) {
	var steps []core.InitStep
	runner := recordRunner(func(s core.InitStep) { steps = append(steps, s) })

	cat, err := ParseYAML([]byte(`
recipes:
  - name: A
    init:
      args: [v]
`))
	require.NoError(t, err)
	reg, err := NewLoader(WithRecipeOptions(core.WithInitRunner(runner))).Build(cat)
	require.NoError(t, err)

	_, err = reg.Create("A", 1)
	require.NoError(t, err)
	require.Len(t, steps, 1)
	assert.Equal(t, "A", steps[0].Label)
}

type recordRunner func(core.InitStep)

func (r recordRunner) RunInit(step core.InitStep, fn core.InitFunc, self *core.Object, args []any) error {
	r(step)
	return fn(self, args...)
}

func TestParseYAML_Rejects(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		want error
	}{
		{
			name: "empty",
			doc:  `recipes: []`,
			want: primitives.ErrInvalidCatalog,
		},
		{
			name: "missing name",
			doc:  "recipes:\n  - fields: {a: 1}\n",
			want: primitives.ErrInvalidCatalog,
		},
		{
			name: "reserved static",
			doc:  "recipes:\n  - name: A\n    statics: {create: 1}\n",
			want: primitives.ErrInvalidCatalog,
		},
		{
			name: "init declared as field",
			doc:  "recipes:\n  - name: A\n    fields: {init: 1}\n",
			want: primitives.ErrInvalidCatalog,
		},
		{
			name: "self parent",
			doc:  "recipes:\n  - name: A\n    parent: A\n",
			want: primitives.ErrInvalidCatalog,
		},
		{
			name: "unknown parent",
			doc:  "recipes:\n  - name: A\n    parent: B\n",
			want: primitives.ErrInvalidCatalog,
		},
		{
			name: "unknown mixin",
			doc:  "recipes:\n  - name: A\n    mixins: [B]\n",
			want: primitives.ErrInvalidCatalog,
		},
		{
			name: "duplicate recipe",
			doc:  "recipes:\n  - name: A\n  - name: A\n",
			want: primitives.ErrDuplicateName,
		},
		{
			name: "malformed yaml",
			doc:  "recipes: [",
			want: primitives.ErrInvalidCatalog,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseYAML([]byte(tt.doc))
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestLoader_BuildErrors(t *testing.T) {
	t.Run("cycle", func(t *testing.T) {
		cat, err := ParseYAML([]byte("recipes:\n  - name: A\n    mixins: [B]\n  - name: B\n    parent: A\n"))
		require.NoError(t, err)
		_, err = NewLoader().Build(cat)
		assert.ErrorIs(t, err, primitives.ErrInvalidCatalog)
	})

	t.Run("self mixin", func(t *testing.T) {
		cat, err := ParseYAML([]byte("recipes:\n  - name: A\n    mixins: [A]\n"))
		require.NoError(t, err)
		_, err = NewLoader().Build(cat)
		assert.ErrorIs(t, err, primitives.ErrInvalidCatalog)
	})

	t.Run("unregistered method", func(t *testing.T) {
		cat, err := ParseYAML([]byte("recipes:\n  - name: A\n    methods: {Run: run}\n"))
		require.NoError(t, err)
		_, err = NewLoader().Build(cat)
		assert.ErrorIs(t, err, primitives.ErrInvalidCatalog)
	})
}

func TestWriteCatalog_RoundTrip(t *testing.T) {
	orig, err := ReadCatalog(filepath.Join("testdata", "shapes.yaml"))
	require.NoError(t, err)

	dir := t.TempDir()
	for _, name := range []string{"out.yaml", "nested/out.json"} {
		path := filepath.Join(dir, name)
		require.NoError(t, WriteCatalog(path, orig))

		loaded, err := ReadCatalog(path)
		require.NoError(t, err)
		assert.Equal(t, orig.Version, loaded.Version)
		require.Len(t, loaded.Recipes, len(orig.Recipes))
		for i := range orig.Recipes {
			assert.Equal(t, orig.Recipes[i].Name, loaded.Recipes[i].Name)
			assert.Equal(t, orig.Recipes[i].Parent, loaded.Recipes[i].Parent)
			assert.Equal(t, orig.Recipes[i].Mixins, loaded.Recipes[i].Mixins)
		}
	}
}

func TestReadCatalog_MissingFile(t *testing.T) {
	_, err := ReadCatalog(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
