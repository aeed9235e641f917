package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/comalice/objectx/internal/primitives"
)

func TestMixin_Shapes(t *testing.T) {
	recipeMixin, err := Define(primitives.Bag{
		primitives.InitKey: setField("fromRecipeInit", true),
		"value":            true,
	}, nil, WithName("M"))
	require.NoError(t, err)

	tests := []struct {
		name   string
		mixin  any
		expect map[string]any
	}{
		{
			name:   "recipe",
			mixin:  recipeMixin,
			expect: map[string]any{"value": true, "fromRecipeInit": true},
		},
		{
			name:   "bag",
			mixin:  primitives.Bag{"value": true},
			expect: map[string]any{"value": true},
		},
		{
			name:   "plain map",
			mixin:  map[string]any{"value": true},
			expect: map[string]any{"value": true},
		},
		{
			name: "constructor",
			mixin: Constructor{
				Behavior: primitives.Bag{"value": true},
				Init:     setField("value2", true),
			},
			expect: map[string]any{"value": true, "value2": true},
		},
		{
			name: "constructor pointer",
			mixin: &Constructor{
				Behavior: primitives.Bag{"value": true},
				Init:     setField("value2", true),
			},
			expect: map[string]any{"value": true, "value2": true},
		},
		{
			name:   "list",
			mixin:  []any{primitives.Bag{"value": true}, Constructor{Init: setField("value2", true)}},
			expect: map[string]any{"value": true, "value2": true},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := Define(nil, nil)
			require.NoError(t, err)
			require.NoError(t, r.Mixin(tt.mixin))

			obj, err := r.Create()
			require.NoError(t, err)
			for k, v := range tt.expect {
				assert.Equal(t, v, obj.Value(k), k)
			}
		})
	}
}

func TestMixin_RejectsInvalidShapes(t *testing.T) {
	tests := []struct {
		name  string
		mixin any
	}{
		{"nil", nil},
		{"nil recipe", (*Recipe)(nil)},
		{"nil bag", primitives.Bag(nil)},
		{"number", 42},
		{"string", "mixin"},
		{"constructor without body", Constructor{Behavior: primitives.Bag{"x": 1}}},
		{"nil constructor pointer", (*Constructor)(nil)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := Define(nil, nil)
			require.NoError(t, err)

			err = r.Mixin(primitives.Bag{"good": 1}, tt.mixin)
			require.Error(t, err)
			assert.ErrorIs(t, err, primitives.ErrInvalidMixin)
			assert.Empty(t, r.Mixins(), "a rejected call must not append any mixin")
		})
	}
}

func TestMixin_RejectsSelf(t *testing.T) {
	r, err := Define(nil, nil)
	require.NoError(t, err)
	assert.ErrorIs(t, r.Mixin(r), primitives.ErrInvalidMixin)
}

func TestMixin_BagInitEntryIsIgnored(t *testing.T) {
	ran := false
	r, err := Define(nil, nil)
	require.NoError(t, err)
	require.NoError(t, r.Mixin(primitives.Bag{
		primitives.InitKey: InitFunc(func(*Object, ...any) error { ran = true; return nil }),
		"value":            1,
	}))

	obj, err := r.Create()
	require.NoError(t, err)
	assert.False(t, ran)
	assert.False(t, obj.Has(primitives.InitKey))
	assert.Equal(t, 1, obj.Value("value"))
}

func TestMixin_OwnDeclarationsWinOverMixins(t *testing.T) {
	r, err := Define(primitives.Bag{"shared": "own"}, nil)
	require.NoError(t, err)
	require.NoError(t, r.Mixin(primitives.Bag{"shared": "mixin", "onlyMixin": 1}))

	obj, err := r.Create()
	require.NoError(t, err)
	assert.Equal(t, "own", obj.Value("shared"))
	assert.Equal(t, 1, obj.Value("onlyMixin"))
}

func TestMixin_LaterMixinWins(t *testing.T) {
	r, err := Define(nil, nil)
	require.NoError(t, err)
	require.NoError(t, r.Mixin(primitives.Bag{"v": 1}, primitives.Bag{"v": 2}))

	v, ok := r.Lookup("v")
	require.True(t, ok)
	assert.Equal(t, 2, v)
}

func TestMixin_RecipeContributesOwnDeclarationsOnly(t *testing.T) {
	base, err := Define(primitives.Bag{"inherited": true}, nil)
	require.NoError(t, err)
	m, err := base.Extend(primitives.Bag{"own": true}, nil)
	require.NoError(t, err)
	require.NoError(t, m.Mixin(primitives.Bag{"mixedIntoM": true}))

	r, err := Define(nil, nil)
	require.NoError(t, err)
	require.NoError(t, r.Mixin(m))

	_, ok := r.Lookup("inherited")
	assert.False(t, ok, "a recipe mixin must not bring its parent's declarations")
	_, ok = r.Lookup("own")
	assert.True(t, ok)
	_, ok = r.Lookup("mixedIntoM")
	assert.True(t, ok)
}

func TestMixin_SnapshotAtMixinTime(t *testing.T) {
	m, err := Define(primitives.Bag{"a": 1}, nil)
	require.NoError(t, err)

	r, err := Define(nil, nil)
	require.NoError(t, err)
	require.NoError(t, r.Mixin(m))
	require.NoError(t, m.Methods(primitives.Bag{"b": 2}))

	_, ok := r.Lookup("b")
	assert.False(t, ok)
}

func TestMixin_ChildInheritsParentMixinInits(t *testing.T) {
	m, err := Define(primitives.Bag{primitives.InitKey: setField("value", true)}, nil)
	require.NoError(t, err)

	o, err := Define(nil, nil)
	require.NoError(t, err)
	require.NoError(t, o.Mixin(m))

	e, err := o.Extend(nil, nil)
	require.NoError(t, err)

	obj, err := e.New()
	require.NoError(t, err)
	assert.Equal(t, true, obj.Value("value"))

	info := e.Mixins()
	require.Len(t, info, 1)
	assert.Equal(t, MixinRecipe, info[0].Kind)
	assert.Same(t, o, info[0].Origin)
	assert.Same(t, m, info[0].Source)
	assert.True(t, info[0].HasInit)
}

func TestMixin_ParentPrecedenceOverInheritedMixin(t *testing.T) {
	p, err := Define(primitives.Bag{"shared": "parent"}, nil)
	require.NoError(t, err)
	require.NoError(t, p.Mixin(primitives.Bag{"shared": "mixin"}))

	c, err := p.Extend(nil, nil)
	require.NoError(t, err)
	require.NoError(t, c.Mixin(primitives.Bag{"childMixin": true}))

	v, _ := c.Lookup("shared")
	assert.Equal(t, "parent", v)
}
