package production

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/comalice/objectx/internal/core"
)

// DefaultVisualizer renders recipe graphs: delegation edges from child to
// parent and mixin edges from a recipe to what it mixes in.
type DefaultVisualizer struct{}

// MixinDescription is the JSON form of a mixin entry.
type MixinDescription struct {
	Kind    string `json:"kind"`
	Label   string `json:"label"`
	Origin  string `json:"origin"`
	HasInit bool   `json:"has_init"`
}

// RecipeDescription is the JSON form of a recipe.
type RecipeDescription struct {
	ID         string             `json:"id"`
	Name       string             `json:"name"`
	Parent     string             `json:"parent,omitempty"`
	Chain      []string           `json:"chain"`
	Local      []string           `json:"local,omitempty"`
	Properties []string           `json:"properties,omitempty"`
	Statics    map[string]any     `json:"statics,omitempty"`
	Mixins     []MixinDescription `json:"mixins,omitempty"`
}

// Describe builds the JSON form of r.
func Describe(r *core.Recipe) RecipeDescription {
	d := RecipeDescription{
		ID:         r.ID(),
		Name:       r.Name(),
		Local:      r.LocalNames(),
		Properties: r.PropertyNames(),
	}
	if p := r.Parent(); p != nil {
		d.Parent = p.Name()
	}
	for _, level := range r.Chain() {
		d.Chain = append(d.Chain, level.Name())
	}
	if statics := r.StaticValues(); len(statics) > 0 {
		d.Statics = statics
	}
	for _, m := range r.Mixins() {
		d.Mixins = append(d.Mixins, MixinDescription{
			Kind:    string(m.Kind),
			Label:   m.Label,
			Origin:  m.Origin.Name(),
			HasInit: m.HasInit,
		})
	}
	return d
}

// ExportJSON serializes descriptions of recipes, in order.
func (v *DefaultVisualizer) ExportJSON(recipes []*core.Recipe) ([]byte, error) {
	out := make([]RecipeDescription, 0, len(recipes))
	for _, r := range recipes {
		out = append(out, Describe(r))
	}
	return json.MarshalIndent(out, "", "  ")
}

// ExportDOT generates Graphviz DOT source for the recipes and everything
// they reach through parents and recipe mixins. Recipes listed in
// highlight are filled.
func (v *DefaultVisualizer) ExportDOT(recipes []*core.Recipe, highlight ...string) string {
	var buf bytes.Buffer
	buf.WriteString(`digraph Recipes {
  rankdir=BT;
  node [shape=box, fontsize=10, style=rounded];
  edge [fontsize=9];
`)

	active := make(map[string]bool, len(highlight))
	for _, h := range highlight {
		active[h] = true
	}

	ids := nodeIDs{byRecipe: map[*core.Recipe]string{}, taken: map[string]bool{}}
	seen := map[*core.Recipe]bool{}
	var edges []Edge
	var visit func(r *core.Recipe)
	visit = func(r *core.Recipe) {
		if r == nil || seen[r] {
			return
		}
		seen[r] = true
		id := ids.of(r)
		renderRecipe(&buf, id, r, active[r.Name()])

		if p := r.Parent(); p != nil {
			edges = append(edges, Edge{From: id, To: ids.of(p), Label: "extends"})
			visit(p)
		}
		for i, m := range r.Mixins() {
			if m.Origin != r {
				continue
			}
			if m.Source != nil {
				edges = append(edges, Edge{From: id, To: ids.of(m.Source), Label: fmt.Sprintf("mixin %d", i), Dashed: true})
				visit(m.Source)
				continue
			}
			node := fmt.Sprintf("%s#%d", id, i)
			buf.WriteString(fmt.Sprintf("  %q [label=%q shape=note];\n", node, m.Label))
			edges = append(edges, Edge{From: id, To: node, Label: fmt.Sprintf("mixin %d", i), Dashed: true})
		}
	}
	for _, r := range recipes {
		visit(r)
	}

	for _, e := range edges {
		style := ""
		if e.Dashed {
			style = " style=dashed"
		}
		buf.WriteString(fmt.Sprintf("  %q -> %q [label=%q%s];\n", e.From, e.To, e.Label, style))
	}

	buf.WriteString("}\n")
	return buf.String()
}

// Edge represents a delegation or mixin edge.
type Edge struct {
	From   string
	To     string
	Label  string
	Dashed bool
}

// nodeIDs names graph nodes after their recipes. A recipe whose name is
// already used by another recipe gets its short ID appended.
type nodeIDs struct {
	byRecipe map[*core.Recipe]string
	taken    map[string]bool
}

func (n nodeIDs) of(r *core.Recipe) string {
	if id, ok := n.byRecipe[r]; ok {
		return id
	}
	id := r.Name()
	if n.taken[id] {
		short := r.ID()
		if len(short) > 8 {
			short = short[:8]
		}
		id = fmt.Sprintf("%s@%s", id, short)
	}
	n.taken[id] = true
	n.byRecipe[r] = id
	return id
}

func renderRecipe(buf *bytes.Buffer, id string, r *core.Recipe, active bool) {
	label := r.Name()
	if n := len(r.StaticNames()); n > 0 {
		label = fmt.Sprintf("%s (%d statics)", label, n)
	}
	style := ""
	if active {
		style = " style=filled fillcolor=lightgreen"
	}
	buf.WriteString(fmt.Sprintf("  %q [label=%q%s];\n", id, label, style))
}
