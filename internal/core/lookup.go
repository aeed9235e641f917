package core

// Lookup resolves name through r's behavior table and delegation chain.
//
// At each level of the chain, starting at r: the level's local declarations
// win, then mixin contributions added at that level (latest first), then the
// next level up. Only mixins in r's own snapshot are consulted, so a mixin
// added to an ancestor after r was derived stays invisible to r.
func (r *Recipe) Lookup(name string) (any, bool) {
	for level := r; level != nil; level = level.parent {
		if v, ok := level.local[name]; ok {
			return v, true
		}
		for i := len(r.mixins) - 1; i >= 0; i-- {
			m := r.mixins[i]
			if m.origin != level {
				continue
			}
			if v, ok := m.behavior[name]; ok {
				return v, true
			}
		}
	}
	return nil, false
}

// Chain returns r followed by its ancestors, nearest first.
func (r *Recipe) Chain() []*Recipe {
	var chain []*Recipe
	for level := r; level != nil; level = level.parent {
		chain = append(chain, level)
	}
	return chain
}

// derivesFrom reports whether ancestor is r or one of r's parents.
func (r *Recipe) derivesFrom(ancestor *Recipe) bool {
	if ancestor == nil {
		return false
	}
	for level := r; level != nil; level = level.parent {
		if level == ancestor {
			return true
		}
	}
	return false
}
