// Package primitives provides the foundational, zero-dependency data structures
// for the object-composition engine.
//
// This package uses ONLY the Go standard library. The runtime in internal/core
// builds on it and adds nothing beyond github.com/google/uuid for recipe IDs.
// Keeping the bottom tier dependency-free gives:
// - Minimal binary size
// - Deterministic builds
// - A core that adapters (catalog loader, CLI, runners) can wrap freely
//
// Core invariants:
// - Bags are copied on every merge boundary; callers never share storage with a recipe
// - OrderedMap preserves first-insertion order; overriding a key keeps its slot
// - StaticTable is insert-or-fail; a defined key is never overwritten
//
// None of these types are safe for concurrent mutation. Recipes are configured
// by a single caller before instances exist.
package primitives
