// Package defregistry implements the Definition Registry of spec.md §4.3:
// an index of every Symbol Definition by id, by file, and by (scope, kind).
package defregistry

import (
	"github.com/CRJFisher/ariadne/internal/types"
)

// Registry holds all definitions currently known to the coordinator.
type Registry struct {
	byID   map[types.SymbolID]*types.Definition
	byFile map[types.FilePath][]types.SymbolID

	// byScope[scopeID] is the ordered list of symbol ids defined directly
	// in that scope, preserving indexer emission order for stable
	// iteration (spec.md §4.3: "preferred but not mandatory").
	byScope map[types.ScopeID][]types.SymbolID
}

// New creates an empty Definition Registry.
func New() *Registry {
	return &Registry{
		byID:    make(map[types.SymbolID]*types.Definition),
		byFile:  make(map[types.FilePath][]types.SymbolID),
		byScope: make(map[types.ScopeID][]types.SymbolID),
	}
}

// UpdateFile replaces the definitions for a file atomically: existing
// definitions for that file are first removed, then the new ones added.
func (r *Registry) UpdateFile(file types.FilePath, defs []types.Definition) {
	r.RemoveFile(file)
	ids := make([]types.SymbolID, 0, len(defs))
	for i := range defs {
		d := defs[i]
		r.byID[d.SymbolID] = &d
		r.byScope[d.DefiningScope] = append(r.byScope[d.DefiningScope], d.SymbolID)
		ids = append(ids, d.SymbolID)
	}
	r.byFile[file] = ids
}

// RemoveFile detaches every definition belonging to a file.
func (r *Registry) RemoveFile(file types.FilePath) {
	ids, ok := r.byFile[file]
	if !ok {
		return
	}
	for _, id := range ids {
		if d, ok := r.byID[id]; ok {
			r.removeFromScope(d.DefiningScope, id)
			delete(r.byID, id)
		}
	}
	delete(r.byFile, file)
}

func (r *Registry) removeFromScope(scope types.ScopeID, id types.SymbolID) {
	list := r.byScope[scope]
	for i, existing := range list {
		if existing == id {
			r.byScope[scope] = append(list[:i], list[i+1:]...)
			return
		}
	}
}

// GetByID returns the definition for a symbol id, or nil.
func (r *Registry) GetByID(id types.SymbolID) *types.Definition {
	return r.byID[id]
}

// GetScopeDefinitions returns the Name->SymbolID map of definitions owned
// directly by a scope (spec.md §4.3). Later definitions with the same name
// in emission order win, matching "at most one definition per name per
// kind-group" in the well-formed case while still being defined for
// malformed input.
func (r *Registry) GetScopeDefinitions(scope types.ScopeID) map[string]types.SymbolID {
	out := make(map[string]types.SymbolID)
	for _, id := range r.byScope[scope] {
		if d, ok := r.byID[id]; ok {
			out[d.Name] = id
		}
	}
	return out
}

// GetFileDefinitions returns every symbol id defined in a file.
func (r *Registry) GetFileDefinitions(file types.FilePath) []types.SymbolID {
	return r.byFile[file]
}
