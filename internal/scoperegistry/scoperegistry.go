// Package scoperegistry implements the Scope Registry of spec.md §4.4: each
// file's lexical scope tree, and the ancestry queries the Resolution
// Registry relies on. It is the sole source of truth for "scope
// containment" — no definition is ever consulted to answer that question.
package scoperegistry

import (
	"github.com/CRJFisher/ariadne/internal/types"
)

// Registry holds the scope tree for every indexed file.
type Registry struct {
	scopes       map[types.ScopeID]*types.Scope
	fileRoots    map[types.FilePath]types.ScopeID
	scopesByFile map[types.FilePath][]types.ScopeID
}

// New creates an empty Scope Registry.
func New() *Registry {
	return &Registry{
		scopes:       make(map[types.ScopeID]*types.Scope),
		fileRoots:    make(map[types.FilePath]types.ScopeID),
		scopesByFile: make(map[types.FilePath][]types.ScopeID),
	}
}

// UpdateFile replaces the scope tree for a file.
func (r *Registry) UpdateFile(file types.FilePath, rootScope types.ScopeID, scopes []types.Scope) {
	r.RemoveFile(file)
	ids := make([]types.ScopeID, 0, len(scopes))
	for i := range scopes {
		s := scopes[i]
		r.scopes[s.ID] = &s
		ids = append(ids, s.ID)
	}
	r.fileRoots[file] = rootScope
	r.scopesByFile[file] = ids
}

// RemoveFile detaches every scope belonging to a file.
func (r *Registry) RemoveFile(file types.FilePath) {
	for _, id := range r.scopesByFile[file] {
		delete(r.scopes, id)
	}
	delete(r.scopesByFile, file)
	delete(r.fileRoots, file)
}

// GetFileRootScope returns the module-root scope id for a file.
func (r *Registry) GetFileRootScope(file types.FilePath) types.ScopeID {
	return r.fileRoots[file]
}

// GetScope returns a scope by id, or nil.
func (r *Registry) GetScope(id types.ScopeID) *types.Scope {
	return r.scopes[id]
}

// GetAllScopes returns every scope currently registered.
func (r *Registry) GetAllScopes() []*types.Scope {
	out := make([]*types.Scope, 0, len(r.scopes))
	for _, s := range r.scopes {
		out = append(out, s)
	}
	return out
}

// Children returns a scope's direct child scopes in declaration order.
func (r *Registry) Children(id types.ScopeID) []*types.Scope {
	scope := r.scopes[id]
	if scope == nil {
		return nil
	}
	out := make([]*types.Scope, 0, len(scope.ChildIDs))
	for _, childID := range scope.ChildIDs {
		if child := r.scopes[childID]; child != nil {
			out = append(out, child)
		}
	}
	return out
}

// Ancestors returns the chain of scope ids from id up to (and including)
// the file's module root, id first.
func (r *Registry) Ancestors(id types.ScopeID) []types.ScopeID {
	var chain []types.ScopeID
	for cur := id; cur != ""; {
		scope := r.scopes[cur]
		if scope == nil {
			break
		}
		chain = append(chain, cur)
		cur = scope.ParentID
	}
	return chain
}

// FindEnclosingFunctionScope returns the nearest enclosing scope (inclusive
// of id itself) whose type is function/method/constructor — i.e. the
// caller scope a call site is attributed to (spec.md §4.4).
func (r *Registry) FindEnclosingFunctionScope(id types.ScopeID) types.ScopeID {
	for cur := id; cur != ""; {
		scope := r.scopes[cur]
		if scope == nil {
			return ""
		}
		if scope.Type.IsCallable() {
			return cur
		}
		cur = scope.ParentID
	}
	return ""
}
