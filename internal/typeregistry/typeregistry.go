// Package typeregistry implements the Type Registry of spec.md §4.7: the
// declared/inferred type of each variable/expression location, and each
// named type's member map. Name-based bindings are stored raw at update
// time and converted to resolved type symbol ids during the coordinator's
// separate Type phase, once phase-1 name resolution is available — see
// Propagate.
package typeregistry

import (
	"github.com/CRJFisher/ariadne/internal/types"
)

// ResolveNameFunc looks up a name in a scope's phase-1 resolution map.
type ResolveNameFunc func(scope types.ScopeID, name string) (types.SymbolID, bool)

// Registry holds type bindings and type member maps for every indexed file.
type Registry struct {
	rawBindings map[types.FilePath][]types.TypeBinding
	resolved    map[types.LocationKey]types.SymbolID
	members     map[types.SymbolID]types.TypeMembers
	memberFiles map[types.FilePath][]types.SymbolID
}

// New creates an empty Type Registry.
func New() *Registry {
	return &Registry{
		rawBindings: make(map[types.FilePath][]types.TypeBinding),
		resolved:    make(map[types.LocationKey]types.SymbolID),
		members:     make(map[types.SymbolID]types.TypeMembers),
		memberFiles: make(map[types.FilePath][]types.SymbolID),
	}
}

// UpdateFile replaces a file's raw bindings and member maps. Previously
// resolved bindings for this file are cleared; Propagate must be re-run
// for the file to populate fresh ones.
func (r *Registry) UpdateFile(file types.FilePath, bindings []types.TypeBinding, members map[types.SymbolID]types.TypeMembers) {
	r.RemoveFile(file)

	r.rawBindings[file] = bindings
	for _, b := range bindings {
		delete(r.resolved, types.NewLocationKey(b.Location))
	}

	ids := make([]types.SymbolID, 0, len(members))
	for id, m := range members {
		r.members[id] = m
		ids = append(ids, id)
	}
	r.memberFiles[file] = ids
}

// RemoveFile detaches every binding and member map belonging to a file.
func (r *Registry) RemoveFile(file types.FilePath) {
	for _, b := range r.rawBindings[file] {
		delete(r.resolved, types.NewLocationKey(b.Location))
	}
	delete(r.rawBindings, file)

	for _, id := range r.memberFiles[file] {
		delete(r.members, id)
	}
	delete(r.memberFiles, file)
}

// Propagate resolves a file's raw name-based bindings into symbol ids using
// the supplied phase-1 name resolver, implementing the Type phase of the
// pipeline (spec.md §2: "run Type phase (propagate bindings)").
func (r *Registry) Propagate(file types.FilePath, resolveName ResolveNameFunc) {
	for _, b := range r.rawBindings[file] {
		if sym, ok := resolveName(b.ScopeID, b.TypeName); ok {
			r.resolved[types.NewLocationKey(b.Location)] = sym
		}
	}
}

// TypeOfLocation returns the resolved type symbol id bound at a location,
// if any.
func (r *Registry) TypeOfLocation(loc types.Location) (types.SymbolID, bool) {
	sym, ok := r.resolved[types.NewLocationKey(loc)]
	return sym, ok
}

// BindLocation directly records a resolved type for a location, bypassing
// name resolution, for callers that already know the target symbol. Phase 2
// does not call it: a method chain's intermediate receiver types are carried
// in memory during the chain walk and are not bound here.
func (r *Registry) BindLocation(loc types.Location, typeSymbol types.SymbolID) {
	r.resolved[types.NewLocationKey(loc)] = typeSymbol
}

// Members returns the member map for a type symbol id, if known. It first
// checks members supplied directly on the owning Definition (merged in by
// the coordinator before calling UpdateFile), then the separately-supplied
// TypeMembers map.
func (r *Registry) Members(typeSymbol types.SymbolID) (types.TypeMembers, bool) {
	m, ok := r.members[typeSymbol]
	return m, ok
}

// SetMembers registers (or overwrites) the member map for a single type
// symbol id outside of UpdateFile. The entry is not tied to any file, so
// RemoveFile never clears it. The coordinator does not use it: it merges a
// Definition's own Members field into the map it passes to UpdateFile.
func (r *Registry) SetMembers(typeSymbol types.SymbolID, members types.TypeMembers) {
	r.members[typeSymbol] = members
}

// ResolveMethod walks a type's member map (and its bases, via Extends) for
// a method name, returning its symbol id.
func (r *Registry) ResolveMethod(typeSymbol types.SymbolID, methodName string, resolveTypeName ResolveNameFunc, scope types.ScopeID) (types.SymbolID, bool) {
	return r.resolveMember(typeSymbol, methodName, true, resolveTypeName, scope, make(map[types.SymbolID]bool))
}

// ResolveProperty walks a type's member map (and its bases) for a property
// name, returning its declared type's symbol id via Properties.
func (r *Registry) ResolveProperty(typeSymbol types.SymbolID, propName string, resolveTypeName ResolveNameFunc, scope types.ScopeID) (types.SymbolID, bool) {
	return r.resolveMember(typeSymbol, propName, false, resolveTypeName, scope, make(map[types.SymbolID]bool))
}

func (r *Registry) resolveMember(typeSymbol types.SymbolID, name string, wantMethod bool, resolveTypeName ResolveNameFunc, scope types.ScopeID, visited map[types.SymbolID]bool) (types.SymbolID, bool) {
	if visited[typeSymbol] {
		return "", false
	}
	visited[typeSymbol] = true

	members, ok := r.members[typeSymbol]
	if !ok {
		return "", false
	}

	if wantMethod {
		if id, ok := members.Methods[name]; ok {
			return id, true
		}
	} else {
		if id, ok := members.Properties[name]; ok {
			return id, true
		}
	}

	for _, baseName := range members.Extends {
		baseSymbol, ok := resolveTypeName(scope, baseName)
		if !ok {
			continue
		}
		if id, ok := r.resolveMember(baseSymbol, name, wantMethod, resolveTypeName, scope, visited); ok {
			return id, true
		}
	}
	return "", false
}
