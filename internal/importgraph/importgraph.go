// Package importgraph implements the Import Graph of spec.md §4.6: per-file
// import definitions keyed by scope, a cache of import-symbol -> resolved
// source file computed once at update time, and the namespace_sources map
// used later to resolve `ns.member` calls through a namespace import.
package importgraph

import (
	"github.com/CRJFisher/ariadne/internal/types"
)

// ModuleResolverFunc resolves an import specifier from a given file to the
// canonical file path of the module it names.
type ModuleResolverFunc func(fromFile types.FilePath, importPath string) types.FilePath

// Graph holds the import surface of every indexed file.
type Graph struct {
	scopeImports     map[types.ScopeID][]types.Definition
	resolvedPaths    map[types.SymbolID]types.FilePath
	namespaceSources map[types.SymbolID]types.FilePath
	fileSymbols      map[types.FilePath][]types.SymbolID
	fileScopes       map[types.FilePath][]types.ScopeID
}

// New creates an empty Import Graph.
func New() *Graph {
	return &Graph{
		scopeImports:     make(map[types.ScopeID][]types.Definition),
		resolvedPaths:    make(map[types.SymbolID]types.FilePath),
		namespaceSources: make(map[types.SymbolID]types.FilePath),
		fileSymbols:      make(map[types.FilePath][]types.SymbolID),
		fileScopes:       make(map[types.FilePath][]types.ScopeID),
	}
}

// UpdateFile rebuilds the import graph entries for a file, resolving every
// import's source module path exactly once via resolveModule.
func (g *Graph) UpdateFile(file types.FilePath, defs []types.Definition, resolveModule ModuleResolverFunc) {
	g.RemoveFile(file)

	var symbolIDs []types.SymbolID
	scopeSet := make(map[types.ScopeID]struct{})

	for _, d := range defs {
		if !d.IsImport() {
			continue
		}
		g.scopeImports[d.DefiningScope] = append(g.scopeImports[d.DefiningScope], d)
		scopeSet[d.DefiningScope] = struct{}{}

		resolved := resolveModule(file, d.ImportPath)
		g.resolvedPaths[d.SymbolID] = resolved
		if d.ImportKind == types.ImportNamespace {
			g.namespaceSources[d.SymbolID] = resolved
		}
		symbolIDs = append(symbolIDs, d.SymbolID)
	}

	g.fileSymbols[file] = symbolIDs
	scopes := make([]types.ScopeID, 0, len(scopeSet))
	for s := range scopeSet {
		scopes = append(scopes, s)
	}
	g.fileScopes[file] = scopes
}

// RemoveFile detaches every import belonging to a file.
func (g *Graph) RemoveFile(file types.FilePath) {
	for _, scope := range g.fileScopes[file] {
		delete(g.scopeImports, scope)
	}
	for _, id := range g.fileSymbols[file] {
		delete(g.resolvedPaths, id)
		delete(g.namespaceSources, id)
	}
	delete(g.fileSymbols, file)
	delete(g.fileScopes, file)
}

// GetScopeImports returns the import definitions declared directly in a
// scope.
func (g *Graph) GetScopeImports(scope types.ScopeID) []types.Definition {
	return g.scopeImports[scope]
}

// GetResolvedImportPath returns the cached resolved source file for an
// import symbol id.
func (g *Graph) GetResolvedImportPath(importSymbolID types.SymbolID) (types.FilePath, bool) {
	p, ok := g.resolvedPaths[importSymbolID]
	return p, ok
}

// NamespaceSource returns the resolved source file a namespace import
// (`import * as ns`) points to, used to resolve `ns.member` calls.
func (g *Graph) NamespaceSource(namespaceSymbolID types.SymbolID) (types.FilePath, bool) {
	p, ok := g.namespaceSources[namespaceSymbolID]
	return p, ok
}

// SetNamespaceSource registers a symbol as pointing at a namespace file
// after the fact, for imports that are not ImportNamespace themselves but
// are discovered at phase-1 time to behave like one — a Python `from pkg
// import sub` that resolved to a submodule file (spec.md §4.2). Cleared by
// the next RemoveFile/UpdateFile of the symbol's owning file like any other
// namespace source.
func (g *Graph) SetNamespaceSource(symbolID types.SymbolID, file types.FilePath) {
	g.namespaceSources[symbolID] = file
}
