package resolution

import (
	"github.com/CRJFisher/ariadne/internal/resolveerrors"
	"github.com/CRJFisher/ariadne/internal/types"
)

// ResolveNamesForFile runs phase 1 (spec.md §4.8) for a single file: a
// top-down walk of its scope tree producing one flattened Name->SymbolId
// map per scope, combining inherited bindings, layered imports (chased
// through the export registry), and local definitions (which always win).
func (r *Registry) ResolveNamesForFile(file types.FilePath, language types.Language) {
	root := r.scopeReg.GetFileRootScope(file)
	if root == "" {
		return
	}

	var scopeIDs []types.ScopeID
	r.walkScope(root, nil, &scopeIDs, language)
	r.fileScopes[file] = scopeIDs
}

func (r *Registry) walkScope(scopeID types.ScopeID, parent map[string]types.SymbolID, seen *[]types.ScopeID, language types.Language) {
	*seen = append(*seen, scopeID)

	current := make(map[string]types.SymbolID, len(parent))
	for name, sym := range parent {
		current[name] = sym
	}

	for _, imp := range r.importGraph.GetScopeImports(scopeID) {
		target, ok := r.resolveImportTarget(imp, language)
		if !ok {
			continue
		}
		current[imp.Name] = target
	}

	for name, symID := range r.defReg.GetScopeDefinitions(scopeID) {
		def := r.defReg.GetByID(symID)
		if def != nil && def.IsImport() {
			continue // already layered above, with its chain-walked target
		}
		current[name] = symID
	}

	r.resolutionsByScope[scopeID] = current

	for _, child := range r.scopeReg.Children(scopeID) {
		r.walkScope(child.ID, current, seen, language)
	}
}

// resolveImportTarget computes the symbol id an import definition's local
// name should bind to: its own id for namespace imports, or the result of
// chasing the re-export chain from its cached resolved source file for
// named/default imports.
//
// Python only: `from pkg import sub` names a submodule, not a symbol
// exported from pkg/__init__.py, so when the export-chain walk reports
// ExportNotFound we fall back to resolve_submodule_path (spec.md §4.2) and,
// if it finds pkg/sub.py or pkg/sub/__init__.py, register the import itself
// as a namespace source pointing at that file — so `sub.attr` chains
// through it exactly like `import pkg.sub as sub` would.
func (r *Registry) resolveImportTarget(imp types.Definition, language types.Language) (types.SymbolID, bool) {
	if imp.ImportKind == types.ImportNamespace {
		return imp.SymbolID, true
	}

	resolvedFile, ok := r.importGraph.GetResolvedImportPath(imp.SymbolID)
	if !ok {
		return "", false
	}

	sym, err := r.exportReg.ResolveExportChain(resolvedFile, imp.EffectiveOriginalName(), imp.ImportKind, r.moduleResolve)
	if err == nil {
		if sym == "" {
			return "", false // cycle (spec.md §4.5): null, not an error
		}
		return sym, true
	}

	if language == types.LanguagePython && r.resolveSubmodule != nil {
		if _, notFound := err.(*resolveerrors.ExportNotFoundError); notFound {
			if submodule, ok := r.resolveSubmodule(resolvedFile, imp.EffectiveOriginalName()); ok {
				r.importGraph.SetNamespaceSource(imp.SymbolID, submodule)
				return imp.SymbolID, true
			}
		}
	}

	return "", false
}
