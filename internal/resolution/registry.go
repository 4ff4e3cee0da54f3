// Package resolution implements the Resolution Registry of spec.md §4.8:
// two-phase name-then-call resolution, the Python reference-preprocessing
// interlude, and the three query indexes (by file, by caller scope, by
// target symbol) that back the query surface of spec.md §6.
package resolution

import (
	"github.com/CRJFisher/ariadne/internal/defregistry"
	"github.com/CRJFisher/ariadne/internal/exportregistry"
	"github.com/CRJFisher/ariadne/internal/importgraph"
	"github.com/CRJFisher/ariadne/internal/scoperegistry"
	"github.com/CRJFisher/ariadne/internal/typeregistry"
	"github.com/CRJFisher/ariadne/internal/types"
)

// ModuleResolverFunc resolves an import specifier from a given file to the
// canonical file path of the module it names — the same shape the export
// registry and import graph take, so the coordinator can hand all three the
// same language-dispatching closure.
type ModuleResolverFunc func(fromFile types.FilePath, importPath string) types.FilePath

// SubmoduleResolverFunc resolves spec.md §4.2's Python-only
// resolve_submodule_path helper: given a package's resolved __init__.py and
// an imported name, report the submodule file it names, if any exists.
type SubmoduleResolverFunc func(packageInitFile types.FilePath, name string) (types.FilePath, bool)

// Registry is the Resolution Registry: it owns no data of its own beyond
// its phase-1 maps and call indexes, and reaches into the other registries
// (injected at construction) to do its work.
type Registry struct {
	defReg      *defregistry.Registry
	scopeReg    *scoperegistry.Registry
	exportReg   *exportregistry.Registry
	importGraph *importgraph.Graph
	typeReg     *typeregistry.Registry
	// Stored as the plain function type (rather than ModuleResolverFunc)
	// so it assigns directly into exportregistry/importgraph's own
	// identically-shaped named function types at call sites.
	moduleResolve func(fromFile types.FilePath, importPath string) types.FilePath
	// resolveSubmodule is nil-able: a coordinator with no Python files never
	// needs to supply it, and phase1.go only consults it when language is
	// Python.
	resolveSubmodule SubmoduleResolverFunc

	resolutionsByScope map[types.ScopeID]map[string]types.SymbolID
	fileScopes         map[types.FilePath][]types.ScopeID

	fileReferences     map[types.FilePath][]*types.Reference
	callsByFile        map[types.FilePath][]*types.Reference
	callsByCallerScope map[types.ScopeID][]*types.Reference
	callsByTarget      map[types.SymbolID][]*types.Reference
	referencedSymbols  map[types.SymbolID]struct{}
}

// New constructs a Resolution Registry wired to the other registries it
// depends on. moduleResolve must dispatch to the language-appropriate
// pathresolve.Resolver for the given file. resolveSubmodule may be nil if
// the caller never indexes Python files; it backs the Python-only
// submodule-import fallback in phase1.go.
func New(
	defReg *defregistry.Registry,
	scopeReg *scoperegistry.Registry,
	exportReg *exportregistry.Registry,
	importGraph *importgraph.Graph,
	typeReg *typeregistry.Registry,
	moduleResolve ModuleResolverFunc,
	resolveSubmodule SubmoduleResolverFunc,
) *Registry {
	return &Registry{
		defReg:             defReg,
		scopeReg:           scopeReg,
		exportReg:          exportReg,
		importGraph:        importGraph,
		typeReg:            typeReg,
		moduleResolve:      moduleResolve,
		resolveSubmodule:   resolveSubmodule,
		resolutionsByScope: make(map[types.ScopeID]map[string]types.SymbolID),
		fileScopes:         make(map[types.FilePath][]types.ScopeID),
		fileReferences:     make(map[types.FilePath][]*types.Reference),
		callsByFile:        make(map[types.FilePath][]*types.Reference),
		callsByCallerScope: make(map[types.ScopeID][]*types.Reference),
		callsByTarget:      make(map[types.SymbolID][]*types.Reference),
		referencedSymbols:  make(map[types.SymbolID]struct{}),
	}
}

// RemoveFile drops every phase-1 map entry, call index entry, and stored
// reference belonging to a file (spec.md §4.8 "Update discipline").
func (r *Registry) RemoveFile(file types.FilePath) {
	for _, scopeID := range r.fileScopes[file] {
		delete(r.resolutionsByScope, scopeID)
		delete(r.callsByCallerScope, scopeID)
	}
	delete(r.fileScopes, file)

	for _, ref := range r.callsByFile[file] {
		if ref.Resolved {
			r.removeFromTargetIndex(ref)
		}
		if ref.CallerScopeID == "" {
			// Module-level calls from every file share the "" caller scope,
			// so they are removed one by one rather than by scope id.
			list := r.callsByCallerScope[""]
			for i, existing := range list {
				if existing == ref {
					r.callsByCallerScope[""] = append(list[:i], list[i+1:]...)
					break
				}
			}
		}
	}
	delete(r.callsByFile, file)
	delete(r.fileReferences, file)
}

func (r *Registry) removeFromTargetIndex(ref *types.Reference) {
	list := r.callsByTarget[ref.TargetSymbol]
	for i, existing := range list {
		if existing == ref {
			r.callsByTarget[ref.TargetSymbol] = append(list[:i], list[i+1:]...)
			break
		}
	}
	if len(r.callsByTarget[ref.TargetSymbol]) == 0 {
		delete(r.callsByTarget, ref.TargetSymbol)
		delete(r.referencedSymbols, ref.TargetSymbol)
	}
}

// ResolveName is the O(1) query of spec.md §6: resolve_name(scope_id, name).
func (r *Registry) ResolveName(scope types.ScopeID, name string) (types.SymbolID, bool) {
	sym, ok := r.resolutionsByScope[scope][name]
	return sym, ok
}

// resolveNameFunc adapts ResolveName to the typeregistry.ResolveNameFunc and
// typeregistry.Registry's internal member-lookup callback shape.
func (r *Registry) resolveNameFunc(scope types.ScopeID, name string) (types.SymbolID, bool) {
	return r.ResolveName(scope, name)
}
