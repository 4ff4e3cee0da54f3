package resolution

import "github.com/CRJFisher/ariadne/internal/types"

// GetFileCalls returns every call reference recorded for a file, resolved
// or not, in indexer emission order (spec.md §6 get_file_calls).
func (r *Registry) GetFileCalls(file types.FilePath) []*types.Reference {
	return r.callsByFile[file]
}

// GetCallsByCallerScope returns every call reference attributed to a given
// caller scope (spec.md §6 get_calls_by_caller_scope). Every call in
// GetFileCalls(f) also appears under GetCallsByCallerScope(c.CallerScopeID)
// for some c in that list — the indexing invariant spec.md §8 requires.
func (r *Registry) GetCallsByCallerScope(scope types.ScopeID) []*types.Reference {
	return r.callsByCallerScope[scope]
}

// GetCallsByTarget returns every resolved call reference whose target is
// the given symbol (spec.md §6 get_calls_by_target / call graph edges).
func (r *Registry) GetCallsByTarget(target types.SymbolID) []*types.Reference {
	return r.callsByTarget[target]
}

// GetAllReferencedSymbols returns the set of every symbol id that is the
// resolved target of at least one call, anywhere in the project (spec.md §6
// get_all_referenced_symbols).
func (r *Registry) GetAllReferencedSymbols() map[types.SymbolID]struct{} {
	out := make(map[types.SymbolID]struct{}, len(r.referencedSymbols))
	for id := range r.referencedSymbols {
		out[id] = struct{}{}
	}
	return out
}

// EntryPoints filters a candidate set of symbol ids (typically every
// callable definition in the project) down to those never called from
// anywhere: callables with no incoming call edge, per spec.md §6 design
// notes on entry-point detection.
func (r *Registry) EntryPoints(candidates []types.SymbolID) []types.SymbolID {
	var out []types.SymbolID
	for _, id := range candidates {
		if _, called := r.referencedSymbols[id]; !called {
			out = append(out, id)
		}
	}
	return out
}
