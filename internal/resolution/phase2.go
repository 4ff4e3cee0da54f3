package resolution

import "github.com/CRJFisher/ariadne/internal/types"

// chainMode distinguishes the two things a property-chain segment can
// advance through: a tracked type's member map, or a namespace import's
// target file (spec.md §4.7 "traversing the namespace-sources map").
type chainMode int

const (
	modeType chainMode = iota
	modeNamespace
)

type chainState struct {
	mode       chainMode
	typeSymbol types.SymbolID
	nsFile     types.FilePath
}

// UpdateFile runs the full per-file resolution pipeline for a file whose
// defregistry/scoperegistry/exportregistry/importgraph/typeregistry entries
// have already been refreshed by the coordinator: phase 1 name resolution,
// the Python call-type preprocessing interlude, the Type phase propagation,
// and phase 2 call resolution (spec.md §2, §4.8). language gates the
// Python-only preprocessing interlude and the Python-only submodule-import
// fallback in phase 1.
func (r *Registry) UpdateFile(file types.FilePath, refs []types.Reference, language types.Language) {
	r.RemoveFile(file)
	r.ResolveNamesForFile(file, language)

	stored := make([]*types.Reference, len(refs))
	for i := range refs {
		ref := refs[i]
		stored[i] = &ref
	}
	r.fileReferences[file] = stored

	r.preprocessReferences(file, stored, language)
	r.typeReg.Propagate(file, r.resolveNameFunc)
	r.resolveCallsForFile(file, stored)
}

func (r *Registry) resolveCallsForFile(file types.FilePath, refs []*types.Reference) {
	for _, ref := range refs {
		if !ref.IsCall() {
			continue
		}

		var sym types.SymbolID
		var ok bool
		switch ref.CallType {
		case types.CallFunction:
			if ref.Context != nil && len(ref.Context.PropertyChain) > 0 {
				sym, ok = r.resolveAssociatedCall(ref)
			} else {
				sym, ok = r.ResolveName(ref.ScopeID, ref.Name)
			}
		case types.CallMethod:
			sym, ok = r.resolveMethodCall(ref)
		case types.CallConstructor:
			sym, ok = r.ResolveName(ref.ScopeID, ref.Name)
		case types.CallSuper:
			// recorded but never resolved: spec.md §9 leaves super-call
			// dispatch an open question, decided as "skip" in DESIGN.md.
		}

		ref.CallerScopeID = r.scopeReg.FindEnclosingFunctionScope(ref.ScopeID)
		if ok {
			ref.Resolved = true
			ref.TargetSymbol = sym
		}
		r.indexCall(file, ref)
	}
}

func (r *Registry) indexCall(file types.FilePath, ref *types.Reference) {
	r.callsByFile[file] = append(r.callsByFile[file], ref)
	r.callsByCallerScope[ref.CallerScopeID] = append(r.callsByCallerScope[ref.CallerScopeID], ref)
	if ref.Resolved {
		r.callsByTarget[ref.TargetSymbol] = append(r.callsByTarget[ref.TargetSymbol], ref)
		r.referencedSymbols[ref.TargetSymbol] = struct{}{}
	}
}

// resolveMethodCall dispatches a.b.c() style calls: resolve the chain head,
// walk intermediate property segments through tracked types (or a namespace
// import's exports), then look up the final call name in the resulting
// type's method map.
func (r *Registry) resolveMethodCall(ref *types.Reference) (types.SymbolID, bool) {
	if ref.Context == nil || len(ref.Context.PropertyChain) == 0 {
		return "", false
	}
	chain := ref.Context.PropertyChain

	state, ok := r.resolveChainHead(ref, chain[0])
	if !ok {
		return "", false
	}

	for _, seg := range chain[1:] {
		state, ok = r.advanceChain(state, seg, ref.ScopeID)
		if !ok {
			return "", false
		}
	}

	if state.mode == modeNamespace {
		def, ok := r.exportReg.GetNamedExport(state.nsFile, ref.Name)
		if !ok {
			return "", false
		}
		return def.SymbolID, true
	}
	return r.typeReg.ResolveMethod(state.typeSymbol, ref.Name, r.resolveNameFunc, ref.ScopeID)
}

// resolveAssociatedCall dispatches Rust-style Type::func() associated-function
// syntax: the property chain's head names a type directly (no variable
// lookup or type-of-symbol indirection), and every call is a method lookup.
func (r *Registry) resolveAssociatedCall(ref *types.Reference) (types.SymbolID, bool) {
	chain := ref.Context.PropertyChain
	typeSym, ok := r.ResolveName(ref.ScopeID, chain[0])
	if !ok {
		return "", false
	}
	for _, seg := range chain[1:] {
		typeSym, ok = r.typeReg.ResolveProperty(typeSym, seg, r.resolveNameFunc, ref.ScopeID)
		if !ok {
			return "", false
		}
	}
	return r.typeReg.ResolveMethod(typeSym, ref.Name, r.resolveNameFunc, ref.ScopeID)
}

// resolveChainHead resolves the first segment of a property chain to either
// a tracked type (ordinary variable/parameter, or self/cls/this/super) or a
// namespace import's target file.
func (r *Registry) resolveChainHead(ref *types.Reference, head string) (chainState, bool) {
	switch head {
	case "self", "this", "cls":
		classSym, _, ok := r.enclosingClassSymbol(ref.ScopeID)
		if !ok {
			return chainState{}, false
		}
		return chainState{mode: modeType, typeSymbol: classSym}, true

	case "super":
		classSym, classScope, ok := r.enclosingClassSymbol(ref.ScopeID)
		if !ok {
			return chainState{}, false
		}
		members, ok := r.typeReg.Members(classSym)
		if !ok || len(members.Extends) == 0 {
			return chainState{}, false
		}
		baseSym, ok := r.ResolveName(classScope.ParentID, members.Extends[0])
		if !ok {
			return chainState{}, false
		}
		return chainState{mode: modeType, typeSymbol: baseSym}, true

	default:
		headSym, ok := r.ResolveName(ref.ScopeID, head)
		if !ok {
			return chainState{}, false
		}
		def := r.defReg.GetByID(headSym)
		if def == nil {
			return chainState{}, false
		}
		// Any import with a registered namespace source is walked as a
		// namespace, not just `import * as ns`: a Python `from pkg import
		// sub` that resolved to a submodule file (phase1.go) is registered
		// the same way so `sub.attr` chains through it identically.
		if def.IsImport() {
			if nsFile, ok := r.importGraph.NamespaceSource(headSym); ok {
				return chainState{mode: modeNamespace, nsFile: nsFile}, true
			}
		}
		typeSym, ok := r.typeReg.TypeOfLocation(def.Location)
		if !ok {
			return chainState{}, false
		}
		return chainState{mode: modeType, typeSymbol: typeSym}, true
	}
}

func (r *Registry) advanceChain(state chainState, segment string, scope types.ScopeID) (chainState, bool) {
	if state.mode == modeNamespace {
		def, ok := r.exportReg.GetNamedExport(state.nsFile, segment)
		if !ok {
			return chainState{}, false
		}
		return chainState{mode: modeType, typeSymbol: def.SymbolID}, true
	}

	nextType, ok := r.typeReg.ResolveProperty(state.typeSymbol, segment, r.resolveNameFunc, scope)
	if !ok {
		return chainState{}, false
	}
	return chainState{mode: modeType, typeSymbol: nextType}, true
}

// enclosingClassSymbol finds the nearest enclosing class/struct scope of a
// reference and resolves it to its own defining symbol id, implementing the
// "self/cls/this binds to the enclosing class" rule of spec.md §4.7.
func (r *Registry) enclosingClassSymbol(scopeID types.ScopeID) (types.SymbolID, *types.Scope, bool) {
	for _, ancestor := range r.scopeReg.Ancestors(scopeID) {
		scope := r.scopeReg.GetScope(ancestor)
		if scope == nil || scope.Type != types.ScopeClass {
			continue
		}
		defs := r.defReg.GetScopeDefinitions(scope.ParentID)
		sym, ok := defs[scope.Name]
		if !ok {
			return "", nil, false
		}
		return sym, scope, true
	}
	return "", nil, false
}
