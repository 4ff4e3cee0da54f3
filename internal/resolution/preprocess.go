package resolution

import "github.com/CRJFisher/ariadne/internal/types"

// preprocessReferences runs the reference-preprocessing interlude (spec.md
// §4.8, between phase 1 and the Type phase). Python's `Foo()` is emitted by
// the indexer as a CallFunction reference indistinguishable from a plain
// function call at parse time, so once phase-1 names are available we
// rewrite it to CallConstructor whenever the callee name resolves to a
// class definition in the reference's own scope. This is the only
// documented rewrite (spec.md §4.8 "Interlude"), and it is scoped to Python:
// a JS/TS/Rust function call that happens to resolve to a class definition
// (e.g. passing a class as a value) must not be reclassified.
func (r *Registry) preprocessReferences(file types.FilePath, refs []*types.Reference, language types.Language) {
	if language != types.LanguagePython {
		return
	}
	for _, ref := range refs {
		if !ref.IsCall() || ref.CallType != types.CallFunction {
			continue
		}
		if ref.Context != nil && len(ref.Context.PropertyChain) > 0 {
			continue // associated-function call syntax, not a bare name call
		}
		sym, ok := r.ResolveName(ref.ScopeID, ref.Name)
		if !ok {
			continue
		}
		def := r.defReg.GetByID(sym)
		if def != nil && def.Kind == types.DefinitionClass {
			ref.CallType = types.CallConstructor
		}
	}
}
