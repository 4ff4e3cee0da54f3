package coordinator

import (
	"github.com/CRJFisher/ariadne/internal/resolution"
	"github.com/CRJFisher/ariadne/internal/types"
)

// ResolveName is spec.md §6's resolve_name(scope_id, name).
func (c *Coordinator) ResolveName(scope types.ScopeID, name string) (types.SymbolID, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.res.ResolveName(scope, name)
}

// GetDefinition is spec.md §6's get_definition(symbol_id).
func (c *Coordinator) GetDefinition(id types.SymbolID) (*types.Definition, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	d := c.defReg.GetByID(id)
	return d, d != nil
}

// GetFileCalls is spec.md §6's get_file_calls(file).
func (c *Coordinator) GetFileCalls(file types.FilePath) []*types.Reference {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.res.GetFileCalls(file)
}

// GetCallsByCallerScope is spec.md §6's get_calls_by_caller_scope(scope_id).
func (c *Coordinator) GetCallsByCallerScope(scope types.ScopeID) []*types.Reference {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.res.GetCallsByCallerScope(scope)
}

// GetCallsByTarget returns every resolved call whose target is the given
// symbol — the call graph's incoming edges for that symbol.
func (c *Coordinator) GetCallsByTarget(target types.SymbolID) []*types.Reference {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.res.GetCallsByTarget(target)
}

// GetAllReferencedSymbols is spec.md §6's get_all_referenced_symbols().
func (c *Coordinator) GetAllReferencedSymbols() map[types.SymbolID]struct{} {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.res.GetAllReferencedSymbols()
}

// EntryPoints returns every callable definition across all registered files
// that is never the target of a resolved call — the project's entry points
// (spec.md §6 design notes).
func (c *Coordinator) EntryPoints() []types.SymbolID {
	c.mu.RLock()
	defer c.mu.RUnlock()

	var candidates []types.SymbolID
	for file := range c.fileLanguage {
		for _, id := range c.defReg.GetFileDefinitions(file) {
			if d := c.defReg.GetByID(id); d != nil {
				switch d.Kind {
				case types.DefinitionFunction, types.DefinitionMethod:
					candidates = append(candidates, id)
				}
			}
		}
	}
	return c.res.EntryPoints(candidates)
}

// SuggestNames returns "did you mean" candidates for an unresolved name in a
// scope (spec.md §11 domain stack diagnostics).
func (c *Coordinator) SuggestNames(scope types.ScopeID, name string) []resolution.Suggestion {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.res.SuggestNames(scope, name)
}

// exportChainResult bundles ResolveExportChain's two return values so a
// single singleflight call can carry them.
type exportChainResult struct {
	sym types.SymbolID
	err error
}

// ResolveExportChain is spec.md §6's resolve_export_chain(file, name, kind),
// exposed directly on the coordinator since it is itself a pure lookup —
// concurrent callers asking for the same (file, name, kind) while an update
// is in flight are de-duplicated via singleflight so the chain is only
// walked once.
func (c *Coordinator) ResolveExportChain(file types.FilePath, name string, kind types.ImportKind) (types.SymbolID, error) {
	key := string(file) + "\x00" + name + "\x00" + string(kind)
	v, err, _ := c.exportChainGroup.Do(key, func() (interface{}, error) {
		c.mu.RLock()
		defer c.mu.RUnlock()
		sym, chainErr := c.exportReg.ResolveExportChain(file, name, kind, c.resolveModule)
		return exportChainResult{sym: sym, err: chainErr}, nil
	})
	if err != nil {
		return "", err
	}
	res := v.(exportChainResult)
	return res.sym, res.err
}
