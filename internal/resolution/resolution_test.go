package resolution

import (
	"testing"

	"github.com/CRJFisher/ariadne/internal/defregistry"
	"github.com/CRJFisher/ariadne/internal/exportregistry"
	"github.com/CRJFisher/ariadne/internal/importgraph"
	"github.com/CRJFisher/ariadne/internal/scoperegistry"
	"github.com/CRJFisher/ariadne/internal/typeregistry"
	"github.com/CRJFisher/ariadne/internal/types"
)

// harness bundles a fresh set of registries and a Resolution Registry wired
// to them, the shape the coordinator assembles in production.
type harness struct {
	defReg      *defregistry.Registry
	scopeReg    *scoperegistry.Registry
	exportReg   *exportregistry.Registry
	importGraph *importgraph.Graph
	typeReg     *typeregistry.Registry
	res         *Registry
}

func newHarness() *harness {
	h := &harness{
		defReg:      defregistry.New(),
		scopeReg:    scoperegistry.New(),
		exportReg:   exportregistry.New(),
		importGraph: importgraph.New(),
		typeReg:     typeregistry.New(),
	}
	resolveModule := func(fromFile types.FilePath, importPath string) types.FilePath {
		return types.FilePath(importPath)
	}
	h.res = New(h.defReg, h.scopeReg, h.exportReg, h.importGraph, h.typeReg, resolveModule, nil)
	return h
}

func loc(file string, line int) types.Location {
	return types.Location{FilePath: types.FilePath(file), StartLine: line, StartColumn: 1, EndLine: line, EndColumn: 10}
}

func TestPhase1Shadowing(t *testing.T) {
	h := newHarness()
	file := types.FilePath("mod.ts")

	moduleScope := types.ScopeID("mod#module")
	funcScope := types.ScopeID("mod#fn")

	h.scopeReg.UpdateFile(file, moduleScope, []types.Scope{
		{ID: moduleScope, Type: types.ScopeModule, ChildIDs: []types.ScopeID{funcScope}, FilePath: file},
		{ID: funcScope, Type: types.ScopeFunction, ParentID: moduleScope, Name: "fn", FilePath: file},
	})

	outerX := types.SymbolID("outer_x")
	innerX := types.SymbolID("inner_x")
	h.defReg.UpdateFile(file, []types.Definition{
		{SymbolID: outerX, Name: "x", Kind: types.DefinitionVariable, DefiningScope: moduleScope, Location: loc(string(file), 1)},
		{SymbolID: innerX, Name: "x", Kind: types.DefinitionVariable, DefiningScope: funcScope, Location: loc(string(file), 2)},
	})

	h.res.UpdateFile(file, nil, types.LanguageTypeScript)

	if sym, ok := h.res.ResolveName(moduleScope, "x"); !ok || sym != outerX {
		t.Fatalf("module scope x: got (%v,%v), want (%v,true)", sym, ok, outerX)
	}
	if sym, ok := h.res.ResolveName(funcScope, "x"); !ok || sym != innerX {
		t.Fatalf("function scope x: got (%v,%v), want (%v,true) — inner definition must shadow outer", sym, ok, innerX)
	}
}

func TestPhase2FunctionCallAndEntryPoints(t *testing.T) {
	h := newHarness()
	file := types.FilePath("mod.ts")
	moduleScope := types.ScopeID("mod#module")
	callerScope := types.ScopeID("mod#caller")

	h.scopeReg.UpdateFile(file, moduleScope, []types.Scope{
		{ID: moduleScope, Type: types.ScopeModule, ChildIDs: []types.ScopeID{callerScope}, FilePath: file},
		{ID: callerScope, Type: types.ScopeFunction, ParentID: moduleScope, Name: "caller", FilePath: file},
	})

	fooSym := types.SymbolID("foo")
	barSym := types.SymbolID("bar") // never called
	callerSym := types.SymbolID("caller")
	h.defReg.UpdateFile(file, []types.Definition{
		{SymbolID: fooSym, Name: "foo", Kind: types.DefinitionFunction, DefiningScope: moduleScope, Location: loc(string(file), 1)},
		{SymbolID: barSym, Name: "bar", Kind: types.DefinitionFunction, DefiningScope: moduleScope, Location: loc(string(file), 2)},
		{SymbolID: callerSym, Name: "caller", Kind: types.DefinitionFunction, DefiningScope: moduleScope, Location: loc(string(file), 3)},
	})

	refs := []types.Reference{
		{Type: types.ReferenceCall, Name: "foo", Location: loc(string(file), 4), ScopeID: callerScope, CallType: types.CallFunction},
	}
	h.res.UpdateFile(file, refs, types.LanguageTypeScript)

	calls := h.res.GetFileCalls(file)
	if len(calls) != 1 {
		t.Fatalf("expected 1 call recorded, got %d", len(calls))
	}
	if !calls[0].Resolved || calls[0].TargetSymbol != fooSym {
		t.Fatalf("expected call resolved to %v, got resolved=%v target=%v", fooSym, calls[0].Resolved, calls[0].TargetSymbol)
	}
	if calls[0].CallerScopeID != callerScope {
		t.Fatalf("expected caller scope %v, got %v", callerScope, calls[0].CallerScopeID)
	}

	byCaller := h.res.GetCallsByCallerScope(callerScope)
	if len(byCaller) != 1 || byCaller[0] != calls[0] {
		t.Fatalf("call must also be indexed under its caller scope")
	}

	entries := h.res.EntryPoints([]types.SymbolID{fooSym, barSym, callerSym})
	if len(entries) != 2 {
		t.Fatalf("expected 2 entry points (bar and caller), got %d: %v", len(entries), entries)
	}
}

func TestPhase2SelfMethodCall(t *testing.T) {
	h := newHarness()
	file := types.FilePath("mod.py")
	moduleScope := types.ScopeID("mod#module")
	classScope := types.ScopeID("mod#class")
	methodScope := types.ScopeID("mod#method")

	h.scopeReg.UpdateFile(file, moduleScope, []types.Scope{
		{ID: moduleScope, Type: types.ScopeModule, ChildIDs: []types.ScopeID{classScope}, FilePath: file},
		{ID: classScope, Type: types.ScopeClass, ParentID: moduleScope, Name: "Widget", ChildIDs: []types.ScopeID{methodScope}, FilePath: file},
		{ID: methodScope, Type: types.ScopeFunction, ParentID: classScope, Name: "render", FilePath: file},
	})

	classSym := types.SymbolID("Widget")
	renderSym := types.SymbolID("Widget.render")
	barSym := types.SymbolID("Widget.bar")
	h.defReg.UpdateFile(file, []types.Definition{
		{SymbolID: classSym, Name: "Widget", Kind: types.DefinitionClass, DefiningScope: moduleScope, Location: loc(string(file), 1)},
		{SymbolID: renderSym, Name: "render", Kind: types.DefinitionMethod, DefiningScope: classScope, Location: loc(string(file), 2)},
		{SymbolID: barSym, Name: "bar", Kind: types.DefinitionMethod, DefiningScope: classScope, Location: loc(string(file), 3)},
	})

	h.typeReg.SetMembers(classSym, types.TypeMembers{
		Methods: map[string]types.SymbolID{"bar": barSym},
	})

	refs := []types.Reference{
		{
			Type: types.ReferenceCall, Name: "bar", Location: loc(string(file), 4), ScopeID: methodScope,
			CallType: types.CallMethod,
			Context:  &types.CallContext{PropertyChain: []string{"self"}},
		},
	}
	h.res.UpdateFile(file, refs, types.LanguagePython)

	calls := h.res.GetFileCalls(file)
	if len(calls) != 1 || !calls[0].Resolved || calls[0].TargetSymbol != barSym {
		t.Fatalf("expected self.bar() to resolve to %v, got %+v", barSym, calls[0])
	}
}

func TestExportChainNameResolution(t *testing.T) {
	h := newHarness()
	base := types.FilePath("base.ts")
	main := types.FilePath("main.ts")

	baseScope := types.ScopeID("base#module")
	mainScope := types.ScopeID("main#module")
	h.scopeReg.UpdateFile(base, baseScope, []types.Scope{{ID: baseScope, Type: types.ScopeModule, FilePath: base}})
	h.scopeReg.UpdateFile(main, mainScope, []types.Scope{{ID: mainScope, Type: types.ScopeModule, FilePath: main}})

	coreSym := types.SymbolID("base.core")
	baseDefs := []types.Definition{
		{SymbolID: coreSym, Name: "core", Kind: types.DefinitionFunction, DefiningScope: baseScope, Location: loc(string(base), 1), IsExported: true},
	}
	h.defReg.UpdateFile(base, baseDefs)
	h.exportReg.UpdateFile(base, baseDefs)

	resolveModule := func(fromFile types.FilePath, importPath string) types.FilePath {
		return types.FilePath(importPath)
	}

	importSym := types.SymbolID("main.import.core")
	mainDefs := []types.Definition{
		{SymbolID: importSym, Name: "core", Kind: types.DefinitionImport, DefiningScope: mainScope, Location: loc(string(main), 1), ImportPath: string(base), ImportKind: types.ImportNamed},
	}
	h.defReg.UpdateFile(main, mainDefs)
	h.importGraph.UpdateFile(main, mainDefs, resolveModule)

	h.res.UpdateFile(base, nil, types.LanguageTypeScript)
	h.res.UpdateFile(main, nil, types.LanguageTypeScript)

	sym, ok := h.res.ResolveName(mainScope, "core")
	if !ok || sym != coreSym {
		t.Fatalf("expected imported name core to resolve to %v, got (%v,%v)", coreSym, sym, ok)
	}
}

// TestExportChainAliasedReexport covers spec.md §8 scenario 2: base.ts
// exports core, middle.ts re-exports it under the alias publicCore, and
// main.ts imports publicCore — the chain must resolve through the alias to
// base's core, while importing the unaliased name core from middle must
// fail with ExportNotFound.
func TestExportChainAliasedReexport(t *testing.T) {
	h := newHarness()
	base := types.FilePath("base.ts")
	middle := types.FilePath("middle.ts")
	main := types.FilePath("main.ts")

	baseScope := types.ScopeID("base#module")
	middleScope := types.ScopeID("middle#module")
	mainScope := types.ScopeID("main#module")
	h.scopeReg.UpdateFile(base, baseScope, []types.Scope{{ID: baseScope, Type: types.ScopeModule, FilePath: base}})
	h.scopeReg.UpdateFile(middle, middleScope, []types.Scope{{ID: middleScope, Type: types.ScopeModule, FilePath: middle}})
	h.scopeReg.UpdateFile(main, mainScope, []types.Scope{{ID: mainScope, Type: types.ScopeModule, FilePath: main}})

	coreSym := types.SymbolID("base.core")
	baseDefs := []types.Definition{
		{SymbolID: coreSym, Name: "core", Kind: types.DefinitionFunction, DefiningScope: baseScope, Location: loc(string(base), 1), IsExported: true},
	}
	h.defReg.UpdateFile(base, baseDefs)
	h.exportReg.UpdateFile(base, baseDefs)

	resolveModule := func(fromFile types.FilePath, importPath string) types.FilePath {
		return types.FilePath(importPath)
	}

	reexportSym := types.SymbolID("middle.reexport.publicCore")
	middleDefs := []types.Definition{
		{
			SymbolID: reexportSym, Name: "core", Kind: types.DefinitionImport, DefiningScope: middleScope,
			Location: loc(string(middle), 1), ImportPath: string(base), ImportKind: types.ImportNamed,
			IsExported: true, Export: &types.ExportInfo{ExportName: "publicCore", IsReexport: true},
		},
	}
	h.defReg.UpdateFile(middle, middleDefs)
	h.exportReg.UpdateFile(middle, middleDefs)
	h.importGraph.UpdateFile(middle, middleDefs, resolveModule)

	importSym := types.SymbolID("main.import.publicCore")
	mainDefs := []types.Definition{
		{SymbolID: importSym, Name: "publicCore", Kind: types.DefinitionImport, DefiningScope: mainScope, Location: loc(string(main), 1), ImportPath: string(middle), ImportKind: types.ImportNamed},
	}
	h.defReg.UpdateFile(main, mainDefs)
	h.importGraph.UpdateFile(main, mainDefs, resolveModule)

	h.res.UpdateFile(base, nil, types.LanguageTypeScript)
	h.res.UpdateFile(middle, nil, types.LanguageTypeScript)
	h.res.UpdateFile(main, nil, types.LanguageTypeScript)

	sym, ok := h.res.ResolveName(mainScope, "publicCore")
	if !ok || sym != coreSym {
		t.Fatalf("expected publicCore to chain through the alias to %v, got (%v,%v)", coreSym, sym, ok)
	}

	if _, err := h.exportReg.ResolveExportChain(middle, "core", types.ImportNamed, resolveModule); err == nil {
		t.Fatalf("expected importing the unaliased name core from middle.ts to fail with ExportNotFound")
	}
}

// TestExportChainDefaultReexportThroughBarrel covers spec.md §8 scenario 3:
// base.ts has a default export, barrel.ts re-exports that default, and
// main.ts imports the default under a local name x — the chain must resolve
// to base's default export regardless of the local name.
func TestExportChainDefaultReexportThroughBarrel(t *testing.T) {
	h := newHarness()
	base := types.FilePath("base.ts")
	barrel := types.FilePath("barrel.ts")
	main := types.FilePath("main.ts")

	baseScope := types.ScopeID("base#module")
	barrelScope := types.ScopeID("barrel#module")
	mainScope := types.ScopeID("main#module")
	h.scopeReg.UpdateFile(base, baseScope, []types.Scope{{ID: baseScope, Type: types.ScopeModule, FilePath: base}})
	h.scopeReg.UpdateFile(barrel, barrelScope, []types.Scope{{ID: barrelScope, Type: types.ScopeModule, FilePath: barrel}})
	h.scopeReg.UpdateFile(main, mainScope, []types.Scope{{ID: mainScope, Type: types.ScopeModule, FilePath: main}})

	coreSym := types.SymbolID("base.core.default")
	baseDefs := []types.Definition{
		{SymbolID: coreSym, Name: "core", Kind: types.DefinitionFunction, DefiningScope: baseScope, Location: loc(string(base), 1), IsExported: true, Export: &types.ExportInfo{IsDefault: true}},
	}
	h.defReg.UpdateFile(base, baseDefs)
	h.exportReg.UpdateFile(base, baseDefs)

	resolveModule := func(fromFile types.FilePath, importPath string) types.FilePath {
		return types.FilePath(importPath)
	}

	reexportSym := types.SymbolID("barrel.reexport.default")
	barrelDefs := []types.Definition{
		{
			SymbolID: reexportSym, Name: "default", Kind: types.DefinitionImport, DefiningScope: barrelScope,
			Location: loc(string(barrel), 1), ImportPath: string(base), ImportKind: types.ImportDefault,
			IsExported: true, Export: &types.ExportInfo{IsDefault: true, IsReexport: true},
		},
	}
	h.defReg.UpdateFile(barrel, barrelDefs)
	h.exportReg.UpdateFile(barrel, barrelDefs)
	h.importGraph.UpdateFile(barrel, barrelDefs, resolveModule)

	importSym := types.SymbolID("main.import.x")
	mainDefs := []types.Definition{
		{SymbolID: importSym, Name: "x", Kind: types.DefinitionImport, DefiningScope: mainScope, Location: loc(string(main), 1), ImportPath: string(barrel), ImportKind: types.ImportDefault},
	}
	h.defReg.UpdateFile(main, mainDefs)
	h.importGraph.UpdateFile(main, mainDefs, resolveModule)

	h.res.UpdateFile(base, nil, types.LanguageTypeScript)
	h.res.UpdateFile(barrel, nil, types.LanguageTypeScript)
	h.res.UpdateFile(main, nil, types.LanguageTypeScript)

	sym, ok := h.res.ResolveName(mainScope, "x")
	if !ok || sym != coreSym {
		t.Fatalf("expected local name x to resolve through the default re-export chain to %v, got (%v,%v)", coreSym, sym, ok)
	}
}

// TestExportChainPythonSubmoduleWithoutInitPy covers spec.md §8 scenario 4:
// /p/utils/helper.py exists with no __init__.py anywhere in the tree;
// main.py does `from utils.helper import process` — the dotted absolute
// import resolves directly to the submodule file via the generic
// export-chain path, without ever needing ResolveSubmodule (that helper only
// fires for the single-segment `from pkg import sub` case, spec.md:87).
func TestExportChainPythonSubmoduleWithoutInitPy(t *testing.T) {
	h := newHarness()
	helper := types.FilePath("p/utils/helper.py")
	main := types.FilePath("p/main.py")

	helperScope := types.ScopeID("helper#module")
	mainScope := types.ScopeID("main#module")
	h.scopeReg.UpdateFile(helper, helperScope, []types.Scope{{ID: helperScope, Type: types.ScopeModule, FilePath: helper}})
	h.scopeReg.UpdateFile(main, mainScope, []types.Scope{{ID: mainScope, Type: types.ScopeModule, FilePath: main}})

	processSym := types.SymbolID("helper.process")
	helperDefs := []types.Definition{
		{SymbolID: processSym, Name: "process", Kind: types.DefinitionFunction, DefiningScope: helperScope, Location: loc(string(helper), 1), IsExported: true},
	}
	h.defReg.UpdateFile(helper, helperDefs)
	h.exportReg.UpdateFile(helper, helperDefs)

	resolveModule := func(fromFile types.FilePath, importPath string) types.FilePath {
		return types.FilePath("p/" + importPath2Path(importPath) + ".py")
	}

	importSym := types.SymbolID("main.import.process")
	mainDefs := []types.Definition{
		{SymbolID: importSym, Name: "process", Kind: types.DefinitionImport, DefiningScope: mainScope, Location: loc(string(main), 1), ImportPath: "utils.helper", ImportKind: types.ImportNamed},
	}
	h.defReg.UpdateFile(main, mainDefs)
	h.importGraph.UpdateFile(main, mainDefs, resolveModule)

	h.res.UpdateFile(helper, nil, types.LanguagePython)
	h.res.UpdateFile(main, nil, types.LanguagePython)

	sym, ok := h.res.ResolveName(mainScope, "process")
	if !ok || sym != processSym {
		t.Fatalf("expected process to resolve to %v via the dotted absolute import, got (%v,%v)", processSym, sym, ok)
	}
}

// importPath2Path turns a dotted Python import path into a slash path,
// mirroring what pathresolve.PythonResolver.resolveAbsolute does internally.
func importPath2Path(importPath string) string {
	out := make([]byte, 0, len(importPath))
	for i := 0; i < len(importPath); i++ {
		if importPath[i] == '.' {
			out = append(out, '/')
		} else {
			out = append(out, importPath[i])
		}
	}
	return string(out)
}

// TestExportChainCircularDefaultReexport covers spec.md §8 scenario 7: a.ts
// and b.ts each re-export the other's default — resolving either must
// return null (no symbol, no error), not an infinite loop or a thrown error.
func TestExportChainCircularDefaultReexport(t *testing.T) {
	h := newHarness()
	a := types.FilePath("a.ts")
	b := types.FilePath("b.ts")

	resolveModule := func(fromFile types.FilePath, importPath string) types.FilePath {
		return types.FilePath(importPath)
	}

	aSym := types.SymbolID("a.reexport.default")
	aDefs := []types.Definition{
		{
			SymbolID: aSym, Name: "default", Kind: types.DefinitionImport, ImportPath: string(b), ImportKind: types.ImportDefault,
			IsExported: true, Export: &types.ExportInfo{IsDefault: true, IsReexport: true}, Location: loc(string(a), 1),
		},
	}
	bSym := types.SymbolID("b.reexport.default")
	bDefs := []types.Definition{
		{
			SymbolID: bSym, Name: "default", Kind: types.DefinitionImport, ImportPath: string(a), ImportKind: types.ImportDefault,
			IsExported: true, Export: &types.ExportInfo{IsDefault: true, IsReexport: true}, Location: loc(string(b), 1),
		},
	}
	h.exportReg.UpdateFile(a, aDefs)
	h.exportReg.UpdateFile(b, bDefs)

	sym, err := h.exportReg.ResolveExportChain(a, "x", types.ImportDefault, resolveModule)
	if err != nil {
		t.Fatalf("expected a circular default re-export to return (null, nil), got error %v", err)
	}
	if sym != "" {
		t.Fatalf("expected a circular default re-export to return the empty symbol id, got %v", sym)
	}
}
