// Package coordinator wires the File-Tree, the five data registries, and
// the Resolution Registry into the single update/query surface described in
// spec.md §2 and §6. It owns the per-file pipeline ordering: ingest a
// SemanticIndex, refresh the Definition/Scope/Export/Import/Type registries,
// then hand the file to the Resolution Registry for phase 1, preprocessing,
// the Type phase, and phase 2.
package coordinator

import (
	"sync"

	"github.com/CRJFisher/ariadne/internal/coordinatorlog"
	"github.com/CRJFisher/ariadne/internal/defregistry"
	"github.com/CRJFisher/ariadne/internal/exportregistry"
	"github.com/CRJFisher/ariadne/internal/filetree"
	"github.com/CRJFisher/ariadne/internal/importgraph"
	"github.com/CRJFisher/ariadne/internal/pathresolve"
	"github.com/CRJFisher/ariadne/internal/resolution"
	"github.com/CRJFisher/ariadne/internal/resolveconfig"
	"github.com/CRJFisher/ariadne/internal/scoperegistry"
	"github.com/CRJFisher/ariadne/internal/typeregistry"
	"github.com/CRJFisher/ariadne/internal/types"

	"golang.org/x/sync/singleflight"
)

// Coordinator is the thin outer loop described in spec.md §2. Every public
// method is safe for concurrent use: updates take an exclusive lock,
// queries take a shared one (spec.md §5 "single-writer, multi-reader").
type Coordinator struct {
	mu sync.RWMutex

	tree         *filetree.Tree
	fileLanguage map[types.FilePath]types.Language

	defReg      *defregistry.Registry
	scopeReg    *scoperegistry.Registry
	exportReg   *exportregistry.Registry
	importGraph *importgraph.Graph
	typeReg     *typeregistry.Registry
	res         *resolution.Registry

	jsResolver   *pathresolve.JSResolver
	tsResolver   *pathresolve.TSResolver
	pyResolver   *pathresolve.PythonResolver
	rustResolver *pathresolve.RustResolver

	exportChainGroup singleflight.Group
}

// New constructs an empty Coordinator with no files registered.
func New() *Coordinator {
	c := &Coordinator{
		tree:         filetree.New(),
		fileLanguage: make(map[types.FilePath]types.Language),
		defReg:       defregistry.New(),
		scopeReg:     scoperegistry.New(),
		exportReg:    exportregistry.New(),
		importGraph:  importgraph.New(),
		typeReg:      typeregistry.New(),
		jsResolver:   pathresolve.NewJSResolver(),
		tsResolver:   pathresolve.NewTSResolver(),
		pyResolver:   pathresolve.NewPythonResolver(),
		rustResolver: pathresolve.NewRustResolver(),
	}
	c.res = resolution.New(c.defReg, c.scopeReg, c.exportReg, c.importGraph, c.typeReg, c.resolveModule, c.resolveSubmodule)
	return c
}

// resolveSubmodule backs resolution.SubmoduleResolverFunc: spec.md §4.2's
// resolve_submodule_path, consulted only for Python imports whose export
// lookup reports ExportNotFound (internal/resolution/phase1.go).
func (c *Coordinator) resolveSubmodule(packageInitFile types.FilePath, name string) (types.FilePath, bool) {
	resolved := c.pyResolver.ResolveSubmodule(packageInitFile, name, c.tree)
	if resolved == "" {
		return "", false
	}
	return resolved, true
}

// resolveModule dispatches to the language-appropriate path resolver for
// fromFile. Called with the coordinator's lock already held by the caller —
// it never takes the lock itself, so it is safe to invoke from deep inside
// the registries' own update paths.
func (c *Coordinator) resolveModule(fromFile types.FilePath, importPath string) types.FilePath {
	switch c.fileLanguage[fromFile] {
	case types.LanguageJavaScript:
		return c.jsResolver.Resolve(importPath, fromFile, c.tree)
	case types.LanguageTypeScript:
		return c.tsResolver.Resolve(importPath, fromFile, c.tree)
	case types.LanguagePython:
		return c.pyResolver.Resolve(importPath, fromFile, c.tree)
	case types.LanguageRust:
		return c.rustResolver.Resolve(importPath, fromFile, c.tree)
	default:
		return types.FilePath(importPath)
	}
}

// ApplyConfig applies a loaded resolveconfig.Config's resolver-affecting
// settings. Currently that is just the Python project-root override a
// pyproject.toml's [tool.ariadne] table can supply (resolveconfig.Load) —
// language toggles and include/exclude globs are the caller's concern when
// deciding which files to feed into RegisterFile/UpdateFileIndex.
func (c *Coordinator) ApplyConfig(cfg *resolveconfig.Config) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if cfg.Project.PythonRoot != "" {
		c.pyResolver.SetProjectRootOverride(cfg.Project.PythonRoot)
	}
}

// RegisterFile adds a file to the file-tree and records its language,
// without indexing it — spec.md §6's register_file, used when a file is
// known to exist (e.g. discovered by a directory scan or a watcher create
// event) before its SemanticIndex is available.
func (c *Coordinator) RegisterFile(file types.FilePath, language types.Language) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.tree.Add(file)
	c.fileLanguage[file] = language
}

// UpdateFileIndex runs the full per-file pipeline of spec.md §2/§4.8/§4.9
// for one file's SemanticIndex: definitions, scopes, exports, imports, and
// type members are refreshed first (so every later step sees a consistent
// snapshot), then the Resolution Registry runs phase 1, the Python call-type
// preprocessing interlude, the Type phase, and phase 2.
//
// Returns the file's MultipleDefaultExportsError, if its export surface was
// malformed — every other failure mode is per-reference and recoverable, so
// it never aborts the update (spec.md §7).
func (c *Coordinator) UpdateFileIndex(file types.FilePath, language types.Language, index *types.SemanticIndex) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.tree.Add(file)
	c.fileLanguage[file] = language

	c.defReg.UpdateFile(file, index.Definitions)
	c.scopeReg.UpdateFile(file, index.RootScopeID, index.Scopes)
	c.exportReg.UpdateFile(file, index.Definitions)
	c.importGraph.UpdateFile(file, index.Definitions, c.resolveModule)

	members := make(map[types.SymbolID]types.TypeMembers, len(index.TypeMembers))
	for id, m := range index.TypeMembers {
		members[id] = m
	}
	for _, d := range index.Definitions {
		if d.Members != nil {
			members[d.SymbolID] = *d.Members
		}
	}
	c.typeReg.UpdateFile(file, index.TypeBindings, members)

	c.res.UpdateFile(file, index.References, language)

	if err := c.exportReg.DefaultExportError(file); err != nil {
		coordinatorlog.Default.Warnf("%s: %v", file, err)
		return err
	}
	coordinatorlog.Default.Debugf("indexed %s (%d definitions, %d references)", file, len(index.Definitions), len(index.References))
	return nil
}

// DeregisterFile removes a file from every registry and the file-tree —
// spec.md §6's remove_file/deregister_file.
func (c *Coordinator) DeregisterFile(file types.FilePath) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.tree.Remove(file)
	delete(c.fileLanguage, file)
	c.defReg.RemoveFile(file)
	c.scopeReg.RemoveFile(file)
	c.exportReg.RemoveFile(file)
	c.importGraph.RemoveFile(file)
	c.typeReg.RemoveFile(file)
	c.res.RemoveFile(file)
}
