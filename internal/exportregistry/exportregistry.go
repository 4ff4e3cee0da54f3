// Package exportregistry implements the Export Registry and export-chain
// walker of spec.md §4.5: per-file Name->ExportableDefinition maps, a
// single default-export slot per file, and the re-export chain walk with
// cycle detection.
package exportregistry

import (
	"github.com/CRJFisher/ariadne/internal/resolveerrors"
	"github.com/CRJFisher/ariadne/internal/types"
)

// ModuleResolverFunc resolves an import specifier from a given file to the
// canonical file path of the module it names. The walker is handed one of
// these rather than depending on pathresolve directly, so the coordinator
// can pick the language-appropriate resolver per file.
type ModuleResolverFunc func(fromFile types.FilePath, importPath string) types.FilePath

// Registry holds the export surface of every indexed file.
type Registry struct {
	named         map[types.FilePath]map[string]types.Definition
	defaults      map[types.FilePath]types.Definition
	defaultErrors map[types.FilePath]*resolveerrors.MultipleDefaultExportsError
}

// New creates an empty Export Registry.
func New() *Registry {
	return &Registry{
		named:         make(map[types.FilePath]map[string]types.Definition),
		defaults:      make(map[types.FilePath]types.Definition),
		defaultErrors: make(map[types.FilePath]*resolveerrors.MultipleDefaultExportsError),
	}
}

// UpdateFile rebuilds a file's export surface from its full definition list.
func (r *Registry) UpdateFile(file types.FilePath, defs []types.Definition) {
	r.RemoveFile(file)

	named := make(map[string]types.Definition)
	var defaultDefs []types.Definition

	for _, d := range defs {
		if !d.IsExported {
			continue
		}
		if d.Export != nil && d.Export.IsDefault {
			defaultDefs = append(defaultDefs, d)
			continue
		}
		named[d.EffectiveExportName()] = d
	}

	r.named[file] = named
	switch len(defaultDefs) {
	case 0:
		// no default export; nothing to store.
	case 1:
		r.defaults[file] = defaultDefs[0]
	default:
		ids := make([]types.SymbolID, len(defaultDefs))
		for i, d := range defaultDefs {
			ids[i] = d.SymbolID
		}
		r.defaultErrors[file] = &resolveerrors.MultipleDefaultExportsError{File: file, IDs: ids}
	}
}

// RemoveFile detaches every export belonging to a file.
func (r *Registry) RemoveFile(file types.FilePath) {
	delete(r.named, file)
	delete(r.defaults, file)
	delete(r.defaultErrors, file)
}

// GetNamedExport returns the definition exported under the given effective
// name in a file.
func (r *Registry) GetNamedExport(file types.FilePath, name string) (types.Definition, bool) {
	d, ok := r.named[file][name]
	return d, ok
}

// GetDefaultExport returns a file's default export, if exactly one exists.
func (r *Registry) GetDefaultExport(file types.FilePath) (types.Definition, bool) {
	d, ok := r.defaults[file]
	return d, ok
}

// DefaultExportError returns the recorded MultipleDefaultExportsError for a
// file, if its last UpdateFile found more than one default export. The
// coordinator surfaces this as a fatal-to-that-file indexer contract
// violation per spec.md §7.
func (r *Registry) DefaultExportError(file types.FilePath) error {
	if err, ok := r.defaultErrors[file]; ok {
		return err
	}
	return nil
}

func visitedKey(file types.FilePath, name string, kind types.ImportKind) string {
	if kind == types.ImportDefault {
		return string(file) + "\x00default"
	}
	return string(file) + "\x00" + name + "\x00" + string(kind)
}

// ResolveExportChain walks re-exports starting from (file, name, kind) to
// the symbol id of the underlying definition, per spec.md §4.5. It returns
// ("", nil) on a detected cycle, and a non-nil error (ExportNotFoundError,
// MultipleDefaultExportsError, or ImportKindMissingOnReexportError) when the
// chain cannot continue.
func (r *Registry) ResolveExportChain(file types.FilePath, name string, kind types.ImportKind, resolveModule ModuleResolverFunc) (types.SymbolID, error) {
	return r.walk(file, name, kind, resolveModule, make(map[string]bool))
}

func (r *Registry) walk(file types.FilePath, name string, kind types.ImportKind, resolveModule ModuleResolverFunc, visited map[string]bool) (types.SymbolID, error) {
	key := visitedKey(file, name, kind)
	if visited[key] {
		return "", nil
	}
	visited[key] = true

	var def types.Definition
	var ok bool
	if kind == types.ImportDefault {
		def, ok = r.GetDefaultExport(file)
		if !ok {
			if err, hasErr := r.defaultErrors[file]; hasErr {
				return "", err
			}
			return "", &resolveerrors.ExportNotFoundError{File: file, Name: name, ImportKind: kind}
		}
	} else {
		def, ok = r.GetNamedExport(file, name)
		if !ok {
			return "", &resolveerrors.ExportNotFoundError{File: file, Name: name, ImportKind: kind}
		}
	}

	if def.IsImport() && def.Export != nil && def.Export.IsReexport {
		if def.ImportKind == "" {
			return "", &resolveerrors.ImportKindMissingOnReexportError{File: file, ID: def.SymbolID}
		}
		nextFile := resolveModule(file, def.ImportPath)
		nextName := def.EffectiveOriginalName()
		return r.walk(nextFile, nextName, def.ImportKind, resolveModule, visited)
	}

	return def.SymbolID, nil
}
