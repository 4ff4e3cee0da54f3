package pathresolve

import (
	"path"
	"strings"

	"github.com/CRJFisher/ariadne/internal/filetree"
	"github.com/CRJFisher/ariadne/internal/types"
)

// PythonResolver implements the Python module path resolver of spec.md
// §4.2: leading-dot relative imports, and a "sys.path[0]-first" absolute
// import search order (local directory, project root, up to 3 project-root
// ancestors).
type PythonResolver struct {
	rootOverride string
}

// NewPythonResolver constructs a Python resolver.
func NewPythonResolver() *PythonResolver { return &PythonResolver{} }

// SetProjectRootOverride pins ProjectRoot's result to root, bypassing the
// marker-search heuristic below. Used when a pyproject.toml's
// [tool.ariadne] table names the project root explicitly
// (resolveconfig.LoadPyProjectOverrides), since that declaration is more
// trustworthy than the positional guess.
func (r *PythonResolver) SetProjectRootOverride(root string) {
	r.rootOverride = root
}

var projectMarkers = []string{
	"setup.py", "pyproject.toml", ".git", "requirements.txt",
	"Pipfile", "tox.ini", "poetry.lock", "Pipfile.lock", ".python-version",
}

// Resolve maps a dotted import specifier to its canonical file path.
func (r *PythonResolver) Resolve(specifier string, importingFile types.FilePath, tree *filetree.Tree) types.FilePath {
	if strings.HasPrefix(specifier, ".") {
		return r.resolveRelative(specifier, importingFile, tree)
	}
	return r.resolveAbsolute(specifier, importingFile, tree)
}

// ResolveSubmodule handles `from pkg import sub` for a package whose
// __init__.py already resolved to packageInitFile: it checks pkg/sub.py
// then pkg/sub/__init__.py next to that file (spec.md §4.2 "secondary
// helper").
func (r *PythonResolver) ResolveSubmodule(packageInitFile types.FilePath, name string, tree *filetree.Tree) types.FilePath {
	packageDir := dirOf(string(packageInitFile))
	return r.tryModule(tree, joinClean(packageDir, name))
}

func (r *PythonResolver) resolveRelative(specifier string, importingFile types.FilePath, tree *filetree.Tree) types.FilePath {
	dots := 0
	for dots < len(specifier) && specifier[dots] == '.' {
		dots++
	}
	remainder := specifier[dots:]

	targetDir := dirOf(string(importingFile))
	for i := 1; i < dots; i++ {
		targetDir = dirOf(targetDir)
	}

	if remainder != "" {
		parts := strings.Split(remainder, ".")
		base := targetDir
		for _, p := range parts {
			base = joinClean(base, p)
		}
		return r.tryModuleOrFallback(tree, base)
	}

	initFile := types.FilePath(joinClean(targetDir, "__init__.py"))
	if tree.HasFile(initFile) {
		return initFile
	}
	return initFile
}

func (r *PythonResolver) resolveAbsolute(specifier string, importingFile types.FilePath, tree *filetree.Tree) types.FilePath {
	parts := strings.Split(specifier, ".")
	if len(parts) == 0 || parts[0] == "" {
		return types.FilePath(specifier)
	}

	// 1. local candidate relative to the importing file's directory.
	localDir := dirOf(string(importingFile))
	if resolved := r.tryModule(tree, joinParts(localDir, parts)); resolved != "" {
		return resolved
	}

	root := r.ProjectRoot(importingFile, parts[0], tree)

	// 2. candidate relative to the project root.
	if resolved := r.tryModule(tree, joinParts(root, parts)); resolved != "" {
		return resolved
	}

	// 3. up to 3 ancestor directories of the project root.
	ancestor := root
	for i := 0; i < 3; i++ {
		ancestor = dirOf(ancestor)
		if resolved := r.tryModule(tree, joinParts(ancestor, parts)); resolved != "" {
			return resolved
		}
	}

	// Nothing exists yet: canonical would-be path is the project-root
	// candidate, so a later file add can retroactively complete resolution.
	return types.FilePath(joinParts(root, parts) + ".py")
}

// ProjectRoot implements the Python project-root heuristic of spec.md §4.2.
func (r *PythonResolver) ProjectRoot(file types.FilePath, firstImportSegment string, tree *filetree.Tree) string {
	if r.rootOverride != "" {
		return r.rootOverride
	}

	startDir := dirOf(string(file))

	// If any ancestor (inclusive) contains __init__.py, the topmost such
	// directory's parent is the project root.
	topmostPackageDir := ""
	for dir := startDir; ; dir = dirOf(dir) {
		if tree.HasFile(types.FilePath(joinClean(dir, "__init__.py"))) {
			topmostPackageDir = dir
		}
		if dir == "" {
			break
		}
	}
	if topmostPackageDir != "" {
		return dirOf(topmostPackageDir)
	}

	// Otherwise search up to 3 levels (inclusive of the starting directory)
	// for a project marker.
	dir := startDir
	for level := 0; level <= 3; level++ {
		for _, marker := range projectMarkers {
			if tree.HasFile(types.FilePath(joinClean(dir, marker))) {
				return dir
			}
		}
		if dir == "" {
			break
		}
		dir = dirOf(dir)
	}

	// Path-duplication heuristic: "pkg.module" imported from inside a
	// directory literally named "pkg" means the root is one level up.
	if firstImportSegment != "" && path.Base(startDir) == firstImportSegment {
		return dirOf(startDir)
	}

	return startDir
}

func joinParts(base string, parts []string) string {
	for _, p := range parts {
		base = joinClean(base, p)
	}
	return base
}

// tryModule returns the resolved module file path ("<base>.py" or
// "<base>/__init__.py") if either exists in the tree, else "".
func (r *PythonResolver) tryModule(tree *filetree.Tree, base string) types.FilePath {
	asModule := types.FilePath(base + ".py")
	if tree.HasFile(asModule) {
		return asModule
	}
	asPackage := types.FilePath(joinClean(base, "__init__.py"))
	if tree.HasFile(asPackage) {
		return asPackage
	}
	return ""
}

// tryModuleOrFallback is tryModule, but falls back to the canonical
// "<base>.py" would-be path when nothing exists yet.
func (r *PythonResolver) tryModuleOrFallback(tree *filetree.Tree, base string) types.FilePath {
	if resolved := r.tryModule(tree, base); resolved != "" {
		return resolved
	}
	return types.FilePath(base + ".py")
}
