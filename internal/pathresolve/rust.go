package pathresolve

import (
	"path"
	"strings"

	"github.com/CRJFisher/ariadne/internal/filetree"
	"github.com/CRJFisher/ariadne/internal/types"
)

// RustResolver implements the Rust module path resolver of spec.md §4.2.
type RustResolver struct{}

// NewRustResolver constructs a Rust resolver.
func NewRustResolver() *RustResolver { return &RustResolver{} }

// Resolve maps a `::`-separated use path to its canonical file path.
func (r *RustResolver) Resolve(specifier string, importingFile types.FilePath, tree *filetree.Tree) types.FilePath {
	segments := strings.Split(specifier, "::")
	if len(segments) == 0 {
		return types.FilePath(specifier)
	}

	var base string
	switch segments[0] {
	case "crate":
		base = r.crateRoot(importingFile, tree)
	case "super":
		base = r.superDir(importingFile)
	case "self":
		base = dirOf(string(importingFile))
	default:
		// External-crate opaque specifier: returned unchanged, mirroring
		// the "bare specifier" behavior of the JS/TS resolvers.
		return types.FilePath(specifier)
	}

	remaining := segments[1:]
	if len(remaining) == 0 {
		return types.FilePath(joinClean(base, "mod.rs"))
	}

	for i, part := range remaining {
		isLast := i == len(remaining)-1
		asFile := types.FilePath(joinClean(base, part+".rs"))
		asModDir := types.FilePath(joinClean(base, part, "mod.rs"))

		if isLast {
			if tree.HasFile(asFile) {
				return asFile
			}
			if tree.HasFile(asModDir) {
				return asModDir
			}
			// Canonical would-be path: prefer the flat-file form.
			return asFile
		}

		base = joinClean(base, part)
	}
	return types.FilePath(base)
}

// crateRoot walks up from the importing file looking for lib.rs, main.rs,
// or Cargo.toml; Cargo.toml crates resolve to their src/ subdirectory when
// one is present.
func (r *RustResolver) crateRoot(importingFile types.FilePath, tree *filetree.Tree) string {
	dir := dirOf(string(importingFile))
	for {
		if tree.HasFile(types.FilePath(joinClean(dir, "lib.rs"))) || tree.HasFile(types.FilePath(joinClean(dir, "main.rs"))) {
			return dir
		}
		if tree.HasFile(types.FilePath(joinClean(dir, "Cargo.toml"))) {
			srcDir := joinClean(dir, "src")
			if tree.IsDirectory(srcDir) {
				return srcDir
			}
			return dir
		}
		if dir == "" {
			return ""
		}
		dir = dirOf(dir)
	}
}

// superDir returns the directory of the parent module: the same directory
// the importing file lives in, unless that file *is* a mod.rs (in which
// case its own directory is the current module and the parent module lives
// one directory further up).
func (r *RustResolver) superDir(importingFile types.FilePath) string {
	dir := dirOf(string(importingFile))
	if path.Base(string(importingFile)) == "mod.rs" {
		return dirOf(dir)
	}
	return dir
}
