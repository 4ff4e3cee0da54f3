package pathresolve

import (
	"github.com/CRJFisher/ariadne/internal/filetree"
	"github.com/CRJFisher/ariadne/internal/types"
)

// JSResolver implements the JavaScript module path resolver of spec.md §4.2.
type JSResolver struct{}

// NewJSResolver constructs a JavaScript resolver.
func NewJSResolver() *JSResolver { return &JSResolver{} }

// Resolve maps a specifier to its canonical file path. Bare specifiers
// (no leading "./" or "../") are returned unchanged — node_modules
// resolution is out of scope for the core.
func (r *JSResolver) Resolve(specifier string, importingFile types.FilePath, tree *filetree.Tree) types.FilePath {
	if !isRelative(specifier) {
		return types.FilePath(specifier)
	}
	base := joinClean(dirOf(string(importingFile)), specifier)
	candidates := []string{
		base,
		base + ".js",
		base + ".mjs",
		base + ".cjs",
		base + "/index.js",
		base + "/index.mjs",
		base + "/index.cjs",
	}
	return firstExisting(tree, candidates)
}
