package pathresolve

import (
	"strings"

	"github.com/CRJFisher/ariadne/internal/filetree"
	"github.com/CRJFisher/ariadne/internal/types"
)

// TSResolver implements the TypeScript module path resolver of spec.md §4.2.
type TSResolver struct{}

// NewTSResolver constructs a TypeScript resolver.
func NewTSResolver() *TSResolver { return &TSResolver{} }

var tsJsExtensions = []string{".ts", ".tsx", ".js", ".jsx"}

func hasValidTSJSExtension(specifier string) bool {
	for _, ext := range tsJsExtensions {
		if strings.HasSuffix(specifier, ext) {
			return true
		}
	}
	return false
}

// Resolve maps a specifier to its canonical file path, preferring .ts/.tsx
// over .js/.jsx at every tier.
func (r *TSResolver) Resolve(specifier string, importingFile types.FilePath, tree *filetree.Tree) types.FilePath {
	if !isRelative(specifier) {
		return types.FilePath(specifier)
	}
	base := joinClean(dirOf(string(importingFile)), specifier)
	candidates := []string{
		base,
		base + ".ts",
		base + ".tsx",
		base + ".js",
		base + ".jsx",
		base + "/index.ts",
		base + "/index.tsx",
		base + "/index.js",
	}
	for _, c := range candidates {
		if tree.HasFile(types.FilePath(c)) {
			return types.FilePath(c)
		}
	}
	// Nothing exists yet: pick the canonical "would-be" path per spec.md
	// §4.2 — if the specifier already names a valid TS/JS extension, the
	// exact path is canonical; otherwise append ".ts".
	if hasValidTSJSExtension(specifier) {
		return types.FilePath(base)
	}
	return types.FilePath(base + ".ts")
}
