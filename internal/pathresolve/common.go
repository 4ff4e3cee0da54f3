// Package pathresolve implements the per-language module path resolvers of
// spec.md §4.2: pure functions (specifier, importing file, file-tree) ->
// canonical file path. None of these ever touch a real filesystem; the
// file-tree is the only authority on "does this candidate exist", and when
// nothing exists the canonical "would-be" path is still returned so a later
// file add can retroactively complete resolution (spec.md §7).
package pathresolve

import (
	"path"
	"strings"

	"github.com/CRJFisher/ariadne/internal/filetree"
	"github.com/CRJFisher/ariadne/internal/types"
)

// Resolver is the common shape every language resolver implements.
type Resolver interface {
	Resolve(specifier string, importingFile types.FilePath, tree *filetree.Tree) types.FilePath
}

func dirOf(p string) string {
	d := path.Dir(path.Clean(p))
	if d == "." {
		return ""
	}
	return d
}

func joinClean(base, rel string) string {
	return path.Clean(path.Join(base, rel))
}

func isRelative(specifier string) bool {
	return strings.HasPrefix(specifier, "./") || strings.HasPrefix(specifier, "../") || specifier == "." || specifier == ".."
}

// firstExisting returns the first candidate that exists in the tree, or the
// first candidate (the canonical "would-be" path) if none exist.
func firstExisting(tree *filetree.Tree, candidates []string) types.FilePath {
	for _, c := range candidates {
		if tree.HasFile(types.FilePath(c)) {
			return types.FilePath(c)
		}
	}
	if len(candidates) > 0 {
		return types.FilePath(candidates[0])
	}
	return ""
}
