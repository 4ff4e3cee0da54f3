// Package filetree implements the virtualized directory tree described in
// spec.md §4.1: a pure value tree of the files the coordinator knows about.
// No filesystem access happens here or in any caller that consults it —
// path resolvers treat it as the single source of truth for "does this
// candidate path exist".
package filetree

import (
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/CRJFisher/ariadne/internal/types"
)

// Folder is a node in the file-tree: a directory holding child folders and
// a set of file names that live directly in it.
type Folder struct {
	Path    string
	Folders map[string]*Folder
	Files   map[string]struct{}
}

func newFolder(path string) *Folder {
	return &Folder{Path: path, Folders: make(map[string]*Folder), Files: make(map[string]struct{})}
}

// Tree is the mutable in-memory directory tree. It is the only authority
// path resolvers consult for "does this candidate exist".
type Tree struct {
	root *Folder
}

// New creates an empty file-tree.
func New() *Tree {
	return &Tree{root: newFolder("")}
}

func splitPath(path string) []string {
	clean := filepath.ToSlash(filepath.Clean(path))
	clean = strings.TrimPrefix(clean, "/")
	if clean == "." || clean == "" {
		return nil
	}
	return strings.Split(clean, "/")
}

// Add registers a file path in the tree, creating intermediate folders as
// needed.
func (t *Tree) Add(path types.FilePath) {
	parts := splitPath(string(path))
	if len(parts) == 0 {
		return
	}
	dir := t.root
	acc := ""
	for _, part := range parts[:len(parts)-1] {
		if acc == "" {
			acc = part
		} else {
			acc = acc + "/" + part
		}
		child, ok := dir.Folders[part]
		if !ok {
			child = newFolder(acc)
			dir.Folders[part] = child
		}
		dir = child
	}
	dir.Files[parts[len(parts)-1]] = struct{}{}
}

// Remove deregisters a file path. Empty intermediate folders are left in
// place; the tree never needs to shrink for correctness, only for memory,
// and nothing in the spec requires pruning.
func (t *Tree) Remove(path types.FilePath) {
	parts := splitPath(string(path))
	if len(parts) == 0 {
		return
	}
	dir := t.root
	for _, part := range parts[:len(parts)-1] {
		child, ok := dir.Folders[part]
		if !ok {
			return
		}
		dir = child
	}
	delete(dir.Files, parts[len(parts)-1])
}

// HasFile reports whether the given path is a registered file.
func (t *Tree) HasFile(path types.FilePath) bool {
	parts := splitPath(string(path))
	if len(parts) == 0 {
		return false
	}
	dir := t.root
	for _, part := range parts[:len(parts)-1] {
		child, ok := dir.Folders[part]
		if !ok {
			return false
		}
		dir = child
	}
	_, ok := dir.Files[parts[len(parts)-1]]
	return ok
}

// IsDirectory reports whether the given path denotes a known folder
// (a path that has at least one registered file or sub-folder beneath it,
// or is the root).
func (t *Tree) IsDirectory(path string) bool {
	parts := splitPath(path)
	dir := t.root
	for _, part := range parts {
		child, ok := dir.Folders[part]
		if !ok {
			return false
		}
		dir = child
	}
	return true
}

// ChildFiles returns the file names directly inside a directory, sorted for
// deterministic iteration.
func (t *Tree) ChildFiles(dirPath string) []string {
	parts := splitPath(dirPath)
	dir := t.root
	for _, part := range parts {
		child, ok := dir.Folders[part]
		if !ok {
			return nil
		}
		dir = child
	}
	names := make([]string, 0, len(dir.Files))
	for name := range dir.Files {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Glob matches registered files against a doublestar pattern (e.g.
// "src/**/*.py") and returns the matches sorted.
func (t *Tree) Glob(pattern string) []types.FilePath {
	var matches []types.FilePath
	var walk func(f *Folder)
	walk = func(f *Folder) {
		for name := range f.Files {
			full := name
			if f.Path != "" {
				full = f.Path + "/" + name
			}
			if ok, _ := doublestar.Match(pattern, full); ok {
				matches = append(matches, types.FilePath(full))
			}
		}
		for _, child := range f.Folders {
			walk(child)
		}
	}
	walk(t.root)
	sort.Slice(matches, func(i, j int) bool { return matches[i] < matches[j] })
	return matches
}
