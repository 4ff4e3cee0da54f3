package pathresolve

import (
	"testing"

	"github.com/CRJFisher/ariadne/internal/filetree"
)

func TestJSResolverRelativeCandidatePriority(t *testing.T) {
	tree := filetree.New()
	tree.Add("src/utils.mjs")
	tree.Add("src/main.js")

	r := NewJSResolver()
	got := r.Resolve("./utils", "src/main.js", tree)
	if got != "src/utils.mjs" {
		t.Fatalf("expected ./utils to resolve to src/utils.mjs (only candidate that exists), got %v", got)
	}
}

func TestJSResolverExactBeatsExtension(t *testing.T) {
	tree := filetree.New()
	tree.Add("src/utils")
	tree.Add("src/utils.js")
	tree.Add("src/main.js")

	r := NewJSResolver()
	got := r.Resolve("./utils", "src/main.js", tree)
	if got != "src/utils" {
		t.Fatalf("expected exact match to outrank .js, got %v", got)
	}
}

func TestJSResolverDirectoryIndex(t *testing.T) {
	tree := filetree.New()
	tree.Add("src/lib/index.js")
	tree.Add("src/main.js")

	r := NewJSResolver()
	got := r.Resolve("./lib", "src/main.js", tree)
	if got != "src/lib/index.js" {
		t.Fatalf("expected ./lib to resolve to src/lib/index.js, got %v", got)
	}
}

func TestJSResolverBareSpecifierUnchanged(t *testing.T) {
	tree := filetree.New()
	r := NewJSResolver()
	got := r.Resolve("lodash", "src/main.js", tree)
	if got != "lodash" {
		t.Fatalf("expected bare specifier to pass through unchanged, got %v", got)
	}
}

func TestJSResolverMissingCandidateReturnsCanonicalPath(t *testing.T) {
	tree := filetree.New()
	tree.Add("src/main.js")

	r := NewJSResolver()
	got := r.Resolve("./missing", "src/main.js", tree)
	if got != "src/missing" {
		t.Fatalf("expected canonical would-be path src/missing, got %v", got)
	}
}
