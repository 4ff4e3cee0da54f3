package pathresolve

import (
	"testing"

	"github.com/CRJFisher/ariadne/internal/filetree"
)

func TestTSResolverPrefersTSOverJS(t *testing.T) {
	tree := filetree.New()
	tree.Add("src/utils.ts")
	tree.Add("src/utils.js")
	tree.Add("src/main.ts")

	r := NewTSResolver()
	got := r.Resolve("./utils", "src/main.ts", tree)
	if got != "src/utils.ts" {
		t.Fatalf("expected .ts to outrank .js, got %v", got)
	}
}

func TestTSResolverDirectoryIndexPrefersTS(t *testing.T) {
	tree := filetree.New()
	tree.Add("src/lib/index.ts")
	tree.Add("src/lib/index.js")
	tree.Add("src/main.ts")

	r := NewTSResolver()
	got := r.Resolve("./lib", "src/main.ts", tree)
	if got != "src/lib/index.ts" {
		t.Fatalf("expected index.ts to outrank index.js, got %v", got)
	}
}

func TestTSResolverMissingAppendsTSExtension(t *testing.T) {
	tree := filetree.New()
	tree.Add("src/main.ts")

	r := NewTSResolver()
	got := r.Resolve("./missing", "src/main.ts", tree)
	if got != "src/missing.ts" {
		t.Fatalf("expected missing candidate to fall back to .ts, got %v", got)
	}
}

func TestTSResolverMissingWithValidExtensionKeptAsIs(t *testing.T) {
	tree := filetree.New()
	tree.Add("src/main.ts")

	r := NewTSResolver()
	got := r.Resolve("./missing.js", "src/main.ts", tree)
	if got != "src/missing.js" {
		t.Fatalf("expected specifier with a valid JS/TS extension to be kept as-is, got %v", got)
	}
}

func TestTSResolverBareSpecifierUnchanged(t *testing.T) {
	tree := filetree.New()
	r := NewTSResolver()
	got := r.Resolve("react", "src/main.ts", tree)
	if got != "react" {
		t.Fatalf("expected bare specifier to pass through unchanged, got %v", got)
	}
}
