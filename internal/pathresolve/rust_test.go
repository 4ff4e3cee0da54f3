package pathresolve

import (
	"testing"

	"github.com/CRJFisher/ariadne/internal/filetree"
)

func TestRustResolverCrateRootViaLibRs(t *testing.T) {
	tree := filetree.New()
	tree.Add("lib.rs")
	tree.Add("net/server.rs")

	r := NewRustResolver()
	got := r.Resolve("crate::net::server", "main.rs", tree)
	if got != "net/server.rs" {
		t.Fatalf("expected crate::net::server to resolve to net/server.rs, got %v", got)
	}
}

func TestRustResolverCargoTomlUsesSrcSubdir(t *testing.T) {
	tree := filetree.New()
	tree.Add("Cargo.toml")
	tree.Add("src/net/server.rs")

	r := NewRustResolver()
	got := r.Resolve("crate::net::server", "src/main.rs", tree)
	if got != "src/net/server.rs" {
		t.Fatalf("expected crate root to be src/ when Cargo.toml has a src subdir, got %v", got)
	}
}

func TestRustResolverSuperFromOrdinaryFile(t *testing.T) {
	tree := filetree.New()
	tree.Add("net/shared.rs")

	r := NewRustResolver()
	got := r.Resolve("super::shared", "net/server.rs", tree)
	if got != "net/shared.rs" {
		t.Fatalf("expected super::shared from an ordinary file to resolve in the same directory, got %v", got)
	}
}

func TestRustResolverSuperFromModRsGoesUpOneLevel(t *testing.T) {
	tree := filetree.New()
	tree.Add("shared.rs")

	r := NewRustResolver()
	got := r.Resolve("super::shared", "net/mod.rs", tree)
	if got != "shared.rs" {
		t.Fatalf("expected super::shared from mod.rs to resolve one directory up, got %v", got)
	}
}

func TestRustResolverSelf(t *testing.T) {
	tree := filetree.New()
	tree.Add("net/helpers.rs")

	r := NewRustResolver()
	got := r.Resolve("self::helpers", "net/server.rs", tree)
	if got != "net/helpers.rs" {
		t.Fatalf("expected self::helpers to resolve in the importing file's own directory, got %v", got)
	}
}

func TestRustResolverModDirFallback(t *testing.T) {
	tree := filetree.New()
	tree.Add("lib.rs")
	tree.Add("net/mod.rs")

	r := NewRustResolver()
	got := r.Resolve("crate::net", "main.rs", tree)
	if got != "net/mod.rs" {
		t.Fatalf("expected crate::net to fall back to net/mod.rs when net.rs does not exist, got %v", got)
	}
}

func TestRustResolverExternalCrateUnchanged(t *testing.T) {
	tree := filetree.New()
	r := NewRustResolver()
	got := r.Resolve("serde::Deserialize", "main.rs", tree)
	if got != "serde::Deserialize" {
		t.Fatalf("expected external-crate specifier to pass through unchanged, got %v", got)
	}
}
