// Package types holds the opaque identifiers and shared value types used by
// every registry in the resolution pipeline: symbol/scope identifiers,
// source locations, and the small enums (definition kind, call type, import
// kind) that the spec's data model describes.
package types

import "fmt"

// SymbolID is a project-unique opaque identifier for a Symbol Definition.
// Stable for the lifetime of the defining file's current index; a file
// re-index destroys and recreates the IDs for that file.
type SymbolID string

// ScopeID is a project-unique opaque identifier for a Lexical Scope.
type ScopeID string

// FilePath is a canonical, OS-native path as tracked by the file-tree. It is
// never interpreted by the core beyond string comparison and path-joining.
type FilePath string

// Location is a half-open source range, 1-indexed on lines and columns to
// match the conventions of the upstream semantic indexer.
type Location struct {
	FilePath    FilePath
	StartLine   int
	StartColumn int
	EndLine     int
	EndColumn   int
}

// LocationKey is a canonical, comparable encoding of a Location suitable for
// use as a map key (Go structs of comparable fields are already valid map
// keys, but the Type Registry keys its explicit type bindings by this
// flattened string form so they round-trip cleanly through the JSON
// boundary that carries a SemanticIndex into the core).
type LocationKey string

// NewLocationKey canonically encodes a Location.
func NewLocationKey(loc Location) LocationKey {
	return LocationKey(fmt.Sprintf("%s:%d:%d:%d:%d", loc.FilePath, loc.StartLine, loc.StartColumn, loc.EndLine, loc.EndColumn))
}

// DefinitionKind tags the variant of a Symbol Definition.
type DefinitionKind string

const (
	DefinitionFunction  DefinitionKind = "function"
	DefinitionMethod    DefinitionKind = "method"
	DefinitionClass     DefinitionKind = "class"
	DefinitionInterface DefinitionKind = "interface"
	DefinitionEnum      DefinitionKind = "enum"
	DefinitionTypeAlias DefinitionKind = "type-alias"
	DefinitionNamespace DefinitionKind = "namespace"
	DefinitionVariable  DefinitionKind = "variable"
	DefinitionImport    DefinitionKind = "import"
	DefinitionProperty  DefinitionKind = "property"
	DefinitionDecorator DefinitionKind = "decorator"
)

// ScopeType tags the variant of a Lexical Scope.
type ScopeType string

const (
	ScopeModule   ScopeType = "module"
	ScopeFunction ScopeType = "function"
	ScopeClass    ScopeType = "class"
	ScopeBlock    ScopeType = "block"
)

// IsCallable reports whether a scope of this type is a valid "caller scope"
// for find_enclosing_function_scope — function, method, and constructor
// bodies are all represented as ScopeFunction with a Name set.
func (t ScopeType) IsCallable() bool {
	return t == ScopeFunction
}

// ImportKind tags how an Import Definition binds its name.
type ImportKind string

const (
	ImportNamed     ImportKind = "named"
	ImportDefault   ImportKind = "default"
	ImportNamespace ImportKind = "namespace"
)

// ReferenceType tags a Symbol Reference.
type ReferenceType string

const (
	ReferenceCall  ReferenceType = "call"
	ReferenceRead  ReferenceType = "read"
	ReferenceWrite ReferenceType = "write"
)

// CallType tags a Call Reference's dispatch kind.
type CallType string

const (
	CallFunction    CallType = "function"
	CallMethod      CallType = "method"
	CallConstructor CallType = "constructor"
	CallSuper       CallType = "super"
)

// Language identifies the source language of an indexed file. Only the four
// languages the spec's path resolvers cover are meaningful inputs to
// pathresolve; other values are accepted and stored but never trigger
// cross-file resolution.
type Language string

const (
	LanguageJavaScript Language = "javascript"
	LanguageTypeScript Language = "typescript"
	LanguagePython     Language = "python"
	LanguageRust       Language = "rust"
)
