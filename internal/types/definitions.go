package types

// ExportInfo is the optional export metadata carried by a Symbol Definition.
type ExportInfo struct {
	ExportName  string // effective external name, if different from Name
	IsDefault   bool
	IsReexport  bool
}

// Signature captures the shallow callable shape the Type Registry needs to
// propagate a return type through `let x = fn(args)`.
type Signature struct {
	ReturnType string // symbol name of the declared/inferred return type, if known
}

// TypeMembers captures the shallow type-member shape used by method/property
// dispatch (§4.7). Populated for class/interface/struct-like definitions.
type TypeMembers struct {
	Methods    map[string]SymbolID
	Properties map[string]SymbolID
	Constructor SymbolID // empty if none declared
	Extends    []string  // base type names, resolved lexically at dispatch time
}

// Definition is a Symbol Definition as described in spec.md §3.
type Definition struct {
	SymbolID      SymbolID
	Name          string
	Kind          DefinitionKind
	DefiningScope ScopeID
	Location      Location
	IsExported    bool
	Export        *ExportInfo // nil unless IsExported and an alias/default/reexport applies

	Signature *Signature   // callables only
	Members   *TypeMembers // class/interface/enum/namespace only

	// Import-only fields; zero value for non-import definitions.
	ImportPath   string
	ImportKind   ImportKind
	OriginalName string // aliased import's source-side name, if aliased
}

// IsImport reports whether this definition is an Import Definition subkind.
func (d *Definition) IsImport() bool {
	return d.Kind == DefinitionImport
}

// EffectiveExportName returns the effective export name per spec §4.5: the
// alias if present, else the definition's own name.
func (d *Definition) EffectiveExportName() string {
	if d.Export != nil && d.Export.ExportName != "" {
		return d.Export.ExportName
	}
	return d.Name
}

// EffectiveOriginalName returns original_name||name, used when following a
// re-export's target through the chain walker.
func (d *Definition) EffectiveOriginalName() string {
	if d.OriginalName != "" {
		return d.OriginalName
	}
	return d.Name
}

// Scope is a Lexical Scope node in a file's scope tree (spec.md §3, §4.4).
type Scope struct {
	ID       ScopeID
	Type     ScopeType
	ParentID ScopeID // empty for the module root
	ChildIDs []ScopeID
	Name     string // function/class name, empty for module/block
	Location Location
	FilePath FilePath
}

// CallContext carries the receiver chain for a method/associated call.
type CallContext struct {
	ReceiverLocation Location
	PropertyChain    []string // e.g. ["a", "b"] for a.b.c(); "c" is the call name itself
}

// Reference is a Symbol Reference (spec.md §3).
type Reference struct {
	Type     ReferenceType
	Name     string
	Location Location
	ScopeID  ScopeID

	// Call-only fields below; zero value for read/write references.
	CallType CallType
	Context  *CallContext

	// Populated once resolved by phase 2.
	Resolved       bool
	TargetSymbol   SymbolID
	CallerScopeID  ScopeID
}

// IsCall reports whether this reference is a Call Reference.
func (r *Reference) IsCall() bool {
	return r.Type == ReferenceCall
}
