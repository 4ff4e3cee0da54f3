// Package resolveerrors defines the error kinds from spec.md §7: typed
// values that distinguish per-reference misses (never fatal) from indexer
// contract violations (fatal to the affected lookup). Modeled on the
// teacher's internal/errors package: typed structs implementing error,
// matchable with errors.As, and an explicit Recoverable distinction.
package resolveerrors

import (
	"fmt"

	"github.com/CRJFisher/ariadne/internal/types"
)

// Kind tags the category of a resolution error.
type Kind string

const (
	KindExportNotFound             Kind = "export_not_found"
	KindMultipleDefaultExports     Kind = "multiple_default_exports"
	KindImportKindMissingOnReexport Kind = "import_kind_missing_on_reexport"
	KindUnresolvedMember           Kind = "unresolved_member"
)

// ExportNotFoundError is raised by the export-chain walker when a requested
// export does not exist in the target file (spec.md §4.5, §7).
type ExportNotFoundError struct {
	File       types.FilePath
	Name       string
	ImportKind types.ImportKind
}

func (e *ExportNotFoundError) Error() string {
	return fmt.Sprintf("export not found: %q (%s) in %s", e.Name, e.ImportKind, e.File)
}

// Kind reports the error's category.
func (e *ExportNotFoundError) Kind() Kind { return KindExportNotFound }

// MultipleDefaultExportsError indicates an indexing bug: more than one
// default export in a single file. Fatal to the affected file's default
// export lookup; the caller should log and treat the file as having no
// usable default export rather than guessing one.
type MultipleDefaultExportsError struct {
	File types.FilePath
	IDs  []types.SymbolID
}

func (e *MultipleDefaultExportsError) Error() string {
	return fmt.Sprintf("multiple default exports in %s: %v", e.File, e.IDs)
}

func (e *MultipleDefaultExportsError) Kind() Kind { return KindMultipleDefaultExports }

// ImportKindMissingOnReexportError indicates an indexer contract violation:
// a re-export was recorded without the import_kind needed to continue the
// chain walk.
type ImportKindMissingOnReexportError struct {
	File types.FilePath
	ID   types.SymbolID
}

func (e *ImportKindMissingOnReexportError) Error() string {
	return fmt.Sprintf("import_kind missing on re-export %s in %s", e.ID, e.File)
}

func (e *ImportKindMissingOnReexportError) Kind() Kind { return KindImportKindMissingOnReexport }

// UnresolvedMemberError signals a method/property lookup on a tracked type
// that failed. Never propagated past phase 2: the call is simply omitted
// from the resolved-call indexes. Exported so callers/tests can assert on
// the specific miss when they choose to inspect it.
type UnresolvedMemberError struct {
	TypeName string
	Member   string
}

func (e *UnresolvedMemberError) Error() string {
	return fmt.Sprintf("unresolved member %q on type %q", e.Member, e.TypeName)
}

func (e *UnresolvedMemberError) Kind() Kind { return KindUnresolvedMember }

// Recoverable reports whether a failure of this kind is fatal to the
// affected lookup (false) or merely leaves one reference/export unresolved
// (true). Neither kind stops a file update from being applied.
// Per spec §7: definition-level contract violations are fatal to the
// affected lookup; per-reference misses are always recoverable.
func Recoverable(err error) bool {
	switch err.(type) {
	case *MultipleDefaultExportsError, *ImportKindMissingOnReexportError:
		return false
	default:
		return true
	}
}
