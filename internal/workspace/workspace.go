// Package workspace models the external file store the editor mirrors.
//
// The workspace is a separate source of truth keyed by file id. This
// subsystem holds only a read/notify relationship with it: records are
// read through an injected Accessor and never mutated by the
// synchronization engine. The Store type is a JSON-file-backed Accessor
// for hosts that keep their workspace on disk.
package workspace

import "github.com/dshills/langsync/internal/language"

// Language is the workspace's coarse language vocabulary.
type Language string

// Workspace languages.
const (
	JavaScript Language = "javascript"
	TypeScript Language = "typescript"
	HTML       Language = "html"
	CSS        Language = "css"
)

// Valid reports whether l is part of the workspace vocabulary.
func (l Language) Valid() bool {
	switch l {
	case JavaScript, TypeScript, HTML, CSS:
		return true
	default:
		return false
	}
}

// FromEditor maps the editor's fine-grained vocabulary onto the coarse
// workspace one. The JSX variants collapse into their base language;
// anything unrecognized maps to JavaScript, the workspace's default.
func FromEditor(id language.ID) Language {
	switch id {
	case language.TypeScript, language.TypeScriptJSX:
		return TypeScript
	case language.HTML:
		return HTML
	case language.CSS:
		return CSS
	default:
		return JavaScript
	}
}

// Record is one workspace file.
type Record struct {
	FileID   string
	Name     string
	Content  string
	Language Language
}

// Accessor reads the workspace's active file.
type Accessor interface {
	// ActiveFile returns the active workspace record, or nil when the
	// workspace has none.
	ActiveFile() *Record
}

// AccessorFunc adapts a function to the Accessor interface.
type AccessorFunc func() *Record

// ActiveFile calls f.
func (f AccessorFunc) ActiveFile() *Record {
	return f()
}
