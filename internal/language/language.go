// Package language defines the language-id vocabulary shared by the
// classifier, the editor abstraction, and the synchronization engine.
//
// Two vocabularies exist: the fine-grained editor ids (which distinguish
// the JSX variants) and the coarser workspace vocabulary defined in the
// workspace package. Mapping between them is one-way; the editor side is
// always the richer one.
package language

import (
	"path/filepath"
	"strings"
)

// ID identifies a language as the hosting editor component understands it.
type ID string

// Editor language ids.
const (
	JavaScript    ID = "javascript"
	JavaScriptJSX ID = "javascriptreact"
	TypeScript    ID = "typescript"
	TypeScriptJSX ID = "typescriptreact"
	HTML          ID = "html"
	CSS           ID = "css"
	PlainText     ID = "plaintext"
)

// Valid reports whether the id is one this subsystem knows how to handle.
func (id ID) Valid() bool {
	switch id {
	case JavaScript, JavaScriptJSX, TypeScript, TypeScriptJSX, HTML, CSS, PlainText:
		return true
	default:
		return false
	}
}

// Typed reports whether the id belongs to the statically-typed family.
func (id ID) Typed() bool {
	return id == TypeScript || id == TypeScriptJSX
}

// JSX reports whether the id is one of the JSX variants.
func (id ID) JSX() bool {
	return id == JavaScriptJSX || id == TypeScriptJSX
}

// Extension returns the canonical file extension for the id, including the
// leading dot.
func (id ID) Extension() string {
	switch id {
	case TypeScript:
		return ".ts"
	case TypeScriptJSX:
		return ".tsx"
	case JavaScriptJSX:
		return ".jsx"
	case HTML:
		return ".html"
	case CSS:
		return ".css"
	case PlainText:
		return ".txt"
	default:
		return ".js"
	}
}

// extensions maps every recognized extension to its language id.
// Lowercase keys with leading dot.
var extensions = map[string]ID{
	".js":   JavaScript,
	".mjs":  JavaScript,
	".cjs":  JavaScript,
	".jsx":  JavaScriptJSX,
	".ts":   TypeScript,
	".mts":  TypeScript,
	".cts":  TypeScript,
	".tsx":  TypeScriptJSX,
	".html": HTML,
	".htm":  HTML,
	".css":  CSS,
	".txt":  PlainText,
}

// ForExtension returns the language registered for ext. The leading dot is
// optional and matching is case-insensitive.
func ForExtension(ext string) (ID, bool) {
	ext = strings.ToLower(strings.TrimSpace(ext))
	if ext == "" || ext == "." {
		return "", false
	}
	if !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	id, ok := extensions[ext]
	return id, ok
}

// ForFilename returns the language registered for the file's extension.
func ForFilename(name string) (ID, bool) {
	return ForExtension(filepath.Ext(name))
}

// ExtensionConsistent reports whether uri carries an extension acceptable
// for the id. The typed family requires its canonical extension; the
// untyped family accepts any of its registered extensions.
func ExtensionConsistent(uri string, id ID) bool {
	got, ok := ForExtension(filepath.Ext(uri))
	if !ok {
		return false
	}
	if id.Typed() {
		return strings.HasSuffix(strings.ToLower(uri), id.Extension())
	}
	return got == id
}
