// Package providers supplies the built-in completion and hover providers
// registered against the host at setup. Provider data ships embedded as
// JSON and is queried in place.
package providers

import (
	"embed"
	"strings"

	"github.com/tidwall/gjson"
	"go.uber.org/zap"

	"github.com/dshills/langsync/internal/editor"
	"github.com/dshills/langsync/internal/language"
)

//go:embed data/snippets.json data/packages.json data/hover.json
var dataFS embed.FS

func mustData(name string) []byte {
	b, err := dataFS.ReadFile("data/" + name)
	if err != nil {
		panic("providers: missing embedded " + name)
	}
	return b
}

// snippetKey maps an editor language to its snippet table. The JSX
// variants share their base language's snippets.
func snippetKey(id language.ID) string {
	switch id {
	case language.TypeScript, language.TypeScriptJSX:
		return "typescript"
	case language.JavaScript, language.JavaScriptJSX:
		return "javascript"
	case language.HTML:
		return "html"
	case language.CSS:
		return "css"
	default:
		return ""
	}
}

// Snippets serves the embedded snippet table for a buffer's language.
type Snippets struct {
	data []byte
}

// NewSnippets loads the embedded snippet table.
func NewSnippets() *Snippets {
	return &Snippets{data: mustData("snippets.json")}
}

// Completions returns snippets whose label starts with prefix. An empty
// prefix returns the whole table for the language.
func (s *Snippets) Completions(b editor.Buffer, prefix string) []editor.CompletionItem {
	key := snippetKey(b.Language())
	if key == "" {
		return nil
	}

	var items []editor.CompletionItem
	lower := strings.ToLower(prefix)
	gjson.GetBytes(s.data, key).ForEach(func(_, v gjson.Result) bool {
		label := v.Get("label").String()
		if !strings.HasPrefix(strings.ToLower(label), lower) {
			return true
		}
		items = append(items, editor.CompletionItem{
			Label:      label,
			Kind:       editor.CompletionKindSnippet,
			Detail:     v.Get("detail").String(),
			InsertText: v.Get("insertText").String(),
		})
		return true
	})
	return items
}

// Packages serves completions for import specifiers from the embedded
// package catalog.
type Packages struct {
	data []byte
}

// NewPackages loads the embedded package catalog.
func NewPackages() *Packages {
	return &Packages{data: mustData("packages.json")}
}

// Completions returns packages whose name starts with prefix.
func (p *Packages) Completions(_ editor.Buffer, prefix string) []editor.CompletionItem {
	var items []editor.CompletionItem
	lower := strings.ToLower(prefix)
	gjson.GetBytes(p.data, "packages").ForEach(func(_, v gjson.Result) bool {
		name := v.Get("name").String()
		if !strings.HasPrefix(name, lower) {
			return true
		}
		items = append(items, editor.CompletionItem{
			Label:      name,
			Kind:       editor.CompletionKindModule,
			Detail:     v.Get("description").String(),
			InsertText: name,
		})
		return true
	})
	return items
}

// StaticHover serves hover documentation for well-known identifiers from
// the embedded doc table.
type StaticHover struct {
	data []byte
}

// NewStaticHover loads the embedded doc table.
func NewStaticHover() *StaticHover {
	return &StaticHover{data: mustData("hover.json")}
}

// Hover returns documentation for word, if the table has it. The word is
// compared in Go rather than embedded in a query path, so words carrying
// quotes or path metacharacters cannot change the query's meaning.
func (h *StaticHover) Hover(_ editor.Buffer, word string) (editor.Hover, bool) {
	var hov editor.Hover
	found := false
	gjson.GetBytes(h.data, "docs").ForEach(func(_, v gjson.Result) bool {
		if v.Get("word").String() != word {
			return true
		}
		hov = editor.Hover{Contents: v.Get("doc").String()}
		found = true
		return false
	})
	return hov, found
}

// Register wires the built-in providers into the host: snippets for every
// supported language, package completions and hover docs for the script
// family.
func Register(host editor.Host, logger *zap.Logger) {
	snippets := NewSnippets()
	packages := NewPackages()
	hover := NewStaticHover()

	all := []language.ID{
		language.JavaScript, language.JavaScriptJSX,
		language.TypeScript, language.TypeScriptJSX,
		language.HTML, language.CSS,
	}
	for _, id := range all {
		host.RegisterCompletionProvider(id, snippets)
	}

	script := []language.ID{
		language.JavaScript, language.JavaScriptJSX,
		language.TypeScript, language.TypeScriptJSX,
	}
	for _, id := range script {
		host.RegisterCompletionProvider(id, packages)
		host.RegisterHoverProvider(id, hover)
	}

	logger.Debug("built-in providers registered",
		zap.Int("languages", len(all)))
}
