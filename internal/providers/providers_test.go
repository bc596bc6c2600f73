package providers

import (
	"strings"
	"testing"

	"go.uber.org/zap"

	"github.com/dshills/langsync/internal/editor"
	"github.com/dshills/langsync/internal/language"
)

func testBuffer(t *testing.T, host *editor.MemHost, lang language.ID) editor.Buffer {
	t.Helper()
	uri := "file:///" + strings.ReplaceAll(t.Name(), "/", "_") + lang.Extension()
	buf, err := host.CreateBuffer(uri, lang, "")
	if err != nil {
		t.Fatalf("CreateBuffer: %v", err)
	}
	return buf
}

func TestSnippetsPrefixMatch(t *testing.T) {
	host := editor.NewMemHost()
	s := NewSnippets()

	tests := []struct {
		name   string
		lang   language.ID
		prefix string
		want   []string
	}{
		{"ts interface", language.TypeScript, "iface", []string{"iface"}},
		{"tsx shares ts table", language.TypeScriptJSX, "iface", []string{"iface"}},
		{"js log", language.JavaScript, "log", []string{"log"}},
		{"jsx shares js table", language.JavaScriptJSX, "f", []string{"func", "foreach", "fetch"}},
		{"css", language.CSS, "flex", []string{"flex"}},
		{"case insensitive", language.JavaScript, "LOG", []string{"log"}},
		{"no match", language.TypeScript, "zzz", nil},
		{"plaintext has no table", language.PlainText, "log", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := testBuffer(t, host, tt.lang)
			items := s.Completions(buf, tt.prefix)
			if len(items) != len(tt.want) {
				t.Fatalf("got %d items, want %d: %+v", len(items), len(tt.want), items)
			}
			for i, w := range tt.want {
				if items[i].Label != w {
					t.Errorf("item %d label = %q, want %q", i, items[i].Label, w)
				}
				if items[i].Kind != editor.CompletionKindSnippet {
					t.Errorf("item %d kind = %v", i, items[i].Kind)
				}
				if items[i].InsertText == "" {
					t.Errorf("item %d has empty insert text", i)
				}
			}
		})
	}
}

func TestSnippetsEmptyPrefixReturnsTable(t *testing.T) {
	host := editor.NewMemHost()
	buf := testBuffer(t, host, language.HTML)

	items := NewSnippets().Completions(buf, "")
	if len(items) == 0 {
		t.Fatal("empty prefix returned nothing")
	}
}

func TestPackagesPrefixMatch(t *testing.T) {
	host := editor.NewMemHost()
	buf := testBuffer(t, host, language.TypeScript)
	p := NewPackages()

	items := p.Completions(buf, "react")
	if len(items) != 2 {
		t.Fatalf("got %d items, want react and react-dom: %+v", len(items), items)
	}
	if items[0].Label != "react" || items[1].Label != "react-dom" {
		t.Errorf("labels = %q, %q", items[0].Label, items[1].Label)
	}
	if items[0].Kind != editor.CompletionKindModule {
		t.Errorf("kind = %v", items[0].Kind)
	}

	if got := p.Completions(buf, "no-such-package"); got != nil {
		t.Errorf("unexpected matches: %+v", got)
	}
}

func TestStaticHover(t *testing.T) {
	host := editor.NewMemHost()
	buf := testBuffer(t, host, language.JavaScript)
	h := NewStaticHover()

	hov, ok := h.Hover(buf, "fetch")
	if !ok {
		t.Fatal("no hover for fetch")
	}
	if hov.Contents == "" {
		t.Error("empty hover contents")
	}

	if _, ok := h.Hover(buf, "unknownWord"); ok {
		t.Error("hover invented documentation")
	}
}

func TestStaticHoverOddWords(t *testing.T) {
	host := editor.NewMemHost()
	buf := testBuffer(t, host, language.JavaScript)
	h := NewStaticHover()

	// Words carrying quotes or query metacharacters must simply miss,
	// never distort the lookup.
	for _, word := range []string{
		`fetch"`,
		`"fetch"`,
		`fetch")`,
		`#(word=="fetch")`,
		"docs.0.word",
		"*",
	} {
		if _, ok := h.Hover(buf, word); ok {
			t.Errorf("hover matched %q", word)
		}
	}
}

func TestRegister(t *testing.T) {
	host := editor.NewMemHost()
	Register(host, zap.NewNop())

	// Every supported language gets snippet completion.
	for _, id := range []language.ID{
		language.JavaScript, language.JavaScriptJSX,
		language.TypeScript, language.TypeScriptJSX,
		language.HTML, language.CSS,
	} {
		if len(host.CompletionProviders(id)) == 0 {
			t.Errorf("no completion providers for %s", id)
		}
	}

	// Script languages additionally get packages and hover.
	if len(host.CompletionProviders(language.TypeScript)) != 2 {
		t.Errorf("typescript providers = %d, want 2", len(host.CompletionProviders(language.TypeScript)))
	}
	if len(host.HoverProviders(language.JavaScript)) != 1 {
		t.Errorf("javascript hover providers = %d, want 1", len(host.HoverProviders(language.JavaScript)))
	}

	// Markup languages get snippets only.
	if len(host.CompletionProviders(language.CSS)) != 1 {
		t.Errorf("css providers = %d, want 1", len(host.CompletionProviders(language.CSS)))
	}
	if len(host.HoverProviders(language.HTML)) != 0 {
		t.Errorf("html hover providers = %d, want 0", len(host.HoverProviders(language.HTML)))
	}
}
