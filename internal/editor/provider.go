package editor

// CompletionItemKind categorizes a completion item.
type CompletionItemKind int

// Completion item kinds used by this subsystem's providers.
const (
	CompletionKindText CompletionItemKind = iota
	CompletionKindSnippet
	CompletionKindModule
	CompletionKindKeyword
)

// CompletionItem is one entry offered by a completion provider.
type CompletionItem struct {
	Label      string
	Kind       CompletionItemKind
	Detail     string
	InsertText string
}

// CompletionProvider serves completion items for a prefix.
type CompletionProvider interface {
	// Completions returns the items matching prefix, best first.
	Completions(b Buffer, prefix string) []CompletionItem
}

// Hover is the documentation shown for a word.
type Hover struct {
	Contents string
}

// HoverProvider serves hover documentation for a word.
type HoverProvider interface {
	// Hover returns documentation for word, if any.
	Hover(b Buffer, word string) (Hover, bool)
}
