package editor

import (
	"context"

	"github.com/dshills/langsync/internal/language"
)

// Buffer is a handle to one open text model in the hosting editor.
//
// The host owns the buffer's lifetime and may dispose it concurrently with
// any operation here. Every method other than ID and Disposed returns
// ErrBufferDisposed (or a zero value) once the buffer is gone.
type Buffer interface {
	// ID is the buffer's stable internal identity. It does not change when
	// the external identifier is rewritten, and is never reused.
	ID() string

	// URI is the buffer's external identifier.
	URI() string

	// SetURI rewrites the external identifier in place. Hosts that
	// disallow in-place identifier changes return ErrImmutableURI.
	SetURI(uri string) error

	// Language returns the buffer's current language attribute.
	Language() language.ID

	// SetLanguage reassigns the buffer's language attribute.
	SetLanguage(id language.ID) error

	// Content returns the full buffer text.
	Content() string

	// SetContent replaces the full buffer text.
	SetContent(s string) error

	// Edit replaces deleteLen bytes at offset with insert. A zero-length
	// edit still bumps the version, which is what forces the language
	// service to re-parse.
	Edit(offset, deleteLen int, insert string) error

	// Version is a monotonically increasing edit counter.
	Version() int

	// Disposed reports whether the host has torn the buffer down.
	Disposed() bool

	// Dispose releases the buffer. Safe to call more than once.
	Dispose()
}

// Host is the full surface of the hosting editor component used by this
// subsystem: buffer management, the active-buffer pointer, marker storage,
// provider registries, and the typed language service.
type Host interface {
	// CreateBuffer opens a new buffer under uri.
	CreateBuffer(uri string, lang language.ID, content string) (Buffer, error)

	// ActiveBuffer returns the buffer the host currently displays, or nil.
	ActiveBuffer() Buffer

	// SetActiveBuffer redirects the host's active-buffer pointer.
	SetActiveBuffer(b Buffer)

	// Markers returns the published markers for the buffer under owner.
	Markers(b Buffer, owner string) []Marker

	// SetMarkers replaces the markers for the buffer under owner.
	SetMarkers(b Buffer, owner string, ms []Marker)

	// ClearMarkers removes every marker for the buffer under owner.
	ClearMarkers(b Buffer, owner string)

	// RegisterCompletionProvider adds a completion provider for lang.
	RegisterCompletionProvider(lang language.ID, p CompletionProvider)

	// RegisterHoverProvider adds a hover provider for lang.
	RegisterHoverProvider(lang language.ID, p HoverProvider)

	// TypedService returns the typed-language service defaults.
	TypedService() LanguageService
}

// CompilerOptions mirrors the subset of the typed service's compiler
// configuration this subsystem manages.
type CompilerOptions struct {
	Target               string
	Module               string
	JSX                  string
	AllowJS              bool
	CheckJS              bool
	Strict               bool
	NoImplicitAny        bool
	IsolatedModules      bool
	AllowNonTSExtensions bool
}

// DiagnosticsOptions controls which diagnostics the typed service publishes.
type DiagnosticsOptions struct {
	NoSemanticValidation    bool
	NoSyntaxValidation      bool
	NoSuggestionDiagnostics bool
	CodesToIgnore           []int
}

// LanguageService is the typed-language service's configuration surface.
type LanguageService interface {
	// CompilerOptions returns the current compiler configuration.
	CompilerOptions() CompilerOptions

	// SetCompilerOptions replaces the compiler configuration.
	SetCompilerOptions(opts CompilerOptions)

	// DiagnosticsOptions returns the current diagnostics configuration.
	DiagnosticsOptions() DiagnosticsOptions

	// SetDiagnosticsOptions replaces the diagnostics configuration.
	SetDiagnosticsOptions(opts DiagnosticsOptions)

	// EagerSync reports whether the worker eagerly mirrors buffer state.
	EagerSync() bool

	// SetEagerSync toggles eager worker synchronization. Turning it off
	// and back on forces the worker to drop and rebuild its buffer views.
	SetEagerSync(on bool)

	// AddExtraLib registers an ambient declaration source under path.
	AddExtraLib(content, path string)

	// Worker obtains the backing worker handle. The handle is created
	// lazily and obtaining it can fail while the service initializes.
	Worker(ctx context.Context) (Worker, error)

	// Reconfigure resets the service defaults wholesale. Used as the last
	// rung of worker recovery.
	Reconfigure()
}

// Worker is the language service's background analyzer.
type Worker interface {
	// Invalidate drops the worker's cached view of the buffer under uri.
	Invalidate(uri string) error
}
