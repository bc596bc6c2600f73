package editor

import (
	"fmt"
	"sync"

	"github.com/dshills/langsync/internal/language"
)

// markerKey addresses a marker set by buffer identity and owner namespace.
type markerKey struct {
	bufferID string
	owner    string
}

// MemHost is the in-memory Host implementation used by the CLI and by
// tests. Safe for concurrent use.
type MemHost struct {
	mu         sync.RWMutex
	buffers    map[string]*MemBuffer // by internal ID
	active     *MemBuffer
	markers    map[markerKey][]Marker
	completion map[language.ID][]CompletionProvider
	hover      map[language.ID][]HoverProvider
	service    *MemService

	// immutableURIs makes every buffer refuse in-place identifier
	// changes, exercising the recreate-and-replace repair path.
	immutableURIs bool
}

// MemHostOption configures a MemHost.
type MemHostOption func(*MemHost)

// WithImmutableURIs makes buffers refuse in-place identifier changes.
func WithImmutableURIs() MemHostOption {
	return func(h *MemHost) {
		h.immutableURIs = true
	}
}

// WithService substitutes the typed language service.
func WithService(svc *MemService) MemHostOption {
	return func(h *MemHost) {
		h.service = svc
	}
}

// NewMemHost creates an empty in-memory host.
func NewMemHost(opts ...MemHostOption) *MemHost {
	h := &MemHost{
		buffers:    make(map[string]*MemBuffer),
		markers:    make(map[markerKey][]Marker),
		completion: make(map[language.ID][]CompletionProvider),
		hover:      make(map[language.ID][]HoverProvider),
	}
	for _, opt := range opts {
		opt(h)
	}
	if h.service == nil {
		h.service = NewMemService()
	}
	return h
}

// CreateBuffer opens a new buffer under uri. The first buffer created
// becomes the active buffer.
func (h *MemHost) CreateBuffer(uri string, lang language.ID, content string) (Buffer, error) {
	if !lang.Valid() {
		return nil, ErrUnknownLanguage
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	for _, b := range h.buffers {
		if !b.Disposed() && b.URI() == uri {
			return nil, fmt.Errorf("create %q: %w", uri, ErrDuplicateURI)
		}
	}

	b := newMemBuffer(h, uri, lang, content)
	h.buffers[b.id] = b
	if h.active == nil {
		h.active = b
	}
	return b, nil
}

// ActiveBuffer returns the buffer the host currently displays, or nil.
func (h *MemHost) ActiveBuffer() Buffer {
	h.mu.RLock()
	defer h.mu.RUnlock()
	if h.active == nil {
		return nil
	}
	return h.active
}

// SetActiveBuffer redirects the host's active-buffer pointer.
func (h *MemHost) SetActiveBuffer(b Buffer) {
	h.mu.Lock()
	defer h.mu.Unlock()
	mb, ok := b.(*MemBuffer)
	if !ok {
		h.active = nil
		return
	}
	h.active = mb
}

// Markers returns the published markers for the buffer under owner.
func (h *MemHost) Markers(b Buffer, owner string) []Marker {
	if b == nil {
		return nil
	}
	h.mu.RLock()
	defer h.mu.RUnlock()
	ms := h.markers[markerKey{b.ID(), owner}]
	out := make([]Marker, len(ms))
	copy(out, ms)
	return out
}

// SetMarkers replaces the markers for the buffer under owner.
func (h *MemHost) SetMarkers(b Buffer, owner string, ms []Marker) {
	if b == nil {
		return
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	key := markerKey{b.ID(), owner}
	if len(ms) == 0 {
		delete(h.markers, key)
		return
	}
	stored := make([]Marker, len(ms))
	copy(stored, ms)
	h.markers[key] = stored
}

// ClearMarkers removes every marker for the buffer under owner.
func (h *MemHost) ClearMarkers(b Buffer, owner string) {
	if b == nil {
		return
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.markers, markerKey{b.ID(), owner})
}

// RegisterCompletionProvider adds a completion provider for lang.
func (h *MemHost) RegisterCompletionProvider(lang language.ID, p CompletionProvider) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.completion[lang] = append(h.completion[lang], p)
}

// RegisterHoverProvider adds a hover provider for lang.
func (h *MemHost) RegisterHoverProvider(lang language.ID, p HoverProvider) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.hover[lang] = append(h.hover[lang], p)
}

// CompletionProviders returns the providers registered for lang.
func (h *MemHost) CompletionProviders(lang language.ID) []CompletionProvider {
	h.mu.RLock()
	defer h.mu.RUnlock()
	out := make([]CompletionProvider, len(h.completion[lang]))
	copy(out, h.completion[lang])
	return out
}

// HoverProviders returns the providers registered for lang.
func (h *MemHost) HoverProviders(lang language.ID) []HoverProvider {
	h.mu.RLock()
	defer h.mu.RUnlock()
	out := make([]HoverProvider, len(h.hover[lang]))
	copy(out, h.hover[lang])
	return out
}

// TypedService returns the typed-language service defaults.
func (h *MemHost) TypedService() LanguageService {
	return h.service
}

// Buffers returns the live buffers in no particular order.
func (h *MemHost) Buffers() []Buffer {
	h.mu.RLock()
	defer h.mu.RUnlock()
	out := make([]Buffer, 0, len(h.buffers))
	for _, b := range h.buffers {
		out = append(out, b)
	}
	return out
}

// dropBuffer removes a disposed buffer's bookkeeping. The active-buffer
// pointer is cleared rather than reassigned; picking a replacement is the
// caller's job during resource replacement.
func (h *MemHost) dropBuffer(b *MemBuffer) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.buffers, b.id)
	delete(h.markers, markerKey{b.id, OwnerTypeScript})
	delete(h.markers, markerKey{b.id, OwnerJavaScript})
	if h.active == b {
		h.active = nil
	}
}
