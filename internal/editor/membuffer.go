package editor

import (
	"sync"

	"github.com/google/uuid"

	"github.com/dshills/langsync/internal/language"
)

// MemBuffer is the in-memory Buffer implementation. All methods are
// thread-safe.
type MemBuffer struct {
	mu       sync.RWMutex
	id       string
	uri      string
	language language.ID
	content  string
	version  int
	disposed bool
	host     *MemHost
}

func newMemBuffer(host *MemHost, uri string, lang language.ID, content string) *MemBuffer {
	return &MemBuffer{
		id:       uuid.NewString(),
		uri:      uri,
		language: lang,
		content:  content,
		version:  1,
		host:     host,
	}
}

// ID returns the buffer's stable internal identity.
func (b *MemBuffer) ID() string {
	return b.id
}

// URI returns the buffer's external identifier.
func (b *MemBuffer) URI() string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.uri
}

// SetURI rewrites the external identifier in place.
// Hosts created with WithImmutableURIs refuse and return ErrImmutableURI.
func (b *MemBuffer) SetURI(uri string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.disposed {
		return ErrBufferDisposed
	}
	if b.host != nil && b.host.immutableURIs {
		return ErrImmutableURI
	}
	b.uri = uri
	return nil
}

// Language returns the buffer's current language attribute.
func (b *MemBuffer) Language() language.ID {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.language
}

// SetLanguage reassigns the buffer's language attribute.
func (b *MemBuffer) SetLanguage(id language.ID) error {
	if !id.Valid() {
		return ErrUnknownLanguage
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.disposed {
		return ErrBufferDisposed
	}
	b.language = id
	b.version++
	return nil
}

// Content returns the full buffer text.
func (b *MemBuffer) Content() string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.content
}

// SetContent replaces the full buffer text.
func (b *MemBuffer) SetContent(s string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.disposed {
		return ErrBufferDisposed
	}
	b.content = s
	b.version++
	return nil
}

// Edit replaces deleteLen bytes at offset with insert.
// A zero-length edit still bumps the version.
func (b *MemBuffer) Edit(offset, deleteLen int, insert string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.disposed {
		return ErrBufferDisposed
	}
	if offset < 0 || deleteLen < 0 || offset+deleteLen > len(b.content) {
		return ErrInvalidEdit
	}
	b.content = b.content[:offset] + insert + b.content[offset+deleteLen:]
	b.version++
	return nil
}

// Version returns the monotonically increasing edit counter.
func (b *MemBuffer) Version() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.version
}

// Disposed reports whether the buffer has been torn down.
func (b *MemBuffer) Disposed() bool {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.disposed
}

// Dispose releases the buffer and drops its markers from the host.
// Safe to call more than once.
func (b *MemBuffer) Dispose() {
	b.mu.Lock()
	if b.disposed {
		b.mu.Unlock()
		return
	}
	b.disposed = true
	host := b.host
	b.mu.Unlock()

	if host != nil {
		host.dropBuffer(b)
	}
}
