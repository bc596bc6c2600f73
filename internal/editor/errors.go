package editor

import "errors"

// Standard errors returned by editor operations.
var (
	// ErrBufferDisposed indicates the buffer has been torn down by the host.
	ErrBufferDisposed = errors.New("buffer disposed")

	// ErrImmutableURI indicates the host disallows in-place identifier
	// changes; callers must recreate the buffer under the new identifier.
	ErrImmutableURI = errors.New("buffer identifier is immutable")

	// ErrWorkerUnavailable indicates the language service's worker handle
	// could not be obtained.
	ErrWorkerUnavailable = errors.New("language worker unavailable")

	// ErrDuplicateURI indicates a buffer already exists under the identifier.
	ErrDuplicateURI = errors.New("buffer already exists for identifier")

	// ErrInvalidEdit indicates an edit range falls outside the buffer.
	ErrInvalidEdit = errors.New("edit out of range")

	// ErrUnknownLanguage indicates a language id outside the supported set.
	ErrUnknownLanguage = errors.New("unknown language id")
)
