package editor

import (
	"context"
	"sync"
)

// DefaultCompilerOptions returns the compiler configuration the service
// starts with and returns to on Reconfigure.
func DefaultCompilerOptions() CompilerOptions {
	return CompilerOptions{
		Target:               "es2020",
		Module:               "esnext",
		JSX:                  "react",
		AllowJS:              true,
		AllowNonTSExtensions: true,
	}
}

// MemService is the in-memory LanguageService implementation. It simulates
// worker availability, including injectable obtain failures so the
// recovery ladder can be exercised. Safe for concurrent use.
type MemService struct {
	mu        sync.Mutex
	compiler  CompilerOptions
	diags     DiagnosticsOptions
	eager     bool
	extraLibs map[string]string
	worker    *MemWorker

	// workerFailures is the number of Worker calls left to fail.
	workerFailures int
	reconfigures   int
}

// NewMemService creates a service with default options and an available
// worker.
func NewMemService() *MemService {
	return &MemService{
		compiler:  DefaultCompilerOptions(),
		eager:     true,
		extraLibs: make(map[string]string),
		worker:    &MemWorker{},
	}
}

// CompilerOptions returns the current compiler configuration.
func (s *MemService) CompilerOptions() CompilerOptions {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.compiler
}

// SetCompilerOptions replaces the compiler configuration.
func (s *MemService) SetCompilerOptions(opts CompilerOptions) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.compiler = opts
}

// DiagnosticsOptions returns the current diagnostics configuration.
func (s *MemService) DiagnosticsOptions() DiagnosticsOptions {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.diags
}

// SetDiagnosticsOptions replaces the diagnostics configuration.
func (s *MemService) SetDiagnosticsOptions(opts DiagnosticsOptions) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.diags = opts
}

// EagerSync reports whether the worker eagerly mirrors buffer state.
func (s *MemService) EagerSync() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.eager
}

// SetEagerSync toggles eager worker synchronization.
func (s *MemService) SetEagerSync(on bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.eager = on
}

// AddExtraLib registers an ambient declaration source under path.
func (s *MemService) AddExtraLib(content, path string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.extraLibs[path] = content
}

// ExtraLib returns the ambient declaration source registered under path.
func (s *MemService) ExtraLib(path string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	content, ok := s.extraLibs[path]
	return content, ok
}

// Worker obtains the backing worker handle, honoring injected failures
// and context cancellation.
func (s *MemService) Worker(ctx context.Context) (Worker, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.workerFailures > 0 {
		s.workerFailures--
		return nil, ErrWorkerUnavailable
	}
	return s.worker, nil
}

// Reconfigure resets the service defaults wholesale.
func (s *MemService) Reconfigure() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.compiler = DefaultCompilerOptions()
	s.diags = DiagnosticsOptions{}
	s.eager = true
	s.reconfigures++
}

// FailWorker makes the next n Worker calls fail. Test and demo hook.
func (s *MemService) FailWorker(n int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.workerFailures = n
}

// Reconfigures returns how many times Reconfigure has run.
func (s *MemService) Reconfigures() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.reconfigures
}

// MemWorker is the in-memory Worker implementation. It records the
// identifiers it was asked to invalidate.
type MemWorker struct {
	mu          sync.Mutex
	invalidated []string
}

// Invalidate drops the worker's cached view of the buffer under uri.
func (w *MemWorker) Invalidate(uri string) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.invalidated = append(w.invalidated, uri)
	return nil
}

// Invalidated returns the identifiers invalidated so far, oldest first.
func (w *MemWorker) Invalidated() []string {
	w.mu.Lock()
	defer w.mu.Unlock()
	out := make([]string, len(w.invalidated))
	copy(out, w.invalidated)
	return out
}
