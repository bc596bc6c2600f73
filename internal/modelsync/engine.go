package modelsync

import (
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"github.com/dshills/langsync/internal/schedule"
	"github.com/dshills/langsync/internal/workspace"
)

// Fixed delays for scheduled continuations. Deliberately not
// configurable; every ladder has a hard-coded maximum depth and these
// bound its total duration.
const (
	// retryDelay precedes the single reassignment retry.
	retryDelay = 50 * time.Millisecond

	// workerRefreshDelay precedes the worker-cache refresh after a
	// typed-family language change.
	workerRefreshDelay = 10 * time.Millisecond

	// revalidateDelay precedes the scheduled revalidation pass.
	revalidateDelay = 100 * time.Millisecond

	// eagerToggleDelay separates the off/on halves of the basic
	// eager-sync toggle.
	eagerToggleDelay = 80 * time.Millisecond

	// repairToggleDelay is the longer off/on separation used inside the
	// deep-repair ladder.
	repairToggleDelay = 200 * time.Millisecond

	// repairSettleDelay separates a repair rung from its success check.
	repairSettleDelay = 50 * time.Millisecond

	// validateDelay precedes the delayed post-hoc validation after an
	// apply and the final re-inspection of the repair ladder.
	validateDelay = 300 * time.Millisecond

	// detectSettleDelay holds the re-entrancy guard of
	// AutoUpdateLanguage closed after a detection pass.
	detectSettleDelay = 200 * time.Millisecond

	// recoverWait separates the steps of the worker-recovery ladder.
	recoverWait = 150 * time.Millisecond

	// workerObtainTimeout bounds one attempt to obtain the worker handle.
	workerObtainTimeout = 2 * time.Second
)

// SyncCallback receives workspace-language change notifications.
// At most one callback is active at a time.
type SyncCallback func(fileID string, lang workspace.Language)

// Engine coordinates language detection, application, and repair for
// editor buffers. The zero value is not usable; construct with New.
//
// The Engine holds the process-wide mutable slots the subsystem needs
// (sync callback, workspace accessor) so they can be replaced in tests
// without true global state.
type Engine struct {
	mu       sync.Mutex
	callback SyncCallback
	accessor workspace.Accessor

	sched  schedule.Scheduler
	logger *zap.Logger

	// detecting is the re-entrancy guard for AutoUpdateLanguage.
	detecting atomic.Bool
}

// Option configures an Engine.
type Option func(*Engine)

// WithScheduler substitutes the delay scheduler.
func WithScheduler(s schedule.Scheduler) Option {
	return func(e *Engine) {
		e.sched = s
	}
}

// WithLogger sets the engine's logger.
func WithLogger(logger *zap.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

// WithWorkspaceAccessor injects the workspace accessor.
func WithWorkspaceAccessor(a workspace.Accessor) Option {
	return func(e *Engine) {
		e.accessor = a
	}
}

// New creates an Engine. Defaults: wall-clock scheduling, no logging, no
// workspace accessor.
func New(opts ...Option) *Engine {
	e := &Engine{
		sched:  schedule.Timers{},
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// RegisterSyncCallback installs fn as the sync callback. The slot holds
// at most one callback; the last registration wins and there is no
// teardown.
func (e *Engine) RegisterSyncCallback(fn SyncCallback) {
	e.mu.Lock()
	e.callback = fn
	e.mu.Unlock()
}

// SetWorkspaceAccessor replaces the workspace accessor.
func (e *Engine) SetWorkspaceAccessor(a workspace.Accessor) {
	e.mu.Lock()
	e.accessor = a
	e.mu.Unlock()
}

func (e *Engine) syncCallback() SyncCallback {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.callback
}

func (e *Engine) workspaceAccessor() workspace.Accessor {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.accessor
}

// notifySync invokes the registered callback once with the workspace
// translation of target. Callback panics are caught and logged, never
// propagated.
func (e *Engine) notifySync(fileID string, lang workspace.Language) {
	fn := e.syncCallback()
	if fn == nil || fileID == "" {
		return
	}
	defer func() {
		if r := recover(); r != nil {
			e.logger.Warn("sync callback panicked",
				zap.String("file_id", fileID),
				zap.Any("panic", r))
		}
	}()
	fn(fileID, lang)
}
