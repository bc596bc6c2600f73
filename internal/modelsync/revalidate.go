package modelsync

import (
	"time"

	"go.uber.org/zap"

	"github.com/dshills/langsync/internal/editor"
)

// ForceRevalidate forces the language service to re-analyze buf.
//
// A no-op edit bumps the buffer version, which the service treats as a
// change and re-parses. For the typed family the eager-sync flag is
// additionally toggled off and back on after a short delay, forcing the
// backing worker to drop and rebuild its view of the buffer.
func (e *Engine) ForceRevalidate(buf editor.Buffer, host editor.Host) {
	if !editor.IsLive(buf) {
		return
	}

	if err := buf.Edit(0, 0, ""); err != nil {
		e.logger.Warn("revalidation edit failed", zap.String("uri", buf.URI()), zap.Error(err))
	}

	if !buf.Language().Typed() {
		return
	}

	e.toggleEagerSync(host.TypedService(), eagerToggleDelay)
}

// toggleEagerSync turns eager worker synchronization off and schedules it
// back on after delay. The flag is service-scoped, so it is restored even
// if the triggering buffer is torn down in between.
func (e *Engine) toggleEagerSync(svc editor.LanguageService, delay time.Duration) {
	svc.SetEagerSync(false)
	e.sched.AfterFunc(delay, func() {
		svc.SetEagerSync(true)
	})
}
