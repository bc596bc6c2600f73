package modelsync

import (
	"context"

	"go.uber.org/zap"

	"github.com/dshills/langsync/internal/classify"
	"github.com/dshills/langsync/internal/editor"
	"github.com/dshills/langsync/internal/language"
	"github.com/dshills/langsync/internal/workspace"
)

// Apply makes buf and the typed language service agree that the buffer's
// language is target. The returned bool reports whether the language
// attribute matched target when the call returned; a scheduled retry may
// still converge afterwards.
//
// Apply never propagates a failure: every step degrades to "leave current
// state, log a warning".
func (e *Engine) Apply(buf editor.Buffer, host editor.Host, target language.ID, fileID string) bool {
	if !editor.IsLive(buf) {
		e.logger.Debug("apply skipped: buffer not live", zap.String("target", string(target)))
		return false
	}

	// Hot path: nothing to do, and nothing touched.
	if buf.Language() == target {
		return true
	}

	e.reassign(buf, target)
	matched := editor.IsLive(buf) && buf.Language() == target

	if matched {
		e.finishApply(buf, host, target, fileID)
		return true
	}

	// One retry after a short delay, then accept whatever the final
	// state is.
	e.sched.AfterFunc(retryDelay, func() {
		if !editor.IsLive(buf) {
			return
		}
		if buf.Language() != target {
			e.reassign(buf, target)
		}
		if editor.IsLive(buf) && buf.Language() != target {
			e.logger.Warn("language reassignment did not hold after retry",
				zap.String("uri", buf.URI()),
				zap.String("target", string(target)),
				zap.String("actual", string(buf.Language())))
		}
		e.finishApply(buf, host, target, fileID)
	})
	return false
}

// reassign instructs the editor to change the buffer's language,
// swallowing and logging any failure.
func (e *Engine) reassign(buf editor.Buffer, target language.ID) {
	defer func() {
		if r := recover(); r != nil {
			e.logger.Warn("language reassignment panicked", zap.Any("panic", r))
		}
	}()
	if err := buf.SetLanguage(target); err != nil {
		e.logger.Warn("language reassignment failed",
			zap.String("target", string(target)),
			zap.Error(err))
	}
}

// finishApply runs the post-reassignment steps: worker refresh and
// revalidation scheduling, the one-shot sync notification, and the
// delayed post-hoc validation.
func (e *Engine) finishApply(buf editor.Buffer, host editor.Host, target language.ID, fileID string) {
	svc := host.TypedService()

	// The typed family needs the worker's cached view dropped as well;
	// the untyped family only needs revalidation.
	if target.Typed() {
		e.sched.AfterFunc(workerRefreshDelay, func() {
			if !editor.IsLive(buf) {
				return
			}
			e.refreshWorker(buf, svc)
		})
	}
	e.sched.AfterFunc(revalidateDelay, func() {
		if !editor.IsLive(buf) {
			return
		}
		e.ForceRevalidate(buf, host)
	})

	e.notifySync(fileID, workspace.FromEditor(target))

	// Post-hoc validation: catch a service that silently dropped the
	// change. Log only; a concurrent apply may legitimately own the
	// buffer by the time this fires.
	e.sched.AfterFunc(validateDelay, func() {
		if !editor.IsLive(buf) {
			return
		}
		if got := buf.Language(); got != target {
			e.logger.Warn("language change did not stick",
				zap.String("uri", buf.URI()),
				zap.String("target", string(target)),
				zap.String("actual", string(got)))
		}
	})
}

// refreshWorker drops the worker's cached view of buf. An unavailable
// worker is logged, not escalated; the next per-buffer operation retries
// its own recovery.
func (e *Engine) refreshWorker(buf editor.Buffer, svc editor.LanguageService) {
	ctx, cancel := context.WithTimeout(context.Background(), workerObtainTimeout)
	defer cancel()

	w, err := svc.Worker(ctx)
	if err != nil {
		e.logger.Warn("worker refresh skipped", zap.String("uri", buf.URI()), zap.Error(err))
		return
	}
	if err := w.Invalidate(buf.URI()); err != nil {
		e.logger.Warn("worker invalidation failed", zap.String("uri", buf.URI()), zap.Error(err))
	}
}

// DetectAndSetLanguage classifies the buffer's content (biased by
// filename when given) and applies the verdict. The verdict is returned
// even when the buffer is gone, so callers can still inspect the
// classification.
func (e *Engine) DetectAndSetLanguage(buf editor.Buffer, host editor.Host, filename, fileID string) classify.Verdict {
	var content string
	if editor.IsLive(buf) {
		content = buf.Content()
	}
	v := classify.Classify(content, filename)
	e.Apply(buf, host, v.Language, fileID)
	return v
}

// AutoUpdateLanguage runs the full reconciliation: workspace sync first,
// classification fallback second. A detection already in flight makes the
// call a no-op (re-entrancy guard). onDetectingChanged, when non-nil, is
// invoked with true when detection starts and false when it settles.
func (e *Engine) AutoUpdateLanguage(buf editor.Buffer, host editor.Host, filename, fileID string, onDetectingChanged func(bool)) {
	if !e.detecting.CompareAndSwap(false, true) {
		return
	}

	notify := func(v bool) {
		if onDetectingChanged == nil {
			return
		}
		defer func() {
			if r := recover(); r != nil {
				e.logger.Warn("detection callback panicked", zap.Any("panic", r))
			}
		}()
		onDetectingChanged(v)
	}

	notify(true)
	if !e.SyncWithWorkspace(buf, host) {
		e.DetectAndSetLanguage(buf, host, filename, fileID)
	}

	e.sched.AfterFunc(detectSettleDelay, func() {
		e.detecting.Store(false)
		notify(false)
	})
}
