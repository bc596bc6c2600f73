package modelsync

import (
	"context"

	"go.uber.org/zap"

	"github.com/dshills/langsync/internal/editor"
)

// RecoverWorker drives the setup-time recovery ladder for a language
// service whose worker handle cannot be obtained: toggle eager sync off,
// wait, reassert minimal required options, toggle back on, wait, and try
// the worker again. If that fails, the service defaults are reconfigured
// wholesale and the sequence repeats once.
//
// The returned bool reports whether a worker handle was obtained. A false
// return leaves setup in a degraded state; later per-buffer operations
// retry their own local recovery rather than failing outright.
func (e *Engine) RecoverWorker(ctx context.Context, svc editor.LanguageService) bool {
	const maxAttempts = 2

	for attempt := 1; attempt <= maxAttempts; attempt++ {
		if attempt > 1 {
			e.logger.Info("reconfiguring language service defaults before retry")
			svc.Reconfigure()
		}

		svc.SetEagerSync(false)
		if err := e.sched.Sleep(ctx, recoverWait); err != nil {
			return false
		}

		svc.SetCompilerOptions(minimalOptions(svc.CompilerOptions()))
		svc.SetEagerSync(true)
		if err := e.sched.Sleep(ctx, recoverWait); err != nil {
			return false
		}

		wctx, cancel := context.WithTimeout(ctx, workerObtainTimeout)
		w, err := svc.Worker(wctx)
		cancel()
		if err == nil && w != nil {
			if attempt > 1 {
				e.logger.Info("language worker recovered", zap.Int("attempt", attempt))
			}
			return true
		}
		e.logger.Warn("language worker unavailable",
			zap.Int("attempt", attempt),
			zap.Error(err))
	}
	return false
}

// minimalOptions keeps the caller's configuration but forces the options
// the worker needs to accept mixed JS/TS content at all.
func minimalOptions(opts editor.CompilerOptions) editor.CompilerOptions {
	opts.AllowJS = true
	opts.AllowNonTSExtensions = true
	opts.NoImplicitAny = false
	return opts
}
