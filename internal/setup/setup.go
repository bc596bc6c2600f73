// Package setup applies the configured defaults to a host at startup:
// typed-service options, ambient declaration libs, the built-in
// completion and hover providers, and a worker availability check.
package setup

import (
	"context"

	"go.uber.org/zap"

	"github.com/dshills/langsync/internal/config"
	"github.com/dshills/langsync/internal/editor"
	"github.com/dshills/langsync/internal/modelsync"
	"github.com/dshills/langsync/internal/providers"
)

// Init configures the host's typed service from cfg, registers the
// built-in providers, and verifies a worker handle can be obtained,
// recovering it if not. libDir resolves relative extra-lib file paths.
//
// The returned bool reports worker availability. A false return is a
// degraded start, not a failed one: buffers still open and synchronize,
// and later operations retry worker recovery on their own.
func Init(ctx context.Context, host editor.Host, cfg config.Config, eng *modelsync.Engine, libDir string, logger *zap.Logger) bool {
	svc := host.TypedService()

	svc.SetCompilerOptions(cfg.CompilerOptions())
	svc.SetDiagnosticsOptions(cfg.DiagnosticsOptions())
	svc.SetEagerSync(cfg.Sync.Eager)

	for _, lib := range cfg.ExtraLibs {
		content, err := lib.Resolve(libDir)
		if err != nil {
			logger.Warn("extra lib skipped", zap.String("path", lib.Path), zap.Error(err))
			continue
		}
		svc.AddExtraLib(content, lib.Path)
		logger.Debug("extra lib registered", zap.String("path", lib.Path))
	}

	providers.Register(host, logger)

	if eng.RecoverWorker(ctx, svc) {
		return true
	}
	logger.Warn("language worker unavailable after recovery, continuing degraded")
	return false
}
