package modelsync

import (
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/dshills/langsync/internal/editor"
	"github.com/dshills/langsync/internal/language"
)

// TypeSyntaxInJSCode is the diagnostic code the typed service publishes
// when type syntax appears in a file it considers plain JavaScript, the
// symptom of a language/content mismatch this ladder exists to repair.
const TypeSyntaxInJSCode = "8010"

const typeSyntaxInJSMessage = "Type annotations can only be used in TypeScript files"

// HasCrossLanguageDiagnostic reports whether the buffer currently carries
// the cross-language diagnostic under either service namespace.
func HasCrossLanguageDiagnostic(host editor.Host, buf editor.Buffer) bool {
	for _, owner := range []string{editor.OwnerTypeScript, editor.OwnerJavaScript} {
		for _, m := range host.Markers(buf, owner) {
			if m.Code == TypeSyntaxInJSCode || strings.Contains(m.Message, typeSyntaxInJSMessage) {
				return true
			}
		}
	}
	return false
}

// repairState is the ephemeral per-operation state of one repair ladder.
// Discarded after completion or exhaustion, never persisted.
type repairState struct {
	buf    editor.Buffer
	host   editor.Host
	fileID string
	target language.ID
}

// remedy is one rung of the repair ladder.
type remedy struct {
	name string
	run  func(*Engine, *repairState)

	// settle separates the rung from its success check.
	settle time.Duration
}

// repairLadder is the fixed remedy sequence, cheapest first. Each rung
// runs only while the symptomatic diagnostic persists and the buffer is
// still live.
var repairLadder = []remedy{
	{"fix-extension", (*Engine).remedyFixExtension, repairSettleDelay},
	{"clear-markers", (*Engine).remedyClearMarkers, repairSettleDelay},
	{"relax-compiler-options", (*Engine).remedyRelaxOptions, repairSettleDelay},
	{"toggle-eager-sync", (*Engine).remedyToggleEagerSync, repairToggleDelay + repairSettleDelay},
	{"force-reassign", (*Engine).remedyForceReassign, validateDelay},
}

// DeepRepair runs the remedy ladder against a buffer showing the
// cross-language diagnostic. It returns false when the buffer is not
// live; otherwise it reports whether the buffer's external identifier was
// consistent with its language when the call returned. Later rungs run as
// scheduled continuations and their outcome is logged, never raised.
func (e *Engine) DeepRepair(buf editor.Buffer, host editor.Host, fileID string) bool {
	if !editor.IsLive(buf) {
		return false
	}

	st := &repairState{buf: buf, host: host, fileID: fileID, target: buf.Language()}
	if e.repaired(st) {
		return true
	}

	e.logger.Info("deep repair started",
		zap.String("uri", buf.URI()),
		zap.String("language", string(st.target)),
		zap.String("file_id", fileID))

	e.runRemedy(st, 0)

	return editor.IsLive(st.buf) && language.ExtensionConsistent(st.buf.URI(), st.target)
}

// runRemedy executes rung i, then schedules the success check that
// decides between stopping and the next rung. The ladder depth is the
// hard bound on repair attempts.
func (e *Engine) runRemedy(st *repairState, i int) {
	if i >= len(repairLadder) {
		return
	}
	if !editor.IsLive(st.buf) {
		return
	}

	r := repairLadder[i]
	r.run(e, st)

	e.sched.AfterFunc(r.settle, func() {
		if !editor.IsLive(st.buf) {
			return
		}
		if e.repaired(st) {
			e.logger.Info("deep repair converged",
				zap.String("remedy", r.name),
				zap.String("uri", st.buf.URI()))
			return
		}
		if i+1 >= len(repairLadder) {
			e.logger.Warn("deep repair exhausted, accepting current state",
				zap.String("uri", st.buf.URI()),
				zap.String("language", string(st.target)))
			return
		}
		e.runRemedy(st, i+1)
	})
}

// repaired is the ladder's success predicate: the symptomatic diagnostic
// is gone and the external identifier carries the expected extension.
func (e *Engine) repaired(st *repairState) bool {
	return !HasCrossLanguageDiagnostic(st.host, st.buf) &&
		language.ExtensionConsistent(st.buf.URI(), st.target)
}

// remedyFixExtension aligns the buffer's external identifier with its
// assigned language, recreating the buffer when the host refuses in-place
// identifier changes.
func (e *Engine) remedyFixExtension(st *repairState) {
	buf := st.buf
	if language.ExtensionConsistent(buf.URI(), st.target) {
		return
	}

	newURI := replaceExtension(buf.URI(), st.target.Extension())
	err := buf.SetURI(newURI)
	if err == nil {
		e.logger.Debug("buffer identifier corrected in place",
			zap.String("uri", newURI))
		return
	}
	if !errors.Is(err, editor.ErrImmutableURI) {
		e.logger.Warn("identifier correction failed", zap.Error(err))
		return
	}
	e.replaceBuffer(st, newURI)
}

// replaceBuffer recreates the buffer under uri, transfers its content,
// redirects the host's active-buffer pointer, and disposes the original.
// After this the ladder (and its caller's return value) follow the
// replacement; nothing may hold the original past this point.
func (e *Engine) replaceBuffer(st *repairState, uri string) {
	old := st.buf

	nb, err := st.host.CreateBuffer(uri, st.target, old.Content())
	if err != nil {
		e.logger.Warn("buffer replacement failed",
			zap.String("uri", uri), zap.Error(err))
		return
	}

	e.logger.Info("buffer recreated under corrected identifier",
		zap.String("old", old.URI()),
		zap.String("new", uri))

	if active := st.host.ActiveBuffer(); active != nil && active.ID() == old.ID() {
		st.host.SetActiveBuffer(nb)
	}
	old.Dispose()
	st.buf = nb
}

// remedyClearMarkers drops previously published diagnostics under both
// the typed and untyped service namespaces.
func (e *Engine) remedyClearMarkers(st *repairState) {
	st.host.ClearMarkers(st.buf, editor.OwnerTypeScript)
	st.host.ClearMarkers(st.buf, editor.OwnerJavaScript)
}

// remedyRelaxOptions reasserts a permissive compiler configuration.
// Setup applies the same options; an unrelated service reinitialization
// can silently reset them, which is the case this rung covers.
func (e *Engine) remedyRelaxOptions(st *repairState) {
	svc := st.host.TypedService()
	opts := svc.CompilerOptions()
	opts.Strict = false
	opts.NoImplicitAny = false
	opts.IsolatedModules = false
	opts.AllowJS = true
	opts.AllowNonTSExtensions = true
	svc.SetCompilerOptions(opts)
}

// remedyToggleEagerSync repeats the eager-sync toggle with a longer
// delay than the basic revalidation path uses.
func (e *Engine) remedyToggleEagerSync(st *repairState) {
	e.toggleEagerSync(st.host.TypedService(), repairToggleDelay)
}

// remedyForceReassign is the last rung: one forced reassignment of the
// language attribute followed by revalidation, after which the outcome is
// accepted regardless.
func (e *Engine) remedyForceReassign(st *repairState) {
	e.reassign(st.buf, st.target)
	e.ForceRevalidate(st.buf, st.host)
}

// replaceExtension swaps uri's extension for ext (which includes the
// leading dot). A uri without an extension gets ext appended.
func replaceExtension(uri, ext string) string {
	if i := strings.LastIndex(uri, "."); i > strings.LastIndex(uri, "/") {
		return uri[:i] + ext
	}
	return uri + ext
}
