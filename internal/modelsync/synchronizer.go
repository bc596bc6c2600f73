package modelsync

import (
	"go.uber.org/zap"

	"github.com/dshills/langsync/internal/classify"
	"github.com/dshills/langsync/internal/editor"
	"github.com/dshills/langsync/internal/workspace"
)

// SyncWithWorkspace reconciles buf's language with the workspace's notion
// of the active file. It returns true when the buffer reflects the
// workspace's language afterwards, and false when no workspace record is
// available, in which case the caller falls back to pure classification.
//
// The workspace record's stored content is classified, not the buffer's
// own content: the workspace is the source of truth. The record itself is
// never written.
func (e *Engine) SyncWithWorkspace(buf editor.Buffer, host editor.Host) bool {
	acc := e.workspaceAccessor()
	if acc == nil {
		return false
	}

	rec := e.activeRecord(acc)
	if rec == nil {
		return false
	}

	v := classify.Classify(rec.Content, rec.Name)
	if !editor.IsLive(buf) {
		return false
	}
	if buf.Language() == v.Language {
		return true
	}

	e.logger.Info("workspace language differs from buffer",
		zap.String("file_id", rec.FileID),
		zap.String("buffer", string(buf.Language())),
		zap.String("workspace", string(v.Language)),
		zap.Float64("confidence", v.Confidence))

	// Apply notifies the registered callback with the record's file id.
	return e.Apply(buf, host, v.Language, rec.FileID)
}

// activeRecord reads the accessor fail-closed: a panicking accessor
// counts as "no record".
func (e *Engine) activeRecord(acc workspace.Accessor) (rec *workspace.Record) {
	defer func() {
		if r := recover(); r != nil {
			e.logger.Warn("workspace accessor panicked", zap.Any("panic", r))
			rec = nil
		}
	}()
	return acc.ActiveFile()
}
