package editor

import (
	"context"
	"errors"
	"testing"

	"github.com/dshills/langsync/internal/language"
)

func TestMemBufferLifecycle(t *testing.T) {
	host := NewMemHost()
	buf, err := host.CreateBuffer("file:///a.js", language.JavaScript, "const x = 1;")
	if err != nil {
		t.Fatalf("CreateBuffer: %v", err)
	}

	if buf.URI() != "file:///a.js" {
		t.Errorf("URI = %q", buf.URI())
	}
	if buf.Language() != language.JavaScript {
		t.Errorf("Language = %s", buf.Language())
	}
	if buf.Content() != "const x = 1;" {
		t.Errorf("Content = %q", buf.Content())
	}
	if buf.Version() != 1 {
		t.Errorf("Version = %d, want 1", buf.Version())
	}
	if buf.ID() == "" {
		t.Error("expected non-empty internal ID")
	}

	buf.Dispose()
	if !buf.Disposed() {
		t.Error("expected Disposed after Dispose")
	}
	if err := buf.SetLanguage(language.TypeScript); !errors.Is(err, ErrBufferDisposed) {
		t.Errorf("SetLanguage after dispose = %v, want ErrBufferDisposed", err)
	}

	// Dispose is idempotent.
	buf.Dispose()
}

func TestMemBufferEdit(t *testing.T) {
	host := NewMemHost()
	buf, _ := host.CreateBuffer("file:///a.js", language.JavaScript, "abcdef")

	tests := []struct {
		name      string
		offset    int
		deleteLen int
		insert    string
		want      string
		wantErr   bool
	}{
		{"insert at start", 0, 0, "x", "xabcdef", false},
		{"replace", 1, 2, "YY", "xYYcdef", false},
		{"delete", 0, 3, "", "cdef", false},
		{"append", 4, 0, "!", "cdef!", false},
		{"negative offset", -1, 0, "", "cdef!", true},
		{"past end", 10, 1, "", "cdef!", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := buf.Edit(tt.offset, tt.deleteLen, tt.insert)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Edit error = %v, wantErr %v", err, tt.wantErr)
			}
			if buf.Content() != tt.want {
				t.Errorf("Content = %q, want %q", buf.Content(), tt.want)
			}
		})
	}
}

// A zero-length edit must still bump the version: it is the re-parse
// trigger the revalidation driver relies on.
func TestMemBufferNoOpEditBumpsVersion(t *testing.T) {
	host := NewMemHost()
	buf, _ := host.CreateBuffer("file:///a.ts", language.TypeScript, "let x = 1")

	before := buf.Version()
	if err := buf.Edit(0, 0, ""); err != nil {
		t.Fatalf("Edit: %v", err)
	}
	if buf.Version() != before+1 {
		t.Errorf("Version = %d, want %d", buf.Version(), before+1)
	}
	if buf.Content() != "let x = 1" {
		t.Errorf("Content changed by no-op edit: %q", buf.Content())
	}
}

func TestMemBufferSetURI(t *testing.T) {
	host := NewMemHost()
	buf, _ := host.CreateBuffer("file:///a.js", language.JavaScript, "")

	if err := buf.SetURI("file:///a.ts"); err != nil {
		t.Fatalf("SetURI: %v", err)
	}
	if buf.URI() != "file:///a.ts" {
		t.Errorf("URI = %q", buf.URI())
	}
}

func TestMemBufferImmutableURI(t *testing.T) {
	host := NewMemHost(WithImmutableURIs())
	buf, _ := host.CreateBuffer("file:///a.js", language.JavaScript, "")

	if err := buf.SetURI("file:///a.ts"); !errors.Is(err, ErrImmutableURI) {
		t.Fatalf("SetURI = %v, want ErrImmutableURI", err)
	}
	if buf.URI() != "file:///a.js" {
		t.Errorf("URI changed to %q despite refusal", buf.URI())
	}
}

func TestMemHostDuplicateURI(t *testing.T) {
	host := NewMemHost()
	if _, err := host.CreateBuffer("file:///a.js", language.JavaScript, ""); err != nil {
		t.Fatalf("CreateBuffer: %v", err)
	}
	if _, err := host.CreateBuffer("file:///a.js", language.TypeScript, ""); !errors.Is(err, ErrDuplicateURI) {
		t.Errorf("duplicate CreateBuffer = %v, want ErrDuplicateURI", err)
	}
}

func TestMemHostActiveBuffer(t *testing.T) {
	host := NewMemHost()
	if host.ActiveBuffer() != nil {
		t.Fatal("expected no active buffer on empty host")
	}

	first, _ := host.CreateBuffer("file:///a.js", language.JavaScript, "")
	second, _ := host.CreateBuffer("file:///b.ts", language.TypeScript, "")

	if got := host.ActiveBuffer(); got == nil || got.ID() != first.ID() {
		t.Error("expected first buffer to become active")
	}

	host.SetActiveBuffer(second)
	if got := host.ActiveBuffer(); got == nil || got.ID() != second.ID() {
		t.Error("expected active pointer to move to second buffer")
	}

	second.Dispose()
	if host.ActiveBuffer() != nil {
		t.Error("expected active pointer cleared when active buffer disposed")
	}
}

func TestMemHostMarkers(t *testing.T) {
	host := NewMemHost()
	buf, _ := host.CreateBuffer("file:///a.js", language.JavaScript, "")

	ms := []Marker{{Owner: OwnerTypeScript, Code: "8010", Message: "boom", Severity: SeverityError}}
	host.SetMarkers(buf, OwnerTypeScript, ms)

	got := host.Markers(buf, OwnerTypeScript)
	if len(got) != 1 || got[0].Code != "8010" {
		t.Fatalf("Markers = %+v", got)
	}
	if len(host.Markers(buf, OwnerJavaScript)) != 0 {
		t.Error("markers leaked across owner namespaces")
	}

	host.ClearMarkers(buf, OwnerTypeScript)
	if len(host.Markers(buf, OwnerTypeScript)) != 0 {
		t.Error("expected markers cleared")
	}
}

func TestMemHostMarkersDroppedOnDispose(t *testing.T) {
	host := NewMemHost()
	buf, _ := host.CreateBuffer("file:///a.js", language.JavaScript, "")
	host.SetMarkers(buf, OwnerJavaScript, []Marker{{Message: "m"}})

	buf.Dispose()
	if len(host.Markers(buf, OwnerJavaScript)) != 0 {
		t.Error("expected markers dropped with the buffer")
	}
}

func TestMemServiceWorker(t *testing.T) {
	svc := NewMemService()

	w, err := svc.Worker(context.Background())
	if err != nil || w == nil {
		t.Fatalf("Worker = %v, %v", w, err)
	}

	svc.FailWorker(2)
	if _, err := svc.Worker(context.Background()); !errors.Is(err, ErrWorkerUnavailable) {
		t.Errorf("first failing call = %v, want ErrWorkerUnavailable", err)
	}
	if _, err := svc.Worker(context.Background()); !errors.Is(err, ErrWorkerUnavailable) {
		t.Errorf("second failing call = %v, want ErrWorkerUnavailable", err)
	}
	if _, err := svc.Worker(context.Background()); err != nil {
		t.Errorf("expected worker back after injected failures, got %v", err)
	}
}

func TestMemServiceWorkerCancelled(t *testing.T) {
	svc := NewMemService()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := svc.Worker(ctx); !errors.Is(err, context.Canceled) {
		t.Errorf("Worker on cancelled context = %v", err)
	}
}

func TestMemServiceReconfigure(t *testing.T) {
	svc := NewMemService()

	opts := svc.CompilerOptions()
	opts.Strict = true
	svc.SetCompilerOptions(opts)
	svc.SetEagerSync(false)
	svc.SetDiagnosticsOptions(DiagnosticsOptions{NoSemanticValidation: true})

	svc.Reconfigure()

	if svc.CompilerOptions().Strict {
		t.Error("expected compiler options reset")
	}
	if !svc.EagerSync() {
		t.Error("expected eager sync restored")
	}
	if svc.DiagnosticsOptions().NoSemanticValidation {
		t.Error("expected diagnostics options reset")
	}
	if svc.Reconfigures() != 1 {
		t.Errorf("Reconfigures = %d, want 1", svc.Reconfigures())
	}
}

func TestMemWorkerInvalidate(t *testing.T) {
	w := &MemWorker{}
	if err := w.Invalidate("file:///a.ts"); err != nil {
		t.Fatalf("Invalidate: %v", err)
	}
	if got := w.Invalidated(); len(got) != 1 || got[0] != "file:///a.ts" {
		t.Errorf("Invalidated = %v", got)
	}
}
