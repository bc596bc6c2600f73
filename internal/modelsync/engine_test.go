package modelsync

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/dshills/langsync/internal/editor"
	"github.com/dshills/langsync/internal/language"
	"github.com/dshills/langsync/internal/schedule"
	"github.com/dshills/langsync/internal/workspace"
)

// manualScheduler queues scheduled functions until the test flushes them,
// so "before the delayed steps fire" windows can be exercised directly.
type manualScheduler struct {
	mu  sync.Mutex
	fns []func()
}

func (s *manualScheduler) AfterFunc(_ time.Duration, fn func()) {
	s.mu.Lock()
	s.fns = append(s.fns, fn)
	s.mu.Unlock()
}

func (s *manualScheduler) Sleep(ctx context.Context, _ time.Duration) error {
	return ctx.Err()
}

// flush runs pending functions, including ones they schedule, until the
// queue drains.
func (s *manualScheduler) flush() {
	for {
		s.mu.Lock()
		if len(s.fns) == 0 {
			s.mu.Unlock()
			return
		}
		fn := s.fns[0]
		s.fns = s.fns[1:]
		s.mu.Unlock()
		fn()
	}
}

// pending reports the number of queued functions.
func (s *manualScheduler) pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.fns)
}

// newTestEngine builds an engine on an inline scheduler.
func newTestEngine(opts ...Option) (*Engine, *schedule.Immediate) {
	sched := &schedule.Immediate{}
	all := append([]Option{WithScheduler(sched)}, opts...)
	return New(all...), sched
}

func TestRegisterSyncCallbackLastWins(t *testing.T) {
	eng, _ := newTestEngine()

	var first, second int
	eng.RegisterSyncCallback(func(string, workspace.Language) { first++ })
	eng.RegisterSyncCallback(func(string, workspace.Language) { second++ })

	host := editor.NewMemHost()
	buf, _ := host.CreateBuffer("file:///a.js", language.JavaScript, "")

	eng.Apply(buf, host, language.TypeScript, "f1")

	if first != 0 {
		t.Errorf("replaced callback ran %d times", first)
	}
	if second != 1 {
		t.Errorf("active callback ran %d times, want 1", second)
	}
}

func TestNotifySyncPanicCaught(t *testing.T) {
	eng, _ := newTestEngine()
	eng.RegisterSyncCallback(func(string, workspace.Language) { panic("boom") })

	host := editor.NewMemHost()
	buf, _ := host.CreateBuffer("file:///a.js", language.JavaScript, "")

	// Must not panic out of Apply.
	if !eng.Apply(buf, host, language.TypeScript, "f1") {
		t.Error("Apply = false, want true")
	}
	if buf.Language() != language.TypeScript {
		t.Errorf("language = %s", buf.Language())
	}
}

func TestAutoUpdateLanguage(t *testing.T) {
	rec := &workspace.Record{FileID: "f1", Name: "a.ts", Content: "const x: number = 1;", Language: workspace.TypeScript}
	eng, _ := newTestEngine(WithWorkspaceAccessor(workspace.AccessorFunc(func() *workspace.Record { return rec })))

	host := editor.NewMemHost()
	buf, _ := host.CreateBuffer("file:///a.js", language.JavaScript, "const x = 1;")

	var states []bool
	eng.AutoUpdateLanguage(buf, host, "a.ts", "f1", func(v bool) { states = append(states, v) })

	if buf.Language() != language.TypeScript {
		t.Errorf("language = %s, want typescript", buf.Language())
	}
	if len(states) != 2 || !states[0] || states[1] {
		t.Errorf("detection states = %v, want [true false]", states)
	}
}

func TestAutoUpdateLanguageFallsBackToClassification(t *testing.T) {
	// No workspace accessor at all: classification drives the update.
	eng, _ := newTestEngine()

	host := editor.NewMemHost()
	buf, _ := host.CreateBuffer("file:///a", language.PlainText, "const x: number = 1;")

	eng.AutoUpdateLanguage(buf, host, "", "", nil)

	if buf.Language() != language.TypeScript {
		t.Errorf("language = %s, want typescript", buf.Language())
	}
}

func TestAutoUpdateLanguageReentrancyGuard(t *testing.T) {
	sched := &manualScheduler{}
	eng := New(WithScheduler(sched))

	host := editor.NewMemHost()
	buf, _ := host.CreateBuffer("file:///a", language.PlainText, "const x: number = 1;")

	var states []bool
	record := func(v bool) { states = append(states, v) }

	eng.AutoUpdateLanguage(buf, host, "", "", record)
	// Second call lands while the first is still settling: skipped whole.
	eng.AutoUpdateLanguage(buf, host, "", "", record)

	if got := countTrue(states); got != 1 {
		t.Fatalf("detection started %d times, want 1 (states %v)", got, states)
	}

	sched.flush()
	if len(states) == 0 || states[len(states)-1] {
		t.Errorf("states = %v, want trailing false", states)
	}

	// Guard released: a later call detects again.
	eng.AutoUpdateLanguage(buf, host, "", "", record)
	if got := countTrue(states); got != 2 {
		t.Errorf("detection started %d times after release, want 2", got)
	}
	sched.flush()
}

func countTrue(states []bool) int {
	n := 0
	for _, s := range states {
		if s {
			n++
		}
	}
	return n
}
