package editor

import (
	"testing"

	"github.com/dshills/langsync/internal/language"
)

// panicBuffer panics on every probe, simulating a handle whose backing
// state was torn down out from under us.
type panicBuffer struct {
	Buffer
}

func (panicBuffer) Disposed() bool { panic("use after free") }

func TestIsLive(t *testing.T) {
	host := NewMemHost()
	buf, err := host.CreateBuffer("file:///a.ts", language.TypeScript, "")
	if err != nil {
		t.Fatalf("CreateBuffer: %v", err)
	}

	if !IsLive(buf) {
		t.Error("expected fresh buffer to be live")
	}

	buf.Dispose()
	if IsLive(buf) {
		t.Error("expected disposed buffer to not be live")
	}
}

func TestIsLiveNil(t *testing.T) {
	if IsLive(nil) {
		t.Error("expected nil buffer to not be live")
	}
}

// A panic while probing counts as not live.
func TestIsLiveFailClosed(t *testing.T) {
	if IsLive(panicBuffer{}) {
		t.Error("expected panicking probe to report not live")
	}
}
