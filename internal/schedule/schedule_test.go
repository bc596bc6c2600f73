package schedule

import (
	"context"
	"testing"
	"time"
)

func TestTimersAfterFunc(t *testing.T) {
	done := make(chan struct{})
	Timers{}.AfterFunc(time.Millisecond, func() { close(done) })

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("scheduled function never ran")
	}
}

func TestTimersSleep(t *testing.T) {
	if err := (Timers{}).Sleep(context.Background(), time.Millisecond); err != nil {
		t.Fatalf("Sleep returned %v", err)
	}
}

func TestTimersSleepCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := (Timers{}).Sleep(ctx, time.Hour); err != context.Canceled {
		t.Fatalf("Sleep returned %v, want context.Canceled", err)
	}
}

func TestImmediateRunsInline(t *testing.T) {
	s := &Immediate{}

	var order []int
	s.AfterFunc(10*time.Millisecond, func() {
		order = append(order, 1)
		s.AfterFunc(20*time.Millisecond, func() {
			order = append(order, 2)
		})
	})
	order = append(order, 3)

	if len(order) != 3 || order[0] != 1 || order[1] != 2 || order[2] != 3 {
		t.Fatalf("execution order = %v, want [1 2 3]", order)
	}

	delays := s.Delays()
	if len(delays) != 2 || delays[0] != 10*time.Millisecond || delays[1] != 20*time.Millisecond {
		t.Fatalf("recorded delays = %v", delays)
	}
}

func TestImmediateSleep(t *testing.T) {
	s := &Immediate{}
	if err := s.Sleep(context.Background(), time.Hour); err != nil {
		t.Fatalf("Sleep returned %v", err)
	}
	if got := s.Delays(); len(got) != 1 || got[0] != time.Hour {
		t.Fatalf("recorded delays = %v", got)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := s.Sleep(ctx, time.Hour); err != context.Canceled {
		t.Fatalf("Sleep on cancelled context returned %v", err)
	}
}
