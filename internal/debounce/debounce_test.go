package debounce

import (
	"sync/atomic"
	"testing"
	"time"
)

func TestDo_OnlyLastCallFires(t *testing.T) {
	d := New(30 * time.Millisecond)

	var fired atomic.Int32
	var last atomic.Int32
	for i := 1; i <= 5; i++ {
		n := int32(i)
		d.Do(func() {
			fired.Add(1)
			last.Store(n)
		})
		time.Sleep(5 * time.Millisecond)
	}

	time.Sleep(100 * time.Millisecond)
	if got := fired.Load(); got != 1 {
		t.Fatalf("fired %d times, want 1", got)
	}
	if got := last.Load(); got != 5 {
		t.Fatalf("fired call %d, want 5 (the last one)", got)
	}
}

func TestDo_FiresAfterDelay(t *testing.T) {
	d := New(20 * time.Millisecond)

	done := make(chan struct{})
	d.Do(func() { close(done) })

	select {
	case <-done:
	case <-time.After(500 * time.Millisecond):
		t.Fatal("callback never fired")
	}
}

func TestStop_CancelsPending(t *testing.T) {
	d := New(20 * time.Millisecond)

	var fired atomic.Int32
	d.Do(func() { fired.Add(1) })
	d.Stop()

	time.Sleep(80 * time.Millisecond)
	if fired.Load() != 0 {
		t.Fatal("callback fired after Stop")
	}
}
