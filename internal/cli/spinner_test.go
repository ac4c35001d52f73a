package cli

import (
	"bytes"
	"context"
	"strings"
	"sync"
	"testing"
	"time"
)

// lockedBuffer is written by the spinner goroutine and read by the test.
type lockedBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *lockedBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *lockedBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func captureUI(t *testing.T) *lockedBuffer {
	t.Helper()
	out := &lockedBuffer{}
	old := uiOut
	uiOut = out
	t.Cleanup(func() { uiOut = old })
	return out
}

func TestLookupSpinnerCounts(t *testing.T) {
	out := captureUI(t)

	s := newLookupSpinner(context.Background(), 3)
	s.Start()
	s.Advance()
	s.Advance()
	time.Sleep(200 * time.Millisecond)
	s.Stop()

	if s.Done() != 2 {
		t.Errorf("Done() = %d, want 2", s.Done())
	}
	if !strings.Contains(out.String(), "Looking up 2/3 dependencies...") {
		t.Errorf("output = %q, want the lookup count", out.String())
	}
}

func TestLookupSpinnerStopIsIdempotent(t *testing.T) {
	captureUI(t)

	s := newLookupSpinner(context.Background(), 1)
	s.Start()
	s.Stop()
	s.Stop()
	s.Stop()
}

func TestLookupSpinnerStopsOnCancel(t *testing.T) {
	captureUI(t)

	ctx, cancel := context.WithCancel(context.Background())
	s := newLookupSpinner(ctx, 1)
	s.Start()
	cancel()

	select {
	case <-s.stopped:
	case <-time.After(time.Second):
		t.Fatal("spinner still running after context cancellation")
	}
	s.Stop()
}

func TestLookupSpinnerClearLine(t *testing.T) {
	out := captureUI(t)

	s := newLookupSpinner(context.Background(), 10)
	s.clearLine()
	if out.String() != "" {
		t.Errorf("clearLine() before any frame wrote %q", out.String())
	}

	s.width = 5
	s.clearLine()
	if want := "\r" + strings.Repeat(" ", 9) + "\r"; out.String() != want {
		t.Errorf("clearLine() wrote %q, want %q", out.String(), want)
	}
}

func TestIsTerminal(t *testing.T) {
	if isTerminal(&bytes.Buffer{}) {
		t.Error("isTerminal(buffer) = true, want false")
	}
}
