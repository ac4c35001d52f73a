package cli

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"
)

var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

// lookupSpinner animates "Looking up n/total dependencies..." on uiOut
// until stopped or until its context is cancelled.
type lookupSpinner struct {
	total int

	mu    sync.Mutex
	done  int
	width int // widest line drawn so far

	ctx     context.Context
	cancel  context.CancelFunc
	stopped chan struct{}
	once    sync.Once
}

func newLookupSpinner(ctx context.Context, total int) *lookupSpinner {
	ctx, cancel := context.WithCancel(ctx)
	return &lookupSpinner{
		total:   total,
		ctx:     ctx,
		cancel:  cancel,
		stopped: make(chan struct{}),
	}
}

func (s *lookupSpinner) message() string {
	return fmt.Sprintf("Looking up %d/%d dependencies...", s.done, s.total)
}

// Start begins the animation.
func (s *lookupSpinner) Start() {
	go func() {
		defer close(s.stopped)
		ticker := time.NewTicker(80 * time.Millisecond)
		defer ticker.Stop()

		for i := 0; ; i++ {
			select {
			case <-s.ctx.Done():
				s.clearLine()
				return
			case <-ticker.C:
				s.mu.Lock()
				msg := s.message()
				s.width = max(s.width, len(msg))
				fmt.Fprintf(uiOut, "\r%s %s", styleIconSpinner.Render(spinnerFrames[i%len(spinnerFrames)]), StyleDim.Render(msg))
				s.mu.Unlock()
			}
		}
	}()
}

// Advance counts one finished lookup.
func (s *lookupSpinner) Advance() {
	s.mu.Lock()
	s.done++
	s.mu.Unlock()
}

// Done reports the number of finished lookups.
func (s *lookupSpinner) Done() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.done
}

// Stop ends the animation and clears the line. It is safe to call more
// than once.
func (s *lookupSpinner) Stop() {
	s.once.Do(func() {
		s.cancel()
		<-s.stopped
	})
}

// clearLine blanks the spinner line so log output starts at column 0.
func (s *lookupSpinner) clearLine() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.width > 0 {
		fmt.Fprintf(uiOut, "\r%s\r", strings.Repeat(" ", s.width+4))
	}
}
