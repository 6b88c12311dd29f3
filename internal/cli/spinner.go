package cli

import (
	"context"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"
)

// spinnerFrames are drawn in order, one per tick.
var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

const (
	spinnerInterval = 80 * time.Millisecond

	// spinnerElapsedAfter is when the elapsed time starts being shown.
	spinnerElapsedAfter = time.Second
)

// Spinner draws a progress indicator on one terminal line until stopped
// or its context is cancelled.
type Spinner struct {
	w       io.Writer
	message string
	ctx     context.Context
	cancel  context.CancelFunc
	done    chan struct{}
	stopped chan struct{}
	once    sync.Once

	mu    sync.Mutex
	width int // widest line drawn, for clearing
}

// newSpinner creates a spinner writing to w.
func newSpinner(w io.Writer, message string) *Spinner {
	return newSpinnerWithContext(context.Background(), w, message)
}

// newSpinnerWithContext creates a spinner that stops when ctx is cancelled.
func newSpinnerWithContext(ctx context.Context, w io.Writer, message string) *Spinner {
	spinnerCtx, cancel := context.WithCancel(ctx)
	return &Spinner{
		w:       w,
		message: message,
		ctx:     spinnerCtx,
		cancel:  cancel,
		done:    make(chan struct{}),
		stopped: make(chan struct{}),
	}
}

// Start begins the animation. It must be called at most once.
func (s *Spinner) Start() {
	start := time.Now()
	go func() {
		defer close(s.stopped)
		ticker := time.NewTicker(spinnerInterval)
		defer ticker.Stop()

		for i := 0; ; i++ {
			select {
			case <-s.ctx.Done():
				s.clearLine()
				return
			case <-s.done:
				return
			case <-ticker.C:
				s.draw(spinnerFrames[i%len(spinnerFrames)], time.Since(start))
			}
		}
	}()
}

func (s *Spinner) draw(frame string, elapsed time.Duration) {
	line := styleIconSpinner.Render(frame) + " " + StyleDim.Render(s.message)
	if elapsed >= spinnerElapsedAfter {
		line += " " + StyleDim.Render(fmt.Sprintf("%.0fs", elapsed.Seconds()))
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.width = max(s.width, len(line))
	fmt.Fprintf(s.w, "\r%s", line)
}

// Stop stops the spinner and clears its line. It is safe to call more
// than once.
func (s *Spinner) Stop() {
	s.cancel()
	s.once.Do(func() { close(s.done) })
	<-s.stopped
	s.clearLine()
}

func (s *Spinner) clearLine() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.width == 0 {
		return
	}
	fmt.Fprintf(s.w, "\r%s\r", strings.Repeat(" ", s.width))
	s.width = 0
}

// Cancelled reports whether the spinner's context was cancelled by its
// parent rather than by Stop.
func (s *Spinner) Cancelled() bool {
	select {
	case <-s.done:
		return false
	default:
		return s.ctx.Err() != nil
	}
}
