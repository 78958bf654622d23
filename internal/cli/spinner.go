package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/mattn/go-isatty"
)

var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

// Spinner animates a progress message on one terminal line until stopped or
// until its context ends. On a non-terminal writer it prints nothing.
type Spinner struct {
	w       io.Writer
	message string
	enabled bool

	ctx     context.Context
	stop    chan struct{}
	stopped chan struct{}
	once    sync.Once
	mu      sync.Mutex
}

// newSpinnerWithContext creates a spinner on stderr that stops when ctx ends.
func newSpinnerWithContext(ctx context.Context, message string) *Spinner {
	return newSpinnerTo(ctx, os.Stderr, message, isTerminal(os.Stderr))
}

func newSpinnerTo(ctx context.Context, w io.Writer, message string, enabled bool) *Spinner {
	return &Spinner{
		w:       w,
		message: message,
		enabled: enabled,
		ctx:     ctx,
		stop:    make(chan struct{}),
		stopped: make(chan struct{}),
	}
}

func isTerminal(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// Start begins the animation.
func (s *Spinner) Start() {
	if !s.enabled {
		close(s.stopped)
		return
	}
	go func() {
		defer close(s.stopped)
		ticker := time.NewTicker(80 * time.Millisecond)
		defer ticker.Stop()

		for i := 0; ; i++ {
			select {
			case <-s.ctx.Done():
				s.clearLine()
				return
			case <-s.stop:
				return
			case <-ticker.C:
				s.mu.Lock()
				fmt.Fprintf(s.w, "\r%s %s", styleIconSpinner.Render(spinnerFrames[i%len(spinnerFrames)]), StyleDim.Render(s.message))
				s.mu.Unlock()
			}
		}
	}()
}

// Stop ends the animation and clears the line. It may be called more than once.
func (s *Spinner) Stop() {
	s.once.Do(func() {
		close(s.stop)
		<-s.stopped
		s.clearLine()
	})
}

// Cancelled reports whether the spinner's context ended.
func (s *Spinner) Cancelled() bool {
	return s.ctx.Err() != nil
}

func (s *Spinner) clearLine() {
	if !s.enabled {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	fmt.Fprintf(s.w, "\r%s\r", strings.Repeat(" ", len(s.message)+4))
}

// spin runs fn while a spinner shows message.
func spin[T any](ctx context.Context, message string, fn func() (T, error)) (T, error) {
	s := newSpinnerWithContext(ctx, message)
	s.Start()
	defer s.Stop()
	return fn()
}
