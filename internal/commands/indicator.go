package commands

import (
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/diogo/rpchat/internal/models"
)

var typingStyle = lipgloss.NewStyle().Foreground(colorTextDim).Italic(true)

// typingIndicator animates "<name> is typing..." until stopped.
// One indicator serves exactly one request.
type typingIndicator struct {
	out      io.Writer
	name     string
	interval time.Duration
	tty      bool

	stopCh chan struct{}
	done   chan struct{}

	mu      sync.Mutex
	started bool
	stopped bool
}

func newTypingIndicator(out io.Writer, name string, interval time.Duration) *typingIndicator {
	if interval <= 0 {
		interval = models.TypingInterval
	}
	return &typingIndicator{
		out:      out,
		name:     name,
		interval: interval,
		tty:      isTerminal(out),
		stopCh:   make(chan struct{}),
		done:     make(chan struct{}),
	}
}

// start launches the animation goroutine. Calling it twice is a no-op.
func (t *typingIndicator) start() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.started || t.stopped {
		return
	}
	t.started = true

	go t.run()
}

func (t *typingIndicator) run() {
	defer close(t.done)

	ticker := time.NewTicker(t.interval)
	defer ticker.Stop()

	if t.tty {
		fmt.Fprint(t.out, "\033[?25l")
	}

	for frame := 0; ; frame++ {
		fmt.Fprint(t.out, t.frame(frame))

		select {
		case <-t.stopCh:
			fmt.Fprint(t.out, "\r\033[K")
			if t.tty {
				fmt.Fprint(t.out, "\033[?25h")
			}
			return
		case <-ticker.C:
		}
	}
}

// frame returns the line for the given frame; dots cycle through 0-3.
func (t *typingIndicator) frame(n int) string {
	label := fmt.Sprintf("%s %s is typing%s", models.RoleAssistant.Emoji(), t.name, strings.Repeat(".", n%4))
	return "\r" + typingStyle.Render(label) + "   "
}

// stop signals the goroutine and waits until it has cleared the line and
// exited. Safe to call more than once and on an indicator never started.
func (t *typingIndicator) stop() {
	t.mu.Lock()
	if !t.stopped {
		close(t.stopCh)
		t.stopped = true
	}
	started := t.started
	t.mu.Unlock()

	if started {
		<-t.done
	}
}
