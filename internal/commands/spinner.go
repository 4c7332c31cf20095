package commands

import (
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/lipgloss"
)

// Dot colors cycled by the spinner
var dotColors = []lipgloss.Color{
	lipgloss.Color("#ff9e64"), // Saffron
	lipgloss.Color("#e0af68"), // Gold
	lipgloss.Color("#7aa2f7"), // Blue
	lipgloss.Color("#bb9af7"), // Purple
}

var (
	colorText     = lipgloss.Color("#c0caf5")
	colorTextDim  = lipgloss.Color("#565f89")
	colorTextMute = lipgloss.Color("#3b4261")
	colorSuccess  = lipgloss.Color("#9ece6a")
	colorPrimary  = lipgloss.Color("#7aa2f7")
	colorError    = lipgloss.Color("#f7768e")
)

// spinner draws the loading placeholder on a terminal line
type spinner struct {
	w        io.Writer
	message  string
	interval time.Duration
	stop     chan struct{}
	done     chan struct{}
	mu       sync.Mutex
	frame    int
	stopped  bool
}

func newSpinner(w io.Writer, message string) *spinner {
	return &spinner{
		w:        w,
		message:  message,
		interval: 300 * time.Millisecond,
		stop:     make(chan struct{}),
		done:     make(chan struct{}),
	}
}

// start begins the animation
func (s *spinner) start() {
	go func() {
		defer close(s.done)

		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()

		// Hide cursor
		fmt.Fprint(s.w, "\033[?25l")
		s.render()

		for {
			select {
			case <-s.stop:
				// Clear line and show cursor
				fmt.Fprint(s.w, "\r\033[K\033[?25h")
				return
			case <-ticker.C:
				s.mu.Lock()
				s.frame++
				s.mu.Unlock()
				s.render()
			}
		}
	}()
}

// frameDots returns the three dots for frame, one of them lit
func frameDots(frame int) string {
	lit := frame % 3
	color := dotColors[frame%len(dotColors)]

	var dots strings.Builder
	for i := 0; i < 3; i++ {
		if i > 0 {
			dots.WriteString(" ")
		}
		if i == lit {
			dots.WriteString(lipgloss.NewStyle().Foreground(color).Bold(true).Render("●"))
		} else {
			dots.WriteString(lipgloss.NewStyle().Foreground(colorTextMute).Render("○"))
		}
	}
	return dots.String()
}

func (s *spinner) render() {
	s.mu.Lock()
	frame := s.frame
	s.mu.Unlock()

	msg := lipgloss.NewStyle().Foreground(colorText).Render(s.message)
	fmt.Fprintf(s.w, "\r\033[K%s %s", frameDots(frame), msg)
}

// halt stops the animation and waits for the line to be cleared. Safe to call twice.
func (s *spinner) halt() {
	s.mu.Lock()
	if !s.stopped {
		close(s.stop)
		s.stopped = true
	}
	s.mu.Unlock()
	<-s.done
}
