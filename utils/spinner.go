package utils

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/logrusorgru/aurora"
	"golang.org/x/term"
)

// Spinner initializes the process indicator.
type Spinner struct {
	w        io.Writer
	enabled  bool
	stopChan chan struct{}
	doneChan chan struct{}
}

// NewSpinner instantiates a new Spinner writing to stderr. The spinner is
// silent when stderr is not a terminal.
func NewSpinner() *Spinner {
	return &Spinner{
		w:       os.Stderr,
		enabled: IsTerminal(os.Stderr),
	}
}

// Start starts the process indicator.
func (s *Spinner) Start(message string) {
	if !s.enabled {
		return
	}
	s.stopChan = make(chan struct{})
	s.doneChan = make(chan struct{})

	go func() {
		defer close(s.doneChan)
		for {
			for _, r := range `-\|/` {
				select {
				case <-s.stopChan:
					fmt.Fprint(s.w, "\r\033[K")
					return
				default:
					fmt.Fprintf(s.w, "\r%s %s", message, aurora.Green(string(r)))
					time.Sleep(time.Millisecond * 100)
				}
			}
		}
	}()
}

// Stop stops the process indicator and clears its line.
func (s *Spinner) Stop() {
	if !s.enabled || s.stopChan == nil {
		return
	}
	close(s.stopChan)
	<-s.doneChan
	s.stopChan = nil
}

// IsTerminal reports whether f is attached to a terminal.
func IsTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}
