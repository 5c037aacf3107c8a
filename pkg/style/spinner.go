package style

import (
	"os"

	"github.com/pterm/pterm"
)

// Spinner shows progress of a long running step on a terminal. On other
// outputs only the final line is printed.
type Spinner struct {
	printer *pterm.SpinnerPrinter
}

// StartSpinner starts a spinner with text on f
func StartSpinner(f *os.File, text string) *Spinner {
	s := &Spinner{}
	if !IsTerminal(f) {
		return s
	}

	printer, err := pterm.DefaultSpinner.
		WithWriter(f).
		WithRemoveWhenDone(true).
		Start(text)
	if err == nil {
		s.printer = printer
	}
	return s
}

// UpdateText replaces the spinner text
func (s *Spinner) UpdateText(text string) {
	if s.printer != nil {
		s.printer.UpdateText(text)
	}
}

// Stop removes the spinner
func (s *Spinner) Stop() {
	if s.printer != nil {
		_ = s.printer.Stop()
		s.printer = nil
	}
}
