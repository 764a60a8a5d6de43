package backend

import (
	"fmt"
	"io"
)

// Screen mode sequences.
var (
	altScreenEnter = []byte("\x1b[?1049h")
	altScreenExit  = []byte("\x1b[?1049l")
	cursorHide     = []byte("\x1b[?25l")
	cursorShow     = []byte("\x1b[?25h")
	// DECAWM off keeps the cursor at the right edge instead of scrolling
	// when the bottom-right cell is written.
	autoWrapOff = []byte("\x1b[?7l")
	autoWrapOn  = []byte("\x1b[?7h")
	sgrReset    = []byte("\x1b[0m")
)

// enterModes writes the sequences that prepare the screen.
func enterModes(w io.Writer, opts Options) error {
	var seq []byte
	if opts.AltScreen {
		seq = append(seq, altScreenEnter...)
	}
	if opts.HideCursor {
		seq = append(seq, cursorHide...)
	}
	seq = append(seq, autoWrapOff...)
	_, err := w.Write(seq)
	return err
}

// enterModesOrUndo writes the screen mode sequences. If that fails, undo
// runs before the error is returned, so a failed Init leaves the terminal
// as it found it.
func enterModesOrUndo(w io.Writer, opts Options, undo func()) error {
	if err := enterModes(w, opts); err != nil {
		undo()
		return fmt.Errorf("enter screen modes: %w", err)
	}
	return nil
}

// exitModes undoes enterModes.
func exitModes(w io.Writer, opts Options) error {
	seq := append([]byte{}, sgrReset...)
	seq = append(seq, autoWrapOn...)
	if opts.HideCursor {
		seq = append(seq, cursorShow...)
	}
	if opts.AltScreen {
		seq = append(seq, altScreenExit...)
	}
	_, err := w.Write(seq)
	return err
}
