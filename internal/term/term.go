// Package term wraps the small amount of terminal handling enable-fn
// needs: TTY detection and single-keystroke reads for the menu and
// confirmation prompts.
package term

import (
	"fmt"
	"os"

	"github.com/mattn/go-isatty"
	"golang.org/x/term"
)

// IsTerminal reports whether f is attached to a terminal.
func IsTerminal(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// ReadKey reads a single keystroke from f without waiting for Enter,
// restoring the terminal state afterwards.
func ReadKey(f *os.File) (byte, error) {
	fd := int(f.Fd())

	oldState, err := term.MakeRaw(fd)
	if err != nil {
		return 0, fmt.Errorf("failed to set terminal to raw mode: %w", err)
	}
	defer func() {
		_ = term.Restore(fd, oldState)
	}()

	buf := make([]byte, 1)
	if _, err := f.Read(buf); err != nil {
		return 0, fmt.Errorf("failed to read keystroke: %w", err)
	}

	// Ctrl-C in raw mode does not raise SIGINT, map it to an interrupt.
	if buf[0] == 0x03 {
		return 0, ErrInterrupted
	}

	return buf[0], nil
}

// ErrInterrupted is returned by ReadKey when the user presses Ctrl-C.
var ErrInterrupted = fmt.Errorf("interrupted")
