package stream

import (
	"os"

	"github.com/mattn/go-isatty"
)

// IsInput reports whether f carries data to read rather than being an
// interactive terminal: a pipe, a socket or a redirected regular file.
func IsInput(f *os.File) bool {
	st, err := f.Stat()
	if err != nil {
		return false
	}
	mode := st.Mode()
	if mode&os.ModeNamedPipe != 0 {
		return true
	}
	fd := f.Fd()
	if isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd) {
		return false
	}
	return mode.IsRegular() || mode&os.ModeSocket != 0
}
