package app

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
)

const banner = `===========================================
      EASY Model Converter (by classic)
===========================================`

const clearSequence = "\033[H\033[2J"

// clearScreen clears w when it is an interactive terminal.
func clearScreen(w io.Writer) {
	f, ok := w.(*os.File)
	if !ok {
		return
	}
	if isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd()) {
		fmt.Fprint(w, clearSequence)
	}
}

func rule(ch string, n int) string {
	return strings.Repeat(ch, n)
}
