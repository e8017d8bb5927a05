// Package shell writes human-facing diagnostics to the error stream.
package shell

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/muesli/termenv"
	"golang.org/x/term"
)

// Shell prints status lines and error chains. Colors are used only when the
// underlying stream is a terminal.
type Shell struct {
	out *termenv.Output
	w   io.Writer
}

// New returns a Shell on stderr
func New() *Shell {
	return NewWithWriter(os.Stderr)
}

// NewWithWriter returns a Shell writing to w. Color is enabled only if w is
// a terminal file.
func NewWithWriter(w io.Writer) *Shell {
	if isTerminal(w) {
		return &Shell{out: termenv.NewOutput(w), w: w}
	}

	return &Shell{out: termenv.NewOutput(w, termenv.WithProfile(termenv.Ascii)), w: w}
}

// Err returns the raw diagnostic stream
func (s *Shell) Err() io.Writer {
	return s.w
}

// Status prints a right-justified bold green label followed by message
func (s *Shell) Status(status, message string) error {
	label := s.out.String(fmt.Sprintf("%12s", status)).Bold().Foreground(s.out.Color("2"))
	_, err := fmt.Fprintf(s.w, "%s %s\n", label, message)
	return err
}

// Warn prints a bold yellow "warning:" line
func (s *Shell) Warn(message string) error {
	return s.labelled("warning", "3", message)
}

// Error prints err as "error: <message>" followed by one "Caused by:"
// paragraph per wrapped cause.
func (s *Shell) Error(err error) error {
	chain := Chain(err)
	if len(chain) == 0 {
		return nil
	}

	if err := s.labelled("error", "1", chain[0]); err != nil {
		return err
	}

	for _, cause := range chain[1:] {
		if _, err := fmt.Fprint(s.w, "\nCaused by:\n"); err != nil {
			return err
		}

		for _, line := range strings.Split(cause, "\n") {
			var err error
			if line == "" {
				_, err = fmt.Fprintln(s.w)
			} else {
				_, err = fmt.Fprintf(s.w, "  %s\n", line)
			}

			if err != nil {
				return err
			}
		}
	}

	return nil
}

func (s *Shell) labelled(label, color, message string) error {
	styled := s.out.String(label).Bold().Foreground(s.out.Color(color))
	colon := s.out.String(":").Bold()
	_, err := fmt.Fprintf(s.w, "%s%s %s\n", styled, colon, message)
	return err
}

// Chain splits a wrapped error into the message each level contributed,
// outermost first. A level wrapping with "context: %w" contributes
// "context"; a level that adds nothing of its own is skipped.
func Chain(err error) []string {
	var full []string
	for e := err; e != nil; e = errors.Unwrap(e) {
		full = append(full, e.Error())
	}

	var chain []string
	for i, msg := range full {
		if i+1 < len(full) {
			inner := full[i+1]
			if msg == inner {
				continue
			}

			msg = strings.TrimSuffix(msg, inner)
			msg = strings.TrimRight(msg, " :\n")
		}

		if msg != "" {
			chain = append(chain, msg)
		}
	}

	return chain
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
