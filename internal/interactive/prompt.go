// Package interactive provides the confirm/deny policy for installer prompts.
package interactive

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

// ConfirmFunc decides a yes/no question. The installer core only ever sees
// this function, so the pipeline is testable without simulating a terminal.
type ConfirmFunc func(question string) bool

// AlwaysYes auto-confirms every prompt (--yes / non-interactive mode).
func AlwaysYes(string) bool {
	return true
}

// IsTerminal checks if stdin is a terminal (TTY).
func IsTerminal() bool {
	return term.IsTerminal(int(os.Stdin.Fd()))
}

// Prompter asks yes/no questions on a terminal.
type Prompter struct {
	out     io.Writer
	scanner *bufio.Scanner
}

// NewPrompter creates a prompter with stdin/stdout.
func NewPrompter() *Prompter {
	return NewPrompterWithIO(os.Stdin, os.Stdout)
}

// NewPrompterWithIO creates a prompter with custom input/output (for testing).
func NewPrompterWithIO(in io.Reader, out io.Writer) *Prompter {
	return &Prompter{
		out:     out,
		scanner: bufio.NewScanner(in),
	}
}

// Confirm asks a question and returns true on an affirmative answer.
// EOF and unrecognized input count as a decline.
func (p *Prompter) Confirm(question string) bool {
	_, _ = fmt.Fprintf(p.out, "%s [y/n] ", question)

	if !p.scanner.Scan() {
		return false
	}

	input := strings.ToLower(strings.TrimSpace(p.scanner.Text()))
	return input == "y" || input == "yes"
}
