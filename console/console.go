// Package console is the terminal front-end for the interpreter
package console

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/peterh/liner"
)

// Terminal drives user I/O.  Interactive use gets line editing
// and history through liner, piped input reads plain lines.
type Terminal struct {
	out io.Writer
	in  *bufio.Reader
	rl  *liner.State // nil when input is not a tty
}

// New builds a terminal with line editing on the process tty
func New() *Terminal {
	rl := liner.NewLiner()
	rl.SetCtrlCAborts(true)
	return &Terminal{out: os.Stdout, rl: rl}
}

// NewWithIO wires the terminal to arbitrary streams, used for
// piped program input and for tests
func NewWithIO(in io.Reader, out io.Writer) *Terminal {
	return &Terminal{out: out, in: bufio.NewReader(in)}
}

// Close restores the tty state liner changed
func (t *Terminal) Close() {
	if t.rl != nil {
		t.rl.Close()
	}
}

// Cls clears the display
func (t *Terminal) Cls() {
	fmt.Fprint(t.out, "\x1b[2J\x1b[H")
}

func (t *Terminal) Print(msg string) {
	fmt.Fprint(t.out, msg)
}

func (t *Terminal) Println(msg string) {
	fmt.Fprintln(t.out, msg)
}

// ReadLine collects one line of program input
func (t *Terminal) ReadLine() (string, bool) {
	return t.read("? ")
}

// ReadCommand collects one command line for the session driver
func (t *Terminal) ReadCommand(prompt string) (string, bool) {
	line, ok := t.read(prompt)
	if ok && (t.rl != nil) && (strings.TrimSpace(line) != "") {
		t.rl.AppendHistory(line)
	}
	return line, ok
}

func (t *Terminal) read(prompt string) (string, bool) {
	if t.rl != nil {
		line, err := t.rl.Prompt(prompt)
		if err != nil {
			return "", false
		}
		return line, true
	}

	line, err := t.in.ReadString('\n')
	if (err != nil) && (line == "") {
		return "", false
	}
	return strings.TrimRight(line, "\r\n"), true
}
