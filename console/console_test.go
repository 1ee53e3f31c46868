package console

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOutput(t *testing.T) {
	var out bytes.Buffer
	term := NewWithIO(strings.NewReader(""), &out)

	term.Print("no newline")
	term.Println(" done")

	assert.Equal(t, "no newline done\n", out.String())
}

func TestCls(t *testing.T) {
	var out bytes.Buffer
	term := NewWithIO(strings.NewReader(""), &out)

	term.Cls()

	assert.Contains(t, out.String(), "\x1b[2J")
}

func TestReadLine(t *testing.T) {
	var out bytes.Buffer
	term := NewWithIO(strings.NewReader("first\r\nsecond\nlast line"), &out)

	line, ok := term.ReadLine()
	assert.True(t, ok)
	assert.Equal(t, "first", line)

	line, ok = term.ReadLine()
	assert.True(t, ok)
	assert.Equal(t, "second", line)

	// a final line without a newline still comes through
	line, ok = term.ReadLine()
	assert.True(t, ok)
	assert.Equal(t, "last line", line)

	_, ok = term.ReadLine()
	assert.False(t, ok)
}

func TestReadCommand(t *testing.T) {
	var out bytes.Buffer
	term := NewWithIO(strings.NewReader("print 1\n"), &out)

	line, ok := term.ReadCommand("] ")
	assert.True(t, ok)
	assert.Equal(t, "print 1", line)
}
