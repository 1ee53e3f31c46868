// Package cli runs the interactive session loop
package cli

import (
	"strings"

	"github.com/retrolang/basic/evaluator"
	"github.com/retrolang/basic/object"
)

// Session is the console the command loop drives
type Session interface {
	object.Console
	ReadCommand(prompt string) (string, bool)
}

const prompt = "] "

// Start reads and runs lines until SYSTEM or end of input.
// Variables survive from one line to the next.
func Start(term Session, in *evaluator.Interpreter) {
	for {
		line, ok := term.ReadCommand(prompt)
		if !ok {
			return
		}

		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if strings.EqualFold(line, "SYSTEM") {
			return
		}

		if err := in.ExecuteKeep(line); err != nil {
			term.Println(err.Error())
		}
	}
}
