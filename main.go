package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/goforj/godump"
	xterm "golang.org/x/term"

	"github.com/retrolang/basic/cli"
	"github.com/retrolang/basic/console"
	"github.com/retrolang/basic/evaluator"
	"github.com/retrolang/basic/parser"
	"github.com/retrolang/basic/stats"
)

var (
	dumpTree  = flag.Bool("dump", false, "print the parsed syntax tree instead of running")
	traceCall = flag.Bool("trace", false, "trace parser calls")
	showStats = flag.Bool("stats", false, "report run time and cpu usage when the program ends")
)

func main() {
	flag.Parse()
	parser.SetTrace(*traceCall)

	if flag.NArg() > 0 {
		os.Exit(runFile(flag.Arg(0)))
	}

	os.Exit(runSession())
}

// runFile loads and executes one program
func runFile(name string) int {
	src, err := os.ReadFile(name)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	if *dumpTree {
		program, err := parser.Parse(string(src))
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
		godump.Dump(program)
		return 0
	}

	term := newTerminal()
	defer term.Close()

	start := time.Now()
	err = evaluator.New(term).Execute(string(src))
	if *showStats {
		stats.Report(os.Stderr, time.Since(start))
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	return 0
}

// runSession drops into the interactive loop
func runSession() int {
	term := newTerminal()
	defer term.Close()

	term.Println("retrobasic ready, SYSTEM exits")

	start := time.Now()
	cli.Start(term, evaluator.New(term))
	if *showStats {
		stats.Report(os.Stderr, time.Since(start))
	}
	return 0
}

// a real tty gets line editing, piped input gets plain reads
func newTerminal() *console.Terminal {
	if xterm.IsTerminal(int(os.Stdin.Fd())) {
		return console.New()
	}
	return console.NewWithIO(os.Stdin, os.Stdout)
}
