package parser

import (
	"fmt"
	"strings"
)

var tracing = false

// SetTrace switches parse-call tracing on or off
func SetTrace(on bool) {
	tracing = on
}

var traceLevel int = 0

const traceIdentPlaceholder string = "\t"

func identLevel() string {
	return strings.Repeat(traceIdentPlaceholder, traceLevel-1)
}

func tracePrint(fs string) {
	fmt.Printf("%s%s\n", identLevel(), fs)
}

func incIdent() { traceLevel = traceLevel + 1 }
func decIdent() { traceLevel = traceLevel - 1 }

func trace(msg string) string {
	if !tracing {
		return msg
	}
	incIdent()
	tracePrint("BEGIN " + msg)
	return msg
}

func untrace(msg string) {
	if !tracing {
		return
	}
	tracePrint("END " + msg)
	decIdent()
}
