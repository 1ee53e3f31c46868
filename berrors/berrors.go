// Package berrors defines the error taxonomy for the interpreter.
package berrors

import (
	"fmt"

	"github.com/retrolang/basic/token"
)

// runtime error codes
const (
	NextWithoutFor = iota + 1
	Syntax
	IllegalFuncCall
	Overflow
	UndefinedLabel
	SubscriptRange
	DuplicateDefinition
	TypeMismatch
	UndefinedVariable
	UndefinedFunction
	WhileWithoutWend
	WendWithoutWhile
)

// TextForError returns the error text based on error number
func TextForError(err int) string {
	switch err {
	case NextWithoutFor:
		return "NEXT without FOR"
	case Syntax:
		return "Syntax error"
	case IllegalFuncCall:
		return "Illegal function call"
	case Overflow:
		return "Overflow"
	case UndefinedLabel:
		return "Undefined label"
	case SubscriptRange:
		return "Subscript out of range"
	case DuplicateDefinition:
		return "Duplicate definition"
	case TypeMismatch:
		return "Type mismatch"
	case UndefinedVariable:
		return "Undefined variable"
	case UndefinedFunction:
		return "Undefined function"
	case WhileWithoutWend:
		return "WHILE without WEND"
	case WendWithoutWhile:
		return "WEND without WHILE"
	}

	return "Unprintable error"
}

// LexError reports a character the lexer couldn't make sense of.
type LexError struct {
	Pos  int  // byte offset into the source
	Char byte // the offending character
	Msg  string
}

func (le *LexError) Error() string {
	return fmt.Sprintf("%s at position %d (%q)", le.Msg, le.Pos, string(le.Char))
}

// SyntaxError reports a parser expectation violated at a token.
type SyntaxError struct {
	Tok token.Token
	Msg string
}

func (se *SyntaxError) Error() string {
	if se.Msg != "" {
		return se.Msg
	}
	return fmt.Sprintf("%s near %q", TextForError(Syntax), se.Tok.Literal)
}

// RuntimeError is raised during evaluation.
type RuntimeError struct {
	Code   int
	Detail string
}

func (re *RuntimeError) Error() string {
	msg := TextForError(re.Code)
	if re.Detail != "" {
		msg += ": " + re.Detail
	}
	return msg
}
