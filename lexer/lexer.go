package lexer

import (
	"strings"

	"github.com/retrolang/basic/berrors"
	"github.com/retrolang/basic/token"
)

// Lexer a lexical analyzer instance
type Lexer struct {
	input        string
	position     int             // current position in input (points to current char)
	readPosition int             // current reading position in input (after current char)
	ch           byte            // current char under examination
	last         token.TokenType // previous token, gives the AS context for type names
	err          *berrors.LexError
}

// New create a new lexer object
func New(input string) *Lexer {
	l := &Lexer{input: input}
	l.readChar()
	return l
}

// Tokenize scans source into a flat token sequence.  A name at
// statement position directly followed by a colon is re-tagged as a
// label, and the single EOF token never directly follows a statement
// separator.
func Tokenize(input string) ([]token.Token, error) {
	l := New(input)
	var toks []token.Token

	for {
		tok := l.NextToken()

		if err := l.Err(); err != nil {
			return nil, err
		}

		switch tok.Type {
		case token.EOL:
			if (tok.Literal == ":") && startsStatement(toks) {
				toks[len(toks)-1].Type = token.LABEL
			}
			toks = append(toks, tok)

		case token.EOF:
			for (len(toks) > 0) && (toks[len(toks)-1].Type == token.EOL) {
				toks = toks[:len(toks)-1]
			}
			toks = append(toks, tok)
			return toks, nil

		default:
			toks = append(toks, tok)
		}
	}
}

// only a bare name opening a statement denotes a jump target, an
// identifier mid-expression keeps its tag
func startsStatement(toks []token.Token) bool {
	if (len(toks) == 0) || (toks[len(toks)-1].Type != token.IDENT) {
		return false
	}
	return (len(toks) == 1) || (toks[len(toks)-2].Type == token.EOL)
}

// Err returns the first lexical error seen, if any
func (l *Lexer) Err() error {
	if l.err == nil {
		return nil
	}
	return l.err
}

// NextToken scans for the next token
func (l *Lexer) NextToken() token.Token {
	var tok token.Token

	l.skipWhitespace()

	switch l.ch {
	case '\n':
		tok = newToken(token.EOL, l.ch)
	case ':':
		tok = newToken(token.EOL, l.ch)
	case '\'':
		// comment runs to end of line
		l.skipComment()
		return l.NextToken()
	case '"':
		tok = token.Token{Type: token.STRING, Literal: l.readString()}
	case '=':
		tok = newToken(token.EQ, l.ch)
	case '<':
		if l.peekChar() == '=' {
			l.readChar()
			tok = token.Token{Type: token.LTE, Literal: "<="}
		} else if l.peekChar() == '>' {
			l.readChar()
			tok = token.Token{Type: token.NOT_EQ, Literal: "<>"}
		} else {
			tok = newToken(token.LT, l.ch)
		}
	case '>':
		if l.peekChar() == '=' {
			l.readChar()
			tok = token.Token{Type: token.GTE, Literal: ">="}
		} else {
			tok = newToken(token.GT, l.ch)
		}
	case '+':
		tok = newToken(token.PLUS, l.ch)
	case '-':
		tok = newToken(token.MINUS, l.ch)
	case '*':
		tok = newToken(token.ASTERISK, l.ch)
	case '/':
		tok = newToken(token.SLASH, l.ch)
	case '(':
		tok = newToken(token.LPAREN, l.ch)
	case ')':
		tok = newToken(token.RPAREN, l.ch)
	case ',':
		tok = newToken(token.COMMA, l.ch)
	case ';':
		tok = newToken(token.SEMICOLON, l.ch)
	case 0:
		tok.Type = token.EOF
		tok.Literal = ""
	default:
		if isLetter(l.ch) {
			lit := strings.ToUpper(l.readIdentifier())
			tok = token.Token{Type: token.LookupIdent(lit, l.last == token.AS), Literal: lit}
			l.last = tok.Type
			return tok
		} else if isDigit(l.ch) || l.ch == '.' {
			tok = l.readNumber()
			l.last = tok.Type
			return tok
		}
		l.fail("unrecognized character")
		tok = newToken(token.ILLEGAL, l.ch)
	}

	l.readChar()
	l.last = tok.Type
	return tok
}

// identifiers start with a letter or underscore and may carry
// the $ suffix that marks a string-valued function name
func (l *Lexer) readIdentifier() string {
	position := l.position
	for isLetter(l.ch) || isDigit(l.ch) {
		l.readChar()
	}
	if l.ch == '$' {
		l.readChar()
	}
	return l.input[position:l.position]
}

func (l *Lexer) readChar() {
	if l.readPosition >= len(l.input) {
		l.ch = 0
	} else {
		l.ch = l.input[l.readPosition]
	}
	l.position = l.readPosition
	l.readPosition++
}

// readString consumes to the closing quote with no escape
// processing, the delimiting quotes stay in the literal for
// the parser to strip
func (l *Lexer) readString() string {
	position := l.position
	for {
		l.readChar()
		if (l.ch == '"') || (l.ch == 0) {
			break
		}
	}

	if l.ch == '"' {
		return l.input[position : l.position+1]
	}
	return l.input[position:l.position]
}

// readNumber accepts digits, one decimal point and an optional
// signed exponent
func (l *Lexer) readNumber() token.Token {
	position := l.position
	sawDot := false

	for {
		if isDigit(l.ch) {
			l.readChar()
			continue
		}
		if l.ch == '.' {
			if sawDot {
				l.fail("number has two decimal points")
			}
			sawDot = true
			l.readChar()
			continue
		}
		break
	}

	if (l.ch == 'e') || (l.ch == 'E') {
		l.readChar()
		if (l.ch == '+') || (l.ch == '-') {
			l.readChar()
		}
		if !isDigit(l.ch) {
			l.fail("exponent has no digits")
		}
		for isDigit(l.ch) {
			l.readChar()
		}
	}

	return token.Token{Type: token.NUM, Literal: l.input[position:l.position]}
}

// peekChar - take a look at, but don't consume the next character
func (l *Lexer) peekChar() byte {
	if l.readPosition >= len(l.input) {
		return 0
	}

	return l.input[l.readPosition]
}

func (l *Lexer) skipComment() {
	for (l.ch != '\n') && (l.ch != 0) {
		l.readChar()
	}
}

func (l *Lexer) fail(msg string) {
	if l.err == nil {
		l.err = &berrors.LexError{Pos: l.position, Char: l.ch, Msg: msg}
	}
}

func newToken(tokenType token.TokenType, ch byte) token.Token {
	return token.Token{Type: tokenType, Literal: string(ch)}
}

func isLetter(ch byte) bool {
	return 'a' <= ch && ch <= 'z' || 'A' <= ch && ch <= 'Z' || ch == '_'
}

func isDigit(ch byte) bool {
	return '0' <= ch && ch <= '9'
}

func (l *Lexer) skipWhitespace() {
	for l.ch == ' ' || l.ch == '\t' || l.ch == '\r' {
		l.readChar()
	}
}
