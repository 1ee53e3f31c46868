package token

import "strings"

type TokenType string

const (
	ILLEGAL = "ILLEGAL"
	EOF     = "EOF"
	EOL     = "EOL" // line break or colon, separates statements

	// Identifiers + literals
	IDENT  = "IDENT"  // count, total, x, y, ...
	NUM    = "NUM"    // 42, 3.14, 1.5E-3
	STRING = "STRING" // "A string literal"
	LABEL  = "LABEL"  // a jump target, name followed by a colon

	// Operators
	EQ       = "="
	NOT_EQ   = "<>"
	LT       = "<"
	GT       = ">"
	LTE      = "<="
	GTE      = ">="
	PLUS     = "+"
	MINUS    = "-"
	ASTERISK = "*"
	SLASH    = "/"

	// Delimiters
	LPAREN    = "("
	RPAREN    = ")"
	COMMA     = ","
	SEMICOLON = ";"

	// Keywords
	AND   = "AND"
	AS    = "AS"
	CLS   = "CLS"
	DIM   = "DIM"
	ELSE  = "ELSE"
	END   = "END"
	FOR   = "FOR"
	GOTO  = "GOTO"
	IF    = "IF"
	INPUT = "INPUT"
	LET   = "LET"
	NEXT  = "NEXT"
	NOT   = "NOT"
	OR    = "OR"
	PRINT = "PRINT"
	STEP  = "STEP"
	THEN  = "THEN"
	TO    = "TO"
	WEND  = "WEND"
	WHILE = "WHILE"

	// TYPE is one of INTEGER/SINGLE/DOUBLE/STRING, only valid after AS
	TYPE = "TYPE"

	// built-in function names get their own tags so the parser can
	// demand an argument list without re-reading the lexeme
	STRFN = "STRFN" // string-valued, e.g. STR$
	NUMFN = "NUMFN" // numeric, e.g. SQR
)

type Token struct {
	Type    TokenType
	Literal string
}

var keywords = map[string]TokenType{
	"and":   AND,
	"as":    AS,
	"cls":   CLS,
	"dim":   DIM,
	"else":  ELSE,
	"end":   END,
	"for":   FOR,
	"goto":  GOTO,
	"if":    IF,
	"input": INPUT,
	"let":   LET,
	"next":  NEXT,
	"not":   NOT,
	"or":    OR,
	"print": PRINT,
	"step":  STEP,
	"then":  THEN,
	"to":    TO,
	"wend":  WEND,
	"while": WHILE,
}

// variable type names are only keywords immediately after AS,
// everywhere else they are ordinary identifiers
var typeNames = map[string]bool{
	"INTEGER": true,
	"SINGLE":  true,
	"DOUBLE":  true,
	"STRING":  true,
}

// string-valued built-ins, all carrying the trailing-$ suffix
var strFuncs = map[string]bool{
	"CHR$":    true,
	"HEX$":    true,
	"LCASE$":  true,
	"LEFT$":   true,
	"MID$":    true,
	"OCT$":    true,
	"RIGHT$":  true,
	"SPACE$":  true,
	"STR$":    true,
	"STRING$": true,
	"UCASE$":  true,
}

var numFuncs = map[string]bool{
	"ABS":   true,
	"ASC":   true,
	"ATN":   true,
	"CDBL":  true,
	"CINT":  true,
	"COS":   true,
	"CSNG":  true,
	"EXP":   true,
	"FIX":   true,
	"INSTR": true,
	"INT":   true,
	"LEN":   true,
	"LOG":   true,
	"RND":   true,
	"SGN":   true,
	"SIN":   true,
	"SQR":   true,
	"TAN":   true,
	"VAL":   true,
}

// LookupIdent classifies an upper-cased word scanned by the lexer.
// afterAs is true when the previous token was AS, the only position
// where type names act as keywords.
func LookupIdent(ident string, afterAs bool) TokenType {
	id := strings.ToUpper(ident)

	if afterAs && typeNames[id] {
		return TYPE
	}

	if tok, ok := keywords[strings.ToLower(id)]; ok {
		return tok
	}

	if strFuncs[id] || strings.HasSuffix(id, "$") {
		return STRFN
	}

	if numFuncs[id] {
		return NUMFN
	}

	return IDENT
}

// IsTypeName reports whether name is a valid declared type.
func IsTypeName(name string) bool {
	return typeNames[strings.ToUpper(name)]
}
