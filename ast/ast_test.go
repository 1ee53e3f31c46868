package ast

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/retrolang/basic/token"
)

func TestLetString(t *testing.T) {
	stmt := &LetStatement{
		Token: token.Token{Type: token.LET, Literal: "LET"},
		Name:  &Identifier{Token: token.Token{Type: token.IDENT, Literal: "X"}, Value: "X"},
		Value: &NumberLiteral{Token: token.Token{Type: token.NUM, Literal: "5"}, Value: 5},
	}

	assert.Equal(t, "LET X = 5", stmt.String())
}

func TestIndexedLetString(t *testing.T) {
	stmt := &LetStatement{
		Token: token.Token{Type: token.LET, Literal: "LET"},
		Name:  &Identifier{Token: token.Token{Type: token.IDENT, Literal: "A"}, Value: "A"},
		Index: &NumberLiteral{Token: token.Token{Type: token.NUM, Literal: "2"}, Value: 2},
		Value: &StringLiteral{Token: token.Token{Type: token.STRING, Literal: `"hi"`}, Value: "hi"},
	}

	assert.Equal(t, `LET A(2) = "hi"`, stmt.String())
}

func TestForString(t *testing.T) {
	stmt := &ForStatement{
		Token: token.Token{Type: token.FOR, Literal: "FOR"},
		Var:   &Identifier{Token: token.Token{Type: token.IDENT, Literal: "I"}, Value: "I"},
		Start: &NumberLiteral{Token: token.Token{Type: token.NUM, Literal: "1"}, Value: 1},
		End:   &NumberLiteral{Token: token.Token{Type: token.NUM, Literal: "3"}, Value: 3},
		Body: []Statement{
			&PrintStatement{
				Token: token.Token{Type: token.PRINT, Literal: "PRINT"},
				Items: []Expression{&Identifier{Token: token.Token{Type: token.IDENT, Literal: "I"}, Value: "I"}},
			},
		},
	}

	assert.Equal(t, "FOR I = 1 TO 3: PRINT I: NEXT I", stmt.String())
}

func TestExpressionStrings(t *testing.T) {
	not := &PrefixExpression{
		Token:    token.Token{Type: token.NOT, Literal: "NOT"},
		Operator: "NOT",
		Right:    &Identifier{Token: token.Token{Type: token.IDENT, Literal: "A"}, Value: "A"},
	}
	assert.Equal(t, "NOT A", not.String())

	neg := &PrefixExpression{
		Token:    token.Token{Type: token.MINUS, Literal: "-"},
		Operator: "-",
		Right:    &NumberLiteral{Token: token.Token{Type: token.NUM, Literal: "5"}, Value: 5},
	}
	assert.Equal(t, "-5", neg.String())

	call := &CallExpression{
		Token:    token.Token{Type: token.NUMFN, Literal: "SQR"},
		Function: "SQR",
		Arguments: []Expression{
			&NumberLiteral{Token: token.Token{Type: token.NUM, Literal: "9"}, Value: 9},
		},
	}
	assert.Equal(t, "SQR(9)", call.String())
}

func TestGotoAndLabelStrings(t *testing.T) {
	gt := &GotoStatement{Token: token.Token{Type: token.GOTO, Literal: "GOTO"}, Target: "TOP"}
	assert.Equal(t, "GOTO TOP", gt.String())

	lbl := &LabelStatement{Token: token.Token{Type: token.LABEL, Literal: "TOP"}, Name: "TOP"}
	assert.Equal(t, "TOP:", lbl.String())
}
