package ast

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/retrolang/basic/token"
)

// Node defines interface for all node types
type Node interface {
	TokenLiteral() string
	String() string
}

// Statement defines the interface for all statement nodes
type Statement interface {
	Node
	statementNode()
}

// Expression defines interface for all expression nodes
type Expression interface {
	Node
	expressionNode()
}

// Identifier holds a variable reference
type Identifier struct {
	Token token.Token
	Value string // upper-cased name
}

func (i *Identifier) expressionNode()      {}
func (i *Identifier) TokenLiteral() string { return strings.ToUpper(i.Token.Literal) }
func (i *Identifier) String() string       { return i.Value }

// StringLiteral holds a StringLiteral eg. "Hello World"
type StringLiteral struct {
	Token token.Token
	Value string // quotes already stripped
}

func (sl *StringLiteral) expressionNode()      {}
func (sl *StringLiteral) TokenLiteral() string { return sl.Token.Literal }
func (sl *StringLiteral) String() string {
	var out bytes.Buffer
	out.WriteString(`"`)
	out.WriteString(sl.Value)
	out.WriteString(`"`)
	return out.String()
}

// NumberLiteral holds any numeric literal, the runtime
// keeps all numbers as 64bit floats
type NumberLiteral struct {
	Token token.Token
	Value float64
}

func (nl *NumberLiteral) expressionNode()      {}
func (nl *NumberLiteral) TokenLiteral() string { return nl.Token.Literal }
func (nl *NumberLiteral) String() string       { return nl.Token.Literal }

// EmptyExpression is what a bare PRINT carries, it renders a blank line
type EmptyExpression struct {
	Token token.Token
}

func (ee *EmptyExpression) expressionNode()      {}
func (ee *EmptyExpression) TokenLiteral() string { return ee.Token.Literal }
func (ee *EmptyExpression) String() string       { return "" }

// PrefixExpression the operators NOT, unary + and unary -
type PrefixExpression struct {
	Token    token.Token
	Operator string
	Right    Expression
}

func (pe *PrefixExpression) expressionNode()      {}
func (pe *PrefixExpression) TokenLiteral() string { return pe.Token.Literal }
func (pe *PrefixExpression) String() string {
	var out bytes.Buffer
	out.WriteString(pe.Operator)
	if pe.Operator == token.NOT {
		out.WriteString(" ")
	}
	out.WriteString(pe.Right.String())
	return out.String()
}

// InfixExpression things like 5 + 6
type InfixExpression struct {
	Token    token.Token // The operator token, e.g. +
	Left     Expression
	Operator string
	Right    Expression
}

func (ie *InfixExpression) expressionNode()      {}
func (ie *InfixExpression) TokenLiteral() string { return ie.Token.Literal }
func (ie *InfixExpression) String() string {
	var out bytes.Buffer
	out.WriteString(ie.Left.String())
	out.WriteString(" " + ie.Operator + " ")
	out.WriteString(ie.Right.String())
	return out.String()
}

// GroupedExpression is enclosed in parentheses
type GroupedExpression struct {
	Token token.Token
	Exp   Expression
}

func (ge *GroupedExpression) expressionNode()      {}
func (ge *GroupedExpression) TokenLiteral() string { return ge.Token.Literal }
func (ge *GroupedExpression) String() string {
	var out bytes.Buffer
	out.WriteString("(")
	out.WriteString(ge.Exp.String())
	out.WriteString(")")
	return out.String()
}

// CallExpression invokes a built-in function
type CallExpression struct {
	Token     token.Token // the function name token
	Function  string      // upper-cased built-in name
	Arguments []Expression
}

func (ce *CallExpression) expressionNode()      {}
func (ce *CallExpression) TokenLiteral() string { return strings.ToUpper(ce.Token.Literal) }
func (ce *CallExpression) String() string {
	var out bytes.Buffer

	args := []string{}
	for _, a := range ce.Arguments {
		args = append(args, a.String())
	}

	out.WriteString(ce.Function)
	out.WriteString("(")
	out.WriteString(strings.Join(args, ", "))
	out.WriteString(")")

	return out.String()
}

// IndexExpression reads one slot of a DIM'd array
type IndexExpression struct {
	Token token.Token // the array name token
	Name  *Identifier
	Index Expression
}

func (ix *IndexExpression) expressionNode()      {}
func (ix *IndexExpression) TokenLiteral() string { return strings.ToUpper(ix.Token.Literal) }
func (ix *IndexExpression) String() string {
	var out bytes.Buffer
	out.WriteString(ix.Name.String())
	out.WriteString("(")
	out.WriteString(ix.Index.String())
	out.WriteString(")")
	return out.String()
}

// PrintStatement writes one line of output, separator
// semantics are baked into Items during parsing
type PrintStatement struct {
	Token token.Token
	Items []Expression
}

func (ps *PrintStatement) statementNode()       {}
func (ps *PrintStatement) TokenLiteral() string { return strings.ToUpper(ps.Token.Literal) }
func (ps *PrintStatement) String() string {
	var out bytes.Buffer

	out.WriteString("PRINT")
	for _, it := range ps.Items {
		s := it.String()
		if s == "" {
			continue
		}
		out.WriteString(" ")
		out.WriteString(s)
	}

	return out.String()
}

// LetStatement assigns to a variable or an array slot
type LetStatement struct {
	Token token.Token // the LET token, or the name for an implied LET
	Name  *Identifier
	Index Expression // nil for a scalar assignment
	Value Expression
}

func (ls *LetStatement) statementNode()       {}
func (ls *LetStatement) TokenLiteral() string { return strings.ToUpper(ls.Token.Literal) }
func (ls *LetStatement) String() string {
	var out bytes.Buffer

	out.WriteString("LET ")
	out.WriteString(ls.Name.String())
	if ls.Index != nil {
		out.WriteString("(")
		out.WriteString(ls.Index.String())
		out.WriteString(")")
	}
	out.WriteString(" = ")
	if ls.Value != nil {
		out.WriteString(ls.Value.String())
	}

	return out.String()
}

// InputStatement reads one line from the console into a variable
type InputStatement struct {
	Token token.Token
	Name  *Identifier
}

func (is *InputStatement) statementNode()       {}
func (is *InputStatement) TokenLiteral() string { return strings.ToUpper(is.Token.Literal) }
func (is *InputStatement) String() string       { return "INPUT " + is.Name.String() }

// ClsStatement command to clear screen
type ClsStatement struct {
	Token token.Token
}

func (cls *ClsStatement) statementNode()       {}
func (cls *ClsStatement) TokenLiteral() string { return strings.ToUpper(cls.Token.Literal) }
func (cls *ClsStatement) String() string       { return "CLS" }

// IfStatement holds both the single-line and the END IF block form
type IfStatement struct {
	Token       token.Token
	Condition   Expression
	Consequence []Statement
	Alternative []Statement // nil when there is no ELSE
}

func (ifs *IfStatement) statementNode()       {}
func (ifs *IfStatement) TokenLiteral() string { return strings.ToUpper(ifs.Token.Literal) }
func (ifs *IfStatement) String() string {
	var out bytes.Buffer

	out.WriteString("IF ")
	out.WriteString(ifs.Condition.String())
	out.WriteString(" THEN ")
	for _, s := range ifs.Consequence {
		out.WriteString(s.String())
	}
	if ifs.Alternative != nil {
		out.WriteString(" ELSE ")
		for _, s := range ifs.Alternative {
			out.WriteString(s.String())
		}
	}

	return out.String()
}

// DimStatement declares a scalar or a one dimensional array
type DimStatement struct {
	Token    token.Token
	Name     *Identifier
	TypeName string // INTEGER/SINGLE/DOUBLE/STRING
	Size     int    // 0 for a scalar
}

func (ds *DimStatement) statementNode()       {}
func (ds *DimStatement) TokenLiteral() string { return strings.ToUpper(ds.Token.Literal) }
func (ds *DimStatement) String() string {
	var out bytes.Buffer

	out.WriteString("DIM ")
	out.WriteString(ds.Name.String())
	if ds.Size > 0 {
		out.WriteString(fmt.Sprintf("(%d)", ds.Size))
	}
	out.WriteString(" AS ")
	out.WriteString(ds.TypeName)

	return out.String()
}

// ForStatement counts its variable from Start to End by Step
type ForStatement struct {
	Token token.Token
	Var   *Identifier
	Start Expression
	End   Expression
	Step  Expression // nil means 1
	Body  []Statement
}

func (fs *ForStatement) statementNode()       {}
func (fs *ForStatement) TokenLiteral() string { return strings.ToUpper(fs.Token.Literal) }
func (fs *ForStatement) String() string {
	var out bytes.Buffer

	out.WriteString("FOR ")
	out.WriteString(fs.Var.String())
	out.WriteString(" = ")
	out.WriteString(fs.Start.String())
	out.WriteString(" TO ")
	out.WriteString(fs.End.String())
	if fs.Step != nil {
		out.WriteString(" STEP ")
		out.WriteString(fs.Step.String())
	}
	out.WriteString(": ")
	for _, s := range fs.Body {
		out.WriteString(s.String())
		out.WriteString(": ")
	}
	out.WriteString("NEXT ")
	out.WriteString(fs.Var.String())

	return out.String()
}

// WhileStatement loops its body while the condition holds
type WhileStatement struct {
	Token     token.Token
	Condition Expression
	Body      []Statement
}

func (ws *WhileStatement) statementNode()       {}
func (ws *WhileStatement) TokenLiteral() string { return strings.ToUpper(ws.Token.Literal) }
func (ws *WhileStatement) String() string {
	var out bytes.Buffer

	out.WriteString("WHILE ")
	out.WriteString(ws.Condition.String())
	out.WriteString(": ")
	for _, s := range ws.Body {
		out.WriteString(s.String())
		out.WriteString(": ")
	}
	out.WriteString("WEND")

	return out.String()
}

// GotoStatement triggers a jump to a label
type GotoStatement struct {
	Token  token.Token
	Target string // upper-cased label name
}

func (gt *GotoStatement) statementNode()       {}
func (gt *GotoStatement) TokenLiteral() string { return strings.ToUpper(gt.Token.Literal) }
func (gt *GotoStatement) String() string       { return "GOTO " + gt.Target }

// LabelStatement marks a jump target, recognized by the
// lexer's trailing colon rule
type LabelStatement struct {
	Token token.Token
	Name  string // upper-cased
}

func (ls *LabelStatement) statementNode()       {}
func (ls *LabelStatement) TokenLiteral() string { return strings.ToUpper(ls.Token.Literal) }
func (ls *LabelStatement) String() string       { return ls.Name + ":" }
