package parser

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/retrolang/basic/ast"
	"github.com/retrolang/basic/berrors"
	"github.com/retrolang/basic/lexer"
	"github.com/retrolang/basic/token"
)

// operator precedence, lowest binding first
const (
	_ int = iota
	LOWEST
	LOGICOR  // OR
	LOGICAND // AND
	LOGICNOT // NOT x
	COMPARE  // = <> < > <= >=
	SUM      // + -
	PRODUCT  // * /
	PREFIX   // -x or +x
)

var precedences = map[token.TokenType]int{
	token.OR:       LOGICOR,
	token.AND:      LOGICAND,
	token.EQ:       COMPARE,
	token.NOT_EQ:   COMPARE,
	token.LT:       COMPARE,
	token.GT:       COMPARE,
	token.LTE:      COMPARE,
	token.GTE:      COMPARE,
	token.PLUS:     SUM,
	token.MINUS:    SUM,
	token.ASTERISK: PRODUCT,
	token.SLASH:    PRODUCT,
}

type (
	prefixParseFn func() ast.Expression
	infixParseFn  func(ast.Expression) ast.Expression
)

// Parser an instance of the recursive descent parser
type Parser struct {
	toks []token.Token
	pos  int

	curToken  token.Token
	peekToken token.Token

	errors []*berrors.SyntaxError

	prefixParseFns map[token.TokenType]prefixParseFn
	infixParseFns  map[token.TokenType]infixParseFn
}

// Parse scans and parses a source string in one call.
func Parse(source string) ([]ast.Statement, error) {
	toks, err := lexer.Tokenize(source)
	if err != nil {
		return nil, err
	}

	p := New(toks)
	program := p.ParseProgram()
	if len(p.errors) > 0 {
		return nil, p.errors[0]
	}
	return program, nil
}

// New create and initialize a parser over a token sequence
func New(toks []token.Token) *Parser {
	p := &Parser{toks: toks}

	p.prefixParseFns = make(map[token.TokenType]prefixParseFn)
	p.registerPrefix(token.IDENT, p.parseIdentifierExpression)
	p.registerPrefix(token.NUM, p.parseNumberLiteral)
	p.registerPrefix(token.STRING, p.parseStringLiteral)
	p.registerPrefix(token.MINUS, p.parsePrefixExpression)
	p.registerPrefix(token.PLUS, p.parsePrefixExpression)
	p.registerPrefix(token.NOT, p.parseNotExpression)
	p.registerPrefix(token.LPAREN, p.parseGroupedExpression)
	p.registerPrefix(token.STRFN, p.parseCallExpression)
	p.registerPrefix(token.NUMFN, p.parseCallExpression)

	p.infixParseFns = make(map[token.TokenType]infixParseFn)
	for tt := range precedences {
		p.registerInfix(tt, p.parseInfixExpression)
	}

	// Read two tokens, so curToken and peekToken are both set
	p.nextToken()
	p.nextToken()

	return p
}

func (p *Parser) registerPrefix(tokenType token.TokenType, fn prefixParseFn) {
	p.prefixParseFns[tokenType] = fn
}

func (p *Parser) registerInfix(tokenType token.TokenType, fn infixParseFn) {
	p.infixParseFns[tokenType] = fn
}

// Errors returns the syntax errors collected so far
func (p *Parser) Errors() []*berrors.SyntaxError {
	return p.errors
}

func (p *Parser) nextToken() {
	p.curToken = p.peekToken
	if p.pos < len(p.toks) {
		p.peekToken = p.toks[p.pos]
		p.pos++
	} else {
		p.peekToken = token.Token{Type: token.EOF}
	}
}

// ParseProgram builds the flattened statement list
func (p *Parser) ParseProgram() []ast.Statement {
	var program []ast.Statement

	for !p.curTokenIs(token.EOF) && (len(p.errors) == 0) {
		if p.curTokenIs(token.EOL) {
			p.nextToken()
			continue
		}

		stmt := p.parseStatement()
		if stmt != nil {
			program = append(program, stmt)
		}
		if len(p.errors) > 0 {
			break
		}
		if !p.endOfStatement() {
			p.peekError(token.EOL)
			break
		}
		p.nextToken()
	}

	return program
}

// a statement is over when the next token separates or ends input
func (p *Parser) endOfStatement() bool {
	return p.peekTokenIs(token.EOL) || p.peekTokenIs(token.EOF)
}

func (p *Parser) parseStatement() ast.Statement {
	defer untrace(trace("parseStatement " + string(p.curToken.Type)))

	switch p.curToken.Type {
	case token.LET:
		return p.parseLetStatement()
	case token.IDENT:
		// an implied LET, the statement starts with the variable
		return p.parseAssignment(p.curToken)
	case token.PRINT:
		return p.parsePrintStatement()
	case token.INPUT:
		return p.parseInputStatement()
	case token.CLS:
		return &ast.ClsStatement{Token: p.curToken}
	case token.DIM:
		return p.parseDimStatement()
	case token.IF:
		return p.parseIfStatement()
	case token.FOR:
		return p.parseForStatement()
	case token.WHILE:
		return p.parseWhileStatement()
	case token.GOTO:
		return p.parseGotoStatement()
	case token.LABEL:
		return &ast.LabelStatement{Token: p.curToken, Name: strings.ToUpper(p.curToken.Literal)}
	case token.NEXT:
		p.reportError(berrors.NextWithoutFor)
		return nil
	case token.WEND:
		p.reportError(berrors.WendWithoutWhile)
		return nil
	default:
		p.addError(fmt.Sprintf("unexpected token %q", p.curToken.Literal))
		return nil
	}
}

func (p *Parser) parseLetStatement() ast.Statement {
	tok := p.curToken
	if !p.expectPeek(token.IDENT) {
		return nil
	}
	return p.parseAssignment(tok)
}

// parseAssignment handles both LET A = expr and A = expr with an
// optional (index) on the target, curToken sits on the variable name
func (p *Parser) parseAssignment(tok token.Token) ast.Statement {
	stmt := &ast.LetStatement{Token: tok}
	stmt.Name = &ast.Identifier{Token: p.curToken, Value: strings.ToUpper(p.curToken.Literal)}

	if p.peekTokenIs(token.LPAREN) {
		p.nextToken()
		p.nextToken()
		stmt.Index = p.parseExpression(LOWEST)
		if !p.expectPeek(token.RPAREN) {
			return nil
		}
	}

	if !p.expectPeek(token.EQ) {
		return nil
	}
	p.nextToken()
	stmt.Value = p.parseExpression(LOWEST)

	return stmt
}

func (p *Parser) parsePrintStatement() ast.Statement {
	stmt := &ast.PrintStatement{Token: p.curToken}

	// a bare PRINT puts out a blank line
	if p.endOfStatement() || p.peekTokenIs(token.ELSE) {
		stmt.Items = append(stmt.Items, &ast.EmptyExpression{Token: p.curToken})
		return stmt
	}

	p.nextToken()
	stmt.Items = append(stmt.Items, p.parseExpression(LOWEST))

	for p.peekTokenIs(token.SEMICOLON) || p.peekTokenIs(token.COMMA) {
		sep := p.peekToken
		p.nextToken()

		// a comma widens the gap between the two values
		if sep.Type == token.COMMA {
			stmt.Items = append(stmt.Items, &ast.StringLiteral{Token: sep, Value: " "})
		}

		p.nextToken()
		stmt.Items = append(stmt.Items, p.parseExpression(LOWEST))
	}

	return stmt
}

func (p *Parser) parseInputStatement() ast.Statement {
	stmt := &ast.InputStatement{Token: p.curToken}
	if !p.expectPeek(token.IDENT) {
		return nil
	}
	stmt.Name = &ast.Identifier{Token: p.curToken, Value: strings.ToUpper(p.curToken.Literal)}
	return stmt
}

func (p *Parser) parseDimStatement() ast.Statement {
	stmt := &ast.DimStatement{Token: p.curToken, TypeName: "SINGLE"}

	if !p.expectPeek(token.IDENT) {
		return nil
	}
	stmt.Name = &ast.Identifier{Token: p.curToken, Value: strings.ToUpper(p.curToken.Literal)}

	if p.peekTokenIs(token.LPAREN) {
		p.nextToken()
		if !p.expectPeek(token.NUM) {
			return nil
		}
		size, err := strconv.Atoi(p.curToken.Literal)
		if (err != nil) || (size <= 0) {
			p.addError(fmt.Sprintf("array size must be a positive integer, got %s", p.curToken.Literal))
			return nil
		}
		stmt.Size = size
		if !p.expectPeek(token.RPAREN) {
			return nil
		}
	}

	if p.peekTokenIs(token.AS) {
		p.nextToken()
		if !p.expectPeek(token.TYPE) {
			return nil
		}
		stmt.TypeName = p.curToken.Literal
	}

	return stmt
}

func (p *Parser) parseIfStatement() ast.Statement {
	stmt := &ast.IfStatement{Token: p.curToken}

	p.nextToken()
	stmt.Condition = p.parseExpression(LOWEST)

	if !p.expectPeek(token.THEN) {
		return nil
	}

	if p.peekTokenIs(token.EOL) {
		return p.parseIfBlock(stmt)
	}

	// single line form, one statement per branch
	p.nextToken()
	cons := p.parseStatement()
	if cons == nil {
		return nil
	}
	stmt.Consequence = []ast.Statement{cons}

	if p.peekTokenIs(token.ELSE) {
		p.nextToken()
		p.nextToken()
		alt := p.parseStatement()
		if alt == nil {
			return nil
		}
		stmt.Alternative = []ast.Statement{alt}
	}

	return stmt
}

// the multi-line form runs to ELSE or the closing END IF
func (p *Parser) parseIfBlock(stmt *ast.IfStatement) ast.Statement {
	stmt.Consequence = p.parseBlock(token.ELSE, token.END)

	if p.curTokenIs(token.ELSE) {
		stmt.Alternative = p.parseBlock(token.END)
	}

	if !p.curTokenIs(token.END) {
		p.addError("IF block has no END IF")
		return nil
	}
	if !p.expectPeek(token.IF) {
		return nil
	}

	return stmt
}

func (p *Parser) parseForStatement() ast.Statement {
	stmt := &ast.ForStatement{Token: p.curToken}

	if !p.expectPeek(token.IDENT) {
		return nil
	}
	stmt.Var = &ast.Identifier{Token: p.curToken, Value: strings.ToUpper(p.curToken.Literal)}

	if !p.expectPeek(token.EQ) {
		return nil
	}
	p.nextToken()
	stmt.Start = p.parseExpression(LOWEST)

	if !p.expectPeek(token.TO) {
		return nil
	}
	p.nextToken()
	stmt.End = p.parseExpression(LOWEST)

	if p.peekTokenIs(token.STEP) {
		p.nextToken()
		p.nextToken()
		stmt.Step = p.parseExpression(LOWEST)
	}

	stmt.Body = p.parseBlock(token.NEXT)

	if !p.curTokenIs(token.NEXT) {
		p.addError("FOR has no matching NEXT")
		return nil
	}
	if !p.expectPeek(token.IDENT) {
		return nil
	}
	if !strings.EqualFold(p.curToken.Literal, stmt.Var.Value) {
		p.addError(fmt.Sprintf("NEXT %s does not match FOR %s", p.curToken.Literal, stmt.Var.Value))
		return nil
	}

	return stmt
}

func (p *Parser) parseWhileStatement() ast.Statement {
	stmt := &ast.WhileStatement{Token: p.curToken}

	p.nextToken()
	stmt.Condition = p.parseExpression(LOWEST)

	stmt.Body = p.parseBlock(token.WEND)

	if !p.curTokenIs(token.WEND) {
		p.reportError(berrors.WhileWithoutWend)
		return nil
	}

	return stmt
}

func (p *Parser) parseGotoStatement() ast.Statement {
	stmt := &ast.GotoStatement{Token: p.curToken}

	if !p.peekTokenIs(token.IDENT) && !p.peekTokenIs(token.LABEL) {
		p.peekError(token.IDENT)
		return nil
	}
	p.nextToken()
	stmt.Target = strings.ToUpper(p.curToken.Literal)

	return stmt
}

// parseBlock accumulates statements until one of the stop tokens
// shows up at statement position, curToken is left on the stop token
func (p *Parser) parseBlock(stops ...token.TokenType) []ast.Statement {
	var body []ast.Statement

	p.nextToken()
	for {
		if p.curTokenIs(token.EOF) {
			return body
		}
		if p.curTokenIs(token.EOL) {
			p.nextToken()
			continue
		}
		for _, s := range stops {
			if p.curTokenIs(s) {
				return body
			}
		}

		stmt := p.parseStatement()
		if len(p.errors) > 0 {
			return body
		}
		if stmt != nil {
			body = append(body, stmt)
		}
		if !p.endOfStatement() {
			p.peekError(token.EOL)
			return body
		}
		p.nextToken()
	}
}

func (p *Parser) parseExpression(precedence int) ast.Expression {
	defer untrace(trace("parseExpression"))

	prefix := p.prefixParseFns[p.curToken.Type]
	if prefix == nil {
		p.noPrefixParseFnError(p.curToken)
		return nil
	}
	leftExp := prefix()

	for !p.peekTokenIs(token.EOL) && precedence < p.peekPrecedence() {
		infix := p.infixParseFns[p.peekToken.Type]
		if infix == nil {
			return leftExp
		}

		p.nextToken()
		leftExp = infix(leftExp)
	}

	return leftExp
}

// an identifier is a plain variable, or an array access when
// directly followed by a parenthesized index
func (p *Parser) parseIdentifierExpression() ast.Expression {
	ident := &ast.Identifier{Token: p.curToken, Value: strings.ToUpper(p.curToken.Literal)}

	if !p.peekTokenIs(token.LPAREN) {
		return ident
	}

	exp := &ast.IndexExpression{Token: ident.Token, Name: ident}
	p.nextToken()
	p.nextToken()
	exp.Index = p.parseExpression(LOWEST)
	if !p.expectPeek(token.RPAREN) {
		return nil
	}

	return exp
}

func (p *Parser) parseNumberLiteral() ast.Expression {
	lit := &ast.NumberLiteral{Token: p.curToken}

	value, err := strconv.ParseFloat(p.curToken.Literal, 64)
	if err != nil {
		p.addError(fmt.Sprintf("could not parse %q as a number", p.curToken.Literal))
		return nil
	}
	lit.Value = value

	return lit
}

func (p *Parser) parseStringLiteral() ast.Expression {
	lit := p.curToken.Literal
	lit = strings.TrimPrefix(lit, `"`)
	lit = strings.TrimSuffix(lit, `"`)

	return &ast.StringLiteral{Token: p.curToken, Value: lit}
}

func (p *Parser) parsePrefixExpression() ast.Expression {
	expression := &ast.PrefixExpression{Token: p.curToken, Operator: p.curToken.Literal}

	p.nextToken()
	expression.Right = p.parseExpression(PREFIX)

	return expression
}

// NOT binds tighter than AND but looser than the comparisons,
// its operand parses at NOT's own level
func (p *Parser) parseNotExpression() ast.Expression {
	expression := &ast.PrefixExpression{Token: p.curToken, Operator: token.NOT}

	p.nextToken()
	expression.Right = p.parseExpression(LOGICNOT)

	return expression
}

func (p *Parser) parseGroupedExpression() ast.Expression {
	group := &ast.GroupedExpression{Token: p.curToken}

	p.nextToken()
	group.Exp = p.parseExpression(LOWEST)

	if !p.expectPeek(token.RPAREN) {
		return nil
	}

	return group
}

func (p *Parser) parseCallExpression() ast.Expression {
	exp := &ast.CallExpression{Token: p.curToken, Function: strings.ToUpper(p.curToken.Literal)}

	if !p.expectPeek(token.LPAREN) {
		return nil
	}
	exp.Arguments = p.parseCallArguments()

	return exp
}

func (p *Parser) parseCallArguments() []ast.Expression {
	args := []ast.Expression{}

	if p.peekTokenIs(token.RPAREN) {
		p.nextToken()
		return args
	}

	p.nextToken()
	args = append(args, p.parseExpression(LOWEST))

	for p.peekTokenIs(token.COMMA) {
		p.nextToken()
		p.nextToken()
		args = append(args, p.parseExpression(LOWEST))
	}

	if !p.expectPeek(token.RPAREN) {
		return nil
	}

	return args
}

func (p *Parser) parseInfixExpression(left ast.Expression) ast.Expression {
	expression := &ast.InfixExpression{
		Token:    p.curToken,
		Operator: p.curToken.Literal,
		Left:     left,
	}

	precedence := p.curPrecedence()

	// AND and OR own their tier, the bump keeps them left-associative
	if p.curTokenIs(token.AND) || p.curTokenIs(token.OR) {
		precedence++
	}

	p.nextToken()
	expression.Right = p.parseExpression(precedence)

	return expression
}

func (p *Parser) curTokenIs(t token.TokenType) bool {
	return p.curToken.Type == t
}

func (p *Parser) peekTokenIs(t token.TokenType) bool {
	return p.peekToken.Type == t
}

func (p *Parser) expectPeek(t token.TokenType) bool {
	if p.peekTokenIs(t) {
		p.nextToken()
		return true
	}

	p.peekError(t)
	return false
}

func (p *Parser) peekPrecedence() int {
	if p, ok := precedences[p.peekToken.Type]; ok {
		return p
	}

	return LOWEST
}

func (p *Parser) curPrecedence() int {
	if p, ok := precedences[p.curToken.Type]; ok {
		return p
	}

	return LOWEST
}

func (p *Parser) peekError(t token.TokenType) {
	p.errors = append(p.errors, &berrors.SyntaxError{
		Tok: p.peekToken,
		Msg: fmt.Sprintf("expected next token to be %s, got %s instead", t, p.peekToken.Type),
	})
}

func (p *Parser) noPrefixParseFnError(t token.Token) {
	p.errors = append(p.errors, &berrors.SyntaxError{
		Tok: t,
		Msg: fmt.Sprintf("unexpected %q in expression", t.Literal),
	})
}

func (p *Parser) addError(msg string) {
	p.errors = append(p.errors, &berrors.SyntaxError{Tok: p.curToken, Msg: msg})
}

func (p *Parser) reportError(code int) {
	p.errors = append(p.errors, &berrors.SyntaxError{Tok: p.curToken, Msg: berrors.TextForError(code)})
}
