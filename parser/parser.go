package parser

import (
	"fmt"
	"strconv"
)

// Binding strengths used by precedence climbing.
const (
	precLowest  = 0
	precSum     = 1 // comparison, equality, + and -
	precProduct = 2
	precUnary   = 2
	precCall    = 3 // call and index
)

func precedence(tt TokenType) int {
	switch tt {
	case TokenEqualEqual, TokenBangEqual,
		TokenLess, TokenLessEqual, TokenGreater, TokenGreaterEqual,
		TokenPlus, TokenMinus:
		return precSum
	case TokenStar, TokenSlash:
		return precProduct
	case TokenLParen, TokenLBracket:
		return precCall
	}
	return precLowest
}

// Parser builds statement lists from a fully lexed token stream.
type Parser struct {
	tokens []Token
	pos    int

	errors     []string
	eofErrors  int  // diagnostics raised at EOF
	incomplete bool // some EOF diagnostic was an unclosed construct
	aborted    bool
}

// New lexes src completely. Lexer failures are returned as is.
func New(src string) (*Parser, error) {
	tokens, err := tokenize(src)
	if err != nil {
		return nil, err
	}
	return &Parser{tokens: tokens}, nil
}

// Parse returns the program, or a *SyntaxError carrying every diagnostic.
func (p *Parser) Parse() ([]Stmt, error) {
	stmts := p.statementList(TokenEOF)
	if len(p.errors) > 0 {
		return nil, &SyntaxError{
			Messages:   p.errors,
			Incomplete: p.incomplete && p.eofErrors == len(p.errors),
		}
	}
	return stmts, nil
}

func (p *Parser) curr() Token {
	return p.peekAt(0)
}

func (p *Parser) peekAt(offset int) Token {
	idx := p.pos + offset
	if idx >= len(p.tokens) {
		return p.tokens[len(p.tokens)-1]
	}
	return p.tokens[idx]
}

func (p *Parser) advance() Token {
	tok := p.curr()
	if tok.Type != TokenEOF {
		p.pos++
	}
	return tok
}

func (p *Parser) skip(tt TokenType) {
	if p.curr().Type == tt {
		p.advance()
	}
}

// expect consumes a token of the given type. On mismatch it records a
// diagnostic and returns a placeholder without consuming anything.
func (p *Parser) expect(tt TokenType) (Token, bool) {
	tok := p.curr()
	if tok.Type == tt {
		p.advance()
		return tok, true
	}
	p.errorAt(tok, tt != TokenSemicolon, "expected %s but got %s at line %d", tt, tok.Type, tok.Line)
	return Token{Type: tt, Line: tok.Line}, false
}

func (p *Parser) errorAt(tok Token, incomplete bool, format string, args ...interface{}) {
	p.errors = append(p.errors, fmt.Sprintf(format, args...))
	if tok.Type == TokenEOF {
		p.eofErrors++
		if incomplete {
			p.incomplete = true
		}
	}
}

// statementList parses statements until the closing token or EOF. A step
// that consumes nothing stops the whole parse.
func (p *Parser) statementList(closing TokenType) []Stmt {
	var stmts []Stmt
	for !p.aborted && p.curr().Type != closing && p.curr().Type != TokenEOF {
		start := p.pos
		stmt := p.parseStatement()
		if p.pos == start {
			p.aborted = true
			break
		}
		stmts = append(stmts, stmt)
	}
	return stmts
}

func (p *Parser) parseStatement() Stmt {
	switch p.curr().Type {
	case TokenLet:
		return p.parseLet()
	case TokenReturn:
		return p.parseReturn()
	}
	line := p.curr().Line
	expr := p.parseExpression(precLowest)
	if p.curr().Type == TokenAssign {
		return p.parseAssign(expr)
	}
	p.skip(TokenSemicolon)
	return &ExprStmt{Expr: expr, Ln: line}
}

func (p *Parser) parseLet() Stmt {
	letTok := p.advance()
	nameTok, _ := p.expect(TokenIdent)
	p.expect(TokenAssign)
	value := p.parseExpression(precLowest)
	p.expect(TokenSemicolon)
	return &LetStmt{
		Name:  &Identifier{Name: nameTok.Text, Ln: nameTok.Line},
		Value: value,
		Ln:    letTok.Line,
	}
}

func (p *Parser) parseReturn() Stmt {
	retTok := p.advance()
	var value Expr
	switch p.curr().Type {
	case TokenSemicolon, TokenRBrace, TokenEOF:
	default:
		value = p.parseExpression(precLowest)
	}
	p.skip(TokenSemicolon)
	return &ReturnStmt{Value: value, Ln: retTok.Line}
}

func (p *Parser) parseAssign(target Expr) Stmt {
	eqTok := p.advance()
	switch target.(type) {
	case *Identifier, *IndexExpr:
	default:
		p.errorAt(eqTok, false, "invalid assignment target at line %d", eqTok.Line)
	}
	value := p.parseExpression(precLowest)
	p.skip(TokenSemicolon)
	return &AssignStmt{Target: target, Value: value, Ln: target.Line()}
}

func (p *Parser) parseExpression(minPrec int) Expr {
	left := p.parsePrefix()
	for !p.aborted {
		tok := p.curr()
		prec := precedence(tok.Type)
		if prec <= minPrec {
			break
		}
		switch tok.Type {
		case TokenLParen:
			left = p.parseCall(left)
		case TokenLBracket:
			left = p.parseIndex(left)
		default:
			p.advance()
			right := p.parseExpression(prec)
			left = &BinaryExpr{Op: tok.Type, Left: left, Right: right, Ln: tok.Line}
		}
	}
	return left
}

func (p *Parser) parsePrefix() Expr {
	tok := p.curr()
	switch tok.Type {
	case TokenNumber:
		p.advance()
		val, err := strconv.ParseFloat(tok.Text, 64)
		if err != nil {
			p.errorAt(tok, false, "invalid number %q at line %d", tok.Text, tok.Line)
		}
		return &NumberLiteral{Value: val, Ln: tok.Line}
	case TokenString:
		p.advance()
		return &StringLiteral{Value: tok.Text, Ln: tok.Line}
	case TokenTrue, TokenFalse:
		p.advance()
		return &BooleanLiteral{Value: tok.Type == TokenTrue, Ln: tok.Line}
	case TokenNull:
		p.advance()
		return &NullLiteral{Ln: tok.Line}
	case TokenIdent:
		p.advance()
		return &Identifier{Name: tok.Text, Ln: tok.Line}
	case TokenMinus, TokenBang:
		p.advance()
		operand := p.parseExpression(precUnary)
		return &UnaryExpr{Op: tok.Type, Operand: operand, Ln: tok.Line}
	case TokenLParen:
		p.advance()
		expr := p.parseExpression(precLowest)
		p.expect(TokenRParen)
		return expr
	case TokenIf:
		return p.parseIf()
	case TokenWhile:
		return p.parseWhile()
	case TokenFunction:
		return p.parseFunctionLiteral()
	case TokenLBracket:
		return p.parseArrayLiteral()
	case TokenLBrace:
		if p.peekAt(2).Type == TokenColon {
			return p.parseDictLiteral()
		}
		return p.parseBlock()
	default:
		p.errorAt(tok, true, "unexpected %s at line %d", tok.Type, tok.Line)
		return &NullLiteral{Ln: tok.Line}
	}
}

func (p *Parser) parseBraced() []Stmt {
	p.expect(TokenLBrace)
	stmts := p.statementList(TokenRBrace)
	p.expect(TokenRBrace)
	return stmts
}

func (p *Parser) parseBlock() Expr {
	line := p.curr().Line
	return &BlockExpr{Stmts: p.parseBraced(), Ln: line}
}

func (p *Parser) parseIf() Expr {
	ifTok := p.advance()
	p.expect(TokenLParen)
	cond := p.parseExpression(precLowest)
	p.expect(TokenRParen)
	then := p.parseBraced()
	var alt []Stmt
	if p.curr().Type == TokenElse {
		p.advance()
		if p.curr().Type == TokenIf {
			nested := p.parseIf()
			alt = []Stmt{&ExprStmt{Expr: nested, Ln: nested.Line()}}
		} else {
			alt = p.parseBraced()
		}
	}
	return &IfExpr{Cond: cond, Then: then, Else: alt, Ln: ifTok.Line}
}

func (p *Parser) parseWhile() Expr {
	whTok := p.advance()
	p.expect(TokenLParen)
	cond := p.parseExpression(precLowest)
	p.expect(TokenRParen)
	body := p.parseBraced()
	return &WhileExpr{Cond: cond, Body: body, Ln: whTok.Line}
}

func (p *Parser) parseFunctionLiteral() Expr {
	fnTok := p.advance()
	p.expect(TokenLParen)
	var params []*Identifier
	for p.curr().Type != TokenRParen && p.curr().Type != TokenEOF {
		tok, ok := p.expect(TokenIdent)
		if ok {
			params = append(params, &Identifier{Name: tok.Text, Ln: tok.Line})
		}
		if p.curr().Type != TokenComma {
			break
		}
		p.advance()
	}
	p.expect(TokenRParen)
	body := p.parseBraced()
	return &FunctionLiteral{Params: params, Body: body, Ln: fnTok.Line}
}

// parseExprList collects comma-separated expressions up to closing.
func (p *Parser) parseExprList(closing TokenType) []Expr {
	var exprs []Expr
	for p.curr().Type != closing && p.curr().Type != TokenEOF {
		exprs = append(exprs, p.parseExpression(precLowest))
		if p.curr().Type != TokenComma {
			break
		}
		p.advance()
	}
	p.expect(closing)
	return exprs
}

func (p *Parser) parseCall(callee Expr) Expr {
	tok := p.advance()
	args := p.parseExprList(TokenRParen)
	return &CallExpr{Callee: callee, Args: args, Ln: tok.Line}
}

func (p *Parser) parseIndex(target Expr) Expr {
	tok := p.advance()
	index := p.parseExpression(precLowest)
	p.expect(TokenRBracket)
	return &IndexExpr{Target: target, Index: index, Ln: tok.Line}
}

func (p *Parser) parseArrayLiteral() Expr {
	tok := p.advance()
	elems := p.parseExprList(TokenRBracket)
	return &ArrayLiteral{Elements: elems, Ln: tok.Line}
}

func (p *Parser) parseDictLiteral() Expr {
	tok := p.advance()
	var entries []DictEntry
	for p.curr().Type != TokenRBrace && p.curr().Type != TokenEOF {
		key := p.parseExpression(precLowest)
		p.expect(TokenColon)
		value := p.parseExpression(precLowest)
		entries = append(entries, DictEntry{Key: key, Value: value})
		if p.curr().Type != TokenComma {
			break
		}
		p.advance()
	}
	p.expect(TokenRBrace)
	return &DictLiteral{Entries: entries, Ln: tok.Line}
}
