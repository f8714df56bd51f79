package parser

import (
	"io"
	"strings"
	"unicode/utf8"
)

type lexer struct {
	src  string
	pos  int
	line int
}

func newLexer(src string) *lexer {
	return &lexer{
		src:  src,
		line: 1,
	}
}

type runeState struct {
	pos  int
	line int
}

func (lx *lexer) mark() runeState {
	return runeState{pos: lx.pos, line: lx.line}
}

func (lx *lexer) restore(state runeState) {
	lx.pos = state.pos
	lx.line = state.line
}

func (lx *lexer) readRune() (rune, runeState, error) {
	state := lx.mark()
	if lx.pos >= len(lx.src) {
		return 0, state, io.EOF
	}
	r, w := utf8.DecodeRuneInString(lx.src[lx.pos:])
	lx.pos += w
	if r == '\n' {
		lx.line++
	}
	return r, state, nil
}

func (lx *lexer) match(expected rune) bool {
	r, state, err := lx.readRune()
	if err != nil {
		return false
	}
	if r != expected {
		lx.restore(state)
		return false
	}
	return true
}

func (lx *lexer) skipWhitespace() {
	for {
		r, state, err := lx.readRune()
		if err != nil {
			return
		}
		switch {
		case isWhitespace(r):
			continue
		case r == '/':
			if lx.match('/') {
				lx.skipLine()
				continue
			}
			lx.restore(state)
			return
		default:
			lx.restore(state)
			return
		}
	}
}

func (lx *lexer) skipLine() {
	for {
		r, state, err := lx.readRune()
		if err != nil {
			return
		}
		if r == '\n' {
			// the newline itself is consumed by skipWhitespace
			lx.restore(state)
			return
		}
	}
}

// nextToken returns the next token; at end of input it returns EOF forever.
func (lx *lexer) nextToken() (Token, error) {
	lx.skipWhitespace()

	start := lx.mark()
	r, _, err := lx.readRune()
	if err == io.EOF {
		return Token{Type: TokenEOF, Line: lx.line}, nil
	}

	switch {
	case isIdentifierStart(r):
		return lx.scanIdentifier(r, start), nil
	case isDigit(r):
		return lx.scanNumber(r, start), nil
	case r == '"':
		return lx.scanString(start)
	}

	var tt TokenType
	switch r {
	case '=':
		tt = lx.either('=', TokenEqualEqual, TokenAssign)
	case '!':
		tt = lx.either('=', TokenBangEqual, TokenBang)
	case '<':
		tt = lx.either('=', TokenLessEqual, TokenLess)
	case '>':
		tt = lx.either('=', TokenGreaterEqual, TokenGreater)
	case '+':
		tt = TokenPlus
	case '-':
		tt = TokenMinus
	case '*':
		tt = TokenStar
	case '/':
		tt = TokenSlash
	case ',':
		tt = TokenComma
	case ';':
		tt = TokenSemicolon
	case ':':
		tt = TokenColon
	case '(':
		tt = TokenLParen
	case ')':
		tt = TokenRParen
	case '{':
		tt = TokenLBrace
	case '}':
		tt = TokenRBrace
	case '[':
		tt = TokenLBracket
	case ']':
		tt = TokenRBracket
	default:
		return Token{Type: TokenIllegal, Line: start.line}, &IllegalTokenError{Char: r, Line: start.line}
	}
	return Token{Type: tt, Line: start.line}, nil
}

func (lx *lexer) either(next rune, two, one TokenType) TokenType {
	if lx.match(next) {
		return two
	}
	return one
}

func (lx *lexer) scanIdentifier(initial rune, start runeState) Token {
	var builder strings.Builder
	builder.WriteRune(initial)
	for {
		r, state, err := lx.readRune()
		if err != nil {
			break
		}
		if !isIdentifierPart(r) {
			lx.restore(state)
			break
		}
		builder.WriteRune(r)
	}
	lexeme := builder.String()
	if tt, ok := keywordToken(lexeme); ok {
		return Token{Type: tt, Line: start.line}
	}
	return Token{Type: TokenIdent, Text: lexeme, Line: start.line}
}

func (lx *lexer) scanNumber(initial rune, start runeState) Token {
	var builder strings.Builder
	builder.WriteRune(initial)
	seenDot := false
	for {
		r, state, err := lx.readRune()
		if err != nil {
			break
		}
		if isDigit(r) {
			builder.WriteRune(r)
			continue
		}
		if r == '.' && !seenDot {
			seenDot = true
			builder.WriteRune(r)
			continue
		}
		lx.restore(state)
		break
	}
	return Token{Type: TokenNumber, Text: builder.String(), Line: start.line}
}

func (lx *lexer) scanString(start runeState) (Token, error) {
	var builder strings.Builder
	for {
		r, _, err := lx.readRune()
		if err == io.EOF {
			return Token{Type: TokenIllegal, Line: start.line}, newIncompleteError("unterminated string at line %d", start.line)
		}
		if r == '"' {
			break
		}
		builder.WriteRune(r)
	}
	return Token{Type: TokenString, Text: builder.String(), Line: start.line}, nil
}

func isWhitespace(r rune) bool {
	switch r {
	case ' ', '\t', '\n', '\r', '\v', '\f':
		return true
	}
	return false
}

func isLetter(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
}

func isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}

func isIdentifierStart(r rune) bool {
	return isLetter(r) || r == '_'
}

func isIdentifierPart(r rune) bool {
	return isLetter(r) || isDigit(r) || r == '_'
}

// tokenize drains the lexer into a token list terminated by EOF.
func tokenize(src string) ([]Token, error) {
	lx := newLexer(src)
	var tokens []Token
	for {
		tok, err := lx.nextToken()
		if err != nil {
			return nil, err
		}
		tokens = append(tokens, tok)
		if tok.Type == TokenEOF {
			return tokens, nil
		}
	}
}
