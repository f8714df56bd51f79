package parser

import "sort"

// TokenType enumerates lexical categories recognised by the Mica lexer.
type TokenType int

const (
	TokenEOF TokenType = iota
	TokenIllegal

	TokenIdent
	TokenNumber
	TokenString

	// Keywords
	TokenFunction
	TokenLet
	TokenTrue
	TokenFalse
	TokenNull
	TokenIf
	TokenElse
	TokenReturn
	TokenWhile

	// Operators
	TokenAssign       // =
	TokenPlus         // +
	TokenMinus        // -
	TokenStar         // *
	TokenSlash        // /
	TokenLess         // <
	TokenGreater      // >
	TokenLessEqual    // <=
	TokenGreaterEqual // >=
	TokenEqualEqual   // ==
	TokenBangEqual    // !=
	TokenBang         // !

	// Delimiters
	TokenComma     // ,
	TokenSemicolon // ;
	TokenColon     // :
	TokenLParen    // (
	TokenRParen    // )
	TokenLBrace    // {
	TokenRBrace    // }
	TokenLBracket  // [
	TokenRBracket  // ]
)

func (tt TokenType) String() string {
	switch tt {
	case TokenEOF:
		return "EOF"
	case TokenIllegal:
		return "ILLEGAL"
	case TokenIdent:
		return "IDENT"
	case TokenNumber:
		return "INT"
	case TokenString:
		return "STRING"
	case TokenFunction:
		return "FUNCTION"
	case TokenLet:
		return "LET"
	case TokenTrue:
		return "TRUE"
	case TokenFalse:
		return "FALSE"
	case TokenNull:
		return "NULL"
	case TokenIf:
		return "IF"
	case TokenElse:
		return "ELSE"
	case TokenReturn:
		return "RETURN"
	case TokenWhile:
		return "WHILE"
	case TokenAssign:
		return "="
	case TokenPlus:
		return "+"
	case TokenMinus:
		return "-"
	case TokenStar:
		return "*"
	case TokenSlash:
		return "/"
	case TokenLess:
		return "<"
	case TokenGreater:
		return ">"
	case TokenLessEqual:
		return "<="
	case TokenGreaterEqual:
		return ">="
	case TokenEqualEqual:
		return "=="
	case TokenBangEqual:
		return "!="
	case TokenBang:
		return "!"
	case TokenComma:
		return ","
	case TokenSemicolon:
		return ";"
	case TokenColon:
		return ":"
	case TokenLParen:
		return "("
	case TokenRParen:
		return ")"
	case TokenLBrace:
		return "{"
	case TokenRBrace:
		return "}"
	case TokenLBracket:
		return "["
	case TokenRBracket:
		return "]"
	default:
		return "unknown"
	}
}

// Token is a single lexical unit produced by the lexer.
type Token struct {
	Type TokenType
	Text string // literal text for identifiers, numbers and strings
	Line int    // one-based line the token began on
}

var keywords = map[string]TokenType{
	"fn":     TokenFunction,
	"let":    TokenLet,
	"true":   TokenTrue,
	"false":  TokenFalse,
	"null":   TokenNull,
	"if":     TokenIf,
	"else":   TokenElse,
	"return": TokenReturn,
	"while":  TokenWhile,
}

// Keywords returns the reserved words in sorted order.
func Keywords() []string {
	out := make([]string, 0, len(keywords))
	for kw := range keywords {
		out = append(out, kw)
	}
	sort.Strings(out)
	return out
}

func keywordToken(lexeme string) (TokenType, bool) {
	tt, ok := keywords[lexeme]
	return tt, ok
}
