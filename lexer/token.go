// Package lexer tokenizes gtype's JSON-superset text form (spec §4.4):
// punctuation, the `::` annotation marker, identifiers, strings, numbers
// (including NaN/Inf/-Inf/Infinity), and bare IPv4 dotted-quads with an
// optional /mask lexed as INET. It follows the state-function-over-a-
// channel pattern of the retrieval pack's eveLexer (TokenType enum +
// String() method, stateFn-driven scanner with next/backup/peek/accept).
package lexer

import "fmt"

// TokenType identifies the lexical class of a Token.
type TokenType int

const (
	TokenError TokenType = iota
	TokenLBrace
	TokenRBrace
	TokenLBracket
	TokenRBracket
	TokenComma
	TokenColon
	TokenAnnotation // '::'
	TokenIdent      // true, false, null, or a bare annotation name
	TokenString
	TokenInteger
	TokenFloat // includes NaN, Inf, -Inf, Infinity
	TokenInet  // bare IPv4 dotted-quad, optionally with /mask
	TokenEOF
)

func (t TokenType) String() string {
	switch t {
	case TokenError:
		return "TokenError"
	case TokenLBrace:
		return "TokenLBrace"
	case TokenRBrace:
		return "TokenRBrace"
	case TokenLBracket:
		return "TokenLBracket"
	case TokenRBracket:
		return "TokenRBracket"
	case TokenComma:
		return "TokenComma"
	case TokenColon:
		return "TokenColon"
	case TokenAnnotation:
		return "TokenAnnotation"
	case TokenIdent:
		return "TokenIdent"
	case TokenString:
		return "TokenString"
	case TokenInteger:
		return "TokenInteger"
	case TokenFloat:
		return "TokenFloat"
	case TokenInet:
		return "TokenInet"
	case TokenEOF:
		return "TokenEOF"
	default:
		return fmt.Sprintf("TokenType(%d)", int(t))
	}
}

// Token is one scanned lexeme, its source line (for error excerpts per spec
// §4.4), and its raw text.
type Token struct {
	Typ  TokenType
	Val  string
	Line int
}

func (tk Token) String() string { return fmt.Sprintf("%s %q (line %d)", tk.Typ, tk.Val, tk.Line) }
