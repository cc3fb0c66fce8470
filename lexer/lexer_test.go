package lexer_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/postgraph/gtype/lexer"
)

func allTokens(t *testing.T, input string) []lexer.Token {
	t.Helper()

	l := lexer.New(input)

	var toks []lexer.Token
	for {
		tok := l.NextToken()
		toks = append(toks, tok)

		if tok.Typ == lexer.TokenEOF || tok.Typ == lexer.TokenError {
			return toks
		}
	}
}

func TestLexPunctuation(t *testing.T) {
	toks := allTokens(t, "{}[],::")
	types := make([]lexer.TokenType, 0, len(toks))
	for _, tok := range toks {
		types = append(types, tok.Typ)
	}

	require.Equal(t, []lexer.TokenType{
		lexer.TokenLBrace,
		lexer.TokenRBrace,
		lexer.TokenLBracket,
		lexer.TokenRBracket,
		lexer.TokenComma,
		lexer.TokenAnnotation,
		lexer.TokenEOF,
	}, types)
}

func TestLexColonVsAnnotation(t *testing.T) {
	toks := allTokens(t, ": ::")
	require.Equal(t, lexer.TokenColon, toks[0].Typ)
	require.Equal(t, lexer.TokenAnnotation, toks[1].Typ)
}

func TestLexStringWithEscapes(t *testing.T) {
	toks := allTokens(t, `"line\nbreakA"`)
	require.Equal(t, lexer.TokenString, toks[0].Typ)
	require.Equal(t, `"line\nbreakA"`, toks[0].Val)
}

func TestLexUnterminatedStringErrors(t *testing.T) {
	toks := allTokens(t, `"no closing quote`)
	require.Equal(t, lexer.TokenError, toks[len(toks)-1].Typ)
}

func TestLexIntegerAndFloat(t *testing.T) {
	toks := allTokens(t, "42 -17 3.14 -2.5e10 1e3")
	require.Equal(t, lexer.TokenInteger, toks[0].Typ)
	require.Equal(t, "42", toks[0].Val)
	require.Equal(t, lexer.TokenInteger, toks[1].Typ)
	require.Equal(t, "-17", toks[1].Val)
	require.Equal(t, lexer.TokenFloat, toks[2].Typ)
	require.Equal(t, lexer.TokenFloat, toks[3].Typ)
	require.Equal(t, lexer.TokenFloat, toks[4].Typ)
}

func TestLexNanAndInfSpellings(t *testing.T) {
	toks := allTokens(t, "NaN Inf -Inf Infinity")
	for i := 0; i < 4; i++ {
		require.Equal(t, lexer.TokenFloat, toks[i].Typ)
	}
	require.Equal(t, "NaN", toks[0].Val)
	require.Equal(t, "-Inf", toks[2].Val)
}

func TestLexBareInetDottedQuad(t *testing.T) {
	toks := allTokens(t, "192.168.1.1/24")
	require.Equal(t, lexer.TokenInet, toks[0].Typ)
	require.Equal(t, "192.168.1.1/24", toks[0].Val)
}

func TestLexFloatNotMistakenForInet(t *testing.T) {
	toks := allTokens(t, "1.5")
	require.Equal(t, lexer.TokenFloat, toks[0].Typ)
	require.Equal(t, "1.5", toks[0].Val)
}

func TestLexIdentKeywords(t *testing.T) {
	toks := allTokens(t, "true false null numeric")
	for i := 0; i < 4; i++ {
		require.Equal(t, lexer.TokenIdent, toks[i].Typ)
	}
	require.Equal(t, "numeric", toks[3].Val)
}

func TestLexUnexpectedCharacterErrors(t *testing.T) {
	toks := allTokens(t, "#")
	require.Equal(t, lexer.TokenError, toks[0].Typ)
}
