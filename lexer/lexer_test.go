/*
 * malis
 *
 * A tree-walking interpreter for a small Lox-family scripting language.
 */

package lexer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func typesOf(toks []Token) []TokenType {
	types := make([]TokenType, len(toks))
	for i, t := range toks {
		types[i] = t.Type
	}
	return types
}

func TestLexPunctuationAndOperators(t *testing.T) {
	toks := LexToList("t", "(){},.-+;* != == = <= >= && || ? :")
	types := typesOf(toks)

	assert.Equal(t, []TokenType{
		TokenLeftParen, TokenRightParen, TokenLeftBrace, TokenRightBrace,
		TokenComma, TokenDot, TokenMinus, TokenPlus, TokenSemicolon, TokenStar,
		TokenBangEqual, TokenEqualEqual, TokenEqual, TokenLessEqual, TokenGreaterEqual,
		TokenAndAnd, TokenOrOr, TokenQuestion, TokenColon, TokenEOF,
	}, types)
}

func TestLexKeywordsAndIdentifiers(t *testing.T) {
	toks := LexToList("t", "var x = foo and bar or baz")
	types := typesOf(toks)

	require.Equal(t, []TokenType{
		TokenVar, TokenIdentifier, TokenEqual, TokenIdentifier,
		TokenAnd, TokenIdentifier, TokenOr, TokenIdentifier, TokenEOF,
	}, types)
}

func TestLexNumbers(t *testing.T) {
	toks := LexToList("t", "123 45.67 1.")

	require.Len(t, toks, 5) // 123, 45.67, 1, ., EOF
	assert.Equal(t, TokenNumber, toks[0].Type)
	assert.Equal(t, 123.0, toks[0].Literal)
	assert.Equal(t, TokenNumber, toks[1].Type)
	assert.Equal(t, 45.67, toks[1].Literal)
	assert.Equal(t, TokenNumber, toks[2].Type)
	assert.Equal(t, 1.0, toks[2].Literal)
	assert.Equal(t, TokenDot, toks[3].Type)
}

func TestLexStrings(t *testing.T) {
	toks := LexToList("t", `"hello world"`)
	require.Len(t, toks, 2)
	assert.Equal(t, TokenString, toks[0].Type)
	assert.Equal(t, "hello world", toks[0].Literal)
}

func TestLexUnterminatedString(t *testing.T) {
	toks := LexToList("t", `"hello`)
	require.Len(t, toks, 2)
	assert.Equal(t, TokenError, toks[0].Type)
	assert.Contains(t, toks[0].Lexeme, "Unterminated string")
}

func TestLexCommentsAndWhitespace(t *testing.T) {
	toks := LexToList("t", "var a = 1; // a comment\nvar b = 2;")
	types := typesOf(toks)
	assert.Equal(t, []TokenType{
		TokenVar, TokenIdentifier, TokenEqual, TokenNumber, TokenSemicolon,
		TokenVar, TokenIdentifier, TokenEqual, TokenNumber, TokenSemicolon, TokenEOF,
	}, types)
}

func TestLexTracksLineAndColumn(t *testing.T) {
	toks := LexToList("t", "var a\n= 1;")

	// "=" is the first token on line 2, column 1.
	var eq Token
	for _, tok := range toks {
		if tok.Type == TokenEqual {
			eq = tok
		}
	}
	assert.Equal(t, 2, eq.Pos.Line)
	assert.Equal(t, 1, eq.Pos.Column)
}

func TestLexUnexpectedCharacter(t *testing.T) {
	toks := LexToList("t", "@")
	require.Len(t, toks, 2)
	assert.Equal(t, TokenError, toks[0].Type)
	assert.Contains(t, toks[0].Lexeme, "Unexpected character")
}
