package lexer

import (
	"errors"

	"toylex/internal/source"
	"toylex/internal/token"
	"toylex/internal/trie"
)

// Sentinels naming the two dictionaries kept in the scanner's trie.
const (
	keywordSentinel = trie.DefaultSentinel
	identSentinel   = '$'
)

// Errors wrapped by the *diag.CodeError that accompanies an ILLEGAL token.
var (
	ErrIllegalChar        = errors.New("illegal character")
	ErrUnterminatedString = errors.New("unterminated string literal")
)

// Source is what the Scanner reads from: runes with a bounded rewind.
// *source.Reader implements it.
type Source interface {
	// Read returns the next rune, or source.EOF at the end of input.
	Read() (rune, error)
	// Mark starts a region of at most n runes that Reset can un-read.
	Mark(n int)
	// Reset un-reads everything read since the last Mark.
	Reset()
	// Pos is the 1-based line and column of the next rune.
	Pos() (line, col int)
}

// Scanner turns runes into tokens, one maximal-munch match per call.
// It keeps no state between calls other than its trie of keywords and
// identifiers it has already seen.
type Scanner struct {
	trie *trie.Trie
}

// New creates a Scanner with the keyword dictionary already loaded.
func New(opts ...trie.Option) *Scanner {
	t := trie.New(opts...)
	for _, k := range token.Keywords() {
		if err := t.InsertValue(k.Text(), keywordSentinel, int(k)); err != nil {
			panic("lexer: seeding keyword " + k.Text() + ": " + err.Error())
		}
	}
	return &Scanner{trie: t}
}

// Trie exposes the dictionary of keywords and identifiers seen so far.
func (s *Scanner) Trie() *trie.Trie {
	return s.trie
}

// Next returns the next token from src.
//
// At the end of input it returns an EOF token and a nil error. Input that is
// not a token yields an ILLEGAL token and an error wrapping ErrIllegalChar or
// ErrUnterminatedString. A failing src yields an EOF token and the read error;
// only the error tells a truncated input apart from a clean end.
func (s *Scanner) Next(src Source) (token.Token, error) {
	for {
		line, col := src.Pos()
		ch, err := src.Read()
		if err != nil {
			return readFailure(src, err, line, col)
		}

		switch {
		case ch == source.EOF:
			return newToken(token.EOF, "", line, col), nil
		case isWhitespace(ch):
			continue
		case isLetter(ch):
			return s.scanIdentifier(src, ch, line, col)
		case isDigit(ch):
			return s.scanNumber(src, ch, line, col)
		}

		switch ch {
		case '"':
			return s.scanString(src, line, col)
		case '/':
			// Could be /, // or /*
			src.Mark(1)
			next, err := src.Read()
			if err != nil {
				return readFailure(src, err, line, col)
			}
			switch next {
			case '/':
				if err := skipLineComment(src); err != nil {
					return readFailure(src, err, line, col)
				}
				continue
			case '*':
				if err := skipBlockComment(src); err != nil {
					return readFailure(src, err, line, col)
				}
				continue
			}
			src.Reset()
			return newToken(token.SLASH, "/", line, col), nil
		case '<':
			return s.withEquals(src, token.LT, token.LT_EQ, line, col)
		case '>':
			return s.withEquals(src, token.GT, token.GT_EQ, line, col)
		case '=':
			return s.withEquals(src, token.ASSIGN, token.EQ, line, col)
		case '!':
			return s.withEquals(src, token.BANG, token.NOT_EQ, line, col)
		case '&':
			return s.doubled(src, ch, token.AND, line, col)
		case '|':
			return s.doubled(src, ch, token.OR, line, col)
		case '+':
			return newToken(token.PLUS, "+", line, col), nil
		case '-':
			return newToken(token.MINUS, "-", line, col), nil
		case '*':
			return newToken(token.ASTERISK, "*", line, col), nil
		case ';':
			return newToken(token.SEMICOLON, ";", line, col), nil
		case ',':
			return newToken(token.COMMA, ",", line, col), nil
		case '.':
			return newToken(token.PERIOD, ".", line, col), nil
		case '(':
			return newToken(token.LPAREN, "(", line, col), nil
		case ')':
			return newToken(token.RPAREN, ")", line, col), nil
		case '[':
			return newToken(token.LBRACKET, "[", line, col), nil
		case ']':
			return newToken(token.RBRACKET, "]", line, col), nil
		case '{':
			return newToken(token.LBRACE, "{", line, col), nil
		case '}':
			return newToken(token.RBRACE, "}", line, col), nil
		}

		return illegal(src, ErrIllegalChar, string(ch), line, col)
	}
}

// withEquals picks between an operator and its "=" suffixed form: < <= and so on.
func (s *Scanner) withEquals(src Source, bare, suffixed token.Kind, line, col int) (token.Token, error) {
	ok, err := accept(src, '=')
	if err != nil {
		return readFailure(src, err, line, col)
	}
	if ok {
		return newToken(suffixed, suffixed.Text(), line, col), nil
	}
	return newToken(bare, bare.Text(), line, col), nil
}

// doubled accepts && and ||. The single forms are not part of the language.
func (s *Scanner) doubled(src Source, ch rune, kind token.Kind, line, col int) (token.Token, error) {
	ok, err := accept(src, ch)
	if err != nil {
		return readFailure(src, err, line, col)
	}
	if !ok {
		return illegal(src, ErrIllegalChar, string(ch), line, col)
	}
	return newToken(kind, kind.Text(), line, col), nil
}

// scanIdentifier reads a word and decides whether it is a keyword, a boolean
// literal or an identifier. First char is guaranteed to be a letter by caller.
func (s *Scanner) scanIdentifier(src Source, first rune, line, col int) (token.Token, error) {
	word, err := readWord(src, first)
	if err != nil {
		return readFailure(src, err, line, col)
	}

	if v, ok, _ := s.trie.Lookup(word, keywordSentinel); ok {
		return newToken(token.Kind(v), word, line, col), nil
	}
	if seen, _ := s.trie.ContainsSentinel(word, identSentinel); seen {
		return newToken(token.IDENT, word, line, col), nil
	}
	if token.BOOL_LIT.Matches(word) {
		return newToken(token.BOOL_LIT, word, line, col), nil
	}
	// readWord only produces [A-Za-z][A-Za-z0-9_]*, which the trie accepts.
	_ = s.trie.InsertSentinel(word, identSentinel)
	return newToken(token.IDENT, word, line, col), nil
}

// newToken is a helper to create tokens
func newToken(kind token.Kind, literal string, line, col int) token.Token {
	return token.Token{Kind: kind, Literal: literal, Line: line, Column: col}
}
