package lexer

import (
	"io"
	"iter"

	"toylex/internal/source"
	"toylex/internal/token"
)

// Stream buffers at most one token of lookahead over a Scanner.
//
// The first error ends the stream: every later call reports the same error
// alongside an EOF token.
type Stream struct {
	scanner *Scanner
	src     Source

	peeked bool
	tok    token.Token
	tokErr error

	err error
}

// Lex returns a Stream of the tokens in src. Streams created from the same
// Scanner share its identifier memo.
func (s *Scanner) Lex(src Source) *Stream {
	return &Stream{scanner: s, src: src}
}

// NewStream returns a Stream over src backed by a fresh Scanner.
func NewStream(src Source) *Stream {
	return New().Lex(src)
}

// Peek returns the next token without consuming it.
func (s *Stream) Peek() (token.Token, error) {
	if !s.peeked {
		s.tok, s.tokErr = s.fetch()
		s.peeked = true
	}
	return s.tok, s.tokErr
}

// Next consumes and returns the next token.
func (s *Stream) Next() (token.Token, error) {
	if s.peeked {
		s.peeked = false
		tok, err := s.tok, s.tokErr
		s.tok, s.tokErr = token.Token{}, nil
		return tok, err
	}
	return s.fetch()
}

// HasMore reports whether Next would return a real token: not EOF and no error.
func (s *Stream) HasMore() bool {
	tok, err := s.Peek()
	return err == nil && tok.Kind != token.EOF
}

// Err returns the error that ended the stream, if any.
func (s *Stream) Err() error {
	return s.err
}

// All yields tokens until EOF or the first error; check Err afterwards.
func (s *Stream) All() iter.Seq[token.Token] {
	return func(yield func(token.Token) bool) {
		for {
			tok, err := s.Next()
			if err != nil || tok.Kind == token.EOF {
				return
			}
			if !yield(tok) {
				return
			}
		}
	}
}

func (s *Stream) fetch() (token.Token, error) {
	if s.err != nil {
		line, col := s.src.Pos()
		return newToken(token.EOF, "", line, col), s.err
	}
	tok, err := s.scanner.Next(s.src)
	if err != nil {
		s.err = err
	}
	return tok, err
}

// Tokenize drains r and returns every token up to and including EOF.
// On error it returns the tokens read so far, ending with the rejected one.
func Tokenize(name string, r io.Reader) ([]token.Token, error) {
	stream := NewStream(source.NewReader(name, r))
	var toks []token.Token
	for {
		tok, err := stream.Next()
		toks = append(toks, tok)
		if err != nil {
			return toks, err
		}
		if tok.Kind == token.EOF {
			return toks, nil
		}
	}
}
