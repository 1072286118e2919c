package lexer

import (
	"errors"
	"strings"
	"testing"

	"toylex/internal/token"
)

func TestStreamPeekThenNext(t *testing.T) {
	st := NewStream(newSource("x = 1;"))

	for i := 0; i < 3; i++ {
		tok, err := st.Peek()
		if err != nil || tok.Kind != token.IDENT || tok.Literal != "x" {
			t.Fatalf("Peek #%d=(%s,%q,%v)", i, tok.Kind, tok.Literal, err)
		}
	}

	want := []token.Kind{token.IDENT, token.ASSIGN, token.INT_LIT, token.SEMICOLON}
	for i, k := range want {
		if !st.HasMore() {
			t.Fatalf("tests[%d] - HasMore()=false", i)
		}
		tok, err := st.Next()
		if err != nil || tok.Kind != k {
			t.Fatalf("tests[%d] - Next()=(%s,%v) want=%s", i, tok.Kind, err, k)
		}
	}
	if st.HasMore() {
		t.Fatalf("HasMore()=true at end of input")
	}
	tok, err := st.Next()
	if err != nil || tok.Kind != token.EOF {
		t.Fatalf("Next() at end=(%s,%v)", tok.Kind, err)
	}
	if st.Err() != nil {
		t.Fatalf("Err()=%v after clean end", st.Err())
	}
}

func TestStreamNextWithoutPeek(t *testing.T) {
	st := NewStream(newSource("a b"))
	a, _ := st.Next()
	p, _ := st.Peek()
	b, _ := st.Next()
	if a.Literal != "a" || p.Literal != "b" || b.Literal != "b" {
		t.Fatalf("got %q %q %q", a.Literal, p.Literal, b.Literal)
	}
	if eof, _ := st.Next(); eof.Kind != token.EOF {
		t.Fatalf("expected EOF, got %s", eof.Kind)
	}
}

func TestStreamStopsAtFirstError(t *testing.T) {
	st := NewStream(newSource("a & b c"))
	if !st.HasMore() {
		t.Fatalf("HasMore()=false before the error")
	}
	if tok, err := st.Next(); err != nil || tok.Literal != "a" {
		t.Fatalf("first token=(%q,%v)", tok.Literal, err)
	}

	if st.HasMore() {
		t.Fatalf("HasMore()=true on an illegal token")
	}
	tok, err := st.Next()
	if tok.Kind != token.ILLEGAL || !errors.Is(err, ErrIllegalChar) {
		t.Fatalf("Next()=(%s,%v) want ILLEGAL", tok.Kind, err)
	}

	for i := 0; i < 2; i++ {
		tok, err = st.Next()
		if tok.Kind != token.EOF || !errors.Is(err, ErrIllegalChar) {
			t.Fatalf("after error Next()=(%s,%v) want EOF with the same error", tok.Kind, err)
		}
	}
	if !errors.Is(st.Err(), ErrIllegalChar) {
		t.Fatalf("Err()=%v", st.Err())
	}
}

func TestStreamAll(t *testing.T) {
	st := NewStream(newSource("while (i < 10) i = i + 1;"))
	var kinds []string
	for tok := range st.All() {
		kinds = append(kinds, tok.Kind.String())
	}
	got := strings.Join(kinds, " ")
	want := "WHILE LPAREN IDENT LT INT_LIT RPAREN IDENT ASSIGN IDENT PLUS INT_LIT SEMICOLON"
	if got != want {
		t.Fatalf("All() kinds:\n got=%s\nwant=%s", got, want)
	}
	if st.Err() != nil {
		t.Fatalf("Err()=%v", st.Err())
	}

	st = NewStream(newSource("a b c"))
	n := 0
	for range st.All() {
		n++
		break
	}
	if tok, _ := st.Next(); tok.Literal != "b" {
		t.Fatalf("breaking out of All() lost a token, next=%q", tok.Literal)
	}

	st = NewStream(newSource(`x "oops`))
	n = 0
	for range st.All() {
		n++
	}
	if n != 1 || !errors.Is(st.Err(), ErrUnterminatedString) {
		t.Fatalf("All() yielded %d tokens, Err()=%v", n, st.Err())
	}
}

func TestStreamsShareScanner(t *testing.T) {
	s := New()
	base := s.Trie().NumKeys()
	for _, in := range []string{"foo bar", "foo baz"} {
		for range s.Lex(newSource(in)).All() {
		}
	}
	if got := s.Trie().NumKeys() - base; got != 3 {
		t.Fatalf("memoized %d identifiers across streams, want 3", got)
	}
}

func TestTokenize(t *testing.T) {
	toks, err := Tokenize("t.toy", strings.NewReader("println(\"hi\");"))
	if err != nil {
		t.Fatalf("Tokenize: %v", err)
	}
	if len(toks) != 6 || toks[len(toks)-1].Kind != token.EOF {
		t.Fatalf("Tokenize returned %d tokens: %v", len(toks), toks)
	}

	toks, err = Tokenize("t.toy", strings.NewReader("x | y"))
	if !errors.Is(err, ErrIllegalChar) {
		t.Fatalf("Tokenize err=%v", err)
	}
	if len(toks) != 2 || toks[1].Kind != token.ILLEGAL {
		t.Fatalf("Tokenize returned %v", toks)
	}
}
