// Package reference is a second, rule-based lexer for Toy built on
// participle's regex lexer. It exists to cross-check the hand-written
// scanner in package lexer: both must produce the same tokens for any input.
package reference

import (
	"errors"
	"fmt"
	"regexp"
	"sort"
	"strings"
	"unicode/utf8"

	plex "github.com/alecthomas/participle/v2/lexer"

	"toylex/internal/diag"
	"toylex/internal/lexer"
	"toylex/internal/token"
)

// ErrRejected wraps every input the rule set cannot match.
var ErrRejected = errors.New("rejected by reference lexer")

// Definition is the participle rule set. Rules are tried in order and the
// first match wins, so doubles come before integers. Lower-case rules are
// elided from the output.
var Definition = plex.MustSimple([]plex.SimpleRule{
	{Name: "comment", Pattern: `//[^\n]*|/\*([^*]|\*+[^*/])*(\*+/|\**$)`},
	{Name: "whitespace", Pattern: `[ \t\n\r\f\v]+`},
	{Name: "Double", Pattern: token.DOUBLE_LIT.Text()},
	{Name: "Integer", Pattern: `0[xX][0-9a-fA-F]+|[0-9]+`},
	{Name: "Word", Pattern: token.IDENT.Text()},
	{Name: "String", Pattern: `"[^"\n]*"`},
	{Name: "Operator", Pattern: operatorPattern()},
})

// operatorPattern alternates every operator text, longest first.
func operatorPattern() string {
	var texts []string
	for _, k := range token.Operators() {
		texts = append(texts, regexp.QuoteMeta(k.Text()))
	}
	sort.SliceStable(texts, func(i, j int) bool {
		return len(texts[i]) > len(texts[j])
	})
	return strings.Join(texts, "|")
}

var symbolNames = func() map[plex.TokenType]string {
	names := make(map[plex.TokenType]string)
	for name, tt := range Definition.Symbols() {
		names[tt] = name
	}
	return names
}()

// Tokenize lexes src and returns every token up to and including EOF.
// On error it returns the tokens read so far and a *diag.CodeError that
// wraps ErrRejected at the offending position.
func Tokenize(name, src string) ([]token.Token, error) {
	lx, err := Definition.LexString(name, src)
	if err != nil {
		return nil, err
	}

	var toks []token.Token
	for {
		pt, err := lx.Next()
		if err != nil {
			return toks, rejected(name, err)
		}
		if pt.EOF() {
			toks = append(toks, token.Token{Kind: token.EOF, Line: pt.Pos.Line, Column: pt.Pos.Column})
			return toks, nil
		}
		tok, err := convert(pt)
		if err != nil {
			return toks, err
		}
		toks = append(toks, tok)
	}
}

func convert(pt plex.Token) (token.Token, error) {
	tok := token.Token{Literal: pt.Value, Line: pt.Pos.Line, Column: pt.Pos.Column}
	switch symbolNames[pt.Type] {
	case "Double":
		tok.Kind = token.DOUBLE_LIT
	case "Integer":
		tok.Kind = token.INT_LIT
	case "Word":
		tok.Kind = token.LookupIdent(pt.Value)
	case "String":
		if !utf8.ValidString(pt.Value) {
			return tok, &diag.CodeError{
				File:    pt.Pos.Filename,
				Message: ErrRejected.Error(),
				Context: "string literal is not valid UTF-8",
				Line:    pt.Pos.Line,
				Column:  pt.Pos.Column,
				Err:     ErrRejected,
			}
		}
		tok.Kind = token.STRING_LIT
		tok.Literal = pt.Value[1 : len(pt.Value)-1]
	case "Operator":
		k, ok := token.LookupFixed(pt.Value)
		if !ok {
			return tok, fmt.Errorf("%s: operator %q missing from vocabulary", pt.Pos, pt.Value)
		}
		tok.Kind = k
	default:
		return tok, fmt.Errorf("%s: unexpected token type %d", pt.Pos, pt.Type)
	}
	return tok, nil
}

func rejected(name string, err error) error {
	var le *plex.Error
	if !errors.As(err, &le) {
		return fmt.Errorf("%w: %v", ErrRejected, err)
	}
	return &diag.CodeError{
		File:    name,
		Message: ErrRejected.Error(),
		Context: le.Msg,
		Line:    le.Pos.Line,
		Column:  le.Pos.Column,
		Err:     ErrRejected,
	}
}

// Mismatch describes the first place the two lexers disagree.
type Mismatch struct {
	File  string
	Index int
	// Hand and Rule are the tokens each lexer produced at Index. A zero Kind
	// with an empty literal means that lexer had already stopped.
	Hand, Rule token.Token
	Reason     string
}

func (m *Mismatch) Error() string {
	return fmt.Sprintf("%s: token %d: %s: scanner %s, reference %s",
		m.File, m.Index, m.Reason, describe(m.Hand), describe(m.Rule))
}

func describe(t token.Token) string {
	return fmt.Sprintf("%s %q at %d:%d", t.Kind, t.Literal, t.Line, t.Column)
}

// Compare runs both lexers over src. It returns nil when they produce the
// same tokens and fail, if at all, at the same position; otherwise a
// *Mismatch for the first difference.
func Compare(name, src string) error {
	hand, handErr := lexer.Tokenize(name, strings.NewReader(src))
	rule, ruleErr := Tokenize(name, src)

	// The scanner hands back the rejected token; the rule lexer does not.
	if handErr != nil && len(hand) > 0 {
		hand = hand[:len(hand)-1]
	}

	n := min(len(hand), len(rule))
	for i := 0; i < n; i++ {
		h, r := hand[i], rule[i]
		if h.Kind != r.Kind || h.Literal != r.Literal {
			return &Mismatch{File: name, Index: i, Hand: h, Rule: r, Reason: "different tokens"}
		}
		if h.Line != r.Line || h.Column != r.Column {
			return &Mismatch{File: name, Index: i, Hand: h, Rule: r, Reason: "different positions"}
		}
	}
	if len(hand) != len(rule) || (handErr == nil) != (ruleErr == nil) {
		m := &Mismatch{File: name, Index: n, Reason: "different lengths"}
		if n < len(hand) {
			m.Hand = hand[n]
		}
		if n < len(rule) {
			m.Rule = rule[n]
		}
		if (handErr == nil) != (ruleErr == nil) {
			m.Reason = fmt.Sprintf("only one lexer failed (scanner: %v, reference: %v)", handErr, ruleErr)
		}
		return m
	}
	if handErr == nil {
		return nil
	}

	var hce, rce *diag.CodeError
	if !errors.As(handErr, &hce) || !errors.As(ruleErr, &rce) {
		return &Mismatch{File: name, Index: n, Reason: fmt.Sprintf("unpositioned error (scanner: %v, reference: %v)", handErr, ruleErr)}
	}
	if hce.Line != rce.Line || hce.Column != rce.Column {
		return &Mismatch{
			File:   name,
			Index:  n,
			Hand:   token.Token{Kind: token.ILLEGAL, Literal: hce.Context, Line: hce.Line, Column: hce.Column},
			Rule:   token.Token{Kind: token.ILLEGAL, Line: rce.Line, Column: rce.Column},
			Reason: "errors at different positions",
		}
	}
	return nil
}
