package lexer

import (
	"strings"

	"toylex/internal/diag"
	"toylex/internal/source"
	"toylex/internal/token"
)

// scanNumber reads an integer (decimal or hex) or a double.
// Every prefix it can stop at is a valid literal, so it never fails on its
// own; speculative characters are handed back to src when a longer form
// does not pan out.
func (s *Scanner) scanNumber(src Source, first rune, line, col int) (token.Token, error) {
	var sb strings.Builder
	sb.WriteRune(first)

	if first == '0' {
		// 0x needs two more runes before we know it is hex.
		src.Mark(2)
		x, err := src.Read()
		if err != nil {
			return readFailure(src, err, line, col)
		}
		if x == 'x' || x == 'X' {
			h, err := src.Read()
			if err != nil {
				return readFailure(src, err, line, col)
			}
			if isHexDigit(h) {
				sb.WriteRune(x)
				sb.WriteRune(h)
				if err := readWhile(src, &sb, isHexDigit); err != nil {
					return readFailure(src, err, line, col)
				}
				return newToken(token.INT_LIT, sb.String(), line, col), nil
			}
		}
		src.Reset()
	}

	if err := readWhile(src, &sb, isDigit); err != nil {
		return readFailure(src, err, line, col)
	}
	dot, err := accept(src, '.')
	if err != nil {
		return readFailure(src, err, line, col)
	}
	if !dot {
		return newToken(token.INT_LIT, sb.String(), line, col), nil
	}

	sb.WriteByte('.')
	if err := readWhile(src, &sb, isDigit); err != nil {
		return readFailure(src, err, line, col)
	}
	if err := readExponent(src, &sb); err != nil {
		return readFailure(src, err, line, col)
	}
	return newToken(token.DOUBLE_LIT, sb.String(), line, col), nil
}

// readExponent appends e[+-]digits to sb when the input has one. A marker
// without digits after it is left unread: "1.2E" stops before the E.
func readExponent(src Source, sb *strings.Builder) error {
	src.Mark(3)
	e, err := src.Read()
	if err != nil {
		return err
	}
	if e != 'e' && e != 'E' {
		src.Reset()
		return nil
	}

	next, err := src.Read()
	if err != nil {
		return err
	}
	var sign rune
	if next == '+' || next == '-' {
		sign = next
		if next, err = src.Read(); err != nil {
			return err
		}
	}
	if !isDigit(next) {
		src.Reset()
		return nil
	}

	sb.WriteRune(e)
	if sign != 0 {
		sb.WriteRune(sign)
	}
	sb.WriteRune(next)
	return readWhile(src, sb, isDigit)
}

// scanString reads up to the closing quote. The opening quote is already
// consumed. Strings cannot span lines or hold bytes that are not UTF-8.
func (s *Scanner) scanString(src Source, line, col int) (token.Token, error) {
	var sb strings.Builder
	for {
		ch, err := src.Read()
		if err != nil {
			return readFailure(src, err, line, col)
		}
		switch ch {
		case '"':
			return newToken(token.STRING_LIT, sb.String(), line, col), nil
		case '\n', source.EOF:
			return illegal(src, ErrUnterminatedString, `"`+sb.String(), line, col)
		case source.Invalid:
			return illegal(src, ErrIllegalChar, `"`+sb.String(), line, col)
		}
		sb.WriteRune(ch)
	}
}

// skipLineComment consumes through the end of the line. The leading "//"
// is already consumed.
func skipLineComment(src Source) error {
	for {
		ch, err := src.Read()
		if err != nil {
			return err
		}
		if ch == '\n' || ch == source.EOF {
			return nil
		}
	}
}

// skipBlockComment consumes through "*/", or to the end of input when the
// comment is never closed. The leading "/*" is already consumed.
func skipBlockComment(src Source) error {
	star := false
	for {
		ch, err := src.Read()
		if err != nil {
			return err
		}
		if ch == source.EOF || star && ch == '/' {
			return nil
		}
		star = ch == '*'
	}
}

// readWord reads [A-Za-z][A-Za-z0-9_]* starting from first.
func readWord(src Source, first rune) (string, error) {
	var sb strings.Builder
	sb.WriteRune(first)
	err := readWhile(src, &sb, func(ch rune) bool {
		return isLetter(ch) || isDigit(ch) || ch == '_'
	})
	return sb.String(), err
}

// readWhile appends runes to sb for as long as keep accepts them. The first
// rejected rune is left unread.
func readWhile(src Source, sb *strings.Builder, keep func(rune) bool) error {
	for {
		src.Mark(1)
		ch, err := src.Read()
		if err != nil {
			return err
		}
		if !keep(ch) {
			src.Reset()
			return nil
		}
		sb.WriteRune(ch)
	}
}

// accept consumes the next rune only if it is want.
func accept(src Source, want rune) (bool, error) {
	src.Mark(1)
	ch, err := src.Read()
	if err != nil {
		return false, err
	}
	if ch != want {
		src.Reset()
		return false, nil
	}
	return true, nil
}

func illegal(src Source, cause error, literal string, line, col int) (token.Token, error) {
	return newToken(token.ILLEGAL, literal, line, col), &diag.CodeError{
		File:    sourceName(src),
		Message: cause.Error(),
		Context: literal,
		Line:    line,
		Column:  col,
		Err:     cause,
	}
}

func readFailure(src Source, err error, line, col int) (token.Token, error) {
	return newToken(token.EOF, "", line, col), &diag.CodeError{
		File:    sourceName(src),
		Message: "read error: " + err.Error(),
		Line:    line,
		Column:  col,
		Err:     err,
	}
}

func sourceName(src Source) string {
	if n, ok := src.(interface{ Name() string }); ok {
		return n.Name()
	}
	return ""
}

// isWhitespace accepts ASCII blanks only; other spacing runes are illegal.
func isWhitespace(ch rune) bool {
	return ch == ' ' || ch == '\t' || ch == '\n' || ch == '\r' || ch == '\f' || ch == '\v'
}

// isLetter checks if ch is an ASCII letter. Underscores may continue a word
// but never start one.
func isLetter(ch rune) bool {
	return 'a' <= ch && ch <= 'z' || 'A' <= ch && ch <= 'Z'
}

// isDigit checks if ch is 0-9
func isDigit(ch rune) bool {
	return '0' <= ch && ch <= '9'
}

func isHexDigit(ch rune) bool {
	return isDigit(ch) || 'a' <= ch && ch <= 'f' || 'A' <= ch && ch <= 'F'
}
