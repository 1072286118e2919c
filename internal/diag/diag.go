// Package diag describes lexical errors and renders them against source text.
package diag

import (
	"fmt"
	"io"
	"strconv"
	"strings"
)

// CodeError is an error anchored at a 1-based line and column of a named
// input. Context holds the offending source text, if any.
type CodeError struct {
	File    string
	Message string
	Context string
	Line    int
	Column  int
	Err     error
}

func (e *CodeError) Error() string {
	var sb strings.Builder
	if e.File != "" {
		sb.WriteString(e.File)
		sb.WriteByte(':')
	}
	if e.Line > 0 {
		fmt.Fprintf(&sb, "%d:%d: ", e.Line, e.Column)
	} else if sb.Len() > 0 {
		sb.WriteByte(' ')
	}
	sb.WriteString(e.Message)
	if e.Context != "" {
		sb.WriteString(": ")
		sb.WriteString(strconv.Quote(e.Context))
	}
	return sb.String()
}

func (e *CodeError) Unwrap() error {
	return e.Err
}

// Format writes e the way the CLI reports it: a headline, the location and,
// when the line exists in source, an excerpt with a caret under the column.
func Format(w io.Writer, kind string, source string, e *CodeError) {
	fmt.Fprintf(w, "%s error: %s\n", kind, e.Message)
	if e.Line <= 0 {
		if e.Context != "" {
			fmt.Fprintf(w, "  context: %s\n", e.Context)
		}
		return
	}
	fmt.Fprintf(w, "  --> %s:%d:%d\n", e.File, e.Line, e.Column)

	text, ok := Line(source, e.Line)
	if !ok {
		return
	}
	gutter := strconv.Itoa(e.Line)
	pad := strings.Repeat(" ", len(gutter))
	fmt.Fprintf(w, " %s |\n", pad)
	fmt.Fprintf(w, " %s | %s\n", gutter, text)
	fmt.Fprintf(w, " %s | %s^\n", pad, caretIndent(text, e.Column))
}

// Line returns the 1-based line n of source without its terminator.
func Line(source string, n int) (string, bool) {
	if n <= 0 {
		return "", false
	}
	for i := 1; ; i++ {
		end := strings.IndexByte(source, '\n')
		if i == n {
			if end < 0 {
				if source == "" {
					return "", false
				}
				return strings.TrimSuffix(source, "\r"), true
			}
			return strings.TrimSuffix(source[:end], "\r"), true
		}
		if end < 0 {
			return "", false
		}
		source = source[end+1:]
	}
}

// caretIndent keeps tabs so the caret lines up under the reported column.
func caretIndent(text string, col int) string {
	var sb strings.Builder
	i := 1
	for _, r := range text {
		if i >= col {
			break
		}
		if r == '\t' {
			sb.WriteByte('\t')
		} else {
			sb.WriteByte(' ')
		}
		i++
	}
	for ; i < col; i++ {
		sb.WriteByte(' ')
	}
	return sb.String()
}
