// Package source provides a rune reader with bounded pushback for the lexer.
package source

import (
	"bufio"
	"io"
	"unicode/utf8"
)

// EOF is returned by Read once the input is exhausted.
const EOF rune = -1

// Invalid is returned by Read in place of a byte that is not valid UTF-8.
const Invalid rune = -2

// MaxLookahead is the largest speculative region Mark accepts.
const MaxLookahead = 3

// Reader reads runes and can rewind up to MaxLookahead of them.
//
// A call to Mark(n) starts recording; Reset puts every rune read since the
// mark back in front of the input. Reading more than n runes after a mark
// drops it, and Reset then does nothing.
type Reader struct {
	name string
	rd   *bufio.Reader

	pending []rune // runes put back by Reset, read before rd
	marked  []rune // runes read since the last Mark
	limit   int    // -1 when there is no active mark

	line, col         int
	markLine, markCol int
}

// NewReader returns a Reader over r. name identifies the input in diagnostics.
func NewReader(name string, r io.Reader) *Reader {
	br, ok := r.(*bufio.Reader)
	if !ok {
		br = bufio.NewReader(r)
	}
	return &Reader{
		name:    name,
		rd:      br,
		pending: make([]rune, 0, MaxLookahead),
		marked:  make([]rune, 0, MaxLookahead),
		limit:   -1,
		line:    1,
		col:     1,
	}
}

// Name returns the name the Reader was created with.
func (r *Reader) Name() string {
	return r.name
}

// Pos returns the 1-based line and column of the next rune to be read.
func (r *Reader) Pos() (line, col int) {
	return r.line, r.col
}

// Read returns the next rune, or EOF with a nil error at the end of input.
// Any other error comes from the underlying reader.
func (r *Reader) Read() (rune, error) {
	var ch rune
	if len(r.pending) > 0 {
		ch = r.pending[0]
		r.pending = r.pending[1:]
	} else {
		c, size, err := r.rd.ReadRune()
		if err == io.EOF {
			return EOF, nil
		}
		if err != nil {
			return EOF, err
		}
		ch = c
		if c == utf8.RuneError && size == 1 {
			ch = Invalid
		}
	}

	if r.limit >= 0 {
		if len(r.marked) < r.limit {
			r.marked = append(r.marked, ch)
		} else {
			r.limit = -1
			r.marked = r.marked[:0]
		}
	}

	if ch == '\n' {
		r.line++
		r.col = 1
	} else {
		r.col++
	}
	return ch, nil
}

// Mark remembers the current position so that up to n following runes can
// be un-read with Reset. n is clamped to [0, MaxLookahead].
func (r *Reader) Mark(n int) {
	if n < 0 {
		n = 0
	}
	if n > MaxLookahead {
		n = MaxLookahead
	}
	r.limit = n
	r.marked = r.marked[:0]
	r.markLine, r.markCol = r.line, r.col
}

// Reset rewinds to the last mark. It does nothing when there is no mark or
// the mark was invalidated by reading past it.
func (r *Reader) Reset() {
	if r.limit < 0 {
		return
	}
	if len(r.marked) > 0 {
		rest := append([]rune(nil), r.pending...)
		r.pending = append(append(r.pending[:0], r.marked...), rest...)
		r.marked = r.marked[:0]
	}
	r.line, r.col = r.markLine, r.markCol
}

// Ready reports whether a rune can be read without hitting the end of input.
// An I/O error also reports false; the following Read surfaces it.
func (r *Reader) Ready() bool {
	if len(r.pending) > 0 {
		return true
	}
	_, err := r.rd.Peek(1)
	return err == nil
}
