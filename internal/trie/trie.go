// Package trie implements a multi-vocabulary trie over ASCII words.
//
// One Trie holds several disjoint dictionaries. Every key is stored with a
// terminal sentinel character that names the dictionary it belongs to, so
// "int" in the keyword dictionary and "int" in the identifier dictionary are
// different entries that share the same path.
package trie

import (
	"errors"
	"fmt"
)

// DefaultSentinel is the sentinel used by Insert and Contains.
const DefaultSentinel = '*'

// alphabetSize covers A-Z (0-25) and a-z (26-51).
const alphabetSize = 52

const none = -1

var (
	// ErrEmptyKey is returned for a zero-length key.
	ErrEmptyKey = errors.New("trie: empty key")
	// ErrInvalidKey is returned by inserts of keys outside [A-Za-z][A-Za-z0-9_]*.
	ErrInvalidKey = errors.New("trie: invalid key")
	// ErrInvalidSentinel is returned when the sentinel could be part of a key.
	ErrInvalidSentinel = errors.New("trie: sentinel cannot be a letter, digit or underscore")
)

// node is one arc of the trie. Nodes reachable through sibling links
// sit at the same depth under the same parent.
type node struct {
	ch      byte
	sibling int32
	child   int32
	value   int
}

// Trie is an arena-backed trie. The zero value is not usable; call New.
type Trie struct {
	base    [alphabetSize]int32 // first node below each starting letter
	nodes   []node
	numKeys int
}

// Option configures a Trie.
type Option func(*Trie)

// WithCapacity preallocates room for n nodes.
func WithCapacity(n int) Option {
	return func(t *Trie) {
		if n > 0 {
			t.nodes = make([]node, 0, n)
		}
	}
}

// New returns an empty Trie.
func New(opts ...Option) *Trie {
	t := &Trie{}
	for i := range t.base {
		t.base[i] = none
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Insert adds key to the default dictionary.
func (t *Trie) Insert(key string) error {
	return t.InsertValue(key, DefaultSentinel, 0)
}

// InsertSentinel adds key to the dictionary named by sentinel.
func (t *Trie) InsertSentinel(key string, sentinel byte) error {
	return t.InsertValue(key, sentinel, 0)
}

// InsertValue adds key to the dictionary named by sentinel and attaches
// value to it. Inserting a pair that is already present changes nothing,
// including the value stored the first time.
func (t *Trie) InsertValue(key string, sentinel byte, value int) error {
	if err := validate(key, sentinel); err != nil {
		return err
	}
	b := bucket(key[0])
	if b < 0 {
		return fmt.Errorf("%w: %q must start with an ASCII letter", ErrInvalidKey, key)
	}
	for i := 1; i < len(key); i++ {
		if !isWordByte(key[i]) {
			return fmt.Errorf("%w: %q contains %q", ErrInvalidKey, key, key[i])
		}
	}

	// parent is the node whose children are being searched; none means
	// the bucket for the first letter.
	parent := int32(none)
	id := t.base[b]
	for i := 1; i <= len(key); i++ {
		ch := sentinel
		if i < len(key) {
			ch = key[i]
		}

		last := int32(none)
		for id != none && t.nodes[id].ch != ch {
			last = id
			id = t.nodes[id].sibling
		}
		if id == none {
			// Nothing at this depth matches: append the rest of the key as
			// a fresh chain and hang it off the end of the sibling list.
			head := t.appendChain(key[i:], sentinel, value)
			switch {
			case last != none:
				t.nodes[last].sibling = head
			case parent == none:
				t.base[b] = head
			default:
				t.nodes[parent].child = head
			}
			t.numKeys++
			return nil
		}
		if i == len(key) {
			// Terminal arc already present.
			return nil
		}
		parent = id
		id = t.nodes[id].child
	}
	return nil
}

// appendChain appends one node per byte of rest followed by the sentinel,
// each node the only child of the previous one, and returns the first index.
func (t *Trie) appendChain(rest string, sentinel byte, value int) int32 {
	head := int32(len(t.nodes))
	for i := 0; i < len(rest); i++ {
		t.nodes = append(t.nodes, node{ch: rest[i], sibling: none, child: int32(len(t.nodes) + 1)})
	}
	t.nodes = append(t.nodes, node{ch: sentinel, sibling: none, child: none, value: value})
	return head
}

// Contains reports whether key is in the default dictionary.
func (t *Trie) Contains(key string) (bool, error) {
	return t.ContainsSentinel(key, DefaultSentinel)
}

// ContainsSentinel reports whether key is in the dictionary named by sentinel.
func (t *Trie) ContainsSentinel(key string, sentinel byte) (bool, error) {
	_, ok, err := t.Lookup(key, sentinel)
	return ok, err
}

// Lookup returns the value stored with key in the dictionary named by
// sentinel. A key that cannot be stored is reported as absent.
func (t *Trie) Lookup(key string, sentinel byte) (int, bool, error) {
	if err := validate(key, sentinel); err != nil {
		return 0, false, err
	}
	b := bucket(key[0])
	if b < 0 {
		return 0, false, nil
	}

	id := t.base[b]
	for i := 1; i <= len(key); i++ {
		ch := sentinel
		if i < len(key) {
			ch = key[i]
		}
		for id != none && t.nodes[id].ch != ch {
			id = t.nodes[id].sibling
		}
		if id == none {
			return 0, false, nil
		}
		if i == len(key) {
			return t.nodes[id].value, true, nil
		}
		id = t.nodes[id].child
	}
	return 0, false, nil
}

// NumKeys returns the number of (key, sentinel) pairs stored, across all
// dictionaries.
func (t *Trie) NumKeys() int {
	return t.numKeys
}

// Len returns the number of arena nodes in use.
func (t *Trie) Len() int {
	return len(t.nodes)
}

func validate(key string, sentinel byte) error {
	if key == "" {
		return ErrEmptyKey
	}
	if isWordByte(sentinel) {
		return fmt.Errorf("%w: %q", ErrInvalidSentinel, sentinel)
	}
	return nil
}

func bucket(c byte) int {
	switch {
	case 'A' <= c && c <= 'Z':
		return int(c - 'A')
	case 'a' <= c && c <= 'z':
		return 26 + int(c-'a')
	}
	return none
}

func isWordByte(c byte) bool {
	return 'a' <= c && c <= 'z' || 'A' <= c && c <= 'Z' || '0' <= c && c <= '9' || c == '_'
}
