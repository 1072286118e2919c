// Package config collects the settings shared by the toylex command.
package config

import (
	"fmt"

	"github.com/xyproto/env/v2"
)

// Output formats understood by the CLI.
const (
	FormatText = "text"
	FormatJSON = "json"
)

// Config is filled from the environment first and then from flags.
type Config struct {
	Format       string // FormatText or FormatJSON
	Quiet        bool   // suppress per-token output
	Verbose      bool   // progress lines on stderr
	Check        bool   // compare against the reference lexer
	Watch        bool   // re-tokenize on change
	TrieCapacity int    // arena nodes to preallocate per scanner
}

// FromEnv reads the defaults:
//
//	TOYLEX_FORMAT         text | json (default text)
//	TOYLEX_VERBOSE        any true-ish value enables verbose output
//	TOYLEX_TRIE_CAPACITY  arena size hint (default 256)
func FromEnv() Config {
	return Config{
		Format:       env.Str("TOYLEX_FORMAT", FormatText),
		Verbose:      env.Bool("TOYLEX_VERBOSE"),
		TrieCapacity: env.Int("TOYLEX_TRIE_CAPACITY", 256),
	}
}

// Validate rejects settings the command cannot honour.
func (c Config) Validate() error {
	switch c.Format {
	case FormatText, FormatJSON:
	default:
		return fmt.Errorf("unknown format %q (want %s or %s)", c.Format, FormatText, FormatJSON)
	}
	if c.TrieCapacity < 0 {
		return fmt.Errorf("trie capacity must not be negative, got %d", c.TrieCapacity)
	}
	return nil
}
