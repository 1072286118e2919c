package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"sync"
	"syscall"

	"toylex/internal/config"
	"toylex/internal/diag"
	"toylex/internal/lexer"
	"toylex/internal/reference"
	"toylex/internal/source"
	"toylex/internal/token"
	"toylex/internal/trie"
	"toylex/internal/watch"
)

var exitFn = os.Exit

func main() {
	exitFn(runCLI(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

func runCLI(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	cfg := config.FromEnv()

	fs := flag.NewFlagSet("toylex", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&cfg.Format, "format", cfg.Format, "token output format: text or json")
	fs.BoolVar(&cfg.Quiet, "q", cfg.Quiet, "print only errors and a token count per file")
	fs.BoolVar(&cfg.Check, "check", cfg.Check, "compare every file against the reference lexer")
	fs.BoolVar(&cfg.Watch, "watch", cfg.Watch, "re-tokenize files when they change (Ctrl+C to stop)")
	fs.BoolVar(&cfg.Verbose, "v", cfg.Verbose, "verbose progress on stderr")
	fs.IntVar(&cfg.TrieCapacity, "trie-capacity", cfg.TrieCapacity, "trie nodes to preallocate per file")
	fs.Usage = func() {
		fmt.Fprintln(stderr, "Usage: toylex [flags] <file>...  (use - to read stdin)")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 1
	}
	if fs.NArg() == 0 {
		fs.Usage()
		return 1
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(stderr, "toylex: %v\n", err)
		return 1
	}

	r := &runner{cfg: cfg, stdin: stdin, stdout: stdout, stderr: stderr}
	code := r.files(fs.Args())
	if !cfg.Watch {
		return code
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return r.watch(ctx, fs.Args())
}

type runner struct {
	cfg    config.Config
	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer

	// serializes output when watch callbacks fire
	mu sync.Mutex
}

func (r *runner) logf(format string, args ...any) {
	if r.cfg.Verbose {
		fmt.Fprintf(r.stderr, format+"\n", args...)
	}
}

// files processes every path and returns the exit code: 1 if any failed.
func (r *runner) files(paths []string) int {
	code := 0
	for _, path := range paths {
		if !r.file(path) {
			code = 1
		}
	}
	return code
}

func (r *runner) file(path string) bool {
	name, data, err := r.read(path)
	if err != nil {
		fmt.Fprintf(r.stderr, "toylex: %v\n", err)
		return false
	}
	src := string(data)
	r.logf("Lexing %s (%d bytes)", name, len(data))

	ok := r.lex(name, src)
	if r.cfg.Check {
		if err := reference.Compare(name, src); err != nil {
			fmt.Fprintf(r.stderr, "Check failed: %v\n", err)
			ok = false
		} else {
			r.logf("%s: reference lexer agrees", name)
		}
	}
	return ok
}

func (r *runner) read(path string) (string, []byte, error) {
	if path == "-" {
		data, err := io.ReadAll(r.stdin)
		return "<stdin>", data, err
	}
	data, err := os.ReadFile(path)
	return path, data, err
}

// lex prints the tokens of src and reports the first lexical error.
func (r *runner) lex(name, src string) bool {
	scanner := lexer.New(trie.WithCapacity(r.cfg.TrieCapacity))
	stream := scanner.Lex(source.NewReader(name, strings.NewReader(src)))
	enc := json.NewEncoder(r.stdout)

	count := 0
	for tok := range stream.All() {
		count++
		if r.cfg.Quiet {
			continue
		}
		if err := r.printToken(enc, tok); err != nil {
			fmt.Fprintf(r.stderr, "toylex: %v\n", err)
			return false
		}
	}

	if err := stream.Err(); err != nil {
		var ce *diag.CodeError
		if errors.As(err, &ce) {
			diag.Format(r.stderr, "Lex", src, ce)
		} else {
			fmt.Fprintf(r.stderr, "Lex error: %v\n", err)
		}
		return false
	}

	if r.cfg.Quiet {
		fmt.Fprintf(r.stdout, "%s: %d tokens\n", name, count)
	}
	r.logf("%s: %d tokens, %d trie nodes", name, count, scanner.Trie().Len())
	return true
}

type jsonToken struct {
	Line    int    `json:"line"`
	Column  int    `json:"column"`
	Kind    string `json:"kind"`
	ID      int    `json:"id"`
	Literal string `json:"literal"`
}

func (r *runner) printToken(enc *json.Encoder, tok token.Token) error {
	if r.cfg.Format == config.FormatJSON {
		return enc.Encode(jsonToken{
			Line:    tok.Line,
			Column:  tok.Column,
			Kind:    tok.Kind.String(),
			ID:      tok.Kind.ID(),
			Literal: tok.Literal,
		})
	}
	literal := tok.Literal
	if tok.Kind == token.STRING_LIT {
		literal = fmt.Sprintf("%q", literal)
	}
	_, err := fmt.Fprintf(r.stdout, "%d:%d %s %s\n", tok.Line, tok.Column, tok.Kind, literal)
	return err
}

// watch re-runs a file whenever it is written, until ctx is done.
func (r *runner) watch(ctx context.Context, paths []string) int {
	w, err := watch.New(watch.DefaultDelay, func(path string) {
		r.mu.Lock()
		defer r.mu.Unlock()
		fmt.Fprintf(r.stderr, "File changed: %s\n", path)
		r.file(path)
	})
	if err != nil {
		fmt.Fprintf(r.stderr, "toylex: failed to create file watcher: %v\n", err)
		return 1
	}
	defer w.Close()

	watched := 0
	for _, path := range paths {
		if path == "-" {
			fmt.Fprintln(r.stderr, "toylex: cannot watch stdin, skipping")
			continue
		}
		if err := w.Add(path); err != nil {
			fmt.Fprintf(r.stderr, "toylex: %v\n", err)
			continue
		}
		watched++
	}
	if watched == 0 {
		fmt.Fprintln(r.stderr, "toylex: nothing to watch")
		return 1
	}

	fmt.Fprintf(r.stderr, "Watching %d file(s), press Ctrl+C to stop\n", watched)
	if err := w.Run(ctx); err != nil {
		fmt.Fprintf(r.stderr, "toylex: %v\n", err)
		return 1
	}
	return 0
}
