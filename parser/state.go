package parser

import (
	"fmt"
	"iter"

	"github.com/tliron/commonlog"

	"github.com/ava12/combi/source"
)

const defaultLoggerName = "combi.parser"

type config struct {
	name   string
	log    commonlog.Logger
	format func(tok any) string
}

// StateOption configures parser state created by New.
type StateOption func(*config)

// WithLogger sets the logger receiving debug records about recovered failures.
// Default logger is commonlog.GetLogger("combi.parser").
func WithLogger(log commonlog.Logger) StateOption {
	return func(c *config) {
		if log != nil {
			c.log = log
		}
	}
}

// WithName sets the name used as a prefix in log records.
func WithName(name string) StateOption {
	return func(c *config) {
		c.name = name
	}
}

// WithTokenFormat sets the function converting tokens to text for failure messages.
// Default format writes runes as characters, strings as is, fmt.Stringer tokens with String
// and everything else with fmt.Sprint. Since rune is int32, int32 tokens are written
// as characters too unless a format is set.
func WithTokenFormat(format func(tok any) string) StateOption {
	return func(c *config) {
		if format != nil {
			c.format = format
		}
	}
}

func describe(tok any) string {
	switch t := tok.(type) {
	case rune:
		return string(t)
	case string:
		return t
	case fmt.Stringer:
		return t.String()
	default:
		return fmt.Sprint(t)
	}
}

// State is a read position in a token stream.
// State is a small immutable value: "advancing" creates a new State,
// so any number of speculative branches may hold their own States over the same stream.
type State[T comparable] struct {
	src source.Stream[T]
	cfg *config
}

// New creates parser state positioned at current position of src.
// src itself is not advanced by parsing.
// If src was created by source.New, call Close on src or on any derived state when done.
func New[T comparable](src *source.Stream[T], opts ...StateOption) State[T] {
	cfg := &config{
		name:   "parser",
		log:    commonlog.GetLogger(defaultLoggerName),
		format: describe,
	}
	for _, opt := range opts {
		opt(cfg)
	}
	return State[T]{src: *src, cfg: cfg}
}

// FromSeq creates parser state for tokens of seq.
// The state must be closed with Close unless seq is read to the end.
func FromSeq[T comparable](seq iter.Seq[T], opts ...StateOption) State[T] {
	return New(source.New(seq), opts...)
}

// FromSlice creates parser state for tokens of items.
func FromSlice[T comparable](items []T, opts ...StateOption) State[T] {
	return New(source.FromSlice(items), opts...)
}

// FromString creates parser state for runes of text.
func FromString(text string, opts ...StateOption) State[rune] {
	return New(source.FromString(text), opts...)
}

// Pos returns the index of the next token.
func (s State[T]) Pos() int {
	return s.src.Pos()
}

// AtEnd reports whether there are no more tokens.
func (s State[T]) AtEnd() bool {
	return s.src.AtEnd()
}

// Stream returns new independent stream cursor at the state position.
func (s State[T]) Stream() *source.Stream[T] {
	return s.src.Snapshot()
}

// Err returns the error that has ended the token source or nil.
func (s State[T]) Err() error {
	return s.src.Err()
}

// Close releases the token source shared by all states of the same stream.
func (s State[T]) Close() {
	s.src.Close()
}

func (s State[T]) next() (T, bool, State[T]) {
	tok, ok := s.src.Next()
	return tok, ok, s
}

func (s State[T]) describe(tok T) string {
	return s.cfg.format(tok)
}

func (s State[T]) debugf(format string, params ...any) {
	s.cfg.log.Debugf("%s: "+format, append([]any{s.cfg.name}, params...)...)
}
