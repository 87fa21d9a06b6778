/*
Package combi is a backtracking parser combinator library working over arbitrary token streams.

Consists of subpackages:
  - source: rewindable memoizing token stream, every pulled token is cached and may be replayed by any cursor;
  - parser: parser state, primitive token recognition, combinators, and the Run function applying recovery strategies.

Typical usage is:

1. Wrap token sequence in source.Stream (or use one of parser.From* helpers).

2. Build a parser out of parser.Accept, parser.Recognize, and combinators
(Chain, Choice, Option, Many, Repeat); attach recovery strategies where failures
need default values or better messages.

3. Run the parser against a parser state and inspect either the result or the failure messages.
*/
package combi

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
)

// Error classes used by subpackages, each class contains up to 99 error codes:
const (
	SyntaxErrors = 201 // used by parser
	ClientErrors = 301 // free for client code
)

// Failure is the error type describing failed parse attempt.
// Failures are plain data: combinators never modify a Failure they have received, a modified copy is created instead.
type Failure struct {
	// Code contains non-zero error code.
	Code int

	// Pos contains stream position (index of token) where the failure was detected.
	Pos int

	// Messages contains diagnostic messages, deepest cause goes first, outer context goes last.
	Messages []string
}

// NewFailure creates new Failure structure.
func NewFailure(code, pos int, messages ...string) *Failure {
	return &Failure{code, pos, messages}
}

// FormatFailure creates Failure structure containing single message.
// params will be added to message using fmt.Sprintf function.
func FormatFailure(code, pos int, msg string, params ...any) *Failure {
	if len(params) > 0 {
		msg = fmt.Sprintf(msg, params...)
	}
	return NewFailure(code, pos, msg)
}

// Error returns all messages joined with "; ".
func (f *Failure) Error() string {
	if len(f.Messages) == 0 {
		return fmt.Sprintf("parse failure (code %d) at %d", f.Code, f.Pos)
	}

	return strings.Join(f.Messages, "; ")
}

// Replace returns a copy of f with messages replaced.
func (f *Failure) Replace(messages []string) *Failure {
	ms := make([]string, len(messages))
	copy(ms, messages)
	return &Failure{f.Code, f.Pos, ms}
}

// Extend returns a copy of f with messages appended after existing ones.
func (f *Failure) Extend(messages ...string) *Failure {
	ms := make([]string, 0, len(f.Messages)+len(messages))
	ms = append(ms, f.Messages...)
	ms = append(ms, messages...)
	return &Failure{f.Code, f.Pos, ms}
}

// AsFailure returns the first Failure in e chain if any.
func AsFailure(e error) (*Failure, bool) {
	var f *Failure
	if errors.As(e, &f) {
		return f, true
	}

	return nil, false
}
