// Package source defines rewindable memoizing token stream.
//
// Stream is a cursor into a buffer shared by all cursors created from the same source.
// Every token pulled from the underlying source is appended to the buffer,
// so any position once reached by any cursor may be replayed by any other cursor.
// Copying a Stream value (or calling Snapshot) creates an independent cursor in O(1).
package source

import (
	"bufio"
	"io"
	"iter"
	"sync"
)

type buffer[T any] struct {
	mu    sync.Mutex
	items []T
	pull  func() (T, bool)
	stop  func()
	done  bool
	err   error
}

// fetch returns item at pos, pulling from the source as needed.
// The second result is false if the source ends before pos.
func (b *buffer[T]) fetch(pos int) (T, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()

	for pos >= len(b.items) && !b.done {
		item, ok := b.pull()
		if !ok {
			b.finish()
			break
		}

		b.items = append(b.items, item)
	}

	if pos < len(b.items) {
		return b.items[pos], true
	}

	var zero T
	return zero, false
}

func (b *buffer[T]) finish() {
	b.done = true
	b.pull = nil
	if b.stop != nil {
		b.stop()
		b.stop = nil
	}
}

func (b *buffer[T]) len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.items)
}

// Stream is a read cursor over shared token buffer.
// Stream itself is not safe for concurrent use, but different cursors over the same buffer are.
type Stream[T any] struct {
	buf *buffer[T]
	pos int
}

// New creates a stream pulling tokens from seq.
// seq is iterated at most once, lazily, and only as far as some cursor has read.
// Iteration runs in its own goroutine until seq ends, so a stream that may be left
// unfinished must be closed with Close.
func New[T any](seq iter.Seq[T]) *Stream[T] {
	next, stop := iter.Pull(seq)
	return &Stream[T]{buf: &buffer[T]{pull: next, stop: stop}}
}

// FromFunc creates a stream pulling tokens from next until it returns false.
func FromFunc[T any](next func() (T, bool)) *Stream[T] {
	return &Stream[T]{buf: &buffer[T]{pull: next}}
}

// FromSlice creates a stream over a copy of items.
func FromSlice[T any](items []T) *Stream[T] {
	buf := make([]T, len(items))
	copy(buf, items)
	return &Stream[T]{buf: &buffer[T]{items: buf, done: true}}
}

// FromString creates a stream of runes.
func FromString(s string) *Stream[rune] {
	return FromSlice([]rune(s))
}

// FromReader creates a stream of runes read from r.
// A read error ends the stream, the error is available via Err.
func FromReader(r io.Reader) *Stream[rune] {
	br := bufio.NewReader(r)
	b := &buffer[rune]{}
	b.pull = func() (rune, bool) {
		c, _, e := br.ReadRune()
		if e != nil {
			if e != io.EOF {
				b.err = readError(e, len(b.items))
			}
			return 0, false
		}

		return c, true
	}
	return &Stream[rune]{buf: b}
}

// Next returns the token at current position and advances the cursor.
// Returns false and does not advance if there are no more tokens.
func (s *Stream[T]) Next() (T, bool) {
	t, ok := s.buf.fetch(s.pos)
	if ok {
		s.pos++
	}
	return t, ok
}

// Peek returns the token at current position without advancing the cursor.
func (s *Stream[T]) Peek() (T, bool) {
	return s.buf.fetch(s.pos)
}

// AtEnd reports whether there are no tokens at current position.
func (s *Stream[T]) AtEnd() bool {
	_, ok := s.buf.fetch(s.pos)
	return !ok
}

// Pos returns the index of the token that Next will return.
func (s *Stream[T]) Pos() int {
	return s.pos
}

// Buffered returns the number of tokens pulled from the source so far.
func (s *Stream[T]) Buffered() int {
	return s.buf.len()
}

// Snapshot returns new independent cursor at current position.
func (s *Stream[T]) Snapshot() *Stream[T] {
	c := *s
	return &c
}

// Seek moves the cursor to pos. Only already buffered positions can be reached,
// pos is clamped to [0, Buffered()].
func (s *Stream[T]) Seek(pos int) {
	if pos <= 0 {
		s.pos = 0
		return
	}

	l := s.buf.len()
	if pos > l {
		s.pos = l
	} else {
		s.pos = pos
	}
}

// Rewind moves the cursor size tokens back, but not before the first token.
func (s *Stream[T]) Rewind(size int) {
	if size <= 0 {
		return
	}

	if s.pos <= size {
		s.pos = 0
	} else {
		s.pos -= size
	}
}

// Err returns the error that has ended the source or nil.
func (s *Stream[T]) Err() error {
	s.buf.mu.Lock()
	defer s.buf.mu.Unlock()
	return s.buf.err
}

// Close releases the source. Buffered tokens remain readable, the stream ends after them.
func (s *Stream[T]) Close() {
	s.buf.mu.Lock()
	defer s.buf.mu.Unlock()
	if !s.buf.done {
		s.buf.finish()
	}
}
