// Package parser defines parser state, primitive token recognition, combinators, and recovery strategies.
//
// A Parser is a plain function taking State and returning either a result and advanced State,
// or an error. Syntax errors are always *combi.Failure values; any other error (e.g. token source
// read error) is fatal and passes through every combinator and recovery strategy unchanged.
// A failed parser returns the State it was given, so failures never advance the caller.
//
// Parsers that succeed without consuming input must not be passed to Many or Repeat:
// there is no protection against the infinite loop this causes.
package parser

// Parser is a function recognizing a fragment of token stream and producing result of type A.
type Parser[T comparable, A any] func(s State[T]) (A, State[T], error)

// Recognize returns parser consuming a single token accepted by pred.
// Fails with EndOfInputError if there are no more tokens and with MismatchError if pred rejects the token.
func Recognize[T comparable](pred func(tok T) bool) Parser[T, T] {
	return func(s State[T]) (T, State[T], error) {
		tok, ok, next := s.next()
		if !ok {
			var zero T
			if e := s.Err(); e != nil {
				return zero, s, e
			}

			return zero, s, endOfInputError(s.Pos())
		}

		if !pred(tok) {
			var zero T
			return zero, s, mismatchError(s.Pos(), s.describe(tok))
		}

		return tok, next, nil
	}
}

// Accept returns parser consuming a single token equal to expected.
// Failure messages are extended with "Expected <token>".
func Accept[T comparable](expected T) Parser[T, T] {
	p := Recognize(func(tok T) bool {
		return tok == expected
	})
	return func(s State[T]) (T, State[T], error) {
		return Run(s, p, WithErrors[T, T](expectedMessage(s.describe(expected))))
	}
}

// Any returns parser consuming any single token.
func Any[T comparable]() Parser[T, T] {
	return Recognize(func(T) bool {
		return true
	})
}

// End returns parser succeeding only at the end of input, it consumes nothing.
func End[T comparable]() Parser[T, T] {
	return func(s State[T]) (T, State[T], error) {
		var zero T
		tok, ok, _ := s.next()
		if ok {
			return zero, s, trailingInputError(s.Pos(), s.describe(tok))
		}

		if e := s.Err(); e != nil {
			return zero, s, e
		}

		return zero, s, nil
	}
}

// Complete returns parser that fails with TrailingInputError if p does not consume all tokens.
func Complete[T comparable, A any](p Parser[T, A]) Parser[T, A] {
	end := End[T]()
	return func(s State[T]) (A, State[T], error) {
		res, next, e := Run(s, p)
		if e == nil {
			_, next, e = Run(next, end)
		}
		if e != nil {
			var zero A
			return zero, s, e
		}

		return res, next, nil
	}
}

// Map returns parser converting result of p with f.
func Map[T comparable, A, B any](p Parser[T, A], f func(A) B) Parser[T, B] {
	return func(s State[T]) (B, State[T], error) {
		res, next, e := Run(s, p)
		if e != nil {
			var zero B
			return zero, s, e
		}

		return f(res), next, nil
	}
}

// Lazy returns parser calling f on every use, allowing recursive grammars.
func Lazy[T comparable, A any](f func() Parser[T, A]) Parser[T, A] {
	return func(s State[T]) (A, State[T], error) {
		return Run(s, f())
	}
}

// Parse runs p against s and returns either the result or the error.
func Parse[T comparable, A any](p Parser[T, A], s State[T]) (A, error) {
	res, _, e := Run(s, p)
	return res, e
}
