package parser

import (
	"github.com/ava12/combi"
)

type recovery int

const (
	noRecovery recovery = iota
	defaultRecovery
	rewriteRecovery
	bindRecovery
)

// Strategy describes how Run handles a failure. Zero value re-raises failures unchanged.
//
// Available strategies are: default value (WithDefault), error replacement (ReplaceErrors),
// error augmentation (WithErrors), and custom failure handler (BindError).
// Replacement and augmentation may be combined, replacement is applied first.
// Default value and failure handler cannot be combined with anything.
type Strategy[T comparable, A any] struct {
	kind      recovery
	value     A
	replacing bool
	replace   []string
	extend    []string
	bind      func(messages []string) Parser[T, A]
}

// WithDefault returns strategy suppressing failure and returning value without consuming input.
func WithDefault[T comparable, A any](value A) Strategy[T, A] {
	return Strategy[T, A]{kind: defaultRecovery, value: value}
}

// ReplaceErrors returns strategy discarding failure messages and using messages instead.
func ReplaceErrors[T comparable, A any](messages ...string) Strategy[T, A] {
	return Strategy[T, A]{kind: rewriteRecovery, replacing: true, replace: messages}
}

// WithErrors returns strategy appending messages to failure messages.
func WithErrors[T comparable, A any](messages ...string) Strategy[T, A] {
	return Strategy[T, A]{kind: rewriteRecovery, extend: messages}
}

// BindError returns strategy calling handler with failure messages and running
// returned parser from the position where the failed parser has started.
func BindError[T comparable, A any](handler func(messages []string) Parser[T, A]) Strategy[T, A] {
	return Strategy[T, A]{kind: bindRecovery, bind: handler}
}

// ReplaceErrors adds message replacement to st. Panics if st is a default value or handler strategy.
func (st Strategy[T, A]) ReplaceErrors(messages ...string) Strategy[T, A] {
	return st.combine(ReplaceErrors[T, A](messages...))
}

// WithErrors adds message augmentation to st. Panics if st is a default value or handler strategy.
func (st Strategy[T, A]) WithErrors(messages ...string) Strategy[T, A] {
	return st.combine(WithErrors[T, A](messages...))
}

func (st Strategy[T, A]) combine(other Strategy[T, A]) Strategy[T, A] {
	if other.kind == noRecovery {
		return st
	}
	if st.kind == noRecovery {
		return other
	}
	if st.kind != rewriteRecovery || other.kind != rewriteRecovery {
		panic("parser: default value and failure handler strategies cannot be combined")
	}

	res := st
	if other.replacing {
		res.replacing = true
		res.replace = other.replace
	}
	res.extend = make([]string, 0, len(st.extend)+len(other.extend))
	res.extend = append(res.extend, st.extend...)
	res.extend = append(res.extend, other.extend...)
	return res
}

func (st Strategy[T, A]) rewrite(f *combi.Failure) *combi.Failure {
	if st.replacing {
		f = f.Replace(st.replace)
	}
	if len(st.extend) > 0 {
		f = f.Extend(st.extend...)
	}
	return f
}

// Run applies p to s. On success returns p result and advanced state, strategies are ignored.
// On failure the failure is handled according to strategies (combined in order),
// the returned state is s for any outcome except successful failure handler.
// Errors other than *combi.Failure are returned unchanged.
// Panics if strategies cannot be combined, whatever the outcome of p.
func Run[T comparable, A any](s State[T], p Parser[T, A], strategies ...Strategy[T, A]) (A, State[T], error) {
	var st Strategy[T, A]
	for _, other := range strategies {
		st = st.combine(other)
	}

	res, next, e := p(s)
	if e == nil {
		return res, next, nil
	}

	var zero A
	f, isFailure := e.(*combi.Failure)
	if !isFailure || st.kind == noRecovery {
		return zero, s, e
	}

	switch st.kind {
	case bindRecovery:
		s.debugf("failure at %d handled by bound parser at %d", f.Pos, s.Pos())
		messages := make([]string, len(f.Messages))
		copy(messages, f.Messages)
		return Run(s, st.bind(messages))

	case defaultRecovery:
		s.debugf("failure at %d replaced by default value at %d", f.Pos, s.Pos())
		return st.value, s, nil

	default:
		return zero, s, st.rewrite(f)
	}
}

// Recover returns parser running p with strategy st.
func (p Parser[T, A]) Recover(st Strategy[T, A]) Parser[T, A] {
	return func(s State[T]) (A, State[T], error) {
		return Run(s, p, st)
	}
}

// WithDefault returns parser running p with WithDefault strategy.
func (p Parser[T, A]) WithDefault(value A) Parser[T, A] {
	return p.Recover(WithDefault[T](value))
}

// ReplaceErrors returns parser running p with ReplaceErrors strategy.
func (p Parser[T, A]) ReplaceErrors(messages ...string) Parser[T, A] {
	return p.Recover(ReplaceErrors[T, A](messages...))
}

// WithErrors returns parser running p with WithErrors strategy.
func (p Parser[T, A]) WithErrors(messages ...string) Parser[T, A] {
	return p.Recover(WithErrors[T, A](messages...))
}

// BindError returns parser running p with BindError strategy.
func (p Parser[T, A]) BindError(handler func(messages []string) Parser[T, A]) Parser[T, A] {
	return p.Recover(BindError(handler))
}
