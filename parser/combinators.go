package parser

// Chain returns parser applying ps one after another, each starting where the previous one stopped.
// Fails with the first failure, no partial results are returned.
func Chain[T comparable, A any](ps ...Parser[T, A]) Parser[T, []A] {
	return func(s State[T]) ([]A, State[T], error) {
		res := make([]A, 0, len(ps))
		current := s
		for _, p := range ps {
			r, next, e := Run(current, p)
			if e != nil {
				return nil, s, e
			}

			res = append(res, r)
			current = next
		}
		return res, current, nil
	}
}

// Choice returns parser trying ps in order from the same position, the first successful result wins.
// Messages of each failed alternative are appended to the failure of the remaining alternatives,
// so if all alternatives fail the failure (ChoiceExhaustedError) lists the messages
// of the last alternative first and the messages of the first alternative last.
// Choice with no alternatives always fails with EmptyChoiceError and no messages.
func Choice[T comparable, A any](ps ...Parser[T, A]) Parser[T, A] {
	if len(ps) == 0 {
		return func(s State[T]) (A, State[T], error) {
			var zero A
			return zero, s, emptyChoiceError(s.Pos())
		}
	}

	return choice(ps)
}

func choice[T comparable, A any](ps []Parser[T, A]) Parser[T, A] {
	if len(ps) == 0 {
		return func(s State[T]) (A, State[T], error) {
			var zero A
			return zero, s, choiceExhaustedError(s.Pos())
		}
	}

	rest := ps[1:]
	return ps[0].BindError(func(messages []string) Parser[T, A] {
		return choice(rest).WithErrors(messages...)
	})
}

// Option returns parser applying p once. Returns single-element slice on success,
// empty slice and unchanged state on failure.
func Option[T comparable, A any](p Parser[T, A]) Parser[T, []A] {
	return Map(p, func(a A) []A {
		return []A{a}
	}).WithDefault([]A{})
}

// Many returns parser applying p until it fails and collecting results.
// The failed attempt consumes nothing and its failure is discarded.
func Many[T comparable, A any](p Parser[T, A]) Parser[T, []A] {
	op := Option(p)
	return func(s State[T]) ([]A, State[T], error) {
		res := []A{}
		current := s
		for {
			r, next, e := Run(current, op)
			if e != nil {
				return nil, s, e
			}

			if len(r) == 0 {
				return res, current, nil
			}

			res = append(res, r...)
			current = next
		}
	}
}

// Repeat returns parser applying p at least once and then until it fails.
// Fails if the first application fails.
func Repeat[T comparable, A any](p Parser[T, A]) Parser[T, []A] {
	rest := Many(p)
	return func(s State[T]) ([]A, State[T], error) {
		first, next, e := Run(s, p)
		if e != nil {
			return nil, s, e
		}

		others, next, e := Run(next, rest)
		if e != nil {
			return nil, s, e
		}

		return append([]A{first}, others...), next, nil
	}
}
