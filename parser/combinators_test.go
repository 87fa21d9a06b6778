package parser

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ava12/combi/internal/test"
)

// counting wraps p and records positions it was started at.
func counting[T comparable, A any](p Parser[T, A], starts *[]int) Parser[T, A] {
	return func(s State[T]) (A, State[T], error) {
		*starts = append(*starts, s.Pos())
		return p(s)
	}
}

func TestChain(t *testing.T) {
	testRuneSamples(t, "chain", Chain(Accept('A'), Accept('A'), Accept('B')), []runeSample{
		{"AAB", "AAB", 3, 0},
		{"AABA", "AAB", 3, 0},
		{"AAA", "", 0, MismatchError},
		{"BAB", "", 0, MismatchError},
		{"AA", "", 0, EndOfInputError},
	})

	testRuneSamples(t, "empty chain", Chain[rune, rune](), []runeSample{
		{"", "", 0, 0},
		{"A", "", 0, 0},
	})
}

func TestChainFailsFast(t *testing.T) {
	var starts []int
	p := Chain(Accept('A'), Accept('B'), counting(Accept('C'), &starts))

	_, _, e := Run(FromString("AXC"), p)
	f := test.ExpectFailure(t, MismatchError, e)
	test.ExpectMessages(t, []string{"Found X", "Expected B"}, e)
	test.ExpectInt(t, 1, f.Pos)
	require.Empty(t, starts)

	_, _, e = Run(FromString("ABC"), p)
	require.NoError(t, e)
	require.Equal(t, []int{2}, starts)
}

func TestChoice(t *testing.T) {
	ab := Chain(Accept('A'), Accept('B'))
	a := Map(Accept('A'), func(r rune) []rune {
		return []rune{r}
	})

	testRuneSamples(t, "choice", Choice(ab, a), []runeSample{
		{"AB", "AB", 2, 0},
		{"AC", "A", 1, 0},
		{"A", "A", 1, 0},
		{"C", "", 0, ChoiceExhaustedError},
		{"", "", 0, ChoiceExhaustedError},
	})

	testRuneSamples(t, "shorter first", Choice(a, ab), []runeSample{
		{"AB", "A", 1, 0},
	})
}

func TestChoiceMessages(t *testing.T) {
	_, _, e := Run(FromString("C"), Choice(Accept('A'), Accept('B')))
	f := test.ExpectFailure(t, ChoiceExhaustedError, e)
	test.ExpectMessages(t, []string{"Found C", "Expected B", "Found C", "Expected A"}, e)
	test.ExpectInt(t, 0, f.Pos)

	_, _, e = Run(FromString("C"), Choice(Accept('A')))
	test.ExpectFailure(t, ChoiceExhaustedError, e)
	test.ExpectMessages(t, []string{"Found C", "Expected A"}, e)

	_, next, e := Run(FromString("A"), Choice[rune, rune]())
	test.ExpectFailure(t, EmptyChoiceError, e)
	test.ExpectMessages(t, []string{}, e)
	test.ExpectInt(t, 0, next.Pos())
}

func TestChoiceOrdering(t *testing.T) {
	var firstStarts, secondStarts []int
	first := counting(Map(Chain(Accept('A'), Accept('B')), func(rs []rune) rune { return rs[1] }), &firstStarts)
	second := counting(Accept('A'), &secondStarts)
	p := Chain(Accept('X'), Choice(first, second))

	res, next, e := Run(FromString("XAB"), p)
	require.NoError(t, e)
	require.Equal(t, []rune("XB"), res)
	require.Equal(t, 3, next.Pos())
	require.Equal(t, []int{1}, firstStarts)
	require.Empty(t, secondStarts, "second alternative must not be evaluated")

	firstStarts, secondStarts = nil, nil
	res, next, e = Run(FromString("XAC"), p)
	require.NoError(t, e)
	require.Equal(t, []rune("XA"), res)
	require.Equal(t, 2, next.Pos(), "only the second alternative consumption is committed")
	require.Equal(t, []int{1}, firstStarts)
	require.Equal(t, []int{1}, secondStarts, "second alternative starts from unadvanced position")
}

func TestOption(t *testing.T) {
	testRuneSamples(t, "option", Option(Accept('B')), []runeSample{
		{"B", "B", 1, 0},
		{"BB", "B", 1, 0},
		{"A", "", 0, 0},
		{"", "", 0, 0},
	})

	testRuneSamples(t, "option of chain", Option(Map(Chain(Accept('A'), Accept('B')), func(rs []rune) rune { return rs[0] })), []runeSample{
		{"AB", "A", 2, 0},
		{"AC", "", 0, 0},
	})
}

func TestMany(t *testing.T) {
	testRuneSamples(t, "many", Many(Accept('B')), []runeSample{
		{"", "", 0, 0},
		{"A", "", 0, 0},
		{"B", "B", 1, 0},
		{"BBBA", "BBB", 3, 0},
	})

	pairs := Map(Many(Chain(Accept('A'), Accept('B'))), func(ps [][]rune) []rune {
		res := []rune{}
		for _, p := range ps {
			res = append(res, p...)
		}
		return res
	})
	testRuneSamples(t, "many pairs", pairs, []runeSample{
		{"ABABA", "ABAB", 4, 0},
		{"ABAC", "AB", 2, 0},
	})
}

func TestRepeat(t *testing.T) {
	testRuneSamples(t, "repeat", Repeat(Accept('B')), []runeSample{
		{"B", "B", 1, 0},
		{"BBB", "BBB", 3, 0},
		{"BBA", "BB", 2, 0},
		{"", "", 0, EndOfInputError},
		{"A", "", 0, MismatchError},
	})
}

func TestRepetitionLaws(t *testing.T) {
	p := Accept('A')

	var manyByLaw Parser[rune, []rune]
	manyByLaw = func(s State[rune]) ([]rune, State[rune], error) {
		first, next, e := Run(s, Option(p))
		if e != nil || len(first) == 0 {
			return []rune{}, s, e
		}

		rest, next, e := Run(next, manyByLaw)
		return append(first, rest...), next, e
	}
	repeatByLaw := Map(Chain(Map(p, func(r rune) []rune { return []rune{r} }), Many(p)), func(parts [][]rune) []rune {
		return append(parts[0], parts[1]...)
	})

	for _, text := range []string{"", "A", "AAA", "AAB", "B", "ABA"} {
		r1, n1, e1 := Run(FromString(text), Many(p))
		r2, n2, e2 := Run(FromString(text), manyByLaw)
		require.Equal(t, e1, e2, text)
		require.Equal(t, r1, r2, text)
		require.Equal(t, n1.Pos(), n2.Pos(), text)

		r1, n1, e1 = Run(FromString(text), Repeat(p))
		r2, n2, e2 = Run(FromString(text), repeatByLaw)
		require.Equal(t, e1, e2, text)
		require.Equal(t, r1, r2, text)
		require.Equal(t, n1.Pos(), n2.Pos(), text)
	}
}

func TestNonConsumptionOnFailure(t *testing.T) {
	ab := Chain(Accept('A'), Accept('B'))
	parsers := map[string]Parser[rune, []rune]{
		"option": Map(Option(ab), func(xs [][]rune) []rune { return nil }),
		"many":   Map(Many(ab), func(xs [][]rune) []rune { return nil }),
	}

	for name, p := range parsers {
		s := FromString("AC")
		_, next, e := Run(s, p)
		require.NoError(t, e, name)
		require.Equal(t, 0, next.Pos(), name)
	}

	s := FromString("AAC")
	_, next, e := Run(s, Chain(Accept('A'), Accept('A'), Accept('B')))
	test.ExpectFailure(t, MismatchError, e)
	require.Equal(t, 0, next.Pos())
}
