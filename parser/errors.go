package parser

import "github.com/ava12/combi"

// Error codes used by parser:
const (
	// EndOfInputError indicates that a token was required but the stream has ended.
	EndOfInputError = combi.SyntaxErrors + iota

	// MismatchError indicates that a token was read but rejected by predicate.
	MismatchError

	// ChoiceExhaustedError indicates that every alternative of Choice has failed.
	// Failure messages contain messages of all alternatives.
	ChoiceExhaustedError

	// EmptyChoiceError indicates Choice with no alternatives. Failure has no messages.
	EmptyChoiceError

	// TrailingInputError indicates unconsumed tokens left after Complete parser.
	TrailingInputError
)

func endOfInputError(pos int) *combi.Failure {
	return combi.NewFailure(EndOfInputError, pos, "Unexpected end of input")
}

func mismatchError(pos int, tok string) *combi.Failure {
	return combi.FormatFailure(MismatchError, pos, "Found %s", tok)
}

func trailingInputError(pos int, tok string) *combi.Failure {
	return combi.NewFailure(TrailingInputError, pos, "Found "+tok, "Expected end of input")
}

func choiceExhaustedError(pos int) *combi.Failure {
	return combi.NewFailure(ChoiceExhaustedError, pos)
}

func emptyChoiceError(pos int) *combi.Failure {
	return combi.NewFailure(EmptyChoiceError, pos)
}

func expectedMessage(tok string) string {
	return "Expected " + tok
}
