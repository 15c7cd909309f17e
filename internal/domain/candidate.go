package domain

// RawQuestionCandidate is a question as extracted from provider output, before
// defaults and validation. It may violate every QuizQuestion invariant and must
// go through the normalizer before it is handed to callers.
type RawQuestionCandidate struct {
	ID            string
	Question      string
	Options       []string
	CorrectAnswer string
	Explanation   *string
	Difficulty    *string
	Category      *string
}
