package answers

import (
	"fmt"

	"github.com/charlesmadere/CynanBot-sub014/trivia"
)

// CheckResult reports whether a submitted answer was correct, and which
// accepted answer it matched when it was.
type CheckResult struct {
	Correct       bool
	MatchedAnswer string
}

// CheckAnswer decides correctness of a submitted answer against a question.
// It is a pure function of its inputs: the question is never mutated and
// checking the same pair twice always returns the same result. Compile
// failures (empty text, unparseable bool or ordinal) come back as errors so
// the caller can report invalid input instead of a plain miss.
func CheckAnswer(submitted string, question *trivia.Question) (CheckResult, error) {
	switch question.Type {
	case trivia.QuestionTypeQuestionAnswer:
		return checkQuestionAnswer(submitted, question.QuestionAnswer)
	case trivia.QuestionTypeTrueFalse:
		return checkTrueFalse(submitted, question.TrueFalse)
	case trivia.QuestionTypeMultipleChoice:
		return checkMultipleChoice(submitted, question.MultipleChoice)
	default:
		return CheckResult{}, fmt.Errorf("%w: unknown question type %q", trivia.ErrInvalidQuestion, question.Type)
	}
}

func checkQuestionAnswer(submitted string, payload *trivia.QuestionAnswerPayload) (CheckResult, error) {
	compiled, err := CompileTextAnswer(submitted)
	if err != nil {
		return CheckResult{}, err
	}

	for _, accepted := range payload.CleanedAnswers {
		for _, variant := range ExpandNumerals(accepted) {
			if compiled == variant {
				return CheckResult{Correct: true, MatchedAnswer: accepted}, nil
			}
		}
	}
	return CheckResult{}, nil
}

func checkTrueFalse(submitted string, payload *trivia.TrueFalsePayload) (CheckResult, error) {
	compiled, err := CompileBoolAnswer(submitted)
	if err != nil {
		return CheckResult{}, err
	}

	for _, accepted := range payload.CorrectAnswers {
		if compiled == accepted {
			matched := "false"
			if accepted {
				matched = "true"
			}
			return CheckResult{Correct: true, MatchedAnswer: matched}, nil
		}
	}
	return CheckResult{}, nil
}

func checkMultipleChoice(submitted string, payload *trivia.MultipleChoicePayload) (CheckResult, error) {
	ordinal, err := CompileMultipleChoiceOrdinal(submitted)
	if err != nil {
		return CheckResult{}, err
	}

	if ordinal == payload.CorrectOrdinal {
		return CheckResult{Correct: true, MatchedAnswer: payload.Choices[ordinal]}, nil
	}
	return CheckResult{}, nil
}
