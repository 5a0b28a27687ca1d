// Package trivia holds the domain types for the trivia game engine: questions,
// game state, actions, events, and the id generator shared by all of them.
package trivia

import "fmt"

// QuestionType discriminates the question variants.
type QuestionType string

const (
	QuestionTypeMultipleChoice QuestionType = "multipleChoice"
	QuestionTypeTrueFalse      QuestionType = "trueFalse"
	QuestionTypeQuestionAnswer QuestionType = "questionAnswer"
)

// Difficulty is the source-assigned difficulty of a question.
type Difficulty string

const (
	DifficultyEasy    Difficulty = "easy"
	DifficultyMedium  Difficulty = "medium"
	DifficultyHard    Difficulty = "hard"
	DifficultyUnknown Difficulty = "unknown"
)

// ParseDifficulty maps free-form source metadata onto a Difficulty.
func ParseDifficulty(raw string) Difficulty {
	switch raw {
	case "easy", "EASY":
		return DifficultyEasy
	case "medium", "MEDIUM":
		return DifficultyMedium
	case "hard", "HARD":
		return DifficultyHard
	default:
		return DifficultyUnknown
	}
}

// Source is a provenance tag describing where a question came from.
type Source string

const (
	SourceLocalDatabase Source = "localDatabase"
	SourceManual        Source = "manual"
	SourceUnknown       Source = "unknown"
)

// MultipleChoicePayload holds the fixed 4-way choice set and the index of
// the correct choice.
type MultipleChoicePayload struct {
	Choices        []string
	CorrectOrdinal int
}

// TrueFalsePayload holds the accepted boolean answers. More than one entry
// means the question accepts either answer (ambiguous historical questions).
type TrueFalsePayload struct {
	CorrectAnswers []bool
}

// QuestionAnswerPayload holds both the raw correct answers and their
// compiled (normalized) forms.
type QuestionAnswerPayload struct {
	CorrectAnswers []string
	CleanedAnswers []string
}

// Question is an immutable trivia question. Exactly one payload is set,
// matching Type. Questions are never mutated after construction; the game
// state that references one owns it and discards it with itself.
type Question struct {
	TriviaID   string
	Type       QuestionType
	Prompt     string
	Category   string
	Difficulty Difficulty
	Source     Source

	MultipleChoice *MultipleChoicePayload
	TrueFalse      *TrueFalsePayload
	QuestionAnswer *QuestionAnswerPayload
}

const multipleChoiceSize = 4

// NewMultipleChoiceQuestion builds a multiple choice question and validates
// its invariants.
func NewMultipleChoiceQuestion(triviaID, prompt, category string, difficulty Difficulty, source Source, choices []string, correctOrdinal int) (*Question, error) {
	if err := validateQuestionBase(triviaID, prompt); err != nil {
		return nil, err
	}
	if len(choices) != multipleChoiceSize {
		return nil, fmt.Errorf("%w: multiple choice question requires %d choices, got %d", ErrInvalidQuestion, multipleChoiceSize, len(choices))
	}
	for i, choice := range choices {
		if choice == "" {
			return nil, fmt.Errorf("%w: empty choice at index %d", ErrInvalidQuestion, i)
		}
	}
	if correctOrdinal < 0 || correctOrdinal >= multipleChoiceSize {
		return nil, fmt.Errorf("%w: correct ordinal %d out of range", ErrInvalidQuestion, correctOrdinal)
	}

	return &Question{
		TriviaID:   triviaID,
		Type:       QuestionTypeMultipleChoice,
		Prompt:     prompt,
		Category:   category,
		Difficulty: difficulty,
		Source:     source,
		MultipleChoice: &MultipleChoicePayload{
			Choices:        choices,
			CorrectOrdinal: correctOrdinal,
		},
	}, nil
}

// NewTrueFalseQuestion builds a true/false question.
func NewTrueFalseQuestion(triviaID, prompt, category string, difficulty Difficulty, source Source, correctAnswers []bool) (*Question, error) {
	if err := validateQuestionBase(triviaID, prompt); err != nil {
		return nil, err
	}
	if len(correctAnswers) == 0 {
		return nil, fmt.Errorf("%w: true/false question requires at least one correct answer", ErrInvalidQuestion)
	}

	return &Question{
		TriviaID:   triviaID,
		Type:       QuestionTypeTrueFalse,
		Prompt:     prompt,
		Category:   category,
		Difficulty: difficulty,
		Source:     source,
		TrueFalse: &TrueFalsePayload{
			CorrectAnswers: correctAnswers,
		},
	}, nil
}

// NewQuestionAnswerQuestion builds a free-form question. Both the raw and
// the cleaned correct answer lists must be supplied; the cleaned list is
// what the answer checker compares against.
func NewQuestionAnswerQuestion(triviaID, prompt, category string, difficulty Difficulty, source Source, correctAnswers, cleanedAnswers []string) (*Question, error) {
	if err := validateQuestionBase(triviaID, prompt); err != nil {
		return nil, err
	}
	if len(correctAnswers) == 0 || len(cleanedAnswers) == 0 {
		return nil, fmt.Errorf("%w: question/answer question requires raw and cleaned correct answers", ErrInvalidQuestion)
	}

	return &Question{
		TriviaID:   triviaID,
		Type:       QuestionTypeQuestionAnswer,
		Prompt:     prompt,
		Category:   category,
		Difficulty: difficulty,
		Source:     source,
		QuestionAnswer: &QuestionAnswerPayload{
			CorrectAnswers: correctAnswers,
			CleanedAnswers: cleanedAnswers,
		},
	}, nil
}

func validateQuestionBase(triviaID, prompt string) error {
	if triviaID == "" {
		return fmt.Errorf("%w: missing trivia id", ErrInvalidQuestion)
	}
	if prompt == "" {
		return fmt.Errorf("%w: missing prompt", ErrInvalidQuestion)
	}
	return nil
}

// AnswerText returns every piece of answer text attached to the question.
// Used by the content scanner so banned words hide in answers too.
func (q *Question) AnswerText() []string {
	switch q.Type {
	case QuestionTypeMultipleChoice:
		return q.MultipleChoice.Choices
	case QuestionTypeQuestionAnswer:
		return q.QuestionAnswer.CorrectAnswers
	default:
		return nil
	}
}

// ContentCode is the outcome of verifying a question before it is shown.
type ContentCode string

const (
	ContentCodeOK                ContentCode = "OK"
	ContentCodeRejectedContent   ContentCode = "REJECTED_CONTENT"
	ContentCodeRejectedDuplicate ContentCode = "REJECTED_DUPLICATE"
)

// QuestionRef identifies the most recently shown question in a channel.
type QuestionRef struct {
	Emote    string
	TriviaID string
}

// FetchOptions narrows what the question source may return.
type FetchOptions struct {
	TwitchChannel string
	QuestionType  QuestionType // empty means any
	Category      string       // empty means any
}
