package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/charlesmadere/CynanBot-sub014/trivia"
	"github.com/charlesmadere/CynanBot-sub014/trivia/answers"
	"github.com/lib/pq"
)

type questionRow struct {
	Question       string         `db:"question"`
	Category       sql.NullString `db:"category"`
	QuestionType   string         `db:"question_type"`
	Difficulty     sql.NullString `db:"difficulty"`
	CorrectAnswers pq.StringArray `db:"correct_answers"`
	Choices        pq.StringArray `db:"choices"`
	CorrectOrdinal sql.NullInt32  `db:"correct_ordinal"`
	CorrectBools   pq.BoolArray   `db:"correct_bools"`
}

// FetchTriviaQuestion serves a random question from the local question
// table, honoring the type and category filters in the fetch options.
// Question/answer questions get their accepted answers compiled here so the
// engine always sees both raw and cleaned forms.
func (p *Postgres) FetchTriviaQuestion(ctx context.Context, opts trivia.FetchOptions) (*trivia.Question, error) {
	p.logger.Debug("fetching trivia question",
		"channel", opts.TwitchChannel, "questionType", string(opts.QuestionType), "category", opts.Category)

	query := `
		SELECT question, category, question_type, difficulty, correct_answers, choices, correct_ordinal, correct_bools
		FROM trivia_questions
		WHERE ($1 = '' OR question_type = $1)
		  AND ($2 = '' OR category = $2)
		ORDER BY RANDOM()
		LIMIT 1
	`

	var row questionRow
	err := p.connections.GetContext(ctx, &row, query, string(opts.QuestionType), opts.Category)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("no question matches fetch options: %w", trivia.ErrNoQuestionAvailable)
	}
	if err != nil {
		p.logger.Error("error fetching trivia question", "error", err.Error())
		return nil, fmt.Errorf("error fetching trivia question: %w", err)
	}

	return rowToQuestion(row)
}

func rowToQuestion(row questionRow) (*trivia.Question, error) {
	difficulty := trivia.ParseDifficulty(row.Difficulty.String)
	triviaID := trivia.GenerateQuestionID(row.Question, row.Category.String, difficulty)

	switch trivia.QuestionType(row.QuestionType) {
	case trivia.QuestionTypeMultipleChoice:
		return trivia.NewMultipleChoiceQuestion(
			triviaID, row.Question, row.Category.String, difficulty,
			trivia.SourceLocalDatabase, row.Choices, int(row.CorrectOrdinal.Int32))

	case trivia.QuestionTypeTrueFalse:
		return trivia.NewTrueFalseQuestion(
			triviaID, row.Question, row.Category.String, difficulty,
			trivia.SourceLocalDatabase, row.CorrectBools)

	case trivia.QuestionTypeQuestionAnswer:
		cleaned, err := answers.CompileTextAnswersList(row.CorrectAnswers, true)
		if err != nil {
			return nil, fmt.Errorf("compiling correct answers: %w", err)
		}
		return trivia.NewQuestionAnswerQuestion(
			triviaID, row.Question, row.Category.String, difficulty,
			trivia.SourceLocalDatabase, row.CorrectAnswers, cleaned)

	default:
		return nil, fmt.Errorf("%w: unknown question type %q", trivia.ErrInvalidQuestion, row.QuestionType)
	}
}
