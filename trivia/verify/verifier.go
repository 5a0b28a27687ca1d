// Package verify decides whether a fetched question may be shown: content
// scanning first, then the per-channel anti-repeat history.
package verify

import (
	"context"
	"fmt"

	"github.com/charlesmadere/CynanBot-sub014/logging"
	"github.com/charlesmadere/CynanBot-sub014/trivia"
)

// ContentScanner flags banned words and phrases in question text.
type ContentScanner interface {
	Scan(ctx context.Context, text string) (trivia.ContentCode, error)
}

// HistoryRepository tracks the most recently shown question per channel.
type HistoryRepository interface {
	GetMostRecentQuestionRef(ctx context.Context, channel string) (*trivia.QuestionRef, error)
	Verify(ctx context.Context, question *trivia.Question, emote, channel string) (trivia.ContentCode, error)
}

// Verifier composes the content scanner and the history repository behind a
// single accept/reject call.
type Verifier struct {
	scanner ContentScanner
	history HistoryRepository
	logger  *logging.Logger
}

// NewVerifier builds a verifier from its two collaborators.
func NewVerifier(scanner ContentScanner, history HistoryRepository, logger *logging.Logger) *Verifier {
	if logger == nil {
		logger = logging.Default()
	}
	return &Verifier{
		scanner: scanner,
		history: history,
		logger:  logger,
	}
}

// Verify scans the question's prompt and all its answer text, then checks
// the channel's history. Content runs first so history is never recorded
// for a question that will not be shown anyway.
func (v *Verifier) Verify(ctx context.Context, question *trivia.Question, emote, channel string) (trivia.ContentCode, error) {
	code, err := v.scanner.Scan(ctx, question.Prompt)
	if err != nil {
		return "", fmt.Errorf("scanning question prompt: %w", err)
	}
	if code != trivia.ContentCodeOK {
		v.logger.Debug("question rejected by content scan", "channel", channel, "triviaID", question.TriviaID)
		return trivia.ContentCodeRejectedContent, nil
	}

	for _, answer := range question.AnswerText() {
		code, err = v.scanner.Scan(ctx, answer)
		if err != nil {
			return "", fmt.Errorf("scanning question answer: %w", err)
		}
		if code != trivia.ContentCodeOK {
			v.logger.Debug("question answer rejected by content scan", "channel", channel, "triviaID", question.TriviaID)
			return trivia.ContentCodeRejectedContent, nil
		}
	}

	code, err = v.history.Verify(ctx, question, emote, channel)
	if err != nil {
		return "", fmt.Errorf("verifying question history: %w", err)
	}
	return code, nil
}
