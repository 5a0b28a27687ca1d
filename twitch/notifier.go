package twitchirc

import (
	"context"
	"fmt"
	"strings"

	"github.com/charlesmadere/CynanBot-sub014/logging"
	"github.com/charlesmadere/CynanBot-sub014/metrics"
	"github.com/charlesmadere/CynanBot-sub014/trivia"
)

// ChatSpeaker is the slice of the IRC client the notifier needs.
type ChatSpeaker interface {
	Say(channel, text string)
}

// ChatNotifier consumes trivia events off the broker and renders them into
// chat messages. It is the engine's notification surface; the machine never
// talks to chat directly.
type ChatNotifier struct {
	speaker ChatSpeaker
	logger  *logging.Logger
}

// NewChatNotifier builds a notifier speaking through the given client.
func NewChatNotifier(speaker ChatSpeaker, logger *logging.Logger) *ChatNotifier {
	if logger == nil {
		logger = logging.Default()
	}
	return &ChatNotifier{
		speaker: speaker,
		logger:  logger,
	}
}

// Name identifies the notifier on the event broker.
func (n *ChatNotifier) Name() string { return "twitchChatNotifier" }

// OnNewTriviaEvent renders the event and sends it to the event's channel.
// Events with no user-facing message are dropped silently.
func (n *ChatNotifier) OnNewTriviaEvent(ctx context.Context, event trivia.Event) {
	text := RenderEvent(event)
	if text == "" {
		return
	}

	n.speaker.Say(event.Channel(), text)
	metrics.TwitchMessageSentCount.Add(1)
}

// RenderEvent builds the chat line for an event. An empty string means the
// event is not user-facing.
func RenderEvent(event trivia.Event) string {
	switch e := event.(type) {
	case *trivia.NewGameEvent:
		return fmt.Sprintf("%s @%s trivia for %d points, %ds on the clock: %s",
			e.Emote, e.UserName, e.BasePoints, e.SecondsToLive, questionText(e.Question))

	case *trivia.NewSuperGameEvent:
		points := e.BasePoints * e.PointsMultiplier
		return fmt.Sprintf("%s SUPER TRIVIA for everyone! %d points, %ds on the clock: %s",
			e.Emote, points, e.SecondsToLive, questionText(e.Question))

	case *trivia.NewQueuedSuperGameEvent:
		return fmt.Sprintf("Queued up %d super trivia game(s), %d now waiting", e.AmountAdded, e.NewQueueSize)

	case *trivia.CorrectAnswerEvent:
		return fmt.Sprintf("%s @%s got it! \"%s\" is correct, %d points won", e.Emote, e.UserName, e.MatchedAnswer, e.PointsWon)

	case *trivia.IncorrectAnswerEvent:
		return fmt.Sprintf("%s @%s that's not it, try again", e.Emote, e.UserName)

	case *trivia.SuperGameCorrectAnswerEvent:
		return fmt.Sprintf("%s @%s wins the super trivia! \"%s\" is correct, %d points won",
			e.Emote, e.UserName, e.MatchedAnswer, e.PointsWon)

	case *trivia.IncorrectSuperAnswerEvent:
		// Super games can draw a lot of wrong guesses; echoing each one
		// back would drown the channel.
		return ""

	case *trivia.InvalidAnswerInputEvent:
		return fmt.Sprintf("@%s sorry, I couldn't read that answer", e.UserName)

	case *trivia.GameAlreadyInProgressEvent:
		return fmt.Sprintf("@%s you already have a trivia question up", e.UserName)

	case *trivia.SuperGameAlreadyInProgressEvent:
		return "There's already a super trivia game running"

	case *trivia.GameNotReadyEvent:
		return fmt.Sprintf("@%s there's no trivia question waiting on your answer", e.UserName)

	case *trivia.SuperGameNotReadyEvent:
		return fmt.Sprintf("@%s there's no super trivia game running", e.UserName)

	case *trivia.GameOutOfTimeEvent:
		return fmt.Sprintf("%s @%s time's up! The answer was: %s", e.Emote, e.UserName, revealAnswer(e.Question))

	case *trivia.SuperGameOutOfTimeEvent:
		return fmt.Sprintf("%s time's up on the super trivia! The answer was: %s", e.Emote, revealAnswer(e.Question))

	case *trivia.FailedToFetchQuestionEvent:
		return fmt.Sprintf("@%s sorry, I couldn't find a trivia question right now", e.UserName)

	case *trivia.SuperGameFailedToFetchQuestionEvent:
		return "Sorry, I couldn't find a super trivia question right now"

	case *trivia.ClearedSuperTriviaQueueEvent:
		return fmt.Sprintf("Cleared the super trivia queue (%d game(s) removed)", e.AmountRemoved)

	case *trivia.WrongUserEvent:
		return fmt.Sprintf("@%s that's somebody else's question", e.UserName)

	default:
		return ""
	}
}

func questionText(q *trivia.Question) string {
	var sb strings.Builder

	if q.Category != "" {
		sb.WriteString("(")
		sb.WriteString(q.Category)
		sb.WriteString(") ")
	}

	switch q.Type {
	case trivia.QuestionTypeTrueFalse:
		sb.WriteString("True or false: ")
		sb.WriteString(q.Prompt)

	case trivia.QuestionTypeMultipleChoice:
		sb.WriteString(q.Prompt)
		for i, choice := range q.MultipleChoice.Choices {
			sb.WriteString(fmt.Sprintf(" %c) %s", 'A'+i, choice))
		}

	default:
		sb.WriteString(q.Prompt)
	}

	return sb.String()
}

func revealAnswer(q *trivia.Question) string {
	switch q.Type {
	case trivia.QuestionTypeMultipleChoice:
		ordinal := q.MultipleChoice.CorrectOrdinal
		return fmt.Sprintf("%c) %s", 'A'+ordinal, q.MultipleChoice.Choices[ordinal])

	case trivia.QuestionTypeTrueFalse:
		parts := make([]string, 0, len(q.TrueFalse.CorrectAnswers))
		for _, answer := range q.TrueFalse.CorrectAnswers {
			parts = append(parts, fmt.Sprintf("%t", answer))
		}
		return strings.Join(parts, " or ")

	default:
		return q.QuestionAnswer.CorrectAnswers[0]
	}
}
