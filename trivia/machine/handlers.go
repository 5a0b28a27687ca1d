package machine

import (
	"context"
	"fmt"

	"github.com/charlesmadere/CynanBot-sub014/metrics"
	"github.com/charlesmadere/CynanBot-sub014/trivia"
	"github.com/charlesmadere/CynanBot-sub014/trivia/answers"
)

// fetchVerifiedQuestion asks the question source for a question and runs it
// through the verifier. Rejected questions (banned content, repeat of the
// channel's most recent question) are swapped for a fresh fetch, up to the
// configured attempt count. Source and verifier failures are returned as-is;
// the machine never retries those on its own.
func (m *Machine) fetchVerifiedQuestion(ctx context.Context, opts trivia.FetchOptions, emote, channel string) (*trivia.Question, error) {
	for attempt := 1; attempt <= m.cfg.FetchAttempts; attempt++ {
		question, err := m.source.FetchTriviaQuestion(ctx, opts)
		if err != nil {
			return nil, fmt.Errorf("fetching trivia question: %w", err)
		}

		code, err := m.verifier.Verify(ctx, question, emote, channel)
		if err != nil {
			return nil, fmt.Errorf("verifying trivia question: %w", err)
		}
		if code == trivia.ContentCodeOK {
			return question, nil
		}

		metrics.QuestionVerifyRejectCount.Add(1)
		m.logger.Debug("question rejected, fetching another",
			"channel", channel, "triviaID", question.TriviaID, "code", string(code), "attempt", attempt)
	}

	return nil, fmt.Errorf("no verified question after %d attempts: %w", m.cfg.FetchAttempts, trivia.ErrNoQuestionAvailable)
}

func (m *Machine) handleStartNewGame(ctx context.Context, action *trivia.StartNewGameAction) {
	if existing := m.games.GetNormalGame(action.TwitchChannel, action.UserID); existing != nil {
		m.emit(&trivia.GameAlreadyInProgressEvent{
			EventMeta: m.newEventMeta(action.ID, action.TwitchChannel),
			GameID:    existing.GameID(),
			UserID:    action.UserID,
			UserName:  action.UserName,
		})
		return
	}

	emote := m.nextEmote(action.TwitchChannel)
	question, err := m.fetchVerifiedQuestion(ctx, action.Fetch, emote, action.TwitchChannel)
	if err != nil {
		metrics.QuestionFetchFailCount.Add(1)
		m.logger.Error("failed to fetch question for new game",
			"error", err.Error(), "channel", action.TwitchChannel, "userID", action.UserID)
		m.emit(&trivia.FailedToFetchQuestionEvent{
			EventMeta: m.newEventMeta(action.ID, action.TwitchChannel),
			UserID:    action.UserID,
			UserName:  action.UserName,
		})
		return
	}

	basePoints := action.BasePoints
	if basePoints <= 0 {
		basePoints = m.cfg.DefaultBasePoints
	}
	secondsToLive := action.SecondsToLive
	if secondsToLive <= 0 {
		secondsToLive = m.cfg.DefaultSecondsToLive
	}

	state, err := trivia.NewNormalGameState(
		m.ids.GenerateGameID(), action.ID, action.TwitchChannel, emote,
		question, action.UserID, action.UserName, basePoints, secondsToLive, m.now())
	if err != nil {
		m.logger.Error("failed to build normal game state", "error", err.Error(), "actionID", action.ID)
		return
	}

	// The fetch above ran without any store lock held; the slot may have
	// been taken in the meantime. AddNormalGame decides atomically.
	if !m.games.AddNormalGame(state) {
		m.emit(&trivia.GameAlreadyInProgressEvent{
			EventMeta: m.newEventMeta(action.ID, action.TwitchChannel),
			UserID:    action.UserID,
			UserName:  action.UserName,
		})
		return
	}

	metrics.TriviaGamesStarted.WithLabelValues(string(trivia.GameTypeNormal)).Inc()
	m.emit(&trivia.NewGameEvent{
		EventMeta:     m.newEventMeta(action.ID, action.TwitchChannel),
		GameID:        state.GameID(),
		UserID:        action.UserID,
		UserName:      action.UserName,
		Question:      question,
		BasePoints:    basePoints,
		SecondsToLive: secondsToLive,
		Emote:         emote,
	})
}

func (m *Machine) handleStartNewSuperGame(ctx context.Context, action *trivia.StartNewSuperGameAction) {
	inProgress := m.games.GetSuperGame(action.TwitchChannel) != nil

	if action.NumberOfGames > 1 || inProgress {
		result := m.queue.AddSuperGames(inProgress, action)
		metrics.SuperTriviaQueueDepth.
			WithLabelValues(action.TwitchChannel).
			Set(float64(result.NewQueueSize))

		m.emit(&trivia.NewQueuedSuperGameEvent{
			EventMeta:     m.newEventMeta(action.ID, action.TwitchChannel),
			NumberOfGames: action.NumberOfGames,
			AmountAdded:   result.AmountAdded,
			OldQueueSize:  result.OldQueueSize,
			NewQueueSize:  result.NewQueueSize,
		})
		return
	}

	m.activateSuperGame(ctx, action)
}

// activateSuperGame turns a super game request into a live game. Called
// both for direct starts and for entries popped off the queue.
func (m *Machine) activateSuperGame(ctx context.Context, action *trivia.StartNewSuperGameAction) {
	emote := m.nextEmote(action.TwitchChannel)
	question, err := m.fetchVerifiedQuestion(ctx, action.Fetch, emote, action.TwitchChannel)
	if err != nil {
		metrics.QuestionFetchFailCount.Add(1)
		m.logger.Error("failed to fetch question for super game",
			"error", err.Error(), "channel", action.TwitchChannel)
		m.emit(&trivia.SuperGameFailedToFetchQuestionEvent{
			EventMeta: m.newEventMeta(action.ID, action.TwitchChannel),
		})
		return
	}

	basePoints := action.BasePoints
	if basePoints <= 0 {
		basePoints = m.cfg.DefaultBasePoints
	}
	secondsToLive := action.SecondsToLive
	if secondsToLive <= 0 {
		secondsToLive = m.cfg.DefaultSecondsToLive
	}

	state, err := trivia.NewSuperGameState(
		m.ids.GenerateGameID(), action.ID, action.TwitchChannel, emote,
		question, basePoints, action.PointsMultiplier, secondsToLive, m.now())
	if err != nil {
		m.logger.Error("failed to build super game state", "error", err.Error(), "actionID", action.ID)
		return
	}

	if !m.games.AddSuperGame(state) {
		m.emit(&trivia.SuperGameAlreadyInProgressEvent{
			EventMeta: m.newEventMeta(action.ID, action.TwitchChannel),
			GameID:    state.GameID(),
		})
		return
	}

	m.cooldown.Update(action.TwitchChannel)
	metrics.TriviaGamesStarted.WithLabelValues(string(trivia.GameTypeSuper)).Inc()
	m.emit(&trivia.NewSuperGameEvent{
		EventMeta:        m.newEventMeta(action.ID, action.TwitchChannel),
		GameID:           state.GameID(),
		Question:         question,
		BasePoints:       basePoints,
		PointsMultiplier: state.PointsMultiplier(),
		SecondsToLive:    secondsToLive,
		Emote:            emote,
	})
}

func (m *Machine) handleCheckAnswer(ctx context.Context, action *trivia.CheckAnswerAction) {
	state := m.games.GetNormalGame(action.TwitchChannel, action.UserID)
	if state == nil {
		// Answering while someone else's question is up is a different
		// outcome than answering with nothing up at all.
		if m.games.HasNormalGameInChannel(action.TwitchChannel) {
			m.emit(&trivia.WrongUserEvent{
				EventMeta: m.newEventMeta(action.ID, action.TwitchChannel),
				UserID:    action.UserID,
				UserName:  action.UserName,
			})
		} else {
			m.emit(&trivia.GameNotReadyEvent{
				EventMeta: m.newEventMeta(action.ID, action.TwitchChannel),
				UserID:    action.UserID,
				UserName:  action.UserName,
				Answer:    action.Answer,
			})
		}
		return
	}

	result, err := answers.CheckAnswer(action.Answer, state.Question())
	if err != nil {
		metrics.TriviaAnswersChecked.WithLabelValues(string(trivia.GameTypeNormal), "invalid").Inc()
		m.emit(&trivia.InvalidAnswerInputEvent{
			EventMeta: m.newEventMeta(action.ID, action.TwitchChannel),
			GameID:    state.GameID(),
			GameType:  trivia.GameTypeNormal,
			UserID:    action.UserID,
			UserName:  action.UserName,
			Answer:    action.Answer,
			Reason:    err.Error(),
		})
		return
	}

	if !result.Correct {
		metrics.TriviaAnswersChecked.WithLabelValues(string(trivia.GameTypeNormal), "incorrect").Inc()
		wrongCount := state.RecordWrongAnswer()

		if err := m.scores.IncrementLosses(ctx, action.TwitchChannel, action.UserID); err != nil {
			m.logger.Error("failed to increment losses", "error", err.Error(), "userID", action.UserID)
		}
		if m.toxic != nil && wrongCount >= m.cfg.ToxicAnswerThreshold {
			if err := m.toxic.IncrementToxicCount(ctx, action.TwitchChannel, action.UserID); err != nil {
				m.logger.Error("failed to increment toxic count", "error", err.Error(), "userID", action.UserID)
			}
		}

		m.emit(&trivia.IncorrectAnswerEvent{
			EventMeta:        m.newEventMeta(action.ID, action.TwitchChannel),
			GameID:           state.GameID(),
			UserID:           action.UserID,
			UserName:         action.UserName,
			Answer:           action.Answer,
			WrongAnswerCount: wrongCount,
			Question:         state.Question(),
			Emote:            state.Emote(),
		})
		return
	}

	if !m.games.RemoveNormalGame(action.TwitchChannel, action.UserID) {
		// Timed out or was otherwise removed between lookup and now.
		m.emit(&trivia.GameNotReadyEvent{
			EventMeta: m.newEventMeta(action.ID, action.TwitchChannel),
			UserID:    action.UserID,
			UserName:  action.UserName,
			Answer:    action.Answer,
		})
		return
	}

	metrics.TriviaAnswersChecked.WithLabelValues(string(trivia.GameTypeNormal), "correct").Inc()
	metrics.TriviaGamesEnded.WithLabelValues(string(trivia.GameTypeNormal), "won").Inc()

	if err := m.scores.IncrementWins(ctx, action.TwitchChannel, action.UserID); err != nil {
		m.logger.Error("failed to increment wins", "error", err.Error(), "userID", action.UserID)
	}
	m.fireShinyHook(ctx, action.TwitchChannel, action.UserID)

	m.emit(&trivia.CorrectAnswerEvent{
		EventMeta:     m.newEventMeta(action.ID, action.TwitchChannel),
		GameID:        state.GameID(),
		UserID:        action.UserID,
		UserName:      action.UserName,
		Answer:        action.Answer,
		MatchedAnswer: result.MatchedAnswer,
		PointsWon:     state.BasePoints(),
		Question:      state.Question(),
		Emote:         state.Emote(),
	})
}

func (m *Machine) handleCheckSuperAnswer(ctx context.Context, action *trivia.CheckSuperAnswerAction) {
	state := m.games.GetSuperGame(action.TwitchChannel)
	if state == nil {
		m.emit(&trivia.SuperGameNotReadyEvent{
			EventMeta: m.newEventMeta(action.ID, action.TwitchChannel),
			UserID:    action.UserID,
			UserName:  action.UserName,
			Answer:    action.Answer,
		})
		return
	}

	result, err := answers.CheckAnswer(action.Answer, state.Question())
	if err != nil {
		metrics.TriviaAnswersChecked.WithLabelValues(string(trivia.GameTypeSuper), "invalid").Inc()
		m.emit(&trivia.InvalidAnswerInputEvent{
			EventMeta: m.newEventMeta(action.ID, action.TwitchChannel),
			GameID:    state.GameID(),
			GameType:  trivia.GameTypeSuper,
			UserID:    action.UserID,
			UserName:  action.UserName,
			Answer:    action.Answer,
			Reason:    err.Error(),
		})
		return
	}

	if !result.Correct {
		metrics.TriviaAnswersChecked.WithLabelValues(string(trivia.GameTypeSuper), "incorrect").Inc()
		m.emit(&trivia.IncorrectSuperAnswerEvent{
			EventMeta: m.newEventMeta(action.ID, action.TwitchChannel),
			GameID:    state.GameID(),
			UserID:    action.UserID,
			UserName:  action.UserName,
			Answer:    action.Answer,
			Emote:     state.Emote(),
		})
		return
	}

	if !m.games.RemoveSuperGame(action.TwitchChannel) {
		m.emit(&trivia.SuperGameNotReadyEvent{
			EventMeta: m.newEventMeta(action.ID, action.TwitchChannel),
			UserID:    action.UserID,
			UserName:  action.UserName,
			Answer:    action.Answer,
		})
		return
	}

	metrics.TriviaAnswersChecked.WithLabelValues(string(trivia.GameTypeSuper), "correct").Inc()
	metrics.TriviaGamesEnded.WithLabelValues(string(trivia.GameTypeSuper), "won").Inc()

	if err := m.scores.IncrementSuperWins(ctx, action.TwitchChannel, action.UserID); err != nil {
		m.logger.Error("failed to increment super wins", "error", err.Error(), "userID", action.UserID)
	}
	m.fireShinyHook(ctx, action.TwitchChannel, action.UserID)

	m.emit(&trivia.SuperGameCorrectAnswerEvent{
		EventMeta:     m.newEventMeta(action.ID, action.TwitchChannel),
		GameID:        state.GameID(),
		UserID:        action.UserID,
		UserName:      action.UserName,
		Answer:        action.Answer,
		MatchedAnswer: result.MatchedAnswer,
		PointsWon:     state.PointsForWinning(),
		Question:      state.Question(),
		Emote:         state.Emote(),
	})
}

func (m *Machine) handleClearSuperTriviaQueue(_ context.Context, action *trivia.ClearSuperTriviaQueueAction) {
	result := m.queue.ClearQueuedSuperGames(action.TwitchChannel)
	metrics.SuperTriviaQueueDepth.WithLabelValues(action.TwitchChannel).Set(0)

	m.logger.Info("cleared super trivia queue",
		"channel", action.TwitchChannel, "amountRemoved", result.AmountRemoved)

	m.emit(&trivia.ClearedSuperTriviaQueueEvent{
		EventMeta:     m.newEventMeta(action.ID, action.TwitchChannel),
		AmountRemoved: result.AmountRemoved,
		OldQueueSize:  result.OldQueueSize,
	})
}

// sweepTimeouts removes every game whose wall-clock lifetime is spent and
// reports it as out of time.
func (m *Machine) sweepTimeouts(ctx context.Context) {
	now := m.now()

	for _, state := range m.games.GetAll() {
		if !state.IsExpired(now) {
			continue
		}

		switch s := state.(type) {
		case *trivia.NormalGameState:
			if !m.games.RemoveNormalGame(s.Channel(), s.UserID()) {
				continue
			}
			metrics.TriviaGamesEnded.WithLabelValues(string(trivia.GameTypeNormal), "outOfTime").Inc()

			if err := m.scores.IncrementLosses(ctx, s.Channel(), s.UserID()); err != nil {
				m.logger.Error("failed to increment losses on timeout", "error", err.Error(), "userID", s.UserID())
			}

			m.emit(&trivia.GameOutOfTimeEvent{
				EventMeta: m.newEventMeta(s.ActionID(), s.Channel()),
				GameID:    s.GameID(),
				UserID:    s.UserID(),
				UserName:  s.UserName(),
				Question:  s.Question(),
				Emote:     s.Emote(),
			})

		case *trivia.SuperGameState:
			if !m.games.RemoveSuperGame(s.Channel()) {
				continue
			}
			metrics.TriviaGamesEnded.WithLabelValues(string(trivia.GameTypeSuper), "outOfTime").Inc()

			m.emit(&trivia.SuperGameOutOfTimeEvent{
				EventMeta: m.newEventMeta(s.ActionID(), s.Channel()),
				GameID:    s.GameID(),
				Question:  s.Question(),
				Emote:     s.Emote(),
			})
		}
	}
}

// sweepQueuedSuperGames activates the head of every channel's queue, except
// channels that still have a super game running or are cooling down.
func (m *Machine) sweepQueuedSuperGames(ctx context.Context) {
	skip := m.games.SuperGameChannels()
	for channel := range m.cooldown.GetChannelsInCooldown() {
		skip[channel] = struct{}{}
	}

	for _, action := range m.queue.PopQueuedSuperGames(skip) {
		metrics.SuperTriviaQueueDepth.
			WithLabelValues(action.TwitchChannel).
			Set(float64(m.queue.GetQueuedSuperGamesSize(action.TwitchChannel)))

		m.activateSuperGame(ctx, action)
	}
}

func (m *Machine) fireShinyHook(ctx context.Context, channel, userID string) {
	if m.shiny == nil {
		return
	}
	if err := m.shiny.IncrementShinyCount(ctx, channel, userID); err != nil {
		m.logger.Error("failed to increment shiny count", "error", err.Error(), "userID", userID)
	}
}
