// Package machine implements the trivia game state machine. Actions go in
// through a bounded queue, one loop goroutine drives every transition and
// the two background sweeps, and events come out through the event broker.
package machine

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/charlesmadere/CynanBot-sub014/logging"
	"github.com/charlesmadere/CynanBot-sub014/metrics"
	"github.com/charlesmadere/CynanBot-sub014/trivia"
	"github.com/charlesmadere/CynanBot-sub014/trivia/store"
	"github.com/charlesmadere/CynanBot-sub014/trivia/verify"
)

// ErrActionQueueFull is returned by SubmitAction when the machine cannot
// keep up with submitted actions.
var ErrActionQueueFull = errors.New("trivia action queue is full")

// QuestionSource provides trivia questions. Implemented elsewhere; the
// machine only ever sees this interface.
type QuestionSource interface {
	FetchTriviaQuestion(ctx context.Context, opts trivia.FetchOptions) (*trivia.Question, error)
}

// ScoreRepository records game outcomes per channel and user.
type ScoreRepository interface {
	IncrementWins(ctx context.Context, channel, userID string) error
	IncrementLosses(ctx context.Context, channel, userID string) error
	IncrementSuperWins(ctx context.Context, channel, userID string) error
}

// ToxicTracker is the optional punishment bookkeeping hook, fired after
// repeated wrong answers on a normal game.
type ToxicTracker interface {
	IncrementToxicCount(ctx context.Context, channel, userID string) error
}

// ShinyTracker is the optional cosmetic bookkeeping hook, fired
// opportunistically on correct answers.
type ShinyTracker interface {
	IncrementShinyCount(ctx context.Context, channel, userID string) error
}

// EventPublisher receives every event the machine emits. Publishing is
// fire-and-forget; the machine never blocks on a consumer.
type EventPublisher interface {
	Publish(event trivia.Event) bool
}

// Config tunes the machine. Zero values fall back to the defaults below.
type Config struct {
	ActionQueueSize      int
	TimeoutSweepInterval time.Duration
	QueuePopInterval     time.Duration
	SuperGameCooldown    time.Duration
	FetchAttempts        int
	ToxicAnswerThreshold int
	DefaultBasePoints    int
	DefaultSecondsToLive int
	Emotes               []string
}

func (c Config) withDefaults() Config {
	if c.ActionQueueSize <= 0 {
		c.ActionQueueSize = 128
	}
	if c.TimeoutSweepInterval <= 0 {
		c.TimeoutSweepInterval = time.Second
	}
	if c.QueuePopInterval <= 0 {
		c.QueuePopInterval = 5 * time.Second
	}
	if c.SuperGameCooldown <= 0 {
		c.SuperGameCooldown = 2 * time.Minute
	}
	if c.FetchAttempts <= 0 {
		c.FetchAttempts = 3
	}
	if c.ToxicAnswerThreshold <= 0 {
		c.ToxicAnswerThreshold = 3
	}
	if c.DefaultBasePoints <= 0 {
		c.DefaultBasePoints = 25
	}
	if c.DefaultSecondsToLive <= 0 {
		c.DefaultSecondsToLive = 60
	}
	if len(c.Emotes) == 0 {
		c.Emotes = []string{"Kappa", "PogChamp", "SeemsGood", "CoolCat", "NotLikeThis", "OhMyDog"}
	}
	return c
}

// Machine owns the game store, the super game queue, and the cooldown
// tracker. Nothing outside the machine mutates them.
type Machine struct {
	cfg      Config
	games    *store.GameStore
	queue    *store.QueueStore
	cooldown *store.CooldownTracker
	ids      *trivia.IdGenerator
	source   QuestionSource
	verifier *verify.Verifier
	scores   ScoreRepository
	toxic    ToxicTracker
	shiny    ShinyTracker
	events   EventPublisher
	logger   *logging.Logger

	actionCh chan trivia.Action
	now      func() time.Time

	// emoteIdx is touched only by the loop goroutine.
	emoteIdx map[string]int
}

// NewMachine wires the state machine with its collaborators. The toxic and
// shiny hooks are optional and attached via SetToxicTracker/SetShinyTracker
// before Start.
func NewMachine(cfg Config, source QuestionSource, verifier *verify.Verifier, scores ScoreRepository, events EventPublisher, ids *trivia.IdGenerator, logger *logging.Logger) *Machine {
	if logger == nil {
		logger = logging.Default()
	}
	if ids == nil {
		ids = trivia.NewIdGenerator()
	}
	cfg = cfg.withDefaults()

	return &Machine{
		cfg:      cfg,
		games:    store.NewGameStore(),
		queue:    store.NewQueueStore(),
		cooldown: store.NewCooldownTracker(cfg.SuperGameCooldown),
		ids:      ids,
		source:   source,
		verifier: verifier,
		scores:   scores,
		events:   events,
		logger:   logger,
		actionCh: make(chan trivia.Action, cfg.ActionQueueSize),
		now:      time.Now,
		emoteIdx: make(map[string]int),
	}
}

// SetToxicTracker attaches the toxic trivia punishment hook.
func (m *Machine) SetToxicTracker(tracker ToxicTracker) { m.toxic = tracker }

// SetShinyTracker attaches the shiny trivia hook.
func (m *Machine) SetShinyTracker(tracker ShinyTracker) { m.shiny = tracker }

// SetClock replaces the machine's clock. Only for tests, and only before
// Start: it rebuilds the cooldown tracker, so any last-start times recorded
// by games that already ran are discarded.
func (m *Machine) SetClock(now func() time.Time) {
	m.now = now
	m.cooldown = store.NewCooldownTrackerWithClock(m.cfg.SuperGameCooldown, now)
}

// SubmitAction validates an action and hands it to the processing loop.
// Validation failures are hard errors returned synchronously, before any
// state is touched; everything that happens afterwards is reported through
// events. A full queue is also a hard error so the caller can tell the
// action was never accepted.
func (m *Machine) SubmitAction(action trivia.Action) error {
	if err := validateAction(action); err != nil {
		metrics.TriviaActionsRejected.Add(1)
		return err
	}

	select {
	case m.actionCh <- action:
		metrics.TriviaActionsSubmitted.Add(1)
		return nil
	default:
		metrics.TriviaActionsRejected.Add(1)
		return ErrActionQueueFull
	}
}

// Start launches the processing loop: actions as they arrive, plus the
// timeout sweep and the queue-pop sweep on their tickers. Everything runs
// on one goroutine, so transitions are strictly ordered.
func (m *Machine) Start(ctx context.Context, wg *sync.WaitGroup) {
	wg.Add(1)
	go func() {
		defer wg.Done()

		timeoutTicker := time.NewTicker(m.cfg.TimeoutSweepInterval)
		defer timeoutTicker.Stop()
		queueTicker := time.NewTicker(m.cfg.QueuePopInterval)
		defer queueTicker.Stop()

		m.logger.Info("trivia game machine started",
			"timeoutSweepInterval", m.cfg.TimeoutSweepInterval.String(),
			"queuePopInterval", m.cfg.QueuePopInterval.String())

		for {
			select {
			case <-ctx.Done():
				m.logger.Info("trivia game machine shutting down")
				return
			case action := <-m.actionCh:
				m.handleAction(ctx, action)
			case <-timeoutTicker.C:
				m.sweepTimeouts(ctx)
			case <-queueTicker.C:
				m.sweepQueuedSuperGames(ctx)
			}
		}
	}()
}

func (m *Machine) handleAction(ctx context.Context, action trivia.Action) {
	started := time.Now()
	defer func() {
		metrics.TriviaActionDuration.
			WithLabelValues(string(action.ActionType())).
			Observe(time.Since(started).Seconds())
	}()

	switch a := action.(type) {
	case *trivia.StartNewGameAction:
		m.handleStartNewGame(ctx, a)
	case *trivia.StartNewSuperGameAction:
		m.handleStartNewSuperGame(ctx, a)
	case *trivia.CheckAnswerAction:
		m.handleCheckAnswer(ctx, a)
	case *trivia.CheckSuperAnswerAction:
		m.handleCheckSuperAnswer(ctx, a)
	case *trivia.ClearSuperTriviaQueueAction:
		m.handleClearSuperTriviaQueue(ctx, a)
	default:
		// validateAction only lets known variants through.
		panic(fmt.Sprintf("unhandled trivia action type %T", action))
	}
}

func validateAction(action trivia.Action) error {
	if action == nil {
		return fmt.Errorf("%w: nil action", trivia.ErrInvalidAction)
	}
	if action.ActionID() == "" {
		return fmt.Errorf("%w: missing action id", trivia.ErrInvalidAction)
	}
	if action.Channel() == "" {
		return fmt.Errorf("%w: missing channel", trivia.ErrInvalidAction)
	}

	switch a := action.(type) {
	case *trivia.StartNewGameAction:
		if a.UserID == "" {
			return fmt.Errorf("%w: missing user id", trivia.ErrInvalidAction)
		}
	case *trivia.StartNewSuperGameAction:
		if a.NumberOfGames < 1 {
			return fmt.Errorf("%w: numberOfGames must be at least 1", trivia.ErrInvalidAction)
		}
	case *trivia.CheckAnswerAction:
		if a.UserID == "" {
			return fmt.Errorf("%w: missing user id", trivia.ErrInvalidAction)
		}
	case *trivia.CheckSuperAnswerAction:
		if a.UserID == "" {
			return fmt.Errorf("%w: missing user id", trivia.ErrInvalidAction)
		}
	case *trivia.ClearSuperTriviaQueueAction:
		// channel is all it carries
	default:
		return fmt.Errorf("%w: unknown action type %T", trivia.ErrInvalidAction, action)
	}
	return nil
}

func (m *Machine) emit(event trivia.Event) {
	metrics.TriviaEventsEmitted.WithLabelValues(string(event.EventType())).Inc()
	m.events.Publish(event)
}

func (m *Machine) newEventMeta(actionID, channel string) trivia.EventMeta {
	return trivia.EventMeta{
		ID:            m.ids.GenerateEventID(),
		TriggeredBy:   actionID,
		TwitchChannel: channel,
	}
}

// nextEmote rotates through the configured emote tokens per channel so that
// concurrently displayed questions in one channel carry distinct markers.
func (m *Machine) nextEmote(channel string) string {
	idx := m.emoteIdx[channel]
	m.emoteIdx[channel] = (idx + 1) % len(m.cfg.Emotes)
	return m.cfg.Emotes[idx]
}

// GameStoreSize reports how many games are currently live. Exposed for
// observability and tests.
func (m *Machine) GameStoreSize() int {
	return m.games.Size()
}

// QueuedSuperGamesSize reports the channel's pending super game count.
func (m *Machine) QueuedSuperGamesSize(channel string) int {
	return m.queue.GetQueuedSuperGamesSize(channel)
}
