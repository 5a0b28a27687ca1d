package trivia

// EventType discriminates the event variants emitted by the game machine.
type EventType string

const (
	EventTypeNewGame                        EventType = "newGame"
	EventTypeNewSuperGame                   EventType = "newSuperGame"
	EventTypeNewQueuedSuperGame             EventType = "newQueuedSuperGame"
	EventTypeCorrectAnswer                  EventType = "correctAnswer"
	EventTypeIncorrectAnswer                EventType = "incorrectAnswer"
	EventTypeSuperGameCorrectAnswer         EventType = "superGameCorrectAnswer"
	EventTypeIncorrectSuperAnswer           EventType = "incorrectSuperAnswer"
	EventTypeInvalidAnswerInput             EventType = "invalidAnswerInput"
	EventTypeGameAlreadyInProgress          EventType = "gameAlreadyInProgress"
	EventTypeSuperGameAlreadyInProgress     EventType = "superGameAlreadyInProgress"
	EventTypeGameNotReady                   EventType = "gameNotReady"
	EventTypeSuperGameNotReady              EventType = "superGameNotReady"
	EventTypeGameOutOfTime                  EventType = "gameOutOfTime"
	EventTypeSuperGameOutOfTime             EventType = "superGameOutOfTime"
	EventTypeFailedToFetchQuestion          EventType = "failedToFetchQuestion"
	EventTypeSuperGameFailedToFetchQuestion EventType = "superGameFailedToFetchQuestion"
	EventTypeClearedSuperTriviaQueue        EventType = "clearedSuperTriviaQueue"
	EventTypeWrongUser                      EventType = "wrongUser"
)

// Event is the sealed union of every game-state change the machine can
// report. Events are the machine's only output: routine game-flow outcomes
// (already in progress, wrong user, out of time, failed fetch) are events,
// never errors.
type Event interface {
	EventType() EventType
	EventID() string
	ActionID() string
	Channel() string
}

// EventMeta carries the fields every event shares: its own id, the id of
// the action that triggered it, and the channel it belongs to. For events
// produced by the timeout sweep, TriggeredBy is the action id of the game
// that timed out.
type EventMeta struct {
	ID            string
	TriggeredBy   string
	TwitchChannel string
}

func (m EventMeta) EventID() string  { return m.ID }
func (m EventMeta) ActionID() string { return m.TriggeredBy }
func (m EventMeta) Channel() string  { return m.TwitchChannel }

// NewGameEvent reports a freshly started normal game.
type NewGameEvent struct {
	EventMeta
	GameID        string
	UserID        string
	UserName      string
	Question      *Question
	BasePoints    int
	SecondsToLive int
	Emote         string
}

func (e *NewGameEvent) EventType() EventType { return EventTypeNewGame }

// NewSuperGameEvent reports a freshly started super game.
type NewSuperGameEvent struct {
	EventMeta
	GameID           string
	Question         *Question
	BasePoints       int
	PointsMultiplier int
	SecondsToLive    int
	Emote            string
}

func (e *NewSuperGameEvent) EventType() EventType { return EventTypeNewSuperGame }

// NewQueuedSuperGameEvent reports super games added to a channel's queue.
type NewQueuedSuperGameEvent struct {
	EventMeta
	NumberOfGames int
	AmountAdded   int
	OldQueueSize  int
	NewQueueSize  int
}

func (e *NewQueuedSuperGameEvent) EventType() EventType { return EventTypeNewQueuedSuperGame }

// CorrectAnswerEvent reports a normal game won.
type CorrectAnswerEvent struct {
	EventMeta
	GameID        string
	UserID        string
	UserName      string
	Answer        string
	MatchedAnswer string
	PointsWon     int
	Question      *Question
	Emote         string
}

func (e *CorrectAnswerEvent) EventType() EventType { return EventTypeCorrectAnswer }

// IncorrectAnswerEvent reports a wrong answer against a normal game. The
// game stays live until it is answered correctly or times out.
type IncorrectAnswerEvent struct {
	EventMeta
	GameID           string
	UserID           string
	UserName         string
	Answer           string
	WrongAnswerCount int
	Question         *Question
	Emote            string
}

func (e *IncorrectAnswerEvent) EventType() EventType { return EventTypeIncorrectAnswer }

// SuperGameCorrectAnswerEvent reports a super game won by some chatter.
type SuperGameCorrectAnswerEvent struct {
	EventMeta
	GameID        string
	UserID        string
	UserName      string
	Answer        string
	MatchedAnswer string
	PointsWon     int
	Question      *Question
	Emote         string
}

func (e *SuperGameCorrectAnswerEvent) EventType() EventType { return EventTypeSuperGameCorrectAnswer }

// IncorrectSuperAnswerEvent reports a wrong answer against a super game.
type IncorrectSuperAnswerEvent struct {
	EventMeta
	GameID   string
	UserID   string
	UserName string
	Answer   string
	Emote    string
}

func (e *IncorrectSuperAnswerEvent) EventType() EventType { return EventTypeIncorrectSuperAnswer }

// InvalidAnswerInputEvent reports an answer that could not be compiled for
// the question's type (empty text, unparseable bool or ordinal).
type InvalidAnswerInputEvent struct {
	EventMeta
	GameID   string
	GameType GameType
	UserID   string
	UserName string
	Answer   string
	Reason   string
}

func (e *InvalidAnswerInputEvent) EventType() EventType { return EventTypeInvalidAnswerInput }

// GameAlreadyInProgressEvent reports a StartNewGame rejected because the
// user already has a live game in the channel.
type GameAlreadyInProgressEvent struct {
	EventMeta
	GameID   string
	UserID   string
	UserName string
}

func (e *GameAlreadyInProgressEvent) EventType() EventType { return EventTypeGameAlreadyInProgress }

// SuperGameAlreadyInProgressEvent reports a super game activation that lost
// the race against another insert for the same channel.
type SuperGameAlreadyInProgressEvent struct {
	EventMeta
	GameID string
}

func (e *SuperGameAlreadyInProgressEvent) EventType() EventType {
	return EventTypeSuperGameAlreadyInProgress
}

// GameNotReadyEvent reports an answer submitted with no live normal game
// for that user.
type GameNotReadyEvent struct {
	EventMeta
	UserID   string
	UserName string
	Answer   string
}

func (e *GameNotReadyEvent) EventType() EventType { return EventTypeGameNotReady }

// SuperGameNotReadyEvent reports an answer submitted with no live super
// game in the channel.
type SuperGameNotReadyEvent struct {
	EventMeta
	UserID   string
	UserName string
	Answer   string
}

func (e *SuperGameNotReadyEvent) EventType() EventType { return EventTypeSuperGameNotReady }

// GameOutOfTimeEvent reports a normal game removed by the timeout sweep.
type GameOutOfTimeEvent struct {
	EventMeta
	GameID   string
	UserID   string
	UserName string
	Question *Question
	Emote    string
}

func (e *GameOutOfTimeEvent) EventType() EventType { return EventTypeGameOutOfTime }

// SuperGameOutOfTimeEvent reports a super game removed by the timeout sweep.
type SuperGameOutOfTimeEvent struct {
	EventMeta
	GameID   string
	Question *Question
	Emote    string
}

func (e *SuperGameOutOfTimeEvent) EventType() EventType { return EventTypeSuperGameOutOfTime }

// FailedToFetchQuestionEvent reports that no question could be obtained for
// a normal game.
type FailedToFetchQuestionEvent struct {
	EventMeta
	UserID   string
	UserName string
}

func (e *FailedToFetchQuestionEvent) EventType() EventType { return EventTypeFailedToFetchQuestion }

// SuperGameFailedToFetchQuestionEvent reports that no question could be
// obtained for a super game.
type SuperGameFailedToFetchQuestionEvent struct {
	EventMeta
}

func (e *SuperGameFailedToFetchQuestionEvent) EventType() EventType {
	return EventTypeSuperGameFailedToFetchQuestion
}

// ClearedSuperTriviaQueueEvent reports the channel's pending super game
// queue being emptied.
type ClearedSuperTriviaQueueEvent struct {
	EventMeta
	AmountRemoved int
	OldQueueSize  int
}

func (e *ClearedSuperTriviaQueueEvent) EventType() EventType { return EventTypeClearedSuperTriviaQueue }

// WrongUserEvent reports an answer submitted by a user who has no game of
// their own while someone else's normal game is live in the channel.
type WrongUserEvent struct {
	EventMeta
	UserID   string
	UserName string
}

func (e *WrongUserEvent) EventType() EventType { return EventTypeWrongUser }
