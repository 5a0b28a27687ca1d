package trivia

// ActionType discriminates the action variants accepted by the game machine.
type ActionType string

const (
	ActionTypeStartNewGame          ActionType = "startNewGame"
	ActionTypeStartNewSuperGame     ActionType = "startNewSuperGame"
	ActionTypeCheckAnswer           ActionType = "checkAnswer"
	ActionTypeCheckSuperAnswer      ActionType = "checkSuperAnswer"
	ActionTypeClearSuperTriviaQueue ActionType = "clearSuperTriviaQueue"
)

// Action is the sealed union of everything that can be submitted to the
// game machine. Each variant carries the generated action id and the
// channel it targets.
type Action interface {
	ActionType() ActionType
	ActionID() string
	Channel() string
}

// StartNewGameAction requests a normal game for a single user in a channel.
type StartNewGameAction struct {
	ID            string
	TwitchChannel string
	UserID        string
	UserName      string
	BasePoints    int
	SecondsToLive int
	Fetch         FetchOptions
}

func (a *StartNewGameAction) ActionType() ActionType { return ActionTypeStartNewGame }
func (a *StartNewGameAction) ActionID() string       { return a.ID }
func (a *StartNewGameAction) Channel() string        { return a.TwitchChannel }

// StartNewSuperGameAction requests one or more super games open to the
// whole channel. NumberOfGames beyond the first are queued.
type StartNewSuperGameAction struct {
	ID               string
	TwitchChannel    string
	NumberOfGames    int
	BasePoints       int
	PointsMultiplier int
	SecondsToLive    int
	Fetch            FetchOptions
}

func (a *StartNewSuperGameAction) ActionType() ActionType { return ActionTypeStartNewSuperGame }
func (a *StartNewSuperGameAction) ActionID() string       { return a.ID }
func (a *StartNewSuperGameAction) Channel() string        { return a.TwitchChannel }

// CheckAnswerAction submits an answer against the user's own normal game.
type CheckAnswerAction struct {
	ID            string
	TwitchChannel string
	UserID        string
	UserName      string
	Answer        string
}

func (a *CheckAnswerAction) ActionType() ActionType { return ActionTypeCheckAnswer }
func (a *CheckAnswerAction) ActionID() string       { return a.ID }
func (a *CheckAnswerAction) Channel() string        { return a.TwitchChannel }

// CheckSuperAnswerAction submits an answer against the channel's super game.
type CheckSuperAnswerAction struct {
	ID            string
	TwitchChannel string
	UserID        string
	UserName      string
	Answer        string
}

func (a *CheckSuperAnswerAction) ActionType() ActionType { return ActionTypeCheckSuperAnswer }
func (a *CheckSuperAnswerAction) ActionID() string       { return a.ID }
func (a *CheckSuperAnswerAction) Channel() string        { return a.TwitchChannel }

// ClearSuperTriviaQueueAction empties the channel's pending super game queue.
// It never touches a super game that is already running.
type ClearSuperTriviaQueueAction struct {
	ID            string
	TwitchChannel string
}

func (a *ClearSuperTriviaQueueAction) ActionType() ActionType { return ActionTypeClearSuperTriviaQueue }
func (a *ClearSuperTriviaQueueAction) ActionID() string       { return a.ID }
func (a *ClearSuperTriviaQueueAction) Channel() string        { return a.TwitchChannel }
