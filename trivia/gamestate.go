package trivia

import (
	"fmt"
	"time"
)

// GameType discriminates normal (single user) from super (whole channel) games.
type GameType string

const (
	GameTypeNormal GameType = "normal"
	GameTypeSuper  GameType = "super"
)

// GameState is the sealed union of live game variants. States are created
// and mutated only by the game machine; everything else gets read access.
type GameState interface {
	GameType() GameType
	GameID() string
	ActionID() string
	Channel() string
	Emote() string
	Question() *Question
	BasePoints() int
	SecondsToLive() int
	StartedAt() time.Time
	IsExpired(now time.Time) bool
}

type baseGameState struct {
	gameID        string
	actionID      string
	channel       string
	emote         string
	question      *Question
	basePoints    int
	secondsToLive int
	startedAt     time.Time
}

func (s *baseGameState) GameID() string       { return s.gameID }
func (s *baseGameState) ActionID() string     { return s.actionID }
func (s *baseGameState) Channel() string      { return s.channel }
func (s *baseGameState) Emote() string        { return s.emote }
func (s *baseGameState) Question() *Question  { return s.question }
func (s *baseGameState) BasePoints() int      { return s.basePoints }
func (s *baseGameState) SecondsToLive() int   { return s.secondsToLive }
func (s *baseGameState) StartedAt() time.Time { return s.startedAt }

func (s *baseGameState) IsExpired(now time.Time) bool {
	return now.Sub(s.startedAt) >= time.Duration(s.secondsToLive)*time.Second
}

func validateGameStateBase(gameID, actionID, channel string, question *Question, secondsToLive int) error {
	switch {
	case gameID == "":
		return fmt.Errorf("%w: missing game id", ErrInvalidAction)
	case actionID == "":
		return fmt.Errorf("%w: missing action id", ErrInvalidAction)
	case channel == "":
		return fmt.Errorf("%w: missing channel", ErrInvalidAction)
	case question == nil:
		return fmt.Errorf("%w: missing question", ErrInvalidAction)
	case secondsToLive <= 0:
		return fmt.Errorf("%w: secondsToLive must be positive", ErrInvalidAction)
	}
	return nil
}

// NormalGameState is a live trivia round for one user in one channel.
type NormalGameState struct {
	baseGameState
	userID           string
	userName         string
	wrongAnswerCount int
}

// NewNormalGameState validates and builds a normal game state.
func NewNormalGameState(gameID, actionID, channel, emote string, question *Question, userID, userName string, basePoints, secondsToLive int, startedAt time.Time) (*NormalGameState, error) {
	if err := validateGameStateBase(gameID, actionID, channel, question, secondsToLive); err != nil {
		return nil, err
	}
	if userID == "" {
		return nil, fmt.Errorf("%w: missing user id", ErrInvalidAction)
	}

	return &NormalGameState{
		baseGameState: baseGameState{
			gameID:        gameID,
			actionID:      actionID,
			channel:       channel,
			emote:         emote,
			question:      question,
			basePoints:    basePoints,
			secondsToLive: secondsToLive,
			startedAt:     startedAt,
		},
		userID:   userID,
		userName: userName,
	}, nil
}

func (s *NormalGameState) GameType() GameType { return GameTypeNormal }
func (s *NormalGameState) UserID() string     { return s.userID }
func (s *NormalGameState) UserName() string   { return s.userName }

// WrongAnswerCount reports how many incorrect answers this game has eaten.
func (s *NormalGameState) WrongAnswerCount() int { return s.wrongAnswerCount }

// RecordWrongAnswer bumps the wrong answer counter and returns the new
// value. Only the game machine calls this.
func (s *NormalGameState) RecordWrongAnswer() int {
	s.wrongAnswerCount++
	return s.wrongAnswerCount
}

// SuperGameState is a live trivia round open to a channel's whole audience.
type SuperGameState struct {
	baseGameState
	pointsMultiplier int
}

// NewSuperGameState validates and builds a super game state.
func NewSuperGameState(gameID, actionID, channel, emote string, question *Question, basePoints, pointsMultiplier, secondsToLive int, startedAt time.Time) (*SuperGameState, error) {
	if err := validateGameStateBase(gameID, actionID, channel, question, secondsToLive); err != nil {
		return nil, err
	}
	if pointsMultiplier < 1 {
		pointsMultiplier = 1
	}

	return &SuperGameState{
		baseGameState: baseGameState{
			gameID:        gameID,
			actionID:      actionID,
			channel:       channel,
			emote:         emote,
			question:      question,
			basePoints:    basePoints,
			secondsToLive: secondsToLive,
			startedAt:     startedAt,
		},
		pointsMultiplier: pointsMultiplier,
	}, nil
}

func (s *SuperGameState) GameType() GameType    { return GameTypeSuper }
func (s *SuperGameState) PointsMultiplier() int { return s.pointsMultiplier }

// PointsForWinning is the base points scaled by the super game multiplier.
func (s *SuperGameState) PointsForWinning() int {
	return s.basePoints * s.pointsMultiplier
}
