package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// TriviaScore is one user's accumulated trivia record in one channel.
type TriviaScore struct {
	ID         uuid.UUID `db:"id"`
	Channel    string    `db:"channel"`
	UserID     string    `db:"user_id"`
	Wins       int       `db:"wins"`
	Losses     int       `db:"losses"`
	SuperWins  int       `db:"super_wins"`
	ToxicCount int       `db:"toxic_count"`
	ShinyCount int       `db:"shiny_count"`
	UpdatedAt  time.Time `db:"updated_at"`
}

// Column names are fixed here; never interpolate caller input into them.
const (
	scoreColumnWins       = "wins"
	scoreColumnLosses     = "losses"
	scoreColumnSuperWins  = "super_wins"
	scoreColumnToxicCount = "toxic_count"
	scoreColumnShinyCount = "shiny_count"
)

func (p *Postgres) incrementScoreColumn(ctx context.Context, column, channel, userID string) error {
	p.logger.Debug("incrementing trivia score", "column", column, "channel", channel, "userID", userID)

	query := fmt.Sprintf(`
		INSERT INTO trivia_scores (id, channel, user_id, %[1]s, updated_at)
		VALUES ($1, $2, $3, 1, now())
		ON CONFLICT (channel, user_id)
		DO UPDATE SET %[1]s = trivia_scores.%[1]s + 1, updated_at = now()
	`, column)

	_, err := p.connections.ExecContext(ctx, query, uuid.New(), channel, userID)
	if err != nil {
		p.logger.Error("error incrementing trivia score", "error", err.Error(), "column", column, "userID", userID)
		return fmt.Errorf("error incrementing %s: %w", column, err)
	}
	return nil
}

// IncrementWins bumps the user's normal game win count.
func (p *Postgres) IncrementWins(ctx context.Context, channel, userID string) error {
	return p.incrementScoreColumn(ctx, scoreColumnWins, channel, userID)
}

// IncrementLosses bumps the user's loss count.
func (p *Postgres) IncrementLosses(ctx context.Context, channel, userID string) error {
	return p.incrementScoreColumn(ctx, scoreColumnLosses, channel, userID)
}

// IncrementSuperWins bumps the user's super game win count.
func (p *Postgres) IncrementSuperWins(ctx context.Context, channel, userID string) error {
	return p.incrementScoreColumn(ctx, scoreColumnSuperWins, channel, userID)
}

// IncrementToxicCount bumps the user's toxic trivia counter.
func (p *Postgres) IncrementToxicCount(ctx context.Context, channel, userID string) error {
	return p.incrementScoreColumn(ctx, scoreColumnToxicCount, channel, userID)
}

// IncrementShinyCount bumps the user's shiny trivia counter.
func (p *Postgres) IncrementShinyCount(ctx context.Context, channel, userID string) error {
	return p.incrementScoreColumn(ctx, scoreColumnShinyCount, channel, userID)
}

// GetScore returns the user's record in a channel. A user with no history
// gets a zeroed record, not an error.
func (p *Postgres) GetScore(ctx context.Context, channel, userID string) (TriviaScore, error) {
	query := `
		SELECT id, channel, user_id, wins, losses, super_wins, toxic_count, shiny_count, updated_at
		FROM trivia_scores
		WHERE channel = $1 AND user_id = $2
	`

	var score TriviaScore
	err := p.connections.GetContext(ctx, &score, query, channel, userID)
	if errors.Is(err, sql.ErrNoRows) {
		return TriviaScore{Channel: channel, UserID: userID}, nil
	}
	if err != nil {
		p.logger.Error("error getting trivia score", "error", err.Error(), "channel", channel, "userID", userID)
		return TriviaScore{}, fmt.Errorf("error getting trivia score: %w", err)
	}
	return score, nil
}
