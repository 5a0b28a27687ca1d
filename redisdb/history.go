// Package redisdb keeps the per-channel trivia question history in Redis.
// Only the most recently shown question matters for the anti-repeat check,
// so a small hash per channel with a TTL is all the state there is.
package redisdb

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/charlesmadere/CynanBot-sub014/logging"
	"github.com/charlesmadere/CynanBot-sub014/trivia"
	"github.com/redis/go-redis/v9"
)

const (
	historyFieldEmote    = "emote"
	historyFieldTriviaID = "trivia_id"
)

// HistoryRepository tracks the most recently shown question per channel.
type HistoryRepository struct {
	client *redis.Client
	ttl    time.Duration
	logger *logging.Logger
}

// NewHistoryRepository builds a history repository over the given client.
// Entries expire after ttl so a stale "most recent" cannot block a question
// forever on quiet channels.
func NewHistoryRepository(client *redis.Client, ttl time.Duration, logger *logging.Logger) *HistoryRepository {
	if logger == nil {
		logger = logging.Default()
	}
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &HistoryRepository{
		client: client,
		ttl:    ttl,
		logger: logger,
	}
}

// Connect dials Redis using the REDIS_URL environment variable and verifies
// the connection.
func Connect(ctx context.Context, logger *logging.Logger) (*redis.Client, error) {
	if logger == nil {
		logger = logging.Default()
	}

	logger.Info("connecting to redis")
	opts, err := redis.ParseURL(os.Getenv("REDIS_URL"))
	if err != nil {
		logger.Error("error parsing redis url", "error", err.Error())
		return nil, fmt.Errorf("error parsing redis url: %w", err)
	}

	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		logger.Error("error pinging redis", "error", err.Error())
		return nil, fmt.Errorf("error pinging redis: %w", err)
	}

	logger.Info("redis connection established successfully")
	return client, nil
}

func (r *HistoryRepository) key(channel string) string {
	return "trivia:history:" + channel
}

// GetMostRecentQuestionRef returns the channel's most recently shown
// question reference, or nil if none is recorded.
func (r *HistoryRepository) GetMostRecentQuestionRef(ctx context.Context, channel string) (*trivia.QuestionRef, error) {
	fields, err := r.client.HGetAll(ctx, r.key(channel)).Result()
	if err != nil {
		return nil, fmt.Errorf("error reading question history: %w", err)
	}
	if len(fields) == 0 {
		return nil, nil
	}

	return &trivia.QuestionRef{
		Emote:    fields[historyFieldEmote],
		TriviaID: fields[historyFieldTriviaID],
	}, nil
}

// Verify rejects the question when it matches the most recent question
// shown in the channel, and otherwise records it as the new most recent.
func (r *HistoryRepository) Verify(ctx context.Context, question *trivia.Question, emote, channel string) (trivia.ContentCode, error) {
	ref, err := r.GetMostRecentQuestionRef(ctx, channel)
	if err != nil {
		return "", err
	}

	if ref != nil && ref.TriviaID == question.TriviaID {
		r.logger.Debug("question is a repeat of the channel's most recent",
			"channel", channel, "triviaID", question.TriviaID)
		return trivia.ContentCodeRejectedDuplicate, nil
	}

	key := r.key(channel)
	pipe := r.client.TxPipeline()
	pipe.HSet(ctx, key, historyFieldEmote, emote, historyFieldTriviaID, question.TriviaID)
	pipe.Expire(ctx, key, r.ttl)
	if _, err := pipe.Exec(ctx); err != nil {
		return "", fmt.Errorf("error recording question history: %w", err)
	}

	return trivia.ContentCodeOK, nil
}
