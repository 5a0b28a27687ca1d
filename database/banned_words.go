package database

import (
	"context"
	"fmt"

	"github.com/charlesmadere/CynanBot-sub014/trivia/verify"
)

type bannedWordRow struct {
	Word     string `db:"word"`
	IsPhrase bool   `db:"is_phrase"`
}

// GetBannedWords loads the banned word list for the content scanner.
func (p *Postgres) GetBannedWords(ctx context.Context) ([]verify.BannedWord, error) {
	p.logger.Debug("loading banned words")

	query := "SELECT word, is_phrase FROM banned_words"

	var rows []bannedWordRow
	if err := p.connections.SelectContext(ctx, &rows, query); err != nil {
		p.logger.Error("error loading banned words", "error", err.Error())
		return nil, fmt.Errorf("error loading banned words: %w", err)
	}

	words := make([]verify.BannedWord, 0, len(rows))
	for _, row := range rows {
		words = append(words, verify.BannedWord{
			Word:     row.Word,
			IsPhrase: row.IsPhrase,
		})
	}

	p.logger.Debug("banned words loaded", "count", len(words))
	return words, nil
}
