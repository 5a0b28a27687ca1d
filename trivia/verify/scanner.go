package verify

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"sync"

	"github.com/charlesmadere/CynanBot-sub014/logging"
	"github.com/charlesmadere/CynanBot-sub014/trivia"
)

// BannedWord is one entry from the banned word list. Plain words match on
// token boundaries; phrases match as substrings.
type BannedWord struct {
	Word     string
	IsPhrase bool
}

// WordListSource loads the banned word list from wherever it is persisted.
type WordListSource interface {
	GetBannedWords(ctx context.Context) ([]BannedWord, error)
}

var scanTokenRe = regexp.MustCompile(`[^a-z0-9]+`)

// BannedWordScanner is a ContentScanner over a cached banned word list.
// The list loads lazily on first scan and can be refreshed at runtime.
type BannedWordScanner struct {
	source WordListSource
	logger *logging.Logger

	mu      sync.RWMutex
	words   map[string]struct{}
	phrases []string
	loaded  bool
}

// NewBannedWordScanner builds a scanner over the given word list source.
func NewBannedWordScanner(source WordListSource, logger *logging.Logger) *BannedWordScanner {
	if logger == nil {
		logger = logging.Default()
	}
	return &BannedWordScanner{
		source: source,
		logger: logger,
	}
}

// Refresh reloads the banned word list from the source.
func (s *BannedWordScanner) Refresh(ctx context.Context) error {
	entries, err := s.source.GetBannedWords(ctx)
	if err != nil {
		return fmt.Errorf("loading banned words: %w", err)
	}

	words := make(map[string]struct{})
	var phrases []string
	for _, entry := range entries {
		normalized := strings.ToLower(strings.TrimSpace(entry.Word))
		if normalized == "" {
			continue
		}
		if entry.IsPhrase {
			phrases = append(phrases, normalized)
		} else {
			words[normalized] = struct{}{}
		}
	}

	s.mu.Lock()
	s.words = words
	s.phrases = phrases
	s.loaded = true
	s.mu.Unlock()

	s.logger.Info("banned word list refreshed", "words", len(words), "phrases", len(phrases))
	return nil
}

// Scan checks the text against the banned word list and returns
// REJECTED_CONTENT on any hit.
func (s *BannedWordScanner) Scan(ctx context.Context, text string) (trivia.ContentCode, error) {
	s.mu.RLock()
	loaded := s.loaded
	s.mu.RUnlock()

	if !loaded {
		if err := s.Refresh(ctx); err != nil {
			return "", err
		}
	}

	normalized := strings.ToLower(text)

	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, token := range scanTokenRe.Split(normalized, -1) {
		if token == "" {
			continue
		}
		if _, banned := s.words[token]; banned {
			return trivia.ContentCodeRejectedContent, nil
		}
	}

	for _, phrase := range s.phrases {
		if strings.Contains(normalized, phrase) {
			return trivia.ContentCodeRejectedContent, nil
		}
	}

	return trivia.ContentCodeOK, nil
}
