package trivia

import (
	"crypto/sha256"
	"encoding/hex"
	"math/rand"
	"sync"
	"time"
)

const (
	idAlphabet = "abcdefghijklmnopqrstuvwxyz0123456789"
	idLength   = 12
)

// IdGenerator produces the short random ids used for actions, events, and
// games, plus deterministic content-hash ids for questions. Random ids only
// need to be practically unique within a running process; question ids must
// be stable so the same question text always deduplicates to the same key.
type IdGenerator struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewIdGenerator returns a time-seeded generator.
func NewIdGenerator() *IdGenerator {
	return NewIdGeneratorWithSource(rand.NewSource(time.Now().UnixNano()))
}

// NewIdGeneratorWithSource takes an explicit randomness source so tests can
// pin the sequence.
func NewIdGeneratorWithSource(src rand.Source) *IdGenerator {
	return &IdGenerator{
		rng: rand.New(src),
	}
}

func (g *IdGenerator) randomID() string {
	g.mu.Lock()
	defer g.mu.Unlock()

	buf := make([]byte, idLength)
	for i := range buf {
		buf[i] = idAlphabet[g.rng.Intn(len(idAlphabet))]
	}
	return string(buf)
}

// GenerateActionID returns a fresh action id.
func (g *IdGenerator) GenerateActionID() string { return g.randomID() }

// GenerateEventID returns a fresh event id.
func (g *IdGenerator) GenerateEventID() string { return g.randomID() }

// GenerateGameID returns a fresh game id.
func (g *IdGenerator) GenerateGameID() string { return g.randomID() }

// GenerateQuestionID hashes question text plus its category and difficulty
// into a stable id. The same inputs always yield the same id regardless of
// which source served the question.
func (g *IdGenerator) GenerateQuestionID(question string, category string, difficulty Difficulty) string {
	return GenerateQuestionID(question, category, difficulty)
}

// GenerateQuestionID is the deterministic content-hash id used as the
// dedup/history key for questions.
func GenerateQuestionID(question string, category string, difficulty Difficulty) string {
	h := sha256.New()
	h.Write([]byte(question))
	h.Write([]byte{0})
	h.Write([]byte(category))
	h.Write([]byte{0})
	h.Write([]byte(difficulty))
	return hex.EncodeToString(h.Sum(nil))
}
