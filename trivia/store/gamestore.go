// Package store keeps the engine's live state: active games, queued super
// games, and per-channel cooldowns. All containers are safe for concurrent
// use; every mutation happens under a single lock so at-most-one invariants
// hold even under racing callers.
package store

import (
	"sync"

	"github.com/charlesmadere/CynanBot-sub014/trivia"
)

type normalGameKey struct {
	channel string
	userID  string
}

// GameStore is the in-memory registry of every active game state. Normal
// games are keyed by (channel, user); super games by channel alone. At most
// one entry may exist per key at any instant.
type GameStore struct {
	mu          sync.RWMutex
	normalGames map[normalGameKey]*trivia.NormalGameState
	superGames  map[string]*trivia.SuperGameState
}

// NewGameStore returns an empty game store.
func NewGameStore() *GameStore {
	return &GameStore{
		normalGames: make(map[normalGameKey]*trivia.NormalGameState),
		superGames:  make(map[string]*trivia.SuperGameState),
	}
}

// AddNormalGame inserts a normal game state iff no game is live for that
// (channel, user). The check and the insert happen atomically; a false
// return means the caller lost the race and should surface the
// already-in-progress outcome.
func (s *GameStore) AddNormalGame(state *trivia.NormalGameState) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := normalGameKey{channel: state.Channel(), userID: state.UserID()}
	if _, exists := s.normalGames[key]; exists {
		return false
	}
	s.normalGames[key] = state
	return true
}

// AddSuperGame inserts a super game state iff the channel has none.
func (s *GameStore) AddSuperGame(state *trivia.SuperGameState) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.superGames[state.Channel()]; exists {
		return false
	}
	s.superGames[state.Channel()] = state
	return true
}

// GetNormalGame returns the live normal game for (channel, user), or nil.
func (s *GameStore) GetNormalGame(channel, userID string) *trivia.NormalGameState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.normalGames[normalGameKey{channel: channel, userID: userID}]
}

// GetSuperGame returns the channel's live super game, or nil.
func (s *GameStore) GetSuperGame(channel string) *trivia.SuperGameState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.superGames[channel]
}

// HasNormalGameInChannel reports whether any user has a live normal game in
// the channel.
func (s *GameStore) HasNormalGameInChannel(channel string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for key := range s.normalGames {
		if key.channel == channel {
			return true
		}
	}
	return false
}

// GetAll snapshots every live game state.
func (s *GameStore) GetAll() []trivia.GameState {
	s.mu.RLock()
	defer s.mu.RUnlock()

	all := make([]trivia.GameState, 0, len(s.normalGames)+len(s.superGames))
	for _, state := range s.normalGames {
		all = append(all, state)
	}
	for _, state := range s.superGames {
		all = append(all, state)
	}
	return all
}

// SuperGameChannels returns the set of channels with a live super game.
func (s *GameStore) SuperGameChannels() map[string]struct{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	channels := make(map[string]struct{}, len(s.superGames))
	for channel := range s.superGames {
		channels[channel] = struct{}{}
	}
	return channels
}

// RemoveNormalGame deletes the normal game for (channel, user). Removing a
// key with no game is a no-op returning false.
func (s *GameStore) RemoveNormalGame(channel, userID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := normalGameKey{channel: channel, userID: userID}
	if _, exists := s.normalGames[key]; !exists {
		return false
	}
	delete(s.normalGames, key)
	return true
}

// RemoveSuperGame deletes the channel's super game. Removing a channel with
// no game is a no-op returning false.
func (s *GameStore) RemoveSuperGame(channel string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.superGames[channel]; !exists {
		return false
	}
	delete(s.superGames, channel)
	return true
}

// Size reports the number of live games.
func (s *GameStore) Size() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.normalGames) + len(s.superGames)
}
