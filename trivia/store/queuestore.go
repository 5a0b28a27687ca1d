package store

import (
	"sync"

	"github.com/charlesmadere/CynanBot-sub014/trivia"
)

// AddResult reports the queue sizes around an enqueue.
type AddResult struct {
	AmountAdded  int
	OldQueueSize int
	NewQueueSize int
}

// ClearResult reports what a queue clear removed.
type ClearResult struct {
	AmountRemoved int
	OldQueueSize  int
}

// QueueStore holds the per-channel FIFO queues of super games waiting for
// the channel's current super game (if any) to end. Popping is the only
// path from queued to active, and it skips channels that still have a game
// running.
type QueueStore struct {
	mu     sync.Mutex
	queues map[string][]*trivia.StartNewSuperGameAction
}

// NewQueueStore returns an empty queue store.
func NewQueueStore() *QueueStore {
	return &QueueStore{
		queues: make(map[string][]*trivia.StartNewSuperGameAction),
	}
}

// AddSuperGames appends action.NumberOfGames entries to the channel's queue
// tail. Nothing is capped here; AmountAdded always equals the requested
// count. isCurrentlyInProgress only describes the caller's view for the
// result consumer, it does not change what gets queued.
func (s *QueueStore) AddSuperGames(isCurrentlyInProgress bool, action *trivia.StartNewSuperGameAction) AddResult {
	s.mu.Lock()
	defer s.mu.Unlock()

	channel := action.Channel()
	oldSize := len(s.queues[channel])

	amount := action.NumberOfGames
	if amount < 1 {
		amount = 1
	}

	for i := 0; i < amount; i++ {
		s.queues[channel] = append(s.queues[channel], action)
	}

	return AddResult{
		AmountAdded:  amount,
		OldQueueSize: oldSize,
		NewQueueSize: len(s.queues[channel]),
	}
}

// GetQueuedSuperGamesSize reports the channel's current queue length.
func (s *QueueStore) GetQueuedSuperGamesSize(channel string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.queues[channel])
}

// PopQueuedSuperGames pops the head entry for every channel that is absent
// from activeChannels. Channels with a running super game are skipped this
// cycle and retried on the next sweep.
func (s *QueueStore) PopQueuedSuperGames(activeChannels map[string]struct{}) []*trivia.StartNewSuperGameAction {
	s.mu.Lock()
	defer s.mu.Unlock()

	var popped []*trivia.StartNewSuperGameAction
	for channel, queue := range s.queues {
		if len(queue) == 0 {
			delete(s.queues, channel)
			continue
		}
		if _, active := activeChannels[channel]; active {
			continue
		}

		popped = append(popped, queue[0])
		if len(queue) == 1 {
			delete(s.queues, channel)
		} else {
			s.queues[channel] = queue[1:]
		}
	}
	return popped
}

// ClearQueuedSuperGames empties the channel's queue and reports how much
// was pending. The channel's currently running super game, if any, is not
// this store's concern and is untouched.
func (s *QueueStore) ClearQueuedSuperGames(channel string) ClearResult {
	s.mu.Lock()
	defer s.mu.Unlock()

	oldSize := len(s.queues[channel])
	delete(s.queues, channel)

	return ClearResult{
		AmountRemoved: oldSize,
		OldQueueSize:  oldSize,
	}
}
