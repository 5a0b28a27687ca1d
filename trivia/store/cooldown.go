package store

import (
	"sync"
	"time"
)

// CooldownTracker gates how soon a channel may start another super game
// after its last one. The machine consults it before popping queued games
// so back-to-back super games cannot flood a channel's chat.
type CooldownTracker struct {
	mu         sync.Mutex
	lastStarts map[string]time.Time
	cooldown   time.Duration
	now        func() time.Time
}

// NewCooldownTracker builds a tracker with the given cooldown duration.
func NewCooldownTracker(cooldown time.Duration) *CooldownTracker {
	return NewCooldownTrackerWithClock(cooldown, time.Now)
}

// NewCooldownTrackerWithClock takes an explicit clock for tests.
func NewCooldownTrackerWithClock(cooldown time.Duration, now func() time.Time) *CooldownTracker {
	return &CooldownTracker{
		lastStarts: make(map[string]time.Time),
		cooldown:   cooldown,
		now:        now,
	}
}

// IsChannelInCooldown reports whether the channel started a super game less
// than the cooldown duration ago.
func (t *CooldownTracker) IsChannelInCooldown(channel string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	last, ok := t.lastStarts[channel]
	if !ok {
		return false
	}
	return t.now().Sub(last) < t.cooldown
}

// Update records now as the channel's last super game start.
func (t *CooldownTracker) Update(channel string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.lastStarts[channel] = t.now()
}

// GetChannelsInCooldown returns the set of channels currently cooling down.
// Expired entries are pruned as a side effect.
func (t *CooldownTracker) GetChannelsInCooldown() map[string]struct{} {
	t.mu.Lock()
	defer t.mu.Unlock()

	now := t.now()
	channels := make(map[string]struct{})
	for channel, last := range t.lastStarts {
		if now.Sub(last) < t.cooldown {
			channels[channel] = struct{}{}
		} else {
			delete(t.lastStarts, channel)
		}
	}
	return channels
}
