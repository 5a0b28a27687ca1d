package store

import (
	"testing"

	"github.com/charlesmadere/CynanBot-sub014/trivia"
)

func superAction(id, channel string, numberOfGames int) *trivia.StartNewSuperGameAction {
	return &trivia.StartNewSuperGameAction{
		ID:            id,
		TwitchChannel: channel,
		NumberOfGames: numberOfGames,
	}
}

func TestAddSuperGamesReportsSizes(t *testing.T) {
	s := NewQueueStore()

	got := s.AddSuperGames(true, superAction("a1", "chan", 3))
	want := AddResult{AmountAdded: 3, OldQueueSize: 0, NewQueueSize: 3}
	if got != want {
		t.Errorf("first add = %+v, want %+v", got, want)
	}

	got = s.AddSuperGames(true, superAction("a2", "chan", 2))
	want = AddResult{AmountAdded: 2, OldQueueSize: 3, NewQueueSize: 5}
	if got != want {
		t.Errorf("second add = %+v, want %+v", got, want)
	}

	if size := s.GetQueuedSuperGamesSize("chan"); size != 5 {
		t.Errorf("queue size = %d, want 5", size)
	}
}

func TestAddSuperGamesClampsCount(t *testing.T) {
	s := NewQueueStore()

	got := s.AddSuperGames(false, superAction("a1", "chan", 0))
	if got.AmountAdded != 1 || got.NewQueueSize != 1 {
		t.Errorf("add with zero count = %+v, want one entry", got)
	}
}

func TestPopQueuedSuperGamesFIFO(t *testing.T) {
	s := NewQueueStore()
	s.AddSuperGames(true, superAction("a1", "chan", 1))
	s.AddSuperGames(true, superAction("a2", "chan", 1))

	popped := s.PopQueuedSuperGames(nil)
	if len(popped) != 1 || popped[0].ID != "a1" {
		t.Fatalf("first pop = %v, want [a1]", popped)
	}

	popped = s.PopQueuedSuperGames(nil)
	if len(popped) != 1 || popped[0].ID != "a2" {
		t.Fatalf("second pop = %v, want [a2]", popped)
	}

	if popped = s.PopQueuedSuperGames(nil); len(popped) != 0 {
		t.Fatalf("pop on empty store = %v, want none", popped)
	}
}

func TestPopQueuedSuperGamesSkipsActiveChannels(t *testing.T) {
	s := NewQueueStore()
	s.AddSuperGames(true, superAction("a1", "busy", 1))
	s.AddSuperGames(false, superAction("a2", "idle", 1))

	active := map[string]struct{}{"busy": {}}
	popped := s.PopQueuedSuperGames(active)
	if len(popped) != 1 || popped[0].ID != "a2" {
		t.Fatalf("pop with busy active = %v, want [a2]", popped)
	}
	if size := s.GetQueuedSuperGamesSize("busy"); size != 1 {
		t.Errorf("busy queue size = %d, want 1 (skipped, not dropped)", size)
	}

	// once the channel frees up its entry pops on the next sweep
	popped = s.PopQueuedSuperGames(nil)
	if len(popped) != 1 || popped[0].ID != "a1" {
		t.Fatalf("pop after channel freed = %v, want [a1]", popped)
	}
}

func TestPopQueuedSuperGamesOnePerChannelPerSweep(t *testing.T) {
	s := NewQueueStore()
	s.AddSuperGames(true, superAction("a1", "chan", 3))
	s.AddSuperGames(true, superAction("b1", "other", 1))

	popped := s.PopQueuedSuperGames(nil)
	if len(popped) != 2 {
		t.Fatalf("popped %d entries, want 2 (one per channel)", len(popped))
	}
	if size := s.GetQueuedSuperGamesSize("chan"); size != 2 {
		t.Errorf("chan queue size after sweep = %d, want 2", size)
	}
}

func TestClearQueuedSuperGames(t *testing.T) {
	s := NewQueueStore()
	s.AddSuperGames(true, superAction("a1", "chan", 5))

	got := s.ClearQueuedSuperGames("chan")
	want := ClearResult{AmountRemoved: 5, OldQueueSize: 5}
	if got != want {
		t.Errorf("clear = %+v, want %+v", got, want)
	}
	if size := s.GetQueuedSuperGamesSize("chan"); size != 0 {
		t.Errorf("queue size after clear = %d, want 0", size)
	}

	got = s.ClearQueuedSuperGames("chan")
	want = ClearResult{}
	if got != want {
		t.Errorf("clear of empty queue = %+v, want %+v", got, want)
	}
}
