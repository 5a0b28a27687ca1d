package store

import (
	"testing"
	"time"

	"github.com/charlesmadere/CynanBot-sub014/trivia"
)

func testQuestion(t *testing.T) *trivia.Question {
	t.Helper()
	q, err := trivia.NewQuestionAnswerQuestion("q1", "What is the capital of France?", "geography",
		trivia.DifficultyEasy, trivia.SourceLocalDatabase, []string{"Paris"}, []string{"paris"})
	if err != nil {
		t.Fatal(err)
	}
	return q
}

func normalGame(t *testing.T, gameID, channel, userID string) *trivia.NormalGameState {
	t.Helper()
	state, err := trivia.NewNormalGameState(gameID, "action1", channel, "Kappa",
		testQuestion(t), userID, "viewer", 25, 60, time.Now())
	if err != nil {
		t.Fatal(err)
	}
	return state
}

func superGame(t *testing.T, gameID, channel string) *trivia.SuperGameState {
	t.Helper()
	state, err := trivia.NewSuperGameState(gameID, "action1", channel, "PogChamp",
		testQuestion(t), 25, 2, 60, time.Now())
	if err != nil {
		t.Fatal(err)
	}
	return state
}

func TestAddNormalGameAtMostOnePerUser(t *testing.T) {
	s := NewGameStore()
	first := normalGame(t, "g1", "chan", "user1")
	second := normalGame(t, "g2", "chan", "user1")

	if !s.AddNormalGame(first) {
		t.Fatal("first add rejected")
	}
	if s.AddNormalGame(second) {
		t.Fatal("second add for same (channel, user) accepted")
	}

	got := s.GetNormalGame("chan", "user1")
	if got == nil || got.GameID() != "g1" {
		t.Errorf("losing add displaced the original game: got %v", got)
	}
}

func TestAddNormalGameDifferentUsersAndChannels(t *testing.T) {
	s := NewGameStore()

	if !s.AddNormalGame(normalGame(t, "g1", "chan", "user1")) {
		t.Fatal("add for user1 rejected")
	}
	if !s.AddNormalGame(normalGame(t, "g2", "chan", "user2")) {
		t.Fatal("add for user2 in same channel rejected")
	}
	if !s.AddNormalGame(normalGame(t, "g3", "other", "user1")) {
		t.Fatal("add for user1 in other channel rejected")
	}
	if s.Size() != 3 {
		t.Errorf("Size = %d, want 3", s.Size())
	}
}

func TestAddSuperGameAtMostOnePerChannel(t *testing.T) {
	s := NewGameStore()

	if !s.AddSuperGame(superGame(t, "sg1", "chan")) {
		t.Fatal("first super game rejected")
	}
	if s.AddSuperGame(superGame(t, "sg2", "chan")) {
		t.Fatal("second super game in same channel accepted")
	}
	if got := s.GetSuperGame("chan"); got == nil || got.GameID() != "sg1" {
		t.Errorf("losing add displaced the original super game: got %v", got)
	}

	if !s.AddSuperGame(superGame(t, "sg3", "other")) {
		t.Fatal("super game in a different channel rejected")
	}
}

func TestHasNormalGameInChannel(t *testing.T) {
	s := NewGameStore()
	s.AddNormalGame(normalGame(t, "g1", "chan", "user1"))

	if !s.HasNormalGameInChannel("chan") {
		t.Error("expected a live normal game in chan")
	}
	if s.HasNormalGameInChannel("other") {
		t.Error("unexpected normal game in other")
	}
}

func TestRemoveGames(t *testing.T) {
	s := NewGameStore()
	s.AddNormalGame(normalGame(t, "g1", "chan", "user1"))
	s.AddSuperGame(superGame(t, "sg1", "chan"))

	if !s.RemoveNormalGame("chan", "user1") {
		t.Error("remove of existing normal game returned false")
	}
	if s.RemoveNormalGame("chan", "user1") {
		t.Error("second remove of the same game returned true")
	}
	if s.GetNormalGame("chan", "user1") != nil {
		t.Error("normal game still present after remove")
	}

	if !s.RemoveSuperGame("chan") {
		t.Error("remove of existing super game returned false")
	}
	if s.RemoveSuperGame("chan") {
		t.Error("second remove of the same super game returned true")
	}
	if s.Size() != 0 {
		t.Errorf("Size = %d, want 0", s.Size())
	}
}

func TestSuperGameChannelsAndGetAll(t *testing.T) {
	s := NewGameStore()
	s.AddNormalGame(normalGame(t, "g1", "chan", "user1"))
	s.AddSuperGame(superGame(t, "sg1", "chan"))
	s.AddSuperGame(superGame(t, "sg2", "other"))

	channels := s.SuperGameChannels()
	if len(channels) != 2 {
		t.Fatalf("SuperGameChannels size = %d, want 2", len(channels))
	}
	if _, ok := channels["chan"]; !ok {
		t.Error("chan missing from SuperGameChannels")
	}
	if _, ok := channels["other"]; !ok {
		t.Error("other missing from SuperGameChannels")
	}

	if all := s.GetAll(); len(all) != 3 {
		t.Errorf("GetAll size = %d, want 3", len(all))
	}
}
