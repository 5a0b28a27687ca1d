package twitchirc

import (
	"testing"

	"github.com/charlesmadere/CynanBot-sub014/logging"
	"github.com/charlesmadere/CynanBot-sub014/trivia"
	v2 "github.com/gempir/go-twitch-irc/v2"
)

func testIRC() *IRC {
	return &IRC{
		ids:    trivia.NewIdGenerator(),
		logger: logging.Default(),
	}
}

func chatMessage(channel, text string) v2.PrivateMessage {
	return v2.PrivateMessage{
		Channel: channel,
		Message: text,
		User: v2.User{
			ID:          "user1",
			Name:        "viewer",
			DisplayName: "Viewer",
			Badges:      map[string]int{},
		},
	}
}

func TestParseTriviaCommandStart(t *testing.T) {
	irc := testIRC()

	action := irc.parseTriviaCommand(chatMessage("chan", "!trivia"))
	start, ok := action.(*trivia.StartNewGameAction)
	if !ok {
		t.Fatalf("got %T, want StartNewGameAction", action)
	}
	if start.TwitchChannel != "chan" || start.UserID != "user1" || start.UserName != "Viewer" {
		t.Errorf("action fields wrong: %+v", start)
	}
	if start.ID == "" {
		t.Error("action id not generated")
	}
	if start.Fetch.TwitchChannel != "chan" {
		t.Errorf("fetch options channel = %q, want chan", start.Fetch.TwitchChannel)
	}
}

func TestParseTriviaCommandSuper(t *testing.T) {
	irc := testIRC()

	tests := []struct {
		name    string
		message string
		want    int
		wantNil bool
	}{
		{name: "no count", message: "!supertrivia", want: 1},
		{name: "explicit count", message: "!supertrivia 5", want: 5},
		{name: "uppercase command", message: "!SuperTrivia 2", want: 2},
		{name: "zero count", message: "!supertrivia 0", wantNil: true},
		{name: "negative count", message: "!supertrivia -3", wantNil: true},
		{name: "garbage count", message: "!supertrivia lots", wantNil: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			action := irc.parseTriviaCommand(chatMessage("chan", tt.message))
			if tt.wantNil {
				if action != nil {
					t.Fatalf("got %T, want nil", action)
				}
				return
			}
			super, ok := action.(*trivia.StartNewSuperGameAction)
			if !ok {
				t.Fatalf("got %T, want StartNewSuperGameAction", action)
			}
			if super.NumberOfGames != tt.want {
				t.Errorf("NumberOfGames = %d, want %d", super.NumberOfGames, tt.want)
			}
		})
	}
}

func TestParseTriviaCommandAnswers(t *testing.T) {
	irc := testIRC()

	action := irc.parseTriviaCommand(chatMessage("chan", "!answer the Eiffel Tower"))
	answer, ok := action.(*trivia.CheckAnswerAction)
	if !ok {
		t.Fatalf("got %T, want CheckAnswerAction", action)
	}
	if answer.Answer != "the Eiffel Tower" {
		t.Errorf("Answer = %q, want raw text preserved", answer.Answer)
	}

	action = irc.parseTriviaCommand(chatMessage("chan", "!superanswer paris"))
	superAnswer, ok := action.(*trivia.CheckSuperAnswerAction)
	if !ok {
		t.Fatalf("got %T, want CheckSuperAnswerAction", action)
	}
	if superAnswer.Answer != "paris" {
		t.Errorf("Answer = %q, want paris", superAnswer.Answer)
	}

	// answers need text
	if action = irc.parseTriviaCommand(chatMessage("chan", "!answer")); action != nil {
		t.Errorf("bare !answer parsed to %T, want nil", action)
	}
	if action = irc.parseTriviaCommand(chatMessage("chan", "!superanswer   ")); action != nil {
		t.Errorf("bare !superanswer parsed to %T, want nil", action)
	}
}

func TestParseTriviaCommandClearQueuePermissions(t *testing.T) {
	irc := testIRC()

	msg := chatMessage("chan", "!cleartriviaqueue")
	if action := irc.parseTriviaCommand(msg); action != nil {
		t.Fatalf("plain viewer cleared the queue: got %T", action)
	}

	msg.User.Badges = map[string]int{"moderator": 1}
	action := irc.parseTriviaCommand(msg)
	if _, ok := action.(*trivia.ClearSuperTriviaQueueAction); !ok {
		t.Fatalf("moderator got %T, want ClearSuperTriviaQueueAction", action)
	}

	msg.User.Badges = map[string]int{"broadcaster": 1}
	action = irc.parseTriviaCommand(msg)
	if _, ok := action.(*trivia.ClearSuperTriviaQueueAction); !ok {
		t.Fatalf("broadcaster got %T, want ClearSuperTriviaQueueAction", action)
	}
}

func TestParseChannelList(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want []string
	}{
		{name: "single channel", raw: "soypetetech", want: []string{"soypetetech"}},
		{name: "multiple channels", raw: "one,two,three", want: []string{"one", "two", "three"}},
		{name: "whitespace trimmed", raw: " one , two ", want: []string{"one", "two"}},
		{name: "empty entries dropped", raw: "one,,two,", want: []string{"one", "two"}},
		{name: "unset", raw: "", want: nil},
		{name: "commas only", raw: ",,,", want: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseChannelList(tt.raw)
			if len(got) != len(tt.want) {
				t.Fatalf("ParseChannelList(%q) = %v, want %v", tt.raw, got, tt.want)
			}
			for i := range tt.want {
				if got[i] != tt.want[i] {
					t.Errorf("channel %d = %q, want %q", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestParseTriviaCommandIgnoresChatter(t *testing.T) {
	irc := testIRC()

	for _, text := range []string{"hello chat", "!unrelated", "trivia without bang", ""} {
		if action := irc.parseTriviaCommand(chatMessage("chan", text)); action != nil {
			t.Errorf("message %q parsed to %T, want nil", text, action)
		}
	}
}
