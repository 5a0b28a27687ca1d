package twitchirc

import (
	"strconv"
	"strings"

	"github.com/charlesmadere/CynanBot-sub014/trivia"
	v2 "github.com/gempir/go-twitch-irc/v2"
)

const (
	commandTrivia           = "!trivia"
	commandSuperTrivia      = "!supertrivia"
	commandAnswer           = "!answer"
	commandSuperAnswer      = "!superanswer"
	commandClearTriviaQueue = "!cleartriviaqueue"
)

// parseTriviaCommand maps a chat message onto a trivia action. Messages
// that aren't trivia commands return nil. Clearing the super trivia queue
// is restricted to the broadcaster and moderators.
func (irc *IRC) parseTriviaCommand(msg v2.PrivateMessage) trivia.Action {
	if !strings.HasPrefix(msg.Message, "!") {
		return nil
	}

	command, argument := splitCommand(msg.Message)
	channel := msg.Channel
	if channel == "" {
		channel = msg.RoomID
	}

	switch command {
	case commandTrivia:
		return &trivia.StartNewGameAction{
			ID:            irc.ids.GenerateActionID(),
			TwitchChannel: channel,
			UserID:        msg.User.ID,
			UserName:      msg.User.DisplayName,
			Fetch:         trivia.FetchOptions{TwitchChannel: channel},
		}

	case commandSuperTrivia:
		numberOfGames := 1
		if argument != "" {
			n, err := strconv.Atoi(argument)
			if err != nil || n < 1 {
				irc.logger.Debug("ignoring supertrivia command with bad count", "argument", argument)
				return nil
			}
			numberOfGames = n
		}
		return &trivia.StartNewSuperGameAction{
			ID:            irc.ids.GenerateActionID(),
			TwitchChannel: channel,
			NumberOfGames: numberOfGames,
			Fetch:         trivia.FetchOptions{TwitchChannel: channel},
		}

	case commandAnswer:
		if argument == "" {
			return nil
		}
		return &trivia.CheckAnswerAction{
			ID:            irc.ids.GenerateActionID(),
			TwitchChannel: channel,
			UserID:        msg.User.ID,
			UserName:      msg.User.DisplayName,
			Answer:        argument,
		}

	case commandSuperAnswer:
		if argument == "" {
			return nil
		}
		return &trivia.CheckSuperAnswerAction{
			ID:            irc.ids.GenerateActionID(),
			TwitchChannel: channel,
			UserID:        msg.User.ID,
			UserName:      msg.User.DisplayName,
			Answer:        argument,
		}

	case commandClearTriviaQueue:
		if !isElevated(msg.User) {
			irc.logger.Debug("ignoring cleartriviaqueue from non-moderator", "user", msg.User.Name)
			return nil
		}
		return &trivia.ClearSuperTriviaQueueAction{
			ID:            irc.ids.GenerateActionID(),
			TwitchChannel: channel,
		}

	default:
		return nil
	}
}

func splitCommand(message string) (command, argument string) {
	trimmed := strings.TrimSpace(message)
	parts := strings.SplitN(trimmed, " ", 2)

	command = strings.ToLower(parts[0])
	if len(parts) == 2 {
		argument = strings.TrimSpace(parts[1])
	}
	return command, argument
}

func isElevated(user v2.User) bool {
	if user.Badges["broadcaster"] > 0 {
		return true
	}
	return user.Badges["moderator"] > 0
}
