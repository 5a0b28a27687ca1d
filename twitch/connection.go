// Package twitchirc connects the trivia game machine to Twitch chat: it
// parses chat commands into actions and renders game events back into
// channel messages.
package twitchirc

import (
	"context"
	"strings"

	"github.com/charlesmadere/CynanBot-sub014/logging"
	"github.com/charlesmadere/CynanBot-sub014/metrics"
	"github.com/charlesmadere/CynanBot-sub014/trivia"
	"github.com/charlesmadere/CynanBot-sub014/trivia/machine"
	v2 "github.com/gempir/go-twitch-irc/v2"
	"github.com/pkg/errors"
	"golang.org/x/oauth2"
)

// IRC Connection to the twitch IRC server.
type IRC struct {
	machine  *machine.Machine
	ids      *trivia.IdGenerator
	botName  string
	channels []string
	Client   *v2.Client
	tok      *oauth2.Token
	authCode string
	logger   *logging.Logger
}

// ParseChannelList splits a comma separated channel list, trimming
// whitespace and dropping empty entries. An unset or blank list yields nil.
func ParseChannelList(raw string) []string {
	var channels []string
	for _, channel := range strings.Split(raw, ",") {
		if channel = strings.TrimSpace(channel); channel != "" {
			channels = append(channels, channel)
		}
	}
	return channels
}

// SetupTwitchIRC configures oauth and prepares the IRC connection for the
// given channels.
func SetupTwitchIRC(gameMachine *machine.Machine, ids *trivia.IdGenerator, botName string, channels []string, logger *logging.Logger) (*IRC, error) {
	if logger == nil {
		logger = logging.Default()
	}
	if len(channels) == 0 {
		return nil, errors.New("no twitch channels configured")
	}

	irc := &IRC{
		machine:  gameMachine,
		ids:      ids,
		botName:  botName,
		channels: channels,
		logger:   logger,
	}

	// using a separate context here because it may need human interaction
	ctx := context.Background()
	if err := irc.AuthTwitch(ctx); err != nil {
		logger.Error("failed to authenticate with twitch", "error", err.Error())
		return nil, errors.Wrap(err, "failed to authenticate with twitch")
	}

	return irc, nil
}

// ConnectIRC builds the client, joins every configured channel, and wires
// incoming messages into the game machine. The returned client still needs
// Connect() called on it.
func (irc *IRC) ConnectIRC(ctx context.Context) error {
	irc.logger.Info("connecting to twitch IRC", "channels", irc.channels)
	c := v2.NewClient(irc.botName, "oauth:"+irc.tok.AccessToken)

	for _, channel := range irc.channels {
		c.Join(channel)
	}

	c.OnConnect(func() {
		metrics.TwitchConnectionCount.Add(1)
		irc.logger.Info("connection to twitch IRC established")
	})

	c.OnPrivateMessage(func(msg v2.PrivateMessage) {
		metrics.TwitchMessageRecievedCount.Add(1)
		irc.HandleChat(ctx, msg)
	})

	irc.Client = c
	return nil
}

// HandleChat turns a chat message into a trivia action, if it is one of the
// trivia commands, and submits it to the game machine.
func (irc *IRC) HandleChat(ctx context.Context, msg v2.PrivateMessage) {
	action := irc.parseTriviaCommand(msg)
	if action == nil {
		return
	}

	irc.logger.Debug("submitting trivia action",
		"actionType", string(action.ActionType()), "channel", action.Channel(), "user", msg.User.Name)

	if err := irc.machine.SubmitAction(action); err != nil {
		irc.logger.Warn("trivia action not accepted",
			"error", err.Error(), "actionType", string(action.ActionType()), "user", msg.User.Name)
	}
}
