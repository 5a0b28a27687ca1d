package twitchirc

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/twitch"
)

func (irc *IRC) parseAuthCode(w http.ResponseWriter, req *http.Request) {
	err := req.ParseForm()
	if err != nil {
		fmt.Printf("could not parse query: %v", err)
		http.Error(w, "could not parse query", http.StatusBadRequest)
	}
	irc.authCode = req.FormValue("code")
}

// AuthTwitch retrieves the oauth2 token needed for the twitch IRC
// connection. When TWITCH_OAUTH_TOKEN is set it is used directly;
// otherwise the interactive code flow runs and needs a human to visit the
// consent URL.
func (irc *IRC) AuthTwitch(ctx context.Context) error {
	if token := os.Getenv("TWITCH_OAUTH_TOKEN"); token != "" {
		irc.tok = &oauth2.Token{AccessToken: token}
		return nil
	}

	http.HandleFunc("/oauth/redirect", irc.parseAuthCode)
	go http.ListenAndServe("localhost:3000", nil)

	conf := &oauth2.Config{
		ClientID:     os.Getenv("TWITCH_ID"),
		ClientSecret: os.Getenv("TWITCH_SECRET"),
		Scopes:       []string{"chat:read", "chat:edit"},
		RedirectURL:  "http://localhost:3000/oauth/redirect",
		Endpoint:     twitch.Endpoint,
	}
	// Redirect user to consent page to ask for permission
	// for the scopes specified above.
	url := conf.AuthCodeURL("state", oauth2.AccessTypeOffline)
	fmt.Printf("Visit the URL for the auth dialog: %v\n", url)
	for irc.authCode == "" {
		// wait for auth code
		time.Sleep(1 * time.Second)
	}

	fmt.Println("auth code received")
	var err error
	irc.tok, err = conf.Exchange(ctx, irc.authCode)
	if err != nil {
		return fmt.Errorf("failed to get token with auth code: %w", err)
	}
	fmt.Println("token received")
	return nil
}
