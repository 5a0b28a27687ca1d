package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"sync"
	"time"

	"github.com/charlesmadere/CynanBot-sub014/database"
	"github.com/charlesmadere/CynanBot-sub014/keepalive"
	"github.com/charlesmadere/CynanBot-sub014/logging"
	"github.com/charlesmadere/CynanBot-sub014/metrics"
	"github.com/charlesmadere/CynanBot-sub014/redisdb"
	"github.com/charlesmadere/CynanBot-sub014/trivia"
	"github.com/charlesmadere/CynanBot-sub014/trivia/eventqueue"
	"github.com/charlesmadere/CynanBot-sub014/trivia/machine"
	"github.com/charlesmadere/CynanBot-sub014/trivia/verify"
	twitchirc "github.com/charlesmadere/CynanBot-sub014/twitch"
	"golang.org/x/sync/errgroup"
)

func main() {

	var botName string
	var cooldown time.Duration
	var queuePopInterval time.Duration
	var basePoints int
	var secondsToLive int
	flag.StringVar(&botName, "botName", "cynan_bot", "The twitch account the bot connects as")
	flag.DurationVar(&cooldown, "superTriviaCooldown", 2*time.Minute, "Cooldown between super trivia games per channel")
	flag.DurationVar(&queuePopInterval, "queuePopInterval", 5*time.Second, "How often queued super games are considered for activation")
	flag.IntVar(&basePoints, "basePoints", 25, "Default points for winning a trivia game")
	flag.IntVar(&secondsToLive, "secondsToLive", 60, "Default seconds before a trivia game times out")
	flag.Parse()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	wg := &sync.WaitGroup{}
	logger := logging.FromEnv()

	// setup postgres connection
	db, err := database.NewPostgres(logger)
	if err != nil {
		log.Fatalln(err)
	}
	defer db.Close()

	// setup redis for the per-channel question history
	redisClient, err := redisdb.Connect(ctx, logger)
	if err != nil {
		log.Fatalln(err)
	}
	history := redisdb.NewHistoryRepository(redisClient, 24*time.Hour, logger)

	scanner := verify.NewBannedWordScanner(db, logger)
	verifier := verify.NewVerifier(scanner, history, logger)
	ids := trivia.NewIdGenerator()

	broker := eventqueue.NewBroker(1000, logger)

	gameMachine := machine.NewMachine(machine.Config{
		SuperGameCooldown:    cooldown,
		QueuePopInterval:     queuePopInterval,
		DefaultBasePoints:    basePoints,
		DefaultSecondsToLive: secondsToLive,
	}, db, verifier, db, broker, ids, logger)
	gameMachine.SetToxicTracker(db)
	gameMachine.SetShinyTracker(db)

	channels := twitchirc.ParseChannelList(os.Getenv("TRIVIA_CHANNELS"))
	if len(channels) == 0 {
		log.Fatalln("TRIVIA_CHANNELS must name at least one channel")
	}
	irc, err := twitchirc.SetupTwitchIRC(gameMachine, ids, botName, channels, logger)
	if err != nil {
		log.Fatalln(err)
	}
	if err := irc.ConnectIRC(ctx); err != nil {
		log.Fatalln(err)
	}

	broker.Subscribe(twitchirc.NewChatNotifier(irc.Client, logger))
	broker.Start(ctx, wg)
	gameMachine.Start(ctx, wg)

	// watch the backing stores and complain in chat if one goes away
	monitor := keepalive.NewKeepAliveService([]keepalive.ServiceConfig{
		{Name: "postgres", Check: db.Ping},
		{Name: "redis", Check: func(ctx context.Context) error { return redisClient.Ping(ctx).Err() }},
	}, time.Minute, time.Hour, keepalive.AlertFunc(func(ctx context.Context, service, message string) error {
		irc.Client.Say(channels[0], message)
		return nil
	}), logger)
	monitor.Start(ctx, wg)

	// metrics server and the IRC connection are the long-running pieces
	var eg errgroup.Group
	server := metrics.SetupServer()
	eg.Go(func() error {
		server.Run()
		return nil
	})
	eg.Go(func() error {
		return irc.Client.Connect()
	})

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt)
	log.Println("Press Ctrl+C to exit")
	<-stop

	cancel()
	log.Println(irc.Client.Disconnect()) // print error if any
	_ = server.Close()
	_ = eg.Wait()
	wg.Wait()
	log.Println("Shutting down")
}
