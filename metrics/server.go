package metrics

import (
	"expvar"
	"net/http"
	_ "net/http/pprof"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// Expvar metrics (legacy)
	TwitchConnectionCount      = expvar.NewInt("twitch_connection_count")
	TwitchMessageRecievedCount = expvar.NewInt("twitch_message_recieved_count")
	TwitchMessageSentCount     = expvar.NewInt("twitch_message_sent_count")
	TriviaActionsSubmitted     = expvar.NewInt("trivia_actions_submitted")
	TriviaActionsRejected      = expvar.NewInt("trivia_actions_rejected")
	TriviaEventsDroppedCount   = expvar.NewInt("trivia_events_dropped_count")
	QuestionFetchFailCount     = expvar.NewInt("question_fetch_fail_count")
	QuestionVerifyRejectCount  = expvar.NewInt("question_verify_reject_count")

	// Prometheus metrics with labels
	TriviaGamesStarted = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "trivia_games_started_total",
			Help: "Total number of trivia games started by game type (normal, super)",
		},
		[]string{"game_type"},
	)

	TriviaAnswersChecked = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "trivia_answers_checked_total",
			Help: "Total number of answers checked by game type and outcome (correct, incorrect, invalid)",
		},
		[]string{"game_type", "outcome"},
	)

	TriviaGamesEnded = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "trivia_games_ended_total",
			Help: "Total number of trivia games ended by game type and reason (won, outOfTime)",
		},
		[]string{"game_type", "reason"},
	)

	TriviaEventsEmitted = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "trivia_events_emitted_total",
			Help: "Total number of trivia events emitted by event type",
		},
		[]string{"event_type"},
	)

	SuperTriviaQueueDepth = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "super_trivia_queue_depth",
			Help: "Current number of queued super trivia games per channel",
		},
		[]string{"channel"},
	)

	TriviaActionDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "trivia_action_duration_seconds",
			Help:    "Duration of trivia action handling in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"action_type"},
	)
)

type Server struct {
	*http.Server
}

func SetupServer() *Server {

	// pprof is setup by importing the net/http/pprof package
	server := &http.Server{
		Addr:         ":6060",
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	// setup expvar cache
	TwitchConnectionCount.Set(0)
	TwitchMessageRecievedCount.Set(0)
	TwitchMessageSentCount.Set(0)
	TriviaActionsSubmitted.Set(0)
	TriviaActionsRejected.Set(0)
	TriviaEventsDroppedCount.Set(0)
	QuestionFetchFailCount.Set(0)
	QuestionVerifyRejectCount.Set(0)

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewBuildInfoCollector(),
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		collectors.NewExpvarCollector(
			map[string]*prometheus.Desc{
				"twitch_connection_count":       prometheus.NewDesc("twitch_connection_count", "number of times twitch connection was established", nil, nil),
				"twitch_message_recieved_count": prometheus.NewDesc("twitch_message_recieved_count", "number of times twitch recieved a message", nil, nil),
				"twitch_message_sent_count":     prometheus.NewDesc("twitch_message_sent_count", "number of times twitch sent a message", nil, nil),
				"trivia_actions_submitted":      prometheus.NewDesc("trivia_actions_submitted", "number of trivia actions submitted to the game machine", nil, nil),
				"trivia_actions_rejected":       prometheus.NewDesc("trivia_actions_rejected", "number of trivia actions rejected by validation", nil, nil),
				"trivia_events_dropped_count":   prometheus.NewDesc("trivia_events_dropped_count", "number of trivia events dropped by a full broker queue", nil, nil),
				"question_fetch_fail_count":     prometheus.NewDesc("question_fetch_fail_count", "number of failed question fetches", nil, nil),
				"question_verify_reject_count":  prometheus.NewDesc("question_verify_reject_count", "number of questions rejected by verification", nil, nil),
			},
		),
		// Register trivia engine metrics with labels
		TriviaGamesStarted,
		TriviaAnswersChecked,
		TriviaGamesEnded,
		TriviaEventsEmitted,
		SuperTriviaQueueDepth,
		TriviaActionDuration,
	)

	http.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
	http.HandleFunc("/healthz", healthzHandler)
	return &Server{server}
}

// healthzHandler returns a simple health check response
func healthzHandler(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("OK"))
}

func (s *Server) Run() {
	_ = s.ListenAndServe()
}
