// Package eventqueue distributes trivia events from the game machine to
// multiple consumers without letting a slow renderer block action handling.
package eventqueue

import (
	"context"
	"sync"

	"github.com/charlesmadere/CynanBot-sub014/logging"
	"github.com/charlesmadere/CynanBot-sub014/metrics"
	"github.com/charlesmadere/CynanBot-sub014/trivia"
)

// Consumer is an interface for consuming trivia events from the queue.
type Consumer interface {
	OnNewTriviaEvent(ctx context.Context, event trivia.Event)
	Name() string
}

// Broker fans trivia events out to every subscribed consumer through a
// bounded queue. Publishing never blocks; when the queue is full the event
// is dropped and counted.
type Broker struct {
	consumers  []Consumer
	eventQueue chan trivia.Event
	logger     *logging.Logger
	mu         sync.RWMutex
}

// NewBroker creates a new event broker.
func NewBroker(queueSize int, logger *logging.Logger) *Broker {
	if logger == nil {
		logger = logging.Default()
	}
	if queueSize <= 0 {
		queueSize = 1000
	}

	return &Broker{
		consumers:  make([]Consumer, 0),
		eventQueue: make(chan trivia.Event, queueSize),
		logger:     logger,
	}
}

// Subscribe adds a consumer to receive events.
func (b *Broker) Subscribe(consumer Consumer) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.consumers = append(b.consumers, consumer)
	b.logger.Info("consumer subscribed to trivia event broker", "consumer", consumer.Name())
}

// Publish sends an event to the queue (non-blocking).
func (b *Broker) Publish(event trivia.Event) bool {
	select {
	case b.eventQueue <- event:
		return true
	default:
		metrics.TriviaEventsDroppedCount.Add(1)
		b.logger.Warn("trivia event queue full, dropping event",
			"eventType", event.EventType(), "eventID", event.EventID())
		return false
	}
}

// Start begins processing events and distributing to consumers.
func (b *Broker) Start(ctx context.Context, wg *sync.WaitGroup) {
	wg.Add(1)
	go func() {
		defer wg.Done()
		b.logger.Info("trivia event broker started", "consumers", len(b.consumers))

		for {
			select {
			case <-ctx.Done():
				b.logger.Info("trivia event broker shutting down")
				return
			case event := <-b.eventQueue:
				b.fanout(ctx, event)
			}
		}
	}()
}

// fanout distributes an event to all consumers in parallel.
func (b *Broker) fanout(ctx context.Context, event trivia.Event) {
	b.mu.RLock()
	consumers := b.consumers
	b.mu.RUnlock()

	var wg sync.WaitGroup
	for _, consumer := range consumers {
		wg.Add(1)
		go func(c Consumer) {
			defer wg.Done()
			c.OnNewTriviaEvent(ctx, event)
		}(consumer)
	}
	wg.Wait()
}

// GetQueueLength returns the current queue depth.
func (b *Broker) GetQueueLength() int {
	return len(b.eventQueue)
}
