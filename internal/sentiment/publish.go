package sentiment

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/spacesedan/sentitrack/internal/models"
)

// MultiPublisher sends every event to each publisher concurrently and joins
// their errors. One failing sink does not stop the others.
type MultiPublisher []Publisher

func (m MultiPublisher) Publish(ctx context.Context, event models.SentimentEvent) error {
	errs := make([]error, len(m))

	var g errgroup.Group
	for i, p := range m {
		g.Go(func() error {
			errs[i] = p.Publish(ctx, event)
			return nil
		})
	}
	_ = g.Wait()

	return errors.Join(errs...)
}

var (
	ErrPublishQueueFull = errors.New("publish queue full")
	ErrPublisherClosed  = errors.New("publisher closed")
)

// AsyncPublisher hands events to a background worker so sinks never hold up
// a classification. Each event gets its own timeout, detached from the
// caller's context.
type AsyncPublisher struct {
	next    Publisher
	timeout time.Duration
	events  chan models.SentimentEvent

	mu     sync.RWMutex
	closed bool
	wg     sync.WaitGroup
}

func NewAsyncPublisher(next Publisher, queueSize int, timeout time.Duration) *AsyncPublisher {
	a := &AsyncPublisher{
		next:    next,
		timeout: timeout,
		events:  make(chan models.SentimentEvent, max(1, queueSize)),
	}

	a.wg.Add(1)
	go a.run()
	return a
}

// Publish enqueues the event without blocking. A full or closed queue drops
// the event and reports why.
func (a *AsyncPublisher) Publish(ctx context.Context, event models.SentimentEvent) error {
	a.mu.RLock()
	defer a.mu.RUnlock()

	if a.closed {
		return ErrPublisherClosed
	}
	select {
	case a.events <- event:
		return nil
	default:
		return ErrPublishQueueFull
	}
}

func (a *AsyncPublisher) run() {
	defer a.wg.Done()

	for event := range a.events {
		ctx, cancel := context.WithTimeout(context.Background(), a.timeout)
		err := a.next.Publish(ctx, event)
		cancel()

		if err != nil {
			slog.Warn("[Publisher] Failed to deliver sentiment event",
				slog.String("event_id", event.EventID),
				slog.String("error", err.Error()))
		}
	}
}

// Close stops accepting events and waits for the queued ones to be delivered.
func (a *AsyncPublisher) Close() {
	a.mu.Lock()
	if a.closed {
		a.mu.Unlock()
		return
	}
	a.closed = true
	close(a.events)
	a.mu.Unlock()

	a.wg.Wait()
	slog.Info("[Publisher] Event queue drained")
}
