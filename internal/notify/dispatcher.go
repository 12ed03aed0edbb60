package notify

import (
	"context"
	"sync"
	"time"

	"log/slog"

	"github.com/wijdennerhouma/App-JobConnect/internal/push"
)

// Delivery is one queued push send.
type Delivery struct {
	Token string
	Title string
	Body  string
	Data  map[string]string
}

const maxAttempts = 3

// Dispatcher runs push deliveries on background workers. Deliveries are
// retried with backoff and dropped after maxAttempts; nothing is ever
// reported back to the enqueuer.
type Dispatcher struct {
	sender      push.Sender
	queue       chan Delivery
	logger      *slog.Logger
	workerCount int
	stop        chan struct{}
	wg          sync.WaitGroup
}

func NewDispatcher(sender push.Sender, logger *slog.Logger, workerCount int) *Dispatcher {
	if workerCount <= 0 {
		workerCount = 2
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Dispatcher{
		sender:      sender,
		queue:       make(chan Delivery, 256),
		logger:      logger,
		workerCount: workerCount,
		stop:        make(chan struct{}),
	}
}

// Start launches the worker goroutines
func (d *Dispatcher) Start(ctx context.Context) {
	for i := 0; i < d.workerCount; i++ {
		d.wg.Add(1)
		go d.worker(ctx, i)
	}
}

// Stop signals workers to stop and waits for them
func (d *Dispatcher) Stop() {
	close(d.stop)
	d.wg.Wait()
}

// Enqueue hands a delivery to the workers. A full queue drops the
// delivery; the notification record is already persisted regardless.
func (d *Dispatcher) Enqueue(del Delivery) {
	select {
	case d.queue <- del:
	case <-d.stop:
		d.logger.Info("dispatcher stopped, dropping delivery")
	default:
		d.logger.Error("delivery queue full, dropping delivery")
	}
}

func (d *Dispatcher) worker(ctx context.Context, id int) {
	defer d.wg.Done()
	for {
		select {
		case <-d.stop:
			d.logger.Info("push worker stopping", "id", id)
			return
		case <-ctx.Done():
			d.logger.Info("context canceled, push worker exiting", "id", id)
			return
		case del := <-d.queue:
			d.deliver(ctx, del)
		}
	}
}

func (d *Dispatcher) deliver(ctx context.Context, del Delivery) {
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		err := d.sender.Send(ctx, del.Token, del.Title, del.Body, del.Data)
		if err == nil {
			return
		}
		if attempt == maxAttempts {
			d.logger.Error("push delivery dropped", "err", err, "attempts", attempt)
			return
		}

		select {
		case <-time.After(backoffDuration(attempt)):
		case <-d.stop:
			return
		case <-ctx.Done():
			return
		}
	}
}

// backoffDuration returns exponential backoff duration for attempt n
func backoffDuration(attempt int) time.Duration {
	if attempt <= 0 {
		return time.Second
	}
	d := time.Duration(1<<uint(attempt)) * time.Second
	max := 5 * time.Minute
	if d > max {
		return max
	}
	return d
}
