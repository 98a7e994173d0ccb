package mailer

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Sender is the sending capability the outbox drains into.
type Sender interface {
	Send(email Email) error
}

// Task is a queued email delivery.
type Task struct {
	ID    string
	Email Email
}

var (
	ErrOutboxNotReady = errors.New("mail sender is not configured")
	ErrOutboxFull     = errors.New("mail outbox is full")
	ErrOutboxClosed   = errors.New("mail outbox is closed")
)

// Outbox queues emails for asynchronous delivery so HTTP handlers never
// block on SMTP. Deliveries are retried a bounded number of times; a
// delivery that exhausts its retries is logged and dropped.
type Outbox struct {
	sender      Sender
	logger      *zerolog.Logger
	tasks       chan Task
	maxAttempts int
	backoff     time.Duration

	mu     sync.Mutex
	closed bool
	wg     sync.WaitGroup
}

// NewOutbox creates an outbox draining into sender. A nil sender produces
// an outbox that is not ready; Enqueue reports ErrOutboxNotReady so the
// caller can surface a configuration error instead of silently dropping mail.
func NewOutbox(sender Sender, logger *zerolog.Logger) *Outbox {
	return &Outbox{
		sender:      sender,
		logger:      logger,
		tasks:       make(chan Task, 256),
		maxAttempts: 3,
		backoff:     2 * time.Second,
	}
}

// Ready reports whether the outbox has a configured sender.
func (o *Outbox) Ready() bool {
	return o.sender != nil
}

// Start launches the delivery worker. It returns immediately.
func (o *Outbox) Start(ctx context.Context) {
	o.wg.Add(1)
	go func() {
		defer o.wg.Done()
		for task := range o.tasks {
			o.deliver(ctx, task)
		}
	}()
}

// Enqueue queues an email for background delivery.
func (o *Outbox) Enqueue(email Email) (string, error) {
	if !o.Ready() {
		return "", ErrOutboxNotReady
	}

	o.mu.Lock()
	defer o.mu.Unlock()
	if o.closed {
		return "", ErrOutboxClosed
	}

	task := Task{ID: uuid.NewString(), Email: email}
	select {
	case o.tasks <- task:
		return task.ID, nil
	default:
		return "", ErrOutboxFull
	}
}

// Close stops accepting new tasks and waits for queued deliveries to
// drain, up to the given timeout.
func (o *Outbox) Close(timeout time.Duration) {
	o.mu.Lock()
	if o.closed {
		o.mu.Unlock()
		return
	}
	o.closed = true
	close(o.tasks)
	o.mu.Unlock()

	done := make(chan struct{})
	go func() {
		o.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(timeout):
		o.logger.Warn().Msg("mail outbox close timed out with deliveries pending")
	}
}

func (o *Outbox) deliver(ctx context.Context, task Task) {
	var err error
	for attempt := 1; attempt <= o.maxAttempts; attempt++ {
		if err = o.sender.Send(task.Email); err == nil {
			o.logger.Info().
				Str("task_id", task.ID).
				Int("attempt", attempt).
				Msg("email sent")
			return
		}

		o.logger.Error().
			Err(err).
			Str("task_id", task.ID).
			Int("attempt", attempt).
			Msg("email delivery failed")

		if attempt == o.maxAttempts {
			break
		}

		select {
		case <-ctx.Done():
			return
		case <-time.After(o.backoff * time.Duration(attempt)):
		}
	}

	o.logger.Error().
		Err(err).
		Str("task_id", task.ID).
		Msg("email dropped after exhausting retries")
}
