package worker

import (
	"context"
	"time"

	"github.com/nexlearn/nexlearn-backend/internal/model"
	"github.com/rs/zerolog"
)

// ContactSource is the queue the worker consumes.
type ContactSource interface {
	// Pop blocks up to timeout; it returns nil, nil when nothing arrived.
	Pop(ctx context.Context, timeout time.Duration) (*model.ContactMessage, error)
	// TryPop returns nil, nil on an empty queue.
	TryPop(ctx context.Context) (*model.ContactMessage, error)
}

// ContactSender delivers one contact message.
type ContactSender interface {
	SendContact(ctx context.Context, msg *model.ContactMessage) error
}

// NotificationWorker consumes contact_messages_queue and relays each message by email.
// A failed delivery is logged and dropped.
type NotificationWorker struct {
	queue        ContactSource
	sender       ContactSender
	pollTimeout  time.Duration
	drainTimeout time.Duration
	log          zerolog.Logger
}

// NewNotificationWorker creates a new NotificationWorker.
func NewNotificationWorker(queue ContactSource, sender ContactSender, drainTimeout time.Duration, log zerolog.Logger) *NotificationWorker {
	return &NotificationWorker{
		queue:        queue,
		sender:       sender,
		pollTimeout:  time.Second,
		drainTimeout: drainTimeout,
		log:          log.With().Str("component", "notification_worker").Logger(),
	}
}

// Start begins the worker loop and returns once ctx is cancelled and the
// queue has been drained. Call in a goroutine.
func (w *NotificationWorker) Start(ctx context.Context) {
	w.log.Info().Msg("Worker started")

	for {
		select {
		case <-ctx.Done():
			w.log.Info().Msg("Worker stopping...")
			drainCtx, cancel := context.WithTimeout(context.Background(), w.drainTimeout)
			w.drain(drainCtx)
			cancel()
			w.log.Info().Msg("Worker stopped")
			return
		default:
			w.processNext(ctx)
		}
	}
}

func (w *NotificationWorker) processNext(ctx context.Context) {
	msg, err := w.queue.Pop(ctx, w.pollTimeout)
	if err != nil {
		if ctx.Err() == nil {
			w.log.Error().Err(err).Msg("BLPop error")
			// Back off so a dead Redis does not spin the loop.
			select {
			case <-ctx.Done():
			case <-time.After(w.pollTimeout):
			}
		}
		return
	}
	if msg == nil {
		return
	}
	w.deliver(ctx, msg)
}

func (w *NotificationWorker) deliver(ctx context.Context, msg *model.ContactMessage) bool {
	if err := w.sender.SendContact(ctx, msg); err != nil {
		w.log.Error().Err(err).
			Str("from_email", msg.Email).
			Time("received_at", msg.ReceivedAt).
			Msg("Contact delivery failed, message dropped")
		return false
	}
	w.log.Info().Str("from_email", msg.Email).Msg("Contact message delivered")
	return true
}

// drain relays whatever is still queued, until the queue is empty or ctx expires.
func (w *NotificationWorker) drain(ctx context.Context) {
	drained := 0
	for ctx.Err() == nil {
		msg, err := w.queue.TryPop(ctx)
		if err != nil {
			w.log.Error().Err(err).Msg("Drain pop error")
			break
		}
		if msg == nil {
			break
		}
		if w.deliver(ctx, msg) {
			drained++
		}
	}

	if drained > 0 {
		w.log.Info().Int("count", drained).Msg("Drained remaining items")
	}
}
