package queue

import (
	"context"
	"encoding/json"
	"log/slog"

	amqp "github.com/rabbitmq/amqp091-go"
	"governanceevents/internal/domain"
)

// Worker sends queued confirmation emails. A failed send is requeued once; a message that fails
// again, or cannot be decoded, is dropped and logged.
type Worker struct {
	deliveries <-chan amqp.Delivery
	sender     domain.EmailService
	logger     *slog.Logger
	done       chan struct{}
	cancel     context.CancelFunc
}

// NewWorker returns a Worker reading deliveries and sending through sender.
func NewWorker(deliveries <-chan amqp.Delivery, sender domain.EmailService, logger *slog.Logger) *Worker {
	return &Worker{
		deliveries: deliveries,
		sender:     sender,
		logger:     logger,
		done:       make(chan struct{}),
	}
}

// Start processes deliveries in a goroutine until ctx is cancelled, Stop is called, or the
// delivery channel closes.
func (w *Worker) Start(ctx context.Context) {
	cctx, cancel := context.WithCancel(ctx)
	w.cancel = cancel
	w.logger.Info("confirmation email worker started")

	go func() {
		defer close(w.done)
		for {
			select {
			case <-cctx.Done():
				return
			case d, ok := <-w.deliveries:
				if !ok {
					return
				}
				w.handle(cctx, d)
			}
		}
	}()
}

// Stop cancels processing and waits for the in-flight message.
func (w *Worker) Stop() {
	if w.cancel != nil {
		w.cancel()
	}
	<-w.done
	w.logger.Info("confirmation email worker stopped")
}

func (w *Worker) handle(ctx context.Context, d amqp.Delivery) {
	var data domain.ConfirmationEmailData
	if err := json.Unmarshal(d.Body, &data); err != nil {
		w.logger.ErrorContext(ctx, "dropping undecodable confirmation message", "err", err)
		_ = d.Nack(false, false)
		return
	}
	if err := w.sender.SendRegistrationConfirmation(ctx, &data); err != nil {
		requeue := !d.Redelivered
		w.logger.WarnContext(ctx, "confirmation email failed", "confirmation_ref", data.ConfirmationRef, "requeue", requeue, "err", err)
		_ = d.Nack(false, requeue)
		return
	}
	_ = d.Ack(false)
}
