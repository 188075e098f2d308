package email

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/dayflow-hr/dayflow-backend-go/internal/pkg/queue"
)

// MessageTypeVerification is the queue message type carrying a VerificationEmail.
const MessageTypeVerification = "email.verification"

// Worker drains mail jobs from a queue and sends them.
type Worker struct {
	queue   queue.Queue
	service EmailService
}

func NewWorker(q queue.Queue, service EmailService) *Worker {
	return &Worker{queue: q, service: service}
}

// EnqueueVerification publishes a verification mail job.
func EnqueueVerification(ctx context.Context, q queue.Queue, msg VerificationEmail) error {
	m, err := queue.NewMessage(MessageTypeVerification, msg)
	if err != nil {
		return err
	}
	return q.Publish(ctx, m)
}

// Run blocks until ctx is cancelled. Failed sends are logged and dropped.
func (w *Worker) Run(ctx context.Context) error {
	messages, err := w.queue.Consume(ctx)
	if err != nil {
		return err
	}

	slog.Info("Mail worker started")
	for msg := range messages {
		w.handle(msg)
	}
	slog.Info("Mail worker stopped")
	return nil
}

func (w *Worker) handle(msg queue.Message) {
	switch msg.Type {
	case MessageTypeVerification:
		var payload VerificationEmail
		if err := json.Unmarshal(msg.Body, &payload); err != nil {
			slog.Error("Invalid mail job payload", "type", msg.Type, "error", err)
			return
		}
		if err := w.service.SendVerification(payload); err != nil {
			slog.Error("Failed to deliver verification email", "to", payload.To, "error", err)
		}
	default:
		slog.Warn("Unknown mail job type", "type", msg.Type)
	}
}
