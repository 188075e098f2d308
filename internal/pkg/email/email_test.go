package email

import (
	"context"
	"errors"
	"net/smtp"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/dayflow-hr/dayflow-backend-go/internal/config"
	"github.com/dayflow-hr/dayflow-backend-go/internal/pkg/queue"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService(t *testing.T, cfg config.SMTPConfig) *emailServiceImpl {
	t.Helper()
	svc, err := NewEmailService(cfg)
	require.NoError(t, err)
	impl := svc.(*emailServiceImpl)
	impl.backoff = time.Millisecond
	return impl
}

var sample = VerificationEmail{
	To:               "asha@dayflow.test",
	Name:             "Asha",
	EmployeeID:       "EMP001",
	VerificationLink: "http://localhost:8080/api/v1/auth/verify/abc",
	ExpiresAt:        "2024-03-05 10:00",
}

func TestSendVerification_RendersTemplate(t *testing.T) {
	svc := newTestService(t, config.SMTPConfig{Host: "smtp.test", Port: 25, From: "noreply@dayflow.test", FromName: "Dayflow"})

	var sent []byte
	svc.send = func(addr string, _ smtp.Auth, from string, to []string, msg []byte) error {
		assert.Equal(t, "smtp.test:25", addr)
		assert.Equal(t, "noreply@dayflow.test", from)
		assert.Equal(t, []string{"asha@dayflow.test"}, to)
		sent = msg
		return nil
	}

	require.NoError(t, svc.SendVerification(sample))
	body := string(sent)
	assert.Contains(t, body, "Subject: Verify your Dayflow account")
	assert.Contains(t, body, "EMP001")
	assert.Contains(t, body, "http://localhost:8080/api/v1/auth/verify/abc")
}

func TestSendVerification_RetriesThenFails(t *testing.T) {
	svc := newTestService(t, config.SMTPConfig{Host: "smtp.test", Port: 25})

	attempts := 0
	svc.send = func(string, smtp.Auth, string, []string, []byte) error {
		attempts++
		return errors.New("connection refused")
	}

	err := svc.SendVerification(sample)
	require.Error(t, err)
	assert.Equal(t, maxRetries, attempts)
	assert.True(t, strings.Contains(err.Error(), "connection refused"))
}

func TestSendVerification_SkipsWithoutHost(t *testing.T) {
	svc := newTestService(t, config.SMTPConfig{})
	svc.send = func(string, smtp.Auth, string, []string, []byte) error {
		t.Fatal("send must not be called")
		return nil
	}
	assert.NoError(t, svc.SendVerification(sample))
}

type recordingService struct {
	mu   sync.Mutex
	sent []VerificationEmail
	done chan struct{}
}

func (r *recordingService) SendVerification(msg VerificationEmail) error {
	r.mu.Lock()
	r.sent = append(r.sent, msg)
	r.mu.Unlock()
	r.done <- struct{}{}
	return nil
}

func TestWorker_DeliversQueuedVerification(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	q := queue.NewInMemory(4)
	rec := &recordingService{done: make(chan struct{}, 1)}
	w := NewWorker(q, rec)

	go func() { _ = w.Run(ctx) }()
	require.NoError(t, EnqueueVerification(ctx, q, sample))

	select {
	case <-rec.done:
	case <-time.After(2 * time.Second):
		t.Fatal("verification email not delivered")
	}

	rec.mu.Lock()
	defer rec.mu.Unlock()
	require.Len(t, rec.sent, 1)
	assert.Equal(t, sample, rec.sent[0])
}
