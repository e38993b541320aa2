package queue

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"governanceevents/internal/domain"
)

type fakePublisher struct {
	body []byte
	err  error
}

func (f *fakePublisher) Publish(_ context.Context, body []byte) error {
	f.body = body
	return f.err
}

func TestEmailPublisher(t *testing.T) {
	pub := &fakePublisher{}
	svc := NewEmailPublisher(pub)
	data := &domain.ConfirmationEmailData{To: "jane@example.com", ConfirmationRef: "CGC-AB12CD34"}

	require.NoError(t, svc.SendRegistrationConfirmation(context.Background(), data))
	var got domain.ConfirmationEmailData
	require.NoError(t, json.Unmarshal(pub.body, &got))
	assert.Equal(t, *data, got)

	pub.err = errors.New("channel closed")
	assert.Error(t, svc.SendRegistrationConfirmation(context.Background(), data))
	assert.Error(t, svc.SendRegistrationConfirmation(context.Background(), nil))
}

type ackRecord struct {
	ack     bool
	requeue bool
}

type fakeAcknowledger struct {
	mu   sync.Mutex
	acks []ackRecord
}

func (f *fakeAcknowledger) Ack(uint64, bool) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.acks = append(f.acks, ackRecord{ack: true})
	return nil
}

func (f *fakeAcknowledger) Nack(_ uint64, _ bool, requeue bool) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.acks = append(f.acks, ackRecord{requeue: requeue})
	return nil
}

func (f *fakeAcknowledger) Reject(_ uint64, requeue bool) error {
	return f.Nack(0, false, requeue)
}

type fakeSender struct {
	mu   sync.Mutex
	sent []string
	err  error
}

func (f *fakeSender) SendRegistrationConfirmation(_ context.Context, data *domain.ConfirmationEmailData) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, data.ConfirmationRef)
	return nil
}

func TestWorker_Handle(t *testing.T) {
	body, err := json.Marshal(&domain.ConfirmationEmailData{ConfirmationRef: "CGC-AB12CD34"})
	require.NoError(t, err)

	tests := []struct {
		name        string
		body        []byte
		redelivered bool
		sendErr     error
		want        ackRecord
	}{
		{name: "sent is acked", body: body, want: ackRecord{ack: true}},
		{name: "first failure requeues", body: body, sendErr: errors.New("smtp down"), want: ackRecord{requeue: true}},
		{name: "second failure drops", body: body, redelivered: true, sendErr: errors.New("smtp down"), want: ackRecord{}},
		{name: "undecodable drops", body: []byte("{"), want: ackRecord{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			acker := &fakeAcknowledger{}
			w := NewWorker(nil, &fakeSender{err: tt.sendErr}, slog.New(slog.NewTextHandler(io.Discard, nil)))
			w.handle(context.Background(), amqp.Delivery{Acknowledger: acker, Body: tt.body, Redelivered: tt.redelivered})
			require.Len(t, acker.acks, 1)
			assert.Equal(t, tt.want, acker.acks[0])
		})
	}
}

func TestWorker_StartStop(t *testing.T) {
	deliveries := make(chan amqp.Delivery, 1)
	acker := &fakeAcknowledger{}
	sender := &fakeSender{}
	body, err := json.Marshal(&domain.ConfirmationEmailData{ConfirmationRef: "CGC-AB12CD34"})
	require.NoError(t, err)

	w := NewWorker(deliveries, sender, slog.New(slog.NewTextHandler(io.Discard, nil)))
	w.Start(context.Background())
	deliveries <- amqp.Delivery{Acknowledger: acker, Body: body}

	assert.Eventually(t, func() bool {
		sender.mu.Lock()
		defer sender.mu.Unlock()
		return len(sender.sent) == 1
	}, time.Second, 10*time.Millisecond)
	w.Stop()
}
