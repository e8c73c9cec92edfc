package worker

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/nexlearn/nexlearn-backend/internal/model"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memQueue struct {
	mu   sync.Mutex
	msgs []*model.ContactMessage
	pops int
}

func (q *memQueue) push(msgs ...*model.ContactMessage) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.msgs = append(q.msgs, msgs...)
}

func (q *memQueue) TryPop(context.Context) (*model.ContactMessage, error) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if len(q.msgs) == 0 {
		return nil, nil
	}
	msg := q.msgs[0]
	q.msgs = q.msgs[1:]
	return msg, nil
}

func (q *memQueue) Pop(ctx context.Context, timeout time.Duration) (*model.ContactMessage, error) {
	q.mu.Lock()
	q.pops++
	q.mu.Unlock()

	msg, _ := q.TryPop(ctx)
	if msg != nil {
		return msg, nil
	}
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-time.After(timeout):
		return nil, nil
	}
}

type recordingSender struct {
	mu   sync.Mutex
	sent []string
	fail map[string]bool
}

func (s *recordingSender) SendContact(_ context.Context, msg *model.ContactMessage) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.fail[msg.Email] {
		return errors.New("smtp down")
	}
	s.sent = append(s.sent, msg.Email)
	return nil
}

func (s *recordingSender) emails() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.sent...)
}

func newTestWorker(q *memQueue, s *recordingSender) *NotificationWorker {
	w := NewNotificationWorker(q, s, time.Second, zerolog.Nop())
	w.pollTimeout = 10 * time.Millisecond
	return w
}

func TestNotificationWorkerDeliversInOrder(t *testing.T) {
	q := &memQueue{}
	s := &recordingSender{}
	q.push(&model.ContactMessage{Email: "a@x.com"}, &model.ContactMessage{Email: "b@x.com"})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		newTestWorker(q, s).Start(ctx)
		close(done)
	}()

	require.Eventually(t, func() bool { return len(s.emails()) == 2 }, time.Second, 5*time.Millisecond)
	cancel()
	<-done

	assert.Equal(t, []string{"a@x.com", "b@x.com"}, s.emails())
}

func TestNotificationWorkerDropsFailedMessages(t *testing.T) {
	q := &memQueue{}
	s := &recordingSender{fail: map[string]bool{"bad@x.com": true}}
	q.push(&model.ContactMessage{Email: "bad@x.com"}, &model.ContactMessage{Email: "good@x.com"})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		newTestWorker(q, s).Start(ctx)
		close(done)
	}()

	require.Eventually(t, func() bool { return len(s.emails()) == 1 }, time.Second, 5*time.Millisecond)
	cancel()
	<-done

	assert.Equal(t, []string{"good@x.com"}, s.emails())
	msg, _ := q.TryPop(context.Background())
	assert.Nil(t, msg, "failed message is not requeued")
}

func TestNotificationWorkerDrainsOnShutdown(t *testing.T) {
	q := &memQueue{}
	s := &recordingSender{}
	w := newTestWorker(q, s)

	q.push(&model.ContactMessage{Email: "late1@x.com"}, &model.ContactMessage{Email: "late2@x.com"})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	w.Start(ctx)

	assert.Equal(t, []string{"late1@x.com", "late2@x.com"}, s.emails())
	assert.Equal(t, 0, q.pops, "a cancelled worker goes straight to draining")
}
