package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/nexlearn/nexlearn-backend/internal/model"
)

// ContactService accepts contact-form submissions and queues them for the
// notification worker.
type ContactService struct {
	queue ContactQueue
}

// NewContactService creates a new ContactService.
func NewContactService(queue ContactQueue) *ContactService {
	return &ContactService{queue: queue}
}

// Submit queues msg for email delivery.
func (s *ContactService) Submit(ctx context.Context, msg *model.ContactMessage) error {
	if s.queue == nil {
		return ErrContactUnavailable
	}

	msg.Name = strings.TrimSpace(msg.Name)
	msg.Email = strings.TrimSpace(msg.Email)
	msg.ReceivedAt = time.Now().UTC()

	if err := s.queue.Enqueue(ctx, msg); err != nil {
		return fmt.Errorf("enqueue contact message: %w", err)
	}
	return nil
}
