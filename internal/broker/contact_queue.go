package broker

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/nexlearn/nexlearn-backend/internal/config"
	"github.com/nexlearn/nexlearn-backend/internal/model"
	"github.com/redis/go-redis/v9"
)

// ContactQueue is a FIFO of contact messages backed by a Redis list.
type ContactQueue struct {
	rdb *redis.Client
	key string
}

// NewContactQueue creates a ContactQueue on config.WorkerKey.ContactMessagesQueue.
func NewContactQueue(rdb *redis.Client) *ContactQueue {
	return &ContactQueue{rdb: rdb, key: config.WorkerKey.ContactMessagesQueue}
}

// Enqueue appends msg to the tail of the queue.
func (q *ContactQueue) Enqueue(ctx context.Context, msg *model.ContactMessage) error {
	data, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("marshal contact message: %w", err)
	}
	return q.rdb.RPush(ctx, q.key, data).Err()
}

// Pop blocks up to timeout for the head of the queue. It returns nil, nil
// when nothing arrived.
func (q *ContactQueue) Pop(ctx context.Context, timeout time.Duration) (*model.ContactMessage, error) {
	result, err := q.rdb.BLPop(ctx, timeout, q.key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, err
	}
	if len(result) < 2 {
		return nil, nil
	}
	return decodeContact(result[1])
}

// TryPop removes the head of the queue without blocking.
func (q *ContactQueue) TryPop(ctx context.Context) (*model.ContactMessage, error) {
	result, err := q.rdb.LPop(ctx, q.key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, err
	}
	return decodeContact(result)
}

// Len reports the number of waiting messages.
func (q *ContactQueue) Len(ctx context.Context) (int64, error) {
	return q.rdb.LLen(ctx, q.key).Result()
}

func decodeContact(raw string) (*model.ContactMessage, error) {
	var msg model.ContactMessage
	if err := json.Unmarshal([]byte(raw), &msg); err != nil {
		return nil, fmt.Errorf("unmarshal contact message: %w", err)
	}
	return &msg, nil
}
