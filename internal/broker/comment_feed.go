// Package broker carries NexLearn events over Redis: the live comment feed
// (PubSub) and the contact message queue (list).
package broker

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/nexlearn/nexlearn-backend/internal/config"
	"github.com/nexlearn/nexlearn-backend/internal/model"
	"github.com/redis/go-redis/v9"
)

// CommentFeed publishes comment events on a per-course channel.
type CommentFeed struct {
	rdb *redis.Client
}

// NewCommentFeed creates a CommentFeed.
func NewCommentFeed(rdb *redis.Client) *CommentFeed {
	return &CommentFeed{rdb: rdb}
}

// Publish sends ev to everyone watching ev.CourseID.
func (f *CommentFeed) Publish(ctx context.Context, ev *model.CommentEvent) error {
	data, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("marshal comment event: %w", err)
	}
	channel := config.CacheKey.CourseCommentsChannel(ev.CourseID)
	if err := f.rdb.Publish(ctx, channel, data).Err(); err != nil {
		return fmt.Errorf("publish %s: %w", channel, err)
	}
	return nil
}

// Subscribe opens a subscription on the course channel. The caller closes it.
func (f *CommentFeed) Subscribe(ctx context.Context, courseID uuid.UUID) *redis.PubSub {
	return f.rdb.Subscribe(ctx, config.CacheKey.CourseCommentsChannel(courseID))
}
