// Package cache keeps read-mostly API listings in Redis.
package cache

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

// errStaleGeneration aborts a fill whose generation was superseded.
var errStaleGeneration = errors.New("course list generation changed")

// CourseCache stores the public course catalog as one JSON value, guarded by
// a generation counter so a slow reader cannot overwrite a newer invalidation.
type CourseCache struct {
	rdb *redis.Client
	ttl time.Duration
}

// NewCourseCache creates a CourseCache whose entries expire after ttl.
func NewCourseCache(rdb *redis.Client, ttl time.Duration) *CourseCache {
	return &CourseCache{rdb: rdb, ttl: ttl}
}

// GetCourseList returns the cached catalog. ok is false on a miss.
func (c *CourseCache) GetCourseList(ctx context.Context) ([]model.Course, bool, error) {
	data, err := c.rdb.Get(ctx, config.CacheKey.CourseListKey()).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("get course list: %w", err)
	}

	var courses []model.Course
	if err := json.Unmarshal(data, &courses); err != nil {
		return nil, false, fmt.Errorf("unmarshal course list: %w", err)
	}
	return courses, true, nil
}

// CourseListGeneration returns the current catalog generation. A missing
// counter is generation 0.
func (c *CourseCache) CourseListGeneration(ctx context.Context) (int64, error) {
	return readGeneration(ctx, c.rdb)
}

// getter is satisfied by both *redis.Client and *redis.Tx.
type getter interface {
	Get(ctx context.Context, key string) *redis.StringCmd
}

func readGeneration(ctx context.Context, cmd getter) (int64, error) {
	gen, err := cmd.Get(ctx, config.CacheKey.CourseListGenerationKey()).Int64()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return 0, nil
		}
		return 0, fmt.Errorf("get course list generation: %w", err)
	}
	return gen, nil
}

// SetCourseList stores the catalog read under generation gen. It stores
// nothing and reports false when an invalidation happened since gen was read.
func (c *CourseCache) SetCourseList(ctx context.Context, gen int64, courses []model.Course) (bool, error) {
	if courses == nil {
		courses = []model.Course{}
	}
	data, err := json.Marshal(courses)
	if err != nil {
		return false, fmt.Errorf("marshal course list: %w", err)
	}

	genKey := config.CacheKey.CourseListGenerationKey()
	err = c.rdb.Watch(ctx, func(tx *redis.Tx) error {
		current, err := readGeneration(ctx, tx)
		if err != nil {
			return err
		}
		if current != gen {
			return errStaleGeneration
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, config.CacheKey.CourseListKey(), data, c.ttl)
			return nil
		})
		return err
	}, genKey)

	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, errStaleGeneration), errors.Is(err, redis.TxFailedErr):
		return false, nil
	default:
		return false, fmt.Errorf("set course list: %w", err)
	}
}

// InvalidateCourseList bumps the generation and drops the cached catalog in
// one transaction. Called after every course write.
func (c *CourseCache) InvalidateCourseList(ctx context.Context) error {
	_, err := c.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Incr(ctx, config.CacheKey.CourseListGenerationKey())
		pipe.Del(ctx, config.CacheKey.CourseListKey())
		return nil
	})
	return err
}
