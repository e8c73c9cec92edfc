//go:build integration

package cache

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/nexlearn/nexlearn-backend/internal/config"
	"github.com/nexlearn/nexlearn-backend/internal/model"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

func setupRedis(t *testing.T) *redis.Client {
	t.Helper()
	ctx := context.Background()

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "redis:7-alpine",
			ExposedPorts: []string{"6379/tcp"},
			WaitingFor:   wait.ForLog("Ready to accept connections").WithStartupTimeout(60 * time.Second),
		},
		Started: true,
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = container.Terminate(ctx) })

	endpoint, err := container.Endpoint(ctx, "")
	require.NoError(t, err)
	rdb := redis.NewClient(&redis.Options{Addr: endpoint})
	t.Cleanup(func() { _ = rdb.Close() })
	return rdb
}

func TestCourseCacheRoundTripAndInvalidate(t *testing.T) {
	rdb := setupRedis(t)
	c := NewCourseCache(rdb, time.Minute)
	ctx := context.Background()

	_, ok, err := c.GetCourseList(ctx)
	require.NoError(t, err)
	assert.False(t, ok)

	gen, err := c.CourseListGeneration(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(0), gen)

	courses := []model.Course{{ID: uuid.New(), Title: "Go", Chapters: []model.Chapter{}}}
	stored, err := c.SetCourseList(ctx, gen, courses)
	require.NoError(t, err)
	assert.True(t, stored)

	ttl, err := rdb.TTL(ctx, config.CacheKey.CourseListKey()).Result()
	require.NoError(t, err)
	assert.Greater(t, ttl, 50*time.Second)

	got, ok, err := c.GetCourseList(ctx)
	require.NoError(t, err)
	require.True(t, ok)
	require.Len(t, got, 1)
	assert.Equal(t, "Go", got[0].Title)

	require.NoError(t, c.InvalidateCourseList(ctx))
	_, ok, err = c.GetCourseList(ctx)
	require.NoError(t, err)
	assert.False(t, ok)

	next, err := c.CourseListGeneration(ctx)
	require.NoError(t, err)
	assert.Equal(t, gen+1, next)
}

func TestCourseCacheRejectsFillFromOlderGeneration(t *testing.T) {
	rdb := setupRedis(t)
	c := NewCourseCache(rdb, time.Minute)
	ctx := context.Background()

	gen, err := c.CourseListGeneration(ctx)
	require.NoError(t, err)

	// A write lands after the reader took its generation.
	require.NoError(t, c.InvalidateCourseList(ctx))

	stored, err := c.SetCourseList(ctx, gen, []model.Course{{ID: uuid.New(), Title: "Stale"}})
	require.NoError(t, err)
	assert.False(t, stored)

	_, ok, err := c.GetCourseList(ctx)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestCourseCacheStoresEmptyCatalog(t *testing.T) {
	rdb := setupRedis(t)
	c := NewCourseCache(rdb, time.Minute)
	ctx := context.Background()

	stored, err := c.SetCourseList(ctx, 0, nil)
	require.NoError(t, err)
	require.True(t, stored)
	got, ok, err := c.GetCourseList(ctx)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Empty(t, got)
}
