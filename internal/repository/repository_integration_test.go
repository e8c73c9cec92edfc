//go:build integration

package repository

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/nexlearn/nexlearn-backend/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

func setupDB(t *testing.T) *pgxpool.Pool {
	t.Helper()
	ctx := context.Background()

	pgContainer, err := postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("nexlearn"),
		postgres.WithUsername("nexlearn"),
		postgres.WithPassword("nexlearn"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second)),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = pgContainer.Terminate(ctx) })

	connStr, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	m, err := migrate.New("file://../../migrations", connStr)
	require.NoError(t, err)
	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		t.Fatalf("migrate up: %v", err)
	}
	_, _ = m.Close()

	pool, err := pgxpool.New(ctx, connStr)
	require.NoError(t, err)
	t.Cleanup(pool.Close)
	return pool
}

func createUser(t *testing.T, users *UserRepository, email string) *model.User {
	t.Helper()
	u := &model.User{Name: "Ana", Email: email, PasswordHash: "x", Role: model.RoleStudent}
	require.NoError(t, users.Create(context.Background(), u))
	return u
}

func createCourse(t *testing.T, courses *CourseRepository, owner uuid.UUID, title string) *model.Course {
	t.Helper()
	c := &model.Course{OwnerID: owner, Title: title, Description: "d", Image: model.DefaultCourseImage}
	require.NoError(t, courses.Create(context.Background(), c))
	return c
}

func TestRepositories(t *testing.T) {
	pool := setupDB(t)
	users := NewUserRepository(pool)
	courses := NewCourseRepository(pool)
	comments := NewCommentRepository(pool)
	ctx := context.Background()

	t.Run("duplicate email", func(t *testing.T) {
		createUser(t, users, "dup@example.com")
		before, err := users.Count(ctx)
		require.NoError(t, err)

		err = users.Create(ctx, &model.User{Name: "B", Email: "dup@example.com", PasswordHash: "x", Role: model.RoleStudent})
		assert.ErrorIs(t, err, ErrDuplicateKey)

		after, err := users.Count(ctx)
		require.NoError(t, err)
		assert.Equal(t, before, after)
	})

	t.Run("comment on a missing course", func(t *testing.T) {
		author := createUser(t, users, "orphan@example.com")
		err := comments.Create(ctx, &model.Comment{CourseID: uuid.New(), UserID: author.ID, Text: "lost"})
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("missing rows and malformed ids", func(t *testing.T) {
		_, err := users.GetByID(ctx, uuid.New())
		assert.ErrorIs(t, err, ErrNotFound)
		_, err = courses.GetByID(ctx, uuid.New())
		assert.ErrorIs(t, err, ErrNotFound)
		assert.ErrorIs(t, comments.Delete(ctx, uuid.New()), ErrNotFound)
		assert.ErrorIs(t, users.SetRole(ctx, uuid.New(), model.RoleAdmin), ErrNotFound)
	})

	t.Run("course chapters round trip", func(t *testing.T) {
		owner := createUser(t, users, "owner@example.com")
		c := &model.Course{
			OwnerID: owner.ID, Title: "Go", Description: "d", Image: model.DefaultCourseImage, Price: 10,
			Chapters: []model.Chapter{{Title: "Intro", VideoURL: "https://v/1"}},
		}
		require.NoError(t, courses.Create(ctx, c))

		got, err := courses.GetByID(ctx, c.ID)
		require.NoError(t, err)
		assert.Equal(t, c.Chapters, got.Chapters)
		assert.Equal(t, 10.0, got.Price)

		got.Chapters = nil
		require.NoError(t, courses.Update(ctx, got))
		got, err = courses.GetByID(ctx, c.ID)
		require.NoError(t, err)
		assert.NotNil(t, got.Chapters)
		assert.Empty(t, got.Chapters)
	})

	t.Run("concurrent enrollment appends once", func(t *testing.T) {
		owner := createUser(t, users, "racer-owner@example.com")
		student := createUser(t, users, "racer@example.com")
		c := createCourse(t, courses, owner.ID, "Race")

		var wg sync.WaitGroup
		var mu sync.Mutex
		added := 0
		for i := 0; i < 16; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				_, ok, err := users.AddEnrollment(ctx, student.ID, c.ID)
				assert.NoError(t, err)
				if ok {
					mu.Lock()
					added++
					mu.Unlock()
				}
			}()
		}
		wg.Wait()

		assert.Equal(t, 1, added)
		u, err := users.GetByID(ctx, student.ID)
		require.NoError(t, err)
		assert.Equal(t, []uuid.UUID{c.ID}, u.EnrolledCourses)
	})

	t.Run("list by ids keeps enrollment order", func(t *testing.T) {
		owner := createUser(t, users, "order@example.com")
		a := createCourse(t, courses, owner.ID, "A")
		b := createCourse(t, courses, owner.ID, "B")

		got, err := courses.ListByIDs(ctx, []uuid.UUID{b.ID, uuid.New(), a.ID})
		require.NoError(t, err)
		require.Len(t, got, 2)
		assert.Equal(t, "B", got[0].Title)
		assert.Equal(t, "A", got[1].Title)
	})

	t.Run("course delete cascades", func(t *testing.T) {
		owner := createUser(t, users, "cascade@example.com")
		student := createUser(t, users, "leaver@example.com")
		c := createCourse(t, courses, owner.ID, "Doomed")
		keep := createCourse(t, courses, owner.ID, "Kept")

		_, _, err := users.AddEnrollment(ctx, student.ID, c.ID)
		require.NoError(t, err)
		_, _, err = users.AddEnrollment(ctx, student.ID, keep.ID)
		require.NoError(t, err)

		cm := &model.Comment{CourseID: c.ID, UserID: student.ID, Text: "hi"}
		require.NoError(t, comments.Create(ctx, cm))
		view, err := comments.GetView(ctx, cm.ID)
		require.NoError(t, err)
		assert.Equal(t, "Ana", view.User.Name)

		require.NoError(t, courses.Delete(ctx, c.ID))
		assert.ErrorIs(t, courses.Delete(ctx, c.ID), ErrNotFound)

		_, err = comments.GetByID(ctx, cm.ID)
		assert.ErrorIs(t, err, ErrNotFound)
		u, err := users.GetByID(ctx, student.ID)
		require.NoError(t, err)
		assert.Equal(t, []uuid.UUID{keep.ID}, u.EnrolledCourses)
	})

	t.Run("set role and update name", func(t *testing.T) {
		u := createUser(t, users, "promote@example.com")
		require.NoError(t, users.SetRole(ctx, u.ID, model.RoleAdmin))

		updated, err := users.UpdateName(ctx, u.ID, "Budi")
		require.NoError(t, err)
		assert.Equal(t, "Budi", updated.Name)
		assert.Equal(t, model.RoleAdmin, updated.Role)
	})
}
