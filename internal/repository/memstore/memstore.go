// Package memstore is an in-memory implementation of the NexLearn stores.
// It keeps the same contract as the PostgreSQL repositories (error values,
// ordering, atomic add-to-set enrollment, cascading course delete) and backs
// the service and router tests.
package memstore

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/nexlearn/nexlearn-backend/internal/model"
	"github.com/nexlearn/nexlearn-backend/internal/repository"
)

type userRow struct {
	user model.User
	seq  int64
}

type courseRow struct {
	course model.Course
	seq    int64
}

type commentRow struct {
	comment model.Comment
	seq     int64
}

// DB holds all tables behind one mutex.
type DB struct {
	mu       sync.Mutex
	seq      int64
	users    map[uuid.UUID]*userRow
	emails   map[string]uuid.UUID
	courses  map[uuid.UUID]*courseRow
	comments map[uuid.UUID]*commentRow
}

// New returns an empty database.
func New() *DB {
	return &DB{
		users:    make(map[uuid.UUID]*userRow),
		emails:   make(map[string]uuid.UUID),
		courses:  make(map[uuid.UUID]*courseRow),
		comments: make(map[uuid.UUID]*commentRow),
	}
}

// Users returns the user store view of the database.
func (db *DB) Users() *UserStore { return &UserStore{db: db} }

// Courses returns the course store view of the database.
func (db *DB) Courses() *CourseStore { return &CourseStore{db: db} }

// Comments returns the comment store view of the database.
func (db *DB) Comments() *CommentStore { return &CommentStore{db: db} }

func (db *DB) next() int64 {
	db.seq++
	return db.seq
}

func cloneUser(u model.User) *model.User {
	u.EnrolledCourses = append([]uuid.UUID{}, u.EnrolledCourses...)
	return &u
}

func cloneCourse(c model.Course) model.Course {
	c.Chapters = append([]model.Chapter{}, c.Chapters...)
	return c
}

// ─── Users ─────────────────────────────────────────────────────────────

// UserStore is the in-memory credential store.
type UserStore struct{ db *DB }

func (s *UserStore) Create(_ context.Context, u *model.User) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	if _, taken := s.db.emails[u.Email]; taken {
		return repository.ErrDuplicateKey
	}
	now := time.Now()
	u.ID = uuid.New()
	u.CreatedAt, u.UpdatedAt = now, now
	u.EnrolledCourses = []uuid.UUID{}

	s.db.users[u.ID] = &userRow{user: *cloneUser(*u), seq: s.db.next()}
	s.db.emails[u.Email] = u.ID
	return nil
}

func (s *UserStore) GetByID(_ context.Context, id uuid.UUID) (*model.User, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	row, ok := s.db.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return cloneUser(row.user), nil
}

func (s *UserStore) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	s.db.mu.Lock()
	id, ok := s.db.emails[email]
	s.db.mu.Unlock()
	if !ok {
		return nil, repository.ErrNotFound
	}
	return s.GetByID(ctx, id)
}

func (s *UserStore) List(_ context.Context) ([]model.User, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	rows := make([]*userRow, 0, len(s.db.users))
	for _, row := range s.db.users {
		rows = append(rows, row)
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].seq > rows[j].seq })

	users := make([]model.User, 0, len(rows))
	for _, row := range rows {
		users = append(users, *cloneUser(row.user))
	}
	return users, nil
}

func (s *UserStore) Count(_ context.Context) (int, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	return len(s.db.users), nil
}

func (s *UserStore) UpdateName(_ context.Context, id uuid.UUID, name string) (*model.User, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	row, ok := s.db.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	row.user.Name = name
	row.user.UpdatedAt = time.Now()
	return cloneUser(row.user), nil
}

// SetRole changes a stored role. No API route does this.
func (s *UserStore) SetRole(_ context.Context, id uuid.UUID, role model.Role) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	row, ok := s.db.users[id]
	if !ok {
		return repository.ErrNotFound
	}
	row.user.Role = role
	return nil
}

func (s *UserStore) AddEnrollment(_ context.Context, userID, courseID uuid.UUID) ([]uuid.UUID, bool, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	row, ok := s.db.users[userID]
	if !ok {
		return nil, false, repository.ErrNotFound
	}
	if row.user.IsEnrolled(courseID) {
		return append([]uuid.UUID{}, row.user.EnrolledCourses...), false, nil
	}
	row.user.EnrolledCourses = append(row.user.EnrolledCourses, courseID)
	row.user.UpdatedAt = time.Now()
	return append([]uuid.UUID{}, row.user.EnrolledCourses...), true, nil
}

// ─── Courses ───────────────────────────────────────────────────────────

// CourseStore is the in-memory course directory.
type CourseStore struct{ db *DB }

func (s *CourseStore) Create(_ context.Context, c *model.Course) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	now := time.Now()
	c.ID = uuid.New()
	c.CreatedAt, c.UpdatedAt = now, now
	if c.Chapters == nil {
		c.Chapters = []model.Chapter{}
	}
	s.db.courses[c.ID] = &courseRow{course: cloneCourse(*c), seq: s.db.next()}
	return nil
}

func (s *CourseStore) GetByID(_ context.Context, id uuid.UUID) (*model.Course, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	row, ok := s.db.courses[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	c := cloneCourse(row.course)
	return &c, nil
}

func (s *CourseStore) List(_ context.Context) ([]model.Course, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	rows := make([]*courseRow, 0, len(s.db.courses))
	for _, row := range s.db.courses {
		rows = append(rows, row)
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].seq > rows[j].seq })

	courses := make([]model.Course, 0, len(rows))
	for _, row := range rows {
		courses = append(courses, cloneCourse(row.course))
	}
	return courses, nil
}

func (s *CourseStore) ListByIDs(_ context.Context, ids []uuid.UUID) ([]model.Course, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	courses := make([]model.Course, 0, len(ids))
	for _, id := range ids {
		if row, ok := s.db.courses[id]; ok {
			courses = append(courses, cloneCourse(row.course))
		}
	}
	return courses, nil
}

func (s *CourseStore) Update(_ context.Context, c *model.Course) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	row, ok := s.db.courses[c.ID]
	if !ok {
		return repository.ErrNotFound
	}
	if c.Chapters == nil {
		c.Chapters = []model.Chapter{}
	}
	c.UpdatedAt = time.Now()
	row.course = cloneCourse(*c)
	return nil
}

func (s *CourseStore) Delete(_ context.Context, id uuid.UUID) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	if _, ok := s.db.courses[id]; !ok {
		return repository.ErrNotFound
	}
	for cid, row := range s.db.comments {
		if row.comment.CourseID == id {
			delete(s.db.comments, cid)
		}
	}
	for _, row := range s.db.users {
		kept := row.user.EnrolledCourses[:0]
		for _, enrolled := range row.user.EnrolledCourses {
			if enrolled != id {
				kept = append(kept, enrolled)
			}
		}
		row.user.EnrolledCourses = kept
	}
	delete(s.db.courses, id)
	return nil
}

// ─── Comments ──────────────────────────────────────────────────────────

// CommentStore is the in-memory comment board.
type CommentStore struct{ db *DB }

func (s *CommentStore) Create(_ context.Context, cm *model.Comment) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	if _, ok := s.db.users[cm.UserID]; !ok {
		return repository.ErrNotFound
	}
	if _, ok := s.db.courses[cm.CourseID]; !ok {
		return repository.ErrNotFound
	}
	cm.ID = uuid.New()
	cm.CreatedAt = time.Now()
	s.db.comments[cm.ID] = &commentRow{comment: *cm, seq: s.db.next()}
	return nil
}

func (s *CommentStore) GetByID(_ context.Context, id uuid.UUID) (*model.Comment, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	row, ok := s.db.comments[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cm := row.comment
	return &cm, nil
}

func (s *CommentStore) GetView(_ context.Context, id uuid.UUID) (*model.CommentView, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	row, ok := s.db.comments[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	v, ok := s.view(row.comment)
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &v, nil
}

func (s *CommentStore) ListByCourse(_ context.Context, courseID uuid.UUID) ([]model.CommentView, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	rows := make([]*commentRow, 0)
	for _, row := range s.db.comments {
		if row.comment.CourseID == courseID {
			rows = append(rows, row)
		}
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].seq > rows[j].seq })

	views := make([]model.CommentView, 0, len(rows))
	for _, row := range rows {
		if v, ok := s.view(row.comment); ok {
			views = append(views, v)
		}
	}
	return views, nil
}

func (s *CommentStore) Delete(_ context.Context, id uuid.UUID) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	if _, ok := s.db.comments[id]; !ok {
		return repository.ErrNotFound
	}
	delete(s.db.comments, id)
	return nil
}

// view joins a comment with its author; callers hold the lock.
func (s *CommentStore) view(cm model.Comment) (model.CommentView, bool) {
	author, ok := s.db.users[cm.UserID]
	if !ok {
		return model.CommentView{}, false
	}
	return model.CommentView{
		ID:       cm.ID,
		CourseID: cm.CourseID,
		User: model.CommentAuthor{
			ID:   author.user.ID,
			Name: author.user.Name,
			Role: author.user.Role,
		},
		Text:      cm.Text,
		CreatedAt: cm.CreatedAt,
	}, true
}
