package config

import (
	"fmt"

	"github.com/google/uuid"
)

type CacheKeyStruct struct{}

func NewCacheKeyStruct() *CacheKeyStruct {
	return &CacheKeyStruct{}
}

// CourseListKey returns the cache key for the full public course catalog.
func (r *CacheKeyStruct) CourseListKey() string {
	return "courses:all"
}

// CourseListGenerationKey returns the counter bumped on every catalog write.
func (r *CacheKeyStruct) CourseListGenerationKey() string {
	return "courses:gen"
}

// CourseCommentsChannel returns the Redis PubSub channel carrying comment events for a course.
func (r *CacheKeyStruct) CourseCommentsChannel(courseID uuid.UUID) string {
	return fmt.Sprintf("course:%s:comments", courseID)
}

var CacheKey = NewCacheKeyStruct()
