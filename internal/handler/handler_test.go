package handler

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/nexlearn/nexlearn-backend/internal/response"
	"github.com/nexlearn/nexlearn-backend/internal/service"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func TestBuildUpgraderOrigin(t *testing.T) {
	up := buildUpgrader([]string{"https://nexlearn.example"})
	req := httptest.NewRequest(http.MethodGet, "/", nil)

	req.Header.Set("Origin", "https://nexlearn.example")
	assert.True(t, up.CheckOrigin(req))

	req.Header.Set("Origin", "https://evil.example")
	assert.False(t, up.CheckOrigin(req))

	assert.True(t, buildUpgrader(nil).CheckOrigin(req))
}

func TestFailServiceMapping(t *testing.T) {
	gin.SetMode(gin.TestMode)

	cases := []struct {
		err    error
		status int
		code   response.ErrCode
	}{
		{service.ErrCourseNotFound, http.StatusNotFound, response.ErrCourseNotFound},
		{service.ErrCommentNotFound, http.StatusNotFound, response.ErrCommentNotFound},
		{service.ErrUserNotFound, http.StatusNotFound, response.ErrNotFound},
		{service.ErrForbidden, http.StatusForbidden, response.ErrForbidden},
		{service.ErrAlreadyEnrolled, http.StatusBadRequest, response.ErrAlreadyEnrolled},
		{service.ErrDuplicateEmail, http.StatusBadRequest, response.ErrDuplicateEmail},
		{errors.New("connection reset"), http.StatusInternalServerError, response.ErrInternal},
	}
	for _, tc := range cases {
		t.Run(string(tc.code), func(t *testing.T) {
			rec := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(rec)
			c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

			failService(c, zerolog.Nop(), tc.err)
			assert.Equal(t, tc.status, rec.Code)
			assert.Contains(t, rec.Body.String(), string(tc.code))
			assert.NotContains(t, rec.Body.String(), "connection reset")
		})
	}
}

func TestReadyReportsFailingDependency(t *testing.T) {
	gin.SetMode(gin.TestMode)
	h := NewSystemHandler(map[string]Pinger{
		"database": func(context.Context) error { return nil },
		"redis":    func(context.Context) error { return errors.New("dial tcp: refused") },
	}, func(context.Context) (int64, error) { return 3, nil }, zerolog.Nop())

	r := gin.New()
	r.GET("/ready", h.Ready)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ready", nil))

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.JSONEq(t, `{"status":"degraded","checks":{"database":"ok","redis":"down"},"contactQueue":3}`, rec.Body.String())
}

func TestFormatDuration(t *testing.T) {
	assert.Equal(t, "0m 5s", formatDuration(5*time.Second))
	assert.Equal(t, "2h 3m 0s", formatDuration(2*time.Hour+3*time.Minute))
	assert.Equal(t, "1d 1h 0m 0s", formatDuration(25*time.Hour))
}
