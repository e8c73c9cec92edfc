package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/nexlearn/nexlearn-backend/internal/response"
	"github.com/nexlearn/nexlearn-backend/internal/service"
	ws "github.com/nexlearn/nexlearn-backend/internal/websocket"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// buildUpgrader creates a WebSocket upgrader with origin validation.
// allowedOrigins comes from config.Config.AllowedOrigins.
// An empty slice permits all origins (development mode).
func buildUpgrader(allowedOrigins []string) websocket.Upgrader {
	return websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin: func(r *http.Request) bool {
			if len(allowedOrigins) == 0 {
				return true
			}
			origin := r.Header.Get("Origin")
			for _, allowed := range allowedOrigins {
				if strings.EqualFold(allowed, origin) {
					return true
				}
			}
			return false
		},
	}
}

// CommentSubscriber opens a live subscription on a course's comment feed.
type CommentSubscriber interface {
	Subscribe(ctx context.Context, courseID uuid.UUID) *redis.PubSub
}

// WSHandler streams live comment events to course pages.
type WSHandler struct {
	feed          CommentSubscriber
	courseService *service.CourseService
	log           zerolog.Logger
	upgrader      websocket.Upgrader
	pingPeriod    time.Duration
}

// NewWSHandler creates a new WSHandler.
func NewWSHandler(feed CommentSubscriber, courseService *service.CourseService, log zerolog.Logger, allowedOrigins []string) *WSHandler {
	return &WSHandler{
		feed:          feed,
		courseService: courseService,
		log:           log.With().Str("component", "ws_handler").Logger(),
		upgrader:      buildUpgrader(allowedOrigins),
		pingPeriod:    ws.PingPeriod,
	}
}

// CommentStream godoc
// WS /ws/comments/:courseId
// Upgrades to WebSocket and forwards comment_created / comment_deleted events.
func (h *WSHandler) CommentStream(c *gin.Context) {
	courseID, ok := pathID(c, "courseId")
	if !ok {
		response.Fail(c, http.StatusNotFound, response.ErrCourseNotFound)
		return
	}
	if _, err := h.courseService.GetByID(c.Request.Context(), courseID); err != nil {
		failService(c, h.log, err)
		return
	}

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.log.Error().Err(err).Msg("WebSocket upgrade failed")
		return
	}
	defer conn.Close()

	ctx, cancel := context.WithCancel(c.Request.Context())
	defer cancel()

	pubsub := h.feed.Subscribe(ctx, courseID)
	defer pubsub.Close()
	// Wait for the subscription to be confirmed so no event is missed.
	if _, err := pubsub.Receive(ctx); err != nil {
		h.log.Error().Err(err).Msg("Comment feed subscribe failed")
		ws.WriteError(conn, "feed unavailable")
		return
	}
	events := pubsub.Channel()

	wsLog := h.log.With().Str("course_id", courseID.String()).Logger()
	wsLog.Debug().Msg("Viewer connected")

	if err := ws.WriteTyped(conn, ws.SubscribedResponse{Event: ws.EventSubscribed, CourseID: courseID.String()}); err != nil {
		return
	}

	// Reader: notices the peer going away and hands ping actions to the
	// write loop, which is the only data-frame writer.
	pongs := make(chan struct{}, 1)
	go func() {
		defer cancel()
		ws.KeepAlive(conn)
		for {
			data, err := ws.ReadMessage(conn)
			if err != nil {
				if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
					wsLog.Warn().Err(err).Msg("Unexpected close")
				}
				return
			}
			var env ws.RequestEnvelope
			if json.Unmarshal(data, &env) == nil && env.Action == ws.ActionPing {
				select {
				case pongs <- struct{}{}:
				default:
				}
			}
		}
	}()

	ticker := time.NewTicker(h.pingPeriod)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			wsLog.Debug().Msg("Viewer disconnected")
			return

		case msg, ok := <-events:
			if !ok {
				return
			}
			// Forward raw JSON directly, it is already a model.CommentEvent.
			if err := ws.WriteRaw(conn, []byte(msg.Payload)); err != nil {
				return
			}

		case <-pongs:
			if err := ws.WriteTyped(conn, ws.PongResponse{Event: ws.EventPong}); err != nil {
				return
			}

		case <-ticker.C:
			if err := ws.WritePing(conn); err != nil {
				return
			}
		}
	}
}
