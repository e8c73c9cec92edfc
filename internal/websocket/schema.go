package websocket

// ─── Actions (Client → Server) ──────────────────────────────────────

type Action string

const (
	ActionPing Action = "ping"
)

// RequestEnvelope is used to peek at the action before full parsing.
type RequestEnvelope struct {
	Action Action `json:"action"`
}

// ─── Events (Server → Client) ───────────────────────────────────────

// Comment events (comment_created, comment_deleted) are forwarded verbatim
// from the course feed as model.CommentEvent.

type Event string

const (
	EventError      Event = "error"
	EventSubscribed Event = "subscribed"
	EventPong       Event = "pong"
)

type SubscribedResponse struct {
	Event    Event  `json:"event"`
	CourseID string `json:"course"`
}

type ErrorResponse struct {
	Event Event  `json:"event"`
	Error string `json:"error"`
}

type PongResponse struct {
	Event Event `json:"event"`
}
