package websocket

// ─── Events (Server → Client) ───────────────────────────────────────

type Event string

const (
	EventStatus Event = "status"
	EventError  Event = "error"
)

// StatusResponse notifies the client of a document's extraction progress.
type StatusResponse struct {
	Event         Event  `json:"event"`
	Status        string `json:"status"`
	QuestionCount int    `json:"question_count"`
}

type ErrorResponse struct {
	Event Event  `json:"event"`
	Error string `json:"error"`
}
