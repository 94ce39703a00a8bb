package websocket

// ─── Actions (View → Controller) ────────────────────────────────────

type Action string

const (
	ActionStart  Action = "start"
	ActionSubmit Action = "submit"
	ActionPing   Action = "ping"
)

// RequestPayload carries every action a view can send. Fields not used by
// the action are left empty.
type RequestPayload struct {
	Action        Action `json:"action"`
	QuestionIndex *int   `json:"question_index,omitempty"`
	// Title is the card's title as the overview rendered it.
	Title      string `json:"title,omitempty"`
	AnswerText string `json:"answer_text,omitempty"`
}

// ─── Events (Controller → View) ─────────────────────────────────────

type Event string

const (
	EventOpenAnswer         Event = "open_answer"
	EventSubmitAcknowledged Event = "submit_acknowledged"
	EventMarkSubmitted      Event = "mark_submitted"
	EventError              Event = "error"
	EventPong               Event = "pong"
)

// OpenAnswerResponse tells the overview where the answer view lives.
type OpenAnswerResponse struct {
	Event Event  `json:"event"`
	URL   string `json:"url"`
}

// SubmitAcknowledgedResponse locks the answer view.
type SubmitAcknowledgedResponse struct {
	Event Event  `json:"event"`
	Title string `json:"title"`
}

// MarkSubmittedEvent is the targeted diff pushed to open overviews.
type MarkSubmittedEvent struct {
	Event Event  `json:"event"`
	Title string `json:"title"`
}

type ErrorResponse struct {
	Event Event  `json:"event"`
	Error string `json:"error"`
}

type PongResponse struct {
	Event Event `json:"event"`
}
