package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"github.com/7vignesh/blind-coding/internal/response"
	"github.com/7vignesh/blind-coding/internal/service"
	ws "github.com/7vignesh/blind-coding/internal/websocket"
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

// WSHandler carries the messages between the views and the PracticeService.
type WSHandler struct {
	practice *service.PracticeService
	hub      *ws.Hub
	log      zerolog.Logger
	upgrader websocket.Upgrader
}

// NewWSHandler creates a new WSHandler.
func NewWSHandler(practice *service.PracticeService, hub *ws.Hub, log zerolog.Logger, allowedOrigins []string) *WSHandler {
	return &WSHandler{
		practice: practice,
		hub:      hub,
		log:      log.With().Str("component", "ws_handler").Logger(),
		upgrader: buildUpgrader(allowedOrigins),
	}
}

// OverviewStream godoc
// WS /ws/overview
// Receives start actions from the overview and delivers mark_submitted diffs.
func (h *WSHandler) OverviewStream(c *gin.Context) {
	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.log.Error().Err(err).Msg("WebSocket upgrade failed")
		return
	}
	defer conn.Close()

	client := h.hub.Register(conn)
	defer h.hub.Unregister(client)

	h.log.Debug().Int("overviews", h.hub.Len()).Msg("Overview connected")

	for {
		var msg ws.RequestPayload
		if err := ws.ReadJSON(conn, &msg); err != nil {
			h.logClose(err, "overview")
			return
		}

		switch msg.Action {
		case ws.ActionStart:
			h.handleStart(client, &msg)
		case ws.ActionPing:
			client.Send(ws.PongResponse{Event: ws.EventPong})
		default:
			h.log.Warn().Str("action", string(msg.Action)).Msg("Unknown action")
			client.SendError("unknown action: " + string(msg.Action))
		}
	}
}

// handleStart opens the answer view for a card. Submitted cards are ignored.
func (h *WSHandler) handleStart(client *ws.Client, msg *ws.RequestPayload) {
	if msg.QuestionIndex == nil || msg.Title == "" {
		client.SendError("question_index and title are required")
		return
	}

	v, err := h.practice.OpenAnswer(*msg.QuestionIndex, msg.Title)
	switch {
	case errors.Is(err, service.ErrAlreadySubmitted):
		// State is unchanged; the resent mark lets a lagging overview catch up.
		h.log.Debug().Int("index", *msg.QuestionIndex).Msg("Start ignored for submitted question")
		client.Send(ws.MarkSubmittedEvent{Event: ws.EventMarkSubmitted, Title: msg.Title})
	case errors.Is(err, service.ErrStaleQuestionSet):
		client.SendError(response.GetMessage(response.ErrQuestionSetChanged))
	case errors.Is(err, service.ErrQuestionNotFound):
		client.SendError(response.GetMessage(response.ErrNotFound))
	case err != nil:
		h.log.Error().Err(err).Msg("Open answer view")
		client.SendError(response.GetMessage(response.ErrInternal))
	default:
		client.Send(ws.OpenAnswerResponse{Event: ws.EventOpenAnswer, URL: answerURL(v.ID)})
	}
}

// AnswerStream godoc
// WS /ws/answer/:view_id
// Receives the submit action of one answer view and acknowledges it.
func (h *WSHandler) AnswerStream(c *gin.Context) {
	viewID, err := uuid.Parse(c.Param("view_id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}
	if _, err := h.practice.AnswerView(viewID.String()); err != nil {
		response.Fail(c, http.StatusNotFound, response.ErrNotFound)
		return
	}

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.log.Error().Err(err).Msg("WebSocket upgrade failed")
		return
	}
	defer conn.Close()

	client := ws.NewClient(conn)
	viewLog := h.log.With().Str("view_id", viewID.String()).Logger()
	viewLog.Debug().Msg("Answer view connected")

	for {
		var msg ws.RequestPayload
		if err := ws.ReadJSON(conn, &msg); err != nil {
			h.logClose(err, "answer")
			return
		}

		switch msg.Action {
		case ws.ActionSubmit:
			h.handleSubmit(client, viewLog, viewID.String(), msg.AnswerText)
		case ws.ActionPing:
			client.Send(ws.PongResponse{Event: ws.EventPong})
		default:
			viewLog.Warn().Str("action", string(msg.Action)).Msg("Unknown action")
			client.SendError("unknown action: " + string(msg.Action))
		}
	}
}

// handleSubmit runs the submission on this connection's goroutine; the view
// keeps its button disabled until the acknowledgement or error arrives.
func (h *WSHandler) handleSubmit(client *ws.Client, viewLog zerolog.Logger, viewID, answerText string) {
	// Submitted views are the first to be evicted, so read the title up front.
	v, err := h.practice.AnswerView(viewID)
	if err != nil {
		client.SendError(response.GetMessage(response.ErrNotFound))
		return
	}
	_, err = h.practice.Submit(viewID, answerText)
	switch {
	case err == nil:
		client.Send(ws.SubmitAcknowledgedResponse{Event: ws.EventSubmitAcknowledged, Title: v.Question.Title})
	case errors.Is(err, service.ErrAlreadySubmitted), errors.Is(err, service.ErrSubmissionInFlight):
		viewLog.Debug().Err(err).Msg("Duplicate submit ignored")
	default:
		_, code := submitErrorCode(err)
		client.SendError(response.GetMessage(code))
	}
}

func (h *WSHandler) logClose(err error, view string) {
	if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
		h.log.Warn().Err(err).Str("view", view).Msg("Unexpected close")
	} else {
		h.log.Debug().Str("view", view).Msg("Connection closed")
	}
}
