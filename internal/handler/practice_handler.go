package handler

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/7vignesh/blind-coding/internal/model"
	"github.com/7vignesh/blind-coding/internal/response"
	"github.com/7vignesh/blind-coding/internal/service"
	"github.com/7vignesh/blind-coding/internal/validator"
	"github.com/7vignesh/blind-coding/internal/view"
)

// PracticeHandler serves the overview and answer pages and their JSON twins.
type PracticeHandler struct {
	practice *service.PracticeService
	log      zerolog.Logger
}

// NewPracticeHandler creates a new PracticeHandler.
func NewPracticeHandler(practice *service.PracticeService, log zerolog.Logger) *PracticeHandler {
	return &PracticeHandler{
		practice: practice,
		log:      log.With().Str("component", "practice_handler").Logger(),
	}
}

// Overview godoc
// GET /overview
// Draws a fresh question set and renders the card grid.
func (h *PracticeHandler) Overview(c *gin.Context) {
	set, submitted, err := h.practice.RefreshQuestionSet()
	if err != nil {
		var short *service.InsufficientQuestionsError
		if errors.As(err, &short) {
			msg := fmt.Sprintf("%s The %s tier has %d, needs %d.",
				response.GetMessage(response.ErrInsufficientQuestions), short.Bucket, short.Have, short.Need)
			h.page(c, http.StatusUnprocessableEntity, "Not enough questions", msg)
			return
		}
		h.page(c, http.StatusInternalServerError, "Something went wrong", response.GetMessage(response.ErrInternal))
		return
	}

	markup, err := view.RenderOverview(set, submitted)
	if err != nil {
		h.log.Error().Err(err).Msg("Render overview")
		h.page(c, http.StatusInternalServerError, "Something went wrong", response.GetMessage(response.ErrInternal))
		return
	}
	response.HTML(c, http.StatusOK, markup)
}

// StartQuestion godoc
// GET /questions/:index/start?title=...
// Opens the answer view for a card of the current set. Already submitted
// questions bounce back to the overview without rendering anything.
func (h *PracticeHandler) StartQuestion(c *gin.Context) {
	index, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		h.page(c, http.StatusBadRequest, "Invalid question", response.GetMessage(response.ErrInvalidID))
		return
	}
	var query model.StartQuestionQuery
	if fields := validator.BindQuery(c, &query); fields != nil {
		h.page(c, http.StatusBadRequest, "Invalid question", response.GetMessage(response.ErrValidation))
		return
	}

	v, err := h.practice.OpenAnswer(index, query.Title)
	switch {
	case errors.Is(err, service.ErrAlreadySubmitted):
		response.RedirectToOverview(c)
	case errors.Is(err, service.ErrStaleQuestionSet):
		h.page(c, http.StatusConflict, "Question set changed", response.GetMessage(response.ErrQuestionSetChanged))
	case errors.Is(err, service.ErrQuestionNotFound):
		h.page(c, http.StatusNotFound, "Question not found", response.GetMessage(response.ErrNotFound))
	case err != nil:
		h.page(c, http.StatusInternalServerError, "Something went wrong", response.GetMessage(response.ErrInternal))
	default:
		c.Redirect(http.StatusSeeOther, answerURL(v.ID))
	}
}

// AnswerPage godoc
// GET /answer/:view_id
// Renders a registered answer view.
func (h *PracticeHandler) AnswerPage(c *gin.Context) {
	viewID, err := uuid.Parse(c.Param("view_id"))
	if err != nil {
		h.page(c, http.StatusNotFound, "Answer view not found", response.GetMessage(response.ErrNotFound))
		return
	}

	v, err := h.practice.AnswerView(viewID.String())
	if err != nil {
		h.page(c, http.StatusNotFound, "Answer view not found", response.GetMessage(response.ErrNotFound))
		return
	}

	markup, err := view.RenderAnswer(view.AnswerData{ViewID: v.ID, Question: v.Question, Submitted: v.Submitted})
	if err != nil {
		h.log.Error().Err(err).Msg("Render answer view")
		h.page(c, http.StatusInternalServerError, "Something went wrong", response.GetMessage(response.ErrInternal))
		return
	}
	response.HTML(c, http.StatusOK, markup)
}

// RandomQuestion godoc
// GET /questions/random?difficulty=Hard[&format=text]
// Picks one random question of a tier and opens its answer view directly.
// With format=text the plain-text question document is returned instead.
func (h *PracticeHandler) RandomQuestion(c *gin.Context) {
	var query model.RandomQuestionQuery
	if fields := validator.BindQuery(c, &query); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}
	difficulty, err := model.ParseDifficulty(query.Difficulty)
	if err != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, map[string]string{"difficulty": err.Error()})
		return
	}

	v, err := h.practice.OpenRandom(difficulty)
	if err != nil {
		if errors.Is(err, service.ErrNoQuestionsForDifficulty) {
			h.page(c, http.StatusNotFound, "No questions found", response.GetMessage(response.ErrNoQuestionsForDifficulty))
			return
		}
		h.page(c, http.StatusInternalServerError, "Something went wrong", response.GetMessage(response.ErrInternal))
		return
	}

	if c.Query("format") == "text" {
		response.Text(c, http.StatusOK, view.RenderPlainText(v.Question))
		return
	}
	c.Redirect(http.StatusSeeOther, answerURL(v.ID))
}

// GetQuestionSet godoc
// GET /api/v1/question-set
// Returns the current set with per-card submission status.
func (h *PracticeHandler) GetQuestionSet(c *gin.Context) {
	set, submitted := h.practice.CurrentQuestionSet()
	if set == nil {
		response.Fail(c, http.StatusNotFound, response.ErrNoQuestionSet)
		return
	}

	cards := make([]model.QuestionCard, len(set))
	for i, q := range set {
		_, done := submitted[q.Title]
		cards[i] = model.QuestionCard{Index: i, Question: q, Submitted: done}
	}
	response.Success(c, http.StatusOK, model.QuestionSetResponse{Questions: cards})
}

// ListSubmissions godoc
// GET /api/v1/submissions
// Lists the titles submitted since the process started.
func (h *PracticeHandler) ListSubmissions(c *gin.Context) {
	response.Success(c, http.StatusOK, model.SubmissionsResponse{Titles: h.practice.SubmittedTitles()})
}

// SubmitAnswer godoc
// POST /api/v1/answers/:view_id
// JSON alternative to the answer view's WebSocket submit action.
func (h *PracticeHandler) SubmitAnswer(c *gin.Context) {
	viewID, err := uuid.Parse(c.Param("view_id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	var req model.SubmitAnswerRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	path, err := h.practice.Submit(viewID.String(), req.AnswerText)
	if err != nil {
		status, code := submitErrorCode(err)
		response.Fail(c, status, code)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"path": path})
}

func (h *PracticeHandler) page(c *gin.Context, status int, title, message string) {
	markup, err := view.RenderMessage(title, message)
	if err != nil {
		h.log.Error().Err(err).Msg("Render message page")
		response.Text(c, status, message)
		return
	}
	response.HTML(c, status, markup)
}

// submitErrorCode maps a PracticeService.Submit error onto HTTP terms.
func submitErrorCode(err error) (int, response.ErrCode) {
	switch {
	case errors.Is(err, service.ErrEmptyAnswer):
		return http.StatusBadRequest, response.ErrEmptyAnswer
	case errors.Is(err, service.ErrAnswerViewNotFound):
		return http.StatusNotFound, response.ErrNotFound
	case errors.Is(err, service.ErrAlreadySubmitted):
		return http.StatusConflict, response.ErrAlreadySubmitted
	case errors.Is(err, service.ErrSubmissionInFlight):
		return http.StatusConflict, response.ErrSubmissionInFlight
	case errors.Is(err, service.ErrSubmissionWriteFailed):
		return http.StatusInternalServerError, response.ErrSubmissionWriteFailed
	default:
		return http.StatusInternalServerError, response.ErrInternal
	}
}

func answerURL(viewID string) string {
	return "/answer/" + viewID
}
