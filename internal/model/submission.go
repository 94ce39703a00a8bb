package model

import "time"

// SubmissionRecord describes the header of one persisted submission file.
type SubmissionRecord struct {
	Submitter   string
	Question    Question
	SubmittedAt time.Time
	Answer      string
}

// SubmitAnswerRequest is the payload for the JSON submit endpoint.
type SubmitAnswerRequest struct {
	AnswerText string `json:"answer_text" binding:"required,max=200000"`
}

// RandomQuestionQuery selects the tier for the legacy single-question path.
type RandomQuestionQuery struct {
	Difficulty string `form:"difficulty" binding:"required,oneof=Easy Medium Hard easy medium hard"`
}

// StartQuestionQuery names the card a start request was rendered for.
type StartQuestionQuery struct {
	Title string `form:"title" binding:"required"`
}

// SubmissionsResponse lists the titles submitted during this process lifetime.
type SubmissionsResponse struct {
	Titles []string `json:"titles"`
}
