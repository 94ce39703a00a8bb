package response

// ErrCode is a typed error code enum for consistent API error identification.
type ErrCode string

const (
	// ─── Validation ────────────────────────────────────────────────────
	ErrValidation  ErrCode = "VALIDATION_ERROR"
	ErrInvalidID   ErrCode = "INVALID_ID"
	ErrEmptyAnswer ErrCode = "EMPTY_ANSWER"

	// ─── Resources ─────────────────────────────────────────────────────
	ErrNotFound ErrCode = "NOT_FOUND"

	// ─── Practice-specific ─────────────────────────────────────────────
	ErrInsufficientQuestions    ErrCode = "INSUFFICIENT_QUESTIONS"
	ErrNoQuestionsForDifficulty ErrCode = "NO_QUESTIONS_FOR_DIFFICULTY"
	ErrAlreadySubmitted         ErrCode = "ALREADY_SUBMITTED"
	ErrSubmissionInFlight       ErrCode = "SUBMISSION_IN_FLIGHT"
	ErrSubmissionWriteFailed    ErrCode = "SUBMISSION_WRITE_FAILED"
	ErrNoQuestionSet            ErrCode = "NO_QUESTION_SET"
	ErrQuestionSetChanged       ErrCode = "QUESTION_SET_CHANGED"

	// ─── Rate Limiting ─────────────────────────────────────────────────
	ErrRateLimitExceeded ErrCode = "RATE_LIMIT_EXCEEDED"

	// ─── Server ────────────────────────────────────────────────────────
	ErrInternal ErrCode = "INTERNAL_ERROR"
)

// GetMessage returns a human-readable message for a given error code.
func GetMessage(code ErrCode) string {
	switch code {
	case ErrValidation:
		return "Validation failed. Please check your input."
	case ErrInvalidID:
		return "Invalid ID format."
	case ErrEmptyAnswer:
		return "The answer is empty."

	case ErrNotFound:
		return "Resource not found."

	case ErrInsufficientQuestions:
		return "Not enough questions to build a question set."
	case ErrNoQuestionsForDifficulty:
		return "No questions found."
	case ErrAlreadySubmitted:
		return "This question has already been submitted."
	case ErrSubmissionInFlight:
		return "A submission for this question is already in progress."
	case ErrSubmissionWriteFailed:
		return "Could not save your submission. Please try again."
	case ErrNoQuestionSet:
		return "No question set has been drawn yet."
	case ErrQuestionSetChanged:
		return "The question set has changed. Reload the overview."

	case ErrRateLimitExceeded:
		return "Too many requests. Please try again later."

	case ErrInternal:
		return "Internal server error."
	default:
		return "An unexpected error occurred."
	}
}
