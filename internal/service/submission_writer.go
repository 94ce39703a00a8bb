package service

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/7vignesh/blind-coding/internal/model"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// ErrSubmissionWriteFailed wraps every directory or file error from the writer.
var ErrSubmissionWriteFailed = errors.New("submission write failed")

const (
	submissionExt       = ".txt"
	submissionSeparator = "========================================"
	filenameTimeLayout  = "20060102-150405.000000000"
	headerTimeLayout    = "Mon, 02 Jan 2006 15:04:05 MST"
)

// SubmissionWriter persists one text file per submission into a fixed directory.
// It does not deduplicate; callers gate on the SubmissionTracker.
type SubmissionWriter struct {
	dir string
	now func() time.Time
	log zerolog.Logger
}

// NewSubmissionWriter creates a writer targeting dir.
func NewSubmissionWriter(dir string, log zerolog.Logger) *SubmissionWriter {
	return &SubmissionWriter{
		dir: dir,
		now: time.Now,
		log: log.With().Str("component", "submission_writer").Logger(),
	}
}

// WriteSubmission writes the header and the verbatim answer and returns the file path.
func (w *SubmissionWriter) WriteSubmission(q model.Question, answerText, identity string) (string, error) {
	if err := os.MkdirAll(w.dir, 0o755); err != nil {
		return "", fmt.Errorf("%w: create directory: %v", ErrSubmissionWriteFailed, err)
	}

	record := model.SubmissionRecord{
		Submitter:   identity,
		Question:    q,
		SubmittedAt: w.now(),
		Answer:      answerText,
	}

	f, path, err := w.createUnique(record)
	if err != nil {
		return "", fmt.Errorf("%w: create file: %v", ErrSubmissionWriteFailed, err)
	}

	_, writeErr := f.WriteString(FormatSubmission(record))
	closeErr := f.Close()
	if err := errors.Join(writeErr, closeErr); err != nil {
		// Never leave a truncated submission behind.
		_ = os.Remove(path)
		return "", fmt.Errorf("%w: write file: %v", ErrSubmissionWriteFailed, err)
	}

	w.log.Info().
		Str("title", q.Title).
		Str("path", path).
		Int("answer_len", len(answerText)).
		Msg("Submission written")

	return path, nil
}

// createUnique opens a fresh file for record. A name clash gets a random suffix.
func (w *SubmissionWriter) createUnique(record model.SubmissionRecord) (*os.File, string, error) {
	name := SubmissionFilename(record.Submitter, record.Question.Title, record.SubmittedAt, "")
	path := filepath.Join(w.dir, name)

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if errors.Is(err, fs.ErrExist) {
		suffix := strings.SplitN(uuid.NewString(), "-", 2)[0]
		name = SubmissionFilename(record.Submitter, record.Question.Title, record.SubmittedAt, suffix)
		path = filepath.Join(w.dir, name)
		f, err = os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	}
	if err != nil {
		return nil, "", err
	}
	return f, path, nil
}

// SubmissionFilename builds <identity>_<title>_<timestamp>.txt.
func SubmissionFilename(identity, title string, at time.Time, suffix string) string {
	ts := at.UTC().Format(filenameTimeLayout)
	if suffix != "" {
		ts += "-" + suffix
	}
	return SanitizeFilenamePart(identity) + "_" + SanitizeFilenamePart(title) + "_" + ts + submissionExt
}

// SanitizeFilenamePart replaces every rune outside [A-Za-z0-9] with '_'.
func SanitizeFilenamePart(s string) string {
	if s == "" {
		return "anonymous"
	}
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			return r
		}
		return '_'
	}, s)
}

// FormatSubmission renders the six header lines, a blank line and the answer.
func FormatSubmission(r model.SubmissionRecord) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Submitted By: %s\n", r.Submitter)
	fmt.Fprintf(&b, "Question: %s\n", r.Question.Title)
	fmt.Fprintf(&b, "Difficulty: %s\n", r.Question.Difficulty)
	fmt.Fprintf(&b, "Topic: %s\n", r.Question.Topic)
	fmt.Fprintf(&b, "Submitted At: %s\n", r.SubmittedAt.Format(headerTimeLayout))
	b.WriteString(submissionSeparator + "\n")
	b.WriteString("\n")
	b.WriteString(r.Answer)
	return b.String()
}
