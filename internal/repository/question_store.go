package repository

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/7vignesh/blind-coding/internal/model"
	"gopkg.in/yaml.v3"
)

// ErrDuplicateTitle is returned when two corpus entries share a title.
var ErrDuplicateTitle = errors.New("duplicate question title")

// QuestionStore is the immutable, ordered question corpus loaded at startup.
type QuestionStore struct {
	questions []model.Question
}

// NewQuestionStore validates the corpus and freezes a private copy of it.
func NewQuestionStore(questions []model.Question) (*QuestionStore, error) {
	seen := make(map[string]struct{}, len(questions))
	frozen := make([]model.Question, 0, len(questions))
	for i, q := range questions {
		if err := q.Validate(); err != nil {
			return nil, fmt.Errorf("question %d: %w", i, err)
		}
		if _, dup := seen[q.Title]; dup {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateTitle, q.Title)
		}
		seen[q.Title] = struct{}{}
		frozen = append(frozen, q)
	}
	return &QuestionStore{questions: frozen}, nil
}

// All returns the corpus in load order. The slice is a copy.
func (s *QuestionStore) All() []model.Question {
	out := make([]model.Question, len(s.questions))
	copy(out, s.questions)
	return out
}

// ByDifficulty returns the bucket for one tier, in load order.
func (s *QuestionStore) ByDifficulty(d model.Difficulty) []model.Question {
	var out []model.Question
	for _, q := range s.questions {
		if q.Difficulty == d {
			out = append(out, q)
		}
	}
	return out
}

// Len returns the corpus size.
func (s *QuestionStore) Len() int {
	return len(s.questions)
}

// LoadQuestionsFile reads a JSON or YAML corpus file. The format is chosen by extension.
func LoadQuestionsFile(path string) ([]model.Question, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read question corpus: %w", err)
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return parseYAMLQuestions(data)
	default:
		return parseJSONQuestions(data)
	}
}

func parseJSONQuestions(data []byte) ([]model.Question, error) {
	var questions []model.Question
	decoder := json.NewDecoder(bytes.NewReader(data))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&questions); err != nil {
		return nil, fmt.Errorf("parse json: %w", err)
	}
	if err := decoder.Decode(&struct{}{}); err != io.EOF {
		if err == nil {
			return nil, fmt.Errorf("parse json: multiple documents are not supported")
		}
		return nil, fmt.Errorf("parse json: %w", err)
	}
	return questions, nil
}

func parseYAMLQuestions(data []byte) ([]model.Question, error) {
	var questions []model.Question
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&questions); err != nil {
		return nil, fmt.Errorf("parse yaml: %w", err)
	}
	if err := decoder.Decode(&struct{}{}); err != io.EOF {
		if err == nil {
			return nil, fmt.Errorf("parse yaml: multiple documents are not supported")
		}
		return nil, fmt.Errorf("parse yaml: %w", err)
	}
	return questions, nil
}
