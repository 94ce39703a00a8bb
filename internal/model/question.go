package model

import (
	"errors"
	"fmt"
	"strings"
)

// Difficulty is the tier a question belongs to.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "Easy"
	DifficultyMedium Difficulty = "Medium"
	DifficultyHard   Difficulty = "Hard"
)

// Difficulties lists every tier in display order.
var Difficulties = []Difficulty{DifficultyEasy, DifficultyMedium, DifficultyHard}

// ErrUnknownDifficulty is returned for tiers outside Easy/Medium/Hard.
var ErrUnknownDifficulty = errors.New("unknown difficulty")

// ParseDifficulty maps a case-insensitive name onto a Difficulty.
func ParseDifficulty(s string) (Difficulty, error) {
	for _, d := range Difficulties {
		if strings.EqualFold(strings.TrimSpace(s), string(d)) {
			return d, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownDifficulty, s)
}

// Valid reports whether d is one of the known tiers.
func (d Difficulty) Valid() bool {
	switch d {
	case DifficultyEasy, DifficultyMedium, DifficultyHard:
		return true
	}
	return false
}

// Question is a single practice prompt. The title doubles as its unique key.
type Question struct {
	Title       string     `json:"title" yaml:"title" db:"title"`
	Difficulty  Difficulty `json:"difficulty" yaml:"difficulty" db:"difficulty"`
	Topic       string     `json:"topic" yaml:"topic" db:"topic"`
	Description string     `json:"description" yaml:"description" db:"description"`
}

// Validate checks the fields the rest of the system relies on.
func (q Question) Validate() error {
	if strings.TrimSpace(q.Title) == "" {
		return errors.New("question title is required")
	}
	if !q.Difficulty.Valid() {
		return fmt.Errorf("question %q: %w: %q", q.Title, ErrUnknownDifficulty, q.Difficulty)
	}
	return nil
}

// QuestionSet is one sampled draw: 2 Easy, 1 Medium and 2 Hard, in that order.
type QuestionSet []Question

// Titles returns the titles of the set in display order.
func (s QuestionSet) Titles() []string {
	titles := make([]string, len(s))
	for i, q := range s {
		titles[i] = q.Title
	}
	return titles
}

// QuestionSetResponse is the JSON view of the current set.
type QuestionSetResponse struct {
	Questions []QuestionCard `json:"questions"`
}

// QuestionCard pairs a question with its submission status.
type QuestionCard struct {
	Index     int      `json:"index"`
	Question  Question `json:"question"`
	Submitted bool     `json:"submitted"`
}
