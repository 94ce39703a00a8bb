package service

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"testing"

	"github.com/7vignesh/blind-coding/internal/model"
)

func testRand() *rand.Rand {
	return rand.New(rand.NewPCG(42, 1024))
}

func corpus(easy, medium, hard int) []model.Question {
	var out []model.Question
	add := func(d model.Difficulty, n int) {
		for i := 0; i < n; i++ {
			out = append(out, model.Question{
				Title:       fmt.Sprintf("%s %d", d, i),
				Difficulty:  d,
				Topic:       "Arrays",
				Description: "Solve it.",
			})
		}
	}
	add(model.DifficultyHard, hard)
	add(model.DifficultyEasy, easy)
	add(model.DifficultyMedium, medium)
	return out
}

func TestSelectQuestionsComposition(t *testing.T) {
	rng := testRand()
	all := corpus(4, 3, 5)

	for i := 0; i < 200; i++ {
		set, err := SelectQuestions(all, rng)
		if err != nil {
			t.Fatalf("SelectQuestions: %v", err)
		}
		if len(set) != QuestionSetSize {
			t.Fatalf("len(set) = %d, want %d", len(set), QuestionSetSize)
		}

		want := []model.Difficulty{
			model.DifficultyEasy, model.DifficultyEasy,
			model.DifficultyMedium,
			model.DifficultyHard, model.DifficultyHard,
		}
		seen := make(map[string]bool)
		for j, q := range set {
			if q.Difficulty != want[j] {
				t.Fatalf("draw %d position %d: difficulty %s, want %s", i, j, q.Difficulty, want[j])
			}
			if seen[q.Title] {
				t.Fatalf("draw %d: duplicate title %q", i, q.Title)
			}
			seen[q.Title] = true
		}
	}
}

func TestSelectQuestionsExactMinimum(t *testing.T) {
	set, err := SelectQuestions(corpus(2, 1, 2), testRand())
	if err != nil {
		t.Fatalf("SelectQuestions: %v", err)
	}
	if len(set) != QuestionSetSize {
		t.Fatalf("len(set) = %d", len(set))
	}
}

func TestSelectQuestionsUniform(t *testing.T) {
	rng := testRand()
	all := corpus(4, 3, 5)
	counts := make(map[string]int)

	const draws = 1000
	for i := 0; i < draws; i++ {
		set, err := SelectQuestions(all, rng)
		if err != nil {
			t.Fatalf("SelectQuestions: %v", err)
		}
		for _, q := range set {
			counts[q.Title]++
		}
	}

	// Expected appearances per item: draws * k / bucketSize.
	expect := map[model.Difficulty]float64{
		model.DifficultyEasy:   draws * 2.0 / 4.0,
		model.DifficultyMedium: draws * 1.0 / 3.0,
		model.DifficultyHard:   draws * 2.0 / 5.0,
	}
	for _, q := range all {
		want := expect[q.Difficulty]
		got := float64(counts[q.Title])
		if got < want*0.8 || got > want*1.2 {
			t.Errorf("%s appeared %v times, want about %v", q.Title, got, want)
		}
	}
}

func TestSelectQuestionsInsufficient(t *testing.T) {
	cases := []struct {
		name   string
		all    []model.Question
		bucket model.Difficulty
	}{
		{"one easy", corpus(1, 1, 2), model.DifficultyEasy},
		{"no medium", corpus(2, 0, 2), model.DifficultyMedium},
		{"one hard", corpus(3, 2, 1), model.DifficultyHard},
		{"empty corpus", nil, model.DifficultyEasy},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			set, err := SelectQuestions(tc.all, testRand())
			if set != nil {
				t.Fatalf("expected no set, got %d items", len(set))
			}
			if !errors.Is(err, ErrInsufficientQuestions) {
				t.Fatalf("expected ErrInsufficientQuestions, got %v", err)
			}
			var ie *InsufficientQuestionsError
			if !errors.As(err, &ie) {
				t.Fatalf("expected *InsufficientQuestionsError, got %T", err)
			}
			if ie.Bucket != tc.bucket {
				t.Fatalf("bucket = %s, want %s", ie.Bucket, tc.bucket)
			}
		})
	}
}

func TestSelectQuestionsDoesNotMutateInput(t *testing.T) {
	all := corpus(4, 3, 5)
	before := make([]model.Question, len(all))
	copy(before, all)

	if _, err := SelectQuestions(all, testRand()); err != nil {
		t.Fatalf("SelectQuestions: %v", err)
	}
	for i := range all {
		if all[i] != before[i] {
			t.Fatalf("input reordered at %d", i)
		}
	}
}

func TestPickRandom(t *testing.T) {
	all := corpus(2, 1, 3)
	rng := testRand()
	for i := 0; i < 50; i++ {
		q, err := PickRandom(all, model.DifficultyHard, rng)
		if err != nil {
			t.Fatalf("PickRandom: %v", err)
		}
		if q.Difficulty != model.DifficultyHard {
			t.Fatalf("got %s question", q.Difficulty)
		}
	}

	_, err := PickRandom(corpus(2, 1, 0), model.DifficultyHard, rng)
	if !errors.Is(err, ErrNoQuestionsForDifficulty) {
		t.Fatalf("expected ErrNoQuestionsForDifficulty, got %v", err)
	}
}
