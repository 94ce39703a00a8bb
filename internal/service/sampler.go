package service

import (
	"errors"
	"fmt"
	"math/rand/v2"

	"github.com/7vignesh/blind-coding/internal/model"
)

// Sentinel errors for question selection.
var (
	ErrInsufficientQuestions    = errors.New("insufficient questions")
	ErrNoQuestionsForDifficulty = errors.New("no questions found")
)

// Composition is how many questions each tier contributes to one QuestionSet.
var Composition = []struct {
	Difficulty model.Difficulty
	Count      int
}{
	{model.DifficultyEasy, 2},
	{model.DifficultyMedium, 1},
	{model.DifficultyHard, 2},
}

// QuestionSetSize is the total of Composition.
const QuestionSetSize = 5

// InsufficientQuestionsError names the bucket that could not satisfy the draw.
type InsufficientQuestionsError struct {
	Bucket model.Difficulty
	Have   int
	Need   int
}

func (e *InsufficientQuestionsError) Error() string {
	return fmt.Sprintf("%s: %s bucket has %d, need %d", ErrInsufficientQuestions, e.Bucket, e.Have, e.Need)
}

// Is lets errors.Is match ErrInsufficientQuestions.
func (e *InsufficientQuestionsError) Is(target error) bool {
	return target == ErrInsufficientQuestions
}

// SelectQuestions draws a QuestionSet without replacement from the corpus.
// Every bucket is checked before any shuffling so an undersized corpus fails
// without consuming entropy.
func SelectQuestions(all []model.Question, rng *rand.Rand) (model.QuestionSet, error) {
	buckets := make(map[model.Difficulty][]model.Question, len(Composition))
	for _, q := range all {
		buckets[q.Difficulty] = append(buckets[q.Difficulty], q)
	}

	for _, c := range Composition {
		if have := len(buckets[c.Difficulty]); have < c.Count {
			return nil, &InsufficientQuestionsError{Bucket: c.Difficulty, Have: have, Need: c.Count}
		}
	}

	set := make(model.QuestionSet, 0, QuestionSetSize)
	for _, c := range Composition {
		shuffled := shuffle(buckets[c.Difficulty], rng)
		set = append(set, shuffled[:c.Count]...)
	}
	return set, nil
}

// PickRandom returns one uniformly chosen question of the given tier.
func PickRandom(all []model.Question, difficulty model.Difficulty, rng *rand.Rand) (model.Question, error) {
	var bucket []model.Question
	for _, q := range all {
		if q.Difficulty == difficulty {
			bucket = append(bucket, q)
		}
	}
	if len(bucket) == 0 {
		return model.Question{}, fmt.Errorf("%w: %s", ErrNoQuestionsForDifficulty, difficulty)
	}
	return bucket[rng.IntN(len(bucket))], nil
}

// shuffle returns a Fisher-Yates permutation of a copy of in.
func shuffle(in []model.Question, rng *rand.Rand) []model.Question {
	out := make([]model.Question, len(in))
	copy(out, in)
	for i := len(out) - 1; i > 0; i-- {
		j := rng.IntN(i + 1)
		out[i], out[j] = out[j], out[i]
	}
	return out
}

// NewRand returns a generator seeded from the runtime's entropy source.
func NewRand() *rand.Rand {
	return rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
}
