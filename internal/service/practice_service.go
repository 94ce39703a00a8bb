package service

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"sort"
	"strings"
	"sync"

	"github.com/7vignesh/blind-coding/internal/model"
	"github.com/7vignesh/blind-coding/internal/repository"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Sentinel errors for the practice flow. ErrAlreadySubmitted and
// ErrSubmissionInFlight are expected races and callers drop them silently.
var (
	ErrQuestionNotFound   = errors.New("question not found")
	ErrAnswerViewNotFound = errors.New("answer view not found")
	ErrAlreadySubmitted   = errors.New("question already submitted")
	ErrSubmissionInFlight = errors.New("submission already in progress")
	ErrEmptyAnswer        = errors.New("answer is empty")
	// ErrStaleQuestionSet means the card was rendered from a set that has
	// since been redrawn.
	ErrStaleQuestionSet = errors.New("question set has changed")
)

// maxAnswerViews bounds the open-view registry. Submitted views are evicted
// first, then the oldest.
const maxAnswerViews = 256

// SubmissionStore persists an answer and returns where it went.
type SubmissionStore interface {
	WriteSubmission(q model.Question, answerText, identity string) (string, error)
}

// OverviewNotifier pushes targeted updates to open overview views.
type OverviewNotifier interface {
	MarkSubmitted(title string)
}

// AnswerView is one opened answer editor bound to a single question.
type AnswerView struct {
	ID       string
	Question model.Question
	// Legacy views come from the random-by-difficulty command and skip the
	// submitted-title gate.
	Legacy    bool
	Submitted bool
}

// PracticeService owns the current QuestionSet, the SubmissionTracker and
// every open answer view. It is the only mutator of that state.
type PracticeService struct {
	store    *repository.QuestionStore
	tracker  *SubmissionTracker
	writer   SubmissionStore
	notifier OverviewNotifier
	identity string
	log      zerolog.Logger

	mu       sync.Mutex
	rng      *rand.Rand
	current  model.QuestionSet
	views    map[string]*AnswerView
	order    []string
	maxViews int
	inFlight map[string]struct{}
}

// NewPracticeService wires the controller. rng may be nil for a runtime-seeded source.
func NewPracticeService(
	store *repository.QuestionStore,
	tracker *SubmissionTracker,
	writer SubmissionStore,
	notifier OverviewNotifier,
	identity string,
	rng *rand.Rand,
	log zerolog.Logger,
) *PracticeService {
	if rng == nil {
		rng = NewRand()
	}
	return &PracticeService{
		store:    store,
		tracker:  tracker,
		writer:   writer,
		notifier: notifier,
		identity: identity,
		log:      log.With().Str("component", "practice_service").Logger(),
		rng:      rng,
		views:    make(map[string]*AnswerView),
		maxViews: maxAnswerViews,
		inFlight: make(map[string]struct{}),
	}
}

// RefreshQuestionSet draws a new QuestionSet and makes it current. On failure
// the previous set stays current.
func (s *PracticeService) RefreshQuestionSet() (model.QuestionSet, map[string]struct{}, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	set, err := SelectQuestions(s.store.All(), s.rng)
	if err != nil {
		s.log.Warn().Err(err).Msg("Question set draw failed")
		return nil, nil, err
	}
	s.current = set

	s.log.Debug().Strs("titles", set.Titles()).Msg("Question set drawn")
	return cloneSet(set), s.tracker.All(), nil
}

// CurrentQuestionSet returns the set last drawn (nil before the first draw)
// together with a snapshot of submitted titles.
func (s *PracticeService) CurrentQuestionSet() (model.QuestionSet, map[string]struct{}) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return cloneSet(s.current), s.tracker.All()
}

// OpenAnswer opens (or reuses) the answer view for the card at index of the
// current set. title is the card's title as rendered; a mismatch means the
// set was redrawn after that overview was rendered.
func (s *PracticeService) OpenAnswer(index int, title string) (AnswerView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if index < 0 || index >= len(s.current) {
		return AnswerView{}, fmt.Errorf("%w: index %d", ErrQuestionNotFound, index)
	}
	q := s.current[index]
	if q.Title != title {
		return AnswerView{}, fmt.Errorf("%w: card %d is now %q", ErrStaleQuestionSet, index, q.Title)
	}
	if s.tracker.Has(q.Title) {
		return AnswerView{}, ErrAlreadySubmitted
	}

	for _, v := range s.views {
		if !v.Legacy && !v.Submitted && v.Question.Title == q.Title {
			return *v, nil
		}
	}
	return s.registerView(q, false), nil
}

// OpenRandom opens an answer view for one uniformly random question of the
// given tier. The submitted-title gate is not consulted.
func (s *PracticeService) OpenRandom(difficulty model.Difficulty) (AnswerView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	q, err := PickRandom(s.store.All(), difficulty, s.rng)
	if err != nil {
		return AnswerView{}, err
	}
	return s.registerView(q, true), nil
}

// AnswerView returns the registered view with the given id.
func (s *PracticeService) AnswerView(id string) (AnswerView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.views[id]
	if !ok {
		return AnswerView{}, ErrAnswerViewNotFound
	}
	return *v, nil
}

// Submit writes the answer for a view. Whitespace-only answers never reach
// the writer. On success the title is tracked and overviews are notified; on
// failure nothing changes and the view can retry.
func (s *PracticeService) Submit(viewID, answerText string) (string, error) {
	if strings.TrimSpace(answerText) == "" {
		return "", ErrEmptyAnswer
	}

	s.mu.Lock()
	v, ok := s.views[viewID]
	if !ok {
		s.mu.Unlock()
		return "", ErrAnswerViewNotFound
	}
	title := v.Question.Title
	if v.Submitted || (!v.Legacy && s.tracker.Has(title)) {
		s.mu.Unlock()
		return "", ErrAlreadySubmitted
	}
	if _, busy := s.inFlight[title]; busy {
		s.mu.Unlock()
		return "", ErrSubmissionInFlight
	}
	s.inFlight[title] = struct{}{}
	q := v.Question
	s.mu.Unlock()

	path, err := s.writer.WriteSubmission(q, answerText, s.identity)

	s.mu.Lock()
	delete(s.inFlight, title)
	if err != nil {
		s.mu.Unlock()
		s.log.Error().Err(err).Str("title", title).Msg("Submission failed")
		return "", err
	}
	v.Submitted = true
	s.tracker.Add(title)
	s.mu.Unlock()

	s.log.Info().Str("title", title).Str("view_id", viewID).Bool("legacy", v.Legacy).Msg("Question submitted")
	if s.notifier != nil {
		s.notifier.MarkSubmitted(title)
	}
	return path, nil
}

// SubmittedTitles returns the tracked titles sorted alphabetically.
func (s *PracticeService) SubmittedTitles() []string {
	all := s.tracker.All()
	titles := make([]string, 0, len(all))
	for t := range all {
		titles = append(titles, t)
	}
	sort.Strings(titles)
	return titles
}

// registerView must be called with s.mu held.
func (s *PracticeService) registerView(q model.Question, legacy bool) AnswerView {
	s.evictViews()
	v := &AnswerView{ID: uuid.NewString(), Question: q, Legacy: legacy}
	s.views[v.ID] = v
	s.order = append(s.order, v.ID)
	s.log.Debug().Str("view_id", v.ID).Str("title", q.Title).Bool("legacy", legacy).Msg("Answer view opened")
	return *v
}

// evictViews makes room for one more view. Must be called with s.mu held.
func (s *PracticeService) evictViews() {
	for len(s.order) > 0 && len(s.order) >= s.maxViews {
		victim := 0
		for i, id := range s.order {
			if s.views[id].Submitted {
				victim = i
				break
			}
		}
		id := s.order[victim]
		delete(s.views, id)
		s.order = append(s.order[:victim], s.order[victim+1:]...)
		s.log.Debug().Str("view_id", id).Msg("Answer view evicted")
	}
}

func cloneSet(set model.QuestionSet) model.QuestionSet {
	if set == nil {
		return nil
	}
	out := make(model.QuestionSet, len(set))
	copy(out, set)
	return out
}
