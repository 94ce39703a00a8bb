package service

import "sync"

// SubmissionTracker is the append-only set of titles submitted during this
// process lifetime. Reads may run concurrently with a writer.
type SubmissionTracker struct {
	mu     sync.RWMutex
	titles map[string]struct{}
}

// NewSubmissionTracker creates an empty tracker.
func NewSubmissionTracker() *SubmissionTracker {
	return &SubmissionTracker{titles: make(map[string]struct{})}
}

// Has reports whether title has been submitted.
func (t *SubmissionTracker) Has(title string) bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	_, ok := t.titles[title]
	return ok
}

// Add records title. Adding a present title is a no-op; the result reports
// whether the title was new.
func (t *SubmissionTracker) Add(title string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	if _, ok := t.titles[title]; ok {
		return false
	}
	t.titles[title] = struct{}{}
	return true
}

// All returns a snapshot of the submitted titles.
func (t *SubmissionTracker) All() map[string]struct{} {
	t.mu.RLock()
	defer t.mu.RUnlock()
	out := make(map[string]struct{}, len(t.titles))
	for title := range t.titles {
		out[title] = struct{}{}
	}
	return out
}

// Len returns the number of submitted titles.
func (t *SubmissionTracker) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.titles)
}
