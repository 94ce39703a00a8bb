package service

import (
	"sync"
	"testing"
)

func TestSubmissionTrackerIdempotentAdd(t *testing.T) {
	tr := NewSubmissionTracker()
	if tr.Has("Two Sum") {
		t.Fatal("empty tracker reports a title")
	}

	if !tr.Add("Two Sum") {
		t.Fatal("first Add should report a new title")
	}
	if tr.Add("Two Sum") {
		t.Fatal("second Add should be a no-op")
	}
	if !tr.Has("Two Sum") {
		t.Fatal("Has after Add = false")
	}
	if tr.Len() != 1 {
		t.Fatalf("Len() = %d, want 1", tr.Len())
	}
}

func TestSubmissionTrackerSnapshotIsolated(t *testing.T) {
	tr := NewSubmissionTracker()
	tr.Add("A")

	snap := tr.All()
	delete(snap, "A")
	snap["B"] = struct{}{}

	if !tr.Has("A") || tr.Has("B") {
		t.Fatal("snapshot mutation leaked into the tracker")
	}
}

func TestSubmissionTrackerConcurrentReads(t *testing.T) {
	tr := NewSubmissionTracker()
	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		for i := 0; i < 500; i++ {
			tr.Add(string(rune('a' + i%26)))
		}
	}()
	for r := 0; r < 4; r++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 500; i++ {
				_ = tr.Has("a")
				_ = tr.All()
			}
		}()
	}
	wg.Wait()

	if tr.Len() != 26 {
		t.Fatalf("Len() = %d, want 26", tr.Len())
	}
}
