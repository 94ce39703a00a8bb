package service

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/7vignesh/blind-coding/internal/model"
	"github.com/rs/zerolog"
)

var twoSum = model.Question{
	Title:       "Two Sum (II)",
	Difficulty:  model.DifficultyEasy,
	Topic:       "Arrays",
	Description: "Find two numbers.",
}

func fixedWriter(dir string) *SubmissionWriter {
	w := NewSubmissionWriter(dir, zerolog.Nop())
	at := time.Date(2026, 10, 17, 9, 30, 0, 123456789, time.UTC)
	w.now = func() time.Time { return at }
	return w
}

func TestWriteSubmission(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "submissions")
	w := fixedWriter(dir)

	answer := "func twoSum() {}\n\n  // keep   spacing\n"
	path, err := w.WriteSubmission(twoSum, answer, "ada.l")
	if err != nil {
		t.Fatalf("WriteSubmission: %v", err)
	}

	wantName := "ada_l_Two_Sum__II__20261017-093000.123456789.txt"
	if filepath.Base(path) != wantName {
		t.Fatalf("filename = %q, want %q", filepath.Base(path), wantName)
	}
	if filepath.Dir(path) != dir {
		t.Fatalf("dir = %q, want %q", filepath.Dir(path), dir)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	lines := strings.SplitN(string(data), "\n", 8)
	want := []string{
		"Submitted By: ada.l",
		"Question: Two Sum (II)",
		"Difficulty: Easy",
		"Topic: Arrays",
		"Submitted At: Sat, 17 Oct 2026 09:30:00 UTC",
		submissionSeparator,
		"",
	}
	for i, w := range want {
		if lines[i] != w {
			t.Errorf("line %d = %q, want %q", i, lines[i], w)
		}
	}
	if lines[7] != answer {
		t.Errorf("answer = %q, want verbatim %q", lines[7], answer)
	}
}

func TestWriteSubmissionAvoidsCollisions(t *testing.T) {
	w := fixedWriter(t.TempDir())

	first, err := w.WriteSubmission(twoSum, "one", "ada")
	if err != nil {
		t.Fatalf("first write: %v", err)
	}
	second, err := w.WriteSubmission(twoSum, "two", "ada")
	if err != nil {
		t.Fatalf("second write: %v", err)
	}
	if first == second {
		t.Fatalf("both submissions written to %s", first)
	}

	data, _ := os.ReadFile(first)
	if !strings.HasSuffix(string(data), "\none") {
		t.Fatalf("first file was overwritten: %q", data)
	}
}

func TestWriteSubmissionDirectoryFailureIsRetryable(t *testing.T) {
	root := t.TempDir()
	dir := filepath.Join(root, "submissions")
	// A regular file where the directory should go makes MkdirAll fail.
	if err := os.WriteFile(dir, []byte("in the way"), 0o644); err != nil {
		t.Fatal(err)
	}
	w := fixedWriter(dir)

	_, err := w.WriteSubmission(twoSum, "answer", "ada")
	if !errors.Is(err, ErrSubmissionWriteFailed) {
		t.Fatalf("expected ErrSubmissionWriteFailed, got %v", err)
	}

	if err := os.Remove(dir); err != nil {
		t.Fatal(err)
	}
	if _, err := w.WriteSubmission(twoSum, "answer", "ada"); err != nil {
		t.Fatalf("retry after removing the obstacle: %v", err)
	}
}

func TestSanitizeFilenamePart(t *testing.T) {
	cases := map[string]string{
		"Two Sum":         "Two_Sum",
		"LRU-Cache/v2":    "LRU_Cache_v2",
		"héllo":           "h_llo",
		"":                "anonymous",
		"already_clean42": "already_clean42",
	}
	for in, want := range cases {
		if got := SanitizeFilenamePart(in); got != want {
			t.Errorf("SanitizeFilenamePart(%q) = %q, want %q", in, got, want)
		}
	}
}
