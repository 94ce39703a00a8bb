package main

import (
	"bytes"
	"errors"
	"io"
	"strings"
	"testing"
)

func TestPrompt_RepromptsUntilKnownTier(t *testing.T) {
	var out bytes.Buffer
	got, err := prompt(strings.NewReader("extreme\n hard \n"), &out)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "hard" {
		t.Errorf("expected %q, got %q", "hard", got)
	}
	if !strings.Contains(out.String(), `Unknown difficulty "extreme"`) {
		t.Errorf("expected rejection message, got %q", out.String())
	}
}

func TestPrompt_EmptyLineDismisses(t *testing.T) {
	_, err := prompt(strings.NewReader("\n"), io.Discard)
	if !errors.Is(err, io.EOF) {
		t.Fatalf("expected io.EOF, got %v", err)
	}
}

func TestPrompt_EOFDismisses(t *testing.T) {
	_, err := prompt(strings.NewReader(""), io.Discard)
	if !errors.Is(err, io.EOF) {
		t.Fatalf("expected io.EOF, got %v", err)
	}
}
