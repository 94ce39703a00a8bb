// Command pick-question prints one random question of a chosen difficulty.
package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"

	"github.com/7vignesh/blind-coding/internal/config"
	"github.com/7vignesh/blind-coding/internal/database"
	"github.com/7vignesh/blind-coding/internal/logger"
	"github.com/7vignesh/blind-coding/internal/model"
	"github.com/7vignesh/blind-coding/internal/service"
	"github.com/7vignesh/blind-coding/internal/view"
)

func main() {
	var raw string
	flag.StringVar(&raw, "difficulty", "", "Easy, Medium or Hard (prompted when omitted)")
	flag.Parse()

	cfg := config.Load()
	log := logger.SetupWriter(os.Stderr, cfg.LogLevel, cfg.LogFormat).
		With().Str("component", "pick_question").Logger()

	if raw == "" {
		if !term.IsTerminal(int(os.Stdin.Fd())) {
			fmt.Fprintln(os.Stderr, "stdin is not a terminal; pass -difficulty")
			os.Exit(2)
		}
		var err error
		raw, err = prompt(os.Stdin, os.Stderr)
		if err != nil {
			// Dismissed prompt: nothing to do.
			if errors.Is(err, io.EOF) {
				return
			}
			log.Fatal().Err(err).Msg("Failed to read difficulty")
		}
	}

	difficulty, err := model.ParseDifficulty(raw)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Unknown difficulty %q\n", raw)
		os.Exit(2)
	}

	store, err := database.LoadQuestionStore(context.Background(), cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load question corpus")
	}

	q, err := service.PickRandom(store.All(), difficulty, service.NewRand())
	if errors.Is(err, service.ErrNoQuestionsForDifficulty) {
		fmt.Fprintln(os.Stderr, "No questions found.")
		os.Exit(1)
	}
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to pick question")
	}

	fmt.Fprint(os.Stdout, view.RenderPlainText(q))
}

// prompt asks for a tier until a known one is entered.
func prompt(in io.Reader, out io.Writer) (string, error) {
	sc := bufio.NewScanner(in)
	for {
		fmt.Fprint(out, "Select difficulty [Easy/Medium/Hard]: ")
		if !sc.Scan() {
			if err := sc.Err(); err != nil {
				return "", err
			}
			return "", io.EOF
		}
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			return "", io.EOF
		}
		if _, err := model.ParseDifficulty(line); err == nil {
			return line, nil
		}
		fmt.Fprintf(out, "Unknown difficulty %q\n", line)
	}
}
