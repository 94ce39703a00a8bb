package main

import (
	"context"
	"flag"
	"time"

	"github.com/7vignesh/blind-coding/internal/config"
	"github.com/7vignesh/blind-coding/internal/database"
	"github.com/7vignesh/blind-coding/internal/logger"
	"github.com/7vignesh/blind-coding/internal/model"
	"github.com/7vignesh/blind-coding/internal/repository"
)

func main() {
	cfg := config.Load()

	var file string
	flag.StringVar(&file, "file", cfg.QuestionsFile, "Question corpus file (.json, .yaml or .yml)")
	flag.Parse()

	log := logger.Setup(cfg.LogLevel, cfg.LogFormat).With().Str("component", "seed_questions").Logger()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	questions, err := repository.LoadQuestionsFile(file)
	if err != nil {
		log.Fatal().Err(err).Str("file", file).Msg("Failed to load corpus file")
	}

	// Validate through the store so the database never holds a corpus the
	// server would refuse at startup.
	store, err := repository.NewQuestionStore(questions)
	if err != nil {
		log.Fatal().Err(err).Msg("Corpus is invalid")
	}

	pool, err := database.NewPostgresPool(ctx, cfg, database.CorpusWrite, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
	}
	defer pool.Close()

	repo := repository.NewQuestionRepository(pool)
	if err := repo.Upsert(ctx, store.All()); err != nil {
		log.Fatal().Err(err).Msg("Failed to seed questions")
	}

	for _, d := range model.Difficulties {
		log.Info().Str("difficulty", string(d)).Int("count", len(store.ByDifficulty(d))).Msg("Seeded tier")
	}
	log.Info().Int("total", store.Len()).Msg("Seeding complete")
}
