package database

import (
	"context"
	"fmt"

	"github.com/7vignesh/blind-coding/internal/config"
	"github.com/7vignesh/blind-coding/internal/repository"
	"github.com/rs/zerolog"
)

// LoadQuestionStore loads the corpus once from the configured source.
func LoadQuestionStore(ctx context.Context, cfg *config.Config, log zerolog.Logger) (*repository.QuestionStore, error) {
	switch cfg.CorpusSource {
	case config.CorpusSourceFile:
		questions, err := repository.LoadQuestionsFile(cfg.QuestionsFile)
		if err != nil {
			return nil, err
		}
		log.Info().Str("file", cfg.QuestionsFile).Int("count", len(questions)).Msg("Question corpus loaded")
		return repository.NewQuestionStore(questions)

	case config.CorpusSourcePostgres:
		pool, err := NewPostgresPool(ctx, cfg, CorpusRead, log)
		if err != nil {
			return nil, err
		}
		// The corpus is read once; the pool is not needed afterwards.
		defer pool.Close()

		questions, err := repository.NewQuestionRepository(pool).ListAll(ctx)
		if err != nil {
			return nil, fmt.Errorf("list questions: %w", err)
		}
		log.Info().Int("count", len(questions)).Msg("Question corpus loaded from PostgreSQL")
		return repository.NewQuestionStore(questions)

	default:
		return nil, fmt.Errorf("unknown CORPUS_SOURCE %q", cfg.CorpusSource)
	}
}
