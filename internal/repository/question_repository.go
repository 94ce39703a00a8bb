package repository

import (
	"context"
	"fmt"

	"github.com/7vignesh/blind-coding/internal/model"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// QuestionRepository reads and seeds the question corpus in PostgreSQL.
type QuestionRepository struct {
	pool *pgxpool.Pool
}

// NewQuestionRepository creates a new QuestionRepository.
func NewQuestionRepository(pool *pgxpool.Pool) *QuestionRepository {
	return &QuestionRepository{pool: pool}
}

// ListAll retrieves the whole corpus ordered by position.
func (r *QuestionRepository) ListAll(ctx context.Context) ([]model.Question, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT title, difficulty, topic, description
		 FROM questions
		 ORDER BY position, title`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var questions []model.Question
	for rows.Next() {
		var q model.Question
		if err := rows.Scan(&q.Title, &q.Difficulty, &q.Topic, &q.Description); err != nil {
			return nil, err
		}
		questions = append(questions, q)
	}
	return questions, rows.Err()
}

// Upsert inserts or refreshes the given questions inside one transaction.
// The slice order becomes the stored position.
func (r *QuestionRepository) Upsert(ctx context.Context, questions []model.Question) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	batch := &pgx.Batch{}
	for i, q := range questions {
		batch.Queue(
			`INSERT INTO questions (title, difficulty, topic, description, position)
			 VALUES ($1, $2, $3, $4, $5)
			 ON CONFLICT (title) DO UPDATE
			 SET difficulty = EXCLUDED.difficulty,
			     topic = EXCLUDED.topic,
			     description = EXCLUDED.description,
			     position = EXCLUDED.position`,
			q.Title, string(q.Difficulty), q.Topic, q.Description, i,
		)
	}
	if err := tx.SendBatch(ctx, batch).Close(); err != nil {
		return fmt.Errorf("upsert questions: %w", err)
	}

	return tx.Commit(ctx)
}
