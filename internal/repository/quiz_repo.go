package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/simply1git/vibe-check/internal/domain"
)

type QuizRepository interface {
	ReplaceForTarget(ctx context.Context, targetMemberID string, questions []domain.QuizQuestion) error
	ListByTarget(ctx context.Context, targetMemberID string) ([]domain.QuizQuestion, error)
}

type PgQuizRepository struct {
	pool *pgxpool.Pool
}

func NewPgQuizRepository(pool *pgxpool.Pool) *PgQuizRepository {
	return &PgQuizRepository{pool: pool}
}

// ReplaceForTarget borra el quiz previo del miembro y escribe el nuevo set en
// una sola transaccion, para que los lectores nunca vean un quiz a medias.
func (r *PgQuizRepository) ReplaceForTarget(ctx context.Context, targetMemberID string, questions []domain.QuizQuestion) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin quiz replace: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `DELETE FROM quiz_questions WHERE target_member_id = $1`, targetMemberID); err != nil {
		return fmt.Errorf("delete previous quiz: %w", err)
	}

	const insert = `
		INSERT INTO quiz_questions (id, group_id, target_member_id, question_id, prompt, correct_option, distractors, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	for _, q := range questions {
		if _, err := tx.Exec(ctx, insert,
			q.ID,
			q.GroupID,
			q.TargetMemberID,
			q.QuestionID,
			q.Prompt,
			q.CorrectOption,
			q.Distractors,
			q.CreatedAt,
		); err != nil {
			return fmt.Errorf("insert quiz question %s: %w", q.QuestionID, err)
		}
	}

	return tx.Commit(ctx)
}

func (r *PgQuizRepository) ListByTarget(ctx context.Context, targetMemberID string) ([]domain.QuizQuestion, error) {
	const query = `
		SELECT id, group_id, target_member_id, question_id, prompt, correct_option, distractors, created_at
		FROM quiz_questions
		WHERE target_member_id = $1
		ORDER BY question_id
	`
	rows, err := r.pool.Query(ctx, query, targetMemberID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var questions []domain.QuizQuestion
	for rows.Next() {
		var q domain.QuizQuestion
		if err := rows.Scan(&q.ID, &q.GroupID, &q.TargetMemberID, &q.QuestionID, &q.Prompt, &q.CorrectOption, &q.Distractors, &q.CreatedAt); err != nil {
			return nil, err
		}
		questions = append(questions, q)
	}
	return questions, rows.Err()
}
