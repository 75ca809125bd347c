package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/simply1git/vibe-check/internal/domain"
)

type MemberRepository interface {
	Create(ctx context.Context, member domain.Member) error
	GetByID(ctx context.Context, id string) (domain.Member, error)
	GetByGroupAndName(ctx context.Context, groupID, name string) (domain.Member, error)
	ListByGroup(ctx context.Context, groupID string) ([]domain.Member, error)
	UpdateCompletedChapters(ctx context.Context, id string, chapters int) error
}

type PgMemberRepository struct {
	pool *pgxpool.Pool
}

func NewPgMemberRepository(pool *pgxpool.Pool) *PgMemberRepository {
	return &PgMemberRepository{pool: pool}
}

func (r *PgMemberRepository) Create(ctx context.Context, member domain.Member) error {
	const query = `
		INSERT INTO members (id, group_id, name, completed_chapters, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`
	_, err := r.pool.Exec(ctx, query,
		member.ID,
		member.GroupID,
		member.Name,
		member.CompletedChapters,
		member.CreatedAt,
	)
	return err
}

func (r *PgMemberRepository) GetByID(ctx context.Context, id string) (domain.Member, error) {
	const query = `
		SELECT id, group_id, name, completed_chapters, created_at
		FROM members
		WHERE id = $1
	`
	return r.scanOne(r.pool.QueryRow(ctx, query, id))
}

func (r *PgMemberRepository) GetByGroupAndName(ctx context.Context, groupID, name string) (domain.Member, error) {
	const query = `
		SELECT id, group_id, name, completed_chapters, created_at
		FROM members
		WHERE group_id = $1 AND name = $2
	`
	return r.scanOne(r.pool.QueryRow(ctx, query, groupID, name))
}

func (r *PgMemberRepository) ListByGroup(ctx context.Context, groupID string) ([]domain.Member, error) {
	const query = `
		SELECT id, group_id, name, completed_chapters, created_at
		FROM members
		WHERE group_id = $1
		ORDER BY created_at
	`
	rows, err := r.pool.Query(ctx, query, groupID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var members []domain.Member
	for rows.Next() {
		var m domain.Member
		if err := rows.Scan(&m.ID, &m.GroupID, &m.Name, &m.CompletedChapters, &m.CreatedAt); err != nil {
			return nil, err
		}
		members = append(members, m)
	}
	return members, rows.Err()
}

func (r *PgMemberRepository) UpdateCompletedChapters(ctx context.Context, id string, chapters int) error {
	const query = `
		UPDATE members SET completed_chapters = $2 WHERE id = $1
	`
	tag, err := r.pool.Exec(ctx, query, id, chapters)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PgMemberRepository) scanOne(row pgx.Row) (domain.Member, error) {
	var m domain.Member
	err := row.Scan(&m.ID, &m.GroupID, &m.Name, &m.CompletedChapters, &m.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.Member{}, ErrNotFound
	}
	return m, err
}
