package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/simply1git/vibe-check/internal/domain"
)

// ErrNotFound normaliza el "no existe" de cualquier repositorio.
var ErrNotFound = errors.New("not found")

type GroupRepository interface {
	Create(ctx context.Context, group domain.Group) error
	GetBySlug(ctx context.Context, slug string) (domain.Group, error)
}

type PgGroupRepository struct {
	pool *pgxpool.Pool
}

func NewPgGroupRepository(pool *pgxpool.Pool) *PgGroupRepository {
	return &PgGroupRepository{pool: pool}
}

func (r *PgGroupRepository) Create(ctx context.Context, group domain.Group) error {
	const query = `
		INSERT INTO groups (id, slug, name, pin_hash, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`
	_, err := r.pool.Exec(ctx, query,
		group.ID,
		group.Slug,
		group.Name,
		group.PinHash,
		group.CreatedAt,
	)
	return err
}

func (r *PgGroupRepository) GetBySlug(ctx context.Context, slug string) (domain.Group, error) {
	const query = `
		SELECT id, slug, name, pin_hash, created_at
		FROM groups
		WHERE slug = $1
	`
	var group domain.Group
	err := r.pool.QueryRow(ctx, query, slug).Scan(
		&group.ID,
		&group.Slug,
		&group.Name,
		&group.PinHash,
		&group.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.Group{}, ErrNotFound
	}
	return group, err
}
