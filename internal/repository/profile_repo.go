package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	pgvector "github.com/pgvector/pgvector-go"

	"github.com/simply1git/vibe-check/internal/domain"
)

type ProfileRepository interface {
	Upsert(ctx context.Context, profile domain.Profile, stats domain.VibeStats) error
	GetByMemberID(ctx context.Context, memberID string) (domain.Profile, error)
	ListByGroup(ctx context.Context, groupID string) ([]domain.Profile, error)
	ClosestByStats(ctx context.Context, groupID, memberID string, stats domain.VibeStats) (string, error)
}

type PgProfileRepository struct {
	pool *pgxpool.Pool
}

func NewPgProfileRepository(pool *pgxpool.Pool) *PgProfileRepository {
	return &PgProfileRepository{pool: pool}
}

// Upsert guarda las respuestas como jsonb y refresca el vector de rasgos que
// alimenta la busqueda de "vibe twin".
func (r *PgProfileRepository) Upsert(ctx context.Context, profile domain.Profile, stats domain.VibeStats) error {
	const query = `
		INSERT INTO profiles (member_id, answers, stats_vec, updated_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (member_id) DO UPDATE
		SET answers = EXCLUDED.answers,
		    stats_vec = EXCLUDED.stats_vec,
		    updated_at = EXCLUDED.updated_at
	`
	_, err := r.pool.Exec(ctx, query,
		profile.MemberID,
		profile.Answers,
		statsVector(stats),
		profile.UpdatedAt,
	)
	return err
}

func (r *PgProfileRepository) GetByMemberID(ctx context.Context, memberID string) (domain.Profile, error) {
	const query = `
		SELECT member_id, answers, updated_at
		FROM profiles
		WHERE member_id = $1
	`
	var profile domain.Profile
	err := r.pool.QueryRow(ctx, query, memberID).Scan(
		&profile.MemberID,
		&profile.Answers,
		&profile.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.Profile{}, ErrNotFound
	}
	return profile, err
}

func (r *PgProfileRepository) ListByGroup(ctx context.Context, groupID string) ([]domain.Profile, error) {
	const query = `
		SELECT p.member_id, p.answers, p.updated_at
		FROM profiles p
		JOIN members m ON m.id = p.member_id
		WHERE m.group_id = $1
	`
	rows, err := r.pool.Query(ctx, query, groupID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var profiles []domain.Profile
	for rows.Next() {
		var p domain.Profile
		if err := rows.Scan(&p.MemberID, &p.Answers, &p.UpdatedAt); err != nil {
			return nil, err
		}
		profiles = append(profiles, p)
	}
	return profiles, rows.Err()
}

// ClosestByStats devuelve el miembro del grupo con el vector de rasgos mas
// cercano (distancia L2 de pgvector), excluyendo al propio miembro.
func (r *PgProfileRepository) ClosestByStats(ctx context.Context, groupID, memberID string, stats domain.VibeStats) (string, error) {
	const query = `
		SELECT p.member_id
		FROM profiles p
		JOIN members m ON m.id = p.member_id
		WHERE m.group_id = $1 AND p.member_id <> $2 AND p.stats_vec IS NOT NULL
		ORDER BY p.stats_vec <-> $3
		LIMIT 1
	`
	var twinID string
	err := r.pool.QueryRow(ctx, query, groupID, memberID, statsVector(stats)).Scan(&twinID)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", ErrNotFound
	}
	return twinID, err
}

func statsVector(stats domain.VibeStats) pgvector.Vector {
	return pgvector.NewVector([]float32{
		float32(stats.Chaos),
		float32(stats.Social),
		float32(stats.Wholesome),
	})
}
