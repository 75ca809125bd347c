package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/simply1git/vibe-check/internal/domain"
	"github.com/simply1git/vibe-check/internal/repository"
	"github.com/simply1git/vibe-check/internal/vibe"
)

var ErrNoTwin = errors.New("no twin available")

// ProfileService administra el cuestionario de cada miembro y expone los
// derivados del motor de vibra. Los perfiles derivados nunca se persisten:
// solo las respuestas crudas y el vector de rasgos para la busqueda de twin.
type ProfileService struct {
	logger   *zap.Logger
	members  repository.MemberRepository
	profiles repository.ProfileRepository
	engine   *vibe.Engine
}

func NewProfileService(logger *zap.Logger, members repository.MemberRepository, profiles repository.ProfileRepository, engine *vibe.Engine) *ProfileService {
	return &ProfileService{
		logger:   logger,
		members:  members,
		profiles: profiles,
		engine:   engine,
	}
}

// SaveAnswers mergea respuestas nuevas sobre las existentes y actualiza el
// progreso de capitulos si avanzo. La entrada nunca se muta.
func (s *ProfileService) SaveAnswers(ctx context.Context, memberID string, answers domain.AnswerMap, completedChapter int) (domain.Profile, error) {
	member, err := s.members.GetByID(ctx, memberID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return domain.Profile{}, ErrMemberNotFound
		}
		return domain.Profile{}, fmt.Errorf("get member %s: %w", memberID, err)
	}

	merged := make(domain.AnswerMap)
	existing, err := s.profiles.GetByMemberID(ctx, memberID)
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		return domain.Profile{}, fmt.Errorf("get profile: %w", err)
	}
	for id, ans := range existing.Answers {
		merged[id] = ans
	}
	for id, ans := range answers {
		if ans.Val == "" {
			continue
		}
		merged[id] = ans
	}

	profile := domain.Profile{
		MemberID:  memberID,
		Answers:   merged,
		UpdatedAt: time.Now().UTC(),
	}
	stats := s.engine.Analyze(merged).Stats
	if err := s.profiles.Upsert(ctx, profile, stats); err != nil {
		return domain.Profile{}, fmt.Errorf("upsert profile: %w", err)
	}

	if completedChapter > member.CompletedChapters {
		if err := s.members.UpdateCompletedChapters(ctx, memberID, completedChapter); err != nil {
			s.logger.Warn("update chapter progress failed", zap.Error(err), zap.String("member_id", memberID))
		}
	}

	s.logger.Info("answers saved",
		zap.String("member_id", memberID),
		zap.Int("answer_count", len(merged)),
	)
	return profile, nil
}

// GetVibe recalcula el perfil de vibra bajo demanda. Un miembro sin
// respuestas obtiene el perfil base, no un error. callerGroupID limita la
// lectura al propio grupo: un id de otro grupo se reporta como inexistente.
func (s *ProfileService) GetVibe(ctx context.Context, callerGroupID, memberID string) (domain.VibeProfile, error) {
	member, err := s.members.GetByID(ctx, memberID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return domain.VibeProfile{}, ErrMemberNotFound
		}
		return domain.VibeProfile{}, fmt.Errorf("get member %s: %w", memberID, err)
	}
	if member.GroupID != callerGroupID {
		return domain.VibeProfile{}, ErrMemberNotFound
	}

	profile, err := s.profiles.GetByMemberID(ctx, memberID)
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		return domain.VibeProfile{}, fmt.Errorf("get profile: %w", err)
	}
	return s.engine.Analyze(profile.Answers), nil
}

// Compatibility calcula el porcentaje de match entre dos miembros del mismo
// grupo. Perfiles faltantes cuentan como vacios y rinden 0, no error.
func (s *ProfileService) Compatibility(ctx context.Context, callerGroupID, memberID, otherID string) (int, error) {
	mine, err := s.members.GetByID(ctx, memberID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return 0, ErrMemberNotFound
		}
		return 0, fmt.Errorf("get member %s: %w", memberID, err)
	}
	theirs, err := s.members.GetByID(ctx, otherID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return 0, ErrMemberNotFound
		}
		return 0, fmt.Errorf("get member %s: %w", otherID, err)
	}
	if mine.GroupID != callerGroupID || theirs.GroupID != callerGroupID {
		return 0, ErrMemberNotFound
	}

	myProfile, err := s.profiles.GetByMemberID(ctx, memberID)
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		return 0, fmt.Errorf("get profile: %w", err)
	}
	theirProfile, err := s.profiles.GetByMemberID(ctx, otherID)
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		return 0, fmt.Errorf("get profile: %w", err)
	}

	return s.engine.Compatibility(myProfile.Answers, theirProfile.Answers), nil
}

// VibeTwin devuelve el miembro del grupo con el vector de rasgos mas cercano.
func (s *ProfileService) VibeTwin(ctx context.Context, callerGroupID, memberID string) (domain.Member, error) {
	member, err := s.members.GetByID(ctx, memberID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return domain.Member{}, ErrMemberNotFound
		}
		return domain.Member{}, fmt.Errorf("get member %s: %w", memberID, err)
	}
	if member.GroupID != callerGroupID {
		return domain.Member{}, ErrMemberNotFound
	}

	profile, err := s.profiles.GetByMemberID(ctx, memberID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return domain.Member{}, ErrNoTwin
		}
		return domain.Member{}, fmt.Errorf("get profile: %w", err)
	}

	stats := s.engine.Analyze(profile.Answers).Stats
	twinID, err := s.profiles.ClosestByStats(ctx, member.GroupID, memberID, stats)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return domain.Member{}, ErrNoTwin
		}
		return domain.Member{}, fmt.Errorf("closest by stats: %w", err)
	}

	twin, err := s.members.GetByID(ctx, twinID)
	if err != nil {
		return domain.Member{}, fmt.Errorf("get twin %s: %w", twinID, err)
	}
	return twin, nil
}
