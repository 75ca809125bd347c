package service

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/simply1git/vibe-check/internal/catalog"
	"github.com/simply1git/vibe-check/internal/domain"
	"github.com/simply1git/vibe-check/internal/repository"
	"github.com/simply1git/vibe-check/internal/vibe"
)

// QuizService materializa preguntas de quiz "que tan bien conoces a X":
// la respuesta real del miembro objetivo mas distractores tomados de las
// respuestas de sus amigos.
type QuizService struct {
	logger   *zap.Logger
	catalog  *catalog.Catalog
	members  repository.MemberRepository
	profiles repository.ProfileRepository
	quizzes  repository.QuizRepository
}

func NewQuizService(logger *zap.Logger, cat *catalog.Catalog, members repository.MemberRepository, profiles repository.ProfileRepository, quizzes repository.QuizRepository) *QuizService {
	return &QuizService{
		logger:   logger,
		catalog:  cat,
		members:  members,
		profiles: profiles,
		quizzes:  quizzes,
	}
}

// GenerateForMember reconstruye el quiz completo del miembro objetivo y
// reemplaza el set anterior. Devuelve cuantas preguntas quedaron escritas.
// Un miembro sin perfil todavia no es un error: simplemente no hay quiz.
func (s *QuizService) GenerateForMember(ctx context.Context, callerGroupID, memberID string) (int, error) {
	member, err := s.members.GetByID(ctx, memberID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return 0, ErrMemberNotFound
		}
		return 0, fmt.Errorf("get member %s: %w", memberID, err)
	}
	if member.GroupID != callerGroupID {
		return 0, ErrMemberNotFound
	}

	profile, err := s.profiles.GetByMemberID(ctx, memberID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			s.logger.Info("no profile yet, skipping quiz generation", zap.String("member_id", memberID))
			return 0, nil
		}
		return 0, fmt.Errorf("get profile: %w", err)
	}

	pool, err := s.buildDistractorPool(ctx, member.GroupID, memberID)
	if err != nil {
		return 0, err
	}

	now := time.Now().UTC()
	var questions []domain.QuizQuestion
	for qID, ans := range profile.Answers {
		if ans.Val == "" {
			continue
		}
		questionDef, ok := s.catalog.Resolve(qID)
		if !ok {
			continue
		}

		distractors := vibe.SelectDistractors(ans.Val, pool[qID], questionDef.Options)
		questions = append(questions, domain.QuizQuestion{
			ID:             uuid.NewString(),
			GroupID:        member.GroupID,
			TargetMemberID: memberID,
			QuestionID:     qID,
			Prompt:         strings.ReplaceAll(questionDef.FriendText, "{name}", member.Name),
			CorrectOption:  ans.Val,
			Distractors:    distractors,
			CreatedAt:      now,
		})
	}

	if err := s.quizzes.ReplaceForTarget(ctx, memberID, questions); err != nil {
		return 0, fmt.Errorf("replace quiz: %w", err)
	}
	s.logger.Info("quiz generated",
		zap.String("member_id", memberID),
		zap.Int("question_count", len(questions)),
	)
	return len(questions), nil
}

// buildDistractorPool junta, por pregunta, las respuestas de los demas
// miembros del grupo (sin duplicados).
func (s *QuizService) buildDistractorPool(ctx context.Context, groupID, excludeMemberID string) (map[string][]string, error) {
	profiles, err := s.profiles.ListByGroup(ctx, groupID)
	if err != nil {
		return nil, fmt.Errorf("list group profiles: %w", err)
	}

	seen := make(map[string]map[string]struct{})
	pool := make(map[string][]string)
	for _, p := range profiles {
		if p.MemberID == excludeMemberID {
			continue
		}
		for qID, ans := range p.Answers {
			if ans.Val == "" {
				continue
			}
			if seen[qID] == nil {
				seen[qID] = make(map[string]struct{})
			}
			if _, dup := seen[qID][ans.Val]; dup {
				continue
			}
			seen[qID][ans.Val] = struct{}{}
			pool[qID] = append(pool[qID], ans.Val)
		}
	}
	return pool, nil
}

// QuizItem es una pregunta lista para jugar: las opciones ya vienen
// mezcladas para que la correcta no delate su posicion.
type QuizItem struct {
	QuestionID    string   `json:"question_id"`
	Prompt        string   `json:"prompt"`
	Options       []string `json:"options"`
	CorrectOption string   `json:"correct_option"`
}

// GetQuiz devuelve el quiz del miembro objetivo en forma jugable.
func (s *QuizService) GetQuiz(ctx context.Context, callerGroupID, memberID string) ([]QuizItem, error) {
	member, err := s.members.GetByID(ctx, memberID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrMemberNotFound
		}
		return nil, fmt.Errorf("get member %s: %w", memberID, err)
	}
	if member.GroupID != callerGroupID {
		return nil, ErrMemberNotFound
	}

	stored, err := s.quizzes.ListByTarget(ctx, memberID)
	if err != nil {
		return nil, fmt.Errorf("list quiz: %w", err)
	}

	items := make([]QuizItem, 0, len(stored))
	for _, q := range stored {
		options := make([]string, 0, len(q.Distractors)+1)
		options = append(options, q.CorrectOption)
		options = append(options, q.Distractors...)
		rand.Shuffle(len(options), func(i, j int) {
			options[i], options[j] = options[j], options[i]
		})
		items = append(items, QuizItem{
			QuestionID:    q.QuestionID,
			Prompt:        q.Prompt,
			Options:       options,
			CorrectOption: q.CorrectOption,
		})
	}
	return items, nil
}
