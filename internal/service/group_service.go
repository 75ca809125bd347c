package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/simply1git/vibe-check/internal/domain"
	"github.com/simply1git/vibe-check/internal/repository"
)

var (
	ErrGroupNotFound  = errors.New("group not found")
	ErrMemberNotFound = errors.New("member not found")
	ErrInvalidPin     = errors.New("invalid pin")
	ErrInvalidName    = errors.New("invalid name")
	ErrRateLimited    = errors.New("rate limited")
)

const (
	pinLength       = 4
	joinRateWindow  = 10 * time.Minute
	joinRateMaxHits = 5
	slugAttempts    = 5
)

// GroupService coordina creacion de grupos y el ingreso por slug + PIN.
type GroupService struct {
	logger      *zap.Logger
	groups      repository.GroupRepository
	members     repository.MemberRepository
	joinLimiter JoinRateLimiter
}

func NewGroupService(logger *zap.Logger, groups repository.GroupRepository, members repository.MemberRepository, joinLimiter JoinRateLimiter) *GroupService {
	if joinLimiter == nil {
		joinLimiter = NewJoinRateLimiter(joinRateWindow, joinRateMaxHits)
	}
	return &GroupService{
		logger:      logger,
		groups:      groups,
		members:     members,
		joinLimiter: joinLimiter,
	}
}

// CreateGroup registra un grupo nuevo con slug aleatorio y PIN hasheado.
// Reintenta ante colision de slug; el indice unico decide.
func (s *GroupService) CreateGroup(ctx context.Context, name, pin string) (domain.Group, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return domain.Group{}, ErrInvalidName
	}
	if !isValidPin(pin) {
		return domain.Group{}, ErrInvalidPin
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(pin), bcrypt.DefaultCost)
	if err != nil {
		return domain.Group{}, fmt.Errorf("hash pin: %w", err)
	}

	var lastErr error
	for i := 0; i < slugAttempts; i++ {
		group := domain.Group{
			ID:        uuid.NewString(),
			Slug:      GenerateSlug(),
			Name:      name,
			PinHash:   string(hash),
			CreatedAt: time.Now().UTC(),
		}
		if err := s.groups.Create(ctx, group); err != nil {
			lastErr = err
			continue
		}
		s.logger.Info("group created", zap.String("group_id", group.ID), zap.String("slug", group.Slug))
		return group, nil
	}
	return domain.Group{}, fmt.Errorf("create group: %w", lastErr)
}

// Join verifica el PIN y devuelve el miembro (existente o recien creado).
// clientKey alimenta el rate limiter de intentos de PIN.
func (s *GroupService) Join(ctx context.Context, slug, memberName, pin, clientKey string) (domain.Group, domain.Member, error) {
	memberName = strings.TrimSpace(memberName)
	if memberName == "" {
		return domain.Group{}, domain.Member{}, ErrInvalidName
	}

	if s.joinLimiter != nil && !s.joinLimiter.Allow(slug+"|"+clientKey) {
		return domain.Group{}, domain.Member{}, ErrRateLimited
	}

	group, err := s.groups.GetBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return domain.Group{}, domain.Member{}, ErrGroupNotFound
		}
		return domain.Group{}, domain.Member{}, fmt.Errorf("get group %s: %w", slug, err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(group.PinHash), []byte(pin)); err != nil {
		s.logger.Warn("pin mismatch", zap.String("slug", slug))
		return domain.Group{}, domain.Member{}, ErrInvalidPin
	}

	member, err := s.members.GetByGroupAndName(ctx, group.ID, memberName)
	if err == nil {
		return group, member, nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return domain.Group{}, domain.Member{}, fmt.Errorf("lookup member: %w", err)
	}

	member = domain.Member{
		ID:        uuid.NewString(),
		GroupID:   group.ID,
		Name:      memberName,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.members.Create(ctx, member); err != nil {
		return domain.Group{}, domain.Member{}, fmt.Errorf("create member: %w", err)
	}
	s.logger.Info("member joined", zap.String("group_id", group.ID), zap.String("member_id", member.ID))
	return group, member, nil
}

// GetGroup devuelve el grupo y sus miembros.
func (s *GroupService) GetGroup(ctx context.Context, slug string) (domain.Group, []domain.Member, error) {
	group, err := s.groups.GetBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return domain.Group{}, nil, ErrGroupNotFound
		}
		return domain.Group{}, nil, fmt.Errorf("get group %s: %w", slug, err)
	}
	members, err := s.members.ListByGroup(ctx, group.ID)
	if err != nil {
		return domain.Group{}, nil, fmt.Errorf("list members: %w", err)
	}
	return group, members, nil
}

func isValidPin(pin string) bool {
	if len(pin) != pinLength {
		return false
	}
	for _, r := range pin {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}
