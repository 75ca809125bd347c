package service

import (
	"context"
	"errors"
	"math"

	"github.com/simply1git/vibe-check/internal/domain"
	"github.com/simply1git/vibe-check/internal/repository"
)

type mockGroupRepo struct {
	bySlug map[string]domain.Group
}

func newMockGroupRepo() *mockGroupRepo {
	return &mockGroupRepo{bySlug: make(map[string]domain.Group)}
}

func (m *mockGroupRepo) Create(_ context.Context, group domain.Group) error {
	if _, dup := m.bySlug[group.Slug]; dup {
		return errors.New("duplicate slug")
	}
	m.bySlug[group.Slug] = group
	return nil
}

func (m *mockGroupRepo) GetBySlug(_ context.Context, slug string) (domain.Group, error) {
	group, ok := m.bySlug[slug]
	if !ok {
		return domain.Group{}, repository.ErrNotFound
	}
	return group, nil
}

type mockMemberRepo struct {
	byID map[string]domain.Member
}

func newMockMemberRepo() *mockMemberRepo {
	return &mockMemberRepo{byID: make(map[string]domain.Member)}
}

func (m *mockMemberRepo) Create(_ context.Context, member domain.Member) error {
	m.byID[member.ID] = member
	return nil
}

func (m *mockMemberRepo) GetByID(_ context.Context, id string) (domain.Member, error) {
	member, ok := m.byID[id]
	if !ok {
		return domain.Member{}, repository.ErrNotFound
	}
	return member, nil
}

func (m *mockMemberRepo) GetByGroupAndName(_ context.Context, groupID, name string) (domain.Member, error) {
	for _, member := range m.byID {
		if member.GroupID == groupID && member.Name == name {
			return member, nil
		}
	}
	return domain.Member{}, repository.ErrNotFound
}

func (m *mockMemberRepo) ListByGroup(_ context.Context, groupID string) ([]domain.Member, error) {
	var members []domain.Member
	for _, member := range m.byID {
		if member.GroupID == groupID {
			members = append(members, member)
		}
	}
	return members, nil
}

func (m *mockMemberRepo) UpdateCompletedChapters(_ context.Context, id string, chapters int) error {
	member, ok := m.byID[id]
	if !ok {
		return repository.ErrNotFound
	}
	member.CompletedChapters = chapters
	m.byID[id] = member
	return nil
}

type mockProfileRepo struct {
	members  *mockMemberRepo
	profiles map[string]domain.Profile
	stats    map[string]domain.VibeStats
}

func newMockProfileRepo(members *mockMemberRepo) *mockProfileRepo {
	return &mockProfileRepo{
		members:  members,
		profiles: make(map[string]domain.Profile),
		stats:    make(map[string]domain.VibeStats),
	}
}

func (m *mockProfileRepo) Upsert(_ context.Context, profile domain.Profile, stats domain.VibeStats) error {
	m.profiles[profile.MemberID] = profile
	m.stats[profile.MemberID] = stats
	return nil
}

func (m *mockProfileRepo) GetByMemberID(_ context.Context, memberID string) (domain.Profile, error) {
	profile, ok := m.profiles[memberID]
	if !ok {
		return domain.Profile{}, repository.ErrNotFound
	}
	return profile, nil
}

func (m *mockProfileRepo) ListByGroup(_ context.Context, groupID string) ([]domain.Profile, error) {
	var result []domain.Profile
	for memberID, profile := range m.profiles {
		member, ok := m.members.byID[memberID]
		if !ok || member.GroupID != groupID {
			continue
		}
		result = append(result, profile)
	}
	return result, nil
}

func (m *mockProfileRepo) ClosestByStats(_ context.Context, groupID, memberID string, stats domain.VibeStats) (string, error) {
	best := ""
	bestDist := math.MaxFloat64
	for id, s := range m.stats {
		if id == memberID {
			continue
		}
		member, ok := m.members.byID[id]
		if !ok || member.GroupID != groupID {
			continue
		}
		d := dist(stats, s)
		if d < bestDist {
			bestDist = d
			best = id
		}
	}
	if best == "" {
		return "", repository.ErrNotFound
	}
	return best, nil
}

func dist(a, b domain.VibeStats) float64 {
	dc := float64(a.Chaos - b.Chaos)
	ds := float64(a.Social - b.Social)
	dw := float64(a.Wholesome - b.Wholesome)
	return math.Sqrt(dc*dc + ds*ds + dw*dw)
}

type mockQuizRepo struct {
	byTarget map[string][]domain.QuizQuestion
}

func newMockQuizRepo() *mockQuizRepo {
	return &mockQuizRepo{byTarget: make(map[string][]domain.QuizQuestion)}
}

func (m *mockQuizRepo) ReplaceForTarget(_ context.Context, targetMemberID string, questions []domain.QuizQuestion) error {
	m.byTarget[targetMemberID] = questions
	return nil
}

func (m *mockQuizRepo) ListByTarget(_ context.Context, targetMemberID string) ([]domain.QuizQuestion, error) {
	return m.byTarget[targetMemberID], nil
}
