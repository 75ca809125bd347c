package http

import (
	"bytes"
	"context"
	"encoding/json"
	"math"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/simply1git/vibe-check/internal/catalog"
	"github.com/simply1git/vibe-check/internal/domain"
	"github.com/simply1git/vibe-check/internal/repository"
	"github.com/simply1git/vibe-check/internal/service"
	"github.com/simply1git/vibe-check/internal/vibe"
)

type mockGroupRepo struct {
	byID   map[string]domain.Group
	bySlug map[string]string
}

func newMockGroupRepo() *mockGroupRepo {
	return &mockGroupRepo{byID: make(map[string]domain.Group), bySlug: make(map[string]string)}
}

func (m *mockGroupRepo) Create(_ context.Context, group domain.Group) error {
	m.byID[group.ID] = group
	m.bySlug[group.Slug] = group.ID
	return nil
}

func (m *mockGroupRepo) GetBySlug(_ context.Context, slug string) (domain.Group, error) {
	id, ok := m.bySlug[slug]
	if !ok {
		return domain.Group{}, repository.ErrNotFound
	}
	return m.byID[id], nil
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
	var out []domain.Member
	for _, member := range m.byID {
		if member.GroupID == groupID {
			out = append(out, member)
		}
	}
	return out, nil
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
	var out []domain.Profile
	for id, profile := range m.profiles {
		member, ok := m.members.byID[id]
		if ok && member.GroupID == groupID {
			out = append(out, profile)
		}
	}
	return out, nil
}

func (m *mockProfileRepo) ClosestByStats(_ context.Context, groupID, memberID string, stats domain.VibeStats) (string, error) {
	bestID := ""
	bestDist := math.MaxFloat64
	for id, s := range m.stats {
		member, ok := m.members.byID[id]
		if !ok || member.GroupID != groupID || id == memberID {
			continue
		}
		dc := float64(s.Chaos - stats.Chaos)
		ds := float64(s.Social - stats.Social)
		dw := float64(s.Wholesome - stats.Wholesome)
		dist := dc*dc + ds*ds + dw*dw
		if dist < bestDist {
			bestDist = dist
			bestID = id
		}
	}
	if bestID == "" {
		return "", repository.ErrNotFound
	}
	return bestID, nil
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

func setupRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cat, err := catalog.Load()
	if err != nil {
		t.Fatalf("load catalog: %v", err)
	}

	groups := newMockGroupRepo()
	members := newMockMemberRepo()
	profiles := newMockProfileRepo(members)
	quizzes := newMockQuizRepo()

	logger := zap.NewNop()
	engine := vibe.NewEngine(cat)
	jwtSvc := service.NewJWTServiceWithStore("secret", 15*time.Minute, 30*time.Minute, service.NewMemoryRefreshTokenStore())
	groupSvc := service.NewGroupService(logger, groups, members, nil)
	profileSvc := service.NewProfileService(logger, members, profiles, engine)
	quizSvc := service.NewQuizService(logger, cat, members, profiles, quizzes)

	return NewRouter(
		logger,
		cat,
		jwtSvc,
		NewGroupHandler(logger, groupSvc, jwtSvc),
		NewProfileHandler(logger, profileSvc),
		NewQuizHandler(logger, quizSvc),
	)
}

func performRequest(r http.Handler, method, path, token string, body any) *httptest.ResponseRecorder {
	var payload []byte
	if body != nil {
		payload, _ = json.Marshal(body)
	}
	req := httptest.NewRequest(method, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode response: %v (%s)", err, rec.Body.String())
	}
	return out
}

// createGroupAndJoin crea un grupo y une un miembro, devolviendo slug,
// member id y access token para los tests autenticados.
func createGroupAndJoin(t *testing.T, r http.Handler, memberName string) (string, string, string) {
	t.Helper()

	rec := performRequest(r, http.MethodPost, "/groups", "", map[string]string{
		"name": "Les Copains",
		"pin":  "1234",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("create group: expected 201, got %d (%s)", rec.Code, rec.Body.String())
	}
	group := decodeBody(t, rec)["group"].(map[string]any)
	slug := group["slug"].(string)

	rec = performRequest(r, http.MethodPost, "/groups/"+slug+"/join", "", map[string]string{
		"name": memberName,
		"pin":  "1234",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("join: expected 200, got %d (%s)", rec.Code, rec.Body.String())
	}
	body := decodeBody(t, rec)
	memberID := body["member"].(map[string]any)["id"].(string)
	token := body["tokens"].(map[string]any)["access_token"].(string)
	return slug, memberID, token
}

func TestCreateGroup_RejectsBadPin(t *testing.T) {
	r := setupRouter(t)
	rec := performRequest(r, http.MethodPost, "/groups", "", map[string]string{
		"name": "Les Copains",
		"pin":  "12ab",
	})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestJoin_WrongPin(t *testing.T) {
	r := setupRouter(t)
	slug, _, _ := createGroupAndJoin(t, r, "Ana")

	rec := performRequest(r, http.MethodPost, "/groups/"+slug+"/join", "", map[string]string{
		"name": "Beto",
		"pin":  "0000",
	})
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestJoin_UnknownSlug(t *testing.T) {
	r := setupRouter(t)
	rec := performRequest(r, http.MethodPost, "/groups/no-such-slug-1/join", "", map[string]string{
		"name": "Ana",
		"pin":  "1234",
	})
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestGetGroup_RequiresMatchingSlug(t *testing.T) {
	r := setupRouter(t)
	slug, _, token := createGroupAndJoin(t, r, "Ana")

	rec := performRequest(r, http.MethodGet, "/groups/"+slug, token, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d (%s)", rec.Code, rec.Body.String())
	}
	body := decodeBody(t, rec)
	if members := body["members"].([]any); len(members) != 1 {
		t.Fatalf("expected 1 member, got %v", members)
	}

	// Token de un grupo no abre otro.
	rec = performRequest(r, http.MethodGet, "/groups/some-other-slug-2", token, nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for foreign slug, got %d", rec.Code)
	}
}

func TestRefreshToken_RotatesPair(t *testing.T) {
	r := setupRouter(t)
	slug, _, _ := createGroupAndJoin(t, r, "Ana")

	rec := performRequest(r, http.MethodPost, "/groups/"+slug+"/join", "", map[string]string{
		"name": "Ana",
		"pin":  "1234",
	})
	refresh := decodeBody(t, rec)["tokens"].(map[string]any)["refresh_token"].(string)

	rec = performRequest(r, http.MethodPost, "/auth/refresh", "", map[string]string{
		"refresh_token": refresh,
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("refresh: expected 200, got %d (%s)", rec.Code, rec.Body.String())
	}

	// El refresh anterior quedo revocado.
	rec = performRequest(r, http.MethodPost, "/auth/refresh", "", map[string]string{
		"refresh_token": refresh,
	})
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("reuse: expected 401, got %d", rec.Code)
	}
}

func TestCatalogQuestions_Public(t *testing.T) {
	r := setupRouter(t)
	rec := performRequest(r, http.MethodGet, "/catalog/questions", "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	body := decodeBody(t, rec)
	if questions := body["questions"].([]any); len(questions) == 0 {
		t.Fatalf("expected a non-empty catalog")
	}
}
