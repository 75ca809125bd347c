package service

import (
	"errors"
	"testing"
	"time"

	"github.com/simply1git/vibe-check/internal/domain"
)

func testMember() domain.Member {
	return domain.Member{
		ID:        "m1",
		GroupID:   "g1",
		Name:      "Ana",
		CreatedAt: time.Now().UTC(),
	}
}

func TestJWTService_GenerateParseAccess(t *testing.T) {
	svc := NewJWTServiceWithStore("secret", 15*time.Minute, 30*time.Minute, NewMemoryRefreshTokenStore())

	pair, err := svc.GeneratePair(testMember(), "happy-panda-42")
	if err != nil {
		t.Fatalf("generate pair: %v", err)
	}
	if pair.AccessToken == "" || pair.RefreshToken == "" {
		t.Fatalf("expected tokens")
	}

	claims, err := svc.ParseAccessToken(pair.AccessToken)
	if err != nil {
		t.Fatalf("parse access: %v", err)
	}
	if claims.MemberID != "m1" || claims.GroupID != "g1" || claims.GroupSlug != "happy-panda-42" {
		t.Fatalf("unexpected claims: %+v", claims)
	}
}

func TestJWTService_RefreshRotation(t *testing.T) {
	svc := NewJWTServiceWithStore("secret", 15*time.Minute, 30*time.Minute, NewMemoryRefreshTokenStore())

	pair, err := svc.GeneratePair(testMember(), "happy-panda-42")
	if err != nil {
		t.Fatalf("generate pair: %v", err)
	}

	refreshed, err := svc.RefreshPair(pair.RefreshToken)
	if err != nil {
		t.Fatalf("refresh pair: %v", err)
	}
	if refreshed.AccessToken == "" || refreshed.RefreshToken == "" {
		t.Fatalf("expected refreshed tokens")
	}

	// El refresh anterior quedo revocado.
	if _, err := svc.RefreshPair(pair.RefreshToken); !errors.Is(err, ErrJWTInvalid) {
		t.Fatalf("expected revoked refresh to fail, got %v", err)
	}
}

func TestJWTService_RejectsRefreshAsAccess(t *testing.T) {
	svc := NewJWTServiceWithStore("secret", 15*time.Minute, 30*time.Minute, NewMemoryRefreshTokenStore())

	pair, err := svc.GeneratePair(testMember(), "happy-panda-42")
	if err != nil {
		t.Fatalf("generate pair: %v", err)
	}
	if _, err := svc.ParseAccessToken(pair.RefreshToken); !errors.Is(err, ErrJWTInvalid) {
		t.Fatalf("expected refresh token to be rejected as access, got %v", err)
	}
}

func TestJWTService_EmptySecret(t *testing.T) {
	svc := NewJWTService("", 15*time.Minute, 30*time.Minute)
	if _, err := svc.GeneratePair(testMember(), "slug"); !errors.Is(err, ErrJWTInvalid) {
		t.Fatalf("expected ErrJWTInvalid without secret, got %v", err)
	}
}
