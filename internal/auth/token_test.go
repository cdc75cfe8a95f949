package auth_test

import (
	"errors"
	"testing"
	"time"

	"github.com/student-records-api/internal/auth"
	"github.com/student-records-api/internal/models"
)

func testUser() *models.User {
	return &models.User{
		ID:        42,
		Email:     "jane@example.com",
		Username:  "jane",
		Role:      models.RoleFaculty,
		FirstName: "Jane",
		LastName:  "Doe",
	}
}

func TestTokenRoundTrip(t *testing.T) {
	issuer := auth.NewTokenIssuer("test-secret", time.Hour)

	token, err := issuer.Issue(testUser())
	if err != nil {
		t.Fatalf("Issue failed: %v", err)
	}

	claims, err := issuer.Verify(token)
	if err != nil {
		t.Fatalf("Verify failed: %v", err)
	}
	if claims.UserID != 42 {
		t.Errorf("Expected user id 42, got %d", claims.UserID)
	}
	if claims.Email != "jane@example.com" {
		t.Errorf("Expected email jane@example.com, got %s", claims.Email)
	}
	if claims.Username != "jane" {
		t.Errorf("Expected username jane, got %s", claims.Username)
	}
	if claims.Role != models.RoleFaculty {
		t.Errorf("Expected role faculty, got %s", claims.Role)
	}
	if claims.FirstName != "Jane" || claims.LastName != "Doe" {
		t.Errorf("Expected names Jane/Doe, got %s/%s", claims.FirstName, claims.LastName)
	}
}

func TestTokenExpiry(t *testing.T) {
	issuer := auth.NewTokenIssuer("test-secret", -time.Minute)

	token, err := issuer.Issue(testUser())
	if err != nil {
		t.Fatalf("Issue failed: %v", err)
	}

	_, err = issuer.Verify(token)
	if !errors.Is(err, auth.ErrTokenExpired) {
		t.Errorf("Expected ErrTokenExpired, got %v", err)
	}
}

func TestTokenTamperedSignature(t *testing.T) {
	issuer := auth.NewTokenIssuer("test-secret", time.Hour)
	other := auth.NewTokenIssuer("other-secret", time.Hour)

	token, err := other.Issue(testUser())
	if err != nil {
		t.Fatalf("Issue failed: %v", err)
	}

	_, err = issuer.Verify(token)
	if !errors.Is(err, auth.ErrTokenInvalid) {
		t.Errorf("Expected ErrTokenInvalid for foreign signature, got %v", err)
	}
}

func TestTokenGarbage(t *testing.T) {
	issuer := auth.NewTokenIssuer("test-secret", time.Hour)

	for _, tok := range []string{"", "not-a-token", "a.b.c"} {
		if _, err := issuer.Verify(tok); !errors.Is(err, auth.ErrTokenInvalid) {
			t.Errorf("Verify(%q): expected ErrTokenInvalid, got %v", tok, err)
		}
	}
}
