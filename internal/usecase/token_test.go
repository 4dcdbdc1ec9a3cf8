package usecase

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func signToken(t *testing.T, secret string, claims jwt.MapClaims) string {
	t.Helper()

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return signed
}

func TestTokenVerifier(t *testing.T) {
	verifier := NewTokenVerifier("test-secret")

	signed := signToken(t, "test-secret", jwt.MapClaims{
		"sub":   "u-ops",
		"email": "ops@example.com",
		"role":  "operations",
		"exp":   time.Now().Add(time.Hour).Unix(),
	})

	ident, err := verifier.Verify(signed)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ident.UID != "u-ops" || ident.Email != "ops@example.com" || ident.RoleClaim != "operations" {
		t.Fatalf("unexpected identity %+v", ident)
	}
}

func TestTokenVerifierOptionalClaims(t *testing.T) {
	verifier := NewTokenVerifier("test-secret")

	signed := signToken(t, "test-secret", jwt.MapClaims{"sub": "u-ops"})

	ident, err := verifier.Verify(signed)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ident.Email != "" || ident.RoleClaim != "" {
		t.Fatalf("expected empty optional claims, got %+v", ident)
	}
}

func TestTokenVerifierRejectsBadSignature(t *testing.T) {
	verifier := NewTokenVerifier("test-secret")

	signed := signToken(t, "other-secret", jwt.MapClaims{"sub": "u-ops"})

	if _, err := verifier.Verify(signed); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

func TestTokenVerifierRejectsExpired(t *testing.T) {
	verifier := NewTokenVerifier("test-secret")

	signed := signToken(t, "test-secret", jwt.MapClaims{
		"sub": "u-ops",
		"exp": time.Now().Add(-time.Hour).Unix(),
	})

	if _, err := verifier.Verify(signed); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken for expired token, got %v", err)
	}
}

func TestTokenVerifierRejectsMissingSubject(t *testing.T) {
	verifier := NewTokenVerifier("test-secret")

	signed := signToken(t, "test-secret", jwt.MapClaims{"email": "ops@example.com"})

	if _, err := verifier.Verify(signed); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken without subject, got %v", err)
	}
}

func TestTokenVerifierRejectsGarbage(t *testing.T) {
	verifier := NewTokenVerifier("test-secret")

	if _, err := verifier.Verify("not-a-token"); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}
