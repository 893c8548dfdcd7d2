package auth

import (
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func TestNewJWTManagerRequiresSecret(t *testing.T) {
	manager, err := NewJWTManager("", "issuer", time.Hour)
	if err == nil {
		t.Fatalf("expected error when secret is empty")
	}
	if manager != nil {
		t.Fatalf("expected nil manager when secret is empty")
	}
}

func TestNewJWTManagerDefaults(t *testing.T) {
	manager, err := NewJWTManager("test-secret", "", 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if manager.issuer != "post-mockapi" {
		t.Fatalf("expected default issuer post-mockapi, got %q", manager.issuer)
	}
	if manager.ttl != 12*time.Hour {
		t.Fatalf("expected default ttl 12h, got %s", manager.ttl)
	}
}

func TestJWTManagerSignAndParseRoundTrip(t *testing.T) {
	manager, err := NewJWTManager("test-secret", "test-issuer", time.Hour)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	token, err := manager.Sign("user-001", "a@b.c")
	if err != nil {
		t.Fatalf("unexpected sign error: %v", err)
	}

	userID, err := manager.Parse(token)
	if err != nil {
		t.Fatalf("unexpected parse error: %v", err)
	}
	if userID != "user-001" {
		t.Fatalf("expected user-001, got %q", userID)
	}
}

func TestJWTManagerParseRejectsInvalidSignature(t *testing.T) {
	manager := &JWTManager{secret: []byte("service-secret"), issuer: "issuer", ttl: time.Hour}

	forged := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "user-001",
		"iss": "issuer",
		"exp": time.Now().Add(time.Hour).Unix(),
	})
	tokenString, err := forged.SignedString([]byte("other-secret"))
	if err != nil {
		t.Fatalf("failed to sign forged token: %v", err)
	}

	if _, err := manager.Parse(tokenString); err == nil {
		t.Fatalf("expected signature error")
	}
}

func TestJWTManagerParseRejectsOtherIssuer(t *testing.T) {
	signer := &JWTManager{secret: []byte("s"), issuer: "other", ttl: time.Hour}
	manager := &JWTManager{secret: []byte("s"), issuer: "issuer", ttl: time.Hour}

	token, err := signer.Sign("user-001", "")
	if err != nil {
		t.Fatalf("unexpected sign error: %v", err)
	}
	if _, err := manager.Parse(token); err == nil || !strings.Contains(err.Error(), "issuer") {
		t.Fatalf("expected issuer error, got %v", err)
	}
}

func TestPasswordHash(t *testing.T) {
	hash, err := HashPassword("pw")
	if err != nil {
		t.Fatalf("unexpected hash error: %v", err)
	}
	if !CheckPassword(hash, "pw") {
		t.Fatalf("expected password to match")
	}
	if CheckPassword(hash, "nope") {
		t.Fatalf("expected mismatch")
	}
}
