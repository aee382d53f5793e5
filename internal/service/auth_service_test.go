package service

import (
	"errors"
	"testing"
	"time"

	"github.com/tutorstack/tutor-backend/internal/config"
)

func testAuthService() *AuthService {
	return NewAuthService(&config.Config{
		JWTSecret:  "test-secret",
		JWTExpiry:  time.Hour,
		BcryptCost: 4, // minimum cost keeps the test fast
	})
}

func TestPasswordHashing(t *testing.T) {
	s := testAuthService()

	hash, err := s.HashPassword("hunter22")
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	if hash == "hunter22" {
		t.Fatal("password stored in plaintext")
	}

	if err := s.CheckPassword(hash, "hunter22"); err != nil {
		t.Errorf("CheckPassword correct: %v", err)
	}
	if err := s.CheckPassword(hash, "wrong"); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("CheckPassword wrong = %v, want ErrInvalidCredentials", err)
	}
}

func TestTokenRoundTrip(t *testing.T) {
	s := testAuthService()

	token, err := s.GenerateToken(42)
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}

	claims, err := s.ValidateToken(token)
	if err != nil {
		t.Fatalf("ValidateToken: %v", err)
	}
	if claims.UserID != 42 {
		t.Errorf("UserID = %d, want 42", claims.UserID)
	}
}

func TestTokenRejectsTampering(t *testing.T) {
	s := testAuthService()

	token, err := s.GenerateToken(42)
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}

	other := NewAuthService(&config.Config{JWTSecret: "different-secret", JWTExpiry: time.Hour})
	if _, err := other.ValidateToken(token); err == nil {
		t.Error("token validated with the wrong secret")
	}

	if _, err := s.ValidateToken(token + "x"); err == nil {
		t.Error("tampered token validated")
	}
	if _, err := s.ValidateToken("not-a-token"); err == nil {
		t.Error("garbage token validated")
	}
}
