package service

import (
	"testing"
	"time"

	"github.com/examhub/examhub/internal/constants"
	"github.com/examhub/examhub/internal/model"
	"gorm.io/gorm"
)

func testUser() *model.User {
	return &model.User{
		Model:       gorm.Model{ID: 42},
		FirstName:   "Ada",
		LastName:    "Lovelace",
		Email:       "ada@example.com",
		Phone:       "08012345678",
		IsActivated: true,
		Role:        constants.RoleUser,
	}
}

func TestJWTService_GenerateAndValidate(t *testing.T) {
	svc := NewJWTService("test-secret", 12*time.Hour)

	token, err := svc.GenerateToken(testUser())
	if err != nil {
		t.Fatalf("GenerateToken failed: %v", err)
	}
	if token == "" {
		t.Fatal("Expected non-empty token")
	}

	claims, err := svc.ValidateToken(token)
	if err != nil {
		t.Fatalf("ValidateToken failed: %v", err)
	}

	userID, ok := UserIDFromClaims(claims)
	if !ok {
		t.Fatal("Expected user_id claim")
	}
	if userID != 42 {
		t.Errorf("Expected user_id 42, got %d", userID)
	}

	if (*claims)["email"] != "ada@example.com" {
		t.Errorf("Unexpected email claim: %v", (*claims)["email"])
	}
	if (*claims)["role"] != constants.RoleUser {
		t.Errorf("Unexpected role claim: %v", (*claims)["role"])
	}
}

func TestJWTService_RejectsWrongSecret(t *testing.T) {
	issuer := NewJWTService("issuer-secret", time.Hour)
	verifier := NewJWTService("other-secret", time.Hour)

	token, err := issuer.GenerateToken(testUser())
	if err != nil {
		t.Fatalf("GenerateToken failed: %v", err)
	}

	if _, err := verifier.ValidateToken(token); err == nil {
		t.Error("Expected validation to fail with a different secret")
	}
}

func TestJWTService_RejectsExpiredToken(t *testing.T) {
	svc := NewJWTService("test-secret", -time.Minute)

	token, err := svc.GenerateToken(testUser())
	if err != nil {
		t.Fatalf("GenerateToken failed: %v", err)
	}

	if _, err := svc.ValidateToken(token); err == nil {
		t.Error("Expected validation to fail for an expired token")
	}
}

func TestUserIDFromClaims_Nil(t *testing.T) {
	if _, ok := UserIDFromClaims(nil); ok {
		t.Error("Expected nil claims to yield no user id")
	}
}
