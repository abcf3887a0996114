package utils

import (
	"strings"
	"testing"

	"journeytrack/api/models"
)

func TestGenerateAndValidateJWT(t *testing.T) {
	user := &models.User{
		ID:    42,
		Name:  "Alice",
		Email: "alice@example.com",
		Role:  models.RoleManager,
	}

	token, err := GenerateJWT(user)
	if err != nil {
		t.Fatalf("GenerateJWT returned error: %v", err)
	}
	if token == "" {
		t.Fatal("GenerateJWT returned empty token")
	}

	claims, err := ValidateJWT(token)
	if err != nil {
		t.Fatalf("ValidateJWT returned error: %v", err)
	}
	if claims.UserID != 42 || claims.Email != "alice@example.com" || claims.Name != "Alice" || claims.Role != models.RoleManager {
		t.Errorf("unexpected claims: %+v", claims)
	}
	if claims.Issuer != "journeytrack-api" || claims.Subject != "42" {
		t.Errorf("unexpected registered claims: issuer=%q subject=%q", claims.Issuer, claims.Subject)
	}
}

func TestValidateJWTRejectsTampering(t *testing.T) {
	user := &models.User{ID: 1, Email: "bob@example.com", Role: models.RoleViewer}
	token, err := GenerateJWT(user)
	if err != nil {
		t.Fatalf("GenerateJWT returned error: %v", err)
	}

	// Flip a character in the signature segment.
	parts := strings.Split(token, ".")
	if len(parts) != 3 {
		t.Fatalf("expected 3 token segments, got %d", len(parts))
	}
	sig := []byte(parts[2])
	if sig[0] == 'A' {
		sig[0] = 'B'
	} else {
		sig[0] = 'A'
	}
	tampered := parts[0] + "." + parts[1] + "." + string(sig)

	if _, err := ValidateJWT(tampered); err == nil {
		t.Error("expected tampered token to be rejected")
	}
}

func TestValidateJWTRejectsGarbage(t *testing.T) {
	if _, err := ValidateJWT("not-a-token"); err == nil {
		t.Error("expected garbage token to be rejected")
	}
}
