package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

func TestGenerateAndParseJWT(t *testing.T) {
	secret := "test-secret"
	userID := uuid.New()

	token, err := GenerateJWT(secret, userID, "managed_artist", time.Hour)
	if err != nil {
		t.Fatal(err)
	}

	claims, err := ParseJWT(secret, token)
	if err != nil {
		t.Fatal(err)
	}
	if claims.UserID != userID {
		t.Errorf("UserID = %s, want %s", claims.UserID, userID)
	}
	if claims.Role != "managed_artist" {
		t.Errorf("Role = %q, want managed_artist", claims.Role)
	}
	if claims.Issuer != "waitumusic" {
		t.Errorf("Issuer = %q, want waitumusic", claims.Issuer)
	}
}

func TestParseJWT_WrongSecret(t *testing.T) {
	token, err := GenerateJWT("secret-a", uuid.New(), "admin", time.Hour)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := ParseJWT("secret-b", token); err == nil {
		t.Error("expected parse failure with wrong secret")
	}
}

func TestParseJWT_Expired(t *testing.T) {
	claims := Claims{
		UserID: uuid.New(),
		Role:   "admin",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
			IssuedAt:  jwt.NewNumericDate(time.Now().Add(-time.Hour)),
			Issuer:    "waitumusic",
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("secret"))
	if err != nil {
		t.Fatal(err)
	}
	if _, err := ParseJWT("secret", token); err == nil {
		t.Error("expected parse failure for expired token")
	}
}

func TestParseJWT_Garbage(t *testing.T) {
	if _, err := ParseJWT("secret", "not.a.token"); err == nil {
		t.Error("expected parse failure for malformed token")
	}
}
