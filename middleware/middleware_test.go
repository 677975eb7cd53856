package middleware

import (
	"testing"
	"time"

	"farm2home/globals"

	"github.com/golang-jwt/jwt/v5"
)

func init() {
	globals.JwtSecret = []byte("test-secret")
}

func signToken(t *testing.T, claims *Claims, secret []byte) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	return token
}

func TestValidateJWTRoundTrip(t *testing.T) {
	token := signToken(t, &Claims{
		Username: "asha",
		UserID:   "u123",
		Role:     "farmer",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}, globals.JwtSecret)

	claims, err := ValidateJWT("Bearer " + token)
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	if claims.UserID != "u123" || claims.Role != "farmer" {
		t.Fatalf("unexpected claims: %+v", claims)
	}
}

func TestValidateJWTRejectsWrongKey(t *testing.T) {
	token := signToken(t, &Claims{
		UserID: "u123",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}, []byte("some-other-secret"))

	if _, err := ValidateJWT("Bearer " + token); err == nil {
		t.Fatal("expected signature mismatch to fail")
	}
}

func TestValidateJWTRejectsGarbage(t *testing.T) {
	for _, in := range []string{"", "Bearer ", "Bearer not.a.token"} {
		if _, err := ValidateJWT(in); err == nil {
			t.Fatalf("expected %q to fail", in)
		}
	}
}
