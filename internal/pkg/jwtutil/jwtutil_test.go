package jwtutil_test

import (
	"strings"
	"testing"
	"time"

	"newsprep/internal/pkg/jwtutil"
)

const testSecret = "unit-test-secret"

func TestTokenRoundTrip(t *testing.T) {
	token, err := jwtutil.GenerateToken(testSecret, time.Hour, 7, "asha")
	if err != nil {
		t.Fatalf("generate token: %v", err)
	}

	claims, err := jwtutil.ParseToken(testSecret, token)
	if err != nil {
		t.Fatalf("parse token: %v", err)
	}
	if claims.UserID != 7 || claims.Username != "asha" {
		t.Fatalf("claims do not round-trip: %+v", claims)
	}
}

func TestExpiredTokenRejected(t *testing.T) {
	token, err := jwtutil.GenerateToken(testSecret, -time.Minute, 7, "asha")
	if err != nil {
		t.Fatalf("generate token: %v", err)
	}

	if _, err := jwtutil.ParseToken(testSecret, token); err == nil {
		t.Fatal("expected expired token to fail parsing")
	}
}

func TestWrongSecretRejected(t *testing.T) {
	token, err := jwtutil.GenerateToken(testSecret, time.Hour, 7, "asha")
	if err != nil {
		t.Fatalf("generate token: %v", err)
	}

	if _, err := jwtutil.ParseToken("a-different-secret", token); err == nil {
		t.Fatal("expected wrong-secret token to fail parsing")
	}
}

func TestTamperedTokenRejected(t *testing.T) {
	token, err := jwtutil.GenerateToken(testSecret, time.Hour, 7, "asha")
	if err != nil {
		t.Fatalf("generate token: %v", err)
	}

	parts := strings.Split(token, ".")
	if len(parts) != 3 {
		t.Fatalf("unexpected token shape: %q", token)
	}
	tampered := parts[0] + "." + parts[1] + "." + "AAAA" + parts[2][4:]

	if _, err := jwtutil.ParseToken(testSecret, tampered); err == nil {
		t.Fatal("expected tampered token to fail parsing")
	}
}

func TestEmptySecretRefused(t *testing.T) {
	if _, err := jwtutil.GenerateToken("", time.Hour, 7, "asha"); err == nil {
		t.Fatal("expected empty secret to be refused")
	}
}
