package app_test

import (
	"errors"
	"testing"
	"time"

	"newsprep/internal/app"
	"newsprep/internal/pkg/jwtutil"
	"newsprep/internal/storage"
)

const testSecret = "auth-test-secret"

func newAuthService() (*app.AuthService, storage.Store) {
	store := storage.NewMemoryStore()
	return app.NewAuthService(store, testSecret, time.Hour), store
}

func TestRegisterIssuesUsableToken(t *testing.T) {
	svc, _ := newAuthService()

	result, err := svc.Register(app.RegisterInput{
		Username: "aspirant",
		Email:    "Aspirant@Example.com",
		Password: "longenough",
	})
	if err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	if result.User.ID == 0 {
		t.Fatal("user id not assigned")
	}
	if result.User.Email != "aspirant@example.com" {
		t.Fatalf("email should be lowercased, got %q", result.User.Email)
	}

	claims, err := jwtutil.ParseToken(testSecret, result.Token)
	if err != nil {
		t.Fatalf("issued token does not parse: %v", err)
	}
	if claims.UserID != result.User.ID || claims.Username != "aspirant" {
		t.Fatalf("claims mismatch: %+v", claims)
	}
}

func TestRegisterRejectsShortPassword(t *testing.T) {
	svc, _ := newAuthService()

	_, err := svc.Register(app.RegisterInput{
		Username: "aspirant",
		Email:    "a@example.com",
		Password: "short",
	})
	if !errors.Is(err, app.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestRegisterDuplicates(t *testing.T) {
	svc, _ := newAuthService()

	first := app.RegisterInput{Username: "aspirant", Email: "a@example.com", Password: "longenough"}
	if _, err := svc.Register(first); err != nil {
		t.Fatalf("first register failed: %v", err)
	}

	_, err := svc.Register(app.RegisterInput{Username: "aspirant", Email: "b@example.com", Password: "longenough"})
	if !errors.Is(err, app.ErrUsernameExists) {
		t.Fatalf("expected ErrUsernameExists, got %v", err)
	}

	_, err = svc.Register(app.RegisterInput{Username: "someoneelse", Email: "a@example.com", Password: "longenough"})
	if !errors.Is(err, app.ErrEmailExists) {
		t.Fatalf("expected ErrEmailExists, got %v", err)
	}
}

func TestLoginByUsernameAndEmail(t *testing.T) {
	svc, _ := newAuthService()

	if _, err := svc.Register(app.RegisterInput{
		Username: "aspirant",
		Email:    "a@example.com",
		Password: "longenough",
	}); err != nil {
		t.Fatalf("register failed: %v", err)
	}

	if _, err := svc.Login(app.LoginInput{Identifier: "aspirant", Password: "longenough"}); err != nil {
		t.Fatalf("login by username failed: %v", err)
	}
	if _, err := svc.Login(app.LoginInput{Identifier: "A@example.com", Password: "longenough"}); err != nil {
		t.Fatalf("login by email failed: %v", err)
	}
}

func TestLoginFailuresCollapse(t *testing.T) {
	svc, _ := newAuthService()

	if _, err := svc.Register(app.RegisterInput{
		Username: "aspirant",
		Email:    "a@example.com",
		Password: "longenough",
	}); err != nil {
		t.Fatalf("register failed: %v", err)
	}

	_, err := svc.Login(app.LoginInput{Identifier: "aspirant", Password: "wrongpass"})
	if !errors.Is(err, app.ErrInvalidCredential) {
		t.Fatalf("wrong password: expected ErrInvalidCredential, got %v", err)
	}

	_, err = svc.Login(app.LoginInput{Identifier: "nobody", Password: "longenough"})
	if !errors.Is(err, app.ErrInvalidCredential) {
		t.Fatalf("unknown user: expected ErrInvalidCredential, got %v", err)
	}
}

func TestGetUserByID(t *testing.T) {
	svc, _ := newAuthService()

	result, err := svc.Register(app.RegisterInput{
		Username: "aspirant",
		Email:    "a@example.com",
		Password: "longenough",
	})
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}

	user, err := svc.GetUserByID(result.User.ID)
	if err != nil {
		t.Fatalf("GetUserByID failed: %v", err)
	}
	if user.Username != "aspirant" {
		t.Fatalf("unexpected user %+v", user)
	}

	if _, err := svc.GetUserByID(9999); !errors.Is(err, app.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
