package app_test

import (
	"errors"
	"testing"

	"newsprep/internal/app"
	"newsprep/internal/storage"
)

func TestBookmarkLifecycle(t *testing.T) {
	store := storage.NewMemoryStore()
	user := seedUser(t, store, "asha")
	svc := app.NewBookmarkService(store)

	bookmark, err := svc.Add(user.ID, "Article", " 42 ", "Budget 2024")
	if err != nil {
		t.Fatalf("Add failed: %v", err)
	}
	if bookmark.ID == 0 {
		t.Fatal("expected an assigned id")
	}
	if bookmark.ResourceType != "article" {
		t.Fatalf("resource type not normalized: %q", bookmark.ResourceType)
	}
	if bookmark.ResourceID != "42" {
		t.Fatalf("resource id not trimmed: %q", bookmark.ResourceID)
	}

	list, err := svc.List(user.ID)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(list) != 1 || list[0].Title != "Budget 2024" {
		t.Fatalf("unexpected list %+v", list)
	}

	if err := svc.Remove(user.ID, "article", "42"); err != nil {
		t.Fatalf("Remove failed: %v", err)
	}
	list, _ = svc.List(user.ID)
	if len(list) != 0 {
		t.Fatalf("bookmark still listed after removal: %+v", list)
	}
}

func TestBookmarkDuplicate(t *testing.T) {
	store := storage.NewMemoryStore()
	user := seedUser(t, store, "asha")
	svc := app.NewBookmarkService(store)

	if _, err := svc.Add(user.ID, "article", "42", "first"); err != nil {
		t.Fatalf("Add failed: %v", err)
	}
	if _, err := svc.Add(user.ID, "article", "42", "second"); !errors.Is(err, app.ErrBookmarkExists) {
		t.Fatalf("expected ErrBookmarkExists, got %v", err)
	}

	// The same resource under a different type is a distinct bookmark.
	if _, err := svc.Add(user.ID, "tnpsc_material", "42", "material"); err != nil {
		t.Fatalf("Add with different type failed: %v", err)
	}
}

func TestBookmarkRemoveMissing(t *testing.T) {
	store := storage.NewMemoryStore()
	user := seedUser(t, store, "asha")
	svc := app.NewBookmarkService(store)

	if err := svc.Remove(user.ID, "article", "404"); !errors.Is(err, app.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestBookmarkValidation(t *testing.T) {
	svc := app.NewBookmarkService(storage.NewMemoryStore())

	cases := []struct {
		name         string
		userID       uint
		resourceType string
		resourceID   string
	}{
		{"anonymous", 0, "article", "42"},
		{"no type", 7, "  ", "42"},
		{"no id", 7, "article", ""},
	}
	for _, tc := range cases {
		if _, err := svc.Add(tc.userID, tc.resourceType, tc.resourceID, ""); !errors.Is(err, app.ErrInvalidInput) {
			t.Fatalf("%s: expected ErrInvalidInput, got %v", tc.name, err)
		}
	}

	if _, err := svc.List(0); !errors.Is(err, app.ErrInvalidInput) {
		t.Fatalf("anonymous List should fail, got %v", err)
	}
	if err := svc.Remove(0, "article", "42"); !errors.Is(err, app.ErrInvalidInput) {
		t.Fatalf("anonymous Remove should fail, got %v", err)
	}
}
