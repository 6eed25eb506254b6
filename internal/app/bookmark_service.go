package app

import (
	"errors"
	"strings"

	"newsprep/internal/model"
	"newsprep/internal/storage"
)

var ErrBookmarkExists = errors.New("bookmark already exists")

// BookmarkService keeps per-user saved items. A bookmark points at a
// resource by (type, id) pair, so articles and study resources share one
// mechanism.
type BookmarkService struct {
	store storage.Store
}

func NewBookmarkService(store storage.Store) *BookmarkService {
	return &BookmarkService{store: store}
}

func (s *BookmarkService) Add(userID uint, resourceType, resourceID, title string) (*model.Bookmark, error) {
	resourceType = strings.ToLower(strings.TrimSpace(resourceType))
	resourceID = strings.TrimSpace(resourceID)
	title = strings.TrimSpace(title)

	if userID == 0 || resourceType == "" || resourceID == "" {
		return nil, ErrInvalidInput
	}

	bookmark := &model.Bookmark{
		UserID:       userID,
		ResourceType: resourceType,
		ResourceID:   resourceID,
		Title:        title,
	}
	if err := s.store.CreateBookmark(bookmark); err != nil {
		if errors.Is(err, storage.ErrDuplicate) {
			return nil, ErrBookmarkExists
		}
		return nil, err
	}
	return bookmark, nil
}

func (s *BookmarkService) Remove(userID uint, resourceType, resourceID string) error {
	resourceType = strings.ToLower(strings.TrimSpace(resourceType))
	resourceID = strings.TrimSpace(resourceID)

	if userID == 0 || resourceType == "" || resourceID == "" {
		return ErrInvalidInput
	}

	removed, err := s.store.DeleteBookmark(userID, resourceType, resourceID)
	if err != nil {
		return err
	}
	if !removed {
		return ErrNotFound
	}
	return nil
}

func (s *BookmarkService) List(userID uint) ([]model.Bookmark, error) {
	if userID == 0 {
		return nil, ErrInvalidInput
	}
	return s.store.ListBookmarksByUser(userID)
}
