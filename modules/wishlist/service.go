package wishlist

import (
	"context"
	"errors"
	"strings"
)

// Toggle outcome messages. Clients key on the "Added"/"Removed" prefix.
const (
	msgAdded   = "Added to wishlist"
	msgRemoved = "Removed from wishlist"
)

// ErrInvalidEntry is returned when the username or book id is missing.
var ErrInvalidEntry = errors.New("username and book id are required")

// Service implements the wishlist operations.
type Service struct {
	repo *Repository
}

// NewService creates a new wishlist Service.
func NewService(repo *Repository) *Service {
	return &Service{repo: repo}
}

// Toggle flips the saved state of a book for a user and returns the user's
// updated wishlist. Toggling twice restores the original state.
func (s *Service) Toggle(_ context.Context, username, bookID string) ([]string, string, error) {
	username = strings.TrimSpace(username)
	bookID = strings.TrimSpace(bookID)
	if username == "" || bookID == "" {
		return nil, "", ErrInvalidEntry
	}

	saved, err := s.repo.Exists(username, bookID)
	if err != nil {
		return nil, "", err
	}

	message := msgAdded
	if saved {
		message = msgRemoved
		err = s.repo.Remove(username, bookID)
	} else {
		err = s.repo.Add(username, bookID)
	}
	if err != nil {
		return nil, "", err
	}

	ids, err := s.repo.SavedBooks(username)
	if err != nil {
		return nil, "", err
	}
	return ids, message, nil
}

// SavedBooks returns the book ids on the user's wishlist. Unknown users get
// an empty list rather than an error; a wishlist exists for every username.
func (s *Service) SavedBooks(_ context.Context, username string) ([]string, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return nil, ErrInvalidEntry
	}
	ids, err := s.repo.SavedBooks(username)
	if err != nil {
		return nil, err
	}
	if ids == nil {
		ids = []string{}
	}
	return ids, nil
}
