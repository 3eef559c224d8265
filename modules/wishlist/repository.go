package wishlist

import (
	"fmt"

	"gorm.io/gorm"
)

// Repository handles wishlist persistence.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new wishlist Repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Migrate runs the schema migration for the wishlist table.
func (r *Repository) Migrate() error {
	return r.db.AutoMigrate(&Entry{})
}

// Exists reports whether the user has saved the book.
func (r *Repository) Exists(username, bookID string) (bool, error) {
	var count int64
	err := r.db.Model(&Entry{}).
		Where("username = ? AND book_id = ?", username, bookID).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to check wishlist entry: %w", err)
	}
	return count > 0, nil
}

// Add saves the book for the user.
func (r *Repository) Add(username, bookID string) error {
	entry := Entry{Username: username, BookID: bookID}
	if err := r.db.Create(&entry).Error; err != nil {
		return fmt.Errorf("failed to add wishlist entry: %w", err)
	}
	return nil
}

// Remove drops the book from the user's wishlist.
func (r *Repository) Remove(username, bookID string) error {
	err := r.db.
		Where("username = ? AND book_id = ?", username, bookID).
		Delete(&Entry{}).Error
	if err != nil {
		return fmt.Errorf("failed to remove wishlist entry: %w", err)
	}
	return nil
}

// SavedBooks returns the book ids saved by the user, oldest first.
func (r *Repository) SavedBooks(username string) ([]string, error) {
	var ids []string
	err := r.db.Model(&Entry{}).
		Where("username = ?", username).
		Order("created_at ASC").
		Pluck("book_id", &ids).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list wishlist entries: %w", err)
	}
	return ids, nil
}
