package catalog

import (
	"context"
	"errors"
	"fmt"

	"github.com/ANUSHKA-GUPTA30/rebook-platform/domain/book"
	"gorm.io/gorm"
)

// Repository provides database operations for books.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new book repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Migrate runs database migrations for the books table.
func (r *Repository) Migrate() error {
	return r.db.AutoMigrate(&book.Book{})
}

// Create saves a new book.
func (r *Repository) Create(ctx context.Context, b *book.Book) error {
	if err := r.db.WithContext(ctx).Create(b).Error; err != nil {
		return fmt.Errorf("failed to create book: %w", err)
	}
	return nil
}

// FindByID retrieves a book by its identifier.
func (r *Repository) FindByID(ctx context.Context, id string) (*book.Book, error) {
	var b book.Book
	if err := r.db.WithContext(ctx).First(&b, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBookNotFound
		}
		return nil, fmt.Errorf("failed to find book: %w", err)
	}
	return &b, nil
}

// FindAll retrieves the full catalog ordered by creation time.
func (r *Repository) FindAll(ctx context.Context) ([]book.Book, error) {
	var books []book.Book
	if err := r.db.WithContext(ctx).Order("created_at ASC").Find(&books).Error; err != nil {
		return nil, fmt.Errorf("failed to list books: %w", err)
	}
	return books, nil
}

// Update persists the given book.
func (r *Repository) Update(ctx context.Context, b *book.Book) error {
	result := r.db.WithContext(ctx).Save(b)
	if result.Error != nil {
		return fmt.Errorf("failed to update book: %w", result.Error)
	}
	return nil
}

// UpdateStatus applies a status change and the matching requester bookkeeping
// in a single statement. Select forces the write even when requested_by is
// being cleared to its zero value.
func (r *Repository) UpdateStatus(ctx context.Context, id string, status book.Status, requestedBy string) error {
	result := r.db.WithContext(ctx).Model(&book.Book{}).
		Where("id = ?", id).
		Select("status", "requested_by").
		Updates(book.Book{Status: status, RequestedBy: requestedBy})
	if result.Error != nil {
		return fmt.Errorf("failed to update status: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrBookNotFound
	}
	return nil
}

// Delete permanently removes a book.
func (r *Repository) Delete(ctx context.Context, id string) error {
	result := r.db.WithContext(ctx).Delete(&book.Book{}, "id = ?", id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete book: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrBookNotFound
	}
	return nil
}
