package catalog

import (
	"time"

	"github.com/ANUSHKA-GUPTA30/rebook-platform/domain/book"
)

// BookFields are the owner-editable listing fields.
type BookFields struct {
	Title     string         `json:"title"`
	Author    string         `json:"author"`
	Genre     book.Genre     `json:"genre"`
	Condition book.Condition `json:"condition"`
	Location  string         `json:"location"`
	ImageURL  string         `json:"imageUrl"`
}

// CreateBookRequest represents a listing creation request.
type CreateBookRequest struct {
	Owner  string     `json:"owner"`
	Fields BookFields `json:"fields"`
}

// GetBookRequest represents a single-book lookup.
type GetBookRequest struct {
	ID string `json:"id"`
}

// ListBooksRequest represents a catalog listing request.
type ListBooksRequest struct{}

// ListBooksResponse carries the full catalog.
type ListBooksResponse struct {
	Books []BookResponse `json:"books"`
	Total int            `json:"total"`
}

// TransitionRequest represents a status change request.
type TransitionRequest struct {
	ID     string      `json:"id"`
	Caller string      `json:"caller"`
	Status book.Status `json:"status"`
}

// EditBookRequest represents an owner edit.
type EditBookRequest struct {
	ID     string     `json:"id"`
	Caller string     `json:"caller"`
	Fields BookFields `json:"fields"`
}

// DeleteBookRequest represents an owner delete.
type DeleteBookRequest struct {
	ID     string `json:"id"`
	Caller string `json:"caller"`
}

// DeleteBookResponse confirms a delete.
type DeleteBookResponse struct {
	Deleted bool   `json:"deleted"`
	ID      string `json:"id"`
}

// BookResponse is the wire form of a book.
type BookResponse struct {
	ID          string         `json:"id"`
	Title       string         `json:"title"`
	Author      string         `json:"author"`
	Genre       book.Genre     `json:"genre"`
	Condition   book.Condition `json:"condition"`
	Location    string         `json:"location"`
	Owner       string         `json:"owner"`
	ImageURL    string         `json:"imageUrl,omitempty"`
	Status      book.Status    `json:"status"`
	RequestedBy string         `json:"requestedBy,omitempty"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
}

// toBookResponse converts a Book entity to its wire form.
func toBookResponse(b *book.Book) BookResponse {
	return BookResponse{
		ID:          b.ID,
		Title:       b.Title,
		Author:      b.Author,
		Genre:       b.Genre,
		Condition:   b.Condition,
		Location:    b.Location,
		Owner:       b.Owner,
		ImageURL:    b.ImageURL,
		Status:      b.Status,
		RequestedBy: b.RequestedBy,
		CreatedAt:   b.CreatedAt,
		UpdatedAt:   b.UpdatedAt,
	}
}
