package book

import (
	"strings"
	"time"
)

// Book represents a physical book listed for exchange.
type Book struct {
	ID          string    `gorm:"primarykey;size:36" json:"id"`
	Title       string    `gorm:"size:200;not null" json:"title"`
	Author      string    `gorm:"size:200;not null" json:"author"`
	Genre       Genre     `gorm:"size:20;not null" json:"genre"`
	Condition   Condition `gorm:"size:10;not null" json:"condition"`
	Location    string    `gorm:"size:200" json:"location"`
	Owner       string    `gorm:"size:100;not null;index" json:"owner"`
	ImageURL    string    `gorm:"size:500" json:"imageUrl,omitempty"`
	Status      Status    `gorm:"size:20;not null;default:Available" json:"status"`
	RequestedBy string    `gorm:"size:100" json:"requestedBy,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// TableName returns the table name for the Book entity.
func (Book) TableName() string {
	return "books"
}

// OwnedBy reports whether username is the book's owner. Ownership is a
// case-insensitive trimmed comparison on the username, not an id join.
func (b *Book) OwnedBy(username string) bool {
	return strings.EqualFold(strings.TrimSpace(b.Owner), strings.TrimSpace(username))
}
