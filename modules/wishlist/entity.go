package wishlist

import "time"

// Entry marks a single book as saved by a single user. The pair is unique;
// there is no foreign key to the books table, so entries can outlive the
// listing they point at.
type Entry struct {
	ID        uint      `gorm:"primarykey" json:"-"`
	Username  string    `gorm:"size:100;not null;uniqueIndex:idx_wishlist_pair" json:"username"`
	BookID    string    `gorm:"size:36;not null;uniqueIndex:idx_wishlist_pair" json:"bookId"`
	CreatedAt time.Time `json:"created_at"`
}

// TableName returns the table name for the Entry entity.
func (Entry) TableName() string {
	return "wishlist_entries"
}
