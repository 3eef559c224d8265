package wishlist

// ToggleRequest flips the saved state of one book for one user.
type ToggleRequest struct {
	Username string `json:"username"`
	BookID   string `json:"bookId"`
}

// ToggleResponse carries the updated wishlist and the outcome message.
type ToggleResponse struct {
	SavedBooks []string `json:"savedBooks"`
	Message    string   `json:"message"`
}

// SavedBooksRequest asks for a user's wishlist.
type SavedBooksRequest struct {
	Username string `json:"username"`
}

// SavedBooksResponse carries a user's wishlist.
type SavedBooksResponse struct {
	Username   string   `json:"username"`
	SavedBooks []string `json:"savedBooks"`
}
