package api

import "github.com/ANUSHKA-GUPTA30/rebook-platform/domain/book"

// ErrorResponse is the standard error response shape.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// RegisterRequest is the registration request body.
type RegisterRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginRequest is the login request body.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginResponse carries the bearer credential back to the client.
type LoginResponse struct {
	Token    string `json:"token"`
	Username string `json:"username"`
}

// BookBody is the create/edit request body. Status is accepted only so the
// handler can tell a transition request apart from an edit; listing fields
// never set it directly.
type BookBody struct {
	Title     string         `json:"title"`
	Author    string         `json:"author"`
	Genre     book.Genre     `json:"genre"`
	Condition book.Condition `json:"condition"`
	Location  string         `json:"location"`
	ImageURL  string         `json:"imageUrl"`
	Status    book.Status    `json:"status"`
}

// MessageResponse is a bare confirmation message.
type MessageResponse struct {
	Message string `json:"message"`
}

// UserProfileResponse is the public view of a user.
type UserProfileResponse struct {
	Username   string   `json:"username"`
	SavedBooks []string `json:"savedBooks"`
}
