package api

import (
	"encoding/json"
	"log"
	"strings"

	domain "github.com/ANUSHKA-GUPTA30/rebook-platform/domain/user"
	"github.com/ANUSHKA-GUPTA30/rebook-platform/modules/auth"
	"github.com/ANUSHKA-GUPTA30/rebook-platform/modules/catalog"
	"github.com/ANUSHKA-GUPTA30/rebook-platform/modules/wishlist"
	"github.com/go-monolith/mono"
	"github.com/go-monolith/mono/pkg/helper"
	"github.com/gofiber/fiber/v2"
)

// Handlers contains the HTTP handlers for the API.
type Handlers struct {
	authContainer mono.ServiceContainer
	authAdapter   auth.Port
	catalogPort   catalog.Port
	wishlistPort  wishlist.Port
}

// NewHandlers creates a new Handlers instance.
func NewHandlers(authContainer mono.ServiceContainer, authAdapter auth.Port, catalogPort catalog.Port, wishlistPort wishlist.Port) *Handlers {
	return &Handlers{
		authContainer: authContainer,
		authAdapter:   authAdapter,
		catalogPort:   catalogPort,
		wishlistPort:  wishlistPort,
	}
}

// sessionFrom pulls the authenticated session placed by AuthMiddleware.
func sessionFrom(c *fiber.Ctx) (*domain.Session, bool) {
	session, ok := c.Locals(SessionContextKey).(*domain.Session)
	return session, ok
}

// Register handles user registration.
func (h *Handlers) Register(c *fiber.Ctx) error {
	var req RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	if req.Username == "" || req.Password == "" {
		return badRequest(c, "Username and password are required")
	}

	authReq := auth.RegisterRequest{Username: req.Username, Password: req.Password}
	var resp auth.RegisterResponse
	if err := helper.CallRequestReplyService(
		c.UserContext(), h.authContainer, "register",
		json.Marshal, json.Unmarshal, &authReq, &resp,
	); err != nil {
		return h.handleServiceError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(resp)
}

// Login handles user login.
func (h *Handlers) Login(c *fiber.Ctx) error {
	var req LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	if req.Username == "" || req.Password == "" {
		return badRequest(c, "Username and password are required")
	}

	authReq := auth.LoginRequest{Username: req.Username, Password: req.Password}
	var resp auth.LoginResponse
	if err := helper.CallRequestReplyService(
		c.UserContext(), h.authContainer, "login",
		json.Marshal, json.Unmarshal, &authReq, &resp,
	); err != nil {
		return h.handleServiceError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(LoginResponse{
		Token:    resp.Token,
		Username: resp.Username,
	})
}

// ListBooks returns the full catalog.
func (h *Handlers) ListBooks(c *fiber.Ctx) error {
	resp, err := h.catalogPort.List(c.UserContext())
	if err != nil {
		return h.handleServiceError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(resp.Books)
}

// GetBook returns a single listing.
func (h *Handlers) GetBook(c *fiber.Ctx) error {
	resp, err := h.catalogPort.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return h.handleServiceError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(resp)
}

// CreateBook creates a listing owned by the caller.
func (h *Handlers) CreateBook(c *fiber.Ctx) error {
	session, ok := sessionFrom(c)
	if !ok {
		return unauthorized(c)
	}

	var body BookBody
	if err := c.BodyParser(&body); err != nil {
		return badRequest(c, "Invalid request body")
	}

	resp, err := h.catalogPort.Create(c.UserContext(), catalog.CreateBookRequest{
		Owner: session.Username,
		Fields: catalog.BookFields{
			Title:     body.Title,
			Author:    body.Author,
			Genre:     body.Genre,
			Condition: body.Condition,
			Location:  body.Location,
			ImageURL:  body.ImageURL,
		},
	})
	if err != nil {
		return h.handleServiceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(resp)
}

// UpdateBook routes a PUT either to a status transition or an owner edit. A
// body carrying a status is a transition; anything else edits the listing
// fields.
func (h *Handlers) UpdateBook(c *fiber.Ctx) error {
	session, ok := sessionFrom(c)
	if !ok {
		return unauthorized(c)
	}

	var body BookBody
	if err := c.BodyParser(&body); err != nil {
		return badRequest(c, "Invalid request body")
	}

	if body.Status != "" {
		resp, err := h.catalogPort.Transition(c.UserContext(), catalog.TransitionRequest{
			ID:     c.Params("id"),
			Caller: session.Username,
			Status: body.Status,
		})
		if err != nil {
			return h.handleServiceError(c, err)
		}
		return c.Status(fiber.StatusOK).JSON(resp)
	}

	resp, err := h.catalogPort.Edit(c.UserContext(), catalog.EditBookRequest{
		ID:     c.Params("id"),
		Caller: session.Username,
		Fields: catalog.BookFields{
			Title:     body.Title,
			Author:    body.Author,
			Genre:     body.Genre,
			Condition: body.Condition,
			Location:  body.Location,
			ImageURL:  body.ImageURL,
		},
	})
	if err != nil {
		return h.handleServiceError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(resp)
}

// DeleteBook removes a listing owned by the caller.
func (h *Handlers) DeleteBook(c *fiber.Ctx) error {
	session, ok := sessionFrom(c)
	if !ok {
		return unauthorized(c)
	}

	if _, err := h.catalogPort.Delete(c.UserContext(), catalog.DeleteBookRequest{
		ID:     c.Params("id"),
		Caller: session.Username,
	}); err != nil {
		return h.handleServiceError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(MessageResponse{Message: "Book deleted"})
}

// GetUserProfile returns the public profile of a user, wishlist included.
func (h *Handlers) GetUserProfile(c *fiber.Ctx) error {
	username := c.Params("username")

	user, err := h.authAdapter.GetUser(c.UserContext(), username)
	if err != nil {
		return h.handleServiceError(c, err)
	}

	saved, err := h.wishlistPort.SavedBooks(c.UserContext(), user.Username)
	if err != nil {
		return h.handleServiceError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(UserProfileResponse{
		Username:   user.Username,
		SavedBooks: saved.SavedBooks,
	})
}

// ToggleWishlist flips the saved state of a book for the caller.
func (h *Handlers) ToggleWishlist(c *fiber.Ctx) error {
	session, ok := sessionFrom(c)
	if !ok {
		return unauthorized(c)
	}

	resp, err := h.wishlistPort.Toggle(c.UserContext(), session.Username, c.Params("bookId"))
	if err != nil {
		return h.handleServiceError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(resp)
}

func badRequest(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
		Error:   "bad_request",
		Message: message,
	})
}

func unauthorized(c *fiber.Ctx) error {
	return c.Status(fiber.StatusUnauthorized).JSON(ErrorResponse{
		Error:   "unauthorized",
		Message: "User not authenticated",
	})
}

// handleServiceError maps errors coming back over the service container to
// HTTP responses. Errors cross module boundaries as strings, so the mapping
// matches known messages rather than sentinel values.
func (h *Handlers) handleServiceError(c *fiber.Ctx, err error) error {
	errStr := err.Error()

	switch {
	case strings.Contains(errStr, "username already taken"):
		return badRequest(c, "Username already taken")
	case strings.Contains(errStr, "invalid credentials"):
		return badRequest(c, "Invalid credentials")
	case strings.Contains(errStr, "username must be"),
		strings.Contains(errStr, "password must be"),
		strings.Contains(errStr, "validation failed"),
		strings.Contains(errStr, "unknown status"):
		return badRequest(c, "Invalid request")
	case strings.Contains(errStr, "caller is not the owner"),
		strings.Contains(errStr, "cannot request your own listing"):
		return c.Status(fiber.StatusForbidden).JSON(ErrorResponse{
			Error:   "forbidden",
			Message: "You are not allowed to do that",
		})
	case strings.Contains(errStr, "illegal status transition"):
		return c.Status(fiber.StatusConflict).JSON(ErrorResponse{
			Error:   "conflict",
			Message: "The book is not in a state that allows this change",
		})
	case strings.Contains(errStr, "book not found"),
		strings.Contains(errStr, "user not found"):
		return c.Status(fiber.StatusNotFound).JSON(ErrorResponse{
			Error:   "not_found",
			Message: "Resource not found",
		})
	default:
		log.Printf("[api] Internal error: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{
			Error:   "internal_error",
			Message: "An internal error occurred",
		})
	}
}
