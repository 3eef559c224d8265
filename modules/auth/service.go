package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	domain "github.com/ANUSHKA-GUPTA30/rebook-platform/domain/user"
	"github.com/google/uuid"
)

var (
	// ErrInvalidCredentials is returned when login credentials do not match.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrInvalidUsername is returned when the username is empty or too long.
	ErrInvalidUsername = errors.New("username must be 1-100 characters")
)

// Service handles registration, login and token validation.
type Service struct {
	repo   *UserRepository
	hasher *PasswordHasher
	tokens *TokenManager
}

// NewService creates a new auth Service.
func NewService(repo *UserRepository, hasher *PasswordHasher, tokens *TokenManager) *Service {
	return &Service{
		repo:   repo,
		hasher: hasher,
		tokens: tokens,
	}
}

// Register creates a new user account.
func (s *Service) Register(_ context.Context, username, password string) (*domain.User, error) {
	username = strings.TrimSpace(username)
	if username == "" || len(username) > 100 {
		return nil, ErrInvalidUsername
	}
	if err := s.hasher.CheckPolicy(password); err != nil {
		return nil, err
	}

	exists, err := s.repo.UsernameExists(username)
	if err != nil {
		return nil, fmt.Errorf("failed to check username: %w", err)
	}
	if exists {
		return nil, ErrDuplicateUsername
	}

	passwordHash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	now := time.Now()
	user := &domain.User{
		ID:           uuid.New().String(),
		Username:     username,
		PasswordHash: passwordHash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.repo.Create(user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return user, nil
}

// Login authenticates a user and returns a bearer token scoped to the
// username. A missing user and a wrong password are indistinguishable to
// the caller.
func (s *Service) Login(_ context.Context, username, password string) (string, *domain.User, error) {
	user, err := s.repo.FindByUsername(strings.TrimSpace(username))
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return "", nil, ErrInvalidCredentials
		}
		return "", nil, fmt.Errorf("failed to find user: %w", err)
	}

	if !s.hasher.Verify(password, user.PasswordHash) {
		return "", nil, ErrInvalidCredentials
	}

	token, err := s.tokens.Generate(user.ID, user.Username)
	if err != nil {
		return "", nil, fmt.Errorf("failed to generate token: %w", err)
	}

	return token, user, nil
}

// ValidateToken validates a bearer token and returns the session it carries.
func (s *Service) ValidateToken(_ context.Context, token string) (*domain.Session, error) {
	claims, err := s.tokens.Validate(token)
	if err != nil {
		return nil, err
	}

	return &domain.Session{
		UserID:   claims.UserID,
		Username: claims.Username,
	}, nil
}

// GetUser retrieves a user by username.
func (s *Service) GetUser(_ context.Context, username string) (*domain.User, error) {
	return s.repo.FindByUsername(strings.TrimSpace(username))
}
