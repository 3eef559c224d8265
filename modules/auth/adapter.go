package auth

import (
	"context"
	"encoding/json"
	"fmt"

	domain "github.com/ANUSHKA-GUPTA30/rebook-platform/domain/user"
	"github.com/go-monolith/mono"
	"github.com/go-monolith/mono/pkg/helper"
)

// Port defines the auth operations other modules depend on.
type Port interface {
	ValidateToken(ctx context.Context, token string) (*domain.Session, error)
	GetUser(ctx context.Context, username string) (*domain.User, error)
}

// Adapter implements Port using the service container.
type Adapter struct {
	container mono.ServiceContainer
}

// NewAdapter creates a new Adapter.
func NewAdapter(container mono.ServiceContainer) *Adapter {
	return &Adapter{
		container: container,
	}
}

// ValidateToken validates a bearer token and returns the session it carries.
func (a *Adapter) ValidateToken(ctx context.Context, token string) (*domain.Session, error) {
	req := ValidateTokenRequest{Token: token}
	var resp ValidateTokenResponse

	if err := helper.CallRequestReplyService(
		ctx, a.container, "validate-token",
		json.Marshal, json.Unmarshal,
		&req, &resp,
	); err != nil {
		return nil, fmt.Errorf("validate-token request failed: %w", err)
	}

	if !resp.Valid {
		return nil, fmt.Errorf("token validation failed: %s", resp.Error)
	}

	return &domain.Session{
		UserID:   resp.UserID,
		Username: resp.Username,
	}, nil
}

// GetUser retrieves a user by username.
func (a *Adapter) GetUser(ctx context.Context, username string) (*domain.User, error) {
	req := GetUserRequest{Username: username}
	var resp GetUserResponse

	if err := helper.CallRequestReplyService(
		ctx, a.container, "get-user",
		json.Marshal, json.Unmarshal,
		&req, &resp,
	); err != nil {
		return nil, fmt.Errorf("get-user request failed: %w", err)
	}

	return &domain.User{
		ID:        resp.ID,
		Username:  resp.Username,
		CreatedAt: resp.CreatedAt,
	}, nil
}
