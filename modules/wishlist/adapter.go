package wishlist

import (
	"context"
	"encoding/json"

	"github.com/go-monolith/mono"
	"github.com/go-monolith/mono/pkg/helper"
)

// Port is the wishlist surface consumed by other modules.
type Port interface {
	Toggle(ctx context.Context, username, bookID string) (ToggleResponse, error)
	SavedBooks(ctx context.Context, username string) (SavedBooksResponse, error)
}

// Adapter calls the wishlist services through the service container.
type Adapter struct {
	container mono.ServiceContainer
}

var _ Port = (*Adapter)(nil)

// NewAdapter creates a new wishlist Adapter.
func NewAdapter(container mono.ServiceContainer) *Adapter {
	return &Adapter{container: container}
}

func (a *Adapter) Toggle(ctx context.Context, username, bookID string) (ToggleResponse, error) {
	var resp ToggleResponse
	req := ToggleRequest{Username: username, BookID: bookID}
	err := helper.CallRequestReplyService(
		ctx, a.container, "toggle", json.Marshal, json.Unmarshal, &req, &resp)
	return resp, err
}

func (a *Adapter) SavedBooks(ctx context.Context, username string) (SavedBooksResponse, error) {
	var resp SavedBooksResponse
	req := SavedBooksRequest{Username: username}
	err := helper.CallRequestReplyService(
		ctx, a.container, "saved-books", json.Marshal, json.Unmarshal, &req, &resp)
	return resp, err
}
