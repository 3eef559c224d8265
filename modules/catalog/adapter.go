package catalog

import (
	"context"
	"encoding/json"

	"github.com/go-monolith/mono"
	"github.com/go-monolith/mono/pkg/helper"
)

// Port is the catalog surface consumed by other modules.
type Port interface {
	List(ctx context.Context) (ListBooksResponse, error)
	Get(ctx context.Context, id string) (BookResponse, error)
	Create(ctx context.Context, req CreateBookRequest) (BookResponse, error)
	Transition(ctx context.Context, req TransitionRequest) (BookResponse, error)
	Edit(ctx context.Context, req EditBookRequest) (BookResponse, error)
	Delete(ctx context.Context, req DeleteBookRequest) (DeleteBookResponse, error)
}

// Adapter calls the catalog services through the service container.
type Adapter struct {
	container mono.ServiceContainer
}

var _ Port = (*Adapter)(nil)

// NewAdapter creates a new catalog Adapter.
func NewAdapter(container mono.ServiceContainer) *Adapter {
	return &Adapter{container: container}
}

func (a *Adapter) List(ctx context.Context) (ListBooksResponse, error) {
	var resp ListBooksResponse
	req := ListBooksRequest{}
	err := helper.CallRequestReplyService(
		ctx, a.container, "list", json.Marshal, json.Unmarshal, &req, &resp)
	return resp, err
}

func (a *Adapter) Get(ctx context.Context, id string) (BookResponse, error) {
	var resp BookResponse
	req := GetBookRequest{ID: id}
	err := helper.CallRequestReplyService(
		ctx, a.container, "get", json.Marshal, json.Unmarshal, &req, &resp)
	return resp, err
}

func (a *Adapter) Create(ctx context.Context, req CreateBookRequest) (BookResponse, error) {
	var resp BookResponse
	err := helper.CallRequestReplyService(
		ctx, a.container, "create", json.Marshal, json.Unmarshal, &req, &resp)
	return resp, err
}

func (a *Adapter) Transition(ctx context.Context, req TransitionRequest) (BookResponse, error) {
	var resp BookResponse
	err := helper.CallRequestReplyService(
		ctx, a.container, "transition", json.Marshal, json.Unmarshal, &req, &resp)
	return resp, err
}

func (a *Adapter) Edit(ctx context.Context, req EditBookRequest) (BookResponse, error) {
	var resp BookResponse
	err := helper.CallRequestReplyService(
		ctx, a.container, "edit", json.Marshal, json.Unmarshal, &req, &resp)
	return resp, err
}

func (a *Adapter) Delete(ctx context.Context, req DeleteBookRequest) (DeleteBookResponse, error) {
	var resp DeleteBookResponse
	err := helper.CallRequestReplyService(
		ctx, a.container, "delete", json.Marshal, json.Unmarshal, &req, &resp)
	return resp, err
}
