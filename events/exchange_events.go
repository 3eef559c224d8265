package events

import (
	"time"

	"github.com/go-monolith/mono/pkg/helper"
)

// ExchangeRequestedEvent is emitted when a non-owner requests an exchange.
type ExchangeRequestedEvent struct {
	BookID    string    `json:"book_id"`
	Title     string    `json:"title"`
	Owner     string    `json:"owner"`
	Requester string    `json:"requester"`
	Timestamp time.Time `json:"timestamp"`
}

// ExchangeAcceptedEvent is emitted when the owner accepts a pending exchange.
type ExchangeAcceptedEvent struct {
	BookID    string    `json:"book_id"`
	Title     string    `json:"title"`
	Owner     string    `json:"owner"`
	Requester string    `json:"requester"`
	Timestamp time.Time `json:"timestamp"`
}

// ExchangeCancelledEvent is emitted when the owner cancels a pending exchange,
// returning the book to the catalog.
type ExchangeCancelledEvent struct {
	BookID    string    `json:"book_id"`
	Title     string    `json:"title"`
	Owner     string    `json:"owner"`
	Requester string    `json:"requester"`
	Timestamp time.Time `json:"timestamp"`
}

// BookDeletedEvent is emitted when the owner removes a listing. Wishlists are
// deliberately not purged on delete; consumers must tolerate dangling ids.
type BookDeletedEvent struct {
	BookID    string    `json:"book_id"`
	Owner     string    `json:"owner"`
	Timestamp time.Time `json:"timestamp"`
}

// Event definitions for the exchange lifecycle.
var (
	ExchangeRequestedV1 = helper.EventDefinition[ExchangeRequestedEvent](
		"catalog", "ExchangeRequested", "v1",
	)

	ExchangeAcceptedV1 = helper.EventDefinition[ExchangeAcceptedEvent](
		"catalog", "ExchangeAccepted", "v1",
	)

	ExchangeCancelledV1 = helper.EventDefinition[ExchangeCancelledEvent](
		"catalog", "ExchangeCancelled", "v1",
	)

	BookDeletedV1 = helper.EventDefinition[BookDeletedEvent](
		"catalog", "BookDeleted", "v1",
	)
)
