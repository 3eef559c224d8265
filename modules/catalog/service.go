package catalog

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/ANUSHKA-GUPTA30/rebook-platform/domain/book"
	"github.com/ANUSHKA-GUPTA30/rebook-platform/events"
	"github.com/go-monolith/mono"
	"golang.org/x/sync/singleflight"
)

const (
	cacheKeyList   = "books"
	cacheKeyPrefix = "books:"
)

// CacheService is the slice of the cache module the catalog uses.
type CacheService interface {
	Get(ctx context.Context, key string, dest any) (bool, error)
	Set(ctx context.Context, key string, value any) error
	InvalidateAll(ctx context.Context) error
}

// IDGenerator produces store-assigned book identifiers.
type IDGenerator func() string

// Service implements the catalog and the exchange lifecycle rules.
type Service struct {
	repo     *Repository
	cache    CacheService // may be nil; reads then go straight to the store
	eventBus mono.EventBus
	newID    IDGenerator
	sfGroup  singleflight.Group
}

// NewService creates a new catalog Service.
func NewService(repo *Repository, cache CacheService, newID IDGenerator) *Service {
	return &Service{
		repo:  repo,
		cache: cache,
		newID: newID,
	}
}

// SetEventBus wires the event bus for lifecycle notifications.
func (s *Service) SetEventBus(bus mono.EventBus) {
	s.eventBus = bus
}

// List returns the full catalog, cache-aside with stampede protection.
func (s *Service) List(ctx context.Context) ([]book.Book, error) {
	if s.cache != nil {
		var cached []book.Book
		found, err := s.cache.Get(ctx, cacheKeyList, &cached)
		if err != nil {
			log.Printf("[catalog] cache error on list: %v", err)
		}
		if found {
			return cached, nil
		}
	}

	val, err, _ := s.sfGroup.Do(cacheKeyList, func() (any, error) {
		return s.repo.FindAll(ctx)
	})
	if err != nil {
		return nil, err
	}
	books := val.([]book.Book)

	if s.cache != nil {
		if err := s.cache.Set(ctx, cacheKeyList, books); err != nil {
			log.Printf("[catalog] failed to cache list: %v", err)
		}
	}
	return books, nil
}

// Get returns a single book by identifier.
func (s *Service) Get(ctx context.Context, id string) (*book.Book, error) {
	if s.cache != nil {
		var cached book.Book
		found, err := s.cache.Get(ctx, cacheKeyPrefix+id, &cached)
		if err != nil {
			log.Printf("[catalog] cache error on get: %v", err)
		}
		if found {
			return &cached, nil
		}
	}

	b, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, cacheKeyPrefix+id, b); err != nil {
			log.Printf("[catalog] failed to cache book %s: %v", id, err)
		}
	}
	return b, nil
}

// Create lists a new book. The owner is always the authenticated caller and
// the status is always Available regardless of what the client sent.
func (s *Service) Create(ctx context.Context, owner string, fields BookFields) (*book.Book, error) {
	if err := validateFields(fields); err != nil {
		return nil, err
	}
	owner = strings.TrimSpace(owner)
	if owner == "" {
		return nil, fmt.Errorf("%w: owner is required", ErrValidation)
	}

	b := &book.Book{
		ID:        s.newID(),
		Title:     strings.TrimSpace(fields.Title),
		Author:    strings.TrimSpace(fields.Author),
		Genre:     fields.Genre,
		Condition: fields.Condition,
		Location:  fields.Location,
		ImageURL:  fields.ImageURL,
		Owner:     owner,
		Status:    book.StatusAvailable,
	}

	if err := s.repo.Create(ctx, b); err != nil {
		return nil, err
	}

	s.invalidate(ctx)
	log.Printf("[catalog] %s listed %q (%s)", owner, b.Title, b.ID)
	return b, nil
}

// Transition applies a status change requested by caller, enforcing the
// lifecycle and ownership rules server-side.
func (s *Service) Transition(ctx context.Context, id, caller string, to book.Status) (*book.Book, error) {
	b, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := book.CheckTransition(b.Status, to); err != nil {
		return nil, err
	}

	requester := b.RequestedBy
	switch to {
	case book.StatusPending: // request
		if b.OwnedBy(caller) {
			return nil, ErrOwnListing
		}
		b.RequestedBy = strings.TrimSpace(caller)
	case book.StatusExchanged, book.StatusAvailable: // accept / cancel
		if !b.OwnedBy(caller) {
			return nil, ErrNotOwner
		}
		b.RequestedBy = ""
	}

	b.Status = to
	if err := s.repo.UpdateStatus(ctx, b.ID, b.Status, b.RequestedBy); err != nil {
		return nil, err
	}

	s.invalidate(ctx)
	s.publishTransition(b, caller, requester, to)
	return b, nil
}

// Edit mutates listing fields. Only the owner may edit; status and owner are
// never touched here.
func (s *Service) Edit(ctx context.Context, id, caller string, fields BookFields) (*book.Book, error) {
	b, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !b.OwnedBy(caller) {
		return nil, ErrNotOwner
	}
	if err := validateFields(fields); err != nil {
		return nil, err
	}

	b.Title = strings.TrimSpace(fields.Title)
	b.Author = strings.TrimSpace(fields.Author)
	b.Genre = fields.Genre
	b.Condition = fields.Condition
	b.Location = fields.Location
	b.ImageURL = fields.ImageURL

	if err := s.repo.Update(ctx, b); err != nil {
		return nil, err
	}

	s.invalidate(ctx)
	return b, nil
}

// Delete permanently removes a listing. Wishlist entries pointing at the book
// are left behind on purpose; readers filter dangling ids.
func (s *Service) Delete(ctx context.Context, id, caller string) error {
	b, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if !b.OwnedBy(caller) {
		return ErrNotOwner
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.invalidate(ctx)

	if s.eventBus != nil {
		event := events.BookDeletedEvent{
			BookID:    b.ID,
			Owner:     b.Owner,
			Timestamp: time.Now(),
		}
		if err := events.BookDeletedV1.Publish(s.eventBus, event, nil); err != nil {
			log.Printf("[catalog] failed to publish BookDeleted: %v", err)
		}
	}

	log.Printf("[catalog] %s deleted listing %s", caller, id)
	return nil
}

func (s *Service) invalidate(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.InvalidateAll(ctx); err != nil {
		log.Printf("[catalog] cache invalidation failed: %v", err)
	}
}

func (s *Service) publishTransition(b *book.Book, caller, requester string, to book.Status) {
	if s.eventBus == nil {
		return
	}

	now := time.Now()
	var err error
	switch to {
	case book.StatusPending:
		err = events.ExchangeRequestedV1.Publish(s.eventBus, events.ExchangeRequestedEvent{
			BookID:    b.ID,
			Title:     b.Title,
			Owner:     b.Owner,
			Requester: caller,
			Timestamp: now,
		}, nil)
	case book.StatusExchanged:
		err = events.ExchangeAcceptedV1.Publish(s.eventBus, events.ExchangeAcceptedEvent{
			BookID:    b.ID,
			Title:     b.Title,
			Owner:     b.Owner,
			Requester: requester,
			Timestamp: now,
		}, nil)
	case book.StatusAvailable:
		err = events.ExchangeCancelledV1.Publish(s.eventBus, events.ExchangeCancelledEvent{
			BookID:    b.ID,
			Title:     b.Title,
			Owner:     b.Owner,
			Requester: requester,
			Timestamp: now,
		}, nil)
	}
	if err != nil {
		log.Printf("[catalog] failed to publish transition event: %v", err)
	}
}

// validateFields checks required fields and enum membership.
func validateFields(f BookFields) error {
	if strings.TrimSpace(f.Title) == "" {
		return fmt.Errorf("%w: title is required", ErrValidation)
	}
	if strings.TrimSpace(f.Author) == "" {
		return fmt.Errorf("%w: author is required", ErrValidation)
	}
	if !book.ValidGenre(f.Genre) {
		return fmt.Errorf("%w: unknown genre %q", ErrValidation, f.Genre)
	}
	if !book.ValidCondition(f.Condition) {
		return fmt.Errorf("%w: unknown condition %q", ErrValidation, f.Condition)
	}
	return nil
}
