package catalog

import (
	"context"
	"fmt"
	"os"
	"strings"
	"testing"

	"github.com/ANUSHKA-GUPTA30/rebook-platform/domain/book"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupService(t *testing.T) *Service {
	t.Helper()

	dbPath := "test_books_" + strings.ReplaceAll(t.Name(), "/", "_") + ".db"
	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	t.Cleanup(func() {
		sqlDB, err := db.DB()
		if err == nil {
			sqlDB.Close()
		}
		os.Remove(dbPath)
	})

	repo := NewRepository(db)
	require.NoError(t, repo.Migrate())

	var seq int
	newID := func() string {
		seq++
		return fmt.Sprintf("book-%04d", seq)
	}

	return NewService(repo, nil, newID)
}

func listGoodFields(title string) BookFields {
	return BookFields{
		Title:     title,
		Author:    "Frank Herbert",
		Genre:     book.GenreFiction,
		Condition: book.ConditionGood,
		Location:  "Berlin",
	}
}

func TestCreateAndList(t *testing.T) {
	svc := setupService(t)
	ctx := context.Background()

	first, err := svc.Create(ctx, "alice", listGoodFields("Dune"))
	require.NoError(t, err)
	assert.Equal(t, book.StatusAvailable, first.Status)
	assert.Equal(t, "alice", first.Owner)
	assert.NotEmpty(t, first.ID)

	_, err = svc.Create(ctx, "bob", listGoodFields("Dune Messiah"))
	require.NoError(t, err)

	books, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, books, 2)
	assert.Equal(t, "Dune", books[0].Title)
	assert.Equal(t, "Dune Messiah", books[1].Title)
}

func TestCreateValidation(t *testing.T) {
	svc := setupService(t)
	ctx := context.Background()

	tests := []struct {
		name   string
		owner  string
		fields BookFields
	}{
		{
			name:   "missing title",
			owner:  "alice",
			fields: BookFields{Author: "Someone", Genre: book.GenreFiction, Condition: book.ConditionGood},
		},
		{
			name:   "missing author",
			owner:  "alice",
			fields: BookFields{Title: "Untitled", Genre: book.GenreFiction, Condition: book.ConditionGood},
		},
		{
			name:   "unknown genre",
			owner:  "alice",
			fields: BookFields{Title: "Dune", Author: "Frank Herbert", Genre: "Horror", Condition: book.ConditionGood},
		},
		{
			name:   "unknown condition",
			owner:  "alice",
			fields: BookFields{Title: "Dune", Author: "Frank Herbert", Genre: book.GenreFiction, Condition: "Shredded"},
		},
		{name: "missing owner", owner: "", fields: listGoodFields("Dune")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Create(ctx, tt.owner, tt.fields)
			assert.Error(t, err)
		})
	}
}

func TestExchangeLifecycle(t *testing.T) {
	svc := setupService(t)
	ctx := context.Background()

	listing, err := svc.Create(ctx, "alice", listGoodFields("Dune"))
	require.NoError(t, err)

	// bob requests the exchange
	pending, err := svc.Transition(ctx, listing.ID, "bob", book.StatusPending)
	require.NoError(t, err)
	assert.Equal(t, book.StatusPending, pending.Status)
	assert.Equal(t, "bob", pending.RequestedBy)

	// alice accepts
	done, err := svc.Transition(ctx, listing.ID, "alice", book.StatusExchanged)
	require.NoError(t, err)
	assert.Equal(t, book.StatusExchanged, done.Status)
	assert.Empty(t, done.RequestedBy)

	// exchanged is terminal
	_, err = svc.Transition(ctx, listing.ID, "carol", book.StatusPending)
	assert.ErrorIs(t, err, book.ErrIllegalTransition)
}

func TestExchangeCancel(t *testing.T) {
	svc := setupService(t)
	ctx := context.Background()

	listing, err := svc.Create(ctx, "alice", listGoodFields("Dune"))
	require.NoError(t, err)

	_, err = svc.Transition(ctx, listing.ID, "bob", book.StatusPending)
	require.NoError(t, err)

	back, err := svc.Transition(ctx, listing.ID, "alice", book.StatusAvailable)
	require.NoError(t, err)
	assert.Equal(t, book.StatusAvailable, back.Status)
	assert.Empty(t, back.RequestedBy)

	// the listing can be requested again after a cancel
	again, err := svc.Transition(ctx, listing.ID, "carol", book.StatusPending)
	require.NoError(t, err)
	assert.Equal(t, "carol", again.RequestedBy)
}

func TestTransitionAuthorization(t *testing.T) {
	svc := setupService(t)
	ctx := context.Background()

	listing, err := svc.Create(ctx, "alice", listGoodFields("Dune"))
	require.NoError(t, err)

	// owners cannot request their own listing, regardless of case
	_, err = svc.Transition(ctx, listing.ID, "Alice", book.StatusPending)
	assert.ErrorIs(t, err, ErrOwnListing)

	_, err = svc.Transition(ctx, listing.ID, "bob", book.StatusPending)
	require.NoError(t, err)

	// only the owner may accept or cancel
	_, err = svc.Transition(ctx, listing.ID, "bob", book.StatusExchanged)
	assert.ErrorIs(t, err, ErrNotOwner)
	_, err = svc.Transition(ctx, listing.ID, "bob", book.StatusAvailable)
	assert.ErrorIs(t, err, ErrNotOwner)
}

func TestTransitionEdgeCases(t *testing.T) {
	svc := setupService(t)
	ctx := context.Background()

	listing, err := svc.Create(ctx, "alice", listGoodFields("Dune"))
	require.NoError(t, err)

	_, err = svc.Transition(ctx, "no-such-book", "bob", book.StatusPending)
	assert.ErrorIs(t, err, ErrBookNotFound)

	_, err = svc.Transition(ctx, listing.ID, "bob", "Reserved")
	assert.ErrorIs(t, err, book.ErrUnknownStatus)

	// same-status writes are rejected
	_, err = svc.Transition(ctx, listing.ID, "alice", book.StatusAvailable)
	assert.ErrorIs(t, err, book.ErrIllegalTransition)
}

func TestEdit(t *testing.T) {
	svc := setupService(t)
	ctx := context.Background()

	listing, err := svc.Create(ctx, "alice", listGoodFields("Dune"))
	require.NoError(t, err)

	fields := listGoodFields("Dune (Deluxe Edition)")
	fields.Condition = book.ConditionNew

	updated, err := svc.Edit(ctx, listing.ID, "alice", fields)
	require.NoError(t, err)
	assert.Equal(t, "Dune (Deluxe Edition)", updated.Title)
	assert.Equal(t, book.ConditionNew, updated.Condition)
	assert.Equal(t, book.StatusAvailable, updated.Status)
	assert.Equal(t, "alice", updated.Owner)

	_, err = svc.Edit(ctx, listing.ID, "bob", fields)
	assert.ErrorIs(t, err, ErrNotOwner)

	_, err = svc.Edit(ctx, "no-such-book", "alice", fields)
	assert.ErrorIs(t, err, ErrBookNotFound)
}

func TestDelete(t *testing.T) {
	svc := setupService(t)
	ctx := context.Background()

	listing, err := svc.Create(ctx, "alice", listGoodFields("Dune"))
	require.NoError(t, err)

	err = svc.Delete(ctx, listing.ID, "bob")
	assert.ErrorIs(t, err, ErrNotOwner)

	require.NoError(t, svc.Delete(ctx, listing.ID, "alice"))

	err = svc.Delete(ctx, listing.ID, "alice")
	assert.ErrorIs(t, err, ErrBookNotFound)

	_, err = svc.Get(ctx, listing.ID)
	assert.ErrorIs(t, err, ErrBookNotFound)
}
