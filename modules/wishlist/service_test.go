package wishlist

import (
	"context"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupService(t *testing.T) *Service {
	t.Helper()

	dbPath := "test_wishlist_" + strings.ReplaceAll(t.Name(), "/", "_") + ".db"
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
	return NewService(repo)
}

func TestToggleInvolution(t *testing.T) {
	svc := setupService(t)
	ctx := context.Background()

	ids, msg, err := svc.Toggle(ctx, "alice", "book-1")
	require.NoError(t, err)
	assert.Contains(t, msg, "Added")
	assert.Equal(t, []string{"book-1"}, ids)

	ids, msg, err = svc.Toggle(ctx, "alice", "book-1")
	require.NoError(t, err)
	assert.Contains(t, msg, "Removed")
	assert.Empty(t, ids)

	// a third toggle adds it back
	ids, msg, err = svc.Toggle(ctx, "alice", "book-1")
	require.NoError(t, err)
	assert.Contains(t, msg, "Added")
	assert.Equal(t, []string{"book-1"}, ids)
}

func TestWishlistsAreIndependent(t *testing.T) {
	svc := setupService(t)
	ctx := context.Background()

	_, _, err := svc.Toggle(ctx, "alice", "book-1")
	require.NoError(t, err)
	_, _, err = svc.Toggle(ctx, "alice", "book-2")
	require.NoError(t, err)
	_, _, err = svc.Toggle(ctx, "bob", "book-1")
	require.NoError(t, err)

	aliceIDs, err := svc.SavedBooks(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, []string{"book-1", "book-2"}, aliceIDs)

	bobIDs, err := svc.SavedBooks(ctx, "bob")
	require.NoError(t, err)
	assert.Equal(t, []string{"book-1"}, bobIDs)
}

func TestSavedBooksUnknownUser(t *testing.T) {
	svc := setupService(t)

	ids, err := svc.SavedBooks(context.Background(), "nobody")
	require.NoError(t, err)
	assert.NotNil(t, ids)
	assert.Empty(t, ids)
}

func TestEntriesSurviveBookDeletion(t *testing.T) {
	// Deleting a listing does not cascade into wishlists; the stale id stays
	// until the user toggles it off.
	svc := setupService(t)
	ctx := context.Background()

	_, _, err := svc.Toggle(ctx, "alice", "gone-book")
	require.NoError(t, err)

	ids, err := svc.SavedBooks(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, []string{"gone-book"}, ids)

	ids, _, err = svc.Toggle(ctx, "alice", "gone-book")
	require.NoError(t, err)
	assert.Empty(t, ids)
}

func TestToggleValidation(t *testing.T) {
	svc := setupService(t)
	ctx := context.Background()

	_, _, err := svc.Toggle(ctx, "", "book-1")
	assert.ErrorIs(t, err, ErrInvalidEntry)

	_, _, err = svc.Toggle(ctx, "alice", "  ")
	assert.ErrorIs(t, err, ErrInvalidEntry)

	_, err = svc.SavedBooks(ctx, "")
	assert.ErrorIs(t, err, ErrInvalidEntry)
}
