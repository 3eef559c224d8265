package catalog

import (
	"context"
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

func setupRepository(t *testing.T) *Repository {
	t.Helper()

	dbPath := "test_repo_" + strings.ReplaceAll(t.Name(), "/", "_") + ".db"
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
	return repo
}

func TestUpdateStatusClearsRequester(t *testing.T) {
	repo := setupRepository(t)
	ctx := context.Background()

	b := &book.Book{
		ID: "book-1", Title: "Dune", Author: "Frank Herbert",
		Genre: book.GenreFiction, Condition: book.ConditionGood,
		Owner: "alice", Status: book.StatusPending, RequestedBy: "bob",
	}
	require.NoError(t, repo.Create(ctx, b))

	// an empty requested_by must actually be written, not skipped as a
	// zero value
	require.NoError(t, repo.UpdateStatus(ctx, "book-1", book.StatusExchanged, ""))

	got, err := repo.FindByID(ctx, "book-1")
	require.NoError(t, err)
	assert.Equal(t, book.StatusExchanged, got.Status)
	assert.Empty(t, got.RequestedBy)
}

func TestUpdateStatusUnknownBook(t *testing.T) {
	repo := setupRepository(t)

	err := repo.UpdateStatus(context.Background(), "no-such-book", book.StatusPending, "bob")
	assert.ErrorIs(t, err, ErrBookNotFound)
}

func TestFindAllOrdersByCreation(t *testing.T) {
	repo := setupRepository(t)
	ctx := context.Background()

	for _, id := range []string{"a", "b", "c"} {
		require.NoError(t, repo.Create(ctx, &book.Book{
			ID: id, Title: "Book " + id, Author: "Author",
			Genre: book.GenreFiction, Condition: book.ConditionGood,
			Owner: "alice", Status: book.StatusAvailable,
		}))
	}

	books, err := repo.FindAll(ctx)
	require.NoError(t, err)
	require.Len(t, books, 3)
	assert.Equal(t, "a", books[0].ID)
	assert.Equal(t, "c", books[2].ID)
}
