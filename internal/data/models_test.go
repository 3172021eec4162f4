package data

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestDB(t *testing.T) Models {
	t.Helper()

	db, err := Open(context.Background(), DriverSQLite, filepath.Join(t.TempDir(), "catalog.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	return NewModels(db)
}

func insertBook(t *testing.T, models Models, in BookInput) *Book {
	t.Helper()

	b, err := NewBook(in)
	require.NoError(t, err)
	require.NoError(t, models.Books.Insert(context.Background(), b))
	return b
}

func TestOpenRejectsUnknownDriver(t *testing.T) {
	_, err := Open(context.Background(), "oracle", "whatever")
	assert.ErrorContains(t, err, "unsupported database driver")
}

func TestOpenIsIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "catalog.db")

	db, err := Open(context.Background(), DriverSQLite, path)
	require.NoError(t, err)
	require.NoError(t, db.Close())

	db, err = Open(context.Background(), DriverSQLite, path)
	require.NoError(t, err)
	require.NoError(t, db.Close())
}

func TestInsertAndGet(t *testing.T) {
	models := setupTestDB(t)
	ctx := context.Background()

	b := insertBook(t, models, duneInput())
	assert.Greater(t, b.ID(), int64(0))

	got, err := models.Books.Get(ctx, b.ID())
	require.NoError(t, err)
	assert.Equal(t, b.Record(), *got)

	// A stored book cannot be inserted a second time.
	assert.Error(t, models.Books.Insert(ctx, b))
}

func TestGetNotFound(t *testing.T) {
	models := setupTestDB(t)
	ctx := context.Background()

	_, err := models.Books.Get(ctx, 404)
	assert.ErrorIs(t, err, ErrRecordNotFound)

	_, err = models.Books.Get(ctx, 0)
	assert.ErrorIs(t, err, ErrRecordNotFound)
}

func TestIDsAreNotReusedAfterDelete(t *testing.T) {
	models := setupTestDB(t)
	ctx := context.Background()

	first := insertBook(t, models, duneInput())
	second := insertBook(t, models, duneInput())
	require.NoError(t, models.Books.Delete(ctx, second.ID()))

	third := insertBook(t, models, duneInput())
	assert.Greater(t, third.ID(), second.ID())
	assert.NotEqual(t, first.ID(), third.ID())
}

func TestGetAllKeepsStoreOrder(t *testing.T) {
	models := setupTestDB(t)
	ctx := context.Background()

	empty, err := models.Books.GetAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, empty)

	titles := []string{"Dune", "Emma", "Beloved"}
	for _, title := range titles {
		in := duneInput()
		in.Title = title
		insertBook(t, models, in)
	}

	records, err := models.Books.GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, records, 3)
	for i, r := range records {
		assert.Equal(t, titles[i], r.Title)
	}
}

func TestSearchTitle(t *testing.T) {
	models := setupTestDB(t)
	ctx := context.Background()

	for _, title := range []string{"Dune", "Dune Messiah", "Children Of Dune", "Emma"} {
		in := duneInput()
		in.Title = title
		insertBook(t, models, in)
	}

	records, err := models.Books.SearchTitle(ctx, "Dune")
	require.NoError(t, err)
	assert.Len(t, records, 3)

	records, err = models.Books.SearchTitle(ctx, "Solaris")
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestUpdateWritesOnlyChangedColumns(t *testing.T) {
	models := setupTestDB(t)
	ctx := context.Background()

	b := insertBook(t, models, duneInput())

	err := models.Books.Update(ctx, b.ID(), []Change{
		{Column: ColPublished, Value: 1966},
		{Column: ColTitle, Value: "Dune Messiah"},
		{Column: ColPublished, Value: 1985},
	})
	require.NoError(t, err)

	got, err := models.Books.Get(ctx, b.ID())
	require.NoError(t, err)
	assert.Equal(t, "Dune Messiah", got.Title)
	assert.Equal(t, 1985, got.Published)
	assert.Equal(t, "Frank", got.AuthorFirst)
	assert.Equal(t, "Herbert", got.AuthorLast)
	assert.Equal(t, "fiction", got.BookType)
}

func TestUpdateGuards(t *testing.T) {
	models := setupTestDB(t)
	ctx := context.Background()

	b := insertBook(t, models, duneInput())

	assert.NoError(t, models.Books.Update(ctx, b.ID(), nil))
	assert.ErrorContains(t, models.Books.Update(ctx, b.ID(), []Change{{Column: ColID, Value: 99}}), "cannot be updated")
	assert.ErrorIs(t, models.Books.Update(ctx, 404, []Change{{Column: ColTitle, Value: "Emma"}}), ErrRecordNotFound)
}

func TestDelete(t *testing.T) {
	models := setupTestDB(t)
	ctx := context.Background()

	b := insertBook(t, models, duneInput())
	require.NoError(t, models.Books.Delete(ctx, b.ID()))

	_, err := models.Books.Get(ctx, b.ID())
	assert.ErrorIs(t, err, ErrRecordNotFound)

	assert.ErrorIs(t, models.Books.Delete(ctx, b.ID()), ErrRecordNotFound)
	assert.ErrorIs(t, models.Books.Delete(ctx, 0), ErrRecordNotFound)
}

func TestLoans(t *testing.T) {
	models := setupTestDB(t)
	ctx := context.Background()

	b := insertBook(t, models, duneInput())
	require.NoError(t, models.Loans.CheckNotOnLoan(ctx, b.ID()))

	_, err := models.Loans.Lend(ctx, b.ID(), "  ")
	assert.Error(t, err)

	loanID, err := models.Loans.Lend(ctx, b.ID(), "Ada")
	require.NoError(t, err)
	assert.ErrorIs(t, models.Loans.CheckNotOnLoan(ctx, b.ID()), ErrBookOnLoan)

	require.NoError(t, models.Loans.Return(ctx, loanID))
	assert.NoError(t, models.Loans.CheckNotOnLoan(ctx, b.ID()))
	assert.ErrorIs(t, models.Loans.Return(ctx, loanID), ErrRecordNotFound)

	// Returned loans do not block deleting the book.
	require.NoError(t, models.Books.Delete(ctx, b.ID()))
}

func TestAuditRecord(t *testing.T) {
	models := setupTestDB(t)
	ctx := context.Background()

	require.NoError(t, models.Audit.Record(ctx, ActionBookAdded, 5))
	require.NoError(t, models.Audit.Record(ctx, ActionBookEdited, 6))

	entries, err := models.Audit.ForSubject(ctx, 5)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, ActionBookAdded, entries[0].Action)
	assert.Equal(t, int64(5), entries[0].SubjectID)
	assert.Equal(t, uuid.Version(7), uuid.MustParse(entries[0].ID).Version())
}

func TestAuditForSubjectKeepsRecordingOrder(t *testing.T) {
	models := setupTestDB(t)
	ctx := context.Background()

	// Every subject gets its full history well within one second, so
	// created_at alone cannot tell the entries apart.
	const subjects = 40
	for id := int64(1); id <= subjects; id++ {
		require.NoError(t, models.Audit.Record(ctx, ActionBookAdded, id))
		require.NoError(t, models.Audit.Record(ctx, ActionBookEdited, id))
		require.NoError(t, models.Audit.Record(ctx, ActionBookDeleted, id))
	}

	for id := int64(1); id <= subjects; id++ {
		entries, err := models.Audit.ForSubject(ctx, id)
		require.NoError(t, err)

		actions := make([]string, len(entries))
		for i, e := range entries {
			actions[i] = e.Action
		}
		assert.Equal(t, []string{ActionBookAdded, ActionBookEdited, ActionBookDeleted}, actions, "subject %d", id)
	}
}
