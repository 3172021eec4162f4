package main

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/library-catalog/catalog/internal/data"
	"github.com/library-catalog/catalog/internal/prompt"
)

func TestLendBook(t *testing.T) {
	env := newTestEnv(t, lines("1", "", "Ada Lovelace"))
	ctx := context.Background()
	book := env.seed(t, dune())

	require.NoError(t, env.app.lendBook(ctx))

	assert.ErrorIs(t, env.models.Loans.CheckNotOnLoan(ctx, book.ID()), data.ErrBookOnLoan)
	assert.Equal(t, []string{data.ActionBookLent}, env.audit(t, book.ID()))

	out := env.out.String()
	assert.Contains(t, out, book.String())
	assert.Contains(t, out, "borrower: must be provided")
	assert.Contains(t, out, "*** Book lent, loan ID 1 ***")
}

func TestLendBookCancelled(t *testing.T) {
	env := newTestEnv(t, lines("1", prompt.Cancel))
	ctx := context.Background()
	book := env.seed(t, dune())

	require.NoError(t, env.app.lendBook(ctx))

	assert.NoError(t, env.models.Loans.CheckNotOnLoan(ctx, book.ID()))
	assert.Empty(t, env.audit(t, book.ID()))
}

func TestReturnLoan(t *testing.T) {
	env := newTestEnv(t, lines("1", "1"))
	ctx := context.Background()
	book := env.seed(t, dune())

	loanID, err := env.models.Loans.Lend(ctx, book.ID(), "Ada")
	require.NoError(t, err)
	require.Equal(t, int64(1), loanID)

	require.NoError(t, env.app.returnLoan(ctx))
	assert.NoError(t, env.models.Loans.CheckNotOnLoan(ctx, book.ID()))
	assert.Contains(t, env.out.String(), "*** Loan returned ***")

	// The same loan cannot be returned twice.
	require.NoError(t, env.app.returnLoan(ctx))
	assert.Contains(t, env.out.String(), "loan 1: record not found")
}

func TestShowHistory(t *testing.T) {
	env := newTestEnv(t, lines("7", "8"))
	ctx := context.Background()

	for _, action := range []string{data.ActionBookAdded, data.ActionBookEdited, data.ActionBookDeleted} {
		require.NoError(t, env.models.Audit.Record(ctx, action, 7))
	}

	require.NoError(t, env.app.showHistory(ctx))
	assert.Contains(t, env.out.String(), "1. Book added\n2. Book edited\n3. Book deleted\n")

	require.NoError(t, env.app.showHistory(ctx))
	assert.Contains(t, env.out.String(), "*** No history recorded ***")
}

func TestCirculationMenuSession(t *testing.T) {
	env := newTestEnv(t, lines(
		"3",             // circulation
		"1", "1", "Ada", // lend book 1
		"3", "1", // history of book 1
		"0", // back to main menu
		"0", // exit
	))
	book := env.seed(t, dune())

	require.NoError(t, env.app.runMenu(context.Background(), env.app.mainMenu()))

	assert.ErrorIs(t, env.models.Loans.CheckNotOnLoan(context.Background(), book.ID()), data.ErrBookOnLoan)
	assert.Contains(t, env.out.String(), "1. Book lent\n")
}
