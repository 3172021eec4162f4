// cmd/catalog/circulation.go
// This file contains the circulation desk flows: lending a book, taking a
// loan back and showing what has happened to a book.
package main

import (
	"context"

	"github.com/library-catalog/catalog/internal/data"
)

// circulationMenu lists the loan and history actions.
func (app *applicationDependencies) circulationMenu() []menuOption {
	return []menuOption{
		{key: "1", label: "Lend a book", action: app.lendBook},
		{key: "2", label: "Return a loan", action: app.returnLoan},
		{key: "3", label: "Show book history", action: app.showHistory},
		{key: "0", label: "Return to the Main Menu"},
	}
}

// lendBook opens a loan of a stored book to a named borrower.
func (app *applicationDependencies) lendBook(ctx context.Context) error {
	book, err := app.askForBook(ctx)
	if err != nil || book == nil {
		return err
	}

	ans, err := app.console.Ask("Borrower name: ", data.CheckBorrower)
	if err != nil || ans.Cancelled {
		return err
	}

	loanID, err := app.loans.Lend(ctx, book.ID(), ans.Value)
	if err != nil {
		app.serverErrorResponse("lend book", err)
		return nil
	}

	app.record(ctx, data.ActionBookLent, book.ID())
	app.console.Printf("\n*** Book lent, loan ID %d ***\n", loanID)
	return nil
}

// returnLoan closes an open loan by its id.
func (app *applicationDependencies) returnLoan(ctx context.Context) error {
	ans, err := app.console.Ask("Loan ID: ", data.CheckID)
	if err != nil || ans.Cancelled {
		return err
	}
	loanID, err := data.ParseID(ans.Value)
	if err != nil {
		app.failedValidationResponse(err)
		return nil
	}

	if err := app.loans.Return(ctx, loanID); err != nil {
		app.storeErrorResponse("return loan", err)
		return nil
	}

	app.logger.Info("loan returned", "loan_id", loanID)
	app.console.Println("\n*** Loan returned ***")
	return nil
}

// showHistory prints the audit entries of a book id, oldest first. The book
// does not need to exist any more, so deleted books keep their history.
func (app *applicationDependencies) showHistory(ctx context.Context) error {
	ans, err := app.console.Ask("Book ID: ", data.CheckID)
	if err != nil || ans.Cancelled {
		return err
	}
	id, err := data.ParseID(ans.Value)
	if err != nil {
		app.failedValidationResponse(err)
		return nil
	}

	entries, err := app.audit.ForSubject(ctx, id)
	if err != nil {
		app.serverErrorResponse("show history", err)
		return nil
	}

	if len(entries) == 0 {
		app.console.Println("\n*** No history recorded ***")
		return nil
	}
	for i, e := range entries {
		app.console.Printf("%d. %s\n", i+1, e.Action)
	}
	return nil
}
