// cmd/catalog/books.go
// This file contains the book flows reachable from the menus.
// Each flow is a method on *applicationDependencies so it has access to the
// console, the logger and the store. A flow returns an error only when the
// console itself fails; every other failure is reported and the flow ends.
package main

import (
	"context"
	"errors"

	"github.com/library-catalog/catalog/internal/data"
)

// collectBook asks for every field of a new book in order. Cancelling any
// field abandons the whole form and reports cancelled.
func (app *applicationDependencies) collectBook() (values map[string]string, cancelled bool, err error) {
	app.console.Println("Please enter new book details:")

	values = make(map[string]string, len(bookForm))
	for _, f := range bookForm {
		ans, err := app.console.Ask(f.label, f.accepts)
		if err != nil {
			return nil, false, err
		}
		if ans.Cancelled {
			return nil, true, nil
		}
		values[f.column] = f.normalize(ans.Value)
	}
	return values, false, nil
}

// addBook collects a new book, stores it and records the addition. A book
// that fails construction restarts the form from the first field.
func (app *applicationDependencies) addBook(ctx context.Context) error {
	for {
		values, cancelled, err := app.collectBook()
		if err != nil {
			return err
		}
		if cancelled {
			return nil
		}

		in, err := bookInput(values)
		if err != nil {
			app.failedValidationResponse(err)
			continue
		}

		book, err := data.NewBook(in)
		if err != nil {
			app.failedValidationResponse(err)
			continue
		}

		// Insert() writes the store-assigned id back into book.
		if err := app.books.Insert(ctx, book); err != nil {
			app.serverErrorResponse("add book", err)
			return nil
		}

		app.record(ctx, data.ActionBookAdded, book.ID())
		app.console.Println("\n*** Book added successfully! ***")
		return nil
	}
}

// askForBook asks for a book id and loads that book. A nil book with a nil
// error means the librarian cancelled or the stored row was unusable.
func (app *applicationDependencies) askForBook(ctx context.Context) (*data.Book, error) {
	ans, err := app.console.Ask("ID number: ", data.CheckID)
	if err != nil || ans.Cancelled {
		return nil, err
	}
	id, err := data.ParseID(ans.Value)
	if err != nil {
		app.failedValidationResponse(err)
		return nil, nil
	}
	return app.getBook(ctx, id)
}

// getBook loads the book with the given id, asking for another id after
// every failed lookup. A row that does not make a valid book is reported and
// nil is returned.
func (app *applicationDependencies) getBook(ctx context.Context, id int64) (*data.Book, error) {
	var record *data.BookRecord
	for {
		var err error
		record, err = app.books.Get(ctx, id)
		if err == nil {
			break
		}
		// Report the failed lookup, then ask for another id.
		app.storeErrorResponse("get book", err)

		ans, err := app.console.Ask("Enter book ID: ", data.CheckID)
		if err != nil || ans.Cancelled {
			return nil, err
		}
		if id, err = data.ParseID(ans.Value); err != nil {
			app.failedValidationResponse(err)
			return nil, nil
		}
	}

	// A stored row that breaks a field rule cannot become a Book.
	book, err := data.RestoreBook(record)
	if err != nil {
		app.failedValidationResponse(err)
		return nil, nil
	}

	app.showBook(book)
	return book, nil
}

func (app *applicationDependencies) editBookByID(ctx context.Context) error {
	book, err := app.askForBook(ctx)
	if err != nil || book == nil {
		return err
	}
	return app.editBook(ctx, book)
}

func (app *applicationDependencies) deleteBookByID(ctx context.Context) error {
	book, err := app.askForBook(ctx)
	if err != nil || book == nil {
		return err
	}
	return app.deleteBook(ctx, book)
}

// editChoices maps the edit menu keys to the column they change.
var editChoices = []struct {
	key    string
	label  string
	column string
}{
	{"1", "Edit book title", data.ColTitle},
	{"2", "Edit book author's first name", data.ColAuthorFirst},
	{"3", "Edit book author's last name", data.ColAuthorLast},
	{"4", "Edit publication year", data.ColPublished},
	{"5", "Edit book type", data.ColBookType},
}

// editBook lets the librarian change any number of fields of book and
// writes them back in a single update once they confirm they are done.
// Cancelling a field, or leaving through [0], writes nothing.
func (app *applicationDependencies) editBook(ctx context.Context, book *data.Book) error {
	// Build the key set accepted by the edit menu.
	keys := []string{"0"}
	columns := make(map[string]string, len(editChoices))
	for _, c := range editChoices {
		keys = append(keys, c.key)
		columns[c.key] = c.column
	}

	// Accepted changes are held here until the librarian is done.
	var changes []data.Change
	for {
		app.console.Println()
		for _, c := range editChoices {
			app.console.Printf("[%s] %s\n", c.key, c.label)
		}
		app.console.Println("[0] Return to Book Menu")

		choice, err := app.console.Choose("", keys...)
		if err != nil {
			return err
		}
		if choice == "0" {
			return nil
		}

		// Collect a value for the chosen field. Cancelling drops every pending change.
		change, cancelled, err := app.editField(book, fieldByColumn(columns[choice]))
		if err != nil {
			return err
		}
		if cancelled {
			return nil
		}
		changes = append(changes, change)

		app.console.Println("Anything else to edit?\n[1] Yes\n[2] No")
		more, err := app.console.Choose("", "1", "2")
		if err != nil {
			return err
		}
		if more == "1" {
			continue
		}

		// Write every pending change in one update.
		if err := app.books.Update(ctx, book.ID(), changes); err != nil {
			app.storeErrorResponse("edit book", err)
			return nil
		}

		app.record(ctx, data.ActionBookEdited, book.ID())
		app.console.Println("\n*** Book edited successfully! ***")
		return nil
	}
}

// editField prompts for one field until the entity accepts the value.
func (app *applicationDependencies) editField(book *data.Book, f bookField) (data.Change, bool, error) {
	for {
		ans, err := app.console.Ask(f.label, f.accepts)
		if err != nil {
			return data.Change{}, false, err
		}
		if ans.Cancelled {
			return data.Change{}, true, nil
		}

		value, err := f.apply(book, f.normalize(ans.Value))
		if err != nil {
			// Backstop only: accepts already ran the same check the setter runs.
			app.failedValidationResponse(err)
			continue
		}
		return data.Change{Column: f.column, Value: value}, false, nil
	}
}

// deleteBook removes book after confirmation, unless it is on loan.
func (app *applicationDependencies) deleteBook(ctx context.Context, book *data.Book) error {
	app.console.Println("\nConfirm delete?\n[1] Yes\n[2] No")
	choice, err := app.console.Choose("", "1", "2")
	if err != nil {
		return err
	}
	if choice == "2" {
		return nil
	}

	if err := app.loans.CheckNotOnLoan(ctx, book.ID()); err != nil {
		switch {
		case errors.Is(err, data.ErrBookOnLoan):
			app.onLoanResponse(err)
		default:
			app.serverErrorResponse("delete book", err)
		}
		return nil
	}

	if err := app.books.Delete(ctx, book.ID()); err != nil {
		app.storeErrorResponse("delete book", err)
		return nil
	}

	app.record(ctx, data.ActionBookDeleted, book.ID())
	app.console.Println("\n*** Book deleted successfully ***")
	return nil
}

// displayAllBooks prints every stored book in store order.
func (app *applicationDependencies) displayAllBooks(ctx context.Context) error {
	records, err := app.books.GetAll(ctx)
	if err != nil {
		app.serverErrorResponse("display books", err)
		return nil
	}

	for _, r := range records {
		book, err := data.RestoreBook(r)
		if err != nil {
			app.failedValidationResponse(err)
			continue
		}
		app.showBook(book)
	}
	return nil
}

// findBookByTitle repeatedly asks for a keyword and lists the books whose
// title contains it, until the librarian cancels.
func (app *applicationDependencies) findBookByTitle(ctx context.Context) error {
	for {
		app.console.Println()
		ans, err := app.console.Ask("Enter search keyword: ", nil)
		if err != nil {
			return err
		}
		if ans.Cancelled {
			return nil
		}

		records, err := app.books.SearchTitle(ctx, ans.Value)
		if err != nil {
			app.serverErrorResponse("search books", err)
			continue
		}

		if len(records) == 0 {
			app.console.Println("\n*** No matching results found ***")
			continue
		}

		app.console.Printf("************************************\nFOUND %d RESULT(S):\n", len(records))
		for _, r := range records {
			book, err := data.RestoreBook(r)
			if err != nil {
				app.failedValidationResponse(err)
				continue
			}
			app.showBook(book)
		}
		app.console.Println("************************************")
	}
}
