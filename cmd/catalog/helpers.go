// cmd/catalog/helpers.go
// This file contains the form definitions shared by the add and edit flows,
// plus small console utilities.
package main

import (
	"context"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/library-catalog/catalog/internal/data"
)

// bookField describes how one book column is prompted for, normalised,
// checked and applied to an entity.
type bookField struct {
	column    string
	label     string
	normalize func(string) string
	check     func(string) error
	apply     func(b *data.Book, value string) (any, error)
}

// accepts runs the field check against the normalised value, the same
// value that apply will later receive.
func (f bookField) accepts(raw string) error {
	return f.check(f.normalize(raw))
}

// bookForm lists the fields in the order the add flow asks for them.
var bookForm = []bookField{
	{
		column:    data.ColTitle,
		label:     "Book title: ",
		normalize: titleCase,
		check:     data.CheckTitle,
		apply: func(b *data.Book, v string) (any, error) {
			return v, b.SetTitle(v)
		},
	},
	{
		column:    data.ColAuthorFirst,
		label:     "Author's first name: ",
		normalize: titleCase,
		check:     data.CheckAuthorFirst,
		apply: func(b *data.Book, v string) (any, error) {
			return v, b.SetAuthorFirst(v)
		},
	},
	{
		column:    data.ColAuthorLast,
		label:     "Author's last name: ",
		normalize: titleCase,
		check:     data.CheckAuthorLast,
		apply: func(b *data.Book, v string) (any, error) {
			return v, b.SetAuthorLast(v)
		},
	},
	{
		column:    data.ColPublished,
		label:     "Publication year: ",
		normalize: strings.TrimSpace,
		check:     data.CheckYear,
		apply: func(b *data.Book, v string) (any, error) {
			year, err := data.ParseYear(v)
			if err != nil {
				return nil, err
			}
			return year, b.SetPublished(year)
		},
	},
	{
		column:    data.ColBookType,
		label:     "Book type (" + strings.Join(data.BookTypes, ", ") + "): ",
		normalize: strings.ToLower,
		check:     data.CheckBookType,
		apply: func(b *data.Book, v string) (any, error) {
			return v, b.SetBookType(v)
		},
	},
}

// fieldByColumn returns the form field for column.
func fieldByColumn(column string) bookField {
	for _, f := range bookForm {
		if f.column == column {
			return f
		}
	}
	panic("unknown book column " + column)
}

// bookInput converts collected form values into a BookInput.
func bookInput(values map[string]string) (data.BookInput, error) {
	year, err := data.ParseYear(values[data.ColPublished])
	if err != nil {
		return data.BookInput{}, err
	}
	return data.BookInput{
		Title:       values[data.ColTitle],
		AuthorFirst: values[data.ColAuthorFirst],
		AuthorLast:  values[data.ColAuthorLast],
		Published:   year,
		BookType:    values[data.ColBookType],
	}, nil
}

// titleCase upper-cases the first letter of every word and lower-cases the rest.
func titleCase(s string) string {
	return cases.Title(language.Und).String(s)
}

// showBook prints a single book.
func (app *applicationDependencies) showBook(b *data.Book) {
	app.console.Println(b.String())
}

// record writes an audit entry for action on the book. The audit log is
// fire-and-forget: a failed write is logged and otherwise ignored.
func (app *applicationDependencies) record(ctx context.Context, action string, bookID int64) {
	app.logger.Info(action, "book_id", bookID)
	if err := app.audit.Record(ctx, action, bookID); err != nil {
		app.logger.Warn("audit entry not written", "action", action, "book_id", bookID, "err", err)
	}
}
