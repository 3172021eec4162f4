// Package data provides the data models and database interaction logic
// for the library catalog.
package data

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/library-catalog/catalog/internal/validator"
)

// Column names of the books table. They double as the keys of validation errors
// and of pending Change values, so a failed check always names the column it guards.
const (
	ColID          = "id"
	ColTitle       = "title"
	ColAuthorFirst = "author_first"
	ColAuthorLast  = "author_last"
	ColPublished   = "publication_year"
	ColBookType    = "book_type"
)

// MinPublicationYear is the oldest publication year the catalog accepts.
const MinPublicationYear = 1000

// BookTypes lists every book type the catalog recognises.
var BookTypes = []string{
	"fiction",
	"non-fiction",
	"poetry",
	"drama",
	"reference",
	"textbook",
	"biography",
	"children",
}

// now is swapped out by tests that need a fixed current year.
var now = time.Now

// Book represents a single catalog record.
// Fields are only reachable through setters, so a Book that exists has passed
// every field check.
type Book struct {
	id          int64  // Assigned by the store on insert, immutable afterwards
	title       string // Title of the book
	authorFirst string // Author's first name
	authorLast  string // Author's last name
	published   int    // Publication year
	bookType    string // One of BookTypes
}

// BookInput holds the fields a librarian supplies for a new book.
type BookInput struct {
	Title       string
	AuthorFirst string
	AuthorLast  string
	Published   int
	BookType    string
}

// BookRecord maps directly to a row in the "books" table.
type BookRecord struct {
	ID          int64  `db:"id"`
	Title       string `db:"title"`
	AuthorFirst string `db:"author_first"`
	AuthorLast  string `db:"author_last"`
	Published   int    `db:"publication_year"`
	BookType    string `db:"book_type"`
}

// Change is one pending column update produced by an edit session.
type Change struct {
	Column string
	Value  any
}

// NewBook builds a book that has not been stored yet. Every field is run
// through its setter; all failures are reported together.
func NewBook(in BookInput) (*Book, error) {
	b := &Book{}
	v := validator.New()

	setters := []struct {
		column string
		set    func() error
	}{
		{ColTitle, func() error { return b.SetTitle(in.Title) }},
		{ColAuthorFirst, func() error { return b.SetAuthorFirst(in.AuthorFirst) }},
		{ColAuthorLast, func() error { return b.SetAuthorLast(in.AuthorLast) }},
		{ColPublished, func() error { return b.SetPublished(in.Published) }},
		{ColBookType, func() error { return b.SetBookType(in.BookType) }},
	}
	for _, s := range setters {
		if err := s.set(); err != nil {
			v.AddError(s.column, fieldMessage(err, s.column))
		}
	}

	if err := v.Err(); err != nil {
		return nil, err
	}
	return b, nil
}

// RestoreBook builds a book from a stored row, keeping the row's id.
func RestoreBook(r *BookRecord) (*Book, error) {
	if r.ID < 1 {
		return nil, fmt.Errorf("invalid book record: id %d", r.ID)
	}
	b, err := NewBook(BookInput{
		Title:       r.Title,
		AuthorFirst: r.AuthorFirst,
		AuthorLast:  r.AuthorLast,
		Published:   r.Published,
		BookType:    r.BookType,
	})
	if err != nil {
		return nil, fmt.Errorf("invalid book record %d: %w", r.ID, err)
	}
	b.id = r.ID
	return b, nil
}

func (b *Book) ID() int64           { return b.id }
func (b *Book) Title() string       { return b.title }
func (b *Book) AuthorFirst() string { return b.authorFirst }
func (b *Book) AuthorLast() string  { return b.authorLast }
func (b *Book) Published() int      { return b.published }
func (b *Book) BookType() string    { return b.bookType }

// SetTitle validates and assigns the title.
func (b *Book) SetTitle(title string) error {
	if err := CheckTitle(title); err != nil {
		return err
	}
	b.title = title
	return nil
}

// SetAuthorFirst validates and assigns the author's first name.
func (b *Book) SetAuthorFirst(name string) error {
	if err := checkName(ColAuthorFirst, name); err != nil {
		return err
	}
	b.authorFirst = name
	return nil
}

// SetAuthorLast validates and assigns the author's last name.
func (b *Book) SetAuthorLast(name string) error {
	if err := checkName(ColAuthorLast, name); err != nil {
		return err
	}
	b.authorLast = name
	return nil
}

// SetPublished validates and assigns the publication year.
func (b *Book) SetPublished(year int) error {
	v := validator.New()
	checkYearRange(v, year)
	if err := v.Err(); err != nil {
		return err
	}
	b.published = year
	return nil
}

// SetBookType validates and assigns the book type.
func (b *Book) SetBookType(bookType string) error {
	if err := CheckBookType(bookType); err != nil {
		return err
	}
	b.bookType = bookType
	return nil
}

// Record returns the row representation of the book.
func (b *Book) Record() BookRecord {
	return BookRecord{
		ID:          b.id,
		Title:       b.title,
		AuthorFirst: b.authorFirst,
		AuthorLast:  b.authorLast,
		Published:   b.published,
		BookType:    b.bookType,
	}
}

// String renders the book on a single line for the console.
func (b *Book) String() string {
	return fmt.Sprintf("ID: %d | Title: %s | Author: %s %s | Published: %d | Type: %s",
		b.id, b.title, b.authorFirst, b.authorLast, b.published, b.bookType)
}

// CheckTitle reports whether title is acceptable as a book title.
func CheckTitle(title string) error {
	v := validator.New()
	v.Check(strings.TrimSpace(title) != "", ColTitle, "must be provided")
	v.Check(utf8.RuneCountInString(title) <= 100, ColTitle, "must not be more than 100 characters")
	v.Check(validator.Matches(title, validator.TitleRX), ColTitle, "must not start with a space")
	return v.Err()
}

// CheckAuthorFirst reports whether name is acceptable as an author's first name.
func CheckAuthorFirst(name string) error { return checkName(ColAuthorFirst, name) }

// CheckAuthorLast reports whether name is acceptable as an author's last name.
func CheckAuthorLast(name string) error { return checkName(ColAuthorLast, name) }

func checkName(key, name string) error {
	v := validator.New()
	v.Check(name != "", key, "must be provided")
	v.Check(utf8.RuneCountInString(name) <= 50, key, "must not be more than 50 characters")
	v.Check(validator.Matches(name, validator.NameRX), key, "must contain only letters, spaces, apostrophes, dots or hyphens")
	return v.Err()
}

// CheckYear reports whether s is an acceptable publication year.
func CheckYear(s string) error {
	_, err := ParseYear(s)
	return err
}

// ParseYear converts s into a publication year, enforcing the same range as SetPublished.
func ParseYear(s string) (int, error) {
	v := validator.New()
	if !validator.Matches(s, validator.YearRX) {
		v.AddError(ColPublished, "must be a year written with digits only")
		return 0, v.Err()
	}
	year, err := strconv.Atoi(s)
	if err != nil {
		v.AddError(ColPublished, "must be a valid number")
		return 0, v.Err()
	}
	checkYearRange(v, year)
	if err := v.Err(); err != nil {
		return 0, err
	}
	return year, nil
}

func checkYearRange(v *validator.Validator, year int) {
	v.Check(year >= MinPublicationYear, ColPublished, fmt.Sprintf("must not be before %d", MinPublicationYear))
	v.Check(year <= now().Year(), ColPublished, "must not be in the future")
}

// CheckBookType reports whether bookType is one of BookTypes.
func CheckBookType(bookType string) error {
	v := validator.New()
	v.Check(validator.In(bookType, BookTypes...), ColBookType, "must be one of: "+strings.Join(BookTypes, ", "))
	return v.Err()
}

// ParseID converts s into a book identifier.
func ParseID(s string) (int64, error) {
	v := validator.New()
	if !validator.Matches(s, validator.IDRX) {
		v.AddError(ColID, "must be a positive whole number")
		return 0, v.Err()
	}
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		v.AddError(ColID, "is out of range")
		return 0, v.Err()
	}
	return id, nil
}

// CheckID reports whether s is an acceptable book identifier.
func CheckID(s string) error {
	_, err := ParseID(s)
	return err
}

// fieldMessage unwraps a setter failure into the message recorded for column.
func fieldMessage(err error, column string) string {
	var verr *validator.Error
	if errors.As(err, &verr) {
		if msg, ok := verr.Errors[column]; ok {
			return msg
		}
	}
	return err.Error()
}
