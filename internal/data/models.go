// internal/data/models.go
package data

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres" // Register the postgres SQL dialect with goqu.
	_ "github.com/doug-martin/goqu/v9/dialect/sqlite3"  // Register the sqlite3 SQL dialect with goqu.
)

// Models is a top-level container that groups all database model types together.
// It is built once at startup and its members are handed to the menu controller.
type Models struct {
	Books BookModel  // Handles all database operations for the books table
	Loans LoanModel  // Answers whether a book is currently on loan
	Audit AuditModel // Appends entries to the audit_log table
}

// NewModels constructs a Models value wired up to the given database handle.
func NewModels(db *DB) Models {
	return Models{
		Books: BookModel{DB: db},
		Loans: LoanModel{DB: db},
		Audit: AuditModel{DB: db},
	}
}

// ErrRecordNotFound is returned when a query finds no matching row.
var ErrRecordNotFound = errors.New("record not found")

// bookColumns is the column list every book SELECT uses, in BookRecord order.
var bookColumns = []any{ColID, ColTitle, ColAuthorFirst, ColAuthorLast, ColPublished, ColBookType}

// BookModel wraps a database handle and provides methods for
// creating, reading, updating, and deleting book records.
type BookModel struct {
	DB *DB
}

// Insert adds a new book record to the database.
// After a successful insert, the database-assigned id is written back into the book.
func (m BookModel) Insert(ctx context.Context, book *Book) error {
	if book.id != 0 {
		return fmt.Errorf("insert book: already stored with id %d", book.id)
	}

	query := m.DB.Rebind(`
		INSERT INTO books (title, author_first, author_last, publication_year, book_type)
		VALUES (?, ?, ?, ?, ?)
		RETURNING id`)

	var id int64
	err := m.DB.QueryRowxContext(ctx, query,
		book.title,
		book.authorFirst,
		book.authorLast,
		book.published,
		book.bookType,
	).Scan(&id)
	if err != nil {
		return fmt.Errorf("insert book: %w", err)
	}

	book.id = id
	return nil
}

// Get retrieves a single book row by its primary key.
// Returns ErrRecordNotFound if no book with the given id exists.
func (m BookModel) Get(ctx context.Context, id int64) (*BookRecord, error) {
	if id < 1 {
		return nil, ErrRecordNotFound
	}

	query := m.DB.Rebind(`
		SELECT id, title, author_first, author_last, publication_year, book_type
		FROM books
		WHERE id = ?`)

	var record BookRecord
	err := m.DB.GetContext(ctx, &record, query, id)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return nil, fmt.Errorf("book %d: %w", id, ErrRecordNotFound)
		default:
			return nil, fmt.Errorf("get book %d: %w", id, err)
		}
	}
	return &record, nil
}

// GetAll retrieves every book row in ascending id order.
func (m BookModel) GetAll(ctx context.Context) ([]*BookRecord, error) {
	query, args, err := m.DB.builder().
		From("books").
		Select(bookColumns...).
		Order(goqu.C(ColID).Asc()).
		Prepared(true).
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list query: %w", err)
	}

	records := []*BookRecord{}
	if err := m.DB.SelectContext(ctx, &records, query, args...); err != nil {
		return nil, fmt.Errorf("list books: %w", err)
	}
	return records, nil
}

// SearchTitle returns every book whose title contains keyword, using the
// engine's LIKE semantics.
func (m BookModel) SearchTitle(ctx context.Context, keyword string) ([]*BookRecord, error) {
	query, args, err := m.DB.builder().
		From("books").
		Select(bookColumns...).
		Where(goqu.C(ColTitle).Like("%" + keyword + "%")).
		Order(goqu.C(ColID).Asc()).
		Prepared(true).
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build search query: %w", err)
	}

	records := []*BookRecord{}
	if err := m.DB.SelectContext(ctx, &records, query, args...); err != nil {
		return nil, fmt.Errorf("search books: %w", err)
	}
	return records, nil
}

// Update writes all pending changes for the book with the given id in a
// single UPDATE statement. When a column appears more than once the last
// value wins. Returns ErrRecordNotFound if no matching record exists.
func (m BookModel) Update(ctx context.Context, id int64, changes []Change) error {
	if len(changes) == 0 {
		return nil
	}

	set := goqu.Record{}
	for _, c := range changes {
		if !updatable(c.Column) {
			return fmt.Errorf("update book %d: column %q cannot be updated", id, c.Column)
		}
		set[c.Column] = c.Value
	}

	query, args, err := m.DB.builder().
		Update("books").
		Set(set).
		Where(goqu.C(ColID).Eq(id)).
		Prepared(true).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build update query: %w", err)
	}

	result, err := m.DB.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update book %d: %w", id, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("update book %d: %w", id, err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("book %d: %w", id, ErrRecordNotFound)
	}
	return nil
}

// Delete removes the book with the given id from the database.
// Returns ErrRecordNotFound if no matching record exists.
func (m BookModel) Delete(ctx context.Context, id int64) error {
	// Guard against obviously bad IDs before touching the database.
	if id < 1 {
		return ErrRecordNotFound
	}

	query := m.DB.Rebind(`DELETE FROM books WHERE id = ?`)

	result, err := m.DB.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("delete book %d: %w", id, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete book %d: %w", id, err)
	}

	// If no rows were deleted, the book didn't exist.
	if rowsAffected == 0 {
		return fmt.Errorf("book %d: %w", id, ErrRecordNotFound)
	}
	return nil
}

func updatable(column string) bool {
	switch column {
	case ColTitle, ColAuthorFirst, ColAuthorLast, ColPublished, ColBookType:
		return true
	}
	return false
}
