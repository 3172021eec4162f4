package data

import (
	"context"
	"errors"
	"fmt"
	"unicode/utf8"

	"github.com/library-catalog/catalog/internal/validator"
)

// ErrBookOnLoan is the business-rule violation returned when a book that is
// currently lent out would be removed from the catalog.
var ErrBookOnLoan = errors.New("book is currently on loan and cannot be deleted")

// LoanModel records loans opened and closed at the circulation desk and
// answers whether a book is out.
type LoanModel struct {
	DB *DB
}

// CheckNotOnLoan returns ErrBookOnLoan if the book has a loan that has not been returned.
func (m LoanModel) CheckNotOnLoan(ctx context.Context, bookID int64) error {
	query := m.DB.Rebind(`
		SELECT COUNT(*) FROM loans
		WHERE book_id = ? AND returned_at IS NULL`)

	var open int
	if err := m.DB.GetContext(ctx, &open, query, bookID); err != nil {
		return fmt.Errorf("check loans for book %d: %w", bookID, err)
	}
	if open > 0 {
		return fmt.Errorf("book %d: %w", bookID, ErrBookOnLoan)
	}
	return nil
}

// Lend opens a loan of the book to borrower and returns the loan id.
func (m LoanModel) Lend(ctx context.Context, bookID int64, borrower string) (int64, error) {
	if err := CheckBorrower(borrower); err != nil {
		return 0, fmt.Errorf("lend book %d: %w", bookID, err)
	}

	query := m.DB.Rebind(`
		INSERT INTO loans (book_id, borrower)
		VALUES (?, ?)
		RETURNING id`)

	var id int64
	if err := m.DB.QueryRowxContext(ctx, query, bookID, borrower).Scan(&id); err != nil {
		return 0, fmt.Errorf("lend book %d: %w", bookID, err)
	}
	return id, nil
}

// Return closes an open loan. Returns ErrRecordNotFound if the loan does not
// exist or was already returned.
func (m LoanModel) Return(ctx context.Context, loanID int64) error {
	query := m.DB.Rebind(`
		UPDATE loans SET returned_at = CURRENT_TIMESTAMP
		WHERE id = ? AND returned_at IS NULL`)

	result, err := m.DB.ExecContext(ctx, query, loanID)
	if err != nil {
		return fmt.Errorf("return loan %d: %w", loanID, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("return loan %d: %w", loanID, err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("loan %d: %w", loanID, ErrRecordNotFound)
	}
	return nil
}

// CheckBorrower reports whether name is acceptable as a borrower's name.
func CheckBorrower(name string) error {
	v := validator.New()
	v.Check(validator.Matches(name, validator.TitleRX), "borrower", "must be provided and must not start with a space")
	v.Check(utf8.RuneCountInString(name) <= 100, "borrower", "must not be more than 100 characters")
	return v.Err()
}
