package data

import (
	"context"
	"fmt"

	"github.com/google/uuid"
)

// Audit actions written by the menus.
const (
	ActionBookAdded   = "Book added"
	ActionBookEdited  = "Book edited"
	ActionBookDeleted = "Book deleted"
	ActionBookLent    = "Book lent"
)

// AuditEntry maps to a row in the "audit_log" table.
type AuditEntry struct {
	ID        string `db:"id"`
	Action    string `db:"action"`
	SubjectID int64  `db:"subject_id"`
}

// AuditModel appends to and reads from the audit log.
type AuditModel struct {
	DB *DB
}

// Record appends one entry describing action on the record subjectID.
func (m AuditModel) Record(ctx context.Context, action string, subjectID int64) error {
	query := m.DB.Rebind(`
		INSERT INTO audit_log (id, action, subject_id)
		VALUES (?, ?, ?)`)

	if _, err := m.DB.ExecContext(ctx, query, newEntryID(), action, subjectID); err != nil {
		return fmt.Errorf("record audit %q for %d: %w", action, subjectID, err)
	}
	return nil
}

// ForSubject returns every entry recorded for subjectID, oldest first.
// Entry ids are time-ordered, so sorting on id keeps entries written within
// the same second in the order they were recorded.
func (m AuditModel) ForSubject(ctx context.Context, subjectID int64) ([]AuditEntry, error) {
	query := m.DB.Rebind(`
		SELECT id, action, subject_id
		FROM audit_log
		WHERE subject_id = ?
		ORDER BY id`)

	entries := []AuditEntry{}
	if err := m.DB.SelectContext(ctx, &entries, query, subjectID); err != nil {
		return nil, fmt.Errorf("read audit for %d: %w", subjectID, err)
	}
	return entries, nil
}

// newEntryID returns a version 7 UUID. Ids generated by one process are
// strictly increasing, in both binary and string form.
func newEntryID() string {
	return uuid.Must(uuid.NewV7()).String()
}
