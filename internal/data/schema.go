package data

import (
	"context"
	"fmt"
)

var schemas = map[string]string{
	"sqlite3": `
CREATE TABLE IF NOT EXISTS books (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	title TEXT NOT NULL,
	author_first TEXT NOT NULL,
	author_last TEXT NOT NULL,
	publication_year INTEGER NOT NULL,
	book_type TEXT NOT NULL,
	created_at DATETIME DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_books_title ON books(title);

CREATE TABLE IF NOT EXISTS loans (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	book_id INTEGER NOT NULL,
	borrower TEXT NOT NULL,
	loaned_at DATETIME DEFAULT CURRENT_TIMESTAMP,
	returned_at DATETIME,
	FOREIGN KEY(book_id) REFERENCES books(id) ON DELETE CASCADE
);

CREATE INDEX IF NOT EXISTS idx_loans_book_id ON loans(book_id);

CREATE TABLE IF NOT EXISTS audit_log (
	id TEXT PRIMARY KEY,
	action TEXT NOT NULL,
	subject_id INTEGER NOT NULL,
	created_at DATETIME DEFAULT CURRENT_TIMESTAMP
);
`,
	"postgres": `
CREATE TABLE IF NOT EXISTS books (
	id BIGINT GENERATED ALWAYS AS IDENTITY PRIMARY KEY,
	title TEXT NOT NULL,
	author_first TEXT NOT NULL,
	author_last TEXT NOT NULL,
	publication_year INTEGER NOT NULL,
	book_type TEXT NOT NULL,
	created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE INDEX IF NOT EXISTS idx_books_title ON books(title);

CREATE TABLE IF NOT EXISTS loans (
	id BIGINT GENERATED ALWAYS AS IDENTITY PRIMARY KEY,
	book_id BIGINT NOT NULL REFERENCES books(id) ON DELETE CASCADE,
	borrower TEXT NOT NULL,
	loaned_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	returned_at TIMESTAMPTZ
);

CREATE INDEX IF NOT EXISTS idx_loans_book_id ON loans(book_id);

CREATE TABLE IF NOT EXISTS audit_log (
	id UUID PRIMARY KEY,
	action TEXT NOT NULL,
	subject_id BIGINT NOT NULL,
	created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);
`,
}

func migrate(ctx context.Context, db *DB) error {
	schema, ok := schemas[db.dialect]
	if !ok {
		return fmt.Errorf("no schema for dialect %q", db.dialect)
	}

	if _, err := db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("migrate schema: %w", err)
	}
	return nil
}
