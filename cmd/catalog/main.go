// Package main is the entry point for the library catalog console.
// It wires together configuration, the database connection, and the book menus.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/library-catalog/catalog/internal/data"
	"github.com/library-catalog/catalog/internal/prompt"
)

// appVersion is the current version of the catalog console, shown in logs.
const appVersion = "1.0.0"

// applicationDependencies bundles every shared resource that the menu actions need.
// A pointer to this struct is passed as the receiver on all menu and flow methods.
type applicationDependencies struct {
	config  appConfig        // Configuration loaded from flags and the environment
	logger  *slog.Logger     // Structured logger, kept off the console
	books   bookStore        // Book persistence
	loans   loanDesk         // Opens, closes and checks loans
	audit   auditLog         // Append-only record of catalog changes
	console *prompt.Prompter // Reads validated answers from the librarian
}

// bookStore is the persistence the book flows depend on.
type bookStore interface {
	Insert(ctx context.Context, book *data.Book) error
	Get(ctx context.Context, id int64) (*data.BookRecord, error)
	GetAll(ctx context.Context) ([]*data.BookRecord, error)
	SearchTitle(ctx context.Context, keyword string) ([]*data.BookRecord, error)
	Update(ctx context.Context, id int64, changes []data.Change) error
	Delete(ctx context.Context, id int64) error
}

type loanDesk interface {
	CheckNotOnLoan(ctx context.Context, bookID int64) error
	Lend(ctx context.Context, bookID int64, borrower string) (int64, error)
	Return(ctx context.Context, loanID int64) error
}

type auditLog interface {
	Record(ctx context.Context, action string, subjectID int64) error
	ForSubject(ctx context.Context, subjectID int64) ([]data.AuditEntry, error)
}

func main() {
	cfg, err := loadConfig(os.Args[1:])
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	logger := newLogger(&cfg.log)

	ctx := context.Background()

	// Open the database and make sure the schema exists.
	db, err := data.Open(ctx, cfg.db.driver, cfg.db.dsn)
	if err != nil {
		logger.Error(err.Error())
		os.Exit(1)
	}
	defer db.Close()

	logger.Info("database ready", "driver", cfg.db.driver, "version", appVersion)

	models := data.NewModels(db)

	app := &applicationDependencies{
		config:  cfg,
		logger:  logger,
		books:   models.Books,
		loans:   models.Loans,
		audit:   models.Audit,
		console: prompt.New(os.Stdin, os.Stdout),
	}

	if err := app.serve(ctx); err != nil {
		logger.Error(err.Error())
		db.Close()
		os.Exit(1)
	}
}
