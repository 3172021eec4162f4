// cmd/catalog/menu.go
package main

import (
	"context"
)

const invalidMenuEntry = "Invalid entry. Please choose one of the options in the menu"

// menuOption binds a key the librarian types to the action it runs.
// An option with a nil action leaves the menu.
type menuOption struct {
	key    string
	label  string
	action func(context.Context) error
}

// mainMenu lists the top-level options.
//
//	[1] Manage books      - book menu
//	[2] Search by title   - keyword search over titles
//	[3] Circulation       - loans and book history
//	[0] Exit
func (app *applicationDependencies) mainMenu() []menuOption {
	return []menuOption{
		{key: "1", label: "Manage books", action: func(ctx context.Context) error {
			return app.runMenu(ctx, app.bookMenu())
		}},
		{key: "2", label: "Search books by title", action: app.findBookByTitle},
		{key: "3", label: "Circulation", action: func(ctx context.Context) error {
			return app.runMenu(ctx, app.circulationMenu())
		}},
		{key: "0", label: "Exit"},
	}
}

// bookMenu lists the book actions. The option set is fixed to 1-4 and 0.
func (app *applicationDependencies) bookMenu() []menuOption {
	return []menuOption{
		{key: "1", label: "Add a book", action: app.addBook},
		{key: "2", label: "Edit a book", action: app.editBookByID},
		{key: "3", label: "Delete a book", action: app.deleteBookByID},
		{key: "4", label: "Display all books", action: app.displayAllBooks},
		{key: "0", label: "Return to the Main Menu"},
	}
}

// runMenu shows options and runs the chosen action, looping back to the same
// menu after every action until an exit option is picked. Input outside the
// option keys is re-prompted in place without limit. Only console failures
// and context cancellation end the loop with an error.
func (app *applicationDependencies) runMenu(ctx context.Context, options []menuOption) error {
	keys := make([]string, len(options))
	byKey := make(map[string]menuOption, len(options))
	for i, o := range options {
		keys[i] = o.key
		byKey[o.key] = o
	}

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		app.console.Println()
		for _, o := range options {
			app.console.Printf("[%s] %s\n", o.key, o.label)
		}

		choice, err := app.console.Choose(invalidMenuEntry, keys...)
		if err != nil {
			return err
		}

		option := byKey[choice]
		if option.action == nil {
			return nil
		}

		if err := app.recoverPanic(ctx, option.label, option.action); err != nil {
			return err
		}
	}
}
