// cmd/catalog/recover.go
package main

import (
	"context"
	"fmt"
)

// recoverPanic runs action and turns a panic inside it into a logged error
// report, so the librarian lands back in the menu instead of losing the
// session.
func (app *applicationDependencies) recoverPanic(ctx context.Context, name string, action func(context.Context) error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			app.serverErrorResponse(name, fmt.Errorf("panic: %v", r))
			err = nil
		}
	}()
	return action(ctx)
}
