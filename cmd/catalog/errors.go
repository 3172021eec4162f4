// cmd/catalog/errors.go
// This file contains all error-reporting helpers for the console.
// Keeping them in one place makes the wording consistent across flows.
package main

import (
	"errors"
	"log/slog"

	"github.com/library-catalog/catalog/internal/data"
)

// logError logs an internal error at ERROR level with the action it interrupted.
func (app *applicationDependencies) logError(action string, err error) {
	app.logger.Error(err.Error(), slog.String("action", action))
}

// errorResponse prints message to the console on its own line.
func (app *applicationDependencies) errorResponse(message any) {
	app.console.Println(message)
}

// serverErrorResponse logs err and prints a generic message.
// Driver error text is kept in the log, not shown to the librarian.
func (app *applicationDependencies) serverErrorResponse(action string, err error) {
	app.logError(action, err)
	app.errorResponse("the catalog encountered a problem and could not complete your request")
}

// notFoundResponse reports a missing book.
func (app *applicationDependencies) notFoundResponse(err error) {
	app.errorResponse(err.Error())
}

// failedValidationResponse prints the field errors of a rejected value.
func (app *applicationDependencies) failedValidationResponse(err error) {
	app.errorResponse(err.Error())
}

// onLoanResponse prints a loan-guard violation.
func (app *applicationDependencies) onLoanResponse(err error) {
	app.logger.Info("delete refused", slog.String("reason", err.Error()))
	app.errorResponse(err.Error())
}

// storeErrorResponse picks the right report for an error returned by the store.
func (app *applicationDependencies) storeErrorResponse(action string, err error) {
	switch {
	case errors.Is(err, data.ErrRecordNotFound):
		app.notFoundResponse(err)
	default:
		app.serverErrorResponse(action, err)
	}
}
