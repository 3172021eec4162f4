// cmd/catalog/serve.go
// This file contains the serve() method which runs the console session and
// stops it when an OS signal is received.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/library-catalog/catalog/internal/prompt"
)

// serve runs the main menu in a background goroutine, then blocks until the
// session ends or a SIGINT or SIGTERM arrives. A closed console (EOF) ends the
// session normally.
func (app *applicationDependencies) serve(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	// quit is a buffered channel so the signal package never blocks.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(quit)

	done := make(chan error, 1)
	go func() {
		done <- app.runMenu(ctx, app.mainMenu())
	}()

	app.logger.Info("starting session", "environment", app.config.environment, "driver", app.config.db.driver)

	select {
	case err := <-done:
		if err != nil && !prompt.IsClosed(err) {
			return err
		}
	case s := <-quit:
		// The pending console read cannot be interrupted; the process exits
		// once main returns.
		app.logger.Info("shutting down session", "signal", s.String())
		cancel()
	}

	app.logger.Info("session ended")
	return nil
}
