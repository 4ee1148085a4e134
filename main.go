package main

import (
	"context"
	"database/sql"
	"io"
	"log/slog"
	"os"

	"github.com/briangreenhill/ftracker/internal/config"
	"github.com/briangreenhill/ftracker/internal/workout"
	_ "github.com/mattn/go-sqlite3"
)

func main() {
	w := os.Stdout
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{}))

	cfg, err := config.Load(os.Getenv("FTRACKER_CONFIG"))
	if err != nil {
		logger.Error("Error loading config", slog.Any("error", err))
		os.Exit(1)
	}

	level, _ := cfg.Log.SlogLevel()
	logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	args := os.Args[1:]

	var workoutService *workout.Service
	if workout.NeedsStore(args) {
		db, err := sql.Open("sqlite3", cfg.Database.Path)
		if err != nil {
			logger.Error("Error opening database", slog.Any("error", err))
			os.Exit(1)
		}
		defer db.Close()

		workoutService = workout.NewService(db, logger)
		if err := workoutService.Migrate(context.Background()); err != nil {
			logger.Error("Error creating table", slog.Any("error", err))
			db.Close()
			os.Exit(1)
		}
	}

	if err := run(w, args, cfg, logger, workoutService); err != nil {
		logger.Error("Error running ftracker", slog.Any("error", err))
		os.Exit(1)
	}
}

// run dispatches args to the CLI. workoutService is nil for commands that
// do not touch the history store.
func run(w io.Writer, args []string, cfg *config.Config, logger *slog.Logger, workoutService *workout.Service) error {
	cli := workout.NewCLI(w, logger, workoutService, cfg.Packages, cfg.API.Addr)

	if err := cli.Run(args); err != nil {
		return err
	}

	return nil
}
