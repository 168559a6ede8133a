package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"meal-board/internal/app"
	"meal-board/internal/config"
	"meal-board/internal/database"
	"meal-board/internal/metrics"
	"meal-board/internal/planner"
	"meal-board/internal/storage"
	"meal-board/internal/store"
	"meal-board/pkg/logger"
)

func main() {
	ctx := context.Background()

	cfg, err := config.NewFromEnv()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	log := logger.New("meal-board", cfg.LogDir)
	defer log.Sync()

	db, err := database.NewDB(cfg.DatabasePath)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	repo := store.NewRepository(db.SQL)

	board, err := loadBoard(ctx, repo)
	if err != nil {
		log.Fatalf("Failed to load board state: %v", err)
	}
	board.SetHistoryLimit(cfg.HistoryLimit)

	archive, err := storage.NewBackupArchive(cfg.BackupDir)
	if err != nil {
		log.Fatalf("Failed to initialize backup archive: %v", err)
	}

	application := app.NewApp(board, repo, metrics.NewStore(db.SQL), archive, cfg, log)

	if len(os.Args) < 2 {
		app.PrintUsage()
		os.Exit(1)
	}

	if err := application.Run(ctx, os.Args[1], os.Args[2:]); err != nil {
		log.Fatalf("Command %q failed: %v", os.Args[1], err)
	}

	if err := repo.Save(ctx, application.Board().State()); err != nil {
		log.Fatalf("Failed to save board state: %v", err)
	}
}

func loadBoard(ctx context.Context, repo *store.Repository) (*planner.Board, error) {
	state, err := repo.Load(ctx)
	if err != nil {
		return nil, err
	}
	if state == nil {
		return planner.NewBoard(time.Now()), nil
	}
	return planner.NewBoardFromState(state), nil
}
