package database

import (
	"context"

	"butce/internal/config"

	"github.com/sirupsen/logrus"
)

// Open builds the worksheet selected by cfg.Store and wraps it in a Repo
// whose header row has been checked.
func Open(ctx context.Context, cfg config.Config, log *logrus.Logger) (*Repo, error) {
	var (
		ws  Worksheet
		err error
	)
	switch cfg.Store {
	case "postgres", "sqlite3":
		ws, err = OpenSQL(ctx, cfg.Store, cfg.DatabaseURL, cfg.SheetName, log)
	case "sheets":
		ws, err = OpenSheets(ctx, cfg.SheetsSpreadsheetID, cfg.SheetsCredentialsFile, log)
	default:
		ws = NewMemoryWorksheet()
	}
	if err != nil {
		return nil, err
	}
	r := New(ws, log)
	if err := r.EnsureHeader(ctx); err != nil {
		ws.Close()
		return nil, err
	}
	return r, nil
}

// OpenOrFallback is Open, except that a store that cannot be reached is
// replaced by an empty in-memory worksheet. The returned error is the
// original failure, nil when the configured store opened.
func OpenOrFallback(ctx context.Context, cfg config.Config, log *logrus.Logger) (*Repo, error) {
	r, err := Open(ctx, cfg, log)
	if err == nil {
		return r, nil
	}
	log.Errorf("open %s store failed, using in-memory table: %v", cfg.Store, err)
	fallback := New(NewMemoryWorksheet(), log)
	_ = fallback.EnsureHeader(ctx)
	return fallback, err
}
