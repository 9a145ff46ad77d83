package migrations

import (
	"context"
	"database/sql"
	"embed"
	"fmt"

	"github.com/pressly/goose/v3"
)

//go:embed *.sql
var FS embed.FS

// Logger интерфейс логгера
type Logger interface {
	Info(format string, v ...interface{})
}

// Up применяет все непримененные миграции схемы
func Up(ctx context.Context, db *sql.DB, log Logger) error {
	goose.SetBaseFS(FS)
	defer goose.SetBaseFS(nil)

	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("migrations: set dialect: %w", err)
	}

	if err := goose.UpContext(ctx, db, "."); err != nil {
		return fmt.Errorf("migrations: apply: %w", err)
	}

	version, err := goose.GetDBVersionContext(ctx, db)
	if err != nil {
		return fmt.Errorf("migrations: get version: %w", err)
	}

	log.Info("Database schema is at version %d", version)
	return nil
}
