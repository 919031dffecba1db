package db

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	_ "github.com/lib/pq"
	"github.com/pressly/goose/v3"

	"github.com/levalimpiev/post-interactions/internal/config"
)

//go:embed migrations/*.sql
var migrations embed.FS

// Open устанавливает соединение с PostgreSQL через драйвер lib/pq или pgx
func Open(ctx context.Context, cfg config.DBConfig) (*sql.DB, error) {
	driverName := "postgres"
	if cfg.Driver == config.DriverPgx {
		driverName = "pgx"
	}

	db, err := sql.Open(driverName, cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("ошибка при открытии соединения с БД: %w", err)
	}

	// Устанавливаем параметры соединения
	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxOpenConns)
	db.SetConnMaxLifetime(5 * time.Minute)

	pingCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ошибка при проверке соединения с БД: %w", err)
	}

	return db, nil
}

// Migrate создает схему из встроенных SQL-файлов
func Migrate(db *sql.DB) error {
	if db == nil {
		return ErrDatabaseConnectionRequired
	}

	goose.SetBaseFS(migrations)
	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("ошибка при выборе диалекта миграций: %w", err)
	}
	if err := goose.Up(db, "migrations"); err != nil {
		return fmt.Errorf("ошибка при применении миграций: %w", err)
	}
	return nil
}
