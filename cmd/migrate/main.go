package main

import (
	"context"
	"database/sql"
	"flag"
	"os"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
	"go.uber.org/zap"

	"equipment-dashboard/migrations"
	"equipment-dashboard/pkg/config"
	applogger "equipment-dashboard/pkg/logger"
)

func main() {
	command := flag.String("command", "up", "goose command: up, down, status, reset, version, redo, up-to, down-to")
	version := flag.Int64("version", 0, "target version for up-to and down-to")
	flag.Parse()

	cfg := config.New()
	logger := applogger.NewLogger(cfg.Log)
	defer logger.Sync() //nolint:errcheck

	db, err := sql.Open("pgx", cfg.Postgres.DSN)
	if err != nil {
		logger.Fatal("open database", zap.Error(err))
	}
	defer db.Close()

	goose.SetBaseFS(migrations.FS)
	if err := goose.SetDialect("postgres"); err != nil {
		logger.Fatal("set goose dialect", zap.Error(err))
	}

	ctx := context.Background()
	switch *command {
	case "up":
		err = goose.UpContext(ctx, db, ".")
	case "down":
		err = goose.DownContext(ctx, db, ".")
	case "redo":
		err = goose.RedoContext(ctx, db, ".")
	case "reset":
		err = goose.ResetContext(ctx, db, ".")
	case "status":
		err = goose.StatusContext(ctx, db, ".")
	case "version":
		err = goose.VersionContext(ctx, db, ".")
	case "up-to":
		err = goose.UpToContext(ctx, db, ".", *version)
	case "down-to":
		err = goose.DownToContext(ctx, db, ".", *version)
	default:
		logger.Error("unknown migrate command", zap.String("command", *command))
		flag.Usage()
		os.Exit(2)
	}
	if err != nil {
		logger.Fatal("migration failed", zap.String("command", *command), zap.Error(err))
	}
	logger.Info("migration finished", zap.String("command", *command))
}
