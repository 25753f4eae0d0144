package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/gdugdh24/matrimony-backend/internal/config"
	"github.com/gdugdh24/matrimony-backend/internal/infrastructure/database"
	"github.com/gdugdh24/matrimony-backend/internal/infrastructure/logger"
	"go.uber.org/zap"
)

func main() {
	down := flag.Bool("down", false, "roll back the last migration")
	version := flag.Bool("version", false, "print the current schema version")
	force := flag.Int("force", -1, "force the schema version without running migrations")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	log := logger.NewLogger(cfg.Logging.Level, cfg.IsProduction())
	defer func() {
		_ = log.Sync()
	}()

	migrator, err := database.NewMigrator(cfg.Database.GetURL(), log)
	if err != nil {
		log.Fatal("failed to initialize migrator", zap.Error(err))
	}
	defer func() {
		if err := migrator.Close(); err != nil {
			log.Warn("failed to close migrator", zap.Error(err))
		}
	}()

	switch {
	case *version:
		v, dirty, err := migrator.Version()
		if err != nil {
			log.Fatal("failed to read version", zap.Error(err))
		}
		log.Info("schema version", zap.Uint("version", v), zap.Bool("dirty", dirty))
	case *force >= 0:
		err = migrator.Force(*force)
	case *down:
		err = migrator.Down()
	default:
		err = migrator.Up()
	}
	if err != nil {
		log.Fatal("migration failed", zap.Error(err))
	}
}
