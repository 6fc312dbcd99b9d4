package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/innolink/backend/internal/infrastructure/config"
	"github.com/innolink/backend/internal/infrastructure/logger"
	"github.com/innolink/backend/internal/infrastructure/persistence"
	"github.com/innolink/backend/internal/infrastructure/persistence/models"
	"go.uber.org/zap"
)

func main() {
	var logLevel string
	flag.StringVar(&logLevel, "log-level", "info", "Log level (debug, info, warn, error)")
	flag.Parse()

	log, err := logger.New(&logger.Config{
		Level:      logLevel,
		Format:     "console",
		Output:     "stdout",
		TimeFormat: "2006-01-02 15:04:05",
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer func() {
		_ = logger.Sync(log)
	}()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load configuration", zap.Error(err))
	}

	db, err := persistence.NewDatabase(&cfg.Database)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		_ = db.Close()
	}()

	log.Info("Running migrations", zap.String("driver", cfg.Database.Driver))

	err = db.DB.AutoMigrate(
		&models.UserModel{},
		&models.IdeaModel{},
		&models.IdeaCommentModel{},
		&models.IdeaLikeModel{},
		&models.MessageModel{},
	)
	if err != nil {
		log.Fatal("Migration failed", zap.Error(err))
	}

	log.Info("Migrations applied successfully")
}
