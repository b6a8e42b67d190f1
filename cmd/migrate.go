package cmd

import (
	"crime-report/internal/data/entity"
	"crime-report/pkg/database"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func runMigrate(cmd *cobra.Command, args []string) error {
	config, logger, err := bootstrap()
	if err != nil {
		return err
	}
	defer logger.Sync()

	db, err := database.InitDB(config.Database, config.App.Debug)
	if err != nil {
		logger.Error("Failed to connect to database", zap.Error(err))
		return err
	}
	defer database.Close(db)

	if err := database.Migrate(db, entity.Models()...); err != nil {
		logger.Error("Migration failed", zap.Error(err))
		return err
	}

	tables, err := database.Tables(db)
	if err != nil {
		return err
	}

	logger.Info("Migration complete",
		zap.String("database", database.MaskURL(config.Database.URL)),
		zap.Strings("tables", tables),
	)
	return nil
}
