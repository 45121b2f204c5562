package main

import (
	"context"
	"time"

	"github.com/arthurcerqueirm/gym-app/internal/config"
	"github.com/arthurcerqueirm/gym-app/internal/repository/mongo"

	"github.com/spf13/viper"
	"go.uber.org/zap"
)

const migrateTimeout = time.Minute

func runMigrate(ctx context.Context, v *viper.Viper) error {
	cfg, logger, err := loadConfig(v)
	if err != nil {
		return err
	}
	defer logger.Sync() //nolint:errcheck

	if cfg.Database.Driver != config.DriverMongo {
		logger.Info("nothing to migrate", zap.String("driver", cfg.Database.Driver))
		return nil
	}

	ctx, cancel := context.WithTimeout(ctx, migrateTimeout)
	defer cancel()

	client, err := mongo.ConnectDB(ctx, cfg.Database.URI)
	if err != nil {
		logger.Error("could not connect to mongodb", zap.Error(err))
		return err
	}
	defer func() {
		if err := mongo.DisconnectDB(client); err != nil {
			logger.Error("failed to disconnect mongodb", zap.Error(err))
		}
	}()

	created, err := mongo.Migrate(ctx, client.Database(cfg.Database.Name))
	logger.Info("migration finished", zap.String("database", cfg.Database.Name), zap.Strings("created", created))
	return err
}
