package migrate

import (
	"context"
	"fmt"

	"github.com/Okleeqo/forecastIQ-app/pkg/config"
	"github.com/Okleeqo/forecastIQ-app/pkg/db"
	"github.com/Okleeqo/forecastIQ-app/pkg/logger"
)

// MaybeRunDev applies pending migrations on startup in development. In
// production migrations run only through cmd/migrate.
func MaybeRunDev(ctx context.Context, cfg *config.Config, logg *logger.Logger, client *db.Client) error {
	if cfg == nil || !cfg.App.IsDev() {
		return nil
	}
	if client == nil {
		return fmt.Errorf("db client is required")
	}

	sqlDB, err := client.SQLDB()
	if err != nil {
		return fmt.Errorf("getting sql handle: %w", err)
	}

	if logg != nil {
		logg.Info(ctx, "running dev migrations")
	}
	return Run(ctx, sqlDB, DefaultDir, "up")
}
