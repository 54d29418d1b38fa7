package migration

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"modsoc/internal/infrastructure/persistence/models"
	"modsoc/internal/shared/logger"
)

// AutoMigrateModels lists every persisted model in dependency order.
func AutoMigrateModels() []interface{} {
	return []interface{}{
		&models.CentralUserModel{},
		&models.PiazzaUserModel{},
		&models.GoodTagModel{},
		&models.HistoryModel{},
		&models.ChangeLogModel{},
		&models.ChildModel{},
		&models.ChildEndorsementModel{},
		&models.ChildHistoryModel{},
		&models.SubchildModel{},
	}
}

// GormAutoMigrateStrategy derives the schema from the GORM models. Used for SQLite
// stores where the MySQL scripts do not apply.
type GormAutoMigrateStrategy struct {
	logger logger.Interface
}

func NewGormAutoMigrateStrategy(log logger.Interface) *GormAutoMigrateStrategy {
	return &GormAutoMigrateStrategy{
		logger: log.With("component", "migration.gorm"),
	}
}

func (s *GormAutoMigrateStrategy) Migrate(ctx context.Context, db *gorm.DB) error {
	models := AutoMigrateModels()
	s.logger.Infow("starting gorm auto migration", "models_count", len(models))

	if err := db.WithContext(ctx).AutoMigrate(models...); err != nil {
		s.logger.Errorw("auto migration failed", "error", err)
		return fmt.Errorf("failed to auto migrate: %w", err)
	}

	s.logger.Infow("auto migration completed successfully")
	return nil
}

func (s *GormAutoMigrateStrategy) GetName() string {
	return "gorm_auto_migrate"
}
