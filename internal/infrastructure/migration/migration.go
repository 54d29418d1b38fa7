package migration

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"modsoc/internal/shared/config"
	"modsoc/internal/shared/logger"
)

// Manager handles database migrations with the strategy matching the driver
type Manager struct {
	strategy Strategy
	logger   logger.Interface
}

// NewManager picks goose for MySQL and GORM AutoMigrate for SQLite
func NewManager(driver string, log logger.Interface) *Manager {
	var strategy Strategy
	switch driver {
	case config.DriverMySQL:
		strategy = NewGooseStrategy(log)
	default:
		strategy = NewGormAutoMigrateStrategy(log)
	}

	return NewManagerWithStrategy(strategy, log)
}

// NewManagerWithStrategy creates a new migration manager with a specific strategy
func NewManagerWithStrategy(strategy Strategy, log logger.Interface) *Manager {
	return &Manager{
		strategy: strategy,
		logger:   log.With("component", "migration.manager"),
	}
}

// Migrate executes the configured migration strategy
func (m *Manager) Migrate(ctx context.Context, db *gorm.DB) error {
	m.logger.Infow("starting database migration", "strategy", m.strategy.GetName())

	if err := m.strategy.Migrate(ctx, db); err != nil {
		m.logger.Errorw("migration failed", "strategy", m.strategy.GetName(), "error", err)
		return fmt.Errorf("migration failed with strategy %s: %w", m.strategy.GetName(), err)
	}

	m.logger.Infow("database migration completed successfully", "strategy", m.strategy.GetName())
	return nil
}

// Down rolls back the given number of versions
func (m *Manager) Down(ctx context.Context, db *gorm.DB, steps int) error {
	gooseStrategy, ok := m.strategy.(*GooseStrategy)
	if !ok {
		return fmt.Errorf("down migration is only supported with goose strategy")
	}
	return gooseStrategy.MigrateDown(ctx, db, steps)
}

// Version returns the applied schema version. AutoMigrate stores carry no version.
func (m *Manager) Version(ctx context.Context, db *gorm.DB) (int64, error) {
	gooseStrategy, ok := m.strategy.(*GooseStrategy)
	if !ok {
		return 0, nil
	}
	return gooseStrategy.GetVersion(ctx, db)
}

// Status prints per-script status where the strategy supports it
func (m *Manager) Status(ctx context.Context, db *gorm.DB) error {
	gooseStrategy, ok := m.strategy.(*GooseStrategy)
	if !ok {
		return nil
	}
	return gooseStrategy.Status(ctx, db)
}

// GetStrategy returns the current migration strategy
func (m *Manager) GetStrategy() Strategy {
	return m.strategy
}

// GetStrategyInfo returns information about the current strategy
func (m *Manager) GetStrategyInfo() map[string]interface{} {
	return map[string]interface{}{
		"name":        m.strategy.GetName(),
		"description": getStrategyDescription(m.strategy.GetName()),
	}
}

func getStrategyDescription(strategyName string) string {
	switch strategyName {
	case "gorm_auto_migrate":
		return "GORM AutoMigrate - schema derived from model definitions"
	case "goose":
		return "goose - versioned SQL scripts embedded in the binary"
	default:
		return "Unknown migration strategy"
	}
}
