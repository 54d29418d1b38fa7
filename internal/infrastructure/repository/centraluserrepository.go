package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"modsoc/internal/domain/centraluser"
	"modsoc/internal/infrastructure/persistence/mappers"
	"modsoc/internal/infrastructure/persistence/models"
	"modsoc/internal/shared/db"
	"modsoc/internal/shared/logger"
)

// CentralUserRepository implements centraluser.Directory on top of GORM
type CentralUserRepository struct {
	db     *gorm.DB
	mapper mappers.CentralUserMapper
	logger logger.Interface
}

// NewCentralUserRepository creates a new central user repository
func NewCentralUserRepository(db *gorm.DB, logger logger.Interface) centraluser.Directory {
	return &CentralUserRepository{
		db:     db,
		mapper: mappers.NewCentralUserMapper(),
		logger: logger,
	}
}

func (r *CentralUserRepository) GetByID(ctx context.Context, id uint) (*centraluser.CentralUser, error) {
	return r.first(ctx, "id", db.GetTxFromContext(ctx, r.db).Where("id = ?", id))
}

// FindByEmail matches the primary email exactly
func (r *CentralUserRepository) FindByEmail(ctx context.Context, email string) (*centraluser.CentralUser, error) {
	return r.first(ctx, "email", db.GetTxFromContext(ctx, r.db).Where("email = ?", email))
}

// FindByFirstLast matches first and last name ignoring case
func (r *CentralUserRepository) FindByFirstLast(ctx context.Context, firstName, lastName string) (*centraluser.CentralUser, error) {
	query := db.GetTxFromContext(ctx, r.db).
		Where("LOWER(first_name) = LOWER(?) AND LOWER(last_name) = LOWER(?)", firstName, lastName)
	return r.first(ctx, "name", query)
}

func (r *CentralUserRepository) first(ctx context.Context, by string, query *gorm.DB) (*centraluser.CentralUser, error) {
	var model models.CentralUserModel

	if err := query.Order("id ASC").First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		r.logger.Errorw("failed to get central user", "by", by, "error", err)
		return nil, fmt.Errorf("failed to get central user by %s: %w", by, err)
	}

	return r.mapper.ToEntity(&model)
}

// Create inserts the identity; the model hook fills in the surrogate ID
func (r *CentralUserRepository) Create(ctx context.Context, user *centraluser.CentralUser) error {
	model := r.mapper.ToModel(user)

	if err := db.GetTxFromContext(ctx, r.db).Create(model).Error; err != nil {
		r.logger.Errorw("failed to create central user", "name", model.Name, "error", err)
		return fmt.Errorf("failed to create central user: %w", err)
	}

	if err := user.SetID(model.ID); err != nil {
		return fmt.Errorf("failed to set central user ID: %w", err)
	}

	r.logger.Debugw("central user created", "id", model.ID, "local_user_id", model.LocalUserID)
	return nil
}

// Update writes back the alternate email and the Piazza back-references
func (r *CentralUserRepository) Update(ctx context.Context, user *centraluser.CentralUser) error {
	model := r.mapper.ToModel(user)

	result := db.GetTxFromContext(ctx, r.db).Model(&models.CentralUserModel{}).
		Where("id = ?", model.ID).
		Updates(map[string]interface{}{
			"piazza_alt_email": model.PiazzaAltEmail,
			"piazza_user_id":   model.PiazzaUserID,
			"piazza_id":        model.PiazzaID,
		})

	if result.Error != nil {
		r.logger.Errorw("failed to update central user", "id", model.ID, "error", result.Error)
		return fmt.Errorf("failed to update central user: %w", result.Error)
	}

	return nil
}
