package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"modsoc/internal/domain/piazza"
	"modsoc/internal/infrastructure/persistence/mappers"
	"modsoc/internal/infrastructure/persistence/models"
	"modsoc/internal/shared/db"
	"modsoc/internal/shared/logger"
)

// PiazzaUserRepository implements piazza.Repository on top of GORM
type PiazzaUserRepository struct {
	db     *gorm.DB
	mapper mappers.PiazzaUserMapper
	logger logger.Interface
}

// NewPiazzaUserRepository creates a new Piazza user repository
func NewPiazzaUserRepository(db *gorm.DB, logger logger.Interface) piazza.Repository {
	return &PiazzaUserRepository{
		db:     db,
		mapper: mappers.NewPiazzaUserMapper(),
		logger: logger,
	}
}

// Create inserts a new record and sets its ID
func (r *PiazzaUserRepository) Create(ctx context.Context, user *piazza.User) error {
	model, err := r.mapper.ToModel(user)
	if err != nil {
		return fmt.Errorf("failed to map piazza user entity: %w", err)
	}

	if err := db.GetTxFromContext(ctx, r.db).Create(model).Error; err != nil {
		r.logger.Errorw("failed to create piazza user", "name", model.Name, "error", err)
		return fmt.Errorf("failed to create piazza user: %w", err)
	}

	if err := user.SetID(model.ID); err != nil {
		return fmt.Errorf("failed to set piazza user ID: %w", err)
	}

	r.logger.Debugw("piazza user created", "id", model.ID)
	return nil
}

// Update writes back every mutable column
func (r *PiazzaUserRepository) Update(ctx context.Context, user *piazza.User) error {
	model, err := r.mapper.ToModel(user)
	if err != nil {
		return fmt.Errorf("failed to map piazza user entity: %w", err)
	}

	result := db.GetTxFromContext(ctx, r.db).Model(&models.PiazzaUserModel{}).
		Where("id = ?", model.ID).
		Updates(map[string]interface{}{
			"user_id":         model.PiazzaID,
			"name":            model.Name,
			"email":           model.Email,
			"first_name":      model.FirstName,
			"middle_name":     model.MiddleName,
			"last_name":       model.LastName,
			"dataset_id":      model.DatasetID,
			"central_user_id": model.CentralUserID,
		})

	// RowsAffected may be 0 when the values are unchanged, so only the error is checked.
	if result.Error != nil {
		r.logger.Errorw("failed to update piazza user", "id", model.ID, "error", result.Error)
		return fmt.Errorf("failed to update piazza user: %w", result.Error)
	}

	return nil
}

// Delete removes a record permanently
func (r *PiazzaUserRepository) Delete(ctx context.Context, id uint) error {
	result := db.GetTxFromContext(ctx, r.db).Delete(&models.PiazzaUserModel{}, id)
	if result.Error != nil {
		r.logger.Errorw("failed to delete piazza user", "id", id, "error", result.Error)
		return fmt.Errorf("failed to delete piazza user: %w", result.Error)
	}

	if result.RowsAffected == 0 {
		return fmt.Errorf("piazza user %d not found", id)
	}

	return nil
}

// GetByID retrieves a record by ID
func (r *PiazzaUserRepository) GetByID(ctx context.Context, id uint) (*piazza.User, error) {
	return r.first(ctx, "id", db.GetTxFromContext(ctx, r.db).Where("id = ?", id))
}

// GetByPiazzaID retrieves the lowest-ID record with the Piazza ID
func (r *PiazzaUserRepository) GetByPiazzaID(ctx context.Context, piazzaID string) (*piazza.User, error) {
	return r.first(ctx, "piazza_id", db.GetTxFromContext(ctx, r.db).Where("user_id = ?", piazzaID))
}

// GetByName retrieves the lowest-ID record with the exact display name
func (r *PiazzaUserRepository) GetByName(ctx context.Context, name string) (*piazza.User, error) {
	return r.first(ctx, "name", db.GetTxFromContext(ctx, r.db).Where("name = ?", name))
}

func (r *PiazzaUserRepository) first(ctx context.Context, by string, query *gorm.DB) (*piazza.User, error) {
	var model models.PiazzaUserModel

	if err := query.Order("id ASC").First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		r.logger.Errorw("failed to get piazza user", "by", by, "error", err)
		return nil, fmt.Errorf("failed to get piazza user by %s: %w", by, err)
	}

	entity, err := r.mapper.ToEntity(&model)
	if err != nil {
		return nil, fmt.Errorf("failed to map piazza user: %w", err)
	}
	return entity, nil
}

// List returns records ordered by ID, optionally restricted to one dataset
func (r *PiazzaUserRepository) List(ctx context.Context, datasetID *uint) ([]*piazza.User, error) {
	var rows []*models.PiazzaUserModel

	if err := db.GetTxFromContext(ctx, r.db).
		Scopes(db.InDataset(datasetID)).
		Order("id ASC").
		Find(&rows).Error; err != nil {
		r.logger.Errorw("failed to list piazza users", "error", err)
		return nil, fmt.Errorf("failed to list piazza users: %w", err)
	}

	return r.mapper.ToEntities(rows)
}

// ListByPiazzaID returns every record sharing a Piazza ID ordered by ID
func (r *PiazzaUserRepository) ListByPiazzaID(ctx context.Context, piazzaID string, datasetID *uint) ([]*piazza.User, error) {
	var rows []*models.PiazzaUserModel

	if err := db.GetTxFromContext(ctx, r.db).
		Scopes(db.InDatasetOrUntagged(datasetID)).
		Where("user_id = ?", piazzaID).
		Order("id ASC").
		Find(&rows).Error; err != nil {
		r.logger.Errorw("failed to list piazza users by piazza id", "piazza_id", piazzaID, "error", err)
		return nil, fmt.Errorf("failed to list piazza users by piazza id: %w", err)
	}

	return r.mapper.ToEntities(rows)
}

// ListPiazzaIDs returns the distinct non-null Piazza IDs in ascending order
func (r *PiazzaUserRepository) ListPiazzaIDs(ctx context.Context, datasetID *uint) ([]string, error) {
	var ids []string

	if err := db.GetTxFromContext(ctx, r.db).
		Model(&models.PiazzaUserModel{}).
		Scopes(db.InDatasetOrUntagged(datasetID)).
		Where("user_id IS NOT NULL").
		Distinct("user_id").
		Order("user_id ASC").
		Pluck("user_id", &ids).Error; err != nil {
		r.logger.Errorw("failed to list piazza ids", "error", err)
		return nil, fmt.Errorf("failed to list piazza ids: %w", err)
	}

	return ids, nil
}

// Count returns the number of stored records
func (r *PiazzaUserRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := db.GetTxFromContext(ctx, r.db).Model(&models.PiazzaUserModel{}).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count piazza users: %w", err)
	}
	return count, nil
}
