package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"modsoc/internal/domain/content"
	"modsoc/internal/infrastructure/persistence/mappers"
	"modsoc/internal/infrastructure/persistence/models"
	"modsoc/internal/shared/db"
	"modsoc/internal/shared/logger"
	"modsoc/internal/shared/mapper"
)

// ContentRepository implements content.Repository over the seven Piazza content tables
type ContentRepository struct {
	db     *gorm.DB
	logger logger.Interface
}

// NewContentRepository creates a new content repository
func NewContentRepository(db *gorm.DB, logger logger.Interface) content.Repository {
	return &ContentRepository{
		db:     db,
		logger: logger,
	}
}

func findRows[M any, E any](ctx context.Context, r *ContentRepository, what string, scope func(*gorm.DB) *gorm.DB, toEntity func(*M) *E) ([]*E, error) {
	var rows []*M
	if err := db.GetTxFromContext(ctx, r.db).Scopes(scope).Order("id ASC").Find(&rows).Error; err != nil {
		r.logger.Errorw("failed to list content", "relation", what, "error", err)
		return nil, fmt.Errorf("failed to list %s: %w", what, err)
	}
	return mapper.MapSlicePtr(rows, toEntity), nil
}

func byChild(childID uint) func(*gorm.DB) *gorm.DB {
	return func(tx *gorm.DB) *gorm.DB {
		return tx.Where("child_id = ?", childID)
	}
}

func (r *ContentRepository) ListGoodTagsByUser(ctx context.Context, piazzaUserID uint) ([]*content.GoodTag, error) {
	return findRows(ctx, r, "good tags", db.OwnedBy(piazzaUserID), mappers.GoodTagToEntity)
}

func (r *ContentRepository) ListHistoryByUser(ctx context.Context, piazzaUserID uint) ([]*content.HistoryEntry, error) {
	return findRows(ctx, r, "history", db.OwnedBy(piazzaUserID), mappers.HistoryToEntity)
}

func (r *ContentRepository) ListChangeLogsByUser(ctx context.Context, piazzaUserID uint) ([]*content.ChangeLog, error) {
	return findRows(ctx, r, "change log", db.OwnedBy(piazzaUserID), mappers.ChangeLogToEntity)
}

func (r *ContentRepository) ListChildrenByUser(ctx context.Context, piazzaUserID uint) ([]*content.Child, error) {
	return findRows(ctx, r, "children", db.OwnedBy(piazzaUserID), mappers.ChildToEntity)
}

func (r *ContentRepository) ListChildEndorsementsByUser(ctx context.Context, piazzaUserID uint) ([]*content.ChildEndorsement, error) {
	return findRows(ctx, r, "child endorsements", db.OwnedBy(piazzaUserID), mappers.ChildEndorsementToEntity)
}

func (r *ContentRepository) ListChildHistoryByUser(ctx context.Context, piazzaUserID uint) ([]*content.ChildHistory, error) {
	return findRows(ctx, r, "child history", db.OwnedBy(piazzaUserID), mappers.ChildHistoryToEntity)
}

func (r *ContentRepository) ListSubchildrenByUser(ctx context.Context, piazzaUserID uint) ([]*content.Subchild, error) {
	return findRows(ctx, r, "subchildren", db.OwnedBy(piazzaUserID), mappers.SubchildToEntity)
}

func (r *ContentRepository) ListChildHistoryByChild(ctx context.Context, childID uint) ([]*content.ChildHistory, error) {
	return findRows(ctx, r, "child history", byChild(childID), mappers.ChildHistoryToEntity)
}

func (r *ContentRepository) ListSubchildrenByChild(ctx context.Context, childID uint) ([]*content.Subchild, error) {
	return findRows(ctx, r, "subchildren", byChild(childID), mappers.SubchildToEntity)
}

func (r *ContentRepository) update(ctx context.Context, what string, model interface{}, id uint, values map[string]interface{}) error {
	if err := db.GetTxFromContext(ctx, r.db).Model(model).Where("id = ?", id).Updates(values).Error; err != nil {
		r.logger.Errorw("failed to update content", "relation", what, "id", id, "error", err)
		return fmt.Errorf("failed to update %s %d: %w", what, id, err)
	}
	return nil
}

func snapshotColumns(s content.AuthorSnapshot) map[string]interface{} {
	return map[string]interface{}{
		"user_id":     s.UserID,
		"name":        s.Name,
		"email":       s.Email,
		"photo":       s.Photo,
		"facebook_id": s.FacebookID,
	}
}

func (r *ContentRepository) UpdateGoodTag(ctx context.Context, tag *content.GoodTag) error {
	return r.update(ctx, "good tag", &models.GoodTagModel{}, tag.ID, snapshotColumns(tag.AuthorSnapshot))
}

func (r *ContentRepository) UpdateHistory(ctx context.Context, entry *content.HistoryEntry) error {
	return r.update(ctx, "history", &models.HistoryModel{}, entry.ID, map[string]interface{}{"uid": entry.UID})
}

func (r *ContentRepository) UpdateChangeLog(ctx context.Context, change *content.ChangeLog) error {
	return r.update(ctx, "change log", &models.ChangeLogModel{}, change.ID, map[string]interface{}{"uid": change.UID})
}

func (r *ContentRepository) UpdateChild(ctx context.Context, child *content.Child) error {
	return r.update(ctx, "child", &models.ChildModel{}, child.ID, map[string]interface{}{
		"uid":        child.UID,
		"display_id": child.DisplayID,
	})
}

func (r *ContentRepository) UpdateChildEndorsement(ctx context.Context, endorsement *content.ChildEndorsement) error {
	return r.update(ctx, "child endorsement", &models.ChildEndorsementModel{}, endorsement.ID,
		snapshotColumns(endorsement.AuthorSnapshot))
}

func (r *ContentRepository) UpdateChildHistory(ctx context.Context, entry *content.ChildHistory) error {
	return r.update(ctx, "child history", &models.ChildHistoryModel{}, entry.ID, map[string]interface{}{"user_id": entry.UserID})
}

func (r *ContentRepository) UpdateSubchild(ctx context.Context, subchild *content.Subchild) error {
	return r.update(ctx, "subchild", &models.SubchildModel{}, subchild.ID, map[string]interface{}{"uid": subchild.UID})
}
