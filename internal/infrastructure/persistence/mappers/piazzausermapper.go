package mappers

import (
	"fmt"

	"modsoc/internal/domain/piazza"
	"modsoc/internal/infrastructure/persistence/models"
	"modsoc/internal/shared/mapper"
)

// PiazzaUserMapper handles the conversion between Piazza user records and persistence models
type PiazzaUserMapper interface {
	// ToEntity converts a persistence model to a domain entity
	ToEntity(model *models.PiazzaUserModel) (*piazza.User, error)

	// ToModel converts a domain entity to a persistence model
	ToModel(entity *piazza.User) (*models.PiazzaUserModel, error)

	// ToEntities converts multiple persistence models to domain entities
	ToEntities(rows []*models.PiazzaUserModel) ([]*piazza.User, error)
}

// PiazzaUserMapperImpl is the concrete implementation of PiazzaUserMapper
type PiazzaUserMapperImpl struct{}

// NewPiazzaUserMapper creates a new Piazza user mapper
func NewPiazzaUserMapper() PiazzaUserMapper {
	return &PiazzaUserMapperImpl{}
}

// ToEntity converts a persistence model to a domain entity
func (m *PiazzaUserMapperImpl) ToEntity(model *models.PiazzaUserModel) (*piazza.User, error) {
	if model == nil {
		return nil, nil
	}

	params := piazza.UserParams{
		PiazzaID: model.PiazzaID,
		Name:     model.Name,
		Email:    stringValue(model.Email),
		Note:     model.Note,
		Answers:  model.Answers,
		Posts:    model.Posts,
		Views:    model.Views,
		Asks:     model.Asks,
		Days:     model.Days,
	}

	// split columns are written together, so any one being set means the split ran
	var split *piazza.SplitName
	if model.FirstName != nil || model.MiddleName != nil || model.LastName != nil {
		split = &piazza.SplitName{
			First:  stringValue(model.FirstName),
			Middle: stringValue(model.MiddleName),
			Last:   stringValue(model.LastName),
		}
	}

	entity, err := piazza.ReconstructUser(model.ID, params, split, model.DatasetID, model.CentralUserID)
	if err != nil {
		return nil, fmt.Errorf("failed to reconstruct piazza user entity: %w", err)
	}
	return entity, nil
}

// ToModel converts a domain entity to a persistence model
func (m *PiazzaUserMapperImpl) ToModel(entity *piazza.User) (*models.PiazzaUserModel, error) {
	if entity == nil {
		return nil, nil
	}

	model := &models.PiazzaUserModel{
		ID:            entity.ID(),
		DatasetID:     entity.DatasetID(),
		PiazzaID:      entity.PiazzaID(),
		Name:          entity.Name(),
		Email:         entity.Email(),
		Note:          entity.Note(),
		Answers:       entity.Answers(),
		Posts:         entity.Posts(),
		Views:         entity.Views(),
		Asks:          entity.Asks(),
		Days:          entity.Days(),
		CentralUserID: entity.CentralUserID(),
	}

	if split := entity.SplitName(); split != nil {
		model.FirstName = &split.First
		model.MiddleName = &split.Middle
		model.LastName = &split.Last
	}

	return model, nil
}

// ToEntities converts multiple persistence models to domain entities
func (m *PiazzaUserMapperImpl) ToEntities(rows []*models.PiazzaUserModel) ([]*piazza.User, error) {
	return mapper.MapSlicePtrWithID(rows, m.ToEntity, func(row *models.PiazzaUserModel) uint {
		return row.ID
	})
}

func stringValue(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
