package mappers

import (
	"fmt"

	"modsoc/internal/domain/centraluser"
	"modsoc/internal/infrastructure/persistence/models"
)

// CentralUserMapper handles the conversion between central identities and persistence models
type CentralUserMapper interface {
	ToEntity(model *models.CentralUserModel) (*centraluser.CentralUser, error)
	ToModel(entity *centraluser.CentralUser) *models.CentralUserModel
}

type centralUserMapper struct{}

// NewCentralUserMapper creates a new central user mapper
func NewCentralUserMapper() CentralUserMapper {
	return &centralUserMapper{}
}

func (m *centralUserMapper) ToEntity(model *models.CentralUserModel) (*centraluser.CentralUser, error) {
	if model == nil {
		return nil, nil
	}

	entity, err := centraluser.ReconstructCentralUser(centraluser.ReconstructParams{
		ID:             model.ID,
		LocalUserID:    model.LocalUserID,
		DatasetID:      model.DatasetID,
		Name:           model.Name,
		FirstName:      model.FirstName,
		MiddleName:     model.MiddleName,
		LastName:       model.LastName,
		Email:          model.Email,
		PiazzaAltEmail: model.PiazzaAltEmail,
		PiazzaUserID:   model.PiazzaUserID,
		PiazzaID:       model.PiazzaID,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to reconstruct central user entity: %w", err)
	}
	return entity, nil
}

func (m *centralUserMapper) ToModel(entity *centraluser.CentralUser) *models.CentralUserModel {
	if entity == nil {
		return nil
	}

	return &models.CentralUserModel{
		ID:             entity.ID(),
		LocalUserID:    entity.LocalUserID(),
		DatasetID:      entity.DatasetID(),
		Name:           entity.Name(),
		FirstName:      entity.FirstName(),
		MiddleName:     entity.MiddleName(),
		LastName:       entity.LastName(),
		Email:          entity.Email(),
		PiazzaAltEmail: entity.PiazzaAltEmail(),
		PiazzaUserID:   entity.PiazzaUserID(),
		PiazzaID:       entity.PiazzaID(),
	}
}
