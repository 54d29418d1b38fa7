package piazza

import (
	"context"

	"modsoc/internal/application/piazza/dto"
	"modsoc/internal/application/piazza/usecases"
	"modsoc/internal/domain/centraluser"
	"modsoc/internal/domain/content"
	piazzadomain "modsoc/internal/domain/piazza"
	"modsoc/internal/shared/logger"
)

// ServiceDDD groups the Piazza identity passes and lookups. Passes that write run
// under the dataset lock for their scope.
type ServiceDDD struct {
	logger logger.Interface
	lock   usecases.DatasetLock

	migrateRawContent    *usecases.MigrateRawContentUseCase
	removeDuplicateUsers *usecases.RemoveDuplicateUsersUseCase
	resync               *usecases.ResyncUseCase
	overwriteUserData    *usecases.OverwriteUserDataUseCase
	lookup               *usecases.LookupUseCase
}

func NewServiceDDD(
	piazzaRepo piazzadomain.Repository,
	directory centraluser.Directory,
	contentRepo content.Repository,
	splitter piazzadomain.NameSplitter,
	txMgr usecases.TxRunner,
	lock usecases.DatasetLock,
	logger logger.Interface,
) *ServiceDDD {
	resync := usecases.NewResyncUseCase(piazzaRepo, directory, contentRepo,
		content.NewChildOverwriter(contentRepo), txMgr, logger)

	return &ServiceDDD{
		logger: logger,
		lock:   lock,

		migrateRawContent:    usecases.NewMigrateRawContentUseCase(piazzaRepo, directory, splitter, txMgr, logger),
		removeDuplicateUsers: usecases.NewRemoveDuplicateUsersUseCase(piazzaRepo, txMgr, logger),
		resync:               resync,
		overwriteUserData:    usecases.NewOverwriteUserDataUseCase(piazzaRepo, resync, txMgr, logger),
		lookup:               usecases.NewLookupUseCase(piazzaRepo, logger),
	}
}

// MigrateRawContent reads every record, so it locks the whole store.
func (s *ServiceDDD) MigrateRawContent(ctx context.Context, datasetID uint) (*dto.MigrationResponse, error) {
	var resp *dto.MigrationResponse
	err := usecases.RunExclusive(ctx, s.lock, usecases.LockScope(nil), func(ctx context.Context) error {
		resolved, err := s.migrateRawContent.Execute(ctx, datasetID)
		if err != nil {
			return err
		}
		resp = dto.ToMigrationResponse(datasetID, resolved)
		return nil
	})
	return resp, err
}

func (s *ServiceDDD) RemoveDuplicateUsers(ctx context.Context, datasetID *uint) (*dto.PassResponse, error) {
	var resp *dto.PassResponse
	err := usecases.RunExclusive(ctx, s.lock, usecases.LockScope(datasetID), func(ctx context.Context) error {
		n, err := s.removeDuplicateUsers.Execute(ctx, datasetID)
		resp = &dto.PassResponse{DatasetID: datasetID, Affected: n}
		return err
	})
	return resp, err
}

func (s *ServiceDDD) OverwriteUserData(ctx context.Context, datasetID *uint) (*dto.PassResponse, error) {
	var resp *dto.PassResponse
	err := usecases.RunExclusive(ctx, s.lock, usecases.LockScope(datasetID), func(ctx context.Context) error {
		n, err := s.overwriteUserData.Execute(ctx, datasetID)
		resp = &dto.PassResponse{DatasetID: datasetID, Affected: n}
		return err
	})
	return resp, err
}

// Resync refreshes a single record by store ID under its dataset's lock.
func (s *ServiceDDD) Resync(ctx context.Context, id uint) error {
	user, err := s.lookup.GetByID(ctx, id)
	if err != nil {
		return err
	}
	return usecases.RunExclusive(ctx, s.lock, usecases.LockScope(user.DatasetID()), func(ctx context.Context) error {
		return s.resync.Execute(ctx, user)
	})
}

func (s *ServiceDDD) GetByID(ctx context.Context, id uint) (*dto.PiazzaUserResponse, error) {
	user, err := s.lookup.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return dto.ToPiazzaUserResponse(user), nil
}

func (s *ServiceDDD) GetByPiazzaID(ctx context.Context, piazzaID string) (*dto.PiazzaUserResponse, error) {
	user, err := s.lookup.GetByPiazzaID(ctx, piazzaID)
	if err != nil {
		return nil, err
	}
	return dto.ToPiazzaUserResponse(user), nil
}

func (s *ServiceDDD) GetByName(ctx context.Context, name string) (*dto.PiazzaUserResponse, error) {
	user, err := s.lookup.GetByName(ctx, name)
	if err != nil {
		return nil, err
	}
	return dto.ToPiazzaUserResponse(user), nil
}

func (s *ServiceDDD) CountAllUsers(ctx context.Context) (int64, error) {
	return s.lookup.CountAll(ctx)
}

func (s *ServiceDDD) GetCentralUserIDByPiazzaID(ctx context.Context, piazzaID string) (*dto.CentralUserIDResponse, error) {
	id, err := s.lookup.GetCentralUserIDByPiazzaID(ctx, piazzaID)
	if err != nil {
		return nil, err
	}
	return &dto.CentralUserIDResponse{CentralUserID: id}, nil
}

func (s *ServiceDDD) GetCentralUserIDByRecordID(ctx context.Context, id uint) (*dto.CentralUserIDResponse, error) {
	cid, err := s.lookup.GetCentralUserIDByRecordID(ctx, id)
	if err != nil {
		return nil, err
	}
	return &dto.CentralUserIDResponse{CentralUserID: cid}, nil
}
