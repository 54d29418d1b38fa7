package usecases

import (
	"context"
	"fmt"

	"modsoc/internal/domain/piazza"
	"modsoc/internal/shared/logger"
)

// OverwriteUserDataUseCase anonymizes Piazza records by discarding their Piazza ID
// and resyncing them from their central users
type OverwriteUserDataUseCase struct {
	piazzaRepo piazza.Repository
	resync     *ResyncUseCase
	txMgr      TxRunner
	logger     logger.Interface
}

// NewOverwriteUserDataUseCase creates a new overwrite user data use case
func NewOverwriteUserDataUseCase(
	piazzaRepo piazza.Repository,
	resync *ResyncUseCase,
	txMgr TxRunner,
	logger logger.Interface,
) *OverwriteUserDataUseCase {
	return &OverwriteUserDataUseCase{
		piazzaRepo: piazzaRepo,
		resync:     resync,
		txMgr:      txMgr,
		logger:     logger,
	}
}

// Execute anonymizes the records of datasetID, or every record when nil, and returns
// how many were processed. The ID reset and the resync of a record commit together;
// a failing record is rolled back with its Piazza ID intact and stops the pass.
func (uc *OverwriteUserDataUseCase) Execute(ctx context.Context, datasetID *uint) (int, error) {
	uc.logger.Infow("executing overwrite user data use case", "dataset_id", datasetID)

	users, err := uc.piazzaRepo.List(ctx, datasetID)
	if err != nil {
		uc.logger.Errorw("failed to list piazza users", "error", err)
		return 0, fmt.Errorf("failed to list piazza users: %w", err)
	}

	processed := 0
	for _, user := range users {
		err := uc.txMgr.RunInTransaction(ctx, func(txCtx context.Context) error {
			user.ResetPiazzaID()
			return uc.resync.Execute(txCtx, user)
		})
		if err != nil {
			uc.logger.Errorw("failed to overwrite piazza user", "piazza_user_id", user.ID(), "error", err)
			return processed, fmt.Errorf("failed to overwrite piazza user %d: %w", user.ID(), err)
		}
		processed++
	}

	uc.logger.Infow("user data overwritten", "dataset_id", datasetID, "records", processed)
	return processed, nil
}
