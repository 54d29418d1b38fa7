package usecases

import (
	"context"
	"fmt"

	"modsoc/internal/domain/piazza"
	"modsoc/internal/shared/logger"
)

// RemoveDuplicateUsersUseCase keeps one record per (dataset, Piazza ID)
type RemoveDuplicateUsersUseCase struct {
	piazzaRepo piazza.Repository
	txMgr      TxRunner
	logger     logger.Interface
}

// NewRemoveDuplicateUsersUseCase creates a new remove duplicate users use case
func NewRemoveDuplicateUsersUseCase(
	piazzaRepo piazza.Repository,
	txMgr TxRunner,
	logger logger.Interface,
) *RemoveDuplicateUsersUseCase {
	return &RemoveDuplicateUsersUseCase{
		piazzaRepo: piazzaRepo,
		txMgr:      txMgr,
		logger:     logger,
	}
}

// Execute deletes every record but the lowest-ID one among those sharing a Piazza ID
// within a dataset and returns how many were deleted. A nil datasetID covers all
// datasets, each deduplicated separately. A scoped pass also covers records not yet
// tagged with a dataset. Records without a Piazza ID are left alone.
func (uc *RemoveDuplicateUsersUseCase) Execute(ctx context.Context, datasetID *uint) (int, error) {
	uc.logger.Infow("executing remove duplicate users use case", "dataset_id", datasetID)

	piazzaIDs, err := uc.piazzaRepo.ListPiazzaIDs(ctx, datasetID)
	if err != nil {
		uc.logger.Errorw("failed to list piazza ids", "error", err)
		return 0, fmt.Errorf("failed to list piazza ids: %w", err)
	}

	deleted := 0
	for _, piazzaID := range piazzaIDs {
		var n int
		err := uc.txMgr.RunInTransaction(ctx, func(txCtx context.Context) error {
			var err error
			n, err = uc.dedupe(txCtx, piazzaID, datasetID)
			return err
		})
		if err != nil {
			uc.logger.Errorw("failed to remove duplicates", "piazza_id", piazzaID, "error", err)
			return deleted, fmt.Errorf("failed to remove duplicates of %s: %w", piazzaID, err)
		}
		deleted += n
	}

	uc.logger.Infow("duplicate users removed", "dataset_id", datasetID, "deleted", deleted)
	return deleted, nil
}

func (uc *RemoveDuplicateUsersUseCase) dedupe(ctx context.Context, piazzaID string, datasetID *uint) (int, error) {
	users, err := uc.piazzaRepo.ListByPiazzaID(ctx, piazzaID, datasetID)
	if err != nil {
		return 0, fmt.Errorf("failed to list records: %w", err)
	}

	// users arrive ordered by ID, so the first one seen per dataset is kept
	kept := make(map[uint]bool)
	keptUntagged := false
	deleted := 0
	for _, user := range users {
		ds := user.DatasetID()
		if datasetID != nil {
			ds = datasetID
		}

		if ds != nil {
			if !kept[*ds] {
				kept[*ds] = true
				continue
			}
		} else if !keptUntagged {
			keptUntagged = true
			continue
		}

		if err := uc.piazzaRepo.Delete(ctx, user.ID()); err != nil {
			return deleted, fmt.Errorf("failed to delete record %d: %w", user.ID(), err)
		}
		deleted++
		uc.logger.Debugw("duplicate piazza user deleted", "piazza_user_id", user.ID(), "piazza_id", piazzaID)
	}
	return deleted, nil
}
