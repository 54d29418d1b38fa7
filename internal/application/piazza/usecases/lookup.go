package usecases

import (
	"context"
	"fmt"
	"strconv"

	"modsoc/internal/domain/piazza"
	"modsoc/internal/shared/errors"
	"modsoc/internal/shared/logger"
)

// LookupUseCase answers point queries over Piazza user records
type LookupUseCase struct {
	piazzaRepo piazza.Repository
	logger     logger.Interface
}

// NewLookupUseCase creates a new lookup use case
func NewLookupUseCase(piazzaRepo piazza.Repository, logger logger.Interface) *LookupUseCase {
	return &LookupUseCase{
		piazzaRepo: piazzaRepo,
		logger:     logger,
	}
}

func (uc *LookupUseCase) GetByID(ctx context.Context, id uint) (*piazza.User, error) {
	user, err := uc.piazzaRepo.GetByID(ctx, id)
	return uc.found(user, err, "id", strconv.FormatUint(uint64(id), 10))
}

func (uc *LookupUseCase) GetByPiazzaID(ctx context.Context, piazzaID string) (*piazza.User, error) {
	user, err := uc.piazzaRepo.GetByPiazzaID(ctx, piazzaID)
	return uc.found(user, err, "piazza id", piazzaID)
}

func (uc *LookupUseCase) GetByName(ctx context.Context, name string) (*piazza.User, error) {
	user, err := uc.piazzaRepo.GetByName(ctx, name)
	return uc.found(user, err, "name", name)
}

func (uc *LookupUseCase) found(user *piazza.User, err error, by, value string) (*piazza.User, error) {
	if err != nil {
		uc.logger.Errorw("failed to look up piazza user", "by", by, "value", value, "error", err)
		return nil, fmt.Errorf("failed to get piazza user by %s: %w", by, err)
	}
	if user == nil {
		return nil, errors.NewNotFoundError("piazza user not found", by+"="+value)
	}
	return user, nil
}

// CountAll returns the number of stored Piazza user records
func (uc *LookupUseCase) CountAll(ctx context.Context) (int64, error) {
	count, err := uc.piazzaRepo.Count(ctx)
	if err != nil {
		uc.logger.Errorw("failed to count piazza users", "error", err)
		return 0, fmt.Errorf("failed to count piazza users: %w", err)
	}
	return count, nil
}

// GetCentralUserIDByPiazzaID returns the central user linked to the record with the
// Piazza ID. A missing or unlinked record is a NotFound error.
func (uc *LookupUseCase) GetCentralUserIDByPiazzaID(ctx context.Context, piazzaID string) (uint, error) {
	user, err := uc.GetByPiazzaID(ctx, piazzaID)
	if err != nil {
		return 0, err
	}
	return centralUserID(user)
}

// GetCentralUserIDByRecordID is GetCentralUserIDByPiazzaID keyed by store ID.
func (uc *LookupUseCase) GetCentralUserIDByRecordID(ctx context.Context, id uint) (uint, error) {
	user, err := uc.GetByID(ctx, id)
	if err != nil {
		return 0, err
	}
	return centralUserID(user)
}

func centralUserID(user *piazza.User) (uint, error) {
	if user.CentralUserID() == nil {
		return 0, errors.NewNotFoundError("piazza user is not linked to a central user",
			strconv.FormatUint(uint64(user.ID()), 10))
	}
	return *user.CentralUserID(), nil
}
