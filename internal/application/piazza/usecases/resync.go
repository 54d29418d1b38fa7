package usecases

import (
	"context"
	"fmt"
	"strconv"

	"modsoc/internal/domain/centraluser"
	"modsoc/internal/domain/content"
	"modsoc/internal/domain/piazza"
	"modsoc/internal/shared/errors"
	"modsoc/internal/shared/logger"
)

// ResyncUseCase copies a central user's scrubbed profile onto its Piazza record and
// rewrites the record's content to the surrogate ID
type ResyncUseCase struct {
	piazzaRepo      piazza.Repository
	directory       centraluser.Directory
	contentRepo     content.Repository
	childOverwriter content.ChildOverwriter
	txMgr           TxRunner
	logger          logger.Interface
}

// NewResyncUseCase creates a new resync use case
func NewResyncUseCase(
	piazzaRepo piazza.Repository,
	directory centraluser.Directory,
	contentRepo content.Repository,
	childOverwriter content.ChildOverwriter,
	txMgr TxRunner,
	logger logger.Interface,
) *ResyncUseCase {
	return &ResyncUseCase{
		piazzaRepo:      piazzaRepo,
		directory:       directory,
		contentRepo:     contentRepo,
		childOverwriter: childOverwriter,
		txMgr:           txMgr,
		logger:          logger,
	}
}

// Execute resyncs one record in a single transaction. The record must be linked.
func (uc *ResyncUseCase) Execute(ctx context.Context, user *piazza.User) error {
	if user.CentralUserID() == nil {
		return errors.NewNotFoundError("piazza user is not linked to a central user", strconv.FormatUint(uint64(user.ID()), 10))
	}

	return uc.txMgr.RunInTransaction(ctx, func(txCtx context.Context) error {
		cu, err := uc.directory.GetByID(txCtx, *user.CentralUserID())
		if err != nil {
			return fmt.Errorf("failed to get central user: %w", err)
		}
		if cu == nil {
			return errors.NewNotFoundError("central user not found", strconv.FormatUint(uint64(*user.CentralUserID()), 10))
		}

		user.SyncProfile(piazza.Profile{
			Name:       cu.Name(),
			FirstName:  cu.FirstName(),
			MiddleName: cu.MiddleName(),
			LastName:   cu.LastName(),
			Email:      cu.Email(),
		})
		if err := uc.piazzaRepo.Update(txCtx, user); err != nil {
			return fmt.Errorf("failed to update piazza user: %w", err)
		}

		surrogateID := strconv.FormatInt(cu.LocalUserID(), 10)
		if err := uc.rewriteContent(txCtx, user.ID(), surrogateID, cu.Name()); err != nil {
			return err
		}

		uc.logger.Debugw("piazza user resynced",
			"piazza_user_id", user.ID(),
			"central_user_id", cu.ID(),
			"local_user_id", surrogateID)
		return nil
	})
}

func (uc *ResyncUseCase) rewriteContent(ctx context.Context, piazzaUserID uint, uid, name string) error {
	tags, err := uc.contentRepo.ListGoodTagsByUser(ctx, piazzaUserID)
	if err != nil {
		return fmt.Errorf("failed to list good tags: %w", err)
	}
	for _, tag := range tags {
		tag.Scrub(uid, name)
		if err := uc.contentRepo.UpdateGoodTag(ctx, tag); err != nil {
			return fmt.Errorf("failed to update good tag %d: %w", tag.ID, err)
		}
	}

	history, err := uc.contentRepo.ListHistoryByUser(ctx, piazzaUserID)
	if err != nil {
		return fmt.Errorf("failed to list history: %w", err)
	}
	for _, entry := range history {
		entry.UID = uid
		if err := uc.contentRepo.UpdateHistory(ctx, entry); err != nil {
			return fmt.Errorf("failed to update history %d: %w", entry.ID, err)
		}
	}

	changes, err := uc.contentRepo.ListChangeLogsByUser(ctx, piazzaUserID)
	if err != nil {
		return fmt.Errorf("failed to list change log: %w", err)
	}
	for _, change := range changes {
		change.UID = uid
		if err := uc.contentRepo.UpdateChangeLog(ctx, change); err != nil {
			return fmt.Errorf("failed to update change log %d: %w", change.ID, err)
		}
	}

	children, err := uc.contentRepo.ListChildrenByUser(ctx, piazzaUserID)
	if err != nil {
		return fmt.Errorf("failed to list children: %w", err)
	}
	for _, child := range children {
		child.UID = uid
		child.DisplayID = nil
		if err := uc.contentRepo.UpdateChild(ctx, child); err != nil {
			return fmt.Errorf("failed to update child %d: %w", child.ID, err)
		}
		if err := uc.childOverwriter.OverwriteUserData(ctx, child); err != nil {
			return fmt.Errorf("failed to overwrite child %d: %w", child.ID, err)
		}
	}

	endorsements, err := uc.contentRepo.ListChildEndorsementsByUser(ctx, piazzaUserID)
	if err != nil {
		return fmt.Errorf("failed to list child endorsements: %w", err)
	}
	for _, endorsement := range endorsements {
		endorsement.Scrub(uid, name)
		if err := uc.contentRepo.UpdateChildEndorsement(ctx, endorsement); err != nil {
			return fmt.Errorf("failed to update child endorsement %d: %w", endorsement.ID, err)
		}
	}

	childHistory, err := uc.contentRepo.ListChildHistoryByUser(ctx, piazzaUserID)
	if err != nil {
		return fmt.Errorf("failed to list child history: %w", err)
	}
	for _, entry := range childHistory {
		entry.UserID = uid
		if err := uc.contentRepo.UpdateChildHistory(ctx, entry); err != nil {
			return fmt.Errorf("failed to update child history %d: %w", entry.ID, err)
		}
	}

	subchildren, err := uc.contentRepo.ListSubchildrenByUser(ctx, piazzaUserID)
	if err != nil {
		return fmt.Errorf("failed to list subchildren: %w", err)
	}
	for _, subchild := range subchildren {
		subchild.UID = uid
		if err := uc.contentRepo.UpdateSubchild(ctx, subchild); err != nil {
			return fmt.Errorf("failed to update subchild %d: %w", subchild.ID, err)
		}
	}

	return nil
}
