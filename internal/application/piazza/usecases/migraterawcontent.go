package usecases

import (
	"context"
	"fmt"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"modsoc/internal/domain/centraluser"
	"modsoc/internal/domain/piazza"
	"modsoc/internal/shared/logger"
)

// MigrateRawContentUseCase resolves every Piazza user record to a central identity
type MigrateRawContentUseCase struct {
	piazzaRepo piazza.Repository
	directory  centraluser.Directory
	splitter   piazza.NameSplitter
	txMgr      TxRunner
	logger     logger.Interface
}

// NewMigrateRawContentUseCase creates a new migrate raw content use case
func NewMigrateRawContentUseCase(
	piazzaRepo piazza.Repository,
	directory centraluser.Directory,
	splitter piazza.NameSplitter,
	txMgr TxRunner,
	logger logger.Interface,
) *MigrateRawContentUseCase {
	return &MigrateRawContentUseCase{
		piazzaRepo: piazzaRepo,
		directory:  directory,
		splitter:   splitter,
		txMgr:      txMgr,
		logger:     logger,
	}
}

// Execute tags every record with datasetID and links it to a central user, matching
// by email first and then by name. Each record commits on its own so later records
// see identities created for earlier ones. On error the records already committed
// stay migrated.
func (uc *MigrateRawContentUseCase) Execute(ctx context.Context, datasetID uint) ([]*centraluser.CentralUser, error) {
	uc.logger.Infow("executing migrate raw content use case", "dataset_id", datasetID)

	users, err := uc.piazzaRepo.List(ctx, nil)
	if err != nil {
		uc.logger.Errorw("failed to list piazza users", "error", err)
		return nil, fmt.Errorf("failed to list piazza users: %w", err)
	}

	resolved := make([]*centraluser.CentralUser, 0, len(users))
	created := 0
	for _, user := range users {
		var cu *centraluser.CentralUser
		var isNew bool
		err := uc.txMgr.RunInTransaction(ctx, func(txCtx context.Context) error {
			var err error
			cu, isNew, err = uc.migrateRecord(txCtx, user, datasetID)
			return err
		})
		if err != nil {
			uc.logger.Errorw("failed to migrate piazza user", "piazza_user_id", user.ID(), "error", err)
			return nil, fmt.Errorf("failed to migrate piazza user %d: %w", user.ID(), err)
		}
		if isNew {
			created++
		}
		resolved = append(resolved, cu)
	}

	uc.logger.Infow("raw content migrated",
		"dataset_id", datasetID,
		"records", len(resolved),
		"central_users_created", created)

	return resolved, nil
}

func (uc *MigrateRawContentUseCase) migrateRecord(ctx context.Context, user *piazza.User, datasetID uint) (*centraluser.CentralUser, bool, error) {
	user.AssignDataset(datasetID)
	user.NormalizeEmail()

	email := user.Email()

	var match *centraluser.CentralUser
	var err error
	if email != nil {
		match, err = uc.directory.FindByEmail(ctx, *email)
		if err != nil {
			return nil, false, fmt.Errorf("failed to find central user by email: %w", err)
		}
	}

	matchedByName := false
	title := cases.Title(language.Und)
	if match == nil {
		split := user.MakeSplitNameFields(uc.splitter)

		switch {
		case email != nil && (split.First != "" || split.Last != ""):
			match, err = uc.directory.FindByFirstLast(ctx, title.String(split.First), title.String(split.Last))
			if err != nil {
				return nil, false, fmt.Errorf("failed to find central user by name: %w", err)
			}
			if match != nil {
				claimed, err := uc.claimedInDataset(ctx, match, datasetID, user.ID())
				if err != nil {
					return nil, false, err
				}
				if claimed {
					match = nil
				}
			}
			matchedByName = match != nil
		case email == nil && user.CentralUserID() != nil:
			// anonymous records are never matched by name, but keep the identity
			// they were given on an earlier run
			match, err = uc.directory.GetByID(ctx, *user.CentralUserID())
			if err != nil {
				return nil, false, fmt.Errorf("failed to get linked central user: %w", err)
			}
		}
	}

	isNew := false
	if match == nil {
		split := user.SplitName()
		match = centraluser.NewCentralUser(centraluser.NewParams{
			DatasetID:    datasetID,
			Name:         title.String(user.Name()),
			Email:        email,
			FirstName:    title.String(split.First),
			MiddleName:   split.Middle,
			LastName:     title.String(split.Last),
			PiazzaUserID: user.ID(),
		})
		if err := uc.directory.Create(ctx, match); err != nil {
			return nil, false, fmt.Errorf("failed to create central user: %w", err)
		}
		isNew = true
	}

	if matchedByName {
		match.SetPiazzaAltEmail(email)
	}

	if err := user.LinkCentralUser(match.ID()); err != nil {
		return nil, false, err
	}
	match.LinkPiazzaUser(user.ID(), user.PiazzaID())

	if err := uc.directory.Update(ctx, match); err != nil {
		return nil, false, fmt.Errorf("failed to update central user: %w", err)
	}
	if err := uc.piazzaRepo.Update(ctx, user); err != nil {
		return nil, false, fmt.Errorf("failed to update piazza user: %w", err)
	}

	uc.logger.Debugw("piazza user linked",
		"piazza_user_id", user.ID(),
		"central_user_id", match.ID(),
		"created", isNew,
		"by_name", matchedByName)

	return match, isNew, nil
}

// claimedInDataset reports whether match is already linked to another record of
// datasetID. Two accounts of one export are two people, so such an identity is
// not a name match for recordID.
func (uc *MigrateRawContentUseCase) claimedInDataset(ctx context.Context, match *centraluser.CentralUser, datasetID, recordID uint) (bool, error) {
	if !match.LinkedToOtherRecord(recordID) {
		return false, nil
	}
	linked, err := uc.piazzaRepo.GetByID(ctx, *match.PiazzaUserID())
	if err != nil {
		return false, fmt.Errorf("failed to get linked piazza user: %w", err)
	}
	if linked == nil || linked.DatasetID() == nil {
		return false, nil
	}
	return *linked.DatasetID() == datasetID, nil
}
