package usecases

import (
	"context"
	"fmt"

	"modsoc/internal/shared/constants"
)

// TxRunner runs fn inside one unit of work. Repositories called with the context
// handed to fn join that unit.
type TxRunner interface {
	RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// DatasetLock grants one pass exclusive use of a dataset. The global scope and any
// dataset scope exclude each other.
type DatasetLock interface {
	Acquire(ctx context.Context, scope string) (release func(context.Context) error, err error)
}

// LockScope names the lock guarding a pass; passes without a dataset lock everything.
func LockScope(datasetID *uint) string {
	if datasetID == nil {
		return constants.LockScopeAll
	}
	return fmt.Sprintf("%s%d", constants.LockScopeDatasetPrefix, *datasetID)
}

// RunExclusive holds the lock for scope while fn runs.
func RunExclusive(ctx context.Context, lock DatasetLock, scope string, fn func(ctx context.Context) error) (err error) {
	release, err := lock.Acquire(ctx, scope)
	if err != nil {
		return err
	}
	defer func() {
		if releaseErr := release(context.WithoutCancel(ctx)); releaseErr != nil && err == nil {
			err = releaseErr
		}
	}()

	return fn(ctx)
}
