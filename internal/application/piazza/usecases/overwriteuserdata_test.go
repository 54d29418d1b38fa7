package usecases

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"modsoc/internal/application/piazza/testutil"
	"modsoc/internal/domain/content"
	"modsoc/internal/domain/piazza"
	"modsoc/internal/shared/errors"
	"modsoc/internal/shared/logger"
)

func newOverwriteUseCase(f *resyncFixture) *OverwriteUserDataUseCase {
	return NewOverwriteUserDataUseCase(f.repo, f.uc, &testutil.MockTxRunner{}, logger.NewNop())
}

func TestOverwriteUserData_AnonymizesDataset(t *testing.T) {
	f := newResyncFixture()
	f.putCentral(t, 1, 501, "User 501")
	f.putCentral(t, 2, 502, "User 502")

	a := f.seedLinked(t, 1, piazza.UserParams{PiazzaID: strPtr("hxa"), Name: "Ada", Email: "ada@x.org"})
	a.AssignDataset(3)
	require.NoError(t, f.repo.Update(context.Background(), a))
	b := f.seedLinked(t, 2, piazza.UserParams{PiazzaID: strPtr("hxb"), Name: "Grace"})
	b.AssignDataset(4)
	require.NoError(t, f.repo.Update(context.Background(), b))

	f.content.Children[1] = &content.Child{ID: 1, PiazzaUserID: a.ID(), UID: "hxa"}
	f.overwriter.On("OverwriteUserData", mock.Anything, mock.Anything).Return(nil)

	ds := uint(3)
	n, err := newOverwriteUseCase(f).Execute(context.Background(), &ds)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	storedA := f.repo.Stored(a.ID())
	assert.Nil(t, storedA.PiazzaID())
	assert.Equal(t, "User 501", storedA.Name())
	assert.Equal(t, "501", f.content.Children[1].UID)

	storedB := f.repo.Stored(b.ID())
	assert.Equal(t, "hxb", *storedB.PiazzaID(), "other datasets are untouched")
	assert.Equal(t, "Grace", storedB.Name())

	found, err := f.repo.GetByPiazzaID(context.Background(), "hxa")
	require.NoError(t, err)
	assert.Nil(t, found)
}

func TestOverwriteUserData_StopsAtFirstFailure(t *testing.T) {
	f := newResyncFixture()
	f.putCentral(t, 1, 501, "User 501")

	ok := f.seedLinked(t, 1, piazza.UserParams{PiazzaID: strPtr("hx1"), Name: "Ada"})
	unlinked := f.repo.Seed(piazza.UserParams{PiazzaID: strPtr("hx2"), Name: "Grace"})
	later := f.seedLinked(t, 1, piazza.UserParams{PiazzaID: strPtr("hx3"), Name: "Alan"})

	n, err := newOverwriteUseCase(f).Execute(context.Background(), nil)
	assert.True(t, errors.IsNotFoundError(err))
	assert.Equal(t, 1, n)

	assert.Nil(t, f.repo.Stored(ok.ID()).PiazzaID())
	assert.Equal(t, "hx2", *f.repo.Stored(unlinked.ID()).PiazzaID())
	assert.Equal(t, "hx3", *f.repo.Stored(later.ID()).PiazzaID())
}

func TestOverwriteUserData_ListFailure(t *testing.T) {
	f := newResyncFixture()
	f.repo.ListError = assert.AnError

	n, err := newOverwriteUseCase(f).Execute(context.Background(), nil)
	assert.ErrorIs(t, err, assert.AnError)
	assert.Zero(t, n)
}
