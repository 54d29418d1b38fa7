package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"modsoc/internal/domain/centraluser"
	"modsoc/internal/infrastructure/persistence/models"
	"modsoc/internal/shared/logger"
)

func TestCentralUserRepository_CreateAssignsSurrogateID(t *testing.T) {
	gdb := setupTestDB(t)
	repo := NewCentralUserRepository(gdb, logger.NewNop())
	ctx := context.Background()

	u := centraluser.NewCentralUser(centraluser.NewParams{
		DatasetID:    3,
		Name:         "Ada Lovelace",
		Email:        strPtr("ada@example.edu"),
		FirstName:    "Ada",
		LastName:     "Lovelace",
		PiazzaUserID: 9,
	})
	require.NoError(t, repo.Create(ctx, u))
	require.NotZero(t, u.ID())
	assert.Equal(t, int64(u.ID()), u.LocalUserID())

	var row models.CentralUserModel
	require.NoError(t, gdb.First(&row, u.ID()).Error)
	assert.Equal(t, int64(u.ID()), row.LocalUserID)

	got, err := repo.GetByID(ctx, u.ID())
	require.NoError(t, err)
	assert.Equal(t, int64(u.ID()), got.LocalUserID())
	assert.Equal(t, uint(9), *got.PiazzaUserID())
	assert.Equal(t, uint(3), *got.DatasetID())
}

func TestCentralUserRepository_PreassignedSurrogateIDKept(t *testing.T) {
	gdb := setupTestDB(t)
	repo := NewCentralUserRepository(gdb, logger.NewNop())

	require.NoError(t, gdb.Create(&models.CentralUserModel{LocalUserID: 5000, FirstName: "Alan", LastName: "Turing"}).Error)

	got, err := repo.FindByFirstLast(context.Background(), "alan", "TURING")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, int64(5000), got.LocalUserID())
}

func TestCentralUserRepository_Finders(t *testing.T) {
	gdb := setupTestDB(t)
	repo := NewCentralUserRepository(gdb, logger.NewNop())
	ctx := context.Background()

	require.NoError(t, gdb.Create([]*models.CentralUserModel{
		{FirstName: "Grace", LastName: "Hopper", Email: strPtr("grace@navy.mil")},
		{FirstName: "Grace", LastName: "Hopper", Email: strPtr("other@navy.mil")},
	}).Error)

	byEmail, err := repo.FindByEmail(ctx, "other@navy.mil")
	require.NoError(t, err)
	require.NotNil(t, byEmail)
	assert.Equal(t, "other@navy.mil", *byEmail.Email())

	// email match is exact
	none, err := repo.FindByEmail(ctx, "OTHER@navy.mil")
	require.NoError(t, err)
	assert.Nil(t, none)

	byName, err := repo.FindByFirstLast(ctx, "GRACE", "hopper")
	require.NoError(t, err)
	require.NotNil(t, byName)
	assert.Equal(t, "grace@navy.mil", *byName.Email())

	none, err = repo.FindByFirstLast(ctx, "Grace", "Kelly")
	require.NoError(t, err)
	assert.Nil(t, none)

	none, err = repo.GetByID(ctx, 404)
	require.NoError(t, err)
	assert.Nil(t, none)
}

func TestCentralUserRepository_Update(t *testing.T) {
	repo := NewCentralUserRepository(setupTestDB(t), logger.NewNop())
	ctx := context.Background()

	u := centraluser.NewCentralUser(centraluser.NewParams{DatasetID: 1, Name: "Linus", FirstName: "Linus"})
	require.NoError(t, repo.Create(ctx, u))

	u.SetPiazzaAltEmail(strPtr("linus@alt.org"))
	u.LinkPiazzaUser(77, strPtr("hx77"))
	require.NoError(t, repo.Update(ctx, u))

	got, err := repo.GetByID(ctx, u.ID())
	require.NoError(t, err)
	assert.Equal(t, "linus@alt.org", *got.PiazzaAltEmail())
	assert.Equal(t, uint(77), *got.PiazzaUserID())
	assert.Equal(t, "hx77", *got.PiazzaID())
	assert.Nil(t, got.Email())
}
