package piazza

import (
	"context"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	piazzadomain "modsoc/internal/domain/piazza"
	"modsoc/internal/infrastructure/cache"
	"modsoc/internal/infrastructure/migration"
	"modsoc/internal/infrastructure/namesplit"
	"modsoc/internal/infrastructure/persistence/models"
	"modsoc/internal/infrastructure/repository"
	"modsoc/internal/shared/db"
	"modsoc/internal/shared/errors"
	"modsoc/internal/shared/logger"
)

func setupIntegrationDB(t *testing.T) *gorm.DB {
	gdb, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	sqlDB, err := gdb.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	require.NoError(t, gdb.AutoMigrate(migration.AutoMigrateModels()...))
	return gdb
}

func TestServiceDDD_Integration(t *testing.T) {
	gdb := setupIntegrationDB(t)
	log := logger.NewNop()
	ctx := context.Background()

	piazzaRepo := repository.NewPiazzaUserRepository(gdb, log)
	svc := NewServiceDDD(
		piazzaRepo,
		repository.NewCentralUserRepository(gdb, log),
		repository.NewContentRepository(gdb, log),
		namesplit.New(),
		db.NewTransactionManager(gdb),
		cache.NoopDatasetLock{},
		log,
	)

	seed := func(p piazzadomain.UserParams) *piazzadomain.User {
		u, err := piazzadomain.NewUser(p)
		require.NoError(t, err)
		require.NoError(t, piazzaRepo.Create(ctx, u))
		return u
	}
	ada := seed(piazzadomain.UserParams{PiazzaID: strPtr("hx1"), Name: "ada lovelace", Email: "ada@example.edu"})
	seed(piazzadomain.UserParams{PiazzaID: strPtr("hx1"), Name: "ada lovelace", Email: "ada@example.edu"})
	grace := seed(piazzadomain.UserParams{PiazzaID: strPtr("hx2"), Name: "Grace Hopper"})

	require.NoError(t, gdb.Create(&models.GoodTagModel{
		PiazzaUserID: ada.ID(),
		UserID:       "hx1",
		Name:         "ada lovelace",
		Email:        strPtr("ada@example.edu"),
		Photo:        strPtr("ada.png"),
	}).Error)
	require.NoError(t, gdb.Create(&models.ChildModel{PiazzaUserID: ada.ID(), UID: "hx1", DisplayID: strPtr("Ada")}).Error)

	migrated, err := svc.MigrateRawContent(ctx, 5)
	require.NoError(t, err)
	require.Equal(t, 3, migrated.Records)
	assert.Equal(t, migrated.CentralUserIDs[0], migrated.CentralUserIDs[1])
	assert.NotEqual(t, migrated.CentralUserIDs[0], migrated.CentralUserIDs[2])

	var central models.CentralUserModel
	require.NoError(t, gdb.First(&central, migrated.CentralUserIDs[0]).Error)
	assert.Equal(t, "Ada Lovelace", central.Name)
	assert.Equal(t, int64(central.ID), central.LocalUserID)

	ds := uint(5)
	deduped, err := svc.RemoveDuplicateUsers(ctx, &ds)
	require.NoError(t, err)
	assert.Equal(t, 1, deduped.Affected)

	count, err := svc.CountAllUsers(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)

	overwritten, err := svc.OverwriteUserData(ctx, &ds)
	require.NoError(t, err)
	assert.Equal(t, 2, overwritten.Affected)

	surrogate := strconv.FormatInt(central.LocalUserID, 10)

	var tag models.GoodTagModel
	require.NoError(t, gdb.First(&tag).Error)
	assert.Equal(t, surrogate, tag.UserID)
	assert.Equal(t, "Ada Lovelace", tag.Name)
	assert.Nil(t, tag.Email)
	assert.Nil(t, tag.Photo)

	var child models.ChildModel
	require.NoError(t, gdb.First(&child).Error)
	assert.Equal(t, surrogate, child.UID)
	assert.Nil(t, child.DisplayID)

	_, err = svc.GetCentralUserIDByPiazzaID(ctx, "hx2")
	assert.True(t, errors.IsNotFoundError(err))

	id, err := svc.GetCentralUserIDByRecordID(ctx, grace.ID())
	require.NoError(t, err)
	assert.Equal(t, migrated.CentralUserIDs[2], id.CentralUserID)

	resp, err := svc.GetByName(ctx, "Grace Hopper")
	require.NoError(t, err)
	assert.Nil(t, resp.PiazzaID)
	assert.Nil(t, resp.Email)
}
