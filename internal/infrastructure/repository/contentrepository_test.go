package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"modsoc/internal/domain/content"
	"modsoc/internal/infrastructure/persistence/models"
	"modsoc/internal/shared/logger"
)

func TestContentRepository_ListByUser(t *testing.T) {
	gdb := setupTestDB(t)
	repo := NewContentRepository(gdb, logger.NewNop())
	ctx := context.Background()

	require.NoError(t, gdb.Create([]*models.GoodTagModel{
		{PiazzaUserID: 1, UserID: "hx1", Name: "Ada", Email: strPtr("ada@x.org")},
		{PiazzaUserID: 1, UserID: "hx1", Name: "Ada"},
		{PiazzaUserID: 2, UserID: "hx2", Name: "Bob"},
	}).Error)
	require.NoError(t, gdb.Create(&models.HistoryModel{PiazzaUserID: 1, UID: "hx1"}).Error)
	require.NoError(t, gdb.Create(&models.ChangeLogModel{PiazzaUserID: 1, UID: "hx1"}).Error)
	require.NoError(t, gdb.Create(&models.ChildModel{PiazzaUserID: 1, UID: "hx1", DisplayID: strPtr("@12")}).Error)
	require.NoError(t, gdb.Create(&models.ChildEndorsementModel{PiazzaUserID: 1, ChildID: 1, UserID: "hx1", Name: "Ada"}).Error)
	require.NoError(t, gdb.Create(&models.ChildHistoryModel{PiazzaUserID: 1, ChildID: 1, UserID: "hx1"}).Error)
	require.NoError(t, gdb.Create(&models.SubchildModel{PiazzaUserID: 2, ChildID: 1, UID: "hx2"}).Error)

	tags, err := repo.ListGoodTagsByUser(ctx, 1)
	require.NoError(t, err)
	require.Len(t, tags, 2)
	assert.Equal(t, "ada@x.org", *tags[0].Email)

	history, err := repo.ListHistoryByUser(ctx, 1)
	require.NoError(t, err)
	assert.Len(t, history, 1)

	changes, err := repo.ListChangeLogsByUser(ctx, 1)
	require.NoError(t, err)
	assert.Len(t, changes, 1)

	children, err := repo.ListChildrenByUser(ctx, 1)
	require.NoError(t, err)
	require.Len(t, children, 1)
	assert.Equal(t, "@12", *children[0].DisplayID)

	endorsements, err := repo.ListChildEndorsementsByUser(ctx, 1)
	require.NoError(t, err)
	assert.Len(t, endorsements, 1)

	childHistory, err := repo.ListChildHistoryByUser(ctx, 1)
	require.NoError(t, err)
	assert.Len(t, childHistory, 1)

	subchildren, err := repo.ListSubchildrenByUser(ctx, 1)
	require.NoError(t, err)
	assert.Empty(t, subchildren)

	subchildren, err = repo.ListSubchildrenByChild(ctx, 1)
	require.NoError(t, err)
	assert.Len(t, subchildren, 1)

	childHistory, err = repo.ListChildHistoryByChild(ctx, 1)
	require.NoError(t, err)
	assert.Len(t, childHistory, 1)
}

func TestContentRepository_Updates(t *testing.T) {
	gdb := setupTestDB(t)
	repo := NewContentRepository(gdb, logger.NewNop())
	ctx := context.Background()

	tag := &models.GoodTagModel{PiazzaUserID: 1, UserID: "hx1", Name: "Ada", Email: strPtr("ada@x.org"), Photo: strPtr("p.png"), FacebookID: strPtr("fb")}
	require.NoError(t, gdb.Create(tag).Error)
	child := &models.ChildModel{PiazzaUserID: 1, UID: "hx1"}
	require.NoError(t, gdb.Create(child).Error)
	endorse := &models.ChildEndorsementModel{PiazzaUserID: 1, ChildID: child.ID, UserID: "hx1", Name: "Ada"}
	require.NoError(t, gdb.Create(endorse).Error)

	tags, err := repo.ListGoodTagsByUser(ctx, 1)
	require.NoError(t, err)
	tags[0].Scrub("42", "User 42")
	require.NoError(t, repo.UpdateGoodTag(ctx, tags[0]))

	var storedTag models.GoodTagModel
	require.NoError(t, gdb.First(&storedTag, tag.ID).Error)
	assert.Equal(t, "42", storedTag.UserID)
	assert.Equal(t, "User 42", storedTag.Name)
	assert.Nil(t, storedTag.Email)
	assert.Nil(t, storedTag.Photo)
	assert.Nil(t, storedTag.FacebookID)

	require.NoError(t, repo.UpdateChild(ctx, &content.Child{ID: child.ID, PiazzaUserID: 1, UID: "42"}))
	var storedChild models.ChildModel
	require.NoError(t, gdb.First(&storedChild, child.ID).Error)
	assert.Equal(t, "42", storedChild.UID)

	e := &content.ChildEndorsement{ID: endorse.ID, PiazzaUserID: 1, ChildID: child.ID}
	e.Scrub("42", "User 42")
	require.NoError(t, repo.UpdateChildEndorsement(ctx, e))
	var storedEndorse models.ChildEndorsementModel
	require.NoError(t, gdb.First(&storedEndorse, endorse.ID).Error)
	assert.Equal(t, "42", storedEndorse.UserID)
}

func TestContentRepository_ChildOverwriter(t *testing.T) {
	gdb := setupTestDB(t)
	repo := NewContentRepository(gdb, logger.NewNop())
	ctx := context.Background()

	child := &models.ChildModel{PiazzaUserID: 1, UID: "hx1"}
	require.NoError(t, gdb.Create(child).Error)
	own := &models.ChildHistoryModel{PiazzaUserID: 1, ChildID: child.ID, UserID: "hx1"}
	other := &models.ChildHistoryModel{PiazzaUserID: 2, ChildID: child.ID, UserID: "hx2"}
	require.NoError(t, gdb.Create(own).Error)
	require.NoError(t, gdb.Create(other).Error)
	reply := &models.SubchildModel{PiazzaUserID: 1, ChildID: child.ID, UID: "hx1"}
	require.NoError(t, gdb.Create(reply).Error)

	require.NoError(t, content.NewChildOverwriter(repo).OverwriteUserData(ctx, &content.Child{ID: child.ID, PiazzaUserID: 1, UID: "42"}))

	var ownRow, otherRow models.ChildHistoryModel
	require.NoError(t, gdb.First(&ownRow, own.ID).Error)
	require.NoError(t, gdb.First(&otherRow, other.ID).Error)
	assert.Equal(t, "42", ownRow.UserID)
	assert.Equal(t, "hx2", otherRow.UserID)

	var replyRow models.SubchildModel
	require.NoError(t, gdb.First(&replyRow, reply.ID).Error)
	assert.Equal(t, "42", replyRow.UID)
}
