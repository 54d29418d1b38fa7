package mappers

import (
	"modsoc/internal/domain/content"
	"modsoc/internal/infrastructure/persistence/models"
)

// Content conversions are plain field copies.

func GoodTagToEntity(m *models.GoodTagModel) *content.GoodTag {
	return &content.GoodTag{
		ID:           m.ID,
		PiazzaUserID: m.PiazzaUserID,
		AuthorSnapshot: content.AuthorSnapshot{
			UserID:     m.UserID,
			Name:       m.Name,
			Email:      m.Email,
			Photo:      m.Photo,
			FacebookID: m.FacebookID,
		},
	}
}

func GoodTagToModel(e *content.GoodTag) *models.GoodTagModel {
	return &models.GoodTagModel{
		ID:           e.ID,
		PiazzaUserID: e.PiazzaUserID,
		UserID:       e.UserID,
		Name:         e.Name,
		Email:        e.Email,
		Photo:        e.Photo,
		FacebookID:   e.FacebookID,
	}
}

func HistoryToEntity(m *models.HistoryModel) *content.HistoryEntry {
	return &content.HistoryEntry{ID: m.ID, PiazzaUserID: m.PiazzaUserID, UID: m.UID}
}

func ChangeLogToEntity(m *models.ChangeLogModel) *content.ChangeLog {
	return &content.ChangeLog{ID: m.ID, PiazzaUserID: m.PiazzaUserID, UID: m.UID}
}

func ChildToEntity(m *models.ChildModel) *content.Child {
	return &content.Child{
		ID:           m.ID,
		PiazzaUserID: m.PiazzaUserID,
		UID:          m.UID,
		DisplayID:    m.DisplayID,
	}
}

func ChildEndorsementToEntity(m *models.ChildEndorsementModel) *content.ChildEndorsement {
	return &content.ChildEndorsement{
		ID:           m.ID,
		PiazzaUserID: m.PiazzaUserID,
		ChildID:      m.ChildID,
		AuthorSnapshot: content.AuthorSnapshot{
			UserID:     m.UserID,
			Name:       m.Name,
			Email:      m.Email,
			Photo:      m.Photo,
			FacebookID: m.FacebookID,
		},
	}
}

func ChildEndorsementToModel(e *content.ChildEndorsement) *models.ChildEndorsementModel {
	return &models.ChildEndorsementModel{
		ID:           e.ID,
		PiazzaUserID: e.PiazzaUserID,
		ChildID:      e.ChildID,
		UserID:       e.UserID,
		Name:         e.Name,
		Email:        e.Email,
		Photo:        e.Photo,
		FacebookID:   e.FacebookID,
	}
}

func ChildHistoryToEntity(m *models.ChildHistoryModel) *content.ChildHistory {
	return &content.ChildHistory{
		ID:           m.ID,
		PiazzaUserID: m.PiazzaUserID,
		ChildID:      m.ChildID,
		UserID:       m.UserID,
	}
}

func SubchildToEntity(m *models.SubchildModel) *content.Subchild {
	return &content.Subchild{
		ID:           m.ID,
		PiazzaUserID: m.PiazzaUserID,
		ChildID:      m.ChildID,
		UID:          m.UID,
	}
}
