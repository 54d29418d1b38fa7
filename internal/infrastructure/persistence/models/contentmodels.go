package models

import (
	"modsoc/internal/shared/constants"
)

// GoodTagModel is a "good post" tag with its author snapshot
type GoodTagModel struct {
	ID           uint    `gorm:"primarykey"`
	PiazzaUserID uint    `gorm:"not null;index"`
	UserID       string  `gorm:"column:user_id;size:64"`
	Name         string  `gorm:"size:255"`
	Email        *string `gorm:"size:255"`
	Photo        *string `gorm:"size:500"`
	FacebookID   *string `gorm:"size:64"`
}

func (GoodTagModel) TableName() string {
	return constants.TableContentGoodTags
}

// HistoryModel is one edit of a top-level post
type HistoryModel struct {
	ID           uint   `gorm:"primarykey"`
	PiazzaUserID uint   `gorm:"not null;index"`
	UID          string `gorm:"column:uid;size:64"`
}

func (HistoryModel) TableName() string {
	return constants.TableContentHistory
}

// ChangeLogModel is one change-log entry of a top-level post
type ChangeLogModel struct {
	ID           uint   `gorm:"primarykey"`
	PiazzaUserID uint   `gorm:"not null;index"`
	UID          string `gorm:"column:uid;size:64"`
}

func (ChangeLogModel) TableName() string {
	return constants.TableContentChangeLog
}

// ChildModel is a child post with its author and display id
type ChildModel struct {
	ID           uint    `gorm:"primarykey"`
	PiazzaUserID uint    `gorm:"not null;index"`
	UID          string  `gorm:"column:uid;size:64"`
	DisplayID    *string `gorm:"column:display_id;size:64"`
}

func (ChildModel) TableName() string {
	return constants.TableContentChildren
}

// ChildEndorsementModel is an endorsement of a child post with its author snapshot
type ChildEndorsementModel struct {
	ID           uint    `gorm:"primarykey"`
	PiazzaUserID uint    `gorm:"not null;index"`
	ChildID      uint    `gorm:"not null;index"`
	UserID       string  `gorm:"column:user_id;size:64"`
	Name         string  `gorm:"size:255"`
	Email        *string `gorm:"size:255"`
	Photo        *string `gorm:"size:500"`
	FacebookID   *string `gorm:"size:64"`
}

func (ChildEndorsementModel) TableName() string {
	return constants.TableContentChildEndorse
}

// ChildHistoryModel is one edit of a child post
type ChildHistoryModel struct {
	ID           uint   `gorm:"primarykey"`
	PiazzaUserID uint   `gorm:"not null;index"`
	ChildID      uint   `gorm:"not null;index"`
	UserID       string `gorm:"column:user_id;size:64"`
}

func (ChildHistoryModel) TableName() string {
	return constants.TableContentChildHistory
}

// SubchildModel is a reply nested under a child post
type SubchildModel struct {
	ID           uint   `gorm:"primarykey"`
	PiazzaUserID uint   `gorm:"not null;index"`
	ChildID      uint   `gorm:"not null;index"`
	UID          string `gorm:"column:uid;size:64"`
}

func (SubchildModel) TableName() string {
	return constants.TableContentChildSubchildren
}
