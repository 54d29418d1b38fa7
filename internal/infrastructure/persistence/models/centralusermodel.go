package models

import (
	"time"

	"gorm.io/gorm"

	"modsoc/internal/shared/constants"
)

// CentralUserModel represents the cross-platform identity row
type CentralUserModel struct {
	ID             uint    `gorm:"primarykey"`
	LocalUserID    int64   `gorm:"not null;default:0;index"`
	DatasetID      *uint   `gorm:"index"`
	Name           string  `gorm:"not null;default:'';size:255"`
	FirstName      string  `gorm:"not null;default:'';size:100;index:idx_users_first_last,priority:1"`
	MiddleName     string  `gorm:"not null;default:'';size:100"`
	LastName       string  `gorm:"not null;default:'';size:100;index:idx_users_first_last,priority:2"`
	Email          *string `gorm:"size:255;index"`
	PiazzaAltEmail *string `gorm:"size:255"`
	PiazzaUserID   *uint
	PiazzaID       *string `gorm:"size:64"`
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// TableName specifies the table name for GORM
func (CentralUserModel) TableName() string {
	return constants.TableCentralUsers
}

// AfterCreate defaults the surrogate id to the row id inside the creating transaction.
func (u *CentralUserModel) AfterCreate(tx *gorm.DB) error {
	if u.LocalUserID != 0 {
		return nil
	}
	u.LocalUserID = int64(u.ID)
	return tx.Model(u).UpdateColumn("local_user_id", u.LocalUserID).Error
}
