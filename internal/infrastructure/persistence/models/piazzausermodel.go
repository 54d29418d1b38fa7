package models

import (
	"time"

	"modsoc/internal/shared/constants"
)

// PiazzaUserModel represents the database persistence model for Piazza user records
type PiazzaUserModel struct {
	ID            uint    `gorm:"primarykey"`
	DatasetID     *uint   `gorm:"index:idx_piazza_users_dataset_piazza_id,priority:1"`
	PiazzaID      *string `gorm:"column:user_id;size:64;index:idx_piazza_users_dataset_piazza_id,priority:2"`
	Name          string  `gorm:"not null;default:'';size:255;index"`
	Email         *string `gorm:"size:255"`
	Note          *string `gorm:"type:text"`
	Answers       int     `gorm:"not null;default:0"`
	Posts         int     `gorm:"not null;default:0"`
	Views         int     `gorm:"not null;default:0"`
	Asks          int     `gorm:"not null;default:0"`
	Days          int     `gorm:"not null;default:0"`
	FirstName     *string `gorm:"size:100"`
	MiddleName    *string `gorm:"size:100"`
	LastName      *string `gorm:"size:100"`
	CentralUserID *uint   `gorm:"index"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// TableName specifies the table name for GORM
func (PiazzaUserModel) TableName() string {
	return constants.TablePiazzaUsers
}
