package db

import (
	"gorm.io/gorm"
)

// InDataset restricts a query to one dataset. A nil dataset leaves the query unscoped.
//
// Example usage:
//
//	db.Model(&models.PiazzaUserModel{}).Scopes(db.InDataset(datasetID)).Find(&rows)
func InDataset(datasetID *uint) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if datasetID == nil {
			return db
		}
		return db.Where("dataset_id = ?", *datasetID)
	}
}

// InDatasetOrUntagged is InDataset that also keeps rows not yet tagged with a dataset.
func InDatasetOrUntagged(datasetID *uint) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if datasetID == nil {
			return db
		}
		return db.Where("(dataset_id = ? OR dataset_id IS NULL)", *datasetID)
	}
}

// OwnedBy restricts content rows to those attributed to one Piazza user record.
func OwnedBy(piazzaUserID uint) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("piazza_user_id = ?", piazzaUserID)
	}
}
