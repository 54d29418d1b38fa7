package dto

import (
	"modsoc/internal/domain/centraluser"
	"modsoc/internal/domain/piazza"
)

// PiazzaUserResponse is the printable view of one Piazza user record
type PiazzaUserResponse struct {
	ID            uint    `json:"id" yaml:"id"`
	PiazzaID      *string `json:"piazza_id" yaml:"piazza_id"`
	Name          string  `json:"name" yaml:"name"`
	Email         *string `json:"email" yaml:"email"`
	FirstName     string  `json:"first_name,omitempty" yaml:"first_name,omitempty"`
	MiddleName    string  `json:"middle_name,omitempty" yaml:"middle_name,omitempty"`
	LastName      string  `json:"last_name,omitempty" yaml:"last_name,omitempty"`
	DatasetID     *uint   `json:"dataset_id" yaml:"dataset_id"`
	CentralUserID *uint   `json:"central_user_id" yaml:"central_user_id"`
	Stats         Stats   `json:"stats" yaml:"stats"`
}

// Stats carries the activity counters of a Piazza export
type Stats struct {
	Answers int `json:"answers" yaml:"answers"`
	Posts   int `json:"posts" yaml:"posts"`
	Views   int `json:"views" yaml:"views"`
	Asks    int `json:"asks" yaml:"asks"`
	Days    int `json:"days" yaml:"days"`
}

// MigrationResponse summarizes one migrate-users pass
type MigrationResponse struct {
	DatasetID      uint   `json:"dataset_id" yaml:"dataset_id"`
	Records        int    `json:"records" yaml:"records"`
	CentralUserIDs []uint `json:"central_user_ids" yaml:"central_user_ids"`
}

// PassResponse summarizes a dedupe or overwrite pass
type PassResponse struct {
	DatasetID *uint `json:"dataset_id" yaml:"dataset_id"`
	Affected  int   `json:"affected" yaml:"affected"`
}

// CentralUserIDResponse is the answer of a central-id lookup
type CentralUserIDResponse struct {
	CentralUserID uint `json:"central_user_id" yaml:"central_user_id"`
}

func ToPiazzaUserResponse(u *piazza.User) *PiazzaUserResponse {
	if u == nil {
		return nil
	}
	return &PiazzaUserResponse{
		ID:            u.ID(),
		PiazzaID:      u.PiazzaID(),
		Name:          u.Name(),
		Email:         u.Email(),
		FirstName:     u.FirstName(),
		MiddleName:    u.MiddleName(),
		LastName:      u.LastName(),
		DatasetID:     u.DatasetID(),
		CentralUserID: u.CentralUserID(),
		Stats: Stats{
			Answers: u.Answers(),
			Posts:   u.Posts(),
			Views:   u.Views(),
			Asks:    u.Asks(),
			Days:    u.Days(),
		},
	}
}

// ToMigrationResponse lists the resolved identities in record order; repeats are kept.
func ToMigrationResponse(datasetID uint, resolved []*centraluser.CentralUser) *MigrationResponse {
	ids := make([]uint, 0, len(resolved))
	for _, cu := range resolved {
		ids = append(ids, cu.ID())
	}
	return &MigrationResponse{
		DatasetID:      datasetID,
		Records:        len(resolved),
		CentralUserIDs: ids,
	}
}
