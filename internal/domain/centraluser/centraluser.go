// Package centraluser models the cross-platform identity that Piazza records resolve to.
package centraluser

import (
	"fmt"
)

// NewParams holds the values used when no existing identity matches a platform record.
type NewParams struct {
	DatasetID    uint
	Name         string
	Email        *string
	FirstName    string
	MiddleName   string
	LastName     string
	PiazzaUserID uint
}

// CentralUser is the canonical identity shared by all platform records of one person.
type CentralUser struct {
	id             uint
	localUserID    int64
	datasetID      *uint
	name           string
	firstName      string
	middleName     string
	lastName       string
	email          *string
	piazzaAltEmail *string
	piazzaUserID   *uint
	piazzaID       *string
}

// NewCentralUser builds an identity from a platform record that matched nothing.
func NewCentralUser(p NewParams) *CentralUser {
	datasetID := p.DatasetID
	u := &CentralUser{
		datasetID:  &datasetID,
		name:       p.Name,
		firstName:  p.FirstName,
		middleName: p.MiddleName,
		lastName:   p.LastName,
	}
	if p.Email != nil && *p.Email != "" {
		email := *p.Email
		u.email = &email
	}
	if p.PiazzaUserID != 0 {
		recordID := p.PiazzaUserID
		u.piazzaUserID = &recordID
	}
	return u
}

// ReconstructParams mirrors the persisted columns.
type ReconstructParams struct {
	ID             uint
	LocalUserID    int64
	DatasetID      *uint
	Name           string
	FirstName      string
	MiddleName     string
	LastName       string
	Email          *string
	PiazzaAltEmail *string
	PiazzaUserID   *uint
	PiazzaID       *string
}

func ReconstructCentralUser(p ReconstructParams) (*CentralUser, error) {
	if p.ID == 0 {
		return nil, fmt.Errorf("central user ID cannot be zero")
	}
	return &CentralUser{
		id:             p.ID,
		localUserID:    p.LocalUserID,
		datasetID:      p.DatasetID,
		name:           p.Name,
		firstName:      p.FirstName,
		middleName:     p.MiddleName,
		lastName:       p.LastName,
		email:          p.Email,
		piazzaAltEmail: p.PiazzaAltEmail,
		piazzaUserID:   p.PiazzaUserID,
		piazzaID:       p.PiazzaID,
	}, nil
}

func (u *CentralUser) ID() uint {
	return u.id
}

// SetID assigns the store id and, when none was set, the surrogate id.
func (u *CentralUser) SetID(id uint) error {
	if u.id != 0 {
		return fmt.Errorf("central user ID is already set")
	}
	if id == 0 {
		return fmt.Errorf("central user ID cannot be zero")
	}
	u.id = id
	if u.localUserID == 0 {
		u.localUserID = int64(id)
	}
	return nil
}

// LocalUserID is the surrogate id substituted into content during anonymization.
func (u *CentralUser) LocalUserID() int64 {
	return u.localUserID
}

func (u *CentralUser) DatasetID() *uint        { return u.datasetID }
func (u *CentralUser) Name() string            { return u.name }
func (u *CentralUser) FirstName() string       { return u.firstName }
func (u *CentralUser) MiddleName() string      { return u.middleName }
func (u *CentralUser) LastName() string        { return u.lastName }
func (u *CentralUser) Email() *string          { return u.email }
func (u *CentralUser) PiazzaAltEmail() *string { return u.piazzaAltEmail }
func (u *CentralUser) PiazzaUserID() *uint     { return u.piazzaUserID }
func (u *CentralUser) PiazzaID() *string       { return u.piazzaID }

// SetPiazzaAltEmail fills the single alternate-email slot, replacing any previous value.
func (u *CentralUser) SetPiazzaAltEmail(email *string) {
	if email == nil {
		u.piazzaAltEmail = nil
		return
	}
	e := *email
	u.piazzaAltEmail = &e
}

// LinkPiazzaUser points the identity back at a platform record. The last link wins.
func (u *CentralUser) LinkPiazzaUser(recordID uint, piazzaID *string) {
	u.piazzaUserID = &recordID
	if piazzaID == nil {
		u.piazzaID = nil
		return
	}
	p := *piazzaID
	u.piazzaID = &p
}

// LinkedToOtherRecord reports whether the identity already points at a Piazza
// record other than recordID.
func (u *CentralUser) LinkedToOtherRecord(recordID uint) bool {
	return u.piazzaUserID != nil && *u.piazzaUserID != recordID
}
