package piazza

import (
	"fmt"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

func getValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
	})
	return validate
}

// UserParams carries the raw fields of one exported Piazza user record.
type UserParams struct {
	PiazzaID *string
	Name     string
	Email    string `validate:"omitempty,contains=@"`
	Note     *string
	Answers  int `validate:"gte=0"`
	Posts    int `validate:"gte=0"`
	Views    int `validate:"gte=0"`
	Asks     int `validate:"gte=0"`
	Days     int `validate:"gte=0"`
}

// SplitName holds the personal and family name components of a display name.
type SplitName struct {
	First  string
	Middle string
	Last   string
}

// Profile is the identity data copied down from a central user during resync.
type Profile struct {
	Name       string
	FirstName  string
	MiddleName string
	LastName   string
	Email      *string
}

// User is one Piazza user record as imported from a course export.
type User struct {
	id            uint
	piazzaID      *string
	name          string
	email         *string
	note          *string
	answers       int
	posts         int
	views         int
	asks          int
	days          int
	splitName     *SplitName
	datasetID     *uint
	centralUserID *uint
}

// NewUser validates raw export fields and builds an unlinked record.
func NewUser(p UserParams) (*User, error) {
	if err := getValidator().Struct(p); err != nil {
		return nil, NewDomainError("invalid piazza user", err.Error())
	}

	u := &User{
		piazzaID: p.PiazzaID,
		name:     p.Name,
		note:     p.Note,
		answers:  p.Answers,
		posts:    p.Posts,
		views:    p.Views,
		asks:     p.Asks,
		days:     p.Days,
	}
	if p.Email != "" {
		email := p.Email
		u.email = &email
	}
	return u, nil
}

// ReconstructUser rebuilds a record from persistence without re-validating export data.
func ReconstructUser(id uint, p UserParams, split *SplitName, datasetID, centralUserID *uint) (*User, error) {
	if id == 0 {
		return nil, fmt.Errorf("piazza user ID cannot be zero")
	}

	u := &User{
		id:            id,
		piazzaID:      p.PiazzaID,
		name:          p.Name,
		note:          p.Note,
		answers:       p.Answers,
		posts:         p.Posts,
		views:         p.Views,
		asks:          p.Asks,
		days:          p.Days,
		datasetID:     datasetID,
		centralUserID: centralUserID,
	}
	if p.Email != "" {
		email := p.Email
		u.email = &email
	}
	if split != nil {
		s := *split
		u.splitName = &s
	}
	return u, nil
}

func (u *User) ID() uint {
	return u.id
}

// SetID sets the store id once, after the record has been persisted.
func (u *User) SetID(id uint) error {
	if u.id != 0 {
		return fmt.Errorf("piazza user ID is already set")
	}
	if id == 0 {
		return fmt.Errorf("piazza user ID cannot be zero")
	}
	u.id = id
	return nil
}

// PiazzaID returns the platform-assigned user id, nil once anonymized.
func (u *User) PiazzaID() *string {
	return u.piazzaID
}

func (u *User) SetPiazzaID(piazzaID *string) {
	u.piazzaID = piazzaID
}

// ResetPiazzaID discards the platform id. The original value cannot be recovered.
func (u *User) ResetPiazzaID() {
	u.piazzaID = nil
}

func (u *User) Name() string {
	return u.name
}

func (u *User) SetName(name string) {
	u.name = name
}

func (u *User) Note() *string {
	return u.note
}

func (u *User) Answers() int { return u.answers }
func (u *User) Posts() int   { return u.posts }
func (u *User) Views() int   { return u.views }
func (u *User) Asks() int    { return u.asks }
func (u *User) Days() int    { return u.days }

// HasSplitName reports whether the split step has populated the name components.
func (u *User) HasSplitName() bool {
	return u.splitName != nil
}

// SplitName returns the name components, nil before the split step.
func (u *User) SplitName() *SplitName {
	if u.splitName == nil {
		return nil
	}
	s := *u.splitName
	return &s
}

func (u *User) FirstName() string {
	if u.splitName == nil {
		return ""
	}
	return u.splitName.First
}

func (u *User) MiddleName() string {
	if u.splitName == nil {
		return ""
	}
	return u.splitName.Middle
}

func (u *User) LastName() string {
	if u.splitName == nil {
		return ""
	}
	return u.splitName.Last
}

// ApplySplitName stores all three name components at once.
func (u *User) ApplySplitName(s SplitName) {
	u.splitName = &s
}

// MakeSplitNameFields splits the display name and caches the result on the record.
func (u *User) MakeSplitNameFields(splitter NameSplitter) SplitName {
	s := splitter.Split(u.name)
	u.ApplySplitName(s)
	return s
}

func (u *User) Email() *string {
	return u.email
}

// SetEmail replaces the email; an empty value clears it.
func (u *User) SetEmail(email *string) error {
	if email == nil || strings.TrimSpace(*email) == "" {
		u.email = nil
		return nil
	}
	if !strings.Contains(*email, "@") {
		return NewDomainError("malformed email", *email)
	}
	e := *email
	u.email = &e
	return nil
}

// NormalizeEmail turns a blank email into nil so that absence is explicit.
func (u *User) NormalizeEmail() {
	if u.email != nil && strings.TrimSpace(*u.email) == "" {
		u.email = nil
	}
}

// SplitEmail returns the local part and domain of the email. A nil email yields an
// empty pair; an email without "@" is a validation error.
func (u *User) SplitEmail() (local, domain string, err error) {
	if u.email == nil {
		return "", "", nil
	}
	idx := strings.Index(*u.email, "@")
	if idx == -1 {
		return "", "", NewDomainError("malformed email", *u.email)
	}
	return (*u.email)[:idx], (*u.email)[idx+1:], nil
}

func (u *User) DatasetID() *uint {
	return u.datasetID
}

func (u *User) AssignDataset(datasetID uint) {
	u.datasetID = &datasetID
}

func (u *User) CentralUserID() *uint {
	return u.centralUserID
}

// LinkCentralUser records the canonical identity this record resolved to.
func (u *User) LinkCentralUser(centralUserID uint) error {
	if centralUserID == 0 {
		return fmt.Errorf("central user ID cannot be zero")
	}
	u.centralUserID = &centralUserID
	return nil
}

// IsMigrated reports whether the record has been linked to a central user.
func (u *User) IsMigrated() bool {
	return u.centralUserID != nil
}

// SyncProfile overwrites the cached name, split name and email with the
// central user's (already scrubbed) values.
func (u *User) SyncProfile(p Profile) {
	u.name = p.Name
	u.splitName = &SplitName{
		First:  p.FirstName,
		Middle: p.MiddleName,
		Last:   p.LastName,
	}
	u.email = nil
	if p.Email != nil && *p.Email != "" {
		e := *p.Email
		u.email = &e
	}
}
