// Package content holds the Piazza content records that reference a user, reduced
// to the fields the anonymization pass rewrites.
package content

// AuthorSnapshot is the denormalized copy of a user's profile embedded in tags and
// endorsements.
type AuthorSnapshot struct {
	UserID     string
	Name       string
	Email      *string
	Photo      *string
	FacebookID *string
}

// Scrub replaces the snapshot with the anonymized identity and drops contact data.
func (s *AuthorSnapshot) Scrub(userID, name string) {
	s.UserID = userID
	s.Name = name
	s.Email = nil
	s.Photo = nil
	s.FacebookID = nil
}

// GoodTag is a "good post" endorsement given by a user.
type GoodTag struct {
	ID           uint
	PiazzaUserID uint
	AuthorSnapshot
}

// HistoryEntry is one edit of a top-level post.
type HistoryEntry struct {
	ID           uint
	PiazzaUserID uint
	UID          string
}

// ChangeLog is one change-log entry of a top-level post.
type ChangeLog struct {
	ID           uint
	PiazzaUserID uint
	UID          string
}

// Child is a follow-up or answer authored under a post.
type Child struct {
	ID           uint
	PiazzaUserID uint
	UID          string
	DisplayID    *string
}

// ChildEndorsement is an endorsement of a child post.
type ChildEndorsement struct {
	ID           uint
	PiazzaUserID uint
	ChildID      uint
	AuthorSnapshot
}

// ChildHistory is one edit of a child post.
type ChildHistory struct {
	ID           uint
	PiazzaUserID uint
	ChildID      uint
	UserID       string
}

// Subchild is a reply nested under a child post.
type Subchild struct {
	ID           uint
	PiazzaUserID uint
	ChildID      uint
	UID          string
}
