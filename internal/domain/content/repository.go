package content

import "context"

// Repository exposes the seven user relations of a Piazza user record plus the
// nested rows of a child post.
type Repository interface {
	ListGoodTagsByUser(ctx context.Context, piazzaUserID uint) ([]*GoodTag, error)
	ListHistoryByUser(ctx context.Context, piazzaUserID uint) ([]*HistoryEntry, error)
	ListChangeLogsByUser(ctx context.Context, piazzaUserID uint) ([]*ChangeLog, error)
	ListChildrenByUser(ctx context.Context, piazzaUserID uint) ([]*Child, error)
	ListChildEndorsementsByUser(ctx context.Context, piazzaUserID uint) ([]*ChildEndorsement, error)
	ListChildHistoryByUser(ctx context.Context, piazzaUserID uint) ([]*ChildHistory, error)
	ListSubchildrenByUser(ctx context.Context, piazzaUserID uint) ([]*Subchild, error)

	ListChildHistoryByChild(ctx context.Context, childID uint) ([]*ChildHistory, error)
	ListSubchildrenByChild(ctx context.Context, childID uint) ([]*Subchild, error)

	UpdateGoodTag(ctx context.Context, tag *GoodTag) error
	UpdateHistory(ctx context.Context, entry *HistoryEntry) error
	UpdateChangeLog(ctx context.Context, change *ChangeLog) error
	UpdateChild(ctx context.Context, child *Child) error
	UpdateChildEndorsement(ctx context.Context, endorsement *ChildEndorsement) error
	UpdateChildHistory(ctx context.Context, entry *ChildHistory) error
	UpdateSubchild(ctx context.Context, subchild *Subchild) error
}

// ChildOverwriter propagates a child post's rewritten author into the child's own
// content graph.
type ChildOverwriter interface {
	OverwriteUserData(ctx context.Context, child *Child) error
}
