package content

import (
	"context"
	"fmt"
)

type childOverwriter struct {
	repo Repository
}

// NewChildOverwriter returns the ChildOverwriter backed by repo.
func NewChildOverwriter(repo Repository) ChildOverwriter {
	return &childOverwriter{repo: repo}
}

// OverwriteUserData rewrites the author field of the child's own history entries
// and subchildren that were written by the child's author. Rows by other users are
// left for their own resync.
func (o *childOverwriter) OverwriteUserData(ctx context.Context, child *Child) error {
	history, err := o.repo.ListChildHistoryByChild(ctx, child.ID)
	if err != nil {
		return fmt.Errorf("failed to list history of child %d: %w", child.ID, err)
	}
	for _, h := range history {
		if h.PiazzaUserID != child.PiazzaUserID || h.UserID == child.UID {
			continue
		}
		h.UserID = child.UID
		if err := o.repo.UpdateChildHistory(ctx, h); err != nil {
			return fmt.Errorf("failed to update history %d of child %d: %w", h.ID, child.ID, err)
		}
	}

	subchildren, err := o.repo.ListSubchildrenByChild(ctx, child.ID)
	if err != nil {
		return fmt.Errorf("failed to list subchildren of child %d: %w", child.ID, err)
	}
	for _, s := range subchildren {
		if s.PiazzaUserID != child.PiazzaUserID || s.UID == child.UID {
			continue
		}
		s.UID = child.UID
		if err := o.repo.UpdateSubchild(ctx, s); err != nil {
			return fmt.Errorf("failed to update subchild %d of child %d: %w", s.ID, child.ID, err)
		}
	}

	return nil
}
