// Package testutil provides an in-memory content.Repository for tests.
package testutil

import (
	"context"
	"sort"
	"sync"

	"modsoc/internal/domain/content"
)

// MemoryRepository stores content rows in maps keyed by row ID.
type MemoryRepository struct {
	mu                sync.Mutex
	GoodTags          map[uint]*content.GoodTag
	History           map[uint]*content.HistoryEntry
	ChangeLogs        map[uint]*content.ChangeLog
	Children          map[uint]*content.Child
	ChildEndorsements map[uint]*content.ChildEndorsement
	ChildHistory      map[uint]*content.ChildHistory
	Subchildren       map[uint]*content.Subchild

	// Error injection for testing
	ListError   error
	UpdateError error
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		GoodTags:          make(map[uint]*content.GoodTag),
		History:           make(map[uint]*content.HistoryEntry),
		ChangeLogs:        make(map[uint]*content.ChangeLog),
		Children:          make(map[uint]*content.Child),
		ChildEndorsements: make(map[uint]*content.ChildEndorsement),
		ChildHistory:      make(map[uint]*content.ChildHistory),
		Subchildren:       make(map[uint]*content.Subchild),
	}
}

// collect copies the rows matching keep, ordered by ID, so callers never alias stored rows.
func collect[T any](rows map[uint]*T, keep func(*T) bool) []*T {
	ids := make([]uint, 0, len(rows))
	for id, row := range rows {
		if keep(row) {
			ids = append(ids, id)
		}
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	out := make([]*T, 0, len(ids))
	for _, id := range ids {
		c := *rows[id]
		out = append(out, &c)
	}
	return out
}

func store[T any](rows map[uint]*T, id uint, row *T) {
	c := *row
	rows[id] = &c
}

func (m *MemoryRepository) ListGoodTagsByUser(ctx context.Context, piazzaUserID uint) ([]*content.GoodTag, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.ListError != nil {
		return nil, m.ListError
	}
	return collect(m.GoodTags, func(r *content.GoodTag) bool { return r.PiazzaUserID == piazzaUserID }), nil
}

func (m *MemoryRepository) ListHistoryByUser(ctx context.Context, piazzaUserID uint) ([]*content.HistoryEntry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.ListError != nil {
		return nil, m.ListError
	}
	return collect(m.History, func(r *content.HistoryEntry) bool { return r.PiazzaUserID == piazzaUserID }), nil
}

func (m *MemoryRepository) ListChangeLogsByUser(ctx context.Context, piazzaUserID uint) ([]*content.ChangeLog, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.ListError != nil {
		return nil, m.ListError
	}
	return collect(m.ChangeLogs, func(r *content.ChangeLog) bool { return r.PiazzaUserID == piazzaUserID }), nil
}

func (m *MemoryRepository) ListChildrenByUser(ctx context.Context, piazzaUserID uint) ([]*content.Child, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.ListError != nil {
		return nil, m.ListError
	}
	return collect(m.Children, func(r *content.Child) bool { return r.PiazzaUserID == piazzaUserID }), nil
}

func (m *MemoryRepository) ListChildEndorsementsByUser(ctx context.Context, piazzaUserID uint) ([]*content.ChildEndorsement, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.ListError != nil {
		return nil, m.ListError
	}
	return collect(m.ChildEndorsements, func(r *content.ChildEndorsement) bool { return r.PiazzaUserID == piazzaUserID }), nil
}

func (m *MemoryRepository) ListChildHistoryByUser(ctx context.Context, piazzaUserID uint) ([]*content.ChildHistory, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.ListError != nil {
		return nil, m.ListError
	}
	return collect(m.ChildHistory, func(r *content.ChildHistory) bool { return r.PiazzaUserID == piazzaUserID }), nil
}

func (m *MemoryRepository) ListSubchildrenByUser(ctx context.Context, piazzaUserID uint) ([]*content.Subchild, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.ListError != nil {
		return nil, m.ListError
	}
	return collect(m.Subchildren, func(r *content.Subchild) bool { return r.PiazzaUserID == piazzaUserID }), nil
}

func (m *MemoryRepository) ListChildHistoryByChild(ctx context.Context, childID uint) ([]*content.ChildHistory, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.ListError != nil {
		return nil, m.ListError
	}
	return collect(m.ChildHistory, func(r *content.ChildHistory) bool { return r.ChildID == childID }), nil
}

func (m *MemoryRepository) ListSubchildrenByChild(ctx context.Context, childID uint) ([]*content.Subchild, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.ListError != nil {
		return nil, m.ListError
	}
	return collect(m.Subchildren, func(r *content.Subchild) bool { return r.ChildID == childID }), nil
}

func (m *MemoryRepository) UpdateGoodTag(ctx context.Context, tag *content.GoodTag) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.UpdateError != nil {
		return m.UpdateError
	}
	store(m.GoodTags, tag.ID, tag)
	return nil
}

func (m *MemoryRepository) UpdateHistory(ctx context.Context, entry *content.HistoryEntry) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.UpdateError != nil {
		return m.UpdateError
	}
	store(m.History, entry.ID, entry)
	return nil
}

func (m *MemoryRepository) UpdateChangeLog(ctx context.Context, change *content.ChangeLog) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.UpdateError != nil {
		return m.UpdateError
	}
	store(m.ChangeLogs, change.ID, change)
	return nil
}

func (m *MemoryRepository) UpdateChild(ctx context.Context, child *content.Child) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.UpdateError != nil {
		return m.UpdateError
	}
	store(m.Children, child.ID, child)
	return nil
}

func (m *MemoryRepository) UpdateChildEndorsement(ctx context.Context, endorsement *content.ChildEndorsement) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.UpdateError != nil {
		return m.UpdateError
	}
	store(m.ChildEndorsements, endorsement.ID, endorsement)
	return nil
}

func (m *MemoryRepository) UpdateChildHistory(ctx context.Context, entry *content.ChildHistory) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.UpdateError != nil {
		return m.UpdateError
	}
	store(m.ChildHistory, entry.ID, entry)
	return nil
}

func (m *MemoryRepository) UpdateSubchild(ctx context.Context, subchild *content.Subchild) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.UpdateError != nil {
		return m.UpdateError
	}
	store(m.Subchildren, subchild.ID, subchild)
	return nil
}
