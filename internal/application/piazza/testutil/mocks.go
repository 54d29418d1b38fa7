// Package testutil provides in-memory implementations for testing the piazza application layer.
package testutil

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"modsoc/internal/domain/centraluser"
	"modsoc/internal/domain/piazza"
)

// MockPiazzaRepository is an in-memory piazza.Repository. It stores copies so that
// changes reach it only through Create and Update.
type MockPiazzaRepository struct {
	mu     sync.RWMutex
	users  map[uint]*piazza.User
	nextID uint

	// Error injection for testing
	ListError   error
	UpdateError error
	DeleteError error

	UpdateCalls int
}

// NewMockPiazzaRepository creates a new mock Piazza user repository.
func NewMockPiazzaRepository() *MockPiazzaRepository {
	return &MockPiazzaRepository{users: make(map[uint]*piazza.User)}
}

func clonePiazzaUser(u *piazza.User) *piazza.User {
	c := *u
	return &c
}

func (m *MockPiazzaRepository) Create(ctx context.Context, user *piazza.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if user.ID() == 0 {
		m.nextID++
		if err := user.SetID(m.nextID); err != nil {
			return err
		}
	} else if user.ID() > m.nextID {
		m.nextID = user.ID()
	}
	m.users[user.ID()] = clonePiazzaUser(user)
	return nil
}

// Seed stores a record built from p and returns it with its ID set.
func (m *MockPiazzaRepository) Seed(p piazza.UserParams) *piazza.User {
	u, err := piazza.NewUser(p)
	if err != nil {
		panic(err)
	}
	if err := m.Create(context.Background(), u); err != nil {
		panic(err)
	}
	return u
}

func (m *MockPiazzaRepository) Update(ctx context.Context, user *piazza.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.UpdateCalls++
	if m.UpdateError != nil {
		return m.UpdateError
	}
	if _, ok := m.users[user.ID()]; !ok {
		return fmt.Errorf("piazza user %d not found", user.ID())
	}
	m.users[user.ID()] = clonePiazzaUser(user)
	return nil
}

func (m *MockPiazzaRepository) Delete(ctx context.Context, id uint) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.DeleteError != nil {
		return m.DeleteError
	}
	if _, ok := m.users[id]; !ok {
		return fmt.Errorf("piazza user %d not found", id)
	}
	delete(m.users, id)
	return nil
}

// sorted returns copies of the records matching keep, ordered by ID.
func (m *MockPiazzaRepository) sorted(keep func(*piazza.User) bool) []*piazza.User {
	ids := make([]uint, 0, len(m.users))
	for id, u := range m.users {
		if keep(u) {
			ids = append(ids, id)
		}
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	out := make([]*piazza.User, 0, len(ids))
	for _, id := range ids {
		out = append(out, clonePiazzaUser(m.users[id]))
	}
	return out
}

func (m *MockPiazzaRepository) first(keep func(*piazza.User) bool) *piazza.User {
	matches := m.sorted(keep)
	if len(matches) == 0 {
		return nil
	}
	return matches[0]
}

func (m *MockPiazzaRepository) GetByID(ctx context.Context, id uint) (*piazza.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.first(func(u *piazza.User) bool { return u.ID() == id }), nil
}

func (m *MockPiazzaRepository) GetByPiazzaID(ctx context.Context, piazzaID string) (*piazza.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.first(func(u *piazza.User) bool { return u.PiazzaID() != nil && *u.PiazzaID() == piazzaID }), nil
}

func (m *MockPiazzaRepository) GetByName(ctx context.Context, name string) (*piazza.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.first(func(u *piazza.User) bool { return u.Name() == name }), nil
}

func inDataset(u *piazza.User, datasetID *uint) bool {
	if datasetID == nil {
		return true
	}
	return u.DatasetID() != nil && *u.DatasetID() == *datasetID
}

func inDatasetOrUntagged(u *piazza.User, datasetID *uint) bool {
	return u.DatasetID() == nil || inDataset(u, datasetID)
}

func (m *MockPiazzaRepository) List(ctx context.Context, datasetID *uint) ([]*piazza.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.ListError != nil {
		return nil, m.ListError
	}
	return m.sorted(func(u *piazza.User) bool { return inDataset(u, datasetID) }), nil
}

func (m *MockPiazzaRepository) ListByPiazzaID(ctx context.Context, piazzaID string, datasetID *uint) ([]*piazza.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.ListError != nil {
		return nil, m.ListError
	}
	return m.sorted(func(u *piazza.User) bool {
		return u.PiazzaID() != nil && *u.PiazzaID() == piazzaID && inDatasetOrUntagged(u, datasetID)
	}), nil
}

func (m *MockPiazzaRepository) ListPiazzaIDs(ctx context.Context, datasetID *uint) ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.ListError != nil {
		return nil, m.ListError
	}

	seen := make(map[string]struct{})
	ids := []string{}
	for _, u := range m.sorted(func(u *piazza.User) bool { return u.PiazzaID() != nil && inDatasetOrUntagged(u, datasetID) }) {
		if _, ok := seen[*u.PiazzaID()]; ok {
			continue
		}
		seen[*u.PiazzaID()] = struct{}{}
		ids = append(ids, *u.PiazzaID())
	}
	sort.Strings(ids)
	return ids, nil
}

func (m *MockPiazzaRepository) Count(ctx context.Context) (int64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return int64(len(m.users)), nil
}

// Stored returns a copy of the record as last persisted, nil when absent.
func (m *MockPiazzaRepository) Stored(id uint) *piazza.User {
	m.mu.RLock()
	defer m.mu.RUnlock()
	u, ok := m.users[id]
	if !ok {
		return nil
	}
	return clonePiazzaUser(u)
}

// MockDirectory is an in-memory centraluser.Directory.
type MockDirectory struct {
	mu     sync.RWMutex
	users  map[uint]*centraluser.CentralUser
	nextID uint

	CreateError error
	FindError   error

	CreateCalls int
}

// NewMockDirectory creates a new mock central user directory.
func NewMockDirectory() *MockDirectory {
	return &MockDirectory{users: make(map[uint]*centraluser.CentralUser)}
}

func cloneCentralUser(u *centraluser.CentralUser) *centraluser.CentralUser {
	c := *u
	return &c
}

func (d *MockDirectory) first(keep func(*centraluser.CentralUser) bool) *centraluser.CentralUser {
	ids := make([]uint, 0, len(d.users))
	for id, u := range d.users {
		if keep(u) {
			ids = append(ids, id)
		}
	}
	if len(ids) == 0 {
		return nil
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return cloneCentralUser(d.users[ids[0]])
}

func (d *MockDirectory) GetByID(ctx context.Context, id uint) (*centraluser.CentralUser, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	if d.FindError != nil {
		return nil, d.FindError
	}
	return d.first(func(u *centraluser.CentralUser) bool { return u.ID() == id }), nil
}

func (d *MockDirectory) FindByEmail(ctx context.Context, email string) (*centraluser.CentralUser, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	if d.FindError != nil {
		return nil, d.FindError
	}
	return d.first(func(u *centraluser.CentralUser) bool { return u.Email() != nil && *u.Email() == email }), nil
}

func (d *MockDirectory) FindByFirstLast(ctx context.Context, firstName, lastName string) (*centraluser.CentralUser, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	if d.FindError != nil {
		return nil, d.FindError
	}
	return d.first(func(u *centraluser.CentralUser) bool {
		return strings.EqualFold(u.FirstName(), firstName) && strings.EqualFold(u.LastName(), lastName)
	}), nil
}

func (d *MockDirectory) Create(ctx context.Context, user *centraluser.CentralUser) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.CreateCalls++
	if d.CreateError != nil {
		return d.CreateError
	}
	d.nextID++
	if err := user.SetID(d.nextID); err != nil {
		return err
	}
	d.users[user.ID()] = cloneCentralUser(user)
	return nil
}

// Put stores an identity that already has an ID, as if created by another system.
func (d *MockDirectory) Put(user *centraluser.CentralUser) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if user.ID() > d.nextID {
		d.nextID = user.ID()
	}
	d.users[user.ID()] = cloneCentralUser(user)
}

func (d *MockDirectory) Update(ctx context.Context, user *centraluser.CentralUser) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if _, ok := d.users[user.ID()]; !ok {
		return fmt.Errorf("central user %d not found", user.ID())
	}
	d.users[user.ID()] = cloneCentralUser(user)
	return nil
}

// Len returns the number of stored identities.
func (d *MockDirectory) Len() int {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return len(d.users)
}

// MockTxRunner runs fn directly and counts the units of work.
type MockTxRunner struct {
	mu    sync.Mutex
	Calls int
}

func (r *MockTxRunner) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	r.mu.Lock()
	r.Calls++
	r.mu.Unlock()
	return fn(ctx)
}

// MockDatasetLock records acquisitions and fails scopes listed in Held.
type MockDatasetLock struct {
	mu       sync.Mutex
	Held     map[string]error
	Acquired []string
	Released []string
}

func (l *MockDatasetLock) Acquire(ctx context.Context, scope string) (func(context.Context) error, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if err, ok := l.Held[scope]; ok {
		return nil, err
	}
	l.Acquired = append(l.Acquired, scope)
	return func(context.Context) error {
		l.mu.Lock()
		defer l.mu.Unlock()
		l.Released = append(l.Released, scope)
		return nil
	}, nil
}
