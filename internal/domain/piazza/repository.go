package piazza

import "context"

// Repository defines the data operations on Piazza user records.
// Getters return (nil, nil) when no record matches.
type Repository interface {
	// Create persists a new record and sets its ID
	Create(ctx context.Context, user *User) error

	// Update writes back every mutable field of the record
	Update(ctx context.Context, user *User) error

	// Delete removes a record permanently
	Delete(ctx context.Context, id uint) error

	// GetByID retrieves a record by store ID
	GetByID(ctx context.Context, id uint) (*User, error)

	// GetByPiazzaID retrieves the first record carrying the Piazza ID
	GetByPiazzaID(ctx context.Context, piazzaID string) (*User, error)

	// GetByName retrieves the first record with the exact display name
	GetByName(ctx context.Context, name string) (*User, error)

	// List returns all records ordered by ID, restricted to a dataset when datasetID is set
	List(ctx context.Context, datasetID *uint) ([]*User, error)

	// ListByPiazzaID returns all records sharing a Piazza ID ordered by ID. A non-nil
	// datasetID also matches records not yet tagged with a dataset.
	ListByPiazzaID(ctx context.Context, piazzaID string, datasetID *uint) ([]*User, error)

	// ListPiazzaIDs returns the distinct non-null Piazza IDs, scoped like ListByPiazzaID
	ListPiazzaIDs(ctx context.Context, datasetID *uint) ([]string, error)

	// Count returns the number of stored records
	Count(ctx context.Context) (int64, error)
}

// NameSplitter segments a free-text display name into first, middle and last name.
type NameSplitter interface {
	Split(raw string) SplitName
}

// NameSplitterFunc adapts a plain function to NameSplitter.
type NameSplitterFunc func(raw string) SplitName

func (f NameSplitterFunc) Split(raw string) SplitName {
	return f(raw)
}
