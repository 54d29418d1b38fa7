package centraluser

import "context"

// Directory is the capability the identity passes need from the central user store.
// Finders return (nil, nil) when nothing matches.
type Directory interface {
	// GetByID retrieves an identity by store ID
	GetByID(ctx context.Context, id uint) (*CentralUser, error)

	// FindByEmail matches the primary email exactly
	FindByEmail(ctx context.Context, email string) (*CentralUser, error)

	// FindByFirstLast matches first and last name case-insensitively
	FindByFirstLast(ctx context.Context, firstName, lastName string) (*CentralUser, error)

	// Create persists a new identity and sets its ID and surrogate ID
	Create(ctx context.Context, user *CentralUser) error

	// Update writes back the alternate email and the platform back-references
	Update(ctx context.Context, user *CentralUser) error
}
