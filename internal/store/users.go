package store

import (
	"context"

	"github.com/google/uuid"

	"github.com/subodh53/BookMySlot/internal/domain"
)

type UserRepository interface {
	// Create inserts a new user. Returns ErrEmailTaken or
	// ErrUsernameTaken when the respective unique constraint fires.
	Create(ctx context.Context, user domain.User) (domain.User, error)

	ByID(ctx context.Context, id uuid.UUID) (domain.User, error)
	ByUsername(ctx context.Context, username string) (domain.User, error)

	// ByEmailOrUsername resolves the login identifier against either
	// column. Returns ErrNotFound when neither matches.
	ByEmailOrUsername(ctx context.Context, identifier string) (domain.User, error)
}
