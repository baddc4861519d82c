package domain

import "context"

//go:generate mockgen -destination=../../mocks/mock_domain.go -package=mocks github.com/tograil/Mongocore/internal/identity/domain Sequence,UserRepository,RoleRepository

// Sequence hands out monotonically increasing integer ids per entity type.
// Next must be atomic against the backing store: no two concurrent callers
// ever observe the same value for the same entity type.
type Sequence interface {
	Next(ctx context.Context, entityType string) (int, error)
}

// UserRepository persists User documents. Find methods return (nil, nil)
// on a miss. None of the methods retry; transient storage failures surface
// to the caller.
type UserRepository interface {
	Create(ctx context.Context, user *User) error
	Update(ctx context.Context, user *User) error
	Delete(ctx context.Context, user *User) error
	FindByID(ctx context.Context, id int) (*User, error)
	FindByNormalizedUserName(ctx context.Context, name string) (*User, error)
	FindByNormalizedEmail(ctx context.Context, email string) (*User, error)
	List(ctx context.Context) ([]*User, error)
}

// RoleRepository persists Role documents with the same contract.
type RoleRepository interface {
	Create(ctx context.Context, role *Role) error
	Update(ctx context.Context, role *Role) error
	Delete(ctx context.Context, role *Role) error
	FindByID(ctx context.Context, id int) (*Role, error)
	FindByNormalizedName(ctx context.Context, name string) (*Role, error)
}
