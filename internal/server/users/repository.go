package users

import "context"

// Repository is the credential store. Emails are expected to be normalized
// (trimmed, lowercased) before any call.
type Repository interface {
	// FindByEmail returns the user with the given normalized email, or
	// common.ErrNotFound.
	FindByEmail(ctx context.Context, email string) (*User, error)

	// FindByID returns the user with the given id, or common.ErrNotFound.
	FindByID(ctx context.Context, id string) (*User, error)

	// Insert adds a new user and durably persists the collection before
	// returning. It returns common.ErrEmailTaken when a record with the
	// same normalized email already exists; the duplicate check and the
	// insert are atomic with respect to concurrent Inserts.
	Insert(ctx context.Context, user *User) error
}
