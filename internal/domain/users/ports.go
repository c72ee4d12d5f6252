package users

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/floroz/gavel-auctions/pkg/events"
)

type UserRepository interface {
	// CreateUser sets the user's ID and CreatedAt. It returns ErrEmailInUse
	// when the email is already registered.
	CreateUser(ctx context.Context, tx pgx.Tx, user *User) error

	// GetUserByID and GetUserByEmail return nil, nil when there is no such user.
	GetUserByID(ctx context.Context, id int64) (*User, error)
	GetUserByEmail(ctx context.Context, email string) (*User, error)

	// UpdateUser writes names, email and password hash. It returns
	// ErrEmailInUse when the new email belongs to another user.
	UpdateUser(ctx context.Context, user *User) error

	// SetTokenHash stores the hash of the user's current bearer token; nil logs the user out.
	SetTokenHash(ctx context.Context, id int64, tokenHash []byte) error
	GetUserIDByTokenHash(ctx context.Context, tokenHash []byte) (int64, bool, error)

	SetImageFilename(ctx context.Context, id int64, filename *string) error
}

type OutboxRepository = events.OutboxWriter
