package users

import (
	"errors"
	"time"
)

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrEmailInUse         = errors.New("email already in use")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrInvalidInput       = errors.New("invalid input")
	ErrForbidden          = errors.New("cannot modify another user")
	ErrNoChanges          = errors.New("no changes supplied")
	ErrIncorrectPassword  = errors.New("current password is incorrect")
)

type User struct {
	ID            int64     `db:"id"`
	Email         string    `db:"email"`
	FirstName     string    `db:"first_name"`
	LastName      string    `db:"last_name"`
	PasswordHash  string    `db:"password_hash"`
	ImageFilename *string   `db:"image_filename"`
	CreatedAt     time.Time `db:"created_at"`
}

// Profile is the public view of a user. Email is only set for the user themselves.
type Profile struct {
	ID        int64
	FirstName string
	LastName  string
	Email     *string
}

type RegisterCommand struct {
	FirstName string
	LastName  string
	Email     string
	Password  string
}

type LoginResult struct {
	UserID int64
	Token  string
}

// UserPatch carries the fields of a partial update; nil means unchanged.
type UserPatch struct {
	FirstName *string
	LastName  *string
	Email     *string
	Password  *string
}

func (p UserPatch) IsEmpty() bool {
	return p.FirstName == nil && p.LastName == nil && p.Email == nil && p.Password == nil
}

type ModifyUserCommand struct {
	UserID          int64
	RequesterID     int64
	Patch           UserPatch
	CurrentPassword *string
}

type SetImageCommand struct {
	UserID      int64
	RequesterID int64
	ContentType string
	Data        []byte
}
