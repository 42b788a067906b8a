package errs

import (
	"errors"
)

var (
	// ErrNotFound is returned when a book or user does not exist.
	ErrNotFound = errors.New("not found")
	// ErrInvalidGrade is returned for a grade outside [0, 5].
	ErrInvalidGrade = errors.New("grade must be between 0 and 5")
	// ErrRatingExists is returned when the rater already rated the book.
	ErrRatingExists = errors.New("book already rated by this user")
	// ErrNotOwner is returned when a mutation is requested by a user other
	// than the book owner.
	ErrNotOwner = errors.New("not the book owner")
	// ErrInvalidCredential is returned on login with a wrong email/password pair.
	ErrInvalidCredential = errors.New("invalid credentials")
	// ErrEmailTaken is returned on signup with an already registered email.
	ErrEmailTaken = errors.New("email already registered")
	// ErrBadImage is returned when an uploaded cover cannot be decoded.
	ErrBadImage = errors.New("unsupported or corrupt image")
)
