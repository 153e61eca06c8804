package service

import (
	"errors"

	"bugwise/internal/repository"
)

var (
	ErrUsernameTaken      = errors.New("username already registered")
	ErrEmailTaken         = errors.New("email already registered")
	ErrUserNotFound       = errors.New("user does not exist")
	ErrInvalidCredentials = errors.New("incorrect username or password")
	ErrUnauthorized       = errors.New("could not validate credentials")
	ErrForbidden          = errors.New("you do not have permission to perform this action")
	ErrInvalidRole        = errors.New("role must be admin, developer, or viewer")
	ErrPasswordTooLong    = errors.New("password must be at most 72 bytes")
	ErrInvalidPagination  = errors.New("limit must not be negative")
)

// translateRepoErr maps repository sentinels to service errors.
func translateRepoErr(err error) error {
	switch {
	case errors.Is(err, repository.ErrDuplicateUsername):
		return ErrUsernameTaken
	case errors.Is(err, repository.ErrDuplicateEmail):
		return ErrEmailTaken
	case errors.Is(err, repository.ErrUserNotFound):
		return ErrUserNotFound
	}
	return err
}
