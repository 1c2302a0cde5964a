package auth

import "errors"

var (
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrUserInactive       = errors.New("user account is inactive")
	ErrUserNotFound       = errors.New("user not found")
	ErrDuplicateUser      = errors.New("username already exists")
	ErrInvalidUser        = errors.New("invalid user")
	ErrSelfModify         = errors.New("cannot modify your own account")
)
