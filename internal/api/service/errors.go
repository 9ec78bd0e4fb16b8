package service

import "errors"

var (
	ErrNameInUse          = errors.New("username already in use")
	ErrEmailInUse         = errors.New("email already in use")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidToken       = errors.New("invalid token")
	ErrExpiredToken       = errors.New("token has expired")

	ErrBookNotFound     = errors.New("book not found")
	ErrNoClub           = errors.New("user does not belong to a club")
	ErrInvalidRating    = errors.New("rating must be between 0.5 and 5 in half-point steps")
	ErrInvalidPages     = errors.New("pages read and total pages must be positive")
	ErrEmptyTitle       = errors.New("book title is required")
	ErrEmptyComment     = errors.New("comment text is required")
	ErrNotAuthor        = errors.New("comment can only be changed by its author")
	ErrUsernameTooShort = errors.New("username must be at least 3 characters")
)
