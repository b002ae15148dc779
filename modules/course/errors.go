package course

import "errors"

var (
	ErrNotFound  = errors.New("course not found")
	ErrInvalidID = errors.New("invalid course id")
)
