package apperr

import "errors"

var (
	ErrNotFound         = errors.New("not found")
	ErrInvalidDate      = errors.New("invalid date")
	ErrEmptyContent     = errors.New("empty content")
	ErrInvalidLineIndex = errors.New("invalid line index")
	ErrNotATodoLine     = errors.New("not a todo line")
)
