package database

import "errors"

var (
	ErrNotFound  = errors.New("not found")
	ErrDuplicate = errors.New("resource already exists")
	ErrConflict  = errors.New("conflict")
)
