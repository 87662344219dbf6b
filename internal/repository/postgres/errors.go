// Package postgres holds sentinel errors shared by the postgres
// repositories.
package postgres

import "github.com/pkg/errors"

var (
	ErrNotFound       = errors.New("required data not found")
	ErrAlreadyExists  = errors.New("row already exists")
	ErrInvalidRequest = errors.New("invalid request")
)
