package storage

import "errors"

var (
	ErrNotFound     = errors.New("asset not found")
	ErrDuplicateKey = errors.New("duplicate asset id")
)
