package repo

import (
	"errors"
	"time"
)

var (
	// ErrProductNotFound is returned when a product is not found in the repository.
	ErrProductNotFound = errors.New("product not found")
	ErrUserNotFound    = errors.New("user not found")

	// ErrDuplicatedValueUnique is returned when a write would break a unique key (sku, username).
	ErrDuplicatedValueUnique = errors.New("duplicated value violates unique constraint")
)

const queryTimeout = 3 * time.Second
