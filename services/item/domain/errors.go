package domain

import "errors"

// Sentinel errors for the item domain. Use errors.Is() to check these.
var (
	// ErrItemNotFound indicates the requested item does not exist.
	ErrItemNotFound = errors.New("item not found")

	// ErrItemAlreadyExists indicates an item with the same id is already stored.
	// Ids are generated server-side, so this points at an id-generation or storage bug.
	ErrItemAlreadyExists = errors.New("item already exists")

	// ErrInvalidItem indicates a create or update request violates item constraints.
	ErrInvalidItem = errors.New("invalid item")

	// ErrStorageUnavailable indicates the storage backend could not be reached
	// or did not answer in time. Never converted to ErrItemNotFound.
	ErrStorageUnavailable = errors.New("item storage unavailable")
)
