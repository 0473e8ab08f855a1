package repositories

import (
	"context"

	"github.com/google/uuid"

	"github.com/sbecerek/CatalogAPI/services/item/domain/models"
)

// ItemsRepository is the persistence interface for the Item aggregate.
// The domain layer owns this interface; infrastructure implements it against
// any backend (relational, document, key-value, in-memory).
//
// Every method reports connectivity failures and timeouts wrapped in
// domain.ErrStorageUnavailable.
type ItemsRepository interface {
	// ListItems returns every stored item in store-defined order.
	// An empty collection yields an empty slice, not an error.
	ListItems(ctx context.Context) ([]*models.Item, error)

	// GetItem looks an item up by id. found is false when no item has that id.
	GetItem(ctx context.Context, id uuid.UUID) (item *models.Item, found bool, err error)

	// CreateItem inserts a fully populated item. Returns domain.ErrItemAlreadyExists
	// if an item with the same id is already stored.
	CreateItem(ctx context.Context, item *models.Item) error

	// UpdateItem replaces the stored item matching item.ID.
	// Returns domain.ErrItemNotFound if no such item exists.
	UpdateItem(ctx context.Context, item *models.Item) error

	// DeleteItem removes the item with the given id. Deleting an absent id succeeds.
	DeleteItem(ctx context.Context, id uuid.UUID) error
}
