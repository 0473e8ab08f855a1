// Package memory provides a process-local ItemsRepository used by tests and
// local runs with STORAGE_BACKEND=memory. Contents are lost on restart.
package memory

import (
	"cmp"
	"context"
	"fmt"
	"slices"
	"sync"

	"github.com/google/uuid"

	itemdomain "github.com/sbecerek/CatalogAPI/services/item/domain"
	"github.com/sbecerek/CatalogAPI/services/item/domain/models"
)

// ItemRepository stores clones of items in a map guarded by a RWMutex.
type ItemRepository struct {
	mu    sync.RWMutex
	items map[uuid.UUID]*models.Item
}

func NewItemRepository() *ItemRepository {
	return &ItemRepository{items: make(map[uuid.UUID]*models.Item)}
}

// ListItems returns every item ordered by creation date, then id.
func (r *ItemRepository) ListItems(ctx context.Context) ([]*models.Item, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	items := make([]*models.Item, 0, len(r.items))
	for _, it := range r.items {
		items = append(items, it.Clone())
	}
	slices.SortFunc(items, func(a, b *models.Item) int {
		if c := a.CreatedDate.Compare(b.CreatedDate); c != 0 {
			return c
		}
		return cmp.Compare(a.ID.String(), b.ID.String())
	})
	return items, nil
}

func (r *ItemRepository) GetItem(ctx context.Context, id uuid.UUID) (*models.Item, bool, error) {
	if err := ctx.Err(); err != nil {
		return nil, false, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	it, ok := r.items[id]
	if !ok {
		return nil, false, nil
	}
	return it.Clone(), true, nil
}

func (r *ItemRepository) CreateItem(ctx context.Context, item *models.Item) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.items[item.ID]; exists {
		return fmt.Errorf("insert item %s: %w", item.ID, itemdomain.ErrItemAlreadyExists)
	}
	r.items[item.ID] = item.Clone()
	return nil
}

func (r *ItemRepository) UpdateItem(ctx context.Context, item *models.Item) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.items[item.ID]; !exists {
		return fmt.Errorf("update item %s: %w", item.ID, itemdomain.ErrItemNotFound)
	}
	r.items[item.ID] = item.Clone()
	return nil
}

func (r *ItemRepository) DeleteItem(ctx context.Context, id uuid.UUID) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.items, id)
	return nil
}

// Ping always succeeds unless ctx is done; the map has no remote dependency.
func (r *ItemRepository) Ping(ctx context.Context) error {
	return ctx.Err()
}
