// Package redis stores items in a single Redis hash: field = item id,
// value = JSON document. The hash key defaults to "catalog:items".
package redis

import (
	"cmp"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"slices"
	"time"

	"github.com/google/uuid"
	goredis "github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"

	"github.com/sbecerek/CatalogAPI/pkg/cache"
	itemdomain "github.com/sbecerek/CatalogAPI/services/item/domain"
	"github.com/sbecerek/CatalogAPI/services/item/domain/models"
)

// replaceIfExists overwrites a hash field only when it is already present.
var replaceIfExists = goredis.NewScript(`
if redis.call('HEXISTS', KEYS[1], ARGV[1]) == 1 then
  redis.call('HSET', KEYS[1], ARGV[1], ARGV[2])
  return 1
end
return 0
`)

type document struct {
	ID          uuid.UUID       `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	Price       decimal.Decimal `json:"price"`
	CreatedDate time.Time       `json:"createdDate"`
}

// ItemRepository implements repositories.ItemsRepository on a Redis hash.
type ItemRepository struct {
	client *cache.RedisClient
	key    string
}

func NewItemRepository(client *cache.RedisClient, key string) *ItemRepository {
	return &ItemRepository{client: client, key: key}
}

func (r *ItemRepository) ListItems(ctx context.Context) ([]*models.Item, error) {
	vals, err := r.client.Client().HVals(ctx, r.key).Result()
	if err != nil {
		return nil, classify("list items", err)
	}

	items := make([]*models.Item, 0, len(vals))
	for _, v := range vals {
		item, err := decode(v)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
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
	v, err := r.client.Client().HGet(ctx, r.key, id.String()).Result()
	if err != nil {
		if errors.Is(err, goredis.Nil) {
			return nil, false, nil
		}
		return nil, false, classify("get item", err)
	}
	item, err := decode(v)
	if err != nil {
		return nil, false, err
	}
	return item, true, nil
}

func (r *ItemRepository) CreateItem(ctx context.Context, item *models.Item) error {
	payload, err := encode(item)
	if err != nil {
		return err
	}
	created, err := r.client.Client().HSetNX(ctx, r.key, item.ID.String(), payload).Result()
	if err != nil {
		return classify("insert item", err)
	}
	if !created {
		return fmt.Errorf("insert item %s: %w", item.ID, itemdomain.ErrItemAlreadyExists)
	}
	return nil
}

func (r *ItemRepository) UpdateItem(ctx context.Context, item *models.Item) error {
	payload, err := encode(item)
	if err != nil {
		return err
	}
	replaced, err := replaceIfExists.Run(ctx, r.client.Client(), []string{r.key}, item.ID.String(), payload).Int()
	if err != nil {
		return classify("update item", err)
	}
	if replaced == 0 {
		return fmt.Errorf("update item %s: %w", item.ID, itemdomain.ErrItemNotFound)
	}
	return nil
}

func (r *ItemRepository) DeleteItem(ctx context.Context, id uuid.UUID) error {
	if err := r.client.Client().HDel(ctx, r.key, id.String()).Err(); err != nil {
		return classify("delete item", err)
	}
	return nil
}

func encode(item *models.Item) (string, error) {
	b, err := json.Marshal(document{
		ID:          item.ID,
		Name:        item.Name.String(),
		Description: item.Description,
		Price:       item.Price,
		CreatedDate: item.CreatedDate.UTC(),
	})
	if err != nil {
		return "", fmt.Errorf("encode item %s: %w", item.ID, err)
	}
	return string(b), nil
}

func decode(v string) (*models.Item, error) {
	var doc document
	if err := json.Unmarshal([]byte(v), &doc); err != nil {
		return nil, fmt.Errorf("decode item: %w", err)
	}
	return models.NewItem(doc.ID, models.ItemName(doc.Name), doc.Description, doc.Price, doc.CreatedDate), nil
}

// classify wraps err with ErrStorageUnavailable when Redis could not be reached in time.
func classify(op string, err error) error {
	if isUnavailable(err) {
		return fmt.Errorf("%s: %w: %w", op, itemdomain.ErrStorageUnavailable, err)
	}
	return fmt.Errorf("%s: %w", op, err)
}

func isUnavailable(err error) bool {
	var netErr net.Error
	return errors.Is(err, context.DeadlineExceeded) ||
		errors.Is(err, goredis.ErrClosed) ||
		errors.As(err, &netErr)
}
