// Package mongo stores items as documents in a MongoDB collection. The
// document _id is the item's UUID in string form; prices are Decimal128.
package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	mongodrv "go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/x/mongo/driver/topology"

	"github.com/sbecerek/CatalogAPI/pkg/docstore"
	itemdomain "github.com/sbecerek/CatalogAPI/services/item/domain"
	"github.com/sbecerek/CatalogAPI/services/item/domain/models"
)

type document struct {
	ID          string               `bson:"_id"`
	Name        string               `bson:"name"`
	Description string               `bson:"description,omitempty"`
	Price       primitive.Decimal128 `bson:"price"`
	CreatedDate time.Time            `bson:"createdDate"`
}

// ItemRepository implements repositories.ItemsRepository on a MongoDB collection.
type ItemRepository struct {
	coll *mongodrv.Collection
}

func NewItemRepository(client *docstore.Client, collection string) *ItemRepository {
	return &ItemRepository{coll: client.Collection(collection)}
}

func (r *ItemRepository) ListItems(ctx context.Context) ([]*models.Item, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdDate", Value: 1}, {Key: "_id", Value: 1}})
	cur, err := r.coll.Find(ctx, bson.D{}, opts)
	if err != nil {
		return nil, classify("list items", err)
	}

	var docs []document
	if err := cur.All(ctx, &docs); err != nil {
		return nil, classify("list items", err)
	}

	items := make([]*models.Item, 0, len(docs))
	for _, d := range docs {
		item, err := fromDocument(d)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, nil
}

func (r *ItemRepository) GetItem(ctx context.Context, id uuid.UUID) (*models.Item, bool, error) {
	var d document
	err := r.coll.FindOne(ctx, bson.D{{Key: "_id", Value: id.String()}}).Decode(&d)
	if err != nil {
		if errors.Is(err, mongodrv.ErrNoDocuments) {
			return nil, false, nil
		}
		return nil, false, classify("get item", err)
	}
	item, err := fromDocument(d)
	if err != nil {
		return nil, false, err
	}
	return item, true, nil
}

func (r *ItemRepository) CreateItem(ctx context.Context, item *models.Item) error {
	d, err := toDocument(item)
	if err != nil {
		return err
	}
	if _, err := r.coll.InsertOne(ctx, d); err != nil {
		if mongodrv.IsDuplicateKeyError(err) {
			return fmt.Errorf("insert item %s: %w", item.ID, itemdomain.ErrItemAlreadyExists)
		}
		return classify("insert item", err)
	}
	return nil
}

func (r *ItemRepository) UpdateItem(ctx context.Context, item *models.Item) error {
	d, err := toDocument(item)
	if err != nil {
		return err
	}
	res, err := r.coll.ReplaceOne(ctx, bson.D{{Key: "_id", Value: d.ID}}, d)
	if err != nil {
		return classify("update item", err)
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("update item %s: %w", item.ID, itemdomain.ErrItemNotFound)
	}
	return nil
}

func (r *ItemRepository) DeleteItem(ctx context.Context, id uuid.UUID) error {
	if _, err := r.coll.DeleteOne(ctx, bson.D{{Key: "_id", Value: id.String()}}); err != nil {
		return classify("delete item", err)
	}
	return nil
}

func toDocument(item *models.Item) (document, error) {
	price, err := primitive.ParseDecimal128(item.Price.String())
	if err != nil {
		return document{}, fmt.Errorf("encode price of item %s: %w", item.ID, err)
	}
	return document{
		ID:          item.ID.String(),
		Name:        item.Name.String(),
		Description: item.Description,
		Price:       price,
		CreatedDate: item.CreatedDate.UTC(),
	}, nil
}

func fromDocument(d document) (*models.Item, error) {
	id, err := uuid.Parse(d.ID)
	if err != nil {
		return nil, fmt.Errorf("decode id %q: %w", d.ID, err)
	}
	price, err := decimal.NewFromString(d.Price.String())
	if err != nil {
		return nil, fmt.Errorf("decode price of item %s: %w", id, err)
	}
	return models.NewItem(id, models.ItemName(d.Name), d.Description, price, d.CreatedDate.UTC()), nil
}

// classify wraps err with ErrStorageUnavailable for timeouts, network failures
// and failed server selection.
func classify(op string, err error) error {
	if isUnavailable(err) {
		return fmt.Errorf("%s: %w: %w", op, itemdomain.ErrStorageUnavailable, err)
	}
	return fmt.Errorf("%s: %w", op, err)
}

func isUnavailable(err error) bool {
	var selErr topology.ServerSelectionError
	return mongodrv.IsTimeout(err) ||
		mongodrv.IsNetworkError(err) ||
		errors.Is(err, mongodrv.ErrClientDisconnected) ||
		errors.Is(err, context.DeadlineExceeded) ||
		errors.As(err, &selErr)
}
