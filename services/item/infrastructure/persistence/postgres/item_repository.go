package postgres

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"fmt"
	"net"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"

	"github.com/sbecerek/CatalogAPI/pkg/database"
	"github.com/sbecerek/CatalogAPI/pkg/events"
	itemdomain "github.com/sbecerek/CatalogAPI/services/item/domain"
	domainevents "github.com/sbecerek/CatalogAPI/services/item/domain/events"
	"github.com/sbecerek/CatalogAPI/services/item/domain/models"
	"github.com/sbecerek/CatalogAPI/services/item/infrastructure/persistence/postgres/db"
)

const uniqueViolation = "23505"

// ItemRepository implements repositories.ItemsRepository against PostgreSQL.
type ItemRepository struct {
	db  *database.Database
	bus *events.EventBus
	now func() time.Time
}

// NewItemRepository returns an ItemRepository backed by the given connection pool
// and event bus. When bus is non-nil, every write also publishes the matching
// item lifecycle event within the same transaction.
func NewItemRepository(database *database.Database, bus *events.EventBus) *ItemRepository {
	return &ItemRepository{db: database, bus: bus, now: time.Now}
}

// ListItems returns every item ordered by creation date.
func (r *ItemRepository) ListItems(ctx context.Context) ([]*models.Item, error) {
	rows, err := db.New(r.db.DB()).ListItems(ctx)
	if err != nil {
		return nil, classify("list items", err)
	}

	items := make([]*models.Item, 0, len(rows))
	for _, row := range rows {
		item, err := rowToItem(row)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, nil
}

// GetItem retrieves an Item by ID. found is false when no row matches.
func (r *ItemRepository) GetItem(ctx context.Context, id uuid.UUID) (*models.Item, bool, error) {
	row, err := db.New(r.db.DB()).GetItem(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, false, nil
		}
		return nil, false, classify("get item", err)
	}
	item, err := rowToItem(row)
	if err != nil {
		return nil, false, err
	}
	return item, true, nil
}

// CreateItem persists a new Item and publishes an ItemCreatedEvent within the same transaction.
// Returns ErrItemAlreadyExists on primary key violations.
func (r *ItemRepository) CreateItem(ctx context.Context, item *models.Item) error {
	return r.withTx(ctx, "create item", func(tx *sql.Tx) error {
		if err := db.New(tx).InsertItem(ctx, db.InsertItemParams{
			ID:          item.ID,
			Name:        item.Name.String(),
			Description: nullable(item.Description),
			Price:       item.Price.String(),
			CreatedDate: item.CreatedDate,
		}); err != nil {
			var pgErr *pgconn.PgError
			if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
				return fmt.Errorf("insert item %s: %w", item.ID, itemdomain.ErrItemAlreadyExists)
			}
			return classify("insert item", err)
		}

		eventID := uuid.New()
		return r.publish(ctx, tx, domainevents.TopicItemCreated, eventID, domainevents.ItemCreatedEvent{
			EventID:     eventID,
			Version:     domainevents.SchemaVersion,
			ItemID:      item.ID,
			Name:        item.Name.String(),
			Price:       item.Price,
			CreatedDate: item.CreatedDate,
		})
	})
}

// UpdateItem replaces name, description and price of an existing Item.
// Returns ErrItemNotFound when no row matches.
func (r *ItemRepository) UpdateItem(ctx context.Context, item *models.Item) error {
	return r.withTx(ctx, "update item", func(tx *sql.Tx) error {
		affected, err := db.New(tx).UpdateItem(ctx, db.UpdateItemParams{
			ID:          item.ID,
			Name:        item.Name.String(),
			Description: nullable(item.Description),
			Price:       item.Price.String(),
		})
		if err != nil {
			return classify("update item", err)
		}
		if affected == 0 {
			return fmt.Errorf("update item %s: %w", item.ID, itemdomain.ErrItemNotFound)
		}

		eventID := uuid.New()
		return r.publish(ctx, tx, domainevents.TopicItemUpdated, eventID, domainevents.ItemUpdatedEvent{
			EventID:    eventID,
			Version:    domainevents.SchemaVersion,
			ItemID:     item.ID,
			Name:       item.Name.String(),
			Price:      item.Price,
			OccurredAt: r.now().UTC(),
		})
	})
}

// DeleteItem removes an item by ID. Deleting an absent id is a no-op and publishes nothing.
func (r *ItemRepository) DeleteItem(ctx context.Context, id uuid.UUID) error {
	return r.withTx(ctx, "delete item", func(tx *sql.Tx) error {
		affected, err := db.New(tx).DeleteItem(ctx, id)
		if err != nil {
			return classify("delete item", err)
		}
		if affected == 0 {
			return nil
		}

		eventID := uuid.New()
		return r.publish(ctx, tx, domainevents.TopicItemDeleted, eventID, domainevents.ItemDeletedEvent{
			EventID:    eventID,
			Version:    domainevents.SchemaVersion,
			ItemID:     id,
			OccurredAt: r.now().UTC(),
		})
	})
}

// withTx runs fn in a transaction and classifies begin and commit failures.
// Errors already carrying a domain sentinel are returned as they are.
func (r *ItemRepository) withTx(ctx context.Context, op string, fn func(tx *sql.Tx) error) error {
	err := r.db.WithTx(ctx, fn)
	if err == nil || hasSentinel(err) {
		return err
	}
	return classify(op, err)
}

// publish writes event to the outbox through tx. No-op without an event bus.
func (r *ItemRepository) publish(ctx context.Context, tx *sql.Tx, topic string, eventID uuid.UUID, event any) error {
	if r.bus == nil {
		return nil
	}

	msg, err := events.NewMessage(ctx, eventID.String(), domainevents.SchemaVersion, event)
	if err != nil {
		return fmt.Errorf("publish %s: %w", topic, err)
	}
	p, err := r.bus.NewTxPublisher(tx)
	if err != nil {
		return fmt.Errorf("publish %s: %w", topic, err)
	}
	if err := p.Publish(topic, msg); err != nil {
		return fmt.Errorf("publish %s: %w", topic, err)
	}
	return nil
}

// rowToItem maps a db.ItemItem to a domain models.Item.
func rowToItem(row db.ItemItem) (*models.Item, error) {
	price, err := decimal.NewFromString(row.Price)
	if err != nil {
		return nil, fmt.Errorf("decode price of item %s: %w", row.ID, err)
	}
	return models.NewItem(
		row.ID,
		models.ItemName(row.Name),
		row.Description.String,
		price,
		row.CreatedDate.UTC(),
	), nil
}

func nullable(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

// classify wraps err with ErrStorageUnavailable when it signals a lost or slow connection.
func classify(op string, err error) error {
	if isUnavailable(err) {
		return fmt.Errorf("%s: %w: %w", op, itemdomain.ErrStorageUnavailable, err)
	}
	return fmt.Errorf("%s: %w", op, err)
}

func hasSentinel(err error) bool {
	return errors.Is(err, itemdomain.ErrStorageUnavailable) ||
		errors.Is(err, itemdomain.ErrItemAlreadyExists) ||
		errors.Is(err, itemdomain.ErrItemNotFound) ||
		errors.Is(err, itemdomain.ErrInvalidItem)
}

func isUnavailable(err error) bool {
	var connErr *pgconn.ConnectError
	var netErr net.Error
	return errors.Is(err, context.DeadlineExceeded) ||
		errors.Is(err, driver.ErrBadConn) ||
		errors.Is(err, sql.ErrConnDone) ||
		pgconn.Timeout(err) ||
		errors.As(err, &connErr) ||
		errors.As(err, &netErr)
}
