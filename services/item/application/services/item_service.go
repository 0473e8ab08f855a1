package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"

	"github.com/sbecerek/CatalogAPI/pkg/logger"
	itemdomain "github.com/sbecerek/CatalogAPI/services/item/domain"
	"github.com/sbecerek/CatalogAPI/services/item/domain/models"
	"github.com/sbecerek/CatalogAPI/services/item/domain/repositories"
	domainsvcs "github.com/sbecerek/CatalogAPI/services/item/domain/services"
)

const meterName = "github.com/sbecerek/CatalogAPI/services/item"

// CreateItemInput carries the caller-supplied fields of a new item.
type CreateItemInput struct {
	Name        string
	Description string
	Price       decimal.Decimal
}

// UpdateItemInput carries the fields of an update request. Description is
// accepted for wire compatibility but not applied.
type UpdateItemInput struct {
	Name        string
	Description string
	Price       decimal.Decimal
}

// ItemService orchestrates the item use cases on top of an ItemsRepository.
// It holds no mutable state and is safe for concurrent use.
// Event publishing is handled by the repository layer (outbox pattern).
type ItemService struct {
	repo   repositories.ItemsRepository
	log    logger.Logger
	now    func() time.Time
	newID  func() uuid.UUID
	listed metric.Int64Histogram
}

// Option customises an ItemService.
type Option func(*ItemService)

// WithClock overrides the source of createdDate.
func WithClock(now func() time.Time) Option {
	return func(s *ItemService) { s.now = now }
}

// WithIDGenerator overrides the source of new item ids.
func WithIDGenerator(newID func() uuid.UUID) Option {
	return func(s *ItemService) { s.newID = newID }
}

// NewItemService returns an ItemService wired with the given repository.
func NewItemService(repo repositories.ItemsRepository, log logger.Logger, opts ...Option) *ItemService {
	s := &ItemService{
		repo:  repo,
		log:   log,
		now:   time.Now,
		newID: uuid.New,
	}
	for _, opt := range opts {
		opt(s)
	}

	hist, err := otel.Meter(meterName).Int64Histogram(
		"catalog.items.listed",
		metric.WithDescription("Number of items returned by list requests"),
		metric.WithUnit("{item}"),
	)
	if err != nil {
		log.Warn("item service: histogram unavailable", "error", err)
	}
	s.listed = hist
	return s
}

// List returns every stored item. When nameToMatch is non-blank, only items
// whose name contains it case-insensitively are kept.
func (s *ItemService) List(ctx context.Context, nameToMatch string) ([]*models.Item, error) {
	items, err := s.repo.ListItems(ctx)
	if err != nil {
		return nil, fmt.Errorf("list items: %w", err)
	}

	if strings.TrimSpace(nameToMatch) != "" {
		filtered := make([]*models.Item, 0, len(items))
		for _, it := range items {
			if it.Name.ContainsFold(nameToMatch) {
				filtered = append(filtered, it)
			}
		}
		items = filtered
	}

	s.log.InfoContext(ctx, "items retrieved",
		"retrieved_at", s.now().UTC().Format(time.RFC3339Nano),
		"count", len(items),
	)
	if s.listed != nil {
		s.listed.Record(ctx, int64(len(items)))
	}
	return items, nil
}

// Get returns the item with the given id or ErrItemNotFound.
func (s *ItemService) Get(ctx context.Context, id uuid.UUID) (*models.Item, error) {
	item, found, err := s.repo.GetItem(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get item: %w", err)
	}
	if !found {
		return nil, fmt.Errorf("get item %s: %w", id, itemdomain.ErrItemNotFound)
	}
	return item, nil
}

// Create assigns a fresh id and the current instant, validates the result and
// persists it. Invalid input is reported as ErrInvalidItem before any repository call.
func (s *ItemService) Create(ctx context.Context, in CreateItemInput) (*models.Item, error) {
	name, err := models.NewItemName(in.Name)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", itemdomain.ErrInvalidItem, err)
	}

	// Millisecond precision is the finest every backend stores unchanged.
	item := models.NewItem(s.newID(), name, in.Description, in.Price, s.now().UTC().Truncate(time.Millisecond))
	if err := domainsvcs.ValidateItemForCreation(item); err != nil {
		return nil, fmt.Errorf("%w: %w", itemdomain.ErrInvalidItem, err)
	}

	if err := s.repo.CreateItem(ctx, item); err != nil {
		return nil, fmt.Errorf("create item: %w", err)
	}

	s.log.InfoContext(ctx, "item created", "item_id", item.ID)
	return item, nil
}

// Update replaces name and price of an existing item. id and createdDate are
// preserved; description is left as stored.
func (s *ItemService) Update(ctx context.Context, id uuid.UUID, in UpdateItemInput) error {
	name, err := models.NewItemName(in.Name)
	if err != nil {
		return fmt.Errorf("%w: %w", itemdomain.ErrInvalidItem, err)
	}
	if err := domainsvcs.ValidatePrice(in.Price); err != nil {
		return fmt.Errorf("%w: %w", itemdomain.ErrInvalidItem, err)
	}

	existing, err := s.Get(ctx, id)
	if err != nil {
		return err
	}

	if err := s.repo.UpdateItem(ctx, existing.WithChanges(name, in.Price)); err != nil {
		return fmt.Errorf("update item: %w", err)
	}
	return nil
}

// Delete removes an existing item. Returns ErrItemNotFound if no matching item exists.
func (s *ItemService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	if err := s.repo.DeleteItem(ctx, id); err != nil {
		return fmt.Errorf("delete item: %w", err)
	}
	return nil
}
