package services

//go:generate mockgen -source=../../domain/repositories/item.go -destination=mocks/mocks.go -package=mocks ItemsRepository

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/sbecerek/CatalogAPI/pkg/logger"
	"github.com/sbecerek/CatalogAPI/services/item/application/services/mocks"
	itemdomain "github.com/sbecerek/CatalogAPI/services/item/domain"
	"github.com/sbecerek/CatalogAPI/services/item/domain/models"
)

var fixedNow = time.Date(2024, 5, 1, 10, 30, 0, 0, time.UTC)

func newItem(name string) *models.Item {
	return models.NewItem(uuid.New(), models.ItemName(name), "", decimal.NewFromInt(5), fixedNow.Add(-time.Hour))
}

func newService(t *testing.T) (*ItemService, *mocks.MockItemsRepository) {
	t.Helper()
	ctrl := gomock.NewController(t)
	repo := mocks.NewMockItemsRepository(ctrl)
	svc := NewItemService(repo, logger.Nop(), WithClock(func() time.Time { return fixedNow }))
	return svc, repo
}

func names(items []*models.Item) []string {
	out := make([]string, len(items))
	for i, it := range items {
		out[i] = it.Name.String()
	}
	return out
}

func TestItemService_List_FiltersCaseInsensitively(t *testing.T) {
	svc, repo := newService(t)
	repo.EXPECT().ListItems(gomock.Any()).Return([]*models.Item{
		newItem("Potion"), newItem("Poison"), newItem("Health Potion"),
	}, nil)

	items, err := svc.List(context.Background(), "Potion")
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"Potion", "Health Potion"}, names(items))
}

func TestItemService_List_LowercasePattern(t *testing.T) {
	svc, repo := newService(t)
	repo.EXPECT().ListItems(gomock.Any()).Return([]*models.Item{
		newItem("Potion"), newItem("HEALTH POTION"), newItem("Antidote"),
	}, nil)

	items, err := svc.List(context.Background(), "potion")
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"Potion", "HEALTH POTION"}, names(items))
}

func TestItemService_List_BlankPatternReturnsAll(t *testing.T) {
	for _, pattern := range []string{"", "   "} {
		svc, repo := newService(t)
		repo.EXPECT().ListItems(gomock.Any()).Return([]*models.Item{newItem("Potion"), newItem("Poison")}, nil)

		items, err := svc.List(context.Background(), pattern)
		require.NoError(t, err)
		assert.Len(t, items, 2)
	}
}

func TestItemService_List_LogsCount(t *testing.T) {
	var buf bytes.Buffer
	ctrl := gomock.NewController(t)
	repo := mocks.NewMockItemsRepository(ctrl)
	svc := NewItemService(repo, logger.NewWithWriter(&buf, "info"), WithClock(func() time.Time { return fixedNow }))
	repo.EXPECT().ListItems(gomock.Any()).Return([]*models.Item{newItem("Potion")}, nil)

	_, err := svc.List(context.Background(), "")
	require.NoError(t, err)

	var record map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &record))
	assert.Equal(t, "items retrieved", record["msg"])
	assert.Equal(t, float64(1), record["count"])
	assert.Equal(t, "2024-05-01T10:30:00Z", record["retrieved_at"])
}

func TestItemService_List_StorageUnavailable(t *testing.T) {
	svc, repo := newService(t)
	repo.EXPECT().ListItems(gomock.Any()).Return(nil, itemdomain.ErrStorageUnavailable)

	_, err := svc.List(context.Background(), "")
	require.ErrorIs(t, err, itemdomain.ErrStorageUnavailable)
}

func TestItemService_Get_NotFound(t *testing.T) {
	svc, repo := newService(t)
	id := uuid.New()
	repo.EXPECT().GetItem(gomock.Any(), id).Return(nil, false, nil)

	_, err := svc.Get(context.Background(), id)
	require.ErrorIs(t, err, itemdomain.ErrItemNotFound)
}

func TestItemService_Get_StorageErrorIsNotNotFound(t *testing.T) {
	svc, repo := newService(t)
	id := uuid.New()
	repo.EXPECT().GetItem(gomock.Any(), id).Return(nil, false, itemdomain.ErrStorageUnavailable)

	_, err := svc.Get(context.Background(), id)
	require.ErrorIs(t, err, itemdomain.ErrStorageUnavailable)
	assert.NotErrorIs(t, err, itemdomain.ErrItemNotFound)
}

func TestItemService_Create_AssignsIDAndCreatedDate(t *testing.T) {
	id := uuid.New()
	ctrl := gomock.NewController(t)
	repo := mocks.NewMockItemsRepository(ctrl)
	svc := NewItemService(repo, logger.Nop(),
		WithClock(func() time.Time { return fixedNow }),
		WithIDGenerator(func() uuid.UUID { return id }),
	)

	repo.EXPECT().CreateItem(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, item *models.Item) error {
		assert.Equal(t, id, item.ID)
		assert.Equal(t, fixedNow, item.CreatedDate)
		assert.Equal(t, "Potion", item.Name.String())
		assert.Equal(t, "Heals", item.Description)
		return nil
	})

	item, err := svc.Create(context.Background(), CreateItemInput{Name: "Potion", Description: "Heals", Price: decimal.NewFromInt(5)})
	require.NoError(t, err)
	assert.Equal(t, id, item.ID)
}

func TestItemService_Create_CreatedDateHasMillisecondPrecision(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mocks.NewMockItemsRepository(ctrl)
	clock := time.Date(2024, 5, 1, 10, 30, 1, 224105960, time.FixedZone("CEST", 2*3600))
	svc := NewItemService(repo, logger.Nop(), WithClock(func() time.Time { return clock }))

	var stored time.Time
	repo.EXPECT().CreateItem(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, item *models.Item) error {
		stored = item.CreatedDate
		return nil
	})

	item, err := svc.Create(context.Background(), CreateItemInput{Name: "Potion", Price: decimal.NewFromInt(5)})
	require.NoError(t, err)

	want := time.Date(2024, 5, 1, 8, 30, 1, 224000000, time.UTC)
	assert.True(t, want.Equal(item.CreatedDate), "got %s", item.CreatedDate)
	assert.True(t, want.Equal(stored), "stored %s", stored)
	assert.Equal(t, time.UTC, item.CreatedDate.Location())
}

func TestItemService_Create_InvalidInputSkipsRepository(t *testing.T) {
	cases := map[string]CreateItemInput{
		"price zero": {Name: "Potion", Price: decimal.Zero},
		"price 1001": {Name: "Potion", Price: decimal.NewFromInt(1001)},
		"blank name": {Name: "  ", Price: decimal.NewFromInt(5)},
		"empty name": {Name: "", Price: decimal.NewFromInt(5)},
		"fractional": {Name: "Potion", Price: decimal.RequireFromString("0.5")},
	}
	for name, in := range cases {
		t.Run(name, func(t *testing.T) {
			svc, _ := newService(t) // no EXPECT: any repository call fails the test
			_, err := svc.Create(context.Background(), in)
			require.ErrorIs(t, err, itemdomain.ErrInvalidItem)
		})
	}
}

func TestItemService_Create_ConflictPropagates(t *testing.T) {
	svc, repo := newService(t)
	repo.EXPECT().CreateItem(gomock.Any(), gomock.Any()).Return(itemdomain.ErrItemAlreadyExists)

	_, err := svc.Create(context.Background(), CreateItemInput{Name: "Potion", Price: decimal.NewFromInt(5)})
	require.ErrorIs(t, err, itemdomain.ErrItemAlreadyExists)
}

func TestItemService_Update_AppliesNameAndPriceOnly(t *testing.T) {
	svc, repo := newService(t)
	existing := newItem("Potion")
	existing.Description = "Heals"

	repo.EXPECT().GetItem(gomock.Any(), existing.ID).Return(existing, true, nil)
	repo.EXPECT().UpdateItem(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, item *models.Item) error {
		assert.Equal(t, existing.ID, item.ID)
		assert.Equal(t, existing.CreatedDate, item.CreatedDate)
		assert.Equal(t, "Hi-Potion", item.Name.String())
		assert.True(t, item.Price.Equal(decimal.NewFromInt(9)))
		assert.Equal(t, "Heals", item.Description)
		return nil
	})

	err := svc.Update(context.Background(), existing.ID, UpdateItemInput{
		Name: "Hi-Potion", Description: "ignored", Price: decimal.NewFromInt(9),
	})
	require.NoError(t, err)
}

func TestItemService_Update_NotFound(t *testing.T) {
	svc, repo := newService(t)
	id := uuid.New()
	repo.EXPECT().GetItem(gomock.Any(), id).Return(nil, false, nil)

	err := svc.Update(context.Background(), id, UpdateItemInput{Name: "Potion", Price: decimal.NewFromInt(5)})
	require.ErrorIs(t, err, itemdomain.ErrItemNotFound)
}

func TestItemService_Update_InvalidPriceSkipsRepository(t *testing.T) {
	svc, _ := newService(t)
	err := svc.Update(context.Background(), uuid.New(), UpdateItemInput{Name: "Potion", Price: decimal.NewFromInt(1001)})
	require.ErrorIs(t, err, itemdomain.ErrInvalidItem)
}

func TestItemService_Delete(t *testing.T) {
	svc, repo := newService(t)
	existing := newItem("Potion")

	gomock.InOrder(
		repo.EXPECT().GetItem(gomock.Any(), existing.ID).Return(existing, true, nil),
		repo.EXPECT().DeleteItem(gomock.Any(), existing.ID).Return(nil),
	)

	require.NoError(t, svc.Delete(context.Background(), existing.ID))
}

func TestItemService_Delete_NotFoundSkipsDelete(t *testing.T) {
	svc, repo := newService(t)
	id := uuid.New()
	repo.EXPECT().GetItem(gomock.Any(), id).Return(nil, false, nil)

	require.ErrorIs(t, svc.Delete(context.Background(), id), itemdomain.ErrItemNotFound)
}

func TestItemService_Delete_RepositoryError(t *testing.T) {
	svc, repo := newService(t)
	existing := newItem("Potion")
	repo.EXPECT().GetItem(gomock.Any(), existing.ID).Return(existing, true, nil)
	repo.EXPECT().DeleteItem(gomock.Any(), existing.ID).Return(errors.New("boom"))

	err := svc.Delete(context.Background(), existing.ID)
	require.EqualError(t, err, "delete item: boom")
}
