// Package repotest holds the behavioural contract every ItemsRepository
// implementation must satisfy. Backends run it from their own tests:
//
//	suite.Run(t, &repotest.ItemsRepositorySuite{
//		NewRepository: func(t *testing.T) repositories.ItemsRepository { return memory.NewItemRepository() },
//	})
package repotest

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"

	itemdomain "github.com/sbecerek/CatalogAPI/services/item/domain"
	"github.com/sbecerek/CatalogAPI/services/item/domain/models"
	"github.com/sbecerek/CatalogAPI/services/item/domain/repositories"
)

// ItemsRepositorySuite runs the repository contract against the store returned
// by NewRepository, which is called before every test and must yield an empty store.
type ItemsRepositorySuite struct {
	suite.Suite
	NewRepository func(t *testing.T) repositories.ItemsRepository

	repo repositories.ItemsRepository
	ctx  context.Context
}

func (s *ItemsRepositorySuite) SetupTest() {
	s.ctx = context.Background()
	s.repo = s.NewRepository(s.T())
}

// NewTestItem builds a valid item. createdDate is truncated to milliseconds,
// the coarsest precision among the supported stores.
func NewTestItem(name string, price string) *models.Item {
	return models.NewItem(
		uuid.New(),
		models.ItemName(name),
		"A "+name,
		decimal.RequireFromString(price),
		time.Now().UTC().Truncate(time.Millisecond),
	)
}

func (s *ItemsRepositorySuite) requireSameItem(want, got *models.Item) {
	s.Require().NotNil(got)
	s.Equal(want.ID, got.ID)
	s.Equal(want.Name, got.Name)
	s.Equal(want.Description, got.Description)
	s.True(want.Price.Equal(got.Price), "price: want %s, got %s", want.Price, got.Price)
	s.True(want.CreatedDate.Equal(got.CreatedDate), "createdDate: want %s, got %s", want.CreatedDate, got.CreatedDate)
}

func (s *ItemsRepositorySuite) TestListItems_EmptyStore() {
	items, err := s.repo.ListItems(s.ctx)
	s.Require().NoError(err)
	s.NotNil(items)
	s.Empty(items)
}

func (s *ItemsRepositorySuite) TestCreateThenGet() {
	item := NewTestItem("Potion", "5")
	s.Require().NoError(s.repo.CreateItem(s.ctx, item))

	got, found, err := s.repo.GetItem(s.ctx, item.ID)
	s.Require().NoError(err)
	s.Require().True(found)
	s.requireSameItem(item, got)
}

func (s *ItemsRepositorySuite) TestCreate_FractionalPriceAndEmptyDescription() {
	item := NewTestItem("Bronze sword", "12.5")
	item.Description = ""
	s.Require().NoError(s.repo.CreateItem(s.ctx, item))

	got, found, err := s.repo.GetItem(s.ctx, item.ID)
	s.Require().NoError(err)
	s.Require().True(found)
	s.requireSameItem(item, got)
}

func (s *ItemsRepositorySuite) TestGetItem_Missing() {
	got, found, err := s.repo.GetItem(s.ctx, uuid.New())
	s.Require().NoError(err)
	s.False(found)
	s.Nil(got)
}

func (s *ItemsRepositorySuite) TestCreateItem_DuplicateID() {
	item := NewTestItem("Potion", "5")
	s.Require().NoError(s.repo.CreateItem(s.ctx, item))

	dup := NewTestItem("Antidote", "7")
	dup.ID = item.ID
	err := s.repo.CreateItem(s.ctx, dup)
	s.Require().ErrorIs(err, itemdomain.ErrItemAlreadyExists)

	got, _, err := s.repo.GetItem(s.ctx, item.ID)
	s.Require().NoError(err)
	s.requireSameItem(item, got)
}

func (s *ItemsRepositorySuite) TestUpdateItem_ReplacesFields() {
	item := NewTestItem("Potion", "5")
	s.Require().NoError(s.repo.CreateItem(s.ctx, item))

	updated := item.WithChanges(models.ItemName("Hi-Potion"), decimal.NewFromInt(9))
	updated.Description = "Restores more HP"
	s.Require().NoError(s.repo.UpdateItem(s.ctx, updated))

	got, found, err := s.repo.GetItem(s.ctx, item.ID)
	s.Require().NoError(err)
	s.Require().True(found)
	s.requireSameItem(updated, got)
	s.True(item.CreatedDate.Equal(got.CreatedDate))
}

func (s *ItemsRepositorySuite) TestUpdateItem_Missing() {
	err := s.repo.UpdateItem(s.ctx, NewTestItem("Ghost", "3"))
	s.Require().ErrorIs(err, itemdomain.ErrItemNotFound)

	items, err := s.repo.ListItems(s.ctx)
	s.Require().NoError(err)
	s.Empty(items)
}

func (s *ItemsRepositorySuite) TestDeleteItem_RemovesItem() {
	item := NewTestItem("Potion", "5")
	s.Require().NoError(s.repo.CreateItem(s.ctx, item))
	s.Require().NoError(s.repo.DeleteItem(s.ctx, item.ID))

	_, found, err := s.repo.GetItem(s.ctx, item.ID)
	s.Require().NoError(err)
	s.False(found)
}

func (s *ItemsRepositorySuite) TestDeleteItem_MissingIsNoop() {
	s.Require().NoError(s.repo.DeleteItem(s.ctx, uuid.New()))

	item := NewTestItem("Potion", "5")
	s.Require().NoError(s.repo.CreateItem(s.ctx, item))
	s.Require().NoError(s.repo.DeleteItem(s.ctx, item.ID))
	s.Require().NoError(s.repo.DeleteItem(s.ctx, item.ID))
}

func (s *ItemsRepositorySuite) TestListItems_ReturnsEveryItem() {
	want := map[uuid.UUID]*models.Item{}
	for _, it := range []*models.Item{
		NewTestItem("Potion", "5"),
		NewTestItem("Antidote", "7"),
		NewTestItem("Iron Sword", "20"),
	} {
		s.Require().NoError(s.repo.CreateItem(s.ctx, it))
		want[it.ID] = it
	}

	items, err := s.repo.ListItems(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(items, len(want))
	for _, got := range items {
		w, ok := want[got.ID]
		s.Require().True(ok, "unexpected item %s", got.ID)
		s.requireSameItem(w, got)
	}
}

func (s *ItemsRepositorySuite) TestReturnedItemsAreDetached() {
	item := NewTestItem("Potion", "5")
	s.Require().NoError(s.repo.CreateItem(s.ctx, item))
	item.Name = models.ItemName("Mutated after create")

	got, _, err := s.repo.GetItem(s.ctx, item.ID)
	s.Require().NoError(err)
	s.Equal(models.ItemName("Potion"), got.Name)

	got.Name = models.ItemName("Mutated after get")
	again, _, err := s.repo.GetItem(s.ctx, item.ID)
	s.Require().NoError(err)
	s.Equal(models.ItemName("Potion"), again.Name)
}
