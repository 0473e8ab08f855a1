package memory_test

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/sbecerek/CatalogAPI/services/item/domain/repositories"
	"github.com/sbecerek/CatalogAPI/services/item/infrastructure/persistence/memory"
	"github.com/sbecerek/CatalogAPI/services/item/infrastructure/persistence/repotest"
)

func TestItemRepositoryContract(t *testing.T) {
	suite.Run(t, &repotest.ItemsRepositorySuite{
		NewRepository: func(*testing.T) repositories.ItemsRepository {
			return memory.NewItemRepository()
		},
	})
}

func TestItemRepository_ConcurrentCreates(t *testing.T) {
	repo := memory.NewItemRepository()
	ctx := context.Background()

	var wg sync.WaitGroup
	for range 50 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.NoError(t, repo.CreateItem(ctx, repotest.NewTestItem("Potion", "5")))
		}()
	}
	wg.Wait()

	items, err := repo.ListItems(ctx)
	require.NoError(t, err)
	require.Len(t, items, 50)
}

func TestItemRepository_CancelledContext(t *testing.T) {
	repo := memory.NewItemRepository()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := repo.ListItems(ctx)
	require.ErrorIs(t, err, context.Canceled)
	require.ErrorIs(t, repo.Ping(ctx), context.Canceled)
	require.NoError(t, repo.Ping(context.Background()))
}
