//go:build integration

package redis_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/sbecerek/CatalogAPI/pkg/cache"
	"github.com/sbecerek/CatalogAPI/pkg/testutil/containers"
	"github.com/sbecerek/CatalogAPI/services/item/domain/repositories"
	"github.com/sbecerek/CatalogAPI/services/item/infrastructure/persistence/redis"
	"github.com/sbecerek/CatalogAPI/services/item/infrastructure/persistence/repotest"
)

func TestRedisItemRepositoryContract(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	rc := containers.NewRedisContainer(t)
	client := cache.NewFromClient(rc.Client)

	suite.Run(t, &repotest.ItemsRepositorySuite{
		NewRepository: func(t *testing.T) repositories.ItemsRepository {
			require.NoError(t, rc.FlushAll(context.Background()))
			return redis.NewItemRepository(client, "catalog:items")
		},
	})
}

func TestRedisItemRepository_StoresJSONInHash(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	ctx := context.Background()
	rc := containers.NewRedisContainer(t)
	repo := redis.NewItemRepository(cache.NewFromClient(rc.Client), "catalog:items")

	item := repotest.NewTestItem("Potion", "12.5")
	require.NoError(t, repo.CreateItem(ctx, item))

	raw, err := rc.Client.HGet(ctx, "catalog:items", item.ID.String()).Result()
	require.NoError(t, err)
	require.Contains(t, raw, `"price":12.5`)
	require.Contains(t, raw, `"name":"Potion"`)
}
