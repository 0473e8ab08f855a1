package services

import (
	"fmt"

	"github.com/sbecerek/CatalogAPI/pkg/app"
	"github.com/sbecerek/CatalogAPI/pkg/config"
	"github.com/sbecerek/CatalogAPI/pkg/httpx"
	"github.com/sbecerek/CatalogAPI/services/item/domain/repositories"
	"github.com/sbecerek/CatalogAPI/services/item/infrastructure/persistence/memory"
	"github.com/sbecerek/CatalogAPI/services/item/infrastructure/persistence/mongo"
	"github.com/sbecerek/CatalogAPI/services/item/infrastructure/persistence/postgres"
	"github.com/sbecerek/CatalogAPI/services/item/infrastructure/persistence/redis"
)

// Services is the application-layer service container for this bounded context.
// It wires domain services with their infrastructure implementations.
type Services struct {
	Item *ItemService
	// StorageCheck probes the backend behind Item for the readiness endpoint.
	StorageCheck httpx.NamedCheck
}

// New wires all item application services with the storage backend selected
// by a.Config.StorageBackend. The matching handle on a must be set.
func New(a *app.Application, opts ...Option) (*Services, error) {
	repo, check, err := newRepository(a)
	if err != nil {
		return nil, err
	}
	return &Services{
		Item:         NewItemService(repo, a.Logger, opts...),
		StorageCheck: check,
	}, nil
}

func newRepository(a *app.Application) (repositories.ItemsRepository, httpx.NamedCheck, error) {
	switch backend := a.Config.StorageBackend; backend {
	case config.StoragePostgres:
		if a.Db == nil {
			return nil, httpx.NamedCheck{}, fmt.Errorf("item services: %s backend without database handle", backend)
		}
		return postgres.NewItemRepository(a.Db, a.EventBus), httpx.NamedCheck{Name: "postgres", Checker: a.Db}, nil
	case config.StorageMongo:
		if a.Mongo == nil {
			return nil, httpx.NamedCheck{}, fmt.Errorf("item services: %s backend without mongo client", backend)
		}
		return mongo.NewItemRepository(a.Mongo, a.Config.MongoCollection), httpx.NamedCheck{Name: "mongodb", Checker: a.Mongo}, nil
	case config.StorageRedis:
		if a.Redis == nil {
			return nil, httpx.NamedCheck{}, fmt.Errorf("item services: %s backend without redis client", backend)
		}
		return redis.NewItemRepository(a.Redis, a.Config.RedisItemKey), httpx.NamedCheck{Name: "redis", Checker: a.Redis}, nil
	case config.StorageMemory:
		repo := memory.NewItemRepository()
		return repo, httpx.NamedCheck{Name: "memory", Checker: repo}, nil
	default:
		return nil, httpx.NamedCheck{}, fmt.Errorf("item services: unknown storage backend %q", backend)
	}
}
