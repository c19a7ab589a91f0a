package database

import (
	"context"
	"fmt"

	"github.com/xavierca1/georges-crm-sync/internal/config"
	"github.com/xavierca1/georges-crm-sync/internal/entity"
	"go.mongodb.org/mongo-driver/v2/mongo/readpref"
)

// UserStore agrupa o repositório escolhido com o ping e o close da conexão por trás dele.
type UserStore struct {
	Name  string
	Repo  entity.UserRepositoryInterface
	ping  func(ctx context.Context) error
	close func(ctx context.Context) error
}

func (s *UserStore) Ping(ctx context.Context) error {
	return s.ping(ctx)
}

func (s *UserStore) Close(ctx context.Context) error {
	return s.close(ctx)
}

func OpenUserStore(ctx context.Context, cfg config.Config) (*UserStore, error) {
	switch cfg.UserStore {
	case config.StoreMongo:
		client, err := NewMongoConnection(ctx, cfg.MongoURL)
		if err != nil {
			return nil, err
		}
		return &UserStore{
			Name:  config.StoreMongo,
			Repo:  NewMongoUserRepository(client.Database(cfg.MongoDB)),
			ping:  func(ctx context.Context) error { return client.Ping(ctx, readpref.Primary()) },
			close: client.Disconnect,
		}, nil

	case config.StorePostgres:
		db, err := NewDBConnection(cfg.DatabaseURL)
		if err != nil {
			return nil, err
		}
		return &UserStore{
			Name:  config.StorePostgres,
			Repo:  NewPostgresUserRepository(db),
			ping:  db.PingContext,
			close: func(context.Context) error { return db.Close() },
		}, nil

	default:
		return nil, fmt.Errorf("user store desconhecido: %q", cfg.UserStore)
	}
}
