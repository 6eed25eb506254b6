package bootstrap

import (
	"context"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"newsprep/internal/config"
	mysqlClient "newsprep/internal/platform/mysql"
	rabbitmqClient "newsprep/internal/platform/rabbitmq"
	redisClient "newsprep/internal/platform/redis"
	"newsprep/internal/storage"
	"newsprep/internal/worker"
)

// App wires configuration, storage and the optional platform dependencies.
// Redis and RabbitMQ are optional: an empty address in config leaves the
// field nil and the serving paths degrade (no cache, synchronous ingest).
type App struct {
	Config           *config.Config
	Store            storage.Store
	DB               *gorm.DB      // nil for the memory driver
	Redis            *redis.Client // nil when the cache is disabled
	MQConn           *amqp.Connection
	ArticlePublisher *rabbitmqClient.ArticlePublisher
	IngestWorker     *worker.ArticleIngestWorker

	StartedAt time.Time
}

func New(ctx context.Context) (*App, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config failed: %w", err)
	}
	return NewWithConfig(ctx, cfg)
}

func NewWithConfig(ctx context.Context, cfg *config.Config) (*App, error) {
	app := &App{
		Config:    cfg,
		StartedAt: time.Now(),
	}

	switch cfg.Storage.Driver {
	case config.StorageDriverMySQL:
		db, err := mysqlClient.New(ctx, cfg.MySQLDSN())
		if err != nil {
			return nil, err
		}
		app.DB = db
		store := storage.NewGormStore(db)
		if err := store.Migrate(); err != nil {
			_ = app.Close()
			return nil, fmt.Errorf("auto migrate tables failed: %w", err)
		}
		app.Store = store
	case config.StorageDriverMemory, "":
		app.Store = storage.NewMemoryStore()
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.Storage.Driver)
	}
	log.Info().Str("driver", cfg.Storage.Driver).Msg("storage ready")

	if cfg.Redis.Addr != "" {
		client, err := redisClient.New(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			_ = app.Close()
			return nil, err
		}
		app.Redis = client
		log.Info().Str("addr", cfg.Redis.Addr).Msg("headline cache enabled")
	}

	if cfg.RabbitMQ.URL != "" {
		conn, err := rabbitmqClient.New(cfg.RabbitMQ.URL)
		if err != nil {
			_ = app.Close()
			return nil, err
		}
		app.MQConn = conn
		app.ArticlePublisher = rabbitmqClient.NewArticlePublisher(conn, cfg.RabbitMQ.ArticleIngestQueue)
		app.IngestWorker = worker.NewArticleIngestWorker(conn, app.Store, cfg.RabbitMQ.ArticleIngestQueue)
		if err := app.IngestWorker.Start(ctx); err != nil {
			_ = app.Close()
			return nil, fmt.Errorf("start ingest worker failed: %w", err)
		}
		log.Info().Str("queue", cfg.RabbitMQ.ArticleIngestQueue).Msg("article ingest worker started")
	}

	return app, nil
}

func (a *App) Close() error {
	var closeErr error
	if a.IngestWorker != nil {
		a.IngestWorker.Close()
	}
	if a.MQConn != nil {
		if err := a.MQConn.Close(); err != nil {
			closeErr = err
		}
	}
	if a.Redis != nil {
		if err := a.Redis.Close(); err != nil {
			closeErr = err
		}
	}
	if a.DB != nil {
		sqlDB, err := a.DB.DB()
		if err == nil {
			if err := sqlDB.Close(); err != nil {
				closeErr = err
			}
		}
	}
	return closeErr
}
