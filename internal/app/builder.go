package app

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/ThanathornKKU/catalog-service/internal/catalog"
	"github.com/ThanathornKKU/catalog-service/internal/config"
	"github.com/ThanathornKKU/catalog-service/internal/domain"
	kafkax "github.com/ThanathornKKU/catalog-service/internal/infra/broker/kafka"
	redisx "github.com/ThanathornKKU/catalog-service/internal/infra/cache/redis"
	"github.com/ThanathornKKU/catalog-service/internal/infra/database/postgres"
	"github.com/ThanathornKKU/catalog-service/internal/transport/web"
)

type App struct {
	config *config.Config
	server *web.Server
	log    *log.Logger
	repo   domain.ProductsRepo
	cache  domain.Cache
	events domain.Publisher
}

func Build(ctx context.Context) (*App, error) {
	base := log.New(os.Stdout, "[app] ", log.LstdFlags)

	serverLog := log.New(base.Writer(), base.Prefix()+"[server] ", base.Flags())
	pgLog := log.New(base.Writer(), base.Prefix()+"[postgres] ", base.Flags())
	redisLog := log.New(base.Writer(), base.Prefix()+"[redis] ", base.Flags())
	kafkaLog := log.New(base.Writer(), base.Prefix()+"[kafka] ", base.Flags())
	coreLog := log.New(base.Writer(), base.Prefix()+"[catalog] ", base.Flags())

	cfg, err := config.LoadFromEnv()
	if err != nil {
		return nil, fmt.Errorf("failed load config: %w", err)
	}
	base.Printf("\n  configuration: %s-------------------", cfg)

	base.Println("init PostgreSQL")
	pgRepo, err := postgres.NewPGRepo(ctx, pgLog, cfg.GetDSN(), cfg.DBScheme)
	if err != nil {
		return nil, fmt.Errorf("failed init postgres: %w", err)
	}
	base.Println("PostgreSQL is initialized")

	base.Println("init Redis")
	rc := redisx.New(redisx.Config{
		Addr:     cfg.RedisAddr,
		DB:       cfg.RedisDB,
		Password: cfg.RedisPassword,
	}, redisLog)
	if err := rc.Ping(ctx); err != nil {
		return nil, fmt.Errorf("failed init redis: %w", err)
	}
	base.Println("Redis is initialized")

	base.Println("init Kafka producer")
	producer := kafkax.New(kafkax.Config{
		Brokers: cfg.Brokers(),
		Topic:   cfg.KafkaTopic,
	}, kafkaLog)
	if err := producer.Ping(ctx); err != nil {
		return nil, fmt.Errorf("failed init kafka: %w", err)
	}
	base.Println("Kafka producer is initialized")

	svc := catalog.New(pgRepo, rc, producer, coreLog, cfg.CacheTTLSeconds)

	base.Println("init Server")
	deps := web.Deps{Catalog: svc, DB: pgRepo, Cache: rc, Broker: producer}
	server := web.New(serverLog, cfg, deps)
	base.Println("Server is initialized")

	base.Println("build ended")
	return &App{
		config: cfg,
		server: server,
		log:    base,
		repo:   pgRepo,
		cache:  rc,
		events: producer,
	}, nil
}

func (a *App) Run(ctx context.Context) error {
	a.log.Println("start application...")
	go a.server.Run()
	<-ctx.Done()
	a.log.Println("stop application...")

	stopCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	a.server.Close(stopCtx)
	a.events.Close()
	a.repo.Close()
	a.cache.Close()

	return nil
}
