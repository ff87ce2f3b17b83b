package main

import (
	"context"
	"log"
	"net"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	backofficev1 "github.com/fekuna/omnipos-backoffice-service/api/backoffice/v1"
	"github.com/fekuna/omnipos-backoffice-service/config"
	"github.com/fekuna/omnipos-backoffice-service/internal/broker"
	"github.com/fekuna/omnipos-backoffice-service/internal/cache"
	"github.com/fekuna/omnipos-backoffice-service/internal/database/inmem"
	"github.com/fekuna/omnipos-backoffice-service/internal/database/postgres"
	"github.com/fekuna/omnipos-backoffice-service/internal/events"
	"github.com/fekuna/omnipos-backoffice-service/internal/i18n"
	"github.com/fekuna/omnipos-backoffice-service/internal/logger"
	"github.com/fekuna/omnipos-backoffice-service/internal/middleware"
	"github.com/fekuna/omnipos-backoffice-service/internal/search"
	"github.com/fekuna/omnipos-backoffice-service/internal/store"
	memoryStore "github.com/fekuna/omnipos-backoffice-service/internal/store/memory"
	pgStore "github.com/fekuna/omnipos-backoffice-service/internal/store/postgres"
	"github.com/fekuna/omnipos-backoffice-service/internal/tracing"

	invH "github.com/fekuna/omnipos-backoffice-service/internal/inventory/handler"
	invUCPkg "github.com/fekuna/omnipos-backoffice-service/internal/inventory/usecase"

	orderH "github.com/fekuna/omnipos-backoffice-service/internal/order/handler"
	orderListenerPkg "github.com/fekuna/omnipos-backoffice-service/internal/order/listener"
	orderUCPkg "github.com/fekuna/omnipos-backoffice-service/internal/order/usecase"

	shipH "github.com/fekuna/omnipos-backoffice-service/internal/shipment/handler"
	shipUCPkg "github.com/fekuna/omnipos-backoffice-service/internal/shipment/usecase"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"
)

func main() {
	// 1. Load Configuration
	_ = godotenv.Load() // Load .env file if it exists
	cfg := config.LoadEnv()

	// 2. Initialize Logger
	logConfig := &logger.ZapLoggerConfig{
		IsDevelopment:     false,
		Encoding:          "json",
		Level:             "info",
		DisableCaller:     cfg.Logger.DisableCaller,
		DisableStacktrace: cfg.Logger.DisableStacktrace,
	}

	if cfg.Server.AppEnv == "development" || cfg.Server.AppEnv == "dev" {
		logConfig.IsDevelopment = true
		logConfig.Encoding = cfg.Logger.Encoding
		logConfig.Level = cfg.Logger.Level
	}

	appLogger := logger.NewZapLogger(logConfig)
	defer appLogger.Sync()

	// 2.5 Initialize i18n
	translator, err := i18n.New(cfg.Server.DefaultLanguage)
	if err != nil {
		appLogger.Fatal("Could not load locales", zap.Error(err))
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// 2.8 Initialize Tracing
	if cfg.Tracing.Enabled {
		shutdown, err := tracing.Init(ctx, &tracing.Config{
			Endpoint:    cfg.Tracing.Endpoint,
			ServiceName: cfg.Tracing.ServiceName,
		})
		if err != nil {
			appLogger.Warn("Could not start tracing", zap.Error(err))
		} else {
			defer func() {
				sctx, scancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer scancel()
				_ = shutdown(sctx)
			}()
			appLogger.Info("Tracing enabled", zap.String("endpoint", cfg.Tracing.Endpoint))
		}
	}

	// 3. Initialize Document Store
	var txManager store.TxManager
	switch cfg.Storage.Driver {
	case "memory":
		db, err := inmem.New()
		if err != nil {
			appLogger.Fatal("Could not create in-memory store", zap.Error(err))
		}
		txManager = memoryStore.NewTxManager(db)
		appLogger.Info("Using in-memory document store")
	default:
		db, err := postgres.NewPostgres(&postgres.Config{
			Host:            cfg.Postgres.Host,
			Port:            cfg.Postgres.Port,
			User:            cfg.Postgres.User,
			Password:        cfg.Postgres.Password,
			DBName:          cfg.Postgres.DBName,
			SSLMode:         cfg.Postgres.SSLMode,
			MaxOpenConns:    cfg.Postgres.MaxOpenConns,
			MaxIdleConns:    cfg.Postgres.MaxIdleConns,
			ConnMaxLifetime: time.Duration(cfg.Postgres.ConnMaxLifetime) * time.Second,
			ConnMaxIdleTime: time.Duration(cfg.Postgres.ConnMaxIdleTime) * time.Second,
		})
		if err != nil {
			appLogger.Fatal("Could not connect to database", zap.Error(err))
		}
		defer db.Close()
		appLogger.Info("Connected to PostgreSQL database", zap.String("db_name", cfg.Postgres.DBName))

		if cfg.Storage.AutoMigrate {
			if err := postgres.Migrate(ctx, db); err != nil {
				appLogger.Fatal("Could not migrate database", zap.Error(err))
			}
		}
		txManager = pgStore.NewTxManager(db)
	}

	// 4. Initialize Redis
	var detailsCache cache.Cache
	if cfg.Redis.Enabled {
		redisClient, err := cache.NewRedisClient(&cache.Config{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			appLogger.Warn("Could not connect to Redis, running without cache", zap.Error(err))
		} else {
			defer redisClient.Close()
			detailsCache = redisClient
			appLogger.Info("Connected to Redis", zap.String("addr", cfg.Redis.Addr))
		}
	}

	// 5. Initialize Kafka Producer
	var publisher events.Publisher
	if cfg.Kafka.Enabled {
		producer := broker.NewProducer(&broker.Config{
			Brokers: cfg.Kafka.Brokers,
			Topic:   cfg.Kafka.EventsTopic,
		})
		defer producer.Close()
		publisher = events.NewKafkaPublisher(producer)
		appLogger.Info("Kafka producer ready", zap.String("topic", cfg.Kafka.EventsTopic))
	}

	// 5.5 Initialize Elasticsearch
	var indexer search.Indexer
	if cfg.Elastic.Enabled {
		esClient, err := search.NewClient(&search.Config{
			Addresses: cfg.Elastic.Addresses,
			Username:  cfg.Elastic.Username,
			Password:  cfg.Elastic.Password,
		})
		if err != nil {
			appLogger.Warn("Could not connect to Elasticsearch, search sync disabled", zap.Error(err))
		} else {
			for index, mapping := range map[string]string{
				search.OrdersIndex:    search.OrdersMapping,
				search.ShipmentsIndex: search.ShipmentsMapping,
			} {
				if err := esClient.CreateIndex(ctx, index, mapping); err != nil {
					appLogger.Warn("Could not create search index", zap.String("index", index), zap.Error(err))
				}
			}
			indexer = esClient
			appLogger.Info("Connected to Elasticsearch", zap.Strings("addresses", cfg.Elastic.Addresses))
		}
	}

	// 6. Initialize UseCases
	orderUC := orderUCPkg.NewOrderUseCase(txManager, detailsCache, publisher, indexer, appLogger)
	shipUC := shipUCPkg.NewShipmentUseCase(txManager, detailsCache, publisher, indexer, appLogger)
	invUC := invUCPkg.NewInventoryUseCase(txManager, appLogger)

	// 6.5 Initialize Listeners
	if cfg.Kafka.Enabled {
		kafkaConsumer := broker.NewConsumer(&broker.Config{
			Brokers: cfg.Kafka.Brokers,
			Topic:   cfg.Kafka.Topic,
			GroupID: cfg.Kafka.GroupID,
		})
		defer kafkaConsumer.Close()
		appLogger.Info("Connected to Kafka Consumer", zap.Strings("brokers", cfg.Kafka.Brokers), zap.String("topic", cfg.Kafka.Topic))

		orderListener := orderListenerPkg.NewOrderListener(kafkaConsumer, orderUC, appLogger)
		go orderListener.Start(ctx)
	}

	// 7. Initialize Handlers
	orderHandler := orderH.NewOrderHandler(orderUC, appLogger)
	shipHandler := shipH.NewShipmentHandler(shipUC, appLogger)
	invHandler := invH.NewInventoryHandler(invUC, appLogger)

	// 8. Start gRPC Server
	port := cfg.Server.GRPCPort
	if !strings.HasPrefix(port, ":") {
		port = ":" + port
	}

	lis, err := net.Listen("tcp", port)
	if err != nil {
		log.Fatalf("failed to listen: %v", err)
	}

	grpcServer := grpc.NewServer(
		grpc.ChainUnaryInterceptor(
			middleware.RecoveryInterceptor(appLogger),
			middleware.ContextInterceptor(),
			middleware.LoggingInterceptor(appLogger),
			middleware.ErrorInterceptor(translator),
		),
	)

	// Register Services
	backofficev1.RegisterOrderServiceServer(grpcServer, orderHandler)
	backofficev1.RegisterShipmentServiceServer(grpcServer, shipHandler)
	backofficev1.RegisterInventoryServiceServer(grpcServer, invHandler)

	healthServer := health.NewServer()
	healthpb.RegisterHealthServer(grpcServer, healthServer)
	healthServer.SetServingStatus("", healthpb.HealthCheckResponse_SERVING)

	// Register Reflection
	reflection.Register(grpcServer)

	appLogger.Info("Starting gRPC server", zap.String("port", port), zap.String("storage", cfg.Storage.Driver))

	// Graceful Shutdown
	go func() {
		if err := grpcServer.Serve(lis); err != nil {
			appLogger.Fatal("failed to serve", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	appLogger.Info("Shutting down server...")
	healthServer.Shutdown()
	cancel()
	grpcServer.GracefulStop()
	appLogger.Info("Server stopped")
}
