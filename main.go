package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/levalimpiev/post-interactions/internal/config"
	"github.com/levalimpiev/post-interactions/internal/db"
	"github.com/levalimpiev/post-interactions/internal/kafka"
	"github.com/levalimpiev/post-interactions/internal/metrics"
	"github.com/levalimpiev/post-interactions/internal/server"
	"github.com/levalimpiev/post-interactions/internal/service"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger, err := newLogger(cfg)
	if err != nil {
		log.Fatalf("Failed to init logger: %v", err)
	}
	defer logger.Sync()

	if err := run(cfg, logger); err != nil {
		logger.Fatal("Post service stopped with error", zap.Error(err))
	}
	logger.Info("Post service stopped")
}

func run(cfg *config.Config, logger *zap.Logger) error {
	// Настраиваем graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	repo, closeRepo, err := initRepository(ctx, cfg.DB, logger)
	if err != nil {
		return err
	}
	defer closeRepo()

	producer := kafka.NewProducer(cfg.Kafka, logger)
	defer producer.Close()

	// Создаем сервис, использующий репозиторий и producer
	postService := service.NewPostService(repo, producer, logger)

	grpcServer := server.New(postService, server.Options{
		MaxWorkers: cfg.MaxWorkers,
		RPCTimeout: cfg.RPCTimeout,
	}, logger)

	lis, err := net.Listen("tcp", ":"+cfg.GRPCPort)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", cfg.GRPCPort, err)
	}

	opsServer := &http.Server{
		Addr:              ":" + cfg.MetricsPort,
		Handler:           metrics.NewRouter(repo),
		ReadHeaderTimeout: 5 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("Post service is running", zap.String("port", cfg.GRPCPort))
		return grpcServer.Serve(lis)
	})

	g.Go(func() error {
		logger.Info("Ops HTTP server is running", zap.String("port", cfg.MetricsPort))
		if err := opsServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		logger.Info("Shutting down post service...")
		grpcServer.GracefulStop()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return opsServer.Shutdown(shutdownCtx)
	})

	return g.Wait()
}

// initRepository выбирает хранилище по DB_DRIVER и при необходимости применяет миграции
func initRepository(ctx context.Context, cfg config.DBConfig, logger *zap.Logger) (db.Repository, func(), error) {
	if cfg.Driver == config.DriverMemory {
		logger.Warn("Используется хранилище в памяти, данные не сохраняются между запусками")
		return db.NewMemoryRepository(), func() {}, nil
	}

	database, err := db.Open(ctx, cfg)
	if err != nil {
		return nil, nil, err
	}

	if cfg.AutoMigrate {
		if err := db.Migrate(database); err != nil {
			database.Close()
			return nil, nil, err
		}
	}

	logger.Info("Соединение с базой данных установлено успешно", zap.String("driver", cfg.Driver))
	return db.NewPostgresRepository(database), func() { database.Close() }, nil
}

func newLogger(cfg *config.Config) (*zap.Logger, error) {
	if cfg.IsLocal() {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}
