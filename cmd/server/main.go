package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/ABDe3N/quizbank/internal/config"
	"github.com/ABDe3N/quizbank/internal/delivery/httpapi"
	"github.com/ABDe3N/quizbank/internal/infra/postgres"
	"github.com/ABDe3N/quizbank/internal/infra/postgres/repository"
	"github.com/ABDe3N/quizbank/internal/logger"
	"github.com/ABDe3N/quizbank/internal/service"
)

const shutdownTimeout = 10 * time.Second

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	zapLogger, err := logger.New(cfg)
	if err != nil {
		log.Fatal(err)
	}
	defer func() { _ = zapLogger.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	dsn, err := cfg.DB.DSN()
	if err != nil {
		log.Fatal(err)
	}

	pool, err := postgres.NewPool(ctx, dsn, postgres.PoolConfig{
		MaxConns:        int32(cfg.DB.MaxConnections),
		MaxConnLifetime: cfg.DB.MaxConnLifetime,
	})
	if err != nil {
		log.Fatal(err)
	}
	defer pool.Close()

	// Initialize repositories and services.
	questionRepo := repository.NewQuestionRepository(pool)
	transactor := postgres.NewTransactor(pool)

	bankService := service.NewBankService(questionRepo)
	importer := service.NewImporter(transactor, questionRepo)
	exporter := service.NewExporter(questionRepo)
	duplicateService := service.NewDuplicateService(questionRepo, cfg.Similarity.Threshold)

	handler := httpapi.NewHandler(
		zapLogger,
		bankService,
		importer,
		exporter,
		duplicateService,
	)

	server := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: handler.Router(),
	}

	go func() {
		zapLogger.Info("curation api listening", zap.String("addr", cfg.HTTPAddr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zapLogger.Fatal("http server failed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	zapLogger.Info("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		zapLogger.Error("graceful shutdown failed", zap.Error(err))
	}
}
