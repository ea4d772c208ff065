package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"cardlink/internal/cardview"
	"cardlink/internal/config"
	"cardlink/internal/db"
	"cardlink/internal/jobs"
	"cardlink/internal/logging"
	"cardlink/internal/metrics"
	"cardlink/internal/server"
	"cardlink/internal/storage"
)

func main() {
	if err := run(); err != nil {
		logging.Log.Error("server exited with error", zap.Error(err))
		logging.Sync()
		os.Exit(1)
	}
}

func run() error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cfg := config.Load()

	yamlCfg, err := config.LoadYAMLConfig()
	if err != nil {
		return fmt.Errorf("failed to load config file: %w", err)
	}
	cfg.ApplyYAML(yamlCfg)

	if err := logging.Init(cfg.Env, cfg.LogLevel); err != nil {
		return err
	}
	defer logging.Sync()

	// Initialize database
	database, err := db.New(ctx, cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer database.Close()

	if err := database.RunMigrations(cfg.DatabaseURL); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	logging.Log.Info("migrations completed")

	if cfg.IsDev() {
		if err := database.SeedDevCard(ctx); err != nil {
			logging.Log.Warn("failed to seed dev card", zap.Error(err))
		}
	}

	metrics.Init(database)
	assembler := cardview.NewAssembler(database, cardview.WithOutcomeHook(metrics.RecordAssembly))

	deps := server.Deps{DB: database, Assembler: assembler}
	if cfg.IsStorageEnabled() {
		objects, err := storage.NewMinIOStorage(ctx, storage.MinIOConfig{
			Endpoint:  cfg.MinIOEndpoint,
			AccessKey: cfg.MinIOAccessKey,
			SecretKey: cfg.MinIOSecretKey,
			Bucket:    cfg.MinIOBucket,
			UseSSL:    cfg.MinIOUseSSL,
			PublicURL: cfg.MinIOPublicURL,
		})
		if err != nil {
			return fmt.Errorf("failed to initialize object storage: %w", err)
		}
		deps.Avatars = storage.NewAvatars(objects)
		logging.Log.Info("avatar storage enabled", zap.String("bucket", cfg.MinIOBucket))
	} else {
		logging.Log.Info("avatar storage disabled, set MINIO_ENDPOINT to enable")
	}

	srv := server.New(cfg)
	if err := srv.RegisterRoutes(ctx, deps); err != nil {
		return fmt.Errorf("failed to register routes: %w", err)
	}

	if cfg.ViewRetentionDays > 0 {
		pruner := jobs.NewViewPruner(database, time.Hour, cfg.ViewRetentionDays)
		go pruner.Start(ctx)
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return fmt.Errorf("server error: %w", err)
	case sig := <-quit:
		logging.Log.Info("shutting down server", zap.String("signal", sig.String()))
	}

	cancel()
	if err := srv.Shutdown(); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}
	assembler.Wait()
	logging.Log.Info("server exited")
	return nil
}
