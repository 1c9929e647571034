// cmd/catalog-server/main.go
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"franchise-catalog/internal/api"
	"franchise-catalog/internal/catalog"
	"franchise-catalog/internal/common/camunda"
	"franchise-catalog/internal/common/config"
	"franchise-catalog/internal/common/logger"
	"franchise-catalog/internal/common/observability"
	"franchise-catalog/internal/common/validation"
	"franchise-catalog/pkg/registry"

	addproduct "franchise-catalog/internal/workers/catalog/add-product"
	topproducts "franchise-catalog/internal/workers/catalog/top-products"
	updatestock "franchise-catalog/internal/workers/catalog/update-stock"
)

// retryWithBackoff attempts to execute a function with exponential backoff
func retryWithBackoff(operation func() error, maxRetries int, initialDelay time.Duration, log *zap.Logger, operationName string) error {
	var err error
	delay := initialDelay

	for i := 0; i < maxRetries; i++ {
		err = operation()
		if err == nil {
			return nil
		}

		if i < maxRetries-1 {
			log.Warn(fmt.Sprintf("%s failed, retrying...", operationName),
				zap.Error(err),
				zap.Int("attempt", i+1),
				zap.Int("maxRetries", maxRetries),
				zap.Duration("nextRetryIn", delay),
			)
			time.Sleep(delay)
			delay *= 2
		}
	}

	return fmt.Errorf("%s failed after %d attempts: %w", operationName, maxRetries, err)
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config load failed: %v\n", err)
		os.Exit(1)
	}

	zapLog := logger.New(cfg.Logging.Level, cfg.Logging.Format, cfg.Logging.Output)
	defer zapLog.Sync()
	log := logger.NewZapAdapter(zapLog).WithFields(map[string]interface{}{
		"service": cfg.App.Name,
		"env":     cfg.App.Environment,
	})

	zapLog.Info("Starting catalog server...",
		zap.String("backend", cfg.Store.Backend),
		zap.Int("maxAttempts", cfg.Store.MaxAttempts),
		zap.String("negativeStock", cfg.Store.NegativeStock),
	)

	ctx := context.Background()

	obs, err := observability.New(ctx, cfg.Observability)
	if err != nil {
		zapLog.Fatal("observability init failed", zap.Error(err))
	}

	be, err := openStore(ctx, cfg, zapLog)
	if err != nil {
		zapLog.Fatal("store init failed", zap.Error(err))
	}

	engine := catalog.NewEngine(be.store,
		catalog.WithMaxAttempts(cfg.Store.MaxAttempts),
		catalog.WithNegativeStockPolicy(cfg.Store.NegativeStock),
		catalog.WithLogger(log.WithFields(map[string]interface{}{"component": "engine"})),
		catalog.WithObservability(obs),
	)

	// --- Zeebe job workers ---
	var (
		zeebe   *camunda.Client
		workers []*camunda.Worker
	)
	if cfg.Camunda.Enabled {
		err = retryWithBackoff(func() error {
			var err error
			zeebe, err = camunda.NewClientWithConfig(ctx, camunda.ConfigFrom(cfg.Camunda))
			return err
		}, 10, 2*time.Second, zapLog, "Zeebe client initialization")
		if err != nil {
			zapLog.Fatal("zeebe client failed after retries", zap.Error(err))
		}
		zapLog.Info("Zeebe client connected successfully")

		be.readiness["zeebe"] = zeebe
		workers, err = startWorkers(cfg, zeebe, engine, log, obs)
		if err != nil {
			zapLog.Fatal("worker init failed", zap.Error(err))
		}
	}

	// --- REST API ---
	gin.SetMode(cfg.Server.GinMode)
	router := api.NewRouter(api.RouterConfig{
		Handler:        api.NewFranchiseHandler(engine, log),
		Logger:         log,
		Observability:  obs,
		ServiceName:    cfg.Observability.ServiceName,
		CORSOrigins:    cfg.Server.CORSOrigins,
		RequestTimeout: config.GetDuration(cfg.Server.RequestTimeout),
		Readiness:      be.readiness,
	})

	srv := &http.Server{
		Addr:              cfg.Server.Address(),
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		zapLog.Info("HTTP server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zapLog.Fatal("HTTP server failed", zap.Error(err))
		}
	}()

	// --- Graceful Shutdown ---
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	zapLog.Info("Shutdown signal received, stopping...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		zapLog.Error("HTTP server shutdown failed", zap.Error(err))
	}
	for _, w := range workers {
		w.Stop()
	}
	if zeebe != nil {
		if err := zeebe.Close(); err != nil {
			zapLog.Error("Error closing Zeebe client", zap.Error(err))
		}
	}
	be.close()
	if err := obs.Shutdown(shutdownCtx); err != nil {
		zapLog.Error("observability shutdown failed", zap.Error(err))
	}

	zapLog.Info("Catalog server stopped gracefully")
}

func startWorkers(cfg *config.Config, zeebe *camunda.Client, engine *catalog.Engine, log logger.Logger, obs *observability.Observability) ([]*camunda.Worker, error) {
	add, err := addproduct.NewHandler(addproduct.HandlerOptions{AppConfig: cfg, Catalog: engine, Logger: log, Observability: obs})
	if err != nil {
		return nil, err
	}
	stock, err := updatestock.NewHandler(updatestock.HandlerOptions{AppConfig: cfg, Catalog: engine, Logger: log, Observability: obs})
	if err != nil {
		return nil, err
	}
	top, err := topproducts.NewHandler(topproducts.HandlerOptions{AppConfig: cfg, Catalog: engine, Logger: log, Observability: obs})
	if err != nil {
		return nil, err
	}

	reg := loadRegistry(log)

	client := zeebe.GetClient()
	var workers []*camunda.Worker
	for _, w := range []struct {
		taskType string
		handler  camunda.JobHandler
	}{
		{addproduct.TaskType, add},
		{updatestock.TaskType, stock},
		{topproducts.TaskType, top},
	} {
		if reg != nil && reg.Find(w.taskType) == nil {
			log.Warn("worker not listed in activity registry", map[string]interface{}{"taskType": w.taskType})
		}
		if started := camunda.StartWorker(client, w.taskType, config.GetWorkerConfig(cfg, w.taskType), w.handler, log); started != nil {
			workers = append(workers, started)
		}
	}
	return workers, nil
}

// loadRegistry reads the activity registry when present. A missing or
// invalid registry is logged and otherwise ignored.
func loadRegistry(log logger.Logger) *registry.ActivityRegistry {
	reg, err := registry.LoadRegistry(registry.DefaultPath)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			log.Warn("activity registry unreadable", map[string]interface{}{"error": err.Error()})
		}
		return nil
	}
	if err := reg.Validate(validation.HasSchema); err != nil {
		log.Warn("activity registry invalid", map[string]interface{}{"error": err.Error()})
		return nil
	}
	log.Info("activity registry loaded", map[string]interface{}{
		"version":    reg.Version,
		"activities": len(reg.Activities),
	})
	return reg
}
