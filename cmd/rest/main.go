package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"knagent-be/internal/bootstrap"
	"knagent-be/internal/config"
	"knagent-be/internal/server"
	"knagent-be/internal/tracer"
	"knagent-be/pkg/database"
)

func main() {
	// 1. Load Configuration
	cfg := config.Load()

	// 2. Initialize Database
	gormDB, err := database.NewGormDBFromDSN(cfg.Database.Connection)
	if err != nil {
		log.Fatalf("Unable to connect to GORM DB: %v", err)
	}

	// 3. Bootstrap Dependencies (Container)
	container, err := bootstrap.NewContainer(gormDB, cfg)
	if err != nil {
		log.Fatalf("Bootstrap failed: %v", err)
	}
	defer container.Close()

	// 4. Tracing
	shutdownTracer, err := tracer.InitTracer(context.Background(), cfg.Tracing, container.Logger)
	if err != nil {
		container.Logger.Warn("Main", "Tracing disabled", map[string]interface{}{"error": err.Error()})
	}
	defer shutdownTracer(context.Background())

	// 5. Serve until interrupted
	srv := server.New(cfg, container)
	errCh := make(chan error, 1)
	go func() { errCh <- srv.Run() }()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		container.Logger.Error("Main", "Server stopped", map[string]interface{}{"error": err.Error()})
	case sig := <-stop:
		container.Logger.Info("Main", "Shutting down", map[string]interface{}{"signal": sig.String()})
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(ctx); err != nil {
			container.Logger.Error("Main", "Graceful shutdown failed", map[string]interface{}{"error": err.Error()})
		}
	}
}
