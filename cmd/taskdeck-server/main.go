package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/existflow/taskdeck/internal/logger"
	"github.com/existflow/taskdeck/server"
)

func main() {
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		dsn = os.Getenv("TASKDECK_DB")
	}
	if dsn == "" {
		path, err := server.DefaultDBPath()
		if err != nil {
			log.Fatalf("Failed to resolve database path: %v", err)
		}
		dsn = path
	}

	logCfg := logger.DefaultConfig()
	logCfg.FilePath = os.Getenv("TASKDECK_LOG_FILE")
	logCfg.Console = true
	if lvl := os.Getenv("LOG_LEVEL"); lvl != "" {
		logCfg.Level = logger.ParseLevel(lvl)
	}
	if err := logger.Init(logCfg); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Close()

	srv, err := server.New(dsn)
	if err != nil {
		log.Fatalf("Failed to create server: %v", err)
	}
	defer func() {
		if err := srv.Close(); err != nil {
			logger.Error("Error closing database", logger.F("error", err))
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("Shutdown failed", logger.F("error", err))
		}
	}()

	logger.Info("TaskDeck server starting",
		logger.F("port", port),
		logger.F("backend", server.DialectFor(dsn)))
	if err := srv.Start(":" + port); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("Server failed", logger.F("error", err))
		os.Exit(1)
	}
}
