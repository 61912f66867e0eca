package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/openkasse/cashierd/config"
	"github.com/openkasse/cashierd/internal/app"
	"github.com/openkasse/cashierd/internal/webapi"
)

var (
	configFile = flag.String("c", "cashier.yml", "config file path")
	initDb     = flag.Bool("initdb", false, "drop and recreate all database tables, then exit")
)

func main() {
	flag.Parse()

	cfg, err := config.Load(*configFile)
	if err != nil {
		log.Fatalf("failed to load config %s: %v", *configFile, err)
	}

	application := app.NewApplication(cfg)
	application.Init()
	defer application.Release()

	if *initDb {
		application.InitDb()
		zap.S().Info("database initialized")
		return
	}

	server := webapi.NewServer(application)
	go func() {
		if err := server.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zap.S().Fatalf("web server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	zap.S().Info("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		zap.S().Errorf("shutdown error: %v", err)
	}
}
