package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"

	"github.com/ThanathornKKU/catalog-service/internal/app"
)

// @title       Catalog Service API
// @version     1.0
// @description Product catalog with cache-aside reads and change events
// @BasePath    /
func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	a, err := app.Build(ctx)
	if err != nil {
		log.Fatalf("build: %v", err)
	}

	if err := a.Run(ctx); err != nil {
		log.Fatalf("run: %v", err)
	}
}
