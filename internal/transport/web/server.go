package web

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/ThanathornKKU/catalog-service/internal/config"
	"github.com/ThanathornKKU/catalog-service/internal/transport/web/v1/health"
	"github.com/ThanathornKKU/catalog-service/internal/transport/web/v1/product"
)

type Server struct {
	log    *log.Logger
	server *http.Server
	cfg    *config.Config
}

func New(logger *log.Logger, cfg *config.Config, deps Deps) *Server {
	healthLog := log.New(logger.Writer(), logger.Prefix()+"[health] ", logger.Flags())
	productLog := log.New(logger.Writer(), logger.Prefix()+"[products] ", logger.Flags())

	healthHandler := &health.Handler{
		Log:    healthLog,
		DB:     deps.DB,
		Cache:  deps.Cache,
		Broker: deps.Broker,
	}
	productHandler := &product.Handler{Log: productLog, Catalog: deps.Catalog}

	srv := &http.Server{
		Addr:              cfg.AppPort,
		Handler:           newRouter(healthHandler, productHandler, logger),
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      10 * time.Second,
		MaxHeaderBytes:    1 << 20,
		ReadHeaderTimeout: 2 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	return &Server{server: srv, cfg: cfg, log: logger}
}

func (ws *Server) Run() {
	ws.log.Printf("started on %s", ws.server.Addr)
	if err := ws.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		ws.log.Fatalf("error: %v", err)
	}
}

func (ws *Server) Close(ctx context.Context) {
	if err := ws.server.Shutdown(ctx); err != nil {
		ws.log.Printf("forced to shutdown: %v", err)
	}
	ws.log.Println("exited gracefully")
}
