package web

import (
	"log"
	"net/http"

	httpSwagger "github.com/swaggo/http-swagger"

	_ "github.com/ThanathornKKU/catalog-service/internal/docs"
	"github.com/ThanathornKKU/catalog-service/internal/transport/web/mw"
	"github.com/ThanathornKKU/catalog-service/internal/transport/web/v1/health"
	"github.com/ThanathornKKU/catalog-service/internal/transport/web/v1/product"
)

func newRouter(hh *health.Handler, ph *product.Handler, logger *log.Logger) http.Handler {
	mux := http.NewServeMux()

	// health
	mux.HandleFunc("GET /v1/healthz", hh.Liveness)
	mux.HandleFunc("GET /v1/readyz", hh.Readiness)

	// products
	mux.HandleFunc("GET /v1/products", ph.List)
	mux.HandleFunc("POST /v1/products", limitBody(1<<20, ph.Create))
	mux.HandleFunc("GET /v1/products/{id}", ph.GetOne)
	mux.HandleFunc("PUT /v1/products/{id}", limitBody(1<<20, ph.Update))
	mux.HandleFunc("DELETE /v1/products/{id}", ph.Delete)

	// swagger
	mux.Handle("GET /swagger/", httpSwagger.WrapHandler)

	return mw.WithRequestID(mw.Logging(logger)(mux))
}

func limitBody(n int64, h http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		r.Body = http.MaxBytesReader(w, r.Body, n)
		h(w, r)
	}
}
