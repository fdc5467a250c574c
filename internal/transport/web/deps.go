package web

import (
	"github.com/ThanathornKKU/catalog-service/internal/transport/web/v1/health"
	"github.com/ThanathornKKU/catalog-service/internal/transport/web/v1/product"
)

// Deps carries everything the HTTP layer needs from the rest of the app.
type Deps struct {
	Catalog product.Catalog

	// readiness pings
	DB     health.Pinger
	Cache  health.Pinger
	Broker health.Pinger
}
