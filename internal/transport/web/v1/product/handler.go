package product

import (
	"context"
	"log"

	"github.com/ThanathornKKU/catalog-service/internal/domain"
)

// Catalog is the slice of the core this handler needs.
type Catalog interface {
	List(ctx context.Context) ([]domain.Product, error)
	Get(ctx context.Context, id domain.ProductID) (domain.Product, error)
	Create(ctx context.Context, in domain.CreateProductInput) (domain.Product, error)
	Update(ctx context.Context, id domain.ProductID, in domain.UpdateProductInput) (domain.Product, error)
	Delete(ctx context.Context, id domain.ProductID) error
}

type Handler struct {
	Log     *log.Logger
	Catalog Catalog
}
