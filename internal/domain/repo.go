package domain

import "context"

// ProductsRepo is the durable store boundary. Absence is reported via
// ErrNotFound, a duplicate name via ErrConflict; everything else is a
// store failure the caller treats as ErrUnavailable.
type ProductsRepo interface {
	Close()
	Ping(context.Context) error

	FindAll(ctx context.Context) ([]Product, error)
	FindByID(ctx context.Context, id ProductID) (Product, error)
	// exclude, when non-nil, skips that id (used by update's uniqueness check).
	FindByName(ctx context.Context, name string, exclude *ProductID) (Product, error)
	Insert(ctx context.Context, in CreateProductInput) (Product, error)
	// UpdateByID applies the partial update and returns the post-update row.
	UpdateByID(ctx context.Context, id ProductID, in UpdateProductInput) (Product, error)
	// DeleteByID removes the record and returns its last state.
	DeleteByID(ctx context.Context, id ProductID) (Product, error)
}
