package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"

	"github.com/ThanathornKKU/catalog-service/internal/domain"
)

const DefaultTTLSeconds = 60

// Service orchestrates catalog operations over the backing store, the
// cache, and the event publisher. Reads are cache-aside. Writes go to
// the store first, then invalidate the affected cache keys, then emit
// an event — strictly in that order. Cache and publisher failures are
// logged and never fail the operation; the store is the source of truth.
type Service struct {
	repo   domain.ProductsRepo
	cache  domain.Cache
	events domain.Publisher
	logger *log.Logger

	ttlSeconds int
}

func New(repo domain.ProductsRepo, cache domain.Cache, events domain.Publisher, logger *log.Logger, ttlSeconds int) *Service {
	if ttlSeconds <= 0 {
		ttlSeconds = DefaultTTLSeconds
	}
	return &Service{
		repo:       repo,
		cache:      cache,
		events:     events,
		logger:     logger,
		ttlSeconds: ttlSeconds,
	}
}

// List returns all products, serving from the collection cache key when
// it is populated.
func (s *Service) List(ctx context.Context) ([]domain.Product, error) {
	if b := s.cacheGet(ctx, domain.CacheKeyProducts); b != nil {
		var out []domain.Product
		if err := json.Unmarshal(b, &out); err == nil {
			return out, nil
		}
		s.logger.Printf("cache entry %q is corrupt, refetching", domain.CacheKeyProducts)
	}

	products, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: list products: %v", domain.ErrUnavailable, err)
	}

	s.cacheSet(ctx, domain.CacheKeyProducts, products)
	return products, nil
}

// Get returns one product, serving from its per-record cache key when
// it is populated.
func (s *Service) Get(ctx context.Context, id domain.ProductID) (domain.Product, error) {
	key := domain.CacheKeyProduct(id)
	if b := s.cacheGet(ctx, key); b != nil {
		var p domain.Product
		if err := json.Unmarshal(b, &p); err == nil {
			return p, nil
		}
		s.logger.Printf("cache entry %q is corrupt, refetching", key)
	}

	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.Product{}, fmt.Errorf("product %s: %w", id, domain.ErrNotFound)
		}
		return domain.Product{}, fmt.Errorf("%w: find product: %v", domain.ErrUnavailable, err)
	}

	s.cacheSet(ctx, key, p)
	return p, nil
}

// Create validates the input, enforces name uniqueness, inserts, then
// invalidates the collection key and emits product.created.
func (s *Service) Create(ctx context.Context, in domain.CreateProductInput) (domain.Product, error) {
	if err := in.Validate(); err != nil {
		return domain.Product{}, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}

	// Friendly conflict before the insert is attempted. The unique
	// index on name is the backstop for the race between the check and
	// the insert.
	if _, err := s.repo.FindByName(ctx, in.Name, nil); err == nil {
		return domain.Product{}, fmt.Errorf("product name %q: %w", in.Name, domain.ErrConflict)
	} else if !errors.Is(err, domain.ErrNotFound) {
		return domain.Product{}, fmt.Errorf("%w: check name: %v", domain.ErrUnavailable, err)
	}

	created, err := s.repo.Insert(ctx, in)
	if err != nil {
		if errors.Is(err, domain.ErrConflict) {
			return domain.Product{}, fmt.Errorf("product name %q: %w", in.Name, domain.ErrConflict)
		}
		return domain.Product{}, fmt.Errorf("%w: insert product: %v", domain.ErrUnavailable, err)
	}

	s.invalidate(ctx, domain.CacheKeyProducts)
	s.emit(ctx, domain.EventProductCreated, created)
	return created, nil
}

// Update applies a partial update, invalidates both cache keys and
// emits product.updated with the post-update state.
func (s *Service) Update(ctx context.Context, id domain.ProductID, in domain.UpdateProductInput) (domain.Product, error) {
	if err := in.Validate(); err != nil {
		return domain.Product{}, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}

	if in.Name != nil {
		if _, err := s.repo.FindByName(ctx, *in.Name, &id); err == nil {
			return domain.Product{}, fmt.Errorf("product name %q: %w", *in.Name, domain.ErrConflict)
		} else if !errors.Is(err, domain.ErrNotFound) {
			return domain.Product{}, fmt.Errorf("%w: check name: %v", domain.ErrUnavailable, err)
		}
	}

	updated, err := s.repo.UpdateByID(ctx, id, in)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrNotFound):
			return domain.Product{}, fmt.Errorf("product %s: %w", id, domain.ErrNotFound)
		case errors.Is(err, domain.ErrConflict):
			return domain.Product{}, fmt.Errorf("product name conflict: %w", domain.ErrConflict)
		default:
			return domain.Product{}, fmt.Errorf("%w: update product: %v", domain.ErrUnavailable, err)
		}
	}

	s.invalidate(ctx, domain.CacheKeyProducts, domain.CacheKeyProduct(id))
	s.emit(ctx, domain.EventProductUpdated, updated)
	return updated, nil
}

// Delete removes the record, invalidates both cache keys and emits
// product.deleted with the last-known state.
func (s *Service) Delete(ctx context.Context, id domain.ProductID) error {
	deleted, err := s.repo.DeleteByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return fmt.Errorf("product %s: %w", id, domain.ErrNotFound)
		}
		return fmt.Errorf("%w: delete product: %v", domain.ErrUnavailable, err)
	}

	s.invalidate(ctx, domain.CacheKeyProducts, domain.CacheKeyProduct(id))
	s.emit(ctx, domain.EventProductDeleted, deleted)
	return nil
}

// cacheGet treats any cache failure as a miss.
func (s *Service) cacheGet(ctx context.Context, key string) []byte {
	b, err := s.cache.Get(ctx, key)
	if err != nil {
		s.logger.Printf("cache get %q: %v", key, err)
		return nil
	}
	return b
}

func (s *Service) cacheSet(ctx context.Context, key string, v any) {
	b, err := json.Marshal(v)
	if err != nil {
		s.logger.Printf("cache marshal %q: %v", key, err)
		return
	}
	if err := s.cache.Set(ctx, key, b, s.ttlSeconds); err != nil {
		s.logger.Printf("cache set %q: %v", key, err)
	}
}

// invalidate logs failures instead of propagating them: a missed
// invalidation leaves a stale entry whose staleness is bounded by the TTL.
func (s *Service) invalidate(ctx context.Context, keys ...string) {
	if err := s.cache.Del(ctx, keys...); err != nil {
		s.logger.Printf("cache del %v: %v", keys, err)
	}
}

func (s *Service) emit(ctx context.Context, event string, payload any) {
	if err := s.events.Emit(ctx, event, payload); err != nil {
		s.logger.Printf("emit %q: %v", event, err)
	}
}
