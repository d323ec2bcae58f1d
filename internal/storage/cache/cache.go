package cache

import (
	"context"

	"github.com/google/uuid"

	"github.com/tuanvumaihuynh/product-catalog/internal/model"
)

// ProductCache holds products looked up by id.
type ProductCache interface {
	// Get reports false on a miss.
	Get(ctx context.Context, id uuid.UUID) (model.Product, bool, error)
	Set(ctx context.Context, product model.Product) error
	Delete(ctx context.Context, id uuid.UUID) error
}

var _ ProductCache = NoopProductCache{}

// NoopProductCache always misses.
type NoopProductCache struct{}

func (NoopProductCache) Get(context.Context, uuid.UUID) (model.Product, bool, error) {
	return model.Product{}, false, nil
}

func (NoopProductCache) Set(context.Context, model.Product) error { return nil }

func (NoopProductCache) Delete(context.Context, uuid.UUID) error { return nil }
