package event

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/tuanvumaihuynh/product-catalog/internal/model"
)

const (
	TopicProductCreated = "product.created"
	TopicProductUpdated = "product.updated"
	TopicProductDeleted = "product.deleted"
)

// ProductSnapshot is the product state carried by created and updated events.
type ProductSnapshot struct {
	ProductID string          `json:"product_id"`
	Title     string          `json:"title"`
	Slug      string          `json:"slug"`
	Price     decimal.Decimal `json:"price"`
	Stock     int             `json:"stock"`
	Images    []string        `json:"images,omitempty"`
}

type ProductCreatedEvent struct {
	ProductSnapshot
	CreatedAt time.Time `json:"created_at"`
}

type ProductUpdatedEvent struct {
	ProductSnapshot
	ImagesReplaced bool      `json:"images_replaced"`
	UpdatedAt      time.Time `json:"updated_at"`
}

type ProductDeletedEvent struct {
	ProductID string    `json:"product_id"`
	DeletedAt time.Time `json:"deleted_at"`
}

func NewProductSnapshot(p model.Product) ProductSnapshot {
	var images []string
	if len(p.Images) > 0 {
		images = model.ImageURLs(p.Images)
	}

	return ProductSnapshot{
		ProductID: p.ID.String(),
		Title:     p.Title,
		Slug:      p.Slug,
		Price:     p.Price,
		Stock:     p.Stock,
		Images:    images,
	}
}
