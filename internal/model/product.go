package model

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Product struct {
	ID          uuid.UUID       `json:"id"`
	Title       string          `json:"title"`
	Slug        string          `json:"slug"`
	Description *string         `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Stock       int             `json:"stock"`
	Sizes       []string        `json:"sizes"`
	Gender      string          `json:"gender"`
	Tags        []string        `json:"tags"`
	Images      []Image         `json:"images,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// ProductView is a Product whose images are flattened to their URLs.
type ProductView struct {
	ID          uuid.UUID       `json:"id"`
	Title       string          `json:"title"`
	Slug        string          `json:"slug"`
	Description *string         `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Stock       int             `json:"stock"`
	Sizes       []string        `json:"sizes"`
	Gender      string          `json:"gender"`
	Tags        []string        `json:"tags"`
	Images      []string        `json:"images"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// View flattens p. Images keep the order of the Images slice.
func (p Product) View() ProductView {
	return ProductView{
		ID:          p.ID,
		Title:       p.Title,
		Slug:        p.Slug,
		Description: p.Description,
		Price:       p.Price,
		Stock:       p.Stock,
		Sizes:       p.Sizes,
		Gender:      p.Gender,
		Tags:        p.Tags,
		Images:      ImageURLs(p.Images),
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

// Genders lists the accepted values of Product.Gender.
var Genders = []string{"men", "women", "kid", "unisex"}

func ValidGender(g string) bool {
	return slices.Contains(Genders, g)
}

// Gender is the request form of Product.Gender.
type Gender string

func (g Gender) Validate() error {
	if !ValidGender(string(g)) {
		return fmt.Errorf("gender %q is not one of %s", string(g), strings.Join(Genders, ", "))
	}
	return nil
}
