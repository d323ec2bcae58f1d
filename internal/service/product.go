package service

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/tuanvumaihuynh/product-catalog/internal/apperr"
	"github.com/tuanvumaihuynh/product-catalog/internal/model"
	"github.com/tuanvumaihuynh/product-catalog/pkg/slug"
)

func newProduct(params CreateProductParams, now time.Time) (model.Product, error) {
	slugSource := params.Title
	if params.Slug != nil {
		slugSource = *params.Slug
	}

	id, err := uuid.NewV7()
	if err != nil {
		return model.Product{}, fmt.Errorf("generate uuid v7: %w", err)
	}

	p := model.Product{
		ID:          id,
		Title:       strings.TrimSpace(params.Title),
		Slug:        slug.Make(slugSource),
		Description: params.Description,
		Price:       params.Price,
		Stock:       params.Stock,
		Sizes:       orEmpty(params.Sizes),
		Gender:      params.Gender,
		Tags:        orEmpty(params.Tags),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if p.Images, err = newImages(p.ID, params.Images); err != nil {
		return model.Product{}, err
	}

	if err := validateProduct(p); err != nil {
		return model.Product{}, err
	}

	return p, nil
}

// mergeProduct applies the non-nil fields of params on top of current.
func mergeProduct(current model.Product, params UpdateProductParams, now time.Time) (model.Product, error) {
	p := current

	if params.Title != nil {
		p.Title = strings.TrimSpace(*params.Title)
	}
	if params.Slug != nil {
		p.Slug = slug.Make(*params.Slug)
	}
	if params.Description != nil {
		p.Description = params.Description
	}
	if params.Price != nil {
		p.Price = *params.Price
	}
	if params.Stock != nil {
		p.Stock = *params.Stock
	}
	if params.Sizes != nil {
		p.Sizes = orEmpty(*params.Sizes)
	}
	if params.Gender != nil {
		p.Gender = *params.Gender
	}
	if params.Tags != nil {
		p.Tags = orEmpty(*params.Tags)
	}
	p.UpdatedAt = now

	if err := validateProduct(p); err != nil {
		return model.Product{}, err
	}

	return p, nil
}

func validateProduct(p model.Product) error {
	switch {
	case p.Title == "":
		return apperr.ValidationErr.WithMsg("title must not be empty")
	case !slug.Valid(p.Slug):
		return apperr.ValidationErr.WithMsg("slug must contain at least one letter or digit")
	case p.Price.IsNegative():
		return apperr.ValidationErr.WithMsg("price must not be negative")
	case p.Stock < 0:
		return apperr.ValidationErr.WithMsg("stock must not be negative")
	case !model.ValidGender(p.Gender):
		return apperr.ValidationErr.WithMsgf("gender must be one of %s", strings.Join(model.Genders, ", "))
	case slices.Contains(p.Sizes, ""):
		return apperr.ValidationErr.WithMsg("sizes must not contain empty values")
	}
	return nil
}

func newImages(productID uuid.UUID, urls []string) ([]model.Image, error) {
	images := make([]model.Image, 0, len(urls))
	for i, url := range urls {
		id, err := uuid.NewV7()
		if err != nil {
			return nil, fmt.Errorf("generate uuid v7: %w", err)
		}
		images = append(images, model.Image{
			ID:        id,
			ProductID: productID,
			URL:       url,
			Position:  i,
		})
	}
	return images, nil
}

func orEmpty(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
