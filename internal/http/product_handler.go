package http

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/oapi-codegen/runtime"
	"github.com/shopspring/decimal"

	"github.com/tuanvumaihuynh/product-catalog/internal/apperr"
	"github.com/tuanvumaihuynh/product-catalog/internal/model"
	"github.com/tuanvumaihuynh/product-catalog/internal/service"
	"github.com/tuanvumaihuynh/product-catalog/pkg/validator"
)

// maxBodyBytes caps request bodies. Product payloads are small.
const maxBodyBytes = 1 << 20

type createProductRequest struct {
	Title       string          `json:"title" validate:"required"`
	Slug        *string         `json:"slug"`
	Description *string         `json:"description"`
	Price       decimal.Decimal `json:"price" validate:"decimal"`
	Stock       int             `json:"stock" validate:"gte=0"`
	Sizes       []string        `json:"sizes" validate:"dive,required"`
	Gender      model.Gender    `json:"gender" validate:"required,enum"`
	Tags        []string        `json:"tags"`
	Images      []string        `json:"images" validate:"dive,imageurl"`
}

type updateProductRequest struct {
	Title       *string          `json:"title" validate:"omitempty,min=1"`
	Slug        *string          `json:"slug"`
	Description *string          `json:"description"`
	Price       *decimal.Decimal `json:"price" validate:"omitempty,decimal"`
	Stock       *int             `json:"stock" validate:"omitempty,gte=0"`
	Sizes       *[]string        `json:"sizes" validate:"omitempty,dive,required"`
	Gender      *model.Gender    `json:"gender" validate:"omitempty,enum"`
	Tags        *[]string        `json:"tags"`
	Images      *[]string        `json:"images" validate:"omitempty,dive,imageurl"`
}

type productHandler struct {
	catalogSvc service.CatalogService
	validator  validator.Validator
}

func newProductHandler(catalogSvc service.CatalogService, validator validator.Validator) *productHandler {
	return &productHandler{
		catalogSvc: catalogSvc,
		validator:  validator,
	}
}

func (h *productHandler) CreateProduct(w http.ResponseWriter, r *http.Request) error {
	var req createProductRequest
	if err := h.decode(w, r, &req); err != nil {
		return err
	}

	product, err := h.catalogSvc.CreateProduct(r.Context(), service.CreateProductParams{
		Title:       req.Title,
		Slug:        req.Slug,
		Description: req.Description,
		Price:       req.Price,
		Stock:       req.Stock,
		Sizes:       req.Sizes,
		Gender:      string(req.Gender),
		Tags:        req.Tags,
		Images:      req.Images,
	})
	if err != nil {
		return fmt.Errorf("catalog service create product: %w", err)
	}

	writeJSON(w, http.StatusCreated, product)
	return nil
}

func (h *productHandler) ListProducts(w http.ResponseWriter, r *http.Request) error {
	var params service.ListProductsParams

	if err := runtime.BindQueryParameter("form", true, false, "limit", r.URL.Query(), &params.Limit); err != nil {
		return apperr.InvalidPaginationErr.WithMsgf("invalid limit: %v", err).WrapParent(err)
	}
	if err := runtime.BindQueryParameter("form", true, false, "offset", r.URL.Query(), &params.Offset); err != nil {
		return apperr.InvalidPaginationErr.WithMsgf("invalid offset: %v", err).WrapParent(err)
	}

	products, err := h.catalogSvc.ListProducts(r.Context(), params)
	if err != nil {
		return fmt.Errorf("catalog service list products: %w", err)
	}

	writeJSON(w, http.StatusOK, products)
	return nil
}

func (h *productHandler) FindProduct(w http.ResponseWriter, r *http.Request) error {
	term, err := pathParam(r, "id")
	if err != nil {
		return err
	}

	product, err := h.catalogSvc.FindProduct(r.Context(), term)
	if err != nil {
		return fmt.Errorf("catalog service find product: %w", err)
	}

	writeJSON(w, http.StatusOK, product)
	return nil
}

func (h *productHandler) UpdateProduct(w http.ResponseWriter, r *http.Request) error {
	id, err := pathProductID(r)
	if err != nil {
		return err
	}

	var req updateProductRequest
	if err := h.decode(w, r, &req); err != nil {
		return err
	}

	params := service.UpdateProductParams{
		Title:       req.Title,
		Slug:        req.Slug,
		Description: req.Description,
		Price:       req.Price,
		Stock:       req.Stock,
		Sizes:       req.Sizes,
		Tags:        req.Tags,
		Images:      req.Images,
	}
	if req.Gender != nil {
		gender := string(*req.Gender)
		params.Gender = &gender
	}

	product, err := h.catalogSvc.UpdateProduct(r.Context(), id, params)
	if err != nil {
		return fmt.Errorf("catalog service update product: %w", err)
	}

	writeJSON(w, http.StatusOK, product)
	return nil
}

func (h *productHandler) DeleteProduct(w http.ResponseWriter, r *http.Request) error {
	id, err := pathProductID(r)
	if err != nil {
		return err
	}

	res, err := h.catalogSvc.DeleteProduct(r.Context(), id)
	if err != nil {
		return fmt.Errorf("catalog service delete product: %w", err)
	}

	writeJSON(w, http.StatusOK, res)
	return nil
}

func (h *productHandler) decode(w http.ResponseWriter, r *http.Request, dst any) error {
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(dst); err != nil {
		return apperr.ValidationErr.WithMsgf("invalid request body: %v", err).WrapParent(err)
	}

	if err := h.validator.Validate(dst); err != nil {
		return err
	}

	return nil
}

// pathParam returns the decoded path parameter. chi routes on the raw path when
// the request carries one, so its params may still be escaped.
func pathParam(r *http.Request, name string) (string, error) {
	raw := chi.URLParam(r, name)

	value, err := url.PathUnescape(raw)
	if err != nil {
		return "", apperr.ValidationErr.WithMsgf("invalid %s path parameter: %s", name, raw).WrapParent(err)
	}

	return value, nil
}

// pathProductID parses the id path parameter. Writes address products by id only.
func pathProductID(r *http.Request) (uuid.UUID, error) {
	raw, err := pathParam(r, "id")
	if err != nil {
		return uuid.Nil, err
	}

	id, err := uuid.Parse(raw)
	if err != nil || len(raw) != 36 {
		return uuid.Nil, apperr.ValidationErr.WithMsgf("%s is not a valid product id", raw)
	}

	return id, nil
}
