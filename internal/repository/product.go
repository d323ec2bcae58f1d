package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/tuanvumaihuynh/product-catalog/internal/model"
	"github.com/tuanvumaihuynh/product-catalog/internal/storage/db"
)

// ErrProductNotFound is returned when no product row matches.
var ErrProductNotFound = errors.New("product not found")

const productColumns = `id, title, slug, description, price, stock, sizes, gender, tags, created_at, updated_at`

const (
	productInsertSQL = `
		INSERT INTO products (` + productColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`

	productListSQL = `
		SELECT ` + productColumns + `
		FROM products
		ORDER BY id
		LIMIT $1 OFFSET $2`

	productGetByIDSQL = `
		SELECT ` + productColumns + `
		FROM products
		WHERE id = $1`

	productGetByIDForUpdateSQL = productGetByIDSQL + `
		FOR UPDATE`

	productFindByTermSQL = `
		SELECT ` + productColumns + `
		FROM products
		WHERE title ILIKE $1 OR slug ILIKE $1
		ORDER BY id
		LIMIT 1`

	productUpdateSQL = `
		UPDATE products
		SET title = $2, slug = $3, description = $4, price = $5, stock = $6,
			sizes = $7, gender = $8, tags = $9, updated_at = $10
		WHERE id = $1`

	productDeleteSQL = `DELETE FROM products WHERE id = $1`
)

type ListProductsParams struct {
	Limit  int
	Offset int
}

// DeleteResult is what the database reported for a delete.
type DeleteResult struct {
	Affected   int64  `json:"affected"`
	CommandTag string `json:"command_tag"`
}

type ProductRepository interface {
	WithDB(db db.DB) ProductRepository
	CreateProduct(ctx context.Context, product model.Product) error
	ListProducts(ctx context.Context, params ListProductsParams) ([]model.Product, error)
	GetProductByID(ctx context.Context, id uuid.UUID) (model.Product, error)
	// GetProductByIDForUpdate locks the row until the surrounding transaction ends.
	GetProductByIDForUpdate(ctx context.Context, id uuid.UUID) (model.Product, error)
	// FindProductByTerm returns the first product, by id, whose title or slug matches
	// pattern case-insensitively. pattern is an ILIKE pattern.
	FindProductByTerm(ctx context.Context, pattern string) (model.Product, error)
	UpdateProduct(ctx context.Context, product model.Product) error
	DeleteProduct(ctx context.Context, id uuid.UUID) (DeleteResult, error)
}

type productRepository struct {
	db db.DB
}

func NewProductRepository(db db.DB) ProductRepository {
	return &productRepository{db: db}
}

func (r productRepository) WithDB(db db.DB) ProductRepository {
	return &productRepository{db: db}
}

func (r productRepository) CreateProduct(ctx context.Context, product model.Product) error {
	if _, err := r.db.Exec(ctx, productInsertSQL,
		product.ID,
		product.Title,
		product.Slug,
		product.Description,
		product.Price,
		product.Stock,
		nonNil(product.Sizes),
		product.Gender,
		nonNil(product.Tags),
		product.CreatedAt,
		product.UpdatedAt,
	); err != nil {
		return fmt.Errorf("insert product: %w", err)
	}

	return nil
}

func (r productRepository) ListProducts(ctx context.Context, params ListProductsParams) ([]model.Product, error) {
	rows, err := r.db.Query(ctx, productListSQL, params.Limit, params.Offset)
	if err != nil {
		return nil, fmt.Errorf("query products: %w", err)
	}

	products, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (model.Product, error) {
		return scanProduct(row)
	})
	if err != nil {
		return nil, fmt.Errorf("collect products: %w", err)
	}

	return products, nil
}

func (r productRepository) GetProductByID(ctx context.Context, id uuid.UUID) (model.Product, error) {
	return r.getOne(ctx, productGetByIDSQL, id)
}

func (r productRepository) GetProductByIDForUpdate(ctx context.Context, id uuid.UUID) (model.Product, error) {
	return r.getOne(ctx, productGetByIDForUpdateSQL, id)
}

func (r productRepository) FindProductByTerm(ctx context.Context, pattern string) (model.Product, error) {
	return r.getOne(ctx, productFindByTermSQL, pattern)
}

func (r productRepository) getOne(ctx context.Context, sql string, args ...any) (model.Product, error) {
	product, err := scanProduct(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Product{}, ErrProductNotFound
		}
		return model.Product{}, fmt.Errorf("select product: %w", err)
	}

	return product, nil
}

func (r productRepository) UpdateProduct(ctx context.Context, product model.Product) error {
	tag, err := r.db.Exec(ctx, productUpdateSQL,
		product.ID,
		product.Title,
		product.Slug,
		product.Description,
		product.Price,
		product.Stock,
		nonNil(product.Sizes),
		product.Gender,
		nonNil(product.Tags),
		product.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update product: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrProductNotFound
	}

	return nil
}

func (r productRepository) DeleteProduct(ctx context.Context, id uuid.UUID) (DeleteResult, error) {
	tag, err := r.db.Exec(ctx, productDeleteSQL, id)
	if err != nil {
		return DeleteResult{}, fmt.Errorf("delete product: %w", err)
	}

	return DeleteResult{
		Affected:   tag.RowsAffected(),
		CommandTag: tag.String(),
	}, nil
}

func scanProduct(row pgx.Row) (model.Product, error) {
	var p model.Product
	err := row.Scan(
		&p.ID,
		&p.Title,
		&p.Slug,
		&p.Description,
		&p.Price,
		&p.Stock,
		&p.Sizes,
		&p.Gender,
		&p.Tags,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	return p, err
}

// nonNil keeps NOT NULL array columns from receiving NULL.
func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
