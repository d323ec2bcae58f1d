package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/tuanvumaihuynh/product-catalog/internal/model"
	"github.com/tuanvumaihuynh/product-catalog/internal/storage/db"
)

var (
	imageTable   = pgx.Identifier{"product_images"}
	imageColumns = []string{"id", "product_id", "url", "position"}
)

const (
	imageListByProductIDsSQL = `
		SELECT id, product_id, url, position
		FROM product_images
		WHERE product_id = ANY($1)
		ORDER BY product_id, position`

	imageDeleteByProductIDSQL = `DELETE FROM product_images WHERE product_id = $1`
)

type ImageRepository interface {
	WithDB(db db.DB) ImageRepository
	// CreateImages bulk inserts images with COPY. An empty slice is a no-op.
	CreateImages(ctx context.Context, images []model.Image) error
	// ListImagesByProductIDs groups images by owner, each group ordered by position.
	ListImagesByProductIDs(ctx context.Context, productIDs []uuid.UUID) (map[uuid.UUID][]model.Image, error)
	DeleteImagesByProductID(ctx context.Context, productID uuid.UUID) (int64, error)
}

type imageRepository struct {
	db db.DB
}

func NewImageRepository(db db.DB) ImageRepository {
	return &imageRepository{db: db}
}

func (r imageRepository) WithDB(db db.DB) ImageRepository {
	return &imageRepository{db: db}
}

func (r imageRepository) CreateImages(ctx context.Context, images []model.Image) error {
	if len(images) == 0 {
		return nil
	}

	n, err := r.db.CopyFrom(ctx, imageTable, imageColumns,
		pgx.CopyFromSlice(len(images), func(i int) ([]any, error) {
			img := images[i]
			return []any{img.ID, img.ProductID, img.URL, img.Position}, nil
		}),
	)
	if err != nil {
		return fmt.Errorf("copy product images: %w", err)
	}
	if n != int64(len(images)) {
		return fmt.Errorf("copy product images: inserted %d of %d rows", n, len(images))
	}

	return nil
}

func (r imageRepository) ListImagesByProductIDs(ctx context.Context, productIDs []uuid.UUID) (map[uuid.UUID][]model.Image, error) {
	if len(productIDs) == 0 {
		return map[uuid.UUID][]model.Image{}, nil
	}

	rows, err := r.db.Query(ctx, imageListByProductIDsSQL, productIDs)
	if err != nil {
		return nil, fmt.Errorf("query product images: %w", err)
	}

	images, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (model.Image, error) {
		var img model.Image
		err := row.Scan(&img.ID, &img.ProductID, &img.URL, &img.Position)
		return img, err
	})
	if err != nil {
		return nil, fmt.Errorf("collect product images: %w", err)
	}

	byProduct := make(map[uuid.UUID][]model.Image, len(productIDs))
	for _, img := range images {
		byProduct[img.ProductID] = append(byProduct[img.ProductID], img)
	}

	return byProduct, nil
}

func (r imageRepository) DeleteImagesByProductID(ctx context.Context, productID uuid.UUID) (int64, error) {
	tag, err := r.db.Exec(ctx, imageDeleteByProductIDSQL, productID)
	if err != nil {
		return 0, fmt.Errorf("delete product images: %w", err)
	}

	return tag.RowsAffected(), nil
}
