package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/tuanvumaihuynh/product-catalog/internal/apperr"
	"github.com/tuanvumaihuynh/product-catalog/internal/config"
	"github.com/tuanvumaihuynh/product-catalog/internal/event"
	"github.com/tuanvumaihuynh/product-catalog/internal/model"
	"github.com/tuanvumaihuynh/product-catalog/internal/repository"
	"github.com/tuanvumaihuynh/product-catalog/internal/storage/cache"
	"github.com/tuanvumaihuynh/product-catalog/internal/storage/db"
)

type CreateProductParams struct {
	Title string
	// Slug defaults to the title. Either way it is normalized.
	Slug        *string
	Description *string
	Price       decimal.Decimal
	Stock       int
	Sizes       []string
	Gender      string
	Tags        []string
	// Images are stored in the given order. Duplicates are kept.
	Images []string
}

type ListProductsParams struct {
	Limit  *int
	Offset *int
}

// UpdateProductParams is a partial update. Nil fields are left untouched.
type UpdateProductParams struct {
	Title       *string
	Slug        *string
	Description *string
	Price       *decimal.Decimal
	Stock       *int
	Sizes       *[]string
	Gender      *string
	Tags        *[]string
	Images      *[]string
}

type DeleteProductResult struct {
	Message string                  `json:"message"`
	Result  repository.DeleteResult `json:"result"`
}

type CatalogService interface {
	CreateProduct(ctx context.Context, params CreateProductParams) (model.ProductView, error)
	ListProducts(ctx context.Context, params ListProductsParams) ([]model.ProductView, error)
	// FindProduct resolves term as a product id when it is a canonical UUID, and as a
	// case-insensitive title or slug pattern otherwise.
	FindProduct(ctx context.Context, term string) (model.Product, error)
	UpdateProduct(ctx context.Context, id uuid.UUID, params UpdateProductParams) (model.Product, error)
	DeleteProduct(ctx context.Context, id uuid.UUID) (DeleteProductResult, error)
}

type catalogService struct {
	cfg           config.Catalog
	logger        *slog.Logger
	db            db.DB
	productRepo   repository.ProductRepository
	imageRepo     repository.ImageRepository
	outboxMsgRepo repository.OutboxMsgRepository
	productCache  cache.ProductCache

	now func() time.Time
}

func NewCatalogService(
	cfg config.Catalog,
	logger *slog.Logger,
	db db.DB,
	productRepo repository.ProductRepository,
	imageRepo repository.ImageRepository,
	outboxMsgRepo repository.OutboxMsgRepository,
	productCache cache.ProductCache,
) CatalogService {
	return &catalogService{
		cfg:           cfg,
		logger:        logger.With(slog.String("service", "catalog")),
		db:            db,
		productRepo:   productRepo,
		imageRepo:     imageRepo,
		outboxMsgRepo: outboxMsgRepo,
		productCache:  productCache,
		// Postgres keeps microseconds. Truncating here keeps returned and stored timestamps equal.
		now: func() time.Time { return time.Now().UTC().Truncate(time.Microsecond) },
	}
}

func (s *catalogService) CreateProduct(ctx context.Context, params CreateProductParams) (model.ProductView, error) {
	product, err := newProduct(params, s.now())
	if err != nil {
		return model.ProductView{}, s.classifyError(ctx, err)
	}

	if err := s.db.WithTx(ctx, func(db db.DB) error {
		if err := s.productRepo.
			WithDB(db).
			CreateProduct(ctx, product); err != nil {
			return fmt.Errorf("product repository create product: %w", err)
		}

		if err := s.imageRepo.
			WithDB(db).
			CreateImages(ctx, product.Images); err != nil {
			return fmt.Errorf("image repository create images: %w", err)
		}

		return s.writeEvent(ctx, db, event.TopicProductCreated, product.ID, event.ProductCreatedEvent{
			ProductSnapshot: event.NewProductSnapshot(product),
			CreatedAt:       product.CreatedAt,
		})
	}); err != nil {
		return model.ProductView{}, s.classifyError(ctx, fmt.Errorf("db with tx: %w", err))
	}

	return product.View(), nil
}

func (s *catalogService) ListProducts(ctx context.Context, params ListProductsParams) ([]model.ProductView, error) {
	limit, offset, err := s.pagination(params)
	if err != nil {
		return nil, s.classifyError(ctx, err)
	}

	products, err := s.productRepo.ListProducts(ctx, repository.ListProductsParams{
		Limit:  limit,
		Offset: offset,
	})
	if err != nil {
		return nil, s.classifyError(ctx, fmt.Errorf("product repository list products: %w", err))
	}

	ids := make([]uuid.UUID, 0, len(products))
	for _, p := range products {
		ids = append(ids, p.ID)
	}

	images, err := s.imageRepo.ListImagesByProductIDs(ctx, ids)
	if err != nil {
		return nil, s.classifyError(ctx, fmt.Errorf("image repository list images: %w", err))
	}

	views := make([]model.ProductView, 0, len(products))
	for _, p := range products {
		p.Images = images[p.ID]
		views = append(views, p.View())
	}

	return views, nil
}

func (s *catalogService) FindProduct(ctx context.Context, term string) (model.Product, error) {
	var (
		product model.Product
		err     error
	)

	switch key := model.ParseLookupKey(term).(type) {
	case model.ByID:
		product, err = s.findByID(ctx, key.ID)
	case model.ByTerm:
		product, err = s.findByTerm(ctx, key.Term)
	default:
		err = fmt.Errorf("unsupported lookup key %T", key)
	}

	if errors.Is(err, repository.ErrProductNotFound) {
		return model.Product{}, apperr.ProductNotFoundErr.WithMsgf("Product with term %s not found", term)
	}
	if err != nil {
		return model.Product{}, s.classifyError(ctx, err)
	}

	return product, nil
}

func (s *catalogService) findByID(ctx context.Context, id uuid.UUID) (model.Product, error) {
	cached, ok, err := s.productCache.Get(ctx, id)
	if err != nil {
		s.logger.WarnContext(ctx, "product cache get failed",
			slog.String("product_id", id.String()),
			slog.Any("error", err))
	}
	if ok {
		return cached, nil
	}

	product, err := s.productRepo.GetProductByID(ctx, id)
	if err != nil {
		return model.Product{}, fmt.Errorf("product repository get product by id: %w", err)
	}

	if product.Images, err = s.loadImages(ctx, product.ID); err != nil {
		return model.Product{}, err
	}

	if err := s.productCache.Set(ctx, product); err != nil {
		s.logger.WarnContext(ctx, "product cache set failed",
			slog.String("product_id", id.String()),
			slog.Any("error", err))
	}

	return product, nil
}

func (s *catalogService) findByTerm(ctx context.Context, term string) (model.Product, error) {
	product, err := s.productRepo.FindProductByTerm(ctx, strings.ToLower(term))
	if err != nil {
		return model.Product{}, fmt.Errorf("product repository find product by term: %w", err)
	}

	if product.Images, err = s.loadImages(ctx, product.ID); err != nil {
		return model.Product{}, err
	}

	return product, nil
}

func (s *catalogService) loadImages(ctx context.Context, productID uuid.UUID) ([]model.Image, error) {
	images, err := s.imageRepo.ListImagesByProductIDs(ctx, []uuid.UUID{productID})
	if err != nil {
		return nil, fmt.Errorf("image repository list images: %w", err)
	}
	return images[productID], nil
}

func (s *catalogService) UpdateProduct(ctx context.Context, id uuid.UUID, params UpdateProductParams) (model.Product, error) {
	replaceImages := params.Images != nil
	if replaceImages && s.cfg.ImageUpdatePolicy != config.ImageUpdatePolicyReplace {
		return model.Product{}, apperr.ImagesImmutableErr
	}

	var updated model.Product
	if err := s.db.WithTx(ctx, func(db db.DB) error {
		current, err := s.productRepo.
			WithDB(db).
			GetProductByIDForUpdate(ctx, id)
		if errors.Is(err, repository.ErrProductNotFound) {
			return apperr.ProductNotFoundErr.WithMsgf("Product with id %s not found", id)
		}
		if err != nil {
			return fmt.Errorf("product repository get product for update: %w", err)
		}

		merged, err := mergeProduct(current, params, s.now())
		if err != nil {
			return err
		}

		if err := s.productRepo.
			WithDB(db).
			UpdateProduct(ctx, merged); err != nil {
			return fmt.Errorf("product repository update product: %w", err)
		}

		if replaceImages {
			if _, err := s.imageRepo.
				WithDB(db).
				DeleteImagesByProductID(ctx, id); err != nil {
				return fmt.Errorf("image repository delete images: %w", err)
			}

			if merged.Images, err = newImages(id, *params.Images); err != nil {
				return err
			}
			if err := s.imageRepo.
				WithDB(db).
				CreateImages(ctx, merged.Images); err != nil {
				return fmt.Errorf("image repository create images: %w", err)
			}
		}

		if err := s.writeEvent(ctx, db, event.TopicProductUpdated, id, event.ProductUpdatedEvent{
			ProductSnapshot: event.NewProductSnapshot(merged),
			ImagesReplaced:  replaceImages,
			UpdatedAt:       merged.UpdatedAt,
		}); err != nil {
			return err
		}

		updated = merged
		return nil
	}); err != nil {
		return model.Product{}, s.classifyError(ctx, err)
	}

	s.evictCached(ctx, id)

	return updated, nil
}

func (s *catalogService) DeleteProduct(ctx context.Context, id uuid.UUID) (DeleteProductResult, error) {
	var result repository.DeleteResult
	if err := s.db.WithTx(ctx, func(db db.DB) error {
		res, err := s.productRepo.
			WithDB(db).
			DeleteProduct(ctx, id)
		if err != nil {
			return fmt.Errorf("product repository delete product: %w", err)
		}

		// Zero rows means the product did not exist. A delete that the database
		// refused surfaces as an error above instead.
		if res.Affected == 0 {
			return apperr.ProductNotFoundErr.WithMsgf("Product with id %s not found", id)
		}

		result = res
		return s.writeEvent(ctx, db, event.TopicProductDeleted, id, event.ProductDeletedEvent{
			ProductID: id.String(),
			DeletedAt: s.now(),
		})
	}); err != nil {
		return DeleteProductResult{}, s.classifyError(ctx, err)
	}

	s.evictCached(ctx, id)

	return DeleteProductResult{
		Message: fmt.Sprintf("Product with id %s was deleted", id),
		Result:  result,
	}, nil
}

func (s *catalogService) pagination(params ListProductsParams) (limit, offset int, err error) {
	limit, offset = s.cfg.DefaultLimit, 0
	if params.Limit != nil {
		limit = *params.Limit
	}
	if params.Offset != nil {
		offset = *params.Offset
	}

	if limit < 0 || offset < 0 {
		return 0, 0, apperr.InvalidPaginationErr.WithMsg("limit and offset must not be negative")
	}
	if s.cfg.MaxLimit > 0 && limit > s.cfg.MaxLimit {
		return 0, 0, apperr.InvalidPaginationErr.WithMsgf("limit must not exceed %d", s.cfg.MaxLimit)
	}

	return limit, offset, nil
}

func (s *catalogService) evictCached(ctx context.Context, id uuid.UUID) {
	if err := s.productCache.Delete(ctx, id); err != nil {
		s.logger.WarnContext(ctx, "product cache delete failed",
			slog.String("product_id", id.String()),
			slog.Any("error", err))
	}
}
